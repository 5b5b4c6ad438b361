package service

import (
	"errors"
)

const (
	BadRequest          = 400
	Unauthorized        = 401
	Forbidden           = 403
	NotFound            = 404
	InternalServerError = 500
)

var (
	ErrParamInvalid      = errors.New("参数错误")
	ErrUserNotFound      = errors.New("用户不存在")
	ErrUserExist         = errors.New("该学号已注册")
	ErrPasswordIncorrect = errors.New("密码错误")
	ErrPostNotFound      = errors.New("帖子不存在")
	ErrRoomNotFound      = errors.New("聊天室不存在")
	ErrSelfChat          = errors.New("不能和自己的帖子发起聊天")
	ErrMsgTypeInvalid    = errors.New("不支持的消息类型")
	ErrImageRefRequired  = errors.New("图片消息必须携带 image_url")
	ErrNoImages          = errors.New("至少需要1张图片")
	ErrTooManyImages     = errors.New("图片最多上传10张")
	ErrEmptyFile         = errors.New("不能上传空文件")
	ErrImageTooLarge     = errors.New("图片大小不能超过10MB")
	ErrFileNotSupported  = errors.New("不支持的文件类型")
	UnauthorizedError    = errors.New("登录状态无效")
	ForbiddenError       = errors.New("无权执行此操作")
	UnExpectedError      = errors.New("系统异常，请稍后重试")
)

var ErrorMap = map[error]int{
	ErrParamInvalid:      BadRequest,
	ErrUserNotFound:      NotFound,
	ErrUserExist:         BadRequest,
	ErrPasswordIncorrect: Unauthorized,
	ErrPostNotFound:      NotFound,
	ErrRoomNotFound:      NotFound,
	ErrSelfChat:          BadRequest,
	ErrMsgTypeInvalid:    BadRequest,
	ErrImageRefRequired:  BadRequest,
	ErrNoImages:          BadRequest,
	ErrTooManyImages:     BadRequest,
	ErrEmptyFile:         BadRequest,
	ErrImageTooLarge:     BadRequest,
	ErrFileNotSupported:  BadRequest,
	UnauthorizedError:    Unauthorized,
	ForbiddenError:       Forbidden,
	UnExpectedError:      InternalServerError,
}
