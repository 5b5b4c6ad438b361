package consts

const (
	MimePrefixImage = "image"
)

const (
	// PostStatusSelling 在售 / PostStatusSold 已售出
	PostStatusSelling = 1
	PostStatusSold    = 2
)

const (
	// RoomActive 房间活跃 / RoomLeft 软删除（任一方退出即对双方失效）
	RoomActive = 1
	RoomLeft   = 0
)

// ImagePreviewPlaceholder 图片消息在会话预览与通知里的占位文本
const ImagePreviewPlaceholder = "[图片]"
