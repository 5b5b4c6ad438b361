package service

import (
	"Campusmarket/internal/api/dto"
	"Campusmarket/internal/model"
	"Campusmarket/internal/pkg/consts"
	"Campusmarket/internal/pkg/redis"
	"Campusmarket/internal/pkg/security"
	"Campusmarket/internal/repository"
	"context"
	"errors"
	log "log/slog"

	"github.com/jinzhu/copier"
	"gorm.io/gorm"
)

type UserService struct {
	userRepo repository.UserRepo
}

func NewUserService(userRepo repository.UserRepo) *UserService {
	return &UserService{userRepo: userRepo}
}

// Register 注册，学号唯一
func (s *UserService) Register(ctx context.Context, req *dto.RegisterReq) error {
	exists, err := s.userRepo.Exists(ctx, req.StudentID)
	if err != nil {
		log.ErrorContext(ctx, "查询用户失败", "studentID", req.StudentID, "err", err)
		return UnExpectedError
	}
	if exists {
		return ErrUserExist
	}

	hashed, err := security.HashPassword(req.Password)
	if err != nil {
		log.ErrorContext(ctx, "密码哈希失败", "err", err)
		return UnExpectedError
	}

	user := &model.User{
		StudentID: req.StudentID,
		Name:      req.Name,
		Password:  hashed,
		Campus:    req.Campus,
	}
	if err := s.userRepo.Create(ctx, user); err != nil {
		log.ErrorContext(ctx, "创建用户失败", "studentID", req.StudentID, "err", err)
		return UnExpectedError
	}
	return nil
}

// Login 校验密码并签发 Token
func (s *UserService) Login(ctx context.Context, req *dto.LoginReq) (*dto.LoginResp, error) {
	user, err := s.userRepo.GetByStudentID(ctx, req.StudentID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrUserNotFound
		}
		log.ErrorContext(ctx, "查询用户失败", "studentID", req.StudentID, "err", err)
		return nil, UnExpectedError
	}

	if err := security.CheckPasswordHash(req.Password, user.Password); err != nil {
		return nil, ErrPasswordIncorrect
	}

	token, err := security.GenerateToken(user.StudentID, user.Name)
	if err != nil {
		log.ErrorContext(ctx, "签发 Token 失败", "studentID", req.StudentID, "err", err)
		return nil, UnExpectedError
	}

	return &dto.LoginResp{
		Token:     token,
		StudentID: user.StudentID,
		Name:      user.Name,
	}, nil
}

// Logout 把 Token 签名写入黑名单，有效期与 Token 剩余寿命同量级
func (s *UserService) Logout(ctx context.Context, token string) error {
	signature, err := security.ExtractSignature(token)
	if err != nil {
		return UnauthorizedError
	}
	if err := redis.SetWithExpiration(ctx, consts.TokenBlacklistKey+signature, "1", security.JWTExpirationTime); err != nil {
		log.ErrorContext(ctx, "写入登出黑名单失败", "err", err)
		return UnExpectedError
	}
	return nil
}

// GetInfo 用户信息
func (s *UserService) GetInfo(ctx context.Context, studentID string) (*dto.UserDTO, error) {
	user, err := s.userRepo.GetByStudentID(ctx, studentID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrUserNotFound
		}
		log.ErrorContext(ctx, "查询用户失败", "studentID", studentID, "err", err)
		return nil, UnExpectedError
	}

	var d dto.UserDTO
	if err := copier.Copy(&d, user); err != nil {
		log.ErrorContext(ctx, "装配用户信息失败", "err", err)
		return nil, UnExpectedError
	}
	return &d, nil
}
