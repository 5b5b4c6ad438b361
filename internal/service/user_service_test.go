package service

import (
	"Campusmarket/internal/api/dto"
	"Campusmarket/internal/model"
	"Campusmarket/internal/pkg/security"
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"gorm.io/gorm"
)

func TestRegister(t *testing.T) {
	ctx := context.Background()

	t.Run("注册成功且密码被哈希", func(t *testing.T) {
		userRepo := new(mockUserRepo)
		svc := NewUserService(userRepo)

		userRepo.On("Exists", ctx, "20250001").Return(false, nil)
		userRepo.On("Create", ctx, mock.AnythingOfType("*model.User")).
			Run(func(args mock.Arguments) {
				user := args.Get(1).(*model.User)
				assert.NotEqual(t, "secret123", user.Password)
				assert.NoError(t, security.CheckPasswordHash("secret123", user.Password))
			}).Return(nil)

		err := svc.Register(ctx, &dto.RegisterReq{
			StudentID: "20250001",
			Name:      "张三",
			Password:  "secret123",
			Campus:    "东校区",
		})

		assert.NoError(t, err)
		userRepo.AssertExpectations(t)
	})

	t.Run("学号已注册", func(t *testing.T) {
		userRepo := new(mockUserRepo)
		svc := NewUserService(userRepo)

		userRepo.On("Exists", ctx, "20250001").Return(true, nil)

		err := svc.Register(ctx, &dto.RegisterReq{StudentID: "20250001", Name: "张三", Password: "secret123"})

		assert.ErrorIs(t, err, ErrUserExist)
		userRepo.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
	})
}

func TestLogin(t *testing.T) {
	ctx := context.Background()

	hashed, err := security.HashPassword("secret123")
	assert.NoError(t, err)
	stored := &model.User{StudentID: "20250001", Name: "张三", Password: hashed}

	t.Run("密码正确签发Token", func(t *testing.T) {
		userRepo := new(mockUserRepo)
		svc := NewUserService(userRepo)

		userRepo.On("GetByStudentID", ctx, "20250001").Return(stored, nil)

		resp, err := svc.Login(ctx, &dto.LoginReq{StudentID: "20250001", Password: "secret123"})

		assert.NoError(t, err)
		assert.Equal(t, "20250001", resp.StudentID)

		claims, err := security.ValidateToken(resp.Token)
		assert.NoError(t, err)
		assert.Equal(t, "20250001", claims.StudentID)
		assert.Equal(t, "张三", claims.Name)
	})

	t.Run("密码错误", func(t *testing.T) {
		userRepo := new(mockUserRepo)
		svc := NewUserService(userRepo)

		userRepo.On("GetByStudentID", ctx, "20250001").Return(stored, nil)

		_, err := svc.Login(ctx, &dto.LoginReq{StudentID: "20250001", Password: "wrong"})

		assert.ErrorIs(t, err, ErrPasswordIncorrect)
	})

	t.Run("用户不存在", func(t *testing.T) {
		userRepo := new(mockUserRepo)
		svc := NewUserService(userRepo)

		userRepo.On("GetByStudentID", ctx, "nobody").Return(nil, gorm.ErrRecordNotFound)

		_, err := svc.Login(ctx, &dto.LoginReq{StudentID: "nobody", Password: "x"})

		assert.ErrorIs(t, err, ErrUserNotFound)
	})
}
