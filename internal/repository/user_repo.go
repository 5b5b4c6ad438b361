package repository

import (
	"Campusmarket/internal/model"
	"context"

	"gorm.io/gorm"
)

type UserRepo interface {
	Create(ctx context.Context, user *model.User) error
	GetByStudentID(ctx context.Context, studentID string) (*model.User, error)
	Exists(ctx context.Context, studentID string) (bool, error)
}

type userRepoImpl struct {
	db *gorm.DB
}

func NewUserRepo(db *gorm.DB) UserRepo {
	return &userRepoImpl{db: db}
}

func (s *userRepoImpl) Create(ctx context.Context, user *model.User) error {
	return s.db.WithContext(ctx).Create(user).Error
}

func (s *userRepoImpl) GetByStudentID(ctx context.Context, studentID string) (*model.User, error) {
	var user model.User
	err := s.db.WithContext(ctx).Where("student_id = ?", studentID).First(&user).Error
	if err != nil {
		return nil, err
	}
	return &user, nil
}

func (s *userRepoImpl) Exists(ctx context.Context, studentID string) (bool, error) {
	var count int64
	err := s.db.WithContext(ctx).Model(&model.User{}).
		Where("student_id = ?", studentID).
		Count(&count).Error
	return count > 0, err
}
