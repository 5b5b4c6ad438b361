package repository

import (
	"Campusmarket/internal/model"
	"context"

	"gorm.io/gorm"
)

type PostLikeRepo interface {
	Like(ctx context.Context, postID uint64, userID string) error
	Unlike(ctx context.Context, postID uint64, userID string) error
	Exists(ctx context.Context, postID uint64, userID string) (bool, error)
}

type postLikeRepoImpl struct {
	db *gorm.DB
}

func NewPostLikeRepo(db *gorm.DB) PostLikeRepo {
	return &postLikeRepoImpl{db: db}
}

// Like 点赞并同步 like_count，重复点赞由唯一索引拦截
func (s *postLikeRepoImpl) Like(ctx context.Context, postID uint64, userID string) error {
	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(&model.PostLike{PostID: postID, UserID: userID}).Error; err != nil {
			return err
		}
		return tx.Model(&model.Post{}).Where("post_id = ?", postID).
			Update("like_count", gorm.Expr("like_count + 1")).Error
	})
}

func (s *postLikeRepoImpl) Unlike(ctx context.Context, postID uint64, userID string) error {
	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		res := tx.Where("post_id = ? AND user_id = ?", postID, userID).Delete(&model.PostLike{})
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return nil
		}
		return tx.Model(&model.Post{}).Where("post_id = ?", postID).
			Update("like_count", gorm.Expr("GREATEST(like_count - 1, 0)")).Error
	})
}

func (s *postLikeRepoImpl) Exists(ctx context.Context, postID uint64, userID string) (bool, error) {
	var count int64
	err := s.db.WithContext(ctx).Model(&model.PostLike{}).
		Where("post_id = ? AND user_id = ?", postID, userID).
		Count(&count).Error
	return count > 0, err
}
