package repository

import (
	"Campusmarket/internal/model"
	"context"

	"gorm.io/gorm"
)

type PostRepo interface {
	CreateWithImages(ctx context.Context, post *model.Post, images []*model.PostImage) error
	GetByID(ctx context.Context, postID uint64) (*model.Post, error)
	List(ctx context.Context, page, size int, sort string) ([]*model.Post, int64, error)
	UpdateStatus(ctx context.Context, postID uint64, status int8) error
	Delete(ctx context.Context, postID uint64) error
}

type postRepoImpl struct {
	db *gorm.DB
}

func NewPostRepo(db *gorm.DB) PostRepo {
	return &postRepoImpl{db: db}
}

// CreateWithImages 开启事务写入帖子与有序图片，供上传 Saga 的 persist 回调使用
func (s *postRepoImpl) CreateWithImages(ctx context.Context, post *model.Post, images []*model.PostImage) error {
	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(post).Error; err != nil {
			return err
		}
		for _, img := range images {
			img.PostID = post.PostID
			if err := tx.Create(img).Error; err != nil {
				return err
			}
		}
		return nil
	})
}

func (s *postRepoImpl) GetByID(ctx context.Context, postID uint64) (*model.Post, error) {
	var post model.Post
	err := s.db.WithContext(ctx).
		Preload("Writer").
		Preload("Images", func(db *gorm.DB) *gorm.DB {
			return db.Order("image_order ASC")
		}).
		First(&post, postID).Error
	if err != nil {
		return nil, err
	}
	return &post, nil
}

func (s *postRepoImpl) List(ctx context.Context, page, size int, sort string) ([]*model.Post, int64, error) {
	var posts []*model.Post
	var total int64

	query := s.db.WithContext(ctx).Model(&model.Post{})
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	switch sort {
	case "popular":
		query = query.Order("like_count DESC, created_at DESC")
	case "price":
		query = query.Order("price ASC")
	default:
		query = query.Order("created_at DESC")
	}

	err := query.Preload("Writer").
		Offset(page * size).Limit(size).
		Find(&posts).Error
	return posts, total, err
}

func (s *postRepoImpl) UpdateStatus(ctx context.Context, postID uint64, status int8) error {
	return s.db.WithContext(ctx).Model(&model.Post{}).
		Where("post_id = ?", postID).
		Update("status", status).Error
}

// Delete 删除帖子，图片行随外键级联删除
func (s *postRepoImpl) Delete(ctx context.Context, postID uint64) error {
	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("post_id = ?", postID).Delete(&model.PostImage{}).Error; err != nil {
			return err
		}
		return tx.Delete(&model.Post{}, postID).Error
	})
}
