package service

import (
	"Campusmarket/internal/repository"
	"context"
	"errors"
	log "log/slog"

	"github.com/go-sql-driver/mysql"
	"gorm.io/gorm"
)

type PostLikeService struct {
	postRepo repository.PostRepo
	likeRepo repository.PostLikeRepo
}

func NewPostLikeService(postRepo repository.PostRepo, likeRepo repository.PostLikeRepo) *PostLikeService {
	return &PostLikeService{postRepo: postRepo, likeRepo: likeRepo}
}

// Like 点赞，重复点赞视为成功
func (s *PostLikeService) Like(ctx context.Context, postID uint64, userID string) error {
	if _, err := s.postRepo.GetByID(ctx, postID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrPostNotFound
		}
		log.ErrorContext(ctx, "查询帖子失败", "postID", postID, "err", err)
		return UnExpectedError
	}

	if err := s.likeRepo.Like(ctx, postID, userID); err != nil {
		var mysqlErr *mysql.MySQLError
		if errors.As(err, &mysqlErr) && mysqlErr.Number == 1062 {
			return nil
		}
		log.ErrorContext(ctx, "点赞失败", "postID", postID, "userID", userID, "err", err)
		return UnExpectedError
	}
	return nil
}

// Unlike 取消点赞，未点过赞也视为成功
func (s *PostLikeService) Unlike(ctx context.Context, postID uint64, userID string) error {
	if err := s.likeRepo.Unlike(ctx, postID, userID); err != nil {
		log.ErrorContext(ctx, "取消点赞失败", "postID", postID, "userID", userID, "err", err)
		return UnExpectedError
	}
	return nil
}
