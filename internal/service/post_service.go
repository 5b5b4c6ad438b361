package service

import (
	"Campusmarket/internal/api/config"
	"Campusmarket/internal/api/dto"
	"Campusmarket/internal/model"
	"Campusmarket/internal/pkg/consts"
	"Campusmarket/internal/repository"
	"context"
	"errors"
	log "log/slog"
	"mime/multipart"
	"strings"

	"gorm.io/gorm"
)

type PostService struct {
	postRepo repository.PostRepo
	likeRepo repository.PostLikeRepo
	saga     *UploadSaga
}

func NewPostService(postRepo repository.PostRepo, likeRepo repository.PostLikeRepo, saga *UploadSaga) *PostService {
	return &PostService{postRepo: postRepo, likeRepo: likeRepo, saga: saga}
}

// CreatePost 发帖：图片先传对象存储，帖子与图片行在 Saga 的 persist 回调里同事务落库，
// 落库失败时已传对象被补偿删除。
func (s *PostService) CreatePost(ctx context.Context, writerID string, req *dto.CreatePostReq, files []*multipart.FileHeader) (*dto.PostDTO, error) {
	if len(files) == 0 {
		return nil, ErrNoImages
	}
	if len(files) > config.Cfg.Chat.MaxPostImages {
		return nil, ErrTooManyImages
	}

	inputs := make([]BlobInput, 0, len(files))
	opened := make([]multipart.File, 0, len(files))
	defer func() {
		for _, f := range opened {
			_ = f.Close()
		}
	}()
	for _, fh := range files {
		contentType := fh.Header.Get("Content-Type")
		if !strings.HasPrefix(contentType, consts.MimePrefixImage) {
			return nil, ErrFileNotSupported
		}
		f, err := fh.Open()
		if err != nil {
			log.ErrorContext(ctx, "打开上传文件失败", "filename", fh.Filename, "err", err)
			return nil, UnExpectedError
		}
		opened = append(opened, f)
		inputs = append(inputs, BlobInput{
			Reader:      f,
			Size:        fh.Size,
			ContentType: contentType,
			Filename:    fh.Filename,
		})
	}

	post := &model.Post{
		Title:       req.Title,
		Price:       req.Price,
		Category:    req.Category,
		Description: req.Description,
		Status:      consts.PostStatusSelling,
		WriterID:    writerID,
	}

	_, err := s.saga.Commit(ctx, inputs, func(ctx context.Context, refs []BlobRef) error {
		images := make([]*model.PostImage, 0, len(refs))
		for _, ref := range refs {
			if ref.Order == 0 {
				post.ImageURL = ref.URL
			}
			images = append(images, &model.PostImage{
				ImageURL:   ref.URL,
				ObjectKey:  ref.ObjectKey,
				ImageOrder: ref.Order,
			})
		}
		return s.postRepo.CreateWithImages(ctx, post, images)
	})
	if err != nil {
		if _, known := ErrorMap[err]; known {
			return nil, err
		}
		log.ErrorContext(ctx, "发帖失败", "writerID", writerID, "err", err)
		return nil, UnExpectedError
	}

	return s.GetPost(ctx, post.PostID, writerID)
}

// GetPost 帖子明细，带当前用户是否点赞
func (s *PostService) GetPost(ctx context.Context, postID uint64, viewerID string) (*dto.PostDTO, error) {
	post, err := s.postRepo.GetByID(ctx, postID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrPostNotFound
		}
		log.ErrorContext(ctx, "查询帖子失败", "postID", postID, "err", err)
		return nil, UnExpectedError
	}

	d := toPostDTO(post)
	if viewerID != "" {
		liked, err := s.likeRepo.Exists(ctx, postID, viewerID)
		if err != nil {
			log.WarnContext(ctx, "查询点赞状态失败", "postID", postID, "err", err)
		}
		d.Liked = liked
	}
	return d, nil
}

// ListPosts 帖子分页，sort 支持 latest(默认)/popular/price
func (s *PostService) ListPosts(ctx context.Context, page, size int, sort string) (*dto.PostPageDTO, error) {
	if page < 0 {
		page = 0
	}
	if size <= 0 || size > 100 {
		size = 20
	}

	posts, total, err := s.postRepo.List(ctx, page, size, sort)
	if err != nil {
		log.ErrorContext(ctx, "查询帖子列表失败", "err", err)
		return nil, UnExpectedError
	}

	items := make([]*dto.PostDTO, 0, len(posts))
	for _, post := range posts {
		items = append(items, toPostDTO(post))
	}

	totalPages := total / int64(size)
	if total%int64(size) != 0 {
		totalPages++
	}
	return &dto.PostPageDTO{
		Posts:       items,
		CurrentPage: page,
		TotalPages:  totalPages,
		TotalItems:  total,
		PageSize:    size,
	}, nil
}

// UpdateStatus 仅作者可改
func (s *PostService) UpdateStatus(ctx context.Context, postID uint64, userID string, status int8) error {
	post, err := s.loadOwned(ctx, postID, userID)
	if err != nil {
		return err
	}
	if err := s.postRepo.UpdateStatus(ctx, post.PostID, status); err != nil {
		log.ErrorContext(ctx, "更新帖子状态失败", "postID", postID, "err", err)
		return UnExpectedError
	}
	return nil
}

// DeletePost 仅作者可删；DB 行删除后反向清理对象存储，清理失败只记日志
func (s *PostService) DeletePost(ctx context.Context, postID uint64, userID string) error {
	post, err := s.loadOwned(ctx, postID, userID)
	if err != nil {
		return err
	}

	if err := s.postRepo.Delete(ctx, post.PostID); err != nil {
		log.ErrorContext(ctx, "删除帖子失败", "postID", postID, "err", err)
		return UnExpectedError
	}

	for _, img := range post.Images {
		if img.ObjectKey == "" {
			continue
		}
		if err := s.saga.store.Remove(ctx, img.ObjectKey); err != nil {
			log.WarnContext(ctx, "清理帖子图片失败", "objectKey", img.ObjectKey, "err", err)
		}
	}
	return nil
}

func (s *PostService) loadOwned(ctx context.Context, postID uint64, userID string) (*model.Post, error) {
	post, err := s.postRepo.GetByID(ctx, postID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrPostNotFound
		}
		log.ErrorContext(ctx, "查询帖子失败", "postID", postID, "err", err)
		return nil, UnExpectedError
	}
	if post.WriterID != userID {
		return nil, ForbiddenError
	}
	return post, nil
}

func toPostDTO(post *model.Post) *dto.PostDTO {
	d := &dto.PostDTO{
		PostID:        post.PostID,
		Title:         post.Title,
		Price:         post.Price,
		Category:      post.Category,
		Description:   post.Description,
		Status:        post.Status,
		ChatRoomCount: post.ChatRoomCount,
		LikeCount:     post.LikeCount,
		WriterID:      post.WriterID,
		ImageURL:      post.ImageURL,
		CreatedAt:     post.CreatedAt,
	}
	if post.Writer != nil {
		d.WriterName = post.Writer.Name
	}
	for _, img := range post.Images {
		d.Images = append(d.Images, dto.PostImageDTO{
			ImageURL:   img.ImageURL,
			ImageOrder: img.ImageOrder,
		})
	}
	return d
}
