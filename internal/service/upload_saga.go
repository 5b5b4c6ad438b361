package service

import (
	"context"
	"io"
	log "log/slog"
	"path"
	"time"

	"github.com/google/uuid"
)

// BlobStore 对象存储抽象，由 pkg/minio 实现
type BlobStore interface {
	Put(ctx context.Context, objectName string, reader io.Reader, size int64, contentType string) (string, error)
	Remove(ctx context.Context, objectName string) error
	URL(objectName string) string
}

// BlobInput 待上传的文件
type BlobInput struct {
	Reader      io.Reader
	Size        int64
	ContentType string
	Filename    string
}

// BlobRef 已落盘对象的引用，persist 回调据此写元数据行
type BlobRef struct {
	ObjectKey string
	URL       string
	Order     int
}

// UploadSaga 统一的“先传对象、再写元数据、失败则补偿删除”编排。
// 两个存储之间没有分布式事务：元数据失败后的对象清理是尽力而为，
// 保证的是元数据行绝不引用不存在的对象键。
type UploadSaga struct {
	store        BlobStore
	MaxBatch     int
	MaxImageSize int64
	PutTimeout   time.Duration
}

func NewUploadSaga(store BlobStore) *UploadSaga {
	return &UploadSaga{
		store:        store,
		MaxBatch:     10,
		MaxImageSize: 10 * 1024 * 1024,
		PutTimeout:   15 * time.Second,
	}
}

// Commit 批量上传并提交元数据。persist 必须在单个事务内完成；
// persist 返回错误或中途上传失败时，已上传对象全部补偿删除，原始错误原样上抛。
func (s *UploadSaga) Commit(ctx context.Context, files []BlobInput, persist func(ctx context.Context, refs []BlobRef) error) ([]BlobRef, error) {
	if len(files) == 0 {
		return nil, ErrNoImages
	}
	if len(files) > s.MaxBatch {
		return nil, ErrTooManyImages
	}

	refs := make([]BlobRef, 0, len(files))

	for i, file := range files {
		key, err := s.putOne(ctx, file)
		if err != nil {
			log.ErrorContext(ctx, "对象上传失败，开始补偿删除", "uploaded", len(refs), "err", err)
			s.compensate(refs)
			return nil, err
		}
		refs = append(refs, BlobRef{ObjectKey: key, URL: s.store.URL(key), Order: i})
	}

	if err := persist(ctx, refs); err != nil {
		log.ErrorContext(ctx, "元数据写入失败，开始补偿删除", "uploaded", len(refs), "err", err)
		s.compensate(refs)
		return nil, err
	}

	return refs, nil
}

// StoreOne 聊天图片专用：单文件、限大小、无元数据行，引用关系由后续消息建立
func (s *UploadSaga) StoreOne(ctx context.Context, file BlobInput) (*BlobRef, error) {
	if file.Size <= 0 {
		return nil, ErrEmptyFile
	}
	if file.Size > s.MaxImageSize {
		return nil, ErrImageTooLarge
	}

	key, err := s.putOne(ctx, file)
	if err != nil {
		return nil, err
	}
	return &BlobRef{ObjectKey: key, URL: s.store.URL(key)}, nil
}

func (s *UploadSaga) putOne(ctx context.Context, file BlobInput) (string, error) {
	putCtx, cancel := context.WithTimeout(ctx, s.PutTimeout)
	defer cancel()

	objectName := "images/" + uuid.NewString() + extOf(file)
	return s.store.Put(putCtx, objectName, file.Reader, file.Size, file.ContentType)
}

// compensate 逐个删除本次已上传的对象；删除失败只记日志，不覆盖原始错误
func (s *UploadSaga) compensate(refs []BlobRef) {
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	for _, ref := range refs {
		if err := s.store.Remove(ctx, ref.ObjectKey); err != nil {
			log.Error("补偿删除失败", "objectKey", ref.ObjectKey, "err", err)
			continue
		}
		log.Warn("已补偿删除对象", "objectKey", ref.ObjectKey)
	}
}

func extOf(file BlobInput) string {
	if ext := path.Ext(file.Filename); ext != "" {
		return ext
	}
	switch file.ContentType {
	case "image/png":
		return ".png"
	case "image/jpeg":
		return ".jpg"
	case "image/gif":
		return ".gif"
	case "image/webp":
		return ".webp"
	}
	return ".bin"
}
