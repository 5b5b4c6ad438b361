package service

import (
	"Campusmarket/internal/api/dto"
	"Campusmarket/internal/pkg/consts"
	"Campusmarket/internal/pkg/redis"
	"context"
	log "log/slog"
	"mime/multipart"
	"strings"
	"time"

	"github.com/goccy/go-json"
)

// MediaService 聊天图片上传。上传成功后在 redis 里登记临时元信息，
// 定时任务会回收超过 24 小时仍未被任何 IMAGE 消息引用的对象。
type MediaService struct {
	saga *UploadSaga
}

func NewMediaService(saga *UploadSaga) *MediaService {
	return &MediaService{saga: saga}
}

// UploadChatImage 单图上传，返回可作为 IMAGE 消息 image_url 的地址
func (s *MediaService) UploadChatImage(ctx context.Context, fh *multipart.FileHeader) (*dto.UploadResultDTO, error) {
	contentType := fh.Header.Get("Content-Type")
	if !strings.HasPrefix(contentType, consts.MimePrefixImage) {
		return nil, ErrFileNotSupported
	}

	f, err := fh.Open()
	if err != nil {
		log.ErrorContext(ctx, "打开上传文件失败", "filename", fh.Filename, "err", err)
		return nil, UnExpectedError
	}
	defer f.Close()

	ref, err := s.saga.StoreOne(ctx, BlobInput{
		Reader:      f,
		Size:        fh.Size,
		ContentType: contentType,
		Filename:    fh.Filename,
	})
	if err != nil {
		if _, known := ErrorMap[err]; known {
			return nil, err
		}
		log.ErrorContext(ctx, "聊天图片上传失败", "filename", fh.Filename, "err", err)
		return nil, UnExpectedError
	}

	// 登记失败不回滚上传，最多让这张图躲过一轮清理
	meta := dto.ChatImageTempMeta{
		MimeType:  contentType,
		Size:      fh.Size,
		CreatedAt: time.Now().Unix(),
	}
	if raw, err := json.Marshal(meta); err == nil {
		if err := redis.HSet(ctx, consts.ChatImageTempKey, ref.ObjectKey, string(raw)); err != nil {
			log.WarnContext(ctx, "登记聊天图片临时记录失败", "objectKey", ref.ObjectKey, "err", err)
		}
	}

	return &dto.UploadResultDTO{
		URL:       ref.URL,
		ObjectKey: ref.ObjectKey,
		MimeType:  contentType,
		Size:      fh.Size,
	}, nil
}
