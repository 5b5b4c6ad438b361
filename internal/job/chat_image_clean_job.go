package job

import (
	"Campusmarket/internal/api/dto"
	"Campusmarket/internal/pkg/consts"
	"Campusmarket/internal/pkg/redis"
	"Campusmarket/internal/repository"
	"Campusmarket/internal/service"
	"context"
	log "log/slog"
	"time"

	"github.com/goccy/go-json"
)

// ChatImageCleanJob 回收上传后超过保留期仍未被任何 IMAGE 消息引用的聊天图片。
// 已被引用的只摘除登记项，对象保留。
type ChatImageCleanJob struct {
	msgRepo   repository.ChatMessageRepo
	store     service.BlobStore
	Retention time.Duration
}

func NewChatImageCleanJob(msgRepo repository.ChatMessageRepo, store service.BlobStore) *ChatImageCleanJob {
	return &ChatImageCleanJob{
		msgRepo:   msgRepo,
		store:     store,
		Retention: 24 * time.Hour,
	}
}

func (j *ChatImageCleanJob) Run() {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Minute)
	defer cancel()

	entries, err := redis.HGetAll(ctx, consts.ChatImageTempKey)
	if err != nil {
		log.Error("读取聊天图片登记表失败", "err", err)
		return
	}
	if len(entries) == 0 {
		return
	}

	deadline := time.Now().Add(-j.Retention).Unix()
	var removed, kept int

	for objectKey, raw := range entries {
		var meta dto.ChatImageTempMeta
		if err := json.Unmarshal([]byte(raw), &meta); err != nil {
			log.Warn("登记项解析失败，直接摘除", "objectKey", objectKey, "err", err)
			_ = redis.HDel(ctx, consts.ChatImageTempKey, objectKey)
			continue
		}
		if meta.CreatedAt > deadline {
			continue
		}

		count, err := j.msgRepo.CountByImageURL(ctx, j.store.URL(objectKey))
		if err != nil {
			log.Error("查询图片引用失败", "objectKey", objectKey, "err", err)
			continue
		}

		if count > 0 {
			// 已被消息引用，转为正式对象
			if err := redis.HDel(ctx, consts.ChatImageTempKey, objectKey); err != nil {
				log.Warn("摘除登记项失败", "objectKey", objectKey, "err", err)
				continue
			}
			kept++
			continue
		}

		if err := j.store.Remove(ctx, objectKey); err != nil {
			log.Error("删除孤儿图片失败", "objectKey", objectKey, "err", err)
			continue
		}
		if err := redis.HDel(ctx, consts.ChatImageTempKey, objectKey); err != nil {
			log.Warn("摘除登记项失败", "objectKey", objectKey, "err", err)
		}
		removed++
	}

	log.Info("聊天图片清理完成", "scanned", len(entries), "removed", removed, "kept", kept)
}
