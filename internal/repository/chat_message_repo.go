package repository

import (
	"Campusmarket/internal/model"
	"context"
	"time"

	"gorm.io/gorm"
)

type ChatMessageRepo interface {
	ListByRoom(ctx context.Context, roomID uint64, page, size int) ([]*model.ChatMessage, error)
	MarkRead(ctx context.Context, roomID uint64, readerID string) (int64, error)
	CountUnread(ctx context.Context, roomID uint64, userID string) (int64, error)
	CountTotalUnread(ctx context.Context, userID string) (int64, error)
	CountByImageURL(ctx context.Context, imageURL string) (int64, error)
}

type chatMessageRepoImpl struct {
	db *gorm.DB
}

func NewChatMessageRepo(db *gorm.DB) ChatMessageRepo {
	return &chatMessageRepoImpl{db: db}
}

// ListByRoom 按发送时间倒序分页
func (s *chatMessageRepoImpl) ListByRoom(ctx context.Context, roomID uint64, page, size int) ([]*model.ChatMessage, error) {
	var messages []*model.ChatMessage
	err := s.db.WithContext(ctx).
		Where("room_id = ?", roomID).
		Order("sent_at DESC").
		Offset(page * size).Limit(size).
		Find(&messages).Error
	return messages, err
}

// MarkRead 把对方发来的未读消息批量置为已读，返回影响行数
func (s *chatMessageRepoImpl) MarkRead(ctx context.Context, roomID uint64, readerID string) (int64, error) {
	res := s.db.WithContext(ctx).Model(&model.ChatMessage{}).
		Where("room_id = ? AND sender_id <> ? AND is_read = ?", roomID, readerID, false).
		Updates(map[string]interface{}{
			"is_read": true,
			"read_at": time.Now(),
		})
	return res.RowsAffected, res.Error
}

func (s *chatMessageRepoImpl) CountUnread(ctx context.Context, roomID uint64, userID string) (int64, error) {
	var count int64
	err := s.db.WithContext(ctx).Model(&model.ChatMessage{}).
		Where("room_id = ? AND sender_id <> ? AND is_read = ?", roomID, userID, false).
		Count(&count).Error
	return count, err
}

// CountTotalUnread 该用户参与的全部房间中，对方发来且未读的消息总数
func (s *chatMessageRepoImpl) CountTotalUnread(ctx context.Context, userID string) (int64, error) {
	var count int64
	err := s.db.WithContext(ctx).Model(&model.ChatMessage{}).
		Joins("JOIN chat_rooms r ON chat_messages.room_id = r.room_id").
		Where("(r.buyer_id = ? OR r.seller_id = ?)", userID, userID).
		Where("chat_messages.sender_id <> ? AND chat_messages.is_read = ?", userID, false).
		Count(&count).Error
	return count, err
}

// CountByImageURL 供清理任务判断聊天图片是否已被消息引用
func (s *chatMessageRepoImpl) CountByImageURL(ctx context.Context, imageURL string) (int64, error) {
	var count int64
	err := s.db.WithContext(ctx).Model(&model.ChatMessage{}).
		Where("message_type = ? AND image_url = ?", model.MsgImage, imageURL).
		Count(&count).Error
	return count, err
}
