package repository

import (
	"Campusmarket/internal/model"
	"Campusmarket/internal/pkg/consts"
	"context"
	"time"

	"gorm.io/gorm"
)

type ChatRoomRepo interface {
	GetByID(ctx context.Context, roomID uint64) (*model.ChatRoom, error)
	GetByPostAndBuyer(ctx context.Context, postID uint64, buyerID string) (*model.ChatRoom, error)
	CreateWithPostCount(ctx context.Context, room *model.ChatRoom) error
	Reactivate(ctx context.Context, roomID uint64) error
	DeactivateWithPostCount(ctx context.Context, roomID uint64, postID uint64) error
	ListByUser(ctx context.Context, userID string) ([]*model.ChatRoom, error)

	AppendMessage(ctx context.Context, msg *model.ChatMessage, preview string, toBuyer bool) error
	ResetUnread(ctx context.Context, roomID uint64, forBuyer bool) error
}

type chatRoomRepoImpl struct {
	db *gorm.DB
}

func NewChatRoomRepo(db *gorm.DB) ChatRoomRepo {
	return &chatRoomRepoImpl{db: db}
}

func (s *chatRoomRepoImpl) GetByID(ctx context.Context, roomID uint64) (*model.ChatRoom, error) {
	var room model.ChatRoom
	err := s.db.WithContext(ctx).
		Preload("Post").Preload("Buyer").Preload("Seller").
		First(&room, roomID).Error
	if err != nil {
		return nil, err
	}
	return &room, nil
}

func (s *chatRoomRepoImpl) GetByPostAndBuyer(ctx context.Context, postID uint64, buyerID string) (*model.ChatRoom, error) {
	var room model.ChatRoom
	err := s.db.WithContext(ctx).
		Preload("Post").Preload("Buyer").Preload("Seller").
		Where("post_id = ? AND buyer_id = ?", postID, buyerID).
		First(&room).Error
	if err != nil {
		return nil, err
	}
	return &room, nil
}

// CreateWithPostCount 开启事务创建房间并累加帖子的会话数
func (s *chatRoomRepoImpl) CreateWithPostCount(ctx context.Context, room *model.ChatRoom) error {
	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(room).Error; err != nil {
			return err
		}
		return tx.Model(&model.Post{}).Where("post_id = ?", room.PostID).
			Update("chat_room_count", gorm.Expr("chat_room_count + 1")).Error
	})
}

func (s *chatRoomRepoImpl) Reactivate(ctx context.Context, roomID uint64) error {
	return s.db.WithContext(ctx).Model(&model.ChatRoom{}).
		Where("room_id = ?", roomID).
		Update("activity", consts.RoomActive).Error
}

// DeactivateWithPostCount 软删除房间并回减帖子的会话数（不小于0）
func (s *chatRoomRepoImpl) DeactivateWithPostCount(ctx context.Context, roomID uint64, postID uint64) error {
	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		err := tx.Model(&model.ChatRoom{}).Where("room_id = ?", roomID).
			Update("activity", consts.RoomLeft).Error
		if err != nil {
			return err
		}
		return tx.Model(&model.Post{}).Where("post_id = ?", postID).
			Update("chat_room_count", gorm.Expr("GREATEST(chat_room_count - 1, 0)")).Error
	})
}

func (s *chatRoomRepoImpl) ListByUser(ctx context.Context, userID string) ([]*model.ChatRoom, error) {
	var rooms []*model.ChatRoom
	err := s.db.WithContext(ctx).
		Preload("Post").Preload("Buyer").Preload("Seller").
		Where("activity = ? AND (buyer_id = ? OR seller_id = ?)", consts.RoomActive, userID, userID).
		Order("last_message_time DESC").
		Find(&rooms).Error
	return rooms, err
}

// AppendMessage 核心落库逻辑：消息写入与房间预览、接收方未读数在同一事务内更新，
// 并发发送由房间行的行级锁串行化。
func (s *chatRoomRepoImpl) AppendMessage(ctx context.Context, msg *model.ChatMessage, preview string, toBuyer bool) error {
	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(msg).Error; err != nil {
			return err
		}

		updates := map[string]interface{}{
			"last_message":      preview,
			"last_message_time": time.Now(),
		}
		if toBuyer {
			updates["unread_buyer"] = gorm.Expr("unread_buyer + 1")
		} else {
			updates["unread_seller"] = gorm.Expr("unread_seller + 1")
		}

		return tx.Model(&model.ChatRoom{}).
			Where("room_id = ?", msg.RoomID).
			Updates(updates).Error
	})
}

func (s *chatRoomRepoImpl) ResetUnread(ctx context.Context, roomID uint64, forBuyer bool) error {
	column := "unread_seller"
	if forBuyer {
		column = "unread_buyer"
	}
	return s.db.WithContext(ctx).Model(&model.ChatRoom{}).
		Where("room_id = ?", roomID).
		Update(column, 0).Error
}
