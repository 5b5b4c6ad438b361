package model

import "time"

// MessageType 可持久化的消息类型。
// 入场提示（ENTER）只存在于推送层的事件，仓储层永远不会见到它。
type MessageType string

const (
	MsgChat       MessageType = "CHAT"
	MsgImage      MessageType = "IMAGE"
	MsgLeave      MessageType = "LEAVE"
	MsgSystem     MessageType = "SYSTEM"
	MsgPriceOffer MessageType = "PRICE_OFFER" // 历史遗留，不再产生，保留以兼容旧数据
)

// Valid 判断类型是否属于可持久化集合
func (t MessageType) Valid() bool {
	switch t {
	case MsgChat, MsgImage, MsgLeave, MsgSystem, MsgPriceOffer:
		return true
	}
	return false
}

// ChatMessage 持久化的聊天消息
type ChatMessage struct {
	MessageID   uint64      `gorm:"primaryKey;autoIncrement" json:"messageId"`
	RoomID      uint64      `gorm:"index:idx_room_sent;index:idx_room_unread;not null" json:"roomId"`
	SenderID    string      `gorm:"type:varchar(20);not null" json:"senderId"`
	SenderName  string      `gorm:"type:varchar(100);not null" json:"senderName"`
	Content     string      `gorm:"type:text;not null" json:"content"`
	MessageType MessageType `gorm:"type:varchar(20);not null;default:CHAT" json:"messageType"`
	ImageURL    string      `gorm:"type:varchar(500)" json:"imageUrl"` // 仅 IMAGE 类型使用
	SentAt      time.Time   `gorm:"index:idx_room_sent;autoCreateTime" json:"sentAt"`
	IsRead      bool        `gorm:"index:idx_room_unread;not null;default:false" json:"isRead"`
	ReadAt      *time.Time  `json:"readAt"`
}

func (ChatMessage) TableName() string { return "chat_messages" }
