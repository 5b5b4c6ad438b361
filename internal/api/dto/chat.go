package dto

import (
	"fmt"
	"time"
)

// EnterEventType 入场提示只作为推送事件存在，不落库（对应 model.MessageType 以外的取值）
const EnterEventType = "ENTER"

// WS 推送信封事件
const (
	EventMessage     = "MESSAGE"      // 房间广播
	EventNotify      = "NOTIFICATION" // 私人通知队列
	EventReadReceipt = "READ_RECEIPT" // 已读回执队列
)

// CreateRoomReq 发起会话请求
type CreateRoomReq struct {
	PostID uint64 `json:"post_id" binding:"required"`
}

// SendMessageReq 发送消息请求
type SendMessageReq struct {
	Content     string `json:"content"`
	MessageType string `json:"message_type"` // 缺省 CHAT
	ImageURL    string `json:"image_url"`    // 仅 IMAGE 类型
}

// ChatRoomDTO 会话明细（以当前用户视角装配未读数）
type ChatRoomDTO struct {
	RoomID          uint64     `json:"room_id"`
	PostID          uint64     `json:"post_id"`
	PostTitle       string     `json:"post_title"`
	PostImage       string     `json:"post_image"`
	PostPrice       int        `json:"post_price"`
	BuyerID         string     `json:"buyer_id"`
	BuyerName       string     `json:"buyer_name"`
	SellerID        string     `json:"seller_id"`
	SellerName      string     `json:"seller_name"`
	LastMessage     string     `json:"last_message"`
	LastMessageTime *time.Time `json:"last_message_time"`
	UnreadCount     int        `json:"unread_count"`
	IAmBuyer        bool       `json:"i_am_buyer"`
	CreatedAt       time.Time  `json:"created_at"`
}

// ChatMessageDTO 消息明细，也是房间广播的载荷
type ChatMessageDTO struct {
	MessageID   uint64     `json:"message_id,omitempty"`
	RoomID      uint64     `json:"room_id"`
	SenderID    string     `json:"sender_id"`
	SenderName  string     `json:"sender_name"`
	Content     string     `json:"content"`
	MessageType string     `json:"message_type"`
	ImageURL    string     `json:"image_url,omitempty"`
	SentAt      time.Time  `json:"sent_at"`
	IsRead      bool       `json:"is_read"`
	ReadAt      *time.Time `json:"read_at,omitempty"`
}

// NewEnterEvent 构造入场提示事件，仅用于广播
func NewEnterEvent(roomID uint64, userID, name string) *ChatMessageDTO {
	return &ChatMessageDTO{
		RoomID:      roomID,
		SenderID:    userID,
		SenderName:  name,
		Content:     fmt.Sprintf("%s 进入了聊天室", name),
		MessageType: EnterEventType,
		SentAt:      time.Now(),
		IsRead:      true,
	}
}

// NotificationDTO 私人通知队列载荷
type NotificationDTO struct {
	RoomID           uint64    `json:"room_id"`
	PostID           uint64    `json:"post_id"`
	PostTitle        string    `json:"post_title"`
	SenderName       string    `json:"sender_name"`
	Content          string    `json:"content"`
	TotalUnreadCount int64     `json:"total_unread_count"`
	Timestamp        time.Time `json:"timestamp"`
}

// ReadReceiptDTO 已读回执载荷
type ReadReceiptDTO struct {
	RoomID      uint64 `json:"room_id"`
	MessageType string `json:"message_type"`
	Content     string `json:"content"`
}

// UnreadCountDTO 未读数
type UnreadCountDTO struct {
	UnreadCount int64 `json:"unread_count"`
}

// WSEnvelope 推送信封：三条逻辑队列共用一条连接
type WSEnvelope struct {
	Event   string      `json:"event"`
	Payload interface{} `json:"payload"`
}

// WSClientFrame 客户端上行帧
type WSClientFrame struct {
	Action      string `json:"action"` // SEND / ENTER / READ
	RoomID      uint64 `json:"room_id"`
	Content     string `json:"content"`
	MessageType string `json:"message_type"`
	ImageURL    string `json:"image_url"`
}
