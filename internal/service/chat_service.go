package service

import (
	"Campusmarket/internal/api/dto"
	"Campusmarket/internal/model"
	"Campusmarket/internal/pkg/consts"
	"Campusmarket/internal/repository"
	"context"
	"errors"
	log "log/slog"
	"time"

	"gorm.io/gorm"
)

// ChatPusher 实时推送出口，由 pkg/ws 的 Hub 实现。
// 推送失败不影响已落库的消息，调用方只记日志。
type ChatPusher interface {
	BroadcastToRoom(roomID uint64, payload *dto.WSEnvelope)
	NotifyUser(userID string, payload *dto.WSEnvelope)
}

type ChatService struct {
	roomRepo repository.ChatRoomRepo
	msgRepo  repository.ChatMessageRepo
	pusher   ChatPusher
}

func NewChatService(roomRepo repository.ChatRoomRepo, msgRepo repository.ChatMessageRepo, pusher ChatPusher) *ChatService {
	return &ChatService{roomRepo: roomRepo, msgRepo: msgRepo, pusher: pusher}
}

// SendMessage 消息管道：校验 -> 事务落库（消息+预览+对方未读数） -> 房间广播 -> 私人通知。
// 图片消息的预览固定为占位符，避免把 URL 暴露在会话列表里。
func (s *ChatService) SendMessage(ctx context.Context, roomID uint64, senderID, senderName string, req *dto.SendMessageReq) (*dto.ChatMessageDTO, error) {
	room, err := s.loadRoom(ctx, roomID, senderID)
	if err != nil {
		return nil, err
	}

	msgType := model.MessageType(req.MessageType)
	if req.MessageType == "" {
		msgType = model.MsgChat
	}
	if !msgType.Valid() {
		return nil, ErrMsgTypeInvalid
	}
	if msgType == model.MsgImage && req.ImageURL == "" {
		return nil, ErrImageRefRequired
	}

	msg := &model.ChatMessage{
		RoomID:      roomID,
		SenderID:    senderID,
		SenderName:  senderName,
		Content:     req.Content,
		MessageType: msgType,
		ImageURL:    req.ImageURL,
	}

	preview := req.Content
	if msgType == model.MsgImage {
		preview = consts.ImagePreviewPlaceholder
	}

	// 接收方是买家还是卖家决定累加哪一列未读数
	toBuyer := senderID == room.SellerID
	if err := s.roomRepo.AppendMessage(ctx, msg, preview, toBuyer); err != nil {
		log.ErrorContext(ctx, "消息落库失败", "roomID", roomID, "senderID", senderID, "err", err)
		return nil, UnExpectedError
	}

	msgDTO := toMessageDTO(msg)
	s.pusher.BroadcastToRoom(roomID, &dto.WSEnvelope{Event: dto.EventMessage, Payload: msgDTO})
	s.notifyRecipient(ctx, room, msg, preview)

	return msgDTO, nil
}

// notifyRecipient 给对手方的私人通知队列推一条带全局未读总数的通知
func (s *ChatService) notifyRecipient(ctx context.Context, room *model.ChatRoom, msg *model.ChatMessage, preview string) {
	recipient := room.PeerOf(msg.SenderID)

	total, err := s.msgRepo.CountTotalUnread(ctx, recipient)
	if err != nil {
		log.ErrorContext(ctx, "统计未读总数失败", "userID", recipient, "err", err)
		total = 0
	}

	notify := &dto.NotificationDTO{
		RoomID:           room.RoomID,
		PostID:           room.PostID,
		SenderName:       msg.SenderName,
		Content:          preview,
		TotalUnreadCount: total,
		Timestamp:        msg.SentAt,
	}
	if room.Post != nil {
		notify.PostTitle = room.Post.Title
	}
	s.pusher.NotifyUser(recipient, &dto.WSEnvelope{Event: dto.EventNotify, Payload: notify})
}

// EnterRoom 入场提示只广播不落库
func (s *ChatService) EnterRoom(ctx context.Context, roomID uint64, userID, userName string) error {
	if _, err := s.loadRoom(ctx, roomID, userID); err != nil {
		return err
	}
	event := dto.NewEnterEvent(roomID, userID, userName)
	s.pusher.BroadcastToRoom(roomID, &dto.WSEnvelope{Event: dto.EventMessage, Payload: event})
	return nil
}

// GetMessages 历史消息，按发送时间倒序分页
func (s *ChatService) GetMessages(ctx context.Context, roomID uint64, userID string, page, size int) ([]*dto.ChatMessageDTO, error) {
	if _, err := s.loadRoom(ctx, roomID, userID); err != nil {
		return nil, err
	}

	messages, err := s.msgRepo.ListByRoom(ctx, roomID, page, size)
	if err != nil {
		log.ErrorContext(ctx, "查询消息历史失败", "roomID", roomID, "err", err)
		return nil, UnExpectedError
	}

	result := make([]*dto.ChatMessageDTO, 0, len(messages))
	for _, msg := range messages {
		result = append(result, toMessageDTO(msg))
	}
	return result, nil
}

// MarkAsRead 把对方发来的未读消息全部置为已读并清零自己的未读数。
// 幂等：没有可标记的消息时不推回执。
func (s *ChatService) MarkAsRead(ctx context.Context, roomID uint64, userID string) error {
	room, err := s.loadRoom(ctx, roomID, userID)
	if err != nil {
		return err
	}

	affected, err := s.msgRepo.MarkRead(ctx, roomID, userID)
	if err != nil {
		log.ErrorContext(ctx, "标记已读失败", "roomID", roomID, "userID", userID, "err", err)
		return UnExpectedError
	}
	if err := s.roomRepo.ResetUnread(ctx, roomID, room.BuyerID == userID); err != nil {
		log.ErrorContext(ctx, "清零未读数失败", "roomID", roomID, "userID", userID, "err", err)
		return UnExpectedError
	}

	if affected > 0 {
		receipt := &dto.ReadReceiptDTO{
			RoomID:      roomID,
			MessageType: string(model.MsgSystem),
			Content:     "对方已读了你的消息",
		}
		s.pusher.NotifyUser(room.PeerOf(userID), &dto.WSEnvelope{Event: dto.EventReadReceipt, Payload: receipt})
	}
	return nil
}

// GetUnreadCount 单个房间内对方发来的未读消息数
func (s *ChatService) GetUnreadCount(ctx context.Context, roomID uint64, userID string) (int64, error) {
	if _, err := s.loadRoom(ctx, roomID, userID); err != nil {
		return 0, err
	}
	count, err := s.msgRepo.CountUnread(ctx, roomID, userID)
	if err != nil {
		log.ErrorContext(ctx, "统计房间未读数失败", "roomID", roomID, "err", err)
		return 0, UnExpectedError
	}
	return count, nil
}

// GetTotalUnreadCount 全部房间的未读总数，未读角标用
func (s *ChatService) GetTotalUnreadCount(ctx context.Context, userID string) (int64, error) {
	count, err := s.msgRepo.CountTotalUnread(ctx, userID)
	if err != nil {
		log.ErrorContext(ctx, "统计未读总数失败", "userID", userID, "err", err)
		return 0, UnExpectedError
	}
	return count, nil
}

func (s *ChatService) loadRoom(ctx context.Context, roomID uint64, userID string) (*model.ChatRoom, error) {
	room, err := s.roomRepo.GetByID(ctx, roomID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrRoomNotFound
		}
		log.ErrorContext(ctx, "查询房间失败", "roomID", roomID, "err", err)
		return nil, UnExpectedError
	}
	if !room.IsParticipant(userID) {
		return nil, ForbiddenError
	}
	return room, nil
}

func toMessageDTO(msg *model.ChatMessage) *dto.ChatMessageDTO {
	sentAt := msg.SentAt
	if sentAt.IsZero() {
		sentAt = time.Now()
	}
	return &dto.ChatMessageDTO{
		MessageID:   msg.MessageID,
		RoomID:      msg.RoomID,
		SenderID:    msg.SenderID,
		SenderName:  msg.SenderName,
		Content:     msg.Content,
		MessageType: string(msg.MessageType),
		ImageURL:    msg.ImageURL,
		SentAt:      sentAt,
		IsRead:      msg.IsRead,
		ReadAt:      msg.ReadAt,
	}
}
