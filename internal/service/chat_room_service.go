package service

import (
	"Campusmarket/internal/api/dto"
	"Campusmarket/internal/model"
	"Campusmarket/internal/pkg/consts"
	"Campusmarket/internal/repository"
	"context"
	"errors"
	log "log/slog"

	"gorm.io/gorm"
)

type ChatRoomService struct {
	roomRepo repository.ChatRoomRepo
	postRepo repository.PostRepo
}

func NewChatRoomService(roomRepo repository.ChatRoomRepo, postRepo repository.PostRepo) *ChatRoomService {
	return &ChatRoomService{roomRepo: roomRepo, postRepo: postRepo}
}

// CreateOrGetRoom 对同一(帖子, 买家)幂等：已有房间直接返回，已退出的复活
func (s *ChatRoomService) CreateOrGetRoom(ctx context.Context, buyerID string, req *dto.CreateRoomReq) (*dto.ChatRoomDTO, error) {
	post, err := s.postRepo.GetByID(ctx, req.PostID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrPostNotFound
		}
		log.ErrorContext(ctx, "查询帖子失败", "postID", req.PostID, "err", err)
		return nil, UnExpectedError
	}
	if post.WriterID == buyerID {
		return nil, ErrSelfChat
	}

	room, err := s.roomRepo.GetByPostAndBuyer(ctx, req.PostID, buyerID)
	if err == nil {
		if room.Activity == consts.RoomLeft {
			if err := s.roomRepo.Reactivate(ctx, room.RoomID); err != nil {
				log.ErrorContext(ctx, "复活房间失败", "roomID", room.RoomID, "err", err)
				return nil, UnExpectedError
			}
			room.Activity = consts.RoomActive
		}
		return s.toRoomDTO(room, buyerID), nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		log.ErrorContext(ctx, "查询房间失败", "postID", req.PostID, "buyerID", buyerID, "err", err)
		return nil, UnExpectedError
	}

	room = &model.ChatRoom{
		PostID:   req.PostID,
		BuyerID:  buyerID,
		SellerID: post.WriterID,
		Activity: consts.RoomActive,
	}
	if err := s.roomRepo.CreateWithPostCount(ctx, room); err != nil {
		log.ErrorContext(ctx, "创建房间失败", "postID", req.PostID, "buyerID", buyerID, "err", err)
		return nil, UnExpectedError
	}

	// 重新加载带关联的完整记录
	full, err := s.roomRepo.GetByID(ctx, room.RoomID)
	if err != nil {
		log.ErrorContext(ctx, "回查房间失败", "roomID", room.RoomID, "err", err)
		return nil, UnExpectedError
	}
	return s.toRoomDTO(full, buyerID), nil
}

// GetRoom 房间明细，非参与者拒绝访问
func (s *ChatRoomService) GetRoom(ctx context.Context, roomID uint64, userID string) (*dto.ChatRoomDTO, error) {
	room, err := s.loadRoom(ctx, roomID, userID)
	if err != nil {
		return nil, err
	}
	return s.toRoomDTO(room, userID), nil
}

// GetUserRooms 当前用户的活跃会话列表，按最后消息时间倒序
func (s *ChatRoomService) GetUserRooms(ctx context.Context, userID string) ([]*dto.ChatRoomDTO, error) {
	rooms, err := s.roomRepo.ListByUser(ctx, userID)
	if err != nil {
		log.ErrorContext(ctx, "查询会话列表失败", "userID", userID, "err", err)
		return nil, UnExpectedError
	}

	result := make([]*dto.ChatRoomDTO, 0, len(rooms))
	for _, room := range rooms {
		result = append(result, s.toRoomDTO(room, userID))
	}
	return result, nil
}

// LeaveRoom 软删除会话并回减帖子会话数，消息历史保留
func (s *ChatRoomService) LeaveRoom(ctx context.Context, roomID uint64, userID string) error {
	room, err := s.loadRoom(ctx, roomID, userID)
	if err != nil {
		return err
	}
	if err := s.roomRepo.DeactivateWithPostCount(ctx, room.RoomID, room.PostID); err != nil {
		log.ErrorContext(ctx, "退出房间失败", "roomID", roomID, "err", err)
		return UnExpectedError
	}
	return nil
}

func (s *ChatRoomService) loadRoom(ctx context.Context, roomID uint64, userID string) (*model.ChatRoom, error) {
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

// toRoomDTO 以 viewer 视角装配：未读数取自己那一列
func (s *ChatRoomService) toRoomDTO(room *model.ChatRoom, viewerID string) *dto.ChatRoomDTO {
	d := &dto.ChatRoomDTO{
		RoomID:          room.RoomID,
		PostID:          room.PostID,
		BuyerID:         room.BuyerID,
		SellerID:        room.SellerID,
		LastMessage:     room.LastMessage,
		LastMessageTime: room.LastMessageTime,
		UnreadCount:     room.UnreadOf(viewerID),
		IAmBuyer:        room.BuyerID == viewerID,
		CreatedAt:       room.CreatedAt,
	}
	if room.Post != nil {
		d.PostTitle = room.Post.Title
		d.PostImage = room.Post.ImageURL
		d.PostPrice = room.Post.Price
	}
	if room.Buyer != nil {
		d.BuyerName = room.Buyer.Name
	}
	if room.Seller != nil {
		d.SellerName = room.Seller.Name
	}
	return d
}
