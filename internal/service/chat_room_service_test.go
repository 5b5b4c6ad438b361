package service

import (
	"Campusmarket/internal/api/dto"
	"Campusmarket/internal/model"
	"Campusmarket/internal/pkg/consts"
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"gorm.io/gorm"
)

func sellingPost() *model.Post {
	return &model.Post{
		PostID:   100,
		Title:    "二手吉他",
		Price:    500,
		WriterID: "seller01",
		Status:   consts.PostStatusSelling,
	}
}

func activeRoom() *model.ChatRoom {
	return &model.ChatRoom{
		RoomID:   1,
		PostID:   100,
		BuyerID:  "buyer01",
		SellerID: "seller01",
		Activity: consts.RoomActive,
		Post:     sellingPost(),
		Buyer:    &model.User{StudentID: "buyer01", Name: "买家"},
		Seller:   &model.User{StudentID: "seller01", Name: "卖家"},
	}
}

func TestCreateOrGetRoom(t *testing.T) {
	ctx := context.Background()

	t.Run("首次发起会话创建房间", func(t *testing.T) {
		roomRepo := new(mockChatRoomRepo)
		postRepo := new(mockPostRepo)
		svc := NewChatRoomService(roomRepo, postRepo)

		postRepo.On("GetByID", ctx, uint64(100)).Return(sellingPost(), nil)
		roomRepo.On("GetByPostAndBuyer", ctx, uint64(100), "buyer01").Return(nil, gorm.ErrRecordNotFound)
		roomRepo.On("CreateWithPostCount", ctx, mock.AnythingOfType("*model.ChatRoom")).
			Run(func(args mock.Arguments) {
				args.Get(1).(*model.ChatRoom).RoomID = 1
			}).Return(nil)
		roomRepo.On("GetByID", ctx, uint64(1)).Return(activeRoom(), nil)

		got, err := svc.CreateOrGetRoom(ctx, "buyer01", &dto.CreateRoomReq{PostID: 100})

		assert.NoError(t, err)
		assert.Equal(t, uint64(1), got.RoomID)
		assert.Equal(t, "seller01", got.SellerID)
		assert.True(t, got.IAmBuyer)
		roomRepo.AssertExpectations(t)
	})

	t.Run("重复发起会话返回既有房间", func(t *testing.T) {
		roomRepo := new(mockChatRoomRepo)
		postRepo := new(mockPostRepo)
		svc := NewChatRoomService(roomRepo, postRepo)

		postRepo.On("GetByID", ctx, uint64(100)).Return(sellingPost(), nil)
		roomRepo.On("GetByPostAndBuyer", ctx, uint64(100), "buyer01").Return(activeRoom(), nil)

		got, err := svc.CreateOrGetRoom(ctx, "buyer01", &dto.CreateRoomReq{PostID: 100})

		assert.NoError(t, err)
		assert.Equal(t, uint64(1), got.RoomID)
		roomRepo.AssertNotCalled(t, "CreateWithPostCount", mock.Anything, mock.Anything)
		roomRepo.AssertNotCalled(t, "Reactivate", mock.Anything, mock.Anything)
	})

	t.Run("已退出的房间在再次发起时复活", func(t *testing.T) {
		roomRepo := new(mockChatRoomRepo)
		postRepo := new(mockPostRepo)
		svc := NewChatRoomService(roomRepo, postRepo)

		left := activeRoom()
		left.Activity = consts.RoomLeft

		postRepo.On("GetByID", ctx, uint64(100)).Return(sellingPost(), nil)
		roomRepo.On("GetByPostAndBuyer", ctx, uint64(100), "buyer01").Return(left, nil)
		roomRepo.On("Reactivate", ctx, uint64(1)).Return(nil)

		got, err := svc.CreateOrGetRoom(ctx, "buyer01", &dto.CreateRoomReq{PostID: 100})

		assert.NoError(t, err)
		assert.Equal(t, uint64(1), got.RoomID)
		roomRepo.AssertExpectations(t)
	})

	t.Run("不能和自己的帖子发起会话", func(t *testing.T) {
		roomRepo := new(mockChatRoomRepo)
		postRepo := new(mockPostRepo)
		svc := NewChatRoomService(roomRepo, postRepo)

		postRepo.On("GetByID", ctx, uint64(100)).Return(sellingPost(), nil)

		_, err := svc.CreateOrGetRoom(ctx, "seller01", &dto.CreateRoomReq{PostID: 100})

		assert.ErrorIs(t, err, ErrSelfChat)
		roomRepo.AssertNotCalled(t, "GetByPostAndBuyer", mock.Anything, mock.Anything, mock.Anything)
	})

	t.Run("帖子不存在", func(t *testing.T) {
		roomRepo := new(mockChatRoomRepo)
		postRepo := new(mockPostRepo)
		svc := NewChatRoomService(roomRepo, postRepo)

		postRepo.On("GetByID", ctx, uint64(999)).Return(nil, gorm.ErrRecordNotFound)

		_, err := svc.CreateOrGetRoom(ctx, "buyer01", &dto.CreateRoomReq{PostID: 999})

		assert.ErrorIs(t, err, ErrPostNotFound)
	})
}

func TestGetRoom(t *testing.T) {
	ctx := context.Background()

	t.Run("未读数以查看者视角装配", func(t *testing.T) {
		roomRepo := new(mockChatRoomRepo)
		svc := NewChatRoomService(roomRepo, new(mockPostRepo))

		room := activeRoom()
		room.UnreadBuyer = 3
		room.UnreadSeller = 7
		roomRepo.On("GetByID", ctx, uint64(1)).Return(room, nil)

		asBuyer, err := svc.GetRoom(ctx, 1, "buyer01")
		assert.NoError(t, err)
		assert.Equal(t, 3, asBuyer.UnreadCount)
		assert.True(t, asBuyer.IAmBuyer)

		asSeller, err := svc.GetRoom(ctx, 1, "seller01")
		assert.NoError(t, err)
		assert.Equal(t, 7, asSeller.UnreadCount)
		assert.False(t, asSeller.IAmBuyer)
	})

	t.Run("非参与者被拒绝", func(t *testing.T) {
		roomRepo := new(mockChatRoomRepo)
		svc := NewChatRoomService(roomRepo, new(mockPostRepo))

		roomRepo.On("GetByID", ctx, uint64(1)).Return(activeRoom(), nil)

		_, err := svc.GetRoom(ctx, 1, "stranger")

		assert.ErrorIs(t, err, ForbiddenError)
	})

	t.Run("房间不存在", func(t *testing.T) {
		roomRepo := new(mockChatRoomRepo)
		svc := NewChatRoomService(roomRepo, new(mockPostRepo))

		roomRepo.On("GetByID", ctx, uint64(404)).Return(nil, gorm.ErrRecordNotFound)

		_, err := svc.GetRoom(ctx, 404, "buyer01")

		assert.ErrorIs(t, err, ErrRoomNotFound)
	})
}

func TestLeaveRoom(t *testing.T) {
	ctx := context.Background()

	t.Run("参与者退出后房间软删除", func(t *testing.T) {
		roomRepo := new(mockChatRoomRepo)
		svc := NewChatRoomService(roomRepo, new(mockPostRepo))

		roomRepo.On("GetByID", ctx, uint64(1)).Return(activeRoom(), nil)
		roomRepo.On("DeactivateWithPostCount", ctx, uint64(1), uint64(100)).Return(nil)

		err := svc.LeaveRoom(ctx, 1, "buyer01")

		assert.NoError(t, err)
		roomRepo.AssertExpectations(t)
	})

	t.Run("非参与者不能退出", func(t *testing.T) {
		roomRepo := new(mockChatRoomRepo)
		svc := NewChatRoomService(roomRepo, new(mockPostRepo))

		roomRepo.On("GetByID", ctx, uint64(1)).Return(activeRoom(), nil)

		err := svc.LeaveRoom(ctx, 1, "stranger")

		assert.ErrorIs(t, err, ForbiddenError)
		roomRepo.AssertNotCalled(t, "DeactivateWithPostCount", mock.Anything, mock.Anything, mock.Anything)
	})
}
