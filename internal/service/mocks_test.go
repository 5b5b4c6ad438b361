package service

import (
	"Campusmarket/internal/api/dto"
	"Campusmarket/internal/model"
	"context"
	"io"

	"github.com/stretchr/testify/mock"
)

type mockBlobStore struct {
	mock.Mock
}

func (m *mockBlobStore) Put(ctx context.Context, objectName string, reader io.Reader, size int64, contentType string) (string, error) {
	args := m.Called(ctx, objectName, reader, size, contentType)
	return args.String(0), args.Error(1)
}

func (m *mockBlobStore) Remove(ctx context.Context, objectName string) error {
	args := m.Called(ctx, objectName)
	return args.Error(0)
}

func (m *mockBlobStore) URL(objectName string) string {
	return "bucket/" + objectName
}

type mockUserRepo struct {
	mock.Mock
}

func (m *mockUserRepo) Create(ctx context.Context, user *model.User) error {
	args := m.Called(ctx, user)
	return args.Error(0)
}

func (m *mockUserRepo) GetByStudentID(ctx context.Context, studentID string) (*model.User, error) {
	args := m.Called(ctx, studentID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.User), args.Error(1)
}

func (m *mockUserRepo) Exists(ctx context.Context, studentID string) (bool, error) {
	args := m.Called(ctx, studentID)
	return args.Bool(0), args.Error(1)
}

type mockPostRepo struct {
	mock.Mock
}

func (m *mockPostRepo) CreateWithImages(ctx context.Context, post *model.Post, images []*model.PostImage) error {
	args := m.Called(ctx, post, images)
	return args.Error(0)
}

func (m *mockPostRepo) GetByID(ctx context.Context, postID uint64) (*model.Post, error) {
	args := m.Called(ctx, postID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Post), args.Error(1)
}

func (m *mockPostRepo) List(ctx context.Context, page, size int, sort string) ([]*model.Post, int64, error) {
	args := m.Called(ctx, page, size, sort)
	if args.Get(0) == nil {
		return nil, 0, args.Error(2)
	}
	return args.Get(0).([]*model.Post), args.Get(1).(int64), args.Error(2)
}

func (m *mockPostRepo) UpdateStatus(ctx context.Context, postID uint64, status int8) error {
	args := m.Called(ctx, postID, status)
	return args.Error(0)
}

func (m *mockPostRepo) Delete(ctx context.Context, postID uint64) error {
	args := m.Called(ctx, postID)
	return args.Error(0)
}

type mockPostLikeRepo struct {
	mock.Mock
}

func (m *mockPostLikeRepo) Like(ctx context.Context, postID uint64, userID string) error {
	args := m.Called(ctx, postID, userID)
	return args.Error(0)
}

func (m *mockPostLikeRepo) Unlike(ctx context.Context, postID uint64, userID string) error {
	args := m.Called(ctx, postID, userID)
	return args.Error(0)
}

func (m *mockPostLikeRepo) Exists(ctx context.Context, postID uint64, userID string) (bool, error) {
	args := m.Called(ctx, postID, userID)
	return args.Bool(0), args.Error(1)
}

type mockChatRoomRepo struct {
	mock.Mock
}

func (m *mockChatRoomRepo) GetByID(ctx context.Context, roomID uint64) (*model.ChatRoom, error) {
	args := m.Called(ctx, roomID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.ChatRoom), args.Error(1)
}

func (m *mockChatRoomRepo) GetByPostAndBuyer(ctx context.Context, postID uint64, buyerID string) (*model.ChatRoom, error) {
	args := m.Called(ctx, postID, buyerID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.ChatRoom), args.Error(1)
}

func (m *mockChatRoomRepo) CreateWithPostCount(ctx context.Context, room *model.ChatRoom) error {
	args := m.Called(ctx, room)
	return args.Error(0)
}

func (m *mockChatRoomRepo) Reactivate(ctx context.Context, roomID uint64) error {
	args := m.Called(ctx, roomID)
	return args.Error(0)
}

func (m *mockChatRoomRepo) DeactivateWithPostCount(ctx context.Context, roomID uint64, postID uint64) error {
	args := m.Called(ctx, roomID, postID)
	return args.Error(0)
}

func (m *mockChatRoomRepo) ListByUser(ctx context.Context, userID string) ([]*model.ChatRoom, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*model.ChatRoom), args.Error(1)
}

func (m *mockChatRoomRepo) AppendMessage(ctx context.Context, msg *model.ChatMessage, preview string, toBuyer bool) error {
	args := m.Called(ctx, msg, preview, toBuyer)
	return args.Error(0)
}

func (m *mockChatRoomRepo) ResetUnread(ctx context.Context, roomID uint64, forBuyer bool) error {
	args := m.Called(ctx, roomID, forBuyer)
	return args.Error(0)
}

type mockChatMessageRepo struct {
	mock.Mock
}

func (m *mockChatMessageRepo) ListByRoom(ctx context.Context, roomID uint64, page, size int) ([]*model.ChatMessage, error) {
	args := m.Called(ctx, roomID, page, size)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*model.ChatMessage), args.Error(1)
}

func (m *mockChatMessageRepo) MarkRead(ctx context.Context, roomID uint64, readerID string) (int64, error) {
	args := m.Called(ctx, roomID, readerID)
	return args.Get(0).(int64), args.Error(1)
}

func (m *mockChatMessageRepo) CountUnread(ctx context.Context, roomID uint64, userID string) (int64, error) {
	args := m.Called(ctx, roomID, userID)
	return args.Get(0).(int64), args.Error(1)
}

func (m *mockChatMessageRepo) CountTotalUnread(ctx context.Context, userID string) (int64, error) {
	args := m.Called(ctx, userID)
	return args.Get(0).(int64), args.Error(1)
}

func (m *mockChatMessageRepo) CountByImageURL(ctx context.Context, imageURL string) (int64, error) {
	args := m.Called(ctx, imageURL)
	return args.Get(0).(int64), args.Error(1)
}

// mockPusher 记录推送轨迹，供断言
type mockPusher struct {
	roomEvents []pushedRoomEvent
	userEvents []pushedUserEvent
}

type pushedRoomEvent struct {
	roomID  uint64
	payload *dto.WSEnvelope
}

type pushedUserEvent struct {
	userID  string
	payload *dto.WSEnvelope
}

func (m *mockPusher) BroadcastToRoom(roomID uint64, payload *dto.WSEnvelope) {
	m.roomEvents = append(m.roomEvents, pushedRoomEvent{roomID: roomID, payload: payload})
}

func (m *mockPusher) NotifyUser(userID string, payload *dto.WSEnvelope) {
	m.userEvents = append(m.userEvents, pushedUserEvent{userID: userID, payload: payload})
}
