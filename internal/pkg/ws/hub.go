package ws

import (
	"Campusmarket/internal/api/dto"
	log "log/slog"
	"sync"

	"github.com/goccy/go-json"
)

// Hub 单进程内的连接注册表与推送出口，实现 service.ChatPusher。
// 三条逻辑队列（房间广播、私人通知、已读回执）共用每个连接的发送通道。
type Hub struct {
	mu sync.RWMutex

	// users: userID -> 该用户的全部连接（多端登录）
	users map[string]map[*Client]struct{}
	// rooms: roomID -> 订阅了该房间的连接
	rooms map[uint64]map[*Client]struct{}
}

func NewHub() *Hub {
	return &Hub{
		users: make(map[string]map[*Client]struct{}),
		rooms: make(map[uint64]map[*Client]struct{}),
	}
}

func (h *Hub) register(c *Client) {
	h.mu.Lock()
	defer h.mu.Unlock()

	if h.users[c.userID] == nil {
		h.users[c.userID] = make(map[*Client]struct{})
	}
	h.users[c.userID][c] = struct{}{}
	log.Info("连接注册", "userID", c.userID, "connections", len(h.users[c.userID]))
}

func (h *Hub) unregister(c *Client) {
	h.mu.Lock()
	defer h.mu.Unlock()

	if conns, ok := h.users[c.userID]; ok {
		delete(conns, c)
		if len(conns) == 0 {
			delete(h.users, c.userID)
		}
	}
	for roomID := range c.rooms {
		if subs, ok := h.rooms[roomID]; ok {
			delete(subs, c)
			if len(subs) == 0 {
				delete(h.rooms, roomID)
			}
		}
	}
	log.Info("连接注销", "userID", c.userID)
}

// Subscribe 把连接加入房间广播组，权限校验由调用方完成
func (h *Hub) Subscribe(c *Client, roomID uint64) {
	h.mu.Lock()
	defer h.mu.Unlock()

	if h.rooms[roomID] == nil {
		h.rooms[roomID] = make(map[*Client]struct{})
	}
	h.rooms[roomID][c] = struct{}{}
	c.rooms[roomID] = struct{}{}
}

// BroadcastToRoom 向房间内全部订阅连接投递
func (h *Hub) BroadcastToRoom(roomID uint64, payload *dto.WSEnvelope) {
	data, err := json.Marshal(payload)
	if err != nil {
		log.Error("推送序列化失败", "event", payload.Event, "err", err)
		return
	}

	h.mu.RLock()
	defer h.mu.RUnlock()
	for c := range h.rooms[roomID] {
		c.trySend(data)
	}
}

// NotifyUser 向某用户的全部连接投递（通知与已读回执共用）
func (h *Hub) NotifyUser(userID string, payload *dto.WSEnvelope) {
	data, err := json.Marshal(payload)
	if err != nil {
		log.Error("推送序列化失败", "event", payload.Event, "err", err)
		return
	}

	h.mu.RLock()
	defer h.mu.RUnlock()
	for c := range h.users[userID] {
		c.trySend(data)
	}
}
