package ws

import (
	log "log/slog"
	"sync"
	"time"

	"github.com/gorilla/websocket"
)

const (
	writeWait = 10 * time.Second
	// sendBuffer 满了直接丢帧，慢客户端不准拖垮广播
	sendBuffer = 64
)

// Client 一条 WebSocket 连接
type Client struct {
	hub    *Hub
	conn   *websocket.Conn
	userID string
	send   chan []byte
	rooms  map[uint64]struct{}

	closeOnce sync.Once
}

func NewClient(hub *Hub, conn *websocket.Conn, userID string) *Client {
	c := &Client{
		hub:    hub,
		conn:   conn,
		userID: userID,
		send:   make(chan []byte, sendBuffer),
		rooms:  make(map[uint64]struct{}),
	}
	hub.register(c)
	return c
}

func (c *Client) UserID() string { return c.userID }

// Close 注销并关闭连接，可重复调用
func (c *Client) Close() {
	c.closeOnce.Do(func() {
		c.hub.unregister(c)
		close(c.send)
		if c.conn != nil {
			_ = c.conn.Close()
		}
	})
}

// trySend 非阻塞投递，缓冲满则丢帧
func (c *Client) trySend(data []byte) {
	select {
	case c.send <- data:
	default:
		log.Warn("发送缓冲已满，丢弃推送", "userID", c.userID)
	}
}

// WritePump 串行写出 send 通道里的帧，send 关闭后结束
func (c *Client) WritePump() {
	for data := range c.send {
		_ = c.conn.SetWriteDeadline(time.Now().Add(writeWait))
		if err := c.conn.WriteMessage(websocket.TextMessage, data); err != nil {
			log.Warn("推送写出失败", "userID", c.userID, "err", err)
			return
		}
	}
}
