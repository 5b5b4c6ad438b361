package ws

import (
	"Campusmarket/internal/api/dto"
	"testing"

	"github.com/goccy/go-json"
	"github.com/stretchr/testify/assert"
)

func testClient(hub *Hub, userID string) *Client {
	return NewClient(hub, nil, userID)
}

func recvEnvelope(t *testing.T, c *Client) *dto.WSEnvelope {
	t.Helper()
	select {
	case data := <-c.send:
		var env dto.WSEnvelope
		assert.NoError(t, json.Unmarshal(data, &env))
		return &env
	default:
		t.Fatal("期望收到推送但通道为空")
		return nil
	}
}

func TestHubBroadcastToRoom(t *testing.T) {
	hub := NewHub()

	a := testClient(hub, "userA")
	b := testClient(hub, "userB")
	c := testClient(hub, "userC")
	hub.Subscribe(a, 1)
	hub.Subscribe(b, 1)
	hub.Subscribe(c, 2)

	hub.BroadcastToRoom(1, &dto.WSEnvelope{Event: dto.EventMessage, Payload: "hello"})

	assert.Equal(t, dto.EventMessage, recvEnvelope(t, a).Event)
	assert.Equal(t, dto.EventMessage, recvEnvelope(t, b).Event)
	assert.Empty(t, c.send, "其他房间的连接不应收到广播")
}

func TestHubNotifyUser(t *testing.T) {
	hub := NewHub()

	// 同一用户两端登录，两端都要收到
	first := testClient(hub, "userA")
	second := testClient(hub, "userA")
	other := testClient(hub, "userB")

	hub.NotifyUser("userA", &dto.WSEnvelope{Event: dto.EventNotify, Payload: "ping"})

	assert.Equal(t, dto.EventNotify, recvEnvelope(t, first).Event)
	assert.Equal(t, dto.EventNotify, recvEnvelope(t, second).Event)
	assert.Empty(t, other.send)
}

func TestHubUnregister(t *testing.T) {
	hub := NewHub()

	a := testClient(hub, "userA")
	hub.Subscribe(a, 1)
	assert.True(t, hub.IsOnline("userA"))

	a.Close()

	assert.False(t, hub.IsOnline("userA"))
	// 注销后的广播不能触达该连接
	hub.BroadcastToRoom(1, &dto.WSEnvelope{Event: dto.EventMessage})
	hub.NotifyUser("userA", &dto.WSEnvelope{Event: dto.EventNotify})
}

func TestHubSlowClientDropsFrame(t *testing.T) {
	hub := NewHub()

	a := testClient(hub, "userA")
	hub.Subscribe(a, 1)

	// 填满发送缓冲后继续广播不阻塞
	for i := 0; i < sendBuffer+10; i++ {
		hub.BroadcastToRoom(1, &dto.WSEnvelope{Event: dto.EventMessage, Payload: i})
	}

	assert.Len(t, a.send, sendBuffer)
}

func TestHubPresence(t *testing.T) {
	hub := NewHub()

	assert.Equal(t, 0, hub.OnlineCount())
	assert.False(t, hub.IsOnline("userA"))

	a := testClient(hub, "userA")
	a2 := testClient(hub, "userA")
	testClient(hub, "userB")

	assert.Equal(t, 2, hub.OnlineCount())
	assert.True(t, hub.IsOnline("userA"))

	// 多端登录，关掉一个仍在线
	a.Close()
	assert.True(t, hub.IsOnline("userA"))
	a2.Close()
	assert.False(t, hub.IsOnline("userA"))
}
