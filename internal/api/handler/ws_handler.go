package handler

import (
	"Campusmarket/internal/api/dto"
	"Campusmarket/internal/api/middleware"
	"Campusmarket/internal/pkg/ws"
	"Campusmarket/internal/service"
	log "log/slog"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/goccy/go-json"
	"github.com/gorilla/websocket"
)

var upgrader = websocket.Upgrader{
	ReadBufferSize:  4096,
	WriteBufferSize: 4096,
	CheckOrigin: func(r *http.Request) bool {
		return true
	},
}

type WSHandler struct {
	hub         *ws.Hub
	chatService *service.ChatService
}

func NewWSHandler(hub *ws.Hub, chatService *service.ChatService) *WSHandler {
	return &WSHandler{hub: hub, chatService: chatService}
}

// Connect GET /ws/chat?token=xxx
// 认证由 Auth 中间件完成（token 走查询参数）；
// 升级后每连接一个读循环分发上行帧，一个写循环串行推送。
func (h *WSHandler) Connect(c *gin.Context) {
	studentID := c.GetString(middleware.CtxStudentID)
	userName := c.GetString(middleware.CtxUserName)

	conn, err := upgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		log.WarnContext(c.Request.Context(), "WebSocket 升级失败", "err", err)
		return
	}

	client := ws.NewClient(h.hub, conn, studentID)
	go client.WritePump()
	h.readLoop(c, client, conn, studentID, userName)
}

func (h *WSHandler) readLoop(c *gin.Context, client *ws.Client, conn *websocket.Conn, studentID, userName string) {
	defer client.Close()

	for {
		_, data, err := conn.ReadMessage()
		if err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseNormalClosure) {
				log.Warn("WebSocket 连接异常断开", "userID", studentID, "err", err)
			}
			return
		}

		var frame dto.WSClientFrame
		if err := json.Unmarshal(data, &frame); err != nil {
			log.Warn("上行帧解析失败", "userID", studentID, "err", err)
			continue
		}
		h.dispatch(c, client, studentID, userName, &frame)
	}
}

func (h *WSHandler) dispatch(c *gin.Context, client *ws.Client, studentID, userName string, frame *dto.WSClientFrame) {
	ctx := c.Request.Context()

	switch frame.Action {
	case "ENTER":
		// 权限校验通过后才订阅房间广播
		if err := h.chatService.EnterRoom(ctx, frame.RoomID, studentID, userName); err != nil {
			log.Warn("进入房间失败", "userID", studentID, "roomID", frame.RoomID, "err", err)
			return
		}
		h.hub.Subscribe(client, frame.RoomID)

	case "SEND":
		req := &dto.SendMessageReq{
			Content:     frame.Content,
			MessageType: frame.MessageType,
			ImageURL:    frame.ImageURL,
		}
		if _, err := h.chatService.SendMessage(ctx, frame.RoomID, studentID, userName, req); err != nil {
			log.Warn("消息发送失败", "userID", studentID, "roomID", frame.RoomID, "err", err)
		}

	case "READ":
		if err := h.chatService.MarkAsRead(ctx, frame.RoomID, studentID); err != nil {
			log.Warn("标记已读失败", "userID", studentID, "roomID", frame.RoomID, "err", err)
		}

	default:
		log.Warn("未知的上行动作", "userID", studentID, "action", frame.Action)
	}
}
