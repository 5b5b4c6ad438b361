package handler

import (
	"Campusmarket/internal/api/config"
	"Campusmarket/internal/api/dto"
	"Campusmarket/internal/api/middleware"
	"Campusmarket/internal/pkg/response"
	"Campusmarket/internal/service"
	"strconv"

	"github.com/gin-gonic/gin"
)

type ChatHandler struct {
	roomService  *service.ChatRoomService
	chatService  *service.ChatService
	mediaService *service.MediaService
}

func NewChatHandler(roomService *service.ChatRoomService, chatService *service.ChatService, mediaService *service.MediaService) *ChatHandler {
	return &ChatHandler{roomService: roomService, chatService: chatService, mediaService: mediaService}
}

// CreateRoom POST /api/chat/rooms
func (h *ChatHandler) CreateRoom(c *gin.Context) {
	var req dto.CreateRoomReq
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, err)
		return
	}

	studentID := c.GetString(middleware.CtxStudentID)
	room, err := h.roomService.CreateOrGetRoom(c.Request.Context(), studentID, &req)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, room)
}

// ListRooms GET /api/chat/rooms
func (h *ChatHandler) ListRooms(c *gin.Context) {
	studentID := c.GetString(middleware.CtxStudentID)
	rooms, err := h.roomService.GetUserRooms(c.Request.Context(), studentID)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, rooms)
}

// GetRoom GET /api/chat/rooms/:roomId
func (h *ChatHandler) GetRoom(c *gin.Context) {
	roomID, err := parseID(c, "roomId")
	if err != nil {
		response.Error(c, err)
		return
	}

	studentID := c.GetString(middleware.CtxStudentID)
	room, err := h.roomService.GetRoom(c.Request.Context(), roomID, studentID)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, room)
}

// LeaveRoom DELETE /api/chat/rooms/:roomId
func (h *ChatHandler) LeaveRoom(c *gin.Context) {
	roomID, err := parseID(c, "roomId")
	if err != nil {
		response.Error(c, err)
		return
	}

	studentID := c.GetString(middleware.CtxStudentID)
	if err := h.roomService.LeaveRoom(c.Request.Context(), roomID, studentID); err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, nil)
}

// SendMessage POST /api/chat/rooms/:roomId/messages （WS 之外的发送通道）
func (h *ChatHandler) SendMessage(c *gin.Context) {
	roomID, err := parseID(c, "roomId")
	if err != nil {
		response.Error(c, err)
		return
	}

	var req dto.SendMessageReq
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, err)
		return
	}

	studentID := c.GetString(middleware.CtxStudentID)
	userName := c.GetString(middleware.CtxUserName)
	msg, err := h.chatService.SendMessage(c.Request.Context(), roomID, studentID, userName, &req)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, msg)
}

// GetMessages GET /api/chat/rooms/:roomId/messages?page=0&size=50
func (h *ChatHandler) GetMessages(c *gin.Context) {
	roomID, err := parseID(c, "roomId")
	if err != nil {
		response.Error(c, err)
		return
	}

	page, _ := strconv.Atoi(c.DefaultQuery("page", "0"))
	size, _ := strconv.Atoi(c.DefaultQuery("size", strconv.Itoa(config.Cfg.Chat.HistoryPageSize)))
	if page < 0 {
		page = 0
	}
	if size <= 0 || size > 100 {
		size = config.Cfg.Chat.HistoryPageSize
	}

	studentID := c.GetString(middleware.CtxStudentID)
	messages, err := h.chatService.GetMessages(c.Request.Context(), roomID, studentID, page, size)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, messages)
}

// MarkAsRead POST /api/chat/rooms/:roomId/read
func (h *ChatHandler) MarkAsRead(c *gin.Context) {
	roomID, err := parseID(c, "roomId")
	if err != nil {
		response.Error(c, err)
		return
	}

	studentID := c.GetString(middleware.CtxStudentID)
	if err := h.chatService.MarkAsRead(c.Request.Context(), roomID, studentID); err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, nil)
}

// GetUnreadCount GET /api/chat/rooms/:roomId/unread
func (h *ChatHandler) GetUnreadCount(c *gin.Context) {
	roomID, err := parseID(c, "roomId")
	if err != nil {
		response.Error(c, err)
		return
	}

	studentID := c.GetString(middleware.CtxStudentID)
	count, err := h.chatService.GetUnreadCount(c.Request.Context(), roomID, studentID)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, dto.UnreadCountDTO{UnreadCount: count})
}

// GetTotalUnreadCount GET /api/chat/unread
func (h *ChatHandler) GetTotalUnreadCount(c *gin.Context) {
	studentID := c.GetString(middleware.CtxStudentID)
	count, err := h.chatService.GetTotalUnreadCount(c.Request.Context(), studentID)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, dto.UnreadCountDTO{UnreadCount: count})
}

// UploadImage POST /api/chat/images （单图，字段名 image）
func (h *ChatHandler) UploadImage(c *gin.Context) {
	fh, err := c.FormFile("image")
	if err != nil {
		response.Error(c, service.ErrEmptyFile)
		return
	}

	result, err := h.mediaService.UploadChatImage(c.Request.Context(), fh)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, result)
}
