package handler

import (
	"Campusmarket/internal/api/dto"
	"Campusmarket/internal/api/middleware"
	"Campusmarket/internal/pkg/response"
	"Campusmarket/internal/service"
	"strings"

	"github.com/gin-gonic/gin"
)

type UserHandler struct {
	userService *service.UserService
}

func NewUserHandler(userService *service.UserService) *UserHandler {
	return &UserHandler{userService: userService}
}

// Register POST /api/users/register
func (h *UserHandler) Register(c *gin.Context) {
	var req dto.RegisterReq
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, err)
		return
	}

	if err := h.userService.Register(c.Request.Context(), &req); err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, nil)
}

// Login POST /api/users/login
func (h *UserHandler) Login(c *gin.Context) {
	var req dto.LoginReq
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, err)
		return
	}

	resp, err := h.userService.Login(c.Request.Context(), &req)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, resp)
}

// Logout POST /api/users/logout
func (h *UserHandler) Logout(c *gin.Context) {
	token := strings.TrimPrefix(c.GetHeader("Authorization"), "Bearer ")
	if err := h.userService.Logout(c.Request.Context(), token); err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, nil)
}

// GetMe GET /api/users/me
func (h *UserHandler) GetMe(c *gin.Context) {
	studentID := c.GetString(middleware.CtxStudentID)
	user, err := h.userService.GetInfo(c.Request.Context(), studentID)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, user)
}
