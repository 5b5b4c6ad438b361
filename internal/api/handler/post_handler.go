package handler

import (
	"Campusmarket/internal/api/dto"
	"Campusmarket/internal/api/middleware"
	"Campusmarket/internal/pkg/response"
	"Campusmarket/internal/service"
	"strconv"

	"github.com/gin-gonic/gin"
)

type PostHandler struct {
	postService *service.PostService
	likeService *service.PostLikeService
}

func NewPostHandler(postService *service.PostService, likeService *service.PostLikeService) *PostHandler {
	return &PostHandler{postService: postService, likeService: likeService}
}

// Create POST /api/posts （multipart：表单字段 + images 文件）
func (h *PostHandler) Create(c *gin.Context) {
	var req dto.CreatePostReq
	if err := c.ShouldBind(&req); err != nil {
		response.Error(c, err)
		return
	}

	form, err := c.MultipartForm()
	if err != nil {
		response.Error(c, service.ErrParamInvalid)
		return
	}
	files := form.File["images"]

	studentID := c.GetString(middleware.CtxStudentID)
	post, err := h.postService.CreatePost(c.Request.Context(), studentID, &req, files)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, post)
}

// Get GET /api/posts/:postId
func (h *PostHandler) Get(c *gin.Context) {
	postID, err := parseID(c, "postId")
	if err != nil {
		response.Error(c, err)
		return
	}

	viewerID := c.GetString(middleware.CtxStudentID)
	post, err := h.postService.GetPost(c.Request.Context(), postID, viewerID)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, post)
}

// List GET /api/posts?page=0&size=20&sort=latest
func (h *PostHandler) List(c *gin.Context) {
	page, _ := strconv.Atoi(c.DefaultQuery("page", "0"))
	size, _ := strconv.Atoi(c.DefaultQuery("size", "20"))
	sort := c.DefaultQuery("sort", "latest")

	result, err := h.postService.ListPosts(c.Request.Context(), page, size, sort)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, result)
}

// UpdateStatus PATCH /api/posts/:postId/status
func (h *PostHandler) UpdateStatus(c *gin.Context) {
	postID, err := parseID(c, "postId")
	if err != nil {
		response.Error(c, err)
		return
	}

	var req dto.UpdatePostStatusReq
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, err)
		return
	}

	studentID := c.GetString(middleware.CtxStudentID)
	if err := h.postService.UpdateStatus(c.Request.Context(), postID, studentID, req.Status); err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, nil)
}

// Delete DELETE /api/posts/:postId
func (h *PostHandler) Delete(c *gin.Context) {
	postID, err := parseID(c, "postId")
	if err != nil {
		response.Error(c, err)
		return
	}

	studentID := c.GetString(middleware.CtxStudentID)
	if err := h.postService.DeletePost(c.Request.Context(), postID, studentID); err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, nil)
}

// Like POST /api/posts/:postId/like
func (h *PostHandler) Like(c *gin.Context) {
	postID, err := parseID(c, "postId")
	if err != nil {
		response.Error(c, err)
		return
	}

	studentID := c.GetString(middleware.CtxStudentID)
	if err := h.likeService.Like(c.Request.Context(), postID, studentID); err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, nil)
}

// Unlike DELETE /api/posts/:postId/like
func (h *PostHandler) Unlike(c *gin.Context) {
	postID, err := parseID(c, "postId")
	if err != nil {
		response.Error(c, err)
		return
	}

	studentID := c.GetString(middleware.CtxStudentID)
	if err := h.likeService.Unlike(c.Request.Context(), postID, studentID); err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, nil)
}

func parseID(c *gin.Context, name string) (uint64, error) {
	id, err := strconv.ParseUint(c.Param(name), 10, 64)
	if err != nil || id == 0 {
		return 0, service.ErrParamInvalid
	}
	return id, nil
}
