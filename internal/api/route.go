package api

import (
	"Campusmarket/internal/api/middleware"
	"Campusmarket/internal/pkg/logger"

	"github.com/gin-gonic/gin"
)

// SetupRouter 注册全部路由
func SetupRouter(h *Handlers) *gin.Engine {
	r := gin.New()
	logger.SetupGin(r)
	r.Use(middleware.Trace(), middleware.Cors())

	api := r.Group("/api")
	{
		users := api.Group("/users")
		{
			users.POST("/register", h.User.Register)
			users.POST("/login", h.User.Login)
			users.POST("/logout", middleware.Auth(), h.User.Logout)
			users.GET("/me", middleware.Auth(), h.User.GetMe)
		}

		posts := api.Group("/posts")
		{
			posts.GET("", h.Post.List)
			posts.GET("/:postId", middleware.AuthOptional(), h.Post.Get)

			auth := posts.Group("", middleware.Auth())
			{
				auth.POST("", h.Post.Create)
				auth.PATCH("/:postId/status", h.Post.UpdateStatus)
				auth.DELETE("/:postId", h.Post.Delete)
				auth.POST("/:postId/like", h.Post.Like)
				auth.DELETE("/:postId/like", h.Post.Unlike)
			}
		}

		chat := api.Group("/chat", middleware.Auth())
		{
			chat.POST("/rooms", h.Chat.CreateRoom)
			chat.GET("/rooms", h.Chat.ListRooms)
			chat.GET("/rooms/:roomId", h.Chat.GetRoom)
			chat.DELETE("/rooms/:roomId", h.Chat.LeaveRoom)
			chat.POST("/rooms/:roomId/messages", h.Chat.SendMessage)
			chat.GET("/rooms/:roomId/messages", h.Chat.GetMessages)
			chat.POST("/rooms/:roomId/read", h.Chat.MarkAsRead)
			chat.GET("/rooms/:roomId/unread", h.Chat.GetUnreadCount)
			chat.GET("/unread", h.Chat.GetTotalUnreadCount)
			chat.POST("/images", h.Chat.UploadImage)
		}
	}

	r.GET("/ws/chat", middleware.Auth(), h.WS.Connect)

	return r
}
