package wire

import (
	"Campusmarket/internal/api"
	"Campusmarket/internal/api/config"
	"Campusmarket/internal/api/handler"
	"Campusmarket/internal/job"
	"Campusmarket/internal/pkg/cron"
	"Campusmarket/internal/pkg/database"
	"Campusmarket/internal/pkg/minio"
	"Campusmarket/internal/pkg/ws"
	"Campusmarket/internal/repository"
	"Campusmarket/internal/service"
	"fmt"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

// Container 应用组件容器
type Container struct {
	Router  *gin.Engine
	DB      *gorm.DB
	Hub     *ws.Hub
	CronMgr *cron.Manager
}

// BuildContainer 手工装配全部依赖
func BuildContainer() (*Container, error) {
	db, err := database.NewGormDB(&config.Cfg.DB)
	if err != nil {
		return nil, fmt.Errorf("初始化数据库失败: %w", err)
	}

	// repository
	userRepo := repository.NewUserRepo(db)
	postRepo := repository.NewPostRepo(db)
	likeRepo := repository.NewPostLikeRepo(db)
	roomRepo := repository.NewChatRoomRepo(db)
	msgRepo := repository.NewChatMessageRepo(db)

	// 推送与对象存储
	hub := ws.NewHub()
	store := minio.NewStore()

	saga := service.NewUploadSaga(store)
	saga.MaxBatch = config.Cfg.Chat.MaxPostImages
	saga.MaxImageSize = config.Cfg.Chat.MaxImageSize

	// service
	userService := service.NewUserService(userRepo)
	postService := service.NewPostService(postRepo, likeRepo, saga)
	likeService := service.NewPostLikeService(postRepo, likeRepo)
	roomService := service.NewChatRoomService(roomRepo, postRepo)
	chatService := service.NewChatService(roomRepo, msgRepo, hub)
	mediaService := service.NewMediaService(saga)

	// handler
	handlers := &api.Handlers{
		User: handler.NewUserHandler(userService),
		Post: handler.NewPostHandler(postService, likeService),
		Chat: handler.NewChatHandler(roomService, chatService, mediaService),
		WS:   handler.NewWSHandler(hub, chatService),
	}

	// cron
	cronMgr := cron.NewManager()
	if err := cronMgr.Register("@daily", job.NewChatImageCleanJob(msgRepo, store)); err != nil {
		return nil, fmt.Errorf("注册定时任务失败: %w", err)
	}

	return &Container{
		Router:  api.SetupRouter(handlers),
		DB:      db,
		Hub:     hub,
		CronMgr: cronMgr,
	}, nil
}
