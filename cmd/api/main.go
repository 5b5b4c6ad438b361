package main

import (
	"Campusmarket/internal/api/config"
	"Campusmarket/internal/model"
	"Campusmarket/internal/pkg/logger"
	"Campusmarket/internal/pkg/minio"
	"Campusmarket/internal/pkg/redis"
	"Campusmarket/internal/wire"
	"context"
	"errors"
	"fmt"
	log "log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"golang.org/x/sync/errgroup"
)

func main() {
	logger.InitLogger()

	if err := config.LoadConfig(); err != nil {
		log.Error("加载配置失败", "err", err)
		os.Exit(1)
	}

	if err := redis.InitRedis(config.Cfg.Redis); err != nil {
		log.Error("初始化 Redis 失败", "err", err)
		os.Exit(1)
	}

	if err := minio.Init(); err != nil {
		log.Error("初始化 MinIO 失败", "err", err)
		os.Exit(1)
	}

	container, err := wire.BuildContainer()
	if err != nil {
		log.Error("装配失败", "err", err)
		os.Exit(1)
	}

	if err := container.DB.AutoMigrate(
		&model.User{},
		&model.Post{},
		&model.PostImage{},
		&model.PostLike{},
		&model.ChatRoom{},
		&model.ChatMessage{},
	); err != nil {
		log.Error("数据库迁移失败", "err", err)
		os.Exit(1)
	}

	container.CronMgr.Start()

	srv := &http.Server{
		Addr:    fmt.Sprintf(":%d", config.Cfg.Server.Port),
		Handler: container.Router,
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	g, gCtx := errgroup.WithContext(ctx)

	g.Go(func() error {
		log.Info("服务启动", "addr", srv.Addr)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	})

	g.Go(func() error {
		<-gCtx.Done()
		log.Info("收到退出信号，开始优雅关闭")

		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()

		container.CronMgr.Stop()
		return srv.Shutdown(shutdownCtx)
	})

	if err := g.Wait(); err != nil {
		log.Error("服务异常退出", "err", err)
		os.Exit(1)
	}
	log.Info("服务已退出")
}
