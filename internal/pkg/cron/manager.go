package cron

import (
	log "log/slog"

	"github.com/robfig/cron/v3"
)

// Manager 定时任务管理器
type Manager struct {
	c *cron.Cron
}

func NewManager() *Manager {
	return &Manager{c: cron.New()}
}

// Register 按 cron 表达式注册任务
func (m *Manager) Register(spec string, job cron.Job) error {
	id, err := m.c.AddJob(spec, job)
	if err != nil {
		return err
	}
	log.Info("定时任务已注册", "spec", spec, "entryID", id)
	return nil
}

func (m *Manager) Start() {
	m.c.Start()
}

// Stop 停止调度并等待在途任务结束
func (m *Manager) Stop() {
	ctx := m.c.Stop()
	<-ctx.Done()
}
