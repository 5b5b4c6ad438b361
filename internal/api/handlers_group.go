package api

import "Campusmarket/internal/api/handler"

// Handlers 全部 HTTP/WS 处理器的聚合，由 wire 装配
type Handlers struct {
	User *handler.UserHandler
	Post *handler.PostHandler
	Chat *handler.ChatHandler
	WS   *handler.WSHandler
}
