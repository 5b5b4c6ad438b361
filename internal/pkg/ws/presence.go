package ws

// IsOnline 判断用户当前是否有活跃连接。
// 只反映本进程的连接表，仅用于展示，不作为投递或计数依据。
func (h *Hub) IsOnline(userID string) bool {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.users[userID]) > 0
}

// OnlineCount 当前在线用户数
func (h *Hub) OnlineCount() int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.users)
}
