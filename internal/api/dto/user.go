package dto

import "time"

// RegisterReq 注册请求
type RegisterReq struct {
	StudentID string `json:"student_id" binding:"required,min=4,max=20"`
	Name      string `json:"name" binding:"required,max=100"`
	Password  string `json:"password" binding:"required,min=6,max=64"`
	Campus    string `json:"campus"`
}

// LoginReq 登录请求
type LoginReq struct {
	StudentID string `json:"student_id" binding:"required"`
	Password  string `json:"password" binding:"required"`
}

// LoginResp 登录响应
type LoginResp struct {
	Token     string `json:"token"`
	StudentID string `json:"student_id"`
	Name      string `json:"name"`
}

// UserDTO 用户信息
type UserDTO struct {
	StudentID string    `json:"student_id"`
	Name      string    `json:"name"`
	Campus    string    `json:"campus"`
	CreatedAt time.Time `json:"created_at"`
}
