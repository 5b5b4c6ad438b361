package middleware

import (
	"Campusmarket/internal/pkg/consts"
	"Campusmarket/internal/pkg/redis"
	"Campusmarket/internal/pkg/response"
	"Campusmarket/internal/pkg/security"
	log "log/slog"
	"strings"

	"github.com/gin-gonic/gin"
)

const (
	CtxStudentID = "student_id"
	CtxUserName  = "user_name"
)

// Auth 认证中间件：Bearer Token 校验 + 登出黑名单
func Auth() gin.HandlerFunc {
	return func(c *gin.Context) {
		token := extractToken(c)
		if token == "" {
			response.Fail(c, response.Unauthorized, "未登录")
			c.Abort()
			return
		}

		claims, ok := authenticate(c, token)
		if !ok {
			response.Fail(c, response.Unauthorized, "登录状态无效")
			c.Abort()
			return
		}

		c.Set(CtxStudentID, claims.StudentID)
		c.Set(CtxUserName, claims.Name)
		c.Next()
	}
}

// AuthOptional 可选认证：带合法 Token 则注入身份，否则放行为游客
func AuthOptional() gin.HandlerFunc {
	return func(c *gin.Context) {
		if token := extractToken(c); token != "" {
			if claims, ok := authenticate(c, token); ok {
				c.Set(CtxStudentID, claims.StudentID)
				c.Set(CtxUserName, claims.Name)
			}
		}
		c.Next()
	}
}

func extractToken(c *gin.Context) string {
	header := c.GetHeader("Authorization")
	if after, ok := strings.CutPrefix(header, "Bearer "); ok {
		return after
	}
	// WebSocket 握手没法带自定义 Header，降级到查询参数
	return c.Query("token")
}

func authenticate(c *gin.Context, token string) (*security.UserClaims, bool) {
	signature, err := security.ExtractSignature(token)
	if err != nil {
		return nil, false
	}

	blacklisted, err := redis.GetValue(c.Request.Context(), consts.TokenBlacklistKey+signature)
	if err != nil {
		log.ErrorContext(c.Request.Context(), "查询登出黑名单失败", "err", err)
		return nil, false
	}
	if blacklisted != "" {
		return nil, false
	}

	claims, err := security.ValidateToken(token)
	if err != nil {
		return nil, false
	}
	return claims, true
}
