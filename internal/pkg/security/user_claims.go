package security

import (
	"time"

	"github.com/golang-jwt/jwt/v5"
)

const (
	JWTSecret         string = "Campusmarket"
	JWTExpirationTime        = time.Hour * 24
)

// UserClaims 定义了 Token 中需要包含的业务信息
type UserClaims struct {
	StudentID string `json:"student_id"`
	Name      string `json:"name"`
	jwt.RegisteredClaims
}
