package consts

const (
	// TokenBlacklistKey 登出后的 JWT 签名黑名单（按签名存储）
	TokenBlacklistKey = "auth:token:blacklist:"
	// ChatImageTempKey 已上传但尚未被任何消息引用的聊天图片
	ChatImageTempKey = "chat:image:temp"
)
