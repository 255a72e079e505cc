package gateway

import (
	"crypto/subtle"
	"strings"
)

const bearerPrefix = "Bearer "

// BearerToken 从 Authorization 头提取 token，前缀不匹配时返回空串
func BearerToken(header string) string {
	if !strings.HasPrefix(header, bearerPrefix) {
		return ""
	}
	return header[len(bearerPrefix):]
}

// AuthGate 共享密钥鉴权
type AuthGate struct {
	secret string
}

// NewAuthGate 创建鉴权器
func NewAuthGate(secret string) *AuthGate {
	return &AuthGate{secret: secret}
}

// Authorize 校验 Authorization 头；空 token 一律拒绝
func (g *AuthGate) Authorize(header string) bool {
	token := BearerToken(header)
	if token == "" || g == nil || g.secret == "" {
		return false
	}
	return subtle.ConstantTimeCompare([]byte(token), []byte(g.secret)) == 1
}
