package middleware

import (
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/d60-Lab/commentlog/internal/address"
	"github.com/d60-Lab/commentlog/pkg/auth"
	"github.com/d60-Lab/commentlog/pkg/response"
)

// ContextCallerKey gin 上下文中调用方地址的键
const ContextCallerKey = "caller"

// AuthRequired 校验 Bearer 令牌并写入调用方地址
func AuthRequired(signer *auth.Signer) gin.HandlerFunc {
	return func(c *gin.Context) {
		header := c.GetHeader("Authorization")
		if header == "" {
			response.Unauthorized(c, "authorization header missing")
			return
		}
		parts := strings.SplitN(header, " ", 2)
		if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") || strings.TrimSpace(parts[1]) == "" {
			response.Unauthorized(c, "invalid authorization header format")
			return
		}
		who, err := signer.Parse(strings.TrimSpace(parts[1]))
		if err != nil {
			response.Unauthorized(c, "invalid token")
			return
		}
		c.Set(ContextCallerKey, who)
		c.Next()
	}
}

// Caller 取出 AuthRequired 写入的地址
func Caller(c *gin.Context) (address.Address, bool) {
	v, ok := c.Get(ContextCallerKey)
	if !ok {
		return address.Zero, false
	}
	who, ok := v.(address.Address)
	return who, ok
}
