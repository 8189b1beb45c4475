package middleware

import (
	"strings"

	"adminhub/pkg/config"
	"adminhub/pkg/errors"
	"adminhub/pkg/jwt"
	"adminhub/pkg/response"

	"github.com/gin-gonic/gin"
)

// 上下文中保存当前用户ID的键
const ContextUserID = "user_id"

// AuthMiddleware token 校验中间件
type AuthMiddleware struct {
	jwtManager *jwt.JWTManager
	cfg        config.AuthConfig
}

func NewAuthMiddleware(jwtManager *jwt.JWTManager, cfg config.AuthConfig) *AuthMiddleware {
	return &AuthMiddleware{
		jwtManager: jwtManager,
		cfg:        cfg,
	}
}

var errInvalidToken = errors.AuthToken("accessToken无效")

// RequireToken 除白名单外的所有路径都需要有效的 Bearer token
func (m *AuthMiddleware) RequireToken() gin.HandlerFunc {
	return func(c *gin.Context) {
		if m.cfg.IsAllowed(c.Request.URL.Path) {
			c.Next()
			return
		}

		// 从Authorization头获取JWT token
		authHeader := c.GetHeader("Authorization")
		if !strings.HasPrefix(authHeader, "Bearer ") {
			response.Fail(c, errInvalidToken)
			c.Abort()
			return
		}

		claims, err := m.jwtManager.VerifyToken(strings.TrimPrefix(authHeader, "Bearer "))
		if err != nil {
			response.Fail(c, errInvalidToken)
			c.Abort()
			return
		}

		c.Set(ContextUserID, claims.UserID)
		c.Next()
	}
}

// GetUserID 当前请求的用户ID，未登录时为0
func GetUserID(c *gin.Context) int64 {
	v, ok := c.Get(ContextUserID)
	if !ok {
		return 0
	}
	id, _ := v.(int64)
	return id
}
