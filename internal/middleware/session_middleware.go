package middleware

import (
	"adminhub/pkg/logger"
	"adminhub/pkg/session"

	"github.com/gin-gonic/gin"
)

// Session 刷新请求携带的会话，存储异常只记录日志
func Session(m *session.Manager) gin.HandlerFunc {
	return func(c *gin.Context) {
		if err := m.Touch(c); err != nil {
			logger.FromContext(c.Request.Context()).Warnf("session refresh failed: %v", err)
		}
		c.Next()
	}
}
