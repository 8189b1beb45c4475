package middleware

import (
	"adminhub/pkg/logger"
	"adminhub/pkg/response"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
)

// ErrorHandler 错误处理中间件 - 主要处理panic
func ErrorHandler() gin.HandlerFunc {
	return func(c *gin.Context) {
		defer func() {
			if err := recover(); err != nil {
				logger.GetLogger().WithFields(logrus.Fields{
					"path":       c.Request.URL.Path,
					"request_id": c.GetString(ContextRequestID),
				}).Errorf("Panic recovered: %v", err)
				response.ServerError(c, "Unknown error")
				c.Abort()
			}
		}()

		c.Next()
	}
}
