package handlers

import (
	"context"
	"time"

	"adminhub/pkg/logger"
	"adminhub/pkg/response"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

// HealthHandler 存活检查
type HealthHandler struct {
	db        *gorm.DB
	pingRedis func(ctx context.Context) error
}

// NewHealthHandler pingRedis 为 nil 时不检查 Redis
func NewHealthHandler(db *gorm.DB, pingRedis func(ctx context.Context) error) *HealthHandler {
	return &HealthHandler{
		db:        db,
		pingRedis: pingRedis,
	}
}

// Health 检查数据库和Redis连通性，Redis不可用不影响存活状态
func (h *HealthHandler) Health(c *gin.Context) {
	ctx, cancel := context.WithTimeout(c.Request.Context(), 2*time.Second)
	defer cancel()

	data := gin.H{
		"status":    "ok",
		"timestamp": time.Now(),
		"database":  "ok",
	}

	sqlDB, err := h.db.DB()
	if err == nil {
		err = sqlDB.PingContext(ctx)
	}
	if err != nil {
		logger.FromContext(ctx).Errorf("database ping failed: %v", err)
		response.ServerError(c, "数据库不可用")
		return
	}

	if h.pingRedis != nil {
		data["redis"] = "ok"
		if err := h.pingRedis(ctx); err != nil {
			logger.FromContext(ctx).Warnf("redis ping failed: %v", err)
			data["redis"] = "unavailable"
		}
	}

	response.Success(c, data)
}
