package database

import (
	"fmt"

	"adminhub/pkg/config"

	"github.com/go-redis/redis/v8"
)

// NewRedisClient 按配置创建Redis客户端
func NewRedisClient(cfg config.RedisConfig) *redis.Client {
	return redis.NewClient(&redis.Options{
		Addr:     fmt.Sprintf("%s:%d", cfg.Host, cfg.Port),
		Password: cfg.Password,
		DB:       cfg.DB,
	})
}
