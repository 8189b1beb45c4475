package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"adminhub/internal/database"
	"adminhub/internal/router"
	"adminhub/pkg/config"
	"adminhub/pkg/logger"
	"adminhub/pkg/session"

	"github.com/gin-gonic/gin"
)

func main() {
	// 加载配置
	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	// 初始化日志
	if err := logger.Initialize(cfg); err != nil {
		log.Fatalf("Failed to initialize logger: %v", err)
	}

	appLogger := logger.GetLogger()
	appLogger.Info("Starting admin backend...")

	// 初始化数据库
	if err := database.Initialize(cfg); err != nil {
		appLogger.Fatalf("Failed to initialize database: %v", err)
	}
	defer func() {
		// 关闭数据库连接
		if err := database.Close(); err != nil {
			appLogger.Error("Failed to close database:", err)
		}
	}()

	// 执行数据库迁移
	if err := database.Migrate(database.GetDB()); err != nil {
		appLogger.Fatalf("Failed to migrate database: %v", err)
	}

	// 执行种子数据初始化
	if err := seedData(context.Background(), database.GetDB(), cfg); err != nil {
		appLogger.Fatalf("Failed to initialize seed data: %v", err)
	}

	// 会话存储：Redis不可用时退化为进程内存储
	redisClient := database.NewRedisClient(cfg.Redis)
	defer redisClient.Close()

	var store session.Store = session.NewRedisStore(redisClient, cfg.Session.Prefix)
	pingRedis := func(ctx context.Context) error { return redisClient.Ping(ctx).Err() }

	pingCtx, cancel := context.WithTimeout(context.Background(), 3*time.Second)
	if err := pingRedis(pingCtx); err != nil {
		appLogger.Warnf("Redis unavailable, sessions are kept in memory: %v", err)
		memStore := session.NewMemoryStore()
		store = memStore

		// 内存存储没有TTL淘汰，定期清理过期会话
		sweeper, err := memStore.StartSweeper(cfg.Session.SweepSpec, func(removed int) {
			if removed > 0 {
				appLogger.Debugf("Swept %d expired sessions", removed)
			}
		})
		if err != nil {
			appLogger.Fatalf("Failed to start session sweeper: %v", err)
		}
		defer sweeper.Stop()
	}
	cancel()

	// 设置Gin模式
	gin.SetMode(cfg.Server.Mode)

	r := router.SetupRouter(router.Dependencies{
		Config:    cfg,
		DB:        database.GetDB(),
		Sessions:  store,
		PingRedis: pingRedis,
	})

	server := &http.Server{
		Addr:         ":" + cfg.Server.Port,
		Handler:      r,
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 10 * time.Second,
	}

	// 启动服务
	go func() {
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			appLogger.Fatalf("Failed to start server: %v", err)
		}
	}()

	appLogger.Infof("Server started on port %s", cfg.Server.Port)

	// 优雅关闭
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	appLogger.Info("Shutting down server...")
	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer shutdownCancel()
	if err := server.Shutdown(shutdownCtx); err != nil {
		appLogger.Error("Server forced to shutdown:", err)
	}
	appLogger.Info("Server exited")
}
