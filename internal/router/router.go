package router

import (
	"context"

	"adminhub/internal/handlers"
	"adminhub/internal/middleware"
	"adminhub/internal/services"
	"adminhub/pkg/config"
	"adminhub/pkg/jwt"
	"adminhub/pkg/session"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

// Dependencies 路由所需的外部依赖
type Dependencies struct {
	Config    *config.Config
	DB        *gorm.DB
	Sessions  session.Store
	PingRedis func(ctx context.Context) error
}

// SetupRouter 设置路由
func SetupRouter(deps Dependencies) *gin.Engine {
	cfg := deps.Config
	router := gin.New()

	jwtManager := jwt.NewJWTManager(cfg.JWT.SecretKey, cfg.JWT.Duration())
	sessions := session.NewManager(deps.Sessions, cfg.Session)
	auth := middleware.NewAuthMiddleware(jwtManager, cfg.Auth)

	// 中间件
	router.Use(middleware.RequestLogger())
	router.Use(middleware.ErrorHandler())
	router.Use(middleware.SetupCORS(cfg.CORS))
	router.Use(middleware.Session(sessions))
	router.Use(auth.RequireToken())

	// 服务
	ids := services.NewIDGenerator(deps.DB)
	authService := services.NewAuthService(deps.DB, cfg.Auth, jwtManager, ids)
	userService := services.NewUserService(deps.DB, cfg.Auth, ids)
	permissionService := services.NewPermissionService(deps.DB)
	roleService := services.NewRoleService(deps.DB, ids)
	menuService := services.NewMenuService(deps.DB)
	bannerService := services.NewBannerService(deps.DB, ids)

	healthHandler := handlers.NewHealthHandler(deps.DB, deps.PingRedis)
	router.GET("/health", healthHandler.Health)

	// 登录注册限流
	limiter := middleware.RateLimit(cfg.RateLimit)

	authHandler := handlers.NewAuthHandler(authService, sessions)
	userHandler := handlers.NewUserHandler(userService, permissionService)
	users := router.Group("/user")
	{
		users.POST("/login", limiter, authHandler.Login)
		users.POST("/register", limiter, authHandler.Register)
		users.POST("/logout", authHandler.Logout)

		users.GET("/list", userHandler.List)
		users.GET("/count", userHandler.Count)
		users.GET("/info", userHandler.Info)
		users.GET("/detail", userHandler.Detail)
		users.POST("/save", userHandler.Save)
		users.POST("/change_status", userHandler.ChangeStatus)
		users.POST("/reset_password", userHandler.ResetPassword)
		users.POST("/delete", userHandler.Delete)
	}

	roleHandler := handlers.NewRoleHandler(roleService)
	roles := router.Group("/role")
	{
		roles.GET("/all", roleHandler.All)
		roles.GET("/list", roleHandler.List)
		roles.GET("/detail", roleHandler.Detail)
		roles.POST("/save", roleHandler.Save)
		roles.POST("/delete", roleHandler.Delete)
		roles.POST("/set_permissions", roleHandler.SetPermissions)
	}

	menuHandler := handlers.NewMenuHandler(menuService)
	router.GET("/menu/list", menuHandler.List)

	bannerHandler := handlers.NewBannerHandler(bannerService, userService)
	banners := router.Group("/banner")
	{
		banners.GET("/list", bannerHandler.List)
		banners.GET("/publish_list", bannerHandler.PublishList)
		banners.GET("/detail", bannerHandler.Detail)
		banners.POST("/publish", bannerHandler.Publish)
		banners.POST("/top", bannerHandler.Top)
		banners.POST("/save", bannerHandler.Save)
		banners.POST("/delete", bannerHandler.Delete)
	}

	return router
}
