package handlers

import (
	"adminhub/internal/services"
	"adminhub/pkg/logger"
	"adminhub/pkg/response"
	"adminhub/pkg/session"

	"github.com/gin-gonic/gin"
)

// AuthHandler 登录、注册、退出
type AuthHandler struct {
	authService *services.AuthService
	sessions    *session.Manager
}

func NewAuthHandler(authService *services.AuthService, sessions *session.Manager) *AuthHandler {
	return &AuthHandler{
		authService: authService,
		sessions:    sessions,
	}
}

// Login 用户登录
func (h *AuthHandler) Login(c *gin.Context) {
	var req services.LoginRequest
	if err := c.ShouldBind(&req); err != nil {
		response.BadRequest(c, "表单信息错误")
		return
	}

	result, err := h.authService.Login(c.Request.Context(), req)
	if err != nil {
		response.Fail(c, err)
		return
	}

	// 会话只做簿记，失败不影响登录
	if _, err := h.sessions.Bind(c, result.UserID); err != nil {
		logger.FromContext(c.Request.Context()).Warnf("bind session for user %d failed: %v", result.UserID, err)
	}

	response.SuccessWithMessage(c, "登录成功", result)
}

// Register 用户注册
func (h *AuthHandler) Register(c *gin.Context) {
	var req services.RegisterRequest
	if err := c.ShouldBind(&req); err != nil {
		response.BadRequest(c, "表单信息错误")
		return
	}

	if _, err := h.authService.Register(c.Request.Context(), req); err != nil {
		response.Fail(c, err)
		return
	}

	response.SuccessWithMessage(c, "用户注册成功", nil)
}

// Logout 退出登录
func (h *AuthHandler) Logout(c *gin.Context) {
	if err := h.authService.Logout(c.Request.Context()); err != nil {
		response.Fail(c, err)
		return
	}

	if err := h.sessions.Destroy(c); err != nil {
		logger.FromContext(c.Request.Context()).Warnf("destroy session failed: %v", err)
	}

	response.SuccessWithMessage(c, "退出成功", nil)
}
