package handlers

import (
	"adminhub/internal/middleware"
	"adminhub/internal/models"
	"adminhub/internal/services"
	"adminhub/pkg/pagination"
	"adminhub/pkg/response"

	"github.com/gin-gonic/gin"
)

type UserHandler struct {
	userService       *services.UserService
	permissionService *services.PermissionService
}

func NewUserHandler(userService *services.UserService, permissionService *services.PermissionService) *UserHandler {
	return &UserHandler{
		userService:       userService,
		permissionService: permissionService,
	}
}

// List 用户列表
func (h *UserHandler) List(c *gin.Context) {
	query := services.UserListQuery{
		UserName:   c.Query("userName"),
		Status:     queryOptionalInt(c, "status"),
		RoleID:     queryInt64(c, "roleId"),
		PageParams: pagination.ParsePageParams(c),
	}

	list, count, err := h.userService.GetPageList(c.Request.Context(), query)
	if err != nil {
		response.Fail(c, err)
		return
	}

	response.SuccessWithPage(c, list, count)
}

// Count 用户总数
func (h *UserHandler) Count(c *gin.Context) {
	count, err := h.userService.Count(c.Request.Context())
	if err != nil {
		response.Fail(c, err)
		return
	}

	response.Success(c, gin.H{"count": count})
}

// Info 当前登录用户的信息和权限
func (h *UserHandler) Info(c *gin.Context) {
	info, err := h.permissionService.GetUserInfo(c.Request.Context(), middleware.GetUserID(c))
	if err != nil {
		response.Fail(c, err)
		return
	}

	response.Success(c, info)
}

// Detail 用户详情
func (h *UserHandler) Detail(c *gin.Context) {
	user, err := h.userService.GetDetail(c.Request.Context(), queryInt64(c, "userId"))
	if err != nil {
		response.Fail(c, err)
		return
	}

	response.Success(c, user)
}

// Save 新增或编辑用户
func (h *UserHandler) Save(c *gin.Context) {
	var req services.SaveUserRequest
	if err := c.ShouldBind(&req); err != nil {
		response.BadRequest(c, "表单信息错误")
		return
	}

	created, err := h.userService.Save(c.Request.Context(), req)
	if err != nil {
		response.Fail(c, err)
		return
	}

	if created {
		response.SuccessWithMessage(c, "用户信息新增成功", nil)
		return
	}
	response.SuccessWithMessage(c, "用户信息编辑成功", nil)
}

// ChangeStatus 启用/禁用用户
func (h *UserHandler) ChangeStatus(c *gin.Context) {
	var req UserIDRequest
	if err := c.ShouldBind(&req); err != nil {
		response.BadRequest(c, "表单信息错误")
		return
	}

	status, err := h.userService.ChangeStatus(c.Request.Context(), req.UserID)
	if err != nil {
		response.Fail(c, err)
		return
	}

	msg := "用户启用成功"
	if status == models.StatusDisabled {
		msg = "用户禁用成功"
	}
	response.SuccessWithMessage(c, msg, gin.H{"status": status})
}

// ResetPassword 重置为默认密码
func (h *UserHandler) ResetPassword(c *gin.Context) {
	var req UserIDRequest
	if err := c.ShouldBind(&req); err != nil {
		response.BadRequest(c, "表单信息错误")
		return
	}

	if err := h.userService.ResetPassword(c.Request.Context(), req.UserID); err != nil {
		response.Fail(c, err)
		return
	}

	response.SuccessWithMessage(c, "密码重置成功", nil)
}

// Delete 删除用户
func (h *UserHandler) Delete(c *gin.Context) {
	var req UserIDRequest
	if err := c.ShouldBind(&req); err != nil {
		response.BadRequest(c, "表单信息错误")
		return
	}

	if err := h.userService.Delete(c.Request.Context(), req.UserID); err != nil {
		response.Fail(c, err)
		return
	}

	response.SuccessWithMessage(c, "用户删除成功", nil)
}
