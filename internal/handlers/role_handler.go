package handlers

import (
	"adminhub/internal/services"
	"adminhub/pkg/pagination"
	"adminhub/pkg/response"

	"github.com/gin-gonic/gin"
)

type RoleHandler struct {
	roleService *services.RoleService
}

func NewRoleHandler(roleService *services.RoleService) *RoleHandler {
	return &RoleHandler{roleService: roleService}
}

// All 全部角色
func (h *RoleHandler) All(c *gin.Context) {
	roles, err := h.roleService.All(c.Request.Context())
	if err != nil {
		response.Fail(c, err)
		return
	}
	response.Success(c, roles)
}

// List 角色列表
func (h *RoleHandler) List(c *gin.Context) {
	list, count, err := h.roleService.GetPageList(c.Request.Context(), services.RoleListQuery{
		RoleName:   c.Query("roleName"),
		PageParams: pagination.ParsePageParams(c),
	})
	if err != nil {
		response.Fail(c, err)
		return
	}
	response.SuccessWithPage(c, list, count)
}

// Detail 角色详情
func (h *RoleHandler) Detail(c *gin.Context) {
	role, err := h.roleService.GetDetail(c.Request.Context(), queryInt64(c, "roleId"))
	if err != nil {
		response.Fail(c, err)
		return
	}
	response.Success(c, role)
}

// Save 新增或编辑角色
func (h *RoleHandler) Save(c *gin.Context) {
	var req services.SaveRoleRequest
	if err := c.ShouldBind(&req); err != nil {
		response.BadRequest(c, "表单信息错误")
		return
	}

	created, err := h.roleService.Save(c.Request.Context(), req)
	if err != nil {
		response.Fail(c, err)
		return
	}

	if created {
		response.SuccessWithMessage(c, "角色新增成功", nil)
		return
	}
	response.SuccessWithMessage(c, "角色编辑成功", nil)
}

// Delete 删除角色
func (h *RoleHandler) Delete(c *gin.Context) {
	var req RoleIDRequest
	if err := c.ShouldBind(&req); err != nil {
		response.BadRequest(c, "表单信息错误")
		return
	}

	if err := h.roleService.Delete(c.Request.Context(), req.RoleID); err != nil {
		response.Fail(c, err)
		return
	}
	response.SuccessWithMessage(c, "角色删除成功", nil)
}

// SetPermissions 设置角色权限
func (h *RoleHandler) SetPermissions(c *gin.Context) {
	var req services.SetRolePermissionsRequest
	if err := c.ShouldBind(&req); err != nil {
		response.BadRequest(c, "表单信息错误")
		return
	}

	if err := h.roleService.SetPermissions(c.Request.Context(), req); err != nil {
		response.Fail(c, err)
		return
	}
	response.SuccessWithMessage(c, "角色权限设置成功", nil)
}
