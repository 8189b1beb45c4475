package handlers

import (
	"adminhub/internal/services"
	"adminhub/pkg/response"

	"github.com/gin-gonic/gin"
)

type MenuHandler struct {
	menuService *services.MenuService
}

func NewMenuHandler(menuService *services.MenuService) *MenuHandler {
	return &MenuHandler{menuService: menuService}
}

// List 全部权限项
func (h *MenuHandler) List(c *gin.Context) {
	menus, err := h.menuService.List(c.Request.Context())
	if err != nil {
		response.Fail(c, err)
		return
	}
	response.Success(c, menus)
}
