package handlers

import (
	"adminhub/internal/middleware"
	"adminhub/internal/services"
	"adminhub/pkg/pagination"
	"adminhub/pkg/response"

	"github.com/gin-gonic/gin"
)

type BannerHandler struct {
	bannerService *services.BannerService
	userService   *services.UserService
}

func NewBannerHandler(bannerService *services.BannerService, userService *services.UserService) *BannerHandler {
	return &BannerHandler{
		bannerService: bannerService,
		userService:   userService,
	}
}

// List 轮播图列表
func (h *BannerHandler) List(c *gin.Context) {
	list, count, err := h.bannerService.GetPageList(c.Request.Context(), services.BannerListQuery{
		Title:      c.Query("title"),
		IsPublish:  queryOptionalInt(c, "isPublish"),
		PageParams: pagination.ParsePageParams(c),
	})
	if err != nil {
		response.Fail(c, err)
		return
	}
	response.SuccessWithPage(c, list, count)
}

// PublishList 已发布的轮播图，无需登录
func (h *BannerHandler) PublishList(c *gin.Context) {
	list, err := h.bannerService.GetPublishList(c.Request.Context())
	if err != nil {
		response.Fail(c, err)
		return
	}
	response.Success(c, list)
}

// Detail 轮播图详情
func (h *BannerHandler) Detail(c *gin.Context) {
	banner, err := h.bannerService.GetDetail(c.Request.Context(), queryInt64(c, "bannerId"))
	if err != nil {
		response.Fail(c, err)
		return
	}
	response.Success(c, banner)
}

// Publish 发布/取消发布
func (h *BannerHandler) Publish(c *gin.Context) {
	var req BannerIDRequest
	if err := c.ShouldBind(&req); err != nil {
		response.BadRequest(c, "表单信息错误")
		return
	}

	v, err := h.bannerService.ChangePublishStatus(c.Request.Context(), req.BannerID)
	if err != nil {
		response.Fail(c, err)
		return
	}

	msg := "轮播图发布成功"
	if v == 0 {
		msg = "轮播图取消发布成功"
	}
	response.SuccessWithMessage(c, msg, gin.H{"isPublish": v})
}

// Top 置顶/取消置顶
func (h *BannerHandler) Top(c *gin.Context) {
	var req BannerIDRequest
	if err := c.ShouldBind(&req); err != nil {
		response.BadRequest(c, "表单信息错误")
		return
	}

	v, err := h.bannerService.ChangeTopStatus(c.Request.Context(), req.BannerID)
	if err != nil {
		response.Fail(c, err)
		return
	}

	msg := "轮播图置顶成功"
	if v == 0 {
		msg = "轮播图取消置顶成功"
	}
	response.SuccessWithMessage(c, msg, gin.H{"isTop": v})
}

// Save 新增或编辑轮播图，创建人取当前登录用户
func (h *BannerHandler) Save(c *gin.Context) {
	var req services.SaveBannerRequest
	if err := c.ShouldBind(&req); err != nil {
		response.BadRequest(c, "表单信息错误")
		return
	}

	operator, err := h.userService.GetDetail(c.Request.Context(), middleware.GetUserID(c))
	if err != nil {
		response.Fail(c, err)
		return
	}

	created, err := h.bannerService.Save(c.Request.Context(), req, operator.UserName)
	if err != nil {
		response.Fail(c, err)
		return
	}

	if created {
		response.SuccessWithMessage(c, "轮播图新增成功", nil)
		return
	}
	response.SuccessWithMessage(c, "轮播图编辑成功", nil)
}

// Delete 删除轮播图
func (h *BannerHandler) Delete(c *gin.Context) {
	var req BannerIDRequest
	if err := c.ShouldBind(&req); err != nil {
		response.BadRequest(c, "表单信息错误")
		return
	}

	if err := h.bannerService.Delete(c.Request.Context(), req.BannerID); err != nil {
		response.Fail(c, err)
		return
	}
	response.SuccessWithMessage(c, "轮播图删除成功", nil)
}
