package handlers

import (
	"strconv"

	"github.com/gin-gonic/gin"
)

// UserIDRequest 仅包含用户ID的请求体
type UserIDRequest struct {
	UserID int64 `json:"userId" form:"userId"`
}

// RoleIDRequest 仅包含角色ID的请求体
type RoleIDRequest struct {
	RoleID int64 `json:"roleId" form:"roleId"`
}

// BannerIDRequest 仅包含轮播图ID的请求体
type BannerIDRequest struct {
	BannerID int64 `json:"bannerId" form:"bannerId"`
}

// queryInt64 解析查询参数，缺失或非法时返回0，交由业务层报参数错误
func queryInt64(c *gin.Context, key string) int64 {
	v, err := strconv.ParseInt(c.Query(key), 10, 64)
	if err != nil {
		return 0
	}
	return v
}

// queryOptionalInt 可选的整数筛选条件，空值表示不筛选
func queryOptionalInt(c *gin.Context, key string) *int {
	raw := c.Query(key)
	if raw == "" {
		return nil
	}
	v, err := strconv.Atoi(raw)
	if err != nil {
		return nil
	}
	return &v
}
