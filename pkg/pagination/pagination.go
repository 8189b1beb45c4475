package pagination

import (
	"strconv"

	"github.com/gin-gonic/gin"
)

// PageParams 分页参数
type PageParams struct {
	PageNumber int `json:"pageNumber" form:"pageNumber"`
	PageSize   int `json:"pageSize" form:"pageSize"`
}

// 分页配置
const (
	DefaultPageNumber = 1
	DefaultPageSize   = 10
	MaxPageSize       = 100
)

// ParsePageParams 从请求中解析分页参数
func ParsePageParams(c *gin.Context) PageParams {
	pageNumber, err := strconv.Atoi(c.DefaultQuery("pageNumber", "1"))
	if err != nil {
		pageNumber = DefaultPageNumber
	}

	pageSize, err := strconv.Atoi(c.DefaultQuery("pageSize", "10"))
	if err != nil {
		pageSize = DefaultPageSize
	}

	return New(pageNumber, pageSize)
}

// New 规范化分页参数
func New(pageNumber, pageSize int) PageParams {
	if pageNumber < 1 {
		pageNumber = DefaultPageNumber
	}
	if pageSize < 1 {
		pageSize = DefaultPageSize
	}
	if pageSize > MaxPageSize {
		pageSize = MaxPageSize
	}
	return PageParams{PageNumber: pageNumber, PageSize: pageSize}
}

// GetOffset 计算offset
func (p PageParams) GetOffset() int {
	return (p.PageNumber - 1) * p.PageSize
}

// GetLimit 计算limit
func (p PageParams) GetLimit() int {
	return p.PageSize
}
