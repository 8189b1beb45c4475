package models

import (
	"time"
)

// TimeLayout createTime 的存储格式
const TimeLayout = "2006-01-02 15:04:05"

// BaseModel 基础模型，PK 为内部存储主键，不对外暴露
type BaseModel struct {
	PK uint `json:"-" gorm:"column:pk;primaryKey"`
}

// NowString 返回当前时间的 createTime 字符串
func NowString() string {
	return time.Now().Format(TimeLayout)
}

// 通用状态常量
const (
	StatusDisabled = 0
	StatusEnabled  = 1
)
