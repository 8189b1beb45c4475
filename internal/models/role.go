package models

import "gorm.io/datatypes"

// Role 角色模型，Menus 保存有序的菜单ID
type Role struct {
	BaseModel
	ID          int64                      `json:"id" gorm:"column:id;uniqueIndex;not null"`
	RoleName    string                     `json:"roleName" gorm:"column:role_name;uniqueIndex;size:50;not null"`
	Description string                     `json:"description" gorm:"column:description;size:255"`
	Menus       datatypes.JSONSlice[int64] `json:"menus" gorm:"column:menus"`
	CreateTime  string                     `json:"createTime" gorm:"column:create_time;size:20;index"`
}

func (r *Role) TableName() string {
	return "roles"
}

// 系统预置角色
const (
	RoleIDAdmin = 1 // 超级管理员
	RoleIDUser  = 2 // 普通用户
)
