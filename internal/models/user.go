package models

import (
	"golang.org/x/crypto/bcrypt"
	"gorm.io/datatypes"
)

// User 用户模型
//
// user_name 只建普通索引，唯一性由注册和新增时的检查保证，编辑用户不做检查。
type User struct {
	BaseModel
	ID         int64                      `json:"id" gorm:"column:id;uniqueIndex;not null"`
	UserName   string                     `json:"userName" gorm:"column:user_name;index;size:50;not null"`
	Password   string                     `json:"-" gorm:"column:password;size:255;not null"`
	Email      string                     `json:"email" gorm:"column:email;size:100"`
	Status     int                        `json:"status" gorm:"column:status;not null"`
	FailTime   int                        `json:"failTime" gorm:"column:fail_time;not null"`
	Roles      datatypes.JSONSlice[int64] `json:"roles" gorm:"column:roles"`
	IsAgree    int                        `json:"isAgree" gorm:"column:is_agree"`
	CreateTime string                     `json:"createTime" gorm:"column:create_time;size:20;index"`
}

// TableName 表名
func (u *User) TableName() string {
	return "users"
}

// SetPassword 设置密码 - 数据操作方法
func (u *User) SetPassword(password string) error {
	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return err
	}
	u.Password = string(hashedPassword)
	return nil
}

// CheckPassword 验证密码 - 数据操作方法
func (u *User) CheckPassword(password string) bool {
	err := bcrypt.CompareHashAndPassword([]byte(u.Password), []byte(password))
	return err == nil
}

// IsEnabled 账号是否启用，只有 0 视为禁用
func (u *User) IsEnabled() bool {
	return u.Status != StatusDisabled
}
