package testutils

import (
	"fmt"
	"sync/atomic"

	"adminhub/internal/models"

	"golang.org/x/crypto/bcrypt"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

// 夹具默认ID从较大的值开始，避免与计数器分配的ID冲突
var nextID int64 = 100000

func newID() int64 {
	return atomic.AddInt64(&nextID, 1)
}

// DefaultPassword 夹具用户的默认密码
const DefaultPassword = "password"

// CreateTestUser 创建测试用户
func CreateTestUser(db *gorm.DB, opts ...UserOption) *models.User {
	id := newID()
	hash, _ := bcrypt.GenerateFromPassword([]byte(DefaultPassword), bcrypt.MinCost)

	u := &models.User{
		ID:         id,
		UserName:   fmt.Sprintf("test_user_%d", id),
		Password:   string(hash),
		Email:      fmt.Sprintf("test_%d@example.com", id),
		Status:     models.StatusEnabled,
		Roles:      datatypes.JSONSlice[int64]{},
		IsAgree:    1,
		CreateTime: models.NowString(),
	}

	for _, opt := range opts {
		opt(u)
	}

	if err := db.Create(u).Error; err != nil {
		panic(fmt.Sprintf("Failed to create test user: %v", err))
	}
	return u
}

// UserOption 测试用户配置
type UserOption func(*models.User)

func WithUserID(id int64) UserOption {
	return func(u *models.User) { u.ID = id }
}

func WithUserName(name string) UserOption {
	return func(u *models.User) { u.UserName = name }
}

// WithPassword 设置明文密码（会被哈希）
func WithPassword(password string) UserOption {
	return func(u *models.User) {
		hash, _ := bcrypt.GenerateFromPassword([]byte(password), bcrypt.MinCost)
		u.Password = string(hash)
	}
}

func WithStatus(status int) UserOption {
	return func(u *models.User) { u.Status = status }
}

func WithFailTime(n int) UserOption {
	return func(u *models.User) { u.FailTime = n }
}

func WithRoles(ids ...int64) UserOption {
	return func(u *models.User) { u.Roles = datatypes.JSONSlice[int64](ids) }
}

func WithCreateTime(ts string) UserOption {
	return func(u *models.User) { u.CreateTime = ts }
}

// CreateTestRole 创建测试角色
func CreateTestRole(db *gorm.DB, opts ...RoleOption) *models.Role {
	id := newID()
	r := &models.Role{
		ID:         id,
		RoleName:   fmt.Sprintf("test_role_%d", id),
		Menus:      datatypes.JSONSlice[int64]{},
		CreateTime: models.NowString(),
	}

	for _, opt := range opts {
		opt(r)
	}

	if err := db.Create(r).Error; err != nil {
		panic(fmt.Sprintf("Failed to create test role: %v", err))
	}
	return r
}

// RoleOption 测试角色配置
type RoleOption func(*models.Role)

func WithRoleID(id int64) RoleOption {
	return func(r *models.Role) { r.ID = id }
}

func WithRoleName(name string) RoleOption {
	return func(r *models.Role) { r.RoleName = name }
}

func WithMenus(ids ...int64) RoleOption {
	return func(r *models.Role) { r.Menus = datatypes.JSONSlice[int64](ids) }
}

// CreateTestMenu 创建测试权限项
func CreateTestMenu(db *gorm.DB, menuType int, permissions string) *models.Menu {
	id := newID()
	m := &models.Menu{
		ID:          id,
		Title:       permissions,
		Type:        menuType,
		Permissions: permissions,
		Sort:        int(id % 1000),
	}
	if err := db.Create(m).Error; err != nil {
		panic(fmt.Sprintf("Failed to create test menu: %v", err))
	}
	return m
}

// CreateTestBanner 创建测试轮播图
func CreateTestBanner(db *gorm.DB, opts ...BannerOption) *models.Banner {
	id := newID()
	b := &models.Banner{
		ID:         id,
		Title:      fmt.Sprintf("banner_%d", id),
		ImageURL:   fmt.Sprintf("https://img.example.com/%d.png", id),
		CreateBy:   "admin",
		CreateTime: models.NowString(),
	}

	for _, opt := range opts {
		opt(b)
	}

	if err := db.Create(b).Error; err != nil {
		panic(fmt.Sprintf("Failed to create test banner: %v", err))
	}
	return b
}

// BannerOption 测试轮播图配置
type BannerOption func(*models.Banner)

func WithBannerTitle(title string) BannerOption {
	return func(b *models.Banner) { b.Title = title }
}

func WithPublish(v int) BannerOption {
	return func(b *models.Banner) { b.IsPublish = v }
}

func WithTop(v int) BannerOption {
	return func(b *models.Banner) { b.IsTop = v }
}

func WithBannerCreateTime(ts string) BannerOption {
	return func(b *models.Banner) { b.CreateTime = ts }
}
