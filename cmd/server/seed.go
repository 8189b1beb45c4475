package main

import (
	"context"
	"fmt"

	"adminhub/internal/models"
	"adminhub/internal/services"
	"adminhub/pkg/config"
	"adminhub/pkg/logger"

	"gorm.io/datatypes"
	"gorm.io/gorm"
)

// 默认权限项
var defaultMenus = []models.Menu{
	{ID: 1, ParentID: 0, Title: "首页", Path: "/home", Type: models.MenuTypeRoute, Permissions: "home", Sort: 1},
	{ID: 2, ParentID: 0, Title: "用户管理", Path: "/user", Type: models.MenuTypeRoute, Permissions: "user", Sort: 2},
	{ID: 3, ParentID: 2, Title: "新增用户", Type: models.MenuTypeButton, Permissions: "user:add", Sort: 3},
	{ID: 4, ParentID: 2, Title: "编辑用户", Type: models.MenuTypeButton, Permissions: "user:edit", Sort: 4},
	{ID: 5, ParentID: 2, Title: "删除用户", Type: models.MenuTypeButton, Permissions: "user:delete", Sort: 5},
	{ID: 6, ParentID: 0, Title: "角色管理", Path: "/role", Type: models.MenuTypeRoute, Permissions: "role", Sort: 6},
	{ID: 7, ParentID: 6, Title: "设置权限", Type: models.MenuTypeButton, Permissions: "role:permission", Sort: 7},
	{ID: 8, ParentID: 0, Title: "轮播图管理", Path: "/banner", Type: models.MenuTypeRoute, Permissions: "banner", Sort: 8},
	{ID: 9, ParentID: 8, Title: "发布轮播图", Type: models.MenuTypeButton, Permissions: "banner:publish", Sort: 9},
}

// seedData 初始化种子数据，已存在的记录跳过
func seedData(ctx context.Context, db *gorm.DB, cfg *config.Config) error {
	appLogger := logger.GetLogger()
	appLogger.Info("Starting seed data initialization...")

	ids := services.NewIDGenerator(db)
	db = db.WithContext(ctx)

	// 1. 权限项
	if err := initializeMenus(db); err != nil {
		return fmt.Errorf("初始化权限失败: %v", err)
	}

	// 2. 预置角色
	if err := initializeRoles(db); err != nil {
		return fmt.Errorf("初始化角色失败: %v", err)
	}

	// 3. 默认管理员
	if err := createDefaultAdmin(db, cfg.Auth.DefaultPassword); err != nil {
		return fmt.Errorf("创建默认管理员失败: %v", err)
	}

	// 计数器跳过已占用的ID
	for name, value := range map[string]int64{
		models.CounterMenu: int64(len(defaultMenus)),
		models.CounterRole: models.RoleIDUser,
		models.CounterUser: 1,
	} {
		if err := ids.Sync(ctx, name, value); err != nil {
			return fmt.Errorf("同步ID计数器失败: %v", err)
		}
	}

	appLogger.Info("Seed data initialization completed successfully")
	return nil
}

func initializeMenus(db *gorm.DB) error {
	for _, m := range defaultMenus {
		var count int64
		if err := db.Model(&models.Menu{}).Where("id = ?", m.ID).Count(&count).Error; err != nil {
			return err
		}
		if count > 0 {
			continue
		}

		menu := m
		if err := db.Create(&menu).Error; err != nil {
			return err
		}
	}
	return nil
}

func initializeRoles(db *gorm.DB) error {
	allMenus := make([]int64, 0, len(defaultMenus))
	for _, m := range defaultMenus {
		allMenus = append(allMenus, m.ID)
	}

	roles := []models.Role{
		{ID: models.RoleIDAdmin, RoleName: "超级管理员", Description: "拥有全部权限", Menus: datatypes.JSONSlice[int64](allMenus)},
		{ID: models.RoleIDUser, RoleName: "普通用户", Description: "注册用户默认角色", Menus: datatypes.JSONSlice[int64]{1, 8}},
	}

	for _, r := range roles {
		var count int64
		if err := db.Model(&models.Role{}).Where("id = ?", r.ID).Count(&count).Error; err != nil {
			return err
		}
		if count > 0 {
			logger.GetLogger().Infof("角色 %s 已存在，跳过创建", r.RoleName)
			continue
		}

		role := r
		role.CreateTime = models.NowString()
		if err := db.Create(&role).Error; err != nil {
			return err
		}
	}
	return nil
}

func createDefaultAdmin(db *gorm.DB, password string) error {
	var count int64
	if err := db.Model(&models.User{}).Where("user_name = ?", "admin").Count(&count).Error; err != nil {
		return err
	}
	if count > 0 {
		logger.GetLogger().Info("默认管理员已存在，跳过创建")
		return nil
	}

	admin := &models.User{
		ID:         1,
		UserName:   "admin",
		Status:     models.StatusEnabled,
		Roles:      datatypes.JSONSlice[int64]{models.RoleIDAdmin},
		IsAgree:    1,
		CreateTime: models.NowString(),
	}
	if err := admin.SetPassword(password); err != nil {
		return err
	}
	if err := db.Create(admin).Error; err != nil {
		return err
	}

	logger.GetLogger().Warn("默认管理员 admin 已创建，请尽快修改默认密码")
	return nil
}
