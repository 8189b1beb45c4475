package services

import (
	"context"
	stderrors "errors"

	"adminhub/internal/models"
	"adminhub/pkg/errors"

	"gorm.io/gorm"
)

// UserInfo 当前用户信息及其有效权限
type UserInfo struct {
	*models.User
	RoleList             []string `json:"roleList"`
	RoutePermissionsList []string `json:"routePermissionsList"`
	BtnPermissionsList   []string `json:"btnPermissionsList"`
}

// PermissionService 计算用户的有效权限
type PermissionService struct {
	db *gorm.DB
}

func NewPermissionService(db *gorm.DB) *PermissionService {
	return &PermissionService{db: db}
}

// GetUserInfo 返回用户资料、角色名称和按类型拆分的权限标识
//
// 角色按用户 roles 数组的顺序处理，每个角色内按 menus 数组的顺序展开。
// 不同角色间重复的权限标识会保留。
func (s *PermissionService) GetUserInfo(ctx context.Context, userID int64) (*UserInfo, error) {
	if userID <= 0 {
		return nil, errors.Validation("获取用户信息失败")
	}

	db := s.db.WithContext(ctx)

	var user models.User
	if err := db.Where("id = ?", userID).First(&user).Error; err != nil {
		if stderrors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errors.NotFound("未找到当前用户")
		}
		return nil, errors.Unknown("查询用户失败", err)
	}

	info := &UserInfo{
		User:                 &user,
		RoleList:             []string{},
		RoutePermissionsList: []string{},
		BtnPermissionsList:   []string{},
	}

	roles, err := s.loadRoles(db, user.Roles)
	if err != nil {
		return nil, err
	}
	if len(roles) == 0 {
		return info, nil
	}

	menus, err := s.loadMenus(db, roles)
	if err != nil {
		return nil, err
	}

	for _, role := range roles {
		info.RoleList = append(info.RoleList, role.RoleName)

		seen := make(map[int64]bool, len(role.Menus))
		for _, menuID := range role.Menus {
			if seen[menuID] {
				continue
			}
			seen[menuID] = true

			menu, ok := menus[menuID]
			if !ok {
				continue
			}
			if menu.IsButton() {
				info.BtnPermissionsList = append(info.BtnPermissionsList, menu.Permissions)
			} else {
				info.RoutePermissionsList = append(info.RoutePermissionsList, menu.Permissions)
			}
		}
	}

	return info, nil
}

// loadRoles 按 ids 的顺序返回存在的角色，重复ID只保留第一次出现
func (s *PermissionService) loadRoles(db *gorm.DB, ids []int64) ([]models.Role, error) {
	if len(ids) == 0 {
		return nil, nil
	}

	var found []models.Role
	if err := db.Where("id IN ?", ids).Find(&found).Error; err != nil {
		return nil, errors.Unknown("查询角色失败", err)
	}

	byID := make(map[int64]models.Role, len(found))
	for _, r := range found {
		byID[r.ID] = r
	}

	roles := make([]models.Role, 0, len(found))
	seen := make(map[int64]bool, len(ids))
	for _, id := range ids {
		if seen[id] {
			continue
		}
		seen[id] = true
		if r, ok := byID[id]; ok {
			roles = append(roles, r)
		}
	}
	return roles, nil
}

func (s *PermissionService) loadMenus(db *gorm.DB, roles []models.Role) (map[int64]models.Menu, error) {
	var ids []int64
	for _, r := range roles {
		ids = append(ids, r.Menus...)
	}
	if len(ids) == 0 {
		return map[int64]models.Menu{}, nil
	}

	var menus []models.Menu
	if err := db.Where("id IN ?", ids).Find(&menus).Error; err != nil {
		return nil, errors.Unknown("查询权限失败", err)
	}

	result := make(map[int64]models.Menu, len(menus))
	for _, m := range menus {
		result[m.ID] = m
	}
	return result, nil
}
