package services

import (
	"context"
	stderrors "errors"

	"adminhub/internal/database"
	"adminhub/internal/models"
	"adminhub/pkg/errors"
	"adminhub/pkg/pagination"
	"adminhub/pkg/validate"

	"gorm.io/datatypes"
	"gorm.io/gorm"
)

// RoleListQuery 角色列表筛选条件
type RoleListQuery struct {
	RoleName string
	pagination.PageParams
}

// RoleOption 下拉选项
type RoleOption struct {
	ID       int64  `json:"id"`
	RoleName string `json:"roleName"`
}

// RoleListItem 角色列表行
type RoleListItem struct {
	models.Role
	UserCount int64 `json:"userCount"`
}

// SaveRoleRequest 新增/编辑角色
type SaveRoleRequest struct {
	ID          int64  `json:"id" form:"id"`
	RoleName    string `json:"roleName" form:"roleName" validate:"required" msg:"角色名称不能为空"`
	Description string `json:"description" form:"description"`
}

// SetRolePermissionsRequest 设置角色权限，Menus 的顺序即权限展开顺序
type SetRolePermissionsRequest struct {
	RoleID int64   `json:"roleId" form:"roleId" validate:"gt=0" msg:"角色id不能为空"`
	Menus  []int64 `json:"menus" form:"menus"`
}

type RoleService struct {
	db  *gorm.DB
	ids *IDGenerator
}

func NewRoleService(db *gorm.DB, ids *IDGenerator) *RoleService {
	return &RoleService{
		db:  db,
		ids: ids,
	}
}

// All 所有角色
func (s *RoleService) All(ctx context.Context) ([]RoleOption, error) {
	var roles []RoleOption
	if err := s.db.WithContext(ctx).Model(&models.Role{}).
		Select("id", "role_name").Order("id").Find(&roles).Error; err != nil {
		return nil, errors.Unknown("查询角色失败", err)
	}
	if roles == nil {
		roles = []RoleOption{}
	}
	return roles, nil
}

// GetPageList 分页查询角色，附带每个角色的用户数
func (s *RoleService) GetPageList(ctx context.Context, q RoleListQuery) ([]RoleListItem, int64, error) {
	db := s.db.WithContext(ctx)
	page := pagination.New(q.PageNumber, q.PageSize)

	query := db.Model(&models.Role{})
	if q.RoleName != "" {
		query = database.Contains(query, "role_name", q.RoleName)
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, errors.Unknown("查询角色数量失败", err)
	}

	var roles []models.Role
	if err := query.Order("create_time DESC").Order("id DESC").
		Offset(page.GetOffset()).Limit(page.GetLimit()).
		Find(&roles).Error; err != nil {
		return nil, 0, errors.Unknown("查询角色列表失败", err)
	}

	list := make([]RoleListItem, 0, len(roles))
	for _, r := range roles {
		count, err := s.userCount(db, r.ID)
		if err != nil {
			return nil, 0, err
		}
		list = append(list, RoleListItem{Role: r, UserCount: count})
	}
	return list, total, nil
}

func (s *RoleService) userCount(db *gorm.DB, roleID int64) (int64, error) {
	var count int64
	if err := database.JSONArrayContains(db.Model(&models.User{}), "roles", roleID).
		Count(&count).Error; err != nil {
		return 0, errors.Unknown("查询角色用户数失败", err)
	}
	return count, nil
}

// GetDetail 角色详情
func (s *RoleService) GetDetail(ctx context.Context, roleID int64) (*models.Role, error) {
	if roleID <= 0 {
		return nil, errors.Validation("角色id不能为空")
	}
	return s.getByID(s.db.WithContext(ctx), roleID)
}

func (s *RoleService) getByID(db *gorm.DB, roleID int64) (*models.Role, error) {
	var role models.Role
	if err := db.Where("id = ?", roleID).First(&role).Error; err != nil {
		if stderrors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errors.NotFound("没有找到与id对应的角色信息")
		}
		return nil, errors.Unknown("查询角色失败", err)
	}
	return &role, nil
}

// Save 新增或编辑角色，角色名称全局唯一。返回值表示是否为新增
func (s *RoleService) Save(ctx context.Context, req SaveRoleRequest) (bool, error) {
	if err := validate.Struct(req); err != nil {
		return false, err
	}

	db := s.db.WithContext(ctx)

	var count int64
	if err := db.Model(&models.Role{}).
		Where("role_name = ? AND id <> ?", req.RoleName, req.ID).
		Count(&count).Error; err != nil {
		return false, errors.Unknown("查询角色失败", err)
	}
	if count > 0 {
		return false, errors.Conflict("该角色已存在")
	}

	if req.ID > 0 {
		if _, err := s.getByID(db, req.ID); err != nil {
			return false, err
		}
		if err := db.Model(&models.Role{}).Where("id = ?", req.ID).
			Updates(map[string]interface{}{
				"role_name":   req.RoleName,
				"description": req.Description,
			}).Error; err != nil {
			return false, errors.Unknown("编辑角色失败", err)
		}
		return false, nil
	}

	id, err := s.ids.Next(ctx, models.CounterRole)
	if err != nil {
		return false, err
	}

	role := &models.Role{
		ID:          id,
		RoleName:    req.RoleName,
		Description: req.Description,
		Menus:       datatypes.JSONSlice[int64]{},
		CreateTime:  models.NowString(),
	}
	if err := db.Create(role).Error; err != nil {
		return false, errors.Unknown("新增角色失败", err)
	}
	return true, nil
}

// Delete 删除角色，仍有用户持有该角色时拒绝
func (s *RoleService) Delete(ctx context.Context, roleID int64) error {
	if roleID <= 0 {
		return errors.Validation("角色id不能为空")
	}

	db := s.db.WithContext(ctx)
	if _, err := s.getByID(db, roleID); err != nil {
		return err
	}

	count, err := s.userCount(db, roleID)
	if err != nil {
		return err
	}
	if count > 0 {
		return errors.Conflict("该角色下存在用户，无法删除")
	}

	if err := db.Where("id = ?", roleID).Delete(&models.Role{}).Error; err != nil {
		return errors.Unknown("删除角色失败", err)
	}
	return nil
}

// SetPermissions 覆盖角色的权限列表
func (s *RoleService) SetPermissions(ctx context.Context, req SetRolePermissionsRequest) error {
	if err := validate.Struct(req); err != nil {
		return err
	}

	db := s.db.WithContext(ctx)
	if _, err := s.getByID(db, req.RoleID); err != nil {
		return err
	}

	menus := req.Menus
	if menus == nil {
		menus = []int64{}
	}

	if len(menus) > 0 {
		unique := make(map[int64]bool, len(menus))
		for _, id := range menus {
			unique[id] = true
		}
		var count int64
		if err := db.Model(&models.Menu{}).Where("id IN ?", menus).Count(&count).Error; err != nil {
			return errors.Unknown("查询权限失败", err)
		}
		if int(count) != len(unique) {
			return errors.Validation("权限不存在")
		}
	}

	if err := db.Model(&models.Role{}).Where("id = ?", req.RoleID).
		Update("menus", datatypes.JSONSlice[int64](menus)).Error; err != nil {
		return errors.Unknown("设置角色权限失败", err)
	}
	return nil
}
