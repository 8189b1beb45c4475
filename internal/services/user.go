package services

import (
	"context"
	stderrors "errors"
	"strings"
	"time"

	"adminhub/internal/database"
	"adminhub/internal/models"
	"adminhub/pkg/config"
	"adminhub/pkg/errors"
	"adminhub/pkg/pagination"
	"adminhub/pkg/validate"

	"gorm.io/datatypes"
	"gorm.io/gorm"
)

// UserListQuery 用户列表筛选条件
type UserListQuery struct {
	UserName string
	Status   *int
	RoleID   int64
	pagination.PageParams
}

// UserListItem 用户列表行
type UserListItem struct {
	ID         int64  `json:"id"`
	UserName   string `json:"userName"`
	Email      string `json:"email"`
	IsAgree    int    `json:"isAgree"`
	Status     int    `json:"status"`
	RoleNames  string `json:"roleNames"`
	CreateTime string `json:"createTime"`
}

// SaveUserRequest 新增/编辑用户，ID 为 0 表示新增
type SaveUserRequest struct {
	ID       int64   `json:"id" form:"id"`
	UserName string  `json:"userName" form:"userName" validate:"required" msg:"用户名不能为空"`
	Email    string  `json:"email" form:"email"`
	Status   int     `json:"status" form:"status" validate:"oneof=0 1" msg:"用户状态只能是0或1"`
	Roles    []int64 `json:"roles" form:"roles" validate:"min=1" msg:"所属角色不能为空"`
}

// UserService 后台用户管理
type UserService struct {
	db  *gorm.DB
	cfg config.AuthConfig
	ids *IDGenerator
}

func NewUserService(db *gorm.DB, cfg config.AuthConfig, ids *IDGenerator) *UserService {
	return &UserService{
		db:  db,
		cfg: cfg,
		ids: ids,
	}
}

// listTimeLayout 列表中 createTime 的展示格式
const listTimeLayout = "2006-01-02 15:04"

// GetPageList 分页查询用户，按创建时间倒序
func (s *UserService) GetPageList(ctx context.Context, q UserListQuery) ([]UserListItem, int64, error) {
	db := s.db.WithContext(ctx)
	page := pagination.New(q.PageNumber, q.PageSize)

	query := db.Model(&models.User{})
	if q.UserName != "" {
		query = database.Contains(query, "user_name", q.UserName)
	}
	if q.Status != nil {
		query = query.Where("status = ?", *q.Status)
	}
	if q.RoleID > 0 {
		query = database.JSONArrayContains(query, "roles", q.RoleID)
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, errors.Unknown("查询用户数量失败", err)
	}

	var users []models.User
	if err := query.Order("create_time DESC").Order("id DESC").
		Offset(page.GetOffset()).Limit(page.GetLimit()).
		Find(&users).Error; err != nil {
		return nil, 0, errors.Unknown("查询用户列表失败", err)
	}

	roleNames, err := s.roleNames(db, users)
	if err != nil {
		return nil, 0, err
	}

	list := make([]UserListItem, 0, len(users))
	for _, u := range users {
		names := make([]string, 0, len(u.Roles))
		for _, id := range u.Roles {
			if name, ok := roleNames[id]; ok {
				names = append(names, name)
			}
		}
		list = append(list, UserListItem{
			ID:         u.ID,
			UserName:   u.UserName,
			Email:      u.Email,
			IsAgree:    u.IsAgree,
			Status:     u.Status,
			RoleNames:  strings.Join(names, "，"),
			CreateTime: formatListTime(u.CreateTime),
		})
	}

	return list, total, nil
}

func (s *UserService) roleNames(db *gorm.DB, users []models.User) (map[int64]string, error) {
	var ids []int64
	for _, u := range users {
		ids = append(ids, u.Roles...)
	}
	result := make(map[int64]string)
	if len(ids) == 0 {
		return result, nil
	}

	var roles []models.Role
	if err := db.Select("id", "role_name").Where("id IN ?", ids).Find(&roles).Error; err != nil {
		return nil, errors.Unknown("查询角色失败", err)
	}
	for _, r := range roles {
		result[r.ID] = r.RoleName
	}
	return result, nil
}

func formatListTime(s string) string {
	t, err := time.ParseInLocation(models.TimeLayout, s, time.Local)
	if err != nil {
		return s
	}
	return t.Format(listTimeLayout)
}

// Count 用户总数
func (s *UserService) Count(ctx context.Context) (int64, error) {
	var count int64
	if err := s.db.WithContext(ctx).Model(&models.User{}).Count(&count).Error; err != nil {
		return 0, errors.Unknown("查询用户数量失败", err)
	}
	return count, nil
}

// GetDetail 用户详情
func (s *UserService) GetDetail(ctx context.Context, userID int64) (*models.User, error) {
	if userID <= 0 {
		return nil, errors.Validation("用户id不能为空")
	}
	return s.getByID(s.db.WithContext(ctx), userID, "未找到当前用户")
}

func (s *UserService) getByID(db *gorm.DB, userID int64, notFoundMsg string) (*models.User, error) {
	var user models.User
	if err := db.Where("id = ?", userID).First(&user).Error; err != nil {
		if stderrors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errors.NotFound(notFoundMsg)
		}
		return nil, errors.Unknown("查询用户失败", err)
	}
	return &user, nil
}

// Save 新增或编辑用户
//
// 编辑时覆盖用户名、邮箱、状态、角色并清零失败次数，不重新检查用户名唯一性。
// 新增时使用默认密码。返回值表示是否为新增。
func (s *UserService) Save(ctx context.Context, req SaveUserRequest) (bool, error) {
	if err := validate.Struct(req); err != nil {
		return false, err
	}

	db := s.db.WithContext(ctx)
	if err := s.checkRoles(db, req.Roles); err != nil {
		return false, err
	}

	if req.ID > 0 {
		if _, err := s.getByID(db, req.ID, "没有找到与id对应的用户信息"); err != nil {
			return false, err
		}

		updates := map[string]interface{}{
			"user_name": req.UserName,
			"email":     req.Email,
			"status":    req.Status,
			"roles":     datatypes.JSONSlice[int64](req.Roles),
			"fail_time": 0,
		}
		if err := db.Model(&models.User{}).Where("id = ?", req.ID).Updates(updates).Error; err != nil {
			return false, errors.Unknown("编辑用户失败", err)
		}
		return false, nil
	}

	var count int64
	if err := db.Model(&models.User{}).Where("user_name = ?", req.UserName).Count(&count).Error; err != nil {
		return false, errors.Unknown("查询用户失败", err)
	}
	if count > 0 {
		return false, errors.Conflict("该用户已存在")
	}

	id, err := s.ids.Next(ctx, models.CounterUser)
	if err != nil {
		return false, err
	}

	user := &models.User{
		ID:         id,
		UserName:   req.UserName,
		Email:      req.Email,
		Status:     req.Status,
		FailTime:   0,
		Roles:      datatypes.JSONSlice[int64](req.Roles),
		IsAgree:    1,
		CreateTime: models.NowString(),
	}
	if err := user.SetPassword(s.cfg.DefaultPassword); err != nil {
		return false, errors.Unknown("密码加密失败", err)
	}
	if err := db.Create(user).Error; err != nil {
		return false, errors.Unknown("新增用户失败", err)
	}
	return true, nil
}

// checkRoles 所有角色ID都必须存在
func (s *UserService) checkRoles(db *gorm.DB, ids []int64) error {
	unique := make(map[int64]bool, len(ids))
	for _, id := range ids {
		unique[id] = true
	}

	var count int64
	if err := db.Model(&models.Role{}).Where("id IN ?", ids).Count(&count).Error; err != nil {
		return errors.Unknown("查询角色失败", err)
	}
	if int(count) != len(unique) {
		return errors.Validation("所属角色不存在")
	}
	return nil
}

// ChangeStatus 在一条UPDATE中切换启用状态并清零失败次数，返回新状态
func (s *UserService) ChangeStatus(ctx context.Context, userID int64) (int, error) {
	if userID <= 0 {
		return 0, errors.Validation("用户id不能为空")
	}

	db := s.db.WithContext(ctx)
	user, err := s.getByID(db, userID, "没有找到与id对应的用户信息")
	if err != nil {
		return 0, err
	}

	if err := db.Model(&models.User{}).Where("id = ?", user.ID).Updates(map[string]interface{}{
		"status":    gorm.Expr("CASE WHEN status <> ? THEN ? ELSE ? END", models.StatusDisabled, models.StatusDisabled, models.StatusEnabled),
		"fail_time": 0,
	}).Error; err != nil {
		return 0, errors.Unknown("修改用户状态失败", err)
	}

	updated, err := s.getByID(db, user.ID, "没有找到与id对应的用户信息")
	if err != nil {
		return 0, err
	}
	return updated.Status, nil
}

// ResetPassword 将密码重置为默认密码并清零失败次数
func (s *UserService) ResetPassword(ctx context.Context, userID int64) error {
	if userID <= 0 {
		return errors.Validation("用户id不能为空")
	}

	db := s.db.WithContext(ctx)
	user, err := s.getByID(db, userID, "没有找到与id对应的用户信息")
	if err != nil {
		return err
	}

	if err := user.SetPassword(s.cfg.DefaultPassword); err != nil {
		return errors.Unknown("密码加密失败", err)
	}

	if err := db.Model(&models.User{}).Where("id = ?", userID).
		Updates(map[string]interface{}{"password": user.Password, "fail_time": 0}).Error; err != nil {
		return errors.Unknown("重置密码失败", err)
	}
	return nil
}

// Delete 删除用户
func (s *UserService) Delete(ctx context.Context, userID int64) error {
	if userID <= 0 {
		return errors.Validation("用户id不能为空")
	}

	db := s.db.WithContext(ctx)
	if _, err := s.getByID(db, userID, "没有找到与id对应的用户信息"); err != nil {
		return err
	}

	if err := db.Where("id = ?", userID).Delete(&models.User{}).Error; err != nil {
		return errors.Unknown("删除用户失败", err)
	}
	return nil
}
