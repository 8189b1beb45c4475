package services

import (
	"context"

	"adminhub/internal/models"
	"adminhub/pkg/errors"

	"gorm.io/gorm"
)

// MenuService 权限项目录
type MenuService struct {
	db *gorm.DB
}

func NewMenuService(db *gorm.DB) *MenuService {
	return &MenuService{db: db}
}

// List 全部权限项，按 sort、id 排序
func (s *MenuService) List(ctx context.Context) ([]models.Menu, error) {
	var menus []models.Menu
	if err := s.db.WithContext(ctx).Order("sort").Order("id").Find(&menus).Error; err != nil {
		return nil, errors.Unknown("查询权限列表失败", err)
	}
	if menus == nil {
		menus = []models.Menu{}
	}
	return menus, nil
}
