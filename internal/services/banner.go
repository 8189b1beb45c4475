package services

import (
	"context"
	stderrors "errors"

	"adminhub/internal/database"
	"adminhub/internal/models"
	"adminhub/pkg/errors"
	"adminhub/pkg/pagination"
	"adminhub/pkg/validate"

	"gorm.io/gorm"
)

// BannerListQuery 轮播图列表筛选条件
type BannerListQuery struct {
	Title     string
	IsPublish *int
	pagination.PageParams
}

// SaveBannerRequest 新增/编辑轮播图
type SaveBannerRequest struct {
	ID       int64  `json:"id" form:"id"`
	Title    string `json:"title" form:"title" validate:"required" msg:"轮播图标题不能为空"`
	ImageURL string `json:"imageUrl" form:"imageUrl" validate:"required" msg:"轮播图图片不能为空"`
	LinkURL  string `json:"linkUrl" form:"linkUrl"`
	Sort     int    `json:"sort" form:"sort"`
}

type BannerService struct {
	db  *gorm.DB
	ids *IDGenerator
}

func NewBannerService(db *gorm.DB, ids *IDGenerator) *BannerService {
	return &BannerService{
		db:  db,
		ids: ids,
	}
}

// 置顶优先，其次按创建时间倒序
func bannerOrder(db *gorm.DB) *gorm.DB {
	return db.Order("is_top DESC").Order("create_time DESC").Order("id DESC")
}

// GetPageList 分页查询轮播图
func (s *BannerService) GetPageList(ctx context.Context, q BannerListQuery) ([]models.Banner, int64, error) {
	db := s.db.WithContext(ctx)
	page := pagination.New(q.PageNumber, q.PageSize)

	query := db.Model(&models.Banner{})
	if q.Title != "" {
		query = database.Contains(query, "title", q.Title)
	}
	if q.IsPublish != nil {
		query = query.Where("is_publish = ?", *q.IsPublish)
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, errors.Unknown("查询轮播图数量失败", err)
	}

	var banners []models.Banner
	if err := bannerOrder(query).Offset(page.GetOffset()).Limit(page.GetLimit()).
		Find(&banners).Error; err != nil {
		return nil, 0, errors.Unknown("查询轮播图列表失败", err)
	}
	if banners == nil {
		banners = []models.Banner{}
	}
	return banners, total, nil
}

// GetPublishList 已发布的轮播图
func (s *BannerService) GetPublishList(ctx context.Context) ([]models.Banner, error) {
	var banners []models.Banner
	if err := bannerOrder(s.db.WithContext(ctx).Where("is_publish = ?", 1)).
		Find(&banners).Error; err != nil {
		return nil, errors.Unknown("查询轮播图列表失败", err)
	}
	if banners == nil {
		banners = []models.Banner{}
	}
	return banners, nil
}

// GetDetail 轮播图详情
func (s *BannerService) GetDetail(ctx context.Context, bannerID int64) (*models.Banner, error) {
	if bannerID <= 0 {
		return nil, errors.Validation("轮播图id不能为空")
	}
	return s.getByID(s.db.WithContext(ctx), bannerID)
}

func (s *BannerService) getByID(db *gorm.DB, bannerID int64) (*models.Banner, error) {
	var banner models.Banner
	if err := db.Where("id = ?", bannerID).First(&banner).Error; err != nil {
		if stderrors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errors.NotFound("没有找到与id对应的轮播图信息")
		}
		return nil, errors.Unknown("查询轮播图失败", err)
	}
	return &banner, nil
}

// ChangePublishStatus 切换发布状态，返回新值
func (s *BannerService) ChangePublishStatus(ctx context.Context, bannerID int64) (int, error) {
	b, err := s.toggle(ctx, bannerID, "is_publish")
	if err != nil {
		return 0, err
	}
	return b.IsPublish, nil
}

// ChangeTopStatus 切换置顶状态，返回新值
func (s *BannerService) ChangeTopStatus(ctx context.Context, bannerID int64) (int, error) {
	b, err := s.toggle(ctx, bannerID, "is_top")
	if err != nil {
		return 0, err
	}
	return b.IsTop, nil
}

func (s *BannerService) toggle(ctx context.Context, bannerID int64, column string) (*models.Banner, error) {
	if bannerID <= 0 {
		return nil, errors.Validation("轮播图id不能为空")
	}

	db := s.db.WithContext(ctx)
	if _, err := s.getByID(db, bannerID); err != nil {
		return nil, err
	}

	if err := db.Model(&models.Banner{}).Where("id = ?", bannerID).
		Update(column, gorm.Expr("1 - "+column)).Error; err != nil {
		return nil, errors.Unknown("修改轮播图状态失败", err)
	}
	return s.getByID(db, bannerID)
}

// Save 新增或编辑轮播图，operator 记录为创建人。返回值表示是否为新增
func (s *BannerService) Save(ctx context.Context, req SaveBannerRequest, operator string) (bool, error) {
	if err := validate.Struct(req); err != nil {
		return false, err
	}

	db := s.db.WithContext(ctx)

	if req.ID > 0 {
		if _, err := s.getByID(db, req.ID); err != nil {
			return false, err
		}
		if err := db.Model(&models.Banner{}).Where("id = ?", req.ID).
			Updates(map[string]interface{}{
				"title":     req.Title,
				"image_url": req.ImageURL,
				"link_url":  req.LinkURL,
				"sort":      req.Sort,
			}).Error; err != nil {
			return false, errors.Unknown("编辑轮播图失败", err)
		}
		return false, nil
	}

	id, err := s.ids.Next(ctx, models.CounterBanner)
	if err != nil {
		return false, err
	}

	banner := &models.Banner{
		ID:         id,
		Title:      req.Title,
		ImageURL:   req.ImageURL,
		LinkURL:    req.LinkURL,
		Sort:       req.Sort,
		CreateBy:   operator,
		CreateTime: models.NowString(),
	}
	if err := db.Create(banner).Error; err != nil {
		return false, errors.Unknown("新增轮播图失败", err)
	}
	return true, nil
}

// Delete 删除轮播图
func (s *BannerService) Delete(ctx context.Context, bannerID int64) error {
	if bannerID <= 0 {
		return errors.Validation("轮播图id不能为空")
	}

	db := s.db.WithContext(ctx)
	if _, err := s.getByID(db, bannerID); err != nil {
		return err
	}

	if err := db.Where("id = ?", bannerID).Delete(&models.Banner{}).Error; err != nil {
		return errors.Unknown("删除轮播图失败", err)
	}
	return nil
}
