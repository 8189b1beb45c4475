package services

import (
	"context"

	"adminhub/internal/models"
	"adminhub/pkg/errors"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// IDGenerator 基于 id_counters 表分配递增的外部ID
type IDGenerator struct {
	db *gorm.DB
}

func NewIDGenerator(db *gorm.DB) *IDGenerator {
	return &IDGenerator{db: db}
}

// Next 返回计数器的下一个值，计数器不存在时从1开始
func (g *IDGenerator) Next(ctx context.Context, name string) (int64, error) {
	var value int64
	err := g.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		// 不存在则创建初始行
		if err := tx.Clauses(clause.OnConflict{DoNothing: true}).
			Create(&models.IdCounter{Name: name, Value: 0}).Error; err != nil {
			return err
		}

		if err := tx.Model(&models.IdCounter{}).
			Where("name = ?", name).
			Update("value", gorm.Expr("value + 1")).Error; err != nil {
			return err
		}

		var counter models.IdCounter
		if err := tx.Where("name = ?", name).First(&counter).Error; err != nil {
			return err
		}
		value = counter.Value
		return nil
	})
	if err != nil {
		return 0, errors.Unknown("生成ID失败", err)
	}
	return value, nil
}

// Sync 保证计数器不小于 value，种子数据写入固定ID后调用
func (g *IDGenerator) Sync(ctx context.Context, name string, value int64) error {
	return g.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Clauses(clause.OnConflict{DoNothing: true}).
			Create(&models.IdCounter{Name: name, Value: value}).Error; err != nil {
			return err
		}
		return tx.Model(&models.IdCounter{}).
			Where("name = ? AND value < ?", name, value).
			Update("value", value).Error
	})
}
