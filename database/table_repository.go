package database

import (
	"context"

	"github.com/yeremiapane/rcoffee/models"
	"gorm.io/gorm"
)

type TableRepository struct {
	DB *gorm.DB
}

func NewTableRepository(db *gorm.DB) *TableRepository {
	return &TableRepository{DB: db}
}

func (r *TableRepository) List(ctx context.Context) ([]models.Table, error) {
	var tables []models.Table
	if err := r.DB.WithContext(ctx).Order("id ASC").Find(&tables).Error; err != nil {
		return nil, translate(err)
	}
	return tables, nil
}

// ListFitting returns tables seating at least guests, lowest id first.
func (r *TableRepository) ListFitting(ctx context.Context, guests int) ([]models.Table, error) {
	var tables []models.Table
	if err := r.DB.WithContext(ctx).Where("capacity >= ?", guests).Order("id ASC").Find(&tables).Error; err != nil {
		return nil, translate(err)
	}
	return tables, nil
}

func (r *TableRepository) MaxCapacity(ctx context.Context) (int, error) {
	var maxCap int
	err := r.DB.WithContext(ctx).Model(&models.Table{}).Select("COALESCE(MAX(capacity), 0)").Scan(&maxCap).Error
	return maxCap, translate(err)
}

func (r *TableRepository) Count(ctx context.Context) (int64, error) {
	var n int64
	err := r.DB.WithContext(ctx).Model(&models.Table{}).Count(&n).Error
	return n, translate(err)
}

func (r *TableRepository) CreateBatch(ctx context.Context, tables []models.Table) error {
	return translate(r.DB.WithContext(ctx).CreateInBatches(tables, 100).Error)
}
