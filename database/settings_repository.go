package database

import (
	"context"

	"github.com/yeremiapane/rcoffee/models"
	"gorm.io/gorm"
)

// settingsRowID is the primary key of the only settings row.
const settingsRowID = 1

type SettingsRepository struct {
	DB *gorm.DB
}

func NewSettingsRepository(db *gorm.DB) *SettingsRepository {
	return &SettingsRepository{DB: db}
}

func (r *SettingsRepository) Get(ctx context.Context) (*models.StoreSettings, error) {
	var s models.StoreSettings
	if err := r.DB.WithContext(ctx).First(&s, settingsRowID).Error; err != nil {
		return nil, translate(err)
	}
	return &s, nil
}

func (r *SettingsRepository) Save(ctx context.Context, s *models.StoreSettings) error {
	s.ID = settingsRowID
	return translate(r.DB.WithContext(ctx).Save(s).Error)
}
