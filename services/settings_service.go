package services

import (
	"context"
	"errors"
	"strings"

	"github.com/yeremiapane/rcoffee/database"
	"github.com/yeremiapane/rcoffee/models"
	"github.com/yeremiapane/rcoffee/utils"
)

type SettingsInput struct {
	Name    string `json:"name" validate:"required,max=255"`
	Address string `json:"address" validate:"max=255"`
	Phone   string `json:"phone" validate:"max=50"`
	Email   string `json:"email" validate:"omitempty,email"`
}

type SettingsService struct {
	store SettingsStore
}

func NewSettingsService(store SettingsStore) *SettingsService {
	return &SettingsService{store: store}
}

// Get returns the stored settings, or the defaults when none were saved.
func (s *SettingsService) Get(ctx context.Context) (*models.StoreSettings, error) {
	settings, err := s.store.Get(ctx)
	if errors.Is(err, database.ErrNotFound) {
		d := database.DefaultSettings()
		return &d, nil
	}
	if err != nil {
		return nil, storeErr("settings", err)
	}
	return settings, nil
}

func (s *SettingsService) Update(ctx context.Context, in SettingsInput) (*models.StoreSettings, error) {
	in.Name = strings.TrimSpace(in.Name)
	in.Email = strings.TrimSpace(in.Email)
	if err := validateStruct(in); err != nil {
		return nil, err
	}
	settings := &models.StoreSettings{
		Name:    in.Name,
		Address: strings.TrimSpace(in.Address),
		Phone:   strings.TrimSpace(in.Phone),
		Email:   in.Email,
	}
	if err := s.store.Save(ctx, settings); err != nil {
		return nil, storeErr("settings", err)
	}
	utils.InfoLogger.WithField("name", settings.Name).Info("store settings updated")
	return settings, nil
}
