package services

import (
	"context"
	"strings"

	"github.com/sirupsen/logrus"
	"github.com/yeremiapane/rcoffee/cache"
	"github.com/yeremiapane/rcoffee/models"
	"github.com/yeremiapane/rcoffee/utils"
)

type MenuItemInput struct {
	Name        string              `json:"name" validate:"required,max=255"`
	Description string              `json:"description"`
	Price       float64             `json:"price" validate:"gte=0"`
	Image       string              `json:"image" validate:"max=512"`
	Category    models.MenuCategory `json:"category" validate:"required,menucategory"`
}

// MenuService serves the catalog. List results are cached when a redis
// cache is configured and dropped on every write.
type MenuService struct {
	store MenuStore
	cache *cache.RedisCache
}

func NewMenuService(store MenuStore, c *cache.RedisCache) *MenuService {
	return &MenuService{store: store, cache: c}
}

func menuCacheKey(category models.MenuCategory) string {
	if category == "" {
		return "all"
	}
	return "category:" + string(category)
}

func (s *MenuService) List(ctx context.Context, category models.MenuCategory) ([]models.MenuItem, error) {
	if category != "" && !category.Valid() {
		return nil, validationError("category must be one of %s", joinCategories())
	}

	key := menuCacheKey(category)
	var items []models.MenuItem
	hit, err := s.cache.GetJSON(ctx, key, &items)
	if err != nil {
		utils.ErrorLogger.WithError(err).WithField("key", key).Warn("menu cache read failed")
	}
	if hit {
		return items, nil
	}

	items, err = s.store.List(ctx, category)
	if err != nil {
		return nil, storeErr("menu", err)
	}
	if err := s.cache.SetJSON(ctx, key, items); err != nil {
		utils.ErrorLogger.WithError(err).WithField("key", key).Warn("menu cache write failed")
	}
	return items, nil
}

func (s *MenuService) Get(ctx context.Context, id uint) (*models.MenuItem, error) {
	item, err := s.store.FindByID(ctx, id)
	if err != nil {
		return nil, storeErr("menu item", err)
	}
	return item, nil
}

func (s *MenuService) Create(ctx context.Context, in MenuItemInput) (*models.MenuItem, error) {
	in.Name = strings.TrimSpace(in.Name)
	if err := validateStruct(in); err != nil {
		return nil, err
	}
	item := &models.MenuItem{
		Name:        in.Name,
		Description: in.Description,
		Price:       roundCents(in.Price),
		Image:       in.Image,
		Category:    in.Category,
	}
	if err := s.store.Create(ctx, item); err != nil {
		return nil, storeErr("menu item", err)
	}
	s.invalidate(ctx)
	utils.InfoLogger.WithFields(logrus.Fields{"menu_item_id": item.ID, "category": item.Category}).Info("menu item created")
	return item, nil
}

func (s *MenuService) Update(ctx context.Context, id uint, in MenuItemInput) (*models.MenuItem, error) {
	in.Name = strings.TrimSpace(in.Name)
	if err := validateStruct(in); err != nil {
		return nil, err
	}
	item, err := s.store.FindByID(ctx, id)
	if err != nil {
		return nil, storeErr("menu item", err)
	}
	item.Name = in.Name
	item.Description = in.Description
	item.Price = roundCents(in.Price)
	item.Image = in.Image
	item.Category = in.Category
	if err := s.store.Update(ctx, item); err != nil {
		return nil, storeErr("menu item", err)
	}
	s.invalidate(ctx)
	utils.InfoLogger.WithField("menu_item_id", item.ID).Info("menu item updated")
	return item, nil
}

func (s *MenuService) Delete(ctx context.Context, id uint) error {
	if err := s.store.Delete(ctx, id); err != nil {
		return storeErr("menu item", err)
	}
	s.invalidate(ctx)
	utils.InfoLogger.WithField("menu_item_id", id).Info("menu item deleted")
	return nil
}

func (s *MenuService) invalidate(ctx context.Context) {
	if err := s.cache.Flush(ctx); err != nil {
		utils.ErrorLogger.WithError(err).Warn("menu cache flush failed")
	}
}
