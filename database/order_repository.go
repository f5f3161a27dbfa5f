package database

import (
	"context"

	"github.com/yeremiapane/rcoffee/models"
	"gorm.io/gorm"
)

type OrderRepository struct {
	DB *gorm.DB
}

func NewOrderRepository(db *gorm.DB) *OrderRepository {
	return &OrderRepository{DB: db}
}

func preloadItems(db *gorm.DB) *gorm.DB {
	return db.Order("position ASC")
}

// Create stores the order and its item snapshots together.
func (r *OrderRepository) Create(ctx context.Context, order *models.Order) error {
	for i := range order.Items {
		order.Items[i].Position = i
	}
	return r.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return translate(tx.Create(order).Error)
	})
}

func (r *OrderRepository) FindByID(ctx context.Context, id uint) (*models.Order, error) {
	var order models.Order
	if err := r.DB.WithContext(ctx).Preload("Items", preloadItems).First(&order, id).Error; err != nil {
		return nil, translate(err)
	}
	return &order, nil
}

// List returns orders newest first; userID 0 lists every order.
func (r *OrderRepository) List(ctx context.Context, userID uint) ([]models.Order, error) {
	var orders []models.Order
	q := r.DB.WithContext(ctx).Preload("Items", preloadItems).Order("created_at DESC, id DESC")
	if userID != 0 {
		q = q.Where("user_id = ?", userID)
	}
	if err := q.Find(&orders).Error; err != nil {
		return nil, translate(err)
	}
	return orders, nil
}

func (r *OrderRepository) UpdateStatus(ctx context.Context, order *models.Order, to models.OrderStatus) error {
	result := r.DB.WithContext(ctx).Model(&models.Order{}).
		Where("id = ? AND status = ?", order.ID, order.Status).
		Update("status", to)
	if result.Error != nil {
		return translate(result.Error)
	}
	if result.RowsAffected == 0 && order.Status != to {
		if _, err := r.FindByID(ctx, order.ID); err != nil {
			return err
		}
		return ErrStale
	}
	order.Status = to
	return nil
}

func (r *OrderRepository) CountByStatus(ctx context.Context) ([]StatusCount, error) {
	var rows []StatusCount
	err := r.DB.WithContext(ctx).Model(&models.Order{}).
		Select("status, COUNT(*) AS total").Group("status").Order("status").Scan(&rows).Error
	return rows, translate(err)
}
