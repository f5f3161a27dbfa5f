package database

import (
	"context"

	"github.com/yeremiapane/rcoffee/models"
	"gorm.io/gorm"
)

type NotificationRepository struct {
	DB *gorm.DB
}

func NewNotificationRepository(db *gorm.DB) *NotificationRepository {
	return &NotificationRepository{DB: db}
}

func (r *NotificationRepository) Create(ctx context.Context, n *models.Notification) error {
	if n.Status == "" {
		n.Status = models.NotificationUnread
	}
	return translate(r.DB.WithContext(ctx).Create(n).Error)
}

func (r *NotificationRepository) FindByID(ctx context.Context, id uint) (*models.Notification, error) {
	var n models.Notification
	if err := r.DB.WithContext(ctx).First(&n, id).Error; err != nil {
		return nil, translate(err)
	}
	return &n, nil
}

// ListByUser returns the user's notifications newest first.
func (r *NotificationRepository) ListByUser(ctx context.Context, userID uint) ([]models.Notification, error) {
	var list []models.Notification
	err := r.DB.WithContext(ctx).Where("user_id = ?", userID).
		Order("created_at DESC, id DESC").Find(&list).Error
	if err != nil {
		return nil, translate(err)
	}
	return list, nil
}

func (r *NotificationRepository) CountUnread(ctx context.Context, userID uint) (int64, error) {
	var n int64
	err := r.DB.WithContext(ctx).Model(&models.Notification{}).
		Where("user_id = ? AND status = ?", userID, models.NotificationUnread).Count(&n).Error
	return n, translate(err)
}

// MarkRead sets status to read. Marking an already read row is a no-op.
func (r *NotificationRepository) MarkRead(ctx context.Context, id uint) (*models.Notification, error) {
	n, err := r.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if n.Status == models.NotificationRead {
		return n, nil
	}
	if err := r.DB.WithContext(ctx).Model(n).Update("status", models.NotificationRead).Error; err != nil {
		return nil, translate(err)
	}
	n.Status = models.NotificationRead
	return n, nil
}
