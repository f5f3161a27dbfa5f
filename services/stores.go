package services

import (
	"context"

	"github.com/yeremiapane/rcoffee/database"
	"github.com/yeremiapane/rcoffee/models"
)

// The interfaces below are what the services need from storage. The gorm
// repositories in package database satisfy them.

type UserStore interface {
	Create(ctx context.Context, user *models.User) error
	FindByID(ctx context.Context, id uint) (*models.User, error)
	FindByEmail(ctx context.Context, email string) (*models.User, error)
	List(ctx context.Context, role models.Role) ([]models.User, error)
	ListByStatus(ctx context.Context, status models.UserStatus) ([]models.User, error)
	Update(ctx context.Context, user *models.User) error
	Delete(ctx context.Context, id uint) error
}

type MenuStore interface {
	List(ctx context.Context, category models.MenuCategory) ([]models.MenuItem, error)
	FindByID(ctx context.Context, id uint) (*models.MenuItem, error)
	Create(ctx context.Context, item *models.MenuItem) error
	Update(ctx context.Context, item *models.MenuItem) error
	Delete(ctx context.Context, id uint) error
}

type TableStore interface {
	List(ctx context.Context) ([]models.Table, error)
	ListFitting(ctx context.Context, guests int) ([]models.Table, error)
	MaxCapacity(ctx context.Context) (int, error)
}

type ReservationStore interface {
	OccupiedTableIDs(ctx context.Context, date, slot string) ([]uint, error)
	CreateWithPayment(ctx context.Context, res *models.Reservation) error
	FindByID(ctx context.Context, id uint) (*models.Reservation, error)
	List(ctx context.Context, userID uint) ([]models.Reservation, error)
	UpdateStatus(ctx context.Context, res *models.Reservation, to models.ReservationStatus) error
	SetPaymentStatus(ctx context.Context, reservationID uint, status models.PaymentStatus) (*models.Reservation, error)
	CountByStatus(ctx context.Context) ([]database.StatusCount, error)
	PaymentTotals(ctx context.Context) (map[models.PaymentStatus]float64, error)
}

type OrderStore interface {
	Create(ctx context.Context, order *models.Order) error
	FindByID(ctx context.Context, id uint) (*models.Order, error)
	List(ctx context.Context, userID uint) ([]models.Order, error)
	UpdateStatus(ctx context.Context, order *models.Order, to models.OrderStatus) error
	CountByStatus(ctx context.Context) ([]database.StatusCount, error)
}

type NotificationStore interface {
	Create(ctx context.Context, n *models.Notification) error
	FindByID(ctx context.Context, id uint) (*models.Notification, error)
	ListByUser(ctx context.Context, userID uint) ([]models.Notification, error)
	CountUnread(ctx context.Context, userID uint) (int64, error)
	MarkRead(ctx context.Context, id uint) (*models.Notification, error)
}

type SettingsStore interface {
	Get(ctx context.Context) (*models.StoreSettings, error)
	Save(ctx context.Context, s *models.StoreSettings) error
}
