package database

import (
	"context"

	"github.com/yeremiapane/rcoffee/models"
	"gorm.io/gorm"
)

type ReservationRepository struct {
	DB *gorm.DB
}

func NewReservationRepository(db *gorm.DB) *ReservationRepository {
	return &ReservationRepository{DB: db}
}

// OccupiedTableIDs lists tables held by a non-cancelled reservation at the
// given date and time.
func (r *ReservationRepository) OccupiedTableIDs(ctx context.Context, date, slot string) ([]uint, error) {
	var ids []uint
	err := r.DB.WithContext(ctx).Model(&models.Reservation{}).
		Where("date = ? AND time = ? AND status <> ?", date, slot, models.ReservationCancelled).
		Distinct().Pluck("table_id", &ids).Error
	return ids, translate(err)
}

// CreateWithPayment writes the reservation and its pending payment in one
// transaction. A slot already held returns ErrDuplicate.
func (r *ReservationRepository) CreateWithPayment(ctx context.Context, res *models.Reservation) error {
	return r.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if res.Status != models.ReservationCancelled {
			key := models.MakeSlotKey(res.TableID, res.Date, res.Time)
			res.SlotKey = &key
		}
		if err := tx.Omit("Payment").Create(res).Error; err != nil {
			return translate(err)
		}

		payment := &models.Payment{
			ReservationID: res.ID,
			UserID:        res.UserID,
			Amount:        models.PaymentAmount(res.Guests),
			Status:        models.PaymentPending,
		}
		if err := tx.Create(payment).Error; err != nil {
			return translate(err)
		}
		res.Payment = payment
		return nil
	})
}

func (r *ReservationRepository) FindByID(ctx context.Context, id uint) (*models.Reservation, error) {
	var res models.Reservation
	if err := r.DB.WithContext(ctx).Preload("Payment").First(&res, id).Error; err != nil {
		return nil, translate(err)
	}
	return &res, nil
}

// List returns reservations newest first; userID 0 lists all of them.
func (r *ReservationRepository) List(ctx context.Context, userID uint) ([]models.Reservation, error) {
	var list []models.Reservation
	q := r.DB.WithContext(ctx).Preload("Payment").Order("created_at DESC, id DESC")
	if userID != 0 {
		q = q.Where("user_id = ?", userID)
	}
	if err := q.Find(&list).Error; err != nil {
		return nil, translate(err)
	}
	return list, nil
}

// UpdateStatus moves a reservation from one status to another. The slot
// key is released when the target is cancelled.
func (r *ReservationRepository) UpdateStatus(ctx context.Context, res *models.Reservation, to models.ReservationStatus) error {
	updates := map[string]interface{}{"status": to}
	if to == models.ReservationCancelled {
		updates["slot_key"] = gorm.Expr("NULL")
	}

	result := r.DB.WithContext(ctx).Model(&models.Reservation{}).
		Where("id = ? AND status = ?", res.ID, res.Status).
		Updates(updates)
	if result.Error != nil {
		return translate(result.Error)
	}
	if result.RowsAffected == 0 {
		if _, err := r.FindByID(ctx, res.ID); err != nil {
			return err
		}
		return ErrStale
	}

	res.Status = to
	if to == models.ReservationCancelled {
		res.SlotKey = nil
	}
	return nil
}

// SetPaymentStatus updates the reservation's payment, creating the row
// with the per-guest amount when it is missing. It returns the reservation
// with the payment loaded.
func (r *ReservationRepository) SetPaymentStatus(ctx context.Context, reservationID uint, status models.PaymentStatus) (*models.Reservation, error) {
	var res models.Reservation
	err := r.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.First(&res, reservationID).Error; err != nil {
			return translate(err)
		}

		var payment models.Payment
		err := tx.Where("reservation_id = ?", reservationID).First(&payment).Error
		switch translate(err) {
		case nil:
			if err := tx.Model(&payment).Update("status", status).Error; err != nil {
				return translate(err)
			}
			payment.Status = status
		case ErrNotFound:
			payment = models.Payment{
				ReservationID: res.ID,
				UserID:        res.UserID,
				Amount:        models.PaymentAmount(res.Guests),
				Status:        status,
			}
			if err := tx.Create(&payment).Error; err != nil {
				return translate(err)
			}
		default:
			return translate(err)
		}

		res.Payment = &payment
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &res, nil
}

type StatusCount struct {
	Status string
	Total  int64
}

func (r *ReservationRepository) CountByStatus(ctx context.Context) ([]StatusCount, error) {
	var rows []StatusCount
	err := r.DB.WithContext(ctx).Model(&models.Reservation{}).
		Select("status, COUNT(*) AS total").Group("status").Order("status").Scan(&rows).Error
	return rows, translate(err)
}

// PaymentTotals sums payment amounts grouped by payment status.
func (r *ReservationRepository) PaymentTotals(ctx context.Context) (map[models.PaymentStatus]float64, error) {
	var rows []struct {
		Status models.PaymentStatus
		Amount float64
	}
	err := r.DB.WithContext(ctx).Model(&models.Payment{}).
		Select("status, COALESCE(SUM(amount), 0) AS amount").Group("status").Scan(&rows).Error
	if err != nil {
		return nil, translate(err)
	}
	totals := make(map[models.PaymentStatus]float64, len(rows))
	for _, row := range rows {
		totals[row.Status] = row.Amount
	}
	return totals, nil
}
