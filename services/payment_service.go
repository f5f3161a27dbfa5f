package services

import (
	"context"

	"github.com/sirupsen/logrus"
	"github.com/yeremiapane/rcoffee/events"
	"github.com/yeremiapane/rcoffee/models"
	"github.com/yeremiapane/rcoffee/utils"
)

// PaymentService handles reservation deposits. Any payment status may be
// set from any other so staff can correct mistakes.
type PaymentService struct {
	reservations  ReservationStore
	notifications *NotificationService
	events        events.Publisher
}

func NewPaymentService(reservations ReservationStore, notifications *NotificationService, pub events.Publisher) *PaymentService {
	if pub == nil {
		pub = events.Noop{}
	}
	return &PaymentService{
		reservations:  reservations,
		notifications: notifications,
		events:        pub,
	}
}

// UpdatePaymentStatus sets the payment status of a reservation, creating
// the payment row when it is missing, and notifies the owner.
func (s *PaymentService) UpdatePaymentStatus(ctx context.Context, reservationID uint, status models.PaymentStatus) (*models.Reservation, error) {
	if !status.Valid() {
		return nil, validationError("payment status must be pending, paid or refunded")
	}

	res, err := s.reservations.SetPaymentStatus(ctx, reservationID, status)
	if err != nil {
		return nil, storeErr("reservation", err)
	}

	utils.InfoLogger.WithFields(logrus.Fields{
		"reservation_id": res.ID,
		"payment_status": status,
		"amount":         res.Payment.Amount,
	}).Info("payment status updated")

	title, message := paymentNotice(res)
	s.notifications.notify(ctx, res.UserID, title, message, models.NotificationPayment)
	publish(ctx, s.events, events.New(events.PaymentStatusChanged, res.ID, res.UserID, res.Payment))
	return res, nil
}
