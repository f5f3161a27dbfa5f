package services

import (
	"context"
	"fmt"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/yeremiapane/rcoffee/events"
	"github.com/yeremiapane/rcoffee/models"
	"github.com/yeremiapane/rcoffee/utils"
)

type CreateNotificationInput struct {
	UserID  uint                    `json:"user_id" validate:"required"`
	Title   string                  `json:"title" validate:"required,max=100"`
	Message string                  `json:"message" validate:"required"`
	Type    models.NotificationType `json:"type"`
}

type NotificationService struct {
	store  NotificationStore
	users  UserStore
	events events.Publisher
}

func NewNotificationService(store NotificationStore, users UserStore, pub events.Publisher) *NotificationService {
	if pub == nil {
		pub = events.Noop{}
	}
	return &NotificationService{store: store, users: users, events: pub}
}

// Create appends an unread notification for a user. Type defaults to
// system, the kind staff send by hand.
func (s *NotificationService) Create(ctx context.Context, in CreateNotificationInput) (*models.Notification, error) {
	if in.Type == "" {
		in.Type = models.NotificationSystem
	}
	if err := validateStruct(in); err != nil {
		return nil, err
	}
	if !in.Type.Valid() {
		return nil, validationError("type must be reservation, order, system, payment or admin")
	}
	if _, err := s.users.FindByID(ctx, in.UserID); err != nil {
		return nil, storeErr("user", err)
	}

	n := &models.Notification{
		UserID:  in.UserID,
		Title:   in.Title,
		Message: in.Message,
		Type:    in.Type,
		Status:  models.NotificationUnread,
	}
	if err := s.store.Create(ctx, n); err != nil {
		return nil, storeErr("notification", err)
	}

	publish(ctx, s.events, events.New(events.NotificationCreated, n.ID, n.UserID, n))
	return n, nil
}

// notify is the side-effect path used by status changes. Failures are
// logged and swallowed so the triggering update still succeeds.
func (s *NotificationService) notify(ctx context.Context, userID uint, title, message string, typ models.NotificationType) {
	if s == nil {
		return
	}
	n := &models.Notification{
		UserID:  userID,
		Title:   title,
		Message: message,
		Type:    typ,
		Status:  models.NotificationUnread,
	}
	if err := s.store.Create(ctx, n); err != nil {
		utils.ErrorLogger.WithError(err).WithFields(logrus.Fields{
			"user_id": userID,
			"title":   title,
		}).Error("failed to create notification")
		return
	}
	publish(ctx, s.events, events.New(events.NotificationCreated, n.ID, n.UserID, n))
}

// ListForUser returns the user's notifications newest first.
func (s *NotificationService) ListForUser(ctx context.Context, userID uint) ([]models.Notification, error) {
	list, err := s.store.ListByUser(ctx, userID)
	if err != nil {
		return nil, storeErr("notifications", err)
	}
	return list, nil
}

func (s *NotificationService) UnreadCount(ctx context.Context, userID uint) (int64, error) {
	n, err := s.store.CountUnread(ctx, userID)
	if err != nil {
		return 0, storeErr("notifications", err)
	}
	return n, nil
}

// MarkRead marks the viewer's own notification read. Repeating it is a
// no-op.
func (s *NotificationService) MarkRead(ctx context.Context, viewer *models.User, id uint) (*models.Notification, error) {
	n, err := s.store.FindByID(ctx, id)
	if err != nil {
		return nil, storeErr("notification", err)
	}
	if viewer == nil || n.UserID != viewer.ID {
		return nil, ErrForbidden
	}
	n, err = s.store.MarkRead(ctx, id)
	if err != nil {
		return nil, storeErr("notification", err)
	}
	return n, nil
}

// publishTimeout caps how long a request waits on event sinks.
const publishTimeout = 2 * time.Second

func publish(ctx context.Context, pub events.Publisher, e events.Event) {
	if pub == nil {
		return
	}
	ctx, cancel := context.WithTimeout(ctx, publishTimeout)
	defer cancel()
	if err := pub.Publish(ctx, e); err != nil {
		utils.ErrorLogger.WithError(err).WithFields(logrus.Fields{
			"event":     e.Type,
			"entity_id": e.EntityID,
		}).Error("failed to publish event")
	}
}

func reservationNotice(res *models.Reservation) (title, message string) {
	when := fmt.Sprintf("%s at %s", displayDate(res.Date), res.Time)
	switch res.Status {
	case models.ReservationConfirmed:
		return "Reservation Confirmed", fmt.Sprintf("Your reservation for %s has been confirmed.", when)
	case models.ReservationCancelled:
		return "Reservation Cancelled", fmt.Sprintf("Your reservation for %s has been cancelled.", when)
	case models.ReservationFinished:
		return "Thank You for Visiting", "Thank you for dining with us. We hope you enjoyed your experience and look forward to serving you again soon!"
	}
	return "Reservation Updated", fmt.Sprintf("Your reservation for %s is now %s.", when, res.Status)
}

func paymentNotice(res *models.Reservation) (title, message string) {
	amount := utils.FormatAmount(models.PaymentAmount(res.Guests))
	status := models.PaymentPending
	if res.Payment != nil {
		amount = utils.FormatAmount(res.Payment.Amount)
		status = res.Payment.Status
	}
	when := fmt.Sprintf("%s at %s", displayDate(res.Date), res.Time)
	switch status {
	case models.PaymentPaid:
		return "Payment Received", fmt.Sprintf("We received your payment of %s for your reservation on %s.", amount, when)
	case models.PaymentRefunded:
		return "Payment Refunded", fmt.Sprintf("Your payment of %s for the reservation on %s has been refunded.", amount, when)
	}
	return "Payment Updated", fmt.Sprintf("The payment of %s for your reservation on %s is now %s.", amount, when, status)
}
