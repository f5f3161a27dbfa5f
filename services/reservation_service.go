package services

import (
	"context"
	"errors"
	"strings"

	"github.com/sirupsen/logrus"
	"github.com/yeremiapane/rcoffee/database"
	"github.com/yeremiapane/rcoffee/events"
	"github.com/yeremiapane/rcoffee/models"
	"github.com/yeremiapane/rcoffee/utils"
)

type AvailabilityQuery struct {
	Date   string `json:"date" form:"date" validate:"required,isodate"`
	Time   string `json:"time" form:"time" validate:"required,timeslot"`
	Guests int    `json:"guests" form:"guests" validate:"required,min=1"`
}

type CreateReservationInput struct {
	Name            string `json:"name" validate:"required,max=255"`
	Email           string `json:"email" validate:"required,email"`
	Phone           string `json:"phone" validate:"required,max=50"`
	Date            string `json:"date" validate:"required,isodate"`
	Time            string `json:"time" validate:"required,timeslot"`
	Guests          int    `json:"guests" validate:"required,min=1"`
	SpecialRequests string `json:"special_requests" validate:"max=1000"`
}

type ReservationService struct {
	reservations  ReservationStore
	tables        TableStore
	notifications *NotificationService
	events        events.Publisher
	qr            QRGenerator
}

func NewReservationService(reservations ReservationStore, tables TableStore, notifications *NotificationService, pub events.Publisher, qr QRGenerator) *ReservationService {
	if pub == nil {
		pub = events.Noop{}
	}
	if qr == nil {
		qr = DefaultQRGenerator{}
	}
	return &ReservationService{
		reservations:  reservations,
		tables:        tables,
		notifications: notifications,
		events:        pub,
		qr:            qr,
	}
}

// AvailableTables returns tables that seat the party and are not held by a
// non-cancelled reservation at that date and time, lowest id first.
func (s *ReservationService) AvailableTables(ctx context.Context, q AvailabilityQuery) ([]models.Table, error) {
	if err := validateStruct(q); err != nil {
		return nil, err
	}

	fitting, err := s.tables.ListFitting(ctx, q.Guests)
	if err != nil {
		return nil, storeErr("tables", err)
	}
	occupied, err := s.reservations.OccupiedTableIDs(ctx, q.Date, q.Time)
	if err != nil {
		return nil, storeErr("reservations", err)
	}

	held := make(map[uint]struct{}, len(occupied))
	for _, id := range occupied {
		held[id] = struct{}{}
	}
	available := make([]models.Table, 0, len(fitting))
	for _, t := range fitting {
		if t.Capacity < q.Guests {
			continue
		}
		if _, taken := held[t.ID]; taken {
			continue
		}
		available = append(available, t)
	}
	return available, nil
}

// Create books the first free table that fits and writes the pending
// payment with it. A table taken by a concurrent booking between the check
// and the write is skipped in favour of the next one.
func (s *ReservationService) Create(ctx context.Context, userID uint, in CreateReservationInput) (*models.Reservation, error) {
	in.Name = strings.TrimSpace(in.Name)
	in.Email = strings.TrimSpace(in.Email)
	in.Phone = strings.TrimSpace(in.Phone)
	if userID == 0 {
		return nil, validationError("user is required")
	}
	if err := validateStruct(in); err != nil {
		return nil, err
	}

	available, err := s.AvailableTables(ctx, AvailabilityQuery{Date: in.Date, Time: in.Time, Guests: in.Guests})
	if err != nil {
		return nil, err
	}

	for _, table := range available {
		res := &models.Reservation{
			UserID:          userID,
			Name:            in.Name,
			Email:           in.Email,
			Phone:           in.Phone,
			Date:            in.Date,
			Time:            in.Time,
			Guests:          in.Guests,
			TableID:         table.ID,
			SpecialRequests: in.SpecialRequests,
			Status:          models.ReservationPending,
		}
		err := s.reservations.CreateWithPayment(ctx, res)
		if errors.Is(err, database.ErrDuplicate) {
			utils.InfoLogger.WithFields(logrus.Fields{
				"table_id": table.ID,
				"date":     in.Date,
				"slot":     in.Time,
			}).Info("table taken concurrently, trying next")
			continue
		}
		if err != nil {
			return nil, storeErr("reservation", err)
		}

		utils.InfoLogger.WithFields(logrus.Fields{
			"reservation_id": res.ID,
			"table_id":       res.TableID,
			"guests":         res.Guests,
		}).Info("reservation created")
		publish(ctx, s.events, events.New(events.ReservationCreated, res.ID, res.UserID, res))
		return res, nil
	}

	return nil, ErrNoCapacity
}

func (s *ReservationService) Get(ctx context.Context, viewer *models.User, id uint) (*models.Reservation, error) {
	res, err := s.reservations.FindByID(ctx, id)
	if err != nil {
		return nil, storeErr("reservation", err)
	}
	if !CanViewReservation(viewer, res) {
		return nil, ErrForbidden
	}
	return res, nil
}

// List returns every reservation to staff and only their own to customers.
func (s *ReservationService) List(ctx context.Context, viewer *models.User) ([]models.Reservation, error) {
	if viewer == nil {
		return nil, ErrForbidden
	}
	var userID uint
	if !viewer.IsStaff() {
		userID = viewer.ID
	}
	list, err := s.reservations.List(ctx, userID)
	if err != nil {
		return nil, storeErr("reservations", err)
	}
	return list, nil
}

// UpdateStatus moves a reservation along its status graph and tells the
// owner about it.
func (s *ReservationService) UpdateStatus(ctx context.Context, id uint, to models.ReservationStatus) (*models.Reservation, error) {
	if !to.Valid() {
		return nil, validationError("status must be pending, confirmed, finished or cancelled")
	}
	res, err := s.reservations.FindByID(ctx, id)
	if err != nil {
		return nil, storeErr("reservation", err)
	}
	return s.transition(ctx, res, to)
}

// Cancel lets the owner, or staff, cancel a pending or confirmed booking.
func (s *ReservationService) Cancel(ctx context.Context, viewer *models.User, id uint) (*models.Reservation, error) {
	res, err := s.Get(ctx, viewer, id)
	if err != nil {
		return nil, err
	}
	return s.transition(ctx, res, models.ReservationCancelled)
}

func (s *ReservationService) transition(ctx context.Context, res *models.Reservation, to models.ReservationStatus) (*models.Reservation, error) {
	from := res.Status
	if !CanTransitionReservation(from, to) {
		return nil, invalidTransition("reservation", from, to)
	}
	if err := s.reservations.UpdateStatus(ctx, res, to); err != nil {
		return nil, storeErr("reservation", err)
	}

	utils.InfoLogger.WithFields(logrus.Fields{
		"reservation_id": res.ID,
		"from":           from,
		"to":             to,
	}).Info("reservation status changed")

	title, message := reservationNotice(res)
	s.notifications.notify(ctx, res.UserID, title, message, models.NotificationReservation)
	publish(ctx, s.events, events.New(events.ReservationStatusChanged, res.ID, res.UserID, map[string]interface{}{
		"from":        from,
		"to":          to,
		"reservation": res,
	}))
	return res, nil
}

// MaxPartySize is the largest party any single table can seat.
func (s *ReservationService) MaxPartySize(ctx context.Context) (int, error) {
	n, err := s.tables.MaxCapacity(ctx)
	if err != nil {
		return 0, storeErr("tables", err)
	}
	return n, nil
}

func (s *ReservationService) Tables(ctx context.Context) ([]models.Table, error) {
	tables, err := s.tables.List(ctx)
	if err != nil {
		return nil, storeErr("tables", err)
	}
	return tables, nil
}

// CheckInQR renders a PNG the front desk scans on arrival.
func (s *ReservationService) CheckInQR(ctx context.Context, viewer *models.User, id uint) ([]byte, error) {
	res, err := s.Get(ctx, viewer, id)
	if err != nil {
		return nil, err
	}
	if res.Status == models.ReservationCancelled {
		return nil, validationError("reservation %d is cancelled", res.ID)
	}
	return s.qr.Generate(res.ID)
}
