package services

import "github.com/yeremiapane/rcoffee/models"

// Allowed edges per status. A status missing from the table, or mapped to
// nothing, is terminal.
var (
	reservationTransitions = map[models.ReservationStatus][]models.ReservationStatus{
		models.ReservationPending:   {models.ReservationConfirmed, models.ReservationCancelled},
		models.ReservationConfirmed: {models.ReservationFinished, models.ReservationCancelled},
		models.ReservationFinished:  nil,
		models.ReservationCancelled: nil,
	}

	orderTransitions = map[models.OrderStatus][]models.OrderStatus{
		models.OrderPending:    {models.OrderProcessing, models.OrderCancelled},
		models.OrderProcessing: {models.OrderCompleted},
		models.OrderCompleted:  nil,
		models.OrderCancelled:  nil,
	}
)

func allowed[S comparable](table map[S][]S, from, to S) bool {
	for _, next := range table[from] {
		if next == to {
			return true
		}
	}
	return false
}

func CanTransitionReservation(from, to models.ReservationStatus) bool {
	return allowed(reservationTransitions, from, to)
}

func CanTransitionOrder(from, to models.OrderStatus) bool {
	return allowed(orderTransitions, from, to)
}

// NextReservationStatuses lists where a reservation may go from its
// current status.
func NextReservationStatuses(from models.ReservationStatus) []models.ReservationStatus {
	next := reservationTransitions[from]
	out := make([]models.ReservationStatus, len(next))
	copy(out, next)
	return out
}

func IsTerminalReservation(s models.ReservationStatus) bool {
	return len(reservationTransitions[s]) == 0
}
