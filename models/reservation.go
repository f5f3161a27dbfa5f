package models

import (
	"fmt"
	"time"
)

// RatePerGuest is the fixed deposit charged per guest on every reservation.
const RatePerGuest = 20

type ReservationStatus string

const (
	ReservationPending   ReservationStatus = "pending"
	ReservationConfirmed ReservationStatus = "confirmed"
	ReservationFinished  ReservationStatus = "finished"
	ReservationCancelled ReservationStatus = "cancelled"
)

func (s ReservationStatus) Valid() bool {
	switch s {
	case ReservationPending, ReservationConfirmed, ReservationFinished, ReservationCancelled:
		return true
	}
	return false
}

type Reservation struct {
	ID              uint              `gorm:"primaryKey" json:"id"`
	UserID          uint              `gorm:"not null;index" json:"user_id"`
	User            *User             `gorm:"foreignKey:UserID;references:ID;constraint:OnUpdate:CASCADE,OnDelete:CASCADE" json:"-"`
	Name            string            `gorm:"type:varchar(255);not null" json:"name"`
	Email           string            `gorm:"type:varchar(255);not null" json:"email"`
	Phone           string            `gorm:"type:varchar(50);not null" json:"phone"`
	Date            string            `gorm:"type:varchar(10);not null;index:idx_reservation_slot" json:"date"`
	Time            string            `gorm:"type:varchar(10);not null;index:idx_reservation_slot" json:"time"`
	Guests          int               `gorm:"not null" json:"guests"`
	TableID         uint              `gorm:"not null;index" json:"table_id"`
	Table           *Table            `gorm:"foreignKey:TableID;references:ID;constraint:OnUpdate:CASCADE,OnDelete:RESTRICT" json:"-"`
	SpecialRequests string            `gorm:"type:text" json:"special_requests,omitempty"`
	Status          ReservationStatus `gorm:"type:varchar(20);not null;default:'pending';index" json:"status"`
	// SlotKey holds "table|date|time" while the reservation occupies its
	// table and is NULL once cancelled. The unique index keeps a slot to
	// one live booking.
	SlotKey   *string   `gorm:"type:varchar(64);uniqueIndex" json:"-"`
	Payment   *Payment  `gorm:"foreignKey:ReservationID;constraint:OnUpdate:CASCADE,OnDelete:CASCADE" json:"payment,omitempty"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// MakeSlotKey builds the occupancy key for a table at a date and time.
func MakeSlotKey(tableID uint, date, slot string) string {
	return fmt.Sprintf("%d|%s|%s", tableID, date, slot)
}

// PaymentAmount is the amount owed for a party of the given size.
func PaymentAmount(guests int) float64 {
	return float64(guests * RatePerGuest)
}
