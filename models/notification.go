package models

import (
	"time"
)

type NotificationType string

const (
	NotificationReservation NotificationType = "reservation"
	NotificationOrder       NotificationType = "order"
	NotificationSystem      NotificationType = "system"
	NotificationPayment     NotificationType = "payment"
	NotificationAdmin       NotificationType = "admin"
)

func (t NotificationType) Valid() bool {
	switch t {
	case NotificationReservation, NotificationOrder, NotificationSystem, NotificationPayment, NotificationAdmin:
		return true
	}
	return false
}

type NotificationStatus string

const (
	NotificationUnread NotificationStatus = "unread"
	NotificationRead   NotificationStatus = "read"
)

type Notification struct {
	ID        uint               `gorm:"primaryKey" json:"id"`
	UserID    uint               `gorm:"not null;index" json:"user_id"`
	User      *User              `gorm:"foreignKey:UserID;references:ID;constraint:OnUpdate:CASCADE,OnDelete:CASCADE" json:"-"`
	Title     string             `gorm:"type:varchar(100);not null" json:"title"`
	Message   string             `gorm:"type:text;not null" json:"message"`
	Type      NotificationType   `gorm:"type:varchar(20);not null" json:"type"`
	Status    NotificationStatus `gorm:"type:varchar(10);not null;default:'unread';index" json:"status"`
	CreatedAt time.Time          `gorm:"index" json:"created_at"`
	UpdatedAt time.Time          `json:"updated_at"`
}
