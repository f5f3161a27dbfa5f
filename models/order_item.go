package models

import (
	"time"
)

// OrderItem is a snapshot of a menu item taken when the order was placed.
type OrderItem struct {
	ID         uint      `gorm:"primaryKey" json:"-"`
	OrderID    uint      `gorm:"not null;index" json:"-"`
	Position   int       `gorm:"not null" json:"-"`
	MenuItemID uint      `gorm:"not null" json:"menu_item_id"`
	Name       string    `gorm:"type:varchar(255);not null" json:"name"`
	Price      float64   `gorm:"type:decimal(10,2);not null" json:"price"`
	Quantity   int       `gorm:"not null" json:"quantity"`
	CreatedAt  time.Time `json:"-"`
}

func (i OrderItem) Subtotal() float64 {
	return i.Price * float64(i.Quantity)
}
