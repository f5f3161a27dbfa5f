package models

import "time"

// StoreSettings is a single row describing the café shown on public pages.
type StoreSettings struct {
	ID        uint      `gorm:"primaryKey" json:"-"`
	Name      string    `gorm:"type:varchar(255);not null" json:"name"`
	Address   string    `gorm:"type:varchar(255)" json:"address"`
	Phone     string    `gorm:"type:varchar(50)" json:"phone"`
	Email     string    `gorm:"type:varchar(255)" json:"email"`
	UpdatedAt time.Time `json:"updated_at"`
}
