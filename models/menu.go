package models

import "time"

type MenuCategory string

const (
	CategoryCoffee    MenuCategory = "coffee"
	CategoryTea       MenuCategory = "tea"
	CategoryPastry    MenuCategory = "pastry"
	CategoryBreakfast MenuCategory = "breakfast"
	CategoryLunch     MenuCategory = "lunch"
	CategoryDessert   MenuCategory = "dessert"
)

var MenuCategories = []MenuCategory{
	CategoryCoffee, CategoryTea, CategoryPastry, CategoryBreakfast, CategoryLunch, CategoryDessert,
}

func (c MenuCategory) Valid() bool {
	for _, known := range MenuCategories {
		if c == known {
			return true
		}
	}
	return false
}

type MenuItem struct {
	ID          uint         `gorm:"primaryKey" json:"id"`
	Name        string       `gorm:"type:varchar(255);not null" json:"name"`
	Description string       `gorm:"type:text" json:"description"`
	Price       float64      `gorm:"type:decimal(10,2);not null" json:"price"`
	Image       string       `gorm:"type:varchar(512)" json:"image"`
	Category    MenuCategory `gorm:"type:varchar(20);not null;index" json:"category"`
	CreatedAt   time.Time    `json:"created_at"`
	UpdatedAt   time.Time    `json:"updated_at"`
}
