package models

import "time"

type MenuCategory string

const (
	CategoryAppetizer  MenuCategory = "appetizer"
	CategoryMainCourse MenuCategory = "main_course"
	CategoryDessert    MenuCategory = "dessert"
	CategoryBeverage   MenuCategory = "beverage"
	CategoryOther      MenuCategory = "other"
)

func (c MenuCategory) Valid() bool {
	switch c {
	case CategoryAppetizer, CategoryMainCourse, CategoryDessert, CategoryBeverage, CategoryOther:
		return true
	}
	return false
}

type MenuItem struct {
	ID          uint         `gorm:"primaryKey" json:"id"`
	Name        string       `gorm:"type:varchar(255);not null;uniqueIndex" json:"name"`
	Price       float64      `gorm:"type:decimal(10,2);not null" json:"price"`
	Category    MenuCategory `gorm:"type:varchar(20);not null;default:'other'" json:"category"`
	Description string       `gorm:"type:text" json:"description"`
	IsAvailable bool         `gorm:"not null" json:"is_available"`
	CreatedAt   time.Time    `gorm:"not null" json:"created_at"`
	UpdatedAt   time.Time    `gorm:"not null" json:"updated_at"`
}
