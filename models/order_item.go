package models

import "time"

// OrderItem snapshots the menu item's price at order time. PriceAtOrder
// never changes afterwards, even if the menu item is repriced or deleted.
type OrderItem struct {
	ID      uint `gorm:"primaryKey" json:"id"`
	OrderID uint `gorm:"not null;index" json:"order_id"`
	// Omitting Order from JSON to avoid recursive nesting
	Order        Order     `gorm:"foreignKey:OrderID;references:ID" json:"-"`
	MenuItemID   uint      `gorm:"not null" json:"menu_item_id"`
	MenuItem     MenuItem  `gorm:"foreignKey:MenuItemID;references:ID" json:"menu_item"`
	Quantity     int       `gorm:"not null" json:"quantity"`
	PriceAtOrder float64   `gorm:"type:decimal(10,2);not null" json:"price_at_order"`
	CreatedAt    time.Time `gorm:"not null" json:"created_at"`
	UpdatedAt    time.Time `gorm:"not null" json:"updated_at"`
}
