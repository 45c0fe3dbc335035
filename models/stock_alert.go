package models

import "time"

// StockAlert is the persisted low-stock signal. Alerts are observational:
// raising one never blocks the operation that triggered it.
type StockAlert struct {
	ID            uint      `gorm:"primaryKey" json:"id"`
	InventoryID   uint      `gorm:"not null;index" json:"inventory_id"`
	ItemName      string    `gorm:"type:varchar(255);not null" json:"item_name"`
	Quantity      int       `gorm:"not null" json:"quantity"`
	MinStockLevel int       `gorm:"not null" json:"min_stock_level"`
	CreatedAt     time.Time `gorm:"not null" json:"created_at"`
}
