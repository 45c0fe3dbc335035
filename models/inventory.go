package models

import "time"

type InventoryUnit string

const (
	UnitPiece      InventoryUnit = "pcs"
	UnitKilogram   InventoryUnit = "kg"
	UnitGram       InventoryUnit = "g"
	UnitLiter      InventoryUnit = "l"
	UnitMilliliter InventoryUnit = "ml"
	UnitPack       InventoryUnit = "pack"
)

func (u InventoryUnit) Valid() bool {
	switch u {
	case UnitPiece, UnitKilogram, UnitGram, UnitLiter, UnitMilliliter, UnitPack:
		return true
	}
	return false
}

// Inventory is keyed by the menu item's ID rather than its display name,
// so renaming a menu item cannot orphan its stock record.
type Inventory struct {
	ID            uint          `gorm:"primaryKey" json:"id"`
	MenuItemID    uint          `gorm:"not null;uniqueIndex" json:"menu_item_id"`
	ItemName      string        `gorm:"type:varchar(255);not null" json:"item_name"`
	Quantity      int           `gorm:"not null;default:0" json:"quantity"`
	Unit          InventoryUnit `gorm:"type:varchar(10);not null;default:'pcs'" json:"unit"`
	MinStockLevel int           `gorm:"not null;default:0" json:"min_stock_level"`
	LastUpdated   time.Time     `gorm:"not null" json:"last_updated"`
	CreatedAt     time.Time     `gorm:"not null" json:"created_at"`
}
