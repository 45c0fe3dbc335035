package services

import (
	"errors"
	"time"

	"gorm.io/gorm"

	"github.com/dinehub/restaurant-backend/models"
	"github.com/dinehub/restaurant-backend/utils"
)

// StockDelta is one quantity change applied to the stock of a menu item.
// Inventory rows are resolved by MenuItemID; Name is only used in log
// output so restocking still works after a menu item is renamed or deleted.
type StockDelta struct {
	MenuItemID uint
	Name       string
	Quantity   int
}

type InventoryService struct {
	DB *gorm.DB
}

func NewInventoryService(db *gorm.DB) *InventoryService {
	return &InventoryService{DB: db}
}

// Adjust applies the deltas on the given handle, which may be a transaction
// opened by the caller (order placement and cancellation run it inside
// theirs). A menu item without an inventory record is skipped with a
// warning; the remaining deltas still apply. Quantities clamp at zero —
// an over-decrement discards the remainder rather than going negative.
func (s *InventoryService) Adjust(tx *gorm.DB, deltas []StockDelta, decrement bool) error {
	for _, d := range deltas {
		var inv models.Inventory
		if err := tx.Where("menu_item_id = ?", d.MenuItemID).First(&inv).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				utils.InfoLogger.Warnf("no inventory record for %q (menu item %d), skipping adjustment", d.Name, d.MenuItemID)
				continue
			}
			return err
		}

		if decrement {
			inv.Quantity -= d.Quantity
		} else {
			inv.Quantity += d.Quantity
		}
		if inv.Quantity < 0 {
			inv.Quantity = 0
		}
		inv.LastUpdated = time.Now()

		if err := tx.Save(&inv).Error; err != nil {
			return err
		}
		if err := s.CheckLowStock(tx, &inv); err != nil {
			return err
		}
	}
	return nil
}

// CheckLowStock raises a stock alert when quantity has fallen to or below
// the minimum level. The alert is observational and never fails the
// operation that triggered the re-check.
func (s *InventoryService) CheckLowStock(tx *gorm.DB, inv *models.Inventory) error {
	if inv.Quantity > inv.MinStockLevel {
		return nil
	}

	alert := models.StockAlert{
		InventoryID:   inv.ID,
		ItemName:      inv.ItemName,
		Quantity:      inv.Quantity,
		MinStockLevel: inv.MinStockLevel,
	}
	if err := tx.Create(&alert).Error; err != nil {
		utils.ErrorLogger.Errorf("failed to record stock alert for %q: %v", inv.ItemName, err)
		return nil
	}

	utils.ErrorLogger.Warnf("low stock: %q down to %d (min %d)", inv.ItemName, inv.Quantity, inv.MinStockLevel)
	return nil
}
