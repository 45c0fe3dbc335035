package services

import (
	"errors"
	"fmt"
	"time"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/dinehub/restaurant-backend/models"
	"github.com/dinehub/restaurant-backend/utils"
)

type OrderService struct {
	DB        *gorm.DB
	Inventory *InventoryService
}

func NewOrderService(db *gorm.DB) *OrderService {
	return &OrderService{
		DB:        db,
		Inventory: NewInventoryService(db),
	}
}

type OrderItemRequest struct {
	MenuItemID uint `json:"menu_item_id" binding:"required"`
	Quantity   int  `json:"quantity" binding:"required"`
}

// Place validates the table and every requested item, snapshots current
// prices into line items, computes the total and creates the order with
// status pending. Order creation and the matching inventory decrement run
// in one transaction, so a failed decrement never leaves a half-placed
// order behind.
func (s *OrderService) Place(tableID uint, items []OrderItemRequest) (*models.Order, error) {
	if tableID == 0 {
		return nil, fmt.Errorf("%w: table_id is required", utils.ErrInvalidArgument)
	}
	if len(items) == 0 {
		return nil, fmt.Errorf("%w: order must contain at least one item", utils.ErrInvalidArgument)
	}

	var order *models.Order
	err := s.DB.Transaction(func(tx *gorm.DB) error {
		var table models.Table
		if err := tx.First(&table, tableID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return fmt.Errorf("%w: table %d", utils.ErrNotFound, tableID)
			}
			return err
		}

		var total float64
		orderItems := make([]models.OrderItem, 0, len(items))
		deltas := make([]StockDelta, 0, len(items))
		for _, item := range items {
			var menuItem models.MenuItem
			if err := tx.First(&menuItem, item.MenuItemID).Error; err != nil {
				if errors.Is(err, gorm.ErrRecordNotFound) {
					return fmt.Errorf("%w: menu item %d", utils.ErrNotFound, item.MenuItemID)
				}
				return err
			}
			if item.Quantity <= 0 {
				return fmt.Errorf("%w: quantity for %q must be positive", utils.ErrInvalidArgument, menuItem.Name)
			}
			if !menuItem.IsAvailable {
				return fmt.Errorf("%w: %q is currently not available", utils.ErrConflict, menuItem.Name)
			}

			total += menuItem.Price * float64(item.Quantity)
			orderItems = append(orderItems, models.OrderItem{
				MenuItemID:   menuItem.ID,
				Quantity:     item.Quantity,
				PriceAtOrder: menuItem.Price,
			})
			deltas = append(deltas, StockDelta{
				MenuItemID: menuItem.ID,
				Name:       menuItem.Name,
				Quantity:   item.Quantity,
			})
		}

		order = &models.Order{
			TableID:     table.ID,
			Status:      models.OrderPending,
			TotalAmount: total,
			OrderItems:  orderItems,
		}
		if err := tx.Create(order).Error; err != nil {
			return err
		}

		return s.Inventory.Adjust(tx, deltas, true)
	})
	if err != nil {
		return nil, err
	}

	utils.InfoLogger.Printf("order %d placed for table %d, total %.2f", order.ID, order.TableID, order.TotalAmount)
	return order, nil
}

// SetStatus moves an order along the transition graph. Entering completed
// stamps CompletedAt; entering cancelled restocks every line item. Status
// change and restock share one transaction.
func (s *OrderService) SetStatus(orderID uint, next models.OrderStatus) (*models.Order, error) {
	if !next.Valid() {
		return nil, fmt.Errorf("%w: unknown order status %q", utils.ErrInvalidArgument, next)
	}

	var order models.Order
	if err := s.DB.Preload("OrderItems").First(&order, orderID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("%w: order %d", utils.ErrNotFound, orderID)
		}
		return nil, err
	}

	if !order.Status.CanTransitionTo(next) {
		return nil, fmt.Errorf("%w: order cannot go from %q to %q", utils.ErrInvalidArgument, order.Status, next)
	}

	err := s.DB.Transaction(func(tx *gorm.DB) error {
		switch next {
		case models.OrderCompleted:
			now := time.Now()
			order.CompletedAt = &now
		case models.OrderCancelled:
			deltas := make([]StockDelta, 0, len(order.OrderItems))
			for _, li := range order.OrderItems {
				// The menu item may have been deleted since the order was
				// placed; the stable ID key still lets us restock.
				name := "Unknown Item"
				var menuItem models.MenuItem
				if err := tx.First(&menuItem, li.MenuItemID).Error; err == nil {
					name = menuItem.Name
				}
				deltas = append(deltas, StockDelta{
					MenuItemID: li.MenuItemID,
					Name:       name,
					Quantity:   li.Quantity,
				})
			}
			if err := s.Inventory.Adjust(tx, deltas, false); err != nil {
				return err
			}
		}

		order.Status = next
		return tx.Omit(clause.Associations).Save(&order).Error
	})
	if err != nil {
		return nil, err
	}

	utils.InfoLogger.Printf("order %d is now %s", order.ID, order.Status)
	return &order, nil
}
