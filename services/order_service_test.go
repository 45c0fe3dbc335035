package services_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"github.com/dinehub/restaurant-backend/models"
	"github.com/dinehub/restaurant-backend/services"
	"github.com/dinehub/restaurant-backend/utils"
)

func setupOrderServiceDB(t *testing.T) *gorm.DB {
	utils.InitLogger()
	db, err := gorm.Open(sqlite.Open("file:"+t.Name()+"?mode=memory&cache=shared"), &gorm.Config{
		DisableForeignKeyConstraintWhenMigrating: true,
	})
	if err != nil {
		t.Fatalf("failed to connect database: %v", err)
	}
	if err := db.AutoMigrate(
		&models.MenuItem{}, &models.Table{}, &models.Order{}, &models.OrderItem{},
		&models.Inventory{}, &models.StockAlert{},
	); err != nil {
		t.Fatalf("failed to migrate: %v", err)
	}
	return db
}

func seedOrderFixtures(db *gorm.DB) (models.Table, models.MenuItem, models.MenuItem) {
	table := models.Table{TableNumber: 1, Capacity: 4, IsAvailable: true}
	db.Create(&table)

	burger := models.MenuItem{Name: "Burger", Price: 8.50, Category: models.CategoryMainCourse, IsAvailable: true}
	fries := models.MenuItem{Name: "Fries", Price: 3.25, Category: models.CategoryAppetizer, IsAvailable: true}
	db.Create(&burger)
	db.Create(&fries)

	db.Create(&models.Inventory{MenuItemID: burger.ID, ItemName: "Burger", Quantity: 10, Unit: models.UnitPiece, MinStockLevel: 2, LastUpdated: time.Now()})
	db.Create(&models.Inventory{MenuItemID: fries.ID, ItemName: "Fries", Quantity: 20, Unit: models.UnitPiece, MinStockLevel: 5, LastUpdated: time.Now()})

	return table, burger, fries
}

func TestPlaceOrderComputesTotalFromSnapshots(t *testing.T) {
	db := setupOrderServiceDB(t)
	svc := services.NewOrderService(db)
	table, burger, fries := seedOrderFixtures(db)

	order, err := svc.Place(table.ID, []services.OrderItemRequest{
		{MenuItemID: burger.ID, Quantity: 2},
		{MenuItemID: fries.ID, Quantity: 1},
	})
	assert.NoError(t, err)
	assert.Equal(t, models.OrderPending, order.Status)
	assert.InDelta(t, 20.25, order.TotalAmount, 0.001)
	assert.Len(t, order.OrderItems, 2)
	assert.InDelta(t, 8.50, order.OrderItems[0].PriceAtOrder, 0.001)

	// Repricing the menu item later must not touch the stored order.
	db.Model(&models.MenuItem{}).Where("id = ?", burger.ID).Update("price", 99.99)

	var got models.Order
	db.Preload("OrderItems").First(&got, order.ID)
	assert.InDelta(t, 20.25, got.TotalAmount, 0.001)
	assert.InDelta(t, 8.50, got.OrderItems[0].PriceAtOrder, 0.001)
}

func TestPlaceOrderDecrementsInventory(t *testing.T) {
	db := setupOrderServiceDB(t)
	svc := services.NewOrderService(db)
	table, burger, _ := seedOrderFixtures(db)

	_, err := svc.Place(table.ID, []services.OrderItemRequest{{MenuItemID: burger.ID, Quantity: 3}})
	assert.NoError(t, err)

	var inv models.Inventory
	db.Where("menu_item_id = ?", burger.ID).First(&inv)
	assert.Equal(t, 7, inv.Quantity)
}

func TestPlaceOrderWithoutInventoryRecordStillSucceeds(t *testing.T) {
	db := setupOrderServiceDB(t)
	svc := services.NewOrderService(db)
	table, _, _ := seedOrderFixtures(db)

	cake := models.MenuItem{Name: "Cake", Price: 5, Category: models.CategoryDessert, IsAvailable: true}
	db.Create(&cake)

	order, err := svc.Place(table.ID, []services.OrderItemRequest{{MenuItemID: cake.ID, Quantity: 1}})
	assert.NoError(t, err)
	assert.NotZero(t, order.ID)
}

func TestPlaceOrderUnavailableItemConflict(t *testing.T) {
	db := setupOrderServiceDB(t)
	svc := services.NewOrderService(db)
	table, burger, _ := seedOrderFixtures(db)

	db.Model(&models.MenuItem{}).Where("id = ?", burger.ID).Update("is_available", false)

	_, err := svc.Place(table.ID, []services.OrderItemRequest{{MenuItemID: burger.ID, Quantity: 1}})
	assert.ErrorIs(t, err, utils.ErrConflict)

	// Nothing persisted and no stock touched.
	var orders int64
	db.Model(&models.Order{}).Count(&orders)
	assert.Equal(t, int64(0), orders)

	var inv models.Inventory
	db.Where("menu_item_id = ?", burger.ID).First(&inv)
	assert.Equal(t, 10, inv.Quantity)
}

func TestPlaceOrderValidation(t *testing.T) {
	db := setupOrderServiceDB(t)
	svc := services.NewOrderService(db)
	table, burger, _ := seedOrderFixtures(db)

	_, err := svc.Place(0, []services.OrderItemRequest{{MenuItemID: burger.ID, Quantity: 1}})
	assert.ErrorIs(t, err, utils.ErrInvalidArgument)

	_, err = svc.Place(table.ID, nil)
	assert.ErrorIs(t, err, utils.ErrInvalidArgument)

	_, err = svc.Place(table.ID, []services.OrderItemRequest{{MenuItemID: burger.ID, Quantity: 0}})
	assert.ErrorIs(t, err, utils.ErrInvalidArgument)

	_, err = svc.Place(9999, []services.OrderItemRequest{{MenuItemID: burger.ID, Quantity: 1}})
	assert.ErrorIs(t, err, utils.ErrNotFound)

	_, err = svc.Place(table.ID, []services.OrderItemRequest{{MenuItemID: 9999, Quantity: 1}})
	assert.ErrorIs(t, err, utils.ErrNotFound)

	// The item lookup wins over the quantity check.
	_, err = svc.Place(table.ID, []services.OrderItemRequest{{MenuItemID: 9999, Quantity: 0}})
	assert.ErrorIs(t, err, utils.ErrNotFound)
}

func TestCompleteOrderStampsCompletionTime(t *testing.T) {
	db := setupOrderServiceDB(t)
	svc := services.NewOrderService(db)
	table, burger, _ := seedOrderFixtures(db)

	order, err := svc.Place(table.ID, []services.OrderItemRequest{{MenuItemID: burger.ID, Quantity: 1}})
	assert.NoError(t, err)
	assert.Nil(t, order.CompletedAt)

	updated, err := svc.SetStatus(order.ID, models.OrderCompleted)
	assert.NoError(t, err)
	assert.NotNil(t, updated.CompletedAt)
}

func TestCancelOrderRestocksInventory(t *testing.T) {
	db := setupOrderServiceDB(t)
	svc := services.NewOrderService(db)
	table, burger, fries := seedOrderFixtures(db)

	order, err := svc.Place(table.ID, []services.OrderItemRequest{
		{MenuItemID: burger.ID, Quantity: 2},
		{MenuItemID: fries.ID, Quantity: 4},
	})
	assert.NoError(t, err)

	_, err = svc.SetStatus(order.ID, models.OrderCancelled)
	assert.NoError(t, err)

	var inv models.Inventory
	db.Where("menu_item_id = ?", burger.ID).First(&inv)
	assert.Equal(t, 10, inv.Quantity)
	var friesInv models.Inventory
	db.Where("menu_item_id = ?", fries.ID).First(&friesInv)
	assert.Equal(t, 20, friesInv.Quantity)
}

func TestCancelOrderRestocksAfterMenuItemDeleted(t *testing.T) {
	db := setupOrderServiceDB(t)
	svc := services.NewOrderService(db)
	table, burger, _ := seedOrderFixtures(db)

	order, err := svc.Place(table.ID, []services.OrderItemRequest{{MenuItemID: burger.ID, Quantity: 2}})
	assert.NoError(t, err)

	// The inventory key is the menu item ID, so the restock survives the
	// menu row disappearing.
	db.Delete(&models.MenuItem{}, burger.ID)

	_, err = svc.SetStatus(order.ID, models.OrderCancelled)
	assert.NoError(t, err)

	var inv models.Inventory
	db.Where("menu_item_id = ?", burger.ID).First(&inv)
	assert.Equal(t, 10, inv.Quantity)
}

func TestOrderStatusTransitionsValidated(t *testing.T) {
	db := setupOrderServiceDB(t)
	svc := services.NewOrderService(db)
	table, burger, _ := seedOrderFixtures(db)

	order, err := svc.Place(table.ID, []services.OrderItemRequest{{MenuItemID: burger.ID, Quantity: 1}})
	assert.NoError(t, err)

	_, err = svc.SetStatus(order.ID, "shipped")
	assert.ErrorIs(t, err, utils.ErrInvalidArgument)

	_, err = svc.SetStatus(order.ID, models.OrderPending)
	assert.ErrorIs(t, err, utils.ErrInvalidArgument)

	_, err = svc.SetStatus(order.ID, models.OrderPreparing)
	assert.NoError(t, err)

	_, err = svc.SetStatus(order.ID, models.OrderCompleted)
	assert.NoError(t, err)

	// completed is terminal
	_, err = svc.SetStatus(order.ID, models.OrderPending)
	assert.ErrorIs(t, err, utils.ErrInvalidArgument)

	_, err = svc.SetStatus(9999, models.OrderCancelled)
	assert.ErrorIs(t, err, utils.ErrNotFound)
}
