package controllers

import (
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/dinehub/restaurant-backend/models"
	"github.com/dinehub/restaurant-backend/services"
	"github.com/dinehub/restaurant-backend/utils"
)

type InventoryController struct {
	DB      *gorm.DB
	Service *services.InventoryService
}

func NewInventoryController(db *gorm.DB) *InventoryController {
	return &InventoryController{
		DB:      db,
		Service: services.NewInventoryService(db),
	}
}

// GetAllInventory
func (ic *InventoryController) GetAllInventory(c *gin.Context) {
	var records []models.Inventory
	if err := ic.DB.Order("item_name asc").Find(&records).Error; err != nil {
		utils.RespondAppError(c, err)
		return
	}
	utils.RespondJSON(c, http.StatusOK, "List of inventory records", records)
}

// CreateInventory -> one record per menu item; the menu item must exist
func (ic *InventoryController) CreateInventory(c *gin.Context) {
	var req struct {
		MenuItemID    uint                 `json:"menu_item_id" binding:"required"`
		Quantity      int                  `json:"quantity"`
		Unit          models.InventoryUnit `json:"unit"`
		MinStockLevel int                  `json:"min_stock_level"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.RespondError(c, http.StatusBadRequest, err)
		return
	}

	if req.Quantity < 0 {
		utils.RespondAppError(c, fmt.Errorf("%w: quantity must not be negative", utils.ErrInvalidArgument))
		return
	}
	if req.MinStockLevel < 0 {
		utils.RespondAppError(c, fmt.Errorf("%w: min_stock_level must not be negative", utils.ErrInvalidArgument))
		return
	}
	if req.Unit == "" {
		req.Unit = models.UnitPiece
	}
	if !req.Unit.Valid() {
		utils.RespondAppError(c, fmt.Errorf("%w: unknown unit %q", utils.ErrInvalidArgument, req.Unit))
		return
	}

	var menuItem models.MenuItem
	if err := ic.DB.First(&menuItem, req.MenuItemID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			err = fmt.Errorf("%w: menu item %d", utils.ErrNotFound, req.MenuItemID)
		}
		utils.RespondAppError(c, err)
		return
	}

	var count int64
	if err := ic.DB.Model(&models.Inventory{}).Where("menu_item_id = ?", req.MenuItemID).Count(&count).Error; err != nil {
		utils.RespondAppError(c, err)
		return
	}
	if count > 0 {
		utils.RespondAppError(c, fmt.Errorf("%w: inventory for %q already exists", utils.ErrConflict, menuItem.Name))
		return
	}

	inv := models.Inventory{
		MenuItemID:    menuItem.ID,
		ItemName:      menuItem.Name,
		Quantity:      req.Quantity,
		Unit:          req.Unit,
		MinStockLevel: req.MinStockLevel,
		LastUpdated:   time.Now(),
	}
	if err := ic.DB.Create(&inv).Error; err != nil {
		utils.RespondAppError(c, err)
		return
	}

	// A record created at or below its threshold is already low
	if err := ic.Service.CheckLowStock(ic.DB, &inv); err != nil {
		utils.RespondAppError(c, err)
		return
	}

	utils.RespondJSON(c, http.StatusCreated, "Inventory record created", inv)
}

// GetInventoryByID
func (ic *InventoryController) GetInventoryByID(c *gin.Context) {
	id, _ := strconv.Atoi(c.Param("inventory_id"))

	var inv models.Inventory
	if err := ic.DB.First(&inv, id).Error; err != nil {
		respondLookupError(c, err)
		return
	}
	utils.RespondJSON(c, http.StatusOK, "Inventory detail", inv)
}

// UpdateInventory -> partial update; every quantity or threshold change
// re-runs the low-stock check
func (ic *InventoryController) UpdateInventory(c *gin.Context) {
	id, _ := strconv.Atoi(c.Param("inventory_id"))

	var inv models.Inventory
	if err := ic.DB.First(&inv, id).Error; err != nil {
		respondLookupError(c, err)
		return
	}

	var req struct {
		ItemName      *string               `json:"item_name"`
		Quantity      *int                  `json:"quantity"`
		Unit          *models.InventoryUnit `json:"unit"`
		MinStockLevel *int                  `json:"min_stock_level"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.RespondError(c, http.StatusBadRequest, err)
		return
	}

	if req.ItemName != nil {
		inv.ItemName = *req.ItemName
	}
	if req.Quantity != nil {
		if *req.Quantity < 0 {
			utils.RespondAppError(c, fmt.Errorf("%w: quantity must not be negative", utils.ErrInvalidArgument))
			return
		}
		inv.Quantity = *req.Quantity
	}
	if req.Unit != nil {
		if !req.Unit.Valid() {
			utils.RespondAppError(c, fmt.Errorf("%w: unknown unit %q", utils.ErrInvalidArgument, *req.Unit))
			return
		}
		inv.Unit = *req.Unit
	}
	if req.MinStockLevel != nil {
		if *req.MinStockLevel < 0 {
			utils.RespondAppError(c, fmt.Errorf("%w: min_stock_level must not be negative", utils.ErrInvalidArgument))
			return
		}
		inv.MinStockLevel = *req.MinStockLevel
	}

	inv.LastUpdated = time.Now()
	if err := ic.DB.Save(&inv).Error; err != nil {
		utils.RespondAppError(c, err)
		return
	}
	if err := ic.Service.CheckLowStock(ic.DB, &inv); err != nil {
		utils.RespondAppError(c, err)
		return
	}

	utils.RespondJSON(c, http.StatusOK, "Inventory updated", inv)
}

// DeleteInventory
func (ic *InventoryController) DeleteInventory(c *gin.Context) {
	id, _ := strconv.Atoi(c.Param("inventory_id"))

	var inv models.Inventory
	if err := ic.DB.First(&inv, id).Error; err != nil {
		respondLookupError(c, err)
		return
	}

	if err := ic.DB.Delete(&inv).Error; err != nil {
		utils.RespondAppError(c, err)
		return
	}
	utils.RespondJSON(c, http.StatusOK, "Inventory record deleted", gin.H{"inventory_id": inv.ID})
}
