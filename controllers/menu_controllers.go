package controllers

import (
	"fmt"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/dinehub/restaurant-backend/models"
	"github.com/dinehub/restaurant-backend/utils"
)

type MenuController struct {
	DB *gorm.DB
}

func NewMenuController(db *gorm.DB) *MenuController {
	return &MenuController{DB: db}
}

// GetAllMenuItems -> list menu items, optionally filtered by category
func (mc *MenuController) GetAllMenuItems(c *gin.Context) {
	query := mc.DB
	if category := c.Query("category"); category != "" {
		query = query.Where("category = ?", category)
	}

	var items []models.MenuItem
	if err := query.Find(&items).Error; err != nil {
		utils.RespondAppError(c, err)
		return
	}
	utils.RespondJSON(c, http.StatusOK, "List of menu items", items)
}

// CreateMenuItem -> name must be unique across the menu
func (mc *MenuController) CreateMenuItem(c *gin.Context) {
	var req struct {
		Name        string              `json:"name" binding:"required"`
		Price       float64             `json:"price"`
		Category    models.MenuCategory `json:"category"`
		Description string              `json:"description"`
		IsAvailable *bool               `json:"is_available"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.RespondError(c, http.StatusBadRequest, err)
		return
	}

	if req.Price < 0 {
		utils.RespondAppError(c, fmt.Errorf("%w: price must not be negative", utils.ErrInvalidArgument))
		return
	}
	if req.Category == "" {
		req.Category = models.CategoryOther
	}
	if !req.Category.Valid() {
		utils.RespondAppError(c, fmt.Errorf("%w: unknown category %q", utils.ErrInvalidArgument, req.Category))
		return
	}

	var count int64
	if err := mc.DB.Model(&models.MenuItem{}).Where("name = ?", req.Name).Count(&count).Error; err != nil {
		utils.RespondAppError(c, err)
		return
	}
	if count > 0 {
		utils.RespondAppError(c, fmt.Errorf("%w: menu item %q already exists", utils.ErrConflict, req.Name))
		return
	}

	item := models.MenuItem{
		Name:        req.Name,
		Price:       req.Price,
		Category:    req.Category,
		Description: req.Description,
		IsAvailable: true,
	}
	if req.IsAvailable != nil {
		item.IsAvailable = *req.IsAvailable
	}

	if err := mc.DB.Create(&item).Error; err != nil {
		utils.RespondAppError(c, err)
		return
	}

	utils.InfoLogger.Printf("menu item created: %s (%.2f)", item.Name, item.Price)
	utils.RespondJSON(c, http.StatusCreated, "Menu item created", item)
}

// GetMenuItemByID
func (mc *MenuController) GetMenuItemByID(c *gin.Context) {
	id, _ := strconv.Atoi(c.Param("menu_id"))

	var item models.MenuItem
	if err := mc.DB.First(&item, id).Error; err != nil {
		respondLookupError(c, err)
		return
	}
	utils.RespondJSON(c, http.StatusOK, "Menu item detail", item)
}

// UpdateMenuItem -> partial update; name uniqueness is re-checked against
// every other record
func (mc *MenuController) UpdateMenuItem(c *gin.Context) {
	id, _ := strconv.Atoi(c.Param("menu_id"))

	var item models.MenuItem
	if err := mc.DB.First(&item, id).Error; err != nil {
		respondLookupError(c, err)
		return
	}

	var req struct {
		Name        *string              `json:"name"`
		Price       *float64             `json:"price"`
		Category    *models.MenuCategory `json:"category"`
		Description *string              `json:"description"`
		IsAvailable *bool                `json:"is_available"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.RespondError(c, http.StatusBadRequest, err)
		return
	}

	if req.Name != nil {
		var count int64
		if err := mc.DB.Model(&models.MenuItem{}).
			Where("name = ? AND id <> ?", *req.Name, item.ID).
			Count(&count).Error; err != nil {
			utils.RespondAppError(c, err)
			return
		}
		if count > 0 {
			utils.RespondAppError(c, fmt.Errorf("%w: menu item %q already exists", utils.ErrConflict, *req.Name))
			return
		}
		item.Name = *req.Name
	}
	if req.Price != nil {
		if *req.Price < 0 {
			utils.RespondAppError(c, fmt.Errorf("%w: price must not be negative", utils.ErrInvalidArgument))
			return
		}
		item.Price = *req.Price
	}
	if req.Category != nil {
		if !req.Category.Valid() {
			utils.RespondAppError(c, fmt.Errorf("%w: unknown category %q", utils.ErrInvalidArgument, *req.Category))
			return
		}
		item.Category = *req.Category
	}
	if req.Description != nil {
		item.Description = *req.Description
	}
	if req.IsAvailable != nil {
		item.IsAvailable = *req.IsAvailable
	}

	if err := mc.DB.Save(&item).Error; err != nil {
		utils.RespondAppError(c, err)
		return
	}
	utils.RespondJSON(c, http.StatusOK, "Menu item updated", item)
}

// DeleteMenuItem -> existing orders keep their price snapshots
func (mc *MenuController) DeleteMenuItem(c *gin.Context) {
	id, _ := strconv.Atoi(c.Param("menu_id"))

	var item models.MenuItem
	if err := mc.DB.First(&item, id).Error; err != nil {
		respondLookupError(c, err)
		return
	}

	if err := mc.DB.Delete(&item).Error; err != nil {
		utils.RespondAppError(c, err)
		return
	}
	utils.RespondJSON(c, http.StatusOK, "Menu item deleted", gin.H{"menu_id": item.ID})
}
