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

type TableController struct {
	DB *gorm.DB
}

func NewTableController(db *gorm.DB) *TableController {
	return &TableController{DB: db}
}

// GetAllTables
func (tc *TableController) GetAllTables(c *gin.Context) {
	var tables []models.Table
	if err := tc.DB.Find(&tables).Error; err != nil {
		utils.RespondAppError(c, err)
		return
	}
	utils.RespondJSON(c, http.StatusOK, "List of tables", tables)
}

// CreateTable -> table number must be unique
func (tc *TableController) CreateTable(c *gin.Context) {
	var req struct {
		TableNumber int   `json:"table_number" binding:"required"`
		Capacity    int   `json:"capacity" binding:"required"`
		IsAvailable *bool `json:"is_available"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.RespondError(c, http.StatusBadRequest, err)
		return
	}

	if req.TableNumber < 1 {
		utils.RespondAppError(c, fmt.Errorf("%w: table_number must be at least 1", utils.ErrInvalidArgument))
		return
	}
	if req.Capacity < 1 {
		utils.RespondAppError(c, fmt.Errorf("%w: capacity must be at least 1", utils.ErrInvalidArgument))
		return
	}

	var count int64
	if err := tc.DB.Model(&models.Table{}).Where("table_number = ?", req.TableNumber).Count(&count).Error; err != nil {
		utils.RespondAppError(c, err)
		return
	}
	if count > 0 {
		utils.RespondAppError(c, fmt.Errorf("%w: table %d already exists", utils.ErrConflict, req.TableNumber))
		return
	}

	table := models.Table{
		TableNumber: req.TableNumber,
		Capacity:    req.Capacity,
		IsAvailable: true,
	}
	if req.IsAvailable != nil {
		table.IsAvailable = *req.IsAvailable
	}

	if err := tc.DB.Create(&table).Error; err != nil {
		utils.RespondAppError(c, err)
		return
	}

	utils.InfoLogger.Printf("table %d created (capacity %d)", table.TableNumber, table.Capacity)
	utils.RespondJSON(c, http.StatusCreated, "Table created", table)
}

// GetTableByID
func (tc *TableController) GetTableByID(c *gin.Context) {
	id, _ := strconv.Atoi(c.Param("table_id"))

	var table models.Table
	if err := tc.DB.First(&table, id).Error; err != nil {
		respondLookupError(c, err)
		return
	}
	utils.RespondJSON(c, http.StatusOK, "Table detail", table)
}

// UpdateTable -> partial update of number/capacity
func (tc *TableController) UpdateTable(c *gin.Context) {
	id, _ := strconv.Atoi(c.Param("table_id"))

	var table models.Table
	if err := tc.DB.First(&table, id).Error; err != nil {
		respondLookupError(c, err)
		return
	}

	var req struct {
		TableNumber *int `json:"table_number"`
		Capacity    *int `json:"capacity"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.RespondError(c, http.StatusBadRequest, err)
		return
	}

	if req.TableNumber != nil {
		if *req.TableNumber < 1 {
			utils.RespondAppError(c, fmt.Errorf("%w: table_number must be at least 1", utils.ErrInvalidArgument))
			return
		}
		var count int64
		if err := tc.DB.Model(&models.Table{}).
			Where("table_number = ? AND id <> ?", *req.TableNumber, table.ID).
			Count(&count).Error; err != nil {
			utils.RespondAppError(c, err)
			return
		}
		if count > 0 {
			utils.RespondAppError(c, fmt.Errorf("%w: table %d already exists", utils.ErrConflict, *req.TableNumber))
			return
		}
		table.TableNumber = *req.TableNumber
	}
	if req.Capacity != nil {
		if *req.Capacity < 1 {
			utils.RespondAppError(c, fmt.Errorf("%w: capacity must be at least 1", utils.ErrInvalidArgument))
			return
		}
		table.Capacity = *req.Capacity
	}

	if err := tc.DB.Save(&table).Error; err != nil {
		utils.RespondAppError(c, err)
		return
	}
	utils.RespondJSON(c, http.StatusOK, "Table updated", table)
}

// SetTableAvailability -> explicit boolean required. This is the admin
// override next to the reservation engine's own availability writes.
func (tc *TableController) SetTableAvailability(c *gin.Context) {
	id, _ := strconv.Atoi(c.Param("table_id"))

	var req struct {
		IsAvailable *bool `json:"is_available" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.RespondError(c, http.StatusBadRequest, err)
		return
	}

	var table models.Table
	if err := tc.DB.First(&table, id).Error; err != nil {
		respondLookupError(c, err)
		return
	}

	table.IsAvailable = *req.IsAvailable
	if err := tc.DB.Save(&table).Error; err != nil {
		utils.RespondAppError(c, err)
		return
	}

	utils.InfoLogger.Printf("table %d availability set to %t", table.TableNumber, table.IsAvailable)
	utils.RespondJSON(c, http.StatusOK, "Table availability updated", table)
}

// DeleteTable -> reservations and orders keep their dangling reference
func (tc *TableController) DeleteTable(c *gin.Context) {
	id, _ := strconv.Atoi(c.Param("table_id"))

	var table models.Table
	if err := tc.DB.First(&table, id).Error; err != nil {
		respondLookupError(c, err)
		return
	}

	if err := tc.DB.Delete(&table).Error; err != nil {
		utils.RespondAppError(c, err)
		return
	}
	utils.RespondJSON(c, http.StatusOK, "Table deleted", gin.H{"table_id": table.ID})
}

// GetTableStats -> availability counts for the floor overview
func (tc *TableController) GetTableStats(c *gin.Context) {
	var available, unavailable int64

	if err := tc.DB.Model(&models.Table{}).Where("is_available = ?", true).Count(&available).Error; err != nil {
		utils.RespondAppError(c, err)
		return
	}
	if err := tc.DB.Model(&models.Table{}).Where("is_available = ?", false).Count(&unavailable).Error; err != nil {
		utils.RespondAppError(c, err)
		return
	}

	utils.RespondJSON(c, http.StatusOK, "Table stats", gin.H{
		"available":   available,
		"unavailable": unavailable,
		"total":       available + unavailable,
	})
}
