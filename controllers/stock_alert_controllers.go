package controllers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/dinehub/restaurant-backend/models"
	"github.com/dinehub/restaurant-backend/utils"
)

// StockAlertController exposes the low-stock alerts raised by the
// inventory adjuster. Read and acknowledge only; alerts are created by
// the engine, never through the API.
type StockAlertController struct {
	DB *gorm.DB
}

func NewStockAlertController(db *gorm.DB) *StockAlertController {
	return &StockAlertController{DB: db}
}

// GetAllStockAlerts -> newest first
func (sc *StockAlertController) GetAllStockAlerts(c *gin.Context) {
	var alerts []models.StockAlert
	if err := sc.DB.Order("created_at desc").Find(&alerts).Error; err != nil {
		utils.RespondAppError(c, err)
		return
	}
	utils.RespondJSON(c, http.StatusOK, "List of stock alerts", alerts)
}

// DeleteStockAlert -> acknowledge and clear
func (sc *StockAlertController) DeleteStockAlert(c *gin.Context) {
	id, _ := strconv.Atoi(c.Param("alert_id"))

	var alert models.StockAlert
	if err := sc.DB.First(&alert, id).Error; err != nil {
		respondLookupError(c, err)
		return
	}

	if err := sc.DB.Delete(&alert).Error; err != nil {
		utils.RespondAppError(c, err)
		return
	}
	utils.RespondJSON(c, http.StatusOK, "Stock alert cleared", gin.H{"alert_id": alert.ID})
}
