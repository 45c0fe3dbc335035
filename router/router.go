package router

import (
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/dinehub/restaurant-backend/controllers"
	"github.com/dinehub/restaurant-backend/middlewares"
)

func SetupRouter(db *gorm.DB, limiter *middlewares.RateLimiter) *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery())

	r.Use(middlewares.SecurityHeaders())
	r.Use(middlewares.CORSMiddleware())
	r.Use(middlewares.LoggerMiddleware())
	r.Use(limiter.RateLimit())

	menuCtrl := controllers.NewMenuController(db)
	tableCtrl := controllers.NewTableController(db)
	orderCtrl := controllers.NewOrderController(db)
	reservationCtrl := controllers.NewReservationController(db)
	inventoryCtrl := controllers.NewInventoryController(db)
	alertCtrl := controllers.NewStockAlertController(db)

	r.GET("/ping", func(c *gin.Context) {
		c.JSON(200, gin.H{"message": "pong"})
	})

	// MENU
	r.GET("/menu", menuCtrl.GetAllMenuItems)
	r.GET("/menu/:menu_id", menuCtrl.GetMenuItemByID)
	r.POST("/menu", menuCtrl.CreateMenuItem)            // Private
	r.PATCH("/menu/:menu_id", menuCtrl.UpdateMenuItem)  // Private
	r.DELETE("/menu/:menu_id", menuCtrl.DeleteMenuItem) // Private

	// TABLES
	r.GET("/tables", tableCtrl.GetAllTables)
	r.GET("/tables/stats", tableCtrl.GetTableStats)
	r.GET("/tables/:table_id", tableCtrl.GetTableByID)
	r.POST("/tables", tableCtrl.CreateTable)                                  // Private
	r.PATCH("/tables/:table_id", tableCtrl.UpdateTable)                       // Private
	r.PATCH("/tables/:table_id/availability", tableCtrl.SetTableAvailability) // Private
	r.DELETE("/tables/:table_id", tableCtrl.DeleteTable)                      // Private

	// ORDERS
	r.POST("/orders", orderCtrl.CreateOrder)
	r.GET("/orders", orderCtrl.GetAllOrders)
	r.GET("/orders/:order_id", orderCtrl.GetOrderByID)
	r.PATCH("/orders/:order_id/status", orderCtrl.UpdateOrderStatus) // Private
	r.DELETE("/orders/:order_id", orderCtrl.DeleteOrder)             // Private

	// RESERVATIONS
	r.POST("/reservations", reservationCtrl.CreateReservation)
	r.GET("/reservations", reservationCtrl.GetAllReservations)
	r.GET("/reservations/:reservation_id", reservationCtrl.GetReservationByID)
	r.PATCH("/reservations/:reservation_id/status", reservationCtrl.UpdateReservationStatus) // Private
	r.DELETE("/reservations/:reservation_id", reservationCtrl.DeleteReservation)             // Private

	// INVENTORY (Private)
	r.GET("/inventory", inventoryCtrl.GetAllInventory)
	r.GET("/inventory/:inventory_id", inventoryCtrl.GetInventoryByID)
	r.POST("/inventory", inventoryCtrl.CreateInventory)
	r.PATCH("/inventory/:inventory_id", inventoryCtrl.UpdateInventory)
	r.DELETE("/inventory/:inventory_id", inventoryCtrl.DeleteInventory)

	// STOCK ALERTS (Private)
	r.GET("/stock-alerts", alertCtrl.GetAllStockAlerts)
	r.DELETE("/stock-alerts/:alert_id", alertCtrl.DeleteStockAlert)

	return r
}
