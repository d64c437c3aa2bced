package routes

import (
	orderControllers "github.com/Loki3341/sales-savvy/controllers/order"
	"github.com/Loki3341/sales-savvy/middleware"
	"github.com/Loki3341/sales-savvy/pkg/config"
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

func SetupOrderRoutes(r *gin.Engine, db *gorm.DB, cfg *config.Config) {
	orders := r.Group("/api/orders")
	orders.Use(middleware.ValidateToken(cfg.JWTSecret))
	{
		// Orders for the authenticated user
		orders.GET("/user/current", orderControllers.GetCurrentUserOrdersHandler(db))

		// Single order (owner or admin)
		orders.GET("/:orderID", orderControllers.GetOrderByIDHandler(db))

		// Cancel (owner, PENDING/CONFIRMED only)
		orders.PUT("/:orderID/cancel", orderControllers.CancelOrderHandler(db, cfg.RestockOnCancel))
	}
}
