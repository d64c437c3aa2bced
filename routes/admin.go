package routes

import (
	orderControllers "github.com/Loki3341/sales-savvy/controllers/order"
	productControllers "github.com/Loki3341/sales-savvy/controllers/product"
	"github.com/Loki3341/sales-savvy/middleware"
	"github.com/Loki3341/sales-savvy/pkg/config"
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

// SetupAdminRoutes registers catalog management and order administration.
// Requires JWT plus the admin role claim.
func SetupAdminRoutes(r *gin.Engine, db *gorm.DB, cfg *config.Config) {
	admin := r.Group("/api/admin")
	admin.Use(middleware.ValidateToken(cfg.JWTSecret), middleware.RequireAdmin())
	{
		// Catalog management
		admin.POST("/products", productControllers.CreateProduct(db))
		admin.PUT("/products/:id", productControllers.UpdateProduct(db))
		admin.DELETE("/products/:id", productControllers.DeleteProduct(db))
		admin.GET("/products/export", productControllers.ExportProductsToExcel(db))
		admin.POST("/categories", productControllers.CreateCategory(db))

		// Order administration
		admin.GET("/orders", orderControllers.GetAllOrdersHandler(db))
		admin.PUT("/orders/:orderID/status", orderControllers.UpdateOrderStatusHandler(db))

		// Real-time feed of newly placed orders
		admin.GET("/orders/ws", orderControllers.OrderWebSocketHandler)
	}
}
