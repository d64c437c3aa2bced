package routes

import (
	"github.com/Loki3341/sales-savvy/pkg/config"
	"github.com/Loki3341/sales-savvy/pkg/metrics"
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

// SetupRoutes is the single entry-point that wires up all route groups.
func SetupRoutes(r *gin.Engine, db *gorm.DB, cfg *config.Config) {
	// Public catalog routes (no middleware)
	SetupCatalogRoutes(r, db)

	// User routes (JWT-protected): profile, cart, checkout, orders, payments
	SetupUserRoutes(r, db, cfg)
	SetupCheckoutRoutes(r, db, cfg)
	SetupOrderRoutes(r, db, cfg)
	SetupPaymentRoutes(r, db, cfg)

	// Admin routes (JWT + role)
	SetupAdminRoutes(r, db, cfg)

	// Prometheus scrape endpoint
	r.GET("/metrics", gin.WrapH(metrics.Handler()))
}
