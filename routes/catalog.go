package routes

import (
	productControllers "github.com/Loki3341/sales-savvy/controllers/product"
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

// SetupCatalogRoutes registers the public read-only catalog.
func SetupCatalogRoutes(r *gin.Engine, db *gorm.DB) {
	r.GET("/api/products", productControllers.GetProducts(db))
	r.GET("/api/products/:id", productControllers.GetProductByID(db))
	r.GET("/api/categories", productControllers.GetCategories(db))
}
