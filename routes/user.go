package routes

import (
	cartControllers "github.com/Loki3341/sales-savvy/controllers/cart"
	userControllers "github.com/Loki3341/sales-savvy/controllers/user"
	"github.com/Loki3341/sales-savvy/middleware"
	"github.com/Loki3341/sales-savvy/pkg/config"
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

// SetupUserRoutes registers profile and cart endpoints. Requires JWT.
func SetupUserRoutes(r *gin.Engine, db *gorm.DB, cfg *config.Config) {
	userGroup := r.Group("/api/users")
	userGroup.Use(middleware.ValidateToken(cfg.JWTSecret))
	{
		userGroup.GET("/me", userControllers.GetCurrentUser(db))
		userGroup.PUT("/me", userControllers.UpdateCurrentUser(db))
	}

	cartGroup := r.Group("/api/cart")
	cartGroup.Use(middleware.ValidateToken(cfg.JWTSecret))
	{
		cartGroup.GET("", cartControllers.GetCartHandler(db))
		cartGroup.POST("", cartControllers.AddCartItemHandler(db))
		cartGroup.PUT("/:product_id", cartControllers.UpdateCartItemHandler(db))
		cartGroup.DELETE("/:product_id", cartControllers.DeleteCartItemHandler(db))
		cartGroup.DELETE("", cartControllers.ClearCartHandler(db))
	}
}
