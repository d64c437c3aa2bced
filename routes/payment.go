package routes

import (
	paymentControllers "github.com/Loki3341/sales-savvy/controllers/payment"
	"github.com/Loki3341/sales-savvy/middleware"
	"github.com/Loki3341/sales-savvy/pkg/config"
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

func SetupPaymentRoutes(r *gin.Engine, db *gorm.DB, cfg *config.Config) {
	client := paymentControllers.NewClient(cfg)

	payments := r.Group("/api/payments")
	{
		// Gateway order creation (authenticated frontend call)
		payments.POST("/create",
			middleware.ValidateToken(cfg.JWTSecret),
			paymentControllers.CreatePaymentHandler(db, client),
		)

		// Verification callback: authenticated by the gateway signature,
		// not by a user token.
		payments.POST("/verify", paymentControllers.VerifyPaymentHandler(db, client))
	}
}
