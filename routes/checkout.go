package routes

import (
	checkoutControllers "github.com/Loki3341/sales-savvy/controllers/checkout"
	"github.com/Loki3341/sales-savvy/middleware"
	"github.com/Loki3341/sales-savvy/notifications"
	"github.com/Loki3341/sales-savvy/pkg/config"
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

func SetupCheckoutRoutes(r *gin.Engine, db *gorm.DB, cfg *config.Config) {
	var mailer *notifications.Mailer
	if cfg.SendGridAPIKey != "" {
		mailer = notifications.NewMailer(cfg.SendGridAPIKey, cfg.MailFrom)
	}

	checkout := r.Group("/api/checkout")
	checkout.Use(middleware.ValidateToken(cfg.JWTSecret))
	{
		checkout.POST("/process", checkoutControllers.ProcessCheckoutHandler(db, mailer))
		checkout.POST("/validate", checkoutControllers.ValidateCheckoutHandler(db))
	}
}
