package orderControllers

import (
	"errors"
	"net/http"

	"github.com/Loki3341/sales-savvy/middleware"
	"github.com/Loki3341/sales-savvy/models"
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

type UpdateOrderStatusRequest struct {
	Status string `json:"status" binding:"required"`
}

// CancelOrder moves an owned order to CANCELLED. Allowed only from PENDING
// or CONFIRMED; repeated cancels fail the same state check. Restocking is
// opt-in and happens inside the same transaction as the status flip.
func CancelOrder(db *gorm.DB, orderID string, userID uint, restock bool) (*models.Order, error) {
	var order models.Order
	err := db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Preload("Items").First(&order, "order_id = ?", orderID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return models.ErrOrderNotFound
			}
			return err
		}
		if order.UserID != userID {
			return models.ErrAccessDenied
		}
		if !order.CanCancel() {
			return &models.InvalidStateTransitionError{
				From:      order.Status,
				Attempted: models.OrderStatusCancelled,
			}
		}

		if restock {
			for _, item := range order.Items {
				if err := tx.Model(&models.Product{}).
					Where("id = ?", item.ProductID).
					UpdateColumn("stock", gorm.Expr("stock + ?", item.Quantity)).Error; err != nil {
					return err
				}
			}
		}

		order.Status = models.OrderStatusCancelled
		return tx.Model(&models.Order{}).Where("order_id = ?", orderID).
			Update("status", models.OrderStatusCancelled).Error
	})
	if err != nil {
		return nil, err
	}
	return &order, nil
}

func orderErrorStatus(err error) int {
	var transitionErr *models.InvalidStateTransitionError
	switch {
	case errors.Is(err, models.ErrOrderNotFound):
		return http.StatusNotFound
	case errors.Is(err, models.ErrAccessDenied):
		return http.StatusForbidden
	case errors.As(err, &transitionErr):
		return http.StatusBadRequest
	default:
		return http.StatusInternalServerError
	}
}

// GET /api/orders/user/current
func GetCurrentUserOrdersHandler(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		userID, ok := middleware.CurrentUserID(c)
		if !ok {
			c.JSON(http.StatusUnauthorized, gin.H{"success": false, "error": "Authentication required"})
			return
		}

		var orders []models.Order
		if err := db.
			Where("user_id = ?", userID).
			Preload("Items").
			Preload("Items.Product").
			Order("created_at DESC").
			Find(&orders).Error; err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"success": false, "error": "Failed to fetch orders"})
			return
		}
		c.JSON(http.StatusOK, orders)
	}
}

// GET /api/orders/:orderID — owner only, admins may read any order.
func GetOrderByIDHandler(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		userID, ok := middleware.CurrentUserID(c)
		if !ok {
			c.JSON(http.StatusUnauthorized, gin.H{"success": false, "error": "Authentication required"})
			return
		}
		orderID := c.Param("orderID")

		var order models.Order
		if err := db.
			Preload("Items").
			Preload("Items.Product").
			First(&order, "order_id = ?", orderID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				c.JSON(http.StatusNotFound, gin.H{"success": false, "error": "Order not found"})
				return
			}
			c.JSON(http.StatusInternalServerError, gin.H{"success": false, "error": "Failed to fetch order"})
			return
		}

		if order.UserID != userID && !middleware.IsAdmin(c) {
			c.JSON(http.StatusForbidden, gin.H{"success": false, "error": "Access denied"})
			return
		}
		c.JSON(http.StatusOK, order)
	}
}

// PUT /api/orders/:orderID/cancel
func CancelOrderHandler(db *gorm.DB, restockOnCancel bool) gin.HandlerFunc {
	return func(c *gin.Context) {
		userID, ok := middleware.CurrentUserID(c)
		if !ok {
			c.JSON(http.StatusUnauthorized, gin.H{"success": false, "error": "Authentication required"})
			return
		}
		orderID := c.Param("orderID")

		order, err := CancelOrder(db, orderID, userID, restockOnCancel)
		if err != nil {
			c.JSON(orderErrorStatus(err), gin.H{"success": false, "error": err.Error()})
			return
		}
		c.JSON(http.StatusOK, order)
	}
}

// GET /api/orders — admin listing, newest first.
func GetAllOrdersHandler(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		var orders []models.Order
		if err := db.
			Preload("Items").
			Preload("Items.Product").
			Order("created_at DESC").
			Find(&orders).Error; err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"success": false, "error": "Failed to fetch orders"})
			return
		}
		c.JSON(http.StatusOK, orders)
	}
}

// PUT /api/orders/:orderID/status — admin, validated against the forward
// transition table. Payment status is deliberately not reachable here; the
// payment verify callback is the only writer.
func UpdateOrderStatusHandler(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		orderID := c.Param("orderID")

		var req UpdateOrderStatusRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"success": false, "error": err.Error()})
			return
		}
		newStatus, err := models.ParseOrderStatus(req.Status)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"success": false, "error": err.Error()})
			return
		}

		var order models.Order
		if err := db.First(&order, "order_id = ?", orderID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				c.JSON(http.StatusNotFound, gin.H{"success": false, "error": "Order not found"})
				return
			}
			c.JSON(http.StatusInternalServerError, gin.H{"success": false, "error": "Failed to fetch order"})
			return
		}

		if !order.Status.CanTransitionTo(newStatus) {
			err := &models.InvalidStateTransitionError{From: order.Status, Attempted: newStatus}
			c.JSON(http.StatusBadRequest, gin.H{"success": false, "error": err.Error()})
			return
		}

		if err := db.Model(&models.Order{}).Where("order_id = ?", orderID).
			Update("status", newStatus).Error; err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"success": false, "error": "Failed to update order status"})
			return
		}
		c.JSON(http.StatusOK, gin.H{"success": true, "message": "Order status updated successfully"})
	}
}
