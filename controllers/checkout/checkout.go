package checkoutControllers

import (
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"

	orderControllers "github.com/Loki3341/sales-savvy/controllers/order"
	"github.com/Loki3341/sales-savvy/middleware"
	"github.com/Loki3341/sales-savvy/models"
	"github.com/Loki3341/sales-savvy/notifications"
	"github.com/Loki3341/sales-savvy/pkg/metrics"
	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

type CheckoutRequest struct {
	ShippingAddress string `json:"shippingAddress" binding:"required"`
	PaymentMethod   string `json:"paymentMethod" binding:"required"`
	// Method-specific fields (card token, UPI id, wallet provider). Opaque
	// here; the gateway integration is the only consumer.
	PaymentDetails map[string]interface{} `json:"paymentDetails,omitempty"`
}

type OrderItemView struct {
	ID              uint            `json:"id"`
	ProductID       uint            `json:"productId"`
	ProductName     string          `json:"productName"`
	ProductImageURL string          `json:"productImageUrl"`
	Price           decimal.Decimal `json:"price"`
	Quantity        int             `json:"quantity"`
	Subtotal        decimal.Decimal `json:"subtotal"`
}

type OrderResponse struct {
	OrderID         string               `json:"orderId"`
	TotalAmount     decimal.Decimal      `json:"totalAmount"`
	Status          models.OrderStatus   `json:"status"`
	PaymentStatus   models.PaymentStatus `json:"paymentStatus"`
	PaymentMethod   models.PaymentMethod `json:"paymentMethod"`
	ShippingAddress string               `json:"shippingAddress"`
	CreatedAt       time.Time            `json:"createdAt"`
	OrderItems      []OrderItemView      `json:"orderItems"`
}

type ValidationResult struct {
	Valid       bool             `json:"valid"`
	TotalAmount *decimal.Decimal `json:"totalAmount,omitempty"`
	ItemCount   int              `json:"itemCount,omitempty"`
	Error       string           `json:"error,omitempty"`
}

// ProcessCheckout converts the user's cart into an order. Everything from
// the order insert to the cart clear runs in one transaction: an order never
// exists without its items, stock is never decremented without a committed
// order, and the cart is consumed exactly once.
func ProcessCheckout(db *gorm.DB, userID uint, req CheckoutRequest) (*OrderResponse, error) {
	if strings.TrimSpace(req.ShippingAddress) == "" {
		return nil, errors.New("shipping address is required")
	}
	method, err := models.ParsePaymentMethod(req.PaymentMethod)
	if err != nil {
		return nil, err
	}

	var resp *OrderResponse
	err = db.Transaction(func(tx *gorm.DB) error {
		var user models.User
		if err := tx.First(&user, "id = ?", userID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return models.ErrUserNotFound
			}
			return err
		}

		var cartItems []models.CartItem
		if err := tx.Preload("Product").Where("user_id = ?", userID).Find(&cartItems).Error; err != nil {
			return err
		}
		if len(cartItems) == 0 {
			return models.ErrEmptyCart
		}

		// Validate every line before any mutation.
		for _, item := range cartItems {
			if item.Product.Stock < item.Quantity {
				return &models.InsufficientStockError{
					Product:   item.Product.Name,
					Available: item.Product.Stock,
					Requested: item.Quantity,
				}
			}
		}

		// Totals come from live catalog prices, not anything cached in the
		// cart, and are frozen onto the order items.
		total := decimal.Zero
		orderItems := make([]models.OrderItem, 0, len(cartItems))
		for _, item := range cartItems {
			subtotal := item.Product.Price.Mul(decimal.NewFromInt(int64(item.Quantity)))
			total = total.Add(subtotal)
			orderItems = append(orderItems, models.OrderItem{
				ProductID: item.ProductID,
				Quantity:  item.Quantity,
				Price:     item.Product.Price,
				Subtotal:  subtotal,
			})
		}

		order := models.Order{
			OrderID:         models.NewOrderID(),
			UserID:          userID,
			TotalAmount:     total,
			ShippingAddress: req.ShippingAddress,
			PaymentMethod:   method,
			Status:          models.OrderStatusPending,
			PaymentStatus:   models.InitialPaymentStatus(method),
			Items:           orderItems,
		}
		if err := tx.Create(&order).Error; err != nil {
			return err
		}

		// Reserve stock with a conditional decrement. A concurrent checkout
		// that got there first makes RowsAffected come back 0; the whole
		// transaction rolls back, so earlier lines are not left decremented.
		for _, item := range cartItems {
			res := tx.Model(&models.Product{}).
				Where("id = ? AND stock >= ?", item.ProductID, item.Quantity).
				UpdateColumn("stock", gorm.Expr("stock - ?", item.Quantity))
			if res.Error != nil {
				return res.Error
			}
			if res.RowsAffected == 0 {
				return stockShortfall(tx, item)
			}
		}

		if err := consumeCart(tx, userID, len(cartItems)); err != nil {
			return err
		}

		resp = buildOrderResponse(&order, cartItems)
		return nil
	})
	if err != nil {
		return nil, err
	}
	return resp, nil
}

// consumeCart clears the user's cart and verifies every line read at the
// start of the transaction was still there to delete. A concurrent checkout
// that consumed any of those lines first makes the count fall short; failing
// here rolls back the order and the stock decrements, so a cart converts to
// an order at most once.
func consumeCart(tx *gorm.DB, userID uint, expected int) error {
	res := tx.Where("user_id = ?", userID).Delete(&models.CartItem{})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected < int64(expected) {
		return models.ErrEmptyCart
	}
	return nil
}

// stockShortfall reports a lost stock race with live catalog numbers when
// the product row is still readable, falling back to the cart's preloaded
// snapshot when it is not.
func stockShortfall(tx *gorm.DB, item models.CartItem) *models.InsufficientStockError {
	name, available := item.Product.Name, item.Product.Stock
	var p models.Product
	if err := tx.Select("name", "stock").First(&p, "id = ?", item.ProductID).Error; err == nil {
		name, available = p.Name, p.Stock
	}
	return &models.InsufficientStockError{
		Product:   name,
		Available: available,
		Requested: item.Quantity,
	}
}

// ValidateCheckout is the read-only pre-flight: same user/cart/stock checks
// as ProcessCheckout, no side effects. Every short line is reported, not
// just the first.
func ValidateCheckout(db *gorm.DB, userID uint) (ValidationResult, error) {
	var user models.User
	if err := db.First(&user, "id = ?", userID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ValidationResult{}, models.ErrUserNotFound
		}
		return ValidationResult{}, err
	}

	var cartItems []models.CartItem
	if err := db.Preload("Product").Where("user_id = ?", userID).Find(&cartItems).Error; err != nil {
		return ValidationResult{}, err
	}
	if len(cartItems) == 0 {
		return ValidationResult{Valid: false, Error: "Cart is empty"}, nil
	}

	var outOfStock []string
	total := decimal.Zero
	for _, item := range cartItems {
		if item.Product.Stock < item.Quantity {
			outOfStock = append(outOfStock, fmt.Sprintf("%s (available: %d, requested: %d)",
				item.Product.Name, item.Product.Stock, item.Quantity))
		}
		total = total.Add(item.Product.Price.Mul(decimal.NewFromInt(int64(item.Quantity))))
	}
	if len(outOfStock) > 0 {
		return ValidationResult{
			Valid: false,
			Error: "Insufficient stock for: " + strings.Join(outOfStock, ", "),
		}, nil
	}

	return ValidationResult{Valid: true, TotalAmount: &total, ItemCount: len(cartItems)}, nil
}

func buildOrderResponse(order *models.Order, cartItems []models.CartItem) *OrderResponse {
	products := make(map[uint]models.Product, len(cartItems))
	for _, item := range cartItems {
		products[item.ProductID] = item.Product
	}

	views := make([]OrderItemView, 0, len(order.Items))
	for _, item := range order.Items {
		p := products[item.ProductID]
		views = append(views, OrderItemView{
			ID:              item.ID,
			ProductID:       item.ProductID,
			ProductName:     p.Name,
			ProductImageURL: p.ImageURL,
			Price:           item.Price,
			Quantity:        item.Quantity,
			Subtotal:        item.Subtotal,
		})
	}

	return &OrderResponse{
		OrderID:         order.OrderID,
		TotalAmount:     order.TotalAmount,
		Status:          order.Status,
		PaymentStatus:   order.PaymentStatus,
		PaymentMethod:   order.PaymentMethod,
		ShippingAddress: order.ShippingAddress,
		CreatedAt:       order.CreatedAt,
		OrderItems:      views,
	}
}

func failureReason(err error) string {
	var stockErr *models.InsufficientStockError
	switch {
	case errors.Is(err, models.ErrEmptyCart):
		return "empty_cart"
	case errors.Is(err, models.ErrUserNotFound):
		return "user_not_found"
	case errors.As(err, &stockErr):
		return "insufficient_stock"
	default:
		return "validation"
	}
}

// POST /api/checkout/process
func ProcessCheckoutHandler(db *gorm.DB, mailer *notifications.Mailer) gin.HandlerFunc {
	return func(c *gin.Context) {
		userID, ok := middleware.CurrentUserID(c)
		if !ok {
			c.JSON(http.StatusUnauthorized, gin.H{"success": false, "error": "Authentication required. Please login again."})
			return
		}

		var req CheckoutRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"success": false, "error": "Invalid input: " + err.Error()})
			return
		}

		resp, err := ProcessCheckout(db, userID, req)
		if err != nil {
			metrics.CheckoutFailures.WithLabelValues(failureReason(err)).Inc()
			status := http.StatusBadRequest
			if errors.Is(err, models.ErrUserNotFound) {
				status = http.StatusNotFound
			}
			zap.L().Warn("checkout rejected",
				zap.Uint("user_id", userID),
				zap.String("reason", failureReason(err)),
				zap.Error(err))
			c.JSON(status, gin.H{"success": false, "error": err.Error()})
			return
		}

		metrics.OrdersPlaced.Inc()
		zap.L().Info("order placed",
			zap.String("order_id", resp.OrderID),
			zap.Uint("user_id", userID),
			zap.String("total", resp.TotalAmount.String()),
			zap.String("payment_method", string(resp.PaymentMethod)))

		// Best-effort side channels; never fail the checkout.
		orderControllers.BroadcastNewOrder(resp.OrderID, userID, resp.TotalAmount)
		if mailer != nil {
			var user models.User
			if err := db.First(&user, "id = ?", userID).Error; err == nil {
				go mailer.SendOrderConfirmation(user.Email, resp.OrderID)
			}
		}

		c.JSON(http.StatusOK, gin.H{
			"success": true,
			"order":   resp,
			"message": "Order placed successfully",
		})
	}
}

// POST /api/checkout/validate
func ValidateCheckoutHandler(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		userID, ok := middleware.CurrentUserID(c)
		if !ok {
			c.JSON(http.StatusUnauthorized, gin.H{"success": false, "error": "Authentication required"})
			return
		}

		result, err := ValidateCheckout(db, userID)
		if err != nil {
			status := http.StatusBadRequest
			if errors.Is(err, models.ErrUserNotFound) {
				status = http.StatusNotFound
			}
			c.JSON(status, gin.H{"success": false, "error": err.Error()})
			return
		}
		c.JSON(http.StatusOK, result)
	}
}
