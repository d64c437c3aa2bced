package paymentControllers

import (
	"bytes"
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/Loki3341/sales-savvy/middleware"
	"github.com/Loki3341/sales-savvy/models"
	"github.com/Loki3341/sales-savvy/pkg/config"
	"github.com/Loki3341/sales-savvy/pkg/metrics"
	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

// Client talks to a Razorpay-compatible gateway. With no key configured it
// runs in dummy mode: gateway orders are fabricated locally and signature
// checks pass, so local development works without gateway credentials.
type Client struct {
	keyID     string
	keySecret string
	apiURL    string
	currency  string
	http      *http.Client
}

func NewClient(cfg *config.Config) *Client {
	return &Client{
		keyID:     cfg.GatewayKeyID,
		keySecret: cfg.GatewayKeySecret,
		apiURL:    cfg.GatewayAPIURL,
		currency:  cfg.Currency,
		http:      &http.Client{Timeout: 15 * time.Second},
	}
}

func (cl *Client) dummy() bool {
	return cl.keyID == ""
}

type GatewayOrder struct {
	GatewayOrderID string `json:"gatewayOrderId"`
	Amount         string `json:"amount"`
	Currency       string `json:"currency"`
	Key            string `json:"key"`
}

type gatewayOrderResponse struct {
	ID    string `json:"id"`
	Error *struct {
		Code        string `json:"code"`
		Description string `json:"description"`
	} `json:"error,omitempty"`
}

// CreateGatewayOrder registers the order with the gateway. Amount goes out
// in minor units (paise).
func (cl *Client) CreateGatewayOrder(orderID string, amount decimal.Decimal) (*GatewayOrder, error) {
	if cl.dummy() {
		return &GatewayOrder{
			GatewayOrderID: "dummy_" + orderID,
			Amount:         amount.StringFixed(2),
			Currency:       cl.currency,
			Key:            "dummy_key",
		}, nil
	}

	payload := map[string]interface{}{
		"amount":          amount.Mul(decimal.NewFromInt(100)).IntPart(),
		"currency":        cl.currency,
		"receipt":         orderID,
		"payment_capture": 1,
	}
	jsonData, _ := json.Marshal(payload)

	req, err := http.NewRequest("POST", cl.apiURL+"/orders", bytes.NewBuffer(jsonData))
	if err != nil {
		return nil, err
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json")
	req.SetBasicAuth(cl.keyID, cl.keySecret)

	resp, err := cl.http.Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to reach payment gateway: %v", err)
	}
	defer resp.Body.Close()

	body, _ := io.ReadAll(resp.Body)
	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("gateway API error (%d): %s", resp.StatusCode, string(body))
	}

	var gw gatewayOrderResponse
	if err := json.Unmarshal(body, &gw); err != nil {
		return nil, fmt.Errorf("failed to parse gateway response: %v", err)
	}
	if gw.Error != nil {
		return nil, fmt.Errorf("gateway error: %s", gw.Error.Description)
	}
	if gw.ID == "" {
		return nil, errors.New("gateway returned empty order id")
	}

	return &GatewayOrder{
		GatewayOrderID: gw.ID,
		Amount:         amount.StringFixed(2),
		Currency:       cl.currency,
		Key:            cl.keyID,
	}, nil
}

// VerifySignature checks the callback signature: hex HMAC-SHA256 of
// "<orderId>|<paymentId>" under the gateway secret.
func (cl *Client) VerifySignature(orderID, paymentID, signature string) bool {
	if cl.dummy() {
		return true
	}
	mac := hmac.New(sha256.New, []byte(cl.keySecret))
	mac.Write([]byte(orderID + "|" + paymentID))
	expected := hex.EncodeToString(mac.Sum(nil))
	return hmac.Equal([]byte(expected), []byte(signature))
}

// ApplyPaymentOutcome is the only sanctioned writer of paymentStatus after
// order creation. It never touches order status or stock, and applying the
// same outcome twice lands in the same state.
func ApplyPaymentOutcome(db *gorm.DB, orderID string, succeeded bool) error {
	var order models.Order
	if err := db.First(&order, "order_id = ?", orderID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return models.ErrOrderNotFound
		}
		return err
	}

	status := models.PaymentStatusFailed
	if succeeded {
		status = models.PaymentStatusCompleted
	}
	return db.Model(&models.Order{}).Where("order_id = ?", orderID).
		Update("payment_status", status).Error
}

type CreatePaymentRequest struct {
	OrderID string `json:"orderId" binding:"required"`
}

type VerifyPaymentRequest struct {
	OrderID   string `json:"orderId" binding:"required"`
	PaymentID string `json:"paymentId" binding:"required"`
	Signature string `json:"signature"`
}

// POST /api/payments/create — registers an existing order with the gateway
// and hands the frontend what it needs to open the payment widget.
func CreatePaymentHandler(db *gorm.DB, client *Client) gin.HandlerFunc {
	return func(c *gin.Context) {
		userID, ok := middleware.CurrentUserID(c)
		if !ok {
			c.JSON(http.StatusUnauthorized, gin.H{"success": false, "error": "Authentication required"})
			return
		}

		var req CreatePaymentRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"success": false, "error": err.Error()})
			return
		}

		var order models.Order
		if err := db.First(&order, "order_id = ?", req.OrderID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				c.JSON(http.StatusNotFound, gin.H{"success": false, "error": "Order not found"})
				return
			}
			c.JSON(http.StatusInternalServerError, gin.H{"success": false, "error": "Failed to fetch order"})
			return
		}
		if order.UserID != userID {
			c.JSON(http.StatusForbidden, gin.H{"success": false, "error": "Access denied"})
			return
		}

		gw, err := client.CreateGatewayOrder(order.OrderID, order.TotalAmount)
		if err != nil {
			zap.L().Error("gateway order creation failed",
				zap.String("order_id", order.OrderID), zap.Error(err))
			c.JSON(http.StatusBadGateway, gin.H{"success": false, "error": err.Error()})
			return
		}
		c.JSON(http.StatusOK, gw)
	}
}

// POST /api/payments/verify — gateway callback path. A verified signature
// reconciles the order's payment status to COMPLETED, anything else to
// FAILED.
func VerifyPaymentHandler(db *gorm.DB, client *Client) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req VerifyPaymentRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"success": false, "error": err.Error()})
			return
		}

		verified := client.VerifySignature(req.OrderID, req.PaymentID, req.Signature)
		if err := ApplyPaymentOutcome(db, req.OrderID, verified); err != nil {
			if errors.Is(err, models.ErrOrderNotFound) {
				c.JSON(http.StatusNotFound, gin.H{"success": false, "error": "Order not found"})
				return
			}
			c.JSON(http.StatusInternalServerError, gin.H{"success": false, "error": "Failed to update payment status"})
			return
		}

		outcome := "failed"
		if verified {
			outcome = "completed"
		}
		metrics.PaymentsReconciled.WithLabelValues(outcome).Inc()
		zap.L().Info("payment reconciled",
			zap.String("order_id", req.OrderID),
			zap.String("payment_id", req.PaymentID),
			zap.String("outcome", outcome))

		if !verified {
			c.JSON(http.StatusBadRequest, gin.H{"success": false, "error": "Payment verification failed"})
			return
		}
		c.JSON(http.StatusOK, gin.H{"success": true, "message": "Payment verified successfully"})
	}
}
