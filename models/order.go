package models

import (
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

type OrderStatus string
type PaymentStatus string
type PaymentMethod string

const (
	OrderStatusPending   OrderStatus = "PENDING"   // placed, awaiting confirmation
	OrderStatusConfirmed OrderStatus = "CONFIRMED" // confirmed by seller
	OrderStatusShipped   OrderStatus = "SHIPPED"   // out for delivery
	OrderStatusDelivered OrderStatus = "DELIVERED" // customer received the item
	OrderStatusCancelled OrderStatus = "CANCELLED" // cancelled before shipping

	PaymentStatusPending   PaymentStatus = "PENDING"
	PaymentStatusCompleted PaymentStatus = "COMPLETED"
	PaymentStatusFailed    PaymentStatus = "FAILED"

	PaymentMethodCOD    PaymentMethod = "COD"
	PaymentMethodCard   PaymentMethod = "CARD"
	PaymentMethodUPI    PaymentMethod = "UPI"
	PaymentMethodWallet PaymentMethod = "WALLET"
)

type Order struct {
	OrderID         string          `gorm:"primaryKey" json:"orderId"`
	UserID          uint            `gorm:"not null;index" json:"-"`
	User            User            `gorm:"foreignKey:UserID" json:"-"`
	TotalAmount     decimal.Decimal `gorm:"type:decimal(10,2)" json:"totalAmount"`
	ShippingAddress string          `gorm:"type:TEXT;not null" json:"shippingAddress"`
	PaymentMethod   PaymentMethod   `gorm:"type:VARCHAR(10)" json:"paymentMethod"`
	Status          OrderStatus     `gorm:"type:VARCHAR(20);default:'PENDING'" json:"status"`
	PaymentStatus   PaymentStatus   `gorm:"type:VARCHAR(20);default:'PENDING'" json:"paymentStatus"`
	Items           []OrderItem     `gorm:"foreignKey:OrderID;constraint:OnDelete:CASCADE" json:"items"`
	CreatedAt       time.Time       `json:"createdAt"`
	UpdatedAt       time.Time       `json:"updatedAt"`
}

// OrderItem freezes price, quantity and subtotal at checkout time. ProductID
// stays only as a display reference; later catalog changes never touch these
// rows.
type OrderItem struct {
	ID        uint            `gorm:"primaryKey" json:"id"`
	OrderID   string          `gorm:"index;not null" json:"-"`
	ProductID uint            `gorm:"not null" json:"productId"`
	Product   Product         `gorm:"foreignKey:ProductID" json:"-"`
	Quantity  int             `gorm:"not null" json:"quantity"`
	Price     decimal.Decimal `gorm:"type:decimal(10,2)" json:"price"`
	Subtotal  decimal.Decimal `gorm:"type:decimal(10,2)" json:"subtotal"`
}

// NewOrderID returns an opaque order reference, e.g. "ORD3FA8C21B".
func NewOrderID() string {
	return "ORD" + strings.ToUpper(uuid.NewString()[:8])
}

// InitialPaymentStatus encodes the creation-time rule: cash on delivery is
// collected later, every other method is marked completed optimistically and
// corrected by the payment verify callback if the gateway declines.
func InitialPaymentStatus(method PaymentMethod) PaymentStatus {
	if method == PaymentMethodCOD {
		return PaymentStatusPending
	}
	return PaymentStatusCompleted
}

var orderStatusTransitions = map[OrderStatus][]OrderStatus{
	OrderStatusPending:   {OrderStatusConfirmed, OrderStatusCancelled},
	OrderStatusConfirmed: {OrderStatusShipped, OrderStatusCancelled},
	OrderStatusShipped:   {OrderStatusDelivered},
}

// CanTransitionTo reports whether the forward status flow allows s -> next.
// DELIVERED and CANCELLED are terminal.
func (s OrderStatus) CanTransitionTo(next OrderStatus) bool {
	for _, allowed := range orderStatusTransitions[s] {
		if allowed == next {
			return true
		}
	}
	return false
}

// CanCancel is the one transition rule enforced on the user-facing surface.
func (o *Order) CanCancel() bool {
	return o.Status == OrderStatusPending || o.Status == OrderStatusConfirmed
}

func ParseOrderStatus(s string) (OrderStatus, error) {
	switch OrderStatus(strings.ToUpper(s)) {
	case OrderStatusPending:
		return OrderStatusPending, nil
	case OrderStatusConfirmed:
		return OrderStatusConfirmed, nil
	case OrderStatusShipped:
		return OrderStatusShipped, nil
	case OrderStatusDelivered:
		return OrderStatusDelivered, nil
	case OrderStatusCancelled:
		return OrderStatusCancelled, nil
	default:
		return "", errors.New("invalid order status")
	}
}

func ParsePaymentMethod(s string) (PaymentMethod, error) {
	switch PaymentMethod(strings.ToUpper(s)) {
	case PaymentMethodCOD:
		return PaymentMethodCOD, nil
	case PaymentMethodCard:
		return PaymentMethodCard, nil
	case PaymentMethodUPI:
		return PaymentMethodUPI, nil
	case PaymentMethodWallet:
		return PaymentMethodWallet, nil
	default:
		return "", errors.New("invalid payment method")
	}
}
