package models

import (
	"errors"
	"fmt"
)

// Domain error kinds. Handlers map these to HTTP codes; business failures
// (empty cart, stock, state transitions, bad input) are 400s, ownership is
// 403, missing entities are 404.
var (
	ErrEmptyCart        = errors.New("cart is empty")
	ErrUserNotFound     = errors.New("user not found")
	ErrProductNotFound  = errors.New("product not found")
	ErrOrderNotFound    = errors.New("order not found")
	ErrCartItemNotFound = errors.New("cart item not found")
	ErrAccessDenied     = errors.New("access denied")
)

type InsufficientStockError struct {
	Product   string
	Available int
	Requested int
}

func (e *InsufficientStockError) Error() string {
	return fmt.Sprintf("insufficient stock for %s (available: %d, requested: %d)",
		e.Product, e.Available, e.Requested)
}

type InvalidStateTransitionError struct {
	From      OrderStatus
	Attempted OrderStatus
}

func (e *InvalidStateTransitionError) Error() string {
	return fmt.Sprintf("order cannot move from %s to %s", e.From, e.Attempted)
}
