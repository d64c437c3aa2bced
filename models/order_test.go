package models

import (
	"strings"
	"testing"
)

func TestNewOrderID(t *testing.T) {
	id := NewOrderID()
	if !strings.HasPrefix(id, "ORD") {
		t.Fatalf("expected ORD prefix, got %q", id)
	}
	if len(id) != 11 {
		t.Fatalf("expected 11 chars, got %d (%q)", len(id), id)
	}
	if id != strings.ToUpper(id) {
		t.Fatalf("expected uppercase id, got %q", id)
	}

	seen := make(map[string]bool)
	for i := 0; i < 1000; i++ {
		id := NewOrderID()
		if seen[id] {
			t.Fatalf("duplicate order id generated: %q", id)
		}
		seen[id] = true
	}
}

func TestInitialPaymentStatus(t *testing.T) {
	if got := InitialPaymentStatus(PaymentMethodCOD); got != PaymentStatusPending {
		t.Fatalf("COD: expected PENDING, got %s", got)
	}
	for _, m := range []PaymentMethod{PaymentMethodCard, PaymentMethodUPI, PaymentMethodWallet} {
		if got := InitialPaymentStatus(m); got != PaymentStatusCompleted {
			t.Fatalf("%s: expected COMPLETED, got %s", m, got)
		}
	}
}

func TestOrderStatusTransitions(t *testing.T) {
	allowed := []struct{ from, to OrderStatus }{
		{OrderStatusPending, OrderStatusConfirmed},
		{OrderStatusPending, OrderStatusCancelled},
		{OrderStatusConfirmed, OrderStatusShipped},
		{OrderStatusConfirmed, OrderStatusCancelled},
		{OrderStatusShipped, OrderStatusDelivered},
	}
	for _, tr := range allowed {
		if !tr.from.CanTransitionTo(tr.to) {
			t.Errorf("expected %s -> %s to be allowed", tr.from, tr.to)
		}
	}

	forbidden := []struct{ from, to OrderStatus }{
		{OrderStatusPending, OrderStatusShipped},
		{OrderStatusPending, OrderStatusDelivered},
		{OrderStatusShipped, OrderStatusCancelled},
		{OrderStatusDelivered, OrderStatusCancelled},
		{OrderStatusDelivered, OrderStatusShipped},
		{OrderStatusCancelled, OrderStatusPending},
		{OrderStatusCancelled, OrderStatusCancelled},
	}
	for _, tr := range forbidden {
		if tr.from.CanTransitionTo(tr.to) {
			t.Errorf("expected %s -> %s to be rejected", tr.from, tr.to)
		}
	}
}

func TestCanCancel(t *testing.T) {
	cancellable := map[OrderStatus]bool{
		OrderStatusPending:   true,
		OrderStatusConfirmed: true,
		OrderStatusShipped:   false,
		OrderStatusDelivered: false,
		OrderStatusCancelled: false,
	}
	for status, want := range cancellable {
		o := Order{Status: status}
		if got := o.CanCancel(); got != want {
			t.Errorf("CanCancel from %s: got %v, want %v", status, got, want)
		}
	}
}

func TestParsePaymentMethod(t *testing.T) {
	t.Run("case insensitive", func(t *testing.T) {
		m, err := ParsePaymentMethod("cod")
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if m != PaymentMethodCOD {
			t.Fatalf("expected COD, got %s", m)
		}
	})

	t.Run("all methods", func(t *testing.T) {
		for _, s := range []string{"COD", "CARD", "UPI", "WALLET"} {
			if _, err := ParsePaymentMethod(s); err != nil {
				t.Errorf("ParsePaymentMethod(%q): %v", s, err)
			}
		}
	})

	t.Run("invalid", func(t *testing.T) {
		if _, err := ParsePaymentMethod("BITCOIN"); err == nil {
			t.Fatal("expected error for unknown method")
		}
	})
}

func TestParseOrderStatus(t *testing.T) {
	for _, s := range []string{"pending", "CONFIRMED", "Shipped", "delivered", "cancelled"} {
		if _, err := ParseOrderStatus(s); err != nil {
			t.Errorf("ParseOrderStatus(%q): %v", s, err)
		}
	}
	if _, err := ParseOrderStatus("returned"); err == nil {
		t.Fatal("expected error for unknown status")
	}
}
