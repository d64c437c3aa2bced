package orderControllers

import (
	"errors"
	"testing"

	"github.com/Loki3341/sales-savvy/models"
	"github.com/glebarez/sqlite"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func openTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		t.Fatalf("open test db: %v", err)
	}
	sqlDB, err := db.DB()
	if err != nil {
		t.Fatalf("unwrap sql db: %v", err)
	}
	sqlDB.SetMaxOpenConns(1)

	if err := db.AutoMigrate(
		&models.User{},
		&models.Category{},
		&models.Product{},
		&models.CartItem{},
		&models.Order{},
		&models.OrderItem{},
	); err != nil {
		t.Fatalf("migrate test db: %v", err)
	}
	return db
}

func seedOrder(t *testing.T, db *gorm.DB, userID uint, status models.OrderStatus) models.Order {
	t.Helper()
	product := models.Product{Name: "Widget", Price: decimal.RequireFromString("10.00"), Stock: 5}
	if err := db.Create(&product).Error; err != nil {
		t.Fatalf("seed product: %v", err)
	}
	order := models.Order{
		OrderID:         models.NewOrderID(),
		UserID:          userID,
		TotalAmount:     decimal.RequireFromString("20.00"),
		ShippingAddress: "12 Main St",
		PaymentMethod:   models.PaymentMethodCOD,
		Status:          status,
		PaymentStatus:   models.PaymentStatusPending,
		Items: []models.OrderItem{{
			ProductID: product.ID,
			Quantity:  2,
			Price:     product.Price,
			Subtotal:  decimal.RequireFromString("20.00"),
		}},
	}
	if err := db.Create(&order).Error; err != nil {
		t.Fatalf("seed order: %v", err)
	}
	return order
}

func seedUser(t *testing.T, db *gorm.DB, email string) models.User {
	t.Helper()
	user := models.User{Username: email, Email: email}
	if err := db.Create(&user).Error; err != nil {
		t.Fatalf("seed user: %v", err)
	}
	return user
}

func TestCancelOrder(t *testing.T) {
	t.Run("pending order cancels", func(t *testing.T) {
		db := openTestDB(t)
		user := seedUser(t, db, "alice@example.com")
		order := seedOrder(t, db, user.ID, models.OrderStatusPending)

		cancelled, err := CancelOrder(db, order.OrderID, user.ID, false)
		if err != nil {
			t.Fatalf("cancel failed: %v", err)
		}
		if cancelled.Status != models.OrderStatusCancelled {
			t.Errorf("status: got %s, want CANCELLED", cancelled.Status)
		}
	})

	t.Run("confirmed order cancels", func(t *testing.T) {
		db := openTestDB(t)
		user := seedUser(t, db, "alice@example.com")
		order := seedOrder(t, db, user.ID, models.OrderStatusConfirmed)

		if _, err := CancelOrder(db, order.OrderID, user.ID, false); err != nil {
			t.Fatalf("cancel failed: %v", err)
		}
	})

	t.Run("second cancel is rejected", func(t *testing.T) {
		db := openTestDB(t)
		user := seedUser(t, db, "alice@example.com")
		order := seedOrder(t, db, user.ID, models.OrderStatusPending)

		if _, err := CancelOrder(db, order.OrderID, user.ID, false); err != nil {
			t.Fatalf("first cancel failed: %v", err)
		}
		_, err := CancelOrder(db, order.OrderID, user.ID, false)
		var transitionErr *models.InvalidStateTransitionError
		if !errors.As(err, &transitionErr) {
			t.Fatalf("expected InvalidStateTransitionError, got %v", err)
		}
		if transitionErr.From != models.OrderStatusCancelled {
			t.Errorf("transition from: got %s, want CANCELLED", transitionErr.From)
		}
	})

	t.Run("delivered order is rejected", func(t *testing.T) {
		db := openTestDB(t)
		user := seedUser(t, db, "alice@example.com")
		order := seedOrder(t, db, user.ID, models.OrderStatusDelivered)

		_, err := CancelOrder(db, order.OrderID, user.ID, false)
		var transitionErr *models.InvalidStateTransitionError
		if !errors.As(err, &transitionErr) {
			t.Fatalf("expected InvalidStateTransitionError, got %v", err)
		}
	})

	t.Run("not the owner", func(t *testing.T) {
		db := openTestDB(t)
		owner := seedUser(t, db, "alice@example.com")
		other := seedUser(t, db, "mallory@example.com")
		order := seedOrder(t, db, owner.ID, models.OrderStatusPending)

		_, err := CancelOrder(db, order.OrderID, other.ID, false)
		if !errors.Is(err, models.ErrAccessDenied) {
			t.Fatalf("expected ErrAccessDenied, got %v", err)
		}

		var reloaded models.Order
		db.First(&reloaded, "order_id = ?", order.OrderID)
		if reloaded.Status != models.OrderStatusPending {
			t.Errorf("status changed to %s, want PENDING", reloaded.Status)
		}
	})

	t.Run("unknown order", func(t *testing.T) {
		db := openTestDB(t)
		user := seedUser(t, db, "alice@example.com")
		_, err := CancelOrder(db, "ORDDEADBEEF", user.ID, false)
		if !errors.Is(err, models.ErrOrderNotFound) {
			t.Fatalf("expected ErrOrderNotFound, got %v", err)
		}
	})
}

func TestCancelOrderRestock(t *testing.T) {
	stockAfterCancel := func(t *testing.T, restock bool) int {
		t.Helper()
		db := openTestDB(t)
		user := seedUser(t, db, "alice@example.com")
		order := seedOrder(t, db, user.ID, models.OrderStatusPending)

		if _, err := CancelOrder(db, order.OrderID, user.ID, restock); err != nil {
			t.Fatalf("cancel failed: %v", err)
		}
		var p models.Product
		if err := db.First(&p, "id = ?", order.Items[0].ProductID).Error; err != nil {
			t.Fatalf("reload product: %v", err)
		}
		return p.Stock
	}

	t.Run("disabled leaves stock alone", func(t *testing.T) {
		if got := stockAfterCancel(t, false); got != 5 {
			t.Errorf("stock: got %d, want 5", got)
		}
	})

	t.Run("enabled returns quantities", func(t *testing.T) {
		if got := stockAfterCancel(t, true); got != 7 {
			t.Errorf("stock: got %d, want 7", got)
		}
	})
}
