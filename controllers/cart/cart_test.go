package cartControllers

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

	if err := db.AutoMigrate(&models.Product{}, &models.Category{}, &models.CartItem{}); err != nil {
		t.Fatalf("migrate test db: %v", err)
	}
	return db
}

func seedProduct(t *testing.T, db *gorm.DB, name string, stock int) models.Product {
	t.Helper()
	product := models.Product{
		Name:  name,
		Price: decimal.RequireFromString("10.00"),
		Stock: stock,
	}
	if err := db.Create(&product).Error; err != nil {
		t.Fatalf("seed product: %v", err)
	}
	return product
}

func TestAddToCart(t *testing.T) {
	t.Run("new line", func(t *testing.T) {
		db := openTestDB(t)
		product := seedProduct(t, db, "Mug", 10)

		item, err := AddToCart(db, 1, product.ID, 2)
		if err != nil {
			t.Fatalf("add to cart: %v", err)
		}
		if item.Quantity != 2 {
			t.Errorf("quantity: got %d, want 2", item.Quantity)
		}
		if item.Product.Name != "Mug" {
			t.Errorf("product not attached: got %q", item.Product.Name)
		}
	})

	t.Run("repeated add merges quantities", func(t *testing.T) {
		db := openTestDB(t)
		product := seedProduct(t, db, "Mug", 10)

		if _, err := AddToCart(db, 1, product.ID, 2); err != nil {
			t.Fatalf("first add: %v", err)
		}
		item, err := AddToCart(db, 1, product.ID, 3)
		if err != nil {
			t.Fatalf("second add: %v", err)
		}
		if item.Quantity != 5 {
			t.Errorf("merged quantity: got %d, want 5", item.Quantity)
		}

		var count int64
		db.Model(&models.CartItem{}).Where("user_id = ?", 1).Count(&count)
		if count != 1 {
			t.Errorf("cart lines: got %d, want 1", count)
		}
	})

	t.Run("separate users keep separate lines", func(t *testing.T) {
		db := openTestDB(t)
		product := seedProduct(t, db, "Mug", 10)

		if _, err := AddToCart(db, 1, product.ID, 2); err != nil {
			t.Fatalf("user 1 add: %v", err)
		}
		item, err := AddToCart(db, 2, product.ID, 4)
		if err != nil {
			t.Fatalf("user 2 add: %v", err)
		}
		if item.Quantity != 4 {
			t.Errorf("user 2 quantity: got %d, want 4", item.Quantity)
		}
	})

	t.Run("unknown product", func(t *testing.T) {
		db := openTestDB(t)
		_, err := AddToCart(db, 1, 999, 1)
		if !errors.Is(err, models.ErrProductNotFound) {
			t.Fatalf("expected ErrProductNotFound, got %v", err)
		}
	})
}

func TestSetCartItemQuantity(t *testing.T) {
	t.Run("replaces quantity", func(t *testing.T) {
		db := openTestDB(t)
		product := seedProduct(t, db, "Mug", 10)
		if _, err := AddToCart(db, 1, product.ID, 2); err != nil {
			t.Fatalf("seed line: %v", err)
		}

		item, err := SetCartItemQuantity(db, 1, product.ID, 7)
		if err != nil {
			t.Fatalf("set quantity: %v", err)
		}
		if item.Quantity != 7 {
			t.Errorf("quantity: got %d, want 7", item.Quantity)
		}
	})

	t.Run("zero removes the line", func(t *testing.T) {
		db := openTestDB(t)
		product := seedProduct(t, db, "Mug", 10)
		if _, err := AddToCart(db, 1, product.ID, 2); err != nil {
			t.Fatalf("seed line: %v", err)
		}

		item, err := SetCartItemQuantity(db, 1, product.ID, 0)
		if err != nil {
			t.Fatalf("set quantity: %v", err)
		}
		if item != nil {
			t.Errorf("expected nil item after removal, got %+v", item)
		}
		var count int64
		db.Model(&models.CartItem{}).Where("user_id = ?", 1).Count(&count)
		if count != 0 {
			t.Errorf("cart lines: got %d, want 0", count)
		}
	})

	t.Run("missing line", func(t *testing.T) {
		db := openTestDB(t)
		_, err := SetCartItemQuantity(db, 1, 999, 3)
		if !errors.Is(err, models.ErrCartItemNotFound) {
			t.Fatalf("expected ErrCartItemNotFound, got %v", err)
		}
	})
}

func TestRemoveCartItem(t *testing.T) {
	t.Run("removes the line", func(t *testing.T) {
		db := openTestDB(t)
		product := seedProduct(t, db, "Mug", 10)
		if _, err := AddToCart(db, 1, product.ID, 2); err != nil {
			t.Fatalf("seed line: %v", err)
		}

		if err := RemoveCartItem(db, 1, product.ID); err != nil {
			t.Fatalf("remove: %v", err)
		}
		var count int64
		db.Model(&models.CartItem{}).Where("user_id = ?", 1).Count(&count)
		if count != 0 {
			t.Errorf("cart lines: got %d, want 0", count)
		}
	})

	t.Run("missing line", func(t *testing.T) {
		db := openTestDB(t)
		err := RemoveCartItem(db, 1, 999)
		if !errors.Is(err, models.ErrCartItemNotFound) {
			t.Fatalf("expected ErrCartItemNotFound, got %v", err)
		}
	})
}
