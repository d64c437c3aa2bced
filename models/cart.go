package models

import "time"

// CartItem is one (user, product) line. The unique index makes repeated adds
// merge into a single row instead of duplicating it; prices are never stored
// here, the product is joined live at read/checkout time.
type CartItem struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	UserID    uint      `gorm:"not null;uniqueIndex:idx_cart_user_product" json:"user_id"`
	ProductID uint      `gorm:"not null;uniqueIndex:idx_cart_user_product" json:"product_id"`
	Product   Product   `gorm:"foreignKey:ProductID" json:"product"`
	Quantity  int       `gorm:"not null" json:"quantity"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
