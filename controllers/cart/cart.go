package cartControllers

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/Loki3341/sales-savvy/middleware"
	"github.com/Loki3341/sales-savvy/models"
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

type AddCartItemInput struct {
	ProductID uint `json:"product_id" binding:"required"`
	Quantity  int  `json:"quantity" binding:"required,min=1"`
}

type UpdateCartItemInput struct {
	Quantity *int `json:"quantity" binding:"required,min=0"`
}

// AddToCart merges repeated adds of the same product by summing quantities.
func AddToCart(db *gorm.DB, userID uint, productID uint, quantity int) (models.CartItem, error) {
	var product models.Product
	if err := db.First(&product, "id = ?", productID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return models.CartItem{}, models.ErrProductNotFound
		}
		return models.CartItem{}, err
	}

	var item models.CartItem
	err := db.Where("user_id = ? AND product_id = ?", userID, productID).First(&item).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		item = models.CartItem{
			UserID:    userID,
			ProductID: productID,
			Quantity:  quantity,
		}
		if err := db.Create(&item).Error; err != nil {
			return models.CartItem{}, err
		}
		item.Product = product
		return item, nil
	}
	if err != nil {
		return models.CartItem{}, err
	}

	item.Quantity += quantity
	if err := db.Save(&item).Error; err != nil {
		return models.CartItem{}, err
	}
	item.Product = product
	return item, nil
}

// SetCartItemQuantity replaces the line's quantity. Zero removes the line,
// in which case the returned item is nil.
func SetCartItemQuantity(db *gorm.DB, userID, productID uint, quantity int) (*models.CartItem, error) {
	var item models.CartItem
	if err := db.Where("user_id = ? AND product_id = ?", userID, productID).First(&item).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, models.ErrCartItemNotFound
		}
		return nil, err
	}

	if quantity == 0 {
		if err := db.Delete(&item).Error; err != nil {
			return nil, err
		}
		return nil, nil
	}

	item.Quantity = quantity
	if err := db.Save(&item).Error; err != nil {
		return nil, err
	}
	return &item, nil
}

// RemoveCartItem deletes a single (user, product) line.
func RemoveCartItem(db *gorm.DB, userID, productID uint) error {
	res := db.Where("user_id = ? AND product_id = ?", userID, productID).Delete(&models.CartItem{})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return models.ErrCartItemNotFound
	}
	return nil
}

func parseProductID(c *gin.Context) (uint, bool) {
	id, err := strconv.ParseUint(c.Param("product_id"), 10, 32)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "error": "Invalid product id"})
		return 0, false
	}
	return uint(id), true
}

// POST /api/cart
func AddCartItemHandler(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		userID, ok := middleware.CurrentUserID(c)
		if !ok {
			c.JSON(http.StatusUnauthorized, gin.H{"success": false, "error": "Unauthorized"})
			return
		}

		var input AddCartItemInput
		if err := c.ShouldBindJSON(&input); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"success": false, "error": "Invalid input: " + err.Error()})
			return
		}

		item, err := AddToCart(db, userID, input.ProductID, input.Quantity)
		if err != nil {
			if errors.Is(err, models.ErrProductNotFound) {
				c.JSON(http.StatusBadRequest, gin.H{"success": false, "error": "Product does not exist"})
				return
			}
			c.JSON(http.StatusInternalServerError, gin.H{"success": false, "error": "Failed to add item to cart"})
			return
		}
		c.JSON(http.StatusCreated, item)
	}
}

// PUT /api/cart/:product_id — quantity 0 removes the line.
func UpdateCartItemHandler(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		userID, ok := middleware.CurrentUserID(c)
		if !ok {
			c.JSON(http.StatusUnauthorized, gin.H{"success": false, "error": "Unauthorized"})
			return
		}
		productID, ok := parseProductID(c)
		if !ok {
			return
		}

		var input UpdateCartItemInput
		if err := c.ShouldBindJSON(&input); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"success": false, "error": "Invalid input: " + err.Error()})
			return
		}

		item, err := SetCartItemQuantity(db, userID, productID, *input.Quantity)
		if err != nil {
			if errors.Is(err, models.ErrCartItemNotFound) {
				c.JSON(http.StatusNotFound, gin.H{"success": false, "error": err.Error()})
				return
			}
			c.JSON(http.StatusInternalServerError, gin.H{"success": false, "error": "Failed to update cart item"})
			return
		}
		if item == nil {
			c.JSON(http.StatusOK, gin.H{"success": true, "message": "Cart item removed"})
			return
		}
		c.JSON(http.StatusOK, item)
	}
}

// DELETE /api/cart/:product_id
func DeleteCartItemHandler(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		userID, ok := middleware.CurrentUserID(c)
		if !ok {
			c.JSON(http.StatusUnauthorized, gin.H{"success": false, "error": "Unauthorized"})
			return
		}
		productID, ok := parseProductID(c)
		if !ok {
			return
		}

		if err := RemoveCartItem(db, userID, productID); err != nil {
			if errors.Is(err, models.ErrCartItemNotFound) {
				c.JSON(http.StatusNotFound, gin.H{"success": false, "error": err.Error()})
				return
			}
			c.JSON(http.StatusInternalServerError, gin.H{"success": false, "error": "Failed to delete item"})
			return
		}
		c.JSON(http.StatusOK, gin.H{"success": true, "message": "Cart item deleted"})
	}
}

// DELETE /api/cart
func ClearCartHandler(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		userID, ok := middleware.CurrentUserID(c)
		if !ok {
			c.JSON(http.StatusUnauthorized, gin.H{"success": false, "error": "Unauthorized"})
			return
		}

		if err := db.Where("user_id = ?", userID).Delete(&models.CartItem{}).Error; err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"success": false, "error": "Failed to clear cart"})
			return
		}
		c.JSON(http.StatusOK, gin.H{"success": true, "message": "Cart cleared"})
	}
}

// GET /api/cart
func GetCartHandler(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		userID, ok := middleware.CurrentUserID(c)
		if !ok {
			c.JSON(http.StatusUnauthorized, gin.H{"success": false, "error": "Unauthorized"})
			return
		}

		var items []models.CartItem
		if err := db.Preload("Product").Where("user_id = ?", userID).
			Order("created_at ASC").Find(&items).Error; err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"success": false, "error": "Failed to fetch cart"})
			return
		}
		c.JSON(http.StatusOK, items)
	}
}
