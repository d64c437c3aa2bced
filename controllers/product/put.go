package productControllers

import (
	"errors"
	"net/http"

	"github.com/Loki3341/sales-savvy/models"
	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

type UpdateProductInput struct {
	Name        *string          `json:"name"`
	Description *string          `json:"description"`
	Price       *decimal.Decimal `json:"price"`
	Stock       *int             `json:"stock"`
	ImageURL    *string          `json:"image_url"`
	CategoryID  *uint            `json:"category_id"`
}

// PUT /api/admin/products/:id
func UpdateProduct(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		id := c.Param("id")

		var product models.Product
		if err := db.First(&product, "id = ?", id).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				c.JSON(http.StatusNotFound, gin.H{"success": false, "error": "Product not found"})
				return
			}
			c.JSON(http.StatusInternalServerError, gin.H{"success": false, "error": "Failed to fetch product"})
			return
		}

		var input UpdateProductInput
		if err := c.ShouldBindJSON(&input); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"success": false, "error": "Invalid input: " + err.Error()})
			return
		}

		updates := make(map[string]interface{})
		if input.Name != nil {
			updates["name"] = *input.Name
		}
		if input.Description != nil {
			updates["description"] = *input.Description
		}
		if input.Price != nil {
			if input.Price.IsNegative() {
				c.JSON(http.StatusBadRequest, gin.H{"success": false, "error": "Price must not be negative"})
				return
			}
			updates["price"] = *input.Price
		}
		if input.Stock != nil {
			if *input.Stock < 0 {
				c.JSON(http.StatusBadRequest, gin.H{"success": false, "error": "Stock must not be negative"})
				return
			}
			updates["stock"] = *input.Stock
		}
		if input.ImageURL != nil {
			updates["image_url"] = *input.ImageURL
		}
		if input.CategoryID != nil {
			updates["category_id"] = *input.CategoryID
		}

		if len(updates) > 0 {
			if err := db.Model(&product).Updates(updates).Error; err != nil {
				c.JSON(http.StatusInternalServerError, gin.H{"success": false, "error": "Failed to update product"})
				return
			}
		}
		c.JSON(http.StatusOK, product)
	}
}
