package productControllers

import (
	"net/http"

	"github.com/Loki3341/sales-savvy/models"
	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

type ProductInput struct {
	Name        string          `json:"name" binding:"required"`
	Description string          `json:"description"`
	Price       decimal.Decimal `json:"price" binding:"required"`
	Stock       int             `json:"stock" binding:"min=0"`
	ImageURL    string          `json:"image_url"`
	CategoryID  uint            `json:"category_id"`
}

// POST /api/admin/products
func CreateProduct(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		var input ProductInput
		if err := c.ShouldBindJSON(&input); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"success": false, "error": "Invalid input: " + err.Error()})
			return
		}
		if input.Price.IsNegative() {
			c.JSON(http.StatusBadRequest, gin.H{"success": false, "error": "Price must not be negative"})
			return
		}

		if input.CategoryID != 0 {
			var category models.Category
			if err := db.First(&category, "id = ?", input.CategoryID).Error; err != nil {
				c.JSON(http.StatusBadRequest, gin.H{"success": false, "error": "Category does not exist"})
				return
			}
		}

		product := models.Product{
			Name:        input.Name,
			Description: input.Description,
			Price:       input.Price,
			Stock:       input.Stock,
			ImageURL:    input.ImageURL,
			CategoryID:  input.CategoryID,
		}
		if err := db.Create(&product).Error; err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"success": false, "error": "Failed to create product"})
			return
		}
		c.JSON(http.StatusCreated, product)
	}
}
