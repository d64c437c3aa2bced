package productControllers

import (
	"errors"
	"net/http"

	"github.com/Loki3341/sales-savvy/models"
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

// GET /api/products/:id
func GetProductByID(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		id := c.Param("id")
		if id == "" {
			c.JSON(http.StatusBadRequest, gin.H{"success": false, "error": "Product ID is required"})
			return
		}

		var product models.Product
		if err := db.Preload("Category").First(&product, "id = ?", id).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				c.JSON(http.StatusNotFound, gin.H{"success": false, "error": "Product not found"})
				return
			}
			c.JSON(http.StatusInternalServerError, gin.H{"success": false, "error": "Failed to fetch product"})
			return
		}
		c.JSON(http.StatusOK, product)
	}
}
