package productControllers

import (
	"net/http"
	"strconv"

	"github.com/Loki3341/sales-savvy/models"
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

// GET /api/products
func GetProducts(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		query := db.Model(&models.Product{}).Preload("Category")

		if categoryID := c.Query("category_id"); categoryID != "" {
			cid, err := strconv.ParseUint(categoryID, 10, 64)
			if err != nil {
				c.JSON(http.StatusBadRequest, gin.H{"success": false, "error": "Invalid category_id"})
				return
			}
			query = query.Where("category_id = ?", uint(cid))
		}

		var products []models.Product
		if err := query.Order("created_at DESC").Find(&products).Error; err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"success": false, "error": "Failed to fetch products"})
			return
		}
		c.JSON(http.StatusOK, products)
	}
}
