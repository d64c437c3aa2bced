package productControllers

import (
	"errors"
	"net/http"

	"github.com/Loki3341/sales-savvy/models"
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

// DELETE /api/admin/products/:id
func DeleteProduct(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		id := c.Param("id")
		if id == "" {
			c.JSON(http.StatusBadRequest, gin.H{"success": false, "error": "Product ID is required"})
			return
		}

		var product models.Product
		if err := db.First(&product, "id = ?", id).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				c.JSON(http.StatusNotFound, gin.H{"success": false, "error": "Product not found"})
				return
			}
			c.JSON(http.StatusInternalServerError, gin.H{"success": false, "error": "Failed to fetch product"})
			return
		}

		err := db.Transaction(func(tx *gorm.DB) error {
			// Cart lines referencing the product go with it; order items
			// keep their frozen copy and only the weak product reference.
			if err := tx.Where("product_id = ?", product.ID).Delete(&models.CartItem{}).Error; err != nil {
				return err
			}
			return tx.Delete(&product).Error
		})
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"success": false, "error": "Failed to delete product"})
			return
		}
		c.JSON(http.StatusOK, gin.H{"success": true, "message": "Product deleted successfully"})
	}
}
