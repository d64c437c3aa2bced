package productControllers

import (
	"net/http"

	"github.com/Loki3341/sales-savvy/models"
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

type CategoryInput struct {
	Name string `json:"name" binding:"required"`
}

// GET /api/categories
func GetCategories(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		var categories []models.Category
		if err := db.Order("name ASC").Find(&categories).Error; err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"success": false, "error": "Failed to fetch categories"})
			return
		}
		c.JSON(http.StatusOK, categories)
	}
}

// POST /api/admin/categories
func CreateCategory(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		var input CategoryInput
		if err := c.ShouldBindJSON(&input); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"success": false, "error": "Invalid input: " + err.Error()})
			return
		}

		category := models.Category{Name: input.Name}
		if err := db.Create(&category).Error; err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"success": false, "error": "Failed to create category"})
			return
		}
		c.JSON(http.StatusCreated, category)
	}
}
