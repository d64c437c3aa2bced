package productControllers

import (
	"net/http"

	"github.com/Loki3341/sales-savvy/models"
	"github.com/gin-gonic/gin"
	"github.com/tealeg/xlsx"
	"gorm.io/gorm"
)

// GET /api/admin/products/export
func ExportProductsToExcel(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		var products []models.Product
		if err := db.Preload("Category").Find(&products).Error; err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"success": false, "error": "Failed to fetch products"})
			return
		}

		file := xlsx.NewFile()
		sheet, err := file.AddSheet("Products")
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"success": false, "error": "Failed to create Excel sheet"})
			return
		}

		headers := []string{
			"ID", "Name", "Description", "Price", "Stock",
			"ImageURL", "Category", "CreatedAt", "UpdatedAt",
		}
		headerRow := sheet.AddRow()
		for _, h := range headers {
			headerRow.AddCell().SetValue(h)
		}

		for _, p := range products {
			row := sheet.AddRow()
			row.AddCell().SetValue(p.ID)
			row.AddCell().SetValue(p.Name)
			row.AddCell().SetValue(p.Description)
			row.AddCell().SetValue(p.Price.StringFixed(2))
			row.AddCell().SetValue(p.Stock)
			row.AddCell().SetValue(p.ImageURL)
			row.AddCell().SetValue(p.Category.Name)
			row.AddCell().SetValue(p.CreatedAt.Format("2006-01-02 15:04:05"))
			row.AddCell().SetValue(p.UpdatedAt.Format("2006-01-02 15:04:05"))
		}

		c.Header("Content-Disposition", "attachment; filename=products.xlsx")
		c.Header("Content-Type", "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")
		c.Header("Content-Transfer-Encoding", "binary")
		c.Header("Expires", "0")

		if err := file.Write(c.Writer); err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"success": false, "error": "Failed to write Excel file"})
			return
		}
	}
}
