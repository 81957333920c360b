package cartControllers

import (
	"encoding/json"
	"net/http"
	"sort"
	"strings"

	"github.com/DevNutsPk/demoEcommerce/models"
	"github.com/gin-gonic/gin"
	"github.com/tealeg/xlsx"
	"gorm.io/gorm"
)

// GET /admin/carts/export
//
// Dumps every persisted guest cart record to an Excel workbook so
// support can follow up on carts that never synced (or only partially
// synced) into a user account.
func ExportPendingCartsToExcel(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		var records []models.GuestCartRecord
		if err := db.Order("updated_at desc").Find(&records).Error; err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch guest cart records"})
			return
		}

		file := xlsx.NewFile()
		sheet, err := file.AddSheet("PendingGuestCarts")
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create Excel sheet"})
			return
		}

		headers := []string{"StorageKey", "LocalID", "ProductID", "Variant", "Quantity", "UpdatedAt"}
		headerRow := sheet.AddRow()
		for _, h := range headers {
			headerRow.AddCell().SetValue(h)
		}

		for _, rec := range records {
			var items []models.CartLineItem
			if err := json.Unmarshal([]byte(rec.Payload), &items); err != nil {
				// Corrupt payloads read as empty carts elsewhere; flag them here.
				row := sheet.AddRow()
				row.AddCell().SetValue(rec.StorageKey)
				row.AddCell().SetValue("<corrupt record>")
				continue
			}
			for _, item := range items {
				row := sheet.AddRow()
				row.AddCell().SetValue(rec.StorageKey)
				row.AddCell().SetValue(item.LocalID)
				row.AddCell().SetValue(item.ProductID)
				row.AddCell().SetValue(formatVariant(item.Variant))
				row.AddCell().SetValue(item.Quantity)
				row.AddCell().SetValue(rec.UpdatedAt.Format("2006-01-02 15:04:05"))
			}
		}

		c.Header("Content-Disposition", "attachment; filename=pending_guest_carts.xlsx")
		c.Header("Content-Type", "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")
		c.Header("Content-Transfer-Encoding", "binary")
		c.Header("Expires", "0")

		if err := file.Write(c.Writer); err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to write Excel file"})
			return
		}
	}
}

func formatVariant(variant map[string]string) string {
	if len(variant) == 0 {
		return ""
	}
	parts := make([]string, 0, len(variant))
	for k, v := range variant {
		parts = append(parts, k+"="+v)
	}
	sort.Strings(parts)
	return strings.Join(parts, ",")
}
