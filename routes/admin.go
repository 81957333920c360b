package routes

import (
	cartControllers "github.com/DevNutsPk/demoEcommerce/controllers/cart"
	"github.com/DevNutsPk/demoEcommerce/middleware"
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

// SetupAdminRoutes registers the "/admin/*" support endpoints.
func SetupAdminRoutes(r *gin.Engine, db *gorm.DB) {
	adminGroup := r.Group("/admin")
	adminGroup.Use(middleware.ValidateAPIKey)
	{
		adminGroup.GET("/carts/export", cartControllers.ExportPendingCartsToExcel(db)) // GET /admin/carts/export
	}
}
