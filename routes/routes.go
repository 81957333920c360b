package routes

import (
	"github.com/DevNutsPk/demoEcommerce/reconciler"
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

// SetupRoutes is the single entry-point that wires up Auth, Cart and
// Admin route groups.
func SetupRoutes(r *gin.Engine, db *gorm.DB, manager *reconciler.Manager) {
	// Public auth routes (guest issuance needs no token)
	SetupAuthRoutes(r, db, manager)

	// Cart routes (JWT-protected, mode-agnostic)
	SetupCartRoutes(r, manager)

	// Admin routes (API-key-protected)
	SetupAdminRoutes(r, db)
}
