package routes

import (
	"github.com/DevNutsPk/demoEcommerce/auth"
	"github.com/DevNutsPk/demoEcommerce/middleware"
	"github.com/DevNutsPk/demoEcommerce/reconciler"
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

// SetupAuthRoutes registers the "/auth/*" and "/session/*" endpoints.
func SetupAuthRoutes(r *gin.Engine, db *gorm.DB, manager *reconciler.Manager) {
	authGroup := r.Group("/auth")
	{
		authGroup.POST("/guest", auth.CreateGuestDevice(db))
	}

	// Login/logout require an existing device session token.
	sessionGroup := r.Group("/session")
	sessionGroup.Use(middleware.ValidateSession)
	{
		sessionGroup.POST("/login", auth.LoginHandler(manager))
		sessionGroup.POST("/logout", auth.LogoutHandler(manager))
	}
}
