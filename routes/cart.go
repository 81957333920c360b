package routes

import (
	cartControllers "github.com/DevNutsPk/demoEcommerce/controllers/cart"
	"github.com/DevNutsPk/demoEcommerce/middleware"
	"github.com/DevNutsPk/demoEcommerce/reconciler"
	"github.com/gin-gonic/gin"
)

// SetupCartRoutes registers the unified "/cart/*" endpoints. The same
// surface serves guest and authenticated sessions; the reconciler
// routes internally.
func SetupCartRoutes(r *gin.Engine, manager *reconciler.Manager) {
	cartGroup := r.Group("/cart")
	cartGroup.Use(middleware.ValidateSession)
	{
		cartGroup.GET("/", cartControllers.GetCart(manager))                    // GET /cart
		cartGroup.POST("/", cartControllers.AddCartItem(manager))               // POST /cart
		cartGroup.PUT("/:item_key", cartControllers.UpdateCartItem(manager))    // PUT /cart/:item_key
		cartGroup.DELETE("/:item_key", cartControllers.DeleteCartItem(manager)) // DELETE /cart/:item_key
		cartGroup.DELETE("/", cartControllers.ClearCart(manager))               // DELETE /cart
		cartGroup.GET("/sync", cartControllers.GetSyncStatus(manager))          // GET /cart/sync
	}

	// websocket endpoint for real-time sync progress
	r.GET("/cart/sync/ws", cartControllers.SyncWebSocketHandler)
}
