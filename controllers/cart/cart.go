package cartControllers

import (
	"errors"
	"net/http"

	"github.com/DevNutsPk/demoEcommerce/reconciler"
	"github.com/gin-gonic/gin"
)

type AddItemInput struct {
	ProductID string            `json:"product_id" binding:"required"`
	Variant   map[string]string `json:"variant"`
	Quantity  int               `json:"quantity" binding:"required,min=1"`
}

type UpdateItemInput struct {
	// Pointer so an explicit zero (remove the item) binds.
	Quantity *int `json:"quantity" binding:"required"`
}

// activeSession resolves the caller's cart session from the validated
// token claims.
func activeSession(c *gin.Context, manager *reconciler.Manager) *reconciler.Session {
	return manager.Session(c.GetString("device_id"), c.GetString("user_id"))
}

// GET /cart
func GetCart(manager *reconciler.Manager) gin.HandlerFunc {
	return func(c *gin.Context) {
		session := activeSession(c, manager)
		view, err := session.View(c.Request.Context())
		if err != nil {
			c.JSON(http.StatusBadGateway, gin.H{"error": "Failed to load cart: " + err.Error()})
			return
		}
		c.JSON(http.StatusOK, view)
	}
}

// POST /cart
func AddCartItem(manager *reconciler.Manager) gin.HandlerFunc {
	return func(c *gin.Context) {
		var input AddItemInput
		if err := c.ShouldBindJSON(&input); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid input: " + err.Error()})
			return
		}

		session := activeSession(c, manager)
		if err := session.AddItem(c.Request.Context(), input.ProductID, input.Variant, input.Quantity); err != nil {
			if errors.Is(err, reconciler.ErrInvalidInput) {
				c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
				return
			}
			c.JSON(http.StatusBadGateway, gin.H{"error": err.Error()})
			return
		}

		view, err := session.View(c.Request.Context())
		if err != nil {
			c.JSON(http.StatusCreated, gin.H{"message": "Item added"})
			return
		}
		c.JSON(http.StatusCreated, view)
	}
}

// PUT /cart/:item_key
func UpdateCartItem(manager *reconciler.Manager) gin.HandlerFunc {
	return func(c *gin.Context) {
		var input UpdateItemInput
		if err := c.ShouldBindJSON(&input); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid input: " + err.Error()})
			return
		}

		session := activeSession(c, manager)
		if err := session.UpdateQuantity(c.Request.Context(), c.Param("item_key"), *input.Quantity); err != nil {
			c.JSON(http.StatusBadGateway, gin.H{"error": err.Error()})
			return
		}

		view, err := session.View(c.Request.Context())
		if err != nil {
			c.JSON(http.StatusOK, gin.H{"message": "Cart updated"})
			return
		}
		c.JSON(http.StatusOK, view)
	}
}

// DELETE /cart/:item_key
func DeleteCartItem(manager *reconciler.Manager) gin.HandlerFunc {
	return func(c *gin.Context) {
		session := activeSession(c, manager)
		if err := session.RemoveItem(c.Request.Context(), c.Param("item_key")); err != nil {
			c.JSON(http.StatusBadGateway, gin.H{"error": err.Error()})
			return
		}
		c.JSON(http.StatusOK, gin.H{"message": "Cart item removed"})
	}
}

// DELETE /cart
func ClearCart(manager *reconciler.Manager) gin.HandlerFunc {
	return func(c *gin.Context) {
		session := activeSession(c, manager)
		if err := session.ClearCart(c.Request.Context()); err != nil {
			c.JSON(http.StatusBadGateway, gin.H{"error": err.Error()})
			return
		}
		c.JSON(http.StatusOK, gin.H{"message": "Cart cleared"})
	}
}

// GET /cart/sync
//
// Reports the last merge outcome so the UI can show a retryable
// "cart sync incomplete" state after a partial failure.
func GetSyncStatus(manager *reconciler.Manager) gin.HandlerFunc {
	return func(c *gin.Context) {
		session := activeSession(c, manager)
		resp := gin.H{
			"mode":        session.Mode(),
			"sync_status": session.SyncStatus(),
		}
		if last := session.LastMerge(); last != nil {
			resp["last_merge"] = last
		}
		c.JSON(http.StatusOK, resp)
	}
}
