package auth

import (
	"errors"
	"net/http"
	"os"

	"github.com/DevNutsPk/demoEcommerce/reconciler"
	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
)

// POST /session/login
//
// Consumes the "user became authenticated" signal: the client presents
// the identity token issued by the auth service, the guest cart is
// merged into the user's server cart and a fresh authenticated session
// token is returned together with the merge outcome. Authentication
// itself happens elsewhere; this endpoint only verifies the token.
func LoginHandler(manager *reconciler.Manager) gin.HandlerFunc {
	return func(c *gin.Context) {
		deviceID := c.GetString("device_id")
		if deviceID == "" {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
			return
		}

		var input struct {
			IdentityToken string `json:"identity_token" binding:"required"`
		}
		if err := c.ShouldBindJSON(&input); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid input: " + err.Error()})
			return
		}

		userID, err := parseIdentityToken(input.IdentityToken)
		if err != nil {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "Invalid identity token"})
			return
		}

		session := manager.Session(deviceID, "")
		result := session.Login(c.Request.Context(), userID)

		token, err := issueSessionToken(deviceID, userID, "user")
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Token generation failed"})
			return
		}

		c.JSON(http.StatusOK, gin.H{
			"token":       token,
			"user_id":     userID,
			"sync_status": result.Status,
			"sync":        result,
		})
	}
}

// POST /session/logout
//
// Drops back to guest mode and clears the device's persisted guest
// cart. Responds with a fresh guest token for the same device.
func LogoutHandler(manager *reconciler.Manager) gin.HandlerFunc {
	return func(c *gin.Context) {
		deviceID := c.GetString("device_id")
		if deviceID == "" {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
			return
		}

		session := manager.Session(deviceID, c.GetString("user_id"))
		session.Logout(c.Request.Context())

		token, err := issueSessionToken(deviceID, "", "guest")
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Token generation failed"})
			return
		}

		c.JSON(http.StatusOK, gin.H{
			"message": "Logged out",
			"token":   token,
		})
	}
}

// parseIdentityToken verifies the auth service's token and extracts the
// user identity.
func parseIdentityToken(tokenString string) (string, error) {
	token, err := jwt.Parse(tokenString, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, errors.New("invalid token signing method")
		}
		return []byte(os.Getenv("JWT_SECRET")), nil
	})
	if err != nil || !token.Valid {
		return "", errors.New("invalid or expired token")
	}

	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok {
		return "", errors.New("invalid token claims")
	}
	userID, _ := claims["user_id"].(string)
	if userID == "" {
		return "", errors.New("token carries no user identity")
	}
	return userID, nil
}
