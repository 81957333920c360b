package auth

import (
	"crypto/rand"
	"encoding/hex"
	"net/http"
	"os"
	"time"

	"github.com/DevNutsPk/demoEcommerce/models"
	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
	"gorm.io/gorm"
)

// POST /auth/guest
func CreateGuestDevice(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {

		deviceID := "guest_" + generateRandomString(16)

		device := models.GuestDevice{
			ID:        deviceID,
			ExpiresAt: time.Now().Add(24 * time.Hour),
		}

		if err := db.Create(&device).Error; err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create guest device"})
			return
		}

		token, err := issueSessionToken(deviceID, "", "guest")
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Token generation failed"})
			return
		}

		c.JSON(http.StatusOK, gin.H{
			"device_id":  deviceID,
			"token":      token,
			"expires_at": device.ExpiresAt,
		})
	}
}

func generateRandomString(n int) string {
	bytes := make([]byte, n)
	if _, err := rand.Read(bytes); err != nil {
		return "rand_guest"
	}
	return hex.EncodeToString(bytes)
}

// issueSessionToken signs a session JWT. userID is empty for guests.
func issueSessionToken(deviceID, userID, role string) (string, error) {
	claims := jwt.MapClaims{
		"device_id": deviceID,
		"role":      role,
		"exp":       time.Now().Add(24 * time.Hour).Unix(),
	}
	if userID != "" {
		claims["user_id"] = userID
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString([]byte(os.Getenv("JWT_SECRET")))
}
