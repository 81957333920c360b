package middleware

import (
	"errors"
	"net/http"
	"os"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
)

// ValidateSession parses the session JWT and puts the device identity
// (and user identity, if authenticated) on the context.
func ValidateSession(c *gin.Context) {
	tokenString := c.GetHeader("Authorization")
	if tokenString == "" {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Authorization header is missing"})
		c.Abort()
		return
	}
	tokenString = strings.TrimPrefix(tokenString, "Bearer ")

	token, err := jwt.Parse(tokenString, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, errors.New("invalid token signing method")
		}
		return []byte(os.Getenv("JWT_SECRET")), nil
	})

	if err != nil || !token.Valid {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Invalid or expired token"})
		c.Abort()
		return
	}

	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Invalid token claims"})
		c.Abort()
		return
	}

	deviceID, _ := claims["device_id"].(string)
	if deviceID == "" {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Token carries no device identity"})
		c.Abort()
		return
	}
	c.Set("device_id", deviceID)

	if userID, _ := claims["user_id"].(string); userID != "" {
		c.Set("user_id", userID)
	}
	if role, _ := claims["role"].(string); role != "" {
		c.Set("role", role)
	}

	c.Next()
}
