package middleware

import (
	"errors"
	"net/http"
	"strings"

	"github.com/Loki3341/sales-savvy/models"
	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
)

// ValidateToken resolves the bearer credential to (user_id, role) and stores
// both in the gin context. Token issuance happens in the external identity
// service; this side only verifies and consumes.
func ValidateToken(secret string) gin.HandlerFunc {
	return func(c *gin.Context) {
		tokenString := c.GetHeader("Authorization")
		if tokenString == "" {
			c.JSON(http.StatusUnauthorized, gin.H{"success": false, "error": "Authorization header is missing"})
			c.Abort()
			return
		}
		tokenString = strings.TrimPrefix(tokenString, "Bearer ")

		token, err := jwt.Parse(tokenString, func(token *jwt.Token) (interface{}, error) {
			if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
				return nil, errors.New("invalid token signing method")
			}
			return []byte(secret), nil
		})
		if err != nil || !token.Valid {
			c.JSON(http.StatusUnauthorized, gin.H{"success": false, "error": "Invalid or expired token"})
			c.Abort()
			return
		}

		claims, ok := token.Claims.(jwt.MapClaims)
		if !ok {
			c.JSON(http.StatusUnauthorized, gin.H{"success": false, "error": "Invalid token claims"})
			c.Abort()
			return
		}

		userID, ok := claims["user_id"].(float64)
		if !ok || userID <= 0 {
			c.JSON(http.StatusUnauthorized, gin.H{"success": false, "error": "Invalid token claims"})
			c.Abort()
			return
		}
		role, _ := claims["role"].(string)

		c.Set("user_id", uint(userID))
		c.Set("role", models.Role(role))

		c.Next()
	}
}

// RequireAdmin gates admin route groups on the role claim.
func RequireAdmin() gin.HandlerFunc {
	return func(c *gin.Context) {
		roleVal, exists := c.Get("role")
		if !exists || !roleVal.(models.Role).IsAdmin() {
			c.JSON(http.StatusForbidden, gin.H{"success": false, "error": "Access denied - admin role required"})
			c.Abort()
			return
		}
		c.Next()
	}
}

// CurrentUserID reads the authenticated user id set by ValidateToken.
func CurrentUserID(c *gin.Context) (uint, bool) {
	v, exists := c.Get("user_id")
	if !exists {
		return 0, false
	}
	id, ok := v.(uint)
	return id, ok
}

// IsAdmin reports whether the authenticated caller carries the admin role.
func IsAdmin(c *gin.Context) bool {
	v, exists := c.Get("role")
	return exists && v.(models.Role).IsAdmin()
}
