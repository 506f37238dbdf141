package middleware

import (
	"net/http" // HTTP status codes
	"strconv"  // String conversion for route params
	"strings"  // String manipulation

	"movie_booking/internal/utils" // JWT utility functions

	"github.com/gin-gonic/gin" // Gin web framework
)

// JWTAuthMiddleware validates JWT tokens and extracts user information
func JWTAuthMiddleware(secret string) gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := c.GetHeader("Authorization") // Get Authorization header
		// Check if the Authorization header is present and properly formatted
		if authHeader == "" || !strings.HasPrefix(authHeader, "Bearer ") {
			// If not, abort with unauthorized status
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"message": "Missing or invalid Authorization header"})
			return
		}
		tokenStr := strings.TrimPrefix(authHeader, "Bearer ") // Extract the token string and parse it
		claims, err := utils.ParseJWT(tokenStr, secret)       // Parse the JWT token
		if err != nil {
			// If parsing fails, abort with unauthorized status
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"message": "Invalid or expired token"})
			return
		}
		c.Set("userID", claims.UserID) // Store userID in context
		c.Next()                       // Proceed to the next handler
	}
}

// SelfOnlyMiddleware restricts an id-keyed route to the account named in
// the token; the :id parameter alone is not proof of identity.
func SelfOnlyMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		userID, exists := c.Get("userID") // Get userID from context
		// Check if userID exists in context
		if !exists {
			// If not, abort with unauthorized status
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"message": "Unauthorized"})
			return
		}
		// Parse the :id route parameter
		id, err := strconv.ParseUint(c.Param("id"), 10, 64)
		if err != nil {
			// If the parameter is not numeric, abort with bad request
			c.AbortWithStatusJSON(http.StatusBadRequest, gin.H{"message": "Invalid user id"})
			return
		}
		// Check that the token belongs to the targeted account
		if userID.(uint) != uint(id) {
			// If not, abort with forbidden status
			c.AbortWithStatusJSON(http.StatusForbidden, gin.H{"message": "You can only modify your own account"})
			return
		}
		c.Next() // Proceed to the next handler
	}
}
