package api

import (
	"context"  // Context for Redis operations
	"net/http" // HTTP status codes
	"time"     // Time durations

	"movie_booking/internal/domain" // Importing domain models
	"movie_booking/internal/utils"  // Utility functions

	"github.com/gin-gonic/gin"     // Gin web framework
	"github.com/redis/go-redis/v9" // Redis client
	"gorm.io/gorm"                 // GORM ORM library
)

// StatsResponse holds the aggregate role counts
type StatsResponse struct {
	Users  int64 `json:"users"`  // Accounts with role user
	Owners int64 `json:"owners"` // Accounts with role owner
}

// StatsHandler returns the number of accounts per role, cached in Redis
func StatsHandler(db *gorm.DB, rdb *redis.Client) gin.HandlerFunc {
	return func(c *gin.Context) {
		ctx := context.Background() // Use background context for Redis
		// Try to get cached counts
		var cached StatsResponse
		found, err := utils.GetCache(ctx, rdb, utils.StatsCacheKey, &cached)
		if err == nil && found {
			c.JSON(http.StatusOK, gin.H{
				"users":  cached.Users,  // Accounts with role user
				"owners": cached.Owners, // Accounts with role owner
				"cached": true,          // Indicate response is from cache
			})
			return
		}
		var users int64 // Count of accounts with role user
		if err := db.Model(&domain.User{}).Where("role = ?", domain.RoleUser).Count(&users).Error; err != nil {
			// If counting fails, return internal server error
			c.JSON(http.StatusInternalServerError, gin.H{"message": "Database error"})
			return
		}
		var owners int64 // Count of accounts with role owner
		if err := db.Model(&domain.User{}).Where("role = ?", domain.RoleOwner).Count(&owners).Error; err != nil {
			// If counting fails, return internal server error
			c.JSON(http.StatusInternalServerError, gin.H{"message": "Database error"})
			return
		}
		// Cache the counts for future requests
		_ = utils.SetCache(ctx, rdb, utils.StatsCacheKey, StatsResponse{Users: users, Owners: owners}, 60*time.Second)
		c.JSON(http.StatusOK, gin.H{
			"users":  users,  // Accounts with role user
			"owners": owners, // Accounts with role owner
			"cached": false,  // Indicate response is not from cache
		})
	}
}
