package api

import (
	"context"  // Context for Redis operations
	"errors"   // Error inspection
	"net/http" // HTTP status codes
	"strconv"  // String conversion
	"strings"  // String manipulation

	"movie_booking/internal/domain" // Importing domain models
	"movie_booking/internal/utils"  // Utility functions

	"github.com/gin-gonic/gin"     // Gin web framework
	"github.com/redis/go-redis/v9" // Redis client
	"golang.org/x/crypto/bcrypt"   // Password hashing
	"gorm.io/gorm"                 // GORM ORM library
)

// Request struct for profile update. Password is required because every
// update rewrites the stored hash; a caller changing only name or phone
// must re-supply (and thereby resets) the password.
type UpdateUserRequest struct {
	Name     string `json:"name" binding:"required"`     // Name must be provided
	Email    string `json:"email" binding:"required"`    // Email must be provided
	Password string `json:"password" binding:"required"` // Password must be provided
	Phone    string `json:"phone"`                       // Phone is optional
}

// Request struct for the navbar location preference
type UpdateLocationRequest struct {
	Email string `json:"email" binding:"required"` // Email must be provided
	State string `json:"state" binding:"required"` // State must be provided
	City  string `json:"city" binding:"required"`  // City must be provided
}

// ProfileHandler returns a user profile looked up by email
func ProfileHandler(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		email := c.Query("email") // Email from query string
		if email == "" {
			// If email is missing, return bad request
			c.JSON(http.StatusBadRequest, gin.H{"message": "Email is required"})
			return
		}
		var user domain.User // Fetch user from database
		if err := db.Where("email = ?", strings.ToLower(email)).First(&user).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				// If user not found, return not found
				c.JSON(http.StatusNotFound, gin.H{"message": "User not found"})
				return
			}
			// Any other store failure is a generic server error
			c.JSON(http.StatusInternalServerError, gin.H{"message": "Database error"})
			return
		}
		c.JSON(http.StatusOK, toUserResponse(user)) // Return the profile, no hash
	}
}

// UpdateUserHandler rewrites a user record by id. The password is
// rehashed unconditionally, so the old password stops authenticating
// after any update.
func UpdateUserHandler(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		// Parse the :id route parameter
		id, err := strconv.ParseUint(c.Param("id"), 10, 64)
		if err != nil {
			// If the parameter is not numeric, return bad request
			c.JSON(http.StatusBadRequest, gin.H{"message": "Invalid user id"})
			return
		}
		var req UpdateUserRequest // Bind JSON request to struct
		if err := c.ShouldBindJSON(&req); err != nil {
			// If binding fails, return bad request
			c.JSON(http.StatusBadRequest, gin.H{"message": "Name, email and password are required"})
			return
		}
		// Validate email shape
		if !isValidEmail(req.Email) {
			// If email is invalid, return bad request
			c.JSON(http.StatusBadRequest, gin.H{"message": "Invalid email address"})
			return
		}
		// Rehash the supplied password
		hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
		if err != nil {
			// If hashing fails, return internal server error
			c.JSON(http.StatusInternalServerError, gin.H{"message": "Failed to hash password"})
			return
		}
		// Update the record in place
		res := db.Model(&domain.User{}).Where("id = ?", id).Updates(map[string]any{
			"name":     req.Name,                   // Display name
			"email":    strings.ToLower(req.Email), // Email, mutable on this variant
			"password": string(hash),               // Fresh hash
			"phone":    req.Phone,                  // Optional phone
		})
		if res.Error != nil {
			if isDuplicateEmail(res.Error) {
				// New email already belongs to another account
				c.JSON(http.StatusBadRequest, gin.H{"message": "Email already registered"})
				return
			}
			// Any other store failure is a generic server error
			c.JSON(http.StatusInternalServerError, gin.H{"message": "Database error"})
			return
		}
		// Zero rows affected means the id did not resolve
		if res.RowsAffected == 0 {
			c.JSON(http.StatusNotFound, gin.H{"message": "User not found"})
			return
		}
		c.JSON(http.StatusOK, gin.H{"message": "Profile updated successfully"}) // Return success
	}
}

// DeleteUserHandler removes a user record by id
func DeleteUserHandler(db *gorm.DB, rdb *redis.Client) gin.HandlerFunc {
	return func(c *gin.Context) {
		// Parse the :id route parameter
		id, err := strconv.ParseUint(c.Param("id"), 10, 64)
		if err != nil {
			// If the parameter is not numeric, return bad request
			c.JSON(http.StatusBadRequest, gin.H{"message": "Invalid user id"})
			return
		}
		// Delete the record
		res := db.Delete(&domain.User{}, id)
		if res.Error != nil {
			// Any store failure is a generic server error
			c.JSON(http.StatusInternalServerError, gin.H{"message": "Database error"})
			return
		}
		// Zero rows affected means the id did not resolve
		if res.RowsAffected == 0 {
			c.JSON(http.StatusNotFound, gin.H{"message": "User not found"})
			return
		}
		// Invalidate the cached role counts
		_ = utils.DeleteCache(context.Background(), rdb, utils.StatsCacheKey)
		c.JSON(http.StatusOK, gin.H{"message": "User deleted successfully"}) // Return success
	}
}

// UpdateLocationHandler persists the navbar's detected or selected
// state and city for a user, keyed by email
func UpdateLocationHandler(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req UpdateLocationRequest // Bind JSON request to struct
		if err := c.ShouldBindJSON(&req); err != nil {
			// If binding fails, return bad request
			c.JSON(http.StatusBadRequest, gin.H{"message": "Email, state and city are required"})
			return
		}
		email := strings.ToLower(req.Email) // Lowercase email for lookup
		// Store the preference in a single statement
		res := db.Model(&domain.User{}).Where("email = ?", email).Updates(map[string]any{
			"state": req.State, // Preferred state
			"city":  req.City,  // Preferred city
		})
		if res.Error != nil {
			// Any store failure is a generic server error
			c.JSON(http.StatusInternalServerError, gin.H{"message": "Database error"})
			return
		}
		// Zero rows affected is either an unknown email or an unchanged
		// preference; only the former is a 404
		if res.RowsAffected == 0 {
			var user domain.User
			if err := db.Where("email = ?", email).First(&user).Error; err != nil {
				if errors.Is(err, gorm.ErrRecordNotFound) {
					// If user not found, return not found
					c.JSON(http.StatusNotFound, gin.H{"message": "User not found"})
					return
				}
				// Any other store failure is a generic server error
				c.JSON(http.StatusInternalServerError, gin.H{"message": "Database error"})
				return
			}
		}
		c.JSON(http.StatusOK, gin.H{"message": "Location updated successfully"}) // Return success
	}
}
