package api

import (
	"errors"   // Error inspection
	"net/http" // HTTP status codes
	"strings"  // String manipulation

	"movie_booking/internal/domain" // Importing domain models

	"github.com/gin-gonic/gin"   // Gin web framework
	"golang.org/x/crypto/bcrypt" // Password hashing
	"gorm.io/gorm"               // GORM ORM library
)

// Request struct for the forgot-password email check
type CheckEmailRequest struct {
	Email string `json:"email" binding:"required"` // Email must be provided
}

// Request struct for the password reset step
type ResetPasswordRequest struct {
	Email       string `json:"email" binding:"required"`       // Email must be provided
	NewPassword string `json:"newPassword" binding:"required"` // New password must be provided
}

// CheckEmailHandler confirms an email belongs to an account before the
// reset step. No token gates the reset step; anyone who knows a
// registered email can reset its password.
func CheckEmailHandler(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req CheckEmailRequest // Bind JSON request to struct
		if err := c.ShouldBindJSON(&req); err != nil {
			// If binding fails, return bad request
			c.JSON(http.StatusBadRequest, gin.H{"message": "Email is required"})
			return
		}
		var user domain.User // Fetch user from database
		if err := db.Where("email = ?", strings.ToLower(req.Email)).First(&user).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				// If no account matches, return not found
				c.JSON(http.StatusNotFound, gin.H{"message": "Email not found"})
				return
			}
			// Any other store failure is a generic server error
			c.JSON(http.StatusInternalServerError, gin.H{"message": "Database error"})
			return
		}
		// Acknowledge existence
		c.JSON(http.StatusOK, gin.H{"message": "Email exists. Proceed to reset password."})
	}
}

// ResetPasswordHandler overwrites the stored hash with a hash of the
// supplied new password
func ResetPasswordHandler(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req ResetPasswordRequest // Bind JSON request to struct
		if err := c.ShouldBindJSON(&req); err != nil {
			// If binding fails, return bad request
			c.JSON(http.StatusBadRequest, gin.H{"message": "Email and new password are required"})
			return
		}
		// Hash the new password
		hash, err := bcrypt.GenerateFromPassword([]byte(req.NewPassword), bcrypt.DefaultCost)
		if err != nil {
			// If hashing fails, return internal server error
			c.JSON(http.StatusInternalServerError, gin.H{"message": "Failed to hash password"})
			return
		}
		// Overwrite the stored hash
		res := db.Model(&domain.User{}).Where("email = ?", strings.ToLower(req.Email)).
			Update("password", string(hash))
		if res.Error != nil {
			// Any store failure is a generic server error
			c.JSON(http.StatusInternalServerError, gin.H{"message": "Database error"})
			return
		}
		// Zero rows affected means the email did not resolve
		if res.RowsAffected == 0 {
			c.JSON(http.StatusNotFound, gin.H{"message": "Email not found"})
			return
		}
		c.JSON(http.StatusOK, gin.H{"message": "Password reset successful"}) // Return success
	}
}
