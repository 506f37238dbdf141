package api

import (
	"context"  // Context for Redis operations
	"errors"   // Error inspection
	"net/http" // HTTP status codes
	"regexp"   // Regular expressions
	"strings"  // String manipulation

	"movie_booking/internal/domain" // Importing domain models
	"movie_booking/internal/utils"  // Utility functions

	"github.com/gin-gonic/gin"                // Gin web framework
	mysqldrv "github.com/go-sql-driver/mysql" // MySQL driver errors
	"github.com/redis/go-redis/v9"            // Redis client
	"golang.org/x/crypto/bcrypt"              // Password hashing
	"gorm.io/gorm"                            // GORM ORM library
)

// Request struct for registration
type RegisterRequest struct {
	Name     string `json:"name" binding:"required"`     // Name must be provided
	Email    string `json:"email" binding:"required"`    // Email must be provided
	Password string `json:"password" binding:"required"` // Password must be provided
	Phone    string `json:"phone"`                       // Phone is optional
}

// Request struct for login
type LoginRequest struct {
	Email    string `json:"email" binding:"required"`    // Email must be provided
	Password string `json:"password" binding:"required"` // Password must be provided
}

// UserResponse is the user record as returned to callers (hash excluded)
type UserResponse struct {
	ID    uint   `json:"id"`    // User ID
	Name  string `json:"name"`  // Display name
	Email string `json:"email"` // Email address
	Phone string `json:"phone"` // Phone number
	Role  string `json:"role"`  // Role: user or owner
	City  string `json:"city"`  // Preferred city
	State string `json:"state"` // Preferred state
}

// toUserResponse maps a stored user to its response form
func toUserResponse(u domain.User) UserResponse {
	return UserResponse{
		ID:    u.ID,    // User ID
		Name:  u.Name,  // Display name
		Email: u.Email, // Email address
		Phone: u.Phone, // Phone number
		Role:  u.Role,  // Role
		City:  u.City,  // Preferred city
		State: u.State, // Preferred state
	}
}

var emailPattern = regexp.MustCompile(`^[^@\s]+@[^@\s]+\.[^@\s]+$`) // Minimal email shape check

// isValidEmail checks that the email has a plausible address shape
func isValidEmail(email string) bool {
	return emailPattern.MatchString(email) // Return whether it matched
}

// isDuplicateEmail reports whether err is the MySQL duplicate-key error.
// The unique index on email makes the insert itself the uniqueness check,
// so no separate lookup races against concurrent registrations.
func isDuplicateEmail(err error) bool {
	var myErr *mysqldrv.MySQLError
	if errors.As(err, &myErr) {
		return myErr.Number == 1062 // ER_DUP_ENTRY
	}
	return errors.Is(err, gorm.ErrDuplicatedKey)
}

// RegisterHandler creates a new user account with the fixed role "user"
func RegisterHandler(db *gorm.DB, rdb *redis.Client) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req RegisterRequest // Bind JSON request to struct
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
		// Hash the password before storing it
		hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
		if err != nil {
			// If hashing fails, return internal server error
			c.JSON(http.StatusInternalServerError, gin.H{"message": "Failed to hash password"})
			return
		}
		// Create the user; role is always "user", never caller-settable
		user := domain.User{
			Name:     req.Name,                   // Display name
			Email:    strings.ToLower(req.Email), // Lowercase email for uniqueness
			Password: string(hash),               // Bcrypt hash
			Phone:    req.Phone,                  // Optional phone
			Role:     domain.RoleUser,            // Fixed role
		}
		// Attempt to insert; the unique email index rejects duplicates
		if err := db.Create(&user).Error; err != nil {
			if isDuplicateEmail(err) {
				// Duplicate email, return bad request
				c.JSON(http.StatusBadRequest, gin.H{"message": "Email already registered"})
				return
			}
			// Any other store failure is a generic server error
			c.JSON(http.StatusInternalServerError, gin.H{"message": "Database error"})
			return
		}
		// Invalidate the cached role counts
		_ = utils.DeleteCache(context.Background(), rdb, utils.StatsCacheKey)
		// Return success response
		c.JSON(http.StatusOK, gin.H{"message": "User registered successfully"})
	}
}

// LoginHandler authenticates a user and returns a session token with the record
func LoginHandler(db *gorm.DB, jwtSecret string) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req LoginRequest // Bind JSON request to struct
		if err := c.ShouldBindJSON(&req); err != nil {
			// If binding fails, return bad request
			c.JSON(http.StatusBadRequest, gin.H{"message": "Email and password are required"})
			return
		}
		var user domain.User // Fetch user from database
		if err := db.Where("email = ?", strings.ToLower(req.Email)).First(&user).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				// If user not found, return not found
				c.JSON(http.StatusNotFound, gin.H{"message": "User not found"})
				return
			}
			// Any other store failure is a generic server error
			c.JSON(http.StatusInternalServerError, gin.H{"message": "Database error"})
			return
		}
		// Compare provided password with stored hash
		if err := bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(req.Password)); err != nil {
			c.JSON(http.StatusUnauthorized, gin.H{"message": "Incorrect password"})
			return
		}
		// Generate JWT token for subsequent id-keyed calls
		token, err := utils.GenerateJWT(user.ID, jwtSecret)
		if err != nil {
			// If token generation fails, return internal server error
			c.JSON(http.StatusInternalServerError, gin.H{"message": "Failed to generate token"})
			return
		}
		// Return the token and the record with the hash excluded
		c.JSON(http.StatusOK, gin.H{
			"message": "Login successful",   // Acknowledgment
			"token":   token,                // Session token
			"user":    toUserResponse(user), // Stored record, no hash
		})
	}
}
