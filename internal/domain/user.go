package domain

// User Model
type User struct {
	ID       uint   `gorm:"primaryKey"`           // Primary key, assigned by the database
	Name     string `gorm:"not null"`             // Display name
	Email    string `gorm:"uniqueIndex;not null"` // Unique email, alternate lookup key
	Password string `gorm:"not null"`             // Bcrypt hash, never returned to callers
	Phone    string // Optional phone number
	Role     string `gorm:"default:user"` // Role: user or owner
	City     string // Display-location preference (navbar)
	State    string // Display-location preference (navbar)
}

// Roles assignable to a user. Registration always assigns RoleUser;
// RoleOwner exists in stored data but no endpoint promotes to it.
const (
	RoleUser  = "user"
	RoleOwner = "owner"
)
