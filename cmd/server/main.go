package main

import (
	"context" // context package is needed for Redis operations
	"log"     // log package is needed for logging

	"movie_booking/internal/api"        // Custom package for API handlers
	"movie_booking/internal/config"     // Custom package for configuration
	"movie_booking/internal/middleware" // Custom package for middleware

	// For loading .env files
	"github.com/gin-gonic/gin"     // Gin web framework
	"github.com/redis/go-redis/v9" // Redis client
	"github.com/sirupsen/logrus"   // Logrus for structured logging
	"gorm.io/driver/mysql"         // MySQL driver for GORM
	"gorm.io/gorm"                 // GORM ORM library
)

// Main function to set up and run the server
func main() {
	cfg := config.LoadConfig() // Load configuration

	// Setup logger
	logrus.SetFormatter(&logrus.TextFormatter{FullTimestamp: true})

	// Setup Data Source Name (DSN) and connect to the database
	dsn := cfg.DBUser + ":" + cfg.DBPassword + "@tcp(" + cfg.DBHost + ":" + cfg.DBPort + ")/" + cfg.DBName + "?parseTime=true"
	db, err := gorm.Open(mysql.Open(dsn), &gorm.Config{})
	if err != nil {
		logrus.Fatalf("failed to connect to DB: %v", err) // Fatal error if DB connection fails
	}

	// Setup Redis client
	redisClient := redis.NewClient(&redis.Options{
		Addr:     cfg.RedisAddr, // Redis server address
		Password: cfg.RedisPass, // Redis password
		DB:       cfg.RedisDB,   // Redis database number
	})

	// Test Redis connection
	_, err = redisClient.Ping(context.Background()).Result()
	if err != nil {
		logrus.Fatalf("failed to connect to Redis: %v", err)
	}

	// Set Mode to Release if in production
	if cfg.IsProd {
		gin.SetMode(gin.ReleaseMode)
	}

	// Setup Gin
	r := gin.Default() // Gin router instance

	// Set trusted proxies for Gin
	if err := r.SetTrustedProxies([]string{"127.0.0.1"}); err != nil {
		logrus.Fatalf("failed to set trusted proxies: %v", err)
	}

	// Auth routes
	r.POST("/register", api.RegisterHandler(db, redisClient)) // Registration endpoint
	r.POST("/login", api.LoginHandler(db, cfg.JWTSecret))     // Login endpoint

	// Profile routes
	r.GET("/user-profile", api.ProfileHandler(db))           // Profile lookup endpoint
	r.PUT("/update-location", api.UpdateLocationHandler(db)) // Navbar location preference endpoint

	// Account mutation routes (protected by JWT, self only)
	userGroup := r.Group("/users")
	userGroup.GET("/stats", api.StatsHandler(db, redisClient)) // Role counts endpoint
	protected := userGroup.Group("")
	protected.Use(middleware.JWTAuthMiddleware(cfg.JWTSecret), middleware.SelfOnlyMiddleware())
	protected.PUT("/:id", api.UpdateUserHandler(db))                 // Profile update endpoint
	protected.DELETE("/:id", api.DeleteUserHandler(db, redisClient)) // Account deletion endpoint

	// Password recovery routes
	r.POST("/check-email", api.CheckEmailHandler(db))       // Forgot-password email check endpoint
	r.POST("/reset-password", api.ResetPasswordHandler(db)) // Password reset endpoint

	log.Println("Server running on " + cfg.AppPort) // Log server start
	r.Run(":" + cfg.AppPort)                        // Start the server on port cfg.AppPort
}
