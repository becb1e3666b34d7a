package main

import (
	"log"
	"net/http"
	"os"

	"github.com/gin-gonic/gin"

	"pizza-club-api/config"
	"pizza-club-api/handlers"
	"pizza-club-api/notify"
	"pizza-club-api/routes"
	"pizza-club-api/schedule"
)

func main() {
	// Set Gin mode
	mode := os.Getenv("GIN_MODE")
	if mode == "" {
		gin.SetMode(gin.DebugMode)
	}

	// Load settings and initialize database
	if err := config.Load(); err != nil {
		log.Fatal("Failed to load settings:", err)
	}
	config.InitDB()

	roster, err := schedule.NewRoster(config.App.SlotFirst, config.App.SlotLast, config.App.SlotStepMin)
	if err != nil {
		log.Fatal("Invalid slot roster:", err)
	}

	handlers.Init(config.DB, notify.NewSMSLog(), roster)

	// Create Gin router with default middleware (logger + recovery)
	r := gin.Default()

	// CORS middleware for the terminal frontend
	r.Use(func(c *gin.Context) {
		c.Header("Access-Control-Allow-Origin", "*")
		c.Header("Access-Control-Allow-Methods", "GET, POST, PUT, DELETE, OPTIONS")
		c.Header("Access-Control-Allow-Headers", "Origin, Content-Type, Authorization")
		if c.Request.Method == "OPTIONS" {
			c.AbortWithStatus(http.StatusNoContent)
			return
		}
		c.Next()
	})

	// Health check endpoint
	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"status":  "healthy",
			"service": "Pizza Club Ordering API",
			"version": "1.0.0",
		})
	})

	// Welcome
	r.GET("/", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"message": "🍕 Welcome to the Pizza Club Ordering API",
			"docs":    "/api/state-machine",
			"health":  "/health",
			"nights":  "/api/nights",
		})
	})

	// Register all routes
	routes.SetupRoutes(r)

	// Start server
	log.Printf("🚀 Server running on http://localhost:%s", config.App.Port)
	if err := r.Run(":" + config.App.Port); err != nil {
		log.Fatal("Failed to start server:", err)
	}
}
