// main.go
package main

import (
	"log"
	"os"
	"time"

	"fodyquest/database"
	"fodyquest/handlers"
	"fodyquest/handlers/admin"
	"fodyquest/middleware"
	"fodyquest/services"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/joho/godotenv"
)

func main() {
	// Load environment variables
	if err := godotenv.Load(); err != nil {
		log.Println("Warning: .env file not found, using system environment variables")
	}

	// Validate critical environment variables
	validateEnvironment()

	// Initialize database
	database.InitDB()
	db := database.GetDB()

	// Load the achievement/task catalog, seeding defaults on first run
	catalog := services.NewCatalog(db)
	if err := catalog.Load(); err != nil {
		log.Fatalf("❌ Failed to load catalog: %v", err)
	}
	log.Printf("✅ Catalog loaded: %d achievements, %d tasks",
		len(catalog.Achievements()), len(catalog.Tasks()))

	handlers.InitHandlers(db, catalog)
	admin.InitHandlers(catalog)

	// Create Fiber app
	app := fiber.New(fiber.Config{
		ErrorHandler: customErrorHandler,
		BodyLimit:    4 * 1024 * 1024, // 4MB
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 10 * time.Second,
	})

	// Global middleware
	app.Use(recover.New())
	app.Use(logger.New(logger.Config{
		Format: "[${time}] ${status} - ${method} ${path} (${latency})\n",
	}))

	// CORS configuration
	corsOrigins := os.Getenv("CORS_ORIGINS")
	if corsOrigins == "" {
		corsOrigins = "*"
	}

	app.Use(cors.New(cors.Config{
		AllowOrigins: corsOrigins,
		AllowMethods: "GET,POST,PUT,DELETE,OPTIONS",
		AllowHeaders: "Origin, Content-Type, Accept, Authorization",
	}))

	// Apply rate limiting to all routes
	app.Use(middleware.FiberRateLimitMiddleware())

	// API Routes
	api := app.Group("/api")

	// Gamification routes
	gamification := api.Group("/gamification")
	gamification.Get("/info", handlers.GetGamificationInfo)
	gamification.Get("/status/:token", handlers.GetUserStatus)
	gamification.Post("/token", handlers.CreateToken)
	gamification.Post("/points", handlers.AddPoints)
	gamification.Post("/achievement", handlers.UnlockAchievement)
	gamification.Post("/task", handlers.CompleteTask)
	gamification.Post("/sync", handlers.FullSync)
	gamification.Get("/leaderboard", handlers.GetLeaderboard)
	gamification.Post("/settings", handlers.UpdateSettings)
	gamification.Post("/initialize", handlers.InitializeUser)

	// Telemetry routes
	api.Post("/upload_usage_data", handlers.UploadUsageData)
	api.Get("/get_fody_stats", handlers.GetUsageStats)

	// Admin routes
	adminGroup := api.Group("/admin")
	adminGroup.Post("/login", middleware.FiberAdminRateLimitMiddleware(), admin.Login)
	adminGroup.Post("/logout", admin.Logout)

	// Protected admin routes
	adminProtected := adminGroup.Group("")
	adminProtected.Use(middleware.AdminAuthMiddleware)
	adminProtected.Get("/verify", admin.VerifyToken)
	adminProtected.Get("/users", admin.GetUsers)
	adminProtected.Get("/analytics", admin.GetAnalytics)

	// Admin achievement management
	adminProtected.Get("/achievements", admin.GetAchievements)
	adminProtected.Post("/achievements", admin.CreateAchievement)
	adminProtected.Put("/achievements/:id", admin.UpdateAchievement)
	adminProtected.Delete("/achievements/:id", admin.DeleteAchievement)

	// Admin task management
	adminProtected.Get("/tasks", admin.GetTasks)
	adminProtected.Post("/tasks", admin.CreateTask)
	adminProtected.Put("/tasks/:id", admin.UpdateTask)
	adminProtected.Delete("/tasks/:id", admin.DeleteTask)

	// Health check endpoint
	app.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{
			"status":    "healthy",
			"timestamp": time.Now().Unix(),
			"version":   "1.0.0",
		})
	})

	port := os.Getenv("PORT")
	if port == "" {
		port = "3000"
	}

	log.Printf("🚀 HTTP server starting on port %s", port)
	log.Printf("📊 Environment: %s", getEnv("APP_ENV", "development"))
	log.Printf("🔐 JWT Secret configured: %v", os.Getenv("JWT_SECRET") != "")

	if err := app.Listen(":" + port); err != nil {
		log.Fatal("Failed to start HTTP server:", err)
	}
}

// validateEnvironment checks for required environment variables
func validateEnvironment() {
	jwtSecret := os.Getenv("JWT_SECRET")
	if jwtSecret == "" {
		log.Fatal("FATAL: JWT_SECRET environment variable must be set. Generate one with: openssl rand -base64 64")
	}
	if len(jwtSecret) < 32 {
		log.Fatal("FATAL: JWT_SECRET must be at least 32 characters long")
	}

	appEnv := os.Getenv("APP_ENV")
	if appEnv == "production" {
		corsOrigins := os.Getenv("CORS_ORIGINS")
		if corsOrigins == "" || corsOrigins == "*" {
			log.Println("WARNING: CORS_ORIGINS not properly configured for production")
		}
	}
}

func customErrorHandler(c *fiber.Ctx, err error) error {
	code := fiber.StatusInternalServerError
	message := "Internal Server Error"

	if e, ok := err.(*fiber.Error); ok {
		code = e.Code
		message = e.Message
	}

	// Don't expose internal errors in production
	if os.Getenv("APP_ENV") == "production" && code == 500 {
		message = "An error occurred. Please try again later."
	}

	return c.Status(code).JSON(fiber.Map{
		"success": false,
		"error":   message,
	})
}

func getEnv(key, defaultVal string) string {
	if val := os.Getenv(key); val != "" {
		return val
	}
	return defaultVal
}
