package router

import (
	"log"
	"os"
	"time"

	"github.com/AnuragKannojiya/alumni-connect-api/config"
	"github.com/AnuragKannojiya/alumni-connect-api/database"
	"github.com/AnuragKannojiya/alumni-connect-api/handlers"
	auth_handlers "github.com/AnuragKannojiya/alumni-connect-api/handlers/auth"
	college_handlers "github.com/AnuragKannojiya/alumni-connect-api/handlers/college"
	event_handlers "github.com/AnuragKannojiya/alumni-connect-api/handlers/event"
	notification_handlers "github.com/AnuragKannojiya/alumni-connect-api/handlers/notification"
	post_handlers "github.com/AnuragKannojiya/alumni-connect-api/handlers/post"
	upload_handlers "github.com/AnuragKannojiya/alumni-connect-api/handlers/upload"
	"github.com/AnuragKannojiya/alumni-connect-api/services"
	"github.com/AnuragKannojiya/alumni-connect-api/services/spaces"
	"github.com/AnuragKannojiya/alumni-connect-api/utils/auth"
	"github.com/AnuragKannojiya/alumni-connect-api/utils/cache"
	"github.com/AnuragKannojiya/alumni-connect-api/utils/middleware"
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"
)

func SetupRoutes(app *fiber.App, store database.Storage) {
	// Get JWT secret from environment
	jwtSecret := os.Getenv("JWT_SECRET")
	if jwtSecret == "" {
		log.Fatal("JWT_SECRET environment variable is not set")
	}

	jwtIssuer := os.Getenv("JWT_ISSUER")
	if jwtIssuer == "" {
		jwtIssuer = "alumni-connect-api"
	}

	jwtConfig := auth.JWTConfig{
		Secret:        jwtSecret,
		Expiry:        24 * time.Hour,     // Access token expires in 24 hours
		RefreshExpiry: 7 * 24 * time.Hour, // Refresh token expires in 7 days
		Issuer:        jwtIssuer,
	}
	jwtManager := auth.NewJWTManager(jwtConfig)

	// Get DB instance (type assert from interface)
	db, ok := store.GetDB().(*gorm.DB)
	if !ok {
		log.Fatal("Failed to get GORM DB instance")
	}

	// Initialize Redis cache for brute force protection
	redisURL := os.Getenv("REDIS_URL")
	if redisURL == "" {
		redisURL = "redis://localhost:6379/0"
	}

	redisCache, err := cache.NewRedisCache(redisURL)
	if err != nil {
		log.Printf("Warning: Failed to connect to Redis: %v. Brute force protection will be disabled.", err)
	}

	var bruteForceProtection *middleware.BruteForceProtection
	if redisCache != nil {
		bruteForceProtection = middleware.NewBruteForceProtection(redisCache)
	}

	// Auth middleware needs the DB for blacklist and token-version checks
	authMiddleware := middleware.NewAuthMiddleware(jwtManager, db)

	authHandler := auth_handlers.NewAuthHandler(db, jwtManager, bruteForceProtection)
	collegeHandler := college_handlers.NewCollegeHandler(db)
	postHandler := post_handlers.NewPostHandler(db)
	eventHandler := event_handlers.NewEventHandler(db)
	notificationHandler := notification_handlers.NewNotificationHandler(db)

	// Object storage is optional; without credentials the upload route
	// answers 503 instead of the app refusing to boot.
	var uploadService *services.UploadService
	env, envErr := config.Get()
	if envErr == nil && env.SPACES_ACCESS_KEY != "" {
		spacesClient, err := spaces.NewSpacesClient(spaces.SpacesConfig{
			AccessKey: env.SPACES_ACCESS_KEY,
			SecretKey: env.SPACES_SECRET_KEY,
			Bucket:    env.SPACES_BUCKET,
			Region:    env.SPACES_REGION,
			Endpoint:  env.SPACES_ENDPOINT,
			CDNURL:    env.SPACES_CDN_URL,
		})
		if err != nil {
			log.Printf("Warning: Failed to initialize Spaces client: %v. Image uploads will be disabled.", err)
		} else {
			uploadService = services.NewUploadService(spacesClient)
		}
	}
	uploadHandler := upload_handlers.NewUploadHandler(uploadService)

	// Apply security middleware
	allowedOrigins := os.Getenv("ALLOWED_ORIGINS")
	if allowedOrigins == "" {
		allowedOrigins = "http://localhost:3000,http://localhost:5173"
	}

	middleware.SetupSecurity(app, middleware.SecurityConfig{
		AllowedOrigins:    allowedOrigins,
		RateLimitRequests: 100,             // 100 requests
		RateLimitWindow:   1 * time.Minute, // per minute
	})

	// Health check endpoint (public)
	app.Get("/ping", handlers.HandleCheckHealth(store))

	// API v1 group
	api := app.Group("/api/v1")

	// Auth routes (public)
	authGroup := api.Group("/auth")
	authGroup.Post("/register", authHandler.Register)

	// Login with brute force protection
	if bruteForceProtection != nil {
		authGroup.Post("/login", bruteForceProtection.CheckAndRecordAttempt(), authHandler.Login)
	} else {
		authGroup.Post("/login", authHandler.Login)
	}

	authGroup.Post("/refresh", authHandler.RefreshToken)

	// Protected auth routes
	authGroup.Post("/logout", authMiddleware.Required(), authHandler.Logout)

	// Profile and onboarding
	api.Get("/profile", authMiddleware.Required(), authHandler.GetProfile)
	api.Put("/profile", authMiddleware.Required(), authHandler.UpdateProfile)
	api.Post("/onboarding", authMiddleware.Required(), authHandler.CompleteOnboarding)

	// Colleges: directory is public (used by onboarding), creation is admin-only
	collegeGroup := api.Group("/colleges")
	collegeGroup.Get("/", collegeHandler.ListColleges)
	collegeGroup.Get("/:id", collegeHandler.GetCollege)
	collegeGroup.Post("/", authMiddleware.RequireAdmin(), collegeHandler.CreateCollege)
	collegeGroup.Get("/:id/stats", authMiddleware.Required(), collegeHandler.GetStats)

	// Posts (the college feed)
	postGroup := api.Group("/posts", authMiddleware.Required())
	postGroup.Get("/", postHandler.GetFeed)
	postGroup.Post("/", postHandler.CreatePost)
	postGroup.Put("/:id", postHandler.UpdatePost)
	postGroup.Delete("/:id", postHandler.DeletePost)
	postGroup.Post("/:id/like", postHandler.ToggleLike)
	postGroup.Get("/:id/comments", postHandler.GetComments)
	postGroup.Post("/:id/comments", postHandler.AddComment)

	// Events
	eventGroup := api.Group("/events", authMiddleware.Required())
	eventGroup.Get("/", eventHandler.ListEvents)
	eventGroup.Post("/", eventHandler.CreateEvent)
	eventGroup.Get("/:id", eventHandler.GetEvent)
	eventGroup.Patch("/:id", eventHandler.UpdateEvent)
	eventGroup.Delete("/:id", eventHandler.DeleteEvent)
	eventGroup.Post("/:id/attendance", eventHandler.SetAttendance)
	eventGroup.Get("/:id/attendees", eventHandler.GetAttendees)

	// Notifications
	notificationGroup := api.Group("/notifications", authMiddleware.Required())
	notificationGroup.Get("/", notificationHandler.List)
	notificationGroup.Get("/unread-count", notificationHandler.UnreadCount)
	notificationGroup.Post("/:id/read", notificationHandler.MarkRead)
	notificationGroup.Post("/read-all", notificationHandler.MarkAllRead)

	// Uploads
	api.Post("/uploads/image", authMiddleware.Required(), uploadHandler.UploadImage)
}
