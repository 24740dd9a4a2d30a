// Package server contains the HTTP handlers for the application's API endpoints.
package server

import (
	"context"
	"fmt"
	"log"
	"time"

	"artspace/internal/blob"
	"artspace/internal/cache"
	"artspace/internal/config"
	"artspace/internal/database"
	"artspace/internal/featureflags"
	"artspace/internal/middleware"
	"artspace/internal/notifications"
	"artspace/internal/repository"
	"artspace/internal/service"

	"github.com/ansrivas/fiberprometheus/v2"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/helmet"
	"github.com/gofiber/fiber/v2/middleware/limiter"
	"github.com/gofiber/fiber/v2/middleware/monitor"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/gofiber/fiber/v2/middleware/requestid"
	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"
)

// Server holds all dependencies and provides handlers
type Server struct {
	config         *config.Config
	db             *gorm.DB
	redis          *redis.Client
	promMiddleware *fiberprometheus.FiberPrometheus
	blobs          blob.Store
	featureFlags   *featureflags.Manager
	notifier       *notifications.Notifier

	userRepo         repository.UserRepository
	artworkRepo      repository.ArtworkRepository
	interactionRepo  repository.InteractionRepository
	commentRepo      repository.CommentRepository
	tagRepo          repository.TagRepository
	notificationRepo repository.NotificationRepository
	messageRepo      repository.MessageRepository

	feedService         *service.FeedService
	interactionService  *service.InteractionService
	commentService      *service.CommentService
	userService         *service.UserService
	tagService          *service.TagService
	messageService      *service.MessageService
	notificationService *service.NotificationService
}

// NewServer creates a new server instance with all dependencies
func NewServer(cfg *config.Config) (*Server, error) {
	db, err := database.Connect(cfg)
	if err != nil {
		return nil, fmt.Errorf("database connection failed: %w", err)
	}

	cache.InitRedis(cfg.RedisURL)
	redisClient := cache.GetClient()

	return NewServerWithDeps(cfg, db, redisClient)
}

// NewServerWithDeps creates a Server using already-initialized dependencies.
// Use this in tests or when a bootstrap layer establishes DB/Redis.
func NewServerWithDeps(cfg *config.Config, db *gorm.DB, redisClient *redis.Client) (*Server, error) {
	flags, err := featureflags.NewManager(cfg.FeatureFlags)
	if err != nil {
		return nil, fmt.Errorf("invalid feature flags: %w", err)
	}

	blobs, err := blob.NewDiskStore(cfg.UploadDir, cfg.UploadBaseURL)
	if err != nil {
		return nil, fmt.Errorf("upload store init failed: %w", err)
	}

	server := &Server{
		config:           cfg,
		db:               db,
		redis:            redisClient,
		promMiddleware:   middleware.InitMetrics("artspace-api"),
		blobs:            blobs,
		featureFlags:     flags,
		userRepo:         repository.NewUserRepository(db),
		artworkRepo:      repository.NewArtworkRepository(db),
		interactionRepo:  repository.NewInteractionRepository(db),
		commentRepo:      repository.NewCommentRepository(db),
		tagRepo:          repository.NewTagRepository(db),
		notificationRepo: repository.NewNotificationRepository(db),
		messageRepo:      repository.NewMessageRepository(db),
	}

	server.notifier = notifications.NewNotifier(server.notificationRepo, redisClient)
	server.feedService = service.NewFeedService(server.artworkRepo, server.commentRepo, flags, server.isAdminByUserID)
	server.interactionService = service.NewInteractionService(server.interactionRepo, server.artworkRepo, server.userRepo, server.notifier)
	server.commentService = service.NewCommentService(server.commentRepo, server.artworkRepo, server.userRepo, server.notifier, server.isAdminByUserID)
	server.userService = service.NewUserService(server.userRepo, server.interactionRepo)
	server.tagService = service.NewTagService(server.tagRepo)
	server.messageService = service.NewMessageService(server.messageRepo, server.userRepo, server.notifier)
	server.notificationService = service.NewNotificationService(server.notificationRepo)

	return server, nil
}

// SetupMiddleware configures middleware for the Fiber app
func (s *Server) SetupMiddleware(app *fiber.App) {
	// Panic recovery
	app.Use(recover.New())

	// Request ID for tracing
	app.Use(requestid.New())

	// Context middleware to propagate request ID and user ID
	app.Use(middleware.ContextMiddleware())

	if s.config.TracingEnabled {
		app.Use(middleware.TracingMiddleware())
	}

	// Prometheus metrics
	if s.promMiddleware != nil {
		app.Use(middleware.MetricsMiddleware(s.promMiddleware))
	}

	// Security headers
	app.Use(helmet.New())

	// Structured logging (after requestid and context middleware)
	app.Use(middleware.StructuredLogger())

	// CORS must run before middlewares that can short-circuit (e.g. limiter)
	// so browser clients still receive CORS headers on error responses.
	origins := s.config.AllowedOrigins
	if origins == "" {
		origins = "http://localhost:5173,http://localhost:3000"
	}
	app.Use(cors.New(cors.Config{
		AllowOrigins:     origins,
		AllowHeaders:     "Origin, Content-Type, Accept, Authorization",
		AllowCredentials: true,
		MaxAge:           86400,
	}))

	// Global rate limiting (120 requests per minute per IP)
	app.Use(limiter.New(limiter.Config{
		Max:        120,
		Expiration: 1 * time.Minute,
		Next: func(c *fiber.Ctx) bool {
			return c.Method() == fiber.MethodOptions
		},
		KeyGenerator: func(c *fiber.Ctx) string {
			return c.IP()
		},
		LimitReached: func(c *fiber.Ctx) error {
			return c.Status(fiber.StatusTooManyRequests).JSON(fiber.Map{
				"success": false,
				"message": "Too many requests, please try again later.",
			})
		},
	}))
}

// SetupRoutes configures all routes for the application
func (s *Server) SetupRoutes(app *fiber.App) {
	api := app.Group("/api")

	// Health checks
	app.Get("/health/live", s.LivenessCheck)
	app.Get("/health/ready", s.ReadinessCheck)
	app.Get("/health", s.ReadinessCheck)

	// Metrics endpoint for Prometheus
	if s.promMiddleware != nil {
		s.promMiddleware.RegisterAt(app, "/metrics")
	}
	api.Get("/metrics/dashboard", monitor.New(monitor.Config{
		Title: "ArtSpace Metrics Dashboard",
	}))

	// Uploaded images
	app.Static("/uploads", s.config.UploadDir)

	// Auth routes
	auth := api.Group("/auth")
	auth.Post("/signup", middleware.RateLimit(
		s.redis, 3, 10*time.Minute, "signup"), s.Signup)
	auth.Post("/login", middleware.RateLimit(
		s.redis, 10, 5*time.Minute, "login"), s.Login)
	auth.Post("/refresh", s.Refresh)
	auth.Post("/logout", s.Logout)

	// Public browse routes. OptionalAuth fills the viewer for
	// per-viewer flags without requiring a session.
	api.Get("/tags", s.GetTags)

	publicArtworks := api.Group("/artworks", s.OptionalAuth())
	publicArtworks.Get("/", s.GetArtworks)
	publicArtworks.Get("/:id/comments", s.GetComments)
	publicArtworks.Get("/:id", s.GetArtworkDetail)

	publicArtists := api.Group("/artists", s.OptionalAuth())
	publicArtists.Get("/:id/followers", s.GetFollowers)
	publicArtists.Get("/:id/following", s.GetFollowing)
	publicArtists.Get("/:id/artworks", s.GetArtistArtworks)
	publicArtists.Get("/:id", s.GetArtistProfile)

	api.Get("/feed", s.OptionalAuth(), s.GetFeed)

	// Protected routes
	protected := api.Group("", s.AuthRequired())

	// User routes
	users := protected.Group("/users")
	users.Get("/me", s.GetMyProfile)
	users.Put("/me", s.UpdateMyProfile)
	users.Get("/me/saved", s.GetSavedArtworks)

	// Artwork routes
	artworks := protected.Group("/artworks")
	artworks.Post("/", middleware.RateLimit(
		s.redis, 5, 5*time.Minute, "create_artwork"), s.CreateArtwork)
	// Specific /:id/:resource routes BEFORE generic /:id routes
	artworks.Post("/:id/like", s.LikeArtwork)
	artworks.Post("/:id/save", s.SaveArtwork)
	artworks.Post("/:id/comments", middleware.RateLimit(
		s.redis, 10, time.Minute, "add_comment"), s.AddComment)
	artworks.Delete("/:id/comments/:commentId", s.DeleteComment)
	artworks.Put("/:id", s.UpdateArtwork)
	artworks.Delete("/:id", s.DeleteArtwork)

	// Artist routes
	protected.Post("/artists/:id/follow", s.FollowArtist)

	// Uploads
	protected.Post("/uploads", middleware.RateLimit(
		s.redis, 10, time.Minute, "upload"), s.Upload)

	// Notifications
	notificationsGroup := protected.Group("/notifications")
	notificationsGroup.Get("/", s.GetNotifications)
	notificationsGroup.Get("/unread-count", s.GetUnreadCount)
	notificationsGroup.Post("/read", s.MarkNotificationsRead)

	// Direct messages
	conversations := protected.Group("/conversations")
	conversations.Get("/", s.GetConversations)
	conversations.Post("/", middleware.RateLimit(
		s.redis, 15, time.Minute, "send_message"), s.SendMessage)
	conversations.Get("/:id/messages", s.GetMessages)
	conversations.Post("/:id/messages", middleware.RateLimit(
		s.redis, 15, time.Minute, "send_message"), s.ReplyMessage)

	// Admin routes
	admin := protected.Group("/admin", s.AdminRequired())
	admin.Get("/feature-flags", s.GetFeatureFlags)
	admin.Put("/feature-flags/:name", s.SetFeatureFlag)
	admin.Put("/users/:id/role", s.SetUserRole)
}

// LivenessCheck handles liveness probe requests
func (s *Server) LivenessCheck(c *fiber.Ctx) error {
	return c.Status(fiber.StatusOK).JSON(fiber.Map{
		"status": "up",
		"time":   time.Now(),
	})
}

// ReadinessCheck handles readiness probe requests
func (s *Server) ReadinessCheck(c *fiber.Ctx) error {
	ctx, cancel := context.WithTimeout(c.Context(), 5*time.Second)
	defer cancel()

	dbStatus := "healthy"
	sqlDB, err := s.db.DB()
	if err != nil {
		dbStatus = "unhealthy"
	} else if err := sqlDB.PingContext(ctx); err != nil {
		dbStatus = "unhealthy"
	}

	redisStatus := "healthy"
	if s.redis != nil {
		if err := s.redis.Ping(ctx).Err(); err != nil {
			redisStatus = "unhealthy"
		}
	} else {
		redisStatus = "unavailable"
	}

	status := fiber.StatusOK
	overallStatus := "healthy"
	if dbStatus == "unhealthy" {
		status = fiber.StatusServiceUnavailable
		overallStatus = "unhealthy"
	}

	return c.Status(status).JSON(fiber.Map{
		"status": overallStatus,
		"checks": fiber.Map{
			"database": dbStatus,
			"redis":    redisStatus,
		},
		"time": time.Now(),
	})
}

// Shutdown releases the server's database and Redis connections.
func (s *Server) Shutdown(ctx context.Context) error {
	if s.db != nil {
		if sqlDB, err := s.db.DB(); err == nil {
			if cerr := sqlDB.Close(); cerr != nil {
				log.Printf("error closing sql DB: %v", cerr)
			}
		}
	}

	if s.redis != nil {
		if rerr := s.redis.Close(); rerr != nil {
			log.Printf("error closing redis: %v", rerr)
		}
	}

	return nil
}
