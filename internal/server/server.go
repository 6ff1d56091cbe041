// Package server wires the HTTP surface: middleware, routes, and the
// handlers for auth, posts, and comments.
package server

import (
	"context"
	"fmt"
	"log"
	"time"

	"inkwell/internal/auth"
	"inkwell/internal/cache"
	"inkwell/internal/config"
	"inkwell/internal/database"
	"inkwell/internal/middleware"
	"inkwell/internal/models"
	"inkwell/internal/repository"
	"inkwell/internal/storage"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/helmet"
	"github.com/gofiber/fiber/v2/middleware/limiter"
	"github.com/gofiber/fiber/v2/middleware/requestid"
	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"
)

// Server holds all dependencies and provides handlers
type Server struct {
	config   *config.Config
	db       *gorm.DB
	redis    *redis.Client
	users    repository.UserRepository
	posts    repository.PostRepository
	comments repository.CommentRepository
	codec    *auth.TokenCodec
	hasher   auth.PasswordHasher
	uploads  *storage.DiskStore
}

// NewServer connects to the database and Redis and builds a fully wired server.
func NewServer(cfg *config.Config) (*Server, error) {
	db, err := database.Connect(cfg)
	if err != nil {
		return nil, fmt.Errorf("database connection failed: %w", err)
	}

	cache.InitRedis(cfg.RedisURL)
	return New(cfg, db, cache.GetClient())
}

// New builds a server on top of an existing database handle. Tests use this
// with an in-memory database and a nil Redis client.
func New(cfg *config.Config, db *gorm.DB, redisClient *redis.Client) (*Server, error) {
	uploads, err := storage.NewDiskStore(cfg.UploadDir)
	if err != nil {
		return nil, err
	}

	models.ExposeErrorDetails(!cfg.IsProduction())

	return &Server{
		config:   cfg,
		db:       db,
		redis:    redisClient,
		users:    repository.NewUserRepository(db),
		posts:    repository.NewPostRepository(db),
		comments: repository.NewCommentRepository(db),
		codec:    auth.NewTokenCodec(cfg.JWTSecret, cfg.TokenTTL),
		hasher:   auth.NewPasswordHasher(cfg.BcryptCost),
		uploads:  uploads,
	}, nil
}

// SetupMiddleware configures middleware for the Fiber app
func (s *Server) SetupMiddleware(app *fiber.App) {
	// Request ID for tracing
	app.Use(requestid.New())

	// Security headers
	app.Use(helmet.New())

	// Structured logging middleware
	app.Use(middleware.StructuredLogger())

	// Global rate limiting (100 requests per minute per IP)
	app.Use(limiter.New(limiter.Config{
		Max:        100,
		Expiration: 1 * time.Minute,
		KeyGenerator: func(c *fiber.Ctx) string {
			return c.IP()
		},
		LimitReached: func(c *fiber.Ctx) error {
			return c.Status(fiber.StatusTooManyRequests).JSON(fiber.Map{
				"error": "Too many requests, please try again later.",
			})
		},
	}))

	// CORS with credentials so the session cookie survives cross-origin calls
	app.Use(cors.New(cors.Config{
		AllowOrigins:     s.config.AllowedOrigins,
		AllowHeaders:     "Origin, Content-Type, Accept, Authorization",
		AllowMethods:     "GET, POST, PUT, DELETE",
		AllowCredentials: true,
		MaxAge:           86400, // 24 hours
	}))
}

// SetupRoutes configures all routes for the application
func (s *Server) SetupRoutes(app *fiber.App) {
	requireAuth := middleware.RequireAuth(s.codec)

	// Auth routes
	authGroup := app.Group("/auth")
	authGroup.Post("/register", middleware.RateLimit(s.redis, 3, 10*time.Minute, "register"), s.Register)
	authGroup.Post("/login", middleware.RateLimit(s.redis, 10, 5*time.Minute, "login"), s.Login)
	authGroup.Get("/profile", s.Profile)
	authGroup.Post("/logout", s.Logout)

	// Post routes
	posts := app.Group("/post")
	posts.Post("/", requireAuth, middleware.RateLimit(s.redis, 10, 5*time.Minute, "create_post"), s.CreatePost)
	posts.Get("/", s.ListPosts)
	posts.Get("/:id", s.GetPost)
	posts.Put("/:id", requireAuth, s.UpdatePost)
	posts.Delete("/:id", requireAuth, s.DeletePost)
	posts.Post("/:id/like", requireAuth, s.ToggleLike)

	// Comment routes
	comments := app.Group("/comment")
	comments.Post("/", requireAuth, middleware.RateLimit(s.redis, 15, time.Minute, "create_comment"), s.CreateComment)
	comments.Get("/:postId", s.ListComments)
	comments.Put("/:id", requireAuth, s.UpdateComment)
	comments.Delete("/:id", requireAuth, s.DeleteComment)

	// Uploaded cover files
	app.Static("/"+storage.URLPrefix, s.uploads.Dir())
}

// Shutdown releases server resources.
func (s *Server) Shutdown(ctx context.Context) error {
	if sqlDB, err := s.db.DB(); err == nil {
		if cerr := sqlDB.Close(); cerr != nil {
			log.Printf("error closing sql DB: %v", cerr)
		}
	}

	if s.redis != nil {
		if rerr := s.redis.Close(); rerr != nil {
			log.Printf("error closing redis: %v", rerr)
		}
	}

	return nil
}
