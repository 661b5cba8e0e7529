// Package server contains the HTTP handlers and routing for the web application.
package server

import (
	"context"
	"errors"
	"fmt"
	"time"

	"yatube/internal/cache"
	"yatube/internal/config"
	"yatube/internal/database"
	"yatube/internal/middleware"
	"yatube/internal/models"
	"yatube/internal/observability"
	"yatube/internal/repository"
	"yatube/internal/service"

	"github.com/ansrivas/fiberprometheus/v2"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/helmet"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/gofiber/fiber/v2/middleware/requestid"
	"github.com/gofiber/template/html/v2"
	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"
)

// Server holds all dependencies and provides handlers.
type Server struct {
	config         *config.Config
	db             *gorm.DB
	redis          *redis.Client
	app            *fiber.App
	promMiddleware *fiberprometheus.FiberPrometheus
	postService    *service.PostService
	userService    *service.UserService
}

// NewServer creates a server instance, establishing database and Redis
// connections from the configuration.
func NewServer(cfg *config.Config) (*Server, error) {
	db, err := database.Connect(cfg)
	if err != nil {
		return nil, fmt.Errorf("database connection failed: %w", err)
	}

	cache.InitRedis(cfg.RedisURL)

	return NewServerWithDeps(cfg, db, cache.GetClient())
}

// NewServerWithDeps creates a Server using already-initialized dependencies.
// Tests use this with an in-memory database and a fake Redis.
func NewServerWithDeps(cfg *config.Config, db *gorm.DB, redisClient *redis.Client) (*Server, error) {
	middleware.InitMiddleware(cfg)

	userRepo := repository.NewUserRepository(db)
	groupRepo := repository.NewGroupRepository(db)
	postRepo := repository.NewPostRepository(db)

	server := &Server{
		config:         cfg,
		db:             db,
		redis:          redisClient,
		promMiddleware: observability.InitHTTPMetrics("yatube-web"),
		postService:    service.NewPostService(postRepo, groupRepo, userRepo, cfg.PageSize),
		userService:    service.NewUserService(userRepo),
	}
	return server, nil
}

// NewApp builds the Fiber application with the HTML template engine and the
// central error handler wired in.
func (s *Server) NewApp() *fiber.App {
	engine := html.New(s.config.TemplatesDir, ".html")

	app := fiber.New(fiber.Config{
		AppName:      "Yatube",
		Views:        engine,
		ViewsLayout:  "layouts/main",
		ErrorHandler: s.errorHandler,
	})
	s.app = app

	s.SetupMiddleware(app)
	s.SetupRoutes(app)

	return app
}

// errorHandler maps application errors onto rendered error pages. Not-found
// errors get the 404 page; everything else is logged and gets the 500 page.
func (s *Server) errorHandler(c *fiber.Ctx, err error) error {
	var fiberErr *fiber.Error
	if errors.As(err, &fiberErr) && fiberErr.Code == fiber.StatusNotFound {
		return s.renderNotFound(c)
	}
	if models.IsNotFound(err) {
		return s.renderNotFound(c)
	}

	middleware.Logger.ErrorContext(c.UserContext(), "unhandled error",
		"path", c.Path(), "error", err.Error())
	if renderErr := c.Status(fiber.StatusInternalServerError).Render("errors/500", fiber.Map{
		"Title": "Server error",
	}); renderErr != nil {
		return c.Status(fiber.StatusInternalServerError).SendString("Internal server error")
	}
	return nil
}

func (s *Server) renderNotFound(c *fiber.Ctx) error {
	if renderErr := c.Status(fiber.StatusNotFound).Render("errors/404", fiber.Map{
		"Title": "Page not found",
	}); renderErr != nil {
		return c.Status(fiber.StatusNotFound).SendString("Page not found")
	}
	return nil
}

// SetupMiddleware configures the global middleware chain.
func (s *Server) SetupMiddleware(app *fiber.App) {
	// Panic recovery
	app.Use(recover.New())

	// Request ID for tracing
	app.Use(requestid.New())

	// Resolve the session cookie before anything needs the user
	app.Use(middleware.SessionUser())

	// Propagate request ID and user ID into the request context
	app.Use(middleware.ContextMiddleware())

	// Prometheus metrics
	if s.promMiddleware != nil {
		app.Use(s.promMiddleware.Middleware)
	}

	// Security headers
	app.Use(helmet.New())

	// Structured logging (after requestid and context middleware)
	app.Use(middleware.StructuredLogger())
}

// SetupRoutes configures all routes for the application.
func (s *Server) SetupRoutes(app *fiber.App) {
	app.Get("/healthz", s.Healthz)

	if s.promMiddleware != nil {
		s.promMiddleware.RegisterAt(app, "/metrics")
	}

	// Auth
	auth := app.Group("/auth")
	auth.Get("/signup/", s.SignupPage)
	auth.Post("/signup/", middleware.RateLimit(
		s.redis, 3, 10*time.Minute, "signup"), s.Signup)
	auth.Get("/login/", s.LoginPage)
	auth.Post("/login/", middleware.RateLimit(
		s.redis, 10, 5*time.Minute, "login"), s.Login)
	auth.Get("/logout/", s.Logout)
	auth.Post("/logout/", s.Logout)

	// Browsing
	app.Get("/", s.Index)
	app.Get("/group/:slug/", s.GroupPosts)
	app.Get("/profile/:username/", s.Profile)

	// Authoring
	app.Get("/create/", middleware.LoginRequired(), s.PostCreateForm)
	app.Post("/create/", middleware.LoginRequired(), middleware.RateLimit(
		s.redis, 10, time.Minute, "create_post"), s.PostCreate)
	app.Get("/posts/:id/edit/", middleware.LoginRequired(), s.PostEditForm)
	app.Post("/posts/:id/edit/", middleware.LoginRequired(), s.PostEdit)

	// Generic /posts/:id route must be last
	app.Get("/posts/:id/", s.PostDetail)
}

// Healthz reports readiness of the database and Redis.
func (s *Server) Healthz(c *fiber.Ctx) error {
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
		// The app runs without Redis, just slower.
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

// Start builds the app and begins serving.
func (s *Server) Start() error {
	app := s.NewApp()
	middleware.Logger.Info("Server starting", "port", s.config.Port)
	return app.Listen(":" + s.config.Port)
}

// Shutdown gracefully shuts down the server and closes connections.
func (s *Server) Shutdown(ctx context.Context) error {
	if s.app != nil {
		if err := s.app.ShutdownWithContext(ctx); err != nil {
			middleware.Logger.Error("error shutting down HTTP server", "error", err)
		}
	}

	if sqlDB, err := s.db.DB(); err == nil {
		if cerr := sqlDB.Close(); cerr != nil {
			middleware.Logger.Error("error closing sql DB", "error", cerr)
		}
	}

	if s.redis != nil {
		if rerr := s.redis.Close(); rerr != nil {
			middleware.Logger.Error("error closing redis", "error", rerr)
		}
	}

	middleware.Logger.Info("Server shutdown complete")
	return nil
}
