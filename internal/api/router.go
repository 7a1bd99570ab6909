package api

import (
	"github.com/labstack/echo-contrib/echoprometheus"
	"github.com/labstack/echo/v4"
	echomiddleware "github.com/labstack/echo/v4/middleware"
	goredis "github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/taskly/task-service/internal/api/handler"
	"github.com/taskly/task-service/internal/api/middleware"
	"github.com/taskly/task-service/internal/core/service"
	"github.com/taskly/task-service/internal/infrastructure/config"
	mongodb "github.com/taskly/task-service/internal/infrastructure/db/mongo"
	redisdb "github.com/taskly/task-service/internal/infrastructure/db/redis"
)

// NewRouter builds and returns the Echo instance with all routes registered.
func NewRouter(cfg *config.Config, db *mongo.Database, rdb *goredis.Client, log zerolog.Logger) *echo.Echo {
	e := echo.New()
	e.HideBanner = true
	e.Validator = handler.NewValidator()
	e.HTTPErrorHandler = NewHTTPErrorHandler(log)

	// --- Global middleware ---
	e.Use(echomiddleware.Recover())
	e.Use(echomiddleware.RequestID())
	e.Use(echomiddleware.Logger())
	e.Use(echomiddleware.CORS())
	e.Use(echoprometheus.NewMiddleware("taskservice"))

	// --- Dependencies ---
	userRepo := mongodb.NewUserRepository(db)
	taskRepo := mongodb.NewTaskRepository(db)
	availability := redisdb.NewAvailabilityCache(rdb, log)

	tokenService := service.NewTokenService(service.TokenConfig{
		AccessSecret:  []byte(cfg.Auth.AccessSecret),
		RefreshSecret: []byte(cfg.Auth.RefreshSecret),
	})
	authService := service.NewAuthService(userRepo, service.NewBcryptHasher(), tokenService, availability, log,
		service.TokenTTLs{Access: cfg.Auth.AccessTTL, Refresh: cfg.Auth.RefreshTTL})
	identity := service.NewIdentityService(tokenService, userRepo)
	taskService := service.NewTaskService(taskRepo, log)

	authHandler := handler.NewAuthHandler(authService)
	taskHandler := handler.NewTaskHandler(taskService)
	userHandler := handler.NewUserHandler()
	authMiddleware := middleware.Auth(identity)

	// --- Auth routes ---
	e.POST("/auth/register", authHandler.Register)
	e.POST("/auth/login", authHandler.Login)
	e.POST("/auth/refresh", authHandler.Refresh)
	e.GET("/auth/check-availability", authHandler.CheckAvailability)

	// --- Protected routes ---
	users := e.Group("/users", authMiddleware)
	users.GET("/profile", userHandler.Profile)

	tasks := e.Group("/tasks", authMiddleware)
	tasks.POST("/", taskHandler.Create)
	tasks.GET("/", taskHandler.List)
	tasks.PUT("/:id", taskHandler.Update)
	tasks.DELETE("/:id", taskHandler.Delete)

	// --- Health probes and metrics (no auth required) ---
	healthHandler := handler.NewHealthHandler()
	readinessHandler := handler.NewReadinessHandler(db, rdb)

	e.GET("/", healthHandler.Root)
	e.GET("/health", healthHandler.Liveness)            // liveness  – is the process alive?
	e.GET("/health/ready", readinessHandler.Readiness)  // readiness – are dependencies up?
	e.GET("/metrics", echoprometheus.NewHandler())

	return e
}
