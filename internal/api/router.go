package api

import (
	echomiddleware "github.com/labstack/echo/v4/middleware"

	"github.com/labstack/echo-contrib/echoprometheus"
	"github.com/labstack/echo/v4"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
	echoswagger "github.com/swaggo/echo-swagger"
	"go.mongodb.org/mongo-driver/mongo"

	_ "github.com/taskloop/todo-api/docs"
	"github.com/taskloop/todo-api/internal/api/handler"
	"github.com/taskloop/todo-api/internal/api/middleware"
	"github.com/taskloop/todo-api/internal/core/ports"
	"github.com/taskloop/todo-api/internal/core/service"
	mongodb "github.com/taskloop/todo-api/internal/infrastructure/db/mongo"
	redisinfra "github.com/taskloop/todo-api/internal/infrastructure/db/redis"
	"github.com/taskloop/todo-api/internal/infrastructure/http/handlers"
	"github.com/taskloop/todo-api/internal/infrastructure/storage"
	"github.com/taskloop/todo-api/internal/pkg/config"
)

// NewRouter builds and returns the Echo instance with all routes registered.
// rdb and mailer may be nil; login throttling and the welcome email are then
// disabled.
func NewRouter(db *mongo.Database, rdb *redis.Client, avatars *storage.AvatarStore, mailer ports.Mailer, cfg *config.Config, log zerolog.Logger) *echo.Echo {
	e := echo.New()
	e.HideBanner = true
	e.HTTPErrorHandler = NewHTTPErrorHandler(log)
	e.Validator = handler.NewValidator()

	// --- Global middleware ---
	e.Use(echomiddleware.Recover())
	e.Use(echomiddleware.RequestID())
	e.Use(echomiddleware.Logger())
	e.Use(echoprometheus.NewMiddleware("todo"))

	// --- Dependencies ---
	userRepo := mongodb.NewUserRepository(db)
	taskRepo := mongodb.NewTaskRepository(db)

	authService := service.NewAuthService(userRepo, cfg.JWTSecret, cfg.TokenTTL, log)
	if rdb != nil {
		authService.WithThrottle(redisinfra.NewLoginThrottle(rdb, cfg.Throttle.MaxAttempts, cfg.Throttle.Window))
	}
	if mailer != nil {
		authService.WithMailer(mailer)
	}
	taskService := service.NewTaskService(taskRepo, log)
	userService := service.NewUserService(userRepo, avatars, log)

	authHandler := handler.NewAuthHandler(authService)
	taskHandler := handler.NewTaskHandler(taskService)
	userHandler := handler.NewUserHandler(userService)
	authMiddleware := middleware.Auth(cfg.JWTSecret, userRepo)

	// --- Auth routes ---
	e.POST("/api/auth/register", authHandler.Register)
	e.POST("/api/auth/login", authHandler.Login)

	// --- Task routes (all owner-scoped behind auth) ---
	tasks := e.Group("/tasks", authMiddleware)
	tasks.GET("", taskHandler.List)
	tasks.POST("", taskHandler.Create)
	tasks.PUT("/:id", taskHandler.Update)
	tasks.PATCH("/:id", taskHandler.Update)
	tasks.DELETE("/:id", taskHandler.Delete)

	// --- Profile routes ---
	users := e.Group("/api/users", authMiddleware)
	users.GET("/profile", userHandler.GetProfile)
	users.PUT("/update-profile", userHandler.UpdateProfile)
	users.POST("/upload-profile", userHandler.UploadAvatar)

	// --- Uploaded avatars served as static assets ---
	e.Static(storage.PublicPrefix, avatars.Dir())

	// --- Health probes (no auth required) ---
	healthHandler := handlers.NewHealthHandler()
	healthDepsHandler := handlers.NewHealthDependenciesHandler(db, rdb)

	e.GET("/health", healthHandler.Liveness)
	e.GET("/health/ready", healthDepsHandler.Readiness)

	// --- Operational endpoints ---
	e.GET("/metrics", echoprometheus.NewHandler())
	e.GET("/swagger/*", echoswagger.WrapHandler)

	return e
}
