package api

import (
	"time"

	"github.com/labstack/echo-contrib/echoprometheus"
	"github.com/labstack/echo/v4"
	echomiddleware "github.com/labstack/echo/v4/middleware"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/homelink/smarthome-system/internal/api/handler"
	"github.com/homelink/smarthome-system/internal/api/middleware"
	"github.com/homelink/smarthome-system/internal/core/service"
	mongodb "github.com/homelink/smarthome-system/internal/infrastructure/db/mongo"
	redisdb "github.com/homelink/smarthome-system/internal/infrastructure/db/redis"
)

// NewRouter builds and returns the Echo instance with all routes registered.
func NewRouter(db *mongo.Database, rdb *redis.Client, jwtSecret string, dispatcher handler.EventDispatcher, log zerolog.Logger) *echo.Echo {
	e := echo.New()
	e.HideBanner = true
	e.Validator = handler.NewValidator()
	e.HTTPErrorHandler = NewHTTPErrorHandler(log)

	// --- Global middleware ---
	e.Use(echomiddleware.Recover())
	e.Use(echomiddleware.RequestID())
	e.Use(echomiddleware.Logger())
	e.Use(echoprometheus.NewMiddleware("smarthome"))

	// --- Dependencies ---
	accountRepo := mongodb.NewAccountRepository(db)
	homeRepo := mongodb.NewHomeRepository(db)
	revoker := redisdb.NewRevocationList(rdb)

	authService := service.NewAuthService(accountRepo, revoker, jwtSecret, 24*time.Hour)
	homeService := service.NewHomeService(homeRepo, log)

	authHandler := handler.NewAuthHandler(authService)
	userHandler := handler.NewUserHandler(authService)
	graphqlHandler := handler.NewGraphQLHandler(authService, homeService, log)
	eventHandler := handler.NewEventHandler(dispatcher)

	requireAuth := middleware.Auth(jwtSecret, revoker)
	optionalAuth := middleware.OptionalAuth(jwtSecret, revoker)

	// --- GraphQL endpoint (login travels unauthenticated over the same route) ---
	e.POST("/query", graphqlHandler.Handle, optionalAuth)

	// --- Account routes ---
	e.POST("/auth/register", authHandler.Register)
	e.POST("/auth/logout", userHandler.Logout, requireAuth)

	user := e.Group("/user", requireAuth)
	user.GET("/profile", userHandler.GetProfile)
	user.PUT("/profile", userHandler.UpdateProfile)
	user.POST("/change-password", userHandler.ChangePassword)
	user.DELETE("/delete", userHandler.DeleteAccount)

	// --- Device event ingestion (hubs authenticate like any other caller) ---
	events := e.Group("/v1/device-events", requireAuth)
	events.POST("", eventHandler.Receive)
	events.POST("/batch", eventHandler.ReceiveBatch)

	// --- Health probes and metrics (no auth required) ---
	healthHandler := handler.NewHealthHandler()
	healthDepsHandler := handler.NewHealthDependenciesHandler(db, rdb)

	e.GET("/health", healthHandler.Liveness)
	e.GET("/health/ready", healthDepsHandler.Readiness)
	e.GET("/metrics", echoprometheus.NewHandler())

	return e
}
