package api

import (
	"time"

	"github.com/labstack/echo-contrib/echoprometheus"
	"github.com/labstack/echo/v4"
	echomiddleware "github.com/labstack/echo/v4/middleware"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
	echoswagger "github.com/swaggo/echo-swagger"
	"go.mongodb.org/mongo-driver/mongo"

	_ "github.com/mentormatch/connect-api/docs"
	"github.com/mentormatch/connect-api/internal/api/handler"
	"github.com/mentormatch/connect-api/internal/api/middleware"
	"github.com/mentormatch/connect-api/internal/core/service"
	mongodb "github.com/mentormatch/connect-api/internal/infrastructure/db/mongo"
	redisdb "github.com/mentormatch/connect-api/internal/infrastructure/db/redis"
)

const tokenTTL = 24 * time.Hour

// NewRouter builds the Echo instance with all dependencies wired and routes
// registered.
func NewRouter(db *mongo.Database, rdb *redis.Client, recorder service.EventRecorder, jwtSecret string, log zerolog.Logger) *echo.Echo {
	e := echo.New()
	e.HideBanner = true
	e.Validator = handler.NewValidator()
	e.HTTPErrorHandler = NewHTTPErrorHandler(log)

	// --- Global middleware ---
	e.Use(echomiddleware.Recover())
	e.Use(echomiddleware.RequestID())
	e.Use(echoprometheus.NewMiddleware("connect"))

	// --- Dependencies ---
	userRepo := mongodb.NewUserRepository(db)
	requestRepo := mongodb.NewRequestRepository(db)
	connRepo := mongodb.NewConnectionRepository(db)
	feedCache := redisdb.NewFeedCache(rdb)

	authService := service.NewAuthService(userRepo, jwtSecret, tokenTTL)
	profileService := service.NewProfileService(userRepo, log)
	connectionService := service.NewConnectionService(connRepo, userRepo, log)
	requestService := service.NewRequestService(requestRepo, userRepo, connectionService, feedCache, recorder, log)
	feedService := service.NewFeedService(userRepo, requestRepo, service.NewInsertionOrderRanker(), feedCache, log)

	authHandler := handler.NewAuthHandler(authService, tokenTTL)
	profileHandler := handler.NewProfileHandler(profileService)
	feedHandler := handler.NewFeedHandler(feedService)
	requestHandler := handler.NewRequestHandler(requestService)
	connectionHandler := handler.NewConnectionHandler(connectionService)

	// --- Public routes ---
	e.POST("/signup", authHandler.Signup)
	e.POST("/login", authHandler.Login)
	e.POST("/logout", authHandler.Logout)

	// --- Health probes and operational endpoints (no auth required) ---
	healthHandler := handler.NewHealthHandler()
	healthDepsHandler := handler.NewHealthDependenciesHandler(db, rdb)

	e.GET("/health", healthHandler.Liveness)            // liveness  – is the process alive?
	e.GET("/health/ready", healthDepsHandler.Readiness) // readiness – are dependencies up?
	e.GET("/metrics", echoprometheus.NewHandler())
	e.GET("/swagger/*", echoswagger.WrapHandler)

	// --- Authenticated routes ---
	authed := e.Group("", middleware.Auth(jwtSecret))
	authed.GET("/feed", feedHandler.Get)
	authed.GET("/profile/view", profileHandler.View)
	authed.PATCH("/profile/edit", profileHandler.Edit)
	authed.POST("/request/send/:status/:toUserId", requestHandler.Send)
	authed.POST("/request/review/:status/:requestId", requestHandler.Review)
	authed.GET("/user/requests", requestHandler.ListPending)
	authed.GET("/user/connections", connectionHandler.List)

	return e
}
