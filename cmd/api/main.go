package main

import (
	"context"
	"log"
	"strings"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"

	"github.com/dkurganov/gift-marketplace/internal/certificates"
	"github.com/dkurganov/gift-marketplace/internal/orders"
	"github.com/dkurganov/gift-marketplace/internal/tags"
	"github.com/dkurganov/gift-marketplace/internal/users"
	"github.com/dkurganov/gift-marketplace/pkg/common"
	"github.com/dkurganov/gift-marketplace/pkg/config"
	"github.com/dkurganov/gift-marketplace/pkg/database"
	"github.com/dkurganov/gift-marketplace/pkg/logger"
	"github.com/dkurganov/gift-marketplace/pkg/middleware"
)

const serviceVersion = "1.0.0"

func main() {
	// Load configuration
	cfg, err := config.Load("api")
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	// Initialize logger
	if err := logger.Init(cfg.Server.Environment); err != nil {
		log.Fatalf("Failed to initialize logger: %v", err)
	}
	defer logger.Sync()

	// Connect to PostgreSQL
	pool, err := database.NewPostgresPool(&cfg.Database)
	if err != nil {
		logger.Fatal("Failed to connect to database", zap.Error(err))
	}
	defer database.Close(pool)
	logger.Info("Connected to PostgreSQL database")

	// Apply pending schema migrations
	if err := database.RunMigrations(&cfg.Database); err != nil {
		logger.Fatal("Failed to run migrations", zap.Error(err))
	}
	logger.Info("Database migrations applied")

	// Wire repositories, services and handlers
	tagRepo := tags.NewRepository(pool)
	tagService := tags.NewService(tagRepo)
	tagHandler := tags.NewHandler(tagService)

	reconciler := tags.NewReconciler(tagRepo)

	certRepo := certificates.NewRepository(pool)
	certService := certificates.NewService(certRepo, reconciler)
	certHandler := certificates.NewHandler(certService)

	userRepo := users.NewRepository(pool)
	userService := users.NewService(userRepo)
	userHandler := users.NewHandler(userService)

	orderRepo := orders.NewRepository(pool)
	orderService := orders.NewService(orderRepo, userService, certService)
	orderHandler := orders.NewHandler(orderService)

	// Set up Gin router
	if cfg.Server.Environment == "production" {
		gin.SetMode(gin.ReleaseMode)
	}
	router := gin.New()

	router.Use(middleware.Recovery())
	router.Use(middleware.CorrelationID())
	router.Use(middleware.RequestLogger())
	router.Use(middleware.Metrics(cfg.Server.ServiceName))
	router.Use(middleware.SecurityHeaders())

	// CORS configuration
	corsConfig := cors.DefaultConfig()
	corsConfig.AllowOrigins = strings.Split(cfg.Server.CORSOrigins, ",")
	corsConfig.AllowMethods = []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"}
	corsConfig.AllowHeaders = []string{"Origin", "Content-Type", "Authorization", "X-Correlation-ID"}
	router.Use(cors.New(corsConfig))

	// Health check and metrics (no auth required)
	router.GET("/healthz", common.HealthCheckWithDeps(cfg.Server.ServiceName, serviceVersion, map[string]func() error{
		"postgres": func() error {
			ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
			defer cancel()
			return pool.Ping(ctx)
		},
	}))
	router.GET("/metrics", gin.WrapH(promhttp.Handler()))

	// API routes
	tagHandler.RegisterRoutes(router)
	certHandler.RegisterRoutes(router)
	userHandler.RegisterRoutes(router)
	orderHandler.RegisterRoutes(router)

	// Start server
	addr := ":" + cfg.Server.Port
	logger.Info("Gift marketplace API starting", zap.String("port", cfg.Server.Port))
	if err := router.Run(addr); err != nil {
		logger.Fatal("Failed to start server", zap.Error(err))
	}
}
