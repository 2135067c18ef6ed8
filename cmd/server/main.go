package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"github.com/sirupsen/logrus"

	"github.com/gridironhq/recruiting-ops/internal/api"
	"github.com/gridironhq/recruiting-ops/internal/api/handlers"
	"github.com/gridironhq/recruiting-ops/internal/api/middleware"
	"github.com/gridironhq/recruiting-ops/internal/services"
	"github.com/gridironhq/recruiting-ops/pkg/config"
	"github.com/gridironhq/recruiting-ops/pkg/database"
)

func main() {
	// Load configuration
	cfg, err := config.LoadConfig()
	if err != nil {
		logrus.Fatalf("Failed to load config: %v", err)
	}

	// Setup logging
	if cfg.IsDevelopment() {
		logrus.SetLevel(logrus.DebugLevel)
		gin.SetMode(gin.DebugMode)
	} else {
		logrus.SetLevel(logrus.InfoLevel)
		gin.SetMode(gin.ReleaseMode)
	}
	logger := logrus.StandardLogger()

	// Load and validate the calculator policy
	calcCfg, err := config.LoadCalculatorConfig(cfg.CalculatorConfigPath)
	if err != nil {
		logrus.Fatalf("Failed to load calculator config: %v", err)
	}

	planningYear := cfg.PlanningYear
	if planningYear == 0 {
		planningYear = time.Now().Year()
	}

	// Connect to database
	db, err := database.NewConnection(cfg.DatabaseURL, cfg.IsDevelopment())
	if err != nil {
		logrus.Fatalf("Failed to connect to database: %v", err)
	}
	defer db.Close()

	// Connect to Redis
	opt, err := redis.ParseURL(cfg.RedisURL)
	if err != nil {
		logrus.Fatalf("Failed to parse Redis URL: %v", err)
	}
	redisClient := redis.NewClient(opt)
	ctx := context.Background()
	if err := redisClient.Ping(ctx).Err(); err != nil {
		logrus.Fatalf("Failed to connect to Redis: %v", err)
	}
	defer redisClient.Close()

	// Initialize services
	cacheService := services.NewCacheService(redisClient)
	rosterService := services.NewRosterService(db, logger)
	importService := services.NewGradeImportService(db, logger)

	webSocketHub := services.NewWebSocketHub(logger)
	go webSocketHub.Run()

	// Guardrail SMS alerts
	var smsSender services.SMSSender
	if cfg.AlertSMSEnabled && cfg.TwilioAccountSID != "" {
		smsSender = services.NewTwilioSMSSender(cfg.TwilioAccountSID, cfg.TwilioAuthToken, cfg.TwilioFromNumber)
	} else {
		smsSender = services.NewMockSMSSender(logger)
	}
	smsRateLimiter := services.NewSMSRateLimiter(cfg.AlertSMSRateLimit, time.Hour)
	alertService := services.NewGuardrailAlertService(smsSender, smsRateLimiter, cfg.AlertRecipients, logger)

	// Transfer portal sync
	portalSync := services.NewPortalSyncService(
		db,
		cfg.PortalAPIURL,
		cfg.PortalAPIKey,
		cfg.ExternalAPITimeout,
		cfg.CircuitBreakerThreshold,
		cfg.PortalRateLimit,
		logger,
	)

	cacheTTL := time.Duration(cfg.CacheExpiration) * time.Second

	// Background jobs: portal sync, budget recompute, scenario-run cleanup
	if cfg.EnableBackgroundJobs {
		syncInterval, err := time.ParseDuration(cfg.PortalSyncInterval)
		if err != nil {
			logrus.Warnf("Invalid portal sync interval, using default 6h: %v", err)
			syncInterval = 6 * time.Hour
		}

		refresh := services.NewRefreshService(
			db,
			rosterService,
			cacheService,
			alertService,
			portalSync,
			webSocketHub,
			calcCfg,
			planningYear,
			cacheTTL,
			cfg.ScenarioRetentionDays,
			syncInterval,
			logger,
		)
		if err := refresh.Start(); err != nil {
			logrus.Errorf("Failed to start background jobs: %v", err)
		}
		defer refresh.Stop()
	}

	// Setup Gin router
	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(middleware.Logger())
	router.Use(middleware.CORS(cfg.CorsOrigins))

	// Health check endpoint
	healthHandler := handlers.NewHealthHandler()
	router.GET("/health", healthHandler.GetHealth)

	// Setup API routes under /api/v1
	apiV1 := router.Group("/api/v1")
	api.SetupRoutes(apiV1, cfg, api.Deps{
		DB:           db,
		Cache:        cacheService,
		Hub:          webSocketHub,
		Roster:       rosterService,
		Importer:     importService,
		PortalSync:   portalSync,
		Calc:         calcCfg,
		PlanningYear: planningYear,
		Logger:       logger,
	})

	// WebSocket endpoint at root level (not under /api/v1)
	wsHandler := handlers.NewWebSocketHandler(webSocketHub, logger)
	router.GET("/ws", middleware.OptionalAuth(cfg.JWTSecret), wsHandler.HandleWebSocket)

	// Setup server
	srv := &http.Server{
		Addr:         fmt.Sprintf(":%s", cfg.Port),
		Handler:      router,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	// Start server in goroutine
	go func() {
		logrus.Infof("Starting server on port %s (planning year %d)", cfg.Port, planningYear)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logrus.Fatalf("Failed to start server: %v", err)
		}
	}()

	// Wait for interrupt signal to gracefully shutdown the server
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	logrus.Info("Shutting down server...")

	// Graceful shutdown with timeout
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		logrus.Errorf("Server forced to shutdown: %v", err)
	}

	logrus.Info("Server exited")
}
