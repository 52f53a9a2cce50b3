package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/reelclub/leads-backend/src/config"
	"github.com/reelclub/leads-backend/src/database"
	"github.com/reelclub/leads-backend/src/handlers"
	"github.com/reelclub/leads-backend/src/logging"
	"github.com/reelclub/leads-backend/src/middleware"
	"github.com/reelclub/leads-backend/src/models"
	"github.com/reelclub/leads-backend/src/services"
	"github.com/rs/zerolog/log"
)

func main() {
	// Load configuration
	cfg := config.Load()

	// Initialize structured logging
	logging.Setup(logging.Config{
		Level:  cfg.LogLevel,
		Format: cfg.LogFormat,
	})

	log.Info().
		Int("port", cfg.Port).
		Str("log_level", cfg.LogLevel).
		Msg("starting server")

	// Initialize database
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	db, err := database.New(ctx, cfg.DatabaseURL)
	cancel()
	if err != nil {
		log.Fatal().Err(err).Msg("failed to initialize database")
	}
	defer db.Close()

	log.Info().Msg("database connected")

	// Initialize JWT secret in middleware
	if err := middleware.SetJWTSecret(cfg.JWTSecret); err != nil {
		log.Fatal().Err(err).Msg("failed to initialize JWT secret")
	}

	// Apply seed accounts on first run
	if cfg.SeedFile != "" {
		seedService := services.NewSeedService(db.GetPool())
		created, err := seedService.ApplyFile(context.Background(), cfg.SeedFile)
		if err != nil {
			log.Fatal().Err(err).Str("file", cfg.SeedFile).Msg("failed to apply seed accounts")
		}
		log.Info().Int("created", created).Str("file", cfg.SeedFile).Msg("seed accounts applied")
	}

	if cfg.BreakGlassUsername != "" && cfg.BreakGlassPasswordHash != "" {
		log.Warn().Str("username", cfg.BreakGlassUsername).Msg("break-glass credential enabled; every use is audit-logged")
	}

	// Ensure the upload directory exists
	if err := os.MkdirAll(cfg.UploadDir, 0o755); err != nil {
		log.Fatal().Err(err).Str("dir", cfg.UploadDir).Msg("failed to create upload directory")
	}

	// Initialize services
	authService := services.NewAuthService(db.GetPool(), cfg.BreakGlassUsername, cfg.BreakGlassPasswordHash)
	accountService := services.NewAccountService(db.GetPool(), cfg.ProtectedUsernames)
	auditService := services.NewAuditService(db.GetPool())
	reviewService := services.NewReviewService(db.GetPool())

	// Create Gin router
	router := gin.New()

	// Add middleware
	router.Use(middleware.RequestIDMiddleware())
	router.Use(middleware.LoggingMiddleware())
	router.Use(gin.Recovery())
	router.Use(middleware.NewIPRateLimitingMiddleware(middleware.RateLimitConfig{
		RequestsPerMinute: cfg.RateLimitPerMinute,
		Burst:             cfg.RateLimitBurst,
	}))

	corsConfig := cors.Config{
		AllowMethods:     []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Accept", "Authorization"},
		ExposeHeaders:    []string{"Content-Length"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}
	if len(cfg.AllowedOrigins) > 0 {
		corsConfig.AllowOrigins = cfg.AllowedOrigins
	} else {
		corsConfig.AllowAllOrigins = true
		corsConfig.AllowCredentials = false
	}
	router.Use(cors.New(corsConfig))

	setupRoutes(router, db, cfg, authService, accountService, auditService, reviewService)

	// Create HTTP server with timeouts
	srv := &http.Server{
		Addr:              fmt.Sprintf(":%d", cfg.Port),
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
		ReadTimeout:       30 * time.Second,
		WriteTimeout:      30 * time.Second,
	}

	// Start server in goroutine
	go func() {
		log.Info().Int("port", cfg.Port).Msg("server listening")
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal().Err(err).Msg("server error")
		}
	}()

	// Wait for interrupt signal
	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGTERM, syscall.SIGINT)
	sig := <-sigChan

	log.Info().Str("signal", sig.String()).Msg("received shutdown signal")

	// Graceful shutdown with timeout
	ctx, cancel = context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		log.Error().Err(err).Msg("server shutdown error")
	}

	log.Info().Msg("server shut down successfully")
}

func setupRoutes(router *gin.Engine, db *database.Database, cfg *config.Config, authService *services.AuthService, accountService *services.AccountService, auditService *services.AuditService, reviewService *services.ReviewService) {
	// Initialize handlers
	healthHandler := handlers.NewHealthHandler(db)
	authHandler := handlers.NewAuthHandler(authService)
	userHandler := handlers.NewUserHandler(accountService)
	auditHandler := handlers.NewAuditHandler(auditService)
	reviewHandler := handlers.NewReviewHandler(reviewService)
	uploadHandler := handlers.NewUploadHandler(cfg.UploadDir, cfg.ExternalURL)

	adminOnly := middleware.RequireRoles(models.RoleAdmin)

	// Health check endpoints
	router.GET("/health", healthHandler.HandleHealth)
	router.GET("/ready", healthHandler.HandleReady)

	// Authentication. Login gets its own tighter rate limit.
	auth := router.Group("/api/auth")
	{
		auth.POST("/login",
			middleware.NewIPRateLimitingMiddleware(middleware.RateLimitConfig{
				RequestsPerMinute: cfg.LoginRateLimitPerMinute,
				Burst:             cfg.LoginRateLimitBurst,
			}),
			authHandler.HandleLogin)
		auth.GET("/me", middleware.RequireAuth(), authHandler.HandleMe)
	}

	// Access log (admin only)
	audit := router.Group("/api/audit", middleware.RequireAuth(), adminOnly)
	{
		audit.GET("", auditHandler.HandleList)
		audit.PUT("/:id", auditHandler.HandleUpdate)
		audit.DELETE("/:id", auditHandler.HandleDelete)
		audit.DELETE("", auditHandler.HandleClear)
	}

	// Account management (admin only)
	users := router.Group("/api/users", middleware.RequireAuth(), adminOnly)
	{
		users.GET("", userHandler.HandleList)
		users.POST("", userHandler.HandleCreate)
		users.PUT("/:id", userHandler.HandleUpdate)
		users.DELETE("/:id", userHandler.HandleDelete)
		users.PATCH("/:id/permissions", userHandler.HandleSetPermissions)
	}

	// Reviews. Submission is public, listing is permission-gated,
	// moderation is admin only.
	reviews := router.Group("/api/reviews")
	{
		reviews.POST("/submit", reviewHandler.HandleSubmit)
		reviews.GET("", middleware.RequireAuth(), reviewHandler.HandleList)
		reviews.PATCH("/:id", middleware.RequireAuth(), adminOnly, reviewHandler.HandleUpdateStatus)
		reviews.DELETE("/:id", middleware.RequireAuth(), adminOnly, reviewHandler.HandleDelete)
	}

	// Image uploads from the dashboard editor
	router.POST("/api/upload", middleware.RequireAuth(), uploadHandler.HandleUpload)
	router.Static("/uploads", cfg.UploadDir)
}
