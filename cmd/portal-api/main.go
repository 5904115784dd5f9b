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
	"github.com/joho/godotenv"
	"go.uber.org/zap"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"

	"certportal/certificate-portal-backend/internal/auth"
	"certportal/certificate-portal-backend/internal/certificates"
	"certportal/certificate-portal-backend/internal/config"
	"certportal/certificate-portal-backend/internal/render"
	"certportal/certificate-portal-backend/internal/settings"
)

func main() {
	// Initialize logger
	logger, _ := zap.NewProduction()
	if os.Getenv("GIN_MODE") != "release" {
		logger, _ = zap.NewDevelopment()
	}
	defer logger.Sync()

	// Local development env file, ignored when absent
	_ = godotenv.Load()

	// Load configuration
	cfg, err := config.LoadConfig("config.json")
	if err != nil {
		logger.Fatal("Failed to load configuration", zap.Error(err))
	}
	if cfg.Auth.JWTSecret == "" {
		logger.Fatal("JWT_SECRET must be configured")
	}

	// Connect to database
	db, err := gorm.Open(postgres.Open(cfg.Database.GetDatabaseURL()), &gorm.Config{
		TranslateError: true,
	})
	if err != nil {
		logger.Fatal("Failed to connect to database", zap.Error(err))
	}
	if err := certificates.Migrate(db); err != nil {
		logger.Fatal("Failed to run migrations", zap.Error(err))
	}
	if err := settings.Migrate(db); err != nil {
		logger.Fatal("Failed to run migrations", zap.Error(err))
	}

	// Auth
	authService := auth.NewService(auth.Options{
		AdminUsername:     cfg.Auth.AdminUsername,
		AdminPassword:     cfg.Auth.AdminPassword,
		AdminPasswordHash: cfg.Auth.AdminPasswordHash,
		JWTSecret:         cfg.Auth.JWTSecret,
		TokenTTL:          cfg.Auth.TokenTTL,
	})
	authHandler := auth.NewHandler(authService)
	adminOnly := auth.Middleware(authService)

	// Rendering pipeline
	resolver := render.Resolver{
		Files: render.FileSource{},
		HTTP:  render.NewHTTPSource(cfg.Assets.HTTPTimeout),
	}
	renderer := render.NewRenderer(render.DefaultRendererOptions())
	composer := render.NewComposer(resolver, renderer, render.ComposerOptions{
		Strategy:    cfg.Render.StrategyValue(),
		LogoRef:     cfg.Assets.LogoRef,
		TemplateRef: cfg.Assets.TemplateRef,
		Caption:     cfg.Render.FooterCaption,
		Overlay:     cfg.Render.Overlay,
	}, logger)

	// Portal settings
	settingsService := settings.NewService(settings.NewRepository(db), logger)
	settingsHandler := settings.NewHandler(settingsService)

	// Certificates
	certRepo := certificates.NewRepository(db)
	certService := certificates.NewService(
		certRepo,
		composer,
		certificates.FilePhotoStore{Dir: cfg.Assets.PhotoDir},
		settingsService,
		certificates.ServiceOptions{SerialNoUnique: cfg.Certificates.SerialNoUnique},
		logger,
	)
	certHandler := certificates.NewHandler(certService, logger)

	// Setup Router
	router := gin.Default()

	// CORS Middleware
	router.Use(func(c *gin.Context) {
		c.Writer.Header().Set("Access-Control-Allow-Origin", "*")
		c.Writer.Header().Set("Access-Control-Allow-Headers", "Content-Type, Content-Length, Accept-Encoding, Authorization, accept, origin, Cache-Control, X-Requested-With")
		c.Writer.Header().Set("Access-Control-Allow-Methods", "POST, OPTIONS, GET, PUT, DELETE")

		if c.Request.Method == "OPTIONS" {
			c.AbortWithStatus(204)
			return
		}

		c.Next()
	})

	// Register Routes
	api := router.Group("/api/v1")
	{
		authHandler.RegisterRoutes(api, adminOnly)
		certHandler.RegisterPublicRoutes(api)

		admin := api.Group("")
		admin.Use(adminOnly)
		certHandler.RegisterAdminRoutes(admin)
		settingsHandler.RegisterRoutes(admin)
	}

	// Health Check
	router.GET("/health", func(c *gin.Context) {
		c.JSON(200, gin.H{
			"status":    "healthy",
			"timestamp": time.Now(),
		})
	})

	// Start Server
	srv := &http.Server{
		Addr:    fmt.Sprintf(":%d", cfg.Server.Port),
		Handler: router,
	}

	go func() {
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Fatal("listen failed", zap.Error(err))
		}
	}()

	logger.Info("Server started",
		zap.Int("port", cfg.Server.Port),
		zap.String("render_strategy", string(cfg.Render.StrategyValue())))

	// Graceful Shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	logger.Info("Shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		logger.Fatal("Server forced to shutdown", zap.Error(err))
	}

	logger.Info("Server exiting")
}
