package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"

	"caption-studio-server/config"
	"caption-studio-server/middleware"
	"caption-studio-server/pkg/auth"
	"caption-studio-server/pkg/cache"
	"caption-studio-server/pkg/database"
	"caption-studio-server/pkg/imaging"
	"caption-studio-server/pkg/logger"
	"caption-studio-server/pkg/queue"
	"caption-studio-server/pkg/segmentation"
	"caption-studio-server/routes"
	"caption-studio-server/services"
)

// @title Caption Studio Server API
// @version 1.0
// @description Timeline, caption style and overlay compositing backend for the caption and sticker editor

// @host localhost:8080
// @BasePath /api/v1

// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
// @description Type "Bearer" followed by a space and the session token.

func main() {
	// Load configuration
	if err := config.LoadConfig(); err != nil {
		fmt.Printf("Failed to load config: %v\n", err)
		os.Exit(1)
	}

	cfg := config.AppConfig

	// Initialize logger
	logger.InitLogger(cfg)
	logger.Info("Starting Caption Studio Server...")

	// Initialize database
	if err := database.InitDatabase(cfg); err != nil {
		logger.Fatalf("Failed to initialize database: %v", err)
	}

	// Initialize Redis cache
	if err := cache.InitRedis(cfg); err != nil {
		logger.Fatalf("Failed to initialize Redis: %v", err)
	}

	// Initialize RabbitMQ
	if err := queue.InitRabbitMQ(cfg); err != nil {
		logger.Fatalf("Failed to initialize RabbitMQ: %v", err)
	}

	keyColor, err := imaging.ParseHexColor(cfg.Processing.ChromaColor)
	if err != nil {
		logger.Fatalf("Invalid CHROMA_COLOR: %v", err)
	}

	editor := services.NewEditorService()
	assets := services.NewAssetService(editor, newRemover(cfg), keyColor, cfg.Processing.ChromaTol)
	exports := services.NewExportService(
		editor,
		services.NewExportJobRepository(database.GetDB()),
		cache.Cache,
		queue.Queue,
		cfg.Export.Workers,
		cfg.Export.MaxFrames,
		cfg.Export.PlanTTL,
	)

	// Start background workers
	startBackgroundWorkers(exports)

	// Set Gin mode
	gin.SetMode(cfg.Server.Mode)

	// Create Gin router
	r := gin.New()

	// Add global middleware
	r.Use(middleware.Logger())
	r.Use(middleware.Recovery())
	r.Use(middleware.CORS(cfg.Server.AllowedOrigins))
	r.Use(middleware.APIRateLimit())

	// Setup routes
	routes.SetupRoutes(r, routes.Dependencies{
		Version:        cfg.Server.Version,
		Tokens:         auth.NewTokenManager(cfg.JWT.Secret, cfg.JWT.ExpiresIn),
		Editor:         editor,
		Assets:         assets,
		Exports:        exports,
		MaxUploadBytes: cfg.Processing.MaxUploadBytes,
		UploadsPerMin:  cfg.Processing.UploadsPerMin,
	})

	// Create HTTP server. No write timeout: background removal and
	// websocket playback outlive a fixed deadline.
	srv := &http.Server{
		Addr:           ":" + cfg.Server.Port,
		Handler:        r,
		ReadTimeout:    30 * time.Second,
		IdleTimeout:    60 * time.Second,
		MaxHeaderBytes: 1 << 20, // 1 MB
	}

	// Start server in a goroutine
	go func() {
		logger.Infof("Server starting on port %s", cfg.Server.Port)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Fatalf("Failed to start server: %v", err)
		}
	}()

	// Wait for interrupt signal to gracefully shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.Info("Shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		logger.Errorf("Server forced to shutdown: %v", err)
	}

	cleanup()

	logger.Info("Server stopped")
}

// newRemover builds the background-removal chain: cache, then retry, then
// Gemini. Without an API key uploads keep their original pixels.
func newRemover(cfg *config.Config) segmentation.Remover {
	gemini, err := segmentation.NewGeminiRemover(context.Background(), cfg.Gemini.APIKey, cfg.Gemini.Model, cfg.Gemini.Timeout)
	if err != nil {
		if errors.Is(err, segmentation.ErrNotConfigured) {
			logger.Warn("GEMINI_API_KEY is not set, background removal disabled")
		} else {
			logger.Errorf("Failed to initialize background removal: %v", err)
		}
		return nil
	}

	retrying := segmentation.NewRetryingRemover(gemini, cfg.Gemini.MaxAttempts, cfg.Gemini.BaseDelay, cfg.Gemini.MaxDelay)
	return segmentation.NewCachedRemover(retrying, cache.Cache, cfg.Gemini.Model, cfg.Processing.CacheTTL)
}

func startBackgroundWorkers(exports *services.ExportService) {
	logger.Info("Starting background workers...")

	// Encoder progress reports
	go func() {
		if err := queue.Queue.ConsumeTask(queue.QueueExportStatus, exports.HandleStatusReport, 2); err != nil {
			logger.Errorf("Failed to start export status workers: %v", err)
		}
	}()

	logger.Info("Background workers started")
}

func cleanup() {
	logger.Info("Cleaning up resources...")

	// Close RabbitMQ connection
	if err := queue.Queue.Close(); err != nil {
		logger.Errorf("Failed to close RabbitMQ connection: %v", err)
	}

	// Close Redis connection
	if err := cache.Cache.Close(); err != nil {
		logger.Errorf("Failed to close Redis connection: %v", err)
	}

	// Close database pool
	if err := database.Close(); err != nil {
		logger.Errorf("Failed to close database: %v", err)
	}

	logger.Info("Cleanup completed")
}
