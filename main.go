package main

import (
	"context"
	"fmt"
	"log"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	firebase "firebase.google.com/go/v4"
	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"

	"github.com/SAP-F-2025/nova-scholar-service/internal/config"
	"github.com/SAP-F-2025/nova-scholar-service/internal/handlers"
	"github.com/SAP-F-2025/nova-scholar-service/internal/metrics"
	"github.com/SAP-F-2025/nova-scholar-service/internal/repositories/document"
	"github.com/SAP-F-2025/nova-scholar-service/internal/services"
	"github.com/SAP-F-2025/nova-scholar-service/internal/utils"
	"github.com/SAP-F-2025/nova-scholar-service/internal/validator"
	"github.com/SAP-F-2025/nova-scholar-service/pkg"
)

func main() {
	// Load configuration
	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	// Initialize logger
	slogLogger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
		Level: cfg.LogLevel,
	}))
	logger := utils.NewSlogLogger(slogLogger)

	ctx := context.Background()

	// Firebase backs both the firestore store and firebase auth
	var app *firebase.App
	if cfg.Store.Backend == config.StoreFirestore || cfg.Auth.Provider == config.AuthFirebase {
		app, err = pkg.NewFirebaseApp(ctx, cfg)
		if err != nil {
			log.Fatalf("Failed to initialize firebase: %v", err)
		}
	}

	// Initialize document store
	docStore, err := pkg.InitStore(ctx, cfg, app)
	if err != nil {
		log.Fatalf("Failed to initialize store: %v", err)
	}

	// Initialize identity verifier
	verifier, err := pkg.NewVerifier(ctx, cfg, app)
	if err != nil {
		log.Fatalf("Failed to initialize identity verifier: %v", err)
	}

	// Initialize Redis (if configured)
	var redisClient *redis.Client
	if cfg.RedisURL != "" {
		redisClient, err = pkg.NewRedisClient(cfg)
		if err != nil {
			log.Printf("Warning: Failed to initialize Redis, AI quota disabled: %v", err)
			redisClient = nil
		}
	}

	// Initialize AI generator
	generator, err := pkg.NewGenerator(ctx, cfg, redisClient, slogLogger)
	if err != nil {
		log.Fatalf("Failed to initialize AI generator: %v", err)
	}

	// Initialize event publisher
	publisher, err := pkg.NewEventPublisher(cfg, slogLogger)
	if err != nil {
		log.Fatalf("Failed to initialize event publisher: %v", err)
	}

	metrics.Register()

	// Initialize services
	serviceManager := services.NewServiceManager(services.Dependencies{
		Repo:      document.NewDocumentRepository(docStore),
		Verifier:  verifier,
		Generator: generator,
		Publisher: publisher,
		Logger:    slogLogger,
		Validator: validator.New(),
	}, services.ServiceManagerConfig{
		Roster: services.RosterConfig{EnforceTeacherScope: cfg.Auth.EnforceTeacherScope},
		AI: services.AIConfig{
			Model:     cfg.AI.Model,
			Timeout:   cfg.AI.Timeout,
			DemoDelay: cfg.DemoDelay,
		},
	})
	if err := serviceManager.Initialize(ctx); err != nil {
		log.Fatalf("Failed to initialize services: %v", err)
	}

	// Initialize handlers
	handlerManager := handlers.NewHandlerManager(serviceManager, verifier, logger, handlers.HandlerConfig{
		StrictStatus: cfg.StrictStatus,
	})

	// Setup Gin router
	if cfg.Environment == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	router := gin.New()

	// Setup middleware
	handlers.SetupMiddleware(router, logger, cfg.CORSOrigins)

	// Setup routes
	handlerManager.SetupRoutes(router)

	// Create HTTP server
	server := &http.Server{
		Addr:    fmt.Sprintf(":%s", cfg.Port),
		Handler: router,
	}

	// Start server in a goroutine
	go func() {
		logger.Info("Starting server", "port", cfg.Port, "environment", cfg.Environment,
			"store", cfg.Store.Backend, "auth", cfg.Auth.Provider)
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("Failed to start server: %v", err)
		}
	}()

	// Wait for interrupt signal to gracefully shutdown the server
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.Info("Shutting down server...")

	// Graceful shutdown with timeout
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	// Shutdown HTTP server
	if err := server.Shutdown(shutdownCtx); err != nil {
		log.Printf("Server forced to shutdown: %v", err)
	}

	// Shutdown services (closes the publisher and the store)
	if err := serviceManager.Shutdown(shutdownCtx); err != nil {
		log.Printf("Failed to shutdown services: %v", err)
	}

	// Close Redis connection
	if redisClient != nil {
		redisClient.Close()
	}

	logger.Info("Server exited")
}
