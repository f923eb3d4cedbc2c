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
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/farebd/leasehold/api/internal/cache"
	"github.com/farebd/leasehold/api/internal/config"
	"github.com/farebd/leasehold/api/internal/database"
	"github.com/farebd/leasehold/api/internal/handlers"
	"github.com/farebd/leasehold/api/internal/logger"
	"github.com/farebd/leasehold/api/internal/middleware"
	"github.com/farebd/leasehold/api/internal/models"
	"github.com/farebd/leasehold/api/internal/repository"
	"github.com/farebd/leasehold/api/internal/services"
)

const (
	shutdownTimeout = 30 * time.Second
)

func main() {
	// Load configuration from environment variables
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to load configuration: %v\n", err)
		os.Exit(1)
	}

	// Initialize structured logger
	log := logger.New(cfg.Server.Env)
	log.Info("Starting Leasehold API", map[string]interface{}{
		"version":     "0.1.0",
		"environment": cfg.Server.Env,
		"port":        cfg.Server.Port,
	})

	// Connect to the document store
	ctx := context.Background()
	db, err := database.NewMongo(ctx, cfg.Mongo)
	if err != nil {
		log.Fatal("Failed to connect to database", err, map[string]interface{}{
			"uri":      cfg.Mongo.URI,
			"database": cfg.Mongo.Database,
		})
	}
	defer func() {
		if err := db.Close(context.Background()); err != nil {
			log.Error("Failed to close database connection", err, nil)
		}
	}()

	log.Info("Database connection established", map[string]interface{}{
		"database": cfg.Mongo.Database,
	})

	// Connect the listing snapshot cache. A down cache degrades to direct
	// store reads, so a failed ping is a warning, not a startup failure.
	listingCache := cache.New(cfg.Redis)
	if err := listingCache.Ping(ctx); err != nil {
		log.Warn("Listing cache unreachable, serving without it", map[string]interface{}{
			"addr":  cfg.Redis.Address,
			"error": err.Error(),
		})
		listingCache = nil
	} else {
		defer func() {
			if err := listingCache.Close(); err != nil {
				log.Error("Failed to close cache connection", err, nil)
			}
		}()
	}

	// Setup Gin router
	if cfg.Server.Env == "production" {
		gin.SetMode(gin.ReleaseMode)
	}
	router := gin.New()

	// Add middleware in order: RequestID -> Logger -> Recovery -> Metrics -> CORS
	router.Use(middleware.RequestID())
	router.Use(middleware.Logger(log))
	router.Use(middleware.Recovery(log))
	router.Use(middleware.Metrics())
	router.Use(middleware.CORS(cfg.CORS.Origins))

	// Register health check and metrics routes
	healthHandler := handlers.NewHealthHandler(db, cfg.Server.Env)
	router.GET("/health", healthHandler.Health)
	router.GET("/health/ready", healthHandler.Ready)
	router.GET("/api/v1/info", healthHandler.Info)
	router.GET("/metrics", gin.WrapH(promhttp.Handler()))

	// Initialize repository and service layers
	listingRepo := repository.NewListingRepository(db)
	userRepo := repository.NewUserRepository(db)
	messageRepo := repository.NewMessageRepository(db)

	listingService := services.NewListingService(listingRepo, listingCache, log)
	userService := services.NewUserService(userRepo, log)
	messageService := services.NewMessageService(messageRepo, userRepo, log)

	// Initialize handlers
	listingHandler := handlers.NewListingHandler(listingService)
	adminHandler := handlers.NewAdminHandler(listingService)
	cooperHandler := handlers.NewCooperHandler()
	messageHandler := handlers.NewMessageHandler(messageService)
	userHandler := handlers.NewUserHandler(userService)

	// The auth middleware resolves roles through the profile store so that a
	// provisioned admin is recognized on every request.
	auth := middleware.Auth(cfg.Auth, func(c *gin.Context, email string) models.Role {
		user, err := userService.Get(c.Request.Context(), email)
		if err != nil {
			return models.RoleUser
		}
		return user.Role
	})

	// Register API v1 routes
	v1 := router.Group("/api/v1")
	{
		properties := v1.Group("/properties")
		{
			properties.GET("", listingHandler.Browse)
			properties.GET("/recent", listingHandler.Recent)
			properties.GET("/:id", listingHandler.Get)
			properties.POST("", auth, middleware.RequireRole(models.RoleSeller, models.RoleAdmin), listingHandler.Create)
			properties.DELETE("/:id", auth, listingHandler.Delete)
		}

		v1.POST("/search", listingHandler.Search)

		cooper := v1.Group("/cooper")
		{
			cooper.GET("/options", cooperHandler.Options)
			cooper.POST("/score", cooperHandler.Score)
			cooper.POST("/report", cooperHandler.Report)
		}

		messages := v1.Group("/messages", auth)
		{
			messages.GET("/conversations", messageHandler.Conversations)
			messages.GET("/with/:email", messageHandler.Thread)
			messages.POST("/with/:email/read", messageHandler.MarkRead)
			messages.POST("", messageHandler.Send)
		}

		users := v1.Group("/users", auth)
		{
			users.POST("", userHandler.Register)
			users.GET("/me", userHandler.Me)
		}

		admin := v1.Group("/admin", auth, middleware.RequireRole(models.RoleAdmin))
		{
			admin.GET("/properties", adminHandler.List)
			admin.POST("/properties/:id/approve", adminHandler.Approve)
			admin.POST("/properties/:id/reject", adminHandler.Reject)
		}
	}

	// Create HTTP server
	srv := &http.Server{
		Addr:    fmt.Sprintf(":%s", cfg.Server.Port),
		Handler: router,
	}

	// Start server in goroutine
	go func() {
		log.Info("Server listening", map[string]interface{}{
			"port": cfg.Server.Port,
			"addr": srv.Addr,
		})
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal("Server failed to start", err, nil)
		}
	}()

	// Wait for interrupt signal (SIGINT or SIGTERM)
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	// Graceful shutdown
	log.Info("Shutting down server...", nil)

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Error("Server forced to shutdown", err, map[string]interface{}{
			"timeout": shutdownTimeout.String(),
		})
	}

	log.Info("Server exited", nil)
}
