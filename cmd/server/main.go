package main

import (
	"context"
	"errors"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/yishak-cs/marmitas/internal/catalog"
	"github.com/yishak-cs/marmitas/internal/database"
	"github.com/yishak-cs/marmitas/internal/handlers"
	"github.com/yishak-cs/marmitas/internal/logging"
	"github.com/yishak-cs/marmitas/internal/services"
	"github.com/yishak-cs/marmitas/internal/session"
	"github.com/yishak-cs/marmitas/pkg/helper"
)

func main() {
	// Load environment variables
	helper.LoadEnv()
	config := helper.LoadConfigFromEnv()

	logger, err := logging.New(config.Environment, config.LogLevel)
	if err != nil {
		log.Fatalf("Failed to initialize logger: %v", err)
	}
	defer logger.Sync() //nolint:errcheck

	ctx, cancel := context.WithTimeout(context.Background(), time.Minute)
	menu, neo4jClient, err := loadCatalog(ctx, config, logger)
	cancel()
	if err != nil {
		if errors.Is(err, catalog.ErrInvalidCatalogData) {
			logger.Fatal("invalid catalog data", zap.Error(err))
		}
		logger.Fatal("failed to load catalog", zap.Error(err))
	}
	if neo4jClient != nil {
		defer func() {
			ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
			defer cancel()
			if err := neo4jClient.Close(ctx); err != nil {
				logger.Error("error closing Neo4j connection", zap.Error(err))
			}
		}()
	}

	// Initialize sessions
	registry, err := session.NewRegistry(config.MaxSessions, config.SessionIdleTTL, logger)
	if err != nil {
		logger.Fatal("failed to create session registry", zap.Error(err))
	}
	sweepCtx, stopSweeper := context.WithCancel(context.Background())
	defer stopSweeper()
	go registry.RunSweeper(sweepCtx, config.SweepInterval)

	// Initialize services
	orders := services.NewOrderService(config.Order)
	storefront := services.NewStorefrontService(menu, orders, logger)

	// Initialize API handlers
	opts := []handlers.Option{
		handlers.WithImagesDir(config.ImagesDir),
		handlers.WithToastDisplay(config.ToastDisplay),
		handlers.WithSecureCookie(config.IsProduction()),
		handlers.WithLogger(logger),
	}
	if neo4jClient != nil {
		opts = append(opts, handlers.WithHealthChecker(neo4jClient))
	}
	apiHandler := handlers.NewAPIHandler(storefront, registry, opts...)

	// Setup Gin router
	if config.IsProduction() {
		gin.SetMode(gin.ReleaseMode)
	}
	router := gin.New()
	router.Use(gin.Recovery(), handlers.RequestID(), handlers.AccessLog(logger))
	router.Use(cors.New(corsConfig(config.AllowedOrigins)))

	apiHandler.SetupRoutes(router)

	router.NoRoute(func(c *gin.Context) {
		if strings.HasPrefix(c.Request.URL.Path, "/api/") {
			c.JSON(http.StatusNotFound, gin.H{"error": "API endpoint not found"})
			return
		}
		c.JSON(http.StatusNotFound, gin.H{"error": "Not found"})
	})

	// Create server with graceful shutdown
	srv := &http.Server{
		Addr:              fmt.Sprintf(":%s", config.Port),
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	// Start server in a goroutine
	go func() {
		logger.Info("server starting",
			zap.String("port", config.Port),
			zap.String("env", config.Environment),
			zap.Int("catalog_items", menu.Len()))
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Fatal("failed to start server", zap.Error(err))
		}
	}()

	// Wait for interrupt signal
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	logger.Info("shutting down server")
	stopSweeper()

	// Gracefully shutdown with a timeout
	ctx, cancel = context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		logger.Error("server forced to shutdown", zap.Error(err))
		return
	}

	logger.Info("server exited properly")
}

// loadCatalog picks the menu source: Neo4j when configured, then the
// catalog file, then the built-in menu. The returned client is nil when
// Neo4j is not in use.
func loadCatalog(ctx context.Context, config helper.AppConfig, logger *zap.Logger) (*catalog.Catalog, *database.Neo4jClient, error) {
	local := catalog.Default()
	if config.CatalogFile != "" {
		c, err := catalog.LoadFile(config.CatalogFile)
		if err != nil {
			return nil, nil, err
		}
		local = c
		logger.Info("catalog loaded from file", zap.String("path", config.CatalogFile), zap.Int("items", c.Len()))
	}

	if !config.Neo4j.Enabled() {
		return local, nil, nil
	}

	client, err := database.NewNeo4jClient(ctx, config.Neo4j, logger)
	if err != nil {
		return nil, nil, err
	}
	store := database.NewCatalogStore(client)

	menu, err := func() (*catalog.Catalog, error) {
		if err := store.EnsureSchema(ctx); err != nil {
			return nil, err
		}
		if config.Neo4jSeed {
			if err := store.SeedCatalog(ctx, local.Items()); err != nil {
				return nil, err
			}
		}
		items, err := store.LoadCatalog(ctx)
		if err != nil {
			return nil, err
		}
		return catalog.New(items)
	}()
	if err != nil {
		closeCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		_ = client.Close(closeCtx)
		return nil, nil, err
	}
	return menu, client, nil
}

func corsConfig(origins []string) cors.Config {
	cfg := cors.Config{
		AllowMethods:     []string{"GET", "POST", "PATCH", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", handlers.RequestIDHeader},
		ExposeHeaders:    []string{handlers.RequestIDHeader},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}
	if len(origins) == 0 || (len(origins) == 1 && origins[0] == "*") {
		// credentials cannot be combined with a wildcard origin
		cfg.AllowAllOrigins = true
		cfg.AllowCredentials = false
		return cfg
	}
	cfg.AllowOrigins = origins
	return cfg
}
