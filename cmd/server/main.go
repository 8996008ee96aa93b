package main

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/rs/zerolog"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"

	"github.com/kamenart/catalog-service/config"
	_ "github.com/kamenart/catalog-service/docs"
	"github.com/kamenart/catalog-service/internal/cache"
	"github.com/kamenart/catalog-service/internal/database"
	"github.com/kamenart/catalog-service/internal/handlers"
	"github.com/kamenart/catalog-service/internal/importer"
	"github.com/kamenart/catalog-service/internal/middleware"
	"github.com/kamenart/catalog-service/internal/storage"
	"github.com/kamenart/catalog-service/internal/sweepers"
	"github.com/kamenart/catalog-service/internal/telemetry"
	"github.com/kamenart/catalog-service/internal/uniqueness"
)

func main() {
	cfg, err := config.Load("")
	if err != nil {
		fmt.Printf("Failed to load config: %v\n", err)
		os.Exit(1)
	}
	logger := initLogger(cfg.Logging)

	logger.Info().Msg("Starting catalog service")

	dbURL := config.GetDatabaseURL()
	if dbURL == "" {
		logger.Fatal().Msg("DATABASE_URL not set")
	}

	ctx := context.Background()
	if err := database.Connect(
		ctx,
		dbURL,
		cfg.Database.MaxConnections,
		cfg.Database.MinConnections,
		cfg.Database.MaxConnLifetime,
		cfg.Database.MaxConnIdleTime,
	); err != nil {
		logger.Fatal().Err(err).Msg("Failed to connect to database")
	}
	defer database.Close()

	logger.Info().Msg("Database connected")

	shutdownTelemetry, err := telemetry.Init(ctx, telemetry.GetConfigFromEnv())
	if err != nil {
		logger.Warn().Err(err).Msg("Telemetry disabled")
	}

	store := database.NewProductStore(database.Pool())
	cached := cache.NewCachedSource(store, cfg.Catalog.CacheTTL, cfg.Catalog.WarmupWorkers, logger)
	checker := uniqueness.NewChecker(cached, logger)
	imp := importer.New(store, logger)

	archive, err := storage.NewPriceListArchive(cfg.Catalog.ArchivePath)
	if err != nil {
		logger.Warn().Err(err).Msg("Price list archive disabled")
		archive = nil
	}
	handlers.Init(store, checker, imp, cached, archive)

	// Warm the name cache up front so the first check-name request does
	// not pay the full scan.
	go func() {
		warmCtx, cancel := context.WithTimeout(ctx, 30*time.Second)
		defer cancel()
		cached.Warm(warmCtx)
	}()

	sweeper := sweepers.NewLegacySentinelSweeper(store, logger, cfg.Catalog.SweepInterval)
	go sweeper.Start(ctx)

	if cfg.Logging.Level == "info" || cfg.Logging.Level == "debug" {
		gin.SetMode(gin.DebugMode)
	} else {
		gin.SetMode(gin.ReleaseMode)
	}

	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(middleware.RequestID())

	router.GET("/health", handlers.HealthCheck)
	router.GET("/metrics", gin.WrapH(promhttp.Handler()))
	router.GET("/docs/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	internal := router.Group("/internal")
	internal.Use(middleware.InternalAuth(cfg.Server.InternalAPIKey))
	internal.Use(middleware.RateLimit(middleware.RateLimiterConfig{
		RequestsPerSecond: float64(cfg.RateLimit.RequestsPerSecond),
		BurstSize:         cfg.RateLimit.BurstSize,
	}))
	{
		internal.GET("/health", handlers.HealthCheck)

		catalogGroup := internal.Group("/catalog")
		{
			catalogGroup.GET("/:category", handlers.ListCatalog)
			catalogGroup.GET("/:category/:slug", handlers.GetProduct)
		}

		admin := internal.Group("/admin")
		{
			admin.POST("/pricing/preview", handlers.PreviewPricing)
			admin.PUT("/products/:id/pricing", handlers.UpdateProductPricing)
			admin.GET("/check-name", handlers.CheckName)
			admin.POST("/import", handlers.ImportPriceList)
		}
	}

	addr := fmt.Sprintf("%s:%d", cfg.Server.Host, cfg.Server.Port)
	srv := &http.Server{
		Addr:         addr,
		Handler:      router,
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
	}

	go func() {
		logger.Info().Str("addr", addr).Msg("Server listening")
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Fatal().Err(err).Msg("Failed to start server")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.Info().Msg("Shutting down server...")
	sweeper.Stop()

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Error().Err(err).Msg("Server forced to shutdown")
	}
	if shutdownTelemetry != nil {
		if err := shutdownTelemetry(shutdownCtx); err != nil {
			logger.Error().Err(err).Msg("Telemetry shutdown failed")
		}
	}

	logger.Info().Msg("Server exited")
}

func initLogger(cfg config.LoggingConfig) *zerolog.Logger {
	zerolog.TimeFieldFormat = zerolog.TimeFormatUnix

	level, err := zerolog.ParseLevel(cfg.Level)
	if err != nil {
		level = zerolog.InfoLevel
	}

	var output io.Writer
	if cfg.Format == "json" {
		output = os.Stdout
	} else {
		output = zerolog.ConsoleWriter{Out: os.Stdout, NoColor: cfg.NoColor}
	}

	logger := zerolog.New(output).Level(level).With().Timestamp().Str("service", "catalog-service").Logger()
	return &logger
}
