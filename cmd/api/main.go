package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/gin-gonic/gin"
	"github.com/robfig/cron/v3"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"todo-tracker-api/internal/config"
	"todo-tracker-api/internal/database"
	"todo-tracker-api/internal/job"
	"todo-tracker-api/internal/metrics"
	"todo-tracker-api/internal/repository"
	"todo-tracker-api/internal/router"
	"todo-tracker-api/internal/storage"
)

func main() {
	// Load configuration
	cfg, err := config.Load("configs/config.yaml")
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to load configuration: %v\n", err)
		os.Exit(1)
	}

	// Initialize logger
	logger, err := initLogger(cfg.Logger.Level)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to initialize logger: %v\n", err)
		os.Exit(1)
	}
	defer logger.Sync()

	// Set Gin mode
	if cfg.Server.Mode == "release" {
		gin.SetMode(gin.ReleaseMode)
	}

	logger.Info("Starting Todo Tracker API",
		zap.String("port", cfg.Server.Port),
		zap.String("mode", cfg.Server.Mode),
		zap.String("base_path", cfg.Server.BasePath),
		zap.String("db_driver", cfg.Database.Driver),
	)

	// Initialize database
	db, err := database.New(database.Config{
		Driver:          cfg.Database.Driver,
		DSN:             cfg.Database.GetDSN(),
		MaxOpenConns:    cfg.Database.MaxOpenConns,
		MaxIdleConns:    cfg.Database.MaxIdleConns,
		ConnMaxLifetime: cfg.Database.ConnMaxLifetime,
	})
	if err != nil {
		logger.Fatal("Failed to connect to database", zap.Error(err))
	}
	defer database.Close(db)
	logger.Info("Database connected successfully")

	// Run auto migration
	if err := database.AutoMigrate(db); err != nil {
		logger.Fatal("Failed to run database migrations", zap.Error(err))
	}
	logger.Info("Database migrations completed")

	// Initialize metrics
	m := metrics.NewWithLogger(logger)
	database.RegisterMetricsCallbacks(db, m)
	dbStatsDone := database.StartDBStatsCollector(db, m)
	defer close(dbStatsDone)

	businessCollector := metrics.NewBusinessMetricsCollector(db, m, logger)
	businessCollector.Start()
	defer businessCollector.Stop()
	logger.Info("Metrics initialized")

	// Initialize attachment storage
	store, err := storage.NewLocalStore(cfg.Storage.Root)
	if err != nil {
		logger.Fatal("Failed to initialize attachment storage",
			zap.String("root", cfg.Storage.Root),
			zap.Error(err))
	}
	logger.Info("Attachment storage initialized",
		zap.String("root", store.Root()),
	)

	// Schedule orphan file cleanup
	var scheduler *cron.Cron
	if cfg.Cleanup.Enabled {
		scheduler = cron.New()
		cleanupJob := job.NewCleanupJob(
			repository.NewAttachmentRepository(db),
			store,
			cfg.Cleanup.GracePeriod,
			m,
			logger,
		)
		if _, err := scheduler.AddJob(cfg.Cleanup.Schedule, cleanupJob); err != nil {
			logger.Warn("Failed to schedule cleanup job",
				zap.String("schedule", cfg.Cleanup.Schedule),
				zap.Error(err))
		} else {
			scheduler.Start()
			logger.Info("Cleanup job scheduled",
				zap.String("schedule", cfg.Cleanup.Schedule),
				zap.Duration("grace_period", cfg.Cleanup.GracePeriod),
			)
		}
	}

	// Setup router with all dependencies
	r := router.Setup(router.Config{
		DB:          db,
		Logger:      logger,
		BasePath:    cfg.Server.BasePath,
		Metrics:     m,
		Store:       store,
		CORSOrigins: cfg.Server.CORSOrigins,
	})

	// Create HTTP server
	srv := &http.Server{
		Addr:         fmt.Sprintf(":%s", cfg.Server.Port),
		Handler:      r,
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
	}

	// Start server in goroutine
	go func() {
		logger.Info("Todo Tracker API started successfully",
			zap.String("address", srv.Addr),
		)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Fatal("Failed to start server", zap.Error(err))
		}
	}()

	// Wait for interrupt signal
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	logger.Info("Shutting down server...")

	if scheduler != nil {
		scheduler.Stop()
	}

	// Graceful shutdown with timeout
	ctx, cancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		logger.Error("Server forced to shutdown", zap.Error(err))
	}

	logger.Info("Server exited gracefully")
}

// initLogger initializes the zap logger with the specified level
func initLogger(level string) (*zap.Logger, error) {
	var zapLevel zapcore.Level
	switch level {
	case "debug":
		zapLevel = zapcore.DebugLevel
	case "info":
		zapLevel = zapcore.InfoLevel
	case "warn":
		zapLevel = zapcore.WarnLevel
	case "error":
		zapLevel = zapcore.ErrorLevel
	default:
		zapLevel = zapcore.InfoLevel
	}

	config := zap.Config{
		Level:            zap.NewAtomicLevelAt(zapLevel),
		Development:      zapLevel == zapcore.DebugLevel,
		Encoding:         "json",
		EncoderConfig:    zap.NewProductionEncoderConfig(),
		OutputPaths:      []string{"stdout"},
		ErrorOutputPaths: []string{"stderr"},
	}

	return config.Build()
}
