// Package startup prepares the application server
package startup

import (
	"context"
	"fmt"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/dzakyfr/portfolio-go/internal/application/container"
	"github.com/dzakyfr/portfolio-go/internal/infrastructure/localstore"
	"github.com/dzakyfr/portfolio-go/internal/infrastructure/observability/logging"
	"github.com/dzakyfr/portfolio-go/internal/infrastructure/persistence/database"
	"github.com/dzakyfr/portfolio-go/internal/presentation/http/server"
	"github.com/dzakyfr/portfolio-go/pkg/config"
)

// Initialize performs the complete startup sequence: logging, database,
// schema, service container, section mounting, and the HTTP server with
// graceful shutdown.
func Initialize() error {
	setupGinMode()

	start := time.Now().UTC()

	// Step 1: Channeled logging
	logger, err := logging.NewChanneledLogger(logging.DefaultLoggerConfig())
	if err != nil {
		return fmt.Errorf("failed to initialize logging: %w", err)
	}
	defer logger.Close()
	logger.Startup().Info("Logging initialized")

	// Step 2: Database connection and schema
	logger.Startup().Info("Connecting to database", "driver", config.DBDriver)
	db, err := database.NewConnection(config.DBDriver, config.DBDataSource, logger)
	if err != nil {
		return fmt.Errorf("failed to connect to database: %w", err)
	}
	defer db.Close()

	if err := database.CreateTables(db, logger); err != nil {
		return fmt.Errorf("failed to create schema: %w", err)
	}

	// Step 3: Local state store
	store, err := localstore.Open(config.StateFilePath)
	if err != nil {
		return fmt.Errorf("failed to open state store: %w", err)
	}
	logger.Startup().Info("Local state store opened", "path", config.StateFilePath)

	// Step 4: Dependency injection container
	appContainer := container.NewContainer(logger, db, store)
	logger.Startup().Info("Dependency injection container created with singleton services")

	// Step 5: Mount content sections
	mountStart := time.Now()
	if err := appContainer.Coordinator.MountAll(); err != nil {
		return fmt.Errorf("failed to mount content sections: %w", err)
	}
	logger.Startup().Info("Content sections mounted", "duration", time.Since(mountStart))

	// Step 6: HTTP server
	httpServer := server.New(config.Port, appContainer)
	logger.Startup().Info("HTTP server initialized", "port", config.Port)

	gracefulShutdown := make(chan os.Signal, 1)
	signal.Notify(gracefulShutdown, syscall.SIGINT, syscall.SIGTERM)

	go func() {
		logger.System().Info("Starting HTTP server", "address", ":"+config.Port)
		if err := httpServer.Start(); err != nil {
			logger.System().Error("HTTP server failed", "error", err.Error())
		}
	}()

	logger.Startup().Info("Application startup complete",
		"totalDuration", time.Since(start),
		"port", config.Port)

	<-gracefulShutdown
	logger.Shutdown().Info("Shutdown signal received, starting graceful shutdown...")

	shutdownStart := time.Now()

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	logger.Shutdown().Info("Stopping HTTP server...")
	if err := httpServer.Stop(shutdownCtx); err != nil {
		logger.Shutdown().Error("Error during server shutdown", "error", err.Error())
	} else {
		logger.Shutdown().Info("HTTP server stopped successfully")
	}

	logger.Shutdown().Info("Application shutdown complete",
		"totalUptime", time.Since(start),
		"shutdownDuration", time.Since(shutdownStart))

	return nil
}

// setupGinMode configures the gin runtime mode.
func setupGinMode() {
	if os.Getenv("GIN_MODE") == "release" {
		gin.SetMode(gin.ReleaseMode)
	} else {
		log.Println("Running in development mode")
	}
}
