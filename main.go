package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/devsparksuporte-web/PotencialCameras/config"
	"github.com/devsparksuporte-web/PotencialCameras/database"
	"github.com/devsparksuporte-web/PotencialCameras/handlers"
	"github.com/devsparksuporte-web/PotencialCameras/logger"
	"github.com/devsparksuporte-web/PotencialCameras/services"

	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
)

func main() {
	// Load environment variables
	envErr := godotenv.Load()

	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		logger.Fatal().Err(err).Msg("Failed to load configuration")
	}

	if err := logger.Init(logger.Config{
		Level:  cfg.Log.Level,
		Format: cfg.Log.Format,
		Output: cfg.Log.Output,
	}); err != nil {
		logger.Fatal().Err(err).Msg("Failed to initialize logger")
	}
	if envErr != nil {
		logger.Info().Msg("No .env file found, using environment variables")
	}

	// Initialize database
	db, err := database.Initialize(cfg.Database)
	if err != nil {
		logger.Fatal().Err(err).Str("driver", cfg.Database.Driver).Msg("Failed to initialize database")
	}

	cameraService := services.NewCameraService(database.NewGormGateway(db))

	// Initialize handlers
	cameraHandler := handlers.NewCameraHandler(cameraService)
	dashboardHandler := handlers.NewDashboardHandler(cameraService)

	if cfg.Server.Release {
		gin.SetMode(gin.ReleaseMode)
	}
	router := handlers.NewRouter(cfg.Server, cameraHandler, dashboardHandler)

	srv := &http.Server{
		Addr:         ":" + cfg.Server.Port,
		Handler:      router,
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
	}

	go func() {
		logger.Info().Str("port", cfg.Server.Port).Msg("Server starting")
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Fatal().Err(err).Msg("Failed to start server")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, os.Interrupt, syscall.SIGTERM)
	<-quit

	logger.Info().Msg("Shutting down server")

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		logger.Error().Err(err).Msg("Server shutdown failed")
	}

	if sqlDB, err := db.DB(); err == nil {
		_ = sqlDB.Close()
	}

	logger.Info().Msg("Server stopped")
}
