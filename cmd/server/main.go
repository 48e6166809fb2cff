// cmd/server/main.go
package main

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/bankperf/salesdash/internal/api"
	"github.com/bankperf/salesdash/internal/cache"
	"github.com/bankperf/salesdash/internal/config"
	"github.com/bankperf/salesdash/internal/repository/postgres"
	"github.com/bankperf/salesdash/internal/service"
	"github.com/bankperf/salesdash/pkg/logger"
)

func main() {
	// Load configuration
	cfg := config.Load()

	// Initialize logger
	logger.SetLevel(cfg.Server.Mode)
	if cfg.Server.Mode == "debug" {
		gin.SetMode(gin.DebugMode)
	} else {
		gin.SetMode(gin.ReleaseMode)
	}

	// Initialize database
	db, err := postgres.NewDB(&cfg.Database)
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}
	defer db.Close()

	if err := db.InitSchema(context.Background()); err != nil {
		log.Fatalf("Failed to initialize schema: %v", err)
	}

	// Initialize cache
	runRateCache, err := cache.NewRunRateCache(cfg.Cache)
	if err != nil {
		logger.Log.Warn().Err(err).Msg("cache unavailable, continuing without it")
		runRateCache = cache.NewNoopRunRateCache()
	}

	// Initialize repositories
	staffRepo := postgres.NewStaffRepository(db)
	targetRepo := postgres.NewTargetRepository(db)
	metricRepo := postgres.NewMetricRepository(db)
	achievementRepo := postgres.NewAchievementRepository(db)

	// Initialize services
	services := &api.Services{
		RunRateService:     service.NewRunRateService(staffRepo, targetRepo, metricRepo, achievementRepo, runRateCache),
		StaffService:       service.NewStaffService(staffRepo),
		TargetService:      service.NewTargetService(targetRepo, runRateCache),
		MetricService:      service.NewMetricService(metricRepo, runRateCache),
		AchievementService: service.NewAchievementService(achievementRepo, metricRepo, runRateCache),
	}

	// Initialize HTTP server
	router := api.NewRouter(services, cfg.Server.AllowedOrigins)
	srv := &http.Server{
		Addr:         ":" + cfg.Server.Port,
		Handler:      router,
		ReadTimeout:  time.Duration(cfg.Server.ReadTimeout) * time.Second,
		WriteTimeout: time.Duration(cfg.Server.WriteTimeout) * time.Second,
	}

	// Start server in a goroutine
	go func() {
		logger.Log.Info().Str("port", cfg.Server.Port).Msg("Starting server")
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Log.Fatal().Err(err).Msg("Failed to start server")
		}
	}()

	// Wait for interrupt signal to gracefully shut down the server
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	logger.Log.Info().Msg("Shutting down server...")

	// The context is used to inform the server it has 5 seconds to finish
	// the request it is currently handling
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		logger.Log.Fatal().Err(err).Msg("Server forced to shutdown")
	}

	logger.Log.Info().Msg("Server exiting")
}
