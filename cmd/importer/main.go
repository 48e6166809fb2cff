// cmd/importer/main.go
package main

import (
	"context"
	"fmt"
	"log"
	"net/http"

	"github.com/gorilla/mux"
	"github.com/joho/godotenv"

	"github.com/bankperf/salesdash/internal/cache"
	"github.com/bankperf/salesdash/internal/config"
	"github.com/bankperf/salesdash/internal/ingest"
	"github.com/bankperf/salesdash/internal/repository/postgres"
	"github.com/bankperf/salesdash/internal/service"
	"github.com/bankperf/salesdash/internal/storage"
)

func main() {
	// Load environment variables from .env file if it exists
	_ = godotenv.Load()

	// Load configuration
	cfg := config.Load()

	// Initialize Google Drive client
	driveClient, err := ingest.NewDriveClient(context.Background(), cfg.Drive.CredentialsJSON)
	if err != nil {
		log.Fatalf("Failed to initialize Google Drive client: %v", err)
	}

	// Initialize database
	db, err := postgres.NewDB(&cfg.Database)
	if err != nil {
		log.Fatalf("Failed to initialize database: %v", err)
	}

	if err := db.InitSchema(context.Background()); err != nil {
		log.Fatalf("Failed to initialize schema: %v", err)
	}

	// Initialize cache
	runRateCache, err := cache.NewRunRateCache(cfg.Cache)
	if err != nil {
		runRateCache = cache.NewNoopRunRateCache()
	}

	// Initialize the achievement importer
	achievementService := service.NewAchievementService(
		postgres.NewAchievementRepository(db),
		postgres.NewMetricRepository(db),
		runRateCache,
	)
	// Archive imported sheets to the S3-compatible bucket when configured
	var archive storage.ObjectStorage
	if cfg.Archive.Enabled {
		client, err := storage.NewArchiveClient(storage.ArchiveConfig{
			Endpoint:  cfg.Archive.Endpoint,
			AccessKey: cfg.Archive.AccessKey,
			SecretKey: cfg.Archive.SecretKey,
			Bucket:    cfg.Archive.Bucket,
			Region:    cfg.Archive.Region,
			UseSSL:    cfg.Archive.UseSSL,
		})
		if err != nil {
			log.Fatalf("Failed to initialize archive client: %v", err)
		}
		archive = client
	}

	ingestService := ingest.NewService(driveClient, achievementService, archive)

	// Register routes
	r := mux.NewRouter()
	ingestHandler := ingest.NewHandler(driveClient, ingestService, cfg.Drive)
	ingestHandler.RegisterRoutes(r)

	// Health check endpoint
	r.HandleFunc("/health", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		w.Write([]byte("OK"))
	}).Methods("GET")

	// Start server
	addr := fmt.Sprintf(":%s", cfg.Server.Port)
	log.Printf("Importer starting on %s\n", addr)
	log.Fatal(http.ListenAndServe(addr, r))
}
