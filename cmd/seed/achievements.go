package main

import (
	"fmt"
	"io/fs"
	"log"
	"path/filepath"
	"sort"
	"strings"

	"github.com/urfave/cli/v2"

	"github.com/bankperf/salesdash/internal/pipeline"
	"github.com/bankperf/salesdash/internal/repository/postgres"
	"github.com/bankperf/salesdash/internal/service"
)

// seedAchievements imports every achievement CSV under the data directory,
// grouped into runs by the snapshot date in each filename.
func seedAchievements(c *cli.Context) error {
	db, err := dbFromContext(c)
	if err != nil {
		return err
	}

	dataDir := c.String("achievements-dir")
	if dataDir == "" {
		dataDir = c.String("data-dir")
	}

	ctx := c.Context

	pgDB := postgres.NewDBFromConn(db, "pgx")
	if err := pgDB.InitSchema(ctx); err != nil {
		return fmt.Errorf("failed to initialize schema: %w", err)
	}

	files, err := collectCSVFiles(dataDir)
	if err != nil {
		return err
	}
	if len(files) == 0 {
		log.Printf("No achievement CSV files found under %s\n", dataDir)
		return nil
	}

	importer := service.NewAchievementService(
		postgres.NewAchievementRepository(pgDB),
		postgres.NewMetricRepository(pgDB),
		nil,
	)

	cfg := pipeline.DefaultConfig()
	if workers := c.Int("workers"); workers > 0 {
		cfg.WorkerCount = workers
	}

	orchestrator := pipeline.NewOrchestrator(db, cfg)
	if err := orchestrator.Run(ctx, "achievements", importer, files); err != nil {
		return fmt.Errorf("achievement import failed: %w", err)
	}

	log.Printf("Imported %d achievement files\n", len(files))
	return nil
}

func collectCSVFiles(dir string) ([]string, error) {
	var files []string
	err := filepath.WalkDir(dir, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() {
			return nil
		}
		if strings.EqualFold(filepath.Ext(path), ".csv") {
			files = append(files, path)
		}
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("failed to walk %s: %w", dir, err)
	}
	sort.Strings(files)
	return files, nil
}
