package pipeline

import (
	"context"
	"database/sql"
	"fmt"
	"path/filepath"
	"regexp"
	"time"
)

// Orchestrator coordinates importing a set of local achievement sheets
// grouped by the snapshot date embedded in each filename.
type Orchestrator struct {
	db    *sql.DB
	cfg   Config
	makeW func(runKey string, importer Importer, cfg Config, db *sql.DB) *Worker
}

// NewOrchestrator creates a new Orchestrator.
func NewOrchestrator(db *sql.DB, cfg Config) *Orchestrator {
	return &Orchestrator{
		db:    db,
		cfg:   cfg,
		makeW: NewWorker,
	}
}

// Filenames carry the snapshot date as either DD-MM-YYYY or YYYY-MM-DD.
var (
	displayDatePattern = regexp.MustCompile(`(\d{2})-(\d{2})-(\d{4})`)
	isoDatePattern     = regexp.MustCompile(`(\d{4})-(\d{2})-(\d{2})`)
)

// SnapshotDateFromFilename extracts the snapshot date embedded in an
// achievement sheet's filename. Files without a recognizable date fall
// back to today so a stray sheet still lands in a run.
func SnapshotDateFromFilename(name string, now time.Time) time.Time {
	base := filepath.Base(name)
	if m := isoDatePattern.FindStringSubmatch(base); m != nil {
		if t, err := time.Parse("2006-01-02", fmt.Sprintf("%s-%s-%s", m[1], m[2], m[3])); err == nil {
			return t
		}
	}
	if m := displayDatePattern.FindStringSubmatch(base); m != nil {
		if t, err := time.Parse("02-01-2006", fmt.Sprintf("%s-%s-%s", m[1], m[2], m[3])); err == nil {
			return t
		}
	}
	return now.Truncate(24 * time.Hour)
}

// Run groups the provided files by snapshot date and runs a Worker batch
// for each date.
func (o *Orchestrator) Run(ctx context.Context, runKey string, importer Importer, files []string) error {
	if len(files) == 0 {
		return nil
	}

	now := time.Now()
	byDate := make(map[time.Time][]string)
	for _, f := range files {
		date := SnapshotDateFromFilename(f, now).Truncate(24 * time.Hour)
		byDate[date] = append(byDate[date], f)
	}

	worker := o.makeW(runKey, importer, o.cfg, o.db)

	for date, batch := range byDate {
		if err := worker.ProcessBatch(ctx, date, batch); err != nil {
			return fmt.Errorf("failed to process batch for %s: %w", date.Format("2006-01-02"), err)
		}
	}

	return nil
}
