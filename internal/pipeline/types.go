package pipeline

import (
	"context"
	"io"
	"time"

	"github.com/bankperf/salesdash/internal/domain"
)

// Importer consumes one CSV stream of achievement rows. It is satisfied by
// service.AchievementService.
type Importer interface {
	ImportCSV(ctx context.Context, r io.Reader, sourceName string) (*domain.ImportResult, error)
}

// Config holds tuning for a batch import run.
type Config struct {
	WorkerCount   int           // Number of concurrent file workers
	RetryAttempts int           // Number of retries on failure
	RetryBackoff  time.Duration // Backoff duration between retries
}

// DefaultConfig returns sensible defaults
func DefaultConfig() Config {
	return Config{
		WorkerCount:   4,
		RetryAttempts: 3,
		RetryBackoff:  30 * time.Second,
	}
}

// RunStatus represents the current state of an import run
type RunStatus string

const (
	StatusPending    RunStatus = "pending"
	StatusProcessing RunStatus = "processing"
	StatusCompleted  RunStatus = "completed"
	StatusFailed     RunStatus = "failed"
)

// FileJobStatus represents the state of a single file import job
type FileJobStatus string

const (
	FileStatusQueued     FileJobStatus = "queued"
	FileStatusProcessing FileJobStatus = "processing"
	FileStatusCompleted  FileJobStatus = "completed"
	FileStatusFailed     FileJobStatus = "failed"
)

// ImportRun tracks one batch import of achievement sheets for a snapshot
// date.
type ImportRun struct {
	ID             int64
	RunKey         string
	SnapshotDate   time.Time
	Status         RunStatus
	TotalFiles     int
	ProcessedFiles int
	TotalRows      int
	StartedAt      time.Time
	CompletedAt    *time.Time
	ErrorMessage   string
}

// FileJob tracks the import of a single file within a run
type FileJob struct {
	ID           int64
	RunID        int64
	FilePath     string
	Status       FileJobStatus
	ErrorMessage string
	ProcessedAt  *time.Time
	RetryCount   int
}

// Metrics holds aggregate counters for monitoring import health
type Metrics struct {
	FilesProcessed  int64
	RowsProcessed   int64
	ErrorCount      int64
	LastProcessedAt time.Time
}
