package pipeline

import (
	"context"
	"database/sql"
	"time"
)

// Repository handles database bookkeeping for import runs
type Repository struct {
	db *sql.DB
}

// NewRepository creates a new import-run repository
func NewRepository(db *sql.DB) *Repository {
	return &Repository{db: db}
}

// CreateRun creates a new import run record
func (r *Repository) CreateRun(ctx context.Context, run *ImportRun) error {
	query := `
		INSERT INTO import_runs (
			run_key, snapshot_date, status, total_files,
			processed_files, total_rows, started_at
		) VALUES ($1, $2, $3, $4, $5, $6, $7)
		RETURNING id
	`

	err := r.db.QueryRowContext(
		ctx, query,
		run.RunKey, run.SnapshotDate, run.Status, run.TotalFiles,
		run.ProcessedFiles, run.TotalRows, run.StartedAt,
	).Scan(&run.ID)

	return err
}

// UpdateRun updates an existing import run
func (r *Repository) UpdateRun(ctx context.Context, run *ImportRun) error {
	query := `
		UPDATE import_runs
		SET status = $1, processed_files = $2, total_rows = $3,
		    completed_at = $4, error_message = $5
		WHERE id = $6
	`

	_, err := r.db.ExecContext(
		ctx, query,
		run.Status, run.ProcessedFiles, run.TotalRows,
		run.CompletedAt, run.ErrorMessage, run.ID,
	)

	return err
}

// GetRun retrieves an import run by ID
func (r *Repository) GetRun(ctx context.Context, id int64) (*ImportRun, error) {
	query := `
		SELECT id, run_key, snapshot_date, status, total_files,
		       processed_files, total_rows, started_at, completed_at, error_message
		FROM import_runs
		WHERE id = $1
	`

	run := &ImportRun{}
	err := r.db.QueryRowContext(ctx, query, id).Scan(
		&run.ID, &run.RunKey, &run.SnapshotDate, &run.Status,
		&run.TotalFiles, &run.ProcessedFiles, &run.TotalRows,
		&run.StartedAt, &run.CompletedAt, &run.ErrorMessage,
	)

	if err != nil {
		return nil, err
	}

	return run, nil
}

// GetRunByDate retrieves an import run for a specific snapshot date
func (r *Repository) GetRunByDate(ctx context.Context, runKey string, date time.Time) (*ImportRun, error) {
	query := `
		SELECT id, run_key, snapshot_date, status, total_files,
		       processed_files, total_rows, started_at, completed_at, error_message
		FROM import_runs
		WHERE run_key = $1 AND snapshot_date = $2
	`

	run := &ImportRun{}
	err := r.db.QueryRowContext(ctx, query, runKey, date).Scan(
		&run.ID, &run.RunKey, &run.SnapshotDate, &run.Status,
		&run.TotalFiles, &run.ProcessedFiles, &run.TotalRows,
		&run.StartedAt, &run.CompletedAt, &run.ErrorMessage,
	)

	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}

	return run, nil
}

// CreateFileJob creates a new file job record
func (r *Repository) CreateFileJob(ctx context.Context, job *FileJob) error {
	query := `
		INSERT INTO import_file_jobs (
			run_id, file_path, status, error_message
		) VALUES ($1, $2, $3, $4)
		RETURNING id
	`

	err := r.db.QueryRowContext(
		ctx, query,
		job.RunID, job.FilePath, job.Status, job.ErrorMessage,
	).Scan(&job.ID)

	return err
}

// UpdateFileJob updates an existing file job
func (r *Repository) UpdateFileJob(ctx context.Context, job *FileJob) error {
	query := `
		UPDATE import_file_jobs
		SET status = $1, error_message = $2, processed_at = $3, retry_count = $4
		WHERE id = $5
	`

	_, err := r.db.ExecContext(
		ctx, query,
		job.Status, job.ErrorMessage, job.ProcessedAt, job.RetryCount, job.ID,
	)

	return err
}

// GetFileJobsByRunID retrieves all file jobs for an import run
func (r *Repository) GetFileJobsByRunID(ctx context.Context, runID int64) ([]*FileJob, error) {
	query := `
		SELECT id, run_id, file_path, status,
		       error_message, processed_at, retry_count
		FROM import_file_jobs
		WHERE run_id = $1
		ORDER BY id
	`

	rows, err := r.db.QueryContext(ctx, query, runID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var jobs []*FileJob
	for rows.Next() {
		job := &FileJob{}
		err := rows.Scan(
			&job.ID, &job.RunID, &job.FilePath,
			&job.Status, &job.ErrorMessage, &job.ProcessedAt, &job.RetryCount,
		)
		if err != nil {
			return nil, err
		}
		jobs = append(jobs, job)
	}

	return jobs, rows.Err()
}

// GetFailedFileJobs retrieves failed file jobs still eligible for retry
func (r *Repository) GetFailedFileJobs(ctx context.Context, runKey string, maxRetries int) ([]*FileJob, error) {
	query := `
		SELECT fj.id, fj.run_id, fj.file_path, fj.status,
		       fj.error_message, fj.processed_at, fj.retry_count
		FROM import_file_jobs fj
		JOIN import_runs ir ON fj.run_id = ir.id
		WHERE ir.run_key = $1
		  AND fj.status = $2
		  AND fj.retry_count < $3
		ORDER BY fj.id
	`

	rows, err := r.db.QueryContext(ctx, query, runKey, FileStatusFailed, maxRetries)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var jobs []*FileJob
	for rows.Next() {
		job := &FileJob{}
		err := rows.Scan(
			&job.ID, &job.RunID, &job.FilePath,
			&job.Status, &job.ErrorMessage, &job.ProcessedAt, &job.RetryCount,
		)
		if err != nil {
			return nil, err
		}
		jobs = append(jobs, job)
	}

	return jobs, rows.Err()
}

// GetStats retrieves aggregate counters for a run key since a point in time
func (r *Repository) GetStats(ctx context.Context, runKey string, since time.Time) (*Metrics, error) {
	query := `
		SELECT
			COUNT(*) as files_processed,
			COALESCE(SUM(total_rows), 0) as rows_processed,
			COUNT(CASE WHEN status = $2 THEN 1 END) as error_count,
			MAX(completed_at) as last_processed_at
		FROM import_runs
		WHERE run_key = $1
		  AND started_at >= $3
		  AND status IN ($4, $2)
	`

	metrics := &Metrics{}
	err := r.db.QueryRowContext(
		ctx, query,
		runKey, StatusFailed, since, StatusCompleted,
	).Scan(
		&metrics.FilesProcessed,
		&metrics.RowsProcessed,
		&metrics.ErrorCount,
		&metrics.LastProcessedAt,
	)

	if err == sql.ErrNoRows {
		return &Metrics{}, nil
	}

	return metrics, err
}

// IncrementProcessedFiles atomically increments the processed file count
func (r *Repository) IncrementProcessedFiles(ctx context.Context, runID int64) error {
	query := `
		UPDATE import_runs
		SET processed_files = processed_files + 1
		WHERE id = $1
	`

	_, err := r.db.ExecContext(ctx, query, runID)
	return err
}

// AddRowCount atomically adds to the total row count
func (r *Repository) AddRowCount(ctx context.Context, runID int64, count int) error {
	query := `
		UPDATE import_runs
		SET total_rows = total_rows + $1
		WHERE id = $2
	`

	_, err := r.db.ExecContext(ctx, query, count, runID)
	return err
}
