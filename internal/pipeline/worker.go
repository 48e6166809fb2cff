package pipeline

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/rs/zerolog/log"
)

// Worker imports a batch of local achievement sheets for one snapshot date
// and records progress in import_runs / import_file_jobs.
type Worker struct {
	runKey   string
	importer Importer
	config   Config
	repo     *Repository
}

// NewWorker creates a new import worker
func NewWorker(runKey string, importer Importer, config Config, db *sql.DB) *Worker {
	return &Worker{
		runKey:   runKey,
		importer: importer,
		config:   config,
		repo:     NewRepository(db),
	}
}

// ProcessBatch imports a batch of files for a specific snapshot date
func (w *Worker) ProcessBatch(ctx context.Context, date time.Time, files []string) error {
	log.Info().
		Str("run", w.runKey).
		Str("date", date.Format("2006-01-02")).
		Int("files", len(files)).
		Msg("starting batch import")

	run, err := w.getOrCreateRun(ctx, date, len(files))
	if err != nil {
		return fmt.Errorf("failed to create import run: %w", err)
	}

	// Create file jobs
	fileJobs := make([]*FileJob, len(files))
	for i, file := range files {
		job := &FileJob{
			RunID:    run.ID,
			FilePath: file,
			Status:   FileStatusQueued,
		}
		if err := w.repo.CreateFileJob(ctx, job); err != nil {
			return fmt.Errorf("failed to create file job: %w", err)
		}
		fileJobs[i] = job
	}

	run.Status = StatusProcessing
	if err := w.repo.UpdateRun(ctx, run); err != nil {
		return fmt.Errorf("failed to update import run: %w", err)
	}

	if err := w.processFilesParallel(ctx, run, fileJobs); err != nil {
		run.Status = StatusFailed
		run.ErrorMessage = err.Error()
		now := time.Now()
		run.CompletedAt = &now
		w.repo.UpdateRun(ctx, run)
		return err
	}

	run.Status = StatusCompleted
	now := time.Now()
	run.CompletedAt = &now
	if err := w.repo.UpdateRun(ctx, run); err != nil {
		return fmt.Errorf("failed to complete import run: %w", err)
	}

	log.Info().
		Str("run", w.runKey).
		Int("processed", run.ProcessedFiles).
		Int("rows", run.TotalRows).
		Msg("batch import completed")

	return nil
}

// processFilesParallel imports files using a worker pool
func (w *Worker) processFilesParallel(ctx context.Context, run *ImportRun, jobs []*FileJob) error {
	workerCount := w.config.WorkerCount
	if workerCount < 1 {
		workerCount = 1
	}

	jobChan := make(chan *FileJob, len(jobs))
	errChan := make(chan error, workerCount)
	var wg sync.WaitGroup

	for i := 0; i < workerCount; i++ {
		wg.Add(1)
		go func(workerID int) {
			defer wg.Done()
			for job := range jobChan {
				if err := w.processFile(ctx, run, job); err != nil {
					log.Error().Err(err).
						Str("run", w.runKey).
						Int("worker", workerID).
						Str("file", job.FilePath).
						Msg("file import failed")
					select {
					case errChan <- err:
					default:
					}
				}
			}
		}(i)
	}

	for _, job := range jobs {
		select {
		case <-ctx.Done():
			close(jobChan)
			return ctx.Err()
		case jobChan <- job:
		}
	}
	close(jobChan)

	wg.Wait()
	close(errChan)

	if err := <-errChan; err != nil {
		return err
	}

	return nil
}

// processFile imports a single file
func (w *Worker) processFile(ctx context.Context, run *ImportRun, job *FileJob) error {
	startTime := time.Now()

	job.Status = FileStatusProcessing
	if err := w.repo.UpdateFileJob(ctx, job); err != nil {
		return err
	}

	f, err := os.Open(job.FilePath)
	if err != nil {
		return w.markJobFailed(ctx, job, fmt.Errorf("open failed: %w", err))
	}

	result, err := w.importer.ImportCSV(ctx, f, filepath.Base(job.FilePath))
	f.Close()
	if err != nil {
		return w.markJobFailed(ctx, job, fmt.Errorf("import failed: %w", err))
	}

	job.Status = FileStatusCompleted
	now := time.Now()
	job.ProcessedAt = &now
	if err := w.repo.UpdateFileJob(ctx, job); err != nil {
		return err
	}

	if err := w.repo.IncrementProcessedFiles(ctx, run.ID); err != nil {
		log.Warn().Err(err).Str("run", w.runKey).Msg("failed to increment processed files")
	}
	imported := result.TotalRows - result.SkippedRows
	if err := w.repo.AddRowCount(ctx, run.ID, imported); err != nil {
		log.Warn().Err(err).Str("run", w.runKey).Msg("failed to add row count")
	}

	log.Info().
		Str("run", w.runKey).
		Str("file", job.FilePath).
		Dur("took", time.Since(startTime)).
		Int("rows", imported).
		Int("skipped", result.SkippedRows).
		Msg("file imported")

	return nil
}

// markJobFailed marks a job as failed and bumps its retry count
func (w *Worker) markJobFailed(ctx context.Context, job *FileJob, err error) error {
	job.Status = FileStatusFailed
	job.ErrorMessage = err.Error()
	job.RetryCount++

	if updErr := w.repo.UpdateFileJob(ctx, job); updErr != nil {
		log.Error().Err(updErr).Str("run", w.runKey).Msg("failed to update job status")
	}

	if job.RetryCount < w.config.RetryAttempts {
		log.Info().
			Str("run", w.runKey).
			Str("file", job.FilePath).
			Int("attempt", job.RetryCount).
			Int("max", w.config.RetryAttempts).
			Msg("job eligible for retry")
	}

	return err
}

// getOrCreateRun gets or creates an import run for the snapshot date
func (w *Worker) getOrCreateRun(ctx context.Context, date time.Time, totalFiles int) (*ImportRun, error) {
	run, err := w.repo.GetRunByDate(ctx, w.runKey, date)
	if err != nil {
		return nil, err
	}

	if run != nil {
		if run.TotalFiles != totalFiles {
			run.TotalFiles = totalFiles
			if err := w.repo.UpdateRun(ctx, run); err != nil {
				return nil, err
			}
		}
		return run, nil
	}

	run = &ImportRun{
		RunKey:       w.runKey,
		SnapshotDate: date,
		Status:       StatusPending,
		TotalFiles:   totalFiles,
		StartedAt:    time.Now(),
	}

	if err := w.repo.CreateRun(ctx, run); err != nil {
		return nil, err
	}

	return run, nil
}

// RetryFailed re-imports all failed jobs for this run key
func (w *Worker) RetryFailed(ctx context.Context) error {
	jobs, err := w.repo.GetFailedFileJobs(ctx, w.runKey, w.config.RetryAttempts)
	if err != nil {
		return fmt.Errorf("failed to get failed jobs: %w", err)
	}

	if len(jobs) == 0 {
		log.Info().Str("run", w.runKey).Msg("no failed jobs to retry")
		return nil
	}

	log.Info().Str("run", w.runKey).Int("jobs", len(jobs)).Msg("retrying failed jobs")

	jobsByRun := make(map[int64][]*FileJob)
	for _, job := range jobs {
		jobsByRun[job.RunID] = append(jobsByRun[job.RunID], job)
	}

	for runID, runJobs := range jobsByRun {
		run, err := w.repo.GetRun(ctx, runID)
		if err != nil {
			log.Error().Err(err).Str("run", w.runKey).Int64("run_id", runID).Msg("failed to load run")
			continue
		}

		if err := w.processFilesParallel(ctx, run, runJobs); err != nil {
			log.Error().Err(err).Str("run", w.runKey).Int64("run_id", runID).Msg("retry batch failed")
			continue
		}

		if run.ProcessedFiles >= run.TotalFiles {
			run.Status = StatusCompleted
			now := time.Now()
			run.CompletedAt = &now
			if err := w.repo.UpdateRun(ctx, run); err != nil {
				log.Error().Err(err).Str("run", w.runKey).Int64("run_id", runID).Msg("failed to close run")
			}
		}
	}

	return nil
}
