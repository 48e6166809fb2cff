// internal/service/achievement_service.go
package service

import (
	"context"
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/bankperf/salesdash/internal/cache"
	"github.com/bankperf/salesdash/internal/catalog"
	"github.com/bankperf/salesdash/internal/domain"
	"github.com/bankperf/salesdash/internal/repository"
	"github.com/rs/zerolog/log"
)

// AchievementService is the write boundary for daily achievement figures,
// both single submissions and bulk CSV imports. Derived total fields are
// recomputed here against the live catalog on every write; totals coming
// from clients or files are never trusted.
type AchievementService struct {
	repo    repository.AchievementRepository
	metrics repository.MetricRepository
	cache   cache.RunRateCache
}

func NewAchievementService(
	repo repository.AchievementRepository,
	metrics repository.MetricRepository,
	cacheImpl cache.RunRateCache,
) *AchievementService {
	if cacheImpl == nil {
		cacheImpl = cache.NewNoopRunRateCache()
	}
	return &AchievementService{repo: repo, metrics: metrics, cache: cacheImpl}
}

// ListRows returns the stored achievement rows for a month.
func (s *AchievementService) ListRows(ctx context.Context, month string) ([]domain.AchievementRow, error) {
	return s.repo.ListRows(ctx, month)
}

// Submit upserts one daily row. The row's Values may name any catalog
// metric; unknown fields are dropped and total fields are rebuilt.
func (s *AchievementService) Submit(ctx context.Context, row *domain.AchievementRow) error {
	if strings.TrimSpace(row.StaffName) == "" {
		return fmt.Errorf("achievement row needs a staff name")
	}
	if _, err := time.Parse("02/01/2006", strings.TrimSpace(row.Date)); err != nil {
		return fmt.Errorf("achievement date must be DD/MM/YYYY, got %q", row.Date)
	}

	cat, err := s.loadCatalog(ctx)
	if err != nil {
		return err
	}

	cleaned := make(map[string]float64, len(row.Values))
	for name, v := range row.Values {
		if _, ok := cat.Lookup(name); ok {
			cleaned[name] = v
		}
	}
	cat.RecomputeTotals(cleaned)
	row.Values = cleaned

	if err := s.repo.UpsertRow(ctx, row); err != nil {
		return err
	}
	if err := s.cache.InvalidateAll(ctx); err != nil {
		log.Warn().Err(err).Msg("achievements: cache invalidation failed")
	}
	return nil
}

// ImportCSV reads achievement rows from r and submits them. The header row
// must carry DATE and STAFF NAME; BRANCH NAME and one column per catalog
// metric are optional. Rows that fail to submit are skipped and counted
// rather than aborting the file: bulk uploads routinely carry a few bad
// lines.
func (s *AchievementService) ImportCSV(ctx context.Context, r io.Reader, sourceName string) (*domain.ImportResult, error) {
	reader := csv.NewReader(r)
	reader.FieldsPerRecord = -1

	header, err := reader.Read()
	if err != nil {
		return nil, fmt.Errorf("failed to read CSV header of %s: %w", sourceName, err)
	}

	colMap := make(map[string]int, len(header))
	for i, col := range header {
		colMap[strings.ToUpper(strings.TrimSpace(col))] = i
	}
	for _, col := range []string{"DATE", "STAFF NAME"} {
		if _, ok := colMap[col]; !ok {
			return nil, fmt.Errorf("%s: missing required column %s", sourceName, col)
		}
	}

	result := &domain.ImportResult{Filename: sourceName, ProcessedAt: time.Now()}
	for {
		record, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("failed to read CSV record in %s: %w", sourceName, err)
		}

		result.TotalRows++
		row := rowFromRecord(record, colMap)
		if err := s.Submit(ctx, row); err != nil {
			result.SkippedRows++
			log.Warn().Err(err).Str("file", sourceName).Str("staff", row.StaffName).
				Msg("skipping achievement row")
		}
	}

	return result, nil
}

// ImportFiles imports multiple uploaded files concurrently, one goroutine
// per file.
func (s *AchievementService) ImportFiles(ctx context.Context, files []*domain.UploadedFile) ([]*domain.ImportResult, error) {
	var (
		wg       sync.WaitGroup
		results  = make([]*domain.ImportResult, 0, len(files))
		resultCh = make(chan *domain.ImportResult, len(files))
		errCh    = make(chan error, len(files))
	)

	for _, file := range files {
		wg.Add(1)
		go func(f *domain.UploadedFile) {
			defer wg.Done()

			result, err := s.importFile(ctx, f)
			if err != nil {
				errCh <- fmt.Errorf("error importing file %s: %w", f.Filename, err)
				return
			}
			resultCh <- result
		}(file)
	}

	go func() {
		wg.Wait()
		close(resultCh)
		close(errCh)
	}()

	for result := range resultCh {
		results = append(results, result)
	}

	if len(errCh) > 0 {
		var errs []error
		for err := range errCh {
			errs = append(errs, err)
		}
		return nil, fmt.Errorf("errors importing files: %v", errs)
	}

	return results, nil
}

func (s *AchievementService) importFile(ctx context.Context, file *domain.UploadedFile) (*domain.ImportResult, error) {
	f, err := os.Open(file.Path)
	if err != nil {
		return nil, fmt.Errorf("failed to open %s: %w", file.Path, err)
	}
	defer f.Close()
	return s.ImportCSV(ctx, f, file.Filename)
}

func (s *AchievementService) loadCatalog(ctx context.Context) (*catalog.Catalog, error) {
	metrics, err := s.metrics.ListMetrics(ctx)
	if err != nil {
		return nil, fmt.Errorf("achievements: metric catalog: %w", err)
	}
	return catalog.New(metrics), nil
}

func rowFromRecord(record []string, colMap map[string]int) *domain.AchievementRow {
	field := func(name string) string {
		idx, ok := colMap[name]
		if !ok || idx >= len(record) {
			return ""
		}
		return strings.TrimSpace(record[idx])
	}

	row := &domain.AchievementRow{
		Date:       field("DATE"),
		StaffName:  field("STAFF NAME"),
		BranchName: field("BRANCH NAME"),
		Values:     make(map[string]float64),
	}
	for name, idx := range colMap {
		switch name {
		case "DATE", "STAFF NAME", "BRANCH NAME":
			continue
		}
		if idx >= len(record) {
			continue
		}
		raw := strings.ReplaceAll(strings.TrimSpace(record[idx]), ",", "")
		if raw == "" {
			continue
		}
		if v, err := strconv.ParseFloat(raw, 64); err == nil {
			row.Values[name] = v
		}
	}
	return row
}
