package ingest

import (
	"bytes"
	"context"
	"fmt"
	"os"
	"path"
	"path/filepath"

	"github.com/bankperf/salesdash/internal/domain"
	"github.com/bankperf/salesdash/internal/service"
	"github.com/bankperf/salesdash/internal/storage"
	"github.com/rs/zerolog/log"
)

// Service ties the Drive client to the achievement importer: it pulls sheets
// out of Drive and feeds them through the same CSV import path as manual
// uploads. When an archive store is attached, each successfully imported raw
// sheet is uploaded there under achievements/<filename>.
type Service struct {
	client       *DriveClient
	downloader   *Downloader
	achievements *service.AchievementService
	archive      storage.ObjectStorage
}

func NewService(client *DriveClient, achievements *service.AchievementService, archive storage.ObjectStorage) *Service {
	return &Service{
		client:       client,
		downloader:   NewDownloader(client),
		achievements: achievements,
		archive:      archive,
	}
}

// IngestFile downloads one Drive CSV and imports it.
func (s *Service) IngestFile(ctx context.Context, fileID, fileName string) (*domain.ImportResult, error) {
	var buf bytes.Buffer
	if err := s.client.DownloadFile(fileID, &buf); err != nil {
		return nil, fmt.Errorf("ingest %s: %w", fileName, err)
	}

	result, err := s.importAndArchive(ctx, fileName, buf.Bytes())
	if err != nil {
		return nil, fmt.Errorf("ingest %s: %w", fileName, err)
	}
	return result, nil
}

// IngestFolder downloads every CSV/XLSX sheet in the Drive folder into
// downloadDir and imports each one. Files that fail to import are logged
// and skipped so one bad sheet does not block the rest of the folder.
func (s *Service) IngestFolder(ctx context.Context, folderID, downloadDir string) ([]*domain.ImportResult, error) {
	paths, err := s.downloader.DownloadFolderCSV(ctx, DownloadOptions{
		FolderID:    folderID,
		DownloadDir: downloadDir,
	})
	if err != nil {
		return nil, err
	}

	results := make([]*domain.ImportResult, 0, len(paths))
	for _, p := range paths {
		data, err := os.ReadFile(p)
		if err != nil {
			log.Error().Err(err).Str("path", p).Msg("failed to read downloaded sheet")
			continue
		}
		result, err := s.importAndArchive(ctx, filepath.Base(p), data)
		if err != nil {
			log.Error().Err(err).Str("path", p).Msg("failed to import downloaded sheet")
			continue
		}
		results = append(results, result)
	}

	return results, nil
}

// importAndArchive runs one raw sheet through the importer and, on success,
// archives the untouched bytes. Archive failures are logged, not fatal: the
// rows are already persisted.
func (s *Service) importAndArchive(ctx context.Context, fileName string, data []byte) (*domain.ImportResult, error) {
	result, err := s.achievements.ImportCSV(ctx, bytes.NewReader(data), fileName)
	if err != nil {
		return nil, err
	}

	if s.archive != nil {
		key := path.Join("achievements", fileName)
		if err := s.archive.UploadObject(ctx, key, data); err != nil {
			log.Warn().Err(err).Str("key", key).Msg("failed to archive imported sheet")
		}
	}
	return result, nil
}
