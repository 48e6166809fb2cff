package main

import (
	"context"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/urfave/cli/v2"

	"github.com/bankperf/salesdash/internal/config"
	"github.com/bankperf/salesdash/internal/storage"
)

func archiveFlags() []cli.Flag {
	return []cli.Flag{
		&cli.StringFlag{
			Name:    "archive-endpoint",
			Usage:   "S3-compatible endpoint of the archive bucket",
			EnvVars: []string{"ARCHIVE_ENDPOINT"},
		},
		&cli.StringFlag{
			Name:    "archive-access-key",
			Usage:   "Archive access key",
			EnvVars: []string{"ARCHIVE_ACCESS_KEY"},
		},
		&cli.StringFlag{
			Name:    "archive-secret-key",
			Usage:   "Archive secret key",
			EnvVars: []string{"ARCHIVE_SECRET_KEY"},
		},
		&cli.StringFlag{
			Name:    "archive-bucket",
			Usage:   "Archive bucket name",
			EnvVars: []string{"ARCHIVE_BUCKET"},
		},
		&cli.StringFlag{
			Name:    "archive-region",
			Usage:   "Archive region",
			Value:   "us-east-1",
			EnvVars: []string{"ARCHIVE_REGION"},
		},
		&cli.BoolFlag{
			Name:    "archive-use-ssl",
			Usage:   "Use SSL when talking to the archive",
			Value:   true,
			EnvVars: []string{"ARCHIVE_USE_SSL"},
		},
		&cli.StringFlag{
			Name:    "download-dir",
			Usage:   "Base directory for downloaded seed data",
			Value:   "./data/seeds",
			EnvVars: []string{"SEED_DOWNLOAD_DIR"},
		},
		&cli.StringFlag{
			Name:  "prefix",
			Usage: "Object key prefix to download (default: everything)",
		},
	}
}

type archiveDownloader struct {
	client  storage.ObjectStorage
	baseDir string
}

func newArchiveDownloader(c *cli.Context) (*archiveDownloader, error) {
	// CLI flags win; unset ones fall back to the shared config.
	archiveCfg := config.Load().Archive
	cfg := storage.ArchiveConfig{
		Endpoint:  firstNonEmpty(c.String("archive-endpoint"), archiveCfg.Endpoint),
		AccessKey: firstNonEmpty(c.String("archive-access-key"), archiveCfg.AccessKey),
		SecretKey: firstNonEmpty(c.String("archive-secret-key"), archiveCfg.SecretKey),
		Bucket:    firstNonEmpty(c.String("archive-bucket"), archiveCfg.Bucket),
		Region:    firstNonEmpty(c.String("archive-region"), archiveCfg.Region),
		UseSSL:    c.Bool("archive-use-ssl"),
	}

	client, err := storage.NewArchiveClient(cfg)
	if err != nil {
		return nil, err
	}

	baseDir := c.String("download-dir")
	if baseDir == "" {
		baseDir = "./data/seeds"
	}
	if err := os.MkdirAll(baseDir, 0o755); err != nil {
		return nil, fmt.Errorf("failed to ensure download dir %s: %w", baseDir, err)
	}

	return &archiveDownloader{
		client:  client,
		baseDir: baseDir,
	}, nil
}

// downloadSeeds pulls every CSV object under the prefix from the archive
// bucket, preserving the key layout under the local download dir.
func downloadSeeds(c *cli.Context) error {
	downloader, err := newArchiveDownloader(c)
	if err != nil {
		return err
	}

	paths, err := downloader.downloadObjects(c.Context, c.String("prefix"))
	if err != nil {
		return err
	}

	for _, p := range paths {
		log.Printf("downloaded %s\n", p)
	}
	log.Printf("Downloaded %d objects into %s\n", len(paths), downloader.baseDir)
	return nil
}

func (d *archiveDownloader) downloadObjects(ctx context.Context, prefix string) ([]string, error) {
	listPrefix := strings.TrimSpace(prefix)
	objects, err := d.client.ListObjects(ctx, listPrefix)
	if err != nil {
		return nil, fmt.Errorf("failed to list archive objects for prefix %s: %w", listPrefix, err)
	}

	var keys []string
	for _, obj := range objects {
		if strings.HasSuffix(strings.ToLower(obj.Key), ".csv") {
			keys = append(keys, obj.Key)
		}
	}
	if len(keys) == 0 {
		return nil, fmt.Errorf("no CSV files found for prefix %s", listPrefix)
	}

	localPaths := make([]string, 0, len(keys))
	for _, key := range keys {
		localPath := filepath.Join(d.baseDir, objectRelativePath(listPrefix, key))
		if err := os.MkdirAll(filepath.Dir(localPath), 0o755); err != nil {
			return nil, fmt.Errorf("failed to prepare directory for %s: %w", localPath, err)
		}
		if err := d.client.DownloadObject(ctx, key, localPath); err != nil {
			return nil, err
		}
		localPaths = append(localPaths, localPath)
	}

	sort.Strings(localPaths)
	return localPaths, nil
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if strings.TrimSpace(v) != "" {
			return v
		}
	}
	return ""
}

func objectRelativePath(prefix, key string) string {
	if prefix == "" {
		return key
	}
	prefixTrimmed := strings.TrimSuffix(strings.TrimSpace(prefix), "/")
	rel := strings.TrimPrefix(key, prefixTrimmed+"/")
	if rel == "" {
		return filepath.Base(key)
	}
	return rel
}
