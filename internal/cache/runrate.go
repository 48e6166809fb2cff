// internal/cache/runrate.go
package cache

import (
	"context"
	"crypto/sha1"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/bankperf/salesdash/internal/config"
	"github.com/bankperf/salesdash/internal/domain"
	"github.com/redis/go-redis/v9"
)

const (
	runRateKeyPrefix = "dashboard:runrate"
	scanBatchSize    = 100
)

// RunRateCache caches computed run-rate reports. Writes to targets or
// achievements invalidate the whole keyspace: reports are cheap to recompute
// and correctness beats cache granularity here.
type RunRateCache interface {
	GetReport(ctx context.Context, employeeCode, month, asOfDate string) (*domain.RunRateReport, bool, error)
	SetReport(ctx context.Context, report *domain.RunRateReport) error
	InvalidateAll(ctx context.Context) error
}

type redisRunRateCache struct {
	client *redis.Client
	ttl    time.Duration
}

type noopRunRateCache struct{}

// NewRunRateCache builds the redis-backed cache, or the noop cache when
// caching is disabled.
func NewRunRateCache(cfg config.CacheConfig) (RunRateCache, error) {
	if !cfg.Enabled {
		return &noopRunRateCache{}, nil
	}

	client, ttl, err := newRedisClient(cfg)
	if err != nil {
		return nil, err
	}

	return &redisRunRateCache{client: client, ttl: ttl}, nil
}

// NewNoopRunRateCache returns a cache that stores nothing.
func NewNoopRunRateCache() RunRateCache {
	return &noopRunRateCache{}
}

func (c *redisRunRateCache) GetReport(ctx context.Context, employeeCode, month, asOfDate string) (*domain.RunRateReport, bool, error) {
	key := buildRunRateKey(employeeCode, month, asOfDate)

	payload, err := c.client.Get(ctx, key).Bytes()
	if err == redis.Nil {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, fmt.Errorf("redis get failed: %w", err)
	}

	var report domain.RunRateReport
	if err := json.Unmarshal(payload, &report); err != nil {
		return nil, false, fmt.Errorf("decode run rate cache: %w", err)
	}

	return &report, true, nil
}

func (c *redisRunRateCache) SetReport(ctx context.Context, report *domain.RunRateReport) error {
	key := buildRunRateKey(report.EmployeeCode, report.Month, report.AsOfDate)
	payload, err := json.Marshal(report)
	if err != nil {
		return fmt.Errorf("encode run rate cache: %w", err)
	}

	if err := c.client.Set(ctx, key, payload, c.ttl).Err(); err != nil {
		return fmt.Errorf("redis set failed: %w", err)
	}

	return nil
}

func (c *redisRunRateCache) InvalidateAll(ctx context.Context) error {
	return deleteKeysWithPrefix(ctx, c.client, runRateKeyPrefix, scanBatchSize)
}

func (n *noopRunRateCache) GetReport(ctx context.Context, employeeCode, month, asOfDate string) (*domain.RunRateReport, bool, error) {
	return nil, false, nil
}

func (n *noopRunRateCache) SetReport(ctx context.Context, report *domain.RunRateReport) error {
	return nil
}

func (n *noopRunRateCache) InvalidateAll(ctx context.Context) error {
	return nil
}

func buildRunRateKey(employeeCode, month, asOfDate string) string {
	raw := strings.Join([]string{employeeCode, month, asOfDate}, "|")
	hash := sha1.Sum([]byte(raw))
	return fmt.Sprintf("%s:%s", runRateKeyPrefix, hex.EncodeToString(hash[:]))
}
