// backend-go/internal/cache/analysis_cache.go
package cache

import (
	"context"
	"crypto/sha1"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/jacengineering/inventario/backend-go/internal/config"
	"github.com/jacengineering/inventario/backend-go/internal/domain"
)

const (
	analysisSummaryKeyPrefix = "inventario:summary"
	analysisScanBatchSize    = 100
)

// AnalysisCache memoizes summary metrics for the configured TTL window. The
// core itself never caches; this is the caller-side memoization the analysis
// contract leaves to the service layer.
type AnalysisCache interface {
	GetSummary(ctx context.Context, filter domain.AnalysisFilter) (domain.SummaryMetrics, bool, error)
	SetSummary(ctx context.Context, filter domain.AnalysisFilter, metrics domain.SummaryMetrics) error
	InvalidateAll(ctx context.Context) error
}

type redisAnalysisCache struct {
	client *redis.Client
	ttl    time.Duration
}

type noopAnalysisCache struct{}

// NewAnalysisCache returns a redis-backed cache when enabled, a noop cache
// otherwise.
func NewAnalysisCache(cfg config.CacheConfig) (AnalysisCache, error) {
	if !cfg.Enabled {
		return &noopAnalysisCache{}, nil
	}

	client, ttl, err := newRedisClient(cfg)
	if err != nil {
		return nil, err
	}

	return &redisAnalysisCache{client: client, ttl: ttl}, nil
}

// NewNoopAnalysisCache returns a cache that never hits.
func NewNoopAnalysisCache() AnalysisCache {
	return &noopAnalysisCache{}
}

func (c *redisAnalysisCache) GetSummary(ctx context.Context, filter domain.AnalysisFilter) (domain.SummaryMetrics, bool, error) {
	var metrics domain.SummaryMetrics

	payload, err := c.client.Get(ctx, buildSummaryKey(filter)).Bytes()
	if err == redis.Nil {
		return metrics, false, nil
	}
	if err != nil {
		return metrics, false, fmt.Errorf("redis get failed: %w", err)
	}

	if err := json.Unmarshal(payload, &metrics); err != nil {
		return metrics, false, fmt.Errorf("decode summary cache: %w", err)
	}

	return metrics, true, nil
}

func (c *redisAnalysisCache) SetSummary(ctx context.Context, filter domain.AnalysisFilter, metrics domain.SummaryMetrics) error {
	payload, err := json.Marshal(metrics)
	if err != nil {
		return fmt.Errorf("encode summary cache: %w", err)
	}

	if err := c.client.Set(ctx, buildSummaryKey(filter), payload, c.ttl).Err(); err != nil {
		return fmt.Errorf("redis set failed: %w", err)
	}
	return nil
}

func (c *redisAnalysisCache) InvalidateAll(ctx context.Context) error {
	return deleteKeysWithPrefix(ctx, c.client, analysisSummaryKeyPrefix, analysisScanBatchSize)
}

func (n *noopAnalysisCache) GetSummary(ctx context.Context, filter domain.AnalysisFilter) (domain.SummaryMetrics, bool, error) {
	return domain.SummaryMetrics{}, false, nil
}

func (n *noopAnalysisCache) SetSummary(ctx context.Context, filter domain.AnalysisFilter, metrics domain.SummaryMetrics) error {
	return nil
}

func (n *noopAnalysisCache) InvalidateAll(ctx context.Context) error {
	return nil
}

func buildSummaryKey(filter domain.AnalysisFilter) string {
	return fmt.Sprintf("%s:%s", analysisSummaryKeyPrefix, filterHash(filter))
}

// filterHash normalizes filter fields into a stable key so equivalent
// filters share a cache entry. Pagination is excluded: the summary covers
// the whole filtered set.
func filterHash(filter domain.AnalysisFilter) string {
	parts := []string{}

	if filter.Status != "" {
		parts = append(parts, "estado="+strings.ToUpper(strings.TrimSpace(filter.Status)))
	}
	if filter.Center != "" {
		parts = append(parts, "centro="+strings.ToUpper(strings.TrimSpace(filter.Center)))
	}
	if filter.Criticality != "" {
		parts = append(parts, "criticidad="+strings.ToUpper(strings.TrimSpace(filter.Criticality)))
	}
	if filter.Search != "" {
		parts = append(parts, "buscar="+strings.ToLower(strings.TrimSpace(filter.Search)))
	}

	if len(parts) == 0 {
		return "default"
	}

	sort.Strings(parts)
	sum := sha1.Sum([]byte(strings.Join(parts, "|")))
	return hex.EncodeToString(sum[:])
}
