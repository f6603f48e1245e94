package redis

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"catalog-sync-srv/internal/indexing"
	pkgRedis "catalog-sync-srv/pkg/redis"
)

const (
	payloadHashKeyFmt = "indexing:payload_hash:%s:%s"
	statisticsKeyFmt  = "indexing:stats:%s"

	// Payload hashes survive until the record is deleted; statistics are a
	// short-lived summary.
	payloadHashTTL = 0
	statisticsTTL  = 5 * time.Minute
)

// GetPayloadHash returns the last synced payload hash for a record, or ""
// when none is cached.
func (r *implRepository) GetPayloadHash(ctx context.Context, apiKey, recordID string) (string, error) {
	hash, err := r.redis.Get(ctx, fmt.Sprintf(payloadHashKeyFmt, apiKey, recordID))
	if pkgRedis.IsNil(err) {
		return "", nil
	}
	if err != nil {
		return "", fmt.Errorf("GetPayloadHash: %w", err)
	}
	return hash, nil
}

// SetPayloadHash stores the payload hash submitted by a successful sync.
func (r *implRepository) SetPayloadHash(ctx context.Context, apiKey, recordID, hash string) error {
	if err := r.redis.Set(ctx, fmt.Sprintf(payloadHashKeyFmt, apiKey, recordID), hash, payloadHashTTL); err != nil {
		return fmt.Errorf("SetPayloadHash: %w", err)
	}
	return nil
}

// DeletePayloadHash removes the cached hash after a record is deleted remotely.
func (r *implRepository) DeletePayloadHash(ctx context.Context, apiKey, recordID string) error {
	if err := r.redis.Delete(ctx, fmt.Sprintf(payloadHashKeyFmt, apiKey, recordID)); err != nil {
		return fmt.Errorf("DeletePayloadHash: %w", err)
	}
	return nil
}

// GetStatistics returns cached statistics, or nil on cache miss.
func (r *implRepository) GetStatistics(ctx context.Context, apiKey string) (*indexing.StatisticsOutput, error) {
	raw, err := r.redis.Get(ctx, fmt.Sprintf(statisticsKeyFmt, apiKey))
	if pkgRedis.IsNil(err) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("GetStatistics: %w", err)
	}

	var stats indexing.StatisticsOutput
	if err := json.Unmarshal([]byte(raw), &stats); err != nil {
		return nil, fmt.Errorf("GetStatistics: %w", err)
	}
	return &stats, nil
}

// SetStatistics caches statistics with a short TTL.
func (r *implRepository) SetStatistics(ctx context.Context, apiKey string, stats indexing.StatisticsOutput) error {
	raw, err := json.Marshal(stats)
	if err != nil {
		return fmt.Errorf("SetStatistics: %w", err)
	}
	if err := r.redis.Set(ctx, fmt.Sprintf(statisticsKeyFmt, apiKey), raw, statisticsTTL); err != nil {
		return fmt.Errorf("SetStatistics: %w", err)
	}
	return nil
}

// InvalidateStatistics drops the cached statistics after state mutations.
func (r *implRepository) InvalidateStatistics(ctx context.Context, apiKey string) error {
	if err := r.redis.Delete(ctx, fmt.Sprintf(statisticsKeyFmt, apiKey)); err != nil {
		return fmt.Errorf("InvalidateStatistics: %w", err)
	}
	return nil
}
