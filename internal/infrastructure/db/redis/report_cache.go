package redis

import (
	"context"
	"encoding/json"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"

	"github.com/officedesk/office-console/internal/core/ports"
)

const reportTTL = 5 * time.Minute

// ReportCache stores recently aggregated report trees in Redis, keyed by
// the scope/range fingerprint the report service builds. Entries expire
// rather than being invalidated; a stale window of reportTTL is accepted.
type ReportCache struct {
	client *redis.Client
	log    zerolog.Logger
}

// NewReportCache creates a ReportCache wrapping the given Redis client.
func NewReportCache(client *redis.Client, log zerolog.Logger) *ReportCache {
	return &ReportCache{client: client, log: log}
}

// GetTree returns the cached tree for key, if present. Any Redis or decode
// failure is treated as a miss.
func (c *ReportCache) GetTree(ctx context.Context, key string) ([]ports.ProjectRollup, bool) {
	raw, err := c.client.Get(ctx, key).Bytes()
	if err != nil {
		if err != redis.Nil {
			c.log.Warn().Err(err).Str("key", key).Msg("report cache read failed")
		}
		return nil, false
	}

	var tree []ports.ProjectRollup
	if err := json.Unmarshal(raw, &tree); err != nil {
		c.log.Warn().Err(err).Str("key", key).Msg("report cache entry corrupt, ignoring")
		return nil, false
	}
	return tree, true
}

// SetTree stores a tree under key with the cache TTL. Failures are logged
// and swallowed; caching is best effort.
func (c *ReportCache) SetTree(ctx context.Context, key string, tree []ports.ProjectRollup) {
	raw, err := json.Marshal(tree)
	if err != nil {
		c.log.Warn().Err(err).Str("key", key).Msg("report cache encode failed")
		return
	}
	if err := c.client.Set(ctx, key, raw, reportTTL).Err(); err != nil {
		c.log.Warn().Err(err).Str("key", key).Msg("report cache write failed")
	}
}
