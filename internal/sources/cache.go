package sources

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/acharan-13-05/Share-of-Voice-Analyzer/internal/models"
)

type Cache interface {
	Get(ctx context.Context, key string) ([]byte, bool)
	Set(ctx context.Context, key string, value []byte, ttl time.Duration) error
}

// CachedSource serves repeated queries from a cache. Only complete outcomes
// are stored; cache failures fall through to the wrapped source.
type CachedSource struct {
	inner Source
	cache Cache
	ttl   time.Duration
}

func NewCachedSource(inner Source, cache Cache, ttl time.Duration) *CachedSource {
	return &CachedSource{inner: inner, cache: cache, ttl: ttl}
}

func (c *CachedSource) Name() string { return c.inner.Name() }

func (c *CachedSource) Fetch(ctx context.Context, run models.RunConfig) models.SourceOutcome {
	key := CacheKey(c.inner.Name(), run)

	if data, ok := c.cache.Get(ctx, key); ok {
		var cached models.SourceOutcome
		if err := json.Unmarshal(data, &cached); err == nil {
			slog.Debug("[CachedSource] Cache hit",
				slog.String("platform", c.Name()),
				slog.String("query", run.Query))
			return cached
		}
		slog.Warn("[CachedSource] Ignoring unreadable cache entry", slog.String("key", key))
	}

	outcome := c.inner.Fetch(ctx, run)
	if outcome.Reason != "" {
		return outcome
	}

	data, err := json.Marshal(outcome)
	if err != nil {
		return outcome
	}
	if err := c.cache.Set(ctx, key, data, c.ttl); err != nil {
		slog.Warn("[CachedSource] Failed to store outcome",
			slog.String("platform", c.Name()),
			slog.String("error", err.Error()))
	}
	return outcome
}

// CacheKey depends on everything that changes what a source fetches.
func CacheKey(platform string, run models.RunConfig) string {
	raw := fmt.Sprintf("%s:%d:%d", strings.ToLower(strings.TrimSpace(run.Query)), run.PerPlatform, run.MaxCommentsPerVideo)
	hash := sha256.Sum256([]byte(raw))
	return platform + ":" + hex.EncodeToString(hash[:])
}
