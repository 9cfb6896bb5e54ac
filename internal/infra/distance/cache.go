package distance

import (
	"context"
	"encoding/json"
	"log/slog"
	"strings"
	"time"

	"ekicare/internal/usecase/queries"

	"github.com/redis/go-redis/v9"
)

const cacheKeyPrefix = "distance:v1:"

// Cache is the subset of the redis client the provider needs.
type Cache interface {
	Get(ctx context.Context, key string) *redis.StringCmd
	Set(ctx context.Context, key string, value any, expiration time.Duration) *redis.StatusCmd
}

// CachedProvider serves repeated address pairs from redis. Cache failures are
// logged and fall through to the upstream provider.
type CachedProvider struct {
	next  queries.DistanceProvider
	cache Cache
	ttl   time.Duration
}

func NewCachedProvider(next queries.DistanceProvider, cache Cache, ttl time.Duration) *CachedProvider {
	return &CachedProvider{next: next, cache: cache, ttl: ttl}
}

func (p *CachedProvider) Distance(ctx context.Context, from, to string) (*queries.DistanceView, error) {
	key := CacheKey(from, to)

	raw, err := p.cache.Get(ctx, key).Result()
	switch {
	case err == nil:
		var view queries.DistanceView
		if uerr := json.Unmarshal([]byte(raw), &view); uerr == nil {
			return &view, nil
		}
		slog.WarnContext(ctx, "discarding unreadable distance cache entry", "key", key)
	case err != redis.Nil:
		slog.WarnContext(ctx, "distance cache read failed", "error", err.Error())
	}

	view, err := p.next.Distance(ctx, from, to)
	if err != nil {
		return nil, err
	}

	body, err := json.Marshal(view)
	if err == nil {
		if serr := p.cache.Set(ctx, key, body, p.ttl).Err(); serr != nil {
			slog.WarnContext(ctx, "distance cache write failed", "error", serr.Error())
		}
	}
	return view, nil
}

// CacheKey normalizes case and whitespace so equivalent spellings share an entry.
func CacheKey(from, to string) string {
	return cacheKeyPrefix + normalizeAddress(from) + "|" + normalizeAddress(to)
}

func normalizeAddress(s string) string {
	return strings.ToLower(strings.Join(strings.Fields(s), " "))
}
