//go:build unit

package distance

import (
	"context"
	"encoding/json"
	"testing"
	"time"

	"ekicare/internal/usecase/queries"

	"github.com/cockroachdb/errors"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeCache struct {
	data   map[string]string
	getErr error
	sets   int
}

func (f *fakeCache) Get(_ context.Context, key string) *redis.StringCmd {
	if f.getErr != nil {
		return redis.NewStringResult("", f.getErr)
	}
	v, ok := f.data[key]
	if !ok {
		return redis.NewStringResult("", redis.Nil)
	}
	return redis.NewStringResult(v, nil)
}

func (f *fakeCache) Set(_ context.Context, key string, value any, _ time.Duration) *redis.StatusCmd {
	f.sets++
	f.data[key] = string(value.([]byte))
	return redis.NewStatusResult("OK", nil)
}

type countingProvider struct {
	calls int
}

func (p *countingProvider) Distance(_ context.Context, from, to string) (*queries.DistanceView, error) {
	p.calls++
	return &queries.DistanceView{From: from, To: to, DistanceMeters: 4200}, nil
}

func TestCachedProvider(t *testing.T) {
	t.Run("second lookup is served from cache", func(t *testing.T) {
		cache := &fakeCache{data: map[string]string{}}
		next := &countingProvider{}
		p := NewCachedProvider(next, cache, time.Hour)

		first, err := p.Distance(context.Background(), "Lyon", "Paris")
		require.NoError(t, err)
		second, err := p.Distance(context.Background(), "  lyon ", "PARIS")
		require.NoError(t, err)

		assert.Equal(t, 1, next.calls)
		assert.Equal(t, 1, cache.sets)
		assert.Equal(t, first.DistanceMeters, second.DistanceMeters)
	})

	t.Run("cache outage falls through", func(t *testing.T) {
		cache := &fakeCache{data: map[string]string{}, getErr: errors.New("connection refused")}
		next := &countingProvider{}
		p := NewCachedProvider(next, cache, time.Hour)

		got, err := p.Distance(context.Background(), "a", "b")

		require.NoError(t, err)
		assert.Equal(t, 4200, got.DistanceMeters)
		assert.Equal(t, 1, next.calls)
	})

	t.Run("corrupt entry is replaced", func(t *testing.T) {
		cache := &fakeCache{data: map[string]string{CacheKey("a", "b"): "{not json"}}
		next := &countingProvider{}
		p := NewCachedProvider(next, cache, time.Hour)

		_, err := p.Distance(context.Background(), "a", "b")
		require.NoError(t, err)

		var stored queries.DistanceView
		require.NoError(t, json.Unmarshal([]byte(cache.data[CacheKey("a", "b")]), &stored))
		assert.Equal(t, 4200, stored.DistanceMeters)
	})
}

func TestCacheKey(t *testing.T) {
	assert.Equal(t, CacheKey("12  Rue  de la Paix", "LYON"), CacheKey("12 rue de la paix", " lyon"))
	assert.NotEqual(t, CacheKey("a", "b"), CacheKey("b", "a"))
}
