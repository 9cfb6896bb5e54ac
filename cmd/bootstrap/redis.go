package bootstrap

import (
	"context"
	"log/slog"

	"ekicare/internal/infra/distance"
	"ekicare/internal/pkg/config"
	"ekicare/internal/usecase/queries"

	"github.com/redis/go-redis/v9"
	"go.uber.org/fx"
)

var DistanceModule = fx.Module("distance",
	fx.Provide(
		NewRedisClient,
		NewDistanceProvider,
	),
)

// NewRedisClient returns nil when no address is configured.
func NewRedisClient(lc fx.Lifecycle, cfg config.Config) *redis.Client {
	if cfg.Redis.Addr == "" {
		slog.Info("redis disabled, distance lookups are not cached")
		return nil
	}

	client := redis.NewClient(&redis.Options{
		Addr:     cfg.Redis.Addr,
		Password: cfg.Redis.Password,
		DB:       cfg.Redis.DB,
	})

	lc.Append(fx.Hook{
		OnStart: func(ctx context.Context) error {
			// A cold cache is not fatal; log and keep serving.
			if err := client.Ping(ctx).Err(); err != nil {
				slog.Warn("redis ping failed", "addr", cfg.Redis.Addr, "error", err.Error())
			}
			return nil
		},
		OnStop: func(_ context.Context) error {
			return client.Close()
		},
	})
	return client
}

func NewDistanceProvider(cfg config.Config, client *redis.Client) queries.DistanceProvider {
	upstream := distance.NewClient(cfg.Distance)
	if client == nil {
		return upstream
	}
	return distance.NewCachedProvider(upstream, client, cfg.Distance.CacheTTL)
}
