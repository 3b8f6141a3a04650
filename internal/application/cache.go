package application

import (
	"context"
	"encoding/json"
	"log/slog"

	"github.com/mahabubulhasibshawon/lojamix/internal/ports"
)

// cached serves key from cache, falling back to load and populating the
// cache on a miss. Cache failures never fail the call.
func cached[T any](ctx context.Context, cache ports.CachePort, key string, load func() (T, error)) (T, error) {
	if data, err := cache.Get(ctx, key); err == nil {
		var v T
		if err := json.Unmarshal(data, &v); err == nil {
			return v, nil
		}
		slog.WarnContext(ctx, "discarding undecodable cache entry", "key", key)
	}

	v, err := load()
	if err != nil {
		return v, err
	}
	if err := cache.Set(ctx, key, v); err != nil {
		slog.WarnContext(ctx, "cache set failed", "key", key, "error", err)
	}
	return v, nil
}

func invalidate(ctx context.Context, cache ports.CachePort, prefix string) {
	if err := cache.DeleteByPrefix(ctx, prefix); err != nil {
		slog.WarnContext(ctx, "cache invalidation failed", "prefix", prefix, "error", err)
	}
}
