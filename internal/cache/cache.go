package cache

import (
	"context"
	"log/slog"
	"time"
)

// Cache is the read-through interface the HTTP layer depends on.
type Cache[T any] interface {
	Get(key string) (T, bool)
	Set(key string, value T)
	Delete(key string)
	Purge()
}

// Cleaner is anything that can evict its expired entries.
type Cleaner interface {
	CleanExpired() int
}

// RunCleanup sweeps the given caches on an interval until the context
// ends. Expired entries are already skipped on read, so this only bounds
// memory held by keys that stop being requested.
func RunCleanup(ctx context.Context, interval time.Duration, cleaners ...Cleaner) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			removed := 0
			for _, c := range cleaners {
				removed += c.CleanExpired()
			}
			if removed > 0 {
				slog.DebugContext(ctx, "Cache cleanup", "removed", removed)
			}
		}
	}
}
