// Package cache holds the process-wide snapshot cache. It is constructed
// once in the DI container and passed by handle to every consumer; there are
// no ambient globals.
package cache

import (
	"context"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"golang.org/x/sync/singleflight"

	"ticket-dashboard/internal/domain"
)

// DefaultTTL matches the source dashboard's 60 second data cache.
const DefaultTTL = 60 * time.Second

// SnapshotCache serves the most recent Snapshot within a TTL window and
// coordinates refreshes so that at most one fetch is in flight at a time.
// On refresh failure the stale snapshot keeps being served (availability
// over freshness) and the failure is surfaced as a warning to callers.
// Keep-stale applies to every fetch error kind, including an empty result:
// a sheet that suddenly reads back empty is treated as a failed read, not
// as a deletion of the dataset. The classified error stays inspectable via
// LastError.
type SnapshotCache struct {
	fetcher domain.SourceFetcher
	ttl     time.Duration
	logger  *slog.Logger
	now     func() time.Time

	// Single-flight group collapses concurrent refresh attempts.
	group singleflight.Group

	mu      sync.RWMutex
	current *domain.Snapshot
	forced  bool
	lastErr error
}

func NewSnapshotCache(fetcher domain.SourceFetcher, ttl time.Duration, logger *slog.Logger) *SnapshotCache {
	return NewSnapshotCacheWithClock(fetcher, ttl, logger, time.Now)
}

// NewSnapshotCacheWithClock injects the clock used for freshness decisions.
func NewSnapshotCacheWithClock(fetcher domain.SourceFetcher, ttl time.Duration, logger *slog.Logger, now func() time.Time) *SnapshotCache {
	if ttl <= 0 {
		ttl = DefaultTTL
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &SnapshotCache{
		fetcher: fetcher,
		ttl:     ttl,
		logger:  logger,
		now:     now,
	}
}

// GetCurrent returns the current snapshot, fetching if none exists or the
// cached one is stale. The returned bool warns that the snapshot is stale
// because the latest refresh failed. Only when no snapshot was ever fetched
// and the current attempt also fails does GetCurrent return an error
// (domain.ErrCacheUnavailable).
func (c *SnapshotCache) GetCurrent(ctx context.Context) (*domain.Snapshot, bool, error) {
	c.mu.RLock()
	snap := c.current
	fresh := snap != nil && !c.forced && c.now().Sub(snap.FetchedAt) < c.ttl
	c.mu.RUnlock()

	if fresh {
		return snap, false, nil
	}

	v, err, shared := c.group.Do("snapshot", func() (interface{}, error) {
		// The fetch is shared by every attached caller, so it must not
		// die with the one caller that happened to trigger it. The
		// fetcher's own client timeout still bounds the flight.
		return c.refresh(context.WithoutCancel(ctx))
	})
	if shared {
		c.logger.Debug("attached to in-flight fetch")
	}

	if err != nil {
		c.mu.RLock()
		prior := c.current
		c.mu.RUnlock()
		if prior == nil {
			return nil, false, fmt.Errorf("%w: %v", domain.ErrCacheUnavailable, err)
		}
		c.logger.Warn("serving stale snapshot after refresh failure",
			slog.Time("fetched_at", prior.FetchedAt),
			slog.String("error", err.Error()))
		return prior, true, nil
	}
	return v.(*domain.Snapshot), false, nil
}

// refresh runs inside the single-flight critical section. Callers that
// queued behind an in-flight fetch re-check freshness here so one completed
// fetch satisfies the whole burst.
func (c *SnapshotCache) refresh(ctx context.Context) (*domain.Snapshot, error) {
	c.mu.RLock()
	snap := c.current
	fresh := snap != nil && !c.forced && c.now().Sub(snap.FetchedAt) < c.ttl
	c.mu.RUnlock()
	if fresh {
		return snap, nil
	}

	next, err := c.fetcher.Fetch(ctx)
	if err != nil {
		c.mu.Lock()
		c.lastErr = err
		c.mu.Unlock()
		return nil, err
	}

	c.mu.Lock()
	c.current = next
	c.forced = false
	c.lastErr = nil
	c.mu.Unlock()

	c.logger.Info("snapshot refreshed",
		slog.String("snapshot_id", next.ID.String()),
		slog.Int("tickets", len(next.Tickets)),
		slog.String("source", next.SourceSignature))
	return next, nil
}

// ForceRefresh invalidates freshness so the next GetCurrent refetches. It
// never cancels an in-flight fetch; it only requests that the next access
// treat the cache as stale.
func (c *SnapshotCache) ForceRefresh() {
	c.mu.Lock()
	c.forced = true
	c.mu.Unlock()
}

// LastError exposes the most recent refresh failure for observability. It
// is nil after any successful refresh.
func (c *SnapshotCache) LastError() error {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.lastErr
}

// HasSnapshot reports whether any fetch ever succeeded, for readiness checks.
func (c *SnapshotCache) HasSnapshot() bool {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.current != nil
}
