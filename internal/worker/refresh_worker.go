package worker

import (
	"context"
	"log/slog"
	"time"

	"ticket-dashboard/internal/cache"
)

const refreshTimeout = 60 * time.Second

// RefreshWorker keeps the snapshot cache warm by reading it on a ticker, so
// interactive requests rarely pay fetch latency. It relies entirely on the
// cache's own single-flight refresh; the worker is just another caller.
type RefreshWorker struct {
	snapshots *cache.SnapshotCache
	interval  time.Duration
	logger    *slog.Logger
	stopChan  chan struct{}
}

func NewRefreshWorker(snapshots *cache.SnapshotCache, interval time.Duration, logger *slog.Logger) *RefreshWorker {
	return &RefreshWorker{
		snapshots: snapshots,
		interval:  interval,
		logger:    logger,
		stopChan:  make(chan struct{}),
	}
}

func (w *RefreshWorker) Start() {
	w.logger.Info("starting refresh worker", slog.Duration("interval", w.interval))
	go w.run()
}

func (w *RefreshWorker) Stop() {
	w.logger.Info("stopping refresh worker")
	close(w.stopChan)
}

func (w *RefreshWorker) run() {
	ticker := time.NewTicker(w.interval)
	defer ticker.Stop()

	for {
		select {
		case <-w.stopChan:
			return
		case <-ticker.C:
			w.warm()
		}
	}
}

func (w *RefreshWorker) warm() {
	ctx, cancel := context.WithTimeout(context.Background(), refreshTimeout)
	defer cancel()

	if _, stale, err := w.snapshots.GetCurrent(ctx); err != nil {
		w.logger.Error("background refresh failed", "error", err)
	} else if stale {
		w.logger.Warn("background refresh kept stale snapshot")
	}
}
