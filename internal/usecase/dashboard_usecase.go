package usecase

import (
	"context"
	"log/slog"
	"time"

	"ticket-dashboard/internal/cache"
	"ticket-dashboard/internal/domain"
)

// SnapshotMeta describes which snapshot an output was derived from, plus the
// staleness warning raised when the latest refresh failed.
type SnapshotMeta struct {
	SnapshotID      string    `json:"snapshot_id"`
	FetchedAt       time.Time `json:"fetched_at"`
	SourceSignature string    `json:"source"`
	Stale           bool      `json:"stale"`
}

// TicketsOutput is the filtered data table.
type TicketsOutput struct {
	Meta    SnapshotMeta        `json:"meta"`
	Tickets domain.FilteredView `json:"tickets"`
}

// DashboardOutput carries KPIs and every chart series for the current
// filters.
type DashboardOutput struct {
	Meta          SnapshotMeta           `json:"meta"`
	ActiveFilters int                    `json:"active_filters"`
	Aggregate     domain.AggregateResult `json:"aggregate"`
}

// DashboardUsecase runs the cache → filter → aggregate pipeline.
type DashboardUsecase interface {
	GetTickets(ctx context.Context, spec domain.FilterSpec) (*TicketsOutput, error)
	GetDashboard(ctx context.Context, spec domain.FilterSpec) (*DashboardOutput, error)
	Export(ctx context.Context, spec domain.FilterSpec, format domain.ExportFormat) ([]byte, error)
	ForceRefresh()
}

type dashboardUsecase struct {
	cache      *cache.SnapshotCache
	engine     *FilterEngine
	aggregator *Aggregator
	exporter   domain.Exporter
	logger     *slog.Logger
}

func NewDashboardUsecase(
	snapshots *cache.SnapshotCache,
	engine *FilterEngine,
	aggregator *Aggregator,
	exporter domain.Exporter,
	logger *slog.Logger,
) DashboardUsecase {
	return &dashboardUsecase{
		cache:      snapshots,
		engine:     engine,
		aggregator: aggregator,
		exporter:   exporter,
		logger:     logger,
	}
}

// view validates the spec first (FilterError before any filtering), then
// resolves the current snapshot and applies the filters.
func (u *dashboardUsecase) view(ctx context.Context, spec domain.FilterSpec) (domain.FilteredView, SnapshotMeta, error) {
	if err := spec.Validate(); err != nil {
		return nil, SnapshotMeta{}, err
	}

	snap, stale, err := u.cache.GetCurrent(ctx)
	if err != nil {
		return nil, SnapshotMeta{}, err
	}

	meta := SnapshotMeta{
		SnapshotID:      snap.ID.String(),
		FetchedAt:       snap.FetchedAt,
		SourceSignature: snap.SourceSignature,
		Stale:           stale,
	}
	return u.engine.Apply(snap, spec), meta, nil
}

func (u *dashboardUsecase) GetTickets(ctx context.Context, spec domain.FilterSpec) (*TicketsOutput, error) {
	view, meta, err := u.view(ctx, spec)
	if err != nil {
		return nil, err
	}
	return &TicketsOutput{Meta: meta, Tickets: view}, nil
}

func (u *dashboardUsecase) GetDashboard(ctx context.Context, spec domain.FilterSpec) (*DashboardOutput, error) {
	view, meta, err := u.view(ctx, spec)
	if err != nil {
		return nil, err
	}
	return &DashboardOutput{
		Meta:          meta,
		ActiveFilters: spec.ActiveCount(),
		Aggregate:     u.aggregator.Summarize(view),
	}, nil
}

func (u *dashboardUsecase) Export(ctx context.Context, spec domain.FilterSpec, format domain.ExportFormat) ([]byte, error) {
	view, _, err := u.view(ctx, spec)
	if err != nil {
		return nil, err
	}
	return u.exporter.Export(view, format)
}

func (u *dashboardUsecase) ForceRefresh() {
	u.cache.ForceRefresh()
}
