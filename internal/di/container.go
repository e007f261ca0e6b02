package di

import (
	"context"
	"fmt"
	"log/slog"

	"ticket-dashboard/internal/adapter/exportfile"
	"ticket-dashboard/internal/adapter/openrouter"
	"ticket-dashboard/internal/adapter/sheetsource"
	"ticket-dashboard/internal/cache"
	"ticket-dashboard/internal/domain"
	"ticket-dashboard/internal/infra/config"
	"ticket-dashboard/internal/infra/httpclient"
	"ticket-dashboard/internal/usecase"
	"ticket-dashboard/internal/worker"
)

// ApplicationComponents holds all wired dependencies for the application.
type ApplicationComponents struct {
	Fetcher   domain.SourceFetcher
	Snapshots *cache.SnapshotCache

	Dashboard usecase.DashboardUsecase
	Chat      usecase.ChatUsecase

	// Worker is nil unless the background refresher is enabled.
	Worker *worker.RefreshWorker
}

// NewApplicationComponents wires the pipeline from config.
func NewApplicationComponents(ctx context.Context, cfg *config.Config, log *slog.Logger) (*ApplicationComponents, error) {
	fetcher, err := newFetcher(ctx, cfg, log)
	if err != nil {
		return nil, err
	}

	snapshots := cache.NewSnapshotCache(fetcher, cfg.CacheTTL, log)

	engine := usecase.NewFilterEngine()
	aggregator := usecase.NewAggregator(domain.Granularity(cfg.TimelineGranularity))
	exporter := exportfile.NewExporter(aggregator)

	dashboard := usecase.NewDashboardUsecase(snapshots, engine, aggregator, exporter, log)

	chatHTTP := httpclient.NewPooledClient(cfg.ChatTimeout)
	completer := openrouter.NewClient(cfg.OpenRouterURL, cfg.OpenRouterAPIKey, cfg.OpenRouterModels, chatHTTP, log)
	chat := usecase.NewChatUsecase(dashboard, usecase.NewSummaryBuilder(), completer, cfg.CacheTTL, log)

	components := &ApplicationComponents{
		Fetcher:   fetcher,
		Snapshots: snapshots,
		Dashboard: dashboard,
		Chat:      chat,
	}
	if cfg.RefreshWorkerEnabled {
		components.Worker = worker.NewRefreshWorker(snapshots, cfg.CacheTTL, log)
	}
	return components, nil
}

// newFetcher selects the configured source. The three source kinds are
// mutually exclusive per deployment.
func newFetcher(ctx context.Context, cfg *config.Config, log *slog.Logger) (domain.SourceFetcher, error) {
	fetchHTTP := httpclient.NewPooledClient(cfg.FetchTimeout)

	switch cfg.SheetsSource {
	case config.SourceCSV:
		if cfg.CSVExportURL == "" {
			return nil, fmt.Errorf("SHEETS_CSV_URL is required for the csv source")
		}
		return sheetsource.NewCSVFetcher(cfg.CSVExportURL, fetchHTTP, log), nil
	case config.SourceXLSX:
		if cfg.XLSXPublishedURL == "" {
			return nil, fmt.Errorf("SHEETS_XLSX_URL is required for the xlsx source")
		}
		return sheetsource.NewXLSXFetcher(cfg.XLSXPublishedURL, fetchHTTP, log), nil
	case config.SourceAPI:
		if cfg.SpreadsheetID == "" {
			return nil, fmt.Errorf("SHEETS_SPREADSHEET_ID is required for the api source")
		}
		return sheetsource.NewAPIFetcher(ctx, cfg.CredentialsFile, cfg.SpreadsheetID, log)
	}
	return nil, fmt.Errorf("unknown SHEETS_SOURCE %q (want csv, xlsx or api)", cfg.SheetsSource)
}
