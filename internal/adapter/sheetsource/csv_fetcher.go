package sheetsource

import (
	"context"
	"encoding/csv"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"time"

	"ticket-dashboard/internal/domain"
	"ticket-dashboard/internal/infra/httpclient"
)

// CSVFetcher reads a published Google Sheets CSV export
// (docs.google.com/spreadsheets/d/<key>/export?format=csv&gid=<gid>).
type CSVFetcher struct {
	url    string
	client *http.Client
	logger *slog.Logger
	now    func() time.Time
}

func NewCSVFetcher(url string, client *http.Client, logger *slog.Logger) *CSVFetcher {
	if client == nil {
		client = httpclient.NewPooledClient(httpclient.DefaultTimeout)
	}
	return &CSVFetcher{url: url, client: client, logger: logger, now: time.Now}
}

func (f *CSVFetcher) Signature() string { return "sheets-csv-export" }

// Fetch downloads and parses the CSV export into a Snapshot.
func (f *CSVFetcher) Fetch(ctx context.Context) (*domain.Snapshot, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, f.url, nil)
	if err != nil {
		return nil, domain.NewFetchError(domain.FetchErrNetwork, err)
	}

	resp, err := f.client.Do(req)
	if err != nil {
		return nil, domain.NewFetchError(domain.FetchErrNetwork, err)
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return nil, domain.NewFetchError(domain.FetchErrNetwork,
			fmt.Errorf("export endpoint returned %d: %s", resp.StatusCode, string(body)))
	}

	records, err := csv.NewReader(resp.Body).ReadAll()
	if err != nil {
		return nil, domain.NewFetchError(domain.FetchErrMalformed, err)
	}
	if len(records) == 0 {
		return nil, domain.NewFetchError(domain.FetchErrEmpty, fmt.Errorf("export contained no rows"))
	}

	tickets := normalizeRows(records[0], records[1:])
	if len(tickets) == 0 {
		return nil, domain.NewFetchError(domain.FetchErrEmpty, fmt.Errorf("export contained a header but no data rows"))
	}

	f.logger.Info("fetched csv export", slog.Int("tickets", len(tickets)))
	return domain.NewSnapshot(tickets, f.now(), f.Signature()), nil
}

var _ domain.SourceFetcher = (*CSVFetcher)(nil)
