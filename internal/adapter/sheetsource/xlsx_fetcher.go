package sheetsource

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"time"

	"github.com/xuri/excelize/v2"

	"ticket-dashboard/internal/domain"
	"ticket-dashboard/internal/infra/httpclient"
)

// maxWorkbookBytes bounds how much of a published workbook we are willing
// to buffer before parsing.
const maxWorkbookBytes = 32 << 20

// XLSXFetcher reads a "Publish to web" XLSX workbook URL. The first sheet is
// the dataset; its first row is the header.
type XLSXFetcher struct {
	url    string
	client *http.Client
	logger *slog.Logger
	now    func() time.Time
}

func NewXLSXFetcher(url string, client *http.Client, logger *slog.Logger) *XLSXFetcher {
	if client == nil {
		client = httpclient.NewPooledClient(httpclient.DefaultTimeout)
	}
	return &XLSXFetcher{url: url, client: client, logger: logger, now: time.Now}
}

func (f *XLSXFetcher) Signature() string { return "sheets-xlsx-export" }

func (f *XLSXFetcher) Fetch(ctx context.Context) (*domain.Snapshot, error) {
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
		return nil, domain.NewFetchError(domain.FetchErrNetwork,
			fmt.Errorf("published workbook returned %d", resp.StatusCode))
	}

	raw, err := io.ReadAll(io.LimitReader(resp.Body, maxWorkbookBytes))
	if err != nil {
		return nil, domain.NewFetchError(domain.FetchErrNetwork, err)
	}

	wb, err := excelize.OpenReader(bytes.NewReader(raw))
	if err != nil {
		return nil, domain.NewFetchError(domain.FetchErrMalformed, err)
	}
	defer func() { _ = wb.Close() }()

	sheets := wb.GetSheetList()
	if len(sheets) == 0 {
		return nil, domain.NewFetchError(domain.FetchErrMalformed, fmt.Errorf("workbook has no sheets"))
	}

	rows, err := wb.GetRows(sheets[0])
	if err != nil {
		return nil, domain.NewFetchError(domain.FetchErrMalformed, err)
	}
	if len(rows) == 0 {
		return nil, domain.NewFetchError(domain.FetchErrEmpty, fmt.Errorf("workbook sheet %q is empty", sheets[0]))
	}

	tickets := normalizeRows(rows[0], rows[1:])
	if len(tickets) == 0 {
		return nil, domain.NewFetchError(domain.FetchErrEmpty, fmt.Errorf("workbook contained a header but no data rows"))
	}

	f.logger.Info("fetched published workbook",
		slog.String("sheet", sheets[0]),
		slog.Int("tickets", len(tickets)))
	return domain.NewSnapshot(tickets, f.now(), f.Signature()), nil
}

var _ domain.SourceFetcher = (*XLSXFetcher)(nil)
