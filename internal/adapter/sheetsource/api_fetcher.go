package sheetsource

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"time"

	"golang.org/x/oauth2/google"
	sheets "google.golang.org/api/sheets/v4"
	"google.golang.org/api/option"

	"ticket-dashboard/internal/domain"
)

const readRange = "A1:Z"

// APIFetcher reads the spreadsheet through the Sheets API with a read-only
// service account, for sheets that are not published to the web.
type APIFetcher struct {
	service       *sheets.Service
	spreadsheetID string
	logger        *slog.Logger
	now           func() time.Time
}

// NewAPIFetcher builds a Sheets API client from a service-account key file.
func NewAPIFetcher(ctx context.Context, credentialsFile, spreadsheetID string, logger *slog.Logger) (*APIFetcher, error) {
	key, err := os.ReadFile(credentialsFile)
	if err != nil {
		return nil, fmt.Errorf("unable to read service account key %s: %w", credentialsFile, err)
	}

	conf, err := google.JWTConfigFromJSON(key, sheets.SpreadsheetsReadonlyScope)
	if err != nil {
		return nil, fmt.Errorf("unable to parse service account key: %w", err)
	}

	srv, err := sheets.NewService(ctx, option.WithHTTPClient(conf.Client(ctx)))
	if err != nil {
		return nil, fmt.Errorf("unable to create sheets service: %w", err)
	}

	return &APIFetcher{
		service:       srv,
		spreadsheetID: spreadsheetID,
		logger:        logger,
		now:           time.Now,
	}, nil
}

func (f *APIFetcher) Signature() string {
	return fmt.Sprintf("sheets-api:%s", f.spreadsheetID)
}

func (f *APIFetcher) Fetch(ctx context.Context) (*domain.Snapshot, error) {
	values, err := f.service.Spreadsheets.Values.Get(f.spreadsheetID, readRange).Context(ctx).Do()
	if err != nil {
		return nil, domain.NewFetchError(domain.FetchErrNetwork, err)
	}
	if len(values.Values) == 0 {
		return nil, domain.NewFetchError(domain.FetchErrEmpty, fmt.Errorf("spreadsheet range %s is empty", readRange))
	}

	header := stringRow(values.Values[0])
	rows := make([][]string, 0, len(values.Values)-1)
	for _, raw := range values.Values[1:] {
		rows = append(rows, stringRow(raw))
	}

	tickets := normalizeRows(header, rows)
	if len(tickets) == 0 {
		return nil, domain.NewFetchError(domain.FetchErrEmpty, fmt.Errorf("spreadsheet contained a header but no data rows"))
	}

	f.logger.Info("fetched via sheets api",
		slog.String("spreadsheet_id", f.spreadsheetID),
		slog.Int("tickets", len(tickets)))
	return domain.NewSnapshot(tickets, f.now(), f.Signature()), nil
}

// stringRow flattens the API's untyped cell values; the sheet is text-typed
// and normalization handles the rest.
func stringRow(cells []interface{}) []string {
	row := make([]string, len(cells))
	for i, c := range cells {
		row[i] = fmt.Sprint(c)
	}
	return row
}

var _ domain.SourceFetcher = (*APIFetcher)(nil)
