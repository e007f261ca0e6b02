package sheetsource_test

import (
	"bytes"
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"

	"ticket-dashboard/internal/adapter/sheetsource"
	"ticket-dashboard/internal/domain"
)

func buildWorkbook(t *testing.T, rows [][]interface{}) []byte {
	t.Helper()

	wb := excelize.NewFile()
	defer func() { _ = wb.Close() }()

	sheet := wb.GetSheetName(0)
	for i, row := range rows {
		cell, err := excelize.CoordinatesToCellName(1, i+1)
		require.NoError(t, err)
		require.NoError(t, wb.SetSheetRow(sheet, cell, &row))
	}

	var buf bytes.Buffer
	require.NoError(t, wb.Write(&buf))
	return buf.Bytes()
}

func workbookServer(t *testing.T, payload []byte) *httptest.Server {
	t.Helper()
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write(payload)
	}))
	t.Cleanup(srv.Close)
	return srv
}

func TestXLSXFetch_ParsesWorkbook(t *testing.T) {
	payload := buildWorkbook(t, [][]interface{}{
		{"ID", "Title", "Status", "Client", "Created"},
		{"T-1", "Fix login redirect", "Active", "Acme", "2025-07-01"},
		{"T-2", "Quarterly report", "Done", "Globex", ""},
	})
	srv := workbookServer(t, payload)
	fetcher := sheetsource.NewXLSXFetcher(srv.URL, srv.Client(), testLogger())

	snap, err := fetcher.Fetch(context.Background())
	require.NoError(t, err)
	require.Len(t, snap.Tickets, 2)
	assert.Equal(t, "sheets-xlsx-export", snap.SourceSignature)
	assert.Equal(t, "T-1", snap.Tickets[0].ID)
	require.NotNil(t, snap.Tickets[0].CreatedDate)
	assert.Nil(t, snap.Tickets[1].CreatedDate)
}

func TestXLSXFetch_NotAWorkbook(t *testing.T) {
	srv := workbookServer(t, []byte("this is not a zip archive"))
	fetcher := sheetsource.NewXLSXFetcher(srv.URL, srv.Client(), testLogger())

	_, err := fetcher.Fetch(context.Background())
	require.Error(t, err)

	var ferr *domain.FetchError
	require.ErrorAs(t, err, &ferr)
	assert.Equal(t, domain.FetchErrMalformed, ferr.Kind)
}

func TestXLSXFetch_HeaderOnlyWorkbook(t *testing.T) {
	payload := buildWorkbook(t, [][]interface{}{{"ID", "Title", "Status"}})
	srv := workbookServer(t, payload)
	fetcher := sheetsource.NewXLSXFetcher(srv.URL, srv.Client(), testLogger())

	_, err := fetcher.Fetch(context.Background())
	require.Error(t, err)

	var ferr *domain.FetchError
	require.ErrorAs(t, err, &ferr)
	assert.Equal(t, domain.FetchErrEmpty, ferr.Kind)
}

func TestXLSXFetch_Non200IsNetworkError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
	}))
	t.Cleanup(srv.Close)
	fetcher := sheetsource.NewXLSXFetcher(srv.URL, srv.Client(), testLogger())

	_, err := fetcher.Fetch(context.Background())
	require.Error(t, err)

	var ferr *domain.FetchError
	require.ErrorAs(t, err, &ferr)
	assert.Equal(t, domain.FetchErrNetwork, ferr.Kind)
}
