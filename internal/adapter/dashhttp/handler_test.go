package dashhttp_test

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"ticket-dashboard/internal/adapter/dashhttp"
	"ticket-dashboard/internal/domain"
	"ticket-dashboard/internal/usecase"
)

type stubDashboard struct {
	lastSpec   domain.FilterSpec
	lastFormat domain.ExportFormat
	refreshed  int
	err        error
}

func (s *stubDashboard) GetTickets(ctx context.Context, spec domain.FilterSpec) (*usecase.TicketsOutput, error) {
	s.lastSpec = spec
	if s.err != nil {
		return nil, s.err
	}
	return &usecase.TicketsOutput{
		Meta:    usecase.SnapshotMeta{SnapshotID: "snap-1", FetchedAt: time.Date(2025, 9, 1, 12, 0, 0, 0, time.UTC)},
		Tickets: domain.FilteredView{{ID: "t1", Title: "Fix login", Status: "Active"}},
	}, nil
}

func (s *stubDashboard) GetDashboard(ctx context.Context, spec domain.FilterSpec) (*usecase.DashboardOutput, error) {
	s.lastSpec = spec
	if s.err != nil {
		return nil, s.err
	}
	return &usecase.DashboardOutput{
		Meta:          usecase.SnapshotMeta{SnapshotID: "snap-1"},
		ActiveFilters: spec.ActiveCount(),
		Aggregate:     domain.AggregateResult{Total: 1, Active: 1},
	}, nil
}

func (s *stubDashboard) Export(ctx context.Context, spec domain.FilterSpec, format domain.ExportFormat) ([]byte, error) {
	s.lastSpec = spec
	s.lastFormat = format
	if s.err != nil {
		return nil, s.err
	}
	return []byte("ID,Title\n"), nil
}

func (s *stubDashboard) ForceRefresh() { s.refreshed++ }

type stubChat struct {
	lastInput usecase.ChatInput
	err       error
}

func (s *stubChat) Ask(ctx context.Context, input usecase.ChatInput) (*usecase.ChatOutput, error) {
	s.lastInput = input
	if s.err != nil {
		return nil, s.err
	}
	return &usecase.ChatOutput{Answer: "mostly active"}, nil
}

func newTestServer(dashboard *stubDashboard, chat *stubChat) *echo.Echo {
	e := echo.New()
	dashhttp.NewHandler(dashboard, chat).Register(e.Group("/v1"))
	return e
}

func doRequest(e *echo.Echo, method, target, body string) *httptest.ResponseRecorder {
	var reader *strings.Reader
	if body == "" {
		reader = strings.NewReader("")
	} else {
		reader = strings.NewReader(body)
	}
	req := httptest.NewRequest(method, target, reader)
	if body != "" {
		req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	}
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)
	return rec
}

func TestGetTickets_OK(t *testing.T) {
	dashboard := &stubDashboard{}
	rec := doRequest(newTestServer(dashboard, &stubChat{}), http.MethodGet, "/v1/tickets?status=active&status=done&client=Acme&q=login&from=2025-07-01", "")

	require.Equal(t, http.StatusOK, rec.Code)

	var out usecase.TicketsOutput
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &out))
	assert.Equal(t, "snap-1", out.Meta.SnapshotID)
	require.Len(t, out.Tickets, 1)

	assert.Equal(t, []string{"active", "done"}, dashboard.lastSpec.Statuses)
	assert.Equal(t, []string{"Acme"}, dashboard.lastSpec.Clients)
	assert.Equal(t, "login", dashboard.lastSpec.Query)
	require.NotNil(t, dashboard.lastSpec.From)
	assert.Nil(t, dashboard.lastSpec.To)
}

func TestGetTickets_BadDateIs400(t *testing.T) {
	rec := doRequest(newTestServer(&stubDashboard{}, &stubChat{}), http.MethodGet, "/v1/tickets?from=july", "")
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Contains(t, rec.Body.String(), "invalid date")
}

func TestGetDashboard_OK(t *testing.T) {
	rec := doRequest(newTestServer(&stubDashboard{}, &stubChat{}), http.MethodGet, "/v1/dashboard?status=active", "")
	require.Equal(t, http.StatusOK, rec.Code)

	var out usecase.DashboardOutput
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &out))
	assert.Equal(t, 1, out.Aggregate.Total)
	assert.Equal(t, 1, out.ActiveFilters)
}

func TestGetDashboard_CacheUnavailableIs503(t *testing.T) {
	dashboard := &stubDashboard{err: domain.ErrCacheUnavailable}
	rec := doRequest(newTestServer(dashboard, &stubChat{}), http.MethodGet, "/v1/dashboard", "")
	assert.Equal(t, http.StatusServiceUnavailable, rec.Code)
}

func TestGetDashboard_FilterErrorIs400(t *testing.T) {
	dashboard := &stubDashboard{err: &domain.FilterError{Reason: "date range start is after end"}}
	rec := doRequest(newTestServer(dashboard, &stubChat{}), http.MethodGet, "/v1/dashboard", "")
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestExport_CSV(t *testing.T) {
	dashboard := &stubDashboard{}
	rec := doRequest(newTestServer(dashboard, &stubChat{}), http.MethodGet, "/v1/export?format=csv&client=Acme", "")

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, domain.FormatCSV, dashboard.lastFormat)
	assert.Equal(t, "text/csv", rec.Header().Get(echo.HeaderContentType))
	assert.Contains(t, rec.Header().Get(echo.HeaderContentDisposition), "attachment")
	assert.Contains(t, rec.Header().Get(echo.HeaderContentDisposition), ".csv")
}

func TestExport_UnknownFormatIs400(t *testing.T) {
	rec := doRequest(newTestServer(&stubDashboard{}, &stubChat{}), http.MethodGet, "/v1/export?format=pdf", "")
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestRefresh_Returns202(t *testing.T) {
	dashboard := &stubDashboard{}
	rec := doRequest(newTestServer(dashboard, &stubChat{}), http.MethodPost, "/v1/refresh", "")

	assert.Equal(t, http.StatusAccepted, rec.Code)
	assert.Equal(t, 1, dashboard.refreshed)
}

func TestChat_OK(t *testing.T) {
	chat := &stubChat{}
	rec := doRequest(newTestServer(&stubDashboard{}, chat), http.MethodPost, "/v1/chat?status=active", `{"question":"what stands out?"}`)

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "what stands out?", chat.lastInput.Question)
	assert.Equal(t, []string{"active"}, chat.lastInput.Spec.Statuses)

	var out usecase.ChatOutput
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &out))
	assert.Equal(t, "mostly active", out.Answer)
}

func TestChat_UnavailableIsSetupNotice(t *testing.T) {
	chat := &stubChat{err: domain.ErrChatUnavailable}
	rec := doRequest(newTestServer(&stubDashboard{}, chat), http.MethodPost, "/v1/chat", `{"question":"hi"}`)

	require.Equal(t, http.StatusServiceUnavailable, rec.Code)

	var body map[string]string
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Equal(t, "unconfigured", body["status"])
	assert.Contains(t, body["notice"], "OPENROUTER_API_KEY")
}
