// Package dashhttp exposes the dashboard pipeline over HTTP.
package dashhttp

import (
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"

	"ticket-dashboard/internal/domain"
	"ticket-dashboard/internal/usecase"
)

type Handler struct {
	dashboard usecase.DashboardUsecase
	chat      usecase.ChatUsecase
}

func NewHandler(dashboard usecase.DashboardUsecase, chat usecase.ChatUsecase) *Handler {
	return &Handler{dashboard: dashboard, chat: chat}
}

// Register mounts all dashboard routes on g.
func (h *Handler) Register(g *echo.Group) {
	g.GET("/tickets", h.GetTickets)
	g.GET("/dashboard", h.GetDashboard)
	g.GET("/export", h.Export)
	g.POST("/refresh", h.Refresh)
	g.POST("/chat", h.Chat)
}

// filterSpecFromQuery builds the FilterSpec from sidebar-equivalent query
// params: repeated status/client, free-text q, and from/to dates.
func filterSpecFromQuery(c echo.Context) (domain.FilterSpec, error) {
	spec := domain.FilterSpec{
		Statuses: c.QueryParams()["status"],
		Clients:  c.QueryParams()["client"],
		Query:    c.QueryParam("q"),
	}

	var err error
	if spec.From, err = parseQueryDate(c.QueryParam("from")); err != nil {
		return spec, &domain.FilterError{Reason: err.Error()}
	}
	if spec.To, err = parseQueryDate(c.QueryParam("to")); err != nil {
		return spec, &domain.FilterError{Reason: err.Error()}
	}
	return spec, nil
}

func parseQueryDate(value string) (*time.Time, error) {
	if value == "" {
		return nil, nil
	}
	for _, layout := range []string{"2006-01-02", time.RFC3339} {
		if t, err := time.Parse(layout, value); err == nil {
			return &t, nil
		}
	}
	return nil, fmt.Errorf("invalid date %q, want YYYY-MM-DD", value)
}

func (h *Handler) GetTickets(c echo.Context) error {
	spec, err := filterSpecFromQuery(c)
	if err != nil {
		return writeError(c, err)
	}

	out, err := h.dashboard.GetTickets(c.Request().Context(), spec)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusOK, out)
}

func (h *Handler) GetDashboard(c echo.Context) error {
	spec, err := filterSpecFromQuery(c)
	if err != nil {
		return writeError(c, err)
	}

	out, err := h.dashboard.GetDashboard(c.Request().Context(), spec)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusOK, out)
}

func (h *Handler) Export(c echo.Context) error {
	format, err := domain.ParseExportFormat(c.QueryParam("format"))
	if err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": err.Error()})
	}

	spec, err := filterSpecFromQuery(c)
	if err != nil {
		return writeError(c, err)
	}

	payload, err := h.dashboard.Export(c.Request().Context(), spec, format)
	if err != nil {
		return writeError(c, err)
	}

	filename := fmt.Sprintf("ticket-dashboard-%s.%s", time.Now().UTC().Format("2006-01-02_15-04-05"), format)
	c.Response().Header().Set(echo.HeaderContentDisposition, fmt.Sprintf("attachment; filename=%q", filename))
	return c.Blob(http.StatusOK, format.ContentType(), payload)
}

// Refresh marks the cache stale; the next read pays for the fetch.
func (h *Handler) Refresh(c echo.Context) error {
	h.dashboard.ForceRefresh()
	return c.JSON(http.StatusAccepted, map[string]string{"status": "refresh scheduled"})
}

type chatRequest struct {
	Question string `json:"question"`
}

func (h *Handler) Chat(c echo.Context) error {
	var req chatRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "invalid request"})
	}

	spec, err := filterSpecFromQuery(c)
	if err != nil {
		return writeError(c, err)
	}

	out, err := h.chat.Ask(c.Request().Context(), usecase.ChatInput{Question: req.Question, Spec: spec})
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusOK, out)
}

// writeError maps the domain error taxonomy onto HTTP statuses. Chat being
// unconfigured is a setup notice, not a failure.
func writeError(c echo.Context, err error) error {
	var filterErr *domain.FilterError
	switch {
	case errors.As(err, &filterErr):
		return c.JSON(http.StatusBadRequest, map[string]string{"error": filterErr.Error()})
	case errors.Is(err, domain.ErrCacheUnavailable):
		return c.JSON(http.StatusServiceUnavailable, map[string]string{
			"error": "ticket data is not available yet",
		})
	case errors.Is(err, domain.ErrChatUnavailable):
		return c.JSON(http.StatusServiceUnavailable, map[string]string{
			"status": "unconfigured",
			"notice": "chat assistant requires an OpenRouter API key; set OPENROUTER_API_KEY",
		})
	}
	return c.JSON(http.StatusInternalServerError, map[string]string{"error": err.Error()})
}
