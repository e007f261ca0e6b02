// Package exportfile serializes filtered views for download. Exports are
// pass-through formatting: exactly the view's tickets in filtered order,
// never re-filtered or reordered.
package exportfile

import (
	"fmt"
	"time"

	"ticket-dashboard/internal/domain"
	"ticket-dashboard/internal/usecase"
)

var exportHeader = []string{
	"ID", "Title", "Status", "Client", "Assignee", "Priority",
	"Created", "Due", "Description",
}

// Exporter dispatches over the closed format set. The HTML report also
// embeds the view's aggregate, so the exporter carries the aggregator.
type Exporter struct {
	aggregator *usecase.Aggregator
}

func NewExporter(aggregator *usecase.Aggregator) *Exporter {
	return &Exporter{aggregator: aggregator}
}

func (e *Exporter) Export(view domain.FilteredView, format domain.ExportFormat) ([]byte, error) {
	switch format {
	case domain.FormatCSV:
		return writeCSV(view)
	case domain.FormatXLSX:
		return writeXLSX(view)
	case domain.FormatHTML:
		return writeHTMLReport(view, e.aggregator.Summarize(view))
	}
	return nil, fmt.Errorf("unsupported export format %q", format)
}

func ticketRow(t domain.Ticket) []string {
	return []string{
		t.ID, t.Title, t.Status, t.Client, t.Assignee, t.Priority,
		formatDate(t.CreatedDate), formatDate(t.DueDate), t.Description,
	}
}

func formatDate(t *time.Time) string {
	if t == nil {
		return ""
	}
	return t.Format("2006-01-02")
}

var _ domain.Exporter = (*Exporter)(nil)
