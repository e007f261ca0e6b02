// Package sheetsource fetches the ticket spreadsheet from its published
// Google Sheets endpoints (CSV or XLSX export) or from the Sheets API with a
// service account, and normalizes rows into domain tickets.
package sheetsource

import (
	"fmt"
	"strings"
	"time"

	"ticket-dashboard/internal/domain"
)

// Column aliases, checked case-insensitively against the header row. The
// sheet is maintained by hand, so header spelling drifts; matching is by
// substring the same way the source dashboard located its columns.
var columnAliases = map[string][]string{
	"id":          {"id", "ticket id", "key"},
	"title":       {"title", "summary", "project", "name"},
	"status":      {"status"},
	"client":      {"client", "customer", "account"},
	"assignee":    {"assignee", "resource", "owner"},
	"priority":    {"priority", "severity"},
	"created":     {"created", "start"},
	"due":         {"due", "end"},
	"description": {"description", "details", "notes"},
}

// dateLayouts are tried in order; sheets exported by different locales mix
// these freely.
var dateLayouts = []string{
	"2006-01-02",
	"2006-01-02 15:04:05",
	time.RFC3339,
	"01/02/2006",
	"02/01/2006",
	"Jan 2, 2006",
}

type columnMap map[string]int

// mapColumns resolves header names to column indexes. Exact matches win over
// substring matches so a "Due Date" column is not claimed by "date".
func mapColumns(header []string) columnMap {
	cols := columnMap{}
	for field, aliases := range columnAliases {
		for _, alias := range aliases {
			if idx := findColumn(header, alias); idx >= 0 {
				cols[field] = idx
				break
			}
		}
	}
	return cols
}

func findColumn(header []string, alias string) int {
	for i, h := range header {
		if strings.EqualFold(strings.TrimSpace(h), alias) {
			return i
		}
	}
	for i, h := range header {
		if strings.Contains(strings.ToLower(strings.TrimSpace(h)), alias) {
			return i
		}
	}
	return -1
}

func (c columnMap) get(row []string, field string) string {
	idx, ok := c[field]
	if !ok || idx >= len(row) {
		return ""
	}
	return strings.TrimSpace(row[idx])
}

// parseDate is deliberately lenient: a cell that parses under no known
// layout becomes a nil date rather than failing the fetch.
func parseDate(value string) *time.Time {
	value = strings.TrimSpace(value)
	if value == "" {
		return nil
	}
	for _, layout := range dateLayouts {
		if t, err := time.Parse(layout, value); err == nil {
			return &t
		}
	}
	return nil
}

// normalizeRows converts raw table rows into tickets. Rows without a stable
// identifier get a positional one, making the dataset re-derived (not
// diffable) across fetches. Unrecognized status values pass through
// verbatim; the aggregation layer buckets them as "Other".
func normalizeRows(header []string, rows [][]string) []domain.Ticket {
	cols := mapColumns(header)
	tickets := make([]domain.Ticket, 0, len(rows))
	seen := make(map[string]struct{}, len(rows))

	for i, row := range rows {
		if emptyRow(row) {
			continue
		}
		id := cols.get(row, "id")
		if id == "" {
			id = fmt.Sprintf("row-%d", i+1)
		}
		// Duplicate source IDs would break per-snapshot uniqueness; fall
		// back to a positional suffix for the duplicates.
		if _, dup := seen[id]; dup {
			id = fmt.Sprintf("%s-row-%d", id, i+1)
		}
		seen[id] = struct{}{}

		tickets = append(tickets, domain.Ticket{
			ID:          id,
			Title:       cols.get(row, "title"),
			Status:      cols.get(row, "status"),
			Client:      cols.get(row, "client"),
			Assignee:    cols.get(row, "assignee"),
			Priority:    cols.get(row, "priority"),
			CreatedDate: parseDate(cols.get(row, "created")),
			DueDate:     parseDate(cols.get(row, "due")),
			Description: cols.get(row, "description"),
		})
	}
	return tickets
}

func emptyRow(row []string) bool {
	for _, cell := range row {
		if strings.TrimSpace(cell) != "" {
			return false
		}
	}
	return true
}
