package sheetsource

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNormalizeRows_HeaderAliases(t *testing.T) {
	header := []string{"Ticket ID", "Project Name", "Status", "Customer", "Resource", "Severity", "Start Date", "End Date", "Notes"}
	rows := [][]string{
		{"T-1", "Migrate DNS", "Active", "Acme", "mori", "High", "2025-07-01", "2025-07-31", "runbook attached"},
	}

	tickets := normalizeRows(header, rows)
	require.Len(t, tickets, 1)

	got := tickets[0]
	assert.Equal(t, "T-1", got.ID)
	assert.Equal(t, "Migrate DNS", got.Title)
	assert.Equal(t, "Active", got.Status)
	assert.Equal(t, "Acme", got.Client)
	assert.Equal(t, "mori", got.Assignee)
	assert.Equal(t, "High", got.Priority)
	require.NotNil(t, got.CreatedDate)
	assert.Equal(t, time.Date(2025, 7, 1, 0, 0, 0, 0, time.UTC), *got.CreatedDate)
	require.NotNil(t, got.DueDate)
	assert.Equal(t, "runbook attached", got.Description)
}

func TestNormalizeRows_ExactHeaderBeatsSubstring(t *testing.T) {
	// "Due Date" contains "due"; "Created" must still claim the created
	// column, not get shadowed by substring order.
	header := []string{"ID", "Title", "Status", "Created", "Due Date"}
	rows := [][]string{{"T-1", "x", "active", "2025-07-01", "2025-08-01"}}

	tickets := normalizeRows(header, rows)
	require.Len(t, tickets, 1)
	require.NotNil(t, tickets[0].CreatedDate)
	require.NotNil(t, tickets[0].DueDate)
	assert.Equal(t, time.July, tickets[0].CreatedDate.Month())
	assert.Equal(t, time.August, tickets[0].DueDate.Month())
}

func TestNormalizeRows_MissingIDGetsPositionalID(t *testing.T) {
	header := []string{"Title", "Status"}
	rows := [][]string{
		{"first", "active"},
		{"second", "done"},
	}

	tickets := normalizeRows(header, rows)
	require.Len(t, tickets, 2)
	assert.Equal(t, "row-1", tickets[0].ID)
	assert.Equal(t, "row-2", tickets[1].ID)
}

func TestNormalizeRows_DuplicateIDsGetSuffixed(t *testing.T) {
	header := []string{"ID", "Title", "Status"}
	rows := [][]string{
		{"T-1", "first", "active"},
		{"T-1", "dup", "done"},
	}

	tickets := normalizeRows(header, rows)
	require.Len(t, tickets, 2)
	assert.Equal(t, "T-1", tickets[0].ID)
	assert.Equal(t, "T-1-row-2", tickets[1].ID)
	assert.NotEqual(t, tickets[0].ID, tickets[1].ID)
}

func TestNormalizeRows_SkipsEmptyRows(t *testing.T) {
	header := []string{"ID", "Title", "Status"}
	rows := [][]string{
		{"T-1", "first", "active"},
		{"", "  ", ""},
		{"T-2", "second", "done"},
	}

	tickets := normalizeRows(header, rows)
	require.Len(t, tickets, 2)
	assert.Equal(t, "T-2", tickets[1].ID)
}

func TestNormalizeRows_ShortRowsAreTolerated(t *testing.T) {
	header := []string{"ID", "Title", "Status", "Client"}
	rows := [][]string{{"T-1", "only two cells"}}

	tickets := normalizeRows(header, rows)
	require.Len(t, tickets, 1)
	assert.Equal(t, "", tickets[0].Status)
	assert.Equal(t, "", tickets[0].Client)
}

func TestParseDate(t *testing.T) {
	cases := []struct {
		value string
		want  *time.Time
	}{
		{"2025-07-01", datePtr(2025, time.July, 1)},
		{"2025-07-01 09:30:00", timePtr(time.Date(2025, 7, 1, 9, 30, 0, 0, time.UTC))},
		{"2025-07-01T09:30:00Z", timePtr(time.Date(2025, 7, 1, 9, 30, 0, 0, time.UTC))},
		{"07/15/2025", datePtr(2025, time.July, 15)},
		{"Jan 2, 2026", datePtr(2026, time.January, 2)},
		{"  2025-07-01  ", datePtr(2025, time.July, 1)},
		{"", nil},
		{"not a date", nil},
		{"2025-13-45", nil},
	}

	for _, tc := range cases {
		t.Run(tc.value, func(t *testing.T) {
			got := parseDate(tc.value)
			if tc.want == nil {
				assert.Nil(t, got)
				return
			}
			require.NotNil(t, got)
			assert.True(t, tc.want.Equal(*got), "want %s, got %s", tc.want, got)
		})
	}
}

func datePtr(year int, month time.Month, day int) *time.Time {
	return timePtr(time.Date(year, month, day, 0, 0, 0, 0, time.UTC))
}

func timePtr(t time.Time) *time.Time { return &t }
