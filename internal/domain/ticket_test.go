package domain_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"ticket-dashboard/internal/domain"
)

func TestCanonicalStatus(t *testing.T) {
	cases := []struct {
		raw  string
		want domain.StatusBucket
	}{
		{"active", domain.StatusActive},
		{"Active", domain.StatusActive},
		{"ONGOING", domain.StatusActive},
		{"in progress", domain.StatusInProgress},
		{"In-Progress", domain.StatusInProgress},
		{"InProgress", domain.StatusInProgress},
		{"done", domain.StatusCompleted},
		{"Completed", domain.StatusCompleted},
		{"closed", domain.StatusCompleted},
		{"finished", domain.StatusCompleted},
		{"pending", domain.StatusPending},
		{"Backlog", domain.StatusPending},
		{"todo", domain.StatusPending},
		{"paused", domain.StatusPending},
		{"blocked", domain.StatusPending},
		{"  active  ", domain.StatusActive},
		{"", domain.StatusUnknown},
		{"weird-status", domain.StatusUnknown},
		{"on hold", domain.StatusUnknown},
	}

	for _, tc := range cases {
		t.Run(tc.raw, func(t *testing.T) {
			assert.Equal(t, tc.want, domain.CanonicalStatus(tc.raw))
		})
	}
}

func TestNewSnapshot(t *testing.T) {
	fetched := time.Date(2025, 9, 1, 12, 0, 0, 0, time.UTC)
	tickets := []domain.Ticket{{ID: "t1"}, {ID: "t2"}}

	snap := domain.NewSnapshot(tickets, fetched, "csv:example")
	require.NotNil(t, snap)
	assert.Len(t, snap.Tickets, 2)
	assert.Equal(t, fetched, snap.FetchedAt)
	assert.Equal(t, "csv:example", snap.SourceSignature)

	other := domain.NewSnapshot(tickets, fetched, "csv:example")
	assert.NotEqual(t, snap.ID, other.ID, "every fetch gets its own identity")
}

func TestFilterSpec_Validate(t *testing.T) {
	from := time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)
	to := time.Date(2025, 6, 30, 0, 0, 0, 0, time.UTC)

	t.Run("zero value is valid", func(t *testing.T) {
		assert.NoError(t, domain.FilterSpec{}.Validate())
	})

	t.Run("ordered range is valid", func(t *testing.T) {
		spec := domain.FilterSpec{From: &from, To: &to}
		assert.NoError(t, spec.Validate())
	})

	t.Run("single bound is valid", func(t *testing.T) {
		assert.NoError(t, domain.FilterSpec{From: &from}.Validate())
		assert.NoError(t, domain.FilterSpec{To: &to}.Validate())
	})

	t.Run("from after to is rejected", func(t *testing.T) {
		spec := domain.FilterSpec{From: &to, To: &from}
		err := spec.Validate()
		require.Error(t, err)

		var ferr *domain.FilterError
		assert.ErrorAs(t, err, &ferr)
	})
}

func TestFilterSpec_ActiveCount(t *testing.T) {
	from := time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)

	assert.Equal(t, 0, domain.FilterSpec{}.ActiveCount())
	assert.Equal(t, 1, domain.FilterSpec{Statuses: []string{"active"}}.ActiveCount())
	assert.Equal(t, 1, domain.FilterSpec{From: &from}.ActiveCount())

	full := domain.FilterSpec{
		Statuses: []string{"active"},
		Clients:  []string{"acme"},
		Query:    "login",
		From:     &from,
	}
	assert.Equal(t, 4, full.ActiveCount())
}

func TestParseExportFormat(t *testing.T) {
	for _, raw := range []string{"csv", "CSV", " xlsx ", "html"} {
		format, err := domain.ParseExportFormat(raw)
		require.NoError(t, err, raw)
		assert.NotEmpty(t, format.ContentType())
	}

	_, err := domain.ParseExportFormat("pdf")
	assert.Error(t, err)
}
