package domain

import (
	"strings"
	"time"

	"github.com/google/uuid"
)

// StatusBucket is the canonical status classification used by KPIs and the
// progress funnel. Raw spreadsheet values are preserved on the ticket; the
// bucket is derived, never stored back.
type StatusBucket string

const (
	StatusActive     StatusBucket = "Active"
	StatusInProgress StatusBucket = "In Progress"
	StatusCompleted  StatusBucket = "Completed"
	StatusPending    StatusBucket = "Pending"
	StatusUnknown    StatusBucket = "Other"
)

var statusBuckets = map[string]StatusBucket{
	"active":      StatusActive,
	"ongoing":     StatusActive,
	"in progress": StatusInProgress,
	"in-progress": StatusInProgress,
	"inprogress":  StatusInProgress,
	"done":        StatusCompleted,
	"completed":   StatusCompleted,
	"closed":      StatusCompleted,
	"finished":    StatusCompleted,
	"pending":     StatusPending,
	"backlog":     StatusPending,
	"todo":        StatusPending,
	"paused":      StatusPending,
	"blocked":     StatusPending,
}

// CanonicalStatus maps a raw status value to its bucket. Unrecognized values
// map to StatusUnknown so they still count toward a bucket and KPI totals
// reconcile.
func CanonicalStatus(raw string) StatusBucket {
	if b, ok := statusBuckets[strings.ToLower(strings.TrimSpace(raw))]; ok {
		return b
	}
	return StatusUnknown
}

// Ticket is one normalized row of the source sheet. Tickets are immutable
// once a Snapshot is constructed. Date fields are nil when the source cell
// was empty or unparseable; a bad cell never fails the fetch.
type Ticket struct {
	ID          string     `json:"id"`
	Title       string     `json:"title"`
	Status      string     `json:"status"`
	Client      string     `json:"client,omitempty"`
	Assignee    string     `json:"assignee,omitempty"`
	Priority    string     `json:"priority,omitempty"`
	CreatedDate *time.Time `json:"created_date,omitempty"`
	DueDate     *time.Time `json:"due_date,omitempty"`
	Description string     `json:"description,omitempty"`
}

// StatusBucket returns the canonical bucket for the ticket's raw status.
func (t Ticket) StatusBucket() StatusBucket {
	return CanonicalStatus(t.Status)
}

// Snapshot is one immutable fetched copy of the full dataset. A new fetch
// always produces a new Snapshot; nothing mutates an existing one, which is
// what makes filtering and aggregation lock-free.
type Snapshot struct {
	ID              uuid.UUID
	Tickets         []Ticket
	FetchedAt       time.Time
	SourceSignature string
}

// NewSnapshot stamps a fetched record set with identity and fetch metadata.
func NewSnapshot(tickets []Ticket, fetchedAt time.Time, signature string) *Snapshot {
	return &Snapshot{
		ID:              uuid.New(),
		Tickets:         tickets,
		FetchedAt:       fetchedAt,
		SourceSignature: signature,
	}
}

// FilteredView is an ordered subsequence of a Snapshot's tickets. It shares
// the underlying ticket values and never mutates the Snapshot.
type FilteredView []Ticket
