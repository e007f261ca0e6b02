package usecase

import (
	"strings"

	"ticket-dashboard/internal/domain"
)

// FilterEngine applies a FilterSpec to a Snapshot. Apply is a pure function:
// it preserves snapshot order, never mutates the snapshot, and is
// deterministic for a given (snapshot, spec) pair.
type FilterEngine struct{}

func NewFilterEngine() *FilterEngine {
	return &FilterEngine{}
}

// Apply returns the ordered subsequence of snapshot tickets matching spec.
// The spec must already be validated; Apply itself never fails.
func (e *FilterEngine) Apply(snapshot *domain.Snapshot, spec domain.FilterSpec) domain.FilteredView {
	if snapshot == nil {
		return nil
	}

	statuses := lowerSet(spec.Statuses)
	clients := lowerSet(spec.Clients)
	query := strings.ToLower(strings.TrimSpace(spec.Query))

	view := make(domain.FilteredView, 0, len(snapshot.Tickets))
	for _, t := range snapshot.Tickets {
		if !matchSet(statuses, t.Status) {
			continue
		}
		if !matchSet(clients, t.Client) {
			continue
		}
		if !matchDateRange(t, spec) {
			continue
		}
		if !matchQuery(t, query) {
			continue
		}
		view = append(view, t)
	}
	return view
}

// ApplyView re-filters an existing view. Filtering is a projection, so
// applying the same spec twice is idempotent.
func (e *FilterEngine) ApplyView(view domain.FilteredView, spec domain.FilterSpec) domain.FilteredView {
	snap := &domain.Snapshot{Tickets: view}
	return e.Apply(snap, spec)
}

func lowerSet(values []string) map[string]struct{} {
	if len(values) == 0 {
		return nil
	}
	set := make(map[string]struct{}, len(values))
	for _, v := range values {
		set[strings.ToLower(strings.TrimSpace(v))] = struct{}{}
	}
	return set
}

// matchSet implements set membership with the explicit "empty set matches
// everything" policy: an empty multi-select means no filter was chosen.
func matchSet(set map[string]struct{}, value string) bool {
	if set == nil {
		return true
	}
	_, ok := set[strings.ToLower(strings.TrimSpace(value))]
	return ok
}

// matchDateRange checks CreatedDate against [From, To] inclusive. A ticket
// without a created date is excluded whenever a range is set; it is never
// silently included.
func matchDateRange(t domain.Ticket, spec domain.FilterSpec) bool {
	if !spec.HasDateRange() {
		return true
	}
	if t.CreatedDate == nil {
		return false
	}
	if spec.From != nil && t.CreatedDate.Before(*spec.From) {
		return false
	}
	if spec.To != nil && t.CreatedDate.After(*spec.To) {
		return false
	}
	return true
}

// matchQuery is a case-insensitive substring match, OR'd across the text
// fields a user would scan: title, client, assignee, description.
func matchQuery(t domain.Ticket, query string) bool {
	if query == "" {
		return true
	}
	for _, field := range []string{t.Title, t.Client, t.Assignee, t.Description} {
		if strings.Contains(strings.ToLower(field), query) {
			return true
		}
	}
	return false
}
