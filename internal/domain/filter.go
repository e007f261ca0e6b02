package domain

import (
	"time"

	"github.com/go-playground/validator/v10"
)

var validate = validator.New()

// FilterSpec is the declarative predicate set produced by the presentation
// layer. Predicates compose by AND; an unset predicate (nil/empty) matches
// every ticket. The zero value matches the whole snapshot.
type FilterSpec struct {
	Statuses []string   `json:"statuses,omitempty" validate:"omitempty,dive,min=1"`
	Clients  []string   `json:"clients,omitempty" validate:"omitempty,dive,min=1"`
	Query    string     `json:"query,omitempty"`
	From     *time.Time `json:"from,omitempty"`
	To       *time.Time `json:"to,omitempty"`
}

// HasDateRange reports whether any bound of the date range is set.
func (s FilterSpec) HasDateRange() bool {
	return s.From != nil || s.To != nil
}

// Validate rejects malformed specs before they reach the filter engine.
// The only structural invariant is that From must not lie after To.
func (s FilterSpec) Validate() error {
	if err := validate.Struct(s); err != nil {
		return &FilterError{Reason: err.Error()}
	}
	if s.From != nil && s.To != nil && s.From.After(*s.To) {
		return &FilterError{Reason: "date range start is after end"}
	}
	return nil
}

// ActiveCount returns how many predicates are set, mirroring the sidebar's
// active-filter badge.
func (s FilterSpec) ActiveCount() int {
	n := 0
	if len(s.Statuses) > 0 {
		n++
	}
	if len(s.Clients) > 0 {
		n++
	}
	if s.Query != "" {
		n++
	}
	if s.HasDateRange() {
		n++
	}
	return n
}
