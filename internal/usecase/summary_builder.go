package usecase

import (
	"fmt"
	"strings"

	"ticket-dashboard/internal/domain"
)

const summaryTopN = 5

// SummaryBuilder renders an AggregateResult as the bounded textual context
// handed to the chat completer. The assistant never sees raw tickets, so the
// payload size is independent of dataset size.
type SummaryBuilder struct{}

func NewSummaryBuilder() *SummaryBuilder {
	return &SummaryBuilder{}
}

// Build produces a compact plain-text summary of the aggregate.
func (b *SummaryBuilder) Build(agg domain.AggregateResult) string {
	var sb strings.Builder

	fmt.Fprintf(&sb, "Ticket dataset summary: %d tickets total.\n", agg.Total)
	fmt.Fprintf(&sb, "KPIs: active=%d, in_progress=%d, completed=%d, pending=%d, other=%d.\n",
		agg.Active, agg.InProgress, agg.Completed, agg.Pending, agg.Other)

	writeSeries(&sb, "Status distribution", agg.ByStatus)
	writeSeries(&sb, "Top clients", agg.ByClient)
	writeSeries(&sb, "Top assignees", agg.ByAssignee)
	writeSeries(&sb, "Priority breakdown", agg.ByPriority)

	if len(agg.Timeline) > 0 {
		first := agg.Timeline[0]
		last := agg.Timeline[len(agg.Timeline)-1]
		fmt.Fprintf(&sb, "Timeline: %d buckets from %s to %s", len(agg.Timeline), first.Key, last.Key)
		if agg.TimelineExcluded > 0 {
			fmt.Fprintf(&sb, " (%d tickets without a created date excluded)", agg.TimelineExcluded)
		}
		sb.WriteString(".\n")
	}

	return sb.String()
}

func writeSeries(sb *strings.Builder, label string, series []domain.SeriesEntry) {
	if len(series) == 0 {
		return
	}
	limit := len(series)
	if limit > summaryTopN {
		limit = summaryTopN
	}
	parts := make([]string, 0, limit)
	for _, e := range series[:limit] {
		parts = append(parts, fmt.Sprintf("%s=%d", e.Key, e.Count))
	}
	fmt.Fprintf(sb, "%s: %s.\n", label, strings.Join(parts, ", "))
}
