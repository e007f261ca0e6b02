package domain

// Bucket keys for empty field values. Explicit buckets keep every ticket
// counted so series totals always reconcile with the KPI total.
const (
	BucketUnassigned = "(unassigned)"
	BucketNone       = "(none)"
)

// Granularity selects the timeline bucketing unit.
type Granularity string

const (
	GranularityDay   Granularity = "day"
	GranularityMonth Granularity = "month"
)

// DateBucket is one point of the timeline series, keyed by the bucket's
// formatted date ("2006-01-02" for day, "2006-01" for month).
type DateBucket struct {
	Key   string `json:"key"`
	Count int    `json:"count"`
}

// SeriesEntry is one bar of a grouped frequency series, ordered by the
// aggregator for deterministic output.
type SeriesEntry struct {
	Key   string `json:"key"`
	Count int    `json:"count"`
}

// AggregateResult carries the KPI scalars and chart-ready series derived
// from one FilteredView. Identical views always produce identical results.
type AggregateResult struct {
	Total      int `json:"total"`
	Active     int `json:"active"`
	InProgress int `json:"in_progress"`
	Completed  int `json:"completed"`
	Pending    int `json:"pending"`
	Other      int `json:"other"`

	ByStatus   []SeriesEntry `json:"by_status"`
	ByClient   []SeriesEntry `json:"by_client"`
	ByAssignee []SeriesEntry `json:"by_assignee"`
	ByPriority []SeriesEntry `json:"by_priority"`

	// Timeline buckets tickets by CreatedDate and is ordered by date.
	// Tickets without a CreatedDate are excluded from the timeline only;
	// TimelineExcluded makes the exclusion auditable.
	Timeline         []DateBucket `json:"timeline"`
	TimelineExcluded int          `json:"timeline_excluded"`
}
