package usecase

import (
	"sort"

	"ticket-dashboard/internal/domain"
)

// Aggregator derives KPI scalars and grouped series from a filtered view.
// Summarize depends only on the view's contents: no wall clock, no
// randomness, so the same view always yields the same result.
type Aggregator struct {
	granularity domain.Granularity
}

func NewAggregator(granularity domain.Granularity) *Aggregator {
	if granularity != domain.GranularityDay {
		granularity = domain.GranularityMonth
	}
	return &Aggregator{granularity: granularity}
}

// Summarize computes the full AggregateResult for view.
func (a *Aggregator) Summarize(view domain.FilteredView) domain.AggregateResult {
	result := domain.AggregateResult{Total: len(view)}

	byStatus := map[string]int{}
	byClient := map[string]int{}
	byAssignee := map[string]int{}
	byPriority := map[string]int{}
	timeline := map[string]int{}

	for _, t := range view {
		switch t.StatusBucket() {
		case domain.StatusActive:
			result.Active++
		case domain.StatusInProgress:
			result.InProgress++
		case domain.StatusCompleted:
			result.Completed++
		case domain.StatusPending:
			result.Pending++
		default:
			result.Other++
		}

		byStatus[orKey(t.Status, domain.BucketNone)]++
		byClient[orKey(t.Client, domain.BucketNone)]++
		byAssignee[orKey(t.Assignee, domain.BucketUnassigned)]++
		byPriority[orKey(t.Priority, domain.BucketNone)]++

		if t.CreatedDate == nil {
			result.TimelineExcluded++
			continue
		}
		timeline[a.bucketKey(t)]++
	}

	result.ByStatus = sortedSeries(byStatus)
	result.ByClient = sortedSeries(byClient)
	result.ByAssignee = sortedSeries(byAssignee)
	result.ByPriority = sortedSeries(byPriority)
	result.Timeline = sortedTimeline(timeline)
	return result
}

func (a *Aggregator) bucketKey(t domain.Ticket) string {
	if a.granularity == domain.GranularityDay {
		return t.CreatedDate.Format("2006-01-02")
	}
	return t.CreatedDate.Format("2006-01")
}

func orKey(value, empty string) string {
	if value == "" {
		return empty
	}
	return value
}

// sortedSeries orders a frequency table by descending count, then key, so
// chart output is stable across runs.
func sortedSeries(counts map[string]int) []domain.SeriesEntry {
	entries := make([]domain.SeriesEntry, 0, len(counts))
	for k, v := range counts {
		entries = append(entries, domain.SeriesEntry{Key: k, Count: v})
	}
	sort.Slice(entries, func(i, j int) bool {
		if entries[i].Count != entries[j].Count {
			return entries[i].Count > entries[j].Count
		}
		return entries[i].Key < entries[j].Key
	})
	return entries
}

func sortedTimeline(counts map[string]int) []domain.DateBucket {
	buckets := make([]domain.DateBucket, 0, len(counts))
	for k, v := range counts {
		buckets = append(buckets, domain.DateBucket{Key: k, Count: v})
	}
	sort.Slice(buckets, func(i, j int) bool { return buckets[i].Key < buckets[j].Key })
	return buckets
}
