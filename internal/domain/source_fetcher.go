package domain

import "context"

// SourceFetcher retrieves the remote tabular source and parses it into a
// normalized Snapshot. Implementations have no side effects beyond the
// returned snapshot; they never touch the cache.
type SourceFetcher interface {
	Fetch(ctx context.Context) (*Snapshot, error)
	// Signature identifies which configured source this fetcher reads.
	Signature() string
}
