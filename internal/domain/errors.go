package domain

import (
	"errors"
	"fmt"
)

// FetchErrorKind distinguishes the failure modes of a source fetch. An empty
// result is reported distinctly so the cache can decide whether stale data
// is still worth serving.
type FetchErrorKind string

const (
	FetchErrNetwork   FetchErrorKind = "network"
	FetchErrMalformed FetchErrorKind = "malformed"
	FetchErrEmpty     FetchErrorKind = "empty"
)

// FetchError wraps a failed source fetch with its classification.
type FetchError struct {
	Kind FetchErrorKind
	Err  error
}

func (e *FetchError) Error() string {
	if e.Err == nil {
		return fmt.Sprintf("fetch failed: %s", e.Kind)
	}
	return fmt.Sprintf("fetch failed (%s): %v", e.Kind, e.Err)
}

func (e *FetchError) Unwrap() error { return e.Err }

// NewFetchError classifies err under kind.
func NewFetchError(kind FetchErrorKind, err error) *FetchError {
	return &FetchError{Kind: kind, Err: err}
}

// ErrCacheUnavailable is returned only when no snapshot was ever fetched and
// the current attempt also failed: the one condition with nothing to show.
var ErrCacheUnavailable = errors.New("no ticket data available")

// ErrChatUnavailable marks the assistant as unconfigured or unreachable.
// Callers render a setup notice, never a hard error.
var ErrChatUnavailable = errors.New("chat assistant unavailable")

// FilterError reports a malformed FilterSpec. It is surfaced synchronously
// before any filtering happens.
type FilterError struct {
	Reason string
}

func (e *FilterError) Error() string {
	return fmt.Sprintf("invalid filter: %s", e.Reason)
}
