package domain

import "context"

// ChatCompleter sends a user question plus a bounded data summary to an
// external completion service. Implementations return ErrChatUnavailable
// when no credential is configured.
type ChatCompleter interface {
	Ask(ctx context.Context, question, contextSummary string) (string, error)
}
