package usecase

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/hashicorp/golang-lru/v2/expirable"

	"ticket-dashboard/internal/domain"
)

const chatCacheSize = 128

// ChatInput is one user question against the currently filtered data.
type ChatInput struct {
	Question string
	Spec     domain.FilterSpec
}

// ChatOutput carries the assistant's answer and whether it was served from
// the answer cache.
type ChatOutput struct {
	Answer string `json:"answer"`
	Cached bool   `json:"cached"`
}

// ChatUsecase answers questions about the filtered dataset via the external
// completion service. Context handed to the completer is always derived from
// the AggregateResult, never from raw tickets. Answers are cached per
// (snapshot, filters, question) with the same lifetime as the data cache,
// so repeated questions against unchanged data cost nothing.
type ChatUsecase interface {
	Ask(ctx context.Context, input ChatInput) (*ChatOutput, error)
}

type chatUsecase struct {
	dashboard DashboardUsecase
	summaries *SummaryBuilder
	completer domain.ChatCompleter
	answers   *expirable.LRU[string, string]
	logger    *slog.Logger
}

func NewChatUsecase(
	dashboard DashboardUsecase,
	summaries *SummaryBuilder,
	completer domain.ChatCompleter,
	answerTTL time.Duration,
	logger *slog.Logger,
) ChatUsecase {
	return &chatUsecase{
		dashboard: dashboard,
		summaries: summaries,
		completer: completer,
		answers:   expirable.NewLRU[string, string](chatCacheSize, nil, answerTTL),
		logger:    logger,
	}
}

func (u *chatUsecase) Ask(ctx context.Context, input ChatInput) (*ChatOutput, error) {
	question := strings.TrimSpace(input.Question)
	if question == "" {
		return nil, &domain.FilterError{Reason: "question must not be empty"}
	}

	dash, err := u.dashboard.GetDashboard(ctx, input.Spec)
	if err != nil {
		return nil, err
	}

	key := answerKey(dash.Meta.SnapshotID, input.Spec, question)
	if answer, ok := u.answers.Get(key); ok {
		return &ChatOutput{Answer: answer, Cached: true}, nil
	}

	summary := u.summaries.Build(dash.Aggregate)
	answer, err := u.completer.Ask(ctx, question, summary)
	if err != nil {
		return nil, err
	}

	u.answers.Add(key, answer)
	u.logger.Info("chat answer generated",
		slog.String("snapshot_id", dash.Meta.SnapshotID),
		slog.Int("question_len", len(question)))
	return &ChatOutput{Answer: answer}, nil
}

func answerKey(snapshotID string, spec domain.FilterSpec, question string) string {
	return fmt.Sprintf("%s|%s|%s|%s|%v|%v|%s",
		snapshotID,
		strings.Join(spec.Statuses, ","),
		strings.Join(spec.Clients, ","),
		spec.Query,
		spec.From,
		spec.To,
		question,
	)
}
