// Package openrouter bridges chat questions to the OpenRouter
// chat-completions API.
package openrouter

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"strings"

	"golang.org/x/time/rate"

	"ticket-dashboard/internal/domain"
	"ticket-dashboard/internal/infra/httpclient"
)

const attemptsPerModel = 2

const systemPrompt = "You are an assistant analyzing an R&D ticket dashboard. " +
	"Answer concisely using only the dataset summary provided. " +
	"Be specific with numbers."

type chatMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type chatRequest struct {
	Model    string        `json:"model"`
	Messages []chatMessage `json:"messages"`
}

type chatResponse struct {
	Choices []struct {
		Message struct {
			Content string `json:"content"`
		} `json:"message"`
	} `json:"choices"`
}

// Client calls OpenRouter with a fallback model list: models that reject the
// request (404/400) are skipped, rate-limited attempts are retried once.
// Without an API key every Ask returns domain.ErrChatUnavailable so the
// caller can render a setup notice instead of an error.
type Client struct {
	url     string
	apiKey  string
	models  []string
	client  *http.Client
	limiter *rate.Limiter
	logger  *slog.Logger
}

func NewClient(url, apiKey string, models []string, client *http.Client, logger *slog.Logger) *Client {
	if client == nil {
		client = httpclient.NewPooledClient(httpclient.DefaultTimeout)
	}
	return &Client{
		url:    url,
		apiKey: apiKey,
		models: models,
		client: client,
		// OpenRouter free-tier models throttle aggressively; pacing
		// requests costs less than burning an attempt on a 429.
		limiter: rate.NewLimiter(rate.Limit(1), 3),
		logger:  logger,
	}
}

// Configured reports whether an API key is present.
func (c *Client) Configured() bool { return c.apiKey != "" }

func (c *Client) Ask(ctx context.Context, question, contextSummary string) (string, error) {
	if !c.Configured() {
		return "", domain.ErrChatUnavailable
	}

	messages := []chatMessage{
		{Role: "system", Content: systemPrompt + "\n\n" + contextSummary},
		{Role: "user", Content: question},
	}

	var lastErr error
	for _, model := range c.models {
		answer, retryable, err := c.askModel(ctx, model, messages)
		if err == nil {
			return answer, nil
		}
		lastErr = err
		if !retryable {
			// Context cancelled or deadline exceeded; fallback models
			// won't fare better.
			return "", fmt.Errorf("%w: %v", domain.ErrChatUnavailable, err)
		}
		c.logger.Warn("chat model failed, trying next",
			slog.String("model", model),
			slog.String("error", err.Error()))
	}
	return "", fmt.Errorf("%w: all models failed: %v", domain.ErrChatUnavailable, lastErr)
}

// askModel tries one model with a bounded number of attempts. The second
// return value reports whether moving on to a fallback model makes sense.
func (c *Client) askModel(ctx context.Context, model string, messages []chatMessage) (string, bool, error) {
	payload, err := json.Marshal(chatRequest{Model: model, Messages: messages})
	if err != nil {
		return "", false, fmt.Errorf("failed to marshal chat request: %w", err)
	}

	var lastErr error
	for attempt := 0; attempt < attemptsPerModel; attempt++ {
		if err := c.limiter.Wait(ctx); err != nil {
			return "", false, err
		}

		req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.url, bytes.NewReader(payload))
		if err != nil {
			return "", false, err
		}
		req.Header.Set("Content-Type", "application/json")
		req.Header.Set("Authorization", "Bearer "+c.apiKey)

		resp, err := c.client.Do(req)
		if err != nil {
			if ctx.Err() != nil {
				return "", false, ctx.Err()
			}
			lastErr = err
			continue
		}

		answer, status, err := decodeResponse(resp)
		switch {
		case err == nil:
			return answer, true, nil
		case status == http.StatusTooManyRequests:
			lastErr = err
			continue
		case status == http.StatusNotFound || status == http.StatusBadRequest:
			// Model not available on this account; no point retrying it.
			return "", true, err
		default:
			lastErr = err
		}
	}
	return "", true, lastErr
}

func decodeResponse(resp *http.Response) (string, int, error) {
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return "", resp.StatusCode, fmt.Errorf("completions endpoint returned %d: %s", resp.StatusCode, string(body))
	}

	var parsed chatResponse
	if err := json.NewDecoder(resp.Body).Decode(&parsed); err != nil {
		return "", resp.StatusCode, fmt.Errorf("failed to decode completion: %w", err)
	}
	if len(parsed.Choices) == 0 {
		return "", resp.StatusCode, fmt.Errorf("completion contained no choices")
	}
	return strings.TrimSpace(parsed.Choices[0].Message.Content), resp.StatusCode, nil
}

var _ domain.ChatCompleter = (*Client)(nil)
