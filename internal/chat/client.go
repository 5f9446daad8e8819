package chat

import (
	"bytes"
	"context"
	"crypto/tls"
	"encoding/json"
	"fmt"
	"io"
	"net"
	"net/http"
	"strings"
	"time"

	"github.com/Iron-Ham/debateai/internal/errors"
)

// Message roles understood by chat-completions endpoints.
const (
	RoleSystem    = "system"
	RoleUser      = "user"
	RoleAssistant = "assistant"
)

// Message is one entry in a participant's conversation history.
type Message struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

// Completer produces one completion from a message history. Implementations
// must treat history as read-only.
type Completer interface {
	// Complete sends the full history and returns the first choice's
	// message content. An empty response body is returned as "" with a
	// nil error; deciding what to do about emptiness is the caller's job.
	Complete(ctx context.Context, model string, history []Message, maxTokens int) (string, error)
}

// Default client policy. Request and connect timeouts follow the upstream
// endpoint contract; retries use exponential backoff (2s, 4s).
const (
	DefaultRequestTimeout = 120 * time.Second
	DefaultConnectTimeout = 30 * time.Second
	DefaultMaxAttempts    = 3
)

// ClientConfig configures a Client.
type ClientConfig struct {
	// BaseURL is the API root, e.g. "https://api.openai.com/v1".
	BaseURL string
	// APIKey is sent as a bearer token when non-empty.
	APIKey string
	// InsecureSkipVerify disables TLS certificate validation. Opt-in only,
	// for self-signed local model servers.
	InsecureSkipVerify bool
	// RequestTimeout bounds one whole request. Zero means the default.
	RequestTimeout time.Duration
	// ConnectTimeout bounds connection establishment. Zero means the default.
	ConnectTimeout time.Duration
	// MaxAttempts is the total number of transport attempts per completion.
	// Zero means the default.
	MaxAttempts int
}

// Client is an HTTP chat-completions client with retry and backoff.
// It is safe for concurrent use, though the orchestrator issues requests
// strictly sequentially.
type Client struct {
	cfg        ClientConfig
	httpClient *http.Client

	// sleep is swapped out in tests to avoid real backoff delays.
	sleep func(ctx context.Context, d time.Duration) error
}

// NewClient creates a Client from config, applying defaults for unset
// timeouts and attempt counts.
func NewClient(cfg ClientConfig) *Client {
	if cfg.RequestTimeout <= 0 {
		cfg.RequestTimeout = DefaultRequestTimeout
	}
	if cfg.ConnectTimeout <= 0 {
		cfg.ConnectTimeout = DefaultConnectTimeout
	}
	if cfg.MaxAttempts <= 0 {
		cfg.MaxAttempts = DefaultMaxAttempts
	}

	transport := &http.Transport{
		DialContext: (&net.Dialer{
			Timeout: cfg.ConnectTimeout,
		}).DialContext,
	}
	if cfg.InsecureSkipVerify {
		transport.TLSClientConfig = &tls.Config{InsecureSkipVerify: true}
	}

	return &Client{
		cfg: cfg,
		httpClient: &http.Client{
			Timeout:   cfg.RequestTimeout,
			Transport: transport,
		},
		sleep: sleepContext,
	}
}

// completionRequest is the outbound chat-completions payload.
type completionRequest struct {
	Model               string    `json:"model"`
	Messages            []Message `json:"messages"`
	MaxCompletionTokens int       `json:"max_completion_tokens,omitempty"`
}

// completionResponse carries the slice of the response we care about.
type completionResponse struct {
	Choices []struct {
		Message struct {
			Role    string `json:"role"`
			Content string `json:"content"`
		} `json:"message"`
	} `json:"choices"`
}

// Complete implements Completer. Transport and endpoint failures are
// retried up to MaxAttempts with 2s then 4s backoff; the last failure is
// wrapped in an errors.CompletionError once attempts are exhausted.
func (c *Client) Complete(ctx context.Context, model string, history []Message, maxTokens int) (string, error) {
	payload, err := json.Marshal(completionRequest{
		Model:               model,
		Messages:            history,
		MaxCompletionTokens: maxTokens,
	})
	if err != nil {
		return "", fmt.Errorf("chat: marshal request: %w", err)
	}

	var lastErr error
	for attempt := 0; attempt < c.cfg.MaxAttempts; attempt++ {
		if attempt > 0 {
			delay := time.Duration(1<<attempt) * time.Second
			if err := c.sleep(ctx, delay); err != nil {
				return "", err
			}
		}
		if err := ctx.Err(); err != nil {
			return "", err
		}

		content, err := c.doRequest(ctx, payload)
		if err == nil {
			return content, nil
		}
		lastErr = err
	}

	return "", &errors.CompletionError{
		Model:    model,
		Attempts: c.cfg.MaxAttempts,
		Err:      lastErr,
	}
}

// doRequest performs a single attempt against the endpoint.
func (c *Client) doRequest(ctx context.Context, payload []byte) (string, error) {
	url := strings.TrimRight(c.cfg.BaseURL, "/") + "/chat/completions"

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(payload))
	if err != nil {
		return "", fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	if c.cfg.APIKey != "" {
		req.Header.Set("Authorization", "Bearer "+c.cfg.APIKey)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return "", fmt.Errorf("send request: %w", err)
	}
	defer func() { _ = resp.Body.Close() }()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", fmt.Errorf("read response: %w", err)
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return "", fmt.Errorf("endpoint error (status %d): %s", resp.StatusCode, truncateBody(body))
	}

	var parsed completionResponse
	if err := json.Unmarshal(body, &parsed); err != nil {
		return "", fmt.Errorf("unmarshal response: %w", err)
	}

	// Absent choices or content is a successful empty response.
	if len(parsed.Choices) == 0 {
		return "", nil
	}
	return parsed.Choices[0].Message.Content, nil
}

// truncateBody keeps error messages readable when endpoints return
// HTML error pages.
func truncateBody(body []byte) string {
	const max = 512
	s := strings.TrimSpace(string(body))
	if len(s) > max {
		return s[:max] + "..."
	}
	return s
}

// sleepContext sleeps for d or until ctx is done, returning ctx.Err() in
// the latter case.
func sleepContext(ctx context.Context, d time.Duration) error {
	timer := time.NewTimer(d)
	defer timer.Stop()

	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-timer.C:
		return nil
	}
}
