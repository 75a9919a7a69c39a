package aiclient

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"strings"
	"time"
)

const (
	defaultRetries = 2
	defaultTimeout = 30 * time.Second
)

// Request is one generation request sent to the relay.
type Request struct {
	Prompt            string `json:"prompt"`
	SystemInstruction string `json:"systemInstruction,omitempty"`
}

// Client calls the generation relay at baseURL.
type Client struct {
	baseURL string
	httpc   *http.Client
	logger  *slog.Logger
	retries int
	timeout time.Duration
}

// Option configures a Client.
type Option func(*Client)

// WithHTTPClient replaces the underlying HTTP client.
func WithHTTPClient(h *http.Client) Option {
	return func(c *Client) { c.httpc = h }
}

// WithLogger sets the client logger.
func WithLogger(l *slog.Logger) Option {
	return func(c *Client) { c.logger = l }
}

// WithRetries sets how many times a failed connection attempt is retried.
func WithRetries(n int) Option {
	return func(c *Client) { c.retries = n }
}

// WithTimeout bounds each request when the caller's context carries no
// deadline of its own.
func WithTimeout(d time.Duration) Option {
	return func(c *Client) { c.timeout = d }
}

// New creates a Client for the relay at baseURL.
func New(baseURL string, opts ...Option) *Client {
	c := &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		httpc:   http.DefaultClient,
		logger:  slog.Default(),
		retries: defaultRetries,
		timeout: defaultTimeout,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// IsCancellation reports whether err is a context cancellation or deadline
// expiry rather than a service failure.
func IsCancellation(err error) bool {
	return errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded)
}

// StreamText sends req and streams the response body. Each chunk is passed to
// onDelta as it arrives; the accumulated text is returned when the stream
// ends. A nil onDelta collects the text silently.
//
// Connection failures are retried with a linearly growing backoff. HTTP error
// statuses and mid-stream read failures are terminal. A cancelled context is
// returned as the context's error, unwrapped, and is never retried.
func (c *Client) StreamText(ctx context.Context, req Request, onDelta func(chunk string)) (string, error) {
	if c.timeout > 0 {
		if _, ok := ctx.Deadline(); !ok {
			var cancel context.CancelFunc
			ctx, cancel = context.WithTimeout(ctx, c.timeout)
			defer cancel()
		}
	}

	body, err := json.Marshal(req)
	if err != nil {
		return "", fmt.Errorf("encoding request: %w", err)
	}

	resp, err := c.post(ctx, body)
	if err != nil {
		if IsCancellation(err) {
			return "", err
		}
		return "", fmt.Errorf("AI Service is not available: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("AI Service is not available: %w", decodeError(resp))
	}

	var sb strings.Builder
	buf := make([]byte, 4096)
	for {
		n, err := resp.Body.Read(buf)
		if n > 0 {
			chunk := string(buf[:n])
			sb.WriteString(chunk)
			if onDelta != nil {
				onDelta(chunk)
			}
		}
		if err == io.EOF {
			return sb.String(), nil
		}
		if err != nil {
			if ctx.Err() != nil {
				return sb.String(), ctx.Err()
			}
			return sb.String(), fmt.Errorf("AI Service is not available: %w", err)
		}
	}
}

// GenerateText sends req and returns the complete response text.
func (c *Client) GenerateText(ctx context.Context, req Request) (string, error) {
	return c.StreamText(ctx, req, nil)
}

// post performs the HTTP call with retries. Only transport-level failures are
// retried; a response with any status is handed back to the caller.
func (c *Client) post(ctx context.Context, body []byte) (*http.Response, error) {
	var lastErr error
	for attempt := 0; attempt <= c.retries; attempt++ {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		if attempt > 0 {
			c.logger.Debug("retrying generation request", "attempt", attempt)
			timer := time.NewTimer(time.Duration(attempt) * time.Second)
			select {
			case <-ctx.Done():
				timer.Stop()
				return nil, ctx.Err()
			case <-timer.C:
			}
		}

		httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/api/generate", bytes.NewReader(body))
		if err != nil {
			return nil, err
		}
		httpReq.Header.Set("Content-Type", "application/json")

		resp, err := c.httpc.Do(httpReq)
		if err == nil {
			return resp, nil
		}
		if ctx.Err() != nil {
			return nil, ctx.Err()
		}
		lastErr = err
	}
	c.logger.Error("generation request failed after retries", "error", lastErr, "retries", c.retries)
	return nil, lastErr
}

// decodeError extracts the relay's JSON error payload, falling back to a
// status-based message when the body is not the expected shape.
func decodeError(resp *http.Response) error {
	var payload struct {
		Error string `json:"error"`
	}
	data, _ := io.ReadAll(io.LimitReader(resp.Body, 1<<16))
	if err := json.Unmarshal(data, &payload); err == nil && payload.Error != "" {
		return errors.New(payload.Error)
	}
	return fmt.Errorf("request failed with status %d", resp.StatusCode)
}
