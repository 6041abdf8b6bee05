// Package classify calls an external financial sentiment model and
// aggregates per-chunk labels into per-section results.
package classify

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"
)

// Label is a sentiment label from the model's fixed vocabulary.
type Label string

const (
	Positive Label = "positive"
	Negative Label = "negative"
	Neutral  Label = "neutral"
)

// ValidLabel reports whether the model returned a known label.
func ValidLabel(l Label) bool {
	switch l {
	case Positive, Negative, Neutral:
		return true
	}
	return false
}

// Client calls a FinBERT-style sentiment inference endpoint.
type Client struct {
	baseURL    string
	httpClient *http.Client
	stats      *Stats
}

// NewClient returns a Client for the given inference endpoint base URL.
func NewClient(baseURL string) *Client {
	return &Client{
		baseURL: baseURL,
		httpClient: &http.Client{
			Timeout: 60 * time.Second,
		},
		stats: NewStats(time.Hour),
	}
}

type classifyRequest struct {
	Text string `json:"text"`
}

type classifyResponse struct {
	Label Label   `json:"label"`
	Score float64 `json:"score"`
	Error string  `json:"error,omitempty"`
}

// Classify sends cleaned text to the model and returns its label.
func (c *Client) Classify(ctx context.Context, text string) (Label, error) {
	body, err := json.Marshal(classifyRequest{Text: text})
	if err != nil {
		return "", fmt.Errorf("marshal request: %w", err)
	}

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/v1/sentiment", bytes.NewReader(body))
	if err != nil {
		return "", fmt.Errorf("create request: %w", err)
	}
	httpReq.Header.Set("Content-Type", "application/json")

	start := time.Now()
	resp, err := c.httpClient.Do(httpReq)
	if err != nil {
		return "", fmt.Errorf("sentiment api: %w", err)
	}
	defer resp.Body.Close()
	c.stats.Record(time.Since(start).Milliseconds())

	respBody, err := io.ReadAll(io.LimitReader(resp.Body, 1<<20))
	if err != nil {
		return "", fmt.Errorf("read response: %w", err)
	}

	if resp.StatusCode == http.StatusTooManyRequests || resp.StatusCode >= 500 {
		return "", &RetryableError{
			StatusCode: resp.StatusCode,
			Message:    string(respBody),
		}
	}
	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("sentiment api status %d: %s", resp.StatusCode, string(respBody))
	}

	var apiResp classifyResponse
	if err := json.Unmarshal(respBody, &apiResp); err != nil {
		return "", fmt.Errorf("decode response: %w", err)
	}
	if apiResp.Error != "" {
		return "", fmt.Errorf("sentiment model error: %s", apiResp.Error)
	}
	if !ValidLabel(apiResp.Label) {
		return "", fmt.Errorf("unknown sentiment label %q", apiResp.Label)
	}

	return apiResp.Label, nil
}

// StatsSnapshot returns current latency aggregates.
func (c *Client) StatsSnapshot() StatsSnapshot {
	return c.stats.Snapshot()
}

// Close releases resources.
func (c *Client) Close() {
	c.httpClient.CloseIdleConnections()
}

// RetryableError indicates a transient failure that can be retried.
type RetryableError struct {
	StatusCode int
	Message    string
}

func (e *RetryableError) Error() string {
	return fmt.Sprintf("retryable error (status %d): %s", e.StatusCode, truncate(e.Message, 200))
}

func truncate(s string, n int) string {
	if len(s) <= n {
		return s
	}
	return s[:n] + "..."
}
