// Package fred fetches economic time series from the FRED API and
// enriches observations with period-over-period change labels.
package fred

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"time"
)

const defaultBaseURL = "https://api.stlouisfed.org/fred"

// Client communicates with the FRED HTTP API.
type Client struct {
	baseURL    string
	apiKey     string
	httpClient *http.Client
}

// NewClient returns a FRED client. An empty baseURL uses the public API.
func NewClient(baseURL, apiKey string) *Client {
	if baseURL == "" {
		baseURL = defaultBaseURL
	}
	return &Client{
		baseURL: baseURL,
		apiKey:  apiKey,
		httpClient: &http.Client{
			Timeout: 30 * time.Second,
		},
	}
}

// SeriesInfo describes one FRED series.
type SeriesInfo struct {
	ID        string `json:"id"`
	Title     string `json:"title"`
	Frequency string `json:"frequency"`
	Units     string `json:"units"`
}

// Observation is one data point. Change is the difference from the
// previous observation; Label classifies it as good, bad, or neutral.
// The first row and unparseable values are neutral.
type Observation struct {
	Date   string   `json:"date"`
	Value  string   `json:"value"`
	Change *float64 `json:"change"`
	Label  string   `json:"label"`
}

// ObservationRequest narrows an Observations query. Zero values mean no
// constraint.
type ObservationRequest struct {
	SeriesID  string
	StartDate string // YYYY-MM-DD
	EndDate   string // YYYY-MM-DD
	Frequency string // e.g. "m", "q", "a"
	MaxRows   int
}

// SearchSeries searches FRED for series matching the text.
func (c *Client) SearchSeries(ctx context.Context, text string, limit int) ([]SeriesInfo, error) {
	q := url.Values{}
	q.Set("search_text", text)
	q.Set("limit", strconv.Itoa(limit))

	var resp struct {
		Seriess []SeriesInfo `json:"seriess"`
	}
	if err := c.get(ctx, "/series/search", q, &resp); err != nil {
		return nil, err
	}
	return resp.Seriess, nil
}

// SeriesInfo fetches metadata for one series.
func (c *Client) SeriesInfo(ctx context.Context, seriesID string) (SeriesInfo, error) {
	q := url.Values{}
	q.Set("series_id", seriesID)

	var resp struct {
		Seriess []SeriesInfo `json:"seriess"`
	}
	if err := c.get(ctx, "/series", q, &resp); err != nil {
		return SeriesInfo{}, err
	}
	if len(resp.Seriess) == 0 {
		return SeriesInfo{}, fmt.Errorf("series %q not found", seriesID)
	}
	return resp.Seriess[0], nil
}

// Observations fetches a series' data points and labels each one against
// its predecessor.
func (c *Client) Observations(ctx context.Context, req ObservationRequest) ([]Observation, error) {
	q := url.Values{}
	q.Set("series_id", req.SeriesID)
	if req.StartDate != "" {
		q.Set("observation_start", req.StartDate)
	}
	if req.EndDate != "" {
		q.Set("observation_end", req.EndDate)
	}
	if req.Frequency != "" {
		q.Set("frequency", req.Frequency)
	}
	if req.MaxRows > 0 {
		q.Set("limit", strconv.Itoa(req.MaxRows))
	}

	var resp struct {
		Observations []Observation `json:"observations"`
	}
	if err := c.get(ctx, "/series/observations", q, &resp); err != nil {
		return nil, err
	}

	LabelObservations(resp.Observations)
	return resp.Observations, nil
}

// LabelObservations fills Change and Label in place. The first row is
// the baseline (change 0); a row following an unparseable value has no
// change and stays neutral.
func LabelObservations(obs []Observation) {
	var prev float64
	havePrev := false
	for i := range obs {
		value, err := strconv.ParseFloat(obs[i].Value, 64)
		if err != nil {
			obs[i].Change = nil
			obs[i].Label = "neutral"
			havePrev = false
			continue
		}
		switch {
		case i == 0:
			zero := 0.0
			obs[i].Change = &zero
			obs[i].Label = "neutral"
		case havePrev:
			change := value - prev
			obs[i].Change = &change
			obs[i].Label = labelChange(change)
		default:
			obs[i].Change = nil
			obs[i].Label = "neutral"
		}
		prev = value
		havePrev = true
	}
}

// labelChange maps a change value to good, bad, or neutral.
func labelChange(change float64) string {
	switch {
	case change > 0:
		return "good"
	case change < 0:
		return "bad"
	default:
		return "neutral"
	}
}

func (c *Client) get(ctx context.Context, path string, q url.Values, out any) error {
	q.Set("api_key", c.apiKey)
	q.Set("file_type", "json")

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+path+"?"+q.Encode(), nil)
	if err != nil {
		return fmt.Errorf("create request: %w", err)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("fred api: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(io.LimitReader(resp.Body, 16<<20))
	if err != nil {
		return fmt.Errorf("read response: %w", err)
	}
	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("fred api status %d: %s", resp.StatusCode, truncate(string(body), 200))
	}
	if err := json.Unmarshal(body, out); err != nil {
		return fmt.Errorf("decode response: %w", err)
	}
	return nil
}

func truncate(s string, n int) string {
	if len(s) <= n {
		return s
	}
	return s[:n] + "..."
}

// Close releases resources.
func (c *Client) Close() {
	c.httpClient.CloseIdleConnections()
}
