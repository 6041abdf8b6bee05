// Package edgar fetches SEC EDGAR filings: ticker resolution, filing
// lookup by form type and date range, and document download. It returns
// raw text; segmentation and cleaning are the pipeline's concern.
package edgar

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"sync"
	"time"
)

const (
	submissionsURL    = "https://data.sec.gov/submissions/CIK%s.json"
	filingURL         = "https://www.sec.gov/Archives/edgar/data/%s/%s/%s"
	companyTickersURL = "https://www.sec.gov/files/company_tickers.json"
)

// Client talks to the SEC EDGAR APIs. SEC requires a descriptive
// User-Agent on every request.
type Client struct {
	httpClient *http.Client
	userAgent  string

	tickerMu    sync.Mutex
	tickerCache map[string]string // ticker -> zero-padded CIK
}

// NewClient returns an EDGAR client identifying itself as userAgent.
func NewClient(userAgent string) *Client {
	return &Client{
		httpClient: &http.Client{Timeout: 60 * time.Second},
		userAgent:  userAgent,
	}
}

// Filing identifies one filing in a company's submission history.
type Filing struct {
	AccessionNumber string `json:"accession_number"`
	FilingDate      string `json:"filing_date"` // YYYY-MM-DD
	Form            string `json:"form"`
	PrimaryDocument string `json:"primary_document"`
}

type submissionsResponse struct {
	CIK     string `json:"cik"`
	Name    string `json:"name"`
	Filings struct {
		Recent struct {
			AccessionNumber []string `json:"accessionNumber"`
			FilingDate      []string `json:"filingDate"`
			Form            []string `json:"form"`
			PrimaryDocument []string `json:"primaryDocument"`
		} `json:"recent"`
	} `json:"filings"`
}

// LookupCIK resolves a ticker symbol to a zero-padded CIK using SEC's
// company_tickers.json, caching the full table on first use.
func (c *Client) LookupCIK(ctx context.Context, ticker string) (string, error) {
	ticker = strings.ToUpper(strings.TrimSpace(ticker))

	c.tickerMu.Lock()
	defer c.tickerMu.Unlock()

	if cik, ok := c.tickerCache[ticker]; ok {
		return cik, nil
	}

	body, err := c.get(ctx, companyTickersURL)
	if err != nil {
		return "", fmt.Errorf("fetch ticker table: %w", err)
	}

	// The table maps arbitrary numeric keys to entries.
	var table map[string]struct {
		CIK    int64  `json:"cik_str"`
		Ticker string `json:"ticker"`
	}
	if err := json.Unmarshal(body, &table); err != nil {
		return "", fmt.Errorf("decode ticker table: %w", err)
	}

	if c.tickerCache == nil {
		c.tickerCache = make(map[string]string, len(table))
	}
	for _, entry := range table {
		c.tickerCache[strings.ToUpper(entry.Ticker)] = fmt.Sprintf("%010d", entry.CIK)
	}

	cik, ok := c.tickerCache[ticker]
	if !ok {
		return "", fmt.Errorf("unknown ticker %q", ticker)
	}
	return cik, nil
}

// ListFilings returns a company's recent filings of the given form type
// (e.g. "10-Q", "10-K", "8-K") within [startDate, endDate]; empty bounds
// mean unbounded. Dates are YYYY-MM-DD strings, which order correctly
// under plain string comparison.
func (c *Client) ListFilings(ctx context.Context, cik, form, startDate, endDate string) ([]Filing, error) {
	body, err := c.get(ctx, fmt.Sprintf(submissionsURL, cik))
	if err != nil {
		return nil, fmt.Errorf("fetch submissions: %w", err)
	}

	var subs submissionsResponse
	if err := json.Unmarshal(body, &subs); err != nil {
		return nil, fmt.Errorf("decode submissions: %w", err)
	}

	recent := subs.Filings.Recent
	var filings []Filing
	for i := range recent.AccessionNumber {
		if i >= len(recent.Form) || i >= len(recent.FilingDate) || i >= len(recent.PrimaryDocument) {
			break
		}
		if form != "" && !strings.EqualFold(recent.Form[i], form) {
			continue
		}
		date := recent.FilingDate[i]
		if startDate != "" && date < startDate {
			continue
		}
		if endDate != "" && date > endDate {
			continue
		}
		filings = append(filings, Filing{
			AccessionNumber: recent.AccessionNumber[i],
			FilingDate:      date,
			Form:            recent.Form[i],
			PrimaryDocument: recent.PrimaryDocument[i],
		})
	}
	return filings, nil
}

// FetchDocument downloads a filing's primary document and returns its raw
// bytes (usually HTML, sometimes plain text).
func (c *Client) FetchDocument(ctx context.Context, cik string, f Filing) ([]byte, error) {
	accession := strings.ReplaceAll(f.AccessionNumber, "-", "")
	url := fmt.Sprintf(filingURL, strings.TrimLeft(cik, "0"), accession, f.PrimaryDocument)
	body, err := c.get(ctx, url)
	if err != nil {
		return nil, fmt.Errorf("fetch filing document: %w", err)
	}
	return body, nil
}

func (c *Client) get(ctx context.Context, url string) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("User-Agent", c.userAgent)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("status %d from %s", resp.StatusCode, url)
	}
	return io.ReadAll(io.LimitReader(resp.Body, 64<<20))
}

// Close releases resources.
func (c *Client) Close() {
	c.httpClient.CloseIdleConnections()
}
