package client

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"golang.org/x/time/rate"

	"github.com/JohnDeved/no-spoilers/internal/provider"
)

const (
	// Present on the results page once the listing has rendered.
	resultsSelector = ".results-sublist"
	// Stream boxes may never appear, so the match page only waits for its body.
	matchSelector = "body"
)

// Fetcher returns a page's HTML. waitSelector names an element the page must
// contain before it counts as loaded; fetchers that can't wait may ignore it.
type Fetcher interface {
	Fetch(ctx context.Context, pageURL, waitSelector string) (string, error)
}

// Client scrapes results and match pages. It implements provider.PageDataProvider.
type Client struct {
	fetcher    Fetcher
	resultsURL string
	now        func() time.Time
}

var _ provider.PageDataProvider = (*Client)(nil)

// New creates a scraper for the given results page.
func New(resultsURL string, f Fetcher) *Client {
	return &Client{
		fetcher:    f,
		resultsURL: resultsURL,
		now:        time.Now,
	}
}

// ResultsURL returns the configured results page.
func (c *Client) ResultsURL() string {
	return c.resultsURL
}

// FetchDayListings scrapes the results page into per-day listings.
func (c *Client) FetchDayListings(ctx context.Context) ([]provider.DayListing, error) {
	page, err := c.fetcher.Fetch(ctx, c.resultsURL, resultsSelector)
	if err != nil {
		return nil, err
	}
	return parseResults(strings.NewReader(page), c.resultsURL, c.now())
}

// FetchVods scrapes a match page for its stream boxes.
func (c *Client) FetchVods(ctx context.Context, matchURL string) ([]provider.RawVod, error) {
	page, err := c.fetcher.Fetch(ctx, matchURL, matchSelector)
	if err != nil {
		return nil, err
	}
	return parseVods(strings.NewReader(page))
}

// HTTPFetcher fetches pages with plain HTTP requests.
type HTTPFetcher struct {
	http      *http.Client
	limiter   *rate.Limiter
	userAgent string
}

// NewHTTPFetcher creates a rate-limited HTTP fetcher.
func NewHTTPFetcher(userAgent string, reqPerSec float64) *HTTPFetcher {
	if reqPerSec <= 0 {
		reqPerSec = 1.0
	}

	return &HTTPFetcher{
		http: &http.Client{
			Timeout: 30 * time.Second,
		},
		limiter:   rate.NewLimiter(rate.Limit(reqPerSec), 2),
		userAgent: userAgent,
	}
}

// Fetch performs a GET request. Transport failures and 429/5xx responses are
// reported as provider.ErrUnavailable.
func (f *HTTPFetcher) Fetch(ctx context.Context, pageURL, _ string) (string, error) {
	if err := f.limiter.Wait(ctx); err != nil {
		return "", err
	}

	req, err := http.NewRequestWithContext(ctx, "GET", pageURL, nil)
	if err != nil {
		return "", fmt.Errorf("creating request: %w", err)
	}
	if f.userAgent != "" {
		req.Header.Set("User-Agent", f.userAgent)
	}
	req.Header.Set("Referer", pageURL)

	resp, err := f.http.Do(req)
	if err != nil {
		return "", fmt.Errorf("%w: fetching %s: %v", provider.ErrUnavailable, pageURL, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusTooManyRequests || resp.StatusCode >= 500 {
		return "", fmt.Errorf("%w: HTTP %d for %s", provider.ErrUnavailable, resp.StatusCode, pageURL)
	}
	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("HTTP %d for %s", resp.StatusCode, pageURL)
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", fmt.Errorf("%w: reading %s: %v", provider.ErrUnavailable, pageURL, err)
	}
	return string(body), nil
}
