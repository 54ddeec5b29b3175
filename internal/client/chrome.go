package client

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/chromedp/chromedp"

	"github.com/JohnDeved/no-spoilers/internal/provider"
)

// ChromeFetcher renders pages in a single headless Chrome session.
// Close must be called to shut the browser down.
type ChromeFetcher struct {
	browserCtx  context.Context
	cancelTab   context.CancelFunc
	cancelAlloc context.CancelFunc
	wait        time.Duration
}

// NewChromeFetcher starts a headless browser. wait bounds how long a page may
// take to show its wait selector.
func NewChromeFetcher(userAgent string, wait time.Duration) (*ChromeFetcher, error) {
	opts := append(chromedp.DefaultExecAllocatorOptions[:],
		chromedp.Flag("headless", true),
		chromedp.Flag("disable-gpu", true),
		chromedp.Flag("no-sandbox", true),
		chromedp.Flag("disable-dev-shm-usage", true),
	)
	if userAgent != "" {
		opts = append(opts, chromedp.UserAgent(userAgent))
	}

	allocCtx, cancelAlloc := chromedp.NewExecAllocator(context.Background(), opts...)
	browserCtx, cancelTab := chromedp.NewContext(allocCtx, chromedp.WithLogf(func(format string, v ...interface{}) {
		slog.Debug(fmt.Sprintf(format, v...), "component", "chromedp")
	}))

	// An empty Run launches the browser so startup failures surface here.
	if err := chromedp.Run(browserCtx); err != nil {
		cancelTab()
		cancelAlloc()
		return nil, fmt.Errorf("starting chrome: %w", err)
	}

	return &ChromeFetcher{
		browserCtx:  browserCtx,
		cancelTab:   cancelTab,
		cancelAlloc: cancelAlloc,
		wait:        wait,
	}, nil
}

// Close shuts the browser down.
func (f *ChromeFetcher) Close() {
	if f.cancelTab != nil {
		f.cancelTab()
	}
	if f.cancelAlloc != nil {
		f.cancelAlloc()
	}
}

// Fetch navigates to pageURL, waits for waitSelector and returns the page HTML.
// A selector that never appears is reported as provider.ErrUnavailable.
func (f *ChromeFetcher) Fetch(ctx context.Context, pageURL, waitSelector string) (string, error) {
	runCtx, cancel := context.WithTimeout(f.browserCtx, f.wait)
	defer cancel()
	stop := context.AfterFunc(ctx, cancel)
	defer stop()

	if waitSelector == "" {
		waitSelector = "body"
	}

	var htmlContent string
	err := chromedp.Run(runCtx,
		chromedp.Navigate(pageURL),
		chromedp.WaitReady(waitSelector, chromedp.ByQuery),
		chromedp.OuterHTML("html", &htmlContent, chromedp.ByQuery),
	)
	if err != nil {
		if ctx.Err() != nil {
			return "", ctx.Err()
		}
		if errors.Is(err, context.DeadlineExceeded) || errors.Is(runCtx.Err(), context.DeadlineExceeded) {
			return "", fmt.Errorf("%w: %s did not show %q within %s", provider.ErrUnavailable, pageURL, waitSelector, f.wait)
		}
		return "", fmt.Errorf("%w: chromedp: %v", provider.ErrUnavailable, err)
	}

	if htmlContent == "" {
		return "", fmt.Errorf("%w: empty HTML content returned for %s", provider.ErrUnavailable, pageURL)
	}
	return htmlContent, nil
}
