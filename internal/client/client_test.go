package client

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/JohnDeved/no-spoilers/internal/provider"
)

type fakeFetcher struct {
	pages map[string]string
	waits []string
}

func (f *fakeFetcher) Fetch(ctx context.Context, pageURL, waitSelector string) (string, error) {
	f.waits = append(f.waits, waitSelector)
	page, ok := f.pages[pageURL]
	if !ok {
		return "", provider.ErrUnavailable
	}
	return page, nil
}

func TestClient_FetchDayListings(t *testing.T) {
	f := &fakeFetcher{pages: map[string]string{"https://www.hltv.org/results": resultsPage}}
	c := New("https://www.hltv.org/results", f)
	c.now = func() time.Time { return time.Date(2026, 10, 19, 0, 0, 0, 0, time.UTC) }

	days, err := c.FetchDayListings(context.Background())
	if err != nil {
		t.Fatalf("FetchDayListings returned error: %v", err)
	}
	if len(days) != 2 {
		t.Fatalf("expected 2 days, got %d", len(days))
	}
	if len(f.waits) != 1 || f.waits[0] != resultsSelector {
		t.Fatalf("unexpected wait selectors: %v", f.waits)
	}
}

func TestClient_FetchVodsUnavailable(t *testing.T) {
	c := New("https://www.hltv.org/results", &fakeFetcher{})
	_, err := c.FetchVods(context.Background(), "https://www.hltv.org/matches/1/x")
	if !errors.Is(err, provider.ErrUnavailable) {
		t.Fatalf("expected ErrUnavailable, got %v", err)
	}
}

func TestHTTPFetcher(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/ok":
			if r.Header.Get("User-Agent") != "test-agent" {
				t.Errorf("unexpected user agent %q", r.Header.Get("User-Agent"))
			}
			w.Write([]byte("<html>ok</html>"))
		case "/busy":
			w.WriteHeader(http.StatusServiceUnavailable)
		default:
			http.NotFound(w, r)
		}
	}))
	defer srv.Close()

	f := NewHTTPFetcher("test-agent", 100)
	ctx := context.Background()

	body, err := f.Fetch(ctx, srv.URL+"/ok", "")
	if err != nil || body != "<html>ok</html>" {
		t.Fatalf("unexpected fetch result: %q, %v", body, err)
	}

	if _, err := f.Fetch(ctx, srv.URL+"/busy", ""); !errors.Is(err, provider.ErrUnavailable) {
		t.Fatalf("expected ErrUnavailable for 503, got %v", err)
	}

	_, err = f.Fetch(ctx, srv.URL+"/missing", "")
	if err == nil || errors.Is(err, provider.ErrUnavailable) {
		t.Fatalf("expected plain error for 404, got %v", err)
	}
}
