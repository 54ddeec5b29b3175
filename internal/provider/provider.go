package provider

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"
)

// ErrUnavailable is returned when a page could not be fetched or an expected
// element never showed up. Callers treat it as "no data".
var ErrUnavailable = errors.New("temporarily unavailable")

// RawMatch is a single scraped row of a results listing.
type RawMatch struct {
	Teams []string // Ordered pair as listed on the page
	Event string
	URL   string
}

// Validate reports why a scraped row can't be turned into a match.
func (m RawMatch) Validate() error {
	if len(m.Teams) != 2 {
		return fmt.Errorf("expected 2 teams, got %d", len(m.Teams))
	}
	for i, team := range m.Teams {
		if strings.TrimSpace(team) == "" {
			return fmt.Errorf("team %d has no name", i+1)
		}
	}
	if strings.TrimSpace(m.Event) == "" {
		return errors.New("missing event name")
	}
	return nil
}

// RawVod is a single stream entry on a match page.
type RawVod struct {
	Label     string // Display name, e.g. "Twitch"
	Country   string // Flag country, e.g. "United States"
	StreamURL string
}

// DayListing is one day's block of results, in page order.
type DayListing struct {
	Date    time.Time
	Matches []RawMatch
}

// PageDataProvider supplies scraped listings and per-match VODs.
type PageDataProvider interface {
	FetchDayListings(ctx context.Context) ([]DayListing, error)
	FetchVods(ctx context.Context, matchURL string) ([]RawVod, error)
}
