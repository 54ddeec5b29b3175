package schedule

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/JohnDeved/no-spoilers/internal/provider"
)

// Match is a listed match with its display number.
type Match struct {
	Team1  string `json:"team1"`
	Team2  string `json:"team2"`
	URL    string `json:"url"`
	Number int    `json:"number"`
}

// Day groups the listed matches of one calendar day.
type Day struct {
	Date    time.Time `json:"date"`
	Matches []Match   `json:"matches"`
}

// Schedule is the filtered, numbered result of one listing pass.
// Days keep provider order; days without qualifying matches are kept empty.
type Schedule struct {
	Days    []Day `json:"days"`
	Skipped int   `json:"skipped"` // Malformed rows dropped while building
}

// Len returns the number of listed matches.
func (s Schedule) Len() int {
	n := 0
	for _, d := range s.Days {
		n += len(d.Matches)
	}
	return n
}

// FindByNumber returns the match carrying the given display number.
func (s Schedule) FindByNumber(number int) (Match, bool) {
	for _, d := range s.Days {
		for _, m := range d.Matches {
			if m.Number == number {
				return m, true
			}
		}
	}
	return Match{}, false
}

// Build filters the listings and numbers the survivors 1..K in day-then-listing order.
func Build(listings []provider.DayListing, c *Classifier) Schedule {
	s := Schedule{Days: make([]Day, 0, len(listings))}
	last := 0
	for _, listing := range listings {
		day, next, skipped := c.filterDay(listing, last)
		s.Days = append(s.Days, day)
		s.Skipped += skipped
		last = next
	}
	return s
}

// filterDay keeps qualifying rows of one day, numbering them after last.
// It returns the day, the last number issued and how many rows were malformed.
func (c *Classifier) filterDay(listing provider.DayListing, last int) (Day, int, int) {
	day := Day{Date: listing.Date, Matches: []Match{}}
	skipped := 0
	for i, raw := range listing.Matches {
		if err := raw.Validate(); err != nil {
			slog.Warn("skipping malformed match",
				"date", listing.Date.Format("2006-01-02"), "row", i, "url", raw.URL, "err", err)
			skipped++
			continue
		}
		if !c.Qualifies(raw) {
			continue
		}
		last++
		day.Matches = append(day.Matches, Match{
			Team1:  raw.Teams[0],
			Team2:  raw.Teams[1],
			URL:    raw.URL,
			Number: last,
		})
	}
	return day, last, skipped
}

// Load fetches the day listings and builds the schedule. A provider failure
// yields an empty schedule alongside the error so callers can report it and go on.
func Load(ctx context.Context, p provider.PageDataProvider, c *Classifier) (Schedule, error) {
	listings, err := p.FetchDayListings(ctx)
	if err != nil {
		return Schedule{Days: []Day{}}, fmt.Errorf("fetching results: %w", err)
	}
	return Build(listings, c), nil
}
