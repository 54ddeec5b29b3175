package schedule

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/JohnDeved/no-spoilers/internal/provider"
)

var defaultGroups = [][]string{
	{"ESL", "Pro"}, {"ESL", "One"}, {"ECS"}, {"PGL"}, {"Dreamhack"}, {"FACEIT"}, {"EPICENTER", "Americas"},
}

func newTestClassifier() *Classifier {
	return NewClassifier(defaultGroups, []string{"GX", "Torqued"})
}

func day(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

type fakeProvider struct {
	listings []provider.DayListing
	err      error
}

func (f fakeProvider) FetchDayListings(ctx context.Context) ([]provider.DayListing, error) {
	return f.listings, f.err
}

func (f fakeProvider) FetchVods(ctx context.Context, matchURL string) ([]provider.RawVod, error) {
	return nil, nil
}

func TestIsProEvent(t *testing.T) {
	c := newTestClassifier()
	cases := map[string]bool{
		"ESL Pro League Season 20":   true,
		"ESL One Cologne":            true,
		"ESL Challenger":             false,
		"PGL Major Copenhagen":       true,
		"EPICENTER 2026 Americas":    true,
		"EPICENTER Europe":           false,
		"esl pro league":             false,
		"FACEIT Major":               true,
		"Dreamhack Open":             true,
		"ECSTATIC Cup":               true,
		"Some Regional Qualifier #4": false,
		"":                           false,
	}
	for event, want := range cases {
		if got := c.IsProEvent(event); got != want {
			t.Fatalf("IsProEvent(%q) = %v, want %v", event, got, want)
		}
	}
}

func TestIsProEvent_GroupOrderAndExtraGroups(t *testing.T) {
	event := "ESL Pro League"
	forward := NewClassifier([][]string{{"PGL"}, {"ESL", "Pro"}}, nil)
	reverse := NewClassifier([][]string{{"ESL", "Pro"}, {"PGL"}}, nil)
	if forward.IsProEvent(event) != reverse.IsProEvent(event) {
		t.Fatalf("group order changed the result")
	}
	extra := NewClassifier([][]string{{"PGL"}, {"ESL", "Pro"}, {"BLAST"}}, nil)
	if !extra.IsProEvent(event) {
		t.Fatalf("adding a non-matching group changed the result")
	}
	if extra.IsProEvent("Unrelated Cup") {
		t.Fatalf("unexpected match for unrelated event")
	}
}

func TestIsProEvent_EmptyGroupIgnored(t *testing.T) {
	c := NewClassifier([][]string{{}}, nil)
	if c.IsProEvent("anything") {
		t.Fatalf("empty group should not match every event")
	}
}

func TestIsFavorite(t *testing.T) {
	c := newTestClassifier()
	if !c.IsFavorite([]string{"GX", "Other"}) {
		t.Fatalf("expected GX to be a favorite")
	}
	if !c.IsFavorite([]string{"Other", "Torqued"}) {
		t.Fatalf("expected Torqued to be a favorite")
	}
	if c.IsFavorite([]string{"gx", "Other"}) {
		t.Fatalf("favorites are case-sensitive")
	}
	if c.IsFavorite(nil) || c.IsFavorite([]string{}) {
		t.Fatalf("empty pair should not be a favorite")
	}
}

func TestBuild_Scenario(t *testing.T) {
	listings := []provider.DayListing{
		{Date: day(2026, 10, 18), Matches: []provider.RawMatch{
			{Teams: []string{"A", "B"}, Event: "ESL Pro League", URL: "https://example.com/m/1"},
			{Teams: []string{"C", "D"}, Event: "Local LAN", URL: "https://example.com/m/2"},
		}},
		{Date: day(2026, 10, 17), Matches: []provider.RawMatch{
			{Teams: []string{"GX", "F"}, Event: "Open Qualifier", URL: "https://example.com/m/3"},
		}},
	}

	s := Build(listings, newTestClassifier())
	if len(s.Days) != 2 {
		t.Fatalf("expected 2 days, got %d", len(s.Days))
	}
	want0 := Match{Team1: "A", Team2: "B", URL: "https://example.com/m/1", Number: 1}
	if len(s.Days[0].Matches) != 1 || s.Days[0].Matches[0] != want0 {
		t.Fatalf("unexpected first day: %+v", s.Days[0])
	}
	want1 := Match{Team1: "GX", Team2: "F", URL: "https://example.com/m/3", Number: 2}
	if len(s.Days[1].Matches) != 1 || s.Days[1].Matches[0] != want1 {
		t.Fatalf("unexpected second day: %+v", s.Days[1])
	}
	if !s.Days[0].Date.Equal(day(2026, 10, 18)) {
		t.Fatalf("day order not preserved: %v", s.Days[0].Date)
	}
}

func TestBuild_NumbersAreContiguous(t *testing.T) {
	var listings []provider.DayListing
	for d := 0; d < 4; d++ {
		var rows []provider.RawMatch
		for i := 0; i < 5; i++ {
			event := "Minor Cup"
			if (d+i)%2 == 0 {
				event = "PGL Major"
			}
			rows = append(rows, provider.RawMatch{Teams: []string{"X", "Y"}, Event: event})
		}
		listings = append(listings, provider.DayListing{Date: day(2026, 10, 20-d), Matches: rows})
	}

	s := Build(listings, newTestClassifier())
	want := 1
	for _, d := range s.Days {
		for _, m := range d.Matches {
			if m.Number != want {
				t.Fatalf("expected number %d, got %d", want, m.Number)
			}
			want++
		}
	}
	if s.Len() != want-1 || s.Len() != 10 {
		t.Fatalf("unexpected match count %d", s.Len())
	}
}

func TestBuild_KeepsEmptyDays(t *testing.T) {
	listings := []provider.DayListing{
		{Date: day(2026, 10, 18), Matches: []provider.RawMatch{
			{Teams: []string{"C", "D"}, Event: "Local LAN"},
		}},
	}
	s := Build(listings, newTestClassifier())
	if len(s.Days) != 1 {
		t.Fatalf("expected empty day to be kept, got %d days", len(s.Days))
	}
	if s.Days[0].Matches == nil || len(s.Days[0].Matches) != 0 {
		t.Fatalf("expected empty non-nil match list, got %#v", s.Days[0].Matches)
	}
}

func TestBuild_SkipsMalformedRows(t *testing.T) {
	listings := []provider.DayListing{
		{Date: day(2026, 10, 18), Matches: []provider.RawMatch{
			{Teams: []string{"GX"}, Event: "ESL One"},
			{Teams: []string{"A", "B"}, Event: ""},
			{Teams: []string{"A", " "}, Event: "ESL One"},
			{Teams: []string{"A", "B"}, Event: "ESL One", URL: "u"},
		}},
	}
	s := Build(listings, newTestClassifier())
	if s.Skipped != 3 {
		t.Fatalf("expected 3 skipped rows, got %d", s.Skipped)
	}
	if s.Len() != 1 || s.Days[0].Matches[0].Number != 1 {
		t.Fatalf("unexpected schedule: %+v", s)
	}
}

func TestFindByNumber(t *testing.T) {
	gap := Schedule{Days: []Day{
		{Matches: []Match{{Team1: "A", Number: 1}}},
		{Matches: []Match{{Team1: "C", Number: 3}}},
	}}
	if _, ok := gap.FindByNumber(2); ok {
		t.Fatalf("expected number 2 to be missing")
	}

	full := Schedule{Days: []Day{
		{Matches: []Match{{Team1: "A", Number: 1}, {Team1: "B", Number: 2}}},
		{Matches: []Match{{Team1: "C", Number: 3}}},
	}}
	m, ok := full.FindByNumber(2)
	if !ok || m.Team1 != "B" {
		t.Fatalf("unexpected lookup result: %+v ok=%v", m, ok)
	}
	for _, n := range []int{0, -1, 99} {
		if _, ok := full.FindByNumber(n); ok {
			t.Fatalf("expected %d to be missing", n)
		}
	}
}

func TestLoad_ProviderFailureIsEmpty(t *testing.T) {
	p := fakeProvider{err: provider.ErrUnavailable}
	s, err := Load(context.Background(), p, newTestClassifier())
	if !errors.Is(err, provider.ErrUnavailable) {
		t.Fatalf("expected ErrUnavailable, got %v", err)
	}
	if s.Len() != 0 || len(s.Days) != 0 {
		t.Fatalf("expected empty schedule, got %+v", s)
	}
}

func TestLoad_BuildsSchedule(t *testing.T) {
	p := fakeProvider{listings: []provider.DayListing{
		{Date: day(2026, 10, 18), Matches: []provider.RawMatch{
			{Teams: []string{"Torqued", "Z"}, Event: "Cup", URL: "u1"},
		}},
	}}
	s, err := Load(context.Background(), p, newTestClassifier())
	if err != nil {
		t.Fatalf("Load returned error: %v", err)
	}
	if m, ok := s.FindByNumber(1); !ok || m.Team1 != "Torqued" {
		t.Fatalf("unexpected schedule: %+v", s)
	}
}
