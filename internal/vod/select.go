package vod

import (
	"context"
	"fmt"

	"github.com/JohnDeved/no-spoilers/internal/provider"
)

// Status describes which set of VODs a Selection holds.
type Status int

const (
	StatusNone     Status = iota // No VODs at all
	StatusEnglish                // Only English-tagged VODs
	StatusFallback               // No English VODs; every VOD, in page order
)

func (s Status) String() string {
	switch s {
	case StatusNone:
		return "none"
	case StatusEnglish:
		return "english"
	case StatusFallback:
		return "fallback"
	default:
		return "unknown"
	}
}

// Selection is the set of VODs to show for a match.
type Selection struct {
	Status Status
	Vods   []provider.RawVod
}

// Selector prefers VODs streamed from English-speaking countries.
type Selector struct {
	english map[string]struct{}
}

// NewSelector creates a selector for the given country names.
func NewSelector(countries []string) *Selector {
	s := &Selector{english: make(map[string]struct{}, len(countries))}
	for _, c := range countries {
		s.english[c] = struct{}{}
	}
	return s
}

// IsEnglish reports whether a VOD's country is in the English set.
func (s *Selector) IsEnglish(v provider.RawVod) bool {
	_, ok := s.english[v.Country]
	return ok
}

// Select returns the English VODs if there are any, otherwise all of them.
func (s *Selector) Select(raw []provider.RawVod) Selection {
	if len(raw) == 0 {
		return Selection{Status: StatusNone}
	}

	var english []provider.RawVod
	for _, v := range raw {
		if s.IsEnglish(v) {
			english = append(english, v)
		}
	}
	if len(english) > 0 {
		return Selection{Status: StatusEnglish, Vods: english}
	}

	all := make([]provider.RawVod, len(raw))
	copy(all, raw)
	return Selection{Status: StatusFallback, Vods: all}
}

// Lookup fetches a match page's VODs and selects from them. A provider failure
// yields an empty selection alongside the error.
func (s *Selector) Lookup(ctx context.Context, p provider.PageDataProvider, matchURL string) (Selection, error) {
	if matchURL == "" {
		return Selection{Status: StatusNone}, nil
	}
	raw, err := p.FetchVods(ctx, matchURL)
	if err != nil {
		return Selection{Status: StatusNone}, fmt.Errorf("fetching vods: %w", err)
	}
	return s.Select(raw), nil
}
