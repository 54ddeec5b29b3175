package schedule

import (
	"strings"

	"github.com/JohnDeved/no-spoilers/internal/provider"
)

// Classifier decides which scraped matches are worth listing.
type Classifier struct {
	groups    [][]string
	favorites map[string]struct{}
}

// NewClassifier builds a classifier from sponsor token groups and a team watch-list.
// Empty groups are dropped since they would match every event.
func NewClassifier(groups [][]string, favorites []string) *Classifier {
	c := &Classifier{
		favorites: make(map[string]struct{}, len(favorites)),
	}
	for _, g := range groups {
		if len(g) == 0 {
			continue
		}
		c.groups = append(c.groups, append([]string(nil), g...))
	}
	for _, team := range favorites {
		c.favorites[team] = struct{}{}
	}
	return c
}

// IsProEvent reports whether every token of some sponsor group appears in event.
// Matching is case-sensitive substring containment.
func (c *Classifier) IsProEvent(event string) bool {
	for _, group := range c.groups {
		if containsAll(event, group) {
			return true
		}
	}
	return false
}

// IsFavorite reports whether any of the teams is on the watch-list.
func (c *Classifier) IsFavorite(teams []string) bool {
	for _, team := range teams {
		if _, ok := c.favorites[team]; ok {
			return true
		}
	}
	return false
}

// Qualifies reports whether a scraped match belongs in the schedule.
func (c *Classifier) Qualifies(m provider.RawMatch) bool {
	return c.IsProEvent(m.Event) || c.IsFavorite(m.Teams)
}

func containsAll(s string, tokens []string) bool {
	for _, tok := range tokens {
		if !strings.Contains(s, tok) {
			return false
		}
	}
	return true
}
