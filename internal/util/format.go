package util

import "time"

// FormatDay renders a day header relative to now: "Today:", "Yesterday:" or "October 5:".
func FormatDay(date, now time.Time) string {
	y, m, d := date.Date()
	today := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, time.UTC)
	day := time.Date(y, m, d, 0, 0, 0, 0, time.UTC)

	switch {
	case day.Equal(today):
		return "Today:"
	case day.Equal(today.AddDate(0, 0, -1)):
		return "Yesterday:"
	default:
		return date.Format("January 2") + ":"
	}
}

// Truncate shortens s to maxLen runes, marking the cut with "...".
func Truncate(s string, maxLen int) string {
	r := []rune(s)
	if len(r) <= maxLen {
		return s
	}
	if maxLen <= 3 {
		return string(r[:maxLen])
	}
	return string(r[:maxLen-3]) + "..."
}
