package tui

import (
	"fmt"
	"io"
	"time"

	"github.com/JohnDeved/no-spoilers/internal/schedule"
	"github.com/JohnDeved/no-spoilers/internal/util"
	"github.com/JohnDeved/no-spoilers/internal/vod"
)

// WriteSchedule prints every day header followed by its numbered matches.
func WriteSchedule(w io.Writer, s schedule.Schedule, theme *Theme, now time.Time) {
	for _, d := range s.Days {
		fmt.Fprintln(w, util.FormatDay(d.Date, now))
		if len(d.Matches) == 0 {
			fmt.Fprintln(w, "    No matches")
		}
		for _, m := range d.Matches {
			fmt.Fprintf(w, "    %s\n", matchLine(m, theme))
		}
		fmt.Fprintln(w)
	}
}

func matchLine(m schedule.Match, theme *Theme) string {
	return fmt.Sprintf("%d) %s - %s", m.Number, theme.Team(m.Team1), theme.Team(m.Team2))
}

// WriteVods prints a VOD selection, warning first when no English VOD exists.
func WriteVods(w io.Writer, sel vod.Selection) {
	if sel.Status == vod.StatusNone || len(sel.Vods) == 0 {
		fmt.Fprintln(w, "No VODs available")
		return
	}

	fmt.Fprintln(w)
	if sel.Status == vod.StatusFallback {
		fmt.Fprintln(w, "No English VODs available")
	}
	fmt.Fprintln(w, vodHeader(sel))
	for _, v := range sel.Vods {
		fmt.Fprintf(w, "    %s [%s] -> %s\n", v.Label, v.Country, v.StreamURL)
	}
}

func vodHeader(sel vod.Selection) string {
	kind := "English"
	if sel.Status == vod.StatusFallback {
		kind = "non-English"
	}
	if len(sel.Vods) > 1 {
		return fmt.Sprintf("Here are some %s VODs:", kind)
	}
	return fmt.Sprintf("Here is a %s VOD:", kind)
}
