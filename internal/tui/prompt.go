package tui

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"
	"time"

	"github.com/JohnDeved/no-spoilers/internal/provider"
	"github.com/JohnDeved/no-spoilers/internal/schedule"
	"github.com/JohnDeved/no-spoilers/internal/vod"
)

// Session bundles what the interactive views need.
type Session struct {
	Provider   provider.PageDataProvider
	Classifier *schedule.Classifier
	Selector   *vod.Selector
	Theme      *Theme
	Now        func() time.Time
}

func (s Session) now() time.Time {
	if s.Now == nil {
		return time.Now()
	}
	return s.Now()
}

// lineReader delivers input lines while still honoring context cancellation.
type lineReader struct {
	lines chan string
	err   error
}

func newLineReader(r io.Reader) *lineReader {
	lr := &lineReader{lines: make(chan string)}
	go func() {
		sc := bufio.NewScanner(r)
		for sc.Scan() {
			lr.lines <- sc.Text()
		}
		lr.err = sc.Err()
		close(lr.lines)
	}()
	return lr
}

// next blocks for one line. It returns io.EOF once input is exhausted.
func (lr *lineReader) next(ctx context.Context) (string, error) {
	select {
	case <-ctx.Done():
		return "", ctx.Err()
	case line, ok := <-lr.lines:
		if !ok {
			if lr.err != nil {
				return "", lr.err
			}
			return "", io.EOF
		}
		return line, nil
	}
}

type prompter struct {
	in  *lineReader
	out io.Writer
}

// chooseMatch asks until it gets an integer.
func (p *prompter) chooseMatch(ctx context.Context) (int, error) {
	for {
		fmt.Fprint(p.out, "Choose match: ")
		line, err := p.in.next(ctx)
		if err != nil {
			return 0, err
		}
		if n, err := strconv.Atoi(strings.TrimSpace(line)); err == nil {
			return n, nil
		}
	}
}

// pickAnother returns true on Enter and false on q.
func (p *prompter) pickAnother(ctx context.Context) (bool, error) {
	for {
		fmt.Fprint(p.out, "\n[Enter] to pick another or [q] to quit\n")
		line, err := p.in.next(ctx)
		if err != nil {
			return false, err
		}
		switch strings.ToLower(strings.TrimSpace(line)) {
		case "":
			return true, nil
		case "q":
			return false, nil
		}
	}
}

// RunPrompt runs the line-based loop: list, choose, show VODs, repeat.
// Exhausted input counts as quitting.
func RunPrompt(ctx context.Context, sess Session, in io.Reader, out io.Writer) error {
	sched, err := schedule.Load(ctx, sess.Provider, sess.Classifier)
	if err != nil {
		if ctx.Err() != nil {
			return ctx.Err()
		}
		fmt.Fprintf(out, "Results unavailable: %v\n", err)
	}
	if sched.Skipped > 0 {
		fmt.Fprintf(out, "Skipped %d unreadable result(s)\n", sched.Skipped)
	}
	if sched.Len() == 0 {
		fmt.Fprintln(out, "No matches to pick from.")
		return nil
	}

	p := &prompter{in: newLineReader(in), out: out}
	for {
		WriteSchedule(out, sched, sess.Theme, sess.now())

		number, err := p.chooseMatch(ctx)
		if err != nil {
			return quitErr(err)
		}

		if m, ok := sched.FindByNumber(number); !ok {
			fmt.Fprintf(out, "No match numbered %d\n", number)
		} else {
			sel, err := sess.Selector.Lookup(ctx, sess.Provider, m.URL)
			if err != nil {
				if ctx.Err() != nil {
					return ctx.Err()
				}
				fmt.Fprintf(out, "VODs unavailable: %v\n", err)
			}
			WriteVods(out, sel)
		}

		again, err := p.pickAnother(ctx)
		if err != nil {
			return quitErr(err)
		}
		if !again {
			return nil
		}
	}
}

func quitErr(err error) error {
	if errors.Is(err, io.EOF) {
		return nil
	}
	return err
}
