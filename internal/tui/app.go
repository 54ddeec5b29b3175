package tui

import (
	"context"
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/JohnDeved/no-spoilers/internal/schedule"
	"github.com/JohnDeved/no-spoilers/internal/util"
	"github.com/JohnDeved/no-spoilers/internal/vod"
)

// Messages
type scheduleMsg struct {
	sched schedule.Schedule
	err   error
}

type vodsMsg struct {
	match schedule.Match
	sel   vod.Selection
	err   error
}

// Model is the full-screen match browser.
type Model struct {
	ctx      context.Context
	sess     Session
	sched    schedule.Schedule
	matches  []schedule.Match // flattened, in display order
	cursor   int
	spinner  spinner.Model
	loading  bool
	showVods bool
	current  schedule.Match
	sel      vod.Selection
	notice   string
	width    int
	height   int
}

// NewModel creates the browser model.
func NewModel(ctx context.Context, sess Session) Model {
	s := spinner.New()
	s.Spinner = spinner.Dot

	return Model{
		ctx:     ctx,
		sess:    sess,
		spinner: s,
		loading: true,
	}
}

func (m Model) Init() tea.Cmd {
	return tea.Batch(
		m.spinner.Tick,
		m.loadSchedule(),
	)
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		return m, nil

	case tea.KeyMsg:
		return m.handleKey(msg.String())

	case scheduleMsg:
		m.loading = false
		m.setSchedule(msg.sched)
		m.notice = ""
		if msg.err != nil {
			m.notice = fmt.Sprintf("Results unavailable: %v", msg.err)
		} else if msg.sched.Skipped > 0 {
			m.notice = fmt.Sprintf("Skipped %d unreadable result(s)", msg.sched.Skipped)
		}
		return m, nil

	case vodsMsg:
		m.loading = false
		m.showVods = true
		m.current = msg.match
		m.sel = msg.sel
		m.notice = ""
		if msg.err != nil {
			m.notice = fmt.Sprintf("VODs unavailable: %v", msg.err)
		}
		return m, nil

	case spinner.TickMsg:
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd
	}

	return m, nil
}

func (m Model) handleKey(key string) (tea.Model, tea.Cmd) {
	switch key {
	case "ctrl+c", "q":
		return m, tea.Quit
	}

	if m.loading {
		return m, nil
	}

	if m.showVods {
		switch key {
		case "esc", "enter", "backspace", "h", "left":
			m.showVods = false
			m.notice = ""
		}
		return m, nil
	}

	switch key {
	case "up", "k":
		if m.cursor > 0 {
			m.cursor--
		}
	case "down", "j":
		if m.cursor < len(m.matches)-1 {
			m.cursor++
		}
	case "home", "g":
		m.cursor = 0
	case "end", "G":
		if len(m.matches) > 0 {
			m.cursor = len(m.matches) - 1
		}
	case "r":
		m.loading = true
		return m, m.loadSchedule()
	case "enter", "l", "right":
		if len(m.matches) == 0 {
			return m, nil
		}
		m.loading = true
		return m, m.loadVods(m.matches[m.cursor])
	}
	return m, nil
}

func (m *Model) setSchedule(s schedule.Schedule) {
	m.sched = s
	m.matches = nil
	for _, d := range s.Days {
		m.matches = append(m.matches, d.Matches...)
	}
	if m.cursor >= len(m.matches) {
		m.cursor = 0
	}
}

// Commands

func (m Model) loadSchedule() tea.Cmd {
	return func() tea.Msg {
		s, err := schedule.Load(m.ctx, m.sess.Provider, m.sess.Classifier)
		return scheduleMsg{sched: s, err: err}
	}
}

func (m Model) loadVods(match schedule.Match) tea.Cmd {
	return func() tea.Msg {
		sel, err := m.sess.Selector.Lookup(m.ctx, m.sess.Provider, match.URL)
		return vodsMsg{match: match, sel: sel, err: err}
	}
}

func (m Model) View() string {
	var sb strings.Builder

	sb.WriteString(titleStyle.Render("  No Spoilers  "))
	sb.WriteString("\n")

	switch {
	case m.loading:
		sb.WriteString(fmt.Sprintf("%s Loading...\n", m.spinner.View()))
	case m.showVods:
		sb.WriteString(m.vodsView())
	default:
		sb.WriteString(m.scheduleView())
	}

	if m.notice != "" {
		sb.WriteString("\n")
		sb.WriteString(errorStyle.Render(m.notice))
		sb.WriteString("\n")
	}

	sb.WriteString("\n")
	sb.WriteString(statusBarStyle.Render(m.statusText()))
	return sb.String()
}

func (m Model) statusText() string {
	if m.showVods {
		return "enter/esc back • q quit"
	}
	return fmt.Sprintf("%d matches • ↑/↓ move • enter VODs • r reload • q quit", len(m.matches))
}

// scheduleView renders day headers and matches, scrolled to keep the cursor visible.
func (m Model) scheduleView() string {
	if len(m.sched.Days) == 0 {
		return helpStyle.Render("No results") + "\n"
	}

	now := m.sess.now()
	var lines []string
	cursorLine := 0
	idx := 0
	for _, d := range m.sched.Days {
		lines = append(lines, dayStyle.Render(util.FormatDay(d.Date, now)))
		if len(d.Matches) == 0 {
			lines = append(lines, helpStyle.Render("   No matches"))
		}
		for _, match := range d.Matches {
			line := matchLine(match, m.sess.Theme)
			if idx == m.cursor {
				cursorLine = len(lines)
				lines = append(lines, selectedStyle.Render(line))
			} else {
				lines = append(lines, normalStyle.Render(line))
			}
			idx++
		}
	}

	visible := m.height - 6
	if visible <= 0 || visible >= len(lines) {
		return strings.Join(lines, "\n") + "\n"
	}
	offset := 0
	if cursorLine >= visible {
		offset = cursorLine - visible + 1
	}
	end := offset + visible
	if end > len(lines) {
		end = len(lines)
	}
	return strings.Join(lines[offset:end], "\n") + "\n"
}

func (m Model) vodsView() string {
	var sb strings.Builder
	sb.WriteString(dayStyle.Render(fmt.Sprintf("%s vs %s", m.sess.Theme.Team(m.current.Team1), m.sess.Theme.Team(m.current.Team2))))
	sb.WriteString("\n\n")

	switch m.sel.Status {
	case vod.StatusNone:
		sb.WriteString(helpStyle.Render("No VODs available"))
		sb.WriteString("\n")
		return sb.String()
	case vod.StatusFallback:
		sb.WriteString(warningStyle.Render("No English VODs available"))
		sb.WriteString("\n")
	}

	sb.WriteString(successStyle.Render(vodHeader(m.sel)))
	sb.WriteString("\n")
	maxURL := m.width - 30
	if maxURL < 20 {
		maxURL = 80
	}
	for _, v := range m.sel.Vods {
		sb.WriteString(fmt.Sprintf("  %s [%s] -> %s\n", v.Label, v.Country, util.Truncate(v.StreamURL, maxURL)))
	}
	return sb.String()
}

// Run starts the full-screen browser and blocks until the user quits.
func Run(ctx context.Context, sess Session) error {
	p := tea.NewProgram(NewModel(ctx, sess), tea.WithAltScreen(), tea.WithContext(ctx))
	_, err := p.Run()
	return err
}
