package history

import (
	"context"
	"fmt"
	"image/color"
	"strings"
	"time"

	tea "charm.land/bubbletea/v2"

	"charm.land/lipgloss/v2"

	"github.com/spacey-learn/spacey/internal/lesson"
	"github.com/spacey-learn/spacey/internal/router"
	"github.com/spacey-learn/spacey/internal/screen"
	"github.com/spacey-learn/spacey/internal/store"
	"github.com/spacey-learn/spacey/internal/ui/layout"
	"github.com/spacey-learn/spacey/internal/ui/theme"
)

// Source reads a learner's lesson event log.
type Source interface {
	LessonEvents(ctx context.Context, userID string, opts store.QueryOpts) ([]store.EventRecord, error)
}

// Run groups the events of one lesson session.
type Run struct {
	SessionID string
	LessonID  string
	Started   time.Time
	Answers   int
	Correct   int
	Outcome   string // detail of the completion event, empty if abandoned
	Events    []store.EventRecord
}

// Finished reports whether the run reached its results.
func (r Run) Finished() bool {
	return r.Outcome != ""
}

// GroupRuns folds events into runs, newest first.
func GroupRuns(events []store.EventRecord) []Run {
	idx := make(map[string]int)
	var runs []Run
	for _, ev := range events {
		i, ok := idx[ev.SessionID]
		if !ok {
			i = len(runs)
			idx[ev.SessionID] = i
			runs = append(runs, Run{SessionID: ev.SessionID, LessonID: ev.LessonID, Started: ev.Timestamp})
		}
		r := &runs[i]
		r.Events = append(r.Events, ev)
		switch ev.Action {
		case lesson.ActionAnswer:
			r.Answers++
			if strings.Contains(ev.Detail, "correct=true") {
				r.Correct++
			}
		case lesson.ActionComplete:
			r.Outcome = ev.Detail
		}
	}
	for i, j := 0, len(runs)-1; i < j; i, j = i+1, j-1 {
		runs[i], runs[j] = runs[j], runs[i]
	}
	return runs
}

type historyLoadedMsg struct {
	Runs []Run
	Err  error
}

// HistoryScreen lists past lesson runs from the event log.
type HistoryScreen struct {
	source   Source
	userID   string
	runs     []Run
	selected int
	expanded map[int]bool
	loaded   bool
	errMsg   string
}

var _ screen.Screen = (*HistoryScreen)(nil)
var _ screen.KeyHintProvider = (*HistoryScreen)(nil)

// New creates a new HistoryScreen.
func New(source Source, userID string) *HistoryScreen {
	return &HistoryScreen{
		source:   source,
		userID:   userID,
		expanded: make(map[int]bool),
	}
}

func (s *HistoryScreen) Init() tea.Cmd {
	return func() tea.Msg {
		events, err := s.source.LessonEvents(context.Background(), s.userID, store.QueryOpts{})
		if err != nil {
			return historyLoadedMsg{Err: err}
		}
		return historyLoadedMsg{Runs: GroupRuns(events)}
	}
}

func (s *HistoryScreen) Title() string {
	return "Mission Log"
}

func (s *HistoryScreen) KeyHints() []layout.KeyHint {
	return []layout.KeyHint{
		{Key: "Enter", Description: "Details"},
		{Key: "↑↓", Description: "Navigate"},
		{Key: "Esc", Description: "Back"},
	}
}

func (s *HistoryScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	switch msg := msg.(type) {
	case historyLoadedMsg:
		if msg.Err != nil {
			s.errMsg = msg.Err.Error()
		} else {
			s.runs = msg.Runs
		}
		s.loaded = true
		return s, nil

	case tea.KeyMsg:
		switch msg.String() {
		case "esc":
			return s, func() tea.Msg { return router.PopScreenMsg{} }
		case "up", "k":
			if s.selected > 0 {
				s.selected--
			}
			return s, nil
		case "down", "j":
			if s.selected < len(s.runs)-1 {
				s.selected++
			}
			return s, nil
		case "enter":
			s.expanded[s.selected] = !s.expanded[s.selected]
			return s, nil
		}
	}
	return s, nil
}

func (s *HistoryScreen) View(width, height int) string {
	if s.errMsg != "" {
		return lipgloss.NewStyle().
			Width(width).Align(lipgloss.Center).Foreground(theme.Error).
			Render(fmt.Sprintf("\n\nError: %s", s.errMsg))
	}
	if !s.loaded {
		return lipgloss.NewStyle().
			Width(width).Align(lipgloss.Center).Foreground(theme.TextDim).
			Render("\n\n  Loading mission log...")
	}
	if len(s.runs) == 0 {
		return lipgloss.NewStyle().
			Width(width).Align(lipgloss.Center).Foreground(theme.TextDim).Italic(true).
			Render("\n\n  No missions yet. Blast off from the dashboard!")
	}

	var b strings.Builder
	b.WriteString("\n")

	for i, run := range s.runs {
		status := "abandoned"
		if run.Finished() {
			status = run.Outcome
		}

		prefix := "  "
		if i == s.selected {
			prefix = "> "
		}

		line := fmt.Sprintf("%s%s  %s  %d/%d answers correct  %s",
			prefix, run.Started.Local().Format("Jan 2, 2006 15:04"), run.LessonID, run.Correct, run.Answers, status)

		style := lipgloss.NewStyle().Foreground(runColor(run))
		if i == s.selected {
			style = style.Foreground(theme.Primary).Bold(true)
		}
		b.WriteString(lipgloss.PlaceHorizontal(width, lipgloss.Center,
			style.Render(line)))
		b.WriteString("\n")

		if s.expanded[i] {
			for _, ev := range run.Events {
				evLine := fmt.Sprintf("    #%d %-10s %s", ev.Sequence, ev.Action, ev.Detail)
				b.WriteString(lipgloss.PlaceHorizontal(width, lipgloss.Center,
					lipgloss.NewStyle().Foreground(theme.TextDim).Render(evLine)))
				b.WriteString("\n")
			}
		}
	}

	return b.String()
}

func runColor(r Run) color.Color {
	if r.Finished() {
		return theme.Text
	}
	return theme.TextDim
}
