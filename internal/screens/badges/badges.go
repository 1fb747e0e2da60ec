package badges

import (
	"context"
	"fmt"
	"strings"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/spacey-learn/spacey/internal/catalog"
	"github.com/spacey-learn/spacey/internal/router"
	"github.com/spacey-learn/spacey/internal/screen"
	"github.com/spacey-learn/spacey/internal/ui/layout"
	"github.com/spacey-learn/spacey/internal/ui/theme"
)

// Loader reads a learner's earned badges.
type Loader interface {
	LoadBadges(ctx context.Context, userID string) ([]catalog.Badge, error)
}

type filter int

const (
	filterAll filter = iota
	filterEarned
	filterLocked
)

var filterNames = []string{"All", "Earned", "Locked"}

type badgesLoadedMsg struct {
	Badges []catalog.Badge
	Err    error
}

// entry is one row in the collection: a badge the lesson can award,
// with its earned date when the learner holds it.
type entry struct {
	badge  catalog.Badge
	earned bool
}

// BadgesScreen displays the learner's badge collection.
type BadgesScreen struct {
	loader       Loader
	userID       string
	defs         []catalog.Badge
	entries      []entry
	filter       filter
	scrollOffset int
	loaded       bool
	errMsg       string
}

var _ screen.Screen = (*BadgesScreen)(nil)
var _ screen.KeyHintProvider = (*BadgesScreen)(nil)

// New creates a BadgesScreen. defs are the badges the current lesson can
// award; they are shown as locked until earned.
func New(loader Loader, userID string, defs ...catalog.Badge) *BadgesScreen {
	return &BadgesScreen{
		loader: loader,
		userID: userID,
		defs:   defs,
	}
}

func (s *BadgesScreen) Init() tea.Cmd {
	return func() tea.Msg {
		held, err := s.loader.LoadBadges(context.Background(), s.userID)
		return badgesLoadedMsg{Badges: held, Err: err}
	}
}

func (s *BadgesScreen) Title() string {
	return "Space Badges"
}

func (s *BadgesScreen) KeyHints() []layout.KeyHint {
	return []layout.KeyHint{
		{Key: "Tab", Description: "Filter"},
		{Key: "↑↓", Description: "Scroll"},
		{Key: "Esc", Description: "Back"},
	}
}

func (s *BadgesScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	switch msg := msg.(type) {
	case badgesLoadedMsg:
		if msg.Err != nil {
			s.errMsg = msg.Err.Error()
		} else {
			s.entries = merge(s.defs, msg.Badges)
		}
		s.loaded = true
		return s, nil

	case tea.KeyMsg:
		switch msg.String() {
		case "esc":
			return s, func() tea.Msg { return router.PopScreenMsg{} }
		case "tab":
			s.filter = (s.filter + 1) % filter(len(filterNames))
			s.scrollOffset = 0
			return s, nil
		case "shift+tab":
			s.filter = (s.filter - 1 + filter(len(filterNames))) % filter(len(filterNames))
			s.scrollOffset = 0
			return s, nil
		case "up", "k":
			if s.scrollOffset > 0 {
				s.scrollOffset--
			}
			return s, nil
		case "down", "j":
			if s.scrollOffset < len(s.filtered())-1 {
				s.scrollOffset++
			}
			return s, nil
		}
	}
	return s, nil
}

// merge lists earned badges first, then definitions not yet earned.
func merge(defs, held []catalog.Badge) []entry {
	out := make([]entry, 0, len(defs)+len(held))
	seen := make(map[string]bool, len(held))
	for _, b := range held {
		out = append(out, entry{badge: b, earned: true})
		seen[b.Name] = true
	}
	for _, d := range defs {
		if d.Name == "" || seen[d.Name] {
			continue
		}
		out = append(out, entry{badge: d})
		seen[d.Name] = true
	}
	return out
}

func (s *BadgesScreen) View(width, height int) string {
	if s.errMsg != "" {
		return lipgloss.NewStyle().
			Width(width).Align(lipgloss.Center).Foreground(theme.Error).
			Render(fmt.Sprintf("\n\nError: %s", s.errMsg))
	}
	if !s.loaded {
		return lipgloss.NewStyle().
			Width(width).Align(lipgloss.Center).Foreground(theme.TextDim).
			Render("\n\n  Loading badges...")
	}

	var b strings.Builder

	b.WriteString(lipgloss.NewStyle().
		Width(width).Align(lipgloss.Center).Foreground(theme.Text).
		Render(fmt.Sprintf("\nEarned: %d of %d\n", s.count(filterEarned), len(s.entries))))
	b.WriteString("\n")

	var tabs []string
	for i, name := range filterNames {
		label := fmt.Sprintf("%s (%d)", name, s.count(filter(i)))
		if filter(i) == s.filter {
			tabs = append(tabs, lipgloss.NewStyle().Foreground(theme.Primary).Bold(true).Render(label))
		} else {
			tabs = append(tabs, lipgloss.NewStyle().Foreground(theme.TextDim).Render(label))
		}
	}
	b.WriteString(lipgloss.PlaceHorizontal(width, lipgloss.Center, strings.Join(tabs, "     ")))
	b.WriteString("\n\n")

	divider := lipgloss.NewStyle().Foreground(theme.Border).Render(
		strings.Repeat("─", min(width-8, 60)))
	b.WriteString(lipgloss.PlaceHorizontal(width, lipgloss.Center, divider))
	b.WriteString("\n\n")

	filtered := s.filtered()
	if len(filtered) == 0 {
		empty := "No badges yet. Finish a mission to earn one!"
		if s.filter == filterLocked {
			empty = "Every badge unlocked!"
		}
		b.WriteString(lipgloss.NewStyle().
			Width(width).Align(lipgloss.Center).Foreground(theme.TextDim).Italic(true).
			Render(empty))
		return b.String()
	}

	maxVisible := max(height-10, 3)
	start := s.scrollOffset
	end := min(start+maxVisible, len(filtered))

	for _, e := range filtered[start:end] {
		b.WriteString(lipgloss.PlaceHorizontal(width, lipgloss.Center, renderEntry(e)))
		b.WriteString("\n")
	}

	if end < len(filtered) {
		b.WriteString("\n")
		b.WriteString(lipgloss.NewStyle().
			Width(width).Align(lipgloss.Center).Foreground(theme.TextDim).
			Render(fmt.Sprintf("... %d more", len(filtered)-end)))
	}

	return b.String()
}

func renderEntry(e entry) string {
	if !e.earned {
		return lipgloss.NewStyle().Foreground(theme.TextDim).
			Render(fmt.Sprintf("  ☆ %-24s %-14s %s", e.badge.Name, "locked", e.badge.Description))
	}
	date := ""
	if e.badge.EarnedDate != nil {
		date = e.badge.EarnedDate.Format("Jan 2, 2006")
	}
	return lipgloss.NewStyle().Foreground(theme.ArcadeYellow).
		Render(fmt.Sprintf("  ★ %-24s %-14s %s", e.badge.Name, date, e.badge.Description))
}

func (s *BadgesScreen) filtered() []entry {
	var out []entry
	for _, e := range s.entries {
		if s.matches(s.filter, e) {
			out = append(out, e)
		}
	}
	return out
}

func (s *BadgesScreen) count(f filter) int {
	n := 0
	for _, e := range s.entries {
		if s.matches(f, e) {
			n++
		}
	}
	return n
}

func (s *BadgesScreen) matches(f filter, e entry) bool {
	switch f {
	case filterEarned:
		return e.earned
	case filterLocked:
		return !e.earned
	default:
		return true
	}
}
