package home

import (
	"context"
	"strings"

	tea "charm.land/bubbletea/v2"

	"github.com/spacey-learn/spacey/internal/catalog"
	lsn "github.com/spacey-learn/spacey/internal/lesson"
	"github.com/spacey-learn/spacey/internal/router"
	"github.com/spacey-learn/spacey/internal/screen"
	"github.com/spacey-learn/spacey/internal/screens/badges"
	"github.com/spacey-learn/spacey/internal/screens/history"
	lessonscreen "github.com/spacey-learn/spacey/internal/screens/lesson"
	"github.com/spacey-learn/spacey/internal/ui/components"
)

// Deps wires the dashboard to the lesson and its storage. Lesson.Store
// and History may be nil, in which case nothing is remembered.
type Deps struct {
	Catalog *catalog.Catalog
	Lesson  lsn.Options
	History history.Source
}

// HomeScreen is the learner's dashboard.
type HomeScreen struct {
	deps       Deps
	menu       components.Menu
	menuLabels []string
	disabled   map[int]bool

	progress lsn.ProgressRecord
	badges   []catalog.Badge
	errMsg   string
}

var _ screen.Screen = (*HomeScreen)(nil)

// New creates a new HomeScreen.
func New(deps Deps) *HomeScreen {
	h := &HomeScreen{deps: deps}
	h.reload()
	return h
}

// reload reads progress and badges and rebuilds the menu around them.
func (h *HomeScreen) reload() {
	h.progress = lsn.ProgressRecord{}
	h.badges = nil
	h.errMsg = ""

	if st := h.deps.Lesson.Store; st != nil {
		ctx := context.Background()
		user := h.deps.Lesson.UserID
		all, err := st.LoadProgress(ctx, user)
		if err != nil {
			h.errMsg = err.Error()
		}
		h.progress = all[h.deps.Catalog.ID()]
		held, err := st.LoadBadges(ctx, user)
		if err != nil {
			h.errMsg = err.Error()
		}
		h.badges = held
	}

	start := "START MISSION"
	if h.progress.Completed {
		start = "REPLAY MISSION"
	}
	h.menuLabels = []string{start, "BADGES", "MISSION LOG", "EXIT"}
	h.disabled = map[int]bool{}

	items := []components.MenuItem{
		{Label: h.menuLabels[0], Action: func() tea.Cmd {
			next := lessonscreen.New(h.deps.Catalog, h.deps.Lesson)
			return func() tea.Msg { return router.PushScreenMsg{Screen: next} }
		}},
		{Label: h.menuLabels[1], Disabled: h.deps.Lesson.Store == nil, Action: func() tea.Cmd {
			next := badges.New(h.deps.Lesson.Store, h.deps.Lesson.UserID, h.badgeDefs()...)
			return func() tea.Msg { return router.PushScreenMsg{Screen: next} }
		}},
		{Label: h.menuLabels[2], Disabled: h.deps.History == nil, Action: func() tea.Cmd {
			next := history.New(h.deps.History, h.deps.Lesson.UserID)
			return func() tea.Msg { return router.PushScreenMsg{Screen: next} }
		}},
		{Label: h.menuLabels[3], Action: func() tea.Cmd {
			return tea.Quit
		}},
	}
	for i, it := range items {
		if it.Disabled {
			h.disabled[i] = true
		}
	}

	selected := 0
	if h.menu.Items != nil {
		selected = h.menu.Selected
	}
	h.menu = components.NewMenu(items)
	h.menu.Selected = selected
}

func (h *HomeScreen) badgeDefs() []catalog.Badge {
	defs := h.deps.Catalog.Badges()
	return []catalog.Badge{defs.Completion, defs.PerfectScore}
}

// Progress returns the saved record for the dashboard's lesson.
func (h *HomeScreen) Progress() lsn.ProgressRecord {
	return h.progress
}

func (h *HomeScreen) Init() tea.Cmd {
	return nil
}

func (h *HomeScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	if _, ok := msg.(router.RefreshMsg); ok {
		h.reload()
		return h, nil
	}
	var cmd tea.Cmd
	h.menu, cmd = h.menu.Update(msg)
	return h, cmd
}

func (h *HomeScreen) View(width, height int) string {
	// height is the content area; estimate full terminal height
	// by adding back header (3) + footer (3) + frame gaps
	termHeight := height + 8
	compact := termHeight < 30 || width < 100

	cw := components.ContentWidth(width)

	var sections []string
	sections = append(sections, renderTitle(cw, compact))
	if !compact {
		sections = append(sections, renderMascotBox(h.mood(), cw))
	}
	sections = append(sections, renderLessonCard(h.deps.Catalog, h.progress, cw))
	sections = append(sections, renderStatsBar(h.progress, len(h.badges), cw, compact))
	if h.errMsg != "" {
		sections = append(sections, renderError(h.errMsg, cw))
	}
	if compact {
		sections = append(sections, renderArcadeMenuCompact(h.menuLabels, h.menu.Selected, cw, h.disabled))
	} else {
		sections = append(sections, renderArcadeMenu(h.menuLabels, h.menu.Selected, cw, h.disabled))
		sections = append(sections, renderComingSoon(cw))
	}

	content := strings.Join(sections, "\n\n")
	return components.CabinetFrame(content, width, height)
}

// mood picks the guide's face: celebrating after a perfect run, happy
// once the mission is done, idle otherwise.
func (h *HomeScreen) mood() string {
	switch {
	case h.progress.Completed && h.progress.Score == 100:
		return "celebrating"
	case h.progress.Completed:
		return "happy"
	default:
		return "idle"
	}
}

func (h *HomeScreen) Title() string {
	return "Dashboard"
}
