package app

import (
	"context"
	"fmt"
	"os"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/spacey-learn/spacey/internal/catalog"
	lsn "github.com/spacey-learn/spacey/internal/lesson"
	"github.com/spacey-learn/spacey/internal/logger"
	"github.com/spacey-learn/spacey/internal/router"
	"github.com/spacey-learn/spacey/internal/screen"
	"github.com/spacey-learn/spacey/internal/screens/history"
	"github.com/spacey-learn/spacey/internal/screens/home"
	lessonscreen "github.com/spacey-learn/spacey/internal/screens/lesson"
	"github.com/spacey-learn/spacey/internal/screens/welcome"
	"github.com/spacey-learn/spacey/internal/store"
	"github.com/spacey-learn/spacey/internal/ui/layout"
)

// Options holds everything the TUI needs.
type Options struct {
	Catalog *catalog.Catalog

	// Lesson carries the learner id, store, event log and timing used for
	// every session started from the dashboard.
	Lesson lsn.Options

	History history.Source
	Learner string

	// Learners resolves the learner when a mission starts from the splash.
	Learners welcome.Learners

	// SkipSplash starts on the dashboard.
	SkipSplash bool
}

// AppModel is the root Bubble Tea model.
type AppModel struct {
	opts       Options
	router     *router.Router
	badgeCount int
	width      int
	height     int
}

// newAppModel creates a new AppModel showing the splash unless SkipSplash
// is set.
func newAppModel(opts Options) AppModel {
	if opts.Lesson.Logger == nil {
		opts.Lesson.Logger = logger.NewNop()
	}
	var first screen.Screen
	if opts.SkipSplash {
		first = homeFor(opts, opts.Lesson.UserID)
	} else {
		lessonFor := func(u store.User) screen.Screen {
			lo := opts.Lesson
			lo.UserID = u.ID
			return lessonscreen.New(opts.Catalog, lo)
		}
		first = welcome.New(welcome.Deps{
			Catalog:  opts.Catalog,
			Learners: opts.Learners,
			UserID:   opts.Lesson.UserID,
			Home:     func(u store.User) screen.Screen { return homeFor(opts, u.ID) },
			Lesson:   lessonFor,
		})
	}

	m := AppModel{
		opts:   opts,
		router: router.New(first),
	}
	m.badgeCount = m.loadBadgeCount()
	return m
}

func homeFor(opts Options, userID string) screen.Screen {
	lo := opts.Lesson
	lo.UserID = userID
	return home.New(home.Deps{
		Catalog: opts.Catalog,
		Lesson:  lo,
		History: opts.History,
	})
}

func (m AppModel) loadBadgeCount() int {
	st := m.opts.Lesson.Store
	if st == nil {
		return 0
	}
	held, err := st.LoadBadges(context.Background(), m.opts.Lesson.UserID)
	if err != nil {
		m.opts.Lesson.Logger.Warn("load badges for header", "error", err)
		return 0
	}
	return len(held)
}

func (m AppModel) Init() tea.Cmd {
	return m.router.Active().Init()
}

func (m AppModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		return m, nil

	case tea.KeyMsg:
		switch msg.String() {
		case "ctrl+c":
			return m, tea.Quit
		case "esc":
			if m.router.Depth() > 1 {
				return m, func() tea.Msg { return router.PopScreenMsg{} }
			}
			return m, nil
		}

	case lessonscreen.FinishedMsg:
		if msg.Outcome.BadgesUnknown {
			m.badgeCount = m.loadBadgeCount()
		} else {
			m.badgeCount = len(msg.Outcome.Evaluation.Earned)
		}
		return m, nil

	case router.RefreshMsg:
		m.badgeCount = m.loadBadgeCount()

	case welcome.LearnerReadyMsg:
		m.opts.Lesson.UserID = msg.User.ID
		if msg.User.DisplayName != "" {
			m.opts.Learner = msg.User.DisplayName
		}
		m.badgeCount = m.loadBadgeCount()
	}

	cmd := m.router.Update(msg)
	return m, cmd
}

func (m AppModel) View() tea.View {
	v := tea.NewView("")
	v.AltScreen = true

	if m.width == 0 || m.height == 0 {
		return v
	}

	if layout.IsTooSmall(m.width, m.height) {
		v.SetContent(layout.RenderMinSizeMessage(m.width, m.height))
		return v
	}

	active := m.router.Active()
	title := ""
	if active != nil {
		title = active.Title()
	}

	header := layout.RenderHeader(title, m.opts.Learner, m.badgeCount, m.width)
	footer := layout.RenderFooter(m.footerHints(active), m.width)

	headerHeight := lipgloss.Height(header)
	footerHeight := lipgloss.Height(footer)
	contentHeight := m.height - headerHeight - footerHeight
	if contentHeight < 0 {
		contentHeight = 0
	}

	content := m.router.View(m.width, contentHeight)
	frame := layout.RenderFrame(header, content, footer, m.width, m.height)

	v.SetContent(frame)
	return v
}

func (m AppModel) footerHints(active screen.Screen) []layout.KeyHint {
	if p, ok := active.(screen.KeyHintProvider); ok {
		return p.KeyHints()
	}
	if m.router.Depth() > 1 {
		return []layout.KeyHint{
			{Key: "Esc", Description: "Back"},
			{Key: "Ctrl+C", Description: "Quit"},
		}
	}
	return []layout.KeyHint{
		{Key: "↑↓", Description: "Navigate"},
		{Key: "Enter", Description: "Select"},
		{Key: "Ctrl+C", Description: "Quit"},
	}
}

// Run starts the Bubble Tea program.
func Run(ctx context.Context, opts Options) error {
	p := tea.NewProgram(newAppModel(opts), tea.WithContext(ctx))
	_, err := p.Run()
	if err != nil {
		fmt.Fprintln(os.Stderr, "Error running program:", err)
		return err
	}
	return nil
}
