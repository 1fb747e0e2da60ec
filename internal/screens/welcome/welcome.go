// Package welcome is the first screen a learner sees: a preview of the
// lesson and a way straight into it.
package welcome

import (
	"context"
	"time"

	tea "charm.land/bubbletea/v2"

	"github.com/spacey-learn/spacey/internal/catalog"
	"github.com/spacey-learn/spacey/internal/router"
	"github.com/spacey-learn/spacey/internal/screen"
	"github.com/spacey-learn/spacey/internal/store"
	"github.com/spacey-learn/spacey/internal/ui/components"
	"github.com/spacey-learn/spacey/internal/ui/layout"
)

const twinkleInterval = 400 * time.Millisecond

// Learners makes sure the learner exists before anything is played.
type Learners interface {
	EnsureUser(ctx context.Context, id string) (store.User, error)
}

// Deps wires the welcome screen into the app. Learners may be nil, in which
// case UserID is used as-is. An empty UserID asks Learners for a new guest.
type Deps struct {
	Catalog  *catalog.Catalog
	Learners Learners
	UserID   string

	Home   func(u store.User) screen.Screen
	Lesson func(u store.User) screen.Screen
}

// Destination is where the learner asked to go.
type Destination int

const (
	ToLesson Destination = iota
	ToDashboard
)

// LearnerReadyMsg reports the learner the app is now playing as.
type LearnerReadyMsg struct {
	User store.User
	Dest Destination
}

type learnerFailedMsg struct{ err error }

type twinkleMsg time.Time

// WelcomeScreen previews the lesson and offers to start it.
type WelcomeScreen struct {
	deps    Deps
	menu    components.Menu
	frame   int
	loading bool
	left    bool
	errMsg  string
}

var _ screen.Screen = (*WelcomeScreen)(nil)

// New creates a WelcomeScreen.
func New(deps Deps) *WelcomeScreen {
	w := &WelcomeScreen{deps: deps}
	w.menu = components.NewMenu([]components.MenuItem{
		{Label: "Start " + deps.Catalog.Title() + "!", Action: func() tea.Cmd { return w.start(ToLesson) }},
		{Label: "Open dashboard", Action: func() tea.Cmd { return w.start(ToDashboard) }},
	})
	return w
}

func (w *WelcomeScreen) Title() string { return "" }

func (w *WelcomeScreen) Init() tea.Cmd { return twinkle() }

func twinkle() tea.Cmd {
	return tea.Tick(twinkleInterval, func(t time.Time) tea.Msg { return twinkleMsg(t) })
}

func (w *WelcomeScreen) KeyHints() []layout.KeyHint {
	return []layout.KeyHint{
		{Key: "↑↓", Description: "Choose"},
		{Key: "Enter", Description: "Select"},
		{Key: "S", Description: "Start mission"},
		{Key: "Ctrl+C", Description: "Quit"},
	}
}

func (w *WelcomeScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	switch msg := msg.(type) {
	case twinkleMsg:
		if w.left {
			return w, nil
		}
		w.frame++
		return w, twinkle()

	case tea.KeyPressMsg:
		if w.loading || w.left {
			return w, nil
		}
		if msg.String() == "s" || msg.String() == "S" {
			return w, w.start(ToLesson)
		}
		var cmd tea.Cmd
		w.menu, cmd = w.menu.Update(msg)
		return w, cmd

	case LearnerReadyMsg:
		return w, w.leave(msg)

	case learnerFailedMsg:
		w.loading = false
		w.errMsg = "Couldn't set up your explorer profile. Please try again."
		return w, nil
	}
	return w, nil
}

// start resolves the learner off the UI loop.
func (w *WelcomeScreen) start(dest Destination) tea.Cmd {
	if w.loading || w.left {
		return nil
	}
	w.loading = true
	w.errMsg = ""

	deps := w.deps
	return func() tea.Msg {
		if deps.Learners == nil {
			return LearnerReadyMsg{User: store.User{ID: deps.UserID}, Dest: dest}
		}
		u, err := deps.Learners.EnsureUser(context.Background(), deps.UserID)
		if err != nil {
			return learnerFailedMsg{err: err}
		}
		return LearnerReadyMsg{User: u, Dest: dest}
	}
}

// leave swaps the splash for the dashboard, with the lesson on top of it
// when the learner chose to start right away.
func (w *WelcomeScreen) leave(msg LearnerReadyMsg) tea.Cmd {
	if w.left {
		return nil
	}
	w.left = true
	w.loading = false

	screens := []screen.Screen{w.deps.Home(msg.User)}
	if msg.Dest == ToLesson {
		screens = append(screens, w.deps.Lesson(msg.User))
	}
	return func() tea.Msg { return router.ResetStackMsg{Screens: screens} }
}
