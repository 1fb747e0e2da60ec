package lesson

import (
	"context"
	"errors"

	"charm.land/bubbles/v2/key"
	tea "charm.land/bubbletea/v2"

	"github.com/spacey-learn/spacey/internal/catalog"
	lsn "github.com/spacey-learn/spacey/internal/lesson"
	"github.com/spacey-learn/spacey/internal/quiz"
	"github.com/spacey-learn/spacey/internal/router"
	"github.com/spacey-learn/spacey/internal/screen"
	"github.com/spacey-learn/spacey/internal/ui/components"
	"github.com/spacey-learn/spacey/internal/ui/layout"
)

// FinishedMsg is emitted once when the session reaches its results.
type FinishedMsg struct {
	Outcome lsn.Outcome
}

// LessonScreen plays one lesson session.
type LessonScreen struct {
	cat     *catalog.Catalog
	opts    lsn.Options
	timers  TimerSource
	session *lsn.Session

	choice    components.MultiChoice
	choiceIdx int
	finished  bool
	errMsg    string
}

var _ screen.Screen = (*LessonScreen)(nil)
var _ screen.KeyHintProvider = (*LessonScreen)(nil)

// New creates a LessonScreen. opts.Scheduler is replaced by the screen's
// own timer source.
func New(cat *catalog.Catalog, opts lsn.Options) *LessonScreen {
	return newWithTimers(cat, opts, newTeaTimers())
}

func newWithTimers(cat *catalog.Catalog, opts lsn.Options, timers TimerSource) *LessonScreen {
	opts.Scheduler = timers
	return &LessonScreen{
		cat:       cat,
		opts:      opts,
		timers:    timers,
		session:   lsn.NewSession(cat, opts),
		choiceIdx: -1,
	}
}

// Session exposes the running session.
func (s *LessonScreen) Session() *lsn.Session {
	return s.session
}

func (s *LessonScreen) Init() tea.Cmd {
	s.session.Start(context.Background())
	return s.timerCmd()
}

func (s *LessonScreen) Title() string {
	return s.cat.Title()
}

func (s *LessonScreen) KeyHints() []layout.KeyHint {
	v := s.session.View()
	switch {
	case v.AwaitingPermission && v.NarrationComplete:
		return []layout.KeyHint{hint(keys.Allow), hint(keys.Deny), {Key: "Esc", Description: "Leave"}}
	case v.Quiz != nil && v.Quiz.FeedbackVisible:
		if v.Quiz.IsLast {
			return []layout.KeyHint{{Key: "Enter", Description: "See results"}}
		}
		return []layout.KeyHint{{Key: "Enter", Description: "Next question"}}
	case v.Quiz != nil:
		return []layout.KeyHint{{Key: "↑↓", Description: "Choose"}, hint(keys.Choose)}
	case v.Results != nil:
		return []layout.KeyHint{hint(keys.Replay), {Key: "Esc", Description: "Home"}}
	default:
		return []layout.KeyHint{{Key: "Esc", Description: "Leave"}, {Key: "Ctrl+C", Description: "Quit"}}
	}
}

func hint(b key.Binding) layout.KeyHint {
	h := b.Help()
	return layout.KeyHint{Key: h.Key, Description: h.Desc}
}

func (s *LessonScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	ctx := context.Background()

	switch msg := msg.(type) {
	case timerMsg:
		if msg.session != s.session.ID() {
			return s, nil
		}
		s.session.Fire(ctx, msg.timer)
		return s, s.timerCmd()

	case tea.KeyPressMsg:
		return s.handleKey(ctx, msg)
	}
	return s, nil
}

func (s *LessonScreen) handleKey(ctx context.Context, msg tea.KeyPressMsg) (screen.Screen, tea.Cmd) {
	v := s.session.View()

	switch {
	case v.AwaitingPermission:
		switch {
		case key.Matches(msg, keys.Allow):
			s.session.SetPermission(ctx, true)
		case key.Matches(msg, keys.Deny):
			s.session.SetPermission(ctx, false)
		}
		return s, s.timerCmd()

	case v.Quiz != nil:
		return s.handleQuizKey(ctx, msg, v.Quiz)

	case v.Results != nil:
		if key.Matches(msg, keys.Replay) {
			next := New(s.cat, s.opts)
			return s, func() tea.Msg { return router.ReplaceScreenMsg{Screen: next} }
		}
	}
	return s, nil
}

func (s *LessonScreen) handleQuizKey(ctx context.Context, msg tea.KeyPressMsg, q *lsn.QuizView) (screen.Screen, tea.Cmd) {
	s.choiceFor(q)

	if q.FeedbackVisible {
		if !key.Matches(msg, keys.Continue) {
			return s, nil
		}
		if err := s.session.Continue(ctx); err != nil {
			s.errMsg = err.Error()
			return s, nil
		}
		return s, tea.Batch(s.timerCmd(), s.finishCmd())
	}

	if key.Matches(msg, keys.Choose) {
		ans, err := s.session.SelectAnswer(ctx, s.choice.Cursor)
		switch {
		case errors.Is(err, quiz.ErrInvalidTransition), errors.Is(err, quiz.ErrInvalidOption):
			return s, nil
		case err != nil:
			s.errMsg = err.Error()
			return s, nil
		}
		s.choice = s.choice.Lock(ans.OptionIndex, ans.Correct)
		return s, s.timerCmd()
	}

	s.choice = s.choice.Update(msg)
	return s, nil
}

// finishCmd announces the outcome the first time results are reached.
func (s *LessonScreen) finishCmd() tea.Cmd {
	out, ok := s.session.Outcome()
	if !ok || s.finished {
		return nil
	}
	s.finished = true
	return func() tea.Msg { return FinishedMsg{Outcome: out} }
}

func (s *LessonScreen) timerCmd() tea.Cmd {
	return s.timers.Cmd(s.session.ID())
}
