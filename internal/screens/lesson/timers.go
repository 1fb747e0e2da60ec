package lesson

import (
	"time"

	tea "charm.land/bubbletea/v2"

	"github.com/spacey-learn/spacey/internal/schedule"
)

// timerMsg carries a fired timer back to the screen that scheduled it.
type timerMsg struct {
	session string
	timer   schedule.Timer
}

// TimerSource is a schedule.Scheduler that hands its pending work to
// Bubble Tea as commands.
type TimerSource interface {
	schedule.Scheduler
	Cmd(session string) tea.Cmd
}

// teaTimers turns scheduled timers into tea.Tick commands. Cancel is a
// no-op: a cancelled timer still fires, and the engines drop it by key.
type teaTimers struct {
	pending []schedule.Timer
}

func newTeaTimers() *teaTimers {
	return &teaTimers{}
}

func (t *teaTimers) Schedule(tm schedule.Timer) {
	t.pending = append(t.pending, tm)
}

func (t *teaTimers) Cancel(schedule.Timer) {}

func (t *teaTimers) Cmd(session string) tea.Cmd {
	if len(t.pending) == 0 {
		return nil
	}
	cmds := make([]tea.Cmd, 0, len(t.pending))
	for _, tm := range t.pending {
		cmds = append(cmds, tea.Tick(tm.After, func(time.Time) tea.Msg {
			return timerMsg{session: session, timer: tm}
		}))
	}
	t.pending = nil
	return tea.Batch(cmds...)
}
