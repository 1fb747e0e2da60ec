// Package typing reveals a line of narration one character at a time.
package typing

import (
	"iter"
	"time"

	"github.com/spacey-learn/spacey/internal/schedule"
)

// DefaultDelay is the per-character reveal delay.
const DefaultDelay = 30 * time.Millisecond

// Step is the result of one live tick.
type Step struct {
	// Seq is the sequence number of the tick that produced this step.
	Seq uint64

	// Prefix is the text revealed so far.
	Prefix string

	// Complete is true exactly once per message, on the tick that reveals
	// the final character.
	Complete bool

	// Next is the following tick to schedule, nil once complete.
	Next *schedule.Timer
}

// Sequencer reveals one message at a time. Starting a new message
// supersedes the previous one; ticks issued for the old message become
// no-ops.
type Sequencer struct {
	kind    schedule.Kind
	delay   time.Duration
	seq     uint64
	runes   []rune
	shown   int
	pending *schedule.Timer
}

// New creates a Sequencer with the given per-character delay. A
// non-positive delay selects DefaultDelay.
func New(delay time.Duration) *Sequencer {
	return NewKind(schedule.KindTyping, delay)
}

// NewKind is New with ticks issued under kind, so two sequencers can share
// one scheduler without their keys colliding.
func NewKind(kind schedule.Kind, delay time.Duration) *Sequencer {
	if delay <= 0 {
		delay = DefaultDelay
	}
	return &Sequencer{kind: kind, delay: delay}
}

// Delay returns the per-character delay.
func (s *Sequencer) Delay() time.Duration {
	return s.delay
}

// Start begins revealing text and returns the first tick to schedule.
// Any reveal in flight is cancelled. An empty text is a no-op: no tick and
// no completion.
func (s *Sequencer) Start(text string) (schedule.Timer, bool) {
	if text == "" {
		return schedule.Timer{}, false
	}
	s.seq++
	s.runes = []rune(text)
	s.shown = 0
	t := s.timer()
	s.pending = &t
	return t, true
}

// Tick handles a fired timer. It returns false for timers that do not
// belong to the current message, or arrive after completion.
func (s *Sequencer) Tick(t schedule.Timer) (Step, bool) {
	if s.pending == nil || t.Key() != s.pending.Key() {
		return Step{}, false
	}

	s.shown++
	step := Step{Seq: s.seq, Prefix: string(s.runes[:s.shown])}
	if s.shown >= len(s.runes) {
		step.Complete = true
		s.pending = nil
		return step, true
	}

	s.seq++
	next := s.timer()
	s.pending = &next
	step.Next = &next
	return step, true
}

// Cancel abandons the current message and returns the tick that was
// pending, if any, so the caller can unschedule it.
func (s *Sequencer) Cancel() (schedule.Timer, bool) {
	if s.pending == nil {
		return schedule.Timer{}, false
	}
	t := *s.pending
	s.pending = nil
	s.seq++
	return t, true
}

// Pending returns the tick currently awaited.
func (s *Sequencer) Pending() (schedule.Timer, bool) {
	if s.pending == nil {
		return schedule.Timer{}, false
	}
	return *s.pending, true
}

// Active reports whether a reveal is in progress.
func (s *Sequencer) Active() bool {
	return s.pending != nil
}

// Revealed returns the text shown so far for the current message.
func (s *Sequencer) Revealed() string {
	return string(s.runes[:s.shown])
}

// Text returns the full current message.
func (s *Sequencer) Text() string {
	return string(s.runes)
}

func (s *Sequencer) timer() schedule.Timer {
	return schedule.Timer{Kind: s.kind, Seq: s.seq, After: s.delay}
}

// Reveal returns the successive prefixes of text, one character longer
// each, without any timing. An empty text yields nothing.
func Reveal(text string) iter.Seq[string] {
	return func(yield func(string) bool) {
		runes := []rune(text)
		for i := 1; i <= len(runes); i++ {
			if !yield(string(runes[:i])) {
				return
			}
		}
	}
}
