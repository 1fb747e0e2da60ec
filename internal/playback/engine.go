package playback

import (
	"time"

	"github.com/spacey-learn/spacey/internal/catalog"
	"github.com/spacey-learn/spacey/internal/quiz"
	"github.com/spacey-learn/spacey/internal/schedule"
	"github.com/spacey-learn/spacey/internal/typing"
)

// Default delays.
const (
	DefaultPostRevealDelay = 1500 * time.Millisecond
	DefaultTransitionDelay = 2000 * time.Millisecond
)

// Config holds playback timing.
type Config struct {
	TypingDelay     time.Duration
	PostRevealDelay time.Duration
	TransitionDelay time.Duration
}

// DefaultConfig returns the standard timing.
func DefaultConfig() Config {
	return Config{
		TypingDelay:     typing.DefaultDelay,
		PostRevealDelay: DefaultPostRevealDelay,
		TransitionDelay: DefaultTransitionDelay,
	}
}

func (c Config) withDefaults() Config {
	d := DefaultConfig()
	if c.TypingDelay <= 0 {
		c.TypingDelay = d.TypingDelay
	}
	if c.PostRevealDelay <= 0 {
		c.PostRevealDelay = d.PostRevealDelay
	}
	if c.TransitionDelay <= 0 {
		c.TransitionDelay = d.TransitionDelay
	}
	return c
}

// Engine owns the playback state. It never blocks: time passes only through
// TimerFired events for timers it asked the host to schedule.
type Engine struct {
	cat     *catalog.Catalog
	cfg     Config
	state   State
	typer   *typing.Sequencer
	started bool

	advanceSeq uint64
	advance    *schedule.Timer
	result     *quiz.Result
}

// New creates an Engine positioned at the start of the lesson.
func New(cat *catalog.Catalog, cfg Config) *Engine {
	cfg = cfg.withDefaults()
	return &Engine{
		cat:   cat,
		cfg:   cfg,
		state: Initial(),
		typer: typing.New(cfg.TypingDelay),
	}
}

// State returns a snapshot of the playback state.
func (e *Engine) State() State {
	return e.state
}

// Config returns the effective timing.
func (e *Engine) Config() Config {
	return e.cfg
}

// CurrentItem returns the item being narrated.
func (e *Engine) CurrentItem() (catalog.ContentItem, bool) {
	return ItemOf(e.cat, e.state)
}

// Suspended reports whether playback is held by the permission gate.
func (e *Engine) Suspended() bool {
	item, ok := e.CurrentItem()
	return ok && item.WaitForPermission && !e.state.PermissionGranted
}

// Err returns ErrPermissionDenied while a denial is outstanding.
func (e *Engine) Err() error {
	if e.state.PermissionDenied && !e.state.PermissionGranted {
		return ErrPermissionDenied
	}
	return nil
}

// Result returns the quiz result once Results is reached.
func (e *Engine) Result() (quiz.Result, bool) {
	if e.result == nil {
		return quiz.Result{}, false
	}
	return *e.result, true
}

// Update applies ev and returns the effects for the host to carry out.
// Events that do not apply to the current state return no effects.
func (e *Engine) Update(ev Event) []Effect {
	switch ev := ev.(type) {
	case Start:
		if e.started {
			return nil
		}
		e.started = true
		return e.enter(true)
	case TimerFired:
		return e.fired(ev.Timer)
	case PermissionGranted:
		return e.grant()
	case PermissionDenied:
		return e.deny()
	case QuizCompleted:
		if e.state.Stage != StageQuiz {
			return nil
		}
		r := ev.Result
		e.result = &r
		e.state.Stage = StageResults
		return []Effect{ShowResults{Result: r}}
	}
	return nil
}

func (e *Engine) fired(t schedule.Timer) []Effect {
	switch t.Kind {
	case schedule.KindTyping:
		step, live := e.typer.Tick(t)
		if !live {
			return nil
		}
		e.state.Revealed = step.Prefix
		effects := []Effect{Narrate{Text: e.typer.Text(), Prefix: step.Prefix, Complete: step.Complete}}
		if step.Next != nil {
			effects = append(effects, Schedule{Timer: *step.Next})
		}
		if step.Complete {
			e.state.RevealComplete = true
			effects = append(effects, e.afterReveal()...)
		}
		return effects
	case schedule.KindAdvance:
		if e.advance == nil || e.advance.Key() != t.Key() {
			return nil
		}
		e.advance = nil
		return e.step()
	}
	return nil
}

func (e *Engine) grant() []Effect {
	if e.state.PermissionGranted {
		return nil
	}
	e.state.PermissionGranted = true
	e.state.PermissionDenied = false

	item, ok := e.CurrentItem()
	if !ok || !item.WaitForPermission || !e.state.RevealComplete || e.advance != nil {
		return nil
	}
	return e.scheduleAdvance(item)
}

func (e *Engine) deny() []Effect {
	// A grant is final for the session.
	if e.state.PermissionGranted {
		return nil
	}
	e.state.PermissionDenied = true
	if e.Suspended() {
		return []Effect{AwaitPermission{Err: ErrPermissionDenied}}
	}
	return nil
}

// afterReveal runs when the current item is fully shown.
func (e *Engine) afterReveal() []Effect {
	item, ok := e.CurrentItem()
	if !ok {
		return nil
	}
	if item.WaitForPermission && !e.state.PermissionGranted {
		// Already announced on entry; grant resumes.
		return nil
	}
	return e.scheduleAdvance(item)
}

func (e *Engine) scheduleAdvance(item catalog.ContentItem) []Effect {
	e.advanceSeq++
	t := schedule.Timer{Kind: schedule.KindAdvance, Seq: e.advanceSeq, After: e.delayFor(item)}
	e.advance = &t
	return []Effect{Schedule{Timer: t}}
}

func (e *Engine) delayFor(item catalog.ContentItem) time.Duration {
	if item.SectionTransition == "" {
		return e.cfg.PostRevealDelay
	}
	if d, ok := item.AutoAdvanceDelay(); ok {
		return d
	}
	return e.cfg.TransitionDelay
}

// step moves to the next position and enters it.
func (e *Engine) step() []Effect {
	prev := e.state
	e.state = Next(e.cat, e.state)
	if e.state.Stage == StageQuiz {
		effects := e.cancelTyping()
		return append(effects, StartQuiz{})
	}
	changed := prev.Stage != e.state.Stage || prev.SectionIndex != e.state.SectionIndex
	return e.enter(changed)
}

func (e *Engine) enter(sectionChanged bool) []Effect {
	item, ok := e.CurrentItem()
	if !ok {
		return nil
	}
	e.state.Revealed = ""
	e.state.RevealComplete = false

	effects := e.cancelTyping()
	effects = append(effects, EnterItem{
		Stage:          e.state.Stage,
		SectionIndex:   e.state.SectionIndex,
		ItemIndex:      e.state.ItemIndex,
		Item:           item,
		AnimationTag:   AnimationTag(e.state.Stage, item),
		SectionChanged: sectionChanged,
	})
	if item.WaitForPermission && !e.state.PermissionGranted {
		effects = append(effects, AwaitPermission{Err: e.Err()})
	}

	if t, ok := e.typer.Start(item.Text); ok {
		return append(effects, Schedule{Timer: t})
	}
	// Nothing to type; treat as revealed.
	e.state.RevealComplete = true
	return append(effects, e.afterReveal()...)
}

func (e *Engine) cancelTyping() []Effect {
	if t, ok := e.typer.Cancel(); ok {
		return []Effect{Cancel{Timer: t}}
	}
	return nil
}
