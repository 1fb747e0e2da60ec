// Package lesson runs one learner's pass through a lesson: narration,
// quiz, results and persistence. A Session is not safe for concurrent use;
// each host drives it from a single event loop.
package lesson

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/spacey-learn/spacey/internal/catalog"
	"github.com/spacey-learn/spacey/internal/logger"
	"github.com/spacey-learn/spacey/internal/playback"
	"github.com/spacey-learn/spacey/internal/quiz"
	"github.com/spacey-learn/spacey/internal/results"
	"github.com/spacey-learn/spacey/internal/schedule"
	"github.com/spacey-learn/spacey/internal/typing"
)

// ErrNotInQuiz is returned for quiz input outside the quiz stage.
var ErrNotInQuiz = errors.New("lesson: not in quiz")

// Options configures a Session. Store and Events may be nil.
type Options struct {
	UserID    string
	Config    Config
	Logger    *logger.Logger
	Store     Persistence
	Events    EventLog
	Scheduler schedule.Scheduler
	Now       func() time.Time
}

// Outcome is the end state of a completed session.
type Outcome struct {
	Result     quiz.Result
	Evaluation results.Evaluation

	// PersistErr joins any PersistenceErrors hit while saving.
	PersistErr error

	// BadgesUnknown is set when the learner's badges could not be loaded.
	// Evaluation then reports no badge as new or already held.
	BadgesUnknown bool
}

// Session wires the playback, quiz and results engines together.
type Session struct {
	id     string
	userID string
	cat    *catalog.Catalog
	log    *logger.Logger
	store  Persistence
	events EventLog
	sched  schedule.Scheduler
	now    func() time.Time

	play    *playback.Engine
	quiz    *quiz.Engine
	entered playback.EnterItem

	// narrator types the quiz and results lines; playback types the rest.
	narrator *typing.Sequencer
	line     string
	lineDone bool

	answer  *quiz.Answer
	outcome *Outcome
}

// NewSession creates a session positioned before the first item. Call
// Start to begin narration.
func NewSession(cat *catalog.Catalog, opts Options) *Session {
	if opts.Logger == nil {
		opts.Logger = logger.NewNop()
	}
	if opts.Now == nil {
		opts.Now = time.Now
	}
	if opts.Config == (Config{}) {
		opts.Config = DefaultConfig()
	}
	id := uuid.NewString()
	play := playback.New(cat, opts.Config.Playback)
	return &Session{
		id:     id,
		userID: opts.UserID,
		cat:    cat,
		log:    opts.Logger.With("session", id, "lesson", cat.ID(), "user", opts.UserID),
		store:  opts.Store,
		events: opts.Events,
		sched:  opts.Scheduler,
		now:    opts.Now,
		play:   play,

		narrator: typing.NewKind(schedule.KindNarration, play.Config().TypingDelay),
	}
}

func (s *Session) ID() string                    { return s.id }
func (s *Session) UserID() string                { return s.userID }
func (s *Session) Catalog() *catalog.Catalog     { return s.cat }
func (s *Session) Playback() playback.State      { return s.play.State() }
func (s *Session) Config() playback.Config       { return s.play.Config() }
func (s *Session) Stage() playback.Stage         { return s.play.State().Stage }
func (s *Session) Suspended() bool               { return s.play.Suspended() }
func (s *Session) Finished() bool                { return s.outcome != nil }
func (s *Session) Scheduler() schedule.Scheduler { return s.sched }

// Outcome returns the session outcome once results are shown.
func (s *Session) Outcome() (Outcome, bool) {
	if s.outcome == nil {
		return Outcome{}, false
	}
	return *s.outcome, true
}

// Start begins narration.
func (s *Session) Start(ctx context.Context) {
	s.log.Info("session started")
	s.record(ctx, ActionStart, s.cat.Version())
	s.apply(ctx, s.play.Update(playback.Start{}))
}

// Fire delivers a timer scheduled earlier. Stale timers are ignored.
func (s *Session) Fire(ctx context.Context, t schedule.Timer) {
	if t.Kind == schedule.KindNarration {
		s.narrate(t)
		return
	}
	s.apply(ctx, s.play.Update(playback.TimerFired{Timer: t}))
}

// say starts typing a quiz or results line, replacing any line in flight.
// Without a scheduler the line is shown whole.
func (s *Session) say(text string) {
	if old, ok := s.narrator.Cancel(); ok && s.sched != nil {
		s.sched.Cancel(old)
	}
	s.line, s.lineDone = "", false
	if s.sched == nil {
		s.line, s.lineDone = text, true
		return
	}
	t, ok := s.narrator.Start(text)
	if !ok {
		s.lineDone = true
		return
	}
	s.sched.Schedule(t)
}

func (s *Session) narrate(t schedule.Timer) {
	step, live := s.narrator.Tick(t)
	if !live {
		return
	}
	s.line, s.lineDone = step.Prefix, step.Complete
	if step.Next != nil && s.sched != nil {
		s.sched.Schedule(*step.Next)
	}
}

func (s *Session) sayQuestion() {
	if q, ok := s.quiz.Current(); ok {
		s.say(QuestionLine(s.quiz.State().QuestionIndex, q.Prompt))
	}
}

// SetPermission forwards the learner's permission decision.
func (s *Session) SetPermission(ctx context.Context, granted bool) {
	if granted {
		s.record(ctx, ActionPermission, "granted")
		s.apply(ctx, s.play.Update(playback.PermissionGranted{}))
		return
	}
	s.log.Warn("permission denied")
	s.record(ctx, ActionPermission, "denied")
	s.apply(ctx, s.play.Update(playback.PermissionDenied{}))
}

// SelectAnswer answers the current quiz question.
func (s *Session) SelectAnswer(ctx context.Context, option int) (quiz.Answer, error) {
	if s.quiz == nil || s.Stage() != playback.StageQuiz {
		return quiz.Answer{}, ErrNotInQuiz
	}
	ans, err := s.quiz.SelectAnswer(option)
	if err != nil {
		return quiz.Answer{}, err
	}
	s.answer = &ans
	if q, ok := s.quiz.Current(); ok {
		s.say(q.Feedback(ans.Correct))
	}
	s.record(ctx, ActionAnswer, fmt.Sprintf("%s option=%d correct=%t", ans.QuestionID, ans.OptionIndex, ans.Correct))
	return ans, nil
}

// Continue moves past an answered question. After the last question it
// evaluates the result, awards badges and saves progress.
func (s *Session) Continue(ctx context.Context) error {
	if s.quiz == nil || s.Stage() != playback.StageQuiz {
		return ErrNotInQuiz
	}
	res, done, err := s.quiz.Advance()
	if err != nil {
		return err
	}
	s.answer = nil
	if done {
		s.apply(ctx, s.play.Update(playback.QuizCompleted{Result: res}))
		return nil
	}
	s.sayQuestion()
	return nil
}

func (s *Session) apply(ctx context.Context, effects []playback.Effect) {
	for _, eff := range effects {
		switch eff := eff.(type) {
		case playback.Schedule:
			if s.sched != nil {
				s.sched.Schedule(eff.Timer)
			}
		case playback.Cancel:
			if s.sched != nil {
				s.sched.Cancel(eff.Timer)
			}
		case playback.EnterItem:
			s.entered = eff
			s.log.Debug("item entered", "stage", eff.Stage.String(), "section", eff.SectionIndex, "item", eff.ItemIndex)
		case playback.AwaitPermission:
			s.log.Debug("awaiting permission", "denied", eff.Err != nil)
		case playback.StartQuiz:
			s.quiz = quiz.New(s.cat)
			s.log.Info("quiz started", "questions", s.quiz.Total())
			s.sayQuestion()
		case playback.ShowResults:
			s.finish(ctx, eff.Result)
		}
	}
}

func (s *Session) finish(ctx context.Context, res quiz.Result) {
	now := s.now()
	var errs []error

	var (
		earned  []catalog.Badge
		unknown bool
	)
	if s.store != nil {
		held, err := s.store.LoadBadges(ctx, s.userID)
		if err != nil {
			errs = append(errs, &PersistenceError{Op: "load badges", Err: err})
			unknown = true
		} else {
			earned = held
		}
	}

	ev := results.Evaluate(results.Input{
		Result: res,
		Badges: s.cat.Badges(),
		Tiers:  s.cat.FeedbackTiers(),
		Earned: earned,
		Now:    now,
	})

	if unknown {
		ev.Newly, ev.AlreadyHeld = nil, nil
	}

	if s.store != nil {
		// Without the held set only the qualifying badges are saved. SaveBadges
		// leaves stored names untouched, so nothing is re-stamped.
		if ev.Changed() || unknown {
			if err := s.store.SaveBadges(ctx, s.userID, ev.Earned); err != nil {
				errs = append(errs, &PersistenceError{Op: "save badges", Err: err})
			}
		}
		rec := ProgressRecord{Completed: true, Score: res.Percentage, Date: now}
		if err := s.store.SaveProgress(ctx, s.userID, s.cat.ID(), rec); err != nil {
			errs = append(errs, &PersistenceError{Op: "save progress", Err: err})
		}
	}

	out := &Outcome{Result: res, Evaluation: ev, PersistErr: errors.Join(errs...), BadgesUnknown: unknown}
	if out.PersistErr != nil {
		s.log.Error("persist lesson outcome", "error", out.PersistErr)
	}
	s.outcome = out
	s.say(ev.Narration)

	var names []string
	for _, b := range ev.Newly {
		names = append(names, b.Name)
	}
	s.log.Info("session finished", "score", res.Score, "total", res.Total, "percentage", res.Percentage, "tier", ev.Tier.String(), "newBadges", names)
	s.record(ctx, ActionComplete, fmt.Sprintf("score=%d/%d percentage=%d", res.Score, res.Total, res.Percentage))
}

// record appends to the event log. Failures are logged only.
func (s *Session) record(ctx context.Context, action, detail string) {
	if s.events == nil {
		return
	}
	err := s.events.AppendLessonEvent(ctx, Event{
		SessionID: s.id,
		UserID:    s.userID,
		LessonID:  s.cat.ID(),
		Action:    action,
		Detail:    detail,
	})
	if err != nil {
		s.log.Warn("append lesson event", "action", action, "error", err)
	}
}
