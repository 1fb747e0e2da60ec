package lesson

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"

	"github.com/spacey-learn/spacey/internal/catalog"
	"github.com/spacey-learn/spacey/internal/catalog/catalogtest"
	"github.com/spacey-learn/spacey/internal/logger"
	"github.com/spacey-learn/spacey/internal/playback"
	"github.com/spacey-learn/spacey/internal/quiz"
	"github.com/spacey-learn/spacey/internal/schedule"
)

var fixedNow = time.Date(2026, 5, 1, 10, 0, 0, 0, time.UTC)

type memStore struct {
	progress map[string]map[string]ProgressRecord
	badges   map[string][]catalog.Badge
	saveErr  error
	loadErr  error
}

func newMemStore() *memStore {
	return &memStore{
		progress: map[string]map[string]ProgressRecord{},
		badges:   map[string][]catalog.Badge{},
	}
}

func (m *memStore) LoadProgress(_ context.Context, userID string) (map[string]ProgressRecord, error) {
	return m.progress[userID], nil
}

func (m *memStore) SaveProgress(_ context.Context, userID, lessonID string, rec ProgressRecord) error {
	if m.saveErr != nil {
		return m.saveErr
	}
	if m.progress[userID] == nil {
		m.progress[userID] = map[string]ProgressRecord{}
	}
	m.progress[userID][lessonID] = rec
	return nil
}

func (m *memStore) LoadBadges(_ context.Context, userID string) ([]catalog.Badge, error) {
	if m.loadErr != nil {
		return nil, m.loadErr
	}
	return m.badges[userID], nil
}

func (m *memStore) SaveBadges(_ context.Context, userID string, badges []catalog.Badge) error {
	if m.saveErr != nil {
		return m.saveErr
	}
	held := map[string]bool{}
	for _, b := range m.badges[userID] {
		held[b.Name] = true
	}
	for _, b := range badges {
		if !held[b.Name] {
			m.badges[userID] = append(m.badges[userID], b)
			held[b.Name] = true
		}
	}
	return nil
}

type memEvents struct {
	events []Event
}

func (m *memEvents) AppendLessonEvent(_ context.Context, ev Event) error {
	m.events = append(m.events, ev)
	return nil
}

type fixture struct {
	s     *Session
	clock *schedule.Manual
	store *memStore
	log   *memEvents
}

func newFixture(t *testing.T, store *memStore, l *logger.Logger) *fixture {
	t.Helper()
	clock := schedule.NewManual()
	events := &memEvents{}
	s := NewSession(catalogtest.Catalog(t), Options{
		UserID:    "u1",
		Logger:    l,
		Store:     store,
		Events:    events,
		Scheduler: clock,
		Now:       func() time.Time { return fixedNow },
	})
	return &fixture{s: s, clock: clock, store: store, log: events}
}

// drain fires timers until none are pending.
func (f *fixture) drain(ctx context.Context) {
	for {
		tm, ok := f.clock.Next()
		if !ok {
			return
		}
		f.s.Fire(ctx, tm)
	}
}

// playToQuiz runs narration through the permission gate to the quiz.
func (f *fixture) playToQuiz(t *testing.T) {
	t.Helper()
	ctx := context.Background()
	f.s.Start(ctx)
	f.drain(ctx)
	require.True(t, f.s.Suspended())
	f.s.SetPermission(ctx, true)
	f.drain(ctx)
	require.Equal(t, playback.StageQuiz, f.s.Stage())
}

func (f *fixture) answerAll(t *testing.T, choices ...int) {
	t.Helper()
	ctx := context.Background()
	for _, c := range choices {
		_, err := f.s.SelectAnswer(ctx, c)
		require.NoError(t, err)
		require.NoError(t, f.s.Continue(ctx))
	}
}

func TestSession_PerfectRun(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t, newMemStore(), nil)
	f.playToQuiz(t)

	v := f.s.View()
	require.NotNil(t, v.Quiz)
	assert.Equal(t, "Question 1: One?", v.Narration)
	assert.Equal(t, 3, v.Quiz.Total)
	assert.Equal(t, quiz.NoSelection, v.Quiz.Selected)

	ans, err := f.s.SelectAnswer(ctx, 0)
	require.NoError(t, err)
	assert.True(t, ans.Correct)
	f.drain(ctx)
	v = f.s.View()
	assert.Equal(t, "yes", v.Narration)
	assert.Equal(t, "happy", v.Mood)
	require.NoError(t, f.s.Continue(ctx))

	f.answerAll(t, 2, 1)
	require.True(t, f.s.Finished())

	out, ok := f.s.Outcome()
	require.True(t, ok)
	assert.NoError(t, out.PersistErr)
	assert.Equal(t, quiz.Result{Score: 3, Total: 3, Percentage: 100, IsPerfect: true}, out.Result)
	require.Len(t, out.Evaluation.Newly, 2)

	f.drain(ctx)
	v = f.s.View()
	assert.Equal(t, "results", v.Stage)
	assert.Equal(t, "Perfect! You got 3 out of 3 questions correct!", v.Narration)
	assert.Equal(t, "celebrating", v.Mood)
	require.NotNil(t, v.Results)
	assert.Equal(t, "perfect", v.Results.Tier)
	assert.Len(t, v.Results.NewBadges, 2)

	rec := f.store.progress["u1"]["test-lesson"]
	assert.Equal(t, ProgressRecord{Completed: true, Score: 100, Date: fixedNow}, rec)
	require.Len(t, f.store.badges["u1"], 2)
	assert.Equal(t, fixedNow, *f.store.badges["u1"][0].EarnedDate)
}

func TestSession_ReplayDoesNotReawardBadges(t *testing.T) {
	store := newMemStore()
	first := newFixture(t, store, nil)
	first.playToQuiz(t)
	first.answerAll(t, 0, 2, 1)

	second := newFixture(t, store, nil)
	second.s.now = func() time.Time { return fixedNow.Add(48 * time.Hour) }
	second.playToQuiz(t)
	second.answerAll(t, 1, 0, 0)

	out, ok := second.s.Outcome()
	require.True(t, ok)
	assert.Empty(t, out.Evaluation.Newly)
	require.Len(t, out.Evaluation.AlreadyHeld, 1)
	assert.Equal(t, fixedNow, *out.Evaluation.AlreadyHeld[0].EarnedDate)

	assert.Len(t, store.badges["u1"], 2)
	assert.Equal(t, 0, store.progress["u1"]["test-lesson"].Score)
}

func TestSession_PersistFailureIsSurfaced(t *testing.T) {
	core, logs := observer.New(zapcore.ErrorLevel)
	store := newMemStore()
	store.saveErr = errors.New("disk full")

	f := newFixture(t, store, logger.FromZap(zap.New(core)))
	f.playToQuiz(t)
	f.answerAll(t, 0, 0, 0)

	out, ok := f.s.Outcome()
	require.True(t, ok)
	require.Error(t, out.PersistErr)

	var perr *PersistenceError
	require.ErrorAs(t, out.PersistErr, &perr)
	assert.ErrorIs(t, out.PersistErr, store.saveErr)

	// Results still shown from memory.
	v := f.s.View()
	require.NotNil(t, v.Results)
	assert.Equal(t, 1, v.Results.Score)
	assert.Contains(t, v.Results.PersistError, "disk full")

	assert.Equal(t, 1, logs.FilterMessage("persist lesson outcome").Len())
}

func TestSession_LoadBadgesFailure(t *testing.T) {
	store := newMemStore()
	first := newFixture(t, store, nil)
	first.playToQuiz(t)
	first.answerAll(t, 0, 0, 0)
	require.Len(t, store.badges["u1"], 1)

	store.loadErr = errors.New("offline")
	second := newFixture(t, store, nil)
	second.s.now = func() time.Time { return fixedNow.Add(24 * time.Hour) }
	second.playToQuiz(t)
	second.answerAll(t, 0, 2, 1)

	out, ok := second.s.Outcome()
	require.True(t, ok)
	require.Error(t, out.PersistErr)
	var perr *PersistenceError
	require.ErrorAs(t, out.PersistErr, &perr)
	assert.Equal(t, "load badges", perr.Op)
	assert.Contains(t, out.PersistErr.Error(), "load badges: offline")

	assert.True(t, out.BadgesUnknown)
	assert.Empty(t, out.Evaluation.Newly)
	assert.Empty(t, out.Evaluation.AlreadyHeld)

	v := second.s.View()
	require.NotNil(t, v.Results)
	assert.True(t, v.Results.BadgesUnknown)
	assert.Empty(t, v.Results.NewBadges)
	assert.Empty(t, v.Results.Badges)
	assert.Equal(t, 100, v.Results.Percentage)

	// The held badge keeps its date; the perfect badge earned now is kept.
	require.Len(t, store.badges["u1"], 2)
	assert.Equal(t, "Finisher", store.badges["u1"][0].Name)
	assert.Equal(t, fixedNow, *store.badges["u1"][0].EarnedDate)
	assert.Equal(t, 100, store.progress["u1"]["test-lesson"].Score)
}

func TestSession_QuizLinesAreTyped(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t, newMemStore(), nil)
	f.s.Start(ctx)
	f.drain(ctx)
	f.s.SetPermission(ctx, true)

	// Run playback up to the quiz, then step the question line by hand.
	for f.s.Stage() != playback.StageQuiz {
		tm, ok := f.clock.Next()
		require.True(t, ok)
		f.s.Fire(ctx, tm)
	}
	v := f.s.View()
	assert.Empty(t, v.Narration)
	assert.False(t, v.NarrationComplete)

	var prefixes []string
	for {
		tm, ok := f.clock.Next()
		if !ok {
			break
		}
		assert.Equal(t, schedule.KindNarration, tm.Kind)
		f.s.Fire(ctx, tm)
		prefixes = append(prefixes, f.s.View().Narration)
	}
	require.NotEmpty(t, prefixes)
	assert.Equal(t, "Q", prefixes[0])
	assert.Equal(t, "Question 1: One?", prefixes[len(prefixes)-1])
	assert.True(t, f.s.View().NarrationComplete)

	// Answering mid-line replaces it; the old tick is dropped.
	_, err := f.s.SelectAnswer(ctx, 1)
	require.NoError(t, err)
	require.NoError(t, f.s.Continue(ctx))
	tm, ok := f.clock.Next()
	require.True(t, ok)
	f.s.Fire(ctx, tm)
	_, err = f.s.SelectAnswer(ctx, 2)
	require.NoError(t, err)
	f.s.Fire(ctx, tm)
	assert.Empty(t, f.s.View().Narration, "stale question tick")
	f.drain(ctx)
	assert.Equal(t, "yes", f.s.View().Narration)
}

func TestSession_QuizInputOutsideQuiz(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t, newMemStore(), nil)
	f.s.Start(ctx)

	_, err := f.s.SelectAnswer(ctx, 0)
	assert.ErrorIs(t, err, ErrNotInQuiz)
	assert.ErrorIs(t, f.s.Continue(ctx), ErrNotInQuiz)
}

func TestSession_QuizRejectionsPassThrough(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t, newMemStore(), nil)
	f.playToQuiz(t)

	assert.ErrorIs(t, f.s.Continue(ctx), quiz.ErrInvalidTransition)
	_, err := f.s.SelectAnswer(ctx, 5)
	assert.ErrorIs(t, err, quiz.ErrInvalidOption)

	f.answerAll(t, 0, 0, 0)
	_, err = f.s.SelectAnswer(ctx, 0)
	assert.ErrorIs(t, err, ErrNotInQuiz)
}

func TestSession_PermissionDeniedView(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t, newMemStore(), nil)
	f.s.Start(ctx)
	f.drain(ctx)

	f.s.SetPermission(ctx, false)
	v := f.s.View()
	assert.True(t, v.AwaitingPermission)
	assert.True(t, v.PermissionDenied)
	assert.Equal(t, "Camera?", v.Narration)
	assert.True(t, v.NarrationComplete)
	assert.Equal(t, "talking", v.AnimationTag)

	f.s.SetPermission(ctx, true)
	v = f.s.View()
	assert.False(t, v.AwaitingPermission)
	assert.False(t, v.PermissionDenied)
}

func TestSession_NarrationView(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t, newMemStore(), nil)
	f.s.SetPermission(ctx, true)
	f.s.Start(ctx)

	// Advance into the first content section.
	for f.s.Playback().Stage != playback.StageContent || f.s.Playback().ItemIndex != 1 {
		tm, ok := f.clock.Next()
		require.True(t, ok)
		f.s.Fire(ctx, tm)
	}
	v := f.s.View()
	assert.Equal(t, "content", v.Stage)
	assert.Equal(t, "One", v.SectionTitle)
	assert.Equal(t, 2, v.SectionCount)
	assert.Equal(t, "one.png", v.VisualRef)
	assert.Equal(t, "explaining", v.AnimationTag)
	assert.Empty(t, v.Narration)
}

func TestSession_EventLog(t *testing.T) {
	f := newFixture(t, newMemStore(), nil)
	f.playToQuiz(t)
	f.answerAll(t, 0, 2, 1)

	var actions []string
	for _, ev := range f.log.events {
		actions = append(actions, ev.Action)
		assert.Equal(t, f.s.ID(), ev.SessionID)
		assert.Equal(t, "u1", ev.UserID)
		assert.Equal(t, "test-lesson", ev.LessonID)
	}
	assert.Equal(t, []string{
		ActionStart, ActionPermission,
		ActionAnswer, ActionAnswer, ActionAnswer,
		ActionComplete,
	}, actions)
}

func TestSession_NilStore(t *testing.T) {
	clock := schedule.NewManual()
	s := NewSession(catalogtest.Catalog(t), Options{Scheduler: clock})
	f := &fixture{s: s, clock: clock}
	f.playToQuiz(t)
	f.answerAll(t, 0, 0, 0)

	out, ok := s.Outcome()
	require.True(t, ok)
	assert.NoError(t, out.PersistErr)
	assert.Len(t, out.Evaluation.Newly, 1)
}

func TestConfigFromEnv(t *testing.T) {
	t.Setenv(EnvTypingDelay, "5ms")
	cfg, err := ConfigFromEnv()
	require.NoError(t, err)
	assert.Equal(t, 5*time.Millisecond, cfg.Playback.TypingDelay)
	assert.Equal(t, 1500*time.Millisecond, cfg.Playback.PostRevealDelay)

	t.Setenv(EnvTypingDelay, "fast")
	_, err = ConfigFromEnv()
	assert.Error(t, err)

	t.Setenv(EnvTypingDelay, "-1s")
	_, err = ConfigFromEnv()
	assert.Error(t, err)
}
