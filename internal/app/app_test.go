package app

import (
	"context"
	"testing"

	tea "charm.land/bubbletea/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/spacey-learn/spacey/internal/catalog"
	"github.com/spacey-learn/spacey/internal/catalog/catalogtest"
	lsn "github.com/spacey-learn/spacey/internal/lesson"
	"github.com/spacey-learn/spacey/internal/quiz"
	"github.com/spacey-learn/spacey/internal/results"
	"github.com/spacey-learn/spacey/internal/router"
	"github.com/spacey-learn/spacey/internal/screens/home"
	lessonscreen "github.com/spacey-learn/spacey/internal/screens/lesson"
	"github.com/spacey-learn/spacey/internal/screens/welcome"
	"github.com/spacey-learn/spacey/internal/store"
)

type badgeStore struct {
	badges []catalog.Badge
}

func (b *badgeStore) LoadProgress(context.Context, string) (map[string]lsn.ProgressRecord, error) {
	return nil, nil
}
func (b *badgeStore) SaveProgress(context.Context, string, string, lsn.ProgressRecord) error {
	return nil
}
func (b *badgeStore) LoadBadges(context.Context, string) ([]catalog.Badge, error) {
	return b.badges, nil
}
func (b *badgeStore) SaveBadges(context.Context, string, []catalog.Badge) error { return nil }

func TestAppModel_StartsOnSplash(t *testing.T) {
	m := newAppModel(Options{Catalog: catalogtest.Catalog(t)})
	_, ok := m.router.Active().(*welcome.WelcomeScreen)
	assert.True(t, ok)
}

type guestLearners struct{}

func (guestLearners) EnsureUser(_ context.Context, id string) (store.User, error) {
	if id == "" {
		id = "guest-42"
	}
	return store.User{ID: id, DisplayName: store.GuestName(id)}, nil
}

func TestAppModel_StartMissionFromSplash(t *testing.T) {
	st := &badgeStore{badges: []catalog.Badge{{Name: "Finisher"}}}
	m := newAppModel(Options{
		Catalog:  catalogtest.Catalog(t),
		Lesson:   lsn.Options{Store: st},
		Learners: guestLearners{},
	})

	next, cmd := m.Update(tea.KeyPressMsg{Code: tea.KeyEnter})
	m = next.(AppModel)
	require.NotNil(t, cmd)

	ready, ok := cmd().(welcome.LearnerReadyMsg)
	require.True(t, ok)
	next, cmd = m.Update(ready)
	m = next.(AppModel)
	assert.Equal(t, "guest-42", m.opts.Lesson.UserID)
	assert.Equal(t, "Space Explorer gues", m.opts.Learner)
	assert.Equal(t, 1, m.badgeCount)

	require.NotNil(t, cmd)
	next, _ = m.Update(cmd())
	m = next.(AppModel)

	require.Equal(t, 2, m.router.Depth())
	ls, ok := m.router.Active().(*lessonscreen.LessonScreen)
	require.True(t, ok)
	assert.Equal(t, "guest-42", ls.Session().UserID())

	m.router.Pop()
	_, ok = m.router.Active().(*home.HomeScreen)
	assert.True(t, ok)
}

func TestAppModel_SkipSplash(t *testing.T) {
	st := &badgeStore{badges: []catalog.Badge{{Name: "Finisher"}}}
	m := newAppModel(Options{
		Catalog:    catalogtest.Catalog(t),
		Lesson:     lsn.Options{UserID: "u1", Store: st},
		Learner:    "Space Explorer 1a2b",
		SkipSplash: true,
	})
	_, ok := m.router.Active().(*home.HomeScreen)
	require.True(t, ok)
	assert.Equal(t, 1, m.badgeCount)

	next, _ := m.Update(tea.WindowSizeMsg{Width: 120, Height: 40})
	m = next.(AppModel)
	assert.NotNil(t, m.View().Content)
}

func TestAppModel_FinishedUpdatesBadgeCount(t *testing.T) {
	m := newAppModel(Options{Catalog: catalogtest.Catalog(t), SkipSplash: true})
	out := lsn.Outcome{
		Result:     quiz.NewResult(3, 3),
		Evaluation: results.Evaluation{Earned: []catalog.Badge{{Name: "a"}, {Name: "b"}}},
	}
	next, _ := m.Update(lessonscreen.FinishedMsg{Outcome: out})
	assert.Equal(t, 2, next.(AppModel).badgeCount)
}

func TestAppModel_EscOnlyPopsAboveRoot(t *testing.T) {
	m := newAppModel(Options{Catalog: catalogtest.Catalog(t), SkipSplash: true})

	_, cmd := m.Update(tea.KeyPressMsg{Code: tea.KeyEscape})
	assert.Nil(t, cmd)

	m.router.Push(lessonscreen.New(catalogtest.Catalog(t), lsn.Options{}))
	_, cmd = m.Update(tea.KeyPressMsg{Code: tea.KeyEscape})
	require.NotNil(t, cmd)
	_, ok := cmd().(router.PopScreenMsg)
	assert.True(t, ok)
}
