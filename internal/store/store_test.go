package store

import (
	"context"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/spacey-learn/spacey/internal/catalog"
	"github.com/spacey-learn/spacey/internal/lesson"
)

func openTestStore(t *testing.T) *Store {
	t.Helper()
	name := strings.NewReplacer("/", "_", " ", "_").Replace(t.Name())
	s, err := Open("file:" + name + "?mode=memory&cache=shared")
	if err != nil {
		t.Fatalf("open test store: %v", err)
	}
	t.Cleanup(func() { s.Close() })
	return s
}

func TestPragmasApplied(t *testing.T) {
	s := openTestStore(t)
	db := s.DB()

	tests := []struct {
		pragma string
		want   string
	}{
		// WAL mode falls back to "memory" for in-memory databases,
		// so we skip journal_mode here. It is tested with file-based DBs.
		{"foreign_keys", "1"},
		{"synchronous", "1"}, // NORMAL = 1
	}

	for _, tt := range tests {
		var got string
		err := db.QueryRow("PRAGMA " + tt.pragma).Scan(&got)
		if err != nil {
			t.Errorf("PRAGMA %s: %v", tt.pragma, err)
			continue
		}
		if got != tt.want {
			t.Errorf("PRAGMA %s = %q, want %q", tt.pragma, got, tt.want)
		}
	}
}

func TestFileDBReopen(t *testing.T) {
	path := filepath.Join(t.TempDir(), "spacey.db")
	ctx := context.Background()

	s, err := Open(path)
	require.NoError(t, err)

	var mode string
	require.NoError(t, s.DB().QueryRow("PRAGMA journal_mode").Scan(&mode))
	assert.Equal(t, "wal", mode)

	require.NoError(t, s.SaveProgress(ctx, "u1", "mars", lesson.ProgressRecord{Completed: true, Score: 80, Date: time.Now()}))
	require.NoError(t, s.Close())

	// Migration is idempotent and data survives.
	s, err = Open(path)
	require.NoError(t, err)
	defer s.Close()
	got, err := s.LoadProgress(ctx, "u1")
	require.NoError(t, err)
	assert.Equal(t, 80, got["mars"].Score)
}

func TestProgressUpsert(t *testing.T) {
	s := openTestStore(t)
	ctx := context.Background()

	empty, err := s.LoadProgress(ctx, "u1")
	require.NoError(t, err)
	assert.Empty(t, empty)

	first := time.Date(2026, 1, 2, 3, 4, 5, 0, time.UTC)
	require.NoError(t, s.SaveProgress(ctx, "u1", "mars", lesson.ProgressRecord{Completed: true, Score: 60, Date: first}))
	second := first.Add(24 * time.Hour)
	require.NoError(t, s.SaveProgress(ctx, "u1", "mars", lesson.ProgressRecord{Completed: true, Score: 100, Date: second}))
	require.NoError(t, s.SaveProgress(ctx, "u2", "mars", lesson.ProgressRecord{Completed: true, Score: 20, Date: first}))

	got, err := s.LoadProgress(ctx, "u1")
	require.NoError(t, err)
	require.Len(t, got, 1)
	rec := got["mars"]
	assert.True(t, rec.Completed)
	assert.Equal(t, 100, rec.Score)
	assert.True(t, rec.Date.Equal(second), "date = %v, want %v", rec.Date, second)
}

func TestBadgesAppendOnly(t *testing.T) {
	s := openTestStore(t)
	ctx := context.Background()

	earlier := time.Date(2026, 2, 1, 0, 0, 0, 0, time.UTC)
	later := earlier.Add(time.Hour)

	require.NoError(t, s.SaveBadges(ctx, "u1", []catalog.Badge{
		{Name: "Mars Explorer", Image: "explorer.png", Description: "Finished", EarnedDate: &earlier},
	}))
	require.NoError(t, s.SaveBadges(ctx, "u1", []catalog.Badge{
		{Name: "Mars Explorer", Image: "explorer.png", EarnedDate: &later},
		{Name: "Mars Scientist", Image: "scientist.png", EarnedDate: &later},
	}))

	got, err := s.LoadBadges(ctx, "u1")
	require.NoError(t, err)
	require.Len(t, got, 2)
	assert.Equal(t, "Mars Explorer", got[0].Name)
	assert.Equal(t, "Finished", got[0].Description)
	require.NotNil(t, got[0].EarnedDate)
	assert.True(t, got[0].EarnedDate.Equal(earlier), "earned date was re-stamped: %v", got[0].EarnedDate)
	assert.Equal(t, "Mars Scientist", got[1].Name)

	other, err := s.LoadBadges(ctx, "u2")
	require.NoError(t, err)
	assert.Empty(t, other)
}

func TestLessonEventsSequence(t *testing.T) {
	s := openTestStore(t)
	ctx := context.Background()

	for _, action := range []string{lesson.ActionStart, lesson.ActionAnswer, lesson.ActionComplete} {
		require.NoError(t, s.AppendLessonEvent(ctx, lesson.Event{
			SessionID: "sess", UserID: "u1", LessonID: "mars", Action: action,
		}))
	}
	require.NoError(t, s.AppendLessonEvent(ctx, lesson.Event{SessionID: "other", UserID: "u2", LessonID: "mars", Action: lesson.ActionStart}))

	all, err := s.LessonEvents(ctx, "u1", QueryOpts{})
	require.NoError(t, err)
	require.Len(t, all, 3)
	for i := 1; i < len(all); i++ {
		assert.Greater(t, all[i].Sequence, all[i-1].Sequence)
	}
	assert.Equal(t, lesson.ActionStart, all[0].Action)
	assert.Equal(t, lesson.ActionComplete, all[2].Action)

	after, err := s.LessonEvents(ctx, "u1", QueryOpts{After: all[0].Sequence, Limit: 1})
	require.NoError(t, err)
	require.Len(t, after, 1)
	assert.Equal(t, lesson.ActionAnswer, after[0].Action)

	before, err := s.LessonEvents(ctx, "u1", QueryOpts{Before: all[2].Sequence})
	require.NoError(t, err)
	assert.Len(t, before, 2)
}

func TestReset(t *testing.T) {
	s := openTestStore(t)
	ctx := context.Background()
	now := time.Now()

	u, err := s.EnsureUser(ctx, "u1")
	require.NoError(t, err)
	require.NoError(t, s.SaveProgress(ctx, "u1", "mars", lesson.ProgressRecord{Completed: true, Score: 100, Date: now}))
	require.NoError(t, s.SaveBadges(ctx, "u1", []catalog.Badge{{Name: "A", EarnedDate: &now}}))
	require.NoError(t, s.AppendLessonEvent(ctx, lesson.Event{UserID: "u1", Action: lesson.ActionStart}))
	require.NoError(t, s.SaveProgress(ctx, "u2", "mars", lesson.ProgressRecord{Completed: true, Score: 40, Date: now}))

	require.NoError(t, s.Reset(ctx, "u1"))

	progress, err := s.LoadProgress(ctx, "u1")
	require.NoError(t, err)
	assert.Empty(t, progress)
	badges, err := s.LoadBadges(ctx, "u1")
	require.NoError(t, err)
	assert.Empty(t, badges)
	events, err := s.LessonEvents(ctx, "u1", QueryOpts{})
	require.NoError(t, err)
	assert.Empty(t, events)

	kept, err := s.User(ctx, u.ID)
	require.NoError(t, err)
	assert.NotNil(t, kept)

	others, err := s.LoadProgress(ctx, "u2")
	require.NoError(t, err)
	assert.Len(t, others, 1)
}

func TestUsers(t *testing.T) {
	s := openTestStore(t)
	ctx := context.Background()

	missing, err := s.User(ctx, "nobody")
	require.NoError(t, err)
	assert.Nil(t, missing)

	guest, err := s.DefaultUser(ctx)
	require.NoError(t, err)
	assert.NotEmpty(t, guest.ID)
	assert.True(t, strings.HasPrefix(guest.DisplayName, GuestNamePrefix+" "))

	again, err := s.DefaultUser(ctx)
	require.NoError(t, err)
	assert.Equal(t, guest.ID, again.ID)

	named, err := s.EnsureUser(ctx, "astro42")
	require.NoError(t, err)
	assert.Equal(t, "Space Explorer astr", named.DisplayName)

	same, err := s.EnsureUser(ctx, "astro42")
	require.NoError(t, err)
	assert.Equal(t, named.ID, same.ID)
}

func TestGuestName(t *testing.T) {
	assert.Equal(t, "Space Explorer abcd", GuestName("abcdef"))
	assert.Equal(t, "Space Explorer ab", GuestName("ab"))
}

func TestLogPath(t *testing.T) {
	assert.Equal(t, filepath.Join("data", "spacey", "spacey.log"), LogPath(filepath.Join("data", "spacey", "spacey.db")))
}

func TestDefaultDBPath(t *testing.T) {
	dir := t.TempDir()

	t.Setenv(EnvDB, "")
	t.Setenv("XDG_DATA_HOME", dir)
	p, err := DefaultDBPath()
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(dir, "spacey", "spacey.db"), p)
	assert.DirExists(t, filepath.Join(dir, "spacey"))

	custom := filepath.Join(dir, "custom", "x.db")
	t.Setenv(EnvDB, custom)
	p, err = DefaultDBPath()
	require.NoError(t, err)
	assert.Equal(t, custom, p)
}
