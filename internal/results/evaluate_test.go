package results

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/spacey-learn/spacey/internal/catalog"
	"github.com/spacey-learn/spacey/internal/catalog/catalogtest"
	"github.com/spacey-learn/spacey/internal/quiz"
)

func input(t *testing.T, score, total int, earned ...catalog.Badge) Input {
	t.Helper()
	s := catalogtest.Script()
	return Input{
		Result: quiz.NewResult(score, total),
		Badges: s.BadgeDefs,
		Tiers:  catalogtest.Must(t, s).FeedbackTiers(),
		Earned: earned,
		Now:    time.Date(2026, 3, 14, 9, 0, 0, 0, time.UTC),
	}
}

func TestTierFor_Boundaries(t *testing.T) {
	tiers := catalog.FeedbackTiers{GreatThreshold: 80, GoodThreshold: 60}
	tests := []struct {
		pct  int
		want Tier
	}{
		{100, TierPerfect},
		{99, TierGreat},
		{85, TierGreat},
		{80, TierGreat},
		{79, TierGood},
		{60, TierGood},
		{59, TierNeedsPractice},
		{0, TierNeedsPractice},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, TierFor(tt.pct, tiers), "pct=%d", tt.pct)
	}
}

func TestTierFor_ZeroThresholdsUseDefaults(t *testing.T) {
	assert.Equal(t, TierGreat, TierFor(80, catalog.FeedbackTiers{}))
	assert.Equal(t, TierNeedsPractice, TierFor(59, catalog.FeedbackTiers{}))
}

func TestEvaluate_PerfectAwardsBothBadges(t *testing.T) {
	in := input(t, 3, 3)
	ev := Evaluate(in)

	assert.Equal(t, TierPerfect, ev.Tier)
	assert.Equal(t, "Perfect!", ev.Message)
	assert.Equal(t, MoodCelebrating, ev.Mood)
	assert.Equal(t, "Perfect! You got 3 out of 3 questions correct!", ev.Narration)

	require.Len(t, ev.Newly, 2)
	assert.Equal(t, "Finisher", ev.Newly[0].Name)
	assert.Equal(t, "Ace", ev.Newly[1].Name)
	for _, b := range ev.Newly {
		require.NotNil(t, b.EarnedDate)
		assert.Equal(t, in.Now, *b.EarnedDate)
	}
	assert.Empty(t, ev.AlreadyHeld)
	assert.Len(t, ev.Earned, 2)
	assert.True(t, ev.Changed())
}

func TestEvaluate_CompletionAlwaysAwarded(t *testing.T) {
	ev := Evaluate(input(t, 0, 3))
	assert.Equal(t, TierNeedsPractice, ev.Tier)
	assert.Equal(t, MoodSupportive, ev.Mood)
	require.Len(t, ev.Newly, 1)
	assert.Equal(t, "Finisher", ev.Newly[0].Name)
}

func TestEvaluate_ThreeOfFive(t *testing.T) {
	ev := Evaluate(input(t, 3, 5))
	assert.Equal(t, 60, ev.Result.Percentage)
	assert.Equal(t, TierGood, ev.Tier)
	assert.Equal(t, MoodEncouraging, ev.Mood)
	for _, b := range ev.Earned {
		assert.NotEqual(t, "Ace", b.Name)
	}
}

func TestEvaluate_NoReStamp(t *testing.T) {
	earlier := time.Date(2025, 1, 2, 0, 0, 0, 0, time.UTC)
	held := catalog.Badge{Name: "Finisher", Image: "finisher.png", EarnedDate: &earlier}

	ev := Evaluate(input(t, 3, 3, held))

	require.Len(t, ev.AlreadyHeld, 1)
	assert.Equal(t, earlier, *ev.AlreadyHeld[0].EarnedDate)
	require.Len(t, ev.Newly, 1)
	assert.Equal(t, "Ace", ev.Newly[0].Name)

	require.Len(t, ev.Earned, 2)
	assert.Equal(t, "Finisher", ev.Earned[0].Name)
	assert.Equal(t, earlier, *ev.Earned[0].EarnedDate)
}

func TestEvaluate_Idempotent(t *testing.T) {
	first := Evaluate(input(t, 3, 3))
	second := Evaluate(input(t, 3, 3, first.Earned...))
	assert.False(t, second.Changed())
	assert.Len(t, second.AlreadyHeld, 2)
	assert.Equal(t, first.Earned, second.Earned)
}

func TestBadgeSet_DropsDuplicateNames(t *testing.T) {
	set := NewBadgeSet([]catalog.Badge{{Name: "A"}, {Name: "B"}, {Name: "A", Image: "x"}})
	assert.Equal(t, 2, set.Len())
	b, ok := set.Get("A")
	require.True(t, ok)
	assert.Empty(t, b.Image)
}

func TestAnswerMood(t *testing.T) {
	assert.Equal(t, MoodHappy, AnswerMood(true))
	assert.Equal(t, MoodThinking, AnswerMood(false))
}
