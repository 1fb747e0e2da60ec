// Package results turns a quiz result into a feedback tier and badge awards.
package results

import (
	"fmt"
	"time"

	"github.com/spacey-learn/spacey/internal/catalog"
	"github.com/spacey-learn/spacey/internal/quiz"
)

// Tier is a feedback band chosen by percentage.
type Tier int

const (
	TierPerfect Tier = iota
	TierGreat
	TierGood
	TierNeedsPractice
)

func (t Tier) String() string {
	switch t {
	case TierPerfect:
		return "perfect"
	case TierGreat:
		return "great"
	case TierGood:
		return "good"
	case TierNeedsPractice:
		return "needsPractice"
	default:
		return fmt.Sprintf("tier(%d)", int(t))
	}
}

// Mood is the avatar expression shown with a result or answer.
type Mood string

const (
	MoodCelebrating Mood = "celebrating"
	MoodHappy       Mood = "happy"
	MoodEncouraging Mood = "encouraging"
	MoodSupportive  Mood = "supportive"
	MoodThinking    Mood = "thinking"
)

// Mood returns the avatar expression for the tier.
func (t Tier) Mood() Mood {
	switch t {
	case TierPerfect:
		return MoodCelebrating
	case TierGreat:
		return MoodHappy
	case TierGood:
		return MoodEncouraging
	default:
		return MoodSupportive
	}
}

// AnswerMood returns the avatar expression after a quiz answer.
func AnswerMood(correct bool) Mood {
	if correct {
		return MoodHappy
	}
	return MoodThinking
}

// TierFor picks the tier for percentage using the catalog thresholds.
func TierFor(percentage int, tiers catalog.FeedbackTiers) Tier {
	great, good := tiers.GreatThreshold, tiers.GoodThreshold
	if great <= 0 {
		great = catalog.DefaultGreatThreshold
	}
	if good <= 0 {
		good = catalog.DefaultGoodThreshold
	}
	switch {
	case percentage == 100:
		return TierPerfect
	case percentage >= great:
		return TierGreat
	case percentage >= good:
		return TierGood
	default:
		return TierNeedsPractice
	}
}

// Message returns the catalog text for tier.
func Message(tier Tier, tiers catalog.FeedbackTiers) string {
	switch tier {
	case TierPerfect:
		return tiers.Perfect
	case TierGreat:
		return tiers.Great
	case TierGood:
		return tiers.Good
	default:
		return tiers.NeedsPractice
	}
}

// Input is everything Evaluate needs.
type Input struct {
	Result quiz.Result
	Badges catalog.BadgeDefs
	Tiers  catalog.FeedbackTiers

	// Earned is the learner's badge set before this lesson.
	Earned []catalog.Badge

	// Now stamps newly earned badges.
	Now time.Time
}

// Evaluation is the outcome of Evaluate.
type Evaluation struct {
	Result    quiz.Result
	Tier      Tier
	Message   string
	Mood      Mood
	Narration string

	// Newly holds badges awarded by this evaluation, stamped with Input.Now.
	Newly []catalog.Badge

	// AlreadyHeld holds qualifying badges the learner had before. Their
	// earned dates are unchanged.
	AlreadyHeld []catalog.Badge

	// Earned is the full set to persist.
	Earned []catalog.Badge
}

// Changed reports whether any badge was newly awarded.
func (e Evaluation) Changed() bool {
	return len(e.Newly) > 0
}

// Evaluate scores the result against the tiers and awards badges. The
// completion badge is always awarded; the perfect-score badge only for a
// perfect result.
func Evaluate(in Input) Evaluation {
	tier := TierFor(in.Result.Percentage, in.Tiers)
	msg := Message(tier, in.Tiers)
	ev := Evaluation{
		Result:    in.Result,
		Tier:      tier,
		Message:   msg,
		Mood:      tier.Mood(),
		Narration: Narration(msg, in.Result),
	}

	qualifying := []catalog.Badge{in.Badges.Completion}
	if in.Result.IsPerfect {
		qualifying = append(qualifying, in.Badges.PerfectScore)
	}

	set := NewBadgeSet(in.Earned)
	for _, b := range qualifying {
		got, added := set.Add(b, in.Now)
		if added {
			ev.Newly = append(ev.Newly, got)
		} else {
			ev.AlreadyHeld = append(ev.AlreadyHeld, got)
		}
	}
	ev.Earned = set.List()
	return ev
}

// Narration is the line the avatar speaks on the results screen.
func Narration(message string, r quiz.Result) string {
	return fmt.Sprintf("%s You got %d out of %d questions correct!", message, r.Score, r.Total)
}
