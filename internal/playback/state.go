// Package playback sequences a lesson's narration: introduction, content
// sections, conclusion, then hands off to the quiz and finally the results.
package playback

import (
	"errors"
	"fmt"

	"github.com/spacey-learn/spacey/internal/catalog"
)

// ErrPermissionDenied is recorded when the learner declines the device
// permission a gated item asks for. It is not fatal; a later grant resumes
// playback.
var ErrPermissionDenied = errors.New("playback: permission denied")

// Stage is the coarse position in a lesson.
type Stage int

const (
	StageIntroduction Stage = iota
	StageContent
	StageConclusion
	StageQuiz
	StageResults
)

func (s Stage) String() string {
	switch s {
	case StageIntroduction:
		return "introduction"
	case StageContent:
		return "content"
	case StageConclusion:
		return "conclusion"
	case StageQuiz:
		return "quiz"
	case StageResults:
		return "results"
	default:
		return fmt.Sprintf("stage(%d)", int(s))
	}
}

// Narrating reports whether the stage plays content items.
func (s Stage) Narrating() bool {
	return s == StageIntroduction || s == StageContent || s == StageConclusion
}

// State is the playback position. Revealed and RevealComplete mirror the
// typing progress of the current item for presentation.
type State struct {
	Stage             Stage
	SectionIndex      int
	ItemIndex         int
	PermissionGranted bool
	PermissionDenied  bool

	Revealed       string
	RevealComplete bool
}

// Initial is the state of a fresh session.
func Initial() State {
	return State{Stage: StageIntroduction}
}

// SectionOf returns the section played at s, if s is a narrating stage.
func SectionOf(cat *catalog.Catalog, s State) (catalog.Section, bool) {
	switch s.Stage {
	case StageIntroduction:
		return cat.Introduction(), true
	case StageContent:
		return cat.Section(s.SectionIndex)
	case StageConclusion:
		return cat.Conclusion(), true
	default:
		return catalog.Section{}, false
	}
}

// ItemOf returns the content item at s.
func ItemOf(cat *catalog.Catalog, s State) (catalog.ContentItem, bool) {
	sec, ok := SectionOf(cat, s)
	if !ok || s.ItemIndex < 0 || s.ItemIndex >= len(sec.Items) {
		return catalog.ContentItem{}, false
	}
	return sec.Items[s.ItemIndex], true
}

// AnimationTag returns the avatar animation for an item, falling back to
// the stage default when the item names none.
func AnimationTag(stage Stage, item catalog.ContentItem) string {
	if item.AnimationTag != "" {
		return item.AnimationTag
	}
	switch stage {
	case StageIntroduction:
		return "talking"
	case StageContent:
		return "explaining"
	default:
		return "idle"
	}
}
