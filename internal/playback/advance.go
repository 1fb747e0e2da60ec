package playback

import "github.com/spacey-learn/spacey/internal/catalog"

// Next returns the position after s. Permission and reveal fields are
// carried over unchanged, except that reveal progress is cleared. Quiz and
// Results are fixed points.
func Next(cat *catalog.Catalog, s State) State {
	if !s.Stage.Narrating() {
		return s
	}
	sec, ok := SectionOf(cat, s)
	if !ok {
		return s
	}

	next := s
	next.Revealed = ""
	next.RevealComplete = false

	if s.ItemIndex < len(sec.Items)-1 {
		next.ItemIndex++
		return next
	}

	switch s.Stage {
	case StageIntroduction:
		next.Stage = StageContent
		next.SectionIndex = 0
		next.ItemIndex = 0
	case StageContent:
		if s.SectionIndex < cat.SectionCount()-1 {
			next.SectionIndex++
		} else {
			next.Stage = StageConclusion
		}
		next.ItemIndex = 0
	case StageConclusion:
		next.Stage = StageQuiz
		next.ItemIndex = 0
	}
	return next
}

// Progress returns the 1-based section number and section count while in
// the content stage.
func Progress(cat *catalog.Catalog, s State) (current, total int, ok bool) {
	if s.Stage != StageContent {
		return 0, 0, false
	}
	return s.SectionIndex + 1, cat.SectionCount(), true
}
