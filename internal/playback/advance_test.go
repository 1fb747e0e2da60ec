package playback

import (
	"testing"

	"github.com/spacey-learn/spacey/internal/catalog/catalogtest"
)

func TestNext_Walk(t *testing.T) {
	cat := catalogtest.Catalog(t)

	want := []struct {
		stage   Stage
		section int
		item    int
	}{
		{StageIntroduction, 0, 0},
		{StageIntroduction, 0, 1},
		{StageContent, 0, 0},
		{StageContent, 0, 1},
		{StageContent, 1, 0},
		{StageContent, 1, 1},
		{StageConclusion, 1, 0},
		{StageConclusion, 1, 1},
		{StageQuiz, 1, 0},
	}

	s := Initial()
	for i, w := range want {
		if s.Stage != w.stage || s.SectionIndex != w.section || s.ItemIndex != w.item {
			t.Fatalf("step %d: got %s/%d/%d, want %s/%d/%d", i, s.Stage, s.SectionIndex, s.ItemIndex, w.stage, w.section, w.item)
		}
		prev := s.SectionIndex
		s = Next(cat, s)
		if s.SectionIndex < prev {
			t.Fatalf("step %d: section index decreased", i)
		}
	}
}

func TestNext_FixedPoints(t *testing.T) {
	cat := catalogtest.Catalog(t)
	for _, st := range []Stage{StageQuiz, StageResults} {
		s := State{Stage: st, SectionIndex: 1}
		if got := Next(cat, s); got != s {
			t.Errorf("Next(%s) = %+v, want unchanged", st, got)
		}
	}
}

func TestNext_PreservesPermissionAndClearsReveal(t *testing.T) {
	cat := catalogtest.Catalog(t)
	s := State{Stage: StageIntroduction, PermissionGranted: true, Revealed: "Hello", RevealComplete: true}
	got := Next(cat, s)
	if !got.PermissionGranted {
		t.Error("permission lost across advance")
	}
	if got.Revealed != "" || got.RevealComplete {
		t.Errorf("reveal not cleared: %+v", got)
	}
}

func TestProgress(t *testing.T) {
	cat := catalogtest.Catalog(t)
	if _, _, ok := Progress(cat, Initial()); ok {
		t.Error("no section progress during introduction")
	}
	cur, total, ok := Progress(cat, State{Stage: StageContent, SectionIndex: 1})
	if !ok || cur != 2 || total != 2 {
		t.Errorf("Progress = %d/%d %v, want 2/2 true", cur, total, ok)
	}
}

func TestAnimationTag(t *testing.T) {
	cat := catalogtest.Catalog(t)
	item, _ := ItemOf(cat, Initial())
	if got := AnimationTag(StageIntroduction, item); got != "greeting" {
		t.Errorf("explicit tag = %q", got)
	}
	item.AnimationTag = ""
	if got := AnimationTag(StageContent, item); got != "explaining" {
		t.Errorf("content default = %q", got)
	}
}
