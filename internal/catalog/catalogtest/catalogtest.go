// Package catalogtest builds small lesson catalogs for tests.
package catalogtest

import (
	"testing"

	"github.com/spacey-learn/spacey/internal/catalog"
)

// Script returns a minimal valid lesson: two intro items (the second gated
// on permission), two sections of two items, two conclusion items, and
// three quiz questions.
func Script() catalog.LessonScript {
	return catalog.LessonScript{
		ID:       "test-lesson",
		Title:    "Test Lesson",
		Version:  "v1.0.0",
		Duration: "3 minutes",
		Introduction: catalog.Section{
			ID: "intro",
			Items: []catalog.ContentItem{
				{Text: "Hello", AnimationTag: "greeting"},
				{Text: "Camera?", WaitForPermission: true},
			},
		},
		Sections: []catalog.Section{
			{ID: "s1", Title: "One", Items: []catalog.ContentItem{{Text: "s1a"}, {Text: "s1b", VisualRef: "one.png"}}},
			{ID: "s2", Title: "Two", Items: []catalog.ContentItem{{Text: "s2a"}, {Text: "s2b", SectionTransition: "fade"}}},
		},
		Conclusion: catalog.Section{
			ID:    "conclusion",
			Items: []catalog.ContentItem{{Text: "Bye"}, {Text: "Quiz time"}},
		},
		QuizQuestions: []catalog.QuizQuestion{
			{ID: "q1", Prompt: "One?", Options: []string{"a", "b"}, CorrectOptionIndex: 0, FeedbackCorrect: "yes", FeedbackIncorrect: "no"},
			{ID: "q2", Prompt: "Two?", Options: []string{"a", "b", "c"}, CorrectOptionIndex: 2, FeedbackCorrect: "yes", FeedbackIncorrect: "no"},
			{ID: "q3", Prompt: "Three?", Options: []string{"a", "b"}, CorrectOptionIndex: 1, FeedbackCorrect: "yes", FeedbackIncorrect: "no"},
		},
		BadgeDefs: catalog.BadgeDefs{
			Completion:   catalog.Badge{Name: "Finisher", Image: "finisher.png"},
			PerfectScore: catalog.Badge{Name: "Ace", Image: "ace.png"},
		},
		FeedbackTiers: catalog.FeedbackTiers{
			Perfect:       "Perfect!",
			Great:         "Great!",
			Good:          "Good!",
			NeedsPractice: "Keep practicing!",
		},
	}
}

// Catalog returns Script wrapped in a validated catalog.
func Catalog(t testing.TB) *catalog.Catalog {
	t.Helper()
	return Must(t, Script())
}

// Must validates s and fails the test on error.
func Must(t testing.TB, s catalog.LessonScript) *catalog.Catalog {
	t.Helper()
	c, err := catalog.New(s)
	if err != nil {
		t.Fatalf("build test catalog: %v", err)
	}
	return c
}
