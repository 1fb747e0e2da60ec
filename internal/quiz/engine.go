// Package quiz administers a multiple-choice quiz one question at a time.
package quiz

import (
	"errors"

	"github.com/spacey-learn/spacey/internal/catalog"
)

// NoSelection marks a question with no answer chosen yet.
const NoSelection = -1

var (
	// ErrInvalidTransition is returned for out-of-order calls: selecting
	// while feedback is shown, or advancing before it is.
	ErrInvalidTransition = errors.New("quiz: invalid transition")

	// ErrInvalidOption is returned for an option index outside the
	// current question's options.
	ErrInvalidOption = errors.New("quiz: option out of range")

	// ErrCompleted is returned for any input after the final result.
	ErrCompleted = errors.New("quiz: already completed")
)

// State is the read-only projection of a quiz in progress.
type State struct {
	QuestionIndex   int
	Score           int
	Selected        int
	FeedbackVisible bool
	LastCorrect     bool
	Completed       bool
}

// Answer describes the outcome of a selection.
type Answer struct {
	QuestionID    string
	QuestionIndex int
	OptionIndex   int
	Correct       bool
	Feedback      string
	Score         int
}

// Engine holds quiz state. Rejected calls leave the state untouched.
type Engine struct {
	questions []catalog.QuizQuestion
	state     State
	result    *Result
}

// New creates an Engine over the catalog's questions.
func New(cat *catalog.Catalog) *Engine {
	return &Engine{
		questions: cat.Questions(),
		state:     State{Selected: NoSelection},
	}
}

// State returns a snapshot of the quiz state.
func (e *Engine) State() State {
	return e.state
}

// Total returns the number of questions.
func (e *Engine) Total() int {
	return len(e.questions)
}

// Current returns the question being asked.
func (e *Engine) Current() (catalog.QuizQuestion, bool) {
	if e.state.Completed || e.state.QuestionIndex >= len(e.questions) {
		return catalog.QuizQuestion{}, false
	}
	return e.questions[e.state.QuestionIndex], true
}

// IsLast reports whether the current question is the final one.
func (e *Engine) IsLast() bool {
	return e.state.QuestionIndex == len(e.questions)-1
}

// SelectAnswer records the learner's choice for the current question.
// Answers are final once feedback is visible.
func (e *Engine) SelectAnswer(optionIndex int) (Answer, error) {
	if e.state.Completed {
		return Answer{}, ErrCompleted
	}
	if e.state.FeedbackVisible {
		return Answer{}, ErrInvalidTransition
	}
	q, ok := e.Current()
	if !ok {
		return Answer{}, ErrCompleted
	}
	if optionIndex < 0 || optionIndex >= len(q.Options) {
		return Answer{}, ErrInvalidOption
	}

	correct := q.IsCorrect(optionIndex)
	e.state.Selected = optionIndex
	e.state.LastCorrect = correct
	if correct {
		e.state.Score++
	}
	e.state.FeedbackVisible = true

	return Answer{
		QuestionID:    q.ID,
		QuestionIndex: e.state.QuestionIndex,
		OptionIndex:   optionIndex,
		Correct:       correct,
		Feedback:      q.Feedback(correct),
		Score:         e.state.Score,
	}, nil
}

// Advance moves past the answered question. On the last question it
// produces the terminal Result and returns done=true; the engine accepts no
// further input afterwards.
func (e *Engine) Advance() (res Result, done bool, err error) {
	if e.state.Completed {
		return Result{}, false, ErrCompleted
	}
	if !e.state.FeedbackVisible {
		return Result{}, false, ErrInvalidTransition
	}

	if !e.IsLast() {
		e.state.QuestionIndex++
		e.state.Selected = NoSelection
		e.state.FeedbackVisible = false
		e.state.LastCorrect = false
		return Result{}, false, nil
	}

	r := NewResult(e.state.Score, len(e.questions))
	e.result = &r
	e.state.Completed = true
	return r, true, nil
}

// Result returns the terminal result once the quiz is complete.
func (e *Engine) Result() (Result, bool) {
	if e.result == nil {
		return Result{}, false
	}
	return *e.result, true
}
