package playback

import (
	"github.com/spacey-learn/spacey/internal/catalog"
	"github.com/spacey-learn/spacey/internal/quiz"
	"github.com/spacey-learn/spacey/internal/schedule"
)

// Event is an input to Engine.Update.
type Event interface{ isEvent() }

// Start begins playback at the first introduction item.
type Start struct{}

// TimerFired delivers a timer previously requested through Schedule.
type TimerFired struct{ Timer schedule.Timer }

// PermissionGranted reports that the learner allowed device access.
type PermissionGranted struct{}

// PermissionDenied reports that the learner declined device access.
type PermissionDenied struct{}

// QuizCompleted hands the quiz's terminal result back to playback.
type QuizCompleted struct{ Result quiz.Result }

func (Start) isEvent()             {}
func (TimerFired) isEvent()        {}
func (PermissionGranted) isEvent() {}
func (PermissionDenied) isEvent()  {}
func (QuizCompleted) isEvent()     {}

// Effect is an instruction for the host produced by Engine.Update.
type Effect interface{ isEffect() }

// EnterItem announces a new content item.
type EnterItem struct {
	Stage          Stage
	SectionIndex   int
	ItemIndex      int
	Item           catalog.ContentItem
	AnimationTag   string
	SectionChanged bool
}

// Narrate carries the current typing progress.
type Narrate struct {
	Text     string
	Prefix   string
	Complete bool
}

// Schedule asks the host to deliver Timer back after Timer.After.
type Schedule struct{ Timer schedule.Timer }

// Cancel asks the host to drop a pending timer.
type Cancel struct{ Timer schedule.Timer }

// AwaitPermission signals that playback is suspended on the permission
// gate. Err is ErrPermissionDenied after a denial.
type AwaitPermission struct{ Err error }

// StartQuiz signals the end of narration.
type StartQuiz struct{}

// ShowResults signals that the quiz result has been accepted.
type ShowResults struct{ Result quiz.Result }

func (EnterItem) isEffect()       {}
func (Narrate) isEffect()         {}
func (Schedule) isEffect()        {}
func (Cancel) isEffect()          {}
func (AwaitPermission) isEffect() {}
func (StartQuiz) isEffect()       {}
func (ShowResults) isEffect()     {}
