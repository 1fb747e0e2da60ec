package lesson

import (
	"context"
	"fmt"
	"time"

	"github.com/spacey-learn/spacey/internal/catalog"
)

// ProgressRecord is a learner's saved outcome for one lesson.
type ProgressRecord struct {
	Completed bool      `json:"completed"`
	Score     int       `json:"score"`
	Date      time.Time `json:"date"`
}

// Persistence stores progress and earned badges per learner.
type Persistence interface {
	LoadProgress(ctx context.Context, userID string) (map[string]ProgressRecord, error)
	SaveProgress(ctx context.Context, userID, lessonID string, rec ProgressRecord) error
	LoadBadges(ctx context.Context, userID string) ([]catalog.Badge, error)

	// SaveBadges persists the learner's earned set. Badges already stored
	// under the same name are left as they are.
	SaveBadges(ctx context.Context, userID string, badges []catalog.Badge) error
}

// Event actions recorded in the lesson event log.
const (
	ActionStart      = "start"
	ActionPermission = "permission"
	ActionAnswer     = "answer"
	ActionComplete   = "complete"
)

// Event is one entry in the lesson event log.
type Event struct {
	SessionID string
	UserID    string
	LessonID  string
	Action    string
	Detail    string
}

// EventLog appends lesson events.
type EventLog interface {
	AppendLessonEvent(ctx context.Context, ev Event) error
}

// PersistenceError reports a failed load or save. The in-memory session
// state stays authoritative; the error is logged and surfaced, not retried.
type PersistenceError struct {
	Op  string
	Err error
}

func (e *PersistenceError) Error() string {
	return fmt.Sprintf("persistence %s: %v", e.Op, e.Err)
}

func (e *PersistenceError) Unwrap() error {
	return e.Err
}
