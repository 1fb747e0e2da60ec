// Package schedule provides cancellable, keyed timer tasks. Engines never
// sleep; they request a Timer and later receive it back. A Timer carries the
// sequence number it was issued under, so a firing that belongs to a
// superseded message or item can be recognised and dropped.
package schedule

import (
	"fmt"
	"time"
)

// Kind identifies what a timer is for.
type Kind int

const (
	KindTyping  Kind = iota // per-character reveal tick
	KindAdvance             // post-reveal delay before advancing an item
	KindNarration           // reveal tick for quiz and results lines
)

func (k Kind) String() string {
	switch k {
	case KindTyping:
		return "typing"
	case KindAdvance:
		return "advance"
	case KindNarration:
		return "narration"
	default:
		return fmt.Sprintf("kind(%d)", int(k))
	}
}

// Timer is a request to be called back after a delay. Kind and Seq form the
// task key; After is the delay from the moment of scheduling.
type Timer struct {
	Kind  Kind
	Seq   uint64
	After time.Duration
}

// Key returns the identity of the task, ignoring the delay.
func (t Timer) Key() Key {
	return Key{Kind: t.Kind, Seq: t.Seq}
}

// Key identifies a scheduled task.
type Key struct {
	Kind Kind
	Seq  uint64
}

// Scheduler runs timer requests and delivers them back to the owner.
type Scheduler interface {
	Schedule(t Timer)
	Cancel(t Timer)
}
