package lesson

import (
	"context"
	"fmt"

	"github.com/spacey-learn/spacey/internal/schedule"
)

// Input types accepted by Handle.
const (
	InputAnswer     = "answer"
	InputContinue   = "continue"
	InputPermission = "permission"
)

// Input is a learner action forwarded by a remote host.
type Input struct {
	Type    string `json:"type"`
	Option  int    `json:"option,omitempty"`
	Granted bool   `json:"granted,omitempty"`
}

// Handle applies a learner action.
func (s *Session) Handle(ctx context.Context, in Input) error {
	switch in.Type {
	case InputAnswer:
		_, err := s.SelectAnswer(ctx, in.Option)
		return err
	case InputContinue:
		return s.Continue(ctx)
	case InputPermission:
		s.SetPermission(ctx, in.Granted)
		return nil
	default:
		return fmt.Errorf("unknown input type %q", in.Type)
	}
}

// Run starts s and drives it from clock and inputs until ctx is done or
// inputs is closed, calling publish with a fresh View after every change.
// The session must have been created with clock as its Scheduler. Rejected
// inputs are logged and do not stop the loop; a publish error does.
func Run(ctx context.Context, s *Session, clock *schedule.Real, inputs <-chan Input, publish func(View) error) error {
	defer clock.Stop()

	s.Start(ctx)
	if err := publish(s.View()); err != nil {
		return err
	}

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case in, ok := <-inputs:
			if !ok {
				return nil
			}
			if err := s.Handle(ctx, in); err != nil {
				s.log.Debug("input rejected", "type", in.Type, "error", err)
			}
		case t := <-clock.C():
			s.Fire(ctx, t)
		}
		if err := publish(s.View()); err != nil {
			return err
		}
	}
}
