package lesson

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/spacey-learn/spacey/internal/catalog/catalogtest"
	"github.com/spacey-learn/spacey/internal/playback"
	"github.com/spacey-learn/spacey/internal/schedule"
)

func waitFor(t *testing.T, views <-chan View, pred func(View) bool) View {
	t.Helper()
	deadline := time.After(5 * time.Second)
	for {
		select {
		case v := <-views:
			if pred(v) {
				return v
			}
		case <-deadline:
			t.Fatal("timed out waiting for view")
		}
	}
}

func TestRun_DrivesSessionToResults(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	clock := schedule.NewReal()
	cfg := Config{Playback: playback.Config{
		TypingDelay:     time.Millisecond,
		PostRevealDelay: time.Millisecond,
		TransitionDelay: time.Millisecond,
	}}
	store := newMemStore()
	s := NewSession(catalogtest.Catalog(t), Options{
		UserID:    "u1",
		Config:    cfg,
		Store:     store,
		Scheduler: clock,
	})

	inputs := make(chan Input)
	views := make(chan View, 4096)
	done := make(chan error, 1)
	go func() {
		done <- Run(ctx, s, clock, inputs, func(v View) error {
			views <- v
			return nil
		})
	}()

	waitFor(t, views, func(v View) bool { return v.AwaitingPermission && v.NarrationComplete })
	inputs <- Input{Type: InputPermission, Granted: true}

	waitFor(t, views, func(v View) bool { return v.Quiz != nil })
	for _, opt := range []int{0, 2, 1} {
		inputs <- Input{Type: InputAnswer, Option: opt}
		inputs <- Input{Type: InputContinue}
	}

	v := waitFor(t, views, func(v View) bool { return v.Results != nil })
	assert.Equal(t, 100, v.Results.Percentage)
	assert.Len(t, store.badges["u1"], 2)

	// Unknown input is rejected without ending the loop.
	inputs <- Input{Type: "dance"}
	waitFor(t, views, func(v View) bool { return v.Results != nil })

	close(inputs)
	select {
	case err := <-done:
		require.NoError(t, err)
	case <-time.After(5 * time.Second):
		t.Fatal("Run did not return after inputs closed")
	}
}

func TestRun_StopsOnContextCancel(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	clock := schedule.NewReal()
	s := NewSession(catalogtest.Catalog(t), Options{Scheduler: clock})

	done := make(chan error, 1)
	go func() {
		done <- Run(ctx, s, clock, make(chan Input), func(View) error { return nil })
	}()
	cancel()

	select {
	case err := <-done:
		assert.ErrorIs(t, err, context.Canceled)
	case <-time.After(5 * time.Second):
		t.Fatal("Run did not return after cancel")
	}
}
