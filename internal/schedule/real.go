package schedule

import (
	"sync"
	"time"
)

// Real delivers timers on a channel after wall-clock delays. The owner reads
// C from its single event loop, so engine state is never touched from timer
// goroutines.
type Real struct {
	mu     sync.Mutex
	timers map[Key]*time.Timer
	c      chan Timer
	done   chan struct{}
	once   sync.Once
}

// NewReal creates a Real scheduler.
func NewReal() *Real {
	return &Real{
		timers: make(map[Key]*time.Timer),
		c:      make(chan Timer, 16),
		done:   make(chan struct{}),
	}
}

// C returns the channel fired timers are delivered on.
func (r *Real) C() <-chan Timer {
	return r.c
}

func (r *Real) Schedule(t Timer) {
	key := t.Key()
	r.mu.Lock()
	defer r.mu.Unlock()

	if old, ok := r.timers[key]; ok {
		old.Stop()
	}
	r.timers[key] = time.AfterFunc(t.After, func() {
		r.mu.Lock()
		delete(r.timers, key)
		r.mu.Unlock()

		select {
		case r.c <- t:
		case <-r.done:
		}
	})
}

func (r *Real) Cancel(t Timer) {
	key := t.Key()
	r.mu.Lock()
	defer r.mu.Unlock()

	if tm, ok := r.timers[key]; ok {
		tm.Stop()
		delete(r.timers, key)
	}
}

// Stop cancels every pending timer. Timers already in flight are dropped.
func (r *Real) Stop() {
	r.once.Do(func() {
		close(r.done)
	})
	r.mu.Lock()
	defer r.mu.Unlock()
	for key, tm := range r.timers {
		tm.Stop()
		delete(r.timers, key)
	}
}
