// Package events implements the single-threaded event loop the face runs
// on, the subscription handle registry, and the tick-timer service.
//
// Producers on other goroutines only [Loop.Post] closures. The loop runs
// each closure to completion, in arrival order, on one goroutine, so state
// touched only from handlers needs no locking.
package events

import (
	"context"
	"sync"

	"github.com/hammamikhairi/tickface/internal/logger"
)

// LoopOption configures the loop.
type LoopOption func(*Loop)

// WithAfterDispatch registers a hook run on the loop goroutine after each
// batch of events. The display uses it to publish a frame.
func WithAfterDispatch(fn func()) LoopOption {
	return func(l *Loop) {
		l.after = fn
	}
}

// Loop is a run-to-completion event queue.
type Loop struct {
	mu      sync.Mutex
	pending []func()
	spare   []func()
	wake    chan struct{}

	after      func()
	dispatched uint64
	log        *logger.Logger
}

// NewLoop creates an idle loop. Call Run to start dispatching.
func NewLoop(log *logger.Logger, opts ...LoopOption) *Loop {
	l := &Loop{
		wake: make(chan struct{}, 1),
		log:  log,
	}
	for _, opt := range opts {
		opt(l)
	}
	return l
}

// Post queues fn for the loop goroutine. Safe to call from any goroutine,
// including from inside a handler; never blocks.
func (l *Loop) Post(fn func()) {
	l.mu.Lock()
	l.pending = append(l.pending, fn)
	l.mu.Unlock()

	select {
	case l.wake <- struct{}{}:
	default:
	}
}

// Run dispatches events until ctx is cancelled. Blocks.
func (l *Loop) Run(ctx context.Context) error {
	l.log.Debug("event loop running")
	for {
		l.RunPending()
		select {
		case <-ctx.Done():
			l.log.Debug("event loop stopped after %d events", l.dispatched)
			return ctx.Err()
		case <-l.wake:
		}
	}
}

// RunPending runs every event queued so far, plus none queued while it
// runs, and returns how many it ran. Must only be called from the loop
// goroutine (tests call it directly to dispatch deterministically).
func (l *Loop) RunPending() int {
	l.mu.Lock()
	batch := l.pending
	l.pending = l.spare[:0]
	l.mu.Unlock()

	for i, fn := range batch {
		fn()
		batch[i] = nil
	}

	l.mu.Lock()
	l.spare = batch[:0]
	l.mu.Unlock()

	n := len(batch)
	l.dispatched += uint64(n)
	if n > 0 && l.after != nil {
		l.after()
	}
	return n
}

// Pending returns the number of queued events.
func (l *Loop) Pending() int {
	l.mu.Lock()
	defer l.mu.Unlock()
	return len(l.pending)
}
