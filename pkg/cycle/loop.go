package cycle

import (
	"context"
	"errors"
	"fmt"
	"sync/atomic"
)

var (
	// ErrLoopRunning is returned by Run when the loop is already running.
	ErrLoopRunning = errors.New("loop already running")

	// ErrLoopStopped is returned by Call when the loop stops before running the task.
	ErrLoopStopped = errors.New("loop stopped")
)

// Loop is a cooperative single-goroutine task loop.
//
// Do, Defer and everything they trigger must run on the loop's goroutine:
// either the one calling Run, or the caller itself when the loop is driven
// directly with Do.
type Loop struct {
	tasks    chan func()
	done     chan struct{}
	running  atomic.Bool
	deferred Manual
	depth    int
}

// NewLoop creates a loop whose task queue holds up to buffer pending tasks.
func NewLoop(buffer int) *Loop {
	return &Loop{
		tasks: make(chan func(), buffer),
		done:  make(chan struct{}),
	}
}

// Defer queues fn to run when the current Do returns.
// Outside Do there is no unit of work to wait for, so fn runs right away.
func (l *Loop) Defer(fn func()) {
	if l.depth == 0 {
		fn()
		return
	}
	l.deferred.Defer(fn)
}

// Do runs fn as one unit of work, then drains deferred functions.
// Nested calls join the outer unit of work.
func (l *Loop) Do(fn func()) {
	l.depth++
	defer func() {
		l.depth--
		if l.depth == 0 {
			l.deferred.Flush()
		}
	}()
	fn()
}

// Post enqueues fn from any goroutine.
func (l *Loop) Post(ctx context.Context, fn func()) error {
	select {
	case l.tasks <- fn:
		return nil
	case <-l.done:
		return ErrLoopStopped
	case <-ctx.Done():
		return ctx.Err()
	}
}

// Call runs fn on the loop and waits for its result.
// If ctx ends after the task was queued, the task still runs; only the wait is abandoned.
func (l *Loop) Call(ctx context.Context, fn func() error) error {
	result := make(chan error, 1)
	task := func() {
		defer func() {
			if r := recover(); r != nil {
				result <- fmt.Errorf("task panicked: %v", r)
			}
		}()
		result <- fn()
	}
	if err := l.Post(ctx, task); err != nil {
		return err
	}

	select {
	case err := <-result:
		return err
	case <-l.done:
		select {
		case err := <-result:
			return err
		default:
			return ErrLoopStopped
		}
	case <-ctx.Done():
		return ctx.Err()
	}
}

// Run executes posted tasks one at a time until ctx is done.
// A loop can only run once.
func (l *Loop) Run(ctx context.Context) error {
	if !l.running.CompareAndSwap(false, true) {
		return ErrLoopRunning
	}
	defer close(l.done)

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case task := <-l.tasks:
			l.Do(task)
		}
	}
}
