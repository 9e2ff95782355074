package eventloop

import (
	"context"
	"errors"
	"log/slog"
)

// ErrStopped is returned by Call once the loop has exited.
var ErrStopped = errors.New("event loop stopped")

// Loop serializes every view mutation onto one goroutine. Blocking work runs
// elsewhere through Go and re-enters the loop with its continuation.
type Loop struct {
	events chan func()
	done   chan struct{}
	logger *slog.Logger
}

// New constructs a loop with a bounded event queue.
func New(queue int, logger *slog.Logger) *Loop {
	if queue <= 0 {
		queue = 64
	}
	return &Loop{
		events: make(chan func(), queue),
		done:   make(chan struct{}),
		logger: logger.With("component", "eventloop"),
	}
}

// Run drains events until ctx is cancelled. It must be called exactly once.
func (l *Loop) Run(ctx context.Context) {
	defer close(l.done)
	l.logger.Debug("event loop started")
	for {
		select {
		case <-ctx.Done():
			l.logger.Debug("event loop stopped")
			return
		case fn := <-l.events:
			l.invoke(fn)
		}
	}
}

// Dispatch queues fn onto the loop. Events queued after the loop exits are
// dropped.
func (l *Loop) Dispatch(fn func()) {
	select {
	case l.events <- fn:
	case <-l.done:
		l.logger.Warn("event dropped after loop exit")
	}
}

// Call runs fn on the loop and waits for it to finish.
func (l *Loop) Call(ctx context.Context, fn func()) error {
	finished := make(chan struct{})
	wrapped := func() {
		defer close(finished)
		fn()
	}
	select {
	case l.events <- wrapped:
	case <-l.done:
		return ErrStopped
	case <-ctx.Done():
		return ctx.Err()
	}
	select {
	case <-finished:
		return nil
	case <-l.done:
		return ErrStopped
	case <-ctx.Done():
		return ctx.Err()
	}
}

// Go runs task off the loop, then queues resume back onto it.
func (l *Loop) Go(task func(), resume func()) {
	go func() {
		task()
		l.Dispatch(resume)
	}()
}

func (l *Loop) invoke(fn func()) {
	defer func() {
		if r := recover(); r != nil {
			l.logger.Error("event handler panicked", "panic", r)
		}
	}()
	fn()
}
