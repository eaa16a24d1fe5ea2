package app

import (
	"context"
	"errors"
	"log/slog"
)

// ErrLoopClosed is returned by Do once the loop has stopped.
var ErrLoopClosed = errors.New("event loop closed")

// Loop runs functions one at a time on a single goroutine. Surfaces that
// serve concurrent callers (HTTP handlers, ticker goroutines) send their work
// through it so the core only ever sees one thread.
type Loop struct {
	ops    chan func()
	done   chan struct{}
	logger *slog.Logger
}

func NewLoop(logger *slog.Logger) *Loop {
	if logger == nil {
		logger = slog.Default()
	}
	return &Loop{
		ops:    make(chan func()),
		done:   make(chan struct{}),
		logger: logger,
	}
}

// Run executes queued functions until ctx is cancelled.
func (l *Loop) Run(ctx context.Context) {
	defer close(l.done)
	for {
		select {
		case <-ctx.Done():
			return
		case op := <-l.ops:
			l.run(op)
		}
	}
}

// Do runs fn on the loop and waits for it to finish.
func (l *Loop) Do(ctx context.Context, fn func()) error {
	finished := make(chan struct{})
	op := func() {
		defer close(finished)
		fn()
	}
	select {
	case l.ops <- op:
	case <-l.done:
		return ErrLoopClosed
	case <-ctx.Done():
		return ctx.Err()
	}
	<-finished
	return nil
}

// Post queues fn without waiting for it. It is dropped if the loop has stopped.
func (l *Loop) Post(fn func()) {
	select {
	case l.ops <- fn:
	case <-l.done:
	}
}

func (l *Loop) run(op func()) {
	defer func() {
		if err := recover(); err != nil {
			l.logger.Error("panic recovered in event loop", "error", err)
		}
	}()
	op()
}
