package pkgroutine

import (
	"context"
	"fmt"
	"log/slog"
	"runtime/debug"
)

// DefaultMaxGoroutine is used when NewManager receives a non-positive limit.
const DefaultMaxGoroutine int = 10

// Manager runs functions with a configurable concurrency limit.
//
// Callers block in Do until a slot is free, so a burst of heavy work (for
// example parsing uploaded workbooks) cannot exhaust the process.
type Manager struct {
	sema chan struct{}
}

// NewManager creates a new Manager with the provided maximum concurrency.
func NewManager(maxGoroutine int) *Manager {
	if maxGoroutine < 1 {
		maxGoroutine = DefaultMaxGoroutine
	}

	return &Manager{
		sema: make(chan struct{}, maxGoroutine), // Semaphore to limit concurrent work
	}
}

// Do runs f once a slot is available and returns its error.
//
// A panic inside f is recovered, logged with its stack and returned as an
// error. If ctx is done before a slot frees up, ctx.Err() is returned and f is
// never called.
func (g *Manager) Do(ctx context.Context, f func(ctx context.Context) error) (err error) {
	select {
	case g.sema <- struct{}{}: // Acquire a semaphore slot
	case <-ctx.Done():
		slog.WarnContext(ctx, "work canceled before start", "because", ctx.Err())
		return ctx.Err()
	}

	defer func() {
		<-g.sema // Release semaphore slot

		if rvr := recover(); rvr != nil {
			slog.ErrorContext(ctx, "panic occurred in managed work", "because", rvr, "stack", string(debug.Stack()))
			err = fmt.Errorf("panic: %v", rvr)
		}
	}()

	return f(ctx)
}
