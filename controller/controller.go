// Package controller implements the per-view operation state machine that
// wraps one remote call: idle -> pending -> (succeeded | failed), with both
// terminal states accepting a new invoke. One controller instance exists per
// view; distinct controllers are fully independent.
package controller

import (
	"context"
	"sync"
)

// Status is the lifecycle state of the wrapped operation.
type Status string

const (
	StatusIdle      Status = "idle"
	StatusPending   Status = "pending"
	StatusSucceeded Status = "succeeded"
	StatusFailed    Status = "failed"
)

// Snapshot is a consistent view of a controller's state. Result is set only
// when Status is succeeded; Err only when failed. Pending clears both.
type Snapshot[T any] struct {
	Status Status
	Result T
	Err    error
}

// Call performs the remote operation for one invoke.
type Call[T any] func(ctx context.Context) (T, error)

// Controller sequences invokes of one remote operation and exposes the
// outcome of the latest one. If several invokes overlap, completion order is
// not guaranteed; a generation counter makes the most recent invoke the one
// whose terminal state wins, and stale completions are discarded.
type Controller[T any] struct {
	// guard is the entry precondition checked synchronously on Invoke,
	// before any state transition or remote call. May be nil.
	guard func() error

	mu     sync.Mutex
	status Status
	result T
	err    error
	gen    uint64
	cancel context.CancelFunc
}

// New creates an idle controller. guard, when non-nil, is evaluated at every
// Invoke; a non-nil guard error rejects the invoke locally.
func New[T any](guard func() error) *Controller[T] {
	return &Controller[T]{guard: guard, status: StatusIdle}
}

// Invoke starts one run of the operation. It returns a channel that delivers
// the controller's snapshot once this run has completed (buffered; the
// receiver may abandon it). A guard rejection is returned synchronously and
// leaves the controller's state untouched.
//
// Nothing prevents overlapping invokes at this level; the presentation layer
// is expected to disable the trigger while pending.
func (c *Controller[T]) Invoke(ctx context.Context, call Call[T]) (<-chan Snapshot[T], error) {
	if c.guard != nil {
		if err := c.guard(); err != nil {
			return nil, err
		}
	}

	cctx, cancel := context.WithCancel(ctx)

	c.mu.Lock()
	c.gen++
	myGen := c.gen
	c.status = StatusPending
	var zero T
	c.result = zero
	c.err = nil
	// A previous invoke's cancel hook is dropped, not fired: overlapping
	// calls are allowed to race and the generation decides whose terminal
	// state is observed.
	c.cancel = cancel
	c.mu.Unlock()

	done := make(chan Snapshot[T], 1)
	go func() {
		defer cancel()
		result, err := call(cctx)

		c.mu.Lock()
		if c.gen == myGen {
			if err != nil {
				c.status = StatusFailed
				c.err = err
				var zero T
				c.result = zero
			} else {
				c.status = StatusSucceeded
				c.result = result
				c.err = nil
			}
			c.cancel = nil
		}
		snap := c.snapshotLocked()
		c.mu.Unlock()

		done <- snap
	}()

	return done, nil
}

// Cancel aborts the in-flight invoke, if any. It exists as an extension point
// for timeouts; none of the shipped surfaces arm it.
func (c *Controller[T]) Cancel() {
	c.mu.Lock()
	cancel := c.cancel
	c.mu.Unlock()
	if cancel != nil {
		cancel()
	}
}

// Snapshot returns the current state.
func (c *Controller[T]) Snapshot() Snapshot[T] {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.snapshotLocked()
}

func (c *Controller[T]) snapshotLocked() Snapshot[T] {
	return Snapshot[T]{Status: c.status, Result: c.result, Err: c.err}
}
