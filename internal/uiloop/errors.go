package uiloop

import "errors"

// Sentinel errors for the UI loop.
var (
	// ErrAlreadyRunning is returned when Run is called twice.
	ErrAlreadyRunning = errors.New("ui loop is already running")

	// ErrLoopStopped is returned when tasks are posted after Stop.
	ErrLoopStopped = errors.New("ui loop is stopped")

	// ErrQueueFull is returned when the task queue is at capacity.
	ErrQueueFull = errors.New("ui loop queue is full")

	// ErrNilTask is returned when a nil task is posted.
	ErrNilTask = errors.New("task cannot be nil")

	// ErrNotOnLoop reports a UI precondition violated off the loop.
	ErrNotOnLoop = errors.New("must be called on the UI loop")
)
