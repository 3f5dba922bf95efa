package app

import (
	"errors"
	"fmt"
)

// Sentinel errors for application operations.
var (
	// ErrAlreadyRunning indicates Run was called twice.
	ErrAlreadyRunning = errors.New("application already running")

	// ErrNotRunning indicates the application loop is not running.
	ErrNotRunning = errors.New("application not running")

	// ErrShutdownTimeout indicates the UI loop did not stop in time.
	ErrShutdownTimeout = errors.New("shutdown timed out")
)

// InitError represents an initialization error.
type InitError struct {
	Component string
	Err       error
}

func (e *InitError) Error() string {
	return fmt.Sprintf("init %s: %v", e.Component, e.Err)
}

func (e *InitError) Unwrap() error {
	return e.Err
}
