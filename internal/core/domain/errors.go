package domain

import "errors"

// Domain errors represent business logic failures.
// These are distinct from infrastructure errors.
var (
	// ErrNotFound indicates a requested entity does not exist.
	ErrNotFound = errors.New("not found")

	// ErrInvalidInput indicates malformed or invalid input.
	// Settings mutations return this wrapped with detail; the prior
	// value is always retained.
	ErrInvalidInput = errors.New("invalid input")

	// ErrContentRead indicates the note content could not be read.
	// The change event is dropped silently; no trigger fires.
	ErrContentRead = errors.New("content read failed")

	// ErrWatchClosed indicates the note watcher has been closed.
	ErrWatchClosed = errors.New("watch closed")

	// ErrMonitorRunning indicates the monitor is already started.
	ErrMonitorRunning = errors.New("monitor already running")
)
