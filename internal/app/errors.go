package app

import (
	"errors"
	"fmt"
)

// Errors returned by the application.
var (
	// ErrQuit signals that the application should exit normally.
	ErrQuit = errors.New("quit requested")

	// ErrAlreadyRunning is returned when Run is called twice.
	ErrAlreadyRunning = errors.New("application already running")

	// ErrNoBackend is returned when Run is called before SetBackend.
	ErrNoBackend = errors.New("no backend set")
)

// InitError reports a component that failed to start.
type InitError struct {
	Component string
	Err       error
}

func (e *InitError) Error() string {
	return fmt.Sprintf("initializing %s: %v", e.Component, e.Err)
}

func (e *InitError) Unwrap() error {
	return e.Err
}

// SourceError reports an eventmap source that failed to load.
type SourceError struct {
	// Path is the eventmap file, directory or script.
	Path string
	Err  error
}

func (e *SourceError) Error() string {
	return fmt.Sprintf("loading %s: %v", e.Path, e.Err)
}

func (e *SourceError) Unwrap() error {
	return e.Err
}
