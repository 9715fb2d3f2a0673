// Package backend connects the event matcher to a terminal.
//
// A Backend delivers normalized input events. Terminal implements it on
// tcell; NullBackend is fed from a channel and is used by tests and by
// headless runs.
package backend

import (
	"errors"
	"sync"

	"github.com/dshills/evmatch/internal/input/event"
)

// ErrNotInitialized is returned by operations that need Init first.
var ErrNotInitialized = errors.New("backend not initialized")

// Backend defines the interface for terminal input backends.
type Backend interface {
	// Init initializes the backend for use.
	// Must be called before any other methods.
	Init() error

	// Shutdown releases backend resources and restores terminal state.
	// A blocked PollEvent returns false after Shutdown.
	Shutdown()

	// Size returns the current terminal dimensions.
	Size() (width, height int)

	// PollEvent waits for the next input event. It returns false once the
	// backend has been shut down.
	PollEvent() (event.Event, bool)

	// PostEvent posts a synthetic event to the event queue.
	PostEvent(ev event.Event)

	// ShowStatus replaces the status line.
	ShowStatus(text string)

	EnableMouse()
	DisableMouse()
	EnablePaste()
	DisablePaste()
	EnableFocus()
	DisableFocus()
}

// Modes reports which optional input reporting is enabled.
type Modes struct {
	Mouse bool
	Paste bool
	Focus bool
}

// NullBackend is a backend fed from a channel.
type NullBackend struct {
	mu     sync.Mutex
	width  int
	height int
	status string
	modes  Modes

	events chan event.Event
	done   chan struct{}
	once   sync.Once
}

// NewNullBackend creates a null backend with the given dimensions.
func NewNullBackend(width, height int) *NullBackend {
	return &NullBackend{
		width:  width,
		height: height,
		events: make(chan event.Event, 100),
		done:   make(chan struct{}),
	}
}

func (b *NullBackend) Init() error { return nil }

func (b *NullBackend) Shutdown() {
	b.once.Do(func() { close(b.done) })
}

func (b *NullBackend) Size() (int, int) {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.width, b.height
}

// PollEvent returns queued events in order. Events queued before Shutdown
// are still delivered.
func (b *NullBackend) PollEvent() (event.Event, bool) {
	select {
	case ev := <-b.events:
		return ev, true
	default:
	}
	select {
	case ev := <-b.events:
		return ev, true
	case <-b.done:
		return nil, false
	}
}

func (b *NullBackend) PostEvent(ev event.Event) {
	select {
	case b.events <- ev:
	default:
		// Event dropped if queue is full (non-blocking for testing)
	}
}

func (b *NullBackend) ShowStatus(text string) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.status = text
}

func (b *NullBackend) EnableMouse()  { b.setMode(&b.modes.Mouse, true) }
func (b *NullBackend) DisableMouse() { b.setMode(&b.modes.Mouse, false) }
func (b *NullBackend) EnablePaste()  { b.setMode(&b.modes.Paste, true) }
func (b *NullBackend) DisablePaste() { b.setMode(&b.modes.Paste, false) }
func (b *NullBackend) EnableFocus()  { b.setMode(&b.modes.Focus, true) }
func (b *NullBackend) DisableFocus() { b.setMode(&b.modes.Focus, false) }

func (b *NullBackend) setMode(flag *bool, on bool) {
	b.mu.Lock()
	defer b.mu.Unlock()
	*flag = on
}

// Status returns the last status line for testing.
func (b *NullBackend) Status() string {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.status
}

// InputModes reports the enabled input modes for testing.
func (b *NullBackend) InputModes() Modes {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.modes
}

// Resize simulates a terminal resize and queues the matching event.
func (b *NullBackend) Resize(width, height int) {
	b.mu.Lock()
	b.width = width
	b.height = height
	b.mu.Unlock()
	b.PostEvent(event.Resize{Columns: width, Rows: height})
}
