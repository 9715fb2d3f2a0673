package input

import (
	"github.com/dshills/evmatch/internal/input/event"
	"github.com/dshills/evmatch/internal/input/pattern"
)

// ActionSource indicates the origin of an action.
type ActionSource uint8

const (
	// SourceKeyboard indicates the action originated from keyboard input.
	SourceKeyboard ActionSource = iota
	// SourceMouse indicates the action originated from mouse input.
	SourceMouse
	// SourceTerminal indicates a resize or focus change of the terminal.
	SourceTerminal
	// SourcePaste indicates the action originated from a bracketed paste.
	SourcePaste
	// SourceAPI indicates the action was injected by code.
	SourceAPI
)

// String returns a string representation of the action source.
func (s ActionSource) String() string {
	switch s {
	case SourceKeyboard:
		return "keyboard"
	case SourceMouse:
		return "mouse"
	case SourceTerminal:
		return "terminal"
	case SourcePaste:
		return "paste"
	case SourceAPI:
		return "api"
	default:
		return "unknown"
	}
}

// SourceOf returns the action source for an input event.
func SourceOf(ev event.Event) ActionSource {
	switch ev.(type) {
	case event.Key:
		return SourceKeyboard
	case event.Mouse:
		return SourceMouse
	case event.Resize, event.FocusGained, event.FocusLost:
		return SourceTerminal
	case event.Paste:
		return SourcePaste
	default:
		return SourceAPI
	}
}

// ActionArgs holds arguments for an action: the binding's fixed arguments
// and the values its pattern bound from the event.
type ActionArgs struct {
	// Fixed holds arguments configured on the binding.
	Fixed map[string]any

	// Bound holds values bound by the pattern, such as coordinates.
	Bound pattern.Bindings
}

// Get retrieves an argument. Bound values shadow fixed ones.
func (a ActionArgs) Get(key string) (any, bool) {
	if b, ok := a.Bound.Lookup(key); ok {
		return b.Value(), true
	}
	if a.Fixed == nil {
		return nil, false
	}
	v, ok := a.Fixed[key]
	return v, ok
}

// GetString retrieves a string argument.
func (a ActionArgs) GetString(key string) string {
	if v, ok := a.Get(key); ok {
		switch s := v.(type) {
		case string:
			return s
		case rune:
			return string(s)
		}
	}
	return ""
}

// GetInt retrieves an integer argument. Numbers decoded from TOML, YAML or
// JSON are converted.
func (a ActionArgs) GetInt(key string) int {
	if v, ok := a.Get(key); ok {
		switch n := v.(type) {
		case int:
			return n
		case int64:
			return int(n)
		case float64:
			return int(n)
		}
	}
	return 0
}

// GetBool retrieves a bool argument.
func (a ActionArgs) GetBool(key string) bool {
	if v, ok := a.Get(key); ok {
		if b, ok := v.(bool); ok {
			return b
		}
	}
	return false
}

// Map returns all arguments in one fresh map, bound values last.
func (a ActionArgs) Map() map[string]any {
	m := make(map[string]any, len(a.Fixed)+a.Bound.Len())
	for k, v := range a.Fixed {
		m[k] = v
	}
	for i := 0; i < a.Bound.Len(); i++ {
		b := a.Bound.At(i)
		m[b.Name] = b.Value()
	}
	return m
}

// Action represents a command to be executed by the application.
type Action struct {
	// Name is the command identifier (e.g., "app.quit", "view.scroll").
	Name string

	// Args contains command-specific arguments.
	Args ActionArgs

	// Source indicates where this action originated.
	Source ActionSource

	// Event is the input event that produced the action.
	Event event.Event

	// Eventmap names the eventmap whose binding produced the action.
	Eventmap string
}
