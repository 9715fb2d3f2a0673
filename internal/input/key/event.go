package key

import (
	"strconv"
	"strings"
)

// Event represents a single key event.
type Event struct {
	// Key identifies the key.
	Key Key

	// Rune is the character for KeyRune events.
	Rune rune

	// Fn is the function key number for KeyFunction events.
	Fn uint8

	// Modifiers contains the active modifier keys.
	Modifiers Modifier

	// Phase distinguishes press, release and repeat.
	Phase Phase
}

// NewRuneEvent creates a key event for a character.
func NewRuneEvent(r rune, mods Modifier, phase Phase) Event {
	return Event{
		Key:       KeyRune,
		Rune:      r,
		Modifiers: mods,
		Phase:     phase,
	}
}

// NewSpecialEvent creates a key event for a named key.
func NewSpecialEvent(k Key, mods Modifier, phase Phase) Event {
	return Event{
		Key:       k,
		Modifiers: mods,
		Phase:     phase,
	}
}

// NewFunctionEvent creates a key event for function key Fn.
func NewFunctionEvent(n uint8, mods Modifier, phase Phase) Event {
	return Event{
		Key:       KeyFunction,
		Fn:        n,
		Modifiers: mods,
		Phase:     phase,
	}
}

// IsRune returns true if this is a character key event.
func (e Event) IsRune() bool {
	return e.Key == KeyRune
}

// String returns a compact representation such as "C-a", "S-Left",
// "F5" or "a (release)".
func (e Event) String() string {
	var parts []string
	for _, f := range flagNames {
		if e.Modifiers.Has(f.mod) {
			parts = append(parts, f.abbr)
		}
	}

	var name string
	switch e.Key {
	case KeyRune:
		if e.Rune == ' ' {
			name = "Space"
		} else {
			name = string(e.Rune)
		}
	case KeyFunction:
		name = "F" + strconv.Itoa(int(e.Fn))
	default:
		name = e.Key.String()
	}
	parts = append(parts, name)

	s := strings.Join(parts, "-")
	if e.Phase != Press {
		s += " (" + e.Phase.String() + ")"
	}
	return s
}

