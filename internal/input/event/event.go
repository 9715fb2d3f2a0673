// Package event defines the raw input event union consumed by the pattern
// matcher.
//
// An Event is exactly one of Key, Mouse, Resize, FocusGained, FocusLost or
// Paste. Values are produced by a terminal backend and are read-only to
// everything downstream; nothing in this module retains them.
package event

import (
	"fmt"
	"strconv"

	"github.com/dshills/evmatch/internal/input/key"
	"github.com/dshills/evmatch/internal/input/mouse"
)

// Type identifies the variant of an Event.
type Type uint8

const (
	TypeKey Type = iota + 1
	TypeMouse
	TypeResize
	TypeFocusGained
	TypeFocusLost
	TypePaste
)

// String returns the variant name.
func (t Type) String() string {
	switch t {
	case TypeKey:
		return "key"
	case TypeMouse:
		return "mouse"
	case TypeResize:
		return "resize"
	case TypeFocusGained:
		return "focus_gained"
	case TypeFocusLost:
		return "focus_lost"
	case TypePaste:
		return "paste"
	default:
		return "Type(" + strconv.Itoa(int(t)) + ")"
	}
}

// Event is a raw terminal input event. The set of implementations is closed.
type Event interface {
	Type() Type
	String() string

	sealed()
}

// Key is a keyboard event.
type Key struct {
	key.Event
}

// Mouse is a mouse event.
type Mouse struct {
	mouse.Event
}

// Resize reports new terminal dimensions in cells.
type Resize struct {
	Columns int
	Rows    int
}

// FocusGained reports that the terminal window gained focus.
type FocusGained struct{}

// FocusLost reports that the terminal window lost focus.
type FocusLost struct{}

// Paste carries bracketed-paste text.
type Paste struct {
	Text string
}

func (Key) Type() Type         { return TypeKey }
func (Mouse) Type() Type       { return TypeMouse }
func (Resize) Type() Type      { return TypeResize }
func (FocusGained) Type() Type { return TypeFocusGained }
func (FocusLost) Type() Type   { return TypeFocusLost }
func (Paste) Type() Type       { return TypePaste }

func (Key) sealed()         {}
func (Mouse) sealed()       {}
func (Resize) sealed()      {}
func (FocusGained) sealed() {}
func (FocusLost) sealed()   {}
func (Paste) sealed()       {}

func (e Key) String() string   { return "key " + e.Event.String() }
func (e Mouse) String() string { return "mouse " + e.Event.String() }

func (e Resize) String() string {
	return fmt.Sprintf("resize %dx%d", e.Columns, e.Rows)
}

func (FocusGained) String() string { return "focus_gained" }
func (FocusLost) String() string   { return "focus_lost" }

func (e Paste) String() string {
	return fmt.Sprintf("paste %q", e.Text)
}

// KeyPress returns a press event for character r.
func KeyPress(r rune, mods key.Modifier) Key {
	return Key{key.NewRuneEvent(r, mods, key.Press)}
}

// KeyRelease returns a release event for character r.
func KeyRelease(r rune, mods key.Modifier) Key {
	return Key{key.NewRuneEvent(r, mods, key.Release)}
}

// KeyCodePress returns a press event for a named key.
func KeyCodePress(k key.Key, mods key.Modifier) Key {
	return Key{key.NewSpecialEvent(k, mods, key.Press)}
}

// FunctionPress returns a press event for function key n.
func FunctionPress(n uint8, mods key.Modifier) Key {
	return Key{key.NewFunctionEvent(n, mods, key.Press)}
}

// MouseButton returns a Down, Up or Drag event.
func MouseButton(kind mouse.Kind, b mouse.Button, column, row int, mods key.Modifier) Mouse {
	return Mouse{mouse.Event{Kind: kind, Button: b, Column: column, Row: row, Modifiers: mods}}
}

// MouseAt returns a button-less mouse event such as Moved or a scroll.
func MouseAt(kind mouse.Kind, column, row int, mods key.Modifier) Mouse {
	return Mouse{mouse.Event{Kind: kind, Column: column, Row: row, Modifiers: mods}}
}
