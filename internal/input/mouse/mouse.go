package mouse

import (
	"fmt"
	"strings"

	"github.com/dshills/evmatch/internal/input/key"
)

// Button represents a mouse button.
type Button uint8

const (
	// ButtonNone indicates no button.
	ButtonNone Button = iota
	// ButtonLeft is the primary (left) mouse button.
	ButtonLeft
	// ButtonRight is the secondary (right) mouse button.
	ButtonRight
	// ButtonMiddle is the middle mouse button (scroll wheel click).
	ButtonMiddle
)

// String returns the button name as used in patterns.
func (b Button) String() string {
	switch b {
	case ButtonLeft:
		return "Left"
	case ButtonRight:
		return "Right"
	case ButtonMiddle:
		return "Middle"
	default:
		return "None"
	}
}

// ButtonFromName returns the button for name (case-insensitive).
// The boolean is false for unknown names.
func ButtonFromName(name string) (Button, bool) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "left":
		return ButtonLeft, true
	case "right":
		return ButtonRight, true
	case "middle":
		return ButtonMiddle, true
	default:
		return ButtonNone, false
	}
}

// Kind represents the type of mouse event.
type Kind uint8

const (
	// KindNone indicates no event.
	KindNone Kind = iota
	// Down indicates a button press.
	Down
	// Up indicates a button release.
	Up
	// Drag indicates movement with a button held.
	Drag
	// Moved indicates movement with no button held.
	Moved
	// ScrollUp indicates the wheel turned up.
	ScrollUp
	// ScrollDown indicates the wheel turned down.
	ScrollDown
	// ScrollLeft indicates horizontal scroll left.
	ScrollLeft
	// ScrollRight indicates horizontal scroll right.
	ScrollRight
)

// String returns a string representation of the kind.
func (k Kind) String() string {
	switch k {
	case Down:
		return "down"
	case Up:
		return "up"
	case Drag:
		return "drag"
	case Moved:
		return "moved"
	case ScrollUp:
		return "scroll-up"
	case ScrollDown:
		return "scroll-down"
	case ScrollLeft:
		return "scroll-left"
	case ScrollRight:
		return "scroll-right"
	default:
		return "none"
	}
}

// HasButton returns true for the kinds that carry a button.
func (k Kind) HasButton() bool {
	return k == Down || k == Up || k == Drag
}

// IsScroll returns true for the four scroll kinds.
func (k Kind) IsScroll() bool {
	return k >= ScrollUp && k <= ScrollRight
}

// IsHorizontal returns true if the scroll is horizontal.
func (k Kind) IsHorizontal() bool {
	return k == ScrollLeft || k == ScrollRight
}

// Event represents a mouse input event.
type Event struct {
	// Kind is the type of mouse event.
	Kind Kind

	// Button is set for Down, Up and Drag.
	Button Button

	// Column and Row are zero-based cell coordinates.
	Column int
	Row    int

	// Modifiers are any keyboard modifiers held during the event.
	Modifiers key.Modifier
}

// String returns a compact representation like "down(Left) 10,4 Ctrl".
func (e Event) String() string {
	var b strings.Builder
	b.WriteString(e.Kind.String())
	if e.Kind.HasButton() {
		fmt.Fprintf(&b, "(%s)", e.Button)
	}
	fmt.Fprintf(&b, " %d,%d", e.Column, e.Row)
	if e.Modifiers != key.ModNone {
		b.WriteString(" ")
		b.WriteString(e.Modifiers.String())
	}
	return b.String()
}
