package key

import (
	"fmt"
	"strings"
)

// Key represents a keyboard key.
// For character keys, use KeyRune and set the Rune field in Event.
// For function keys, use KeyFunction and set the Fn field in Event.
type Key uint8

const (
	// KeyNone represents no key.
	KeyNone Key = iota

	// Editing keys
	KeyBackspace
	KeyEnter
	KeyTab
	KeyBackTab
	KeyDelete
	KeyInsert
	KeyEsc

	// Navigation keys
	KeyLeft
	KeyRight
	KeyUp
	KeyDown
	KeyHome
	KeyEnd
	KeyPageUp
	KeyPageDown

	// Lock and system keys
	KeyNull
	KeyCapsLock
	KeyScrollLock
	KeyNumLock
	KeyPrintScreen
	KeyPause
	KeyMenu
	KeyKeypadBegin

	// KeyFunction is used for F1, F2, ... The number is stored in Event.Fn.
	KeyFunction

	// KeyRune is used for character keys (letters, numbers, punctuation).
	// The actual character is stored in Event.Rune.
	KeyRune
)

var keyNames = [...]string{
	KeyNone:        "None",
	KeyBackspace:   "Backspace",
	KeyEnter:       "Enter",
	KeyTab:         "Tab",
	KeyBackTab:     "BackTab",
	KeyDelete:      "Delete",
	KeyInsert:      "Insert",
	KeyEsc:         "Esc",
	KeyLeft:        "Left",
	KeyRight:       "Right",
	KeyUp:          "Up",
	KeyDown:        "Down",
	KeyHome:        "Home",
	KeyEnd:         "End",
	KeyPageUp:      "PageUp",
	KeyPageDown:    "PageDown",
	KeyNull:        "Null",
	KeyCapsLock:    "CapsLock",
	KeyScrollLock:  "ScrollLock",
	KeyNumLock:     "NumLock",
	KeyPrintScreen: "PrintScreen",
	KeyPause:       "Pause",
	KeyMenu:        "Menu",
	KeyKeypadBegin: "KeypadBegin",
	KeyFunction:    "F",
	KeyRune:        "Rune",
}

// String returns a human-readable name for the key.
func (k Key) String() string {
	if int(k) < len(keyNames) {
		return keyNames[k]
	}
	return fmt.Sprintf("Key(%d)", k)
}

// IsNamed returns true if this is a named non-character key, the set a
// keycode pattern may refer to by name.
func (k Key) IsNamed() bool {
	return k > KeyNone && k < KeyFunction
}

// keyNameMap maps key names (lowercase) to Key values.
var keyNameMap = map[string]Key{
	"backspace":   KeyBackspace,
	"bs":          KeyBackspace,
	"enter":       KeyEnter,
	"return":      KeyEnter,
	"cr":          KeyEnter,
	"tab":         KeyTab,
	"backtab":     KeyBackTab,
	"delete":      KeyDelete,
	"del":         KeyDelete,
	"insert":      KeyInsert,
	"ins":         KeyInsert,
	"esc":         KeyEsc,
	"escape":      KeyEsc,
	"left":        KeyLeft,
	"right":       KeyRight,
	"up":          KeyUp,
	"down":        KeyDown,
	"home":        KeyHome,
	"end":         KeyEnd,
	"pageup":      KeyPageUp,
	"pgup":        KeyPageUp,
	"pagedown":    KeyPageDown,
	"pgdn":        KeyPageDown,
	"null":        KeyNull,
	"capslock":    KeyCapsLock,
	"scrolllock":  KeyScrollLock,
	"numlock":     KeyNumLock,
	"printscreen": KeyPrintScreen,
	"pause":       KeyPause,
	"menu":        KeyMenu,
	"keypadbegin": KeyKeypadBegin,
}

// KeyFromName returns the named key for name (case-insensitive).
// The boolean is false if the name is not in the vocabulary.
func KeyFromName(name string) (Key, bool) {
	k, ok := keyNameMap[strings.ToLower(strings.TrimSpace(name))]
	return k, ok
}

// MaxFunctionKey is the highest function key number a backend may report.
const MaxFunctionKey = 255

// Phase is the phase of a key event.
type Phase uint8

const (
	// Press is a key going down.
	Press Phase = iota
	// Release is a key going up. Only reported by terminals that support
	// the kitty keyboard protocol or an equivalent.
	Release
	// Repeat is an auto-repeated press.
	Repeat
)

// String returns the lowercase phase name.
func (p Phase) String() string {
	switch p {
	case Press:
		return "press"
	case Release:
		return "release"
	case Repeat:
		return "repeat"
	default:
		return fmt.Sprintf("Phase(%d)", p)
	}
}
