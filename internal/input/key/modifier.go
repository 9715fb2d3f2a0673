package key

import "strings"

// Modifier represents keyboard modifier keys held during an input event.
// Bit values follow the terminal backend's vocabulary.
type Modifier uint8

const (
	// ModNone indicates no modifiers.
	ModNone Modifier = 0

	// ModShift indicates the Shift key.
	ModShift Modifier = 1 << 0

	// ModCtrl indicates the Control key.
	ModCtrl Modifier = 1 << 1

	// ModAlt indicates the Alt key (Option on macOS).
	ModAlt Modifier = 1 << 2

	// ModSuper indicates the Super key (Cmd on macOS, Win on Windows).
	ModSuper Modifier = 1 << 3

	// ModHyper indicates the Hyper key.
	ModHyper Modifier = 1 << 4

	// ModMeta indicates the Meta key.
	ModMeta Modifier = 1 << 5
)

// Named combinations.
const (
	ModCtrlAlt   = ModCtrl | ModAlt
	ModCtrlShift = ModCtrl | ModShift
	ModAltShift  = ModAlt | ModShift
)

// modAll is the union of every flag in the vocabulary.
const modAll = ModShift | ModCtrl | ModAlt | ModSuper | ModHyper | ModMeta

// Has returns true if m contains the specified modifier.
func (m Modifier) Has(mod Modifier) bool {
	return m&mod != 0
}

// With returns a new Modifier with the specified modifier added.
func (m Modifier) With(mod Modifier) Modifier {
	return m | mod
}

// Without returns a new Modifier with the specified modifier removed.
func (m Modifier) Without(mod Modifier) Modifier {
	return m &^ mod
}

// IsEmpty returns true if no modifiers are set.
func (m Modifier) IsEmpty() bool {
	return m == ModNone
}

// Valid reports whether m only uses flags from the vocabulary.
func (m Modifier) Valid() bool {
	return m&^modAll == 0
}

// flagNames lists the primitive flags in display order.
var flagNames = []struct {
	mod   Modifier
	name  string
	short string
	abbr  string
}{
	{ModCtrl, "CONTROL", "Ctrl", "C"},
	{ModAlt, "ALT", "Alt", "A"},
	{ModShift, "SHIFT", "Shift", "S"},
	{ModSuper, "SUPER", "Super", "D"},
	{ModHyper, "HYPER", "Hyper", "H"},
	{ModMeta, "META", "Meta", "M"},
}

// String returns a human-readable representation like "Ctrl+Alt".
func (m Modifier) String() string {
	if m == ModNone {
		return ""
	}

	var parts []string
	for _, f := range flagNames {
		if m.Has(f.mod) {
			parts = append(parts, f.short)
		}
	}
	return strings.Join(parts, "+")
}

// Name returns the spelling of m in the pattern vocabulary: "NONE", a flag
// name such as "CONTROL", a named union such as "CONTROL_SHIFT", or flag
// names joined with "+" for any other union.
func (m Modifier) Name() string {
	switch m {
	case ModNone:
		return "NONE"
	case ModCtrlAlt:
		return "CONTROL_ALT"
	case ModCtrlShift:
		return "CONTROL_SHIFT"
	case ModAltShift:
		return "ALT_SHIFT"
	}

	var parts []string
	for _, f := range flagNames {
		if m.Has(f.mod) {
			parts = append(parts, f.name)
		}
	}
	return strings.Join(parts, "+")
}

// modifierNameMap maps vocabulary names (lowercase) to Modifier values.
var modifierNameMap = map[string]Modifier{
	"none":          ModNone,
	"control":       ModCtrl,
	"ctrl":          ModCtrl,
	"shift":         ModShift,
	"alt":           ModAlt,
	"meta":          ModMeta,
	"super":         ModSuper,
	"hyper":         ModHyper,
	"control_alt":   ModCtrlAlt,
	"control_shift": ModCtrlShift,
	"alt_shift":     ModAltShift,
}

// ModifierFromName returns the Modifier for a vocabulary name
// (case-insensitive). The boolean is false for unknown names.
func ModifierFromName(name string) (Modifier, bool) {
	m, ok := modifierNameMap[strings.ToLower(strings.TrimSpace(name))]
	return m, ok
}

// Requirement is the modifier constraint of a pattern.
// The zero value requires exactly ModNone.
type Requirement struct {
	any bool
	set Modifier
}

// AnyModifiers accepts an event regardless of its modifier flags.
var AnyModifiers = Requirement{any: true}

// Exactly requires the event's modifiers to equal m.
func Exactly(m Modifier) Requirement {
	return Requirement{set: m}
}

// Accepts reports whether actual satisfies the requirement.
func (r Requirement) Accepts(actual Modifier) bool {
	return r.any || actual == r.set
}

// IsAny reports whether r ignores modifier flags.
func (r Requirement) IsAny() bool {
	return r.any
}

// Set returns the exact set required. It is ModNone for AnyModifiers.
func (r Requirement) Set() Modifier {
	return r.set
}

// String returns "ANY" or the vocabulary name of the required set.
func (r Requirement) String() string {
	if r.any {
		return "ANY"
	}
	return r.set.Name()
}

// Matches reports whether actual equals required exactly.
func Matches(required, actual Modifier) bool {
	return actual == required
}
