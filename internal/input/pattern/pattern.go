package pattern

import (
	"fmt"
	"strconv"
	"strings"
	"unicode/utf8"

	"github.com/dshills/evmatch/internal/input/key"
	"github.com/dshills/evmatch/internal/input/mouse"
)

// Shape is the event class a pattern targets.
type Shape uint8

const (
	ShapeKey Shape = iota + 1
	ShapeKeyCode
	ShapeMouseButton
	ShapeMouseAny
	ShapeMouseMoved
	ShapeScroll
	ShapeResized
	ShapeFocusGained
	ShapeFocusLost
	ShapePaste
)

func (s Shape) String() string {
	switch s {
	case ShapeKey:
		return "key"
	case ShapeKeyCode:
		return "keycode"
	case ShapeMouseButton:
		return "mouse button"
	case ShapeMouseAny:
		return "mouse any"
	case ShapeMouseMoved:
		return "mouse moved"
	case ShapeScroll:
		return "scroll"
	case ShapeResized:
		return "resized"
	case ShapeFocusGained:
		return "focus_gained"
	case ShapeFocusLost:
		return "focus_lost"
	case ShapePaste:
		return "paste"
	default:
		return "Shape(" + strconv.Itoa(int(s)) + ")"
	}
}

// Pattern is an immutable description of one event shape plus its modifier
// and payload constraints. Patterns are comparable values; two patterns with
// the same structure are equal.
type Pattern struct {
	shape Shape
	phase key.Phase
	mods  key.Requirement

	// ShapeKey
	char Slot[rune]

	// ShapeKeyCode
	code key.Key
	fn   int

	// ShapeMouseButton and ShapeScroll
	kind   mouse.Kind
	button mouse.Button

	// Column/row or columns/rows. hasXY is false when an optional
	// "for" clause was omitted.
	x, y  Slot[int]
	hasXY bool

	// ShapeMouseAny and ShapePaste
	name string
}

// KeyChar matches a character key in the given phase.
func KeyChar(phase key.Phase, mods key.Requirement, c Slot[rune]) Pattern {
	return Pattern{shape: ShapeKey, phase: phase, mods: mods, char: c}
}

// KeyCode matches a named non-character key.
func KeyCode(phase key.Phase, mods key.Requirement, k key.Key) Pattern {
	return Pattern{shape: ShapeKeyCode, phase: phase, mods: mods, code: k}
}

// FunctionKey matches function key Fn.
func FunctionKey(phase key.Phase, mods key.Requirement, n int) Pattern {
	return Pattern{shape: ShapeKeyCode, phase: phase, mods: mods, code: key.KeyFunction, fn: n}
}

// MouseButton matches a Down, Up or Drag of button b and always carries
// column and row slots.
func MouseButton(kind mouse.Kind, mods key.Requirement, b mouse.Button, column, row Slot[int]) Pattern {
	return Pattern{
		shape:  ShapeMouseButton,
		mods:   mods,
		kind:   kind,
		button: b,
		x:      column,
		y:      row,
		hasXY:  true,
	}
}

// MouseAny matches every mouse event accepted by mods and binds the whole
// mouse event to name.
func MouseAny(mods key.Requirement, name string) Pattern {
	return Pattern{shape: ShapeMouseAny, mods: mods, name: name}
}

// MouseMoved matches button-less movement with no modifiers.
func MouseMoved() Pattern {
	return Pattern{shape: ShapeMouseMoved}
}

// MouseMovedAt is MouseMoved with column and row slots.
func MouseMovedAt(column, row Slot[int]) Pattern {
	return Pattern{shape: ShapeMouseMoved, x: column, y: row, hasXY: true}
}

// Scroll matches a wheel event of the given scroll kind.
func Scroll(kind mouse.Kind, mods key.Requirement) Pattern {
	return Pattern{shape: ShapeScroll, mods: mods, kind: kind}
}

// ScrollAt is Scroll with column and row slots.
func ScrollAt(kind mouse.Kind, mods key.Requirement, column, row Slot[int]) Pattern {
	return Pattern{shape: ShapeScroll, mods: mods, kind: kind, x: column, y: row, hasXY: true}
}

// Resized matches any resize event.
func Resized() Pattern {
	return Pattern{shape: ShapeResized}
}

// ResizedTo is Resized with columns and rows slots.
func ResizedTo(columns, rows Slot[int]) Pattern {
	return Pattern{shape: ShapeResized, x: columns, y: rows, hasXY: true}
}

// FocusGained matches the focus-gained event.
func FocusGained() Pattern {
	return Pattern{shape: ShapeFocusGained}
}

// FocusLost matches the focus-lost event.
func FocusLost() Pattern {
	return Pattern{shape: ShapeFocusLost}
}

// Paste matches a paste event and binds its text to name.
func Paste(name string) Pattern {
	return Pattern{shape: ShapePaste, name: name}
}

// Shape returns the event class the pattern targets.
func (p Pattern) Shape() Shape { return p.shape }

// Modifiers returns the modifier requirement.
func (p Pattern) Modifiers() key.Requirement { return p.mods }

// Validate reports the first definition problem of p, or nil.
// Patterns returned by Parse are always valid.
func (p Pattern) Validate() error {
	fail := func(sentinel error, format string, args ...any) error {
		return &DefinitionError{
			Pattern: p.String(),
			Offset:  -1,
			Msg:     fmt.Sprintf(format, args...),
			Err:     sentinel,
		}
	}

	if !p.mods.Set().Valid() {
		return fail(ErrUnknownModifier, "modifier bits %08b outside the vocabulary", uint8(p.mods.Set()))
	}

	switch p.shape {
	case ShapeKey, ShapeKeyCode:
		if p.phase != key.Press && p.phase != key.Release {
			return fail(ErrUnsupported, "phase must be press or release, got %s", p.phase)
		}
	}

	switch p.shape {
	case ShapeKey:
		if r, ok := p.char.Value(); ok && (!utf8.ValidRune(r) || r == 0) {
			return fail(ErrSyntax, "invalid character literal %U", r)
		}
		return p.checkNames(fail, p.char.Name())

	case ShapeKeyCode:
		if p.code == key.KeyFunction {
			if p.fn < 1 || p.fn > key.MaxFunctionKey {
				return fail(ErrUnknownKeyCode, "function key F(%d) out of range 1..%d", p.fn, key.MaxFunctionKey)
			}
			return nil
		}
		if !p.code.IsNamed() {
			return fail(ErrUnknownKeyCode, "%s is not a named key", p.code)
		}
		return nil

	case ShapeMouseButton:
		if !p.kind.HasButton() {
			return fail(ErrUnsupported, "mouse %s does not take a button", p.kind)
		}
		if p.button == mouse.ButtonNone || p.button > mouse.ButtonMiddle {
			return fail(ErrUnknownButton, "button %d", p.button)
		}
		return p.checkXY(fail)

	case ShapeMouseAny:
		if p.name == "" {
			return fail(ErrBindingArity, "mouse any binds exactly one name")
		}
		return p.checkNames(fail, p.name)

	case ShapeMouseMoved:
		if p.mods != key.Exactly(key.ModNone) {
			return fail(ErrUnsupported, "mouse moved takes no modifier")
		}
		return p.checkXY(fail)

	case ShapeScroll:
		if !p.kind.IsScroll() {
			return fail(ErrUnsupported, "%s is not a scroll direction", p.kind)
		}
		return p.checkXY(fail)

	case ShapeResized:
		return p.checkXY(fail)

	case ShapeFocusGained, ShapeFocusLost:
		return nil

	case ShapePaste:
		if p.name == "" {
			return fail(ErrBindingArity, "paste binds exactly one name")
		}
		return p.checkNames(fail, p.name)

	default:
		return fail(ErrUnsupported, "unknown shape %d", p.shape)
	}
}

// checkXY verifies the coordinate or dimension slots. Literals must be
// non-negative so the pattern renders to text Parse accepts.
func (p Pattern) checkXY(fail func(error, string, ...any) error) error {
	for _, slot := range [2]Slot[int]{p.x, p.y} {
		if v, ok := slot.Value(); ok && v < 0 {
			return fail(ErrInvalidBinding, "negative literal %d", v)
		}
	}
	return p.checkNames(fail, p.x.Name(), p.y.Name())
}

// checkNames verifies that binding names are identifiers and distinct.
func (p Pattern) checkNames(fail func(error, string, ...any) error, names ...string) error {
	for i, n := range names {
		if n == "" {
			continue
		}
		if !isIdent(n) {
			return fail(ErrInvalidBinding, "%q is not an identifier", n)
		}
		if !isBindName(n) {
			continue
		}
		if isModifierWord(n) {
			return fail(ErrInvalidBinding, "binding name %q is a modifier name", n)
		}
		for _, prev := range names[:i] {
			if prev == n {
				return fail(ErrInvalidBinding, "name %q bound twice", n)
			}
		}
	}
	return nil
}

// String returns the canonical textual form. Parse(p.String()) returns a
// pattern equal to p.
func (p Pattern) String() string {
	var b strings.Builder

	switch p.shape {
	case ShapeKey:
		fmt.Fprintf(&b, "key %s %s%s", p.phase, modPrefix(p.mods), slotString(p.char, strconv.QuoteRune))

	case ShapeKeyCode:
		fmt.Fprintf(&b, "keycode %s %s", p.phase, modPrefix(p.mods))
		if p.code == key.KeyFunction {
			fmt.Fprintf(&b, "F(%d)", p.fn)
		} else {
			b.WriteString(p.code.String())
		}

	case ShapeMouseButton:
		fmt.Fprintf(&b, "mouse %s %s%s", p.kind, modPrefix(p.mods), p.button)
		p.writeXY(&b)

	case ShapeMouseAny:
		b.WriteString("mouse any")
		if !p.mods.IsAny() {
			b.WriteString(" " + p.mods.String())
		}
		b.WriteString(" for " + p.name)

	case ShapeMouseMoved:
		b.WriteString("mouse moved")
		p.writeXY(&b)

	case ShapeScroll:
		b.WriteString("scroll")
		if p.mods != key.Exactly(key.ModNone) {
			b.WriteString(" " + p.mods.String())
		}
		b.WriteString(" " + scrollWord(p.kind))
		p.writeXY(&b)

	case ShapeResized:
		b.WriteString("resized")
		p.writeXY(&b)

	case ShapeFocusGained:
		b.WriteString("focus_gained")

	case ShapeFocusLost:
		b.WriteString("focus_lost")

	case ShapePaste:
		b.WriteString("paste " + p.name)

	default:
		b.WriteString(p.shape.String())
	}

	return b.String()
}

func (p Pattern) writeXY(b *strings.Builder) {
	if !p.hasXY {
		return
	}
	fmt.Fprintf(b, " for %s, %s", slotString(p.x, strconv.Itoa), slotString(p.y, strconv.Itoa))
}

func modPrefix(r key.Requirement) string {
	if r == key.Exactly(key.ModNone) {
		return ""
	}
	return r.String() + "-"
}

func slotString[T comparable](s Slot[T], format func(T) string) string {
	switch s.kind {
	case slotLit:
		return format(s.lit)
	case slotBind:
		return s.name
	default:
		if s.name != "" {
			return s.name
		}
		return "_"
	}
}

func scrollWord(k mouse.Kind) string {
	switch k {
	case mouse.ScrollUp:
		return "up"
	case mouse.ScrollDown:
		return "down"
	case mouse.ScrollLeft:
		return "left"
	case mouse.ScrollRight:
		return "right"
	default:
		return k.String()
	}
}

// isModifierWord reports whether s spells ANY or a modifier vocabulary
// name. Such words cannot be binding names.
func isModifierWord(s string) bool {
	if strings.EqualFold(s, "ANY") {
		return true
	}
	_, ok := key.ModifierFromName(s)
	return ok
}

func isIdent(s string) bool {
	if s == "" {
		return false
	}
	for i, r := range s {
		if r == '_' || (r >= 'a' && r <= 'z') || (r >= 'A' && r <= 'Z') {
			continue
		}
		if i > 0 && r >= '0' && r <= '9' {
			continue
		}
		return false
	}
	return true
}
