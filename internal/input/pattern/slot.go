package pattern

import "strings"

type slotKind uint8

const (
	slotWild slotKind = iota
	slotLit
	slotBind
)

// Slot is one payload position of a pattern. It either tests for a literal
// value, binds the event's value to a name, or ignores it.
type Slot[T comparable] struct {
	kind slotKind
	lit  T
	name string
}

// Lit returns a slot that only accepts v.
func Lit[T comparable](v T) Slot[T] {
	return Slot[T]{kind: slotLit, lit: v}
}

// Bind returns a slot that accepts any value and exposes it as name.
// Names starting with "_" are wildcards: they accept any value and bind
// nothing.
func Bind[T comparable](name string) Slot[T] {
	if strings.HasPrefix(name, "_") {
		return Slot[T]{kind: slotWild, name: name}
	}
	return Slot[T]{kind: slotBind, name: name}
}

// Wild returns a slot that accepts any value and binds nothing.
func Wild[T comparable]() Slot[T] {
	return Slot[T]{name: "_"}
}

// IsLiteral reports whether the slot tests for a fixed value.
func (s Slot[T]) IsLiteral() bool { return s.kind == slotLit }

// IsBinding reports whether the slot binds a name.
func (s Slot[T]) IsBinding() bool { return s.kind == slotBind }

// Value returns the literal value of a literal slot.
func (s Slot[T]) Value() (T, bool) {
	return s.lit, s.kind == slotLit
}

// Name returns the bound name, the wildcard spelling, or "".
func (s Slot[T]) Name() string {
	return s.name
}

func (s Slot[T]) accepts(v T) bool {
	return s.kind != slotLit || s.lit == v
}
