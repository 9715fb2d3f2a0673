package pattern

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/dshills/evmatch/internal/input/mouse"
)

// maxBindings is the largest number of names any pattern shape binds.
const maxBindings = 2

// ValueKind identifies the type of a bound value.
type ValueKind uint8

const (
	ValueRune ValueKind = iota + 1
	ValueInt
	ValueText
	ValueMouse
)

// Binding is one named value extracted from a matched event.
type Binding struct {
	Name string
	Kind ValueKind

	r rune
	n int
	s string
	m mouse.Event
}

// Rune returns the bound character.
func (b Binding) Rune() (rune, bool) { return b.r, b.Kind == ValueRune }

// Int returns the bound coordinate or dimension.
func (b Binding) Int() (int, bool) { return b.n, b.Kind == ValueInt }

// Text returns the bound paste text.
func (b Binding) Text() (string, bool) { return b.s, b.Kind == ValueText }

// Mouse returns the bound mouse event.
func (b Binding) Mouse() (mouse.Event, bool) { return b.m, b.Kind == ValueMouse }

// Value returns the bound value as an interface.
func (b Binding) Value() any {
	switch b.Kind {
	case ValueRune:
		return b.r
	case ValueInt:
		return b.n
	case ValueText:
		return b.s
	case ValueMouse:
		return b.m
	default:
		return nil
	}
}

func (b Binding) String() string {
	switch b.Kind {
	case ValueRune:
		return b.Name + "=" + strconv.QuoteRune(b.r)
	case ValueInt:
		return b.Name + "=" + strconv.Itoa(b.n)
	case ValueText:
		return b.Name + "=" + strconv.Quote(b.s)
	case ValueMouse:
		return b.Name + "=" + b.m.String()
	default:
		return b.Name
	}
}

// Bindings holds the values bound by one successful match. It is a plain
// value and does not allocate.
type Bindings struct {
	n    int
	list [maxBindings]Binding
}

// Len returns the number of bindings.
func (bs Bindings) Len() int { return bs.n }

// At returns the i-th binding in pattern order.
func (bs Bindings) At(i int) Binding { return bs.list[:bs.n][i] }

// Lookup returns the binding called name.
func (bs Bindings) Lookup(name string) (Binding, bool) {
	for _, b := range bs.list[:bs.n] {
		if b.Name == name {
			return b, true
		}
	}
	return Binding{}, false
}

// Rune returns the character bound to name.
func (bs Bindings) Rune(name string) (rune, bool) {
	b, ok := bs.Lookup(name)
	if !ok {
		return 0, false
	}
	return b.Rune()
}

// Int returns the integer bound to name.
func (bs Bindings) Int(name string) (int, bool) {
	b, ok := bs.Lookup(name)
	if !ok {
		return 0, false
	}
	return b.Int()
}

// Text returns the text bound to name.
func (bs Bindings) Text(name string) (string, bool) {
	b, ok := bs.Lookup(name)
	if !ok {
		return "", false
	}
	return b.Text()
}

// Mouse returns the mouse event bound to name.
func (bs Bindings) Mouse(name string) (mouse.Event, bool) {
	b, ok := bs.Lookup(name)
	if !ok {
		return mouse.Event{}, false
	}
	return b.Mouse()
}

// Map returns the bindings as a fresh map, or nil if there are none.
func (bs Bindings) Map() map[string]any {
	if bs.n == 0 {
		return nil
	}
	m := make(map[string]any, bs.n)
	for _, b := range bs.list[:bs.n] {
		m[b.Name] = b.Value()
	}
	return m
}

func (bs Bindings) String() string {
	parts := make([]string, bs.n)
	for i, b := range bs.list[:bs.n] {
		parts[i] = b.String()
	}
	return fmt.Sprintf("{%s}", strings.Join(parts, ", "))
}

func (bs *Bindings) add(b Binding) {
	bs.list[bs.n] = b
	bs.n++
}

func (bs *Bindings) bindRune(s Slot[rune], r rune) {
	if s.kind == slotBind {
		bs.add(Binding{Name: s.name, Kind: ValueRune, r: r})
	}
}

func (bs *Bindings) bindInt(s Slot[int], n int) {
	if s.kind == slotBind {
		bs.add(Binding{Name: s.name, Kind: ValueInt, n: n})
	}
}

func (bs *Bindings) bindText(name, text string) {
	if isBindName(name) {
		bs.add(Binding{Name: name, Kind: ValueText, s: text})
	}
}

func (bs *Bindings) bindMouse(name string, m mouse.Event) {
	if isBindName(name) {
		bs.add(Binding{Name: name, Kind: ValueMouse, m: m})
	}
}

// isBindName reports whether name binds a value rather than ignoring it.
func isBindName(name string) bool {
	return name != "" && !strings.HasPrefix(name, "_")
}
