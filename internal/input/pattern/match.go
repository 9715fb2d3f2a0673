package pattern

import (
	"github.com/dshills/evmatch/internal/input/event"
	"github.com/dshills/evmatch/internal/input/key"
	"github.com/dshills/evmatch/internal/input/mouse"
)

// Match tests ev against p. On success it returns the values bound by p.
// Match never modifies ev, never allocates and never fails: an event of a
// class p does not describe simply does not match.
func (p Pattern) Match(ev event.Event) (Bindings, bool) {
	var b Bindings

	switch p.shape {
	case ShapeKey:
		e, ok := ev.(event.Key)
		if !ok || e.Key != key.KeyRune || !p.keyCommon(e.Event) || !p.char.accepts(e.Rune) {
			return Bindings{}, false
		}
		b.bindRune(p.char, e.Rune)

	case ShapeKeyCode:
		e, ok := ev.(event.Key)
		if !ok || e.Key != p.code || !p.keyCommon(e.Event) {
			return Bindings{}, false
		}
		if p.code == key.KeyFunction && int(e.Fn) != p.fn {
			return Bindings{}, false
		}

	case ShapeMouseButton:
		e, ok := ev.(event.Mouse)
		if !ok || e.Kind != p.kind || e.Button != p.button || !p.mouseXY(e.Event, &b) {
			return Bindings{}, false
		}

	case ShapeMouseAny:
		e, ok := ev.(event.Mouse)
		if !ok || !p.mods.Accepts(e.Modifiers) {
			return Bindings{}, false
		}
		b.bindMouse(p.name, e.Event)

	case ShapeMouseMoved:
		e, ok := ev.(event.Mouse)
		if !ok || e.Kind != mouse.Moved || !p.mouseXY(e.Event, &b) {
			return Bindings{}, false
		}

	case ShapeScroll:
		e, ok := ev.(event.Mouse)
		if !ok || e.Kind != p.kind || !p.mouseXY(e.Event, &b) {
			return Bindings{}, false
		}

	case ShapeResized:
		e, ok := ev.(event.Resize)
		if !ok || !p.x.accepts(e.Columns) || !p.y.accepts(e.Rows) {
			return Bindings{}, false
		}
		b.bindInt(p.x, e.Columns)
		b.bindInt(p.y, e.Rows)

	case ShapeFocusGained:
		if _, ok := ev.(event.FocusGained); !ok {
			return Bindings{}, false
		}

	case ShapeFocusLost:
		if _, ok := ev.(event.FocusLost); !ok {
			return Bindings{}, false
		}

	case ShapePaste:
		e, ok := ev.(event.Paste)
		if !ok {
			return Bindings{}, false
		}
		b.bindText(p.name, e.Text)

	default:
		return Bindings{}, false
	}

	return b, true
}

// Matches reports whether ev matches p, discarding bindings.
func (p Pattern) Matches(ev event.Event) bool {
	_, ok := p.Match(ev)
	return ok
}

func (p Pattern) keyCommon(e key.Event) bool {
	return e.Phase == p.phase && p.mods.Accepts(e.Modifiers)
}

// mouseXY checks modifiers and coordinate slots, binding on success.
func (p Pattern) mouseXY(e mouse.Event, b *Bindings) bool {
	if !p.mods.Accepts(e.Modifiers) || !p.x.accepts(e.Column) || !p.y.accepts(e.Row) {
		return false
	}
	b.bindInt(p.x, e.Column)
	b.bindInt(p.y, e.Row)
	return true
}
