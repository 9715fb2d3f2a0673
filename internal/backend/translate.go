package backend

import (
	"strings"

	"github.com/gdamore/tcell/v2"

	"github.com/dshills/evmatch/internal/input/event"
	"github.com/dshills/evmatch/internal/input/key"
	"github.com/dshills/evmatch/internal/input/mouse"
)

// Translator converts tcell events into input events. It keeps the mouse
// button state and any bracketed paste in progress, so one Translator must
// see every event of a screen in order.
type Translator struct {
	tracker mouse.Tracker

	pasting bool
	paste   strings.Builder

	buf []mouse.Event
}

// Translate appends the events produced by ev to dst. Most tcell events
// yield one event. A mouse report can yield several, and keys inside a
// bracketed paste yield none until the paste ends.
func (t *Translator) Translate(dst []event.Event, ev tcell.Event) []event.Event {
	switch e := ev.(type) {
	case *tcell.EventKey:
		if t.pasting {
			t.appendPaste(e)
			return dst
		}
		if k, ok := convertKey(e); ok {
			return append(dst, k)
		}
		return dst

	case *tcell.EventMouse:
		x, y := e.Position()
		t.buf = t.tracker.Update(t.buf[:0], mouse.Snapshot{
			Column:    x,
			Row:       y,
			Held:      convertButtons(e.Buttons()),
			Wheel:     convertWheel(e.Buttons()),
			Modifiers: convertMod(e.Modifiers()),
		})
		for _, m := range t.buf {
			dst = append(dst, event.Mouse{Event: m})
		}
		return dst

	case *tcell.EventResize:
		w, h := e.Size()
		return append(dst, event.Resize{Columns: w, Rows: h})

	case *tcell.EventFocus:
		if e.Focused {
			return append(dst, event.FocusGained{})
		}
		return append(dst, event.FocusLost{})

	case *tcell.EventPaste:
		if e.Start() {
			t.pasting = true
			t.paste.Reset()
			return dst
		}
		if !t.pasting {
			return dst
		}
		t.pasting = false
		text := t.paste.String()
		t.paste.Reset()
		return append(dst, event.Paste{Text: text})

	case *tcell.EventInterrupt:
		if posted, ok := e.Data().(event.Event); ok {
			return append(dst, posted)
		}
		return dst

	default:
		return dst
	}
}

// Reset drops held mouse buttons and any partial paste.
func (t *Translator) Reset() {
	t.tracker.Reset()
	t.pasting = false
	t.paste.Reset()
}

// appendPaste adds the text of a key event received inside a paste.
func (t *Translator) appendPaste(e *tcell.EventKey) {
	switch e.Key() {
	case tcell.KeyRune:
		t.paste.WriteRune(e.Rune())
	case tcell.KeyEnter, tcell.KeyLF:
		t.paste.WriteByte('\n')
	case tcell.KeyTab:
		t.paste.WriteByte('\t')
	}
}

// namedKeys maps tcell keys to key codes. Control-code aliases such as
// KeyCtrlM are handled by convertKey.
var namedKeys = map[tcell.Key]key.Key{
	tcell.KeyEnter:      key.KeyEnter,
	tcell.KeyTab:        key.KeyTab,
	tcell.KeyBacktab:    key.KeyBackTab,
	tcell.KeyBackspace:  key.KeyBackspace,
	tcell.KeyBackspace2: key.KeyBackspace,
	tcell.KeyEsc:        key.KeyEsc,
	tcell.KeyDelete:     key.KeyDelete,
	tcell.KeyInsert:     key.KeyInsert,
	tcell.KeyUp:         key.KeyUp,
	tcell.KeyDown:       key.KeyDown,
	tcell.KeyLeft:       key.KeyLeft,
	tcell.KeyRight:      key.KeyRight,
	tcell.KeyHome:       key.KeyHome,
	tcell.KeyEnd:        key.KeyEnd,
	tcell.KeyPgUp:       key.KeyPageUp,
	tcell.KeyPgDn:       key.KeyPageDown,
	tcell.KeyCenter:     key.KeyKeypadBegin,
	tcell.KeyPrint:      key.KeyPrintScreen,
	tcell.KeyPause:      key.KeyPause,
	tcell.KeyMenu:       key.KeyMenu,
	tcell.KeyCapsLock:   key.KeyCapsLock,
	tcell.KeyScrollLock: key.KeyScrollLock,
	tcell.KeyNumLock:    key.KeyNumLock,
}

// convertKey converts a tcell key event to a key press. Control letters
// become the lower-case rune with CONTROL, function keys become F(n), and
// Ctrl-Space becomes the Null key.
func convertKey(e *tcell.EventKey) (event.Key, bool) {
	k := e.Key()
	mods := convertMod(e.Modifiers())

	if k == tcell.KeyRune {
		return event.KeyPress(e.Rune(), mods), true
	}
	if named, ok := namedKeys[k]; ok {
		return event.KeyCodePress(named, mods), true
	}
	if k >= tcell.KeyF1 && k <= tcell.KeyF64 {
		return event.FunctionPress(uint8(k-tcell.KeyF1+1), mods), true
	}
	if k == tcell.KeyNUL || k == tcell.KeyCtrlSpace {
		return event.KeyCodePress(key.KeyNull, mods.Without(key.ModCtrl)), true
	}
	if k >= tcell.KeyCtrlA && k <= tcell.KeyCtrlZ {
		return event.KeyPress('a'+rune(k-tcell.KeyCtrlA), mods.With(key.ModCtrl)), true
	}
	// Raw ASCII control codes: 1..26 are letters, 28..31 are \ ] ^ _.
	if k > tcell.KeyNUL && k < tcell.KeyESC {
		return event.KeyPress('a'+rune(k-tcell.KeySOH), mods.With(key.ModCtrl)), true
	}
	if k > tcell.KeyESC && k <= tcell.KeyUS {
		return event.KeyPress('\\'+rune(k-tcell.KeyFS), mods.With(key.ModCtrl)), true
	}
	return event.Key{}, false
}

// convertMod converts tcell modifier mask to key modifiers.
func convertMod(m tcell.ModMask) key.Modifier {
	var result key.Modifier
	if m&tcell.ModShift != 0 {
		result |= key.ModShift
	}
	if m&tcell.ModCtrl != 0 {
		result |= key.ModCtrl
	}
	if m&tcell.ModAlt != 0 {
		result |= key.ModAlt
	}
	if m&tcell.ModMeta != 0 {
		result |= key.ModMeta
	}
	if m&tcell.ModHyper != 0 {
		result |= key.ModHyper
	}
	return result
}

// convertButtons converts the held buttons of a tcell mask.
func convertButtons(b tcell.ButtonMask) mouse.Held {
	var held mouse.Held
	if b&tcell.ButtonPrimary != 0 {
		held |= mouse.HeldLeft
	}
	if b&tcell.ButtonSecondary != 0 {
		held |= mouse.HeldRight
	}
	if b&tcell.ButtonMiddle != 0 {
		held |= mouse.HeldMiddle
	}
	return held
}

// convertWheel returns the scroll kind of a tcell mask, or KindNone.
func convertWheel(b tcell.ButtonMask) mouse.Kind {
	switch {
	case b&tcell.WheelUp != 0:
		return mouse.ScrollUp
	case b&tcell.WheelDown != 0:
		return mouse.ScrollDown
	case b&tcell.WheelLeft != 0:
		return mouse.ScrollLeft
	case b&tcell.WheelRight != 0:
		return mouse.ScrollRight
	default:
		return mouse.KindNone
	}
}
