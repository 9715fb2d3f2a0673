package backend

import (
	"testing"

	"github.com/gdamore/tcell/v2"
	"github.com/google/go-cmp/cmp"

	"github.com/dshills/evmatch/internal/input/event"
	"github.com/dshills/evmatch/internal/input/key"
	"github.com/dshills/evmatch/internal/input/mouse"
)

func translate(t *testing.T, tr *Translator, evs ...tcell.Event) []event.Event {
	t.Helper()
	var out []event.Event
	for _, ev := range evs {
		out = tr.Translate(out, ev)
	}
	return out
}

func TestTranslateKeys(t *testing.T) {
	tests := []struct {
		name string
		in   *tcell.EventKey
		want event.Event
	}{
		{"rune", tcell.NewEventKey(tcell.KeyRune, 'a', tcell.ModNone), event.KeyPress('a', key.ModNone)},
		{"upper rune", tcell.NewEventKey(tcell.KeyRune, 'A', tcell.ModNone), event.KeyPress('A', key.ModNone)},
		{"alt rune", tcell.NewEventKey(tcell.KeyRune, 'x', tcell.ModAlt), event.KeyPress('x', key.ModAlt)},
		{"ctrl letter", tcell.NewEventKey(tcell.KeyRune, 'c', tcell.ModCtrl), event.KeyPress('c', key.ModCtrl)},
		{"ctrl key code", tcell.NewEventKey(tcell.KeyCtrlQ, 0, tcell.ModCtrl), event.KeyPress('q', key.ModCtrl)},
		{"raw control byte", tcell.NewEventKey(tcell.KeyRune, 0x17, tcell.ModNone), event.KeyPress('w', key.ModCtrl)},
		{"enter", tcell.NewEventKey(tcell.KeyEnter, 0, tcell.ModNone), event.KeyCodePress(key.KeyEnter, key.ModNone)},
		{"tab", tcell.NewEventKey(tcell.KeyTab, 0, tcell.ModNone), event.KeyCodePress(key.KeyTab, key.ModNone)},
		{"backtab", tcell.NewEventKey(tcell.KeyBacktab, 0, tcell.ModShift), event.KeyCodePress(key.KeyBackTab, key.ModShift)},
		{"escape", tcell.NewEventKey(tcell.KeyEscape, 0, tcell.ModNone), event.KeyCodePress(key.KeyEsc, key.ModNone)},
		{"backspace", tcell.NewEventKey(tcell.KeyBackspace2, 0, tcell.ModNone), event.KeyCodePress(key.KeyBackspace, key.ModNone)},
		{"shift up", tcell.NewEventKey(tcell.KeyUp, 0, tcell.ModShift), event.KeyCodePress(key.KeyUp, key.ModShift)},
		{"ctrl alt page down", tcell.NewEventKey(tcell.KeyPgDn, 0, tcell.ModCtrl|tcell.ModAlt), event.KeyCodePress(key.KeyPageDown, key.ModCtrlAlt)},
		{"f5", tcell.NewEventKey(tcell.KeyF5, 0, tcell.ModNone), event.FunctionPress(5, key.ModNone)},
		{"f24", tcell.NewEventKey(tcell.KeyF24, 0, tcell.ModShift), event.FunctionPress(24, key.ModShift)},
		{"insert", tcell.NewEventKey(tcell.KeyInsert, 0, tcell.ModNone), event.KeyCodePress(key.KeyInsert, key.ModNone)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var tr Translator
			got := translate(t, &tr, tt.in)
			if diff := cmp.Diff([]event.Event{tt.want}, got); diff != "" {
				t.Errorf("Translate mismatch (-want +got):\n%s", diff)
			}
		})
	}
}

func TestTranslateMouse(t *testing.T) {
	var tr Translator
	got := translate(t, &tr,
		tcell.NewEventMouse(3, 4, tcell.ButtonPrimary, tcell.ModNone),
		tcell.NewEventMouse(5, 4, tcell.ButtonPrimary, tcell.ModNone),
		tcell.NewEventMouse(6, 4, tcell.ButtonNone, tcell.ModNone),
		tcell.NewEventMouse(7, 4, tcell.ButtonNone, tcell.ModNone),
		tcell.NewEventMouse(7, 4, tcell.ButtonSecondary, tcell.ModShift),
		tcell.NewEventMouse(7, 4, tcell.WheelDown, tcell.ModCtrl),
	)

	want := []event.Event{
		event.MouseButton(mouse.Down, mouse.ButtonLeft, 3, 4, key.ModNone),
		event.MouseButton(mouse.Drag, mouse.ButtonLeft, 5, 4, key.ModNone),
		event.MouseButton(mouse.Up, mouse.ButtonLeft, 6, 4, key.ModNone),
		event.MouseAt(mouse.Moved, 7, 4, key.ModNone),
		event.MouseButton(mouse.Down, mouse.ButtonRight, 7, 4, key.ModShift),
		event.MouseAt(mouse.ScrollDown, 7, 4, key.ModCtrl),
		event.MouseButton(mouse.Up, mouse.ButtonRight, 7, 4, key.ModCtrl),
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("Translate mismatch (-want +got):\n%s", diff)
	}
}

func TestTranslateWheel(t *testing.T) {
	tests := []struct {
		mask tcell.ButtonMask
		want mouse.Kind
	}{
		{tcell.WheelUp, mouse.ScrollUp},
		{tcell.WheelDown, mouse.ScrollDown},
		{tcell.WheelLeft, mouse.ScrollLeft},
		{tcell.WheelRight, mouse.ScrollRight},
		{tcell.ButtonPrimary, mouse.KindNone},
	}
	for _, tt := range tests {
		if got := convertWheel(tt.mask); got != tt.want {
			t.Errorf("convertWheel(%v) = %v, want %v", tt.mask, got, tt.want)
		}
	}
}

func TestTranslateTerminalEvents(t *testing.T) {
	var tr Translator
	got := translate(t, &tr,
		tcell.NewEventResize(120, 40),
		tcell.NewEventFocus(true),
		tcell.NewEventFocus(false),
		tcell.NewEventInterrupt(event.Paste{Text: "posted"}),
		tcell.NewEventInterrupt("not an event"),
	)

	want := []event.Event{
		event.Resize{Columns: 120, Rows: 40},
		event.FocusGained{},
		event.FocusLost{},
		event.Paste{Text: "posted"},
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("Translate mismatch (-want +got):\n%s", diff)
	}
}

func TestTranslatePaste(t *testing.T) {
	var tr Translator
	got := translate(t, &tr,
		tcell.NewEventPaste(true),
		tcell.NewEventKey(tcell.KeyRune, 'h', tcell.ModNone),
		tcell.NewEventKey(tcell.KeyRune, 'i', tcell.ModNone),
		tcell.NewEventKey(tcell.KeyEnter, 0, tcell.ModNone),
		tcell.NewEventKey(tcell.KeyTab, 0, tcell.ModNone),
		tcell.NewEventKey(tcell.KeyRune, 'é', tcell.ModNone),
		tcell.NewEventPaste(false),
		tcell.NewEventKey(tcell.KeyRune, 'x', tcell.ModNone),
	)

	want := []event.Event{
		event.Paste{Text: "hi\n\té"},
		event.KeyPress('x', key.ModNone),
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("Translate mismatch (-want +got):\n%s", diff)
	}
}

func TestTranslateStrayPasteEnd(t *testing.T) {
	var tr Translator
	if got := translate(t, &tr, tcell.NewEventPaste(false)); len(got) != 0 {
		t.Errorf("stray paste end produced %v", got)
	}
}

func TestTranslatorReset(t *testing.T) {
	var tr Translator
	translate(t, &tr,
		tcell.NewEventPaste(true),
		tcell.NewEventKey(tcell.KeyRune, 'a', tcell.ModNone),
		tcell.NewEventMouse(1, 1, tcell.ButtonPrimary, tcell.ModNone),
	)
	tr.Reset()

	got := translate(t, &tr,
		tcell.NewEventKey(tcell.KeyRune, 'b', tcell.ModNone),
		tcell.NewEventMouse(2, 2, tcell.ButtonNone, tcell.ModNone),
	)
	want := []event.Event{
		event.KeyPress('b', key.ModNone),
		event.MouseAt(mouse.Moved, 2, 2, key.ModNone),
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("after Reset (-want +got):\n%s", diff)
	}
}

func TestConvertMod(t *testing.T) {
	tests := []struct {
		in   tcell.ModMask
		want key.Modifier
	}{
		{tcell.ModNone, key.ModNone},
		{tcell.ModShift, key.ModShift},
		{tcell.ModCtrl, key.ModCtrl},
		{tcell.ModAlt, key.ModAlt},
		{tcell.ModMeta, key.ModMeta},
		{tcell.ModHyper, key.ModHyper},
		{tcell.ModCtrl | tcell.ModShift, key.ModCtrlShift},
	}
	for _, tt := range tests {
		if got := convertMod(tt.in); got != tt.want {
			t.Errorf("convertMod(%v) = %v, want %v", tt.in, got, tt.want)
		}
	}
}
