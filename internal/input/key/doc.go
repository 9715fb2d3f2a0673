// Package key provides the keyboard half of the raw input vocabulary.
//
// This package defines the fundamental types for representing keyboard input:
//
//   - Modifier: a flag set over SHIFT, CONTROL, ALT, SUPER, HYPER and META
//   - Requirement: how a pattern constrains a Modifier (exactly a set, or any)
//   - Key: a named non-character key, a function key, or a character
//   - Phase: press, release or repeat
//   - Event: one key event as reported by the terminal backend
//
// # Modifier vocabulary
//
// The vocabulary is closed. Besides the primitive flags there are three named
// unions that applications use most often:
//
//	ModCtrlAlt   == ModCtrl | ModAlt
//	ModCtrlShift == ModCtrl | ModShift
//	ModAltShift  == ModAlt | ModShift
//
// Comparison is always exact. A Requirement built with Exactly(ModCtrl) does
// not accept ModCtrlShift; only AnyModifiers ignores the flags. The zero
// Requirement is Exactly(ModNone).
package key
