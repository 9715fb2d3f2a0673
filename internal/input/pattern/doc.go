// Package pattern matches terminal input events against declarative
// patterns.
//
// A Pattern describes one event shape (key, keycode, mouse button, mouse
// any, mouse moved, scroll, resized, focus, paste) together with a modifier
// requirement and payload slots. Each slot either tests for a literal value
// or binds the event's value to a name. Patterns are built with the
// constructor functions or parsed from text:
//
//	key press CONTROL-'a'
//	keycode press F(5)
//	mouse down Left for column, row
//	scroll ANY up
//	resized for cols, rows
//	paste text
//
// A pattern without a modifier qualifier requires exactly no modifiers, so
// "key press c" does not match Control-c. ANY ignores modifiers.
//
// Matching is a pure function of the pattern and the event. A List evaluates
// patterns in order and returns the first match; an event no pattern
// describes yields a false result, not an error. Malformed patterns are
// reported as *DefinitionError when parsed or validated.
package pattern
