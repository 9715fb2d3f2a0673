package pattern

import (
	"errors"
	"fmt"
)

// Definition errors. A *DefinitionError wraps exactly one of these.
var (
	ErrSyntax          = errors.New("syntax error")
	ErrUnknownModifier = errors.New("unknown modifier")
	ErrUnknownKeyCode  = errors.New("unknown key code")
	ErrUnknownButton   = errors.New("unknown mouse button")
	ErrBindingArity    = errors.New("wrong binding arity")
	ErrInvalidBinding  = errors.New("invalid binding")
	ErrUnsupported     = errors.New("unsupported pattern")
)

// DefinitionError reports a malformed pattern. It is only ever returned while
// a pattern is parsed, validated or registered, never by Match.
type DefinitionError struct {
	// Pattern is the source text, or the rendered form for built patterns.
	Pattern string

	// Offset is the byte offset of the offending token, or -1.
	Offset int

	// Msg describes the problem.
	Msg string

	// Err is one of the Err* sentinels.
	Err error
}

func (e *DefinitionError) Error() string {
	if e.Offset >= 0 {
		return fmt.Sprintf("pattern %q at offset %d: %v: %s", e.Pattern, e.Offset, e.Err, e.Msg)
	}
	return fmt.Sprintf("pattern %q: %v: %s", e.Pattern, e.Err, e.Msg)
}

func (e *DefinitionError) Unwrap() error {
	return e.Err
}
