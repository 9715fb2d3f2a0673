package pattern

import (
	"fmt"
	"strconv"
	"strings"
	"unicode/utf8"

	"github.com/dshills/evmatch/internal/input/key"
	"github.com/dshills/evmatch/internal/input/mouse"
)

type tokenKind uint8

const (
	tokEOF tokenKind = iota
	tokIdent
	tokInt
	tokChar
	tokPunct
)

type token struct {
	kind tokenKind
	text string
	off  int
}

func (t token) describe() string {
	switch t.kind {
	case tokEOF:
		return "end of pattern"
	default:
		return strconv.Quote(t.text)
	}
}

// lex splits src into tokens. Character literals keep their quotes.
func lex(src string) ([]token, *DefinitionError) {
	var toks []token
	i := 0
	for i < len(src) {
		c := src[i]
		switch {
		case c == ' ' || c == '\t' || c == '\n' || c == '\r':
			i++

		case c == '_' || isLetter(c):
			start := i
			for i < len(src) && (src[i] == '_' || isLetter(src[i]) || isDigit(src[i])) {
				i++
			}
			toks = append(toks, token{tokIdent, src[start:i], start})

		case isDigit(c):
			start := i
			for i < len(src) && isDigit(src[i]) {
				i++
			}
			toks = append(toks, token{tokInt, src[start:i], start})

		case c == '\'':
			start := i
			i++
			for i < len(src) && src[i] != '\'' {
				if src[i] == '\\' {
					i++
				}
				i++
			}
			if i >= len(src) {
				return nil, &DefinitionError{Pattern: src, Offset: start, Msg: "unterminated character literal", Err: ErrSyntax}
			}
			i++
			toks = append(toks, token{tokChar, src[start:i], start})

		case strings.IndexByte("-+,()", c) >= 0:
			toks = append(toks, token{tokPunct, src[i : i+1], i})
			i++

		default:
			r, _ := utf8.DecodeRuneInString(src[i:])
			return nil, &DefinitionError{Pattern: src, Offset: i, Msg: fmt.Sprintf("unexpected character %q", r), Err: ErrSyntax}
		}
	}
	toks = append(toks, token{tokEOF, "", len(src)})
	return toks, nil
}

func isLetter(c byte) bool { return (c >= 'a' && c <= 'z') || (c >= 'A' && c <= 'Z') }
func isDigit(c byte) bool  { return c >= '0' && c <= '9' }

type parser struct {
	src  string
	toks []token
	pos  int
}

// Parse compiles the textual form of a pattern:
//
//	key (press|release) [MOD-] ('c' | name)
//	keycode (press|release) [MOD-] (KeyName | F(n))
//	mouse (down|up|drag) [MOD-] Button for col, row
//	mouse any [MOD] for name
//	mouse moved [for col, row]
//	scroll [MOD] (up|down|left|right) [for col, row]
//	resized [for cols, rows]
//	focus_gained
//	focus_lost
//	paste name
//
// MOD is a vocabulary name such as CONTROL or CONTROL_SHIFT, several names
// joined with "+", or ANY. Omitting MOD means exactly NONE, except for
// "mouse any" where it means ANY. Binding slots accept identifiers, "_"
// prefixed wildcards and, for coordinates and dimensions, integer literals.
// ANY and modifier names are reserved and cannot be binding names, so
// "key press ANY" is an error rather than a binding named ANY.
//
// Every error is a *DefinitionError.
func Parse(src string) (Pattern, error) {
	toks, lerr := lex(src)
	if lerr != nil {
		return Pattern{}, lerr
	}
	p := &parser{src: src, toks: toks}

	pat, err := p.pattern()
	if err != nil {
		return Pattern{}, err
	}
	if t := p.peek(); t.kind != tokEOF {
		return Pattern{}, p.errorf(t, ErrSyntax, "unexpected %s after pattern", t.describe())
	}
	if err := pat.Validate(); err != nil {
		if de, ok := err.(*DefinitionError); ok {
			de.Pattern = src
		}
		return Pattern{}, err
	}
	return pat, nil
}

// MustParse is like Parse but panics on error.
// Use only for known-valid patterns in initialization code.
func MustParse(src string) Pattern {
	p, err := Parse(src)
	if err != nil {
		panic(err)
	}
	return p
}

func (p *parser) peek() token { return p.toks[p.pos] }

func (p *parser) peekAt(n int) token {
	if p.pos+n >= len(p.toks) {
		return p.toks[len(p.toks)-1]
	}
	return p.toks[p.pos+n]
}

func (p *parser) next() token {
	t := p.toks[p.pos]
	if t.kind != tokEOF {
		p.pos++
	}
	return t
}

func (p *parser) errorf(t token, sentinel error, format string, args ...any) *DefinitionError {
	return &DefinitionError{
		Pattern: p.src,
		Offset:  t.off,
		Msg:     fmt.Sprintf(format, args...),
		Err:     sentinel,
	}
}

func (p *parser) isWord(t token, word string) bool {
	return t.kind == tokIdent && t.text == word
}

func (p *parser) expectWord(word string) error {
	t := p.next()
	if !p.isWord(t, word) {
		return p.errorf(t, ErrSyntax, "expected %q, found %s", word, t.describe())
	}
	return nil
}

func (p *parser) expectPunct(s string) error {
	t := p.next()
	if t.kind != tokPunct || t.text != s {
		return p.errorf(t, ErrSyntax, "expected %q, found %s", s, t.describe())
	}
	return nil
}

func (p *parser) pattern() (Pattern, error) {
	t := p.next()
	if t.kind != tokIdent {
		return Pattern{}, p.errorf(t, ErrSyntax, "expected pattern keyword, found %s", t.describe())
	}

	switch t.text {
	case "key":
		return p.keyPattern()
	case "keycode":
		return p.keyCodePattern()
	case "mouse":
		return p.mousePattern()
	case "scroll":
		return p.scrollPattern()
	case "resized":
		x, y, has, err := p.optionalXY()
		if err != nil {
			return Pattern{}, err
		}
		if !has {
			return Resized(), nil
		}
		return ResizedTo(x, y), nil
	case "focus_gained":
		return FocusGained(), nil
	case "focus_lost":
		return FocusLost(), nil
	case "paste":
		return p.pastePattern()
	default:
		return Pattern{}, p.errorf(t, ErrUnsupported, "unknown pattern keyword %q", t.text)
	}
}

func (p *parser) phase() (key.Phase, error) {
	t := p.next()
	switch {
	case p.isWord(t, "press"):
		return key.Press, nil
	case p.isWord(t, "release"):
		return key.Release, nil
	case p.isWord(t, "repeat"):
		return 0, p.errorf(t, ErrUnsupported, "repeat is not a pattern phase")
	default:
		return 0, p.errorf(t, ErrSyntax, "expected press or release, found %s", t.describe())
	}
}

// hasModPrefix reports whether the next tokens form "MOD-" or "MOD+...".
func (p *parser) hasModPrefix() bool {
	t, n := p.peek(), p.peekAt(1)
	return t.kind == tokIdent && n.kind == tokPunct && (n.text == "-" || n.text == "+")
}

// modifiers parses ANY or NAME ("+" NAME)*.
func (p *parser) modifiers() (key.Requirement, error) {
	t := p.next()
	if t.kind != tokIdent {
		return key.Requirement{}, p.errorf(t, ErrSyntax, "expected modifier, found %s", t.describe())
	}
	if strings.EqualFold(t.text, "ANY") {
		if n := p.peek(); n.kind == tokPunct && n.text == "+" {
			return key.Requirement{}, p.errorf(n, ErrUnknownModifier, "ANY cannot be combined")
		}
		return key.AnyModifiers, nil
	}

	var set key.Modifier
	for {
		m, ok := key.ModifierFromName(t.text)
		if !ok {
			return key.Requirement{}, p.errorf(t, ErrUnknownModifier, "%q", t.text)
		}
		set |= m

		n := p.peek()
		if n.kind != tokPunct || n.text != "+" {
			return key.Exactly(set), nil
		}
		p.next()
		t = p.next()
		if t.kind != tokIdent {
			return key.Requirement{}, p.errorf(t, ErrSyntax, "expected modifier after \"+\", found %s", t.describe())
		}
	}
}

// modPrefix parses an optional "MOD-" prefix.
func (p *parser) modPrefix() (key.Requirement, error) {
	if !p.hasModPrefix() {
		return key.Exactly(key.ModNone), nil
	}
	req, err := p.modifiers()
	if err != nil {
		return key.Requirement{}, err
	}
	if err := p.expectPunct("-"); err != nil {
		return key.Requirement{}, err
	}
	return req, nil
}

func (p *parser) keyPattern() (Pattern, error) {
	phase, err := p.phase()
	if err != nil {
		return Pattern{}, err
	}
	mods, err := p.modPrefix()
	if err != nil {
		return Pattern{}, err
	}

	t := p.next()
	switch t.kind {
	case tokChar:
		s, err := strconv.Unquote(t.text)
		if err != nil || utf8.RuneCountInString(s) != 1 {
			return Pattern{}, p.errorf(t, ErrSyntax, "invalid character literal %s", t.text)
		}
		r, _ := utf8.DecodeRuneInString(s)
		return KeyChar(phase, mods, Lit(r)), nil
	case tokIdent:
		if isModifierWord(t.text) {
			return Pattern{}, p.errorf(t, ErrInvalidBinding, "%q is a modifier name; qualify the key as %s-'c'", t.text, t.text)
		}
		return KeyChar(phase, mods, Bind[rune](t.text)), nil
	default:
		return Pattern{}, p.errorf(t, ErrSyntax, "expected character literal or name, found %s", t.describe())
	}
}

func (p *parser) keyCodePattern() (Pattern, error) {
	phase, err := p.phase()
	if err != nil {
		return Pattern{}, err
	}
	mods, err := p.modPrefix()
	if err != nil {
		return Pattern{}, err
	}

	t := p.next()
	if t.kind != tokIdent {
		return Pattern{}, p.errorf(t, ErrSyntax, "expected key code, found %s", t.describe())
	}

	if t.text == "F" {
		if err := p.expectPunct("("); err != nil {
			return Pattern{}, err
		}
		nt := p.next()
		if nt.kind != tokInt {
			return Pattern{}, p.errorf(nt, ErrSyntax, "expected function key number, found %s", nt.describe())
		}
		n, err := strconv.Atoi(nt.text)
		if err != nil || n < 1 || n > key.MaxFunctionKey {
			return Pattern{}, p.errorf(nt, ErrUnknownKeyCode, "function key F(%s) out of range 1..%d", nt.text, key.MaxFunctionKey)
		}
		if err := p.expectPunct(")"); err != nil {
			return Pattern{}, err
		}
		return FunctionKey(phase, mods, n), nil
	}

	// F5 is accepted as a spelling of F(5).
	if len(t.text) > 1 && (t.text[0] == 'F' || t.text[0] == 'f') {
		if n, err := strconv.Atoi(t.text[1:]); err == nil {
			if n < 1 || n > key.MaxFunctionKey {
				return Pattern{}, p.errorf(t, ErrUnknownKeyCode, "function key %s out of range", t.text)
			}
			return FunctionKey(phase, mods, n), nil
		}
	}

	k, ok := key.KeyFromName(t.text)
	if !ok {
		return Pattern{}, p.errorf(t, ErrUnknownKeyCode, "%q", t.text)
	}
	return KeyCode(phase, mods, k), nil
}

func (p *parser) mousePattern() (Pattern, error) {
	t := p.next()
	switch {
	case p.isWord(t, "down"), p.isWord(t, "up"), p.isWord(t, "drag"):
		kind := map[string]mouse.Kind{"down": mouse.Down, "up": mouse.Up, "drag": mouse.Drag}[t.text]
		mods, err := p.modPrefix()
		if err != nil {
			return Pattern{}, err
		}
		bt := p.next()
		if bt.kind != tokIdent {
			return Pattern{}, p.errorf(bt, ErrSyntax, "expected mouse button, found %s", bt.describe())
		}
		button, ok := mouse.ButtonFromName(bt.text)
		if !ok {
			return Pattern{}, p.errorf(bt, ErrUnknownButton, "%q", bt.text)
		}
		x, y, has, err := p.optionalXY()
		if err != nil {
			return Pattern{}, err
		}
		if !has {
			return Pattern{}, p.errorf(p.peek(), ErrBindingArity, "mouse %s requires \"for column, row\"", t.text)
		}
		return MouseButton(kind, mods, button, x, y), nil

	case p.isWord(t, "any"):
		mods := key.AnyModifiers
		if !p.isWord(p.peek(), "for") {
			var err error
			if mods, err = p.modifiers(); err != nil {
				return Pattern{}, err
			}
		}
		if err := p.expectWord("for"); err != nil {
			return Pattern{}, err
		}
		names, err := p.bindList()
		if err != nil {
			return Pattern{}, err
		}
		if len(names) != 1 || names[0].kind != tokIdent {
			return Pattern{}, p.errorf(names[0], ErrBindingArity, "mouse any binds exactly one name")
		}
		return MouseAny(mods, names[0].text), nil

	case p.isWord(t, "moved"):
		x, y, has, err := p.optionalXY()
		if err != nil {
			return Pattern{}, err
		}
		if !has {
			return MouseMoved(), nil
		}
		return MouseMovedAt(x, y), nil

	default:
		return Pattern{}, p.errorf(t, ErrSyntax, "expected down, up, drag, any or moved, found %s", t.describe())
	}
}

var scrollKinds = map[string]mouse.Kind{
	"up":    mouse.ScrollUp,
	"down":  mouse.ScrollDown,
	"left":  mouse.ScrollLeft,
	"right": mouse.ScrollRight,
}

func (p *parser) scrollPattern() (Pattern, error) {
	mods := key.Exactly(key.ModNone)
	if t := p.peek(); t.kind == tokIdent {
		if _, isDir := scrollKinds[t.text]; !isDir {
			var err error
			if mods, err = p.modifiers(); err != nil {
				return Pattern{}, err
			}
		}
	}

	t := p.next()
	kind, ok := scrollKinds[t.text]
	if t.kind != tokIdent || !ok {
		return Pattern{}, p.errorf(t, ErrSyntax, "expected up, down, left or right, found %s", t.describe())
	}

	x, y, has, err := p.optionalXY()
	if err != nil {
		return Pattern{}, err
	}
	if !has {
		return Scroll(kind, mods), nil
	}
	return ScrollAt(kind, mods, x, y), nil
}

func (p *parser) pastePattern() (Pattern, error) {
	names, err := p.bindList()
	if err != nil {
		return Pattern{}, err
	}
	if len(names) != 1 || names[0].kind != tokIdent {
		return Pattern{}, p.errorf(names[0], ErrBindingArity, "paste binds exactly one name")
	}
	return Paste(names[0].text), nil
}

// optionalXY parses an optional "for a, b" clause.
func (p *parser) optionalXY() (x, y Slot[int], has bool, err error) {
	if !p.isWord(p.peek(), "for") {
		return x, y, false, nil
	}
	p.next()

	names, err := p.bindList()
	if err != nil {
		return x, y, false, err
	}
	if len(names) != 2 {
		return x, y, false, p.errorf(names[0], ErrBindingArity, "expected two bindings, found %d", len(names))
	}
	if x, err = p.intSlot(names[0]); err != nil {
		return x, y, false, err
	}
	if y, err = p.intSlot(names[1]); err != nil {
		return x, y, false, err
	}
	return x, y, true, nil
}

// bindList parses a comma-separated list of names or integers.
func (p *parser) bindList() ([]token, error) {
	var out []token
	for {
		t := p.next()
		if t.kind != tokIdent && t.kind != tokInt {
			return nil, p.errorf(t, ErrBindingArity, "expected binding name, found %s", t.describe())
		}
		out = append(out, t)

		n := p.peek()
		if n.kind != tokPunct || n.text != "," {
			return out, nil
		}
		p.next()
	}
}

func (p *parser) intSlot(t token) (Slot[int], error) {
	if t.kind == tokIdent {
		return Bind[int](t.text), nil
	}
	n, err := strconv.Atoi(t.text)
	if err != nil {
		return Slot[int]{}, p.errorf(t, ErrSyntax, "invalid integer %s", t.text)
	}
	return Lit(n), nil
}
