package regexfe

import (
	"fmt"

	"github.com/shadowCow/lalrgen/ccl"
	"github.com/shadowCow/lalrgen/diag"
)

// Parse compiles a regex source string into an AST. pos is the
// position of pattern's first rune in the surrounding grammar source,
// used to report accurate diagnostics into sink (gramfile supplies
// this; a caller with no surrounding file can pass a zero Position).
//
// Grammar:
//
//	expr       := alt ('|' alt)*
//	alt        := quantified*
//	quantified := atom ('*' | '+' | '?')?
//	atom       := '.' | '(' expr ')' | '[' class ']' | escape | literal
func Parse(pattern string, pos diag.Position, sink *diag.Sink) (Node, error) {
	p := &parser{runes: []rune(pattern), pos: pos, sink: sink}
	node, err := p.parseExpr()
	if err != nil {
		return nil, err
	}
	if !p.atEOF() {
		return nil, p.errorf("unexpected %q", p.peek())
	}
	return node, nil
}

type parser struct {
	runes []rune
	i     int
	pos   diag.Position // base position of runes[0]
	sink  *diag.Sink
}

func (p *parser) atEOF() bool { return p.i >= len(p.runes) }

func (p *parser) peek() rune {
	if p.atEOF() {
		return 0
	}
	return p.runes[p.i]
}

func (p *parser) advance() rune {
	r := p.peek()
	p.i++
	return r
}

func (p *parser) accept(r rune) bool {
	if p.peek() == r {
		p.i++
		return true
	}
	return false
}

func (p *parser) errorf(format string, args ...interface{}) error {
	at := p.pos
	at.Column += p.i
	msg := fmt.Sprintf(format, args...)
	if p.sink != nil {
		p.sink.ErrorAt(diag.Regex, at, "%s", msg)
	}
	return fmt.Errorf("regexfe: %s: %s", at, msg)
}

func (p *parser) parseExpr() (Node, error) {
	var alts []Node
	first, err := p.parseAlt()
	if err != nil {
		return nil, err
	}
	alts = append(alts, first)
	for p.accept('|') {
		next, err := p.parseAlt()
		if err != nil {
			return nil, err
		}
		alts = append(alts, next)
	}
	if len(alts) == 1 {
		return alts[0], nil
	}
	return Alternate(alts), nil
}

func (p *parser) parseAlt() (Node, error) {
	var seq []Node
	for !p.atEOF() && p.peek() != '|' && p.peek() != ')' {
		atom, err := p.parseQuantified()
		if err != nil {
			return nil, err
		}
		seq = append(seq, atom)
	}
	if len(seq) == 0 {
		// An empty alternative matches the empty string.
		return Concat(nil), nil
	}
	if len(seq) == 1 {
		return seq[0], nil
	}
	return Concat(seq), nil
}

func (p *parser) parseQuantified() (Node, error) {
	atom, err := p.parseAtom()
	if err != nil {
		return nil, err
	}
	switch p.peek() {
	case '*':
		p.advance()
		return Star{Inner: atom}, nil
	case '+':
		p.advance()
		return Plus{Inner: atom}, nil
	case '?':
		p.advance()
		return Optional{Inner: atom}, nil
	default:
		return atom, nil
	}
}

func (p *parser) parseAtom() (Node, error) {
	if p.atEOF() {
		return nil, p.errorf("unexpected end of pattern")
	}
	switch p.peek() {
	case '.':
		p.advance()
		return AnyChar{}, nil
	case '(':
		p.advance()
		inner, err := p.parseExpr()
		if err != nil {
			return nil, err
		}
		if !p.accept(')') {
			return nil, p.errorf("expected ')'")
		}
		return inner, nil
	case '[':
		p.advance()
		return p.parseClass()
	case '\\':
		p.advance()
		r, err := p.parseEscape()
		if err != nil {
			return nil, err
		}
		return Literal{R: r}, nil
	case '*', '+', '?', '|', ')':
		return nil, p.errorf("unexpected %q", p.peek())
	default:
		return Literal{R: p.advance()}, nil
	}
}

// parseClass parses the body of a `[...]` character class, already
// past the opening `[`.
func (p *parser) parseClass() (Node, error) {
	negate := p.accept('^')
	c := ccl.Empty()
	any := false
	for !p.atEOF() && p.peek() != ']' {
		lo, err := p.classChar()
		if err != nil {
			return nil, err
		}
		any = true
		if p.peek() == '-' && p.i+1 < len(p.runes) && p.runes[p.i+1] != ']' {
			p.advance() // '-'
			hi, err := p.classChar()
			if err != nil {
				return nil, err
			}
			if hi < lo {
				return nil, p.errorf("invalid range %c-%c", lo, hi)
			}
			c = c.AddRange(lo, hi)
		} else {
			c = c.Add(lo)
		}
	}
	if !any {
		return nil, p.errorf("empty character class")
	}
	if !p.accept(']') {
		return nil, p.errorf("expected ']'")
	}
	if negate {
		c = c.Negate(ccl.MaxCodePoint)
	}
	return Class{C: c}, nil
}

// classChar reads one literal or escaped character inside `[...]`.
func (p *parser) classChar() (rune, error) {
	if p.atEOF() {
		return 0, p.errorf("unterminated character class")
	}
	if p.accept('\\') {
		return p.parseEscape()
	}
	return p.advance(), nil
}

// parseEscape reads an escape sequence, already past the leading `\`:
// \n \r \t \b \f \v \a \\ \xHH \uHHHH \UHHHHHHHH \ooo.
func (p *parser) parseEscape() (rune, error) {
	if p.atEOF() {
		return 0, p.errorf("dangling escape")
	}
	ch := p.advance()
	switch ch {
	case 'n':
		return '\n', nil
	case 'r':
		return '\r', nil
	case 't':
		return '\t', nil
	case 'b':
		return '\b', nil
	case 'f':
		return '\f', nil
	case 'v':
		return '\v', nil
	case 'a':
		return '\a', nil
	case '\\':
		return '\\', nil
	case 'x':
		return p.parseHexEscape(2)
	case 'u':
		return p.parseHexEscape(4)
	case 'U':
		return p.parseHexEscape(8)
	default:
		if ch >= '0' && ch <= '7' {
			return p.parseOctalEscape(ch)
		}
		// Any other escaped character (including metacharacters like
		// \. \* \[ \]) stands for itself.
		return ch, nil
	}
}

func (p *parser) parseHexEscape(digits int) (rune, error) {
	var v rune
	for i := 0; i < digits; i++ {
		d, ok := hexDigit(p.peek())
		if !ok {
			return 0, p.errorf("expected %d hex digits", digits)
		}
		p.advance()
		v = v<<4 | rune(d)
	}
	return v, nil
}

// parseOctalEscape reads up to 2 more octal digits after first (\ooo
// is 1-3 octal digits total).
func (p *parser) parseOctalEscape(first rune) (rune, error) {
	v := first - '0'
	for i := 0; i < 2 && p.peek() >= '0' && p.peek() <= '7'; i++ {
		v = v<<3 | (p.advance() - '0')
	}
	return v, nil
}

func hexDigit(r rune) (int, bool) {
	switch {
	case r >= '0' && r <= '9':
		return int(r - '0'), true
	case r >= 'a' && r <= 'f':
		return int(r-'a') + 10, true
	case r >= 'A' && r <= 'F':
		return int(r-'A') + 10, true
	default:
		return 0, false
	}
}
