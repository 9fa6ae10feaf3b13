package calc

import (
	"fmt"
	"math"
	"strconv"
	"strings"
)

// Sanitize drops every character outside digits, + - * / ( ) . and
// whitespace.
func Sanitize(input string) string {
	var b strings.Builder
	b.Grow(len(input))
	for _, r := range input {
		switch {
		case r >= '0' && r <= '9':
		case strings.ContainsRune("+-*/().", r):
		case r == ' ', r == '\t', r == '\n', r == '\r':
		default:
			continue
		}
		b.WriteRune(r)
	}
	return b.String()
}

// Evaluate sanitizes input and computes it with the usual precedence:
// * and / bind tighter than + and -, equal precedence associates left,
// parentheses group, and unary + and - are allowed.
func Evaluate(input string) (float64, error) {
	src := Sanitize(input)
	if strings.TrimSpace(src) == "" {
		return 0, ErrEmptyExpression
	}

	p := &parser{src: src}
	p.next()
	v, err := p.expr()
	if err != nil {
		return 0, err
	}
	if p.tok != tokEOF {
		return 0, p.unexpected()
	}
	if math.IsInf(v, 0) || math.IsNaN(v) {
		return 0, fmt.Errorf("%w: result is not finite", ErrInvalidExpression)
	}
	return v, nil
}

// Format renders a result in its shortest decimal form: 14, 3.5, -0.25.
func Format(v float64) string {
	if v == 0 {
		v = 0 // normalizes -0
	}
	return strconv.FormatFloat(v, 'f', -1, 64)
}

type tokenKind uint8

const (
	tokEOF tokenKind = iota
	tokNum
	tokOp
	tokLParen
	tokRParen
	tokBad
)

type parser struct {
	src string
	pos int

	tok  tokenKind
	op   byte
	num  float64
	text string
	at   int
}

func (p *parser) next() {
	for p.pos < len(p.src) && isSpace(p.src[p.pos]) {
		p.pos++
	}
	p.at = p.pos
	if p.pos >= len(p.src) {
		p.tok, p.text = tokEOF, ""
		return
	}

	c := p.src[p.pos]
	switch {
	case c >= '0' && c <= '9' || c == '.':
		start := p.pos
		for p.pos < len(p.src) && (isDigit(p.src[p.pos]) || p.src[p.pos] == '.') {
			p.pos++
		}
		p.text = p.src[start:p.pos]
		v, err := strconv.ParseFloat(p.text, 64)
		if err != nil {
			p.tok = tokBad
			return
		}
		p.tok, p.num = tokNum, v
	case c == '(':
		p.pos++
		p.tok, p.text = tokLParen, "("
	case c == ')':
		p.pos++
		p.tok, p.text = tokRParen, ")"
	default:
		p.pos++
		p.tok, p.op, p.text = tokOp, c, string(c)
	}
}

func (p *parser) unexpected() error {
	if p.tok == tokEOF {
		return fmt.Errorf("%w: unexpected end of input", ErrInvalidExpression)
	}
	return fmt.Errorf("%w: unexpected %q at %d", ErrInvalidExpression, p.text, p.at)
}

// expr = term { ("+" | "-") term }
func (p *parser) expr() (float64, error) {
	left, err := p.term()
	if err != nil {
		return 0, err
	}
	for p.tok == tokOp && (p.op == '+' || p.op == '-') {
		op := p.op
		p.next()
		right, err := p.term()
		if err != nil {
			return 0, err
		}
		if op == '+' {
			left += right
		} else {
			left -= right
		}
	}
	return left, nil
}

// term = unary { ("*" | "/") unary }
func (p *parser) term() (float64, error) {
	left, err := p.unary()
	if err != nil {
		return 0, err
	}
	for p.tok == tokOp && (p.op == '*' || p.op == '/') {
		op := p.op
		p.next()
		right, err := p.unary()
		if err != nil {
			return 0, err
		}
		if op == '*' {
			left *= right
			continue
		}
		if right == 0 {
			return 0, ErrDivisionByZero
		}
		left /= right
	}
	return left, nil
}

// unary = ("+" | "-") unary | primary
func (p *parser) unary() (float64, error) {
	if p.tok == tokOp && (p.op == '+' || p.op == '-') {
		neg := p.op == '-'
		p.next()
		v, err := p.unary()
		if err != nil {
			return 0, err
		}
		if neg {
			return -v, nil
		}
		return v, nil
	}
	return p.primary()
}

// primary = number | "(" expr ")"
func (p *parser) primary() (float64, error) {
	switch p.tok {
	case tokNum:
		v := p.num
		p.next()
		return v, nil
	case tokLParen:
		p.next()
		v, err := p.expr()
		if err != nil {
			return 0, err
		}
		if p.tok != tokRParen {
			return 0, fmt.Errorf("%w: missing closing parenthesis", ErrInvalidExpression)
		}
		p.next()
		return v, nil
	}
	return 0, p.unexpected()
}

func isDigit(c byte) bool { return c >= '0' && c <= '9' }

func isSpace(c byte) bool { return c == ' ' || c == '\t' || c == '\n' || c == '\r' }
