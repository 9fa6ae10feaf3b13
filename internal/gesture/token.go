// Package gesture turns hand landmarks into calculator tokens.
package gesture

import (
	"fmt"
	"strconv"
)

// Kind is the variant of a Token.
type Kind uint8

const (
	KindUnknown Kind = iota
	KindDigit
	KindOperator
	KindEquals
	KindClear
)

// String returns the kind's metric/log label.
func (k Kind) String() string {
	switch k {
	case KindDigit:
		return "digit"
	case KindOperator:
		return "operator"
	case KindEquals:
		return "equals"
	case KindClear:
		return "clear"
	default:
		return "unknown"
	}
}

// Operator is an arithmetic operator.
type Operator uint8

const (
	OpAdd Operator = iota + 1
	OpSubtract
	OpMultiply
	OpDivide
)

// Symbol is the ASCII character stored in the expression buffer.
func (o Operator) Symbol() byte {
	switch o {
	case OpAdd:
		return '+'
	case OpSubtract:
		return '-'
	case OpMultiply:
		return '*'
	case OpDivide:
		return '/'
	default:
		return 0
	}
}

// Glyph is the display form.
func (o Operator) Glyph() string {
	switch o {
	case OpAdd:
		return "+"
	case OpSubtract:
		return "−"
	case OpMultiply:
		return "×"
	case OpDivide:
		return "÷"
	default:
		return "?"
	}
}

func (o Operator) String() string {
	switch o {
	case OpAdd:
		return "add"
	case OpSubtract:
		return "subtract"
	case OpMultiply:
		return "multiply"
	case OpDivide:
		return "divide"
	default:
		return "unknown"
	}
}

// Token is a classified gesture. The zero value is Unknown.
// Tokens are comparable with ==.
type Token struct {
	Kind  Kind
	Digit int
	Op    Operator
}

var (
	Unknown = Token{}
	Equals  = Token{Kind: KindEquals}
	Clear   = Token{Kind: KindClear}
)

// Digit returns the digit token d. d must be within 0-9.
func Digit(d int) Token {
	if d < 0 || d > 9 {
		return Unknown
	}
	return Token{Kind: KindDigit, Digit: d}
}

// Op returns the operator token for o.
func Op(o Operator) Token {
	if o < OpAdd || o > OpDivide {
		return Unknown
	}
	return Token{Kind: KindOperator, Op: o}
}

// IsUnknown reports whether t carries no meaning.
func (t Token) IsUnknown() bool { return t.Kind == KindUnknown }

// String returns a stable name: "0".."9", "add", "equals", "clear", "unknown".
func (t Token) String() string {
	switch t.Kind {
	case KindDigit:
		return strconv.Itoa(t.Digit)
	case KindOperator:
		return t.Op.String()
	case KindEquals:
		return "equals"
	case KindClear:
		return "clear"
	default:
		return "unknown"
	}
}

// Label is the display form: "7", "×", "=", "C".
func (t Token) Label() string {
	switch t.Kind {
	case KindDigit:
		return strconv.Itoa(t.Digit)
	case KindOperator:
		return t.Op.Glyph()
	case KindEquals:
		return "="
	case KindClear:
		return "C"
	default:
		return ""
	}
}

// MarshalText encodes the token by name.
func (t Token) MarshalText() ([]byte, error) {
	return []byte(t.String()), nil
}

// UnmarshalText decodes a name produced by String.
func (t *Token) UnmarshalText(text []byte) error {
	tok, err := ParseToken(string(text))
	if err != nil {
		return err
	}
	*t = tok
	return nil
}

// ParseToken is the inverse of Token.String.
func ParseToken(s string) (Token, error) {
	switch s {
	case "unknown", "":
		return Unknown, nil
	case "equals":
		return Equals, nil
	case "clear":
		return Clear, nil
	case "add":
		return Op(OpAdd), nil
	case "subtract":
		return Op(OpSubtract), nil
	case "multiply":
		return Op(OpMultiply), nil
	case "divide":
		return Op(OpDivide), nil
	}
	if len(s) == 1 && s[0] >= '0' && s[0] <= '9' {
		return Digit(int(s[0] - '0')), nil
	}
	return Unknown, fmt.Errorf("unknown token %q", s)
}
