// Package calc accumulates confirmed gesture input into an arithmetic
// expression and evaluates it without executing arbitrary code.
package calc

import "strings"

// Expression is the in-progress calculator input plus the outcome of the
// last evaluation. The zero value is an empty expression.
type Expression struct {
	buf    []byte
	result string
	err    error
}

// AppendDigit appends d (0-9) unconditionally.
func (e *Expression) AppendDigit(d int) {
	if d < 0 || d > 9 {
		return
	}
	e.buf = append(e.buf, byte('0'+d))
}

// AppendOperator appends " op ". An operator right after another one
// replaces it, so the buffer never holds two in a row. It reports false
// when op is not an operator or the buffer is empty.
func (e *Expression) AppendOperator(op byte) bool {
	if !isOperator(op) {
		return false
	}
	s := strings.TrimRight(string(e.buf), " ")
	if s == "" {
		return false
	}
	if isOperator(s[len(s)-1]) {
		s = strings.TrimRight(s[:len(s)-1], " ")
	}
	e.buf = append(append(e.buf[:0], s...), ' ', op, ' ')
	return true
}

// Evaluate computes the buffer and stores the result or the error. The
// buffer is left as is. An empty buffer is a no-op and returns nil.
func (e *Expression) Evaluate() error {
	if len(e.buf) == 0 {
		return nil
	}
	v, err := Evaluate(string(e.buf))
	if err != nil {
		e.result, e.err = "", err
		return err
	}
	e.result, e.err = Format(v), nil
	return nil
}

// Clear empties the buffer and forgets the last result.
func (e *Expression) Clear() {
	e.buf = e.buf[:0]
	e.result = ""
	e.err = nil
}

// Text returns the buffer as stored, with ASCII operators.
func (e *Expression) Text() string { return string(e.buf) }

// Display returns the buffer with + − × ÷ glyphs.
func (e *Expression) Display() string { return displayReplacer.Replace(string(e.buf)) }

// Result is the text of the last successful evaluation.
func (e *Expression) Result() string { return e.result }

// Err is the last evaluation error, if any.
func (e *Expression) Err() error { return e.err }

// ResultText is what a display shows: the result, "Error: <reason>" or "".
func (e *Expression) ResultText() string {
	if e.err != nil {
		return "Error: " + Reason(e.err)
	}
	return e.result
}

// Empty reports whether the buffer has no input.
func (e *Expression) Empty() bool { return len(e.buf) == 0 }

var displayReplacer = strings.NewReplacer("-", "−", "*", "×", "/", "÷")

func isOperator(c byte) bool {
	return c == '+' || c == '-' || c == '*' || c == '/'
}
