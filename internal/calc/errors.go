package calc

import "errors"

// Evaluation failures. Evaluate wraps these with position details; branch
// with errors.Is.
var (
	ErrEmptyExpression   = errors.New("empty expression")
	ErrDivisionByZero    = errors.New("division by zero")
	ErrInvalidExpression = errors.New("invalid expression")
)

// Reason returns the short display reason for an evaluation error.
func Reason(err error) string {
	switch {
	case err == nil:
		return ""
	case errors.Is(err, ErrEmptyExpression):
		return ErrEmptyExpression.Error()
	case errors.Is(err, ErrDivisionByZero):
		return ErrDivisionByZero.Error()
	default:
		return ErrInvalidExpression.Error()
	}
}
