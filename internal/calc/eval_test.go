package calc

import (
	"errors"
	"math"
	"testing"

	. "github.com/smartystreets/goconvey/convey"
)

func TestEvaluate(t *testing.T) {
	Convey("Given the safe evaluator", t, func() {
		Convey("When the input is well formed", func() {
			cases := map[string]float64{
				"2 + 3 * 4":   14,
				"2 * 3 + 4":   10,
				"10 - 4 - 3":  3,
				"16 / 4 / 2":  2,
				"(2 + 3) * 4": 20,
				"7 / 2":       3.5,
				"2+-3":        -1,
				"-(1 + 2)":    -3,
				"01 + 1":      2,
				".5 * 4":      2,
				"1 + 2 - 3":   0,
			}

			Convey("Then precedence, grouping and associativity hold", func() {
				for input, want := range cases {
					got, err := Evaluate(input)
					So(err, ShouldBeNil)
					So(got, ShouldAlmostEqual, want)
				}
			})
		})

		Convey("When the input divides by zero", func() {
			_, err := Evaluate("5/0")
			_, errNested := Evaluate("1 + 2 / (3 - 3)")

			Convey("Then it fails with ErrDivisionByZero", func() {
				So(errors.Is(err, ErrDivisionByZero), ShouldBeTrue)
				So(errors.Is(errNested, ErrDivisionByZero), ShouldBeTrue)
			})
		})

		Convey("When the input is malformed", func() {
			inputs := []string{"2+*3", "(1 + 2", "1 + 2)", "3 +", "1 2", "1.2.3", "()", "*4"}

			Convey("Then it fails with ErrInvalidExpression", func() {
				for _, input := range inputs {
					_, err := Evaluate(input)
					So(errors.Is(err, ErrInvalidExpression), ShouldBeTrue)
				}
			})
		})

		Convey("When nothing remains after sanitizing", func() {
			_, errEmpty := Evaluate("")
			_, errLetters := Evaluate("import os")
			_, errSpaces := Evaluate("   ")

			Convey("Then it fails with ErrEmptyExpression", func() {
				So(errors.Is(errEmpty, ErrEmptyExpression), ShouldBeTrue)
				So(errors.Is(errLetters, ErrEmptyExpression), ShouldBeTrue)
				So(errors.Is(errSpaces, ErrEmptyExpression), ShouldBeTrue)
			})
		})

		Convey("When the input contains characters outside the whitelist", func() {
			got, err := Evaluate("__import__('os') 2 + 2")

			Convey("Then they are stripped before evaluating", func() {
				// Leaves "()2 + 2", which does not parse.
				So(errors.Is(err, ErrInvalidExpression), ShouldBeTrue)
				So(got, ShouldEqual, 0)
			})

			Convey("And letters between numbers are dropped", func() {
				v, err := Evaluate("2a + b3")
				So(err, ShouldBeNil)
				So(v, ShouldEqual, 5)
			})
		})
	})
}

func TestSanitize(t *testing.T) {
	Convey("Sanitize keeps only the arithmetic whitelist", t, func() {
		So(Sanitize("1 + 2"), ShouldEqual, "1 + 2")
		So(Sanitize("1 × 2 ÷ 3 − 4"), ShouldEqual, "1  2  3  4")
		So(Sanitize("abc(1.5)*2;"), ShouldEqual, "(1.5)*2")
	})
}

func TestFormat(t *testing.T) {
	Convey("Format renders the shortest decimal form", t, func() {
		So(Format(14), ShouldEqual, "14")
		So(Format(3.5), ShouldEqual, "3.5")
		So(Format(-0.25), ShouldEqual, "-0.25")
		So(Format(math.Copysign(0, -1)), ShouldEqual, "0")
		So(Format(1e21), ShouldEqual, "1000000000000000000000")
	})
}

func TestReason(t *testing.T) {
	Convey("Reason maps errors to display text", t, func() {
		_, err := Evaluate("2+*3")
		So(Reason(err), ShouldEqual, "invalid expression")
		So(Reason(ErrDivisionByZero), ShouldEqual, "division by zero")
		So(Reason(ErrEmptyExpression), ShouldEqual, "empty expression")
		So(Reason(nil), ShouldEqual, "")
	})
}
