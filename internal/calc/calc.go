// Package calc provides the calculator's arithmetic primitives with
// numeric-range validation.
//
// All operations work on float64 and reject results that are NaN, infinite,
// or outside the register's safe magnitude. Division by zero is not an
// error: it returns 0, matching the behavior of the physical registers this
// engine models. Callers that want division-by-zero surfaced must check the
// divisor themselves.
package calc

import (
	"errors"
	"fmt"
	"math"
)

// MaxMagnitude is the largest absolute value the display register can hold.
// Results beyond it are reported as ErrOverflow.
const MaxMagnitude = 1e15

// Arithmetic errors.
var (
	ErrOverflow     = errors.New("numeric overflow")
	ErrNegativeSqrt = errors.New("square root of negative number")
)

// check validates that a result fits the display register.
func check(v float64) (float64, error) {
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return 0, ErrOverflow
	}
	if math.Abs(v) >= MaxMagnitude {
		return 0, fmt.Errorf("%w: %g", ErrOverflow, v)
	}
	return v, nil
}

// Add returns a + b.
func Add(a, b float64) (float64, error) {
	return check(a + b)
}

// Sub returns a - b.
func Sub(a, b float64) (float64, error) {
	return check(a - b)
}

// Mul returns a × b.
func Mul(a, b float64) (float64, error) {
	return check(a * b)
}

// Div returns a ÷ b, or 0 when b is 0.
func Div(a, b float64) (float64, error) {
	if b == 0 {
		return 0, nil
	}
	return check(a / b)
}

// Power returns a raised to b.
func Power(a, b float64) (float64, error) {
	return check(math.Pow(a, b))
}

// Sqrt returns the square root of a, or ErrNegativeSqrt for negative input.
func Sqrt(a float64) (float64, error) {
	if a < 0 {
		return 0, fmt.Errorf("%w: %g", ErrNegativeSqrt, a)
	}
	return check(math.Sqrt(a))
}

// PercentOf returns pct percent of base (base·pct/100).
func PercentOf(base, pct float64) (float64, error) {
	return check(base * pct / 100)
}

// Apply folds b into a using op, where op is one of "+", "-", "×", "÷".
// Unknown operators return an error; division follows Div's zero rule.
func Apply(op string, a, b float64) (float64, error) {
	switch op {
	case "+":
		return Add(a, b)
	case "-":
		return Sub(a, b)
	case "×":
		return Mul(a, b)
	case "÷":
		return Div(a, b)
	default:
		return 0, fmt.Errorf("unknown operator %q", op)
	}
}

// Round2 rounds to two decimal places, used for selling-price results.
func Round2(v float64) float64 {
	return math.Round(v*100) / 100
}
