package calc

import (
	"errors"
	"math"
	"testing"
)

func TestBasicOperations(t *testing.T) {
	tests := []struct {
		name string
		fn   func(a, b float64) (float64, error)
		a, b float64
		want float64
	}{
		{"add", Add, 2, 3, 5},
		{"add negative", Add, 2, -5, -3},
		{"sub", Sub, 10, 4, 6},
		{"mul", Mul, 6, 7, 42},
		{"mul fraction", Mul, 2.5, 4, 10},
		{"div", Div, 10, 4, 2.5},
		{"div by zero quirk", Div, 10, 0, 0},
		{"power", Power, 2, 10, 1024},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := tt.fn(tt.a, tt.b)
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if got != tt.want {
				t.Errorf("got %g, want %g", got, tt.want)
			}
		})
	}
}

func TestSqrt(t *testing.T) {
	got, err := Sqrt(144)
	if err != nil {
		t.Fatalf("Sqrt(144) error = %v", err)
	}
	if got != 12 {
		t.Errorf("Sqrt(144) = %g, want 12", got)
	}

	_, err = Sqrt(-1)
	if !errors.Is(err, ErrNegativeSqrt) {
		t.Errorf("Sqrt(-1) error = %v, want ErrNegativeSqrt", err)
	}
}

func TestPercentOf(t *testing.T) {
	got, err := PercentOf(200, 10)
	if err != nil {
		t.Fatalf("PercentOf error = %v", err)
	}
	if got != 20 {
		t.Errorf("PercentOf(200, 10) = %g, want 20", got)
	}
}

func TestOverflow(t *testing.T) {
	tests := []struct {
		name string
		fn   func() (float64, error)
	}{
		{"mul overflow", func() (float64, error) { return Mul(1e14, 1e14) }},
		{"add overflow", func() (float64, error) { return Add(9e14, 9e14) }},
		{"power overflow", func() (float64, error) { return Power(10, 400) }},
		{"nan", func() (float64, error) { return Mul(math.Inf(1), 0) }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := tt.fn(); !errors.Is(err, ErrOverflow) {
				t.Errorf("error = %v, want ErrOverflow", err)
			}
		})
	}
}

func TestApply(t *testing.T) {
	tests := []struct {
		op   string
		a, b float64
		want float64
	}{
		{"+", 1, 2, 3},
		{"-", 5, 2, 3},
		{"×", 3, 4, 12},
		{"÷", 12, 4, 3},
		{"÷", 12, 0, 0},
	}

	for _, tt := range tests {
		got, err := Apply(tt.op, tt.a, tt.b)
		if err != nil {
			t.Errorf("Apply(%q, %g, %g) error = %v", tt.op, tt.a, tt.b, err)
			continue
		}
		if got != tt.want {
			t.Errorf("Apply(%q, %g, %g) = %g, want %g", tt.op, tt.a, tt.b, got, tt.want)
		}
	}

	if _, err := Apply("^", 1, 2); err == nil {
		t.Error("Apply with unknown operator should fail")
	}
}

func TestRound2(t *testing.T) {
	tests := []struct {
		in, want float64
	}{
		{125.0, 125.0},
		{33.33333, 33.33},
		{66.666, 66.67},
		{-1.005, -1}, // float representation of 1.005 is just below the midpoint
	}

	for _, tt := range tests {
		if got := Round2(tt.in); got != tt.want {
			t.Errorf("Round2(%g) = %g, want %g", tt.in, got, tt.want)
		}
	}
}
