package token

import (
	"errors"
	"testing"
)

func TestClassifyDigits(t *testing.T) {
	for _, raw := range []string{"0", "1", "2", "3", "4", "5", "6", "7", "8", "9", "00", "000"} {
		tok, err := Classify(raw)
		if err != nil {
			t.Errorf("Classify(%q) error = %v", raw, err)
			continue
		}
		if tok.Kind != KindDigit {
			t.Errorf("Classify(%q) kind = %v, want digit", raw, tok.Kind)
		}
		if tok.Text != raw {
			t.Errorf("Classify(%q) text = %q, want %q", raw, tok.Text, raw)
		}
	}
}

func TestClassifyOperators(t *testing.T) {
	tests := []struct {
		raw  string
		want Op
	}{
		{"+", OpAdd},
		{"-", OpSub},
		{"×", OpMul},
		{"*", OpMul},
		{"÷", OpDiv},
		{"/", OpDiv},
	}

	for _, tt := range tests {
		tok, err := Classify(tt.raw)
		if err != nil {
			t.Errorf("Classify(%q) error = %v", tt.raw, err)
			continue
		}
		if tok.Kind != KindOperator {
			t.Errorf("Classify(%q) kind = %v, want operator", tt.raw, tok.Kind)
		}
		if tok.Op != tt.want {
			t.Errorf("Classify(%q) op = %v, want %v", tt.raw, tok.Op, tt.want)
		}
	}
}

func TestClassifySpecials(t *testing.T) {
	tests := []struct {
		raw  string
		want Special
	}{
		{"ON/C", SpecOnClear},
		{"AC", SpecAllClear},
		{"C", SpecClear},
		{"CE", SpecClearEntry},
		{"←", SpecBackspace},
		{"+/-", SpecSignToggle},
		{"MU", SpecMarkup},
		{"M+", SpecMemAdd},
		{"M-", SpecMemSub},
		{"MRC", SpecMemRecall},
		{"GT", SpecGrandTotal},
		{"%", SpecPercent},
		{"√", SpecSqrt},
		{"AUTO", SpecAuto},
		{"CHECK→", SpecCheckForward},
		{"CHECK←", SpecCheckBack},
		{"LINK", SpecLink},
	}

	for _, tt := range tests {
		tok, err := Classify(tt.raw)
		if err != nil {
			t.Errorf("Classify(%q) error = %v", tt.raw, err)
			continue
		}
		if tok.Kind != KindSpecial {
			t.Errorf("Classify(%q) kind = %v, want special", tt.raw, tok.Kind)
		}
		if tok.Special != tt.want {
			t.Errorf("Classify(%q) special = %v, want %v", tt.raw, tok.Special, tt.want)
		}
	}
}

func TestClassifyEquals(t *testing.T) {
	for _, raw := range []string{"=", "ENTER"} {
		tok, err := Classify(raw)
		if err != nil {
			t.Errorf("Classify(%q) error = %v", raw, err)
			continue
		}
		if tok.Kind != KindEquals {
			t.Errorf("Classify(%q) kind = %v, want equals", raw, tok.Kind)
		}
	}
}

func TestClassifyRejected(t *testing.T) {
	for _, raw := range []string{"x", "enter", "ac", "10", "++", "M*", "√√", "CHECK"} {
		_, err := Classify(raw)
		if !errors.Is(err, ErrUnknownToken) {
			t.Errorf("Classify(%q) error = %v, want ErrUnknownToken", raw, err)
		}
	}
}

func TestClassifyEmpty(t *testing.T) {
	_, err := Classify("")
	if !errors.Is(err, ErrEmptyToken) {
		t.Errorf("Classify(\"\") error = %v, want ErrEmptyToken", err)
	}
}

func TestOpPrecedenceClasses(t *testing.T) {
	if !OpAdd.IsAdditive() || !OpSub.IsAdditive() {
		t.Error("+ and - should be additive")
	}
	if !OpMul.IsMultiplicative() || !OpDiv.IsMultiplicative() {
		t.Error("× and ÷ should be multiplicative")
	}
	if !OpAdd.SameClass(OpSub) || !OpMul.SameClass(OpDiv) {
		t.Error("operators within a class should match")
	}
	if OpAdd.SameClass(OpMul) || OpSub.SameClass(OpDiv) {
		t.Error("operators across classes should not match")
	}
}

func TestTokenString(t *testing.T) {
	tests := []struct {
		raw  string
		want string
	}{
		{"7", "7"},
		{"00", "00"},
		{".", "."},
		{"*", "×"},
		{"/", "÷"},
		{"ENTER", "="},
		{"MRC", "MRC"},
		{"CHECK→", "CHECK→"},
	}

	for _, tt := range tests {
		tok := MustClassify(tt.raw)
		if got := tok.String(); got != tt.want {
			t.Errorf("Classify(%q).String() = %q, want %q", tt.raw, got, tt.want)
		}
	}
}

func TestIsClearFamily(t *testing.T) {
	for _, raw := range []string{"ON/C", "AC", "C", "CE"} {
		if !MustClassify(raw).IsClear() {
			t.Errorf("%q should be a clear token", raw)
		}
	}
	for _, raw := range []string{"MRC", "=", "5", "%"} {
		if MustClassify(raw).IsClear() {
			t.Errorf("%q should not be a clear token", raw)
		}
	}
}
