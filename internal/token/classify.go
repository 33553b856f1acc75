package token

import (
	"errors"
	"fmt"
)

// Classification errors.
var (
	ErrEmptyToken   = errors.New("empty token")
	ErrUnknownToken = errors.New("unknown token")
)

var specialTokens = map[string]Special{
	"ON/C":   SpecOnClear,
	"AC":     SpecAllClear,
	"C":      SpecClear,
	"CE":     SpecClearEntry,
	"←":      SpecBackspace,
	"+/-":    SpecSignToggle,
	"MU":     SpecMarkup,
	"M+":     SpecMemAdd,
	"M-":     SpecMemSub,
	"MRC":    SpecMemRecall,
	"GT":     SpecGrandTotal,
	"%":      SpecPercent,
	"√":      SpecSqrt,
	"AUTO":   SpecAuto,
	"CHECK→": SpecCheckForward,
	"CHECK←": SpecCheckBack,
	"LINK":   SpecLink,
}

// Classify maps a raw keypad token to its typed form.
// Tokens are case-sensitive. Unknown input returns ErrUnknownToken;
// the caller decides whether that puts the calculator into error state.
func Classify(raw string) (Token, error) {
	if raw == "" {
		return Token{}, ErrEmptyToken
	}

	// Multi-token specials like "+/-" and "M+" contain operator and digit
	// characters, so the special table is consulted first.
	if spec, ok := specialTokens[raw]; ok {
		return Token{Kind: KindSpecial, Special: spec}, nil
	}

	switch raw {
	case "0", "1", "2", "3", "4", "5", "6", "7", "8", "9", "00", "000":
		return Token{Kind: KindDigit, Text: raw}, nil
	case ".":
		return Token{Kind: KindDecimal}, nil
	case "+":
		return Token{Kind: KindOperator, Op: OpAdd}, nil
	case "-":
		return Token{Kind: KindOperator, Op: OpSub}, nil
	case "×", "*":
		return Token{Kind: KindOperator, Op: OpMul}, nil
	case "÷", "/":
		return Token{Kind: KindOperator, Op: OpDiv}, nil
	case "=", "ENTER":
		return Token{Kind: KindEquals}, nil
	}

	return Token{}, fmt.Errorf("%w: %q", ErrUnknownToken, raw)
}

// MustClassify classifies a token and panics on error.
// Use only for known-valid tokens in initialization and test code.
func MustClassify(raw string) Token {
	tok, err := Classify(raw)
	if err != nil {
		panic("invalid token: " + raw + ": " + err.Error())
	}
	return tok
}
