package token

// Kind is the coarse category of an input token.
type Kind uint8

const (
	// KindNone is the zero value; no valid token carries it.
	KindNone Kind = iota
	// KindDigit is a digit key, including the "00" and "000" shortcuts.
	KindDigit
	// KindDecimal is the decimal point key.
	KindDecimal
	// KindOperator is one of the four arithmetic operator keys.
	KindOperator
	// KindEquals is the "=" or "ENTER" key.
	KindEquals
	// KindSpecial is any key from the special vocabulary.
	KindSpecial
)

// String returns a string representation of the kind.
func (k Kind) String() string {
	switch k {
	case KindDigit:
		return "digit"
	case KindDecimal:
		return "decimal"
	case KindOperator:
		return "operator"
	case KindEquals:
		return "equals"
	case KindSpecial:
		return "special"
	default:
		return "none"
	}
}

// Op identifies an arithmetic operator key.
type Op uint8

const (
	// OpNone indicates no operator.
	OpNone Op = iota
	// OpAdd is addition.
	OpAdd
	// OpSub is subtraction.
	OpSub
	// OpMul is multiplication.
	OpMul
	// OpDiv is division.
	OpDiv
)

// String returns the display glyph for the operator.
func (o Op) String() string {
	switch o {
	case OpAdd:
		return "+"
	case OpSub:
		return "-"
	case OpMul:
		return "×"
	case OpDiv:
		return "÷"
	default:
		return ""
	}
}

// IsAdditive reports whether the operator is "+" or "-".
func (o Op) IsAdditive() bool {
	return o == OpAdd || o == OpSub
}

// IsMultiplicative reports whether the operator is "×" or "÷".
func (o Op) IsMultiplicative() bool {
	return o == OpMul || o == OpDiv
}

// SameClass reports whether two operators share a precedence class.
func (o Op) SameClass(other Op) bool {
	return (o.IsAdditive() && other.IsAdditive()) ||
		(o.IsMultiplicative() && other.IsMultiplicative())
}

// Special identifies a key from the special vocabulary.
type Special uint8

const (
	// SpecNone is the zero value; no valid special token carries it.
	SpecNone Special = iota
	// SpecOnClear is the "ON/C" key.
	SpecOnClear
	// SpecAllClear is the "AC" key.
	SpecAllClear
	// SpecClear is the "C" key.
	SpecClear
	// SpecClearEntry is the "CE" key.
	SpecClearEntry
	// SpecBackspace is the "←" key.
	SpecBackspace
	// SpecSignToggle is the "+/-" key.
	SpecSignToggle
	// SpecMarkup is the "MU" key.
	SpecMarkup
	// SpecMemAdd is the "M+" key.
	SpecMemAdd
	// SpecMemSub is the "M-" key.
	SpecMemSub
	// SpecMemRecall is the "MRC" key.
	SpecMemRecall
	// SpecGrandTotal is the "GT" key.
	SpecGrandTotal
	// SpecPercent is the "%" key.
	SpecPercent
	// SpecSqrt is the "√" key.
	SpecSqrt
	// SpecAuto is the "AUTO" tape replay key.
	SpecAuto
	// SpecCheckForward is the "CHECK→" tape navigation key.
	SpecCheckForward
	// SpecCheckBack is the "CHECK←" tape navigation key.
	SpecCheckBack
	// SpecLink is the "LINK" extension key.
	SpecLink
)

var specialNames = map[Special]string{
	SpecOnClear:      "ON/C",
	SpecAllClear:     "AC",
	SpecClear:        "C",
	SpecClearEntry:   "CE",
	SpecBackspace:    "←",
	SpecSignToggle:   "+/-",
	SpecMarkup:       "MU",
	SpecMemAdd:       "M+",
	SpecMemSub:       "M-",
	SpecMemRecall:    "MRC",
	SpecGrandTotal:   "GT",
	SpecPercent:      "%",
	SpecSqrt:         "√",
	SpecAuto:         "AUTO",
	SpecCheckForward: "CHECK→",
	SpecCheckBack:    "CHECK←",
	SpecLink:         "LINK",
}

// String returns the keypad label for the special key.
func (s Special) String() string {
	if name, ok := specialNames[s]; ok {
		return name
	}
	return "none"
}

// IsClear reports whether the special key belongs to the clear family.
// Clear keys are the only tokens accepted while the engine is in error.
func (s Special) IsClear() bool {
	switch s {
	case SpecOnClear, SpecAllClear, SpecClear, SpecClearEntry:
		return true
	default:
		return false
	}
}

// Token is a classified input token.
type Token struct {
	// Kind is the token category.
	Kind Kind

	// Op is the operator for KindOperator tokens.
	Op Op

	// Special is the key identity for KindSpecial tokens.
	Special Special

	// Text is the literal digit text for KindDigit tokens
	// ("0".."9", "00", "000").
	Text string
}

// IsClear reports whether the token is a clear-family special.
func (t Token) IsClear() bool {
	return t.Kind == KindSpecial && t.Special.IsClear()
}

// String returns the keypad label for the token.
func (t Token) String() string {
	switch t.Kind {
	case KindDigit:
		return t.Text
	case KindDecimal:
		return "."
	case KindOperator:
		return t.Op.String()
	case KindEquals:
		return "="
	case KindSpecial:
		return t.Special.String()
	default:
		return ""
	}
}
