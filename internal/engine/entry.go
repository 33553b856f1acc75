package engine

import (
	"strings"

	"github.com/dshills/tapecalc/internal/token"
)

// maxEntryLen caps the display register length during entry.
const maxEntryLen = 16

// allZero reports whether a digit token contributes only zeros.
func allZero(text string) bool {
	return strings.Trim(text, "0") == ""
}

// digit handles a digit key, including the "00" and "000" shortcuts.
func (e *Engine) digit(text string) {
	st := &e.st

	if st.entering || st.display == "0" {
		// Typing over a completed result starts a fresh calculation.
		if st.entering && st.pend.kind == pendingNone && st.tape.Len() > 0 {
			e.resetCalculation()
		}

		negative := st.display == "-0"
		if allZero(text) {
			st.display = "0"
		} else {
			st.display = text
		}
		if negative {
			st.display = "-" + st.display
		}

		// Article counting: the first entry always counts; an entry
		// after a pending +/- counts once a non-zero digit lands;
		// multiplicative right operands count only when folded.
		switch {
		case st.tape.Len() == 0 && st.pend.kind == pendingNone:
			st.articleCount = 1
		case st.pend.kind == pendingOp && st.pend.op.IsAdditive() && st.current() != 0:
			st.articleCount = st.recordedSteps() + 1
		}

		st.entering = false
		return
	}

	if len(st.display)+len(text) > maxEntryLen {
		return
	}
	if st.display == "-0" {
		if allZero(text) {
			return
		}
		st.display = "-" + text
	} else {
		st.display += text
	}

	// A non-zero digit appended to a zero additive operand still counts.
	if st.pend.kind == pendingOp && st.pend.op.IsAdditive() && st.current() != 0 {
		st.articleCount = st.recordedSteps() + 1
	}
}

// decimal handles the "." key. A leading decimal produces "0.", and a
// second decimal in the same number is ignored.
func (e *Engine) decimal() {
	st := &e.st

	if st.entering || st.display == "0" {
		if st.entering && st.pend.kind == pendingNone && st.tape.Len() > 0 {
			e.resetCalculation()
		}

		if st.display == "-0" {
			st.display = "-0."
		} else {
			st.display = "0."
		}
		if st.tape.Len() == 0 && st.pend.kind == pendingNone {
			st.articleCount = 1
		}
		st.entering = false
		return
	}

	if !strings.Contains(st.display, ".") && len(st.display) < maxEntryLen {
		st.display += "."
	}
}

// backspace removes the last typed character of the current entry.
// It does nothing between entries or on a completed result.
func (e *Engine) backspace() {
	st := &e.st
	if st.entering {
		return
	}

	st.display = st.display[:len(st.display)-1]
	if st.display == "" || st.display == "-" {
		st.display = "0"
	}
}

// toggleSign flips the sign of the current entry. On a bare "0" it arms a
// negative entry so the next digits type a negative number.
func (e *Engine) toggleSign() {
	st := &e.st
	switch {
	case st.display == "0":
		st.display = "-0"
		st.entering = false
	case st.display == "-0":
		st.display = "0"
	case strings.HasPrefix(st.display, "-"):
		st.display = st.display[1:]
	default:
		st.display = "-" + st.display
	}
}

// signToggleApplies reports whether a "-" press should flip the entry sign
// instead of acting as subtraction (rule: leading minus on a fresh entry).
func (e *Engine) signToggleApplies(op token.Op) bool {
	return op == token.OpSub &&
		e.st.pend.kind == pendingNone &&
		(e.st.display == "0" || e.st.display == "-0") &&
		e.st.tape.Len() == 0
}
