package engine

import (
	"github.com/dshills/tapecalc/internal/calc"
)

// memoryAdd applies M+ (sign 1) or M- (sign -1).
func (e *Engine) memoryAdd(sign float64) error {
	st := &e.st
	m, err := calc.Add(st.memory, sign*st.current())
	if err != nil {
		return e.fail(err)
	}
	st.memory = m
	st.entering = true
	return nil
}

// memoryRecall applies MRC: a no-op with empty memory; recalls memory into
// the display; or, when the display already shows the memory value, clears
// the register. Two presses therefore recall then clear.
func (e *Engine) memoryRecall() {
	st := &e.st
	if st.memory == 0 {
		return
	}
	if st.current() == st.memory {
		st.memory = 0
		return
	}
	st.display = formatNumber(st.memory)
	st.entering = true
}

// showGrandTotal applies GT, recalling the grand total into the display.
func (e *Engine) showGrandTotal() {
	e.st.display = formatNumber(e.st.grandTotal)
	e.st.entering = true
}

// clearEntry applies CE: only the current entry resets; the tape, pending
// operator, and registers survive. Like all clear keys it exits error
// state.
func (e *Engine) clearEntry() {
	e.st.display = "0"
	e.st.entering = true
	e.st.errState = false
}

// fullClear applies AC / ON/C / C: everything resets. The grand total and
// transaction history survive only when the engine was built with
// WithClearPolicy(false), for shops that keep the day's total across
// clears.
func (e *Engine) fullClear() {
	gt := e.st.grandTotal
	hist := e.st.history

	e.st = newState()

	if !e.clearResetsGrandTotal {
		e.st.grandTotal = gt
		e.st.history = hist
	}
}

// sqrt applies √ to the displayed value. A negative display is a hard
// error.
func (e *Engine) sqrt() error {
	v, err := calc.Sqrt(e.st.current())
	if err != nil {
		return e.fail(err)
	}
	e.st.display = formatNumber(v)
	e.st.entering = true
	return nil
}

// link applies the LINK key's bound function, if any, to the display.
func (e *Engine) link() error {
	if e.linkFn == nil {
		return nil
	}
	v, err := e.linkFn(e.st.current())
	if err != nil {
		return e.fail(err)
	}
	if _, err := calc.Add(v, 0); err != nil {
		return e.fail(err)
	}
	e.st.display = formatNumber(v)
	e.st.entering = true
	return nil
}

// checkMove steps the CHECK cursor through [step 1 .. step n, result] with
// wraparound in both directions, emitting the position as a step event.
// The cursor is independent of replay and of number entry.
func (e *Engine) checkMove(delta int) {
	st := &e.st
	n := st.tape.Len()
	if n == 0 {
		return
	}

	// Positions 0..n-1 are tape steps, n is the result slot.
	switch {
	case st.checkCursor < 0 && delta > 0:
		st.checkCursor = 0
	case st.checkCursor < 0:
		st.checkCursor = n
	default:
		st.checkCursor = (st.checkCursor + delta + n + 1) % (n + 1)
	}

	ev := StepEvent{
		TotalSteps:   n,
		CurrentStep:  st.checkCursor + 1,
		ArticleCount: st.articleCount,
	}
	if st.checkCursor < n {
		step, _ := st.tape.At(st.checkCursor)
		ev.DisplayValue = step.DisplayValue
		ev.StepIndex = step.StepIndex
	} else {
		v, err := st.tape.Evaluate()
		if err != nil {
			return
		}
		ev.DisplayValue = "=" + formatNumber(v)
		ev.StepIndex = n
	}

	e.queued = append(e.queued, ev)
}
