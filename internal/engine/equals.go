package engine

import (
	"github.com/dshills/tapecalc/internal/calc"
	"github.com/dshills/tapecalc/internal/tape"
	"github.com/dshills/tapecalc/internal/token"
)

// equals completes the current calculation: it closes whatever is pending,
// evaluates the tape, and posts the result to the transaction history and
// grand total. Pressing "=" again repeats the last operator and operand
// against the displayed result (continuous equals).
func (e *Engine) equals() error {
	st := &e.st

	switch {
	case st.pend.kind == pendingPercent:
		return e.completePendingPercent()

	case st.pend.kind == pendingOp:
		op := st.pend.op
		right := st.current()

		if op.IsMultiplicative() {
			if st.entering {
				// No right operand: "×" closes against 1, "÷" against
				// the left operand itself.
				if op == token.OpMul {
					right = 1
				} else {
					right = st.pend.operand
				}
			}
			if _, err := e.foldChain(right); err != nil {
				return err
			}
			e.closeChain()
		} else {
			if st.entering {
				// "5 + =" doubles: the left operand closes itself.
				right = st.pend.operand
			}
			if err := e.closeAdditive(op, right); err != nil {
				return err
			}
		}
		st.lastEq = repeat{valid: true, op: op, operand: right}
		return e.complete()

	case st.lastEq.valid:
		// Continuous equals: rebuild a two-step tape from the displayed
		// value and the retained operator/operand.
		cur := st.current()
		st.tape.Clear()
		e.pushBase(cur)
		text := st.lastEq.op.String() + formatNumber(st.lastEq.operand)
		st.tape.Append(tape.Step{
			Expression:   text,
			Result:       st.lastEq.operand,
			Kind:         tape.NumberEntry,
			DisplayValue: text,
			Operator:     st.lastEq.op,
		})
		return e.complete()

	default:
		if st.entering {
			return nil
		}
		// A bare number completes as a single-step calculation.
		if st.tape.Len() == 0 {
			e.pushBase(st.current())
		}
		return e.complete()
	}
}

// complete evaluates the tape and posts the result.
func (e *Engine) complete() error {
	st := &e.st

	v, err := st.tape.Evaluate()
	if err != nil {
		return e.fail(err)
	}

	gt, err := calc.Add(st.grandTotal, v)
	if err != nil {
		return e.fail(err)
	}

	st.display = formatNumber(v)
	st.history = append(st.history, v)
	st.grandTotal = gt
	st.pend = pending{}
	st.ctxSign = token.OpNone
	st.chainOpen = false
	st.chainFromRunning = false
	st.percentExpr = ""
	st.entering = true
	st.articleCount = st.tape.Len()
	st.checkCursor = -1

	e.log.Debug("completed", "result", v, "steps", st.tape.Len(), "grand_total", gt)
	return nil
}
