package engine

import (
	"github.com/dshills/tapecalc/internal/calc"
	"github.com/dshills/tapecalc/internal/tape"
	"github.com/dshills/tapecalc/internal/token"
)

// operator applies the precedence-transition algorithm for "+ - × ÷".
//
// The rules, evaluated in order:
//
//  1. Operator pressed while still entering: the pending operator is
//     overwritten without computing (cross-class switches adjust the
//     deferred-chain bookkeeping).
//  2. × or ÷ pressed while + or - is pending with its operand typed: the
//     additive operator is deferred as the chain's context sign and the
//     typed number becomes the chain's left operand.
//  3. × or ÷ pressed while a multiplicative chain is pending with a typed
//     right operand: the chain folds immediately; the folded result is the
//     next left operand.
//  4. + or - pressed in the same situation: fold as rule 3, close the
//     chain, re-evaluate the tape, and pend the additive operator.
//  5. + or - pressed while + or - is pending with its operand typed: the
//     additive step closes and the running result re-evaluates.
//  6. A leading "-" on a fresh zero entry is a sign toggle, not
//     subtraction.
func (e *Engine) operator(op token.Op) error {
	st := &e.st

	if st.markupMode {
		// An operator abandons markup staging; the stored cost stays in
		// memory for MRC.
		st.markupMode = false
	}

	// Rule 6.
	if e.signToggleApplies(op) {
		e.toggleSign()
		return nil
	}

	// Staged ×/÷ percent: an additive operator folds base and percent
	// result together (see percent.go).
	if st.pend.kind == pendingPercent {
		return e.foldPendingPercent(op)
	}

	// An operator on a completed result starts a new calculation seeded
	// with that result.
	if st.pend.kind == pendingNone && st.entering && st.tape.Len() > 0 {
		e.resetCalculation()
	}

	cur := st.current()

	if st.pend.kind == pendingNone {
		st.pend = pending{kind: pendingOp, op: op, operand: cur}
		if op.IsMultiplicative() {
			st.chainFromRunning = st.tape.Len() > 0
		}
		st.entering = true
		return nil
	}

	// Rule 1: overwrite without computing.
	if st.entering {
		return e.switchOperator(op)
	}

	prev := st.pend.op
	switch {
	case prev.IsAdditive() && op.IsAdditive():
		// Rule 5.
		if err := e.closeAdditive(prev, cur); err != nil {
			return err
		}
		v, err := st.tape.Evaluate()
		if err != nil {
			return e.fail(err)
		}
		st.display = formatNumber(v)
		st.articleCount = st.tape.Len()
		st.pend = pending{kind: pendingOp, op: op, operand: v}

	case prev.IsAdditive() && op.IsMultiplicative():
		// Rule 2: defer the additive operator, open a chain on the
		// typed number.
		if st.tape.Len() == 0 {
			e.pushBase(st.pend.operand)
		}
		st.ctxSign = prev
		st.pend = pending{kind: pendingOp, op: op, operand: cur}
		st.chainOpen = false
		st.chainFromRunning = false

	case prev.IsMultiplicative() && op.IsMultiplicative():
		// Rule 3.
		res, err := e.foldChain(cur)
		if err != nil {
			return err
		}
		st.display = formatNumber(res)
		st.articleCount = st.tape.Len()
		st.pend = pending{kind: pendingOp, op: op, operand: res}

	default:
		// Rule 4: fold, close the chain, pend the additive operator.
		if _, err := e.foldChain(cur); err != nil {
			return err
		}
		e.closeChain()
		v, err := st.tape.Evaluate()
		if err != nil {
			return e.fail(err)
		}
		st.display = formatNumber(v)
		st.articleCount = st.tape.Len()
		st.pend = pending{kind: pendingOp, op: op, operand: v}
	}

	st.entering = true
	return nil
}

// switchOperator overwrites the pending operator while no new number has
// been typed. Cross-class switches undo or unwind chain bookkeeping so the
// tape stays consistent with the corrected operator.
func (e *Engine) switchOperator(op token.Op) error {
	st := &e.st
	prev := st.pend.op

	switch {
	case prev.SameClass(op) || prev == op:
		// Same-class switch or plain repeat.

	case prev.IsAdditive() && op.IsMultiplicative():
		// The additive left side becomes the chain's left operand.
		st.chainFromRunning = st.tape.Len() > 0

	case prev.IsMultiplicative() && op.IsAdditive():
		switch {
		case st.chainOpen:
			// The chain already folded at least once; closing it is
			// enough, the pending operand holds the folded result.
			e.closeChain()
		case st.ctxSign != token.OpNone:
			// Deferred chain never folded: record the deferred additive
			// step, then re-evaluate for the new left operand.
			if err := e.closeAdditive(st.ctxSign, st.pend.operand); err != nil {
				return err
			}
			st.ctxSign = token.OpNone
			v, err := st.tape.Evaluate()
			if err != nil {
				return e.fail(err)
			}
			st.display = formatNumber(v)
			st.articleCount = st.tape.Len()
			st.pend.operand = v
		default:
			st.chainFromRunning = false
		}
	}

	st.pend.op = op
	st.entering = true
	return nil
}

// pushBase records the calculation's opening number as the first tape step.
func (e *Engine) pushBase(v float64) {
	text := formatNumber(v)
	e.st.tape.Append(tape.Step{
		Expression:   text,
		Result:       v,
		Kind:         tape.NumberEntry,
		DisplayValue: text,
	})
}

// closeAdditive records "+x" / "-x" as a number-entry step, pushing the
// opening number first when the tape is still empty.
func (e *Engine) closeAdditive(op token.Op, operand float64) error {
	st := &e.st
	if st.tape.Len() == 0 {
		e.pushBase(st.pend.operand)
	}
	text := op.String() + formatNumber(operand)
	st.tape.Append(tape.Step{
		Expression:   text,
		Result:       operand,
		Kind:         tape.NumberEntry,
		DisplayValue: text,
		Operator:     op,
	})
	return nil
}

// foldChain resolves one link of the open multiplicative chain with the
// given right operand and records it on the tape.
//
// A deferred chain (left operand typed after a pending additive) folds into
// a parenthesized compound step prefixed with the context sign; while the
// chain stays open, continuations replace the compound instead of
// appending. A running-total chain folds as a plain "×x" / "÷x" step.
func (e *Engine) foldChain(right float64) (float64, error) {
	st := &e.st
	op := st.pend.op
	left := st.pend.operand

	res, err := calc.Apply(op.String(), left, right)
	if err != nil {
		return 0, e.fail(err)
	}

	if st.chainFromRunning {
		text := op.String() + formatNumber(right)
		st.tape.Append(tape.Step{
			Expression:   text,
			Result:       right,
			Kind:         tape.NumberEntry,
			DisplayValue: text,
			Operator:     op,
		})
		return res, nil
	}

	expr := "(" + formatNumber(left) + op.String() + formatNumber(right) + ")"
	step := tape.Step{
		Expression:   expr,
		Result:       res,
		Kind:         tape.CompoundOperation,
		DisplayValue: st.ctxSign.String() + expr + "=" + formatNumber(res),
		Operator:     st.ctxSign,
	}

	if st.chainOpen {
		if last := st.tape.Last(); last != nil && last.Kind == tape.CompoundOperation {
			step.StepIndex = last.StepIndex
			*last = step
			return res, nil
		}
	}
	st.tape.Append(step)
	st.chainOpen = true
	return res, nil
}

// closeChain ends the open multiplicative chain.
func (e *Engine) closeChain() {
	e.st.chainOpen = false
	e.st.chainFromRunning = false
	e.st.ctxSign = token.OpNone
}
