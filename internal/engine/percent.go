package engine

import (
	"github.com/dshills/tapecalc/internal/calc"
	"github.com/dshills/tapecalc/internal/tape"
	"github.com/dshills/tapecalc/internal/token"
)

// percent applies the "%" key. The displayed number is the percentage
// figure; the captured pending operand is the base:
//
//	+  base plus pct percent of base (completed immediately)
//	-  base minus pct percent of base (completed immediately)
//	×  pct percent of base, staged for a following additive operator
//	÷  base divided by pct/100 (0 for pct 0), staged likewise
//
// With nothing pending, "%" divides the display by 100. In markup mode the
// key completes the cost/margin selling-price computation instead.
func (e *Engine) percent() error {
	st := &e.st

	if st.markupMode {
		return e.markupPercent()
	}

	switch st.pend.kind {
	case pendingNone:
		v, err := calc.Div(st.current(), 100)
		if err != nil {
			return e.fail(err)
		}
		st.display = formatNumber(v)
		st.entering = true
		return nil

	case pendingPercent:
		return nil

	default:
	}

	base := st.pend.operand
	pct := st.current()

	switch st.pend.op {
	case token.OpAdd, token.OpSub:
		delta, err := calc.PercentOf(base, pct)
		if err != nil {
			return e.fail(err)
		}
		if st.tape.Len() == 0 {
			e.pushBase(base)
		}
		op := st.pend.op
		text := op.String() + formatNumber(pct) + "%"
		st.tape.Append(tape.Step{
			Expression:   text,
			Result:       delta,
			Kind:         tape.CompoundOperation,
			DisplayValue: text + "=" + formatNumber(delta),
			Operator:     op,
		})
		st.lastEq = repeat{valid: true, op: op, operand: delta}
		return e.complete()

	case token.OpMul:
		v, err := calc.PercentOf(base, pct)
		if err != nil {
			return e.fail(err)
		}
		e.stagePercent(base, pct, token.OpMul, v)
		return nil

	case token.OpDiv:
		var v float64
		if pct != 0 {
			var err error
			v, err = calc.Div(base, pct/100)
			if err != nil {
				return e.fail(err)
			}
		}
		e.stagePercent(base, pct, token.OpDiv, v)
		return nil
	}

	return nil
}

// stagePercent parks a ×/÷ percent result so a following additive operator
// can fold base and result together.
func (e *Engine) stagePercent(base, pct float64, op token.Op, result float64) {
	st := &e.st
	st.percentExpr = "(" + formatNumber(base) + op.String() + formatNumber(pct) + "%)"
	st.pend = pending{kind: pendingPercent, operand: base}
	st.display = formatNumber(result)
	st.entering = true
}

// foldPendingPercent handles an additive operator after a staged ×/÷
// percent: the base and the percent result both land on the tape, the tape
// re-evaluates, and the pressed operator pends against the new total.
func (e *Engine) foldPendingPercent(op token.Op) error {
	st := &e.st

	if op.IsMultiplicative() {
		// Only an additive operator combines with the base; × and ÷
		// simply chain on the staged result.
		v := st.current()
		st.pend = pending{kind: pendingOp, op: op, operand: v}
		st.percentExpr = ""
		st.chainFromRunning = st.tape.Len() > 0
		st.entering = true
		return nil
	}

	base := st.pend.operand
	v := st.current()

	if st.tape.Len() == 0 {
		e.pushBase(base)
	} else {
		if err := e.closeAdditiveValue(st.ctxSign, base); err != nil {
			return err
		}
	}
	st.tape.Append(tape.Step{
		Expression:   st.percentExpr,
		Result:       v,
		Kind:         tape.CompoundOperation,
		DisplayValue: op.String() + st.percentExpr + "=" + formatNumber(v),
		Operator:     op,
	})
	st.percentExpr = ""
	st.ctxSign = token.OpNone

	total, err := st.tape.Evaluate()
	if err != nil {
		return e.fail(err)
	}
	st.display = formatNumber(total)
	st.articleCount = st.tape.Len()
	st.pend = pending{kind: pendingOp, op: op, operand: total}
	st.entering = true
	return nil
}

// completePendingPercent handles "=" after a staged ×/÷ percent: the
// percent result alone folds onto the tape and the calculation completes.
func (e *Engine) completePendingPercent() error {
	st := &e.st
	v := st.current()

	st.tape.Append(tape.Step{
		Expression:   st.percentExpr,
		Result:       v,
		Kind:         tape.CompoundOperation,
		DisplayValue: st.ctxSign.String() + st.percentExpr + "=" + formatNumber(v),
		Operator:     st.ctxSign,
	})
	st.percentExpr = ""
	return e.complete()
}

// closeAdditiveValue records an additive step for a known value without
// consulting the pending operand.
func (e *Engine) closeAdditiveValue(op token.Op, v float64) error {
	if op == token.OpNone {
		op = token.OpAdd
	}
	text := op.String() + formatNumber(v)
	e.st.tape.Append(tape.Step{
		Expression:   text,
		Result:       v,
		Kind:         tape.NumberEntry,
		DisplayValue: text,
		Operator:     op,
	})
	return nil
}

// markup handles the MU key: with empty memory it stores the displayed
// value as the cost and arms markup mode. With memory occupied MU is a
// no-op; MRC or a clear must free the register first.
func (e *Engine) markup() {
	st := &e.st
	if st.memory != 0 {
		return
	}
	st.memory = st.current()
	st.markupMode = true
	st.entering = true
}

// markupPercent computes the selling price from the stored cost and the
// displayed margin percentage: price = cost / (1 - margin/100), rounded to
// two decimals. A margin of 100% or more is a hard error.
func (e *Engine) markupPercent() error {
	st := &e.st

	margin := st.current()
	if margin >= 100 {
		return e.fail(ErrMarkupMarginOverflow)
	}

	cost := st.memory
	price, err := calc.Div(cost, 1-margin/100)
	if err != nil {
		return e.fail(err)
	}
	price = calc.Round2(price)

	st.memory = 0
	st.markupMode = false
	st.display = formatNumber(price)
	st.history = append(st.history, price)

	gt, err := calc.Add(st.grandTotal, price)
	if err != nil {
		return e.fail(err)
	}
	st.grandTotal = gt
	st.entering = true

	// The "=" presentation of the selling price goes out as a step event;
	// the display register itself stays parseable.
	e.queued = append(e.queued, StepEvent{
		DisplayValue: "=" + formatNumber(price),
		ArticleCount: st.articleCount,
	})
	return nil
}
