// Package tape records the audit trail of a calculation as an ordered list
// of steps, mirroring a cash-register paper tape, and folds the recorded
// steps back into a single result.
//
// The first step seeds the running total; later steps carry the operator
// used to fold their result into it. A compound step holds an
// already-resolved multiplication or division chain such as "+(5×3)=15".
package tape

import (
	"errors"
	"fmt"

	"github.com/dshills/tapecalc/internal/calc"
	"github.com/dshills/tapecalc/internal/token"
)

// Evaluation errors.
var (
	ErrInvalidTape = errors.New("invalid tape")
)

// StepKind distinguishes plain number entries from folded compound chains.
type StepKind uint8

const (
	// NumberEntry is a directly typed operand.
	NumberEntry StepKind = iota
	// CompoundOperation is a resolved multiplicative chain.
	CompoundOperation
)

// String returns a string representation of the kind.
func (k StepKind) String() string {
	switch k {
	case NumberEntry:
		return "number"
	case CompoundOperation:
		return "compound"
	default:
		return "unknown"
	}
}

// Step is one recorded line on the tape.
type Step struct {
	// Expression is the arithmetic text of the step, e.g. "10", "+5",
	// "(5×3)".
	Expression string `json:"expression"`

	// Result is the numeric value the step contributes.
	Result float64 `json:"result"`

	// StepIndex is the 1-based position on the tape.
	StepIndex int `json:"step_index"`

	// Kind tells a number entry from a folded compound chain.
	Kind StepKind `json:"kind"`

	// DisplayValue is the text shown during replay, e.g. "+(5×3)=15".
	DisplayValue string `json:"display_value"`

	// Operator folds Result into the running total. It is OpNone only on
	// the first step.
	Operator token.Op `json:"operator,omitempty"`
}

// Tape is the ordered step list. It is not safe for concurrent use; the
// engine owns exactly one tape and mutates it from a single goroutine.
type Tape struct {
	steps []Step
}

// New creates an empty tape.
func New() *Tape {
	return &Tape{}
}

// Len returns the number of recorded steps.
func (t *Tape) Len() int {
	return len(t.steps)
}

// Append records a step, assigning its 1-based index, and returns the index.
func (t *Tape) Append(s Step) int {
	s.StepIndex = len(t.steps) + 1
	t.steps = append(t.steps, s)
	return s.StepIndex
}

// Last returns a pointer to the most recent step for in-place amendment
// while a number is still being typed, or nil for an empty tape.
func (t *Tape) Last() *Step {
	if len(t.steps) == 0 {
		return nil
	}
	return &t.steps[len(t.steps)-1]
}

// At returns the step at 0-based position i.
func (t *Tape) At(i int) (Step, bool) {
	if i < 0 || i >= len(t.steps) {
		return Step{}, false
	}
	return t.steps[i], true
}

// Steps returns a copy of the recorded steps.
func (t *Tape) Steps() []Step {
	out := make([]Step, len(t.steps))
	copy(out, t.steps)
	return out
}

// Restore replaces the tape contents, re-numbering the steps. Used by
// import to rebuild a persisted tape.
func (t *Tape) Restore(steps []Step) {
	t.steps = make([]Step, len(steps))
	copy(t.steps, steps)
	for i := range t.steps {
		t.steps[i].StepIndex = i + 1
	}
}

// Clear removes every step.
func (t *Tape) Clear() {
	t.steps = nil
}

// Evaluate folds the tape into a single result: the first step seeds the
// accumulator and every later step applies its operator. A division step
// whose result is 0 contributes 0 rather than an error, matching the
// register quirk in calc.Div.
func (t *Tape) Evaluate() (float64, error) {
	if len(t.steps) == 0 {
		return 0, nil
	}

	acc := t.steps[0].Result
	for _, s := range t.steps[1:] {
		if s.Operator == token.OpNone {
			return 0, fmt.Errorf("%w: step %d has no operator", ErrInvalidTape, s.StepIndex)
		}
		v, err := calc.Apply(s.Operator.String(), acc, s.Result)
		if err != nil {
			return 0, err
		}
		acc = v
	}
	return acc, nil
}
