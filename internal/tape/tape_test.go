package tape

import (
	"errors"
	"testing"

	"github.com/dshills/tapecalc/internal/token"
)

func TestAppendAssignsIndexes(t *testing.T) {
	tp := New()
	if idx := tp.Append(Step{Expression: "10", Result: 10, Kind: NumberEntry, DisplayValue: "10"}); idx != 1 {
		t.Errorf("first index = %d, want 1", idx)
	}
	if idx := tp.Append(Step{Expression: "+5", Result: 5, Kind: NumberEntry, DisplayValue: "+5", Operator: token.OpAdd}); idx != 2 {
		t.Errorf("second index = %d, want 2", idx)
	}
	if tp.Len() != 2 {
		t.Errorf("len = %d, want 2", tp.Len())
	}
}

func TestEvaluateAdditiveRun(t *testing.T) {
	tp := New()
	tp.Append(Step{Result: 10, Kind: NumberEntry})
	tp.Append(Step{Result: 5, Kind: NumberEntry, Operator: token.OpAdd})
	tp.Append(Step{Result: 3, Kind: NumberEntry, Operator: token.OpSub})

	got, err := tp.Evaluate()
	if err != nil {
		t.Fatalf("Evaluate error = %v", err)
	}
	if got != 12 {
		t.Errorf("Evaluate = %g, want 12", got)
	}
}

func TestEvaluateCompoundSteps(t *testing.T) {
	// 10 + (5×3) + (2×3) = 31
	tp := New()
	tp.Append(Step{Result: 10, Kind: NumberEntry})
	tp.Append(Step{Expression: "(5×3)", Result: 15, Kind: CompoundOperation, Operator: token.OpAdd})
	tp.Append(Step{Expression: "(2×3)", Result: 6, Kind: CompoundOperation, Operator: token.OpAdd})

	got, err := tp.Evaluate()
	if err != nil {
		t.Fatalf("Evaluate error = %v", err)
	}
	if got != 31 {
		t.Errorf("Evaluate = %g, want 31", got)
	}
}

func TestEvaluateSingleCompound(t *testing.T) {
	tp := New()
	tp.Append(Step{Expression: "(4×5)", Result: 20, Kind: CompoundOperation})

	got, err := tp.Evaluate()
	if err != nil {
		t.Fatalf("Evaluate error = %v", err)
	}
	if got != 20 {
		t.Errorf("single compound tape = %g, want 20", got)
	}
}

func TestEvaluateDivisionByZeroStep(t *testing.T) {
	tp := New()
	tp.Append(Step{Result: 10, Kind: NumberEntry})
	tp.Append(Step{Result: 0, Kind: NumberEntry, Operator: token.OpDiv})

	got, err := tp.Evaluate()
	if err != nil {
		t.Fatalf("Evaluate error = %v", err)
	}
	if got != 0 {
		t.Errorf("division by zero step = %g, want 0", got)
	}
}

func TestEvaluateEmptyTape(t *testing.T) {
	got, err := New().Evaluate()
	if err != nil || got != 0 {
		t.Errorf("empty tape = (%g, %v), want (0, nil)", got, err)
	}
}

func TestEvaluateMissingOperator(t *testing.T) {
	tp := New()
	tp.Append(Step{Result: 1, Kind: NumberEntry})
	tp.Append(Step{Result: 2, Kind: NumberEntry}) // no operator

	if _, err := tp.Evaluate(); !errors.Is(err, ErrInvalidTape) {
		t.Errorf("error = %v, want ErrInvalidTape", err)
	}
}

func TestLastAllowsAmendment(t *testing.T) {
	tp := New()
	tp.Append(Step{Expression: "1", Result: 1, Kind: NumberEntry, DisplayValue: "1"})

	last := tp.Last()
	if last == nil {
		t.Fatal("Last returned nil for non-empty tape")
	}
	last.Expression = "12"
	last.Result = 12
	last.DisplayValue = "12"

	s, _ := tp.At(0)
	if s.Result != 12 || s.Expression != "12" {
		t.Errorf("amended step = %+v, want result 12", s)
	}
}

func TestRestoreRenumbers(t *testing.T) {
	tp := New()
	tp.Restore([]Step{
		{Result: 3, StepIndex: 9},
		{Result: 4, StepIndex: 0, Operator: token.OpAdd},
	})

	first, _ := tp.At(0)
	second, _ := tp.At(1)
	if first.StepIndex != 1 || second.StepIndex != 2 {
		t.Errorf("indexes = %d,%d, want 1,2", first.StepIndex, second.StepIndex)
	}
}

func TestStepsReturnsCopy(t *testing.T) {
	tp := New()
	tp.Append(Step{Result: 7, Kind: NumberEntry})

	steps := tp.Steps()
	steps[0].Result = 99

	s, _ := tp.At(0)
	if s.Result != 7 {
		t.Error("Steps should return a copy, not the backing slice")
	}
}
