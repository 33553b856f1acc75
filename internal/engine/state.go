package engine

import (
	"strconv"
	"strings"

	"github.com/dshills/tapecalc/internal/tape"
	"github.com/dshills/tapecalc/internal/token"
)

// pendingKind tags the pending-operation union. This replaces the
// stringly-typed operator field of older registers, where sentinel strings
// shared a field with real operators.
type pendingKind uint8

const (
	pendingNone pendingKind = iota
	pendingOp
	pendingPercent
)

// pending is the operation awaiting its right operand.
type pending struct {
	kind    pendingKind
	op      token.Op // valid for pendingOp
	operand float64  // left operand (pendingOp) or percent base (pendingPercent)
}

// repeat holds the operator and operand reapplied by continuous equals.
type repeat struct {
	valid   bool
	op      token.Op
	operand float64
}

// state is the single mutable calculator aggregate.
type state struct {
	display      string
	memory       float64
	grandTotal   float64
	pend         pending
	entering     bool // no digit typed since the last operator/equals/clear
	errState     bool
	articleCount int
	tape         *tape.Tape
	history      []float64
	markupMode   bool
	replaying    bool

	// ctxSign is the additive operator deferred while a multiplicative
	// chain is open; it prefixes the compound step the chain folds into.
	ctxSign token.Op

	// chainOpen marks the last tape step as a compound still being
	// extended by further × or ÷ presses.
	chainOpen bool

	// chainFromRunning is set when the open multiplicative chain takes
	// the tape's running total as its left operand (the operator was
	// pressed against an already-closed additive run). Such chains fold
	// as plain ×/÷ steps instead of parenthesized compounds.
	chainFromRunning bool

	// percentExpr is the display expression of a staged ×/÷ percent,
	// e.g. "(200×10%)", kept for the tape step that folds it.
	percentExpr string

	// checkCursor is the CHECK→/CHECK← position: 0..Len-1 are tape
	// steps, Len is the result slot. Negative means unset.
	checkCursor int

	// lastEq drives continuous equals.
	lastEq repeat
}

func newState() state {
	return state{
		display:     "0",
		entering:    true,
		tape:        tape.New(),
		checkCursor: -1,
	}
}

// current parses the display register. The display invariant guarantees
// it holds a finite number unless the engine is in error state.
func (s *state) current() float64 {
	text := strings.TrimSuffix(s.display, ".")
	if text == "" || text == "-" {
		return 0
	}
	v, err := strconv.ParseFloat(text, 64)
	if err != nil {
		return 0
	}
	return v
}

// recordedSteps counts the logical entries of the running calculation.
// With the base push deferred, a pending operation over an empty tape
// still represents one recorded entry.
func (s *state) recordedSteps() int {
	if n := s.tape.Len(); n > 0 {
		return n
	}
	if s.pend.kind != pendingNone {
		return 1
	}
	return 0
}

// formatNumber renders a register value without trailing zeros.
func formatNumber(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}

// Snapshot is the externally visible state, also the persistence form.
// Import/export round-trips every field losslessly.
type Snapshot struct {
	Display             string      `json:"display"`
	Memory              float64     `json:"memory"`
	GrandTotal          float64     `json:"grand_total"`
	PendingOperator     string      `json:"pending_operator,omitempty"`
	PendingOperand      *float64    `json:"pending_operand,omitempty"`
	IsEnteringNewNumber bool        `json:"is_entering_new_number"`
	IsError             bool        `json:"is_error"`
	ArticleCount        int         `json:"article_count"`
	Steps               []tape.Step `json:"steps,omitempty"`
	TransactionHistory  []float64   `json:"transaction_history,omitempty"`
	IsMarkupMode        bool        `json:"is_markup_mode"`
	IsReplaying         bool        `json:"is_replaying"`
	ReplayCursor        *int        `json:"replay_cursor,omitempty"`

	// Internal transition context, carried so a restored engine resumes
	// exactly where the exported one stopped.
	ContextSign      string   `json:"context_sign,omitempty"`
	ChainOpen        bool     `json:"chain_open,omitempty"`
	ChainFromRunning bool     `json:"chain_from_running,omitempty"`
	PercentExpr      string   `json:"percent_expr,omitempty"`
	RepeatOperator   string   `json:"repeat_operator,omitempty"`
	RepeatOperand    *float64 `json:"repeat_operand,omitempty"`
}

// PendingPercentMarker is the PendingOperator value marking a staged ×/÷
// percent result awaiting a following additive operator.
const PendingPercentMarker = "%pending"

func opFromString(s string) token.Op {
	switch s {
	case "+":
		return token.OpAdd
	case "-":
		return token.OpSub
	case "×":
		return token.OpMul
	case "÷":
		return token.OpDiv
	default:
		return token.OpNone
	}
}

// snapshot captures the state. Callers must hold the engine lock.
func (s *state) snapshot() Snapshot {
	snap := Snapshot{
		Display:             s.display,
		Memory:              s.memory,
		GrandTotal:          s.grandTotal,
		IsEnteringNewNumber: s.entering,
		IsError:             s.errState,
		ArticleCount:        s.articleCount,
		Steps:               s.tape.Steps(),
		IsMarkupMode:        s.markupMode,
		IsReplaying:         s.replaying,
		ContextSign:         s.ctxSign.String(),
		ChainOpen:           s.chainOpen,
		ChainFromRunning:    s.chainFromRunning,
		PercentExpr:         s.percentExpr,
	}

	if len(s.history) > 0 {
		snap.TransactionHistory = make([]float64, len(s.history))
		copy(snap.TransactionHistory, s.history)
	}

	switch s.pend.kind {
	case pendingOp:
		snap.PendingOperator = s.pend.op.String()
		operand := s.pend.operand
		snap.PendingOperand = &operand
	case pendingPercent:
		snap.PendingOperator = PendingPercentMarker
		operand := s.pend.operand
		snap.PendingOperand = &operand
	}

	if s.checkCursor >= 0 {
		cursor := s.checkCursor
		snap.ReplayCursor = &cursor
	}

	if s.lastEq.valid {
		snap.RepeatOperator = s.lastEq.op.String()
		operand := s.lastEq.operand
		snap.RepeatOperand = &operand
	}

	return snap
}

// restore rebuilds the state from a snapshot. Callers must hold the
// engine lock; validation happens in Engine.Restore.
func (s *state) restore(snap Snapshot) {
	*s = newState()
	s.display = snap.Display
	s.memory = snap.Memory
	s.grandTotal = snap.GrandTotal
	s.entering = snap.IsEnteringNewNumber
	s.errState = snap.IsError
	s.articleCount = snap.ArticleCount
	s.markupMode = snap.IsMarkupMode
	s.replaying = snap.IsReplaying
	s.ctxSign = opFromString(snap.ContextSign)
	s.chainOpen = snap.ChainOpen
	s.chainFromRunning = snap.ChainFromRunning
	s.percentExpr = snap.PercentExpr

	s.tape.Restore(snap.Steps)

	if len(snap.TransactionHistory) > 0 {
		s.history = make([]float64, len(snap.TransactionHistory))
		copy(s.history, snap.TransactionHistory)
	}

	switch {
	case snap.PendingOperator == PendingPercentMarker && snap.PendingOperand != nil:
		s.pend = pending{kind: pendingPercent, operand: *snap.PendingOperand}
	case snap.PendingOperator != "" && snap.PendingOperand != nil:
		s.pend = pending{kind: pendingOp, op: opFromString(snap.PendingOperator), operand: *snap.PendingOperand}
	}

	if snap.ReplayCursor != nil {
		s.checkCursor = *snap.ReplayCursor
	}

	if snap.RepeatOperator != "" && snap.RepeatOperand != nil {
		s.lastEq = repeat{valid: true, op: opFromString(snap.RepeatOperator), operand: *snap.RepeatOperand}
	}
}
