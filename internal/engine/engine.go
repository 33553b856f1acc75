package engine

import (
	"fmt"
	"io"
	"log/slog"
	"strconv"
	"strings"
	"sync"

	"github.com/dshills/tapecalc/internal/tape"
	"github.com/dshills/tapecalc/internal/token"
)

// LinkFunc is a user-supplied unary function bound to the LINK key. It
// receives the displayed value and returns the replacement.
type LinkFunc func(float64) (float64, error)

// Engine drives one calculator. It owns exactly one CalculatorState and is
// mutated only through ProcessInput, Restore, and the replay hooks.
type Engine struct {
	mu sync.Mutex
	st state

	log      *slog.Logger
	notifier *Notifier
	linkFn   LinkFunc

	// replayStarter is invoked (outside the lock) when AUTO is pressed
	// and a tape exists. The wiring layer points it at the replay player.
	replayStarter func()

	// replayCancel aborts a running replay; set by the player for the
	// duration of a replay so a clear key can interrupt it.
	replayCancel func()

	// clearResetsGrandTotal controls whether the clear family wipes the
	// grand total and transaction history.
	clearResetsGrandTotal bool

	// queued holds step events produced under the lock, delivered by
	// ProcessInput after it releases the lock.
	queued []StepEvent
}

// Option configures an Engine.
type Option func(*Engine)

// WithLogger sets the structured logger. The default discards everything.
func WithLogger(log *slog.Logger) Option {
	return func(e *Engine) {
		if log != nil {
			e.log = log
		}
	}
}

// WithNotifier sets the step-change notifier shared with the replay player
// and the UI.
func WithNotifier(n *Notifier) Option {
	return func(e *Engine) {
		if n != nil {
			e.notifier = n
		}
	}
}

// WithLinkFunc binds a function to the LINK key.
func WithLinkFunc(fn LinkFunc) Option {
	return func(e *Engine) {
		e.linkFn = fn
	}
}

// WithReplayStarter sets the callback invoked when AUTO is pressed.
func WithReplayStarter(fn func()) Option {
	return func(e *Engine) {
		e.replayStarter = fn
	}
}

// WithClearPolicy controls whether a full clear also resets the grand
// total and transaction history. Default true.
func WithClearPolicy(resetGrandTotal bool) Option {
	return func(e *Engine) {
		e.clearResetsGrandTotal = resetGrandTotal
	}
}

// New creates an engine in the all-clear state.
func New(opts ...Option) *Engine {
	e := &Engine{
		st:                    newState(),
		log:                   slog.New(slog.NewTextHandler(io.Discard, nil)),
		notifier:              NewNotifier(),
		clearResetsGrandTotal: true,
	}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// SetClearPolicy changes whether the clear family resets the grand total,
// for configuration reloads on a running register.
func (e *Engine) SetClearPolicy(resetGrandTotal bool) {
	e.mu.Lock()
	e.clearResetsGrandTotal = resetGrandTotal
	e.mu.Unlock()
}

// Notifier returns the engine's step-change notifier.
func (e *Engine) Notifier() *Notifier {
	return e.notifier
}

// Snapshot returns a copy of the current state.
func (e *Engine) Snapshot() Snapshot {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.st.snapshot()
}

// Restore replaces the state with a previously exported snapshot.
func (e *Engine) Restore(snap Snapshot) error {
	if snap.Display != "Error" {
		text := strings.TrimSuffix(snap.Display, ".")
		if _, err := strconv.ParseFloat(text, 64); err != nil {
			return fmt.Errorf("%w: display %q is not a number", ErrBadSnapshot, snap.Display)
		}
	}
	if len(snap.Steps) > 0 && snap.Steps[0].Kind != tape.NumberEntry && snap.Steps[0].Kind != tape.CompoundOperation {
		return fmt.Errorf("%w: unknown step kind", ErrBadSnapshot)
	}

	e.mu.Lock()
	defer e.mu.Unlock()
	e.st.restore(snap)
	return nil
}

// ProcessInput consumes one keypad token and returns the resulting state.
// Unknown tokens put the engine into error state; while in error, or while
// a replay is running, every token except the clear family is dropped.
func (e *Engine) ProcessInput(raw string) (Snapshot, error) {
	e.mu.Lock()
	snap, startReplay, err := e.process(raw)
	events := e.queued
	e.queued = nil
	e.mu.Unlock()

	for _, ev := range events {
		e.notifier.NotifyStep(ev)
	}
	if startReplay && e.replayStarter != nil {
		e.replayStarter()
	}
	return snap, err
}

// process applies one token under the lock. It reports whether a replay
// should be started after the lock is released.
func (e *Engine) process(raw string) (Snapshot, bool, error) {
	tok, err := token.Classify(raw)
	if err != nil {
		werr := e.fail(fmt.Errorf("%w: %q", ErrInvalidToken, raw))
		return e.st.snapshot(), false, werr
	}

	if e.st.errState && !tok.IsClear() {
		return e.st.snapshot(), false, ErrErrorState
	}

	if e.st.replaying {
		if !tok.IsClear() {
			return e.st.snapshot(), false, ErrInputDuringReplay
		}
		// A clear key aborts the replay, then applies normally.
		if e.replayCancel != nil {
			e.replayCancel()
		}
		e.st.replaying = false
	}

	e.log.Debug("token", "raw", raw, "kind", tok.Kind.String(), "display", e.st.display)

	var startReplay bool
	switch tok.Kind {
	case token.KindDigit:
		e.digit(tok.Text)
	case token.KindDecimal:
		e.decimal()
	case token.KindOperator:
		err = e.operator(tok.Op)
	case token.KindEquals:
		err = e.equals()
	case token.KindSpecial:
		startReplay, err = e.special(tok.Special)
	}

	if err != nil {
		e.log.Warn("transition failed", "raw", raw, "error", err)
	}
	return e.st.snapshot(), startReplay, err
}

// fail puts the engine into error state.
func (e *Engine) fail(err error) error {
	e.st.errState = true
	e.st.display = "Error"
	e.st.entering = true
	return err
}

// special dispatches the special-key vocabulary.
func (e *Engine) special(spec token.Special) (bool, error) {
	switch spec {
	case token.SpecOnClear, token.SpecAllClear, token.SpecClear:
		e.fullClear()
	case token.SpecClearEntry:
		e.clearEntry()
	case token.SpecBackspace:
		e.backspace()
	case token.SpecSignToggle:
		e.toggleSign()
	case token.SpecMarkup:
		e.markup()
	case token.SpecMemAdd:
		return false, e.memoryAdd(1)
	case token.SpecMemSub:
		return false, e.memoryAdd(-1)
	case token.SpecMemRecall:
		e.memoryRecall()
	case token.SpecGrandTotal:
		e.showGrandTotal()
	case token.SpecPercent:
		return false, e.percent()
	case token.SpecSqrt:
		return false, e.sqrt()
	case token.SpecLink:
		return false, e.link()
	case token.SpecAuto:
		return e.replayStarter != nil && e.st.tape.Len() > 0, nil
	case token.SpecCheckForward:
		e.checkMove(1)
	case token.SpecCheckBack:
		e.checkMove(-1)
	}
	return false, nil
}

// resetCalculation clears the per-calculation fields, keeping display,
// memory, and the grand-total ledger. Used when input starts a new
// calculation on top of a completed one.
func (e *Engine) resetCalculation() {
	e.st.tape.Clear()
	e.st.pend = pending{}
	e.st.ctxSign = token.OpNone
	e.st.chainOpen = false
	e.st.chainFromRunning = false
	e.st.percentExpr = ""
	e.st.lastEq = repeat{}
	e.st.checkCursor = -1
	e.st.articleCount = 0
}
