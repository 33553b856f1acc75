package engine

import (
	"errors"

	"github.com/dshills/tapecalc/internal/tape"
)

// Replay hook errors.
var (
	ErrNothingToReplay  = errors.New("nothing to replay")
	ErrAlreadyReplaying = errors.New("replay already running")
)

// BeginReplay marks the engine as replaying and registers the cancel
// function a clear key uses to abort the replay. Called by the replay
// player.
func (e *Engine) BeginReplay(cancel func()) error {
	e.mu.Lock()
	defer e.mu.Unlock()

	if e.st.replaying {
		return ErrAlreadyReplaying
	}
	if e.st.tape.Len() == 0 {
		return ErrNothingToReplay
	}
	e.st.replaying = true
	e.replayCancel = cancel
	return nil
}

// EndReplay clears the replaying flag. Safe to call after an abort.
func (e *Engine) EndReplay() {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.st.replaying = false
	e.replayCancel = nil
}

// Steps returns a copy of the recorded tape.
func (e *Engine) Steps() []tape.Step {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.st.tape.Steps()
}

// Result evaluates the recorded tape.
func (e *Engine) Result() (float64, error) {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.st.tape.Evaluate()
}

// ArticleCount returns the current article counter.
func (e *Engine) ArticleCount() int {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.st.articleCount
}

// FormatValue renders a value the way the display register does.
func FormatValue(v float64) string {
	return formatNumber(v)
}
