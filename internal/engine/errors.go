package engine

import "errors"

// Engine errors.
var (
	// ErrInvalidToken reports input outside the keypad vocabulary.
	ErrInvalidToken = errors.New("invalid token")

	// ErrMarkupMarginOverflow reports a markup margin of 100% or more,
	// which would divide by zero or price below cost.
	ErrMarkupMarginOverflow = errors.New("markup margin must be below 100%")

	// ErrInputDuringReplay reports a non-clear token while a tape replay
	// is running. The token is dropped without mutating state.
	ErrInputDuringReplay = errors.New("input rejected during replay")

	// ErrErrorState reports a non-clear token while the engine is in
	// error state. The token is dropped without mutating state.
	ErrErrorState = errors.New("calculator is in error state")

	// ErrBadSnapshot reports a snapshot that cannot be restored.
	ErrBadSnapshot = errors.New("invalid snapshot")
)
