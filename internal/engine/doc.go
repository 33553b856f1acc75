// Package engine implements the sequential business-calculator state
// machine: a single CalculatorState mutated by a stream of keypad tokens.
//
// The engine owns exactly one state. Each call to ProcessInput consumes one
// token, applies the transition rules, and returns a snapshot of the new
// state. Arithmetic precedence is handled the way electronic adding
// machines do it: additive entries are recorded directly on the tape, while
// multiplicative chains are deferred and folded into a single compound tape
// step carrying the additive sign that was pending when the chain opened.
//
// # Precedence model
//
// Three pieces of state drive operator handling:
//
//   - pending: the operator waiting for its right operand, with the
//     captured left operand (or a pending-percent marker)
//   - ctxSign: the additive operator deferred when a multiplicative chain
//     opened; it prefixes the compound step the chain folds into
//   - chainOpen: whether the last tape step is a compound still being
//     extended, so a chain continuation replaces it instead of appending
//
// Folding a chain closes it into a CompoundOperation step such as
// "+(5×3)=15"; the tape evaluator then folds steps left to right, which
// yields standard precedence for the fixed calculator grammar.
//
// # Concurrency
//
// Token processing is synchronous and single-threaded. A mutex guards the
// state only because the replay player reads the tape and flips the
// replaying flag from its own goroutine.
package engine
