// Package replay drives the AUTO tape replay: a timed walk over the
// recorded steps that emits each step's display value at a fixed interval,
// then the final result, then a completion signal.
//
// The player is the only component of the calculator with temporal
// behavior. It runs in its own goroutine, publishes through the engine's
// notifier, and can be cancelled mid-run — the engine wires its clear keys
// to the cancel function registered via BeginReplay.
package replay

import (
	"context"
	"sync"
	"sync/atomic"
	"time"

	"github.com/dshills/tapecalc/internal/engine"
)

// DefaultInterval is the delay between replayed steps.
const DefaultInterval = 800 * time.Millisecond

// Player replays the engine's tape.
type Player struct {
	eng      *engine.Engine
	interval time.Duration

	mu      sync.Mutex
	playing atomic.Bool
	cancel  context.CancelFunc
}

// Option configures a Player.
type Option func(*Player)

// WithInterval sets the inter-step delay.
func WithInterval(d time.Duration) Option {
	return func(p *Player) {
		if d > 0 {
			p.interval = d
		}
	}
}

// NewPlayer creates a player bound to an engine.
func NewPlayer(eng *engine.Engine, opts ...Option) *Player {
	p := &Player{
		eng:      eng,
		interval: DefaultInterval,
	}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

// Start begins an asynchronous replay of the engine's current tape.
// It returns immediately; step and completion events arrive through the
// engine's notifier. Starting while a replay runs, or with an empty tape,
// returns the engine's replay hook error.
func (p *Player) Start(ctx context.Context) error {
	childCtx, cancel := context.WithCancel(ctx)

	p.mu.Lock()
	if p.playing.Load() {
		p.mu.Unlock()
		cancel()
		return engine.ErrAlreadyReplaying
	}

	if err := p.eng.BeginReplay(cancel); err != nil {
		p.mu.Unlock()
		cancel()
		return err
	}

	p.cancel = cancel
	p.playing.Store(true)
	p.mu.Unlock()

	go p.run(childCtx, cancel)
	return nil
}

// run walks the tape, one tick per step, then emits the result and the
// completion signal.
func (p *Player) run(ctx context.Context, cancel context.CancelFunc) {
	defer func() {
		cancel()
		p.playing.Store(false)
		p.mu.Lock()
		p.cancel = nil
		p.mu.Unlock()
		p.eng.EndReplay()
	}()

	steps := p.eng.Steps()
	notifier := p.eng.Notifier()
	articles := p.eng.ArticleCount()
	total := len(steps)

	p.mu.Lock()
	interval := p.interval
	p.mu.Unlock()

	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for i, step := range steps {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
		}
		notifier.NotifyStep(engine.StepEvent{
			DisplayValue: step.DisplayValue,
			StepIndex:    step.StepIndex,
			TotalSteps:   total,
			CurrentStep:  i + 1,
			ArticleCount: articles,
		})
	}

	select {
	case <-ctx.Done():
		return
	case <-ticker.C:
	}

	result, err := p.eng.Result()
	if err != nil {
		return
	}
	notifier.NotifyStep(engine.StepEvent{
		DisplayValue: "=" + engine.FormatValue(result),
		StepIndex:    total,
		TotalSteps:   total,
		CurrentStep:  total + 1,
		ArticleCount: articles,
	})
	notifier.NotifyDone()
}

// SetInterval changes the inter-step delay for subsequent replays.
// A running replay keeps its current pace.
func (p *Player) SetInterval(d time.Duration) {
	if d <= 0 {
		return
	}
	p.mu.Lock()
	p.interval = d
	p.mu.Unlock()
}

// IsPlaying reports whether a replay is running.
func (p *Player) IsPlaying() bool {
	return p.playing.Load()
}

// Cancel aborts the running replay. Safe to call when idle.
func (p *Player) Cancel() {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.cancel != nil {
		p.cancel()
	}
}
