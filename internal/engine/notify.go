package engine

import "sync"

// StepEvent describes one tape position shown during replay or CHECK
// navigation. DisplayValue is the tape line text ("+(5×3)=15") or the
// "="-prefixed final result.
type StepEvent struct {
	DisplayValue string
	StepIndex    int
	TotalSteps   int
	CurrentStep  int
	ArticleCount int
}

// StepListener receives step-change events.
type StepListener func(StepEvent)

// DoneListener receives replay-completion events.
type DoneListener func()

// Notifier fans step-change and completion events out to registered
// listeners. It replaces the global event dispatch of older registers with
// an explicitly injected callback registry; the engine and replay player
// publish through it and the UI subscribes.
type Notifier struct {
	mu    sync.Mutex
	steps []StepListener
	dones []DoneListener
}

// NewNotifier creates an empty notifier.
func NewNotifier() *Notifier {
	return &Notifier{}
}

// OnStep registers a step-change listener.
func (n *Notifier) OnStep(fn StepListener) {
	if fn == nil {
		return
	}
	n.mu.Lock()
	defer n.mu.Unlock()
	n.steps = append(n.steps, fn)
}

// OnDone registers a replay-completion listener.
func (n *Notifier) OnDone(fn DoneListener) {
	if fn == nil {
		return
	}
	n.mu.Lock()
	defer n.mu.Unlock()
	n.dones = append(n.dones, fn)
}

// NotifyStep delivers a step event to every step listener, synchronously
// and in registration order.
func (n *Notifier) NotifyStep(ev StepEvent) {
	n.mu.Lock()
	listeners := make([]StepListener, len(n.steps))
	copy(listeners, n.steps)
	n.mu.Unlock()

	for _, fn := range listeners {
		fn(ev)
	}
}

// NotifyDone delivers the completion event to every done listener.
func (n *Notifier) NotifyDone() {
	n.mu.Lock()
	listeners := make([]DoneListener, len(n.dones))
	copy(listeners, n.dones)
	n.mu.Unlock()

	for _, fn := range listeners {
		fn()
	}
}
