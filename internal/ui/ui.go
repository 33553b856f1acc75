// Package ui renders the calculator in a terminal: the display register on
// top, the tape below it, and a status line with memory, grand total, and
// article count. Keyboard events map to keypad tokens; replay and CHECK
// events from the engine's notifier overlay the display as they arrive.
package ui

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"sync"

	"github.com/gdamore/tcell/v2"

	"github.com/dshills/tapecalc/internal/engine"
	"github.com/dshills/tapecalc/internal/journal"
	"github.com/dshills/tapecalc/internal/replay"
)

// App owns the terminal screen and drives the engine from key events.
type App struct {
	screen  tcell.Screen
	eng     *engine.Engine
	player  *replay.Player
	jour    *journal.Journal
	log     *slog.Logger
	posted  int // completed calculations already journaled
	mu      sync.Mutex
	overlay string // replay/CHECK text shown instead of the display
	flash   string // transient error message
}

// Option configures the App.
type Option func(*App)

// WithLogger sets the structured logger. The default discards everything.
func WithLogger(log *slog.Logger) Option {
	return func(a *App) {
		if log != nil {
			a.log = log
		}
	}
}

// WithJournal records completed calculations into the given journal.
func WithJournal(j *journal.Journal) Option {
	return func(a *App) {
		a.jour = j
	}
}

// New creates the terminal app. The player must be bound to the same
// engine.
func New(eng *engine.Engine, player *replay.Player, opts ...Option) (*App, error) {
	screen, err := tcell.NewScreen()
	if err != nil {
		return nil, fmt.Errorf("create screen: %w", err)
	}

	a := &App{
		screen: screen,
		eng:    eng,
		player: player,
		log:    slog.New(slog.NewTextHandler(io.Discard, nil)),
	}
	for _, opt := range opts {
		opt(a)
	}
	return a, nil
}

// Run initializes the screen and processes events until the context ends
// or the user quits with Esc or Ctrl-C.
func (a *App) Run(ctx context.Context) error {
	if err := a.screen.Init(); err != nil {
		return fmt.Errorf("init screen: %w", err)
	}
	defer a.screen.Fini()

	// Replay and CHECK traffic arrives on other goroutines; stash it and
	// wake the event loop with an interrupt so the draw happens here.
	a.eng.Notifier().OnStep(func(ev engine.StepEvent) {
		text := ev.DisplayValue
		if ev.TotalSteps > 0 {
			text = fmt.Sprintf("%s  [%d/%d]", ev.DisplayValue, ev.CurrentStep, ev.TotalSteps+1)
		}
		a.mu.Lock()
		a.overlay = text
		a.mu.Unlock()
		_ = a.screen.PostEvent(tcell.NewEventInterrupt(nil))
	})
	a.eng.Notifier().OnDone(func() {
		a.mu.Lock()
		a.overlay = ""
		a.mu.Unlock()
		_ = a.screen.PostEvent(tcell.NewEventInterrupt(nil))
	})

	go func() {
		<-ctx.Done()
		_ = a.screen.PostEvent(tcell.NewEventInterrupt(ctxDone{}))
	}()

	for {
		a.draw()

		switch ev := a.screen.PollEvent().(type) {
		case *tcell.EventResize:
			a.screen.Sync()

		case *tcell.EventInterrupt:
			if _, done := ev.Data().(ctxDone); done {
				return ctx.Err()
			}

		case *tcell.EventKey:
			if ev.Key() == tcell.KeyEscape || ev.Key() == tcell.KeyCtrlC {
				a.player.Cancel()
				return nil
			}
			tok, ok := keyToken(ev)
			if !ok {
				continue
			}
			a.handle(tok)
		}
	}
}

// ctxDone tags the interrupt posted on context cancellation.
type ctxDone struct{}

// handle feeds one token to the engine and reacts to the outcome. AUTO
// goes through the engine like every other token; the engine's replay
// starter (wired in main) launches the player.
func (a *App) handle(tok string) {
	a.mu.Lock()
	a.flash = ""
	if tok != "CHECK→" && tok != "CHECK←" {
		a.overlay = ""
	}
	a.mu.Unlock()

	snap, err := a.eng.ProcessInput(tok)
	if err != nil {
		a.log.Warn("input rejected", "token", tok, "error", err)
		a.setFlash(err.Error())
		return
	}

	a.record(snap)
}

// record journals newly completed calculations.
func (a *App) record(snap engine.Snapshot) {
	if a.jour == nil {
		return
	}
	for a.posted < len(snap.TransactionHistory) {
		result := snap.TransactionHistory[a.posted]
		a.jour.Record(result, snap.ArticleCount, snap.Steps)
		a.posted++
	}
	// A full clear may have wiped the history.
	if a.posted > len(snap.TransactionHistory) {
		a.posted = len(snap.TransactionHistory)
	}
}

func (a *App) setFlash(msg string) {
	a.mu.Lock()
	a.flash = msg
	a.mu.Unlock()
}

// draw renders the full screen: display, tape pane, status, key help.
func (a *App) draw() {
	snap := a.eng.Snapshot()

	a.mu.Lock()
	overlay := a.overlay
	flash := a.flash
	a.mu.Unlock()

	a.screen.Clear()
	width, height := a.screen.Size()

	displayStyle := tcell.StyleDefault.Bold(true)
	if snap.IsError {
		displayStyle = displayStyle.Foreground(tcell.ColorRed)
	}

	shown := snap.Display
	if overlay != "" {
		shown = overlay
		displayStyle = displayStyle.Foreground(tcell.ColorYellow)
	}
	drawTextRight(a.screen, 0, width, shown, displayStyle)
	drawText(a.screen, 0, 1, width, lineOf('─', width), tcell.StyleDefault)

	// Tape pane: most recent steps that fit above the status rows.
	paneTop := 2
	paneBottom := height - 3
	rows := paneBottom - paneTop
	steps := snap.Steps
	if rows > 0 && len(steps) > rows {
		steps = steps[len(steps)-rows:]
	}
	for i, step := range steps {
		drawText(a.screen, 2, paneTop+i, width-2, fmt.Sprintf("%3d  %s", step.StepIndex, step.DisplayValue), tcell.StyleDefault)
	}

	status := fmt.Sprintf("M %s   GT %s   articles %d", trimNumber(snap.Memory), trimNumber(snap.GrandTotal), snap.ArticleCount)
	if snap.IsMarkupMode {
		status += "   MU"
	}
	if snap.IsReplaying {
		status += "   AUTO"
	}
	drawText(a.screen, 0, height-3, width, status, tcell.StyleDefault.Dim(true))

	if flash != "" {
		drawText(a.screen, 0, height-2, width, flash, tcell.StyleDefault.Foreground(tcell.ColorRed))
	}

	help := "digits + - * / = % | q:√ n:+/- m:M+ w:M- r:MRC g:GT u:MU a:AUTO l:LINK ←→:CHECK | c:C C:AC e:CE Esc:quit"
	drawText(a.screen, 0, height-1, width, help, tcell.StyleDefault.Dim(true))

	a.screen.Show()
}

func trimNumber(v float64) string {
	return engine.FormatValue(v)
}

func drawText(s tcell.Screen, x, y, maxWidth int, text string, style tcell.Style) {
	col := x
	for _, r := range text {
		if col >= x+maxWidth {
			break
		}
		s.SetContent(col, y, r, nil, style)
		col++
	}
}

func drawTextRight(s tcell.Screen, y, width int, text string, style tcell.Style) {
	runes := []rune(text)
	x := width - len(runes) - 1
	if x < 0 {
		x = 0
	}
	for i, r := range runes {
		s.SetContent(x+i, y, r, nil, style)
	}
}

func lineOf(r rune, n int) string {
	runes := make([]rune, n)
	for i := range runes {
		runes[i] = r
	}
	return string(runes)
}
