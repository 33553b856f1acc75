// Package main is the entry point for the tapecalc register.
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/dshills/tapecalc/internal/config"
	"github.com/dshills/tapecalc/internal/engine"
	"github.com/dshills/tapecalc/internal/journal"
	"github.com/dshills/tapecalc/internal/persist"
	"github.com/dshills/tapecalc/internal/plugin"
	"github.com/dshills/tapecalc/internal/replay"
	"github.com/dshills/tapecalc/internal/ui"
)

// Version information (set via ldflags during build).
var (
	version = "dev"
	commit  = "unknown"
	date    = "unknown"
)

func main() {
	os.Exit(run())
}

type options struct {
	configPath string
	statePath  string
	logPath    string
	logLevel   string
}

func run() int {
	opts := parseFlags()

	log := slog.New(slog.NewTextHandler(io.Discard, nil))
	if opts.logPath != "" {
		f, err := os.OpenFile(opts.logPath, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error: open log file: %v\n", err)
			return 1
		}
		defer f.Close()
		log = slog.New(slog.NewJSONHandler(f, &slog.HandlerOptions{Level: parseLevel(opts.logLevel)}))
	}

	settings, err := config.Load(opts.configPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: load config: %v\n", err)
		return 1
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// The AUTO token reaches the player through the engine's replay
	// starter; the player itself is constructed a few lines down.
	var player *replay.Player
	engOpts := []engine.Option{
		engine.WithLogger(log),
		engine.WithClearPolicy(settings.ClearResetsGrandTotal),
		engine.WithReplayStarter(func() {
			if err := player.Start(ctx); err != nil {
				log.Warn("replay start", "error", err)
			}
		}),
	}

	var scripts *plugin.Registry
	if settings.ScriptPath != "" {
		scripts = plugin.NewRegistry()
		if err := scripts.Load(settings.ScriptPath); err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			return 1
		}
		defer scripts.Close()
		if settings.LinkFunction != "" {
			engOpts = append(engOpts, engine.WithLinkFunc(scripts.Func(settings.LinkFunction)))
		}
	}

	eng := engine.New(engOpts...)

	if opts.statePath != "" {
		if err := loadState(eng, opts.statePath); err != nil {
			fmt.Fprintf(os.Stderr, "Error: load state: %v\n", err)
			return 1
		}
		defer saveState(eng, opts.statePath, log)
	}

	player = replay.NewPlayer(eng, replay.WithInterval(settings.ReplayInterval()))
	jour := journal.New(journal.WithCapacity(settings.JournalCapacity), journal.WithLogger(log))

	if opts.configPath != "" {
		watcher := config.NewWatcher(opts.configPath, log)
		watcher.OnChange(func(s config.Settings) {
			player.SetInterval(s.ReplayInterval())
			eng.SetClearPolicy(s.ClearResetsGrandTotal)
		})
		if err := watcher.Start(ctx); err != nil {
			log.Warn("config watch unavailable", "error", err)
		} else {
			defer watcher.Stop()
		}
	}

	signals := make(chan os.Signal, 1)
	signal.Notify(signals, syscall.SIGINT, syscall.SIGTERM)
	go func() {
		<-signals
		cancel()
	}()

	app, err := ui.New(eng, player, ui.WithLogger(log), ui.WithJournal(jour))
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return 1
	}

	if err := app.Run(ctx); err != nil && !errors.Is(err, context.Canceled) {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return 1
	}
	return 0
}

// loadState restores a previously exported register. A missing file is a
// fresh start, not an error.
func loadState(eng *engine.Engine, path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil
		}
		return err
	}
	return persist.ImportEngine(eng, data)
}

func saveState(eng *engine.Engine, path string, log *slog.Logger) {
	data, err := persist.ExportEngine(eng)
	if err != nil {
		log.Error("export state", "error", err)
		return
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		log.Error("write state", "path", path, "error", err)
	}
}

func parseLevel(level string) slog.Level {
	switch level {
	case "debug":
		return slog.LevelDebug
	case "warn":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}

func parseFlags() options {
	var opts options
	var showVersion bool

	flag.StringVar(&opts.configPath, "config", "tapecalc.toml", "Path to configuration file")
	flag.StringVar(&opts.configPath, "c", "tapecalc.toml", "Path to configuration file (shorthand)")
	flag.StringVar(&opts.statePath, "state", "", "Path to a saved register state (loaded on start, saved on exit)")
	flag.StringVar(&opts.logPath, "log", "", "Path to a log file (logging disabled when empty)")
	flag.StringVar(&opts.logLevel, "log-level", "info", "Log level (debug, info, warn, error)")
	flag.BoolVar(&showVersion, "version", false, "Show version information")
	flag.BoolVar(&showVersion, "v", false, "Show version information (shorthand)")

	flag.Usage = func() {
		fmt.Fprintf(os.Stderr, "Tapecalc - tape-style business calculator\n\n")
		fmt.Fprintf(os.Stderr, "Usage: tapecalc [options]\n\n")
		fmt.Fprintf(os.Stderr, "Options:\n")
		flag.PrintDefaults()
		fmt.Fprintf(os.Stderr, "\nExamples:\n")
		fmt.Fprintf(os.Stderr, "  tapecalc                       Start with defaults\n")
		fmt.Fprintf(os.Stderr, "  tapecalc -c shop.toml          Use a settings file\n")
		fmt.Fprintf(os.Stderr, "  tapecalc -state register.json  Persist the register across runs\n")
	}

	flag.Parse()

	if showVersion {
		fmt.Printf("Tapecalc %s\n", version)
		fmt.Printf("Commit: %s\n", commit)
		fmt.Printf("Built: %s\n", date)
		os.Exit(0)
	}

	switch opts.logLevel {
	case "debug", "info", "warn", "error":
	default:
		fmt.Fprintf(os.Stderr, "Error: invalid log level %q (must be debug, info, warn, or error)\n", opts.logLevel)
		os.Exit(1)
	}

	return opts
}
