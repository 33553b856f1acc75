package config

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"
)

func TestDefault(t *testing.T) {
	s := Default()
	if s.ReplayIntervalMS != 800 {
		t.Errorf("ReplayIntervalMS = %d, want 800", s.ReplayIntervalMS)
	}
	if !s.ClearResetsGrandTotal {
		t.Error("ClearResetsGrandTotal should default to true")
	}
	if s.JournalCapacity != 200 {
		t.Errorf("JournalCapacity = %d, want 200", s.JournalCapacity)
	}
	if s.ReplayInterval() != 800*time.Millisecond {
		t.Errorf("ReplayInterval = %v, want 800ms", s.ReplayInterval())
	}
	if err := s.Validate(); err != nil {
		t.Errorf("defaults should validate: %v", err)
	}
}

func TestLoadTOML(t *testing.T) {
	path := filepath.Join(t.TempDir(), "tapecalc.toml")
	content := `
replay_interval_ms = 250
clear_resets_grand_total = false
journal_capacity = 50
`
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}

	s, err := Load(path)
	if err != nil {
		t.Fatalf("Load error = %v", err)
	}
	if s.ReplayIntervalMS != 250 {
		t.Errorf("ReplayIntervalMS = %d, want 250", s.ReplayIntervalMS)
	}
	if s.ClearResetsGrandTotal {
		t.Error("ClearResetsGrandTotal should be false")
	}
	if s.JournalCapacity != 50 {
		t.Errorf("JournalCapacity = %d, want 50", s.JournalCapacity)
	}
}

func TestLoadYAML(t *testing.T) {
	path := filepath.Join(t.TempDir(), "tapecalc.yaml")
	content := `
replay_interval_ms: 100
script_path: funcs.lua
link_function: vat
`
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}

	s, err := Load(path)
	if err != nil {
		t.Fatalf("Load error = %v", err)
	}
	if s.ReplayIntervalMS != 100 {
		t.Errorf("ReplayIntervalMS = %d, want 100", s.ReplayIntervalMS)
	}
	if s.ScriptPath != "funcs.lua" || s.LinkFunction != "vat" {
		t.Errorf("script settings = %q/%q", s.ScriptPath, s.LinkFunction)
	}
	// Absent fields keep their defaults.
	if s.JournalCapacity != 200 {
		t.Errorf("JournalCapacity = %d, want default 200", s.JournalCapacity)
	}
}

func TestLoadMissingFileReturnsDefaults(t *testing.T) {
	s, err := Load(filepath.Join(t.TempDir(), "absent.toml"))
	if err != nil {
		t.Fatalf("Load error = %v", err)
	}
	if s != Default() {
		t.Errorf("settings = %+v, want defaults", s)
	}
}

func TestLoadUnsupportedExtension(t *testing.T) {
	path := filepath.Join(t.TempDir(), "settings.ini")
	if err := os.WriteFile(path, []byte("x=1"), 0o644); err != nil {
		t.Fatal(err)
	}
	if _, err := Load(path); !errors.Is(err, ErrUnsupportedFormat) {
		t.Errorf("error = %v, want ErrUnsupportedFormat", err)
	}
}

func TestLoadInvalidSettings(t *testing.T) {
	path := filepath.Join(t.TempDir(), "bad.toml")
	if err := os.WriteFile(path, []byte("replay_interval_ms = -5\n"), 0o644); err != nil {
		t.Fatal(err)
	}
	if _, err := Load(path); !errors.Is(err, ErrInvalidSetting) {
		t.Errorf("error = %v, want ErrInvalidSetting", err)
	}

	path = filepath.Join(t.TempDir(), "link.toml")
	if err := os.WriteFile(path, []byte("link_function = \"vat\"\n"), 0o644); err != nil {
		t.Fatal(err)
	}
	if _, err := Load(path); !errors.Is(err, ErrInvalidSetting) {
		t.Errorf("link without script: error = %v, want ErrInvalidSetting", err)
	}
}

func TestWatcherReloadsOnChange(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "tapecalc.toml")
	if err := os.WriteFile(path, []byte("replay_interval_ms = 800\n"), 0o644); err != nil {
		t.Fatal(err)
	}

	w := NewWatcher(path, nil)
	got := make(chan Settings, 1)
	w.OnChange(func(s Settings) {
		select {
		case got <- s:
		default:
		}
	})

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	if err := w.Start(ctx); err != nil {
		t.Fatalf("Start error = %v", err)
	}
	defer w.Stop()

	if err := os.WriteFile(path, []byte("replay_interval_ms = 123\n"), 0o644); err != nil {
		t.Fatal(err)
	}

	select {
	case s := <-got:
		if s.ReplayIntervalMS != 123 {
			t.Errorf("reloaded ReplayIntervalMS = %d, want 123", s.ReplayIntervalMS)
		}
	case <-time.After(5 * time.Second):
		t.Fatal("no reload notification")
	}
}
