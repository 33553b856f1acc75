// Package config loads and watches the calculator settings file.
//
// Settings come from a TOML or YAML file, chosen by extension. A missing
// file is not an error; defaults apply. The watcher reloads the file on
// change and notifies registered listeners, so a running register picks up
// a new replay interval or clear policy without restarting.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	toml "github.com/pelletier/go-toml/v2"
	"gopkg.in/yaml.v3"
)

// Config errors.
var (
	ErrUnsupportedFormat = errors.New("unsupported config format")
	ErrInvalidSetting    = errors.New("invalid setting")
)

// Settings is the calculator configuration.
type Settings struct {
	// ReplayIntervalMS is the delay between replayed tape steps.
	ReplayIntervalMS int `toml:"replay_interval_ms" yaml:"replay_interval_ms"`

	// ClearResetsGrandTotal controls whether AC/ON/C/C wipe the grand
	// total and transaction history.
	ClearResetsGrandTotal bool `toml:"clear_resets_grand_total" yaml:"clear_resets_grand_total"`

	// ScriptPath points at a Lua script defining custom keypad
	// functions. Empty disables scripting.
	ScriptPath string `toml:"script_path" yaml:"script_path"`

	// LinkFunction names the scripted function bound to the LINK key.
	LinkFunction string `toml:"link_function" yaml:"link_function"`

	// JournalCapacity bounds the transaction journal ring. Zero keeps
	// the default.
	JournalCapacity int `toml:"journal_capacity" yaml:"journal_capacity"`
}

// Default returns the default settings.
func Default() Settings {
	return Settings{
		ReplayIntervalMS:      800,
		ClearResetsGrandTotal: true,
		JournalCapacity:       200,
	}
}

// ReplayInterval returns the replay delay as a duration.
func (s Settings) ReplayInterval() time.Duration {
	return time.Duration(s.ReplayIntervalMS) * time.Millisecond
}

// Validate checks the settings for usable values.
func (s Settings) Validate() error {
	if s.ReplayIntervalMS < 0 {
		return fmt.Errorf("%w: replay_interval_ms must not be negative", ErrInvalidSetting)
	}
	if s.JournalCapacity < 0 {
		return fmt.Errorf("%w: journal_capacity must not be negative", ErrInvalidSetting)
	}
	if s.LinkFunction != "" && s.ScriptPath == "" {
		return fmt.Errorf("%w: link_function requires script_path", ErrInvalidSetting)
	}
	return nil
}

// Load reads settings from path, with defaults for absent fields.
// A missing file returns the defaults without error.
func Load(path string) (Settings, error) {
	settings := Default()

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return settings, nil
		}
		return settings, fmt.Errorf("read config: %w", err)
	}

	switch strings.ToLower(filepath.Ext(path)) {
	case ".toml":
		err = toml.Unmarshal(data, &settings)
	case ".yaml", ".yml":
		err = yaml.Unmarshal(data, &settings)
	default:
		return settings, fmt.Errorf("%w: %s", ErrUnsupportedFormat, filepath.Ext(path))
	}
	if err != nil {
		return Default(), fmt.Errorf("parse config: %w", err)
	}

	if err := settings.Validate(); err != nil {
		return Default(), err
	}
	return settings, nil
}
