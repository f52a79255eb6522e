package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/dshills/chordmap/internal/input"
	"github.com/dshills/chordmap/internal/input/key"
	"github.com/dshills/chordmap/internal/input/keymap"
	"github.com/dshills/chordmap/internal/input/mode"
)

// UI names accepted by Settings.UI.
const (
	UITerminal = "terminal"
	UITea      = "tea"
)

// Log levels accepted by LogSettings.Level.
var logLevels = []string{"debug", "info", "warn", "error"}

// Settings is the top-level chordmap configuration.
type Settings struct {
	Input InputSettings `toml:"input" yaml:"input"`
	Log   LogSettings   `toml:"log" yaml:"log"`

	// Keymaps lists keymap files applied after the default bindings.
	Keymaps []string `toml:"keymaps" yaml:"keymaps"`

	// Scripts lists Lua files run at startup.
	Scripts []string `toml:"scripts" yaml:"scripts"`

	// Watch reloads keymaps and scripts when they change.
	Watch bool `toml:"watch" yaml:"watch"`

	// UI selects the host: "terminal" or "tea".
	UI string `toml:"ui" yaml:"ui"`

	// NoDefaults skips the built-in default bindings.
	NoDefaults bool `toml:"no_defaults" yaml:"no_defaults"`

	// path is the file the settings were loaded from.
	path string
}

// InputSettings configures the dispatcher.
type InputSettings struct {
	InitialMode    string `toml:"initial_mode" yaml:"initial_mode"`
	InitialContext string `toml:"initial_context" yaml:"initial_context"`

	// SwallowModifierKeys is a pointer so an absent key keeps the default.
	SwallowModifierKeys *bool `toml:"swallow_modifier_keys" yaml:"swallow_modifier_keys"`

	// Leader replaces "<leader>" in keymap sequences.
	Leader string `toml:"leader" yaml:"leader"`
}

// LogSettings configures logging.
type LogSettings struct {
	Level string `toml:"level" yaml:"level"`
	File  string `toml:"file" yaml:"file"`
}

// DefaultSettings returns the settings used when no file is given.
func DefaultSettings() Settings {
	return Settings{
		Input: InputSettings{
			InitialMode:    mode.NameInsert,
			InitialContext: keymap.Generic.String(),
			Leader:         "\\",
		},
		Log: LogSettings{
			Level: "info",
		},
		UI: UITerminal,
	}
}

// LoadSettings reads settings from path over the defaults. A missing file
// is not an error and yields the defaults. Relative keymap and script
// paths are resolved against the file's directory.
func LoadSettings(path string) (Settings, error) {
	s := DefaultSettings()
	if path == "" {
		return s, nil
	}

	if err := readFile(path, &s); err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return DefaultSettings(), nil
		}
		return s, err
	}

	s.path = path
	dir := filepath.Dir(path)
	s.Keymaps = resolvePaths(dir, s.Keymaps)
	s.Scripts = resolvePaths(dir, s.Scripts)
	s.Log.File = resolvePath(dir, s.Log.File)

	if err := s.Validate(); err != nil {
		return s, fmt.Errorf("%s: %w", path, err)
	}
	return s, nil
}

// Path returns the file the settings were loaded from, or "".
func (s Settings) Path() string {
	return s.path
}

// Validate checks every enumerated setting.
func (s Settings) Validate() error {
	var errs []error

	if m, err := mode.ParseMode(s.Input.InitialMode); err != nil {
		errs = append(errs, fmt.Errorf("%w: input.initial_mode: %v", ErrInvalidSetting, err))
	} else if !m.IsLive() {
		errs = append(errs, fmt.Errorf("%w: input.initial_mode: %q is not a live mode", ErrInvalidSetting, s.Input.InitialMode))
	}
	if _, err := keymap.ParseContext(s.Input.InitialContext); err != nil {
		errs = append(errs, fmt.Errorf("%w: input.initial_context: %v", ErrInvalidSetting, err))
	}
	if s.Input.Leader != "" {
		if _, err := key.Parse(s.Input.Leader); err != nil {
			errs = append(errs, fmt.Errorf("%w: input.leader: %v", ErrInvalidSetting, err))
		}
	}
	if !validLogLevel(s.Log.Level) {
		errs = append(errs, fmt.Errorf("%w: log.level: %q (want one of %s)", ErrInvalidSetting, s.Log.Level, strings.Join(logLevels, ", ")))
	}
	switch s.UI {
	case UITerminal, UITea:
	default:
		errs = append(errs, fmt.Errorf("%w: ui: %q (want %s or %s)", ErrInvalidSetting, s.UI, UITerminal, UITea))
	}

	return errors.Join(errs...)
}

// InputConfig converts the input settings to a dispatcher configuration.
func (s Settings) InputConfig() (input.Config, error) {
	cfg := input.DefaultConfig()

	m, err := mode.ParseMode(s.Input.InitialMode)
	if err != nil {
		return cfg, err
	}
	if !m.IsLive() {
		return cfg, fmt.Errorf("%w: initial mode %s", ErrInvalidSetting, m)
	}
	ctx, err := keymap.ParseContext(s.Input.InitialContext)
	if err != nil {
		return cfg, err
	}

	cfg.InitialMode = m
	cfg.InitialContext = ctx
	if s.Input.SwallowModifierKeys != nil {
		cfg.SwallowModifierKeys = *s.Input.SwallowModifierKeys
	}
	return cfg, nil
}

// WatchedFiles returns the files whose changes trigger a reload.
func (s Settings) WatchedFiles() []string {
	files := make([]string, 0, len(s.Keymaps)+len(s.Scripts))
	files = append(files, s.Keymaps...)
	files = append(files, s.Scripts...)
	return files
}

func validLogLevel(level string) bool {
	for _, l := range logLevels {
		if strings.EqualFold(level, l) {
			return true
		}
	}
	return false
}

func resolvePaths(dir string, paths []string) []string {
	out := make([]string, len(paths))
	for i, p := range paths {
		out[i] = resolvePath(dir, p)
	}
	return out
}

func resolvePath(dir, p string) string {
	if p == "" || filepath.IsAbs(p) {
		return p
	}
	if strings.HasPrefix(p, "~/") {
		if home, err := os.UserHomeDir(); err == nil {
			return filepath.Join(home, p[2:])
		}
	}
	return filepath.Join(dir, p)
}
