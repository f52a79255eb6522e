package config

import (
	"os"
	"path/filepath"
	"strconv"
	"strings"
)

// EnvPrefix is the prefix of environment variables read by ApplyEnv.
const EnvPrefix = "CHORDMAP_"

// LookupFunc looks up an environment variable.
type LookupFunc func(name string) (string, bool)

// envMapping maps variable names, without the prefix, to setters.
var envMapping = map[string]func(s *Settings, val string){
	"LOG_LEVEL":       func(s *Settings, v string) { s.Log.Level = strings.ToLower(v) },
	"LOG_FILE":        func(s *Settings, v string) { s.Log.File = v },
	"UI":              func(s *Settings, v string) { s.UI = strings.ToLower(v) },
	"INITIAL_MODE":    func(s *Settings, v string) { s.Input.InitialMode = v },
	"INITIAL_CONTEXT": func(s *Settings, v string) { s.Input.InitialContext = v },
	"LEADER":          func(s *Settings, v string) { s.Input.Leader = v },
	"WATCH": func(s *Settings, v string) {
		if b, err := strconv.ParseBool(v); err == nil {
			s.Watch = b
		}
	},
	"KEYMAPS": func(s *Settings, v string) { s.Keymaps = splitList(v) },
	"SCRIPTS": func(s *Settings, v string) { s.Scripts = splitList(v) },
}

// ApplyEnv overrides settings from CHORDMAP_* variables found by lookup.
// A nil lookup reads the process environment. Empty values count as set.
func (s *Settings) ApplyEnv(lookup LookupFunc) {
	if lookup == nil {
		lookup = os.LookupEnv
	}
	for name, set := range envMapping {
		if val, ok := lookup(EnvPrefix + name); ok {
			set(s, val)
		}
	}
}

// splitList splits a path list on the OS list separator.
func splitList(v string) []string {
	if v == "" {
		return nil
	}
	return filepath.SplitList(v)
}
