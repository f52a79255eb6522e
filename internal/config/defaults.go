package config

import (
	"github.com/dshills/chordmap/internal/action"
	"github.com/dshills/chordmap/internal/input/keymap"
)

// DefaultsSource names the default bindings in errors.
const DefaultsSource = "defaults"

// DefaultBindings returns the bindings installed before any keymap file.
// Later registrations of the same sequence replace these.
func DefaultBindings() []BindingSpec {
	return []BindingSpec{
		// Generic
		{Context: "generic", Mode: "normal", Keys: "Z Z", Action: action.AppQuit},
		{Context: "generic", Mode: "normal", Keys: "Z Q", Action: action.AppQuit},
		{Context: "generic", Mode: "normal", Keys: "<C-c>", Action: action.AppQuit},
		{Context: "generic", Mode: "normal", Keys: "g ?", Action: action.MessageKeys},
		{Context: "generic", Mode: "any", Keys: "<C-l>", Action: action.MessageClear},
		{Context: "generic", Mode: "normal", Keys: "<leader> k", Action: action.MessageKeys},
		{Context: "generic", Mode: "normal", Keys: "g k", Action: "keys.describe"},
		{Context: "generic", Mode: "normal", Keys: "g m", Action: "message.metrics"},

		// Visual
		{Context: "generic", Mode: "visual", Keys: "V", Action: action.ModeVisualLine},
		{Context: "generic", Mode: "visual-line", Keys: "v", Action: action.ModeVisual},
		{Context: "generic", Mode: "visual", Keys: "y", Action: action.ModeNormal, Description: "Yank and leave visual"},
		{Context: "generic", Mode: "visual-line", Keys: "y", Action: action.ModeNormal, Description: "Yank and leave visual"},

		// Viewport movement
		{Context: "viewport", Mode: "normal", Keys: "j", Action: "view.down"},
		{Context: "viewport", Mode: "normal", Keys: "k", Action: "view.up"},
		{Context: "viewport", Mode: "normal", Keys: "<Down>", Action: "view.down"},
		{Context: "viewport", Mode: "normal", Keys: "<Up>", Action: "view.up"},
		{Context: "viewport", Mode: "normal", Keys: "g g", Action: "view.top"},
		{Context: "viewport", Mode: "normal", Keys: "G", Action: "view.bottom"},
		{Context: "viewport", Mode: "normal", Keys: "<C-d>", Action: "view.half-down"},
		{Context: "viewport", Mode: "normal", Keys: "<C-u>", Action: "view.half-up"},
		{Context: "viewport", Mode: "visual", Keys: "j", Action: "view.down"},
		{Context: "viewport", Mode: "visual", Keys: "k", Action: "view.up"},
		{Context: "viewport", Mode: "visual-line", Keys: "j", Action: "view.down"},
		{Context: "viewport", Mode: "visual-line", Keys: "k", Action: "view.up"},

		// Context switching
		{Context: "generic", Mode: "normal", Keys: "<Tab>", Action: "context.next"},
		{Context: "generic", Mode: "normal", Keys: "<S-Tab>", Action: "context.prev"},
	}
}

// ApplyDefaults registers DefaultBindings in forest. Bindings whose
// action is not registered are reported in the returned error.
func ApplyDefaults(forest *keymap.Forest, registry *action.Registry, leader string) error {
	return applyBindings(forest, registry, DefaultsSource, DefaultBindings(), leader)
}
