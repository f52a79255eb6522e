package config

import (
	"errors"
	"fmt"

	"github.com/dshills/chordmap/internal/action"
	"github.com/dshills/chordmap/internal/input/key"
	"github.com/dshills/chordmap/internal/input/keymap"
	"github.com/dshills/chordmap/internal/input/mode"
)

// BindingSpec is one keymap entry as written in a file.
type BindingSpec struct {
	// Context is the binding context; empty means generic.
	Context string `toml:"context" yaml:"context"`

	// Mode is the mode; empty or "any" means every mode.
	Mode string `toml:"mode" yaml:"mode"`

	// Keys is the key sequence, e.g. "g g" or "<C-x><C-s>".
	Keys string `toml:"keys" yaml:"keys"`

	// Action names a registered action.
	Action string `toml:"action" yaml:"action"`

	// Description overrides the action's description in listings.
	Description string `toml:"description" yaml:"description"`
}

// KeymapFile is the content of a keymap file.
type KeymapFile struct {
	Bindings []BindingSpec `toml:"bindings" yaml:"bindings"`

	// Source is the path the file was read from.
	Source string `toml:"-" yaml:"-"`
}

// LoadKeymap reads a keymap file.
func LoadKeymap(path string) (*KeymapFile, error) {
	km := &KeymapFile{Source: path}
	if err := readFile(path, km); err != nil {
		return nil, err
	}
	return km, nil
}

// ParseKeymap decodes keymap data in the given format. source names the
// data in errors.
func ParseKeymap(source string, format Format, data []byte) (*KeymapFile, error) {
	km := &KeymapFile{Source: source}
	if err := decode(source, format, data, km); err != nil {
		return nil, err
	}
	return km, nil
}

// Resolved is a BindingSpec with its names parsed.
type Resolved struct {
	Context  keymap.Context
	Mode     mode.Mode
	Sequence key.Sequence
}

// Resolve parses the spec's context, mode and keys, with "<leader>"
// in the keys replaced by leader.
func (b BindingSpec) Resolve(leader string) (Resolved, error) {
	ctx, err := keymap.ParseContext(b.Context)
	if err != nil {
		return Resolved{}, err
	}
	m, err := mode.ParseMode(b.Mode)
	if err != nil {
		return Resolved{}, err
	}
	keys := key.ExpandLeader(b.Keys, leader)
	seq, err := key.ParseSequence(keys)
	if err != nil {
		return Resolved{}, fmt.Errorf("keys %q: %w", b.Keys, err)
	}
	return Resolved{Context: ctx, Mode: m, Sequence: seq}, nil
}

// ApplyKeymap registers every binding of km in forest, resolving actions
// through registry. Valid entries are registered even when others fail.
// The returned error joins one *BindingError per failed entry.
func ApplyKeymap(forest *keymap.Forest, registry *action.Registry, km *KeymapFile, leader string) error {
	return applyBindings(forest, registry, km.Source, km.Bindings, leader)
}

func applyBindings(forest *keymap.Forest, registry *action.Registry, source string, specs []BindingSpec, leader string) error {
	var errs []error
	for i, spec := range specs {
		if err := applyBinding(forest, registry, spec, leader); err != nil {
			errs = append(errs, &BindingError{Source: source, Index: i + 1, Keys: spec.Keys, Err: err})
		}
	}
	return errors.Join(errs...)
}

func applyBinding(forest *keymap.Forest, registry *action.Registry, spec BindingSpec, leader string) error {
	r, err := spec.Resolve(leader)
	if err != nil {
		return err
	}
	a, err := registry.Lookup(spec.Action)
	if err != nil {
		return err
	}
	label := spec.Description
	if label == "" {
		label = a.Name
	}
	return forest.Register(keymap.Binding{
		Context:  r.Context,
		Mode:     r.Mode,
		Sequence: r.Sequence,
		Callback: a.Callback(registry.ErrorFunc()),
		Label:    label,
	})
}
