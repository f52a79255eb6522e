package action

import (
	"fmt"
	"sort"
	"strings"
	"sync"

	"github.com/agnivade/levenshtein"

	"github.com/dshills/chordmap/internal/input/keymap"
)

// maxSuggestDistance is the largest edit distance offered as a suggestion.
const maxSuggestDistance = 3

// Registry maps action names to actions.
//
// Registry is safe for concurrent use.
type Registry struct {
	mu      sync.RWMutex
	actions map[string]Action
	onErr   ErrorFunc
}

// NewRegistry creates an empty registry. Errors from actions run through
// Callback are passed to onErr, which may be nil.
func NewRegistry(onErr ErrorFunc) *Registry {
	return &Registry{
		actions: make(map[string]Action),
		onErr:   onErr,
	}
}

// ErrorFunc returns the function that receives action errors.
func (r *Registry) ErrorFunc() ErrorFunc {
	return r.onErr
}

// Register adds an action. A later registration under the same name
// replaces the earlier one.
func (r *Registry) Register(a Action) error {
	if !a.Valid() {
		return fmt.Errorf("%w: %q", ErrInvalidAction, a.Name)
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	r.actions[a.Name] = a
	return nil
}

// Unregister removes an action.
func (r *Registry) Unregister(name string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	delete(r.actions, name)
}

// Get returns the named action.
func (r *Registry) Get(name string) (Action, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	a, ok := r.actions[name]
	return a, ok
}

// Has returns true if an action is registered under name.
func (r *Registry) Has(name string) bool {
	_, ok := r.Get(name)
	return ok
}

// Names returns all registered action names, sorted.
func (r *Registry) Names() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()

	names := make([]string, 0, len(r.actions))
	for name := range r.actions {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Count returns the number of registered actions.
func (r *Registry) Count() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.actions)
}

// Lookup returns the named action, or an *UnknownActionError carrying
// the closest registered name.
func (r *Registry) Lookup(name string) (Action, error) {
	if a, ok := r.Get(name); ok {
		return a, nil
	}
	return Action{}, &UnknownActionError{Name: name, Suggestion: r.Suggest(name)}
}

// Callback returns a keymap callback for the named action.
func (r *Registry) Callback(name string) (keymap.Callback, error) {
	a, err := r.Lookup(name)
	if err != nil {
		return nil, err
	}
	return a.Callback(r.onErr), nil
}

// Suggest returns the registered name closest to name, or "" when
// nothing is close enough.
func (r *Registry) Suggest(name string) string {
	name = strings.ToLower(strings.TrimSpace(name))
	if name == "" {
		return ""
	}

	best := ""
	bestDistance := maxSuggestDistance + 1
	for _, candidate := range r.Names() {
		dist := levenshtein.ComputeDistance(name, strings.ToLower(candidate))
		if dist < bestDistance {
			bestDistance = dist
			best = candidate
		}
	}
	return best
}
