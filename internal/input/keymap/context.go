package keymap

import (
	"fmt"
	"strings"
)

// Context is the logical UI area a binding applies to.
type Context uint8

const (
	// TextEditing is a text entry surface.
	TextEditing Context = iota

	// GraphEditor is a node graph canvas.
	GraphEditor

	// NodeNavigation is keyboard navigation between graph nodes.
	NodeNavigation

	// TreeView is a hierarchical list.
	TreeView

	// Viewport is a 2D or 3D scene view.
	Viewport

	// Generic is the fallback context consulted after the focused one.
	Generic
)

var contextNames = [...]string{
	TextEditing:    "text-editing",
	GraphEditor:    "graph-editor",
	NodeNavigation: "node-navigation",
	TreeView:       "tree-view",
	Viewport:       "viewport",
	Generic:        "generic",
}

// String returns the context identifier (e.g., "tree-view").
func (c Context) String() string {
	if int(c) < len(contextNames) {
		return contextNames[c]
	}
	return fmt.Sprintf("Context(%d)", c)
}

// IsValid returns true for the declared contexts.
func (c Context) IsValid() bool {
	return int(c) < len(contextNames)
}

// Contexts returns every declared context in order.
func Contexts() []Context {
	out := make([]Context, len(contextNames))
	for i := range contextNames {
		out[i] = Context(i)
	}
	return out
}

// ParseContext returns the context for a name. Matching ignores case and
// treats '-', '_' and ' ' alike, so "TreeView", "tree_view" and
// "tree-view" all parse. An empty name is Generic.
func ParseContext(name string) (Context, error) {
	norm := normalizeName(name)
	if norm == "" {
		return Generic, nil
	}
	for i, n := range contextNames {
		if normalizeName(n) == norm {
			return Context(i), nil
		}
	}
	return 0, fmt.Errorf("%w: %q", ErrInvalidContext, name)
}

func normalizeName(s string) string {
	return strings.Map(func(r rune) rune {
		switch r {
		case '-', '_', ' ':
			return -1
		}
		return r
	}, strings.ToLower(strings.TrimSpace(s)))
}
