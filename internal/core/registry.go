package core

import "fmt"

// Color identifies a square, a goal or both by a dense index into a Registry.
type Color int

// Registry maps color labels from a puzzle file to dense Color ids.
// Ids are assigned in first-seen order. Parsers build a registry once and
// freeze it; after that it is shared read-only by simulation, search and
// rendering.
type Registry struct {
	names  []string
	ids    map[string]Color
	frozen bool
}

// NewRegistry creates an empty color registry.
func NewRegistry() *Registry {
	return &Registry{ids: make(map[string]Color)}
}

// Intern returns the id for name, registering it if it is new.
// Panics if the registry is frozen and name is unknown.
func (r *Registry) Intern(name string) Color {
	if c, ok := r.ids[name]; ok {
		return c
	}
	if r.frozen {
		panic(fmt.Sprintf("registry: color %q registered after freeze", name))
	}
	c := Color(len(r.names))
	r.names = append(r.names, name)
	r.ids[name] = c
	return c
}

// Freeze makes the registry immutable.
func (r *Registry) Freeze() {
	r.frozen = true
}

// Lookup returns the id registered for name.
func (r *Registry) Lookup(name string) (Color, bool) {
	c, ok := r.ids[name]
	return c, ok
}

// Name returns the label of a color, or a placeholder for unknown ids.
func (r *Registry) Name(c Color) string {
	if r == nil || c < 0 || int(c) >= len(r.names) {
		return fmt.Sprintf("color#%d", int(c))
	}
	return r.names[c]
}

// Names translates a sequence of colors to their labels.
func (r *Registry) Names(colors []Color) []string {
	out := make([]string, len(colors))
	for i, c := range colors {
		out[i] = r.Name(c)
	}
	return out
}

// Len returns the number of registered colors.
func (r *Registry) Len() int {
	if r == nil {
		return 0
	}
	return len(r.names)
}
