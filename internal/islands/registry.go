package islands

import (
	"errors"
	"fmt"
	"sort"
)

// ErrNoIslands is returned when a registry is created from an empty mapping.
var ErrNoIslands = errors.New("registry needs at least one island")

// Registry owns the set of islands, keyed by name. The navigation controller
// is the sole mutator; every read hands out copies.
type Registry struct {
	byName map[string]Island
	names  []string // Sorted, for deterministic iteration
}

// NewRegistry creates islands from a name-to-specialization mapping with the
// founding defaults. The mapping must be non-empty; duplicate names cannot
// occur because the input is a map.
func NewRegistry(specs map[string]Specialization) (*Registry, error) {
	if len(specs) == 0 {
		return nil, ErrNoIslands
	}

	r := &Registry{
		byName: make(map[string]Island, len(specs)),
		names:  make([]string, 0, len(specs)),
	}
	for name, spec := range specs {
		if name == "" {
			return nil, fmt.Errorf("island name must not be empty")
		}
		r.byName[name] = New(name, spec)
		r.names = append(r.names, name)
	}
	sort.Strings(r.names)
	return r, nil
}

// Get returns a copy of the named island.
func (r *Registry) Get(name string) (Island, bool) {
	i, ok := r.byName[name]
	if !ok {
		return Island{}, false
	}
	return i.Clone(), true
}

// Put replaces the held value for an island. The name must already exist;
// islands are never created or destroyed during a run.
func (r *Registry) Put(i Island) {
	if _, ok := r.byName[i.Name]; !ok {
		return
	}
	r.byName[i.Name] = i
}

// Len returns the number of islands.
func (r *Registry) Len() int {
	return len(r.byName)
}

// Names returns the island names in sorted order.
func (r *Registry) Names() []string {
	out := make([]string, len(r.names))
	copy(out, r.names)
	return out
}

// All returns copies of every island in sorted name order.
func (r *Registry) All() []Island {
	out := make([]Island, 0, len(r.names))
	for _, name := range r.names {
		out = append(out, r.byName[name].Clone())
	}
	return out
}

// Connectivity returns a name-to-connectivity snapshot.
func (r *Registry) Connectivity() map[string]float64 {
	out := make(map[string]float64, len(r.byName))
	for name, i := range r.byName {
		out[name] = i.Connectivity
	}
	return out
}
