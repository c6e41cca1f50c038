package catalog

import "strings"

// Registry holds the model catalog. Content is fixed at construction
// time; all methods are safe for concurrent use.
type Registry struct {
	// specs maps canonical IDs to model specs
	specs map[string]ModelSpec

	// order preserves catalog insertion order for stable listings
	order []string
}

// NewRegistry creates a registry populated with the built-in catalog.
func NewRegistry() *Registry {
	return NewRegistryWith(builtinModels())
}

// NewRegistryWith creates a registry from an explicit spec list.
// Later entries with a duplicate ID override earlier ones without
// changing the original position, so catalog overrides keep ordering
// stable.
func NewRegistryWith(specs []ModelSpec) *Registry {
	r := &Registry{
		specs: make(map[string]ModelSpec, len(specs)),
	}
	for _, s := range specs {
		id := canonicalID(s.ID)
		s.ID = id
		if _, exists := r.specs[id]; !exists {
			r.order = append(r.order, id)
		}
		r.specs[id] = s
	}
	return r
}

// Get returns the spec for the given identifier.
// Returns *NotFoundError if the identifier is unknown.
func (r *Registry) Get(id string) (ModelSpec, error) {
	spec, ok := r.specs[canonicalID(id)]
	if !ok {
		return ModelSpec{}, &NotFoundError{ID: id}
	}
	return spec, nil
}

// List returns a snapshot of all specs matching the filter, in catalog
// insertion order. The returned slice is owned by the caller; the
// registry itself is never mutated.
func (r *Registry) List(filter Filter) []ModelSpec {
	out := make([]ModelSpec, 0, len(r.order))
	for _, id := range r.order {
		spec := r.specs[id]
		if filter.matches(spec) {
			out = append(out, spec)
		}
	}
	return out
}

// Len returns the number of models in the catalog.
func (r *Registry) Len() int {
	return len(r.order)
}

// canonicalID normalizes a model identifier: lowercase with spaces and
// underscores folded to hyphens, matching the catalog's naming scheme.
func canonicalID(id string) string {
	id = strings.ToLower(strings.TrimSpace(id))
	id = strings.ReplaceAll(id, " ", "-")
	id = strings.ReplaceAll(id, "_", "-")
	return id
}
