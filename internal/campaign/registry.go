// Package campaign loads folders of numbered markdown files into a Library
// of typed models: creature catalogs, rollable tables, the calendar, and the
// name grammar. Files parse concurrently; results fold sequentially in
// filename order, so later documents overwrite earlier ones by name.
package campaign

import (
	"maps"
	"slices"
	"strings"
	"sync"

	"github.com/wrenfold/loresmith/internal/creature"
	lorerr "github.com/wrenfold/loresmith/internal/errors"
)

// Registry maps normalized creature names to templates. Writes happen only
// on the loader's fold goroutine; once a load returns, any number of readers
// may share it.
type Registry struct {
	mu        sync.RWMutex
	templates map[string]*creature.Template
}

// NewRegistry creates an empty registry.
func NewRegistry() *Registry {
	return &Registry{
		templates: make(map[string]*creature.Template),
	}
}

// Key normalizes a creature name for lookup: trimmed, lower-cased, spaces
// replaced with hyphens.
func Key(name string) string {
	return strings.ReplaceAll(strings.ToLower(strings.TrimSpace(name)), " ", "-")
}

// Put stores a template under its normalized name, reporting whether it
// replaced an existing entry.
func (r *Registry) Put(tmpl *creature.Template) bool {
	key := Key(tmpl.Name)

	r.mu.Lock()
	defer r.mu.Unlock()
	_, replaced := r.templates[key]
	r.templates[key] = tmpl
	return replaced
}

// Get looks up a template by display name or normalized key.
func (r *Registry) Get(name string) (*creature.Template, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	tmpl, ok := r.templates[Key(name)]
	if !ok {
		return nil, lorerr.NotFoundf("no creature %q", name)
	}
	return tmpl, nil
}

// Names returns every stored key in sorted order.
func (r *Registry) Names() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return slices.Sorted(maps.Keys(r.templates))
}

// Len returns the number of stored templates.
func (r *Registry) Len() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.templates)
}
