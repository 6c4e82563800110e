package ephemeris

import (
	"sort"
	"strings"
	"sync"

	perr "bazi/internal/platform/errors"
)

// Factory opens a provider; providers are stateless so factories usually return a shared value
type Factory func() (Port, error)

// Registry maps backend names to factories
// Lookups are case-insensitive
type Registry struct {
	mu        sync.RWMutex
	factories map[string]Factory
}

// NewRegistry returns an empty registry
func NewRegistry() *Registry {
	return &Registry{factories: map[string]Factory{}}
}

// Register adds or replaces a backend under name
func (r *Registry) Register(name string, f Factory) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.factories[strings.ToLower(strings.TrimSpace(name))] = f
}

// Open returns the backend registered under name
// Unknown names are configuration errors
func (r *Registry) Open(name string) (Port, error) {
	key := strings.ToLower(strings.TrimSpace(name))
	r.mu.RLock()
	f, ok := r.factories[key]
	r.mu.RUnlock()
	if !ok {
		return nil, perr.WithField(
			perr.Configf("unsupported ephemeris backend %q (known: %s)", name, strings.Join(r.Names(), ", ")),
			"ephemeris_backend",
		)
	}
	p, err := f()
	if err != nil {
		return nil, perr.WithField(perr.Wrapf(err, perr.ErrorCodeConfiguration, "open ephemeris backend %q", name), "ephemeris_backend")
	}
	return p, nil
}

// Has reports whether name is registered
func (r *Registry) Has(name string) bool {
	r.mu.RLock()
	defer r.mu.RUnlock()
	_, ok := r.factories[strings.ToLower(strings.TrimSpace(name))]
	return ok
}

// Names lists the registered backends in sorted order
func (r *Registry) Names() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()
	out := make([]string, 0, len(r.factories))
	for k := range r.factories {
		out = append(out, k)
	}
	sort.Strings(out)
	return out
}
