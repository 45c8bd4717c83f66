package script

import (
	"batchstamp/pkg/serrors"
	"fmt"
	"sort"
	"sync"
)

// Registry maps script names to scripts.
type Registry struct {
	mu      sync.RWMutex
	scripts map[string]Script
}

// NewRegistry creates a registry holding scripts.
func NewRegistry(scripts ...Script) (*Registry, error) {
	r := &Registry{scripts: make(map[string]Script, len(scripts))}
	for _, s := range scripts {
		if err := r.Register(s); err != nil {
			return nil, err
		}
	}

	return r, nil
}

// Register adds s under s.Name(). Names must be unique.
func (r *Registry) Register(s Script) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.scripts[s.Name()]; ok {
		return fmt.Errorf("script %q is already registered", s.Name())
	}
	r.scripts[s.Name()] = s

	return nil
}

// Get returns the script registered under name.
func (r *Registry) Get(name string) (Script, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	s, ok := r.scripts[name]
	if !ok {
		return nil, serrors.With(serrors.ErrNotFound, "script %q is not registered", name)
	}

	return s, nil
}

// Names returns the registered names in lexical order.
func (r *Registry) Names() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()

	names := make([]string, 0, len(r.scripts))
	for name := range r.scripts {
		names = append(names, name)
	}
	sort.Strings(names)

	return names
}
