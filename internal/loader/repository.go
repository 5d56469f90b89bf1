package loader

import (
	"os"
	"sort"
	"sync"
)

// Repository is a store of environment variables.
type Repository interface {
	Lookup(name string) (string, bool)
	Set(name, value string) error
	Unset(name string) error
}

// OSRepository reads and writes the process environment.
type OSRepository struct{}

func (OSRepository) Lookup(name string) (string, bool) {
	return os.LookupEnv(name)
}

func (OSRepository) Set(name, value string) error {
	return os.Setenv(name, value)
}

func (OSRepository) Unset(name string) error {
	return os.Unsetenv(name)
}

// MapRepository is an in-memory Repository safe for concurrent use.
// The zero value is empty and ready to use.
type MapRepository struct {
	mu   sync.RWMutex
	vars map[string]string
}

// NewMapRepository returns a MapRepository holding a copy of vars.
func NewMapRepository(vars map[string]string) *MapRepository {
	r := &MapRepository{vars: make(map[string]string, len(vars))}
	for k, v := range vars {
		r.vars[k] = v
	}
	return r
}

func (r *MapRepository) Lookup(name string) (string, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	v, ok := r.vars[name]
	return v, ok
}

func (r *MapRepository) Set(name, value string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.vars == nil {
		r.vars = make(map[string]string)
	}
	r.vars[name] = value
	return nil
}

func (r *MapRepository) Unset(name string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	delete(r.vars, name)
	return nil
}

// Names returns the stored names in sorted order.
func (r *MapRepository) Names() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()
	names := make([]string, 0, len(r.vars))
	for k := range r.vars {
		names = append(names, k)
	}
	sort.Strings(names)
	return names
}
