package abjad

import (
	"sort"
	"sync"

	"github.com/zaibaitech/asrar-sub001/internal/domain"
)

// Registry holds the variants available to a process.
// Variants are registered during startup; lookups are safe for concurrent use.
type Registry struct {
	mu     sync.RWMutex
	tables map[string]*Table
}

// NewRegistry creates a registry with the given tables.
func NewRegistry(tables ...*Table) *Registry {
	r := &Registry{tables: make(map[string]*Table, len(tables))}
	for _, t := range tables {
		r.tables[t.Name()] = t
	}
	return r
}

// DefaultRegistry returns a registry holding every built-in variant.
func DefaultRegistry() *Registry {
	r := NewRegistry()
	for _, t := range builtins {
		r.tables[t.Name()] = t
	}
	return r
}

// Register adds a variant. Replacing an existing name is a ConfigurationError.
func (r *Registry) Register(t *Table) error {
	if t == nil {
		return &domain.ConfigurationError{Table: "letter table", Reason: "nil table"}
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, exists := r.tables[t.Name()]; exists {
		return &domain.ConfigurationError{Table: "letter table", Name: t.Name(), Reason: "variant already registered"}
	}
	r.tables[t.Name()] = t
	return nil
}

// RegisterFiles loads and registers variant tables from TOML files.
func (r *Registry) RegisterFiles(paths ...string) error {
	for _, p := range paths {
		t, err := LoadTableFile(p)
		if err != nil {
			return err
		}
		if err := r.Register(t); err != nil {
			return err
		}
	}
	return nil
}

// Lookup returns the named variant. An unknown name is a ConfigurationError;
// there is no fallback to a default.
func (r *Registry) Lookup(name string) (*Table, error) {
	r.mu.RLock()
	t, ok := r.tables[name]
	r.mu.RUnlock()
	if !ok {
		return nil, &domain.ConfigurationError{Table: "letter table", Name: name, Reason: "unknown variant"}
	}
	return t, nil
}

// MustLookup is Lookup for startup wiring; it panics on an unknown variant.
func (r *Registry) MustLookup(name string) *Table {
	t, err := r.Lookup(name)
	if err != nil {
		panic(err)
	}
	return t
}

// Names lists the registered variants in sorted order.
func (r *Registry) Names() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()
	names := make([]string, 0, len(r.tables))
	for n := range r.tables {
		names = append(names, n)
	}
	sort.Strings(names)
	return names
}
