// SPDX-License-Identifier: AGPL-3.0-or-later
// Copyright (c) 2023-2026 Nicholas R. Perez

// Package statement holds the catalog of statement keyword colors.
package statement

import (
	"image/color"
	"sort"
	"sync"

	"nickandperla.net/pikt/internal/scheme"
)

// Variable is the keyword name bound to the scheme's variable color.
const Variable = "variable"

// Registry maps keyword colors to keyword names.
type Registry struct {
	mu    sync.RWMutex
	names map[color.NRGBA]string
}

// NewRegistry creates an empty registry.
func NewRegistry() *Registry {
	return &Registry{names: make(map[color.NRGBA]string)}
}

// FromScheme registers the variable keyword and every stmt.* entry of s.
func FromScheme(s *scheme.Scheme) *Registry {
	r := NewRegistry()
	r.Register(Variable, s.Variable)
	for name, c := range s.Statements {
		r.Register(name, c)
	}
	return r
}

// Register binds name to c, replacing any previous binding of c.
func (r *Registry) Register(name string, c color.NRGBA) {
	c.A = 0xff
	r.mu.Lock()
	defer r.mu.Unlock()
	r.names[c] = name
}

// Statement returns the keyword registered for c.
func (r *Registry) Statement(c color.NRGBA) (string, bool) {
	c.A = 0xff
	r.mu.RLock()
	defer r.mu.RUnlock()
	name, ok := r.names[c]
	return name, ok
}

// Names returns the registered keyword names, sorted.
func (r *Registry) Names() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()
	names := make([]string, 0, len(r.names))
	for _, name := range r.names {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
