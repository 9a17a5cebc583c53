// SPDX-License-Identifier: GPL-3.0-or-later
package plugin

import (
	"sync"

	"github.com/sievekit/go-sieve-bayes/domain"
)

// Registry is the process-wide map of named lookup stores scripts may
// reference. It is shared across all plugin invocations.
type Registry struct {
	mu     sync.RWMutex
	stores map[string]domain.LookupStore
}

func NewRegistry() *Registry {
	return &Registry{
		stores: make(map[string]domain.LookupStore),
	}
}

func (r *Registry) Add(id string, store domain.LookupStore) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.stores[id] = store
}

func (r *Registry) Get(id string) (domain.LookupStore, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	store, ok := r.stores[id]
	return store, ok
}
