package uses

import "sync"

// MemoryRegistry is a concurrency-safe in-memory OptionsRegistry. It is
// suitable as the per-build-context reference table: writes are append-only
// and safe under concurrent rule compilation.
type MemoryRegistry struct {
	mu      sync.RWMutex
	entries map[string]any
}

// NewMemoryRegistry constructs an empty registry.
func NewMemoryRegistry() *MemoryRegistry {
	return &MemoryRegistry{entries: map[string]any{}}
}

// Put records options under ident.
func (r *MemoryRegistry) Put(ident string, options any) {
	r.mu.Lock()
	if r.entries == nil {
		r.entries = map[string]any{}
	}
	r.entries[ident] = options
	r.mu.Unlock()
}

// Get returns the options recorded under ident. Reads are for the downstream
// engine and tests; the compiler never consults them.
func (r *MemoryRegistry) Get(ident string) (any, bool) {
	r.mu.RLock()
	options, ok := r.entries[ident]
	r.mu.RUnlock()
	return options, ok
}

// Len reports the number of recorded idents.
func (r *MemoryRegistry) Len() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.entries)
}

// Snapshot returns a shallow copy of the registry contents.
func (r *MemoryRegistry) Snapshot() map[string]any {
	r.mu.RLock()
	defer r.mu.RUnlock()
	out := make(map[string]any, len(r.entries))
	for ident, options := range r.entries {
		out[ident] = options
	}
	return out
}
