package artifact

import (
	"fmt"
	"sync"
)

// Entry is one registered artifact: the key it was registered under and
// its resolved output path.
type Entry struct {
	Key  string
	Path string
}

// Registry maps combination keys (or stage names, for singleton stages) to
// validated artifact paths. Entries keep insertion order and are
// append-only within a run: a key is never overwritten, since each
// combination produces at most one artifact.
type Registry struct {
	mu    sync.Mutex
	order []string
	paths map[string]string
}

// NewRegistry creates an empty Registry for a single run.
func NewRegistry() *Registry {
	return &Registry{paths: make(map[string]string)}
}

// Add registers path under key. Registering an existing key is a caller
// bug and returns an error without modifying the registry.
func (r *Registry) Add(key, path string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.paths[key]; exists {
		return fmt.Errorf("artifact %q already registered", key)
	}
	r.order = append(r.order, key)
	r.paths[key] = path
	return nil
}

// Get returns the path registered under key.
func (r *Registry) Get(key string) (string, bool) {
	r.mu.Lock()
	defer r.mu.Unlock()

	path, ok := r.paths[key]
	return path, ok
}

// Len returns the number of registered artifacts.
func (r *Registry) Len() int {
	r.mu.Lock()
	defer r.mu.Unlock()

	return len(r.order)
}

// Entries returns all artifacts in insertion order.
func (r *Registry) Entries() []Entry {
	r.mu.Lock()
	defer r.mu.Unlock()

	entries := make([]Entry, 0, len(r.order))
	for _, key := range r.order {
		entries = append(entries, Entry{Key: key, Path: r.paths[key]})
	}
	return entries
}
