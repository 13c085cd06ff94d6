package cache

import (
	"strings"
	"sync"
)

// Views is a process-local cache of assembled read responses, keyed by
// request path. Mutation handlers invalidate the paths that embed the
// mutated entity, and only after the store write is confirmed.
type Views struct {
	mu      sync.RWMutex
	entries map[string]any
}

func NewViews() *Views {
	return &Views{entries: make(map[string]any)}
}

// Get returns the cached response for a path, if any.
func (v *Views) Get(path string) (any, bool) {
	v.mu.RLock()
	defer v.mu.RUnlock()
	entry, ok := v.entries[path]
	return entry, ok
}

// Set stores the assembled response for a path.
func (v *Views) Set(path string, value any) {
	v.mu.Lock()
	defer v.mu.Unlock()
	v.entries[path] = value
}

// Invalidate drops the cached responses for the given paths.
func (v *Views) Invalidate(paths ...string) {
	v.mu.Lock()
	defer v.mu.Unlock()
	for _, path := range paths {
		delete(v.entries, path)
	}
}

// InvalidatePrefix drops every cached response whose path starts with
// prefix. Used for parameterized listings such as per-category skills.
func (v *Views) InvalidatePrefix(prefix string) {
	v.mu.Lock()
	defer v.mu.Unlock()
	for path := range v.entries {
		if strings.HasPrefix(path, prefix) {
			delete(v.entries, path)
		}
	}
}

// Len reports the number of cached paths.
func (v *Views) Len() int {
	v.mu.RLock()
	defer v.mu.RUnlock()
	return len(v.entries)
}
