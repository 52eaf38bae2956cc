// Package registry owns the ordered collection of active doc sources and the
// set of tool names currently bound for them.
package registry

import (
	"errors"
	"fmt"
	"sync"

	"github.com/danlester/mcpdoc/internal/sources"
)

// ErrDuplicateToolName is returned when two sources resolve to the same
// capability name.
var ErrDuplicateToolName = errors.New("duplicate tool name")

// Registry is the in-memory sequence of doc sources in registration order,
// together with the tool names reserved for them. Reads take a shared lock so
// they always observe a consistent snapshot; mutations are expected to be
// serialized by the caller on top of the internal lock.
type Registry struct {
	mu       sync.RWMutex
	resolver *sources.Resolver
	entries  []sources.DocSource
	resolved []*sources.Resolved
	bound    map[string]struct{}
}

// New creates an empty registry that resolves sources with resolver.
func New(resolver *sources.Resolver) *Registry {
	return &Registry{
		resolver: resolver,
		bound:    make(map[string]struct{}),
	}
}

// Add resolves src, derives its tool name and reserves it. On a name
// collision it returns ErrDuplicateToolName and leaves the registry
// untouched. On success the source is appended to the sequence and the
// resolved capability is returned for binding.
func (r *Registry) Add(src sources.DocSource) (*sources.Resolved, error) {
	resolved, err := r.resolver.Resolve(src)
	if err != nil {
		return nil, err
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.bound[resolved.ToolName]; exists {
		return nil, fmt.Errorf("%w: %s (ensure all doc sources have unique names)", ErrDuplicateToolName, resolved.ToolName)
	}

	r.entries = append(r.entries, src)
	r.resolved = append(r.resolved, resolved)
	r.bound[resolved.ToolName] = struct{}{}
	return resolved, nil
}

// Remove deletes the first source whose resolved name matches name and
// releases its tool name, returning the released name. Removing a name that
// is not registered is a no-op, not an error: the second return is false and
// the registry is unchanged.
func (r *Registry) Remove(name string) (string, bool) {
	r.mu.Lock()
	defer r.mu.Unlock()

	for i, resolved := range r.resolved {
		if resolved.Name != name {
			continue
		}
		delete(r.bound, resolved.ToolName)
		r.entries = append(r.entries[:i], r.entries[i+1:]...)
		r.resolved = append(r.resolved[:i], r.resolved[i+1:]...)
		return resolved.ToolName, true
	}
	return "", false
}

// Find returns the resolved capability of the first source whose resolved
// name matches name.
func (r *Registry) Find(name string) (*sources.Resolved, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	for _, resolved := range r.resolved {
		if resolved.Name == name {
			return resolved, true
		}
	}
	return nil, false
}

// List returns a snapshot of the registered sources in registration order.
func (r *Registry) List() []sources.DocSource {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]sources.DocSource, len(r.entries))
	copy(out, r.entries)
	return out
}

// Len returns the number of registered sources.
func (r *Registry) Len() int {
	r.mu.RLock()
	defer r.mu.RUnlock()

	return len(r.entries)
}

// BoundNames returns the currently reserved tool names, in no particular
// order.
func (r *Registry) BoundNames() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]string, 0, len(r.bound))
	for name := range r.bound {
		out = append(out, name)
	}
	return out
}
