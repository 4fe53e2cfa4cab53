package led

import (
	"slices"
	"strings"
	"sync"
)

// Registry maps sequence names to sequences.
type Registry struct {
	mu        sync.RWMutex
	sequences map[string]*Sequence
}

// NewRegistry creates an empty registry.
func NewRegistry() *Registry {
	return &Registry{
		sequences: make(map[string]*Sequence),
	}
}

// Add inserts or replaces the sequence stored under name.
func (r *Registry) Add(name string, seq *Sequence) error {
	if strings.TrimSpace(name) == "" {
		return NewError(ErrCodeInvalidArgument, "sequence name cannot be empty", nil)
	}
	if seq == nil || seq.Len() == 0 {
		return NewError(ErrCodeInvalidArgument, "sequence cannot be empty", nil)
	}

	r.mu.Lock()
	r.sequences[name] = seq
	r.mu.Unlock()
	return nil
}

// Get returns the sequence stored under name.
func (r *Registry) Get(name string) (*Sequence, error) {
	r.mu.RLock()
	seq, ok := r.sequences[name]
	r.mu.RUnlock()
	if !ok {
		return nil, unknownSequence(name)
	}
	return seq, nil
}

// Contains reports whether name is registered.
func (r *Registry) Contains(name string) bool {
	r.mu.RLock()
	defer r.mu.RUnlock()
	_, ok := r.sequences[name]
	return ok
}

// Remove deletes name and reports whether it was present.
func (r *Registry) Remove(name string) bool {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.sequences[name]; !ok {
		return false
	}
	delete(r.sequences, name)
	return true
}

// Names returns the registered names in sorted order.
func (r *Registry) Names() []string {
	r.mu.RLock()
	names := make([]string, 0, len(r.sequences))
	for name := range r.sequences {
		names = append(names, name)
	}
	r.mu.RUnlock()

	slices.Sort(names)
	return names
}

// Len returns the number of registered sequences.
func (r *Registry) Len() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.sequences)
}
