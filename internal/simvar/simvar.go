// Package simvar is the in-process channel through which simulation variables are
// read and written by name-derived identifiers.
package simvar

import (
	"math"
	"sort"
	"sync"
)

// Identifier is a stable handle for a named simulation variable.
type Identifier uint32

// Reader reads the current value of a variable.
type Reader interface {
	Read(id Identifier) float64
}

// Writer publishes a new value for a variable.
type Writer interface {
	Write(id Identifier, value float64)
}

// Registry hands out identifiers; the same name always maps to the same identifier.
type Registry struct {
	mu    sync.RWMutex
	ids   map[string]Identifier
	names []string
}

// NewRegistry creates an empty registry.
func NewRegistry() *Registry {
	return &Registry{
		ids: make(map[string]Identifier),
	}
}

// Identifier returns the identifier for name, registering it on first use.
func (r *Registry) Identifier(name string) Identifier {
	r.mu.RLock()
	id, ok := r.ids[name]
	r.mu.RUnlock()
	if ok {
		return id
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	if id, ok := r.ids[name]; ok {
		return id
	}
	id = Identifier(len(r.names))
	r.ids[name] = id
	r.names = append(r.names, name)
	return id
}

// Lookup returns the identifier of an already registered name.
func (r *Registry) Lookup(name string) (Identifier, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	id, ok := r.ids[name]
	return id, ok
}

// Name returns the name an identifier was registered with.
func (r *Registry) Name(id Identifier) string {
	r.mu.RLock()
	defer r.mu.RUnlock()

	if int(id) >= len(r.names) {
		return ""
	}
	return r.names[id]
}

// ReadBool reads a variable as a boolean; any non-zero value is true.
func ReadBool(r Reader, id Identifier) bool {
	return r.Read(id) != 0
}

// ReadPacked reads a variable holding a packed integer. Negative, NaN and
// infinite values read as 0.
func ReadPacked(r Reader, id Identifier) uint64 {
	v := r.Read(id)
	if math.IsNaN(v) || math.IsInf(v, 0) || v < 0 {
		return 0
	}
	if v >= math.MaxUint64 {
		return math.MaxUint64
	}
	return uint64(v)
}

// WriteBool writes a boolean as 1 or 0.
func WriteBool(w Writer, id Identifier, value bool) {
	if value {
		w.Write(id, 1)
	} else {
		w.Write(id, 0)
	}
}

// Store is an in-memory variable table implementing Reader and Writer.
type Store struct {
	registry *Registry
	mu       sync.RWMutex
	values   map[Identifier]float64
}

// NewStore creates an empty store bound to registry.
func NewStore(registry *Registry) *Store {
	return &Store{
		registry: registry,
		values:   make(map[Identifier]float64),
	}
}

// Read returns the value of id, or 0 if it was never written.
func (s *Store) Read(id Identifier) float64 {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.values[id]
}

// Write sets the value of id.
func (s *Store) Write(id Identifier, value float64) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.values[id] = value
}

// Set writes a variable by name.
func (s *Store) Set(name string, value float64) {
	s.Write(s.registry.Identifier(name), value)
}

// Get reads a variable by name.
func (s *Store) Get(name string) float64 {
	return s.Read(s.registry.Identifier(name))
}

// Snapshot returns all written variables keyed by name.
func (s *Store) Snapshot() map[string]float64 {
	s.mu.RLock()
	defer s.mu.RUnlock()

	snapshot := make(map[string]float64, len(s.values))
	for id, v := range s.values {
		snapshot[s.registry.Name(id)] = v
	}
	return snapshot
}

// Names returns the names of all written variables, sorted.
func (s *Store) Names() []string {
	snapshot := s.Snapshot()
	names := make([]string, 0, len(snapshot))
	for name := range snapshot {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
