package model

import (
	"fmt"
	"sync"
)

// Store owns the single mutable copy of the road network and its version
// counter. The version starts at 0 and increases by exactly 1 for every
// mutation that actually changes the adjacency, so derived representations
// (visualization views, layouts) can detect staleness by comparing
// versions instead of diffing the graph.
//
// All mutations are serialized by an internal mutex; readers always get a
// point-in-time snapshot, never the live map.
type Store struct {
	mu      sync.RWMutex
	graph   Graph
	version uint64
}

// NewStore creates a store around the given initial network.
// The initial graph must satisfy Graph.Validate.
func NewStore(initial Graph) (*Store, error) {
	if err := initial.Validate(); err != nil {
		return nil, fmt.Errorf("initial network: %w", err)
	}
	return &Store{graph: initial.Clone()}, nil
}

// Snapshot returns a deep copy of the current graph and the version it
// corresponds to. Callers may hold the copy as long as they like; it will
// simply describe an older version once the store mutates.
func (s *Store) Snapshot() (Graph, uint64) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.graph.Clone(), s.version
}

// Version returns the current version counter.
func (s *Store) Version() uint64 {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.version
}

// UpdateEdgeWeight sets the travel time of the edge a–b, writing both
// directed adjacency entries so the symmetry invariant holds. The version
// is bumped only when the stored value actually changes; re-writing the
// current weight is a no-op. On any error the store is left untouched.
func (s *Store) UpdateEdgeWeight(a, b string, weight float64) error {
	if a == b {
		return fmt.Errorf("%w: %q", ErrInvalidEdge, a)
	}
	if weight <= 0 {
		return fmt.Errorf("%w: got %v", ErrInvalidWeight, weight)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	current, ok := s.graph[a][b]
	if !ok {
		return fmt.Errorf("%w: %q–%q", ErrEdgeNotFound, a, b)
	}
	if current == weight {
		return nil
	}

	s.graph[a][b] = weight
	s.graph[b][a] = weight
	s.version++
	return nil
}

// Reset replaces the whole network with the given graph and bumps the
// version unconditionally, even if the new graph is identical. Used to
// restore the baseline network or apply a reloaded network file.
func (s *Store) Reset(initial Graph) error {
	if err := initial.Validate(); err != nil {
		return fmt.Errorf("reset network: %w", err)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	s.graph = initial.Clone()
	s.version++
	return nil
}
