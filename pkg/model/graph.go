package model

import (
	"errors"
	"fmt"
	"sort"
)

// Sentinel errors for mutations and validation.
var (
	// ErrInvalidEdge is returned when an edge would connect a node to itself.
	ErrInvalidEdge = errors.New("model: edge endpoints must differ")

	// ErrInvalidWeight is returned for zero or negative travel times.
	ErrInvalidWeight = errors.New("model: edge weight must be positive")

	// ErrEdgeNotFound is returned when a mutation targets a non-existent edge.
	ErrEdgeNotFound = errors.New("model: edge not found")
)

// Graph is the adjacency representation of the road network:
// node → neighbor → travel time in minutes.
//
// Invariants: every entry Graph[a][b] = w has a mirror Graph[b][a] = w
// (the network is undirected), all weights are > 0, and there are no
// self-loops. Validate checks all three.
type Graph map[string]map[string]float64

// Clone returns a deep copy of the graph. Mutating the copy never
// affects the original.
func (g Graph) Clone() Graph {
	out := make(Graph, len(g))
	for node, neighbors := range g {
		m := make(map[string]float64, len(neighbors))
		for neighbor, w := range neighbors {
			m[neighbor] = w
		}
		out[node] = m
	}
	return out
}

// Nodes returns all node labels in sorted order.
func (g Graph) Nodes() []string {
	nodes := make([]string, 0, len(g))
	for node := range g {
		nodes = append(nodes, node)
	}
	sort.Strings(nodes)
	return nodes
}

// HasNode reports whether the node appears in the graph.
func (g Graph) HasNode(node string) bool {
	_, ok := g[node]
	return ok
}

// Weight returns the weight of the edge a–b, if it exists.
func (g Graph) Weight(a, b string) (float64, bool) {
	neighbors, ok := g[a]
	if !ok {
		return 0, false
	}
	w, ok := neighbors[b]
	return w, ok
}

// Edge is one undirected road segment in canonical form (A < B).
type Edge struct {
	A      string  `json:"a"`
	B      string  `json:"b"`
	Weight float64 `json:"weight"`
}

// Edges returns each undirected edge exactly once, sorted by (A, B).
func (g Graph) Edges() []Edge {
	var edges []Edge
	for node, neighbors := range g {
		for neighbor, w := range neighbors {
			if node < neighbor {
				edges = append(edges, Edge{A: node, B: neighbor, Weight: w})
			}
		}
	}
	sort.Slice(edges, func(i, j int) bool {
		if edges[i].A != edges[j].A {
			return edges[i].A < edges[j].A
		}
		return edges[i].B < edges[j].B
	})
	return edges
}

// Validate checks the structural invariants: no self-loops, positive
// weights, and symmetric adjacency entries.
func (g Graph) Validate() error {
	for node, neighbors := range g {
		for neighbor, w := range neighbors {
			if node == neighbor {
				return fmt.Errorf("%w: self-loop at %q", ErrInvalidEdge, node)
			}
			if w <= 0 {
				return fmt.Errorf("%w: %q–%q has weight %v", ErrInvalidWeight, node, neighbor, w)
			}
			mirror, ok := g[neighbor][node]
			if !ok {
				return fmt.Errorf("model: missing mirror entry %q–%q", neighbor, node)
			}
			if mirror != w {
				return fmt.Errorf("model: asymmetric weights %q–%q: %v vs %v", node, neighbor, w, mirror)
			}
		}
	}
	return nil
}
