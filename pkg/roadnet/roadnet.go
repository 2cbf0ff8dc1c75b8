// Package roadnet supplies the initial road network: a built-in baseline
// city map plus a loader for user-provided network files.
package roadnet

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/trafficlab/route-planner/pkg/model"
)

// Default returns the built-in baseline network. Weights are travel
// times in minutes under normal traffic.
func Default() model.Graph {
	edges := []model.Edge{
		{A: "Airport", B: "Tech Park", Weight: 12},
		{A: "Airport", B: "Suburbs", Weight: 25},
		{A: "City Mall", B: "Downtown", Weight: 6},
		{A: "City Mall", B: "Suburbs", Weight: 9},
		{A: "Downtown", B: "Harbor", Weight: 11},
		{A: "Downtown", B: "Old Town", Weight: 4},
		{A: "Downtown", B: "University", Weight: 8},
		{A: "Harbor", B: "Old Town", Weight: 7},
		{A: "Hospital", B: "Old Town", Weight: 5},
		{A: "Hospital", B: "University", Weight: 6},
		{A: "Stadium", B: "Suburbs", Weight: 10},
		{A: "Stadium", B: "University", Weight: 7},
		{A: "Tech Park", B: "University", Weight: 14},
	}
	g, err := FromEdges(edges)
	if err != nil {
		// The baseline is fixed data; a failure here is a programming error.
		panic(fmt.Sprintf("roadnet: invalid baseline network: %v", err))
	}
	return g
}

// FromEdges builds a symmetric adjacency graph from an undirected edge
// list, enforcing the structural invariants as it goes.
func FromEdges(edges []model.Edge) (model.Graph, error) {
	g := make(model.Graph)
	for _, e := range edges {
		if e.A == e.B {
			return nil, fmt.Errorf("%w: self-loop at %q", model.ErrInvalidEdge, e.A)
		}
		if e.Weight <= 0 {
			return nil, fmt.Errorf("%w: %q–%q has weight %v", model.ErrInvalidWeight, e.A, e.B, e.Weight)
		}
		if _, exists := g[e.A][e.B]; exists {
			return nil, fmt.Errorf("roadnet: duplicate edge %q–%q", e.A, e.B)
		}
		if g[e.A] == nil {
			g[e.A] = make(map[string]float64)
		}
		if g[e.B] == nil {
			g[e.B] = make(map[string]float64)
		}
		g[e.A][e.B] = e.Weight
		g[e.B][e.A] = e.Weight
	}
	return g, nil
}

// networkFile is the on-disk JSON format: an undirected edge list.
type networkFile struct {
	Edges []model.Edge `json:"edges"`
}

// Load reads a network file and builds the graph from it.
func Load(path string) (model.Graph, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading network file: %w", err)
	}

	var nf networkFile
	if err := json.Unmarshal(data, &nf); err != nil {
		return nil, fmt.Errorf("parsing network file %s: %w", path, err)
	}
	if len(nf.Edges) == 0 {
		return nil, fmt.Errorf("network file %s contains no edges", path)
	}

	g, err := FromEdges(nf.Edges)
	if err != nil {
		return nil, fmt.Errorf("network file %s: %w", path, err)
	}
	return g, nil
}

// Stats summarizes a network for the dashboard.
type Stats struct {
	Locations     int     `json:"locations"`
	Routes        int     `json:"routes"`
	AverageWeight float64 `json:"averageWeight"`
}

// Summarize computes network-level stats: location count, undirected
// route count, and average travel time per route.
func Summarize(g model.Graph) Stats {
	edges := g.Edges()
	s := Stats{
		Locations: len(g),
		Routes:    len(edges),
	}
	if len(edges) > 0 {
		var total float64
		for _, e := range edges {
			total += e.Weight
		}
		s.AverageWeight = total / float64(len(edges))
	}
	return s
}
