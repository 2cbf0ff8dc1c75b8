// Package view builds the traversal-ready representation of the road
// network used by the visualization layer, memoized against the store's
// version counter.
package view

import (
	"sort"

	"gonum.org/v1/gonum/graph/simple"
	"gonum.org/v1/gonum/graph/topo"

	"github.com/trafficlab/route-planner/pkg/model"
)

// View is a materialized, render-ready copy of the network tagged with
// the store version it was built from. It is owned by the Cache and must
// not be mutated by callers.
type View struct {
	Version uint64       `json:"version"`
	Nodes   []string     `json:"nodes"`
	Edges   []model.Edge `json:"edges"`

	weighted *simple.WeightedUndirectedGraph
	ids      map[string]int64
	labels   map[int64]string
}

// Build materializes a view of g tagged with version.
func Build(g model.Graph, version uint64) *View {
	v := &View{
		Version:  version,
		Nodes:    g.Nodes(),
		Edges:    g.Edges(),
		weighted: simple.NewWeightedUndirectedGraph(0, 0),
		ids:      make(map[string]int64, len(g)),
		labels:   make(map[int64]string, len(g)),
	}

	for i, node := range v.Nodes {
		id := int64(i)
		v.ids[node] = id
		v.labels[id] = node
		v.weighted.AddNode(simple.Node(id))
	}
	for _, e := range v.Edges {
		v.weighted.SetWeightedEdge(simple.WeightedEdge{
			F: simple.Node(v.ids[e.A]),
			T: simple.Node(v.ids[e.B]),
			W: e.Weight,
		})
	}

	return v
}

// Weighted returns the underlying gonum graph for traversal and layout.
func (v *View) Weighted() *simple.WeightedUndirectedGraph {
	return v.weighted
}

// NodeID returns the gonum node ID for a location label.
func (v *View) NodeID(label string) (int64, bool) {
	id, ok := v.ids[label]
	return id, ok
}

// Components returns the connected components of the network as sorted
// label groups, largest first. A result with more than one group means
// some locations are unreachable from each other.
func (v *View) Components() [][]string {
	var groups [][]string
	for _, component := range topo.ConnectedComponents(v.weighted) {
		labels := make([]string, 0, len(component))
		for _, node := range component {
			labels = append(labels, v.labels[node.ID()])
		}
		sort.Strings(labels)
		groups = append(groups, labels)
	}
	sort.Slice(groups, func(i, j int) bool {
		if len(groups[i]) != len(groups[j]) {
			return len(groups[i]) > len(groups[j])
		}
		return groups[i][0] < groups[j][0]
	})
	return groups
}
