// Package route computes minimum-travel-time paths over the road network
// using Dijkstra's algorithm.
package route

import (
	"container/heap"
	"errors"
	"fmt"
	"math"

	"github.com/trafficlab/route-planner/pkg/model"
)

// ErrUnknownNode is returned when a query references a location that is
// not part of the network.
var ErrUnknownNode = errors.New("route: unknown node")

// Result describes one shortest-path computation. When no route exists
// between two valid locations, Found is false and Path is nil; absence of
// a route is a normal outcome, not an error.
type Result struct {
	Path        []string `json:"path"`
	TotalWeight float64  `json:"totalWeight"`
	Found       bool     `json:"found"`
}

// frontierItem is one entry in the min-priority frontier.
type frontierItem struct {
	node string
	dist float64
}

// frontier is a binary min-heap over tentative distances. Ties are broken
// by node label so extraction order is deterministic for a fixed input.
type frontier []frontierItem

func (f frontier) Len() int { return len(f) }

func (f frontier) Less(i, j int) bool {
	if f[i].dist != f[j].dist {
		return f[i].dist < f[j].dist
	}
	return f[i].node < f[j].node
}

func (f frontier) Swap(i, j int) { f[i], f[j] = f[j], f[i] }

func (f *frontier) Push(x any) { *f = append(*f, x.(frontierItem)) }

func (f *frontier) Pop() any {
	old := *f
	n := len(old)
	item := old[n-1]
	*f = old[:n-1]
	return item
}

// ShortestPath computes the minimum-total-weight path from source to
// destination over g. It fails with ErrUnknownNode if either endpoint is
// absent. source == destination yields a trivial single-node path with
// weight 0.
//
// The frontier uses the lazy decrease-key pattern: improved distances push
// duplicate entries and stale ones are skipped on extraction. The loop
// stops as soon as the destination is extracted, since its distance is
// final at that point. Complexity O((V+E) log V).
func ShortestPath(g model.Graph, source, destination string) (Result, error) {
	if !g.HasNode(source) {
		return Result{}, fmt.Errorf("%w: %q", ErrUnknownNode, source)
	}
	if !g.HasNode(destination) {
		return Result{}, fmt.Errorf("%w: %q", ErrUnknownNode, destination)
	}

	if source == destination {
		return Result{Path: []string{source}, TotalWeight: 0, Found: true}, nil
	}

	dist := make(map[string]float64, len(g))
	prev := make(map[string]string, len(g))
	visited := make(map[string]bool, len(g))
	for node := range g {
		dist[node] = math.Inf(1)
	}
	dist[source] = 0

	pq := make(frontier, 0, len(g))
	heap.Init(&pq)
	heap.Push(&pq, frontierItem{node: source, dist: 0})

	for pq.Len() > 0 {
		item := heap.Pop(&pq).(frontierItem)
		u := item.node
		if visited[u] {
			continue
		}
		visited[u] = true

		if u == destination {
			break
		}

		for v, w := range g[u] {
			if visited[v] {
				continue
			}
			if candidate := dist[u] + w; candidate < dist[v] {
				dist[v] = candidate
				prev[v] = u
				heap.Push(&pq, frontierItem{node: v, dist: candidate})
			}
		}
	}

	if !visited[destination] {
		return Result{}, nil
	}

	// Walk predecessors back from the destination and reverse.
	path := []string{destination}
	for node := destination; node != source; {
		node = prev[node]
		path = append(path, node)
	}
	for i, j := 0, len(path)-1; i < j; i, j = i+1, j-1 {
		path[i], path[j] = path[j], path[i]
	}

	return Result{Path: path, TotalWeight: dist[destination], Found: true}, nil
}

// PathEdges expands a path into its consecutive (from, to) segments,
// e.g. [A B C] → [{A B} {B C}]. Used by the visualization layer to
// highlight the route.
func PathEdges(path []string) [][2]string {
	if len(path) < 2 {
		return nil
	}
	edges := make([][2]string, 0, len(path)-1)
	for i := 0; i < len(path)-1; i++ {
		edges = append(edges, [2]string{path[i], path[i+1]})
	}
	return edges
}
