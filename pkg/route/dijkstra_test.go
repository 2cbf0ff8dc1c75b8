package route

import (
	"errors"
	"math"
	"reflect"
	"testing"

	"github.com/trafficlab/route-planner/pkg/model"
)

func triangle() model.Graph {
	return model.Graph{
		"A": {"B": 5, "C": 10},
		"B": {"A": 5, "C": 3},
		"C": {"A": 10, "B": 3},
	}
}

func TestShortestPathPrefersMultiHop(t *testing.T) {
	res, err := ShortestPath(triangle(), "A", "C")
	if err != nil {
		t.Fatalf("ShortestPath failed: %v", err)
	}
	if !res.Found {
		t.Fatal("Expected a route between A and C")
	}
	if want := []string{"A", "B", "C"}; !reflect.DeepEqual(res.Path, want) {
		t.Errorf("Expected path %v, got %v", want, res.Path)
	}
	if res.TotalWeight != 8 {
		t.Errorf("Expected total weight 8, got %v", res.TotalWeight)
	}
}

func TestShortestPathAfterTrafficUpdate(t *testing.T) {
	store, err := model.NewStore(triangle())
	if err != nil {
		t.Fatalf("NewStore failed: %v", err)
	}

	if err := store.UpdateEdgeWeight("A", "C", 2); err != nil {
		t.Fatalf("UpdateEdgeWeight failed: %v", err)
	}

	g, _ := store.Snapshot()
	res, err := ShortestPath(g, "A", "C")
	if err != nil {
		t.Fatalf("ShortestPath failed: %v", err)
	}
	if want := []string{"A", "C"}; !reflect.DeepEqual(res.Path, want) {
		t.Errorf("Expected direct path %v after update, got %v", want, res.Path)
	}
	if res.TotalWeight != 2 {
		t.Errorf("Expected total weight 2, got %v", res.TotalWeight)
	}
}

func TestShortestPathSameSourceAndDestination(t *testing.T) {
	res, err := ShortestPath(triangle(), "A", "A")
	if err != nil {
		t.Fatalf("ShortestPath failed: %v", err)
	}
	if want := []string{"A"}; !reflect.DeepEqual(res.Path, want) {
		t.Errorf("Expected trivial path %v, got %v", want, res.Path)
	}
	if res.TotalWeight != 0 {
		t.Errorf("Expected weight 0, got %v", res.TotalWeight)
	}
}

func TestShortestPathUnknownNode(t *testing.T) {
	if _, err := ShortestPath(triangle(), "A", "Z"); !errors.Is(err, ErrUnknownNode) {
		t.Errorf("Expected ErrUnknownNode for destination, got %v", err)
	}
	if _, err := ShortestPath(triangle(), "Z", "A"); !errors.Is(err, ErrUnknownNode) {
		t.Errorf("Expected ErrUnknownNode for source, got %v", err)
	}
}

func TestShortestPathNoRoute(t *testing.T) {
	g := model.Graph{
		"A": {"B": 1},
		"B": {"A": 1},
		"X": {"Y": 1},
		"Y": {"X": 1},
	}

	res, err := ShortestPath(g, "A", "X")
	if err != nil {
		t.Fatalf("Expected no error for unreachable destination, got %v", err)
	}
	if res.Found {
		t.Error("Expected Found=false for unreachable destination")
	}
	if res.Path != nil {
		t.Errorf("Expected nil path, got %v", res.Path)
	}
}

func TestShortestPathDeterministicTies(t *testing.T) {
	// Two routes A→D of equal cost; the frontier breaks distance ties by
	// label, so B is finalized before C and the B route wins every time.
	g := model.Graph{
		"A": {"B": 1, "C": 1},
		"B": {"A": 1, "D": 1},
		"C": {"A": 1, "D": 1},
		"D": {"B": 1, "C": 1},
	}

	want := []string{"A", "B", "D"}
	for i := 0; i < 20; i++ {
		res, err := ShortestPath(g, "A", "D")
		if err != nil {
			t.Fatalf("ShortestPath failed: %v", err)
		}
		if !reflect.DeepEqual(res.Path, want) {
			t.Fatalf("Run %d: expected %v, got %v", i, want, res.Path)
		}
	}
}

func TestTriangleInequality(t *testing.T) {
	g := model.Graph{
		"A": {"B": 5, "C": 10, "D": 2},
		"B": {"A": 5, "C": 3},
		"C": {"A": 10, "B": 3, "D": 4},
		"D": {"A": 2, "C": 4},
	}

	nodes := g.Nodes()
	dist := func(from, to string) float64 {
		res, err := ShortestPath(g, from, to)
		if err != nil {
			t.Fatalf("ShortestPath(%s, %s) failed: %v", from, to, err)
		}
		if !res.Found {
			return math.Inf(1)
		}
		return res.TotalWeight
	}

	for _, a := range nodes {
		for _, b := range nodes {
			for _, c := range nodes {
				if dist(a, c) > dist(a, b)+dist(b, c) {
					t.Errorf("Triangle inequality violated: d(%s,%s)=%v > d(%s,%s)+d(%s,%s)=%v",
						a, c, dist(a, c), a, b, b, c, dist(a, b)+dist(b, c))
				}
			}
		}
	}
}

func TestPathEdges(t *testing.T) {
	got := PathEdges([]string{"A", "B", "C"})
	want := [][2]string{{"A", "B"}, {"B", "C"}}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("Expected %v, got %v", want, got)
	}

	if PathEdges([]string{"A"}) != nil {
		t.Error("Expected nil for single-node path")
	}
	if PathEdges(nil) != nil {
		t.Error("Expected nil for empty path")
	}
}
