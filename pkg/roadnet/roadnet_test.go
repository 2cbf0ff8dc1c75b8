package roadnet

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/trafficlab/route-planner/pkg/model"
)

func TestDefaultIsValid(t *testing.T) {
	g := Default()
	if err := g.Validate(); err != nil {
		t.Fatalf("Baseline network is invalid: %v", err)
	}
	if len(g) == 0 {
		t.Fatal("Baseline network is empty")
	}
}

func TestFromEdges(t *testing.T) {
	g, err := FromEdges([]model.Edge{
		{A: "A", B: "B", Weight: 5},
		{A: "B", B: "C", Weight: 3},
	})
	if err != nil {
		t.Fatalf("FromEdges failed: %v", err)
	}

	if w, ok := g.Weight("B", "A"); !ok || w != 5 {
		t.Errorf("Expected mirrored weight 5 for B→A, got %v (ok=%t)", w, ok)
	}
	if err := g.Validate(); err != nil {
		t.Errorf("Built graph failed validation: %v", err)
	}
}

func TestFromEdgesErrors(t *testing.T) {
	cases := []struct {
		name  string
		edges []model.Edge
		want  error // nil means any error is fine
	}{
		{"self-loop", []model.Edge{{A: "A", B: "A", Weight: 1}}, model.ErrInvalidEdge},
		{"zero weight", []model.Edge{{A: "A", B: "B", Weight: 0}}, model.ErrInvalidWeight},
		{"duplicate", []model.Edge{
			{A: "A", B: "B", Weight: 1},
			{A: "A", B: "B", Weight: 2},
		}, nil},
		{"duplicate reversed", []model.Edge{
			{A: "A", B: "B", Weight: 1},
			{A: "B", B: "A", Weight: 2},
		}, nil},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := FromEdges(tc.edges)
			if err == nil {
				t.Fatal("Expected an error")
			}
			if tc.want != nil && !errors.Is(err, tc.want) {
				t.Errorf("Expected %v, got %v", tc.want, err)
			}
		})
	}
}

func TestLoad(t *testing.T) {
	path := filepath.Join(t.TempDir(), "network.json")
	content := `{"edges": [
		{"a": "Downtown", "b": "Harbor", "weight": 11},
		{"a": "Downtown", "b": "University", "weight": 8}
	]}`
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("WriteFile failed: %v", err)
	}

	g, err := Load(path)
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if w, ok := g.Weight("Harbor", "Downtown"); !ok || w != 11 {
		t.Errorf("Expected Harbor→Downtown weight 11, got %v (ok=%t)", w, ok)
	}
}

func TestLoadErrors(t *testing.T) {
	if _, err := Load(filepath.Join(t.TempDir(), "missing.json")); err == nil {
		t.Error("Expected an error for a missing file")
	}

	empty := filepath.Join(t.TempDir(), "empty.json")
	if err := os.WriteFile(empty, []byte(`{"edges": []}`), 0o644); err != nil {
		t.Fatalf("WriteFile failed: %v", err)
	}
	if _, err := Load(empty); err == nil {
		t.Error("Expected an error for an empty edge list")
	}

	malformed := filepath.Join(t.TempDir(), "bad.json")
	if err := os.WriteFile(malformed, []byte(`{"edges": [`), 0o644); err != nil {
		t.Fatalf("WriteFile failed: %v", err)
	}
	if _, err := Load(malformed); err == nil {
		t.Error("Expected an error for malformed JSON")
	}
}

func TestSummarize(t *testing.T) {
	g, _ := FromEdges([]model.Edge{
		{A: "A", B: "B", Weight: 4},
		{A: "B", B: "C", Weight: 8},
	})

	stats := Summarize(g)
	if stats.Locations != 3 {
		t.Errorf("Expected 3 locations, got %d", stats.Locations)
	}
	if stats.Routes != 2 {
		t.Errorf("Expected 2 routes, got %d", stats.Routes)
	}
	if stats.AverageWeight != 6 {
		t.Errorf("Expected average 6, got %v", stats.AverageWeight)
	}
}
