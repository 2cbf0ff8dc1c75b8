package model

import (
	"errors"
	"reflect"
	"testing"
)

func TestValidate(t *testing.T) {
	cases := []struct {
		name string
		g    Graph
		want error // nil means valid
	}{
		{"empty", Graph{}, nil},
		{"valid", testGraph(), nil},
		{"self-loop", Graph{"A": {"A": 1}}, ErrInvalidEdge},
		{"zero weight", Graph{"A": {"B": 0}, "B": {"A": 0}}, ErrInvalidWeight},
		{"negative weight", Graph{"A": {"B": -1}, "B": {"A": -1}}, ErrInvalidWeight},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			err := tc.g.Validate()
			if tc.want == nil {
				if err != nil {
					t.Errorf("Expected valid graph, got %v", err)
				}
				return
			}
			if !errors.Is(err, tc.want) {
				t.Errorf("Expected %v, got %v", tc.want, err)
			}
		})
	}
}

func TestValidateAsymmetry(t *testing.T) {
	missing := Graph{"A": {"B": 5}, "B": {}}
	if err := missing.Validate(); err == nil {
		t.Error("Validate accepted a missing mirror entry")
	}

	unequal := Graph{"A": {"B": 5}, "B": {"A": 6}}
	if err := unequal.Validate(); err == nil {
		t.Error("Validate accepted asymmetric weights")
	}
}

func TestNodesSorted(t *testing.T) {
	g := testGraph()
	want := []string{"A", "B", "C"}
	if got := g.Nodes(); !reflect.DeepEqual(got, want) {
		t.Errorf("Expected nodes %v, got %v", want, got)
	}
}

func TestEdgesCanonical(t *testing.T) {
	g := testGraph()
	want := []Edge{
		{A: "A", B: "B", Weight: 5},
		{A: "A", B: "C", Weight: 10},
		{A: "B", B: "C", Weight: 3},
	}
	if got := g.Edges(); !reflect.DeepEqual(got, want) {
		t.Errorf("Expected edges %v, got %v", want, got)
	}
}

func TestCloneIsDeep(t *testing.T) {
	g := testGraph()
	clone := g.Clone()
	clone["A"]["B"] = 42

	if w, _ := g.Weight("A", "B"); w != 5 {
		t.Errorf("Clone shares storage with the original: got %v", w)
	}
}
