package c3

import (
	"reflect"
	"testing"
)

func fixedParents(graph map[Fqon][]Fqon) Parents {
	return func(name Fqon) ([]Fqon, error) {
		return graph[name], nil
	}
}

func TestLinearizeDiamond(t *testing.T) {
	// D inherits (B, C), both inherit A: classic diamond.
	graph := map[Fqon][]Fqon{
		"D": {"B", "C"},
		"B": {"A"},
		"C": {"A"},
		"A": nil,
	}

	got, err := Linearize("D", fixedParents(graph))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	want := []Fqon{"D", "B", "C", "A"}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("Linearize(D) = %v, want %v", got, want)
	}
}

func TestLinearizeNoParents(t *testing.T) {
	graph := map[Fqon][]Fqon{"Root": nil}
	got, err := Linearize("Root", fixedParents(graph))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if want := []Fqon{"Root"}; !reflect.DeepEqual(got, want) {
		t.Errorf("Linearize(Root) = %v, want %v", got, want)
	}
}

func TestLinearizeCycleDetected(t *testing.T) {
	graph := map[Fqon][]Fqon{
		"A": {"B"},
		"B": {"A"},
	}
	_, err := Linearize("A", fixedParents(graph))
	if err == nil {
		t.Fatal("expected a cycle error, got nil")
	}
}

func TestLinearizeInconsistentOrder(t *testing.T) {
	// X inherits (A, B), Y inherits (B, A): contradictory precedence.
	graph := map[Fqon][]Fqon{
		"Z": {"X", "Y"},
		"X": {"A", "B"},
		"Y": {"B", "A"},
		"A": nil,
		"B": nil,
	}
	_, err := Linearize("Z", fixedParents(graph))
	if err == nil {
		t.Fatal("expected an inconsistent-order error, got nil")
	}
}

func TestLinearizeDeclarationOrderPreference(t *testing.T) {
	// Multiple inheritance preserves declared parent precedence.
	graph := map[Fqon][]Fqon{
		"C": {"A", "B"},
		"A": nil,
		"B": nil,
	}
	got, err := Linearize("C", fixedParents(graph))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	want := []Fqon{"C", "A", "B"}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("Linearize(C) = %v, want %v", got, want)
	}
}
