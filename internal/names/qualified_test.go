package names

import "testing"

func TestItemEqual(t *testing.T) {
	m := Module{Path: "core"}
	a := Item{Parent: m, Name: "Vec"}
	b := Item{Parent: m, Name: "Vec"}
	c := Item{Parent: m, Name: "Box"}
	if !a.Equal(b) {
		t.Fatalf("expected %s == %s", a, b)
	}
	if a.Equal(c) {
		t.Fatalf("did not expect %s == %s", a, c)
	}
}

func TestInstanceEqualRequiresSameID(t *testing.T) {
	m := Module{Path: "core"}
	trait := Item{Parent: m, Name: "Clone"}
	a := Instance{Parent: trait, ID: 1}
	b := Instance{Parent: trait, ID: 1}
	c := Instance{Parent: trait, ID: 2}
	if !a.Equal(b) {
		t.Fatalf("expected same-id instances to be equal")
	}
	if a.Equal(c) {
		t.Fatalf("did not expect different-id instances to be equal")
	}
}

func TestMonomorphizedString(t *testing.T) {
	m := Module{Path: "core"}
	item := Item{Parent: m, Name: "Vec"}
	mono := Monomorphized{Parent: item, Args: []string{"Int", "Bool"}}
	if mono.String() != "core.Vec[Int, Bool]" {
		t.Fatalf("unexpected rendering: %s", mono.String())
	}
}

func TestLessOrdersDeterministically(t *testing.T) {
	m := Module{Path: "core"}
	a := Item{Parent: m, Name: "A"}
	b := Item{Parent: m, Name: "B"}
	if !Less(a, b) {
		t.Fatalf("expected A < B")
	}
	if Less(b, a) {
		t.Fatalf("did not expect B < A")
	}
	if Less(a, a) {
		t.Fatalf("Less must be irreflexive")
	}
}
