package funcgroup

import "testing"

func TestProcessLinksCollapsesIntermediateHops(t *testing.T) {
	raw := []Link{
		{From: ArgVar(0), To: localVar(0)},
		{From: localVar(0), To: localVar(1)},
		{From: localVar(1), To: ResultVar()},
	}
	links := processLinks(raw)
	if len(links) != 1 || links[0] != (Link{From: ArgVar(0), To: ResultVar()}) {
		t.Fatalf("expected a single collapsed arg0->result link, got %+v", links)
	}
}

func TestProcessLinksDropsArgThatNeverReachesResult(t *testing.T) {
	raw := []Link{
		{From: ArgVar(0), To: localVar(0)},
		// local0 is never linked onward to the result.
	}
	if links := processLinks(raw); len(links) != 0 {
		t.Fatalf("expected no links, got %+v", links)
	}
}

func TestProcessLinksHandlesMultipleArgsToOneResult(t *testing.T) {
	raw := []Link{
		{From: ArgVar(0), To: ResultVar()},
		{From: ArgVar(1), To: ResultVar()},
	}
	links := processLinks(raw)
	if len(links) != 2 {
		t.Fatalf("expected two links, got %+v", links)
	}
}

func TestFunctionProfileEqualIgnoresLinkOrder(t *testing.T) {
	name := fnName("f")
	a := &FunctionProfile{Name: name, Links: []Link{{From: ArgVar(0), To: ResultVar()}, {From: ArgVar(1), To: ResultVar()}}}
	b := &FunctionProfile{Name: name, Links: []Link{{From: ArgVar(1), To: ResultVar()}, {From: ArgVar(0), To: ResultVar()}}}
	if !a.Equal(b) {
		t.Fatal("expected profiles with reordered links to compare equal")
	}
}

func TestFunctionProfileEqualDetectsLinkDifference(t *testing.T) {
	name := fnName("f")
	a := &FunctionProfile{Name: name, Links: []Link{{From: ArgVar(0), To: ResultVar()}}}
	b := &FunctionProfile{Name: name, Links: nil}
	if a.Equal(b) {
		t.Fatal("expected profiles with differing links to compare unequal")
	}
}
