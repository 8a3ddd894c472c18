package dropcheck

import (
	"testing"

	"github.com/sunholo/ownhir/internal/hir"
	"github.com/sunholo/ownhir/internal/hirpath"
)

func testRoot(name string) *hir.Variable {
	return hir.NewVariable(hir.Local{Name: name, ID: 0}, hir.Pos{})
}

func movePath(root *hir.Variable, line int) hirpath.Path {
	return hirpath.Path{Root: root, Location: hir.Pos{Line: line}}
}

func moveEvent(root *hir.Variable, line int) Event {
	return UsageEvent(hirpath.Usage{Path: movePath(root, line), Kind: hirpath.Move})
}

// S1: a second move of a path already moved, with no intervening
// assignment, must be flagged against the first.
func TestValidateMoveThenUseCollides(t *testing.T) {
	x := testRoot("x")
	var s EventSeries
	s.Push(moveEvent(x, 1))
	s.Push(moveEvent(x, 2))

	collisions := s.validate()
	if len(collisions) != 1 {
		t.Fatalf("expected exactly one collision, got %d: %+v", len(collisions), collisions)
	}
	c := collisions[0]
	if c.Path.Location.Line != 2 {
		t.Fatalf("collision should cite the second use's location, got %v", c.Path.Location)
	}
	if c.PrevMove.Location.Line != 1 {
		t.Fatalf("collision should cite the first use as the previous move, got %v", c.PrevMove.Location)
	}
	if c.LoopCarried {
		t.Fatal("two uses at different locations must not be flagged loop-carried")
	}
}

// A single move with no following usage raises nothing.
func TestValidateSingleMoveIsNotACollision(t *testing.T) {
	x := testRoot("x")
	var s EventSeries
	s.Push(moveEvent(x, 1))
	if collisions := s.validate(); len(collisions) != 0 {
		t.Fatalf("expected no collisions, got %+v", collisions)
	}
}

// S2: a whole-path reassignment between two moves clears the prior move.
func TestValidateReassignmentClearsPriorMove(t *testing.T) {
	x := testRoot("x")
	var s EventSeries
	s.Push(moveEvent(x, 1))
	s.Push(AssignEvent(hirpath.Path{Root: x, Location: hir.Pos{Line: 2}}))
	s.Push(moveEvent(x, 3))

	if collisions := s.validate(); len(collisions) != 0 {
		t.Fatalf("reassignment should clear the prior move, got %+v", collisions)
	}
}

// S3: a loop-carried pair is the *same* instruction observed across two
// laps, so both events share one location; the checker must still flag
// it, and must label it loop-carried rather than a plain collision.
func TestValidateLoopCarriedMove(t *testing.T) {
	x := testRoot("x")
	loc := hir.Pos{Line: 5}
	usage := hirpath.Usage{Path: hirpath.Path{Root: x, Location: loc}, Kind: hirpath.Move}

	var s EventSeries
	s.Push(UsageEvent(usage))
	s.Push(UsageEvent(usage))

	collisions := s.validate()
	if len(collisions) != 1 {
		t.Fatalf("expected exactly one collision, got %d: %+v", len(collisions), collisions)
	}
	if !collisions[0].LoopCarried {
		t.Fatal("a collision whose previous move shares the current location must be loop-carried")
	}
}

// A Ref usage of y following a move of x does not collide: paths with
// different roots never share a prefix.
func TestValidateRefUsageOfAnotherVariableDoesNotCollide(t *testing.T) {
	x := testRoot("x")
	y := testRoot("y")
	var s EventSeries
	s.Push(moveEvent(x, 1))
	s.Push(UsageEvent(hirpath.Usage{Path: movePath(y, 2), Kind: hirpath.RefUse}))

	if collisions := s.validate(); len(collisions) != 0 {
		t.Fatalf("unrelated variables must never collide, got %+v", collisions)
	}
}

// Compress drops every Noop a later move/assign leaves behind.
func TestCompressDropsOverwrittenMoves(t *testing.T) {
	x := testRoot("x")
	var s EventSeries
	s.Push(moveEvent(x, 1))
	s.Push(AssignEvent(hirpath.Path{Root: x, Location: hir.Pos{Line: 2}}))

	compressed := s.Compress()
	events := compressed.Events()
	if len(events) != 1 {
		t.Fatalf("expected the overwritten move to be dropped, got %+v", events)
	}
	if events[0].kind != eventAssign {
		t.Fatalf("expected the surviving event to be the assign, got %+v", events[0])
	}
}

// Property #3 (spec.md §8): a compressed series contains at most one live
// Move usage per overlapping path.
func TestCompressedSeriesHasAtMostOneLiveMovePerPath(t *testing.T) {
	x := testRoot("x")
	var s EventSeries
	s.Push(moveEvent(x, 1))
	s.Push(moveEvent(x, 2))
	s.Push(moveEvent(x, 3))

	compressed := s.Compress()
	moves := 0
	for _, e := range compressed.Events() {
		if e.kind == eventUsage && e.usage.Kind == hirpath.Move {
			moves++
		}
	}
	if moves != 1 {
		t.Fatalf("expected exactly one surviving move usage, got %d", moves)
	}
}
