package dropcheck

import (
	"testing"

	"github.com/sunholo/ownhir/internal/hir"
	"github.com/sunholo/ownhir/internal/names"
	"github.com/sunholo/ownhir/internal/report"
)

func testCallee(name string) names.QualifiedName {
	return names.Item{Parent: names.Module{Path: "test"}, Name: name}
}

// callAt builds a side-effect-only call to callee at a distinct
// (id, line), so two occurrences in the same test are never confused
// with one instruction revisited across a loop lap.
func callAt(id uint64, line int, callee string, args ...*hir.Variable) *hir.FunctionCall {
	return &hir.FunctionCall{
		InstrNode: hir.InstrNode{InstrID: id, Location: hir.Pos{Line: line}},
		Info:      hir.CallInfo{Callee: testCallee(callee), Args: args},
	}
}

// S1 end-to-end: a function that moves x, uses it, then uses it again
// must report exactly one AlreadyMoved collision.
func TestCheckFunctionReportsMoveThenUse(t *testing.T) {
	x := hir.NewVariable(hir.Local{Name: "x", ID: 0}, hir.Pos{Line: 1})

	entry := hir.NewBlock(hir.BlockId(0))
	entry.Append(&hir.DeclareVar{Var: x, Block: hir.RootSyntaxBlock()})
	entry.Append(callAt(1, 2, "use", x))
	entry.Append(callAt(2, 3, "use", x))
	entry.Append(&hir.Return{})

	body := hir.NewBody()
	body.AddBlock(entry)

	fn := &hir.Function{Name: testCallee("f"), Body: body}

	result := CheckFunction(fn)
	if len(result.Reports) != 1 {
		t.Fatalf("expected exactly one report, got %d: %+v", len(result.Reports), result.Reports)
	}
	if result.Reports[0].Code != report.DR001 {
		t.Fatalf("expected code %s (not loop-carried), got %s", report.DR001, result.Reports[0].Code)
	}
}

// S2 end-to-end: reassigning x between two uses clears the prior move.
func TestCheckFunctionReassignmentClearsCollision(t *testing.T) {
	x := hir.NewVariable(hir.Local{Name: "x", ID: 0}, hir.Pos{Line: 1})
	y := hir.NewVariable(hir.Local{Name: "y", ID: 1}, hir.Pos{Line: 2})

	entry := hir.NewBlock(hir.BlockId(0))
	entry.Append(&hir.DeclareVar{Var: x, Block: hir.RootSyntaxBlock()})
	entry.Append(&hir.DeclareVar{Var: y, Block: hir.RootSyntaxBlock()})
	entry.Append(callAt(1, 2, "use", x))
	entry.Append(&hir.Assign{InstrNode: hir.InstrNode{InstrID: 2, Location: hir.Pos{Line: 3}}, Dest: x, Src: y})
	entry.Append(callAt(3, 4, "use", x))
	entry.Append(&hir.Return{})

	body := hir.NewBody()
	body.AddBlock(entry)

	fn := &hir.Function{Name: testCallee("f"), Body: body}

	result := CheckFunction(fn)
	if len(result.Reports) != 0 {
		t.Fatalf("expected no reports after reassignment, got %+v", result.Reports)
	}
}

// Boundary #8: an external declaration (no body) produces no diagnostics
// and no store entries.
func TestCheckFunctionEmptyBody(t *testing.T) {
	fn := &hir.Function{Name: testCallee("extern")}
	result := CheckFunction(fn)
	if len(result.Reports) != 0 {
		t.Fatalf("expected no reports for a bodyless function, got %+v", result.Reports)
	}
	if len(result.Store.Blocks()) != 0 {
		t.Fatalf("expected an empty declaration store, got %+v", result.Store.Blocks())
	}
}

// S3 end-to-end: a self-looping block that uses x on every lap reports a
// loop-carried collision once the cross-block fixpoint stabilizes.
func TestCheckFunctionLoopCarriedMove(t *testing.T) {
	x := hir.NewVariable(hir.Local{Name: "x", ID: 0}, hir.Pos{Line: 1})

	header := hir.NewBlock(hir.BlockId(0))
	header.Append(&hir.DeclareVar{Var: x, Block: hir.RootSyntaxBlock()})
	header.Append(&hir.Jump{Target: hir.BlockId(1)})

	loop := hir.NewBlock(hir.BlockId(1))
	loop.Append(callAt(1, 10, "use", x))
	loop.Append(&hir.Jump{Target: hir.BlockId(1)})

	body := hir.NewBody()
	body.AddBlock(header)
	body.AddBlock(loop)

	fn := &hir.Function{Name: testCallee("f"), Body: body}

	result := CheckFunction(fn)
	if len(result.Reports) != 1 {
		t.Fatalf("expected exactly one loop-carried report, got %d: %+v", len(result.Reports), result.Reports)
	}
	if result.Reports[0].Code != report.DR002 {
		t.Fatalf("expected code %s (loop-carried), got %s", report.DR002, result.Reports[0].Code)
	}
}

// A variable taken by Ref and then read by value twice afterward must not
// be reported as AlreadyMoved: once referenced, every later plain read
// classifies as Ref rather than a fresh Move, via the ReferenceStore
// threaded through ExtractUsage.
func TestCheckFunctionReferencedVariableIsNotMisreadAsMove(t *testing.T) {
	x := hir.NewVariable(hir.Local{Name: "x", ID: 0}, hir.Pos{Line: 1})
	r := hir.NewVariable(hir.Local{Name: "r", ID: 1}, hir.Pos{Line: 2})

	entry := hir.NewBlock(hir.BlockId(0))
	entry.Append(&hir.DeclareVar{Var: x, Block: hir.RootSyntaxBlock()})
	entry.Append(&hir.Ref{InstrNode: hir.InstrNode{InstrID: 1, Location: hir.Pos{Line: 2}}, Dest: r, Src: x})
	entry.Append(callAt(2, 3, "use", x))
	entry.Append(callAt(3, 4, "use", x))
	entry.Append(&hir.Return{})

	body := hir.NewBody()
	body.AddBlock(entry)

	fn := &hir.Function{Name: testCallee("f"), Body: body}

	result := CheckFunction(fn)
	if len(result.Reports) != 0 {
		t.Fatalf("expected no reports for a referenced variable read twice by value, got %+v", result.Reports)
	}
}

// DeclareVar inside a nested syntax block is attributed to that block,
// not the function's root block.
func TestDeclarationStoreAttributesNestedBlock(t *testing.T) {
	x := hir.NewVariable(hir.Local{Name: "x", ID: 0}, hir.Pos{Line: 1})
	nested := hir.RootSyntaxBlock().Add("1")

	entry := hir.NewBlock(hir.BlockId(0))
	entry.Append(&hir.BlockStart{Syntax: nested})
	entry.Append(&hir.DeclareVar{Var: x, Block: nested})
	entry.Append(&hir.BlockEnd{Syntax: nested})
	entry.Append(&hir.Return{})

	body := hir.NewBody()
	body.AddBlock(entry)

	fn := &hir.Function{Name: testCallee("f"), Body: body}

	result := CheckFunction(fn)
	declared := result.Store.Declared(nested)
	if len(declared) != 1 || !declared[0].Equals(x) {
		t.Fatalf("expected x declared under the nested block, got %+v", declared)
	}
	if root := result.Store.Declared(hir.RootSyntaxBlock()); len(root) != 0 {
		t.Fatalf("expected nothing declared directly under root, got %+v", root)
	}
}
