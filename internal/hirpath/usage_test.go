package hirpath

import (
	"testing"

	"github.com/sunholo/ownhir/internal/hir"
)

// A variable with no declared reference/pointer type that has never been
// referenced classifies as Move, the conservative default.
func TestClassifyReadDefaultsToMove(t *testing.T) {
	x := root("x")
	at := &hir.Return{Value: x}
	u := classifyRead(x, at, nil)
	if u.Kind != Move {
		t.Fatalf("expected Move, got %s", u.Kind)
	}
}

// Once a variable has been recorded in the ReferenceStore — as it would
// be after a Ref instruction takes it by reference earlier in the
// function — every later plain read of it classifies as Ref, regardless
// of its declared type.
func TestClassifyReadConsultsReferenceStore(t *testing.T) {
	x := root("x")
	refs := NewReferenceStore()
	refs.AddReference(x.Name.String())

	at := &hir.Return{Value: x}
	u := classifyRead(x, at, refs)
	if u.Kind != RefUse {
		t.Fatalf("expected Ref once the store marks the variable referenced, got %s", u.Kind)
	}
}

// ExtractUsage threads refs down into classifyRead for a FunctionCall
// argument, the exact shape the gap report described: a variable taken
// by Ref and then passed by value to a later call must not be
// misclassified as a fresh Move.
func TestExtractUsageCallArgConsultsReferenceStore(t *testing.T) {
	x := root("x")
	refs := NewReferenceStore()
	refs.AddReference(x.Name.String())

	call := &hir.FunctionCall{Info: hir.CallInfo{Args: []*hir.Variable{x}}}
	info := ExtractUsage(call, refs)
	if len(info.Usages) != 1 || info.Usages[0].Kind != RefUse {
		t.Fatalf("expected the call argument to read as Ref, got %+v", info.Usages)
	}
}

// A nil store behaves like an empty one: no prior reference means a
// plain read is still classified by declared type alone.
func TestExtractUsageNilReferenceStoreIsSafe(t *testing.T) {
	x := root("x")
	info := ExtractUsage(&hir.Return{Value: x}, nil)
	if len(info.Usages) != 1 || info.Usages[0].Kind != Move {
		t.Fatalf("expected Move with a nil store, got %+v", info.Usages)
	}
}
