package hirpath

import (
	"testing"

	"github.com/sunholo/ownhir/internal/hir"
)

func TestReferenceStoreAddAndIsReference(t *testing.T) {
	s := NewReferenceStore()
	if s.IsReference("x") {
		t.Fatal("expected an empty store to report no references")
	}
	s.AddReference("x")
	if !s.IsReference("x") {
		t.Fatal("expected the store to report x as referenced")
	}
	if s.IsReference("y") {
		t.Fatal("expected an unrelated name to remain unreferenced")
	}
}

// BuildReferenceStore scans every block of fn's body, not just the entry
// block, recording every Ref instruction's source variable.
func TestBuildReferenceStoreScansWholeFunction(t *testing.T) {
	x := root("x")
	y := root("y")
	refHolder := hir.NewVariable(hir.Local{Name: "r", ID: 1}, hir.Pos{})

	entry := hir.NewBlock(hir.BlockId(0))
	entry.Append(&hir.Jump{Target: hir.BlockId(1)})

	other := hir.NewBlock(hir.BlockId(1))
	other.Append(&hir.Ref{Dest: refHolder, Src: x})
	other.Append(&hir.Return{Value: y})

	body := hir.NewBody()
	body.AddBlock(entry)
	body.AddBlock(other)

	fn := &hir.Function{Body: body}

	store := BuildReferenceStore(fn)
	if !store.IsReference(x.Name.String()) {
		t.Fatal("expected x to be recorded as referenced")
	}
	if store.IsReference(y.Name.String()) {
		t.Fatal("expected y, never the source of a Ref, to remain unreferenced")
	}
}

func TestBuildReferenceStoreBodylessFunctionIsEmpty(t *testing.T) {
	fn := &hir.Function{}
	store := BuildReferenceStore(fn)
	if store.IsReference("anything") {
		t.Fatal("expected an empty store for a bodyless function")
	}
}
