package simplify

import (
	"testing"

	"github.com/sunholo/ownhir/internal/hir"
)

func TestVarSimplifierPropagatesSingleCopy(t *testing.T) {
	x := localVar("x", 0)
	y := localVar("y", 1)

	blk := hir.NewBlock(hir.BlockId(0))
	decl := &hir.DeclareVar{Var: x, Block: hir.RootSyntaxBlock()}
	asn := &hir.Assign{Dest: y, Src: x}
	ret := &hir.Return{Value: y}
	blk.Append(decl)
	blk.Append(asn)
	blk.Append(ret)

	body := hir.NewBody()
	body.AddBlock(blk)
	fn := &hir.Function{Name: fname("f"), Body: body}

	if !(VarSimplifier{}).Run(fn) {
		t.Fatalf("expected a change")
	}
	if ret.Value != x {
		t.Fatalf("expected return to be rewritten to use x directly, got %v", ret.Value)
	}
}

func TestVarSimplifierIgnoresMultiplyDefinedVariable(t *testing.T) {
	x := localVar("x", 0)
	y := localVar("y", 1)
	z := localVar("z", 2)

	blk := hir.NewBlock(hir.BlockId(0))
	asn1 := &hir.Assign{Dest: y, Src: x}
	asn2 := &hir.Assign{Dest: y, Src: z}
	ret := &hir.Return{Value: y}
	blk.Append(asn1)
	blk.Append(asn2)
	blk.Append(ret)

	body := hir.NewBody()
	body.AddBlock(blk)
	fn := &hir.Function{Name: fname("f"), Body: body}

	if (VarSimplifier{}).Run(fn) {
		t.Fatalf("expected no change: y has two definitions")
	}
	if ret.Value != y {
		t.Fatalf("expected return to remain unchanged, got %v", ret.Value)
	}
}
