package funcgroup

import (
	"testing"

	"github.com/sunholo/ownhir/internal/hir"
	"github.com/sunholo/ownhir/internal/types"
)

func refT() types.Type {
	return types.Reference{Referent: types.Named{Name: fnName("T")}}
}

func withParam(fn *hir.Function, name string) *hir.Variable {
	v := hir.NewVariable(hir.Arg{Name: name}, hir.Pos{})
	fn.Variables = append(fn.Variables, v)
	return v
}

// Property #9 (spec.md §8): a function that only returns a constant
// (here, a value never tied to any argument's borrow) yields a profile
// with no links.
func TestRecomputeProfileConstantReturnHasNoLinks(t *testing.T) {
	fn := &hir.Function{
		Name:   fnName("c"),
		Params: []hir.Param{{Name: "x", Type: refT()}},
		Result: hir.Result{Single: refT()},
	}
	withParam(fn, "x")
	unrelated := hir.NewVariable(hir.Tmp{ID: 0}, hir.Pos{})
	fn.Variables = append(fn.Variables, unrelated)

	blk := hir.NewBlock(hir.BlockId(0))
	blk.Append(&hir.Return{Value: unrelated})
	body := hir.NewBody()
	body.AddBlock(blk)
	fn.Body = body

	store := NewStore()
	profile := recomputeProfile(fn, store)
	if len(profile.Links) != 0 {
		t.Fatalf("expected no links, got %+v", profile.Links)
	}
}

func TestRecomputeProfileIdentityLinksArgToResult(t *testing.T) {
	fn := &hir.Function{
		Name:   fnName("id"),
		Params: []hir.Param{{Name: "x", Type: refT()}},
		Result: hir.Result{Single: refT()},
	}
	x := withParam(fn, "x")

	blk := hir.NewBlock(hir.BlockId(0))
	blk.Append(&hir.Return{Value: x})
	body := hir.NewBody()
	body.AddBlock(blk)
	fn.Body = body

	store := NewStore()
	profile := recomputeProfile(fn, store)
	if len(profile.Links) != 1 || profile.Links[0] != (Link{From: ArgVar(0), To: ResultVar()}) {
		t.Fatalf("expected arg0->result, got %+v", profile.Links)
	}
}

// Boundary #8 (spec.md §8): an external declaration produces no profile
// computation beyond its bare signature, and Run never visits it.
func TestRunSkipsBodylessFunctions(t *testing.T) {
	fn := &hir.Function{Name: fnName("extern")}
	store := Run([]*hir.Function{fn})
	if store.Get("test.extern") != nil {
		t.Fatalf("expected no stored profile for a bodyless function, got %+v", store.Get("test.extern"))
	}
}

// Run must thread a callee's already-settled profile through a call
// site: f calls the identity function g and returns its result, so f's
// own profile should link arg0 to its result too.
func TestRunPropagatesLinksAcrossCalls(t *testing.T) {
	g := &hir.Function{
		Name:   fnName("g"),
		Params: []hir.Param{{Name: "y", Type: refT()}},
		Result: hir.Result{Single: refT()},
	}
	y := withParam(g, "y")
	gBlk := hir.NewBlock(hir.BlockId(0))
	gBlk.Append(&hir.Return{Value: y})
	gBody := hir.NewBody()
	gBody.AddBlock(gBlk)
	g.Body = gBody

	f := &hir.Function{
		Name:   fnName("f"),
		Params: []hir.Param{{Name: "x", Type: refT()}},
		Result: hir.Result{Single: refT()},
	}
	x := withParam(f, "x")
	d := hir.NewVariable(hir.Tmp{ID: 0}, hir.Pos{})
	f.Variables = append(f.Variables, d)
	fBlk := hir.NewBlock(hir.BlockId(0))
	fBlk.Append(&hir.FunctionCall{Dest: d, Info: hir.CallInfo{Callee: fnName("g"), Args: []*hir.Variable{x}}})
	fBlk.Append(&hir.Return{Value: d})
	fBody := hir.NewBody()
	fBody.AddBlock(fBlk)
	f.Body = fBody

	store := Run([]*hir.Function{f, g})

	gProfile := store.Get("test.g")
	if gProfile == nil || len(gProfile.Links) != 1 {
		t.Fatalf("expected g to have one link, got %+v", gProfile)
	}

	fProfile := store.Get("test.f")
	if fProfile == nil || len(fProfile.Links) != 1 || fProfile.Links[0] != (Link{From: ArgVar(0), To: ResultVar()}) {
		t.Fatalf("expected f's profile to link arg0->result through g, got %+v", fProfile)
	}
}

// A mutually recursive pair (an SCC of size two) must still converge,
// even though neither function has an independent base case that seeds
// a link: f(x) calls g(x) and returns its result; g(y) calls f(y) and
// returns its result. The fixpoint only ever adds a link when some
// already-stored profile justifies it, and no such profile exists here,
// so both settle on zero links rather than looping forever.
func TestRunConvergesOnMutualRecursion(t *testing.T) {
	f := &hir.Function{
		Name:   fnName("f"),
		Params: []hir.Param{{Name: "x", Type: refT()}},
		Result: hir.Result{Single: refT()},
	}
	x := withParam(f, "x")
	fd := hir.NewVariable(hir.Tmp{ID: 0}, hir.Pos{})
	f.Variables = append(f.Variables, fd)
	fBlk := hir.NewBlock(hir.BlockId(0))
	fBlk.Append(&hir.FunctionCall{Dest: fd, Info: hir.CallInfo{Callee: fnName("g"), Args: []*hir.Variable{x}}})
	fBlk.Append(&hir.Return{Value: fd})
	fBody := hir.NewBody()
	fBody.AddBlock(fBlk)
	f.Body = fBody

	g := &hir.Function{
		Name:   fnName("g"),
		Params: []hir.Param{{Name: "y", Type: refT()}},
		Result: hir.Result{Single: refT()},
	}
	y := withParam(g, "y")
	gd := hir.NewVariable(hir.Tmp{ID: 0}, hir.Pos{})
	g.Variables = append(g.Variables, gd)
	gBlk := hir.NewBlock(hir.BlockId(0))
	gBlk.Append(&hir.FunctionCall{Dest: gd, Info: hir.CallInfo{Callee: fnName("f"), Args: []*hir.Variable{y}}})
	gBlk.Append(&hir.Return{Value: gd})
	gBody := hir.NewBody()
	gBody.AddBlock(gBlk)
	g.Body = gBody

	store := Run([]*hir.Function{f, g})

	if p := store.Get("test.f"); p == nil || len(p.Links) != 0 {
		t.Fatalf("expected f to settle on zero links, got %+v", p)
	}
	if p := store.Get("test.g"); p == nil || len(p.Links) != 0 {
		t.Fatalf("expected g to settle on zero links, got %+v", p)
	}
}
