package traits

import (
	"errors"
	"testing"

	"github.com/sunholo/ownhir/internal/names"
	"github.com/sunholo/ownhir/internal/types"
)

func traitName(n string) names.QualifiedName {
	return names.Item{Parent: names.Module{Path: "test"}, Name: n}
}

func namedT(n string, args ...types.Type) types.Type {
	return types.Named{Name: traitName(n), Args: args}
}

// TestSpecificityTieBreak covers scenario S4: a generic instance and a
// concrete one both match, and the concrete one, strictly dominating the
// generic one, is picked uniquely.
func TestSpecificityTieBreak(t *testing.T) {
	r := NewInstanceResolver()
	trait := traitName("Show")

	generic := Instance{ID: 1, TraitName: trait, Types: []types.Type{types.Var{Name: types.VarName("T")}}}
	specific := Instance{ID: 2, TraitName: trait, Types: []types.Type{namedT("Int")}}
	r.AddInstance(generic)
	r.AddInstance(specific)

	alloc := types.NewTypeVarAllocator()
	sel, err := r.Find(alloc, trait, []types.Type{namedT("Int")}, types.Config{})
	if err != nil {
		t.Fatalf("expected a unique winner, got error: %v", err)
	}
	if sel.Instance.ID != specific.ID {
		t.Fatalf("expected the concrete instance (id=%d) to win, got id=%d", specific.ID, sel.Instance.ID)
	}
}

// TestAmbiguousTrait covers scenario S5: two instances equally specific
// (both match, neither dominates the other) produce an AmbiguousError.
func TestAmbiguousTrait(t *testing.T) {
	r := NewInstanceResolver()
	trait := traitName("Convert")

	a := Instance{ID: 1, TraitName: trait, Types: []types.Type{namedT("Int"), types.Var{Name: types.VarName("U")}}}
	b := Instance{ID: 2, TraitName: trait, Types: []types.Type{types.Var{Name: types.VarName("T")}, namedT("Bool")}}
	r.AddInstance(a)
	r.AddInstance(b)

	alloc := types.NewTypeVarAllocator()
	_, err := r.Find(alloc, trait, []types.Type{namedT("Int"), namedT("Bool")}, types.Config{})
	if err == nil {
		t.Fatal("expected ambiguity error")
	}
	var ambig *AmbiguousError
	if !errors.As(err, &ambig) {
		t.Fatalf("expected *AmbiguousError, got %T: %v", err, err)
	}
	if len(ambig.Candidates) != 2 {
		t.Fatalf("expected 2 ambiguous candidates, got %d", len(ambig.Candidates))
	}
}

func TestNotFoundWhenNoInstanceMatches(t *testing.T) {
	r := NewInstanceResolver()
	trait := traitName("Show")
	r.AddInstance(Instance{ID: 1, TraitName: trait, Types: []types.Type{namedT("Int")}})

	alloc := types.NewTypeVarAllocator()
	_, err := r.Find(alloc, trait, []types.Type{namedT("Bool")}, types.Config{})
	if err == nil {
		t.Fatal("expected not-found error")
	}
	var nf *NotFoundError
	if !errors.As(err, &nf) {
		t.Fatalf("expected *NotFoundError, got %T: %v", err, err)
	}
}

// TestFindSkipsInstanceWithMismatchedArity covers a query whose arg count
// differs from a registered instance's parameter count (e.g. a 2-param
// trait with only one argument supplied): Find must treat that instance
// as non-matching rather than indexing past the shorter of the two lists.
func TestFindSkipsInstanceWithMismatchedArity(t *testing.T) {
	r := NewInstanceResolver()
	trait := traitName("Convert")
	r.AddInstance(Instance{ID: 1, TraitName: trait, Types: []types.Type{namedT("Int"), namedT("Bool")}})

	alloc := types.NewTypeVarAllocator()
	_, err := r.Find(alloc, trait, []types.Type{namedT("Int")}, types.Config{})
	if err == nil {
		t.Fatal("expected not-found error for mismatched arity")
	}
	var nf *NotFoundError
	if !errors.As(err, &nf) {
		t.Fatalf("expected *NotFoundError, got %T: %v", err, err)
	}
}

func TestInstanceSelectionIsInstantiatedFresh(t *testing.T) {
	r := NewInstanceResolver()
	trait := traitName("Identity")
	v := types.Var{Name: types.VarName("T")}
	r.AddInstance(Instance{ID: 1, TraitName: trait, Types: []types.Type{v}})

	alloc := types.NewTypeVarAllocator()
	sel1, err := r.Find(alloc, trait, []types.Type{namedT("Int")}, types.Config{})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	sel2, err := r.Find(alloc, trait, []types.Type{namedT("Bool")}, types.Config{})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	resolved1 := types.Apply(sel1.Instance.Types[0], sel1.Sub)
	resolved2 := types.Apply(sel2.Instance.Types[0], sel2.Sub)
	if !resolved1.Equals(namedT("Int")) || !resolved2.Equals(namedT("Bool")) {
		t.Fatalf("expected independent resolutions, got %s and %s", resolved1, resolved2)
	}
}
