package types

import (
	"testing"

	"github.com/sunholo/ownhir/internal/names"
)

func mod(s string) names.QualifiedName { return names.Module{Path: s} }

func namedT(n string, args ...Type) Type {
	return Named{Name: names.Item{Parent: mod("test"), Name: n}, Args: args}
}

func TestApplyIdempotent(t *testing.T) {
	alloc := NewTypeVarAllocator()
	v1 := alloc.Fresh()
	v2 := alloc.Fresh()
	sub := NewSubstitution()
	sub = sub.Extend(v1.(Var).Name, v2)
	sub = sub.Extend(v2.(Var).Name, namedT("Int"))

	ty := Tuple{Elems: []Type{v1, namedT("String")}}
	once := Apply(ty, sub)
	twice := Apply(once, sub)
	if !once.Equals(twice) {
		t.Fatalf("apply not idempotent: once=%s twice=%s", once, twice)
	}
}

func TestUnifySolvesForVar(t *testing.T) {
	alloc := NewTypeVarAllocator()
	v := alloc.Fresh()
	sub, err := Unify(NewSubstitution(), v, namedT("Int"), Config{})
	if err != nil {
		t.Fatalf("unify failed: %v", err)
	}
	a := Apply(v, sub)
	b := Apply(namedT("Int"), sub)
	if !a.Equals(b) {
		t.Fatalf("unify result diverges: %s vs %s", a, b)
	}
}

func TestUnifyStructural(t *testing.T) {
	alloc := NewTypeVarAllocator()
	v := alloc.Fresh()
	a := namedT("List", v)
	b := namedT("List", namedT("Bool"))
	sub, err := Unify(NewSubstitution(), a, b, Config{})
	if err != nil {
		t.Fatalf("unify failed: %v", err)
	}
	if !Apply(a, sub).Equals(Apply(b, sub)) {
		t.Fatalf("unify result diverges")
	}
}

func TestUnifyNamedConstructorMismatch(t *testing.T) {
	_, err := Unify(NewSubstitution(), namedT("Int"), namedT("String"), Config{})
	if err == nil {
		t.Fatal("expected unify to fail for distinct constructors")
	}
}

func TestUnifyNeverAbsorbsAnything(t *testing.T) {
	sub, err := Unify(NewSubstitution(), Never{IsOpen: false}, namedT("Int"), Config{})
	if err != nil {
		t.Fatalf("Never(false) should absorb any type: %v", err)
	}
	if len(sub.Vars()) != 0 {
		t.Fatalf("Never(false) should not extend the substitution")
	}
}

func TestUnifyOpenNeverBindsVar(t *testing.T) {
	alloc := NewTypeVarAllocator()
	v := alloc.Fresh()
	sub, err := Unify(NewSubstitution(), v, Never{IsOpen: true}, Config{})
	if err != nil {
		t.Fatalf("Never(true) should unify with a var by substitution: %v", err)
	}
	if len(sub.Vars()) != 1 {
		t.Fatalf("Never(true) should bind the var, got %d substitution entries", len(sub.Vars()))
	}
	bound := Apply(v, sub)
	if !bound.Equals(Never{IsOpen: false}) {
		t.Fatalf("expected var bound to Never(false), got %s", bound)
	}
}

func TestUnifyOpenNeverBindsVarReversed(t *testing.T) {
	alloc := NewTypeVarAllocator()
	v := alloc.Fresh()
	sub, err := Unify(NewSubstitution(), Never{IsOpen: true}, v, Config{})
	if err != nil {
		t.Fatalf("Never(true) should unify with a var by substitution: %v", err)
	}
	bound := Apply(v, sub)
	if !bound.Equals(Never{IsOpen: false}) {
		t.Fatalf("expected var bound to Never(false), got %s", bound)
	}
}

func TestUnifyOpenNeverAbsorbsConcreteType(t *testing.T) {
	sub, err := Unify(NewSubstitution(), Never{IsOpen: true}, namedT("Int"), Config{})
	if err != nil {
		t.Fatalf("Never(true) should still absorb a concrete type: %v", err)
	}
	if len(sub.Vars()) != 0 {
		t.Fatalf("Never(true) against a concrete type should not extend the substitution")
	}
}

func TestUnifyVoidPtrWithPtr(t *testing.T) {
	_, err := Unify(NewSubstitution(), VoidPtr{}, Ptr{Pointee: namedT("Int")}, Config{})
	if err != nil {
		t.Fatalf("VoidPtr should unify with Ptr by default: %v", err)
	}
	_, err = Unify(NewSubstitution(), VoidPtr{}, Ptr{Pointee: namedT("Int")}, Config{VoidSeparate: true})
	if err == nil {
		t.Fatal("VoidSeparate should forbid VoidPtr/Ptr unification")
	}
}

func TestUnifyReferencesThrough(t *testing.T) {
	alloc := NewTypeVarAllocator()
	v := alloc.Fresh()
	a := Reference{Referent: v}
	b := Reference{Referent: namedT("Int")}
	sub, err := Unify(NewSubstitution(), a, b, Config{})
	if err != nil {
		t.Fatalf("unify failed: %v", err)
	}
	if !Apply(v, sub).Equals(namedT("Int")) {
		t.Fatalf("reference unification did not reach through")
	}
}

func TestUnifyNamedVarsRequireEqualNames(t *testing.T) {
	a := Var{Name: VarName("T")}
	b := Var{Name: VarName("U")}
	if _, err := Unify(NewSubstitution(), a, b, Config{}); err == nil {
		t.Fatal("distinct named vars should not unify by default")
	}
	if _, err := Unify(NewSubstitution(), a, b, Config{AllowNamed: true}); err != nil {
		t.Fatalf("AllowNamed should permit distinct named vars to unify: %v", err)
	}
}

func TestCreateTypeSubstitutionFrom(t *testing.T) {
	alloc := NewTypeVarAllocator()
	v1, v2 := alloc.Fresh(), alloc.Fresh()
	sub, err := CreateTypeSubstitutionFrom(Config{}, []Type{v1, v2}, []Type{namedT("Int"), namedT("Bool")})
	if err != nil {
		t.Fatalf("zip-unify failed: %v", err)
	}
	if !Apply(v1, sub).Equals(namedT("Int")) || !Apply(v2, sub).Equals(namedT("Bool")) {
		t.Fatalf("substitution did not resolve both variables")
	}
}
