package types

import "sort"

// Substitution maps type variables to the types that replace them. Keys
// are always Var occurrences; apply resolves transitively through chains
// (v1 -> v2 -> Int resolves v1 all the way to Int), and a substitution
// never maps a variable to itself (see Extend).
type Substitution struct {
	entries map[TypeVar]Type
}

// NewSubstitution returns an empty substitution.
func NewSubstitution() Substitution {
	return Substitution{entries: make(map[TypeVar]Type)}
}

func (s Substitution) lookup(v TypeVar) (Type, bool) {
	if s.entries == nil {
		return nil, false
	}
	t, ok := s.entries[v]
	return t, ok
}

// Extend returns a substitution like s but with v mapped to t. It is a
// no-op (returns s unchanged) when t is itself Var{v}, preserving the
// invariant that a substitution never maps a variable to itself.
func (s Substitution) Extend(v TypeVar, t Type) Substitution {
	if vt, ok := t.(Var); ok && vt.Name.Equals(v) {
		return s
	}
	out := make(map[TypeVar]Type, len(s.entries)+1)
	for k, v := range s.entries {
		out[k] = v
	}
	out[v] = t
	return Substitution{entries: out}
}

// Apply rewrites every Var occurrence in t through s, transitively. It is
// idempotent on closed terms: Apply(Apply(t, s), s) == Apply(t, s).
func Apply(t Type, s Substitution) Type {
	return t.Substitute(s)
}

// Merge extends s with every binding in other, so a private substitution
// produced by a nested unification (e.g. an instance search) can be
// folded back into a caller's running substitution.
func (s Substitution) Merge(other Substitution) Substitution {
	out := s
	for _, v := range other.Vars() {
		t, _ := other.lookup(v)
		out = out.Extend(v, t)
	}
	return out
}

// Vars returns the substitution's domain in a deterministic order, for
// callers that need to enumerate it (debug dumps, normalization).
func (s Substitution) Vars() []TypeVar {
	vars := make([]TypeVar, 0, len(s.entries))
	for v := range s.entries {
		vars = append(vars, v)
	}
	sort.Slice(vars, func(i, j int) bool { return vars[i].String() < vars[j].String() })
	return vars
}

// TypeVarAllocator hands out fresh, globally unique numeric type
// variables, mirroring the monotone counter the resolver/checker share
// while building and instantiating generic signatures.
type TypeVarAllocator struct {
	next uint64
}

// NewTypeVarAllocator returns an allocator starting at variable 0.
func NewTypeVarAllocator() *TypeVarAllocator {
	return &TypeVarAllocator{}
}

// Fresh returns a new, never-before-issued type variable.
func (a *TypeVarAllocator) Fresh() Type {
	v := VarID(a.next)
	a.next++
	return Var{Name: v}
}

// CreateTypeSubstitutionFrom zips two equal-length type vectors pairwise
// and unifies each pair into a single substitution, used to instantiate a
// generic declaration's parameter list against a use site's argument
// types (spec.md §4.1).
func CreateTypeSubstitutionFrom(cfg Config, from, to []Type) (Substitution, error) {
	sub := NewSubstitution()
	for i := range from {
		var err error
		sub, err = Unify(sub, from[i], to[i], cfg)
		if err != nil {
			return Substitution{}, err
		}
	}
	return sub, nil
}
