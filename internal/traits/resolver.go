package traits

import (
	"fmt"
	"sort"

	"github.com/sunholo/ownhir/internal/names"
	"github.com/sunholo/ownhir/internal/types"
)

// InstanceResolver stores every declared instance, grouped by trait name,
// in declaration order (an ordered slice, never a randomly-iterating map:
// instance search order must be deterministic, see spec.md §5 Ordering).
type InstanceResolver struct {
	byTrait map[string][]Instance
	// traitOrder preserves first-seen trait name order, purely so debug
	// dumps and the inspect REPL list traits deterministically.
	traitOrder []string
}

// NewInstanceResolver returns an empty resolver.
func NewInstanceResolver() *InstanceResolver {
	return &InstanceResolver{byTrait: make(map[string][]Instance)}
}

// AddInstance registers inst under its trait.
func (r *InstanceResolver) AddInstance(inst Instance) {
	key := inst.TraitName.String()
	if _, ok := r.byTrait[key]; !ok {
		r.traitOrder = append(r.traitOrder, key)
	}
	r.byTrait[key] = append(r.byTrait[key], inst)
}

// Instances returns the declared instances for trait, in declaration
// order.
func (r *InstanceResolver) Instances(trait names.QualifiedName) []Instance {
	return r.byTrait[trait.String()]
}

// Traits returns every trait name that has at least one registered
// instance, in first-registration order.
func (r *InstanceResolver) Traits() []string {
	out := make([]string, len(r.traitOrder))
	copy(out, r.traitOrder)
	return out
}

// NotFoundError reports that no instance of trait matched args.
type NotFoundError struct {
	Trait names.QualifiedName
	Args  []types.Type
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("no instance of %s for %s", e.Trait, renderArgs(e.Args))
}

// AmbiguousError reports that more than one maximally-specific instance
// matched args; Candidates lists every tied instance.
type AmbiguousError struct {
	Trait      names.QualifiedName
	Args       []types.Type
	Candidates []Instance
}

func (e *AmbiguousError) Error() string {
	return fmt.Sprintf("ambiguous instances of %s for %s (%d candidates)", e.Trait, renderArgs(e.Args), len(e.Candidates))
}

func renderArgs(args []types.Type) string {
	s := ""
	for i, a := range args {
		if i > 0 {
			s += ", "
		}
		s += a.String()
	}
	return "[" + s + "]"
}

// Selection is the result of a successful instance search: the winning
// instance, instantiated with fresh type variables, and the substitution
// produced by unifying its parameter list with the query args.
type Selection struct {
	Instance Instance
	Sub      types.Substitution
}

// Find searches for the unique maximally-specific instance of trait
// whose parameter list unifies with args, following spec.md §4.2:
//  1. instantiate each candidate with fresh vars
//  2. unify its parameter list against args in a private substitution,
//     discarding on failure
//  3. rank surviving matches by structural specificity
//  4. a unique maximal instance wins; ties (or no matches) are errors
//
// On success, Selection.Sub is the substitution produced by unifying the
// winning instance's parameter list against args; the caller must merge
// it into its own running substitution to keep any binding that
// unification made on the query side (spec.md §4.2).
func (r *InstanceResolver) Find(alloc *types.TypeVarAllocator, trait names.QualifiedName, args []types.Type, cfg types.Config) (Selection, error) {
	candidates := r.Instances(trait)
	type match = struct {
		inst Instance
		sub  types.Substitution
	}
	var matches []match
	for _, cand := range candidates {
		if len(cand.Types) != len(args) {
			continue
		}
		inst, instSub := instantiateInstance(alloc, cand)
		sub := types.NewSubstitution()
		ok := true
		for i := range inst.Types {
			var err error
			sub, err = types.Unify(sub, inst.Types[i], args[i], cfg)
			if err != nil {
				ok = false
				break
			}
		}
		if !ok {
			continue
		}
		_ = instSub
		matches = append(matches, match{inst: inst, sub: sub})
	}

	if len(matches) == 0 {
		return Selection{}, &NotFoundError{Trait: trait, Args: args}
	}

	// An instance is the winner only if it is the sole maximal element:
	// no other candidate strictly dominates it, and it is not tied with
	// any other maximal candidate.
	maximal := maximalInstances(matches)
	if len(maximal) != 1 {
		cands := make([]Instance, len(maximal))
		for i, idx := range maximal {
			cands[i] = matches[idx].inst
		}
		return Selection{}, &AmbiguousError{Trait: trait, Args: args, Candidates: cands}
	}

	winner := matches[maximal[0]]
	return Selection{Instance: winner.inst, Sub: winner.sub}, nil
}

func maximalInstances(matches []struct {
	inst Instance
	sub  types.Substitution
}) []int {
	var maximal []int
	for i := range matches {
		dominated := false
		for j := range matches {
			if i == j {
				continue
			}
			o := compareTypeLists(matches[j].inst.Types, matches[i].inst.Types)
			if o.dominates() {
				dominated = true
				break
			}
		}
		if !dominated {
			maximal = append(maximal, i)
		}
	}
	sort.Ints(maximal)
	return maximal
}

// instantiateInstance replaces every distinct Var appearing in inst's
// parameter list and associated types with a fresh variable from alloc,
// so repeated searches never alias variables across call sites (ported
// from instantiateInstance in the original-source grounding, see
// DESIGN.md).
func instantiateInstance(alloc *types.TypeVarAllocator, inst Instance) (Instance, types.Substitution) {
	sub := types.NewSubstitution()
	seen := make(map[string]bool)
	var collect func(types.Type)
	collect = func(t types.Type) {
		switch tv := t.(type) {
		case types.Var:
			key := tv.Name.String()
			if seen[key] {
				return
			}
			seen[key] = true
			sub = sub.Extend(tv.Name, alloc.Fresh())
		case types.Named:
			for _, a := range tv.Args {
				collect(a)
			}
		case types.Tuple:
			for _, e := range tv.Elems {
				collect(e)
			}
		case types.Function:
			for _, a := range tv.Args {
				collect(a)
			}
			collect(tv.Result)
		case types.FunctionPtr:
			for _, a := range tv.Args {
				collect(a)
			}
			collect(tv.Result)
		case types.Reference:
			collect(tv.Referent)
		case types.Ptr:
			collect(tv.Pointee)
		case types.Coroutine:
			collect(tv.Yielded)
			collect(tv.Result)
		}
	}
	for _, t := range inst.Types {
		collect(t)
	}

	newTypes := make([]types.Type, len(inst.Types))
	for i, t := range inst.Types {
		newTypes[i] = types.Apply(t, sub)
	}
	newAssoc := make([]AssociatedType, len(inst.AssociatedTypes))
	for i, at := range inst.AssociatedTypes {
		newAssoc[i] = AssociatedType{Name: at.Name, Type: types.Apply(at.Type, sub)}
	}
	out := inst
	out.Types = newTypes
	out.AssociatedTypes = newAssoc
	return out, sub
}
