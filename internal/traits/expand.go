package traits

import (
	"github.com/sunholo/ownhir/internal/names"
	"github.com/sunholo/ownhir/internal/types"
)

// TraitTable looks up a trait declaration by name, used by constraint
// expansion to find a constraint's own super-constraints.
type TraitTable interface {
	Trait(name names.QualifiedName) (Trait, bool)
}

// TraitDeclMap is the simplest TraitTable: a plain map keyed by rendered
// name, suitable for tests and small programs.
type TraitDeclMap map[string]Trait

func (m TraitDeclMap) Trait(name names.QualifiedName) (Trait, bool) {
	t, ok := m[name.String()]
	return t, ok
}

// ExpandConstraints recursively materializes a declared ConstraintContext's
// super-trait obligations (spec.md §4.2 "Constraint expansion"): for each
// declared constraint, instantiate the trait's own declared constraints
// (if the trait itself has super-trait bounds expressed via its own
// params), substitute, and add them, deduplicated by rendered form so an
// already-seen constraint is never re-expanded (termination).
func ExpandConstraints(traitsTable TraitTable, ctx ConstraintContext, superConstraints func(Trait) []Constraint) ConstraintContext {
	seen := make(map[string]bool)
	var out []Constraint
	var queue []Constraint
	for _, c := range ctx.Constraints {
		queue = append(queue, c)
	}
	for len(queue) > 0 {
		c := queue[0]
		queue = queue[1:]
		if seen[c.key()] {
			continue
		}
		seen[c.key()] = true
		out = append(out, c)

		decl, ok := traitsTable.Trait(c.Name)
		if !ok {
			continue
		}
		for _, sc := range superConstraints(decl) {
			substituted := substituteConstraint(sc, decl.Params, c.Args)
			if !seen[substituted.key()] {
				queue = append(queue, substituted)
			}
		}
	}
	return ConstraintContext{TypeParams: ctx.TypeParams, Constraints: out}
}

// substituteConstraint rewrites a super-constraint declared in terms of
// traitParams (the owning trait's own parameter list) into the caller's
// terms by replacing each traitParam occurrence with the corresponding
// instantiated argument. Since both lists are positional and drawn from
// the same declaration, a direct structural walk suffices; arguments that
// don't match any trait param (concrete types already) pass through
// unchanged.
func substituteConstraint(sc Constraint, traitParams, args []types.Type) Constraint {
	sub := types.NewSubstitution()
	for i := range traitParams {
		if v, ok := traitParams[i].(types.Var); ok && i < len(args) {
			sub = sub.Extend(v.Name, args[i])
		}
	}
	newArgs := make([]types.Type, len(sc.Args))
	for i, a := range sc.Args {
		newArgs[i] = types.Apply(a, sub)
	}
	return Constraint{Name: sc.Name, Args: newArgs, AssociatedTypes: sc.AssociatedTypes}
}
