package traits

import "github.com/sunholo/ownhir/internal/types"

// order is the set of orderings a pairwise specificity comparison can
// produce; unlike a single Ordering, spec.md §4.2 compares whole
// parameter lists, where different positions may disagree (e.g. one arg
// is more specific, another less), in which case the instances are
// unrelated and neither dominates.
type order struct {
	less, equal, greater bool
}

func (o order) union(other order) order {
	return order{
		less:    o.less || other.less,
		equal:   o.equal || other.equal,
		greater: o.greater || other.greater,
	}
}

// Dominates reports whether o collapses to a single strict "more
// specific" relation (Greater only, with no Less or Equal observed at
// another position).
func (o order) dominates() bool { return o.greater && !o.less && !o.equal }

// dominated is the symmetric case: a is strictly less specific than b.
func (o order) dominated() bool { return o.less && !o.greater && !o.equal }

// tied reports that every compared position agreed on Equal.
func (o order) tied() bool { return o.equal && !o.less && !o.greater }

// unrelated reports a parameter list comparison that disagreed across
// positions, or produced no comparable positions at all.
func (o order) unrelated() bool { return (o.less && o.greater) || o == order{} }

// shapeMismatch is the fallback order for two types whose own cases
// didn't match: a bare Var on the b side still means a is the more
// specific one ("concrete beats variable", spec.md §4.2 point 3), and any
// other shape disagreement is unrelated.
func shapeMismatch(b types.Type) order {
	if _, ok := b.(types.Var); ok {
		return order{greater: true}
	}
	return order{}
}

// compareTypes computes the structural specificity partial order between
// two type terms, following spec.md §4.2 point 3: matching named
// constructors recurse on their arguments; a concrete type is more
// specific than a variable; unrelated shapes produce the empty order
// (ported from compareSpecificity in the teacher's ownership-prototype
// grounding, see DESIGN.md).
func compareTypes(a, b types.Type) order {
	switch av := a.(type) {
	case types.Named:
		bv, ok := b.(types.Named)
		if !ok {
			return shapeMismatch(b)
		}
		if !av.Name.Equal(bv.Name) || len(av.Args) != len(bv.Args) {
			return order{}
		}
		return compareTypeLists(av.Args, bv.Args)
	case types.Tuple:
		bv, ok := b.(types.Tuple)
		if !ok {
			return shapeMismatch(b)
		}
		if len(av.Elems) != len(bv.Elems) {
			return order{}
		}
		return compareTypeLists(av.Elems, bv.Elems)
	case types.Function:
		bv, ok := b.(types.Function)
		if !ok {
			return shapeMismatch(b)
		}
		if len(av.Args) != len(bv.Args) {
			return order{}
		}
		o := compareTypeLists(av.Args, bv.Args)
		return o.union(compareTypes(av.Result, bv.Result))
	case types.Reference:
		bv, ok := b.(types.Reference)
		if !ok {
			return shapeMismatch(b)
		}
		return compareTypes(av.Referent, bv.Referent)
	case types.Var:
		if _, ok := b.(types.Var); ok {
			return order{equal: true}
		}
		return order{less: true}
	default:
		if _, ok := b.(types.Var); ok {
			return order{greater: true}
		}
		if a.Equals(b) {
			return order{equal: true}
		}
		return order{}
	}
}

func compareTypeLists(a, b []types.Type) order {
	var result order
	for i := range a {
		result = result.union(compareTypes(a[i], b[i]))
	}
	return result
}
