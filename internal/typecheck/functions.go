package typecheck

import (
	"github.com/sunholo/ownhir/internal/hir"
	"github.com/sunholo/ownhir/internal/names"
	"github.com/sunholo/ownhir/internal/report"
	"github.com/sunholo/ownhir/internal/traits"
	"github.com/sunholo/ownhir/internal/types"
)

// visitCall checks a call site's argument count and types against its
// callee's declared signature, resolving an unresolved trait-method call
// to a concrete instance member first (spec.md §6 "every trait-method
// call rewritten to a concrete callee").
func (st *state) visitCall(call *hir.FunctionCall) {
	callee, ok := st.c.prog.Function(call.Info.Callee)
	if !ok {
		return
	}

	if callee.Kind == hir.TraitMemberDecl {
		resolved, resolvedFn, ok := st.resolveTraitCall(call)
		if !ok {
			return
		}
		call.Info.Callee = resolved
		callee = resolvedFn
	}

	pos := call.Loc().String()
	if len(call.Info.Args) != len(callee.Params) {
		st.reports = append(st.reports, report.NewArgCountMismatch(
			callee.Name.String(), len(callee.Params), len(call.Info.Args), pos))
	}

	n := len(call.Info.Args)
	if len(callee.Params) < n {
		n = len(callee.Params)
	}
	for i := 0; i < n; i++ {
		st.unify(st.ensureType(call.Info.Args[i]), callee.Params[i].Type, pos)
	}

	if call.Dest != nil && callee.Result.Single != nil {
		st.unify(st.ensureType(call.Dest), callee.Result.Single, pos)
	}
}

// resolveTraitCall looks up the enclosing trait from the unresolved
// callee's own qualified name (a trait member decl is registered as
// Item{Parent: traitName, Name: memberName}), searches the program's
// instance resolver using the call's first argument as the receiver
// type, and returns the matching instance member's concrete name and
// Function.
func (st *state) resolveTraitCall(call *hir.FunctionCall) (names.QualifiedName, *hir.Function, bool) {
	item, ok := call.Info.Callee.(names.Item)
	if !ok {
		st.reports = append(st.reports, report.NewMethodNotFound(
			call.Info.Callee.String(), "<unknown>", call.Loc().String()))
		return nil, nil, false
	}
	traitName := item.Parent

	if len(call.Info.Args) == 0 {
		st.reports = append(st.reports, report.NewMethodNotFound(item.Name, traitName.String(), call.Loc().String()))
		return nil, nil, false
	}
	receiver := types.Apply(st.ensureType(call.Info.Args[0]), st.sub)

	selection, err := st.c.prog.Resolver().Find(st.c.alloc, traitName, []types.Type{receiver}, st.c.cfg)
	if err != nil {
		switch e := err.(type) {
		case *traits.AmbiguousError:
			cands := make([]string, len(e.Candidates))
			for i, cand := range e.Candidates {
				cands[i] = cand.String()
			}
			st.reports = append(st.reports, report.NewAmbiguousInstances(traitName.String(), receiver.String(), call.Loc().String(), cands))
		default:
			st.reports = append(st.reports, report.NewInstanceNotFound(traitName.String(), receiver.String(), call.Loc().String()))
		}
		return nil, nil, false
	}
	st.sub = st.sub.Merge(selection.Sub)

	concrete := names.Item{Parent: names.Instance{Parent: traitName, ID: selection.Instance.ID}, Name: item.Name}
	fn, ok := st.c.prog.Function(concrete)
	if !ok {
		st.reports = append(st.reports, report.NewMethodNotFound(item.Name, receiver.String(), call.Loc().String()))
		return nil, nil, false
	}
	return concrete, fn, true
}
