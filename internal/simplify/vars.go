package simplify

import "github.com/sunholo/ownhir/internal/hir"

// resultVar returns the variable an instruction defines fresh, if any.
// FieldAssign is deliberately excluded: it mutates an existing variable's
// field path rather than introducing a new binding.
func resultVar(ins hir.Instruction) (*hir.Variable, bool) {
	switch i := ins.(type) {
	case *hir.DeclareVar:
		return i.Var, true
	case *hir.Assign:
		return i.Dest, true
	case *hir.FieldRef:
		return i.Dest, true
	case *hir.Ref:
		return i.Dest, true
	case *hir.FunctionCall:
		if i.Dest != nil {
			return i.Dest, true
		}
		return nil, false
	case *hir.Transform:
		return i.Dest, true
	case *hir.CoroutineYield:
		return i.Dest, true
	}
	return nil, false
}

// usedVars returns every variable an instruction reads, in no particular
// order; a variable an instruction also defines (its result) is never
// included here.
func usedVars(ins hir.Instruction) []*hir.Variable {
	var out []*hir.Variable
	add := func(v *hir.Variable) {
		if v != nil {
			out = append(out, v)
		}
	}
	switch i := ins.(type) {
	case *hir.Assign:
		add(i.Src)
	case *hir.FieldAssign:
		add(i.Dest)
		add(i.Src)
	case *hir.FieldRef:
		add(i.Receiver)
	case *hir.Ref:
		add(i.Src)
	case *hir.FunctionCall:
		for _, a := range i.Info.Args {
			add(a)
		}
	case *hir.Return:
		add(i.Value)
	case *hir.Jump:
		add(i.Value)
	case *hir.EnumSwitch:
		add(i.Disc)
	case *hir.IntegerSwitch:
		add(i.Disc)
	case *hir.StringSwitch:
		add(i.Disc)
	case *hir.With:
		add(i.Info.Resource)
	case *hir.Transform:
		add(i.Src)
	case *hir.CoroutineYield:
		add(i.Value)
	case *hir.CoroutineReturn:
		add(i.Value)
	}
	return out
}

// mapUses rewrites every use-position variable in ins through f, in place,
// and reports whether f ever produced a different variable.
func mapUses(ins hir.Instruction, f func(*hir.Variable) *hir.Variable) bool {
	changed := false
	replace := func(v *hir.Variable) *hir.Variable {
		if v == nil {
			return v
		}
		nv := f(v)
		if nv != v {
			changed = true
		}
		return nv
	}
	switch i := ins.(type) {
	case *hir.Assign:
		i.Src = replace(i.Src)
	case *hir.FieldAssign:
		i.Dest = replace(i.Dest)
		i.Src = replace(i.Src)
	case *hir.FieldRef:
		i.Receiver = replace(i.Receiver)
	case *hir.Ref:
		i.Src = replace(i.Src)
	case *hir.FunctionCall:
		for idx, a := range i.Info.Args {
			i.Info.Args[idx] = replace(a)
		}
	case *hir.Return:
		i.Value = replace(i.Value)
	case *hir.Jump:
		i.Value = replace(i.Value)
	case *hir.EnumSwitch:
		i.Disc = replace(i.Disc)
	case *hir.IntegerSwitch:
		i.Disc = replace(i.Disc)
	case *hir.StringSwitch:
		i.Disc = replace(i.Disc)
	case *hir.With:
		i.Info.Resource = replace(i.Info.Resource)
	case *hir.Transform:
		i.Src = replace(i.Src)
	case *hir.CoroutineYield:
		i.Value = replace(i.Value)
	case *hir.CoroutineReturn:
		i.Value = replace(i.Value)
	}
	return changed
}

// isSideEffectFree reports whether removing ins (when its result is
// otherwise unused) can never change a function's observable behavior
// (spec.md §4.6: DeclareVar, FieldRef, Assign, Transform, or a call to a
// function flagged pure).
func isSideEffectFree(prog *hir.Program, ins hir.Instruction) bool {
	switch i := ins.(type) {
	case *hir.DeclareVar, *hir.FieldRef, *hir.Assign, *hir.Transform:
		return true
	case *hir.FunctionCall:
		callee, ok := prog.Function(i.Info.Callee)
		return ok && callee.Attrs.Pure
	}
	return false
}
