package types

import "fmt"

// Config tunes the few unification rules spec.md §4.1 leaves as knobs.
type Config struct {
	// AllowNamed relaxes Var(Named) vs Var(Named) from name-equality to
	// fresh-variable-like unification (used when instantiating a generic
	// declaration against itself, where named rigid variables should be
	// treated like ordinary metavariables).
	AllowNamed bool
	// VoidSeparate disables the default rule that VoidPtr unifies with
	// any Ptr(_); used by backends that distinguish typed and untyped
	// pointers strictly.
	VoidSeparate bool
}

// UnifyError reports a structural mismatch between two applied type
// forms; callers (typecheck, traits) wrap it into a user-facing
// *report.Report citing both rendered forms and a source location.
type UnifyError struct {
	Left, Right Type
	Reason      string
}

func (e *UnifyError) Error() string {
	return fmt.Sprintf("cannot unify %s with %s: %s", e.Left, e.Right, e.Reason)
}

func mismatch(a, b Type, reason string) error {
	return &UnifyError{Left: a, Right: b, Reason: reason}
}

// Unify extends sub so that Apply(a, sub).Equals(Apply(b, sub)) holds,
// following the structural rules of spec.md §4.1. It fails (returning the
// original sub and an error) on any shape not covered below.
func Unify(sub Substitution, a, b Type, cfg Config) (Substitution, error) {
	next, err := unifyTerms(sub, a, b, cfg)
	if err != nil {
		return sub, err
	}
	return next, nil
}

func unifyTerms(sub Substitution, a, b Type, cfg Config) (Substitution, error) {
	a = Apply(a, sub)
	b = Apply(b, sub)

	if a.Equals(b) {
		return sub, nil
	}

	// Never(false) absorbs anything unconditionally. Never(true) is still
	// open to refinement: against a bare Var it must bind that var to
	// Never(false) rather than leave the substitution untouched, or the
	// var and the Never(true) term stop agreeing once further substitution
	// is applied to one side but not the other.
	if nv, ok := a.(Never); ok {
		if nv.IsOpen {
			if bv, ok := b.(Var); ok {
				return unifyVar(sub, bv, Never{IsOpen: false}, cfg)
			}
			return sub, nil
		}
		return sub, nil
	}
	if nv, ok := b.(Never); ok {
		if nv.IsOpen {
			if av, ok := a.(Var); ok {
				return unifyVar(sub, av, Never{IsOpen: false}, cfg)
			}
			return sub, nil
		}
		return sub, nil
	}

	switch av := a.(type) {
	case Var:
		return unifyVar(sub, av, b, cfg)
	case Named:
		bv, ok := b.(Named)
		if !ok {
			if bVar, ok := b.(Var); ok {
				return unifyVar(sub, bVar, a, cfg)
			}
			return sub, mismatch(a, b, "expected a named type")
		}
		if !av.Name.Equal(bv.Name) {
			return sub, mismatch(a, b, "different type constructors")
		}
		if len(av.Args) != len(bv.Args) {
			return sub, mismatch(a, b, "argument count mismatch")
		}
		return unifyPairwise(sub, av.Args, bv.Args, cfg)
	case Tuple:
		bv, ok := b.(Tuple)
		if !ok {
			if bVar, ok := b.(Var); ok {
				return unifyVar(sub, bVar, a, cfg)
			}
			return sub, mismatch(a, b, "expected a tuple")
		}
		if len(av.Elems) != len(bv.Elems) {
			return sub, mismatch(a, b, "tuple arity mismatch")
		}
		return unifyPairwise(sub, av.Elems, bv.Elems, cfg)
	case Function:
		bv, ok := b.(Function)
		if !ok {
			if bVar, ok := b.(Var); ok {
				return unifyVar(sub, bVar, a, cfg)
			}
			return sub, mismatch(a, b, "expected a function type")
		}
		return unifyCallable(sub, av.Args, av.Result, bv.Args, bv.Result, cfg)
	case FunctionPtr:
		bv, ok := b.(FunctionPtr)
		if !ok {
			if bVar, ok := b.(Var); ok {
				return unifyVar(sub, bVar, a, cfg)
			}
			return sub, mismatch(a, b, "expected a function pointer type")
		}
		return unifyCallable(sub, av.Args, av.Result, bv.Args, bv.Result, cfg)
	case Reference:
		bv, ok := b.(Reference)
		if !ok {
			if bVar, ok := b.(Var); ok {
				return unifyVar(sub, bVar, a, cfg)
			}
			return sub, mismatch(a, b, "expected a reference type")
		}
		return Unify(sub, av.Referent, bv.Referent, cfg)
	case Ptr:
		return unifyPtr(sub, av, b, cfg)
	case VoidPtr:
		return unifyVoidPtr(sub, b, cfg)
	case NumericConstant:
		bv, ok := b.(NumericConstant)
		if !ok {
			if bVar, ok := b.(Var); ok {
				return unifyVar(sub, bVar, a, cfg)
			}
			return sub, mismatch(a, b, "expected a numeric constant")
		}
		if av.Literal != bv.Literal {
			return sub, mismatch(a, b, "different numeric literals")
		}
		return sub, nil
	case Coroutine:
		bv, ok := b.(Coroutine)
		if !ok {
			if bVar, ok := b.(Var); ok {
				return unifyVar(sub, bVar, a, cfg)
			}
			return sub, mismatch(a, b, "expected a coroutine type")
		}
		sub, err := Unify(sub, av.Yielded, bv.Yielded, cfg)
		if err != nil {
			return sub, err
		}
		return Unify(sub, av.Result, bv.Result, cfg)
	default:
		if bVar, ok := b.(Var); ok {
			return unifyVar(sub, bVar, a, cfg)
		}
		return sub, mismatch(a, b, "incompatible type shapes")
	}
}

func unifyPtr(sub Substitution, p Ptr, b Type, cfg Config) (Substitution, error) {
	switch bv := b.(type) {
	case Ptr:
		return Unify(sub, p.Pointee, bv.Pointee, cfg)
	case VoidPtr:
		if cfg.VoidSeparate {
			return sub, mismatch(p, b, "void pointer forbidden here")
		}
		return sub, nil
	case Var:
		return unifyVar(sub, bv, p, cfg)
	default:
		return sub, mismatch(p, b, "expected a pointer type")
	}
}

func unifyVoidPtr(sub Substitution, b Type, cfg Config) (Substitution, error) {
	switch bv := b.(type) {
	case Ptr:
		if cfg.VoidSeparate {
			return sub, mismatch(VoidPtr{}, b, "void pointer forbidden here")
		}
		return sub, nil
	case VoidPtr:
		return sub, nil
	case Var:
		return unifyVar(sub, bv, VoidPtr{}, cfg)
	default:
		return sub, mismatch(VoidPtr{}, b, "expected a pointer type")
	}
}

func unifyCallable(sub Substitution, aArgs []Type, aRes Type, bArgs []Type, bRes Type, cfg Config) (Substitution, error) {
	if len(aArgs) != len(bArgs) {
		return sub, mismatch(Function{Args: aArgs, Result: aRes}, Function{Args: bArgs, Result: bRes}, "arity mismatch")
	}
	var err error
	sub, err = unifyPairwise(sub, aArgs, bArgs, cfg)
	if err != nil {
		return sub, err
	}
	return Unify(sub, aRes, bRes, cfg)
}

func unifyPairwise(sub Substitution, as, bs []Type, cfg Config) (Substitution, error) {
	for i := range as {
		var err error
		sub, err = Unify(sub, as[i], bs[i], cfg)
		if err != nil {
			return sub, err
		}
	}
	return sub, nil
}

// unifyVar handles the left-hand-var cases of spec.md §4.1: two named
// vars unify only when their names match (unless cfg.AllowNamed); any var
// on the left extends the substitution to map it to the other side.
func unifyVar(sub Substitution, v Var, other Type, cfg Config) (Substitution, error) {
	if ov, ok := other.(Var); ok {
		_, vIsName := v.Name.(VarName)
		_, oIsName := ov.Name.(VarName)
		if vIsName && oIsName && !cfg.AllowNamed {
			if v.Name.Equals(ov.Name) {
				return sub, nil
			}
			return sub, mismatch(v, other, "distinct named type variables")
		}
	}
	return sub.Extend(v.Name, other), nil
}
