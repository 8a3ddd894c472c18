// Package typecheck implements the constraint-driven checker that walks
// HIR bodies, unifying instruction-level constraints and rewriting
// trait-method calls to concrete callees (spec.md §6/§7), grounded on the
// teacher's split-by-concern Checker layout (see DESIGN.md):
// checker.go holds the core per-instruction loop, functions.go call-site
// and arity handling, patterns.go switch-discriminant handling, and
// errors.go the report-construction glue.
package typecheck

import (
	"github.com/sunholo/ownhir/internal/hir"
	"github.com/sunholo/ownhir/internal/report"
	"github.com/sunholo/ownhir/internal/types"
)

// Result is everything CheckFunction produces: the diagnostics raised,
// in instruction order followed by any TY005 reports in Function.Variables
// order, and the substitution accumulated while checking.
type Result struct {
	Reports []*report.Report
	Sub     types.Substitution
}

// Checker type-checks function bodies against a shared Program, so
// function calls and field accesses can be resolved against the
// program's struct/enum/trait tables (spec.md §4 "HIR Program").
type Checker struct {
	prog  *hir.Program
	alloc *types.TypeVarAllocator
	cfg   types.Config
}

// New returns a Checker over prog, using its own fresh-variable
// allocator (a Checker should outlive a single function's worth of
// inference so repeated calls to the same generic function each get
// distinct instantiations).
func New(prog *hir.Program) *Checker {
	return &Checker{prog: prog, alloc: types.NewTypeVarAllocator(), cfg: types.Config{}}
}

// state threads the accumulating substitution and collected reports
// through one function's worth of instruction walking.
type state struct {
	c       *Checker
	fn      *hir.Function
	sub     types.Substitution
	reports []*report.Report
}

// CheckFunction type-checks fn's body to a single pass over its
// instructions in block order. A Function with no body (spec.md §3
// "external declarations") gets an empty Result: there is nothing to
// walk, and its signature is not checked.
func (c *Checker) CheckFunction(fn *hir.Function) Result {
	st := &state{c: c, fn: fn, sub: types.NewSubstitution()}
	if !fn.HasBody() {
		return Result{Sub: st.sub}
	}

	for _, blk := range fn.Body.Blocks() {
		for _, ins := range blk.Instructions() {
			st.visit(ins)
		}
	}

	st.checkUnresolvedVariables()
	return Result{Reports: st.reports, Sub: st.sub}
}

// ensureType returns v's current type, allocating and recording a fresh
// inference variable the first time v is seen (spec.md design note
// "Shared mutable graphs": the TypeCell is set at most once).
func (st *state) ensureType(v *hir.Variable) types.Type {
	if t, ok := v.TypeCell.Get(); ok {
		return t
	}
	t := st.c.alloc.Fresh()
	v.TypeCell.Set(t)
	return t
}

// unify unifies a and b under st's running substitution, recording a
// TypeMismatch report (and leaving the substitution unchanged) on
// failure.
func (st *state) unify(a, b types.Type, pos string) {
	next, err := types.Unify(st.sub, a, b, st.c.cfg)
	if err != nil {
		st.reports = append(st.reports, report.NewTypeMismatch(
			types.Apply(a, st.sub).String(), types.Apply(b, st.sub).String(), pos))
		return
	}
	st.sub = next
}

func (st *state) visit(ins hir.Instruction) {
	switch i := ins.(type) {
	case *hir.DeclareVar:
		st.ensureType(i.Var)

	case *hir.Assign:
		st.checkImmutable(i.Dest, i.Loc())
		st.unify(st.ensureType(i.Dest), st.ensureType(i.Src), i.Loc().String())

	case *hir.FieldAssign:
		st.checkImmutable(i.Dest, i.Loc())
		st.visitFieldAccess(i.Dest, i.Fields, i.Src, i.Loc())

	case *hir.FieldRef:
		st.visitFieldAccess(i.Receiver, i.Fields, i.Dest, i.Loc())

	case *hir.Ref:
		st.unify(st.ensureType(i.Dest), types.Reference{Referent: st.ensureType(i.Src)}, i.Loc().String())

	case *hir.FunctionCall:
		st.visitCall(i)

	case *hir.Return:
		st.visitReturn(i)

	case *hir.Jump:
		if i.Value != nil {
			st.ensureType(i.Value)
		}

	case *hir.EnumSwitch, *hir.IntegerSwitch, *hir.StringSwitch:
		st.visitSwitch(i)

	case *hir.BlockStart, *hir.BlockEnd:
		// No type information to check; these only bracket a syntax
		// block for the declaration store's benefit.

	case *hir.With:
		st.ensureType(i.Info.Resource)

	case *hir.Transform:
		// An explicit conversion: the destination's type is whatever
		// the conversion produces, not constrained against Src.
		st.ensureType(i.Dest)
		st.ensureType(i.Src)

	case *hir.DropListPlaceholder:
		// Carries no variables to check.

	case *hir.CoroutineYield:
		st.ensureType(i.Dest)
		if i.Value != nil {
			st.visitCoroutineValue(i.Value, i.Loc())
		}

	case *hir.CoroutineReturn:
		if i.Value != nil {
			st.visitCoroutineValue(i.Value, i.Loc())
		}
	}
}

// visitFieldAccess resolves owner.fields through the program's struct
// table and unifies leaf against the resolved field type, reporting
// FieldNotFound when owner's type isn't a known struct or the path
// doesn't resolve.
func (st *state) visitFieldAccess(owner *hir.Variable, fields []string, leaf *hir.Variable, pos hir.Pos) {
	ownerType := types.Apply(st.ensureType(owner), st.sub)
	fieldType, ok := st.resolveFieldPath(ownerType, fields)
	if !ok {
		st.reports = append(st.reports, report.NewFieldNotFound(
			lastField(fields), ownerType.String(), pos.String()))
		return
	}
	st.unify(st.ensureType(leaf), fieldType, pos.String())
}

func lastField(fields []string) string {
	if len(fields) == 0 {
		return ""
	}
	return fields[len(fields)-1]
}

// resolveFieldPath walks fields one segment at a time through the
// program's struct table, substituting each struct's declared generic
// parameters with the concrete arguments t carries at that point.
func (st *state) resolveFieldPath(t types.Type, fields []string) (types.Type, bool) {
	cur := t
	for _, name := range fields {
		named, ok := cur.(types.Named)
		if !ok {
			return nil, false
		}
		decl, ok := st.c.prog.Struct(named.Name)
		if !ok {
			return nil, false
		}
		field, ok := findField(decl.Fields, name)
		if !ok {
			return nil, false
		}
		cur = instantiateField(field, decl.Params, named.Args)
	}
	return cur, true
}

func findField(fields []hir.FieldDecl, name string) (hir.FieldDecl, bool) {
	for _, f := range fields {
		if f.Name == name {
			return f, true
		}
	}
	return hir.FieldDecl{}, false
}

// instantiateField substitutes a struct's declared generic parameters
// (Vars) with the concrete arguments supplied at a particular use site.
func instantiateField(field hir.FieldDecl, params, args []types.Type) types.Type {
	sub := types.NewSubstitution()
	for i := 0; i < len(params) && i < len(args); i++ {
		if v, ok := params[i].(types.Var); ok {
			sub = sub.Extend(v.Name, args[i])
		}
	}
	return types.Apply(field.Type, sub)
}

// checkImmutable flags an assignment into a self parameter that wasn't
// declared mut self (spec.md §6 "ImmutableAssign").
func (st *state) checkImmutable(dest *hir.Variable, pos hir.Pos) {
	arg, ok := dest.Name.(hir.Arg)
	if !ok {
		return
	}
	for _, p := range st.fn.Params {
		if p.Name != arg.Name {
			continue
		}
		if p.Kind == hir.ParamSelf || p.Kind == hir.ParamRefSelf {
			st.reports = append(st.reports, report.NewImmutableAssign(dest.String(), pos.String()))
		}
		return
	}
}

func (st *state) visitReturn(i *hir.Return) {
	var want types.Type
	switch {
	case st.fn.Result.Coroutine != nil:
		want = st.fn.Result.Coroutine.Result
	default:
		want = st.fn.Result.Single
	}
	if want == nil {
		return
	}
	if i.Value == nil {
		st.unify(want, types.Void{}, i.Loc().String())
		return
	}
	st.unify(want, st.ensureType(i.Value), i.Loc().String())
}

func (st *state) visitCoroutineValue(v *hir.Variable, pos hir.Pos) {
	if st.fn.Result.Coroutine == nil {
		return
	}
	st.unify(st.ensureType(v), st.fn.Result.Coroutine.Yielded, pos.String())
}

// checkUnresolvedVariables reports TY005 for every variable whose type
// never got constrained beyond a bare checker-allocated inference
// variable (spec.md §6 "TypeAnnotationNeeded").
func (st *state) checkUnresolvedVariables() {
	for _, v := range st.fn.Variables {
		t, ok := v.TypeCell.Get()
		if !ok {
			continue
		}
		resolved := types.Apply(t, st.sub)
		vr, ok := resolved.(types.Var)
		if !ok {
			continue
		}
		if _, ok := vr.Name.(types.VarID); !ok {
			// A named rigid variable is a function's own declared
			// generic parameter, not an inference failure.
			continue
		}
		st.reports = append(st.reports, report.NewTypeAnnotationNeeded(v.String(), v.Decl.String()))
	}
}
