package funcgroup

import (
	"github.com/sunholo/ownhir/internal/hir"
	"github.com/sunholo/ownhir/internal/types"
)

// Store holds every function's current profile, keyed by qualified name
// string, in the order profiles were first recorded.
type Store struct {
	order []string
	byKey map[string]*FunctionProfile
}

// NewStore returns an empty profile store.
func NewStore() *Store {
	return &Store{byKey: make(map[string]*FunctionProfile)}
}

// Get returns the profile recorded for name, or nil if none has been
// computed yet (e.g. a forward reference within its own dependency
// group, or a function outside the processed set entirely).
func (s *Store) Get(name string) *FunctionProfile { return s.byKey[name] }

func (s *Store) set(name string, p *FunctionProfile) {
	if _, ok := s.byKey[name]; !ok {
		s.order = append(s.order, name)
	}
	s.byKey[name] = p
}

// Profiles returns every stored profile in first-recorded order.
func (s *Store) Profiles() []*FunctionProfile {
	out := make([]*FunctionProfile, 0, len(s.order))
	for _, k := range s.order {
		out = append(out, s.byKey[k])
	}
	return out
}

// Run computes a borrow profile for every function in funcs, visiting
// the call graph's dependency groups in reverse topological order and
// iterating each group to a fixpoint (spec.md §4.5): "repeat: for every
// function in the group, recompute its profile from the current store;
// if any profile changed, repeat; stop once nothing changed, or the
// group has only one function." A function with no body (an external
// declaration) is skipped entirely: spec.md §3's "may have a declared
// profile" describes one supplied from outside this package, which Run
// does not model.
func Run(funcs []*hir.Function) *Store {
	store := NewStore()

	byName := make(map[string]*hir.Function, len(funcs))
	for _, f := range funcs {
		if f.HasBody() {
			byName[f.Name.String()] = f
		}
	}

	graph := BuildCallGraph(funcs)
	for _, scc := range graph.SCCs() {
		group := make([]*hir.Function, 0, len(scc))
		for _, name := range scc {
			if f, ok := byName[name]; ok {
				group = append(group, f)
			}
		}
		if len(group) == 0 {
			continue
		}
		runGroup(group, store)
	}

	return store
}

func runGroup(group []*hir.Function, store *Store) {
	for {
		updated := false
		for _, fn := range group {
			next := recomputeProfile(fn, store)
			prev := store.Get(fn.Name.String())
			if !next.Equal(prev) {
				updated = true
				store.set(fn.Name.String(), next)
			}
		}
		if !updated || len(group) == 1 {
			return
		}
	}
}

// isBorrowed reports whether a value of type t can carry a borrow
// (spec.md §4.5 "ExtendedType... the set of borrow variables that
// appear within it"): only references and raw pointers do.
func isBorrowed(t types.Type) bool {
	switch t.(type) {
	case types.Reference, types.Ptr:
		return true
	default:
		return false
	}
}

// recomputeProfile walks fn's body once in block order, propagating
// argument borrow variables forward through Assign/Ref/FieldRef/
// Transform/FunctionCall instructions and recording a raw Link whenever
// a Return exposes a tracked borrow variable to the result. processLinks
// then collapses the walk's intermediate localBorrow nodes down to the
// direct argument-to-result edges a published profile carries.
func recomputeProfile(fn *hir.Function, store *Store) *FunctionProfile {
	args := make([]ExtendedType, len(fn.Params))
	for i, p := range fn.Params {
		ext := ExtendedType{Base: p.Type}
		if isBorrowed(p.Type) {
			ext.Borrows = []BorrowVar{ArgVar(i)}
		}
		args[i] = ext
	}

	result := ExtendedType{Base: fn.Result.Single}
	if fn.Result.Single != nil && isBorrowed(fn.Result.Single) {
		result.Borrows = []BorrowVar{ResultVar()}
	}

	profile := &FunctionProfile{Name: fn.Name, Args: args, Result: result}
	if !fn.HasBody() {
		return profile
	}

	node := make(map[string]BorrowVar)
	for i, p := range fn.Params {
		if !isBorrowed(p.Type) {
			continue
		}
		if v := findParamVariable(fn, p.Name); v != nil {
			node[v.Name.String()] = ArgVar(i)
		}
	}

	var raw []Link
	nextLocal := 0
	fresh := func() BorrowVar {
		v := localVar(nextLocal)
		nextLocal++
		return v
	}

	propagate := func(src, dest *hir.Variable) {
		if src == nil || dest == nil {
			return
		}
		from, ok := node[src.Name.String()]
		if !ok {
			return
		}
		to := fresh()
		node[dest.Name.String()] = to
		raw = append(raw, Link{From: from, To: to})
	}

	for _, blk := range fn.Body.Blocks() {
		for _, ins := range blk.Instructions() {
			switch i := ins.(type) {
			case *hir.Assign:
				propagate(i.Src, i.Dest)
			case *hir.Ref:
				propagate(i.Src, i.Dest)
			case *hir.FieldRef:
				propagate(i.Receiver, i.Dest)
			case *hir.Transform:
				propagate(i.Src, i.Dest)
			case *hir.FunctionCall:
				callLinks(i, node, store, fresh, &raw)
			case *hir.Return:
				if i.Value == nil {
					continue
				}
				if from, ok := node[i.Value.Name.String()]; ok {
					raw = append(raw, Link{From: from, To: ResultVar()})
				}
			}
		}
	}

	profile.Links = processLinks(raw)
	return profile
}

// callLinks threads the callee's already-known profile through a call
// site: if the callee's i'th argument borrow variable reaches its
// result, and the variable passed at that position is itself tracked,
// the call's destination inherits a fresh node linked from it.
func callLinks(call *hir.FunctionCall, node map[string]BorrowVar, store *Store, fresh func() BorrowVar, raw *[]Link) {
	if call.Dest == nil {
		return
	}
	callee := store.Get(call.Info.Callee.String())
	if callee == nil {
		return
	}

	var dest BorrowVar
	assigned := false
	for _, link := range callee.Links {
		argIdx, ok := link.From.IsArg()
		if !ok || argIdx >= len(call.Info.Args) {
			continue
		}
		arg := call.Info.Args[argIdx]
		if arg == nil {
			continue
		}
		from, ok := node[arg.Name.String()]
		if !ok {
			continue
		}
		if !assigned {
			dest = fresh()
			assigned = true
		}
		*raw = append(*raw, Link{From: from, To: dest})
	}
	if assigned {
		node[call.Dest.Name.String()] = dest
	}
}

func findParamVariable(fn *hir.Function, paramName string) *hir.Variable {
	for _, v := range fn.Variables {
		if arg, ok := v.Name.(hir.Arg); ok && arg.Name == paramName {
			return v
		}
	}
	return nil
}
