package simplify

import "github.com/sunholo/ownhir/internal/hir"

// VarSimplifier substitutes every use of a variable whose only definition
// in the whole function is a simple copy (`Assign{Dest, Src}`) with that
// copy's source, grounded on
// _examples/original_source/compiler/src/siko/backend/simplification/
// (referenced by Simplifier.rs's pass list; VarSimplifier.rs itself was
// not retrieved, see DESIGN.md). It only rewrites uses — the now-
// redundant copy is left for UnusedVariableEliminator/
// UnusedAssignmentEliminator to remove, keeping passes single-purpose.
type VarSimplifier struct{}

func (VarSimplifier) Run(fn *hir.Function) bool {
	if !fn.HasBody() {
		return false
	}

	defCount := map[string]int{}
	for _, blk := range fn.Body.Blocks() {
		for _, ins := range blk.Instructions() {
			if rv, ok := resultVar(ins); ok {
				defCount[rv.Name.String()]++
			}
		}
	}

	subs := map[string]*hir.Variable{}
	for _, blk := range fn.Body.Blocks() {
		for _, ins := range blk.Instructions() {
			asn, ok := ins.(*hir.Assign)
			if !ok {
				continue
			}
			if defCount[asn.Dest.Name.String()] != 1 {
				continue
			}
			if asn.Dest.Name.Equals(asn.Src.Name) {
				continue
			}
			subs[asn.Dest.Name.String()] = asn.Src
		}
	}
	if len(subs) == 0 {
		return false
	}

	resolve := func(v *hir.Variable) *hir.Variable {
		seen := map[string]bool{}
		cur := v
		for {
			key := cur.Name.String()
			if seen[key] {
				return cur
			}
			seen[key] = true
			next, ok := subs[key]
			if !ok {
				return cur
			}
			cur = next
		}
	}

	changed := false
	for _, blk := range fn.Body.Blocks() {
		for _, ins := range blk.Instructions() {
			if mapUses(ins, resolve) {
				changed = true
			}
		}
	}
	return changed
}
