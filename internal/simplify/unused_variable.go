package simplify

import "github.com/sunholo/ownhir/internal/hir"

// UnusedVariableEliminator removes instructions whose result is never read
// anywhere in the function, provided the instruction is side-effect-free,
// ported from UnusedVariableEliminator.rs's use-count-via-whole-function-
// scan structure. It uses the broader isSideEffectFree check (DeclareVar,
// FieldRef, Assign, Transform, pure calls) rather than
// UnusedVariableEliminator.rs's own narrower canBeEliminated (FieldRef
// only): spec.md's side-effect-free definition immediately follows this
// pass's description and matches Utils.rs's broader list verbatim, so it
// supersedes the narrower local check in the original file.
type UnusedVariableEliminator struct {
	prog *hir.Program
}

func NewUnusedVariableEliminator(prog *hir.Program) UnusedVariableEliminator {
	return UnusedVariableEliminator{prog: prog}
}

func (p UnusedVariableEliminator) Run(fn *hir.Function) bool {
	if !fn.HasBody() {
		return false
	}
	body := fn.Body

	useCount := map[string]int{}
	for _, blk := range body.Blocks() {
		for _, ins := range blk.Instructions() {
			for _, v := range usedVars(ins) {
				useCount[v.Name.String()]++
			}
		}
	}

	changed := false
	for _, blk := range body.Blocks() {
		instrs := blk.Instructions()
		var kept []hir.Instruction
		for _, ins := range instrs {
			rv, ok := resultVar(ins)
			if ok && useCount[rv.Name.String()] == 0 && isSideEffectFree(p.prog, ins) {
				changed = true
				continue
			}
			kept = append(kept, ins)
		}
		if len(kept) != len(instrs) {
			blk.SetInstructions(kept)
		}
	}

	if changed {
		for _, blk := range body.Blocks() {
			if len(blk.Instructions()) == 0 && blk.ID != hir.BlockId(0) {
				body.RemoveBlock(blk.ID)
			}
		}
	}

	return changed
}
