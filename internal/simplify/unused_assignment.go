package simplify

import "github.com/sunholo/ownhir/internal/hir"

// UnusedAssignmentEliminator removes a dead store: an Assign to a variable
// that is overwritten again before any intervening read, within the same
// block. UnusedAssignmentEliminator.rs was not retrieved into the
// reference pack (see DESIGN.md); unlike UnusedVariableEliminator's
// whole-function use-count sweep, this is scoped to intra-block dead
// stores, since tracking cross-block liveness is out of scope for this
// lightweight pass.
type UnusedAssignmentEliminator struct {
	prog *hir.Program
}

func NewUnusedAssignmentEliminator(prog *hir.Program) UnusedAssignmentEliminator {
	return UnusedAssignmentEliminator{prog: prog}
}

func (p UnusedAssignmentEliminator) Run(fn *hir.Function) bool {
	if !fn.HasBody() {
		return false
	}

	changed := false
	for _, blk := range fn.Body.Blocks() {
		instrs := blk.Instructions()
		dead := make([]bool, len(instrs))

		lastWrite := map[string]int{}
		for i, ins := range instrs {
			for _, v := range usedVars(ins) {
				delete(lastWrite, v.Name.String())
			}
			asn, ok := ins.(*hir.Assign)
			if !ok {
				if rv, ok := resultVar(ins); ok {
					delete(lastWrite, rv.Name.String())
				}
				continue
			}
			key := asn.Dest.Name.String()
			if prev, ok := lastWrite[key]; ok && isSideEffectFree(p.prog, instrs[prev]) {
				dead[prev] = true
				changed = true
			}
			lastWrite[key] = i
		}

		if !changed {
			continue
		}
		var kept []hir.Instruction
		for i, ins := range instrs {
			if dead[i] {
				continue
			}
			kept = append(kept, ins)
		}
		blk.SetInstructions(kept)
	}

	return changed
}
