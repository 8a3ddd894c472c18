package simplify

import "github.com/sunholo/ownhir/internal/hir"

// CompileTimeEvaluator folds instructions whose result is already known at
// compile time into a plain copy. CompileTimeEvaluator.rs was not retrieved
// into the reference pack (see DESIGN.md); this instruction set has no
// literal-carrying instruction kind to fold arithmetic on, so the only fact
// this pass can materialize without inventing an instruction kind is an
// identity Transform — a Transform whose Kind marks it as not actually
// changing representation reduces to a copy of its source.
type CompileTimeEvaluator struct{}

func (CompileTimeEvaluator) Run(fn *hir.Function) bool {
	if !fn.HasBody() {
		return false
	}

	changed := false
	for _, blk := range fn.Body.Blocks() {
		instrs := blk.Instructions()
		rewritten := make([]hir.Instruction, len(instrs))
		blockChanged := false
		for i, ins := range instrs {
			tr, ok := ins.(*hir.Transform)
			if !ok || tr.Kind != "identity" {
				rewritten[i] = ins
				continue
			}
			rewritten[i] = &hir.Assign{InstrNode: tr.InstrNode, Dest: tr.Dest, Src: tr.Src}
			blockChanged = true
		}
		if blockChanged {
			blk.SetInstructions(rewritten)
			changed = true
		}
	}
	return changed
}
