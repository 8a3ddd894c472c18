package simplify

import "github.com/sunholo/ownhir/internal/hir"

// DeadCodeEliminator truncates each block's instruction list right after
// its first terminator, discarding any instruction that can never execute.
// DeadCodeEliminator.rs was not retrieved into the reference pack (see
// DESIGN.md); grounded directly on spec.md §4.6's "remove instructions
// that cannot execute (post-terminator)".
type DeadCodeEliminator struct{}

func isTerminator(ins hir.Instruction) bool {
	switch ins.(type) {
	case *hir.Jump, *hir.Return, *hir.EnumSwitch, *hir.IntegerSwitch, *hir.StringSwitch, *hir.With, *hir.CoroutineReturn:
		return true
	}
	return false
}

func (DeadCodeEliminator) Run(fn *hir.Function) bool {
	if !fn.HasBody() {
		return false
	}

	changed := false
	for _, blk := range fn.Body.Blocks() {
		instrs := blk.Instructions()
		for i, ins := range instrs {
			if isTerminator(ins) {
				if i+1 < len(instrs) {
					blk.Truncate(i + 1)
					changed = true
				}
				break
			}
		}
	}
	return changed
}
