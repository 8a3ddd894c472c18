package simplify

import "github.com/sunholo/ownhir/internal/hir"

// BlockMerger folds a block into its sole predecessor when that predecessor
// ends with an unconditional Jump to it and no other block can reach it,
// ported from BlockMerger.rs's countJumps/mergeBlocks structure.
//
// Two deviations from the original: the jump-count pass here also counts
// StringSwitch targets (BlockMerger.rs only counts Jump/EnumSwitch/
// IntegerSwitch, an omission rather than a deliberate exclusion), and a
// block that jumps to itself is never merged into itself.
type BlockMerger struct{}

func (BlockMerger) Run(fn *hir.Function) bool {
	if !fn.HasBody() {
		return false
	}
	body := fn.Body

	changed := false
	for {
		incoming := map[hir.BlockId]int{}
		countTarget := func(id hir.BlockId) { incoming[id]++ }
		for _, blk := range body.Blocks() {
			instrs := blk.Instructions()
			if len(instrs) == 0 {
				continue
			}
			switch t := instrs[len(instrs)-1].(type) {
			case *hir.Jump:
				countTarget(t.Target)
			case *hir.EnumSwitch:
				for _, c := range t.Cases {
					countTarget(c.Branch)
				}
			case *hir.IntegerSwitch:
				for _, c := range t.Cases {
					countTarget(c.Branch)
				}
				countTarget(t.Default)
			case *hir.StringSwitch:
				for _, c := range t.Cases {
					countTarget(c.Branch)
				}
				countTarget(t.Default)
			}
		}

		mergedAny := false
		for _, blk := range body.Blocks() {
			instrs := blk.Instructions()
			if len(instrs) == 0 {
				continue
			}
			jmp, ok := instrs[len(instrs)-1].(*hir.Jump)
			if !ok {
				continue
			}
			target := jmp.Target
			if target == blk.ID {
				continue
			}
			if incoming[target] != 1 {
				continue
			}
			targetBlk := body.Block(target)
			if targetBlk == nil {
				continue
			}

			merged := append(append([]hir.Instruction{}, instrs[:len(instrs)-1]...), targetBlk.Instructions()...)
			blk.SetInstructions(merged)
			body.RemoveBlock(target)

			mergedAny = true
			changed = true
			break
		}
		if !mergedAny {
			return changed
		}
	}
}
