package simplify

import "github.com/sunholo/ownhir/internal/hir"

// SwitchSimplifier collapses a switch terminator into an unconditional Jump
// when every case (and, for Integer/String switches, the Default branch
// too) targets the same block, ported from SwitchSimplifier.rs. The Rust
// original synthesizes a dummy "never type" variable to carry the jump's
// value; here Jump.Value is simply left nil, since it is documented as
// optional.
type SwitchSimplifier struct{}

func (SwitchSimplifier) Run(fn *hir.Function) bool {
	if !fn.HasBody() {
		return false
	}

	changed := false
	for _, blk := range fn.Body.Blocks() {
		instrs := blk.Instructions()
		if len(instrs) == 0 {
			continue
		}
		last := len(instrs) - 1
		var target hir.BlockId
		var node hir.InstrNode
		collapse := false

		switch t := instrs[last].(type) {
		case *hir.EnumSwitch:
			if len(t.Cases) == 0 {
				continue
			}
			node = t.InstrNode
			target = t.Cases[0].Branch
			collapse = true
			for _, c := range t.Cases[1:] {
				if c.Branch != target {
					collapse = false
					break
				}
			}
		case *hir.IntegerSwitch:
			node = t.InstrNode
			target = t.Default
			collapse = true
			for _, c := range t.Cases {
				if c.Branch != target {
					collapse = false
					break
				}
			}
		case *hir.StringSwitch:
			node = t.InstrNode
			target = t.Default
			collapse = true
			for _, c := range t.Cases {
				if c.Branch != target {
					collapse = false
					break
				}
			}
		default:
			continue
		}

		if !collapse {
			continue
		}
		rewritten := append([]hir.Instruction{}, instrs[:last]...)
		rewritten = append(rewritten, &hir.Jump{InstrNode: node, Target: target})
		blk.SetInstructions(rewritten)
		changed = true
	}
	return changed
}
