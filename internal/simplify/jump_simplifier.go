package simplify

import "github.com/sunholo/ownhir/internal/hir"

// JumpSimplifier finds blocks whose entire body is a single unconditional
// Jump, removes them, and retargets every Jump/EnumSwitch/IntegerSwitch/
// StringSwitch that pointed at them directly to their ultimate
// destination (spec.md §4.6, scenario S6), ported from
// JumpSimplifier.rs's build-the-jump-map / remove / retarget structure.
// BlockId(0) is never collapsed away: the function's entry block must
// stay addressable at id 0.
type JumpSimplifier struct{}

func (JumpSimplifier) Run(fn *hir.Function) bool {
	if !fn.HasBody() {
		return false
	}
	body := fn.Body

	jumps := map[hir.BlockId]hir.BlockId{}
	for _, blk := range body.Blocks() {
		if blk.ID == hir.BlockId(0) {
			continue
		}
		instrs := blk.Instructions()
		if len(instrs) != 1 {
			continue
		}
		if j, ok := instrs[0].(*hir.Jump); ok {
			jumps[blk.ID] = j.Target
		}
	}
	// A candidate whose chain of jumps loops back on itself without ever
	// reaching a block outside the candidate set is an unreachable cycle
	// with no real destination; collapsing it would retarget any outside
	// reference to a block this pass is about to delete. Leave every
	// block in such a cycle alone.
	ids := make([]hir.BlockId, 0, len(jumps))
	for id := range jumps {
		ids = append(ids, id)
	}
	for _, id := range ids {
		if _, ok := jumps[id]; !ok {
			continue
		}
		cur := id
		seen := map[hir.BlockId]bool{}
		escapes := false
		for {
			if seen[cur] {
				break
			}
			seen[cur] = true
			next, ok := jumps[cur]
			if !ok {
				escapes = true
				break
			}
			cur = next
		}
		if !escapes {
			for member := range seen {
				delete(jumps, member)
			}
		}
	}

	if len(jumps) == 0 {
		return false
	}

	replace := func(id hir.BlockId) (hir.BlockId, bool) {
		cur := id
		seen := map[hir.BlockId]bool{}
		moved := false
		for {
			if seen[cur] {
				return cur, moved
			}
			seen[cur] = true
			next, ok := jumps[cur]
			if !ok {
				return cur, moved
			}
			cur = next
			moved = true
		}
	}

	for id := range jumps {
		body.RemoveBlock(id)
	}

	// Removing at least one block is itself a change, even if no
	// surviving terminator happened to target it directly.
	changed := true
	for _, blk := range body.Blocks() {
		instrs := blk.Instructions()
		if len(instrs) == 0 {
			continue
		}
		switch t := instrs[len(instrs)-1].(type) {
		case *hir.Jump:
			if nt, ok := replace(t.Target); ok {
				t.Target = nt
				changed = true
			}
		case *hir.EnumSwitch:
			for i := range t.Cases {
				if nt, ok := replace(t.Cases[i].Branch); ok {
					t.Cases[i].Branch = nt
					changed = true
				}
			}
		case *hir.IntegerSwitch:
			for i := range t.Cases {
				if nt, ok := replace(t.Cases[i].Branch); ok {
					t.Cases[i].Branch = nt
					changed = true
				}
			}
			if nt, ok := replace(t.Default); ok {
				t.Default = nt
				changed = true
			}
		case *hir.StringSwitch:
			for i := range t.Cases {
				if nt, ok := replace(t.Cases[i].Branch); ok {
					t.Cases[i].Branch = nt
					changed = true
				}
			}
			if nt, ok := replace(t.Default); ok {
				t.Default = nt
				changed = true
			}
		}
	}
	return changed
}
