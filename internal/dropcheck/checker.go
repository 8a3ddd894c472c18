// Package dropcheck implements the drop/move event analysis: per-root
// event series, compression, cross-block collision detection, and
// declaration bookkeeping (spec.md §4.4), ported from the ownership
// prototype's Event/Context/BlockProcessor/CollisionChecker family (see
// DESIGN.md).
package dropcheck

import (
	"github.com/sunholo/ownhir/internal/hir"
	"github.com/sunholo/ownhir/internal/hirpath"
	"github.com/sunholo/ownhir/internal/report"
)

// Result is what CheckFunction returns: every collision it found,
// already converted to a *report.Report, in deterministic order (block by
// block; within a block, root by root in first-observation order, then by
// event), plus the declaration store assembled along the way.
type Result struct {
	Reports []*report.Report
	Store   *DeclarationStore
}

// CheckFunction runs the drop/move checker over fn's body to a fixpoint
// (spec.md §4.4 "Cross-block fixpoint"): block 0 seeds empty; each
// block's compressed combined event series seeds every successor, and a
// successor is re-enqueued whenever that seeding adds an event it didn't
// already carry. Once the worklist drains, every block is re-walked once
// more against its final seed to collect the full, stable set of
// collisions (spec.md §5 Ordering: blocks are visited in the body's
// insertion order for this final pass, so report order is deterministic).
// A Function with no body (spec.md §3 Lifecycle — external declarations)
// produces an empty Result.
func CheckFunction(fn *hir.Function) Result {
	store := NewDeclarationStore()
	if !fn.HasBody() {
		return Result{Store: store}
	}

	body := fn.Body
	blocks := body.Blocks()
	if len(blocks) == 0 {
		return Result{Store: store}
	}

	refs := hirpath.BuildReferenceStore(fn)

	base := make(map[hir.BlockId]map[string][]Event, len(blocks))
	discovered := make(map[hir.BlockId]bool, len(blocks))

	roots := make(map[string]*hir.Variable)
	entry := body.Entry()

	queue := []hir.BlockId{}
	enqueued := make(map[hir.BlockId]bool)
	if entry != nil {
		base[entry.ID] = make(map[string][]Event)
		discovered[entry.ID] = true
		queue = append(queue, entry.ID)
		enqueued[entry.ID] = true
	}

	for len(queue) > 0 {
		id := queue[0]
		queue = queue[1:]
		enqueued[id] = false

		blk := body.Block(id)
		if blk == nil {
			continue
		}

		ctx := NewContext()
		for key, events := range base[id] {
			if v := roots[key]; v != nil {
				ctx.SeedBase(v, events)
			}
		}
		processBlock(blk, ctx, store, refs)
		for _, v := range ctx.Roots() {
			roots[v.Name.String()] = v
		}
		_, newBase := ctx.Validate()

		// A successor is (re-)enqueued either the first time it is
		// discovered (mirroring CollisionChecker.process's
		// blockEnvs.entry(...).or_insert_with side effect, which must
		// visit every reachable block at least once even when no new
		// event is carried into it) or whenever seeding it changes its
		// base events.
		for _, succ := range body.Successors(id) {
			firstSeen := !discovered[succ]
			if firstSeen {
				discovered[succ] = true
				base[succ] = make(map[string][]Event)
			}
			changed := false
			for key, events := range newBase {
				merged, didChange := mergeEvents(base[succ][key], events)
				if didChange {
					base[succ][key] = merged
					changed = true
				}
			}
			if (firstSeen || changed) && !enqueued[succ] {
				queue = append(queue, succ)
				enqueued[succ] = true
			}
		}
	}

	var reports []*report.Report
	for _, blk := range blocks {
		ctx := NewContext()
		for key, events := range base[blk.ID] {
			if v := roots[key]; v != nil {
				ctx.SeedBase(v, events)
			}
		}
		processBlock(blk, ctx, store, refs)
		collisions, _ := ctx.Validate()
		for _, c := range collisions {
			reports = append(reports, report.NewAlreadyMoved(
				c.Path.String(), c.PrevMove.String(),
				c.Path.Location.String(), c.PrevMove.Location.String(),
				c.LoopCarried,
			))
		}
	}

	return Result{Reports: reports, Store: store}
}

// mergeEvents appends every event from incoming not already present
// (by Equal) in existing, reporting whether anything was added — the
// "merge by appending any not-already-present... event" step of spec.md
// §4.4's cross-block fixpoint.
func mergeEvents(existing, incoming []Event) ([]Event, bool) {
	changed := false
	out := existing
	for _, e := range incoming {
		found := false
		for _, o := range existing {
			if e.Equal(o) {
				found = true
				break
			}
		}
		if !found {
			out = append(out, e)
			changed = true
		}
	}
	return out, changed
}
