// Package simplify implements the HIR simplification pipeline: a
// per-function convergence loop composing jump simplification, block
// merging, constant folding, dead-code elimination, and unused-variable
// and -assignment removal (spec.md §4.6), grounded on the teacher's
// per-concern file layout (see DESIGN.md).
package simplify

import "github.com/sunholo/ownhir/internal/hir"

// Pass is one simplification concern; Run rewrites fn's body in place and
// reports whether it made any change.
type Pass interface {
	Run(fn *hir.Function) bool
}

// Pipeline is the ordered list of passes a function's body is repeatedly
// run through until none report a change (spec.md §4.6 "convergence
// loop"), mirroring the teacher's own Simplifier::simplify pass order.
type Pipeline struct {
	passes []Pass
}

// NewPipeline returns a Pipeline over prog's functions, wiring the passes
// that need program context (purity lookups) to prog.
func NewPipeline(prog *hir.Program) *Pipeline {
	return &Pipeline{passes: []Pass{
		VarSimplifier{},
		JumpSimplifier{},
		BlockMerger{},
		CompileTimeEvaluator{},
		DeadCodeEliminator{},
		NewUnusedVariableEliminator(prog),
		NewUnusedAssignmentEliminator(prog),
		SwitchSimplifier{},
	}}
}

// RunToFixpoint runs every pass over fn in order, repeating the whole
// sequence until a full round makes no change. It reports whether any
// pass ever changed fn (invariant #5: a second call after convergence is
// a no-op and returns false).
func (p *Pipeline) RunToFixpoint(fn *hir.Function) bool {
	if !fn.HasBody() {
		return false
	}
	any := false
	for {
		round := false
		for _, pass := range p.passes {
			if pass.Run(fn) {
				round = true
			}
		}
		if !round {
			return any
		}
		any = true
	}
}
