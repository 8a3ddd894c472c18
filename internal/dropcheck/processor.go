package dropcheck

import (
	"github.com/sunholo/ownhir/internal/hir"
	"github.com/sunholo/ownhir/internal/hirpath"
)

// processBlock walks blk's instructions in program order, classifying
// each one via hirpath.ExtractUsage and feeding the resulting
// usages/assignments into ctx, while tracking BlockStart/BlockEnd
// nesting to attribute DeclareVar and whole-path assignments to the
// right syntax block in store (spec.md §4.4 "Block processor"). refs is
// the whole-function ReferenceStore (built once by CheckFunction) that
// ExtractUsage consults so a variable already taken by reference reads
// as Ref on every later plain use.
func processBlock(blk *hir.Block, ctx *Context, store *DeclarationStore, refs *hirpath.ReferenceStore) {
	stack := []hir.SyntaxBlockId{hir.RootSyntaxBlock()}

	for _, instr := range blk.Instructions() {
		switch ins := instr.(type) {
		case *hir.BlockStart:
			stack = append(stack, ins.Syntax)
			continue
		case *hir.BlockEnd:
			if len(stack) > 1 {
				stack = stack[:len(stack)-1]
			}
			continue
		case *hir.DeclareVar:
			store.Declare(ins.Block, ins.Var)
		}

		current := stack[len(stack)-1]
		info := hirpath.ExtractUsage(instr, refs)
		for _, u := range info.Usages {
			ctx.AddUsage(u)
		}
		if info.Assign != nil {
			ctx.AddAssign(*info.Assign)
			store.Touch(current, *info.Assign)
		}
	}
}
