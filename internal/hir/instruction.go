package hir

import (
	"fmt"
	"strings"

	"github.com/sunholo/ownhir/internal/names"
)

// Instruction is the closed tagged sum of HIR instruction kinds (spec.md
// §3). hirpath.ExtractUsage, which dropcheck routes every instruction
// through, has one case per kind and panics on any other. The simplify
// passes and their helpers switch only on the kinds they act on and
// treat every other kind as having no effect.
type Instruction interface {
	ID() uint64
	Loc() Pos
	String() string
	instruction()
}

// InstrNode is embedded by every concrete Instruction, mirroring the
// teacher's CoreNode embed (internal/core/core.go): a stable id plus
// source location, factored once instead of repeated per variant.
type InstrNode struct {
	InstrID  uint64
	Location Pos
}

func (n InstrNode) ID() uint64 { return n.InstrID }
func (n InstrNode) Loc() Pos   { return n.Location }

// DeclareVar introduces Var into scope within syntax block Block, with no
// value yet assigned.
type DeclareVar struct {
	InstrNode
	Var   *Variable
	Block SyntaxBlockId
}

func (i *DeclareVar) instruction() {}
func (i *DeclareVar) String() string {
	return fmt.Sprintf("declare %s", i.Var)
}

// Assign writes Src into Dest wholesale (Dest's entire path is
// overwritten).
type Assign struct {
	InstrNode
	Dest *Variable
	Src  *Variable
}

func (i *Assign) instruction() {}
func (i *Assign) String() string {
	return fmt.Sprintf("%s = %s", i.Dest, i.Src)
}

// FieldAssign writes Src into one access path of Dest, described by
// Fields (a chain of named/indexed field segments, outermost first).
type FieldAssign struct {
	InstrNode
	Dest   *Variable
	Fields []string
	Src    *Variable
}

func (i *FieldAssign) instruction() {}
func (i *FieldAssign) String() string {
	return fmt.Sprintf("%s.%s = %s", i.Dest, strings.Join(i.Fields, "."), i.Src)
}

// FieldRef reads one access path of Receiver through Fields into Dest.
type FieldRef struct {
	InstrNode
	Dest     *Variable
	Receiver *Variable
	Fields   []string
}

func (i *FieldRef) instruction() {}
func (i *FieldRef) String() string {
	return fmt.Sprintf("%s = %s.%s", i.Dest, i.Receiver, strings.Join(i.Fields, "."))
}

// Ref borrows Src into Dest; Src is recorded as referenced, not moved.
type Ref struct {
	InstrNode
	Dest *Variable
	Src  *Variable
}

func (i *Ref) instruction() {}
func (i *Ref) String() string {
	return fmt.Sprintf("%s = &%s", i.Dest, i.Src)
}

// CallInfo describes a FunctionCall's callee and arguments; Callee starts
// unresolved (trait-method calls) and is rewritten to a concrete name by
// the checker/trait engine (spec.md §6 "every trait-method call rewritten
// to a concrete callee").
type CallInfo struct {
	Callee names.QualifiedName
	Args   []*Variable
}

func (c CallInfo) String() string {
	parts := make([]string, len(c.Args))
	for i, a := range c.Args {
		parts[i] = a.String()
	}
	return fmt.Sprintf("%s(%s)", c.Callee, strings.Join(parts, ", "))
}

// FunctionCall invokes Info.Callee with Info.Args, binding the result to
// Dest (Dest may be nil for a call made purely for its side effects).
type FunctionCall struct {
	InstrNode
	Dest *Variable
	Info CallInfo
}

func (i *FunctionCall) instruction() {}
func (i *FunctionCall) String() string {
	if i.Dest == nil {
		return i.Info.String()
	}
	return fmt.Sprintf("%s = %s", i.Dest, i.Info)
}

// Return exits the function with Value (nil for a unit/void return).
type Return struct {
	InstrNode
	Value *Variable
}

func (i *Return) instruction() {}
func (i *Return) String() string {
	if i.Value == nil {
		return "return"
	}
	return fmt.Sprintf("return %s", i.Value)
}

// BlockId identifies one basic block within a function's Body.
type BlockId uint32

func (b BlockId) String() string { return fmt.Sprintf("B%d", uint32(b)) }

// Jump transfers control unconditionally to Target, carrying Value only
// for instructions that model a "jump with handoff" (e.g. a with-block
// entry); most Jumps carry a nil Value.
type Jump struct {
	InstrNode
	Value  *Variable
	Target BlockId
}

func (i *Jump) instruction() {}
func (i *Jump) String() string { return fmt.Sprintf("jump %s", i.Target) }

// EnumCase is one arm of an EnumSwitch: VariantIndex selects the matched
// variant, Branch is the block to transfer control to.
type EnumCase struct {
	VariantIndex int
	Branch       BlockId
}

// EnumSwitch dispatches on Disc's runtime variant tag.
type EnumSwitch struct {
	InstrNode
	Disc  *Variable
	Cases []EnumCase
}

func (i *EnumSwitch) instruction() {}
func (i *EnumSwitch) String() string {
	return fmt.Sprintf("switch %s { %d cases }", i.Disc, len(i.Cases))
}

// IntegerCase is one arm of an IntegerSwitch.
type IntegerCase struct {
	Value  int64
	Branch BlockId
}

// IntegerSwitch dispatches on Disc's integer value; Default is taken when
// no case matches.
type IntegerSwitch struct {
	InstrNode
	Disc    *Variable
	Cases   []IntegerCase
	Default BlockId
}

func (i *IntegerSwitch) instruction() {}
func (i *IntegerSwitch) String() string {
	return fmt.Sprintf("iswitch %s { %d cases, default %s }", i.Disc, len(i.Cases), i.Default)
}

// StringCase is one arm of a StringSwitch.
type StringCase struct {
	Value  string
	Branch BlockId
}

// StringSwitch dispatches on Disc's string value; Default is taken when
// no case matches.
type StringSwitch struct {
	InstrNode
	Disc    *Variable
	Cases   []StringCase
	Default BlockId
}

func (i *StringSwitch) instruction() {}
func (i *StringSwitch) String() string {
	return fmt.Sprintf("sswitch %s { %d cases, default %s }", i.Disc, len(i.Cases), i.Default)
}

// BlockStart marks entry into lexical syntax block Syntax; BlockEnd marks
// its exit. Neither transfers control; they bracket a run of instructions
// within the same basic Block for the benefit of the declaration store.
type BlockStart struct {
	InstrNode
	Syntax SyntaxBlockId
}

func (i *BlockStart) instruction() {}
func (i *BlockStart) String() string { return fmt.Sprintf("block-start %s", i.Syntax) }

type BlockEnd struct {
	InstrNode
	Syntax SyntaxBlockId
}

func (i *BlockEnd) instruction() {}
func (i *BlockEnd) String() string { return fmt.Sprintf("block-end %s", i.Syntax) }

// WithInfo names the destination block a With instruction hands control
// into, together with the resource variable it scopes.
type WithInfo struct {
	BlockId  BlockId
	Resource *Variable
}

// With enters a scoped-resource block (spec.md §4.3 "With(_, info)
// transfers to info.blockId").
type With struct {
	InstrNode
	Info WithInfo
}

func (i *With) instruction() {}
func (i *With) String() string { return fmt.Sprintf("with %s -> %s", i.Info.Resource, i.Info.BlockId) }

// Transform rewrites Dest from Src via a named conversion (e.g. an
// implicit coercion inserted by the checker); side-effect-free.
type Transform struct {
	InstrNode
	Dest *Variable
	Src  *Variable
	Kind string
}

func (i *Transform) instruction() {}
func (i *Transform) String() string {
	return fmt.Sprintf("%s = transform[%s](%s)", i.Dest, i.Kind, i.Src)
}

// DropListPlaceholder marks a point where a later emission pass
// (out of core scope, see spec.md §9) will insert a generated list of
// drops; the core only tracks its id for the declaration store to find.
type DropListPlaceholder struct {
	InstrNode
	ListID uint64
}

func (i *DropListPlaceholder) instruction() {}
func (i *DropListPlaceholder) String() string {
	return fmt.Sprintf("drop-list#%d", i.ListID)
}

// CoroutineYield suspends the enclosing coroutine, yielding Value to its
// caller and binding the value it's later resumed with to Dest.
type CoroutineYield struct {
	InstrNode
	Dest  *Variable
	Value *Variable
}

func (i *CoroutineYield) instruction() {}
func (i *CoroutineYield) String() string {
	return fmt.Sprintf("%s = yield %s", i.Dest, i.Value)
}

// CoroutineReturn completes the enclosing coroutine with a final Value.
type CoroutineReturn struct {
	InstrNode
	Value *Variable
}

func (i *CoroutineReturn) instruction() {}
func (i *CoroutineReturn) String() string {
	return fmt.Sprintf("coreturn %s", i.Value)
}
