package hirpath

import (
	"github.com/sunholo/ownhir/internal/hir"
	"github.com/sunholo/ownhir/internal/types"
)

// UsageKind classifies how a variable occurrence is used.
type UsageKind int

const (
	Move UsageKind = iota
	RefUse
)

func (k UsageKind) String() string {
	if k == RefUse {
		return "ref"
	}
	return "move"
}

// Usage is one variable occurrence's classification: which path was
// touched, and how; the path carries the instruction's own location so
// the drop checker can cite it in a collision report.
type Usage struct {
	Path Path
	Kind UsageKind
}

// UsageInfo is what ExtractUsage produces for a single instruction: every
// usage it performs, plus the path it assigns to, if any (spec.md §4.3).
type UsageInfo struct {
	Usages []Usage
	Assign *Path
}

func varPath(v *hir.Variable, at hir.Instruction) Path {
	return Path{Root: v, Location: at.Loc(), InstructionID: at.ID()}
}

func fieldPath(root *hir.Variable, fields []string, at hir.Instruction) Path {
	items := make([]Segment, len(fields))
	for i, f := range fields {
		items[i] = NamedSegment(f, nil)
	}
	return Path{Root: root, Items: items, Location: at.Loc(), InstructionID: at.ID()}
}

// classifyRead produces the Usage for reading v: Ref if v's resolved type
// is a Reference or Ptr, or if refs marks v as having been referenced
// anywhere in the function (spec.md §4.3 rule 1/2, and the reference-store
// rule that a variable taken by reference is Ref on every later plain
// read regardless of its declared type), Move otherwise. If v's type cell
// is not yet set and refs does not mark it, it defaults to Move — the
// conservative choice, since an unresolved type cannot yet be known to be
// a reference. refs may be nil, treated as an empty store.
func classifyRead(v *hir.Variable, at hir.Instruction, refs *ReferenceStore) Usage {
	kind := Move
	if ty, ok := v.TypeCell.Get(); ok {
		switch ty.(type) {
		case types.Reference, types.Ptr:
			kind = RefUse
		}
	}
	if refs != nil && refs.IsReference(v.Name.String()) {
		kind = RefUse
	}
	return Usage{Path: varPath(v, at), Kind: kind}
}

// ExtractUsage classifies one instruction's variable occurrences into
// UsageInfo, per the rules enumerated in spec.md §4.3. refs is the
// function-wide ReferenceStore built by BuildReferenceStore, consulted so
// that a variable already taken by Ref is read as Ref from then on even
// where its declared type alone wouldn't say so; it may be nil. This is a
// single switch with one case per hir.Instruction kind; its default
// branch panics, so a new Instruction kind added to internal/hir fails
// loudly here until it gets its own case (Design Note "Dynamic dispatch
// over instruction kinds").
func ExtractUsage(instr hir.Instruction, refs *ReferenceStore) UsageInfo {
	switch ins := instr.(type) {
	case *hir.DeclareVar:
		return UsageInfo{}
	case *hir.Assign:
		p := varPath(ins.Dest, instr)
		return UsageInfo{Usages: []Usage{classifyRead(ins.Src, instr, refs)}, Assign: &p}
	case *hir.FieldAssign:
		p := fieldPath(ins.Dest, ins.Fields, instr)
		return UsageInfo{Usages: []Usage{classifyRead(ins.Src, instr, refs)}, Assign: &p}
	case *hir.FieldRef:
		kind := classifyRead(ins.Receiver, instr, refs).Kind
		return UsageInfo{Usages: []Usage{{Path: fieldPath(ins.Receiver, ins.Fields, instr), Kind: kind}}}
	case *hir.Ref:
		return UsageInfo{Usages: []Usage{{Path: varPath(ins.Src, instr), Kind: RefUse}}}
	case *hir.FunctionCall:
		usages := make([]Usage, len(ins.Info.Args))
		for i, a := range ins.Info.Args {
			usages[i] = classifyRead(a, instr, refs)
		}
		return UsageInfo{Usages: usages}
	case *hir.Return:
		if ins.Value == nil {
			return UsageInfo{}
		}
		return UsageInfo{Usages: []Usage{classifyRead(ins.Value, instr, refs)}}
	case *hir.Jump:
		if ins.Value == nil {
			return UsageInfo{}
		}
		return UsageInfo{Usages: []Usage{classifyRead(ins.Value, instr, refs)}}
	case *hir.EnumSwitch:
		return UsageInfo{Usages: []Usage{classifyRead(ins.Disc, instr, refs)}}
	case *hir.IntegerSwitch:
		return UsageInfo{Usages: []Usage{classifyRead(ins.Disc, instr, refs)}}
	case *hir.StringSwitch:
		return UsageInfo{Usages: []Usage{classifyRead(ins.Disc, instr, refs)}}
	case *hir.BlockStart:
		return UsageInfo{}
	case *hir.BlockEnd:
		return UsageInfo{}
	case *hir.With:
		return UsageInfo{Usages: []Usage{{Path: varPath(ins.Info.Resource, instr), Kind: RefUse}}}
	case *hir.Transform:
		return UsageInfo{Usages: []Usage{classifyRead(ins.Src, instr, refs)}}
	case *hir.DropListPlaceholder:
		return UsageInfo{}
	case *hir.CoroutineYield:
		return UsageInfo{Usages: []Usage{classifyRead(ins.Value, instr, refs)}}
	case *hir.CoroutineReturn:
		if ins.Value == nil {
			return UsageInfo{}
		}
		return UsageInfo{Usages: []Usage{classifyRead(ins.Value, instr, refs)}}
	default:
		panic("hirpath: ExtractUsage: unhandled instruction kind")
	}
}
