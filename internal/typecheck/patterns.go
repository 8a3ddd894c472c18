package typecheck

import (
	"github.com/sunholo/ownhir/internal/hir"
	"github.com/sunholo/ownhir/internal/types"
)

// visitSwitch checks a discriminant's type against what its switch kind
// requires: an EnumSwitch's discriminant must be a Named enum type with
// a matching variant for every case; Integer/StringSwitch need no more
// than ensuring the discriminant's type is already resolved.
func (st *state) visitSwitch(ins hir.Instruction) {
	switch i := ins.(type) {
	case *hir.EnumSwitch:
		st.visitEnumSwitch(i)
	case *hir.IntegerSwitch:
		st.ensureType(i.Disc)
	case *hir.StringSwitch:
		st.ensureType(i.Disc)
	}
}

func (st *state) visitEnumSwitch(sw *hir.EnumSwitch) {
	discType := types.Apply(st.ensureType(sw.Disc), st.sub)
	named, ok := discType.(types.Named)
	if !ok {
		return
	}
	decl, ok := st.c.prog.Enum(named.Name)
	if !ok {
		return
	}
	for _, c := range sw.Cases {
		if c.VariantIndex < 0 || c.VariantIndex >= len(decl.Variants) {
			st.reports = append(st.reports, reportUnknownVariant(named.Name.String(), c.VariantIndex, sw.Loc().String()))
		}
	}
}
