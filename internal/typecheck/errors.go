package typecheck

import (
	"fmt"

	"github.com/sunholo/ownhir/internal/report"
)

// reportUnknownVariant builds a FieldNotFound-shaped report (TY002) for
// an EnumSwitch case whose variant index doesn't exist on the
// discriminant's declared enum, the same lookup-miss family as a
// FieldRef onto a nonexistent struct field.
func reportUnknownVariant(enumName string, index int, pos string) *report.Report {
	return report.NewFieldNotFound(fmt.Sprintf("variant#%d", index), enumName, pos)
}
