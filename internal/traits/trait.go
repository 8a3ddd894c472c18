// Package traits implements instance registration, specificity-ordered
// instance search, and constraint-context expansion (spec.md §4.2).
package traits

import (
	"fmt"
	"strings"

	"github.com/sunholo/ownhir/internal/names"
	"github.com/sunholo/ownhir/internal/types"
)

// MemberInfo describes one trait member's declared or default signature.
type MemberInfo struct {
	Name    string
	Result  types.Type
	Default bool
}

// Trait is a trait declaration: a name, its own type parameters, any
// associated types it introduces, and its member signatures.
type Trait struct {
	Name            names.QualifiedName
	Params          []types.Type
	AssociatedTypes []string
	Members         []MemberInfo
}

// AssociatedType binds one of a trait's associated type names to a
// concrete type within a specific instance.
type AssociatedType struct {
	Name string
	Type types.Type
}

// Constraint is one obligation in a ConstraintContext: "Args must
// implement trait Name", with AssociatedTypes pinning any associated
// types the constraint's use site already knows.
type Constraint struct {
	Name            names.QualifiedName
	Args            []types.Type
	AssociatedTypes []AssociatedType
}

func (c Constraint) String() string {
	parts := make([]string, len(c.Args))
	for i, a := range c.Args {
		parts[i] = a.String()
	}
	return fmt.Sprintf("%s[%s]", c.Name, strings.Join(parts, ", "))
}

// key identifies a constraint for seen-set deduplication during
// expansion; two constraints with the same rendered form are treated as
// the same obligation.
func (c Constraint) key() string { return c.String() }

// ConstraintContext is a function or instance's declared type-parameter
// list plus the constraints it assumes hold for them.
type ConstraintContext struct {
	TypeParams  []types.Type
	Constraints []Constraint
}

// Instance is one trait implementation: the types it implements the trait
// for, any constraints required to use it, and its member implementations.
type Instance struct {
	ID                uint64
	TraitName         names.QualifiedName
	Types             []types.Type
	AssociatedTypes   []AssociatedType
	ConstraintContext ConstraintContext
	Members           []MemberInfo
}

func (i Instance) String() string {
	parts := make([]string, len(i.Types))
	for idx, t := range i.Types {
		parts[idx] = t.String()
	}
	return fmt.Sprintf("instance#%d %s[%s]", i.ID, i.TraitName, strings.Join(parts, ", "))
}
