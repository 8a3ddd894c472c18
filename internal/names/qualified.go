// Package names implements the hierarchical identifiers the HIR uses to
// name modules, items, trait instances, and monomorphized specializations.
package names

import (
	"fmt"
	"strings"
)

// QualifiedName is a hierarchical identifier produced by the resolver.
// Two names compare structurally (Equal), never by pointer.
type QualifiedName interface {
	fmt.Stringer
	// Module returns the enclosing module name for this identifier.
	Module() string
	Equal(QualifiedName) bool
	qualifiedName()
}

// Module names a top-level module.
type Module struct {
	Path string
}

func (m Module) qualifiedName() {}
func (m Module) Module() string { return m.Path }
func (m Module) String() string { return m.Path }
func (m Module) Equal(other QualifiedName) bool {
	o, ok := other.(Module)
	return ok && o.Path == m.Path
}

// Item names a top-level declaration (function, struct, enum, trait) under
// a parent module.
type Item struct {
	Parent QualifiedName
	Name   string
}

func (i Item) qualifiedName() {}
func (i Item) Module() string { return i.Parent.Module() }
func (i Item) String() string { return fmt.Sprintf("%s.%s", i.Parent, i.Name) }
func (i Item) Equal(other QualifiedName) bool {
	o, ok := other.(Item)
	return ok && o.Name == i.Name && i.Parent.Equal(o.Parent)
}

// Instance names the id-th instance declaration under a trait or impl
// parent; instances are otherwise anonymous, so the id disambiguates
// overlapping instance declarations at the same source location set.
type Instance struct {
	Parent QualifiedName
	ID     uint64
}

func (i Instance) qualifiedName() {}
func (i Instance) Module() string { return i.Parent.Module() }
func (i Instance) String() string { return fmt.Sprintf("%s#%d", i.Parent, i.ID) }
func (i Instance) Equal(other QualifiedName) bool {
	o, ok := other.(Instance)
	return ok && o.ID == i.ID && i.Parent.Equal(o.Parent)
}

// Monomorphized names a specialization of a generic item at a fixed list
// of type argument renderings (callers pass in the already-rendered
// argument strings; internal/types.Type.String() is the usual source).
type Monomorphized struct {
	Parent QualifiedName
	Args   []string
}

func (m Monomorphized) qualifiedName() {}
func (m Monomorphized) Module() string { return m.Parent.Module() }
func (m Monomorphized) String() string {
	return fmt.Sprintf("%s[%s]", m.Parent, strings.Join(m.Args, ", "))
}
func (m Monomorphized) Equal(other QualifiedName) bool {
	o, ok := other.(Monomorphized)
	if !ok || !m.Parent.Equal(o.Parent) || len(m.Args) != len(o.Args) {
		return false
	}
	for i := range m.Args {
		if m.Args[i] != o.Args[i] {
			return false
		}
	}
	return true
}

// Less provides a deterministic total order over QualifiedNames, used
// wherever a map keyed by QualifiedName must iterate or report in a
// stable order (instance tables, SCC membership, error lists).
func Less(a, b QualifiedName) bool {
	return a.String() < b.String()
}
