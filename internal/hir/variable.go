package hir

import (
	"fmt"

	"github.com/sunholo/ownhir/internal/types"
)

// VariableName is the closed sum of ways a variable can be introduced:
// a compiler temporary, a source-named local, a function argument, or an
// argument captured by a closure/lambda.
type VariableName interface {
	fmt.Stringer
	Equals(VariableName) bool
	variableName()
}

// Tmp is a compiler-introduced temporary, numbered by the body builder.
type Tmp struct{ ID uint32 }

func (v Tmp) variableName()      {}
func (v Tmp) String() string     { return fmt.Sprintf("tmp%d", v.ID) }
func (v Tmp) Equals(o VariableName) bool { w, ok := o.(Tmp); return ok && w == v }

// Local is a source-named local binding; ID disambiguates shadowing
// within the same function.
type Local struct {
	Name string
	ID   uint32
}

func (v Local) variableName() {}
func (v Local) String() string { return fmt.Sprintf("%s#%d", v.Name, v.ID) }
func (v Local) Equals(o VariableName) bool {
	w, ok := o.(Local)
	return ok && w.Name == v.Name && w.ID == v.ID
}

// Arg is a named function parameter.
type Arg struct{ Name string }

func (v Arg) variableName()      {}
func (v Arg) String() string     { return v.Name }
func (v Arg) Equals(o VariableName) bool { w, ok := o.(Arg); return ok && w == v }

// ClosureArg is a variable captured by reference into a closure body.
type ClosureArg struct{ Name string }

func (v ClosureArg) variableName()      {}
func (v ClosureArg) String() string     { return "closure$" + v.Name }
func (v ClosureArg) Equals(o VariableName) bool { w, ok := o.(ClosureArg); return ok && w == v }

// LambdaArg is a parameter of an anonymous lambda, numbered positionally.
type LambdaArg struct{ Index uint32 }

func (v LambdaArg) variableName()      {}
func (v LambdaArg) String() string     { return fmt.Sprintf("lambda$%d", v.Index) }
func (v LambdaArg) Equals(o VariableName) bool { w, ok := o.(LambdaArg); return ok && w == v }

// TypeCell is the monotone, shared interior-mutable cell carrying a
// variable's type: it starts empty and is set at most once, by the
// checker, to a concrete (possibly still-generic) Type (spec.md design
// note "Shared mutable graphs"). Confining mutation to this single cell,
// rather than to the whole Variable or Body, is what lets many builders
// hold the same *Variable cheaply during a pass.
type TypeCell struct {
	ty types.Type
}

// Get returns the cell's current type and whether it has been set.
func (c *TypeCell) Get() (types.Type, bool) {
	if c == nil || c.ty == nil {
		return nil, false
	}
	return c.ty, true
}

// Set assigns ty to the cell. It is a programmer error to call Set twice
// with structurally different types; callers that merely refine a
// variable's substitution should construct a fresh TypeCell instead.
func (c *TypeCell) Set(ty types.Type) {
	if c.ty != nil && !c.ty.Equals(ty) {
		panic(fmt.Sprintf("type cell already set to %s, cannot overwrite with %s", c.ty, ty))
	}
	c.ty = ty
}

// Variable is one HIR variable occurrence: its stable name, its shared
// type cell, and the location of its introducing instruction.
type Variable struct {
	Name     VariableName
	TypeCell *TypeCell
	Decl     Pos
}

// NewVariable allocates a Variable with a fresh, empty TypeCell.
func NewVariable(name VariableName, decl Pos) *Variable {
	return &Variable{Name: name, TypeCell: &TypeCell{}, Decl: decl}
}

func (v *Variable) String() string { return v.Name.String() }

// Equals compares variables by name only, per spec.md §3 ("Equality is
// by name; type is mutated by checker").
func (v *Variable) Equals(o *Variable) bool {
	if v == nil || o == nil {
		return v == o
	}
	return v.Name.Equals(o.Name)
}
