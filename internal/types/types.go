// Package types implements the HIR type model: the closed sum of type
// terms, type variables, and the substitution/unification algorithms the
// trait engine and type checker build on.
package types

import (
	"fmt"
	"strings"

	"github.com/sunholo/ownhir/internal/names"
)

// Type is the closed sum of type terms described in spec.md §3.
type Type interface {
	fmt.Stringer
	Equals(Type) bool
	// Substitute applies sub to every Var appearing in the receiver and
	// returns the rewritten type; it does not mutate the receiver.
	Substitute(sub Substitution) Type
	typeTerm()
}

// TypeVar identifies a type variable, either a compiler-allocated numeric
// variable or a named rigid variable bound by a function/trait/instance
// declaration.
type TypeVar interface {
	fmt.Stringer
	Equals(TypeVar) bool
	typeVar()
}

// VarID is a compiler-allocated, globally unique type variable.
type VarID uint64

func (v VarID) typeVar()             {}
func (v VarID) String() string       { return fmt.Sprintf("'t%d", uint64(v)) }
func (v VarID) Equals(o TypeVar) bool { w, ok := o.(VarID); return ok && w == v }

// VarName is a named rigid type variable, e.g. a function's declared
// generic parameter.
type VarName string

func (v VarName) typeVar()             {}
func (v VarName) String() string       { return string(v) }
func (v VarName) Equals(o TypeVar) bool { w, ok := o.(VarName); return ok && w == v }

// Named is a nominal type constructor applied to zero or more arguments,
// e.g. Named(List, [Int]) for List[Int].
type Named struct {
	Name names.QualifiedName
	Args []Type
}

func (t Named) typeTerm() {}
func (t Named) String() string {
	if len(t.Args) == 0 {
		return t.Name.String()
	}
	parts := make([]string, len(t.Args))
	for i, a := range t.Args {
		parts[i] = a.String()
	}
	return fmt.Sprintf("%s[%s]", t.Name, strings.Join(parts, ", "))
}
func (t Named) Equals(other Type) bool {
	o, ok := other.(Named)
	if !ok || !t.Name.Equal(o.Name) || len(t.Args) != len(o.Args) {
		return false
	}
	for i := range t.Args {
		if !t.Args[i].Equals(o.Args[i]) {
			return false
		}
	}
	return true
}
func (t Named) Substitute(sub Substitution) Type {
	args := make([]Type, len(t.Args))
	for i, a := range t.Args {
		args[i] = a.Substitute(sub)
	}
	return Named{Name: t.Name, Args: args}
}

// Tuple is a fixed-arity product type.
type Tuple struct {
	Elems []Type
}

func (t Tuple) typeTerm() {}
func (t Tuple) String() string {
	parts := make([]string, len(t.Elems))
	for i, e := range t.Elems {
		parts[i] = e.String()
	}
	return fmt.Sprintf("(%s)", strings.Join(parts, ", "))
}
func (t Tuple) Equals(other Type) bool {
	o, ok := other.(Tuple)
	if !ok || len(t.Elems) != len(o.Elems) {
		return false
	}
	for i := range t.Elems {
		if !t.Elems[i].Equals(o.Elems[i]) {
			return false
		}
	}
	return true
}
func (t Tuple) Substitute(sub Substitution) Type {
	elems := make([]Type, len(t.Elems))
	for i, e := range t.Elems {
		elems[i] = e.Substitute(sub)
	}
	return Tuple{Elems: elems}
}

// Function is a closure type: callable, potentially capturing.
type Function struct {
	Args   []Type
	Result Type
}

func (t Function) typeTerm() {}
func (t Function) String() string {
	parts := make([]string, len(t.Args))
	for i, a := range t.Args {
		parts[i] = a.String()
	}
	return fmt.Sprintf("(%s) -> %s", strings.Join(parts, ", "), t.Result)
}
func (t Function) Equals(other Type) bool {
	o, ok := other.(Function)
	if !ok || len(t.Args) != len(o.Args) || !t.Result.Equals(o.Result) {
		return false
	}
	for i := range t.Args {
		if !t.Args[i].Equals(o.Args[i]) {
			return false
		}
	}
	return true
}
func (t Function) Substitute(sub Substitution) Type {
	args := make([]Type, len(t.Args))
	for i, a := range t.Args {
		args[i] = a.Substitute(sub)
	}
	return Function{Args: args, Result: t.Result.Substitute(sub)}
}

// FunctionPtr is a non-capturing function pointer, distinct from Function
// at the type level so the checker can reject closures where a bare
// pointer is required (extern callbacks, coroutine resumption points).
type FunctionPtr struct {
	Args   []Type
	Result Type
}

func (t FunctionPtr) typeTerm() {}
func (t FunctionPtr) String() string {
	parts := make([]string, len(t.Args))
	for i, a := range t.Args {
		parts[i] = a.String()
	}
	return fmt.Sprintf("fnptr(%s) -> %s", strings.Join(parts, ", "), t.Result)
}
func (t FunctionPtr) Equals(other Type) bool {
	o, ok := other.(FunctionPtr)
	if !ok || len(t.Args) != len(o.Args) || !t.Result.Equals(o.Result) {
		return false
	}
	for i := range t.Args {
		if !t.Args[i].Equals(o.Args[i]) {
			return false
		}
	}
	return true
}
func (t FunctionPtr) Substitute(sub Substitution) Type {
	args := make([]Type, len(t.Args))
	for i, a := range t.Args {
		args[i] = a.Substitute(sub)
	}
	return FunctionPtr{Args: args, Result: t.Result.Substitute(sub)}
}

// Reference is a borrowed, non-owning view of a value (`&T`).
type Reference struct{ Referent Type }

func (t Reference) typeTerm()            {}
func (t Reference) String() string       { return "&" + t.Referent.String() }
func (t Reference) Equals(other Type) bool {
	o, ok := other.(Reference)
	return ok && t.Referent.Equals(o.Referent)
}
func (t Reference) Substitute(sub Substitution) Type {
	return Reference{Referent: t.Referent.Substitute(sub)}
}

// Ptr is a raw, owning pointer (used by the Mini-C/LLVM backend; opaque to
// the core's own checking beyond unification).
type Ptr struct{ Pointee Type }

func (t Ptr) typeTerm()      {}
func (t Ptr) String() string { return "*" + t.Pointee.String() }
func (t Ptr) Equals(other Type) bool {
	o, ok := other.(Ptr)
	return ok && t.Pointee.Equals(o.Pointee)
}
func (t Ptr) Substitute(sub Substitution) Type { return Ptr{Pointee: t.Pointee.Substitute(sub)} }

// VoidPtr is an untyped pointer; it unifies with any Ptr unless the
// unification Config forbids it (see Config.VoidSeparate).
type VoidPtr struct{}

func (t VoidPtr) typeTerm()              {}
func (t VoidPtr) String() string         { return "*void" }
func (t VoidPtr) Equals(other Type) bool { _, ok := other.(VoidPtr); return ok }
func (t VoidPtr) Substitute(Substitution) Type { return t }

// Void is the uninhabited-by-value unit used for extern declarations with
// no meaningful result (distinct from a zero-size tuple).
type Void struct{}

func (t Void) typeTerm()              {}
func (t Void) String() string         { return "void" }
func (t Void) Equals(other Type) bool { _, ok := other.(Void); return ok }
func (t Void) Substitute(Substitution) Type { return t }

// Var is an unresolved type variable occurrence.
type Var struct{ Name TypeVar }

func (t Var) typeTerm()      {}
func (t Var) String() string { return t.Name.String() }
func (t Var) Equals(other Type) bool {
	o, ok := other.(Var)
	return ok && t.Name.Equals(o.Name)
}
func (t Var) Substitute(sub Substitution) Type {
	if repl, ok := sub.lookup(t.Name); ok {
		// transitive: keep resolving through the chain
		return repl.Substitute(sub)
	}
	return t
}

// Never is the bottom type of a diverging expression (a `return`, a
// non-returning loop, a panic). Unifying Never(IsOpen: true) with a bare
// variable binds that variable to Never(IsOpen: false); against any other
// type, open or closed, Never absorbs unification. Substitute returns a
// Never unchanged, so an open Never is never rewritten to a concrete type.
type Never struct{ IsOpen bool }

func (t Never) typeTerm()      {}
func (t Never) String() string { return "!" }
func (t Never) Equals(other Type) bool {
	o, ok := other.(Never)
	return ok && o.IsOpen == t.IsOpen
}
func (t Never) Substitute(Substitution) Type { return t }

// NumericConstant is the type of an unsuffixed numeric literal before
// defaulting; its Literal carries the literal text verbatim so two
// constants with different text never unify.
type NumericConstant struct{ Literal string }

func (t NumericConstant) typeTerm()      {}
func (t NumericConstant) String() string { return t.Literal }
func (t NumericConstant) Equals(other Type) bool {
	o, ok := other.(NumericConstant)
	return ok && o.Literal == t.Literal
}
func (t NumericConstant) Substitute(Substitution) Type { return t }

// Coroutine is the type of a resumable computation that yields values of
// Yielded before eventually producing Result.
type Coroutine struct {
	Yielded Type
	Result  Type
}

func (t Coroutine) typeTerm() {}
func (t Coroutine) String() string {
	return fmt.Sprintf("coroutine<%s, %s>", t.Yielded, t.Result)
}
func (t Coroutine) Equals(other Type) bool {
	o, ok := other.(Coroutine)
	return ok && t.Yielded.Equals(o.Yielded) && t.Result.Equals(o.Result)
}
func (t Coroutine) Substitute(sub Substitution) Type {
	return Coroutine{Yielded: t.Yielded.Substitute(sub), Result: t.Result.Substitute(sub)}
}

// SelfType stands for the enclosing trait/instance's implementing type; it
// is resolved away during instance instantiation.
type SelfType struct{}

func (t SelfType) typeTerm()              {}
func (t SelfType) String() string         { return "Self" }
func (t SelfType) Equals(other Type) bool { _, ok := other.(SelfType); return ok }
func (t SelfType) Substitute(Substitution) Type { return t }
