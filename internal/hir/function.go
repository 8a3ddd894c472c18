package hir

import (
	"github.com/sunholo/ownhir/internal/names"
	"github.com/sunholo/ownhir/internal/traits"
	"github.com/sunholo/ownhir/internal/types"
)

// ParamKind distinguishes a function parameter's binding mode.
type ParamKind int

const (
	ParamNamed ParamKind = iota
	ParamSelf
	ParamRefSelf
	ParamMutSelf
)

func (k ParamKind) String() string {
	switch k {
	case ParamSelf:
		return "self"
	case ParamRefSelf:
		return "&self"
	case ParamMutSelf:
		return "mut self"
	default:
		return "named"
	}
}

// Param is one declared function parameter.
type Param struct {
	Kind ParamKind
	Name string
	Type types.Type
}

// Result is a function's declared result: either a single type, or a
// generator (coroutine) result carrying both the yielded and final type.
type Result struct {
	Single    types.Type
	Coroutine *types.Coroutine
}

// FunctionKind classifies how a Function was introduced.
type FunctionKind int

const (
	UserDefined FunctionKind = iota
	StructCtor
	VariantCtor
	Extern
	TraitMemberDecl
	TraitMemberDefinition
)

// Attributes are boolean function-level markers the checker and
// simplifier consult (e.g. "pure" functions are side-effect-free calls,
// see spec.md §4.6).
type Attributes struct {
	Inline bool
	Test   bool
	Unsafe bool
	Safe   bool
	Pure   bool
}

// Function is one HIR function: its qualified name, signature, optional
// body (nil for an external declaration), constraint context, and kind.
type Function struct {
	Name              names.QualifiedName
	Params            []Param
	Result            Result
	Body              *Body // nil => external/no-body, spec.md §3 Lifecycle
	Constraints       traits.ConstraintContext
	Kind              FunctionKind
	VariantIndex      int // meaningful only when Kind == VariantCtor
	Attrs             Attributes
	Variables         []*Variable // every Variable introduced in this function, for allocator bookkeeping
}

// HasBody reports whether f has an in-core body to analyze; a Function
// without one is external and skips drop/usage analysis entirely, though
// it may still carry a declared profile (spec.md §3 Lifecycle).
func (f *Function) HasBody() bool { return f.Body != nil }

// AddVariable registers v with the function and returns it, for callers
// building a body incrementally.
func (f *Function) AddVariable(v *Variable) *Variable {
	f.Variables = append(f.Variables, v)
	return v
}
