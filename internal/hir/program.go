package hir

import (
	"github.com/sunholo/ownhir/internal/names"
	"github.com/sunholo/ownhir/internal/traits"
	"github.com/sunholo/ownhir/internal/types"
)

// FieldDecl is one struct field or enum-variant-payload field.
type FieldDecl struct {
	Name string
	Type types.Type
}

// StructDecl declares a struct type's fields, in declaration order.
type StructDecl struct {
	Name   names.QualifiedName
	Params []types.Type // generic parameters, as Vars
	Fields []FieldDecl
}

// VariantDecl is one enum variant, with its own payload fields.
type VariantDecl struct {
	Name   string
	Index  int
	Fields []FieldDecl
}

// EnumDecl declares an enum type's variants, in declaration order.
type EnumDecl struct {
	Name     names.QualifiedName
	Params   []types.Type
	Variants []VariantDecl
}

// Program is the full unit the core operates on: struct/enum/trait
// /instance/function tables, every one insertion-ordered so iteration
// (and therefore error order) is deterministic (spec.md §5 Ordering).
type Program struct {
	structOrder []string
	structs     map[string]*StructDecl

	enumOrder []string
	enums     map[string]*EnumDecl

	traitOrder []string
	traitDecls map[string]*traits.Trait

	resolver *traits.InstanceResolver

	funcOrder []string
	functions map[string]*Function
}

// NewProgram returns an empty program with an initialized instance
// resolver.
func NewProgram() *Program {
	return &Program{
		structs:    make(map[string]*StructDecl),
		enums:      make(map[string]*EnumDecl),
		traitDecls: make(map[string]*traits.Trait),
		resolver:   traits.NewInstanceResolver(),
		functions:  make(map[string]*Function),
	}
}

func (p *Program) AddStruct(s *StructDecl) {
	key := s.Name.String()
	if _, exists := p.structs[key]; !exists {
		p.structOrder = append(p.structOrder, key)
	}
	p.structs[key] = s
}

func (p *Program) Struct(name names.QualifiedName) (*StructDecl, bool) {
	s, ok := p.structs[name.String()]
	return s, ok
}

func (p *Program) Structs() []*StructDecl {
	out := make([]*StructDecl, len(p.structOrder))
	for i, k := range p.structOrder {
		out[i] = p.structs[k]
	}
	return out
}

func (p *Program) AddEnum(e *EnumDecl) {
	key := e.Name.String()
	if _, exists := p.enums[key]; !exists {
		p.enumOrder = append(p.enumOrder, key)
	}
	p.enums[key] = e
}

func (p *Program) Enum(name names.QualifiedName) (*EnumDecl, bool) {
	e, ok := p.enums[name.String()]
	return e, ok
}

func (p *Program) Enums() []*EnumDecl {
	out := make([]*EnumDecl, len(p.enumOrder))
	for i, k := range p.enumOrder {
		out[i] = p.enums[k]
	}
	return out
}

func (p *Program) AddTrait(t *traits.Trait) {
	key := t.Name.String()
	if _, exists := p.traitDecls[key]; !exists {
		p.traitOrder = append(p.traitOrder, key)
	}
	p.traitDecls[key] = t
}

func (p *Program) Trait(name names.QualifiedName) (traits.Trait, bool) {
	t, ok := p.traitDecls[name.String()]
	if !ok {
		return traits.Trait{}, false
	}
	return *t, ok
}

func (p *Program) Traits() []*traits.Trait {
	out := make([]*traits.Trait, len(p.traitOrder))
	for i, k := range p.traitOrder {
		out[i] = p.traitDecls[k]
	}
	return out
}

// AddInstance registers inst with the program's instance resolver.
func (p *Program) AddInstance(inst traits.Instance) { p.resolver.AddInstance(inst) }

// Resolver returns the program's trait/instance resolver, used by the
// type checker to drive instance search.
func (p *Program) Resolver() *traits.InstanceResolver { return p.resolver }

func (p *Program) AddFunction(f *Function) {
	key := f.Name.String()
	if _, exists := p.functions[key]; !exists {
		p.funcOrder = append(p.funcOrder, key)
	}
	p.functions[key] = f
}

func (p *Program) Function(name names.QualifiedName) (*Function, bool) {
	f, ok := p.functions[name.String()]
	return f, ok
}

// Functions returns every function in insertion order.
func (p *Program) Functions() []*Function {
	out := make([]*Function, len(p.funcOrder))
	for i, k := range p.funcOrder {
		out[i] = p.functions[k]
	}
	return out
}
