package main

import (
	"github.com/sunholo/ownhir/internal/hir"
	"github.com/sunholo/ownhir/internal/names"
	"github.com/sunholo/ownhir/internal/traits"
	"github.com/sunholo/ownhir/internal/types"
)

// demoProgram builds a small but real hir.Program: a Point struct, a Show
// trait with one Point instance, and a "describe" function that declares
// a Point and calls the trait method on it, rewritten to the concrete
// instance during type checking. There is no surface-language frontend in
// this core (parsing is an explicit Non-goal), so this stands in for what
// a resolver would otherwise hand the core — building one directly in Go
// is the only way to drive cmd/ownhir without a parser to invoke.
func demoProgram() *hir.Program {
	prog := hir.NewProgram()

	pointName := names.Item{Parent: names.Module{Path: "demo"}, Name: "Point"}
	prog.AddStruct(&hir.StructDecl{
		Name:   pointName,
		Fields: []hir.FieldDecl{{Name: "x", Type: types.Named{Name: names.Item{Parent: names.Module{Path: "demo"}, Name: "Int"}}}},
	})

	showName := names.Item{Parent: names.Module{Path: "demo"}, Name: "Show"}
	prog.AddTrait(&traits.Trait{
		Name:    showName,
		Members: []traits.MemberInfo{{Name: "show"}},
	})

	decl := &hir.Function{
		Name:   names.Item{Parent: showName, Name: "show"},
		Kind:   hir.TraitMemberDecl,
		Params: []hir.Param{{Name: "self", Type: types.SelfType{}}},
		Result: hir.Result{Single: types.Named{Name: names.Item{Parent: names.Module{Path: "demo"}, Name: "String"}}},
	}
	prog.AddFunction(decl)

	instance := traits.Instance{ID: 1, TraitName: showName, Types: []types.Type{types.Named{Name: pointName}}}
	prog.AddInstance(instance)

	instanceFnName := names.Item{Parent: names.Instance{Parent: showName, ID: 1}, Name: "show"}
	prog.AddFunction(&hir.Function{
		Name:   instanceFnName,
		Kind:   hir.TraitMemberDefinition,
		Params: []hir.Param{{Name: "self", Type: types.Named{Name: pointName}}},
		Result: hir.Result{Single: types.Named{Name: names.Item{Parent: names.Module{Path: "demo"}, Name: "String"}}},
	})

	p := hir.NewVariable(hir.Local{Name: "p", ID: 0}, hir.Pos{File: "demo", Line: 1})
	p.TypeCell.Set(types.Named{Name: pointName})
	label := hir.NewVariable(hir.Local{Name: "label", ID: 1}, hir.Pos{File: "demo", Line: 2})

	blk := hir.NewBlock(hir.BlockId(0))
	blk.Append(&hir.DeclareVar{Var: p, Block: hir.RootSyntaxBlock()})
	blk.Append(&hir.FunctionCall{
		Dest: label,
		Info: hir.CallInfo{Callee: names.Item{Parent: showName, Name: "show"}, Args: []*hir.Variable{p}},
	})
	blk.Append(&hir.Return{Value: label})

	body := hir.NewBody()
	body.AddBlock(blk)

	describe := &hir.Function{
		Name:   names.Item{Parent: names.Module{Path: "demo"}, Name: "describe"},
		Result: hir.Result{Single: types.Named{Name: names.Item{Parent: names.Module{Path: "demo"}, Name: "String"}}},
		Body:   body,
	}
	prog.AddFunction(describe)

	return prog
}
