package dropcheck

import (
	"github.com/sunholo/ownhir/internal/hir"
	"github.com/sunholo/ownhir/internal/hirpath"
)

// DeclarationStore records, per syntactic block, which variables were
// declared there and which access paths were ever touched under them
// (spec.md §4.4 "Declaration store"). This bookkeeping is consumed by a
// later, out-of-core pass that emits drops at block ends (spec.md §9
// "the core specifies bookkeeping... but not the emission strategy").
type DeclarationStore struct {
	order   []string
	byBlock map[string]*blockDecls
}

type blockDecls struct {
	block    hir.SyntaxBlockId
	vars     []*hir.Variable
	seenVar  map[string]bool
	paths    map[string][]hirpath.SimplePath
	seenPath map[string]map[string]bool
}

// NewDeclarationStore returns an empty store.
func NewDeclarationStore() *DeclarationStore {
	return &DeclarationStore{byBlock: make(map[string]*blockDecls)}
}

func (s *DeclarationStore) ensure(block hir.SyntaxBlockId) *blockDecls {
	key := block.String()
	bd, ok := s.byBlock[key]
	if !ok {
		bd = &blockDecls{
			block:    block,
			seenVar:  make(map[string]bool),
			paths:    make(map[string][]hirpath.SimplePath),
			seenPath: make(map[string]map[string]bool),
		}
		s.byBlock[key] = bd
		s.order = append(s.order, key)
	}
	return bd
}

// Declare records that v was introduced within syntax block.
func (s *DeclarationStore) Declare(block hir.SyntaxBlockId, v *hir.Variable) {
	bd := s.ensure(block)
	key := v.Name.String()
	if !bd.seenVar[key] {
		bd.seenVar[key] = true
		bd.vars = append(bd.vars, v)
	}
}

// Touch records that p's full path was written while block was the
// active syntax block.
func (s *DeclarationStore) Touch(block hir.SyntaxBlockId, p hirpath.Path) {
	bd := s.ensure(block)
	varKey := p.Root.Name.String()
	if bd.seenPath[varKey] == nil {
		bd.seenPath[varKey] = make(map[string]bool)
	}
	pk := p.Simple().Key()
	if !bd.seenPath[varKey][pk] {
		bd.seenPath[varKey][pk] = true
		bd.paths[varKey] = append(bd.paths[varKey], p.Simple())
	}
}

// Declared returns the variables declared directly within block, in
// declaration order.
func (s *DeclarationStore) Declared(block hir.SyntaxBlockId) []*hir.Variable {
	bd, ok := s.byBlock[block.String()]
	if !ok {
		return nil
	}
	out := make([]*hir.Variable, len(bd.vars))
	copy(out, bd.vars)
	return out
}

// TouchedPaths returns every simple path rooted at root that was written
// while block was active, in first-observation order.
func (s *DeclarationStore) TouchedPaths(block hir.SyntaxBlockId, root *hir.Variable) []hirpath.SimplePath {
	bd, ok := s.byBlock[block.String()]
	if !ok {
		return nil
	}
	paths := bd.paths[root.Name.String()]
	out := make([]hirpath.SimplePath, len(paths))
	copy(out, paths)
	return out
}

// Blocks returns every syntax block this store has bookkeeping for, in
// first-observation order.
func (s *DeclarationStore) Blocks() []hir.SyntaxBlockId {
	out := make([]hir.SyntaxBlockId, len(s.order))
	for i, k := range s.order {
		out[i] = s.byBlock[k].block
	}
	return out
}
