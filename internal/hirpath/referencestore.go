package hirpath

import "github.com/sunholo/ownhir/internal/hir"

// ReferenceStore records every variable that has ever been the source of a
// Ref instruction anywhere in a function, so that a later plain read of
// that same variable is classified Ref rather than a fresh Move,
// independent of its declared type. Ported from
// compiler/src/siko/backend/path/ReferenceStore.rs's BTreeSet<VariableName>
// plus addReference/isReference/build.
type ReferenceStore struct {
	refs map[string]bool
}

// NewReferenceStore returns an empty store.
func NewReferenceStore() *ReferenceStore {
	return &ReferenceStore{refs: make(map[string]bool)}
}

// AddReference marks name as having been referenced.
func (s *ReferenceStore) AddReference(name string) {
	s.refs[name] = true
}

// IsReference reports whether name has ever been referenced.
func (s *ReferenceStore) IsReference(name string) bool {
	return s.refs[name]
}

// BuildReferenceStore scans every block of fn's body for Ref instructions
// and records each one's source variable, independent of block traversal
// order or control flow — a single whole-function pre-pass, matching
// ReferenceStore::build's walk over every instruction of every block.
func BuildReferenceStore(fn *hir.Function) *ReferenceStore {
	store := NewReferenceStore()
	if !fn.HasBody() {
		return store
	}
	for _, blk := range fn.Body.Blocks() {
		for _, instr := range blk.Instructions() {
			if r, ok := instr.(*hir.Ref); ok {
				store.AddReference(r.Src.Name.String())
			}
		}
	}
	return store
}
