// Package hirpath implements access paths rooted at a HIR variable and
// the usage-kind extraction that the drop checker consumes (spec.md §4.3
// Path & Usage).
package hirpath

import (
	"fmt"
	"strings"

	"golang.org/x/text/unicode/norm"

	"github.com/sunholo/ownhir/internal/hir"
	"github.com/sunholo/ownhir/internal/types"
)

// Segment is one step of an access path: a named field or an indexed
// tuple/array element, each carrying the type produced by that step.
type Segment struct {
	Named   string
	Indexed *uint32 // non-nil selects Indexed over Named
	Type    types.Type
}

// NamedSegment builds a field-access segment, normalizing the field name
// to NFC so two differently-composed but visually identical names key
// identically (grounded on internal/lexer/normalize.go's ingestion-time
// NFC normalization).
func NamedSegment(name string, ty types.Type) Segment {
	return Segment{Named: norm.NFC.String(name), Type: ty}
}

// IndexedSegment builds a positional-access segment.
func IndexedSegment(index uint32, ty types.Type) Segment {
	return Segment{Indexed: &index, Type: ty}
}

func (s Segment) isIndexed() bool { return s.Indexed != nil }

func (s Segment) equalKey(o Segment) bool {
	if s.isIndexed() != o.isIndexed() {
		return false
	}
	if s.isIndexed() {
		return *s.Indexed == *o.Indexed
	}
	return s.Named == o.Named
}

func (s Segment) String() string {
	if s.isIndexed() {
		return fmt.Sprintf("[%d]", *s.Indexed)
	}
	return s.Named
}

// Path is a full access path: a root variable, a chain of segments
// descending from it, the location it was observed at, and the
// instruction that produced the observation.
type Path struct {
	Root          *hir.Variable
	Items         []Segment
	Location      hir.Pos
	InstructionID uint64
}

// SimplePath drops Location/InstructionID, keeping only what identifies
// the path's shape; it is the type used as a map key (spec.md §3
// "SimplePath drops location/ref and is used as map key").
type SimplePath struct {
	Root  *hir.Variable
	Items []Segment
}

// Simple projects Path down to its SimplePath.
func (p Path) Simple() SimplePath {
	return SimplePath{Root: p.Root, Items: p.Items}
}

// Contains, SharesPrefixWith and Same delegate to the SimplePath
// projection, so callers holding a full Path (with its location) never
// need to project manually before comparing shapes.
func (p Path) Contains(o Path) bool         { return p.Simple().Contains(o.Simple()) }
func (p Path) SharesPrefixWith(o Path) bool { return p.Simple().SharesPrefixWith(o.Simple()) }
func (p Path) Same(o Path) bool             { return p.Simple().Same(o.Simple()) }

func (p Path) String() string {
	parts := make([]string, len(p.Items))
	for i, s := range p.Items {
		parts[i] = s.String()
	}
	if len(parts) == 0 {
		return p.Root.String()
	}
	return p.Root.String() + "." + strings.Join(parts, ".")
}

func (p SimplePath) String() string {
	parts := make([]string, len(p.Items))
	for i, s := range p.Items {
		parts[i] = s.String()
	}
	if len(parts) == 0 {
		return p.Root.String()
	}
	return p.Root.String() + "." + strings.Join(parts, ".")
}

// key renders a deterministic string key for use in ordered maps keyed
// by SimplePath (spec.md design note "String-keyed maps": use ordered
// maps for anything influencing error order).
func (p SimplePath) key() string { return p.String() }

// Key exposes the deterministic map key for external ordered-map users
// (dropcheck's per-root event tables).
func (p SimplePath) Key() string { return p.key() }

func sameRoot(a, b *hir.Variable) bool { return a.Equals(b) }

// itemsPrefix reports whether short is a prefix of long (segment-wise).
func itemsPrefix(short, long []Segment) bool {
	if len(short) > len(long) {
		return false
	}
	for i := range short {
		if !short[i].equalKey(long[i]) {
			return false
		}
	}
	return true
}

// SharesPrefixWith reports whether p and o have the same root and one's
// segment chain is a prefix of the other's (in either direction);
// reflexive and symmetric (spec.md §8 property 7).
func (p SimplePath) SharesPrefixWith(o SimplePath) bool {
	if !sameRoot(p.Root, o.Root) {
		return false
	}
	return itemsPrefix(p.Items, o.Items) || itemsPrefix(o.Items, p.Items)
}

// Contains reports whether p and o share a root and o's segment chain is
// a prefix of p's (o is p or an ancestor path of p); reflexive and
// transitive (spec.md §8 property 7).
func (p SimplePath) Contains(o SimplePath) bool {
	if !sameRoot(p.Root, o.Root) {
		return false
	}
	return itemsPrefix(o.Items, p.Items)
}

// Same reports whether p and o have an equal root and an identical
// segment chain.
func (p SimplePath) Same(o SimplePath) bool {
	if !sameRoot(p.Root, o.Root) || len(p.Items) != len(o.Items) {
		return false
	}
	for i := range p.Items {
		if !p.Items[i].equalKey(o.Items[i]) {
			return false
		}
	}
	return true
}
