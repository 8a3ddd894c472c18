package hir

import "strings"

// SyntaxBlockId is an ordered sequence of block segments modeling lexical
// scope nesting, ported directly from the nested child-block-stack shape
// in the ownership prototype's SyntaxBlock (see DESIGN.md) — a block id
// is addressed by its path of segments from the function's root block.
type SyntaxBlockId struct {
	segments []string
}

// RootSyntaxBlock returns the function-entry syntax block, segment "0".
func RootSyntaxBlock() SyntaxBlockId {
	return SyntaxBlockId{segments: []string{"0"}}
}

// Add appends a new innermost child segment and returns the resulting id;
// the receiver is left unmodified.
func (b SyntaxBlockId) Add(segment string) SyntaxBlockId {
	next := make([]string, len(b.segments)+1)
	copy(next, b.segments)
	next[len(b.segments)] = segment
	return SyntaxBlockId{segments: next}
}

// Parent returns the enclosing syntax block and true, or the zero value
// and false if b is already the root.
func (b SyntaxBlockId) Parent() (SyntaxBlockId, bool) {
	if len(b.segments) <= 1 {
		return SyntaxBlockId{}, false
	}
	return SyntaxBlockId{segments: b.segments[:len(b.segments)-1]}, true
}

// String renders the block path dot-joined, e.g. "0.1.2".
func (b SyntaxBlockId) String() string { return strings.Join(b.segments, ".") }

// Equals compares two syntax block ids by their full segment path.
func (b SyntaxBlockId) Equals(o SyntaxBlockId) bool {
	if len(b.segments) != len(o.segments) {
		return false
	}
	for i := range b.segments {
		if b.segments[i] != o.segments[i] {
			return false
		}
	}
	return true
}

// Contains reports whether b is o or an ancestor syntax block of o, i.e.
// b's segments are a prefix of o's.
func (b SyntaxBlockId) Contains(o SyntaxBlockId) bool {
	if len(b.segments) > len(o.segments) {
		return false
	}
	for i := range b.segments {
		if b.segments[i] != o.segments[i] {
			return false
		}
	}
	return true
}
