// Package funcgroup computes per-function borrow profiles over the call
// graph's strongly connected components, iterating each component to a
// fixpoint before moving on (spec.md §4.5), ported from the dependency
// analysis in the ownership prototype (see DESIGN.md).
package funcgroup

import (
	"fmt"
	"sort"

	"github.com/sunholo/ownhir/internal/names"
	"github.com/sunholo/ownhir/internal/types"
)

// borrowKind distinguishes the three kinds of node that can appear in a
// function's borrow graph: one of its arguments, its result, or an
// intermediate local discovered while walking the body.
type borrowKind int

const (
	argBorrow borrowKind = iota
	resultBorrow
	localBorrow
)

// BorrowVar identifies one node of a function's borrow graph (spec.md
// §4.5 "ExtendedType carries... the set of borrow variables"). Only
// ArgVar and ResultVar nodes are ever exposed in a finished profile;
// localBorrow nodes are an internal bookkeeping detail collapsed away by
// processLinks before a profile is published.
type BorrowVar struct {
	kind  borrowKind
	index int
}

// ArgVar identifies the borrow variable carried by the i'th parameter.
func ArgVar(i int) BorrowVar { return BorrowVar{kind: argBorrow, index: i} }

// ResultVar identifies the borrow variable carried by the result.
func ResultVar() BorrowVar { return BorrowVar{kind: resultBorrow} }

func localVar(i int) BorrowVar { return BorrowVar{kind: localBorrow, index: i} }

// IsArg reports whether b identifies an argument's borrow variable, and
// if so, which argument index.
func (b BorrowVar) IsArg() (int, bool) {
	if b.kind == argBorrow {
		return b.index, true
	}
	return 0, false
}

// IsResult reports whether b identifies the result's borrow variable.
func (b BorrowVar) IsResult() bool { return b.kind == resultBorrow }

func (b BorrowVar) String() string {
	switch b.kind {
	case argBorrow:
		return fmt.Sprintf("arg%d", b.index)
	case resultBorrow:
		return "result"
	default:
		return fmt.Sprintf("local%d", b.index)
	}
}

// ExtendedType pairs a base type with the borrow variables that appear
// within it (spec.md §4.5).
type ExtendedType struct {
	Base    types.Type
	Borrows []BorrowVar
}

func (e ExtendedType) equals(o ExtendedType) bool {
	if (e.Base == nil) != (o.Base == nil) {
		return false
	}
	if e.Base != nil && !e.Base.Equals(o.Base) {
		return false
	}
	if len(e.Borrows) != len(o.Borrows) {
		return false
	}
	for i := range e.Borrows {
		if e.Borrows[i] != o.Borrows[i] {
			return false
		}
	}
	return true
}

// Link asserts that data reaching From also reaches To (spec.md §4.5).
type Link struct {
	From BorrowVar
	To   BorrowVar
}

// FunctionProfile is one function's published borrow summary: which
// result borrow variables each argument borrow variable can reach
// (spec.md §4.5).
type FunctionProfile struct {
	Name   names.QualifiedName
	Args   []ExtendedType
	Result ExtendedType
	Links  []Link
}

// Equal compares two profiles structurally, after normalizing link order
// and duplicates, so the per-group fixpoint loop can detect "no change"
// regardless of the order in which the instruction walk discovered links
// (spec.md §4.5 "until the store stops changing").
func (p *FunctionProfile) Equal(o *FunctionProfile) bool {
	if p == nil || o == nil {
		return p == o
	}
	if !p.Name.Equal(o.Name) || len(p.Args) != len(o.Args) {
		return false
	}
	for i := range p.Args {
		if !p.Args[i].equals(o.Args[i]) {
			return false
		}
	}
	if !p.Result.equals(o.Result) {
		return false
	}
	pl, ol := normalizeLinks(p.Links), normalizeLinks(o.Links)
	if len(pl) != len(ol) {
		return false
	}
	for i := range pl {
		if pl[i] != ol[i] {
			return false
		}
	}
	return true
}

func normalizeLinks(links []Link) []Link {
	seen := make(map[Link]bool, len(links))
	out := make([]Link, 0, len(links))
	for _, l := range links {
		if !seen[l] {
			seen[l] = true
			out = append(out, l)
		}
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].From != out[j].From {
			return borrowLess(out[i].From, out[j].From)
		}
		return borrowLess(out[i].To, out[j].To)
	})
	return out
}

func borrowLess(a, b BorrowVar) bool {
	if a.kind != b.kind {
		return a.kind < b.kind
	}
	return a.index < b.index
}

// processLinks computes, for every argument borrow variable, which
// result borrow variables it transitively reaches across raw (possibly
// intermediate-hop) links discovered during the instruction walk, then
// keeps only those terminal argument-to-result edges (spec.md §4.5
// "processLinks... starting from each argument borrow variable, follow
// Link edges; retain only destinations that are result borrow
// variables, then drop intermediate links"). This is also where the
// bookkeeping-only localBorrow nodes are collapsed away: they never
// survive into a published profile's Links.
func processLinks(raw []Link) []Link {
	adj := make(map[BorrowVar][]BorrowVar, len(raw))
	for _, l := range raw {
		adj[l.From] = append(adj[l.From], l.To)
	}

	var out []Link
	for _, l := range raw {
		if _, ok := l.From.IsArg(); !ok {
			continue
		}
		visited := map[BorrowVar]bool{l.From: true}
		queue := []BorrowVar{l.From}
		for len(queue) > 0 {
			v := queue[0]
			queue = queue[1:]
			for _, next := range adj[v] {
				if visited[next] {
					continue
				}
				visited[next] = true
				if next.IsResult() {
					out = append(out, Link{From: l.From, To: next})
				} else {
					queue = append(queue, next)
				}
			}
		}
	}
	return normalizeLinks(out)
}
