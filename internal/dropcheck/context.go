package dropcheck

import (
	"github.com/sunholo/ownhir/internal/hir"
	"github.com/sunholo/ownhir/internal/hirpath"
)

// Context accumulates, per root variable, the events carried in from
// predecessor blocks (Base) and the events newly observed while walking
// the current block (Local), mirroring the ownership prototype's
// Context (baseEvents/usages split). Validate folds the two into one
// combined series per root before checking it.
type Context struct {
	order []string
	roots map[string]*hir.Variable
	base  map[string][]Event
	local map[string]*EventSeries
}

// NewContext returns an empty context, as seeded for the function's
// entry block.
func NewContext() *Context {
	return &Context{
		roots: make(map[string]*hir.Variable),
		base:  make(map[string][]Event),
		local: make(map[string]*EventSeries),
	}
}

// SeedBase installs events carried in from a predecessor block for root.
func (c *Context) SeedBase(root *hir.Variable, events []Event) {
	c.ensure(root)
	c.base[root.Name.String()] = append(c.base[root.Name.String()], events...)
}

func (c *Context) ensure(root *hir.Variable) {
	key := root.Name.String()
	if _, ok := c.roots[key]; !ok {
		c.roots[key] = root
		c.order = append(c.order, key)
		c.local[key] = &EventSeries{}
	}
}

// AddUsage records a usage event against its path's root.
func (c *Context) AddUsage(u hirpath.Usage) {
	c.ensure(u.Path.Root)
	c.local[u.Path.Root.Name.String()].Push(UsageEvent(u))
}

// AddAssign records a whole-path assignment against its root.
func (c *Context) AddAssign(p hirpath.Path) {
	c.ensure(p.Root)
	c.local[p.Root.Name.String()].Push(AssignEvent(p))
}

// Validate combines each root's base events with its newly observed
// local events, runs collision detection over the combined series, and
// returns the compressed combined series per root — the base events a
// successor block should be seeded with (spec.md §4.4 "Cross-block
// fixpoint").
func (c *Context) Validate() ([]Collision, map[string][]Event) {
	var collisions []Collision
	newBase := make(map[string][]Event, len(c.order))
	for _, key := range c.order {
		combined := EventSeries{}
		combined.events = append(combined.events, c.base[key]...)
		combined.events = append(combined.events, c.local[key].events...)
		collisions = append(collisions, combined.validate()...)
		newBase[key] = combined.Compress().Events()
	}
	return collisions, newBase
}

// Roots returns the distinct root variables touched by this context, in
// first-observation order.
func (c *Context) Roots() []*hir.Variable {
	out := make([]*hir.Variable, len(c.order))
	for i, k := range c.order {
		out[i] = c.roots[k]
	}
	return out
}
