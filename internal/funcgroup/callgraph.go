package funcgroup

import "github.com/sunholo/ownhir/internal/hir"

// CallGraph is a dependency graph between functions, keyed by qualified
// name string, adapted from the teacher's mutual-recursion SCC detector
// (see DESIGN.md) and retargeted from walking an AST to walking HIR
// FunctionCall instructions.
type CallGraph struct {
	nodes   []string
	edges   map[string][]string
	nodeSet map[string]bool
}

// NewCallGraph returns an empty call graph.
func NewCallGraph() *CallGraph {
	return &CallGraph{
		edges:   make(map[string][]string),
		nodeSet: make(map[string]bool),
	}
}

// AddNode adds a function to the graph if it isn't already present.
func (g *CallGraph) AddNode(name string) {
	if !g.nodeSet[name] {
		g.nodes = append(g.nodes, name)
		g.nodeSet[name] = true
		g.edges[name] = []string{}
	}
}

// AddEdge records that caller invokes callee.
func (g *CallGraph) AddEdge(caller, callee string) {
	g.AddNode(caller)
	g.AddNode(callee)
	g.edges[caller] = append(g.edges[caller], callee)
}

// SCCs computes the graph's strongly connected components via Tarjan's
// algorithm, in reverse topological order (a component that depends on
// no other un-visited component comes first), matching spec.md §4.5
// "Dependency groups... are visited in reverse topological order, so a
// callee's profile is always fully settled before its callers need it."
func (g *CallGraph) SCCs() [][]string {
	index := 0
	stack := []string{}
	indices := make(map[string]int)
	lowlinks := make(map[string]int)
	onStack := make(map[string]bool)
	var sccs [][]string

	var strongconnect func(string)
	strongconnect = func(v string) {
		indices[v] = index
		lowlinks[v] = index
		index++
		stack = append(stack, v)
		onStack[v] = true

		for _, w := range g.edges[v] {
			if _, ok := indices[w]; !ok {
				strongconnect(w)
				lowlinks[v] = min(lowlinks[v], lowlinks[w])
			} else if onStack[w] {
				lowlinks[v] = min(lowlinks[v], indices[w])
			}
		}

		if lowlinks[v] == indices[v] {
			var scc []string
			for {
				w := stack[len(stack)-1]
				stack = stack[:len(stack)-1]
				onStack[w] = false
				scc = append(scc, w)
				if w == v {
					break
				}
			}
			sccs = append(sccs, scc)
		}
	}

	for _, node := range g.nodes {
		if _, ok := indices[node]; !ok {
			strongconnect(node)
		}
	}

	return sccs
}

func min(a, b int) int {
	if a < b {
		return a
	}
	return b
}

// BuildCallGraph adds every function in funcs as a node, then an edge
// for each FunctionCall instruction found in a function's body whose
// callee is also one of funcs (calls to functions outside the set, e.g.
// externs or builtins, are not represented as graph edges: they can
// never participate in a dependency cycle this package needs to
// resolve).
func BuildCallGraph(funcs []*hir.Function) *CallGraph {
	graph := NewCallGraph()
	local := make(map[string]bool, len(funcs))
	for _, f := range funcs {
		graph.AddNode(f.Name.String())
		local[f.Name.String()] = true
	}

	for _, f := range funcs {
		if !f.HasBody() {
			continue
		}
		callerName := f.Name.String()
		for _, blk := range f.Body.Blocks() {
			for _, ins := range blk.Instructions() {
				call, ok := ins.(*hir.FunctionCall)
				if !ok {
					continue
				}
				callee := call.Info.Callee.String()
				if local[callee] {
					graph.AddEdge(callerName, callee)
				}
			}
		}
	}

	return graph
}
