package maxflow

import "golang.org/x/exp/constraints"

// Edge is the caller-visible view of one directed edge: its endpoints,
// its capacity bound, and (after a solve) the flow routed across it.
type Edge[F constraints.Signed] struct {
	From, To int
	Flow     F
	Upper    F
}

// Graph is the builder for a maximum-flow instance. Nodes are dense
// indices 0..N; edges are appended in add order and keep that order as
// their stable id. A Graph is mutated in place by a solver's Solve call
// (per-edge Flow fields become authoritative on return); build a fresh
// Graph per solve if you need to compare solvers on the same instance.
type Graph[F constraints.Signed] struct {
	numNodes int
	edges    []Edge[F]
}

// NewGraph returns an empty graph ready for AddNode/AddDirectedEdge calls.
func NewGraph[F constraints.Signed]() *Graph[F] {
	return &Graph[F]{}
}

// NumNodes reports the number of nodes added so far.
func (g *Graph[F]) NumNodes() int { return g.numNodes }

// NumEdges reports the number of edges added so far.
func (g *Graph[F]) NumEdges() int { return len(g.edges) }

// AddNode appends one node and returns its index.
func (g *Graph[F]) AddNode() int {
	g.numNodes++
	return g.numNodes - 1
}

// AddNodes appends k nodes and returns their indices in order.
func (g *Graph[F]) AddNodes(k int) []int {
	ids := make([]int, k)
	for i := range ids {
		ids[i] = g.AddNode()
	}
	return ids
}

// AddDirectedEdge appends a directed edge from -> to with capacity upper
// and zero initial flow, returning its id. It returns ErrNodeOutOfRange
// (and id -1) if either endpoint does not exist.
func (g *Graph[F]) AddDirectedEdge(from, to int, upper F) (int, error) {
	if from < 0 || from >= g.numNodes || to < 0 || to >= g.numNodes {
		return -1, ErrNodeOutOfRange
	}
	g.edges = append(g.edges, Edge[F]{From: from, To: to, Upper: upper})
	return len(g.edges) - 1, nil
}

// GetEdge returns a copy of the edge with the given id.
func (g *Graph[F]) GetEdge(id int) (Edge[F], error) {
	if id < 0 || id >= len(g.edges) {
		return Edge[F]{}, ErrEdgeNotFound
	}
	return g.edges[id], nil
}

// MaximumFlow returns the net flow leaving source: the sum of flow on
// edges leaving source minus the sum of flow on edges entering it. Valid
// after a solver has returned status.Optimal.
func (g *Graph[F]) MaximumFlow(source int) F {
	var flow F
	for _, e := range g.edges {
		if e.From == source {
			flow += e.Flow
		} else if e.To == source {
			flow -= e.Flow
		}
	}
	return flow
}

// MinimumCut returns every node reachable from source in the final
// residual graph: along an edge with positive residual capacity
// (upper - flow), or against an edge carrying positive flow (the
// "push flow back" residual direction). Valid after a solver has
// returned status.Optimal; together with its complement this is an
// s-t minimum cut.
func (g *Graph[F]) MinimumCut(source int) []int {
	if len(g.edges) == 0 {
		return []int{source}
	}

	type arc struct {
		to       int
		residual F
	}
	adj := make([][]arc, g.numNodes)
	for _, e := range g.edges {
		if e.Upper-e.Flow > 0 {
			adj[e.From] = append(adj[e.From], arc{to: e.To, residual: e.Upper - e.Flow})
		}
		if e.Flow > 0 {
			adj[e.To] = append(adj[e.To], arc{to: e.From, residual: e.Flow})
		}
	}

	visited := make([]bool, g.numNodes)
	visited[source] = true
	queue := []int{source}
	cut := make([]int, 0, g.numNodes)
	for len(queue) > 0 {
		u := queue[0]
		queue = queue[1:]
		cut = append(cut, u)
		for _, a := range adj[u] {
			if !visited[a.to] {
				visited[a.to] = true
				queue = append(queue, a.to)
			}
		}
	}
	return cut
}
