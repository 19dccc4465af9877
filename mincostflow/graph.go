package mincostflow

import "golang.org/x/exp/constraints"

// Edge is the caller-visible view of one directed edge, restored to its
// original orientation and bounds regardless of how it is stored
// internally (see internalEdge).
type Edge[F constraints.Signed] struct {
	From, To           int
	Flow, Lower, Upper F
	Cost               F
}

// internalEdge is how an edge is actually stored once lower bounds are
// subtracted out (lower becomes 0, upper becomes upper-lower) and
// negative-cost edges are reversed with a flipped sign, so every solver
// downstream can assume "lower == 0, cost >= 0" without special-casing.
type internalEdge[F constraints.Signed] struct {
	from, to   int
	flow       F
	upper      F
	cost       F
	lower      F // the original lower bound, remembered to restore GetEdge's view
	isReversed bool
}

// InternalEdge is the normalised view solvers outside this package (the
// simplex package's Network Simplex variants) build their own residual
// or tree structures from: lower already folded to 0, cost already
// non-negative.
type InternalEdge[F constraints.Signed] struct {
	From, To int
	Upper    F
	Cost     F
	Flow     F
}

// Graph is the builder for a minimum-cost-flow instance.
type Graph[F constraints.Signed] struct {
	numNodes int
	edges    []internalEdge[F]
	b        []F // original per-node supply/demand
	excesses []F // mutated during solve
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
	g.b = append(g.b, 0)
	g.excesses = append(g.excesses, 0)
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

// AddSupply increases node u's supply (and residual excess) by supply.
func (g *Graph[F]) AddSupply(u int, supply F) {
	g.b[u] += supply
	g.excesses[u] += supply
}

// AddDemand increases node u's demand, i.e. decreases its supply (and
// residual excess) by demand.
func (g *Graph[F]) AddDemand(u int, demand F) {
	g.b[u] -= demand
	g.excesses[u] -= demand
}

// AddDirectedEdge appends a directed edge from -> to with bounds
// [lower, upper] and the given cost, returning its id. Lower bounds are
// normalised to zero (folded into the endpoints' excesses) and
// negative-cost edges are stored reversed, transparently to every other
// method on Graph.
func (g *Graph[F]) AddDirectedEdge(from, to int, lower, upper, cost F) (int, error) {
	if lower > upper {
		return -1, ErrLowerExceedsUpper
	}
	if from < 0 || from >= g.numNodes || to < 0 || to >= g.numNodes {
		return -1, ErrNodeOutOfRange
	}

	if cost >= 0 {
		g.edges = append(g.edges, internalEdge[F]{from: from, to: to, upper: upper - lower, cost: cost, lower: lower, isReversed: false})
		g.excesses[from] -= lower
		g.excesses[to] += lower
	} else {
		g.edges = append(g.edges, internalEdge[F]{from: to, to: from, upper: upper - lower, cost: -cost, lower: lower, isReversed: true})
		g.excesses[from] -= upper
		g.excesses[to] += upper
	}

	return len(g.edges) - 1, nil
}

// GetEdge returns a copy of the edge with the given id, restored to its
// original (caller-supplied) orientation, bounds, and cost sign.
func (g *Graph[F]) GetEdge(id int) (Edge[F], error) {
	if id < 0 || id >= len(g.edges) {
		return Edge[F]{}, ErrEdgeNotFound
	}
	e := g.edges[id]
	if e.isReversed {
		return Edge[F]{From: e.to, To: e.from, Flow: e.upper - e.flow + e.lower, Lower: e.lower, Upper: e.upper + e.lower, Cost: -e.cost}, nil
	}
	return Edge[F]{From: e.from, To: e.to, Flow: e.flow + e.lower, Lower: e.lower, Upper: e.upper + e.lower, Cost: e.cost}, nil
}

// MinimumCost returns the sum of cost*flow over every original edge.
func (g *Graph[F]) MinimumCost() F {
	var total F
	for id := range g.edges {
		e, _ := g.GetEdge(id)
		total += e.Cost * e.Flow
	}
	return total
}

// IsUnbalanced reports whether the instance's supplies fail to sum to
// zero; a solver must return status.Unbalanced before doing any work
// when this is true.
func (g *Graph[F]) IsUnbalanced() bool {
	var sum F
	for _, s := range g.b {
		sum += s
	}
	return sum != 0
}

// InternalEdges returns a snapshot of every edge in its normalised
// (lower == 0, cost >= 0) internal form, for building a residual graph
// or spanning tree outside this package.
func (g *Graph[F]) InternalEdges() []InternalEdge[F] {
	out := make([]InternalEdge[F], len(g.edges))
	for i, e := range g.edges {
		out[i] = InternalEdge[F]{From: e.from, To: e.to, Upper: e.upper, Cost: e.cost, Flow: e.flow}
	}
	return out
}

// Excesses returns a copy of the current per-node residual excess.
func (g *Graph[F]) Excesses() []F {
	out := make([]F, len(g.excesses))
	copy(out, g.excesses)
	return out
}

// SetFlowsAndExcesses writes a solver's final internal per-edge flow
// (indexed the same as InternalEdges) and per-node excess back into the
// graph.
func (g *Graph[F]) SetFlowsAndExcesses(flows []F, excesses []F) {
	for i := range g.edges {
		g.edges[i].flow = flows[i]
	}
	copy(g.excesses, excesses)
}

// constructExtendNetworkOneSupplyOneDemand absorbs every node's excess
// into a fresh super-source/super-sink pair, turning the instance into
// one with a single excess node and a single deficit node. Used by
// PrimalDual and the simplex package's dual/parametric variants.
func (g *Graph[F]) constructExtendNetworkOneSupplyOneDemand() (source, sink int, artificialNodes, artificialEdges []int) {
	source = g.AddNode()
	sink = g.AddNode()
	for u := 0; u < g.NumNodes(); u++ {
		if u == source || u == sink {
			continue
		}
		if g.excesses[u] > 0 {
			id, _ := g.AddDirectedEdge(source, u, 0, g.excesses[u], 0)
			artificialEdges = append(artificialEdges, id)
			g.excesses[source] += g.excesses[u]
		}
		if g.excesses[u] < 0 {
			id, _ := g.AddDirectedEdge(u, sink, 0, -g.excesses[u], 0)
			artificialEdges = append(artificialEdges, id)
			g.excesses[sink] += g.excesses[u]
		}
		g.excesses[u] = 0
	}
	return source, sink, []int{source, sink}, artificialEdges
}

// constructExtendNetworkFeasibleSolution bootstraps a feasible (but
// expensive) circulation by attaching every node to an artificial root
// via a high-cost arc carrying its initial imbalance (the big-M method).
// Used by CycleCanceling, OutOfKilter, and the simplex package's primal
// variant.
func (g *Graph[F]) constructExtendNetworkFeasibleSolution() (root int, artificialNodes, artificialEdges []int) {
	var infCost F = 1
	for _, e := range g.edges {
		infCost += e.cost
	}

	root = g.AddNode()
	for u := 0; u < g.numNodes; u++ {
		if u == root {
			continue
		}
		excess := g.excesses[u]
		var id int
		if excess >= 0 {
			id, _ = g.AddDirectedEdge(u, root, 0, excess, infCost)
			g.edges[id].flow = excess
		} else {
			id, _ = g.AddDirectedEdge(root, u, 0, -excess, infCost)
			g.edges[id].flow = -excess
		}
		artificialEdges = append(artificialEdges, id)
		g.excesses[u] = 0
	}
	return root, []int{root}, artificialEdges
}

// removeArtificialSubGraph drops the trailing artificial nodes/edges
// added by one of the constructExtendNetwork* helpers, restoring the
// graph to its caller-visible shape.
func (g *Graph[F]) removeArtificialSubGraph(artificialNodes, artificialEdges []int) {
	g.edges = g.edges[:len(g.edges)-len(artificialEdges)]
	g.b = g.b[:len(g.b)-len(artificialNodes)]
	g.excesses = g.excesses[:len(g.excesses)-len(artificialNodes)]
	g.numNodes -= len(artificialNodes)
}

// ConstructExtendNetworkOneSupplyOneDemand is the exported form of
// constructExtendNetworkOneSupplyOneDemand, used by the simplex
// package's dual and parametric Network Simplex variants to build the
// same single-supply/single-demand extension this package's PrimalDual
// solver uses.
func (g *Graph[F]) ConstructExtendNetworkOneSupplyOneDemand() (source, sink int, artificialNodes, artificialEdges []int) {
	return g.constructExtendNetworkOneSupplyOneDemand()
}

// ConstructExtendNetworkFeasibleSolution is the exported form of
// constructExtendNetworkFeasibleSolution, used by the simplex package's
// primal Network Simplex variant to build the same big-M feasible
// bootstrap this package's CycleCanceling and OutOfKilter solvers use.
func (g *Graph[F]) ConstructExtendNetworkFeasibleSolution() (root int, artificialNodes, artificialEdges []int) {
	return g.constructExtendNetworkFeasibleSolution()
}

// RemoveArtificialSubGraph is the exported form of
// removeArtificialSubGraph, restoring a graph extended by either
// ConstructExtendNetwork* helper to its caller-visible shape.
func (g *Graph[F]) RemoveArtificialSubGraph(artificialNodes, artificialEdges []int) {
	g.removeArtificialSubGraph(artificialNodes, artificialEdges)
}
