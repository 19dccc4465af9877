package mincostflow

import (
	"golang.org/x/exp/constraints"

	"github.com/MitI-7/network-algorithms-back/status"
)

// CycleCanceling solves minimum-cost flow by bootstrapping a feasible
// (but expensive) circulation through a big-M artificial root, then
// repeatedly finding and cancelling a negative-cost cycle in the
// residual graph with Bellman-Ford until none remains.
type CycleCanceling[F constraints.Signed] struct {
	csr csr[F]
}

// NewCycleCanceling returns a ready-to-use solver.
func NewCycleCanceling[F constraints.Signed]() *CycleCanceling[F] {
	return &CycleCanceling[F]{}
}

type cycleArc struct{ node, edge int }

// Solve computes a minimum-cost feasible circulation, writing the result
// back into graph.
func (s *CycleCanceling[F]) Solve(graph *Graph[F]) status.Status {
	if graph.IsUnbalanced() {
		return status.Unbalanced
	}

	_, artificialNodes, artificialEdges := graph.constructExtendNetworkFeasibleSolution()
	s.csr.build(graph)

	prev := make([]cycleArc, s.csr.numNodes)
	for i := range prev {
		prev[i] = cycleArc{-1, -1}
	}

	for {
		start, ok := s.findNegativeCycle(prev)
		if !ok {
			break
		}

		v, idx := prev[start].node, prev[start].edge
		delta := s.csr.insideEdgeList[idx].residualCapacity()
		cycle := []int{idx}
		for v != start {
			u, idx2 := prev[v].node, prev[v].edge
			cycle = append(cycle, idx2)
			if rc := s.csr.insideEdgeList[idx2].residualCapacity(); rc < delta {
				delta = rc
			}
			v = u
		}

		for _, ci := range cycle {
			rev := s.csr.insideEdgeList[ci].rev
			s.csr.insideEdgeList[ci].flow += delta
			s.csr.insideEdgeList[rev].flow -= delta
		}
	}

	optimal := true
	for _, edgeID := range artificialEdges {
		i := s.csr.edgeIndexToInsideEdgeIndex[edgeID]
		if s.csr.insideEdgeList[i].flow != 0 {
			optimal = false
			break
		}
	}

	s.csr.setFlow(graph)
	graph.removeArtificialSubGraph(artificialNodes, artificialEdges)

	if optimal {
		return status.Optimal
	}
	return status.Infeasible
}

// findNegativeCycle runs Bellman-Ford for numNodes rounds starting every
// node at distance zero (a virtual zero-cost super-source); an update
// still happening on the final round certifies a negative cycle, and
// walking prev pointers from the last relaxed node until a repeat lands
// on a node that is actually on the cycle.
func (s *CycleCanceling[F]) findNegativeCycle(prev []cycleArc) (int, bool) {
	start := -1
	dist := make([]F, s.csr.numNodes)

	for iter := 0; iter < s.csr.numNodes; iter++ {
		updated := false
		for u := 0; u < s.csr.numNodes; u++ {
			for edgeID := s.csr.start[u]; edgeID < s.csr.start[u+1]; edgeID++ {
				e := &s.csr.insideEdgeList[edgeID]
				if e.residualCapacity() > 0 && dist[u]+e.cost < dist[e.to] {
					dist[e.to] = dist[u] + e.cost
					prev[e.to] = cycleArc{u, edgeID}
					start = u
					updated = true
				}
			}
		}
		if !updated {
			return 0, false
		}
	}

	v := start
	visited := make([]bool, s.csr.numNodes)
	for {
		u := prev[v].node
		if visited[u] {
			return v, true
		}
		visited[u] = true
		v = u
	}
}
