package maxflow

import (
	"golang.org/x/exp/constraints"

	"github.com/MitI-7/network-algorithms-back/status"
)

// ShortestAugmentingPath solves maximum flow with a single set of
// persistent distance labels, built once and repaired by retreat steps
// rather than rebuilt from scratch every phase the way Dinic does.
type ShortestAugmentingPath[F constraints.Signed] struct {
	csr         csr[F]
	currentEdge []int
}

// NewShortestAugmentingPath returns a ready-to-use solver.
func NewShortestAugmentingPath[F constraints.Signed]() *ShortestAugmentingPath[F] {
	return &ShortestAugmentingPath[F]{}
}

// Solve computes maximum flow from source to sink, writing the result
// back into graph. Always terminates with status.Optimal.
func (s *ShortestAugmentingPath[F]) Solve(source, sink int, graph *Graph[F]) status.Status {
	s.csr.build(graph)
	s.csr.updateDistances(source, sink)
	s.currentEdge = make([]int, s.csr.numNodes)

	var upper F
	for _, e := range s.csr.neighbors(source) {
		upper += e.upper
	}

	var flow F
	for s.csr.distances[source] < s.csr.numNodes {
		for u := range s.currentEdge {
			s.currentEdge[u] = s.csr.start[u]
		}
		if delta, ok := s.dfs(source, sink, upper); ok {
			flow += delta
		}
	}

	s.csr.setFlow(graph)
	return status.Optimal
}

func (s *ShortestAugmentingPath[F]) dfs(u, sink int, upper F) (F, bool) {
	if u == sink {
		return upper, true
	}

	for i := s.currentEdge[u]; i < s.csr.start[u+1]; i++ {
		s.currentEdge[u] = i
		e := &s.csr.insideEdgeList[i]
		if !s.csr.isAdmissibleEdge(u, i) {
			continue
		}

		bound := upper
		if rc := e.residualCapacity(); rc < bound {
			bound = rc
		}
		if delta, ok := s.dfs(e.to, sink, bound); ok {
			s.csr.pushFlow(i, delta)
			return delta, true
		}
	}

	// retreat: raise u's label to 1 + the smallest label among nodes it
	// still has forward residual capacity towards.
	s.csr.distances[u] = s.csr.numNodes
	for _, e := range s.csr.insideEdgeList[s.csr.start[u]:s.csr.start[u+1]] {
		if e.residualCapacity() > 0 {
			if cand := s.csr.distances[e.to] + 1; cand < s.csr.distances[u] {
				s.csr.distances[u] = cand
			}
		}
	}

	var zero F
	return zero, false
}
