package maxflow

import (
	"golang.org/x/exp/constraints"

	"github.com/MitI-7/network-algorithms-back/status"
)

// Dinic solves maximum flow phase by phase: each phase builds a level
// graph with a reverse BFS from sink, then pushes a blocking flow with a
// DFS that uses a current-edge pointer per node so every arc is scanned
// O(1) times per phase.
type Dinic[F constraints.Signed] struct {
	csr         csr[F]
	currentEdge []int
}

// NewDinic returns a ready-to-use solver.
func NewDinic[F constraints.Signed]() *Dinic[F] {
	return &Dinic[F]{}
}

// Solve computes maximum flow from source to sink, writing the result
// back into graph. Always terminates with status.Optimal.
func (s *Dinic[F]) Solve(source, sink int, graph *Graph[F]) status.Status {
	s.csr.build(graph)
	s.currentEdge = make([]int, graph.NumNodes())

	var upper F
	for _, e := range s.csr.neighbors(source) {
		upper += e.upper
	}

	var flow F
	for flow < upper {
		s.csr.updateDistances(source, sink)
		if s.csr.distances[source] >= s.csr.numNodes {
			break
		}

		for u := range s.currentEdge {
			s.currentEdge[u] = s.csr.start[u]
		}
		delta, ok := s.dfs(source, sink, upper)
		if !ok {
			break
		}
		flow += delta
	}

	s.csr.setFlow(graph)
	return status.Optimal
}

func (s *Dinic[F]) dfs(u, sink int, upper F) (F, bool) {
	if u == sink {
		return upper, true
	}

	var res F
	for i := s.currentEdge[u]; i < s.csr.start[u+1]; i++ {
		s.currentEdge[u] = i
		v := s.csr.insideEdgeList[i].to
		residual := s.csr.insideEdgeList[i].residualCapacity()

		if !s.csr.isAdmissibleEdge(u, i) {
			continue
		}

		bound := residual
		if rem := upper - res; rem < bound {
			bound = rem
		}
		if d, ok := s.dfs(v, sink, bound); ok {
			s.csr.pushFlow(i, d)
			res += d
			if res == upper {
				return res, true
			}
		}
	}
	s.currentEdge[u] = s.csr.start[u+1]
	s.csr.distances[u] = s.csr.numNodes

	return res, true
}
