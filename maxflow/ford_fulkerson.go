package maxflow

import (
	"golang.org/x/exp/constraints"

	"github.com/MitI-7/network-algorithms-back/status"
)

// FordFulkerson solves maximum flow by repeatedly finding an augmenting
// path with DFS and pushing the bottleneck residual capacity along it.
// Reusable across solves: Solve rebuilds its scratch csr each call.
type FordFulkerson[F constraints.Signed] struct {
	csr csr[F]
}

// NewFordFulkerson returns a ready-to-use solver.
func NewFordFulkerson[F constraints.Signed]() *FordFulkerson[F] {
	return &FordFulkerson[F]{}
}

// Solve computes maximum flow from source to sink, writing the result
// back into graph. Always terminates with status.Optimal.
func (s *FordFulkerson[F]) Solve(source, sink int, graph *Graph[F]) status.Status {
	s.csr.build(graph)
	visited := make([]bool, s.csr.numNodes)

	var upper F
	for _, e := range s.csr.neighbors(source) {
		upper += e.upper
	}

	for {
		for i := range visited {
			visited[i] = false
		}
		delta, ok := s.dfs(source, sink, upper, visited)
		if !ok {
			break
		}
		_ = delta
	}

	s.csr.setFlow(graph)
	return status.Optimal
}

func (s *FordFulkerson[F]) dfs(u, sink int, flow F, visited []bool) (F, bool) {
	if u == sink {
		return flow, true
	}
	visited[u] = true

	for edgeID := s.csr.start[u]; edgeID < s.csr.start[u+1]; edgeID++ {
		e := &s.csr.insideEdgeList[edgeID]
		if visited[e.to] || e.residualCapacity() == 0 {
			continue
		}

		bound := flow
		if rc := e.residualCapacity(); rc < bound {
			bound = rc
		}
		if d, ok := s.dfs(e.to, sink, bound, visited); ok {
			s.csr.pushFlow(edgeID, d)
			return d, true
		}
	}
	var zero F
	return zero, false
}
