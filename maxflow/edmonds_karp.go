package maxflow

import (
	"golang.org/x/exp/constraints"

	"github.com/MitI-7/network-algorithms-back/status"
)

// EdmondsKarp solves maximum flow by repeatedly finding a shortest (by
// arc count) augmenting path with BFS and pushing its bottleneck residual
// capacity.
type EdmondsKarp[F constraints.Signed] struct {
	csr csr[F]
}

// NewEdmondsKarp returns a ready-to-use solver.
func NewEdmondsKarp[F constraints.Signed]() *EdmondsKarp[F] {
	return &EdmondsKarp[F]{}
}

type prevArc struct {
	node, edge int
}

// Solve computes maximum flow from source to sink, writing the result
// back into graph. Always terminates with status.Optimal.
func (s *EdmondsKarp[F]) Solve(source, sink int, graph *Graph[F]) status.Status {
	s.csr.build(graph)
	prev := make([]prevArc, s.csr.numNodes)
	visited := make([]bool, s.csr.numNodes)

	for {
		for i := range prev {
			prev[i] = prevArc{-1, -1}
		}
		for i := range visited {
			visited[i] = false
		}

		queue := []int{source}
		visited[source] = true
		for len(queue) > 0 {
			u := queue[0]
			queue = queue[1:]
			if u == sink {
				break
			}
			for edgeID := s.csr.start[u]; edgeID < s.csr.start[u+1]; edgeID++ {
				e := &s.csr.insideEdgeList[edgeID]
				if visited[e.to] || e.residualCapacity() == 0 {
					continue
				}
				visited[e.to] = true
				queue = append(queue, e.to)
				prev[e.to] = prevArc{u, edgeID}
			}
		}

		if !visited[sink] {
			break
		}

		delta := s.csr.insideEdgeList[prev[sink].edge].residualCapacity()
		for v := sink; v != source; {
			p := prev[v]
			if rc := s.csr.insideEdgeList[p.edge].residualCapacity(); rc < delta {
				delta = rc
			}
			v = p.node
		}

		for v := sink; v != source; {
			p := prev[v]
			s.csr.pushFlow(p.edge, delta)
			v = p.node
		}
	}

	s.csr.setFlow(graph)
	return status.Optimal
}
