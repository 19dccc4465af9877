package maxflow

import (
	"golang.org/x/exp/constraints"

	"github.com/MitI-7/network-algorithms-back/status"
)

// CapacityScaling solves maximum flow by restricting Dinic-style
// augmentation to arcs with residual capacity at least delta, starting
// delta at the largest power of two not exceeding the maximum edge
// capacity and halving it down to zero.
type CapacityScaling[F constraints.Signed] struct {
	csr         csr[F]
	currentEdge []int
	queue       []int
}

// NewCapacityScaling returns a ready-to-use solver.
func NewCapacityScaling[F constraints.Signed]() *CapacityScaling[F] {
	return &CapacityScaling[F]{}
}

// Solve computes maximum flow from source to sink, writing the result
// back into graph. Always terminates with status.Optimal.
func (s *CapacityScaling[F]) Solve(source, sink int, graph *Graph[F]) status.Status {
	s.csr.build(graph)
	s.currentEdge = make([]int, s.csr.numNodes)

	var maxCapacity F
	for _, e := range s.csr.insideEdgeList {
		if e.upper > maxCapacity {
			maxCapacity = e.upper
		}
	}

	var delta F = 1
	for delta <= maxCapacity {
		delta *= 2
	}
	delta /= 2

	var upper F
	for _, e := range s.csr.neighbors(source) {
		upper += e.upper
	}

	var flow F
	for delta > 0 {
		for {
			s.bfs(source, sink, delta)
			if s.csr.distances[source] >= s.csr.numNodes {
				break
			}

			for u := range s.currentEdge {
				s.currentEdge[u] = s.csr.start[u]
			}
			d, ok := s.dfs(source, sink, upper, delta)
			if !ok {
				break
			}
			flow += d
		}
		delta /= 2
	}

	s.csr.setFlow(graph)
	return status.Optimal
}

// bfs builds distance labels restricted to the delta-residual network: an
// arc is usable in the reverse walk when its paired reverse has residual
// capacity at least delta.
func (s *CapacityScaling[F]) bfs(source, sink int, delta F) {
	s.queue = s.queue[:0]
	s.queue = append(s.queue, sink)
	n := s.csr.numNodes
	for i := range s.csr.distances {
		s.csr.distances[i] = n
	}
	s.csr.distances[sink] = 0

	for len(s.queue) > 0 {
		v := s.queue[0]
		s.queue = s.queue[1:]
		for _, e := range s.csr.insideEdgeList[s.csr.start[v]:s.csr.start[v+1]] {
			if s.csr.insideEdgeList[e.rev].residualCapacity() >= delta && s.csr.distances[e.to] == n {
				s.csr.distances[e.to] = s.csr.distances[v] + 1
				if e.to != source {
					s.queue = append(s.queue, e.to)
				}
			}
		}
	}
}

func (s *CapacityScaling[F]) dfs(u, sink int, upper, delta F) (F, bool) {
	if u == sink {
		return upper, true
	}

	var res F
	for i := s.currentEdge[u]; i < s.csr.start[u+1]; i++ {
		s.currentEdge[u] = i
		v := s.csr.insideEdgeList[i].to
		residual := s.csr.insideEdgeList[i].residualCapacity()

		if !s.csr.isAdmissibleEdge(u, i) || residual < delta {
			continue
		}

		bound := residual
		if rem := upper - res; rem < bound {
			bound = rem
		}
		if d, ok := s.dfs(v, sink, bound, delta); ok {
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
