package mincostflow

import (
	"container/heap"

	"golang.org/x/exp/constraints"

	"github.com/MitI-7/network-algorithms-back/status"
)

// SuccessiveShortestPath solves minimum-cost flow by repeatedly routing
// flow from a node with positive excess to any reachable node with
// negative excess along a reduced-cost shortest path, updating
// potentials with each round so residual reduced costs stay
// non-negative.
type SuccessiveShortestPath[F constraints.Signed] struct {
	csr csr[F]
}

// NewSuccessiveShortestPath returns a ready-to-use solver.
func NewSuccessiveShortestPath[F constraints.Signed]() *SuccessiveShortestPath[F] {
	return &SuccessiveShortestPath[F]{}
}

// Solve computes a minimum-cost feasible circulation, writing the result
// back into graph.
func (s *SuccessiveShortestPath[F]) Solve(graph *Graph[F]) status.Status {
	if graph.IsUnbalanced() {
		return status.Unbalanced
	}
	s.csr.build(graph)

	for src := 0; src < s.csr.numNodes; src++ {
		for s.csr.excesses[src] > 0 {
			t, visited, dist, predEdge, ok := s.calculateDistance(src)
			if !ok {
				break
			}
			for u := 0; u < s.csr.numNodes; u++ {
				if visited[u] {
					s.csr.potentials[u] = s.csr.potentials[u] - dist[u] + dist[t]
				}
			}
			s.updateFlow(src, t, predEdge)
		}
	}

	s.csr.setFlow(graph)

	for _, e := range s.csr.excesses {
		if e != 0 {
			return status.Infeasible
		}
	}
	return status.Optimal
}

// calculateDistance runs Dijkstra on reduced costs from src, stopping as
// soon as it finalises a node with negative excess.
func (s *SuccessiveShortestPath[F]) calculateDistance(src int) (t int, visited []bool, dist []F, predEdge []int, ok bool) {
	predEdge = make([]int, s.csr.numNodes)
	for i := range predEdge {
		predEdge[i] = -1
	}
	dist = make([]F, s.csr.numNodes)
	hasDist := make([]bool, s.csr.numNodes)
	visited = make([]bool, s.csr.numNodes)

	h := &distHeap[F]{{dist: 0, node: src}}
	dist[src] = 0
	hasDist[src] = true

	for h.Len() > 0 {
		top := heap.Pop(h).(distHeapItem[F])
		u := top.node
		if visited[u] {
			continue
		}
		visited[u] = true

		if s.csr.excesses[u] < 0 {
			return u, visited, dist, predEdge, true
		}

		for edgeID := s.csr.start[u]; edgeID < s.csr.start[u+1]; edgeID++ {
			e := &s.csr.insideEdgeList[edgeID]
			if e.residualCapacity() == 0 {
				continue
			}
			newDist := top.dist + s.csr.reducedCost(u, e)
			if !hasDist[e.to] || dist[e.to] > newDist {
				dist[e.to] = newDist
				hasDist[e.to] = true
				predEdge[e.to] = edgeID
				heap.Push(h, distHeapItem[F]{dist: newDist, node: e.to})
			}
		}
	}
	return 0, visited, dist, predEdge, false
}

func (s *SuccessiveShortestPath[F]) updateFlow(src, t int, predEdge []int) {
	delta := s.csr.excesses[src]
	if neg := -s.csr.excesses[t]; neg < delta {
		delta = neg
	}

	v := t
	for predEdge[v] != -1 {
		edgeIdx := predEdge[v]
		if rc := s.csr.insideEdgeList[edgeIdx].residualCapacity(); rc < delta {
			delta = rc
		}
		rev := s.csr.insideEdgeList[edgeIdx].rev
		v = s.csr.insideEdgeList[rev].to
	}
	if e := s.csr.excesses[v]; e < delta {
		delta = e
	}

	v = t
	for predEdge[v] != -1 {
		edgeIdx := predEdge[v]
		rev := s.csr.insideEdgeList[edgeIdx].rev
		s.csr.insideEdgeList[edgeIdx].flow += delta
		s.csr.insideEdgeList[rev].flow -= delta
		v = s.csr.insideEdgeList[rev].to
	}

	s.csr.excesses[t] += delta
	s.csr.excesses[src] -= delta
}
