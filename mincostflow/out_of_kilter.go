package mincostflow

import (
	"container/heap"

	"golang.org/x/exp/constraints"

	"github.com/MitI-7/network-algorithms-back/status"
)

// OutOfKilter solves minimum-cost flow by bootstrapping a feasible
// circulation through a big-M artificial root (same extension as
// CycleCanceling), then driving every edge's kilter number to zero: for
// each arc whose reduced cost is negative while it still carries
// residual capacity, it shortest-paths back to the arc's tail and closes
// the cycle through that arc.
type OutOfKilter[F constraints.Signed] struct {
	csr csr[F]
}

// NewOutOfKilter returns a ready-to-use solver.
func NewOutOfKilter[F constraints.Signed]() *OutOfKilter[F] {
	return &OutOfKilter[F]{}
}

// Solve computes a minimum-cost feasible circulation, writing the result
// back into graph.
func (s *OutOfKilter[F]) Solve(graph *Graph[F]) status.Status {
	if graph.IsUnbalanced() {
		return status.Unbalanced
	}

	_, artificialNodes, artificialEdges := graph.constructExtendNetworkFeasibleSolution()
	s.csr.build(graph)

	type outOfKilterArc struct{ p, q, edgeID int }
	var arcs []outOfKilterArc
	for u := 0; u < s.csr.numNodes; u++ {
		for edgeID := s.csr.start[u]; edgeID < s.csr.start[u+1]; edgeID++ {
			e := &s.csr.insideEdgeList[edgeID]
			p := s.csr.insideEdgeList[e.rev].to
			if s.kilterNumber(p, edgeID) > 0 {
				arcs = append(arcs, outOfKilterArc{p: p, q: e.to, edgeID: edgeID})
			}
		}
	}

outer:
	for _, arc := range arcs {
		p, q, edgeID := arc.p, arc.q, arc.edgeID
		for s.kilterNumber(p, edgeID) > 0 {
			dist, prev, ok := s.shortestPath(q)
			if !ok || prev[p] == -1 {
				break outer
			}
			for u := 0; u < s.csr.numNodes; u++ {
				if ok2 := dist[u].valid; ok2 {
					s.csr.potentials[u] -= dist[u].value
				}
			}

			e := &s.csr.insideEdgeList[edgeID]
			if s.csr.reducedCost(p, e) < 0 {
				s.updateFlowInCycle(q, edgeID, prev)
			}
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

// kilterNumber is how far arc edgeID (leaving u) is from satisfying
// optimality: zero once its reduced cost is non-negative, otherwise its
// remaining residual capacity.
func (s *OutOfKilter[F]) kilterNumber(u, edgeID int) F {
	e := &s.csr.insideEdgeList[edgeID]
	if s.csr.reducedCost(u, e) >= 0 {
		return 0
	}
	return e.residualCapacity()
}

type distEntry[F constraints.Signed] struct {
	value F
	valid bool
}

// shortestPath runs Dijkstra from q over arcs with positive residual
// capacity, weighted by max(reducedCost, 0).
func (s *OutOfKilter[F]) shortestPath(q int) (dist []distEntry[F], prev []int, ok bool) {
	dist = make([]distEntry[F], s.csr.numNodes)
	prev = make([]int, s.csr.numNodes)
	for i := range prev {
		prev[i] = -1
	}
	visited := make([]bool, s.csr.numNodes)

	h := &distHeap[F]{{dist: 0, node: q}}
	dist[q] = distEntry[F]{value: 0, valid: true}

	for h.Len() > 0 {
		top := heap.Pop(h).(distHeapItem[F])
		u := top.node
		if visited[u] {
			continue
		}
		visited[u] = true

		for edgeID := s.csr.start[u]; edgeID < s.csr.start[u+1]; edgeID++ {
			e := &s.csr.insideEdgeList[edgeID]
			if e.residualCapacity() <= 0 {
				continue
			}
			weight := s.csr.reducedCost(u, e)
			if weight < 0 {
				weight = 0
			}
			newDist := top.dist + weight
			if !dist[e.to].valid || dist[e.to].value > newDist {
				dist[e.to] = distEntry[F]{value: newDist, valid: true}
				prev[e.to] = edgeID
				heap.Push(h, distHeapItem[F]{dist: newDist, node: e.to})
			}
		}
	}
	return dist, prev, true
}

// updateFlowInCycle closes the cycle formed by the shortest-path tree
// rooted at q together with the out-of-kilter arc edgeID (p -> q),
// pushing the bottleneck residual capacity around it.
func (s *OutOfKilter[F]) updateFlowInCycle(q, edgeID int, prev []int) {
	prev[q] = edgeID

	delta := s.csr.insideEdgeList[edgeID].residualCapacity()
	v := q
	for {
		idx := prev[v]
		if rc := s.csr.insideEdgeList[idx].residualCapacity(); rc < delta {
			delta = rc
		}
		rev := s.csr.insideEdgeList[idx].rev
		v = s.csr.insideEdgeList[rev].to
		if v == q {
			break
		}
	}

	v = q
	for {
		idx := prev[v]
		rev := s.csr.insideEdgeList[idx].rev
		from := s.csr.insideEdgeList[rev].to
		s.csr.pushFlow(from, idx, delta)
		v = from
		if v == q {
			break
		}
	}
}
