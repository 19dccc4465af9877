package mincostflow

import (
	"container/heap"

	"golang.org/x/exp/constraints"

	"github.com/MitI-7/network-algorithms-back/status"
)

// PrimalDual solves minimum-cost flow over a single super-source/sink
// extension by alternating a dual step (Dijkstra on reduced costs to
// update potentials) with a primal step (a Dinic blocking flow restricted
// to the tight, c̄==0 subgraph).
type PrimalDual[F constraints.Signed] struct {
	csr csr[F]

	distances   []int
	currentEdge []int
}

// NewPrimalDual returns a ready-to-use solver.
func NewPrimalDual[F constraints.Signed]() *PrimalDual[F] {
	return &PrimalDual[F]{}
}

// Solve computes a minimum-cost feasible circulation, writing the result
// back into graph.
func (s *PrimalDual[F]) Solve(graph *Graph[F]) status.Status {
	if graph.IsUnbalanced() {
		return status.Unbalanced
	}

	source, sink, artificialNodes, artificialEdges := graph.constructExtendNetworkOneSupplyOneDemand()
	s.csr.build(graph)

	s.distances = make([]int, s.csr.numNodes)
	s.currentEdge = make([]int, s.csr.numNodes)

	for s.csr.excesses[source] > 0 {
		if !s.dual(source, sink) {
			break
		}
		s.primal(source, sink)
	}

	s.csr.setFlow(graph)
	graph.removeArtificialSubGraph(artificialNodes, artificialEdges)

	if s.csr.excesses[source] != 0 || s.csr.excesses[sink] != 0 {
		return status.Infeasible
	}
	return status.Optimal
}

// dual runs Dijkstra on reduced costs from source and folds the result
// into the potentials, returning whether sink was reached.
func (s *PrimalDual[F]) dual(source, sink int) bool {
	dist := make([]F, s.csr.numNodes)
	hasDist := make([]bool, s.csr.numNodes)
	visited := make([]bool, s.csr.numNodes)

	h := &distHeap[F]{{dist: 0, node: source}}
	dist[source] = 0
	hasDist[source] = true

	for h.Len() > 0 {
		top := heap.Pop(h).(distHeapItem[F])
		u := top.node
		if visited[u] {
			continue
		}
		visited[u] = true

		for edgeID := s.csr.start[u]; edgeID < s.csr.start[u+1]; edgeID++ {
			e := &s.csr.insideEdgeList[edgeID]
			if e.residualCapacity() == 0 {
				continue
			}
			newDist := top.dist + s.csr.reducedCost(u, e)
			if !hasDist[e.to] || dist[e.to] > newDist {
				dist[e.to] = newDist
				hasDist[e.to] = true
				heap.Push(h, distHeapItem[F]{dist: newDist, node: e.to})
			}
		}
	}

	for u := 0; u < s.csr.numNodes; u++ {
		if visited[u] {
			s.csr.potentials[u] -= dist[u]
		}
	}

	return visited[sink]
}

// primal pushes a blocking flow through the tight (reduced-cost-zero)
// subgraph towards sink, exactly like Dinic restricted to admissible
// tight arcs.
func (s *PrimalDual[F]) primal(source, sink int) {
	var flow F
	for s.csr.excesses[source] > 0 {
		s.updateDistances(source, sink)
		if s.distances[source] >= s.csr.numNodes {
			break
		}

		for u := range s.currentEdge {
			s.currentEdge[u] = s.csr.start[u]
		}
		delta, ok := s.dfs(source, sink, s.csr.excesses[source])
		if !ok {
			break
		}
		flow += delta
	}
	s.csr.excesses[source] -= flow
	s.csr.excesses[sink] += flow
}

func (s *PrimalDual[F]) updateDistances(source, sink int) {
	queue := []int{sink}
	for i := range s.distances {
		s.distances[i] = s.csr.numNodes
	}
	s.distances[sink] = 0

	for len(queue) > 0 {
		v := queue[0]
		queue = queue[1:]
		for _, e := range s.csr.insideEdgeList[s.csr.start[v]:s.csr.start[v+1]] {
			if e.flow > 0 && s.distances[e.to] == s.csr.numNodes && s.csr.reducedCostRev(v, &e) == 0 {
				s.distances[e.to] = s.distances[v] + 1
				if e.to != source {
					queue = append(queue, e.to)
				}
			}
		}
	}
}

func (s *PrimalDual[F]) isAdmissibleEdge(from, i int) bool {
	e := &s.csr.insideEdgeList[i]
	return e.residualCapacity() > 0 && s.distances[from] == s.distances[e.to]+1
}

func (s *PrimalDual[F]) dfs(u, sink int, upper F) (F, bool) {
	if u == sink {
		return upper, true
	}

	var res F
	for edgeID := s.currentEdge[u]; edgeID < s.csr.start[u+1]; edgeID++ {
		s.currentEdge[u] = edgeID

		e := &s.csr.insideEdgeList[edgeID]
		if !s.isAdmissibleEdge(u, edgeID) || s.csr.reducedCost(u, e) != 0 {
			continue
		}

		v := e.to
		residual := e.residualCapacity()
		bound := residual
		if rem := upper - res; rem < bound {
			bound = rem
		}
		if d, ok := s.dfs(v, sink, bound); ok {
			rev := e.rev
			s.csr.insideEdgeList[edgeID].flow += d
			s.csr.insideEdgeList[rev].flow -= d
			res += d
			if res == upper {
				return res, true
			}
		}
	}
	s.currentEdge[u] = s.csr.start[u+1]
	s.distances[u] = s.csr.numNodes

	return res, true
}
