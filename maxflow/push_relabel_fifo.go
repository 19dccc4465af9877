package maxflow

import (
	"golang.org/x/exp/constraints"

	"github.com/MitI-7/network-algorithms-back/status"
)

// PushRelabelFIFO solves maximum flow with the FIFO push-relabel method:
// nodes with positive excess are discharged in FIFO order, with a gap
// heuristic that jumps every node behind a label gap straight to
// "unreachable", and an optional global relabeling pass every alpha*N
// individual relabels.
//
// The source's constructor takes alpha directly (NewPushRelabelFIFO(alpha)):
// the original implementation this is grounded on shaped its constructor
// as a method taking &mut self, which does not translate to an idiomatic
// Go constructor, so this type uses the conventional shape instead.
type PushRelabelFIFO[F constraints.Signed] struct {
	csr      csr[F]
	excesses []F

	alpha         int
	relabelCount  int
	activeNodes   []int
	currentEdge   []int
	distanceCount []int
}

// NewPushRelabelFIFO returns a ready-to-use solver. alpha is the global
// relabeling interval in units of N (number of nodes); alpha == 0 (the
// default) disables global relabeling entirely. Callers chasing
// performance on large instances typically set it to 6-8.
func NewPushRelabelFIFO[F constraints.Signed](alpha int) *PushRelabelFIFO[F] {
	return &PushRelabelFIFO[F]{alpha: alpha}
}

// Solve computes maximum flow from source to sink, writing the result
// back into graph. Returns status.BadInput if source and sink coincide
// or either is out of range; otherwise status.Optimal.
func (s *PushRelabelFIFO[F]) Solve(source, sink int, graph *Graph[F]) status.Status {
	if source < 0 || source >= graph.NumNodes() || sink < 0 || sink >= graph.NumNodes() || source == sink {
		return status.BadInput
	}
	s.csr.build(graph)

	s.preProcess(source, sink)

	for len(s.activeNodes) > 0 {
		u := s.activeNodes[0]
		s.activeNodes = s.activeNodes[1:]

		if u == source || u == sink || s.csr.distances[u] >= s.csr.numNodes {
			continue
		}
		s.discharge(u)

		if s.alpha != 0 && s.relabelCount > s.alpha*s.csr.numNodes {
			s.relabelCount = 0
			s.csr.updateDistances(source, sink)
		}
	}

	s.pushExcessBackToSource(source, sink)
	s.csr.setFlow(graph)

	return status.Optimal
}

func (s *PushRelabelFIFO[F]) preProcess(source, sink int) {
	s.excesses = make([]F, s.csr.numNodes)
	s.currentEdge = make([]int, s.csr.numNodes)
	s.distanceCount = make([]int, s.csr.numNodes+1)
	s.activeNodes = s.activeNodes[:0]
	s.relabelCount = 0

	s.csr.updateDistances(source, sink)
	s.csr.distances[source] = s.csr.numNodes

	for u := 0; u < s.csr.numNodes; u++ {
		s.distanceCount[s.csr.distances[u]]++
		s.currentEdge[u] = s.csr.start[u]
	}

	for insideEdgeIndex := s.csr.start[source]; insideEdgeIndex < s.csr.start[source+1]; insideEdgeIndex++ {
		e := &s.csr.insideEdgeList[insideEdgeIndex]
		delta := e.residualCapacity()
		s.excesses[e.to] += delta
		s.csr.pushFlow(insideEdgeIndex, delta)
	}

	for u := 0; u < s.csr.numNodes; u++ {
		if u != source && u != sink && s.excesses[u] > 0 {
			s.activeNodes = append(s.activeNodes, u)
		}
	}
}

func (s *PushRelabelFIFO[F]) discharge(u int) {
	for edgeID := s.currentEdge[u]; edgeID < s.csr.start[u+1]; edgeID++ {
		s.currentEdge[u] = edgeID
		if s.excesses[u] > 0 {
			s.push(u, edgeID)
		}
		if s.excesses[u] == 0 {
			return
		}
	}
	s.currentEdge[u] = s.csr.start[u]

	if s.distanceCount[s.csr.distances[u]] == 1 {
		s.gapRelabeling(s.csr.distances[u])
	} else {
		s.relabel(u)
	}

	if s.excesses[u] > 0 {
		s.activeNodes = append(s.activeNodes, u)
	}
}

func (s *PushRelabelFIFO[F]) push(u, edgeID int) {
	e := &s.csr.insideEdgeList[edgeID]
	to := e.to
	delta := s.excesses[u]
	if rc := e.residualCapacity(); rc < delta {
		delta = rc
	}
	if s.csr.isAdmissibleEdge(u, edgeID) && delta > 0 {
		s.csr.pushFlow(edgeID, delta)
		s.excesses[u] -= delta
		s.excesses[to] += delta
		if s.excesses[to] == delta {
			s.activeNodes = append(s.activeNodes, to)
		}
	}
}

func (s *PushRelabelFIFO[F]) relabel(u int) {
	s.relabelCount++
	s.distanceCount[s.csr.distances[u]]--

	newDistance := s.csr.numNodes
	for _, e := range s.csr.neighbors(u) {
		if e.residualCapacity() > 0 {
			if cand := s.csr.distances[e.to] + 1; cand < newDistance {
				newDistance = cand
			}
		}
	}
	if newDistance > s.csr.numNodes {
		newDistance = s.csr.numNodes
	}

	s.csr.distances[u] = newDistance
	s.distanceCount[s.csr.distances[u]]++
}

// gapRelabeling implements the gap heuristic: once no node is labelled k,
// every node labelled >= k can never reach sink, so it is pushed straight
// to the "unreachable" sentinel in one O(N) pass.
func (s *PushRelabelFIFO[F]) gapRelabeling(k int) {
	for u := 0; u < s.csr.numNodes; u++ {
		if s.csr.distances[u] >= k {
			s.distanceCount[s.csr.distances[u]]--
			if s.csr.distances[u] < s.csr.numNodes {
				s.csr.distances[u] = s.csr.numNodes
			}
			s.distanceCount[s.csr.distances[u]]++
		}
	}
}

func (s *PushRelabelFIFO[F]) pushExcessBackToSource(source, sink int) {
	for u := 0; u < s.csr.numNodes; u++ {
		if u == source || u == sink {
			continue
		}
		for s.excesses[u] > 0 {
			visited := make([]bool, s.csr.numNodes)
			for v := range s.currentEdge {
				s.currentEdge[v] = s.csr.start[v]
			}
			d := s.dfs(u, source, s.excesses[u], visited)
			s.excesses[u] -= d
			s.excesses[source] += d
		}
	}
}

func (s *PushRelabelFIFO[F]) dfs(u, source int, flow F, visited []bool) F {
	if u == source {
		return flow
	}
	visited[u] = true

	for i := s.currentEdge[u]; i < s.csr.start[u+1]; i++ {
		s.currentEdge[u] = i
		to := s.csr.insideEdgeList[i].to
		residual := s.csr.insideEdgeList[i].residualCapacity()
		if visited[to] || residual == 0 {
			continue
		}

		bound := flow
		if residual < bound {
			bound = residual
		}
		delta := s.dfs(to, source, bound, visited)
		if delta > 0 {
			s.csr.pushFlow(i, delta)
			return delta
		}
	}
	var zero F
	return zero
}
