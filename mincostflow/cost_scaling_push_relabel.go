package mincostflow

import (
	"golang.org/x/exp/constraints"

	"github.com/MitI-7/network-algorithms-back/maxflow"
	"github.com/MitI-7/network-algorithms-back/status"
)

// CostScalingPushRelabel solves minimum-cost flow with Goldberg's
// epsilon-scaling push-relabel method: it repeatedly divides a precision
// parameter epsilon by the scaling factor alpha, each round refining an epsilon-optimal pseudoflow
// into one that is epsilon/alpha-optimal, until epsilon reaches 1, at
// which point an integral epsilon-optimal flow is exactly optimal.
type CostScalingPushRelabel[F constraints.Signed] struct {
	csr         csr[F]
	activeNodes []int
	currentEdge []int
	alpha       F
}

// NewCostScalingPushRelabel returns a solver with the default scaling
// factor of 16.
func NewCostScalingPushRelabel[F constraints.Signed]() *CostScalingPushRelabel[F] {
	return &CostScalingPushRelabel[F]{alpha: 16}
}

// NewCostScalingPushRelabelWithFactor returns a solver using the given
// scaling factor, which must be greater than 1.
func NewCostScalingPushRelabelWithFactor[F constraints.Signed](scalingFactor F) *CostScalingPushRelabel[F] {
	if scalingFactor <= 1 {
		panic("mincostflow: scaling factor must be greater than 1")
	}
	return &CostScalingPushRelabel[F]{alpha: scalingFactor}
}

// Solve computes a minimum-cost feasible circulation, writing the result
// back into graph.
func (s *CostScalingPushRelabel[F]) Solve(graph *Graph[F]) status.Status {
	if graph.IsUnbalanced() {
		return status.Unbalanced
	}
	s.csr.build(graph)

	totalExcess := F(0)
	allZero := true
	for _, e := range s.csr.excesses {
		if e != 0 {
			allZero = false
		}
		if e > 0 {
			totalExcess += e
		}
	}
	if allZero {
		s.csr.setFlow(graph)
		return status.Optimal
	}

	if !s.checkFeasibility(graph, totalExcess) {
		return status.Infeasible
	}

	s.currentEdge = make([]int, s.csr.numNodes)

	gamma := F(1)
	for i := range s.csr.insideEdgeList {
		if c := s.csr.insideEdgeList[i].cost; c > gamma {
			gamma = c
		}
	}

	costScalingFactor := s.alpha * F(s.csr.numNodes)
	epsilon := gamma * costScalingFactor
	if epsilon < 1 {
		epsilon = 1
	}

	for i := range s.csr.insideEdgeList {
		s.csr.insideEdgeList[i].cost *= costScalingFactor
	}

	for {
		epsilon = epsilon / s.alpha
		if epsilon < 1 {
			epsilon = 1
		}
		s.refine(epsilon)
		if epsilon == 1 {
			break
		}
	}

	for i := range s.csr.insideEdgeList {
		s.csr.insideEdgeList[i].cost /= costScalingFactor
	}

	s.csr.setFlow(graph)
	return status.Optimal
}

// checkFeasibility verifies the instance admits a feasible circulation by
// routing every node's excess through an auxiliary maximum-flow instance
// built on the same (normalised) arcs.
func (s *CostScalingPushRelabel[F]) checkFeasibility(graph *Graph[F], totalExcess F) bool {
	mf := maxflow.NewGraph[F]()
	mf.AddNodes(s.csr.numNodes + 2)
	source, sink := s.csr.numNodes, s.csr.numNodes+1

	for _, e := range graph.InternalEdges() {
		_, _ = mf.AddDirectedEdge(e.From, e.To, e.Upper)
	}
	for u, e := range s.csr.excesses {
		if e > 0 {
			_, _ = mf.AddDirectedEdge(source, u, e)
		} else if e < 0 {
			_, _ = mf.AddDirectedEdge(u, sink, -e)
		}
	}

	cs := maxflow.NewCapacityScaling[F]()
	cs.Solve(source, sink, mf)
	return mf.MaximumFlow(source) >= totalExcess
}

// refine turns the current epsilon-optimal pseudoflow into one that is
// epsilon/alpha-optimal: saturate or empty every arc to restore
// 0-optimality, then discharge every node with positive excess in LIFO
// order.
func (s *CostScalingPushRelabel[F]) refine(epsilon F) {
	for u := 0; u < s.csr.numNodes; u++ {
		for edgeID := s.csr.start[u]; edgeID < s.csr.start[u+1]; edgeID++ {
			e := &s.csr.insideEdgeList[edgeID]
			rc := s.csr.reducedCost(u, e)
			if rc < 0 {
				s.csr.pushFlow(u, edgeID, e.residualCapacity())
			} else if rc > 0 && e.flow > 0 {
				s.csr.pushFlow(u, edgeID, -e.flow)
			}
		}
	}

	s.activeNodes = s.activeNodes[:0]
	for u := 0; u < s.csr.numNodes; u++ {
		s.currentEdge[u] = s.csr.start[u]
		if s.csr.excesses[u] > 0 {
			s.activeNodes = append(s.activeNodes, u)
		}
	}

	for len(s.activeNodes) > 0 {
		n := len(s.activeNodes)
		u := s.activeNodes[n-1]
		s.activeNodes = s.activeNodes[:n-1]
		s.discharge(u, epsilon)
	}
}

func (s *CostScalingPushRelabel[F]) discharge(u int, epsilon F) {
	for s.csr.excesses[u] > 0 {
		s.push(u, epsilon)
		if s.csr.excesses[u] == 0 {
			break
		}
		s.relabel(u, epsilon)
	}
}

func (s *CostScalingPushRelabel[F]) isAdmissible(u int, e *insideEdge[F]) bool {
	return s.csr.reducedCost(u, e) < 0
}

func (s *CostScalingPushRelabel[F]) push(u int, epsilon F) {
	for edgeID := s.csr.start[u]; edgeID < s.csr.start[u+1]; edgeID++ {
		e := &s.csr.insideEdgeList[edgeID]
		if e.residualCapacity() <= 0 || !s.isAdmissible(u, e) {
			continue
		}

		if !s.lookAhead(e.to, epsilon) {
			if !s.isAdmissible(u, e) {
				continue
			}
		}

		flow := e.residualCapacity()
		if s.csr.excesses[u] < flow {
			flow = s.csr.excesses[u]
		}
		to := e.to
		wasPositive := s.csr.excesses[to] > 0
		s.csr.pushFlow(u, edgeID, flow)
		if !wasPositive && s.csr.excesses[to] > 0 {
			s.activeNodes = append(s.activeNodes, to)
		}

		if s.csr.excesses[u] == 0 {
			s.currentEdge[u] = edgeID
			return
		}
	}
	s.currentEdge[u] = s.csr.start[u]
}

func (s *CostScalingPushRelabel[F]) relabel(u int, epsilon F) {
	guaranteedNewPotential := s.csr.potentials[u] + epsilon

	var miniPotential, previousMiniPotential F
	haveMini, havePrevious := false, false
	miniEdge := s.csr.start[u]

	for edgeID := s.csr.start[u]; edgeID < s.csr.start[u+1]; edgeID++ {
		e := &s.csr.insideEdgeList[edgeID]
		if e.residualCapacity() <= 0 {
			continue
		}
		candidate := s.csr.potentials[e.to] + e.cost
		if !haveMini || candidate < miniPotential {
			previousMiniPotential, havePrevious = miniPotential, haveMini
			miniPotential, haveMini = candidate, true
			miniEdge = edgeID
		} else if !havePrevious || candidate < previousMiniPotential {
			previousMiniPotential, havePrevious = candidate, true
		}

		newPotential := miniPotential + epsilon
		if newPotential < guaranteedNewPotential {
			s.csr.potentials[u] = guaranteedNewPotential
			s.currentEdge[u] = edgeID
			return
		}
	}

	if !haveMini {
		if s.csr.excesses[u] != 0 {
			return
		}
		s.csr.potentials[u] = guaranteedNewPotential
		s.currentEdge[u] = s.csr.start[u]
		return
	}

	s.csr.potentials[u] = miniPotential + epsilon
	if !havePrevious || previousMiniPotential >= s.csr.potentials[u] {
		s.currentEdge[u] = miniEdge
	} else {
		s.currentEdge[u] = s.csr.start[u]
	}
}

// lookAhead reports whether u is a valid sink for flow right now: a
// deficit node always is; otherwise u must still have an admissible
// residual arc (found starting at its current-edge pointer).
func (s *CostScalingPushRelabel[F]) lookAhead(u int, epsilon F) bool {
	if s.csr.excesses[u] < 0 {
		return true
	}
	for edgeID := s.currentEdge[u]; edgeID < s.csr.start[u+1]; edgeID++ {
		e := &s.csr.insideEdgeList[edgeID]
		if e.residualCapacity() > 0 && s.isAdmissible(u, e) {
			s.currentEdge[u] = edgeID
			return true
		}
	}
	s.relabel(u, epsilon)
	return false
}
