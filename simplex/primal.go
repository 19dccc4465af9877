package simplex

import (
	"golang.org/x/exp/constraints"

	"github.com/MitI-7/network-algorithms-back/mincostflow"
	"github.com/MitI-7/network-algorithms-back/status"
)

// Primal solves minimum-cost flow with the primal Network Simplex
// method: a big-M feasible circulation bootstraps the initial spanning
// tree (every real node hangs directly off an artificial root via a
// high-cost arc), then each pivot brings in the pivot rule's chosen
// entering arc and drops the first (or, on a tie, last) tree arc its
// cycle would push out of [0, upper].
type Primal[F constraints.Signed] struct {
	st SpanningTreeStructure[F]
}

// NewPrimal returns a ready-to-use solver.
func NewPrimal[F constraints.Signed]() *Primal[F] {
	return &Primal[F]{}
}

// Solve runs the primal Network Simplex method using the given pivot
// rule, writing the result back into graph.
func (s *Primal[F]) Solve(pivot PivotRule[F], graph *mincostflow.Graph[F]) status.Status {
	if graph.IsUnbalanced() {
		return status.Unbalanced
	}

	var infCost F = 1
	for _, e := range graph.InternalEdges() {
		infCost += e.Cost
	}
	root, artificialNodes, artificialEdges := graph.ConstructExtendNetworkFeasibleSolution()

	s.st.Build(graph)
	s.st.root = root
	s.st.nodes[root].parent = none
	s.st.nodes[root].parentEdgeID = none

	s.makeInitialSpanningTreeStructure(graph, root, artificialEdges, infCost)
	if !s.st.ValidateNumSuccessors(s.st.root) {
		panic("simplex: numSuccessors invariant violated after initial tree build")
	}
	if !s.st.SatisfyConstraints() {
		panic("simplex: primal feasibility invariant violated after initial tree build")
	}

	s.run(pivot, artificialEdges)

	var result status.Status
	if s.st.SatisfyConstraints() {
		result = status.Optimal
	} else {
		result = status.Infeasible
	}

	s.st.WriteBack(graph)
	graph.RemoveArtificialSubGraph(artificialNodes, artificialEdges)

	return result
}

func primalViolation[F constraints.Signed](e *InternalEdge[F], st *SpanningTreeStructure[F]) F {
	if e.State == Upper {
		return st.reducedCost(e)
	}
	return -st.reducedCost(e)
}

func (s *Primal[F]) run(pivot PivotRule[F], artificialEdges []int) {
	for {
		enteringEdgeID := pivot.FindEnteringEdge(&s.st, primalViolation[F])
		if enteringEdgeID == -1 {
			break
		}

		leavingEdgeID, apex, delta, t2NowRoot, t2NewRoot := s.selectLeavingEdge(enteringEdgeID)
		s.st.UpdateFlowInCycle(enteringEdgeID, delta, apex)
		s.pivot(leavingEdgeID, enteringEdgeID, t2NowRoot, t2NewRoot)

		if !s.st.ValidateNumSuccessors(s.st.root) {
			panic("simplex: numSuccessors invariant violated after pivot")
		}
		if !s.st.SatisfyConstraints() {
			panic("simplex: primal feasibility invariant violated after pivot")
		}
	}

	for _, edgeID := range artificialEdges {
		e := &s.st.edges[edgeID]
		if e.Flow > 0 {
			s.st.excesses[e.From] += e.Flow
			s.st.excesses[e.To] -= e.Flow
			e.Flow = 0
		}
	}
}

func (s *Primal[F]) makeInitialSpanningTreeStructure(graph *mincostflow.Graph[F], root int, artificialEdges []int, infCost F) {
	prevNode := s.st.root
	for _, edgeID := range artificialEdges {
		e := &s.st.edges[edgeID]
		var u int
		if e.From == root {
			u = e.To
		} else {
			u = e.From
		}

		if e.From == u {
			s.st.nodes[u].potential = infCost
		} else {
			s.st.nodes[u].potential = -infCost
		}
		e.State = Tree

		s.st.nodes[u].parent = s.st.root
		s.st.nodes[u].parentEdgeID = edgeID
		s.st.nextNodeDFT[prevNode] = u
		s.st.prevNodeDFT[u] = prevNode
		s.st.lastDescendentDFT[u] = u
		s.st.numSuccessors[u] = 1
		s.st.excesses[u] = 0
		prevNode = u
	}
	s.st.nextNodeDFT[prevNode] = s.st.root
	s.st.prevNodeDFT[s.st.root] = prevNode
	s.st.lastDescendentDFT[s.st.root] = prevNode

	s.st.numSuccessors[s.st.root] = graph.NumNodes()
}

// selectLeavingEdge walks the tree paths from entering edge's two
// endpoints up towards their common ancestor (the apex), tracking
// whichever tree arc would hit zero residual/flow first; among ties it
// keeps the first blocking arc found walking up from the "from" side
// and the last found walking up from the "to" side, which preserves
// strong feasibility (a degeneracy-breaking tie-break).
func (s *Primal[F]) selectLeavingEdge(enteringEdgeID int) (leavingEdgeID, apex int, delta F, t2NowRoot, t2NewRoot int) {
	enteringEdge := &s.st.edges[enteringEdgeID]

	var from, to int
	if enteringEdge.State == Lower {
		from, to = enteringEdge.From, enteringEdge.To
	} else {
		from, to = enteringEdge.To, enteringEdge.From
	}

	leavingEdgeID = enteringEdgeID
	miniDelta := enteringEdge.Upper
	t2NowRoot, t2NewRoot = none, none

	u, v := from, to
	for u != v {
		uNum, vNum := s.st.numSuccessors[u], s.st.numSuccessors[v]

		if uNum <= vNum {
			edgeID := s.st.nodes[u].parentEdgeID
			e := &s.st.edges[edgeID]
			var d F
			if u == e.To {
				d = e.residualCapacity()
			} else {
				d = e.Flow
			}
			if d < miniDelta {
				leavingEdgeID, miniDelta, t2NowRoot, t2NewRoot = edgeID, d, u, from
			}
			u = s.st.nodes[u].parent
		}

		if vNum <= uNum {
			edgeID := s.st.nodes[v].parentEdgeID
			e := &s.st.edges[edgeID]
			var d F
			if v == e.From {
				d = e.residualCapacity()
			} else {
				d = e.Flow
			}
			if d <= miniDelta {
				leavingEdgeID, miniDelta, t2NowRoot, t2NewRoot = edgeID, d, v, to
			}
			v = s.st.nodes[v].parent
		}
	}
	apex = u

	return leavingEdgeID, apex, miniDelta, t2NowRoot, t2NewRoot
}

func (s *Primal[F]) pivot(leavingEdgeID, enteringEdgeID, t2NowRoot, t2NewRoot int) {
	if leavingEdgeID == enteringEdgeID {
		e := &s.st.edges[enteringEdgeID]
		if e.State == Upper {
			e.State = Lower
		} else {
			e.State = Upper
		}
		return
	}

	s.st.DetachTree(t2NowRoot, leavingEdgeID)

	var t1NewRoot, newAttachNode int
	if s.st.numSuccessors[t2NowRoot]*2 >= s.st.numNodes {
		t1NewRoot = t2NowRoot
		newAttachNode = t2NewRoot
		t2NewRoot = s.st.edges[enteringEdgeID].oppositeSide(t2NewRoot)
		t2NowRoot = s.st.root
	} else {
		t1NewRoot = s.st.root
		newAttachNode = s.st.edges[enteringEdgeID].oppositeSide(t2NewRoot)
	}

	s.st.ReRooting(t2NewRoot, enteringEdgeID)
	s.st.AttachTree(newAttachNode, t2NewRoot, enteringEdgeID)
	s.st.root = t1NewRoot
}
