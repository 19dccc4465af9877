package simplex

import (
	"golang.org/x/exp/constraints"

	"github.com/MitI-7/network-algorithms-back/mincostflow"
	"github.com/MitI-7/network-algorithms-back/status"
)

// Dual solves minimum-cost flow with the dual Network Simplex method:
// the initial tree is a shortest-path tree over a single super-source /
// super-sink extension, with the whole source excess shipped along the
// tree path to sink (so it starts dual-feasible, but arcs on that path
// may carry more than their upper bound), and each pivot picks an in-tree arc with positive
// primal violation as the leaving arc, then an entering arc crossing the
// cut in the direction that restores feasibility with minimum |reduced
// cost|.
type Dual[F constraints.Signed] struct {
	st   SpanningTreeStructure[F]
	sink int
}

// NewDual returns a ready-to-use solver.
func NewDual[F constraints.Signed]() *Dual[F] {
	return &Dual[F]{}
}

// Solve runs the dual Network Simplex method using the given pivot
// rule, writing the result back into graph.
func (s *Dual[F]) Solve(pivot PivotRule[F], graph *mincostflow.Graph[F]) status.Status {
	if graph.IsUnbalanced() {
		return status.Unbalanced
	}

	source, sink, artificialNodes, artificialEdges := graph.ConstructExtendNetworkOneSupplyOneDemand()
	s.st.Build(graph)
	s.st.root, s.sink = source, sink

	if !s.makeInitialSpanningTreeStructure() {
		var result status.Status
		if s.st.SatisfyConstraints() {
			result = status.Optimal
		} else {
			result = status.Infeasible
		}
		graph.RemoveArtificialSubGraph(artificialNodes, artificialEdges)
		return result
	}
	if !s.st.SatisfyOptimalityConditions() {
		panic("simplex: dual optimality invariant violated after initial tree build")
	}

	s.run(pivot)

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

func dualViolation[F constraints.Signed](e *InternalEdge[F], _ *SpanningTreeStructure[F]) F {
	if e.Flow < 0 {
		return -e.Flow
	}
	if e.Flow > e.Upper {
		return e.Flow - e.Upper
	}
	return 0
}

func (s *Dual[F]) run(pivot PivotRule[F]) {
	for {
		leavingEdgeID := pivot.FindEnteringEdge(&s.st, dualViolation[F])
		if leavingEdgeID == -1 {
			break
		}

		leavingEdge := &s.st.edges[leavingEdgeID]
		var t2NowRoot int
		if s.st.nodes[leavingEdge.From].parent == leavingEdge.To {
			t2NowRoot = leavingEdge.From
		} else {
			t2NowRoot = leavingEdge.To
		}

		enteringEdgeID, t2NewRoot, ok := s.selectEnteringEdge(leavingEdgeID, t2NowRoot)
		if !ok {
			break
		}

		delta := dualViolation[F](&s.st.edges[leavingEdgeID], &s.st)
		apex := s.findApex(enteringEdgeID)

		s.st.UpdateFlowInCycle(enteringEdgeID, delta, apex)
		s.dualPivot(leavingEdgeID, enteringEdgeID, t2NowRoot, t2NewRoot)

		if !s.st.ValidateNumSuccessors(s.st.root) {
			panic("simplex: numSuccessors invariant violated after pivot")
		}
		if !s.st.SatisfyOptimalityConditions() {
			panic("simplex: dual optimality invariant violated after pivot")
		}
	}
}

// makeInitialSpanningTreeStructure builds a shortest-path tree rooted at
// source, reports false if sink is unreachable.
func (s *Dual[F]) makeInitialSpanningTreeStructure() bool {
	distances, prevEdgeID := s.st.ShortestPath(s.st.root)
	if prevEdgeID[s.sink] == none {
		return false
	}

	children := make([][]int, s.st.numNodes)
	for _, edgeID := range prevEdgeID {
		if edgeID == none {
			continue
		}
		e := &s.st.edges[edgeID]
		e.State = Tree
		s.st.nodes[e.To].parent = e.From
		s.st.nodes[e.To].parentEdgeID = edgeID
		children[e.From] = append(children[e.From], e.To)
	}
	s.st.nodes[s.st.root].parent = none
	s.st.nodes[s.st.root].parentEdgeID = none
	for i := range s.st.lastDescendentDFT {
		s.st.lastDescendentDFT[i] = i
	}

	prevNode := none
	type frame struct{ u, parent int }
	stack := []frame{{s.st.root, none}}
	seen := make([]bool, s.st.numNodes)

	for len(stack) > 0 {
		top := stack[len(stack)-1]
		stack = stack[:len(stack)-1]
		u, parent := top.u, top.parent

		if seen[u] {
			s.st.numSuccessors[u]++
			if parent != none {
				s.st.lastDescendentDFT[parent] = s.st.lastDescendentDFT[u]
				s.st.numSuccessors[s.st.nodes[u].parent] += s.st.numSuccessors[u]
			}
			continue
		}

		seen[u] = true
		s.st.prevNodeDFT[u] = prevNode
		if prevNode != none {
			s.st.nextNodeDFT[prevNode] = u
		}
		prevNode = u
		stack = append(stack, frame{u, parent})
		for i := len(children[u]) - 1; i >= 0; i-- {
			stack = append(stack, frame{children[u][i], u})
		}
	}
	s.st.nextNodeDFT[prevNode] = s.st.root

	for u := range s.st.nodes {
		s.st.nodes[u].potential = -distances[u]
	}

	s.st.UpdateFlowInPath(s.st.root, s.sink, s.st.excesses[s.st.root])

	return true
}

func (s *Dual[F]) selectEnteringEdge(leavingEdgeID, t2NowRoot int) (enteringEdgeID, t2NewRoot int, ok bool) {
	isT1Node := make([]bool, s.st.numNodes)
	now := s.st.root
	for {
		isT1Node[now] = true
		now = s.st.nextNodeDFT[now]
		if now == t2NowRoot {
			now = s.st.nextNodeDFT[s.st.lastDescendentDFT[now]]
		}
		if now == s.st.root {
			break
		}
	}

	flowDirectionT1T2 := func(e *InternalEdge[F]) bool {
		return (isT1Node[e.From] && !isT1Node[e.To] && e.Flow <= 0) || (!isT1Node[e.From] && isT1Node[e.To] && e.Flow >= e.Upper)
	}

	leavingEdgeFlowDirection := flowDirectionT1T2(&s.st.edges[leavingEdgeID])

	enteringEdgeID = none
	t2NewRoot = none
	miniDelta := F(0)

	for edgeID := range s.st.edges {
		e := &s.st.edges[edgeID]
		if e.State == Tree || e.Upper == 0 {
			continue
		}

		enteringEdgeFlowDirection := flowDirectionT1T2(e)
		if leavingEdgeFlowDirection == enteringEdgeFlowDirection || isT1Node[e.From] == isT1Node[e.To] {
			continue
		}

		var reducedCost F
		if e.State == Lower {
			reducedCost = s.st.reducedCost(e)
		} else {
			reducedCost = -s.st.reducedCost(e)
		}

		if reducedCost < miniDelta || enteringEdgeID == none {
			miniDelta = reducedCost
			enteringEdgeID = edgeID
			if (enteringEdgeFlowDirection && e.State == Lower) || (!enteringEdgeFlowDirection && e.State == Upper) {
				t2NewRoot = e.To
			} else {
				t2NewRoot = e.From
			}
		}
	}

	if enteringEdgeID == none || t2NewRoot == none {
		return 0, 0, false
	}
	return enteringEdgeID, t2NewRoot, true
}

func (s *Dual[F]) dualPivot(leavingEdgeID, enteringEdgeID, t2NowRoot, t2NewRoot int) {
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
	s.st.nodes[s.st.root].parent = none
}

func (s *Dual[F]) findApex(enteringEdgeID int) int {
	e := &s.st.edges[enteringEdgeID]
	u, v := e.From, e.To
	for u != v {
		uNum, vNum := s.st.numSuccessors[u], s.st.numSuccessors[v]
		if uNum <= vNum {
			u = s.st.nodes[u].parent
		}
		if vNum <= uNum {
			v = s.st.nodes[v].parent
		}
	}
	return u
}
