package simplex

import (
	"golang.org/x/exp/constraints"

	"github.com/MitI-7/network-algorithms-back/mincostflow"
	"github.com/MitI-7/network-algorithms-back/status"
)

// Parametric solves minimum-cost flow with the parametric Network
// Simplex method: like Dual it starts from a shortest-path tree over a
// single super-source/super-sink extension, but instead of asking a
// pivot rule for the most-violating arc it always picks the tree arc on
// the current source->sink path that would saturate first (ties broken
// towards the arc closest to the source, which preserves strong
// feasibility), pushes that much flow, and only pivots in a new non-tree
// arc when source excess remains.
type Parametric[F constraints.Signed] struct {
	st   SpanningTreeStructure[F]
	sink int
}

// NewParametric returns a ready-to-use solver.
func NewParametric[F constraints.Signed]() *Parametric[F] {
	return &Parametric[F]{}
}

// Solve runs the parametric Network Simplex method, writing the result
// back into graph.
func (s *Parametric[F]) Solve(graph *mincostflow.Graph[F]) status.Status {
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

	s.run()

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

func (s *Parametric[F]) run() {
	for {
		leavingEdgeID, delta, ok := s.selectLeavingEdge()
		if !ok {
			break
		}

		leavingEdge := &s.st.edges[leavingEdgeID]
		var t2NowRoot int
		if s.st.nodes[leavingEdge.From].parent == leavingEdge.To {
			t2NowRoot = leavingEdge.From
		} else {
			t2NowRoot = leavingEdge.To
		}

		s.st.UpdateFlowInPath(s.st.root, s.sink, delta)
		if s.st.excesses[s.st.root] == 0 {
			break
		}

		enteringEdgeID, t2NewRoot, ok := s.selectEnteringEdge(leavingEdgeID, t2NowRoot)
		if !ok {
			break
		}
		s.dualPivot(leavingEdgeID, enteringEdgeID, t2NowRoot, t2NewRoot)

		if !s.st.SatisfyOptimalityConditions() {
			panic("simplex: dual optimality invariant violated after pivot")
		}
	}
}

// makeInitialSpanningTreeStructure builds a shortest-path tree rooted at
// source, reports false if sink is unreachable.
func (s *Parametric[F]) makeInitialSpanningTreeStructure() bool {
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

	return true
}

// selectLeavingEdge walks the tree path from sink up to root, keeping
// the arc closest to source among those tied for minimum blocking
// capacity — the tie-break that preserves strong feasibility.
func (s *Parametric[F]) selectLeavingEdge() (leavingEdgeID int, delta F, ok bool) {
	leavingEdgeID = none
	miniDelta := F(0)
	now := s.sink

	for now != s.st.root {
		parent, edgeID := s.st.nodes[now].parent, s.st.nodes[now].parentEdgeID
		e := &s.st.edges[edgeID]

		var d F
		if e.From == parent {
			d = e.residualCapacity()
		} else {
			d = e.Flow
		}

		if leavingEdgeID == none || d <= miniDelta {
			miniDelta = d
			leavingEdgeID = edgeID
		}

		now = parent
	}

	if leavingEdgeID == none {
		return 0, 0, false
	}
	if s.st.excesses[s.st.root] < miniDelta {
		miniDelta = s.st.excesses[s.st.root]
	}
	return leavingEdgeID, miniDelta, true
}

func (s *Parametric[F]) selectEnteringEdge(leavingEdgeID, t2NowRoot int) (enteringEdgeID, t2NewRoot int, ok bool) {
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

	enteringEdgeID = none
	t2NewRoot = none
	miniDelta := F(0)

	for edgeID := range s.st.edges {
		if edgeID == leavingEdgeID {
			continue
		}
		e := &s.st.edges[edgeID]

		if isT1Node[e.From] && !isT1Node[e.To] && e.State == Lower && e.Upper != 0 {
			reducedCost := s.st.reducedCost(e)
			if reducedCost < miniDelta || enteringEdgeID == none {
				miniDelta = reducedCost
				enteringEdgeID = edgeID
				t2NewRoot = e.To
			}
		}

		if !isT1Node[e.From] && isT1Node[e.To] && e.State == Upper {
			reducedCost := -s.st.reducedCost(e)
			if reducedCost < miniDelta || enteringEdgeID == none {
				miniDelta = reducedCost
				enteringEdgeID = edgeID
				t2NewRoot = e.From
			}
		}
	}

	if enteringEdgeID == none || t2NewRoot == none {
		return 0, 0, false
	}
	return enteringEdgeID, t2NewRoot, true
}

func (s *Parametric[F]) dualPivot(leavingEdgeID, enteringEdgeID, t2NowRoot, t2NewRoot int) {
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

	attachNode := s.st.edges[enteringEdgeID].oppositeSide(t2NewRoot)
	s.st.ReRooting(t2NewRoot, enteringEdgeID)
	s.st.AttachTree(attachNode, t2NewRoot, enteringEdgeID)
}
