// Package simplex implements the three Network Simplex variants for
// minimum-cost flow — Primal, Dual, and Parametric — pivoting over a
// shared SpanningTreeStructure (a depth-first-thread spanning tree whose
// detach/re-root/attach primitives touch only the moved subtree and its
// ancestor chain) via one of five pluggable
// PivotRule strategies.
package simplex

import (
	"container/heap"

	"golang.org/x/exp/constraints"

	"github.com/MitI-7/network-algorithms-back/mincostflow"
)

// none is the sentinel for "no parent / no edge / not yet visited",
// matching Go's idiomatic -1 rather than usize::MAX.
const none = -1

// EdgeState records which side of the simplex basis a non-tree edge
// rests on, or that the edge is currently in the spanning tree.
type EdgeState int

const (
	Lower EdgeState = iota
	Upper
	Tree
)

type node[F constraints.Signed] struct {
	parent       int
	parentEdgeID int
	potential    F
}

// InternalEdge is one arc of the spanning-tree structure's own copy of
// the graph, carrying its current basis state alongside flow/cost/cap.
type InternalEdge[F constraints.Signed] struct {
	From, To int
	Upper    F
	Cost     F
	Flow     F
	State    EdgeState
}

func (e *InternalEdge[F]) isLower() bool          { return e.Flow == 0 }
func (e *InternalEdge[F]) isUpper() bool          { return e.Flow == e.Upper }
func (e *InternalEdge[F]) residualCapacity() F    { return e.Upper - e.Flow }
func (e *InternalEdge[F]) oppositeSide(u int) int { return u ^ e.To ^ e.From }

// SpanningTreeStructure is the working copy of a mincostflow.Graph used
// by every Network Simplex variant: it owns its own edge list (with
// basis state) and the depth-first-thread bookkeeping a pivot needs to
// detach, re-root, and re-attach a subtree in O(subtree size).
type SpanningTreeStructure[F constraints.Signed] struct {
	numNodes int
	numEdges int
	excesses []F

	nodes []node[F]
	edges []InternalEdge[F]

	root              int
	nextNodeDFT       []int
	prevNodeDFT       []int
	lastDescendentDFT []int
	numSuccessors     []int
}

// Build initialises the structure from graph's normalised internal
// edges (lower == 0, cost >= 0); every edge starts in state Lower.
func (st *SpanningTreeStructure[F]) Build(graph *mincostflow.Graph[F]) {
	st.numNodes = graph.NumNodes()
	st.numEdges = graph.NumEdges()
	st.excesses = graph.Excesses()

	st.edges = make([]InternalEdge[F], 0, st.numEdges)
	for _, e := range graph.InternalEdges() {
		st.edges = append(st.edges, InternalEdge[F]{From: e.From, To: e.To, Flow: e.Flow, Upper: e.Upper, Cost: e.Cost, State: Lower})
	}

	st.root = none
	st.nodes = make([]node[F], st.numNodes)
	for i := range st.nodes {
		st.nodes[i] = node[F]{parent: none, parentEdgeID: none}
	}
	st.nextNodeDFT = make([]int, st.numNodes)
	st.prevNodeDFT = make([]int, st.numNodes)
	st.lastDescendentDFT = make([]int, st.numNodes)
	st.numSuccessors = make([]int, st.numNodes)
}

// WriteBack copies the structure's current excesses/flows back into
// graph, in the order graph.InternalEdges() returned them.
func (st *SpanningTreeStructure[F]) WriteBack(graph *mincostflow.Graph[F]) {
	flows := make([]F, st.numEdges)
	for i := range st.edges {
		flows[i] = st.edges[i].Flow
	}
	graph.SetFlowsAndExcesses(flows, st.excesses)
}

func (st *SpanningTreeStructure[F]) reducedCost(e *InternalEdge[F]) F {
	return e.Cost - st.nodes[e.From].potential + st.nodes[e.To].potential
}

// UpdateFlowInPath pushes delta from source to sink along the tree path
// between them (source must be an ancestor of sink).
func (st *SpanningTreeStructure[F]) UpdateFlowInPath(source, sink int, delta F) {
	now := sink
	for now != source {
		parent, edgeID := st.nodes[now].parent, st.nodes[now].parentEdgeID
		e := &st.edges[edgeID]
		if e.From == parent {
			e.Flow += delta
		} else {
			e.Flow -= delta
		}
		now = parent
	}
	st.excesses[source] -= delta
	st.excesses[sink] += delta
}

// UpdateFlowInCycle pushes delta around the cycle formed by enteringEdgeID
// plus the tree path between its endpoints, with apex their common
// ancestor.
func (st *SpanningTreeStructure[F]) UpdateFlowInCycle(enteringEdgeID int, delta F, apex int) {
	if st.edges[enteringEdgeID].State == Upper {
		delta = -delta
	}
	st.edges[enteringEdgeID].Flow += delta

	now := st.edges[enteringEdgeID].From
	for now != apex {
		e := &st.edges[st.nodes[now].parentEdgeID]
		if now == e.From {
			e.Flow -= delta
		} else {
			e.Flow += delta
		}
		now = st.nodes[now].parent
	}

	now = st.edges[enteringEdgeID].To
	for now != apex {
		e := &st.edges[st.nodes[now].parentEdgeID]
		if now == e.From {
			e.Flow += delta
		} else {
			e.Flow -= delta
		}
		now = st.nodes[now].parent
	}
}

// ReRooting changes the root of the subtree containing newRoot from its
// current root to newRoot, walking only the ancestor chain from newRoot
// up (O(depth)), then folds enteringEdgeID's reduced cost into every
// potential in the now-rerooted subtree.
func (st *SpanningTreeStructure[F]) ReRooting(newRoot, enteringEdgeID int) {
	var ancestors []int
	now := newRoot
	for now != none {
		ancestors = append(ancestors, now)
		now = st.nodes[now].parent
	}
	for i, j := 0, len(ancestors)-1; i < j; i, j = i+1, j-1 {
		ancestors[i], ancestors[j] = ancestors[j], ancestors[i]
	}

	for i := 0; i+1 < len(ancestors); i++ {
		p, q := ancestors[i], ancestors[i+1]
		sizeP := st.numSuccessors[p]
		lastQ := st.lastDescendentDFT[q]

		st.nodes[p].parent = q
		st.nodes[q].parent = none
		st.nodes[p].parentEdgeID = st.nodes[q].parentEdgeID
		st.nodes[q].parentEdgeID = none
		st.numSuccessors[p] = sizeP - st.numSuccessors[q]
		st.numSuccessors[q] = sizeP

		prevQ := st.prevNodeDFT[q]
		nextLastQ := st.nextNodeDFT[lastQ]
		st.nextNodeDFT[prevQ] = nextLastQ
		st.prevNodeDFT[nextLastQ] = prevQ
		st.nextNodeDFT[lastQ] = q
		st.prevNodeDFT[q] = lastQ

		lastP := st.lastDescendentDFT[p]
		if lastP == lastQ {
			st.lastDescendentDFT[p] = prevQ
			lastP = prevQ
		}

		st.prevNodeDFT[p] = lastQ
		st.nextNodeDFT[lastQ] = p
		st.nextNodeDFT[lastP] = q
		st.prevNodeDFT[q] = lastP
		st.lastDescendentDFT[q] = lastP
	}

	enteringEdge := &st.edges[enteringEdgeID]
	var delta F
	if newRoot == enteringEdge.From {
		delta = st.reducedCost(enteringEdge)
	} else {
		delta = -st.reducedCost(enteringEdge)
	}

	now = newRoot
	for now != none {
		st.nodes[now].potential += delta
		if now == st.lastDescendentDFT[newRoot] {
			break
		}
		now = st.nextNodeDFT[now]
	}
}

// DetachTree removes leavingEdgeID from the tree, splitting off the
// subtree rooted at subTreeRoot.
func (st *SpanningTreeStructure[F]) DetachTree(subTreeRoot, leavingEdgeID int) {
	leavingEdge := &st.edges[leavingEdgeID]
	if leavingEdge.isLower() {
		leavingEdge.State = Lower
	} else {
		leavingEdge.State = Upper
	}

	st.nodes[subTreeRoot].parent = none
	st.nodes[subTreeRoot].parentEdgeID = none

	prevT := st.prevNodeDFT[subTreeRoot]
	lastT := st.lastDescendentDFT[subTreeRoot]
	nextLastT := st.nextNodeDFT[lastT]
	st.nextNodeDFT[prevT] = nextLastT
	st.prevNodeDFT[nextLastT] = prevT
	st.nextNodeDFT[lastT] = subTreeRoot
	st.prevNodeDFT[subTreeRoot] = lastT

	subTreeSize := st.numSuccessors[subTreeRoot]
	now := leavingEdge.oppositeSide(subTreeRoot)
	for now != none {
		st.numSuccessors[now] -= subTreeSize
		if st.lastDescendentDFT[now] == lastT {
			st.lastDescendentDFT[now] = prevT
		}
		now = st.nodes[now].parent
	}
}

// AttachTree attaches the subtree rooted at subTreeRoot under attachNode
// via enteringEdgeID.
func (st *SpanningTreeStructure[F]) AttachTree(attachNode, subTreeRoot, enteringEdgeID int) {
	st.edges[enteringEdgeID].State = Tree

	p, q := attachNode, subTreeRoot
	st.nodes[q].parent = p
	st.nodes[q].parentEdgeID = enteringEdgeID

	lastP := st.lastDescendentDFT[attachNode]
	nextLastP := st.nextNodeDFT[lastP]
	lastQ := st.lastDescendentDFT[q]
	st.nextNodeDFT[lastP] = q
	st.prevNodeDFT[q] = lastP
	st.prevNodeDFT[nextLastP] = lastQ
	st.nextNodeDFT[lastQ] = nextLastP

	subTreeSize := st.numSuccessors[q]
	now := attachNode
	for now != none {
		st.numSuccessors[now] += subTreeSize
		if st.lastDescendentDFT[now] == lastP {
			st.lastDescendentDFT[now] = lastQ
		}
		now = st.nodes[now].parent
	}
}

type distHeapItem[F constraints.Signed] struct {
	dist F
	node int
}
type distHeap[F constraints.Signed] []distHeapItem[F]

func (h distHeap[F]) Len() int            { return len(h) }
func (h distHeap[F]) Less(i, j int) bool  { return h[i].dist < h[j].dist }
func (h distHeap[F]) Swap(i, j int)       { h[i], h[j] = h[j], h[i] }
func (h *distHeap[F]) Push(x interface{}) { *h = append(*h, x.(distHeapItem[F])) }
func (h *distHeap[F]) Pop() interface{} {
	old := *h
	n := len(old)
	item := old[n-1]
	*h = old[:n-1]
	return item
}

// ShortestPath runs Dijkstra from source over every edge (all costs are
// non-negative in the normalised internal form), returning per-node
// distance and predecessor edge id (none if unreached).
func (st *SpanningTreeStructure[F]) ShortestPath(source int) (dist []F, prevEdgeID []int) {
	adjacency := make([][]int, st.numNodes)
	for edgeID, e := range st.edges {
		adjacency[e.From] = append(adjacency[e.From], edgeID)
	}

	var totalCost F
	for _, e := range st.edges {
		totalCost += e.Cost
	}

	dist = make([]F, st.numNodes)
	for i := range dist {
		dist[i] = totalCost + 1
	}
	prevEdgeID = make([]int, st.numNodes)
	for i := range prevEdgeID {
		prevEdgeID[i] = none
	}
	seen := make([]bool, st.numNodes)

	h := &distHeap[F]{{dist: 0, node: source}}
	dist[source] = 0

	for h.Len() > 0 {
		top := heap.Pop(h).(distHeapItem[F])
		u := top.node
		if seen[u] {
			continue
		}
		seen[u] = true

		for _, edgeID := range adjacency[u] {
			e := &st.edges[edgeID]
			newDist := top.dist + e.Cost
			if newDist < dist[e.To] {
				dist[e.To] = newDist
				prevEdgeID[e.To] = edgeID
				heap.Push(h, distHeapItem[F]{dist: newDist, node: e.To})
			}
		}
	}
	return dist, prevEdgeID
}

// SatisfyConstraints reports whether every edge's flow lies in
// [0, upper] and every node's excess is zero — primal feasibility.
func (st *SpanningTreeStructure[F]) SatisfyConstraints() bool {
	for _, e := range st.edges {
		if e.Flow < 0 || e.Flow > e.Upper {
			return false
		}
	}
	for _, e := range st.excesses {
		if e != 0 {
			return false
		}
	}
	return true
}

// ValidateNumSuccessors recomputes every node's subtree size from the
// depth-first thread and checks it against numSuccessors. Called after
// every pivot by Primal and Dual, mirroring the original's
// debug_assert!(validate_num_successors(...)) call sites.
func (st *SpanningTreeStructure[F]) ValidateNumSuccessors(root int) bool {
	var order []int
	now := root
	for {
		order = append(order, now)
		now = st.nextNodeDFT[now]
		if now == root {
			break
		}
	}

	count := make([]int, st.numNodes)
	for i := range count {
		count[i] = 1
	}
	for i := len(order) - 1; i >= 0; i-- {
		u := order[i]
		if count[u] != st.numSuccessors[u] {
			return false
		}
		if st.nodes[u].parent != none {
			count[st.nodes[u].parent] += count[u]
		}
	}
	return true
}

// SatisfyOptimalityConditions reports whether every edge's basis state
// is consistent with its reduced cost — dual feasibility.
func (st *SpanningTreeStructure[F]) SatisfyOptimalityConditions() bool {
	for i := range st.edges {
		e := &st.edges[i]
		switch e.State {
		case Tree:
			if st.reducedCost(e) != 0 {
				return false
			}
		case Lower:
			if e.Upper != 0 && st.reducedCost(e) < 0 {
				return false
			}
		case Upper:
			if e.Upper != 0 && st.reducedCost(e) > 0 {
				return false
			}
		}
	}
	return true
}
