package mincostflow

import (
	"container/heap"

	"golang.org/x/exp/constraints"
)

type insideEdge[F constraints.Signed] struct {
	to    int
	flow  F
	upper F
	cost  F
	rev   int
}

func (e *insideEdge[F]) residualCapacity() F { return e.upper - e.flow }

// csr is the compressed sparse row residual graph shared by the
// non-simplex minimum-cost-flow solvers in this package: a paired
// forward/reverse arc list plus per-arc cost and per-node potential,
// scratch state rebuilt fresh by each Solve call.
type csr[F constraints.Signed] struct {
	numNodes int
	numEdges int

	edgeIndexToInsideEdgeIndex []int
	excesses                   []F
	potentials                 []F

	start          []int
	insideEdgeList []insideEdge[F]
}

func (c *csr[F]) build(g *Graph[F]) {
	if g.NumNodes() == 0 {
		return
	}

	c.numNodes = g.NumNodes()
	c.numEdges = g.NumEdges()
	c.excesses = g.Excesses()
	c.potentials = make([]F, c.numNodes)

	c.edgeIndexToInsideEdgeIndex = make([]int, c.numEdges)
	c.start = make([]int, c.numNodes+1)
	c.insideEdgeList = make([]insideEdge[F], 2*c.numEdges)

	degree := make([]int, c.numNodes)
	internal := g.InternalEdges()
	for _, e := range internal {
		degree[e.To]++
		degree[e.From]++
	}

	for i := 1; i <= c.numNodes; i++ {
		c.start[i] = c.start[i-1] + degree[i-1]
	}

	counter := make([]int, c.numNodes)
	for edgeIndex, e := range internal {
		u, v := e.From, e.To

		insideU := c.start[u] + counter[u]
		counter[u]++
		insideV := c.start[v] + counter[v]
		counter[v]++

		c.edgeIndexToInsideEdgeIndex[edgeIndex] = insideU

		c.insideEdgeList[insideU] = insideEdge[F]{to: v, flow: e.Flow, upper: e.Upper, cost: e.Cost, rev: insideV}
		c.insideEdgeList[insideV] = insideEdge[F]{to: u, flow: e.Upper - e.Flow, upper: e.Upper, cost: -e.Cost, rev: insideU}
	}
}

// setFlow writes the csr's final internal per-edge flow and per-node
// excess back into the graph.
func (c *csr[F]) setFlow(g *Graph[F]) {
	flows := make([]F, c.numEdges)
	for edgeID := 0; edgeID < c.numEdges; edgeID++ {
		i := c.edgeIndexToInsideEdgeIndex[edgeID]
		flows[edgeID] = c.insideEdgeList[i].flow
	}
	g.SetFlowsAndExcesses(flows, c.excesses)
}

func (c *csr[F]) neighbors(u int) []insideEdge[F] {
	return c.insideEdgeList[c.start[u]:c.start[u+1]]
}

// pushFlow routes flow across one arc and its pair, and moves the
// corresponding excess between u and the arc's far endpoint.
func (c *csr[F]) pushFlow(u, edgeID int, flow F) {
	rev := c.insideEdgeList[edgeID].rev
	to := c.insideEdgeList[edgeID].to
	c.insideEdgeList[edgeID].flow += flow
	c.insideEdgeList[rev].flow -= flow
	c.excesses[u] -= flow
	c.excesses[to] += flow
}

// reducedCost is cost(u->v) - pi(u) + pi(v) for the arc e leaving u.
func (c *csr[F]) reducedCost(u int, e *insideEdge[F]) F {
	return e.cost - c.potentials[u] + c.potentials[e.to]
}

func (c *csr[F]) reducedCostRev(u int, e *insideEdge[F]) F {
	return -(e.cost - c.potentials[u] + c.potentials[e.to])
}

// heap item for Dijkstra over reduced costs.
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

// dijkstraFromSource runs Dijkstra on reduced costs (non-negative given
// correct potentials) from s, returning per-node distance/predecessor
// arc (nil/none entries use ok=false and predEdge=-1 respectively).
func (c *csr[F]) dijkstraFromSource(s int) (dist []F, hasDist []bool, predEdge []int) {
	dist = make([]F, c.numNodes)
	hasDist = make([]bool, c.numNodes)
	predEdge = make([]int, c.numNodes)
	for i := range predEdge {
		predEdge[i] = -1
	}
	visited := make([]bool, c.numNodes)

	h := &distHeap[F]{{dist: 0, node: s}}
	dist[s] = 0
	hasDist[s] = true

	for h.Len() > 0 {
		top := heap.Pop(h).(distHeapItem[F])
		u := top.node
		if visited[u] {
			continue
		}
		visited[u] = true

		for edgeID := c.start[u]; edgeID < c.start[u+1]; edgeID++ {
			e := &c.insideEdgeList[edgeID]
			if e.residualCapacity() == 0 {
				continue
			}
			newDist := top.dist + c.reducedCost(u, e)
			if !hasDist[e.to] || dist[e.to] > newDist {
				dist[e.to] = newDist
				hasDist[e.to] = true
				predEdge[e.to] = edgeID
				heap.Push(h, distHeapItem[F]{dist: newDist, node: e.to})
			}
		}
	}
	return dist, hasDist, predEdge
}
