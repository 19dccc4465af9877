package maxflow

import "golang.org/x/exp/constraints"

// insideEdge is one arc of the paired residual representation: forward
// arcs start with flow 0, their paired reverse arc starts with flow ==
// upper, so pushing delta on one side and subtracting it from the other
// keeps flow[e] + flow[rev(e)] == upper(e) at all times.
type insideEdge[F constraints.Signed] struct {
	to    int
	flow  F
	upper F
	rev   int
}

func (e *insideEdge[F]) residualCapacity() F { return e.upper - e.flow }

// csr is the compressed sparse row residual graph shared by every
// maximum-flow solver. It is solver scratch state: built once per Solve
// call from a Graph, mutated in place, and never exposed to callers.
type csr[F constraints.Signed] struct {
	numNodes int
	numEdges int

	edgeIndexToInsideEdgeIndex []int
	start                      []int
	insideEdgeList             []insideEdge[F]
	distances                  []int // distance from u to sink in the residual graph; numNodes means unreachable

	queue []int
}

// build constructs the paired arc list from graph in O(N+M): a degree
// counting pass, a prefix sum over start, then a single pass placing each
// edge's forward/reverse pair at their precomputed slots.
func (c *csr[F]) build(g *Graph[F]) {
	c.numNodes = g.NumNodes()
	c.numEdges = g.NumEdges()

	c.edgeIndexToInsideEdgeIndex = make([]int, c.numEdges)
	c.start = make([]int, c.numNodes+1)
	c.insideEdgeList = make([]insideEdge[F], 2*c.numEdges)
	c.distances = make([]int, c.numNodes)
	for i := range c.distances {
		c.distances[i] = c.numNodes
	}

	degree := make([]int, c.numNodes)
	for _, e := range g.edges {
		degree[e.To]++
		degree[e.From]++
	}

	for i := 1; i <= c.numNodes; i++ {
		c.start[i] = c.start[i-1] + degree[i-1]
	}

	counter := make([]int, c.numNodes)
	for edgeIndex, e := range g.edges {
		u, v := e.From, e.To

		insideU := c.start[u] + counter[u]
		counter[u]++
		insideV := c.start[v] + counter[v]
		counter[v]++

		c.edgeIndexToInsideEdgeIndex[edgeIndex] = insideU

		c.insideEdgeList[insideU] = insideEdge[F]{to: v, flow: 0, upper: e.Upper, rev: insideV}
		c.insideEdgeList[insideV] = insideEdge[F]{to: u, flow: e.Upper, upper: e.Upper, rev: insideU}
	}
}

// setFlow writes each forward arc's flow back into the user graph.
func (c *csr[F]) setFlow(g *Graph[F]) {
	for edgeID := 0; edgeID < g.NumEdges(); edgeID++ {
		i := c.edgeIndexToInsideEdgeIndex[edgeID]
		g.edges[edgeID].Flow = c.insideEdgeList[i].flow
	}
}

func (c *csr[F]) neighbors(u int) []insideEdge[F] {
	return c.insideEdgeList[c.start[u]:c.start[u+1]]
}

// pushFlow routes delta across one arc and its paired reverse.
func (c *csr[F]) pushFlow(insideEdgeIndex int, flow F) {
	rev := c.insideEdgeList[insideEdgeIndex].rev
	c.insideEdgeList[insideEdgeIndex].flow += flow
	c.insideEdgeList[rev].flow -= flow
}

// updateDistances runs a reverse BFS from sink: an arc e is usable in
// this reverse walk when its paired reverse has positive flow (i.e. e
// itself has forward residual capacity). Unreached nodes keep distance
// numNodes.
func (c *csr[F]) updateDistances(source, sink int) {
	c.queue = c.queue[:0]
	c.queue = append(c.queue, sink)
	for i := range c.distances {
		c.distances[i] = c.numNodes
	}
	c.distances[sink] = 0

	for len(c.queue) > 0 {
		v := c.queue[0]
		c.queue = c.queue[1:]
		for _, e := range c.insideEdgeList[c.start[v]:c.start[v+1]] {
			// e.to -> v is usable when e's paired reverse arc still has
			// residual capacity, i.e. e carries positive flow.
			if e.flow > 0 && c.distances[e.to] == c.numNodes {
				c.distances[e.to] = c.distances[v] + 1
				if e.to != source {
					c.queue = append(c.queue, e.to)
				}
			}
		}
	}
}

// isAdmissibleEdge reports whether arc i (starting at from) has positive
// residual capacity and lies on a shortest path to the sink.
func (c *csr[F]) isAdmissibleEdge(from, i int) bool {
	e := &c.insideEdgeList[i]
	return e.residualCapacity() > 0 && c.distances[from] == c.distances[e.to]+1
}
