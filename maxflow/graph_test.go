package maxflow_test

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/MitI-7/network-algorithms-back/maxflow"
)

func TestGraphAddDirectedEdgeRejectsOutOfRangeNodes(t *testing.T) {
	g := maxflow.NewGraph[int]()
	g.AddNodes(2)

	_, err := g.AddDirectedEdge(0, 5, 10)
	require.ErrorIs(t, err, maxflow.ErrNodeOutOfRange)

	id, err := g.AddDirectedEdge(0, 1, 10)
	require.NoError(t, err)
	require.Equal(t, 0, id)
}

func TestGraphGetEdgeUnknownID(t *testing.T) {
	g := maxflow.NewGraph[int]()
	_, err := g.GetEdge(0)
	require.ErrorIs(t, err, maxflow.ErrEdgeNotFound)
}

func TestGraphMinimumCutNoEdges(t *testing.T) {
	g := maxflow.NewGraph[int]()
	g.AddNodes(3)
	require.Equal(t, []int{0}, g.MinimumCut(0))
}

func TestGraphMinimumCutAfterSaturation(t *testing.T) {
	// chain 0->1->2->3 with capacities 10,1,10: the bottleneck at 1->2
	// saturates, so nodes reachable from 0 in the residual graph are {0,1}.
	g := maxflow.NewGraph[int]()
	g.AddNodes(4)
	g.AddDirectedEdge(0, 1, 10)
	g.AddDirectedEdge(1, 2, 1)
	g.AddDirectedEdge(2, 3, 10)

	maxflow.NewDinic[int]().Solve(0, 3, g)

	cut := g.MinimumCut(0)
	require.ElementsMatch(t, []int{0, 1}, cut)
}
