package maxflow_test

import (
	"math/rand"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/MitI-7/network-algorithms-back/maxflow"
	"github.com/MitI-7/network-algorithms-back/status"
)

// solver is the shape every maximum-flow algorithm in this package
// implements; used to drive the same scenario through all six.
type solver interface {
	Solve(source, sink int, graph *maxflow.Graph[int]) status.Status
}

func allSolvers() map[string]solver {
	return map[string]solver{
		"FordFulkerson":          maxflow.NewFordFulkerson[int](),
		"EdmondsKarp":            maxflow.NewEdmondsKarp[int](),
		"Dinic":                  maxflow.NewDinic[int](),
		"CapacityScaling":        maxflow.NewCapacityScaling[int](),
		"ShortestAugmentingPath": maxflow.NewShortestAugmentingPath[int](),
		"PushRelabelFIFO":        maxflow.NewPushRelabelFIFO[int](0),
	}
}

type edgeSpec struct {
	from, to int
	upper    int
}

func buildGraph(numNodes int, edges []edgeSpec) *maxflow.Graph[int] {
	g := maxflow.NewGraph[int]()
	g.AddNodes(numNodes)
	for _, e := range edges {
		if _, err := g.AddDirectedEdge(e.from, e.to, e.upper); err != nil {
			panic(err)
		}
	}
	return g
}

// TestSeedScenarioS1Diamond is the spec's S1 seed scenario.
func TestSeedScenarioS1Diamond(t *testing.T) {
	edges := []edgeSpec{
		{0, 1, 2},
		{0, 2, 1},
		{1, 2, 1},
		{1, 3, 1},
		{2, 3, 2},
	}
	for name, s := range allSolvers() {
		t.Run(name, func(t *testing.T) {
			g := buildGraph(4, edges)
			st := s.Solve(0, 3, g)
			require.Equal(t, status.Optimal, st)
			require.Equal(t, 3, g.MaximumFlow(0))
			assertConservation(t, g, 0, 3)
			assertCapacity(t, g)
		})
	}
}

// TestSeedScenarioS5SaturatedBottleneck is the spec's S5 seed scenario.
func TestSeedScenarioS5SaturatedBottleneck(t *testing.T) {
	edges := []edgeSpec{
		{0, 1, 10},
		{1, 2, 1},
		{2, 3, 10},
	}
	for name, s := range allSolvers() {
		t.Run(name, func(t *testing.T) {
			g := buildGraph(4, edges)
			st := s.Solve(0, 3, g)
			require.Equal(t, status.Optimal, st)
			require.Equal(t, 1, g.MaximumFlow(0))
		})
	}
}

func assertConservation(t *testing.T, g *maxflow.Graph[int], source, sink int) {
	t.Helper()
	outFlow := make(map[int]int)
	inFlow := make(map[int]int)
	for i := 0; i < g.NumEdges(); i++ {
		e, err := g.GetEdge(i)
		require.NoError(t, err)
		outFlow[e.From] += e.Flow
		inFlow[e.To] += e.Flow
	}
	for u := 0; u < g.NumNodes(); u++ {
		if u == source || u == sink {
			continue
		}
		require.Equal(t, inFlow[u], outFlow[u], "conservation violated at node %d", u)
	}
}

func assertCapacity(t *testing.T, g *maxflow.Graph[int]) {
	t.Helper()
	for i := 0; i < g.NumEdges(); i++ {
		e, err := g.GetEdge(i)
		require.NoError(t, err)
		require.GreaterOrEqual(t, e.Flow, 0)
		require.LessOrEqual(t, e.Flow, e.Upper)
	}
}

// TestCrossAlgorithmEquivalence generates random small graphs and checks
// that all six solvers agree on maximum_flow(source), matching spec
// property 4.
func TestCrossAlgorithmEquivalence(t *testing.T) {
	rng := rand.New(rand.NewSource(1))

	for trial := 0; trial < 30; trial++ {
		numNodes := 2 + rng.Intn(18) // 2..=19
		numEdges := rng.Intn(40)
		edges := make([]edgeSpec, 0, numEdges)
		for i := 0; i < numEdges; i++ {
			from := rng.Intn(numNodes)
			to := rng.Intn(numNodes)
			if from == to {
				continue
			}
			edges = append(edges, edgeSpec{from, to, rng.Intn(11)})
		}
		source, sink := 0, numNodes-1
		if source == sink {
			continue
		}

		var want int
		first := true
		for name, s := range allSolvers() {
			g := buildGraph(numNodes, edges)
			st := s.Solve(source, sink, g)
			require.Equal(t, status.Optimal, st)
			got := g.MaximumFlow(source)
			if first {
				want = got
				first = false
			} else {
				require.Equalf(t, want, got, "trial %d: %s disagreed", trial, name)
			}
			assertConservation(t, g, source, sink)
			assertCapacity(t, g)
		}
	}
}

// TestIdempotence checks that solving the same graph twice with the same
// algorithm yields the same result.
func TestIdempotence(t *testing.T) {
	edges := []edgeSpec{
		{0, 1, 2}, {0, 2, 1}, {1, 2, 1}, {1, 3, 1}, {2, 3, 2},
	}
	g := buildGraph(4, edges)
	s := maxflow.NewDinic[int]()
	s.Solve(0, 3, g)
	first := g.MaximumFlow(0)
	s2 := maxflow.NewDinic[int]()
	s2.Solve(0, 3, g)
	require.Equal(t, first, g.MaximumFlow(0))
}

func TestPushRelabelFIFOBadInput(t *testing.T) {
	g := maxflow.NewGraph[int]()
	g.AddNodes(2)
	g.AddDirectedEdge(0, 1, 5)

	s := maxflow.NewPushRelabelFIFO[int](0)
	require.Equal(t, status.BadInput, s.Solve(0, 0, g))
	require.Equal(t, status.BadInput, s.Solve(5, 1, g))
}

func TestPushRelabelFIFOWithGlobalRelabeling(t *testing.T) {
	edges := []edgeSpec{
		{0, 1, 2}, {0, 2, 1}, {1, 2, 1}, {1, 3, 1}, {2, 3, 2},
	}
	g := buildGraph(4, edges)
	s := maxflow.NewPushRelabelFIFO[int](6)
	st := s.Solve(0, 3, g)
	require.Equal(t, status.Optimal, st)
	require.Equal(t, 3, g.MaximumFlow(0))
}
