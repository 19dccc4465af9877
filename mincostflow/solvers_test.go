package mincostflow_test

import (
	"math/rand"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/MitI-7/network-algorithms-back/mincostflow"
	"github.com/MitI-7/network-algorithms-back/status"
)

// solver is the shape every minimum-cost-flow algorithm in this package
// implements (excluding the Network Simplex variants, which live in the
// sibling simplex package); used to drive the same scenario through all
// five.
type solver interface {
	Solve(graph *mincostflow.Graph[int]) status.Status
}

func allSolvers() map[string]solver {
	return map[string]solver{
		"SuccessiveShortestPath": mincostflow.NewSuccessiveShortestPath[int](),
		"PrimalDual":             mincostflow.NewPrimalDual[int](),
		"CycleCanceling":         mincostflow.NewCycleCanceling[int](),
		"OutOfKilter":            mincostflow.NewOutOfKilter[int](),
		"CostScalingPushRelabel": mincostflow.NewCostScalingPushRelabel[int](),
	}
}

type edgeSpec struct {
	from, to           int
	lower, upper, cost int
}

func buildGraph(numNodes int, supplies []int, edges []edgeSpec) *mincostflow.Graph[int] {
	g := mincostflow.NewGraph[int]()
	g.AddNodes(numNodes)
	for u, b := range supplies {
		if b > 0 {
			g.AddSupply(u, b)
		} else if b < 0 {
			g.AddDemand(u, -b)
		}
	}
	for _, e := range edges {
		if _, err := g.AddDirectedEdge(e.from, e.to, e.lower, e.upper, e.cost); err != nil {
			panic(err)
		}
	}
	return g
}

// TestSeedScenarioS2Diamond is the spec's S2 seed scenario.
func TestSeedScenarioS2Diamond(t *testing.T) {
	supplies := []int{2, 0, 0, -2}
	edges := []edgeSpec{
		{0, 1, 0, 2, 1},
		{0, 2, 0, 1, 2},
		{1, 2, 0, 1, 1},
		{1, 3, 0, 1, 3},
		{2, 3, 0, 2, 1},
	}
	wantFlows := []int{1, 1, 0, 1, 2}

	for name, s := range allSolvers() {
		t.Run(name, func(t *testing.T) {
			g := buildGraph(4, supplies, edges)
			st := s.Solve(g)
			require.Equal(t, status.Optimal, st)
			require.Equal(t, 9, g.MinimumCost())
			for i, want := range wantFlows {
				e, err := g.GetEdge(i)
				require.NoError(t, err)
				require.Equalf(t, want, e.Flow, "edge %d", i)
			}
		})
	}
}

// TestSeedScenarioS3Infeasible is the spec's S3 seed scenario.
func TestSeedScenarioS3Infeasible(t *testing.T) {
	supplies := []int{5, 0, -5}
	edges := []edgeSpec{{0, 1, 0, 3, 1}}

	for name, s := range allSolvers() {
		t.Run(name, func(t *testing.T) {
			g := buildGraph(3, supplies, edges)
			require.Equal(t, status.Infeasible, s.Solve(g))
		})
	}
}

// TestSeedScenarioS4Unbalanced is the spec's S4 seed scenario.
func TestSeedScenarioS4Unbalanced(t *testing.T) {
	supplies := []int{1, 0}
	edges := []edgeSpec{{0, 1, 0, 5, 1}}

	for name, s := range allSolvers() {
		t.Run(name, func(t *testing.T) {
			g := buildGraph(2, supplies, edges)
			require.Equal(t, status.Unbalanced, s.Solve(g))
		})
	}
}

// TestSeedScenarioS6NegativeCost is the spec's S6 seed scenario.
func TestSeedScenarioS6NegativeCost(t *testing.T) {
	supplies := []int{1, 0, -1}
	edges := []edgeSpec{
		{0, 1, 0, 1, 5},
		{0, 2, 0, 1, -3},
	}

	for name, s := range allSolvers() {
		t.Run(name, func(t *testing.T) {
			g := buildGraph(3, supplies, edges)
			st := s.Solve(g)
			require.Equal(t, status.Optimal, st)
			require.Equal(t, -3, g.MinimumCost())

			e, err := g.GetEdge(1)
			require.NoError(t, err)
			require.Equal(t, 1, e.Flow)
			require.Equal(t, 0, e.From)
			require.Equal(t, 2, e.To)
			require.Equal(t, -3, e.Cost)
		})
	}
}

func assertFlowBounds(t *testing.T, g *mincostflow.Graph[int]) {
	t.Helper()
	for i := 0; i < g.NumEdges(); i++ {
		e, err := g.GetEdge(i)
		require.NoError(t, err)
		require.GreaterOrEqual(t, e.Flow, e.Lower)
		require.LessOrEqual(t, e.Flow, e.Upper)
	}
}

// TestCrossAlgorithmEquivalence generates random small balanced
// instances and checks that all five non-simplex solvers agree on
// minimum_cost, matching spec property 8.
func TestCrossAlgorithmEquivalence(t *testing.T) {
	rng := rand.New(rand.NewSource(1))

	for trial := 0; trial < 20; trial++ {
		numNodes := 3 + rng.Intn(6) // 3..=8
		supplies := make([]int, numNodes)
		total := 0
		for u := 0; u < numNodes-1; u++ {
			s := rng.Intn(7) - 3
			supplies[u] = s
			total += s
		}
		supplies[numNodes-1] = -total

		numEdges := 4 + rng.Intn(10)
		edges := make([]edgeSpec, 0, numEdges)
		for i := 0; i < numEdges; i++ {
			from := rng.Intn(numNodes)
			to := rng.Intn(numNodes)
			if from == to {
				continue
			}
			edges = append(edges, edgeSpec{from, to, 0, rng.Intn(6) + 1, rng.Intn(11)})
		}
		// ensure feasibility: a fully-connected cycle of high-capacity
		// zero-extra-cost edges would overcomplicate this; instead skip
		// trials a solver reports infeasible/unbalanced on, as long as
		// every solver agrees on that too.
		var want int
		var wantStatus status.Status
		first := true
		for name, s := range allSolvers() {
			g := buildGraph(numNodes, supplies, edges)
			st := s.Solve(g)
			if first {
				wantStatus, first = st, false
				if st == status.Optimal {
					want = g.MinimumCost()
				}
				continue
			}
			require.Equalf(t, wantStatus, st, "trial %d: %s disagreed on status", trial, name)
			if wantStatus == status.Optimal {
				require.Equalf(t, want, g.MinimumCost(), "trial %d: %s disagreed on cost", trial, name)
				assertFlowBounds(t, g)
			}
		}
	}
}

func TestIdempotence(t *testing.T) {
	supplies := []int{2, 0, 0, -2}
	edges := []edgeSpec{
		{0, 1, 0, 2, 1},
		{0, 2, 0, 1, 2},
		{1, 2, 0, 1, 1},
		{1, 3, 0, 1, 3},
		{2, 3, 0, 2, 1},
	}
	g := buildGraph(4, supplies, edges)
	s := mincostflow.NewSuccessiveShortestPath[int]()
	s.Solve(g)
	first := g.MinimumCost()

	g2 := buildGraph(4, supplies, edges)
	s2 := mincostflow.NewSuccessiveShortestPath[int]()
	s2.Solve(g2)
	require.Equal(t, first, g2.MinimumCost())
}
