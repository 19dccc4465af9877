package simplex_test

import (
	"math/rand"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/MitI-7/network-algorithms-back/mincostflow"
	"github.com/MitI-7/network-algorithms-back/simplex"
	"github.com/MitI-7/network-algorithms-back/status"
)

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

func pivotRules(numEdges int) map[string]simplex.PivotRule[int] {
	return map[string]simplex.PivotRule[int]{
		"BestEligibleArc":       simplex.NewBestEligibleArc[int](numEdges),
		"FirstEligibleArc":      simplex.NewFirstEligibleArc[int](numEdges),
		"BlockSearch":           simplex.NewBlockSearch[int](numEdges),
		"CandidateList":         simplex.NewCandidateList[int](numEdges),
		"AlteringCandidateList": simplex.NewAlteringCandidateList[int](numEdges),
	}
}

func TestPrimalSeedScenarios(t *testing.T) {
	diamondSupplies := []int{2, 0, 0, -2}
	diamondEdges := []edgeSpec{
		{0, 1, 0, 2, 1},
		{0, 2, 0, 1, 2},
		{1, 2, 0, 1, 1},
		{1, 3, 0, 1, 3},
		{2, 3, 0, 2, 1},
	}

	for name, pivot := range pivotRules(len(diamondEdges)) {
		t.Run("S2Diamond/"+name, func(t *testing.T) {
			g := buildGraph(4, diamondSupplies, diamondEdges)
			st := simplex.NewPrimal[int]().Solve(pivot, g)
			require.Equal(t, status.Optimal, st)
			require.Equal(t, 9, g.MinimumCost())
		})
	}

	t.Run("S3Infeasible", func(t *testing.T) {
		g := buildGraph(3, []int{5, 0, -5}, []edgeSpec{{0, 1, 0, 3, 1}})
		pivot := simplex.NewBlockSearch[int](g.NumEdges())
		require.Equal(t, status.Infeasible, simplex.NewPrimal[int]().Solve(pivot, g))
	})

	t.Run("S4Unbalanced", func(t *testing.T) {
		g := buildGraph(2, []int{1, 0}, []edgeSpec{{0, 1, 0, 5, 1}})
		pivot := simplex.NewBlockSearch[int](g.NumEdges())
		require.Equal(t, status.Unbalanced, simplex.NewPrimal[int]().Solve(pivot, g))
	})

	t.Run("S6NegativeCost", func(t *testing.T) {
		supplies := []int{1, 0, -1}
		edges := []edgeSpec{{0, 1, 0, 1, 5}, {0, 2, 0, 1, -3}}
		g := buildGraph(3, supplies, edges)
		pivot := simplex.NewBlockSearch[int](g.NumEdges())
		st := simplex.NewPrimal[int]().Solve(pivot, g)
		require.Equal(t, status.Optimal, st)
		require.Equal(t, -3, g.MinimumCost())
	})
}

func TestDualSeedScenarios(t *testing.T) {
	diamondSupplies := []int{2, 0, 0, -2}
	diamondEdges := []edgeSpec{
		{0, 1, 0, 2, 1},
		{0, 2, 0, 1, 2},
		{1, 2, 0, 1, 1},
		{1, 3, 0, 1, 3},
		{2, 3, 0, 2, 1},
	}

	for name, pivot := range pivotRules(len(diamondEdges)) {
		t.Run("S2Diamond/"+name, func(t *testing.T) {
			g := buildGraph(4, diamondSupplies, diamondEdges)
			st := simplex.NewDual[int]().Solve(pivot, g)
			require.Equal(t, status.Optimal, st)
			require.Equal(t, 9, g.MinimumCost())
		})
	}

	t.Run("S4Unbalanced", func(t *testing.T) {
		g := buildGraph(2, []int{1, 0}, []edgeSpec{{0, 1, 0, 5, 1}})
		pivot := simplex.NewBlockSearch[int](g.NumEdges())
		require.Equal(t, status.Unbalanced, simplex.NewDual[int]().Solve(pivot, g))
	})

	t.Run("S6NegativeCost", func(t *testing.T) {
		supplies := []int{1, 0, -1}
		edges := []edgeSpec{{0, 1, 0, 1, 5}, {0, 2, 0, 1, -3}}
		g := buildGraph(3, supplies, edges)
		pivot := simplex.NewBlockSearch[int](g.NumEdges())
		st := simplex.NewDual[int]().Solve(pivot, g)
		require.Equal(t, status.Optimal, st)
		require.Equal(t, -3, g.MinimumCost())
	})
}

func TestParametricSeedScenarios(t *testing.T) {
	t.Run("S2Diamond", func(t *testing.T) {
		supplies := []int{2, 0, 0, -2}
		edges := []edgeSpec{
			{0, 1, 0, 2, 1},
			{0, 2, 0, 1, 2},
			{1, 2, 0, 1, 1},
			{1, 3, 0, 1, 3},
			{2, 3, 0, 2, 1},
		}
		g := buildGraph(4, supplies, edges)
		st := simplex.NewParametric[int]().Solve(g)
		require.Equal(t, status.Optimal, st)
		require.Equal(t, 9, g.MinimumCost())
	})

	t.Run("S4Unbalanced", func(t *testing.T) {
		g := buildGraph(2, []int{1, 0}, []edgeSpec{{0, 1, 0, 5, 1}})
		require.Equal(t, status.Unbalanced, simplex.NewParametric[int]().Solve(g))
	})

	t.Run("S6NegativeCost", func(t *testing.T) {
		supplies := []int{1, 0, -1}
		edges := []edgeSpec{{0, 1, 0, 1, 5}, {0, 2, 0, 1, -3}}
		g := buildGraph(3, supplies, edges)
		st := simplex.NewParametric[int]().Solve(g)
		require.Equal(t, status.Optimal, st)
		require.Equal(t, -3, g.MinimumCost())
	})
}

// TestCrossAlgorithmEquivalence checks all three Network Simplex
// variants (each pivot rule, for Primal/Dual) agree with each other and
// with mincostflow.SuccessiveShortestPath on random small balanced
// instances, matching spec property 8.
func TestCrossAlgorithmEquivalence(t *testing.T) {
	rng := rand.New(rand.NewSource(7))

	for trial := 0; trial < 15; trial++ {
		numNodes := 3 + rng.Intn(5) // 3..=7
		supplies := make([]int, numNodes)
		total := 0
		for u := 0; u < numNodes-1; u++ {
			s := rng.Intn(5) - 2
			supplies[u] = s
			total += s
		}
		supplies[numNodes-1] = -total

		numEdges := 4 + rng.Intn(8)
		edges := make([]edgeSpec, 0, numEdges)
		for i := 0; i < numEdges; i++ {
			from := rng.Intn(numNodes)
			to := rng.Intn(numNodes)
			if from == to {
				continue
			}
			edges = append(edges, edgeSpec{from, to, 0, rng.Intn(6) + 1, rng.Intn(9)})
		}

		reference := buildGraph(numNodes, supplies, edges)
		wantStatus := mincostflow.NewSuccessiveShortestPath[int]().Solve(reference)
		var wantCost int
		if wantStatus == status.Optimal {
			wantCost = reference.MinimumCost()
		}

		check := func(name string, st status.Status, g *mincostflow.Graph[int]) {
			require.Equalf(t, wantStatus, st, "trial %d: %s disagreed on status", trial, name)
			if wantStatus == status.Optimal {
				require.Equalf(t, wantCost, g.MinimumCost(), "trial %d: %s disagreed on cost", trial, name)
			}
		}

		for name, pivot := range pivotRules(len(edges)) {
			g := buildGraph(numNodes, supplies, edges)
			st := simplex.NewPrimal[int]().Solve(pivot, g)
			check("Primal/"+name, st, g)
		}
		for name, pivot := range pivotRules(len(edges)) {
			g := buildGraph(numNodes, supplies, edges)
			st := simplex.NewDual[int]().Solve(pivot, g)
			check("Dual/"+name, st, g)
		}
		g := buildGraph(numNodes, supplies, edges)
		st := simplex.NewParametric[int]().Solve(g)
		check("Parametric", st, g)
	}
}
