package simplex_test

import (
	"fmt"

	"github.com/MitI-7/network-algorithms-back/mincostflow"
	"github.com/MitI-7/network-algorithms-back/simplex"
)

// ExamplePrimal reproduces the diamond scenario from spec.md §8 (S2),
// pivoted with BlockSearch.
func ExamplePrimal() {
	g := mincostflow.NewGraph[int]()
	g.AddNodes(4)
	edgeIDs := make([]int, 5)
	edgeIDs[0], _ = g.AddDirectedEdge(0, 1, 0, 2, 1)
	edgeIDs[1], _ = g.AddDirectedEdge(0, 2, 0, 1, 2)
	edgeIDs[2], _ = g.AddDirectedEdge(1, 2, 0, 1, 1)
	edgeIDs[3], _ = g.AddDirectedEdge(1, 3, 0, 1, 3)
	edgeIDs[4], _ = g.AddDirectedEdge(2, 3, 0, 2, 1)

	g.AddSupply(0, 2)
	g.AddDemand(3, 2)

	pivot := simplex.NewBlockSearch[int](g.NumEdges())
	st := simplex.NewPrimal[int]().Solve(pivot, g)

	fmt.Println(st, g.MinimumCost())
	// Output: Optimal 9
}
