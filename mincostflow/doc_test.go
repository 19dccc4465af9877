package mincostflow_test

import (
	"fmt"

	"github.com/MitI-7/network-algorithms-back/mincostflow"
)

// ExampleSuccessiveShortestPath reproduces the diamond scenario from
// spec.md §8 (S2): a single unit of supply/demand imbalance of 2 routed
// across a 4-node diamond with mixed edge costs.
func ExampleSuccessiveShortestPath() {
	g := mincostflow.NewGraph[int]()
	g.AddNodes(4)
	g.AddSupply(0, 2)
	g.AddDemand(3, 2)
	g.AddDirectedEdge(0, 1, 0, 2, 1)
	g.AddDirectedEdge(0, 2, 0, 1, 2)
	g.AddDirectedEdge(1, 2, 0, 1, 1)
	g.AddDirectedEdge(1, 3, 0, 1, 3)
	g.AddDirectedEdge(2, 3, 0, 2, 1)

	s := mincostflow.NewSuccessiveShortestPath[int]()
	st := s.Solve(g)
	fmt.Println(st, g.MinimumCost())
	// Output: Optimal 9
}
