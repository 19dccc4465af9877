package maxflow_test

import (
	"fmt"

	"github.com/MitI-7/network-algorithms-back/maxflow"
)

// ExampleDinic demonstrates the diamond network from the package's seed
// scenarios: max flow from node 0 to node 3 is 3.
func ExampleDinic() {
	g := maxflow.NewGraph[int]()
	g.AddNodes(4)
	g.AddDirectedEdge(0, 1, 2)
	g.AddDirectedEdge(0, 2, 1)
	g.AddDirectedEdge(1, 2, 1)
	g.AddDirectedEdge(1, 3, 1)
	g.AddDirectedEdge(2, 3, 2)

	solver := maxflow.NewDinic[int]()
	solver.Solve(0, 3, g)

	fmt.Println(g.MaximumFlow(0))
	// Output:
	// 3
}
