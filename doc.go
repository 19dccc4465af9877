// Package networkalgorithms is the root of a small, generics-based
// library of exact combinatorial algorithms for network flow problems.
//
// It brings together three independent solver packages, each usable on
// its own:
//
//	maxflow/     — Maximum Flow: Ford-Fulkerson, Edmonds-Karp, Dinic,
//	               Capacity Scaling, Shortest Augmenting Path, Push-Relabel (FIFO)
//	mincostflow/ — Minimum-Cost Flow: Successive Shortest Path, Primal-Dual,
//	               Cycle Canceling, Out-of-Kilter, Cost-Scaling Push-Relabel
//	simplex/     — Minimum-Cost Flow via Network Simplex: Primal, Dual and
//	               Parametric variants, each pluggable with five pivot rules
//
// Every solver is parameterized over a signed integer flow type via
// golang.org/x/exp/constraints.Signed, so the same code runs for int,
// int32, or int64 networks without casting at the call site.
//
// Each package owns its own graph type and its own residual/spanning-tree
// representation: there is no shared mutable graph across packages,
// because a graph under active flow pivots (pushing along a residual
// arc, detaching and re-rooting a spanning-tree subtree) has different
// invariants than a graph meant for general traversal. A status package
// reports solver outcomes (NotSolved, BadInput, Unbalanced, Infeasible,
// Optimal) uniformly across all three.
//
//	go get github.com/MitI-7/network-algorithms-back
package networkalgorithms
