// Package mincostflow implements exact minimum-cost-flow algorithms on
// directed graphs with per-node supplies/demands and per-edge lower/upper
// capacity bounds and costs.
//
// # Overview
//
// A caller builds a [Graph]: add nodes, set supplies and demands with
// AddSupply/AddDemand, add directed edges with AddDirectedEdge(from, to,
// lower, upper, cost). Internally the graph normalises every edge so the
// solver-facing invariant "all lower bounds zero, all costs
// non-negative" holds: a non-zero lower bound is subtracted out and
// folded into the endpoints' supplies, and a negative-cost edge is
// stored reversed with a flipped sign; [Graph.GetEdge] always restores
// the original orientation and bounds.
//
// Five non-simplex solvers are provided here:
//
//   - [SuccessiveShortestPath] — repeated reduced-cost Dijkstra + augment
//   - [PrimalDual]             — super-source/sink + alternating dual/primal steps
//   - [CycleCanceling]         — Bellman-Ford negative-cycle cancellation
//   - [OutOfKilter]            — per-arc kilter-number driven cycle cancellation
//   - [CostScalingPushRelabel] — epsilon-scaling push-relabel
//
// The three Network Simplex variants (Primal, Dual, Parametric) live in
// the sibling simplex package, which imports this one for the Graph type
// and its network-extension helpers; the spanning-tree structure they
// pivot over lives in simplex itself.
//
// Every solver first rejects an unbalanced instance (status.Unbalanced)
// before doing any work, matching [Graph.IsUnbalanced]. All five
// non-simplex solvers are cross-algorithm equivalent: run on equivalent
// instances they report the same status.Status and the same value from
// [Graph.MinimumCost].
package mincostflow
