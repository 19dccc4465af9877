// Package maxflow implements exact maximum-flow algorithms on directed
// graphs with integral edge capacities.
//
// # Overview
//
// A caller builds a [Graph], adds nodes and directed edges with per-edge
// upper bounds, then hands it to one of six solvers:
//
//   - [FordFulkerson]           — DFS augmenting paths, O(E · maxflow)
//   - [EdmondsKarp]             — BFS shortest augmenting paths, O(V · E²)
//   - [Dinic]                   — layered blocking-flow, O(V² · E)
//   - [CapacityScaling]         — Δ-scaled Dinic-style augmentation, O(E² · log(maxcap))
//   - [ShortestAugmentingPath]  — persistent distance labels with retreat, O(V² · E)
//   - [PushRelabelFIFO]         — FIFO push-relabel with gap heuristic and
//     optional global relabeling, O(V³)
//
// All six solvers are cross-algorithm equivalent: run on the same Graph
// (a fresh one per solver — a Graph is consumed by exactly one Solve
// call's worth of mutation), they report the same [status.Status] and the
// same value from [Graph.MaximumFlow].
//
// # Residual representation
//
// Internally every solver builds a [csr] (compressed sparse row) residual
// graph: each user edge becomes a forward/reverse arc pair sharing a
// single upper bound, so pushing flow on one arc is a pair of O(1)
// updates. The csr type is unexported; it is solver scratch memory, never
// exposed to callers.
//
// # Numeric type
//
// Every exported type is parameterised over a signed integer type
// constrained by golang.org/x/exp/constraints.Signed. Capacities, flow
// values, and the aggregate maximum-flow value all share this type
// parameter; pick int, int32, or int64 depending on the magnitude of the
// instance.
package maxflow
