// Package creditflow computes maximum (or bounded) flow through a directed,
// capacitated credit graph: accounts are nodes, edges carry transferable
// token balances bounded by mutual trust limits, and the goal is to route a
// requested amount from a source account to a sink account as a minimal,
// validly ordered sequence of elementary transfers.
//
// 🚀 What is creditflow?
//
//	A pure-Go library that brings together:
//		• Core primitives: the capacitated credit graph with exact big-integer
//		  capacities, residual mutation and deterministic adjacency views
//		• Path search: plain and bidirectional breadth-first strategies behind
//		  one pluggable interface
//		• Flow algorithms: direct augmentation (Ford–Fulkerson style) and
//		  capacity scaling, both observable step by step
//		• Post-processing: pruning, transfer-count bounding, chain
//		  simplification and dependency-safe ordering of the final transfers
//
// ✨ Why choose creditflow?
//
//   - Exact arithmetic – capacities are arbitrary-precision, never negative
//   - Deterministic – sorted adjacency and stable tie-breaks everywhere
//   - Rock-solid guarantees – R/W locks on the graph, private residual copies
//   - Extensible – attach an Observer to record every augmentation step
//
// Under the hood, everything is organized under five subpackages:
//
//	core/      — Account, Token, capacitated Graph & residual primitives
//	search/    — augmenting-path strategies (BFS, bidirectional BFS)
//	flow/      — max-flow orchestration: augmentation & capacity scaling
//	transfer/  — prune, bound, extract, simplify and order transfers
//	netconfig/ — TOML loading of trust-limit and balance records
//
// Quick ASCII example:
//
//	    S───A
//	    │   │
//	    B───T
//
//	two disjoint credit routes from source S to sink T; flow splits across
//	both and comes back out as an ordered transfer list.
//
//	go get github.com/katalvlaran/creditflow
package creditflow
