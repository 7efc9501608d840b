// Package search provides augmenting-path strategies over a capacitated
// credit graph, behind one Finder interface with a closed set of variants:
//
//   - BreadthFirst
//
//   - Method: level-order exploration of the outgoing views, tracking the
//     bottleneck flow achievable from the source per discovered node.
//
//   - Guarantee: returns a path with the minimum number of hops among all
//     paths meeting the capacity floor.
//
//   - BidirectionalBreadthFirst
//
//   - Method: two simultaneous frontier expansions, forward from the
//     source and backward from the sink over incoming views, alternating one
//     level per side and meeting in the middle.
//
//   - Guarantee: same shortest-hop result, typically far fewer visited
//     nodes when source and sink are distant.
//
// Both strategies accept a flow ceiling, an optional hop bound, and an
// optional minimum per-edge capacity (default 1), always terminate on finite
// graphs, and are deterministic for identical graph state: neighbor order
// follows the graph's capacity-sorted adjacency views.
//
// A "no path" outcome is a legitimate terminal signal: zero flow and an
// empty path, not an error. Errors are reserved for malformed input.
package search
