// Package flow orchestrates max-flow computations over a capacitated credit
// graph: repeated augmenting-path search against a private residual copy,
// followed by the transfer post-processing pipeline that turns the raw
// used-edge set into an executable, bounded, ordered transfer list.
//
// Two algorithm variants are offered:
//
//   - Augmenting
//
//   - Method: classic repeated augmentation; search with a small fixed
//     minimum-capacity floor (the dust threshold), push the returned flow,
//     repeat until the target is reached or no path remains.
//
//   - Use when capacities are of similar magnitude.
//
//   - CapacityScaling
//
//   - Method: phase the search by a halving capacity threshold seeded from
//     the graph's maximum edge capacity, so high-capacity routes saturate
//     first and the total number of augmentations stays bounded by the
//     edge count times the number of scale halvings.
//
//   - Use on high-variance-capacity graphs.
//
// The working target is min(requested, EstimateMaxFlow), so neither variant
// chases an unreachable amount. "No flow achievable" is a valid outcome
// (zero flow and an empty transfer list), never an error; hard errors are
// reserved for malformed input and arithmetic that would corrupt the graph.
//
// Every accepted augmentation can be reported synchronously to an Observer
// (cumulative flow, path, path flow, residual snapshot). The observer is a
// pure side-channel: results are identical with or without one attached.
// Trace is a ready-made in-memory Observer for tests and tooling.
//
// All thresholds (dust floor, per-scale attempt cap, hop bound, transfer
// bound) live in Options rather than the algorithm bodies, so edge cases
// are exercisable deterministically.
package flow
