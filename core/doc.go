// Package core defines the central Account, Token, and capacitated Graph
// types, and provides thread-safe primitives for building, querying, and
// cloning credit networks.
//
// A Graph owns directed per-token edge capacities derived from balance and
// trust-limit records, together with the balance and trust-headroom
// bookkeeping that point mutations keep consistent. All amounts are exact,
// non-negative big integers; a mutation that would drive any capacity below
// zero is rejected before it is applied.
//
// Adjacency views (Outgoing, Incoming) exclude zero-capacity entries and are
// sorted by descending capacity with a lexicographic tie-break, so callers
// that prefer high-capacity routes behave deterministically. The views are
// cached per node; every mutation marks the touched nodes in an explicit
// dirty-set and the next query rebuilds only what went stale.
//
// Errors:
//
//	ErrEmptyAccountID       - account identifier is the empty string.
//	ErrSelfEdge             - edge endpoints are the same account.
//	ErrNilAmount            - an amount pointer is nil.
//	ErrNegativeAmount       - an amount is negative.
//	ErrInsufficientCapacity - a decrease would drive capacity below zero.
package core
