package search

import (
	"errors"
	"fmt"
	"math/big"

	"github.com/katalvlaran/creditflow/core"
)

// Sentinel errors for path search.
var (
	// ErrGraphNil is returned if a nil graph pointer is passed.
	ErrGraphNil = errors.New("search: graph is nil")

	// ErrSourceNotFound is returned when the source account is missing.
	ErrSourceNotFound = errors.New("search: source account not found")

	// ErrSinkNotFound is returned when the sink account is missing.
	ErrSinkNotFound = errors.New("search: sink account not found")

	// ErrUnknownStrategy is returned by New for a Kind outside the closed set.
	ErrUnknownStrategy = errors.New("search: unknown strategy")

	// ErrBadParams is returned when Params carry a negative bound or floor.
	ErrBadParams = errors.New("search: invalid search parameters")
)

// Kind enumerates the closed set of path-search strategies.
type Kind int

const (
	// BreadthFirst explores level by level from the source.
	BreadthFirst Kind = iota

	// BidirectionalBreadthFirst expands frontiers from both endpoints.
	BidirectionalBreadthFirst
)

// String returns the human-readable strategy name.
func (k Kind) String() string {
	switch k {
	case BreadthFirst:
		return "breadth-first"
	case BidirectionalBreadthFirst:
		return "bidirectional-breadth-first"
	default:
		return fmt.Sprintf("Kind(%d)", int(k))
	}
}

// Params bounds one path search.
type Params struct {
	// Ceiling caps the returned flow. Nil means unbounded.
	Ceiling *big.Int

	// MaxHops, if > 0, abandons branches whose path would exceed this many
	// hops. A value of 0 disables the bound.
	MaxHops int

	// MinCapacity is the per-token-edge eligibility floor.
	// Nil defaults to 1; zero admits every positive-capacity edge.
	MinCapacity *big.Int
}

// DefaultParams returns Params with the default capacity floor of 1 and no
// ceiling or hop bound.
func DefaultParams() Params {
	return Params{MinCapacity: big.NewInt(1)}
}

// Result is the outcome of one path search. A zero Flow with an empty Path
// means no path satisfied the constraints.
type Result struct {
	// Flow is the bottleneck flow achievable along Path, capped by the ceiling.
	Flow *big.Int

	// Path is the ordered account sequence from source to sink.
	Path []core.Account
}

// Found reports whether the search produced a usable augmenting path.
func (r Result) Found() bool {
	return len(r.Path) > 1 && r.Flow != nil && r.Flow.Sign() > 0
}

// Finder is the single dispatch point over the strategy set.
type Finder interface {
	// FindPath returns one augmenting path from source to sink and the flow
	// achievable along it. No path is a zero-valued Result, not an error.
	FindPath(g *core.Graph, source, sink core.Account, p Params) (Result, error)
}

// New returns the Finder implementing the given strategy Kind.
func New(k Kind) (Finder, error) {
	switch k {
	case BreadthFirst:
		return breadthFirst{}, nil
	case BidirectionalBreadthFirst:
		return bidirectional{}, nil
	default:
		return nil, fmt.Errorf("%w: %d", ErrUnknownStrategy, int(k))
	}
}

// validate checks the common preconditions shared by both strategies and
// normalizes p (nil MinCapacity becomes 1).
func validate(g *core.Graph, source, sink core.Account, p Params) (Params, error) {
	if g == nil {
		return p, ErrGraphNil
	}
	if p.MaxHops < 0 {
		return p, fmt.Errorf("%w: MaxHops %d", ErrBadParams, p.MaxHops)
	}
	if p.MinCapacity == nil {
		p.MinCapacity = big.NewInt(1)
	} else if p.MinCapacity.Sign() < 0 {
		return p, fmt.Errorf("%w: negative MinCapacity", ErrBadParams)
	}
	if p.Ceiling != nil && p.Ceiling.Sign() < 0 {
		return p, fmt.Errorf("%w: negative Ceiling", ErrBadParams)
	}
	if !g.HasAccount(source) {
		return p, fmt.Errorf("%w: %q", ErrSourceNotFound, source)
	}
	if !g.HasAccount(sink) {
		return p, fmt.Errorf("%w: %q", ErrSinkNotFound, sink)
	}

	return p, nil
}

// neighborCap aggregates the eligible token edges of one hop: the combined
// capacity toward a single neighbor, in first-seen (descending-capacity)
// order.
type neighborCap struct {
	id       core.Account
	capacity *big.Int
}

// aggregate folds a sorted adjacency view into per-neighbor combined
// capacities, skipping token edges below the floor. pick selects the
// neighbor endpoint (To for outgoing views, From for incoming ones).
func aggregate(view []core.FlowEdge, floor *big.Int, pick func(core.FlowEdge) core.Account) []neighborCap {
	index := make(map[core.Account]int, len(view))
	out := make([]neighborCap, 0, len(view))
	for _, e := range view {
		if e.Capacity.Cmp(floor) < 0 || e.Capacity.Sign() <= 0 {
			continue
		}
		n := pick(e)
		if i, ok := index[n]; ok {
			out[i].capacity.Add(out[i].capacity, e.Capacity)
			continue
		}
		index[n] = len(out)
		out = append(out, neighborCap{id: n, capacity: new(big.Int).Set(e.Capacity)})
	}

	return out
}

// hopCapacity returns the combined eligible capacity of the hop u→v.
func hopCapacity(g *core.Graph, u, v core.Account, floor *big.Int) *big.Int {
	total := new(big.Int)
	for _, e := range g.Outgoing(u) {
		if e.To == v && e.Capacity.Cmp(floor) >= 0 && e.Capacity.Sign() > 0 {
			total.Add(total, e.Capacity)
		}
	}

	return total
}

// minFlow returns a copy of the smaller of a and b, where a nil bound means
// unbounded.
func minFlow(a, b *big.Int) *big.Int {
	if a == nil {
		return new(big.Int).Set(b)
	}
	if b == nil || a.Cmp(b) <= 0 {
		return new(big.Int).Set(a)
	}

	return new(big.Int).Set(b)
}
