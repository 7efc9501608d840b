package flow

import (
	"fmt"
	"math/big"

	"github.com/katalvlaran/creditflow/core"
	"github.com/katalvlaran/creditflow/search"
	"github.com/katalvlaran/creditflow/transfer"
)

// Compute routes up to amount from source to sink through g and returns the
// achieved flow together with the ordered elementary transfer list
// delivering it.
//
// Steps:
//  1. Normalize options and validate graph, endpoints, and amount (O(1)).
//  2. Clone g into a private residual copy; the caller's graph is never
//     mutated (O(V + E)).
//  3. Cap the working target at min(amount, EstimateMaxFlow) so the
//     algorithm never chases an unreachable total.
//  4. Run the selected algorithm variant: repeated path search with the
//     remaining target as ceiling, each accepted path applied as a residual
//     mutation (forward capacity down, reverse capacity up) and recorded in
//     the used-edge set with reverse-edge cancellation.
//  5. Post-process the used edges: prune any excess over the request, bound
//     the transfer count, extract a realizable emission order, merge
//     collapsible chains, and order so no account sends before it received.
//
// Zero achievable flow yields a zero-flow, empty-list Result and a nil
// error. Errors are reserved for malformed input (unknown endpoints,
// negative amounts, unresolvable path steps).
func Compute(g *core.Graph, source, sink core.Account, amount *big.Int, opts Options) (Result, error) {
	if err := opts.normalize(); err != nil {
		return Result{}, err
	}
	if g == nil {
		return Result{}, ErrGraphNil
	}
	if amount == nil {
		return Result{}, fmt.Errorf("%w: requested amount", ErrNilAmount)
	}
	if amount.Sign() < 0 {
		return Result{}, fmt.Errorf("%w: requested amount", ErrNegativeAmount)
	}
	if !g.HasAccount(source) {
		return Result{}, fmt.Errorf("%w: %q", ErrSourceNotFound, source)
	}
	if !g.HasAccount(sink) {
		return Result{}, fmt.Errorf("%w: %q", ErrSinkNotFound, sink)
	}

	finder, err := search.New(opts.Strategy)
	if err != nil {
		return Result{}, fmt.Errorf("flow: %w", err)
	}

	st := &state{
		residual: g.Clone(),
		finder:   finder,
		source:   source,
		sink:     sink,
		opts:     opts,
		used:     make(map[core.EdgeKey]*big.Int),
		total:    new(big.Int),
	}
	target := minAmount(amount, st.residual.EstimateMaxFlow(source, sink))

	switch opts.Algorithm {
	case Augmenting:
		err = st.runAugmenting(target)
	case CapacityScaling:
		err = st.runScaling(target)
	default:
		err = fmt.Errorf("%w: %d", ErrUnknownAlgorithm, int(opts.Algorithm))
	}
	if err != nil {
		return Result{}, err
	}

	return st.finish(amount)
}

// finish runs the post-processing pipeline over the raw used-edge set.
func (s *state) finish(requested *big.Int) (Result, error) {
	achieved := new(big.Int).Set(s.total)
	edges := s.usedEdges()

	// The target cap makes overshoot impossible in-algorithm; pruning stays
	// as the safety net the pipeline contract calls for.
	if achieved.Cmp(requested) > 0 {
		excess := new(big.Int).Sub(achieved, requested)
		edges = transfer.Prune(edges, s.source, s.sink, excess)
		achieved.Set(requested)
	}

	if s.opts.MaxTransfers > 0 {
		var lost *big.Int
		edges, lost = transfer.LimitCount(edges, s.source, s.sink, s.opts.MaxTransfers)
		achieved.Sub(achieved, lost)
	}

	list, err := transfer.Extract(edges, s.source)
	if err != nil {
		return Result{}, fmt.Errorf("flow: %w", err)
	}
	list = transfer.Simplify(list)
	list = transfer.Sort(list)

	return Result{Flow: achieved, Transfers: list}, nil
}

// minAmount returns a fresh copy of the smaller of a and b.
func minAmount(a, b *big.Int) *big.Int {
	if a.Cmp(b) <= 0 {
		return new(big.Int).Set(a)
	}

	return new(big.Int).Set(b)
}
