package core

import (
	"fmt"
	"math/big"
)

// DecreaseCapacity lowers the capacity of key by delta, check-then-apply:
// if the edge's capacity is smaller than delta, ErrInsufficientCapacity is
// returned and nothing is mutated (a missing edge counts as zero capacity).
//
// Bookkeeping: delta of From's balance of the token is routed away, and the
// receiver's trust headroom for the token's issuer is consumed, except on a
// return-to-issuer edge, where the token is coming home and trust is not
// consumed. Books saturate at zero; capacities never do.
func (g *Graph) DecreaseCapacity(key EdgeKey, delta *big.Int) error {
	if err := checkAmount(delta); err != nil {
		return fmt.Errorf("%w: decrease %q→%q", err, key.From, key.To)
	}
	if delta.Sign() == 0 {
		return nil
	}

	g.mu.Lock()
	defer g.mu.Unlock()

	current := g.capacity[key]
	if current == nil || current.Cmp(delta) < 0 {
		return fmt.Errorf("%w: %q→%q token %q", ErrInsufficientCapacity, key.From, key.To, key.Token)
	}
	current.Sub(current, delta)

	g.subSaturating(g.balanceRef(key.From, key.Token), delta)
	if issuer := key.Token.Issuer(); key.To != issuer {
		g.subSaturating(g.trustRef(key.To, issuer), delta)
	}
	g.markDirty(key.From, key.To)

	return nil
}

// IncreaseCapacity raises the capacity of key by delta, creating the edge
// (and registering its endpoints) when absent. This is the residual
// counterpart of DecreaseCapacity: From's balance of the token is restored,
// as is the receiver's trust headroom outside return-to-issuer edges.
func (g *Graph) IncreaseCapacity(key EdgeKey, delta *big.Int) error {
	if err := checkAmount(delta); err != nil {
		return fmt.Errorf("%w: increase %q→%q", err, key.From, key.To)
	}
	if delta.Sign() == 0 {
		return nil
	}

	g.mu.Lock()
	defer g.mu.Unlock()

	if current := g.capacity[key]; current != nil {
		current.Add(current, delta)
		g.markDirty(key.From, key.To)
	} else {
		g.ensureAccount(key.From)
		g.ensureAccount(key.To)
		g.putEdge(key, cloneAmount(delta))
	}

	g.balanceRef(key.From, key.Token).Add(g.balanceRef(key.From, key.Token), delta)
	if issuer := key.Token.Issuer(); key.To != issuer {
		ref := g.trustRef(key.To, issuer)
		ref.Add(ref, delta)
	}

	return nil
}

// MaxCapacity returns a copy of the largest capacity over all edges, or zero
// for an edgeless graph. Used to seed the capacity-scaling algorithm.
// Complexity: O(E).
func (g *Graph) MaxCapacity() *big.Int {
	g.mu.RLock()
	defer g.mu.RUnlock()

	max := new(big.Int)
	for _, c := range g.capacity {
		if c.Cmp(max) > 0 {
			max.Set(c)
		}
	}

	return max
}

// EstimateMaxFlow returns a cheap advisory upper bound on the flow
// achievable from source to sink: the smaller of source's total outgoing
// capacity and sink's total incoming capacity. It may overestimate but
// never underestimates the true maximum flow.
func (g *Graph) EstimateMaxFlow(source, sink Account) *big.Int {
	out := new(big.Int)
	for _, e := range g.Outgoing(source) {
		out.Add(out, e.Capacity)
	}
	in := new(big.Int)
	for _, e := range g.Incoming(sink) {
		in.Add(in, e.Capacity)
	}

	return minAmount(out, in)
}

// balanceRef returns the mutable balance cell for (holder, token), creating
// a zero cell on demand. Caller must hold the write lock.
func (g *Graph) balanceRef(holder Account, token Token) *big.Int {
	if g.balance[holder] == nil {
		g.balance[holder] = make(map[Token]*big.Int)
	}
	if g.balance[holder][token] == nil {
		g.balance[holder][token] = new(big.Int)
	}

	return g.balance[holder][token]
}

// trustRef returns the mutable trust-headroom cell for (receiver, issuer),
// creating a zero cell on demand. Caller must hold the write lock.
func (g *Graph) trustRef(receiver, issuer Account) *big.Int {
	if g.trustLeft[receiver] == nil {
		g.trustLeft[receiver] = make(map[Account]*big.Int)
	}
	if g.trustLeft[receiver][issuer] == nil {
		g.trustLeft[receiver][issuer] = new(big.Int)
	}

	return g.trustLeft[receiver][issuer]
}

// subSaturating subtracts delta from ref, flooring at zero. The books are
// advisory next to the strictly non-negative capacities.
func (g *Graph) subSaturating(ref, delta *big.Int) {
	ref.Sub(ref, delta)
	if ref.Sign() < 0 {
		ref.SetInt64(0)
	}
}
