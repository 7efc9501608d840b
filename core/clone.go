package core

import "math/big"

// Clone returns a deep copy of the graph: capacities, adjacency keys,
// accounts, and the balance/trust books are all independent of the receiver.
// Caches start empty: they are per-instance state and are never shared
// across clones, so concurrent computations on separate clones cannot
// contaminate each other.
//
// Complexity: O(V + E).
func (g *Graph) Clone() *Graph {
	g.mu.RLock()
	defer g.mu.RUnlock()

	c := NewGraph()
	for id := range g.accounts {
		c.accounts[id] = struct{}{}
	}
	for key, capacity := range g.capacity {
		c.capacity[key] = new(big.Int).Set(capacity)
		if c.outKeys[key.From] == nil {
			c.outKeys[key.From] = make(map[EdgeKey]struct{})
		}
		c.outKeys[key.From][key] = struct{}{}
		if c.inKeys[key.To] == nil {
			c.inKeys[key.To] = make(map[EdgeKey]struct{})
		}
		c.inKeys[key.To][key] = struct{}{}
	}
	for holder, tokens := range g.balance {
		c.balance[holder] = make(map[Token]*big.Int, len(tokens))
		for token, amount := range tokens {
			c.balance[holder][token] = new(big.Int).Set(amount)
		}
	}
	for receiver, issuers := range g.trustLeft {
		c.trustLeft[receiver] = make(map[Account]*big.Int, len(issuers))
		for issuer, amount := range issuers {
			c.trustLeft[receiver][issuer] = new(big.Int).Set(amount)
		}
	}

	return c
}
