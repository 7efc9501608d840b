package core

import (
	"fmt"
	"math/big"
	"sort"
	"sync"
)

// Graph is the in-memory capacitated credit graph.
//
// It stores one exact non-negative capacity per directed (from, to, token)
// edge, plus the balance and trust-headroom books that capacity mutations
// keep consistent. A single mutex guards all state; a flow computation is
// single-threaded by contract and works on its own Clone, while the original
// configuration graph may be shared read-only.
type Graph struct {
	mu sync.RWMutex

	// Storage
	capacity map[EdgeKey]*big.Int
	outKeys  map[Account]map[EdgeKey]struct{}
	inKeys   map[Account]map[EdgeKey]struct{}
	accounts map[Account]struct{}

	// Bookkeeping: holder balances and per-receiver trust headroom.
	balance   map[Account]map[Token]*big.Int
	trustLeft map[Account]map[Account]*big.Int

	// Cached adjacency views, invalidated through explicit dirty-sets.
	outCache map[Account][]FlowEdge
	inCache  map[Account][]FlowEdge
	dirtyOut map[Account]struct{}
	dirtyIn  map[Account]struct{}
}

// NewGraph creates an empty credit graph.
// Complexity: O(1)
func NewGraph() *Graph {
	return &Graph{
		capacity:  make(map[EdgeKey]*big.Int),
		outKeys:   make(map[Account]map[EdgeKey]struct{}),
		inKeys:    make(map[Account]map[EdgeKey]struct{}),
		accounts:  make(map[Account]struct{}),
		balance:   make(map[Account]map[Token]*big.Int),
		trustLeft: make(map[Account]map[Account]*big.Int),
		outCache:  make(map[Account][]FlowEdge),
		inCache:   make(map[Account][]FlowEdge),
		dirtyOut:  make(map[Account]struct{}),
		dirtyIn:   make(map[Account]struct{}),
	}
}

// NewNetworkGraph builds a graph from already-parsed trust-limit and balance
// records, deriving one directed edge per (holder, receiver, token) triple.
//
// Derivation rule: for every holder u with a positive balance of token t,
// and every account v ≠ u that either issued t or records a positive trust
// limit for t's issuer, the edge (u, v, t) gets capacity
//
//	min(balance(u, t), trustLimit(v, issuer(t)))
//
// bounded by the balance alone on a return-to-issuer edge (v == issuer(t)),
// where trust is never consumed.
//
// Records with nil or negative amounts are rejected before any state is
// built. Complexity: O(H·R) where H is the number of balance records and R
// the number of trusters per issuer.
func NewNetworkGraph(trust TrustLimits, balances Balances) (*Graph, error) {
	g := NewGraph()

	// Validate and register trust records; index trusters by issuer.
	trusters := make(map[Account][]Account)
	for truster, limits := range trust {
		if truster == "" {
			return nil, ErrEmptyAccountID
		}
		for issuer, limit := range limits {
			if issuer == "" {
				return nil, ErrEmptyAccountID
			}
			if err := checkAmount(limit); err != nil {
				return nil, fmt.Errorf("%w: trust %q→%q", err, truster, issuer)
			}
			g.ensureAccount(truster)
			g.ensureAccount(issuer)
			g.setTrust(truster, issuer, cloneAmount(limit))
			if limit.Sign() > 0 {
				trusters[issuer] = append(trusters[issuer], truster)
			}
		}
	}
	for issuer := range trusters {
		sort.Slice(trusters[issuer], func(i, j int) bool {
			return trusters[issuer][i] < trusters[issuer][j]
		})
	}

	// Validate and register balances, then derive the edges.
	for holder, tokens := range balances {
		if holder == "" {
			return nil, ErrEmptyAccountID
		}
		for token, amount := range tokens {
			if token == "" {
				return nil, fmt.Errorf("%w: token of %q", ErrEmptyAccountID, holder)
			}
			if err := checkAmount(amount); err != nil {
				return nil, fmt.Errorf("%w: balance %q/%q", err, holder, token)
			}
			g.ensureAccount(holder)
			g.ensureAccount(token.Issuer())
			g.setBalance(holder, token, cloneAmount(amount))
		}
	}
	for holder, tokens := range balances {
		for token, amount := range tokens {
			if amount.Sign() == 0 {
				continue
			}
			issuer := token.Issuer()
			if issuer != holder {
				// Return-to-issuer edge: bounded by the balance only.
				g.putEdge(EdgeKey{From: holder, To: issuer, Token: token}, cloneAmount(amount))
			}
			for _, v := range trusters[issuer] {
				if v == holder || v == issuer {
					continue
				}
				c := minAmount(amount, trust[v][issuer])
				if c.Sign() > 0 {
					g.putEdge(EdgeKey{From: holder, To: v, Token: token}, c)
				}
			}
		}
	}

	return g, nil
}

// AddEdge sets the capacity of the directed edge (from, to, token),
// replacing any previous value and registering both endpoints.
// A zero capacity is stored but excluded from adjacency views.
func (g *Graph) AddEdge(from, to Account, token Token, capacity *big.Int) error {
	if from == "" || to == "" || token == "" {
		return ErrEmptyAccountID
	}
	if from == to {
		return fmt.Errorf("%w: %q", ErrSelfEdge, from)
	}
	if err := checkAmount(capacity); err != nil {
		return fmt.Errorf("%w: edge %q→%q", err, from, to)
	}

	g.mu.Lock()
	defer g.mu.Unlock()

	g.ensureAccount(from)
	g.ensureAccount(to)
	g.putEdge(EdgeKey{From: from, To: to, Token: token}, cloneAmount(capacity))

	return nil
}

// RemoveEdge deletes the edge addressed by key. Removing a non-existent
// edge is a no-op, not an error.
func (g *Graph) RemoveEdge(key EdgeKey) {
	g.mu.Lock()
	defer g.mu.Unlock()

	if _, ok := g.capacity[key]; !ok {
		return
	}
	delete(g.capacity, key)
	delete(g.outKeys[key.From], key)
	delete(g.inKeys[key.To], key)
	g.markDirty(key.From, key.To)
}

// Capacity returns a copy of the current capacity of key, or zero if the
// edge does not exist (missing edges are defensively zero, never an error).
func (g *Graph) Capacity(key EdgeKey) *big.Int {
	g.mu.RLock()
	defer g.mu.RUnlock()

	return cloneAmount(g.capacity[key])
}

// HasAccount reports whether id is known to the graph.
func (g *Graph) HasAccount(id Account) bool {
	g.mu.RLock()
	defer g.mu.RUnlock()

	_, ok := g.accounts[id]

	return ok
}

// Accounts returns all known account IDs in lexicographic order.
func (g *Graph) Accounts() []Account {
	g.mu.RLock()
	defer g.mu.RUnlock()

	out := make([]Account, 0, len(g.accounts))
	for id := range g.accounts {
		out = append(out, id)
	}
	sort.Slice(out, func(i, j int) bool { return out[i] < out[j] })

	return out
}

// Balance returns a copy of holder's recorded balance of token.
func (g *Graph) Balance(holder Account, token Token) *big.Int {
	g.mu.RLock()
	defer g.mu.RUnlock()

	return cloneAmount(g.balance[holder][token])
}

// TrustHeadroom returns a copy of the remaining trust receiver extends for
// issuer's token.
func (g *Graph) TrustHeadroom(receiver, issuer Account) *big.Int {
	g.mu.RLock()
	defer g.mu.RUnlock()

	return cloneAmount(g.trustLeft[receiver][issuer])
}

// putEdge stores capacity under key and registers the adjacency keys.
// Caller must hold the write lock (or own the graph exclusively).
func (g *Graph) putEdge(key EdgeKey, capacity *big.Int) {
	g.capacity[key] = capacity
	if g.outKeys[key.From] == nil {
		g.outKeys[key.From] = make(map[EdgeKey]struct{})
	}
	g.outKeys[key.From][key] = struct{}{}
	if g.inKeys[key.To] == nil {
		g.inKeys[key.To] = make(map[EdgeKey]struct{})
	}
	g.inKeys[key.To][key] = struct{}{}
	g.markDirty(key.From, key.To)
}

// ensureAccount registers id. Caller must hold the write lock.
func (g *Graph) ensureAccount(id Account) {
	g.accounts[id] = struct{}{}
}

// setBalance records holder's balance of token. Caller must hold the write lock.
func (g *Graph) setBalance(holder Account, token Token, amount *big.Int) {
	if g.balance[holder] == nil {
		g.balance[holder] = make(map[Token]*big.Int)
	}
	g.balance[holder][token] = amount
}

// setTrust records receiver's remaining trust for issuer. Caller must hold
// the write lock.
func (g *Graph) setTrust(receiver, issuer Account, amount *big.Int) {
	if g.trustLeft[receiver] == nil {
		g.trustLeft[receiver] = make(map[Account]*big.Int)
	}
	g.trustLeft[receiver][issuer] = amount
}

// markDirty invalidates the cached adjacency views of every given node.
func (g *Graph) markDirty(ids ...Account) {
	for _, id := range ids {
		g.dirtyOut[id] = struct{}{}
		g.dirtyIn[id] = struct{}{}
	}
}
