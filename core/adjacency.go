package core

import "sort"

// Outgoing returns the current outgoing adjacency view of from: one entry
// per (neighbor, token) edge with positive capacity, sorted by descending
// capacity, ties broken lexicographically by (neighbor, token).
//
// The ordering is load-bearing: it lets search prefer high-capacity routes
// deterministically. Entries carry private capacity copies.
//
// Complexity: O(d) on a warm cache, O(d log d) after a mutation touched from.
func (g *Graph) Outgoing(from Account) []FlowEdge {
	g.mu.Lock()
	defer g.mu.Unlock()

	if _, stale := g.dirtyOut[from]; stale || g.outCache[from] == nil {
		g.outCache[from] = g.buildView(g.outKeys[from], false)
		delete(g.dirtyOut, from)
	}

	return copyView(g.outCache[from])
}

// Incoming returns the current incoming adjacency view of to, with the same
// capacity filtering, ordering, and copy semantics as Outgoing.
func (g *Graph) Incoming(to Account) []FlowEdge {
	g.mu.Lock()
	defer g.mu.Unlock()

	if _, stale := g.dirtyIn[to]; stale || g.inCache[to] == nil {
		g.inCache[to] = g.buildView(g.inKeys[to], true)
		delete(g.dirtyIn, to)
	}

	return copyView(g.inCache[to])
}

// buildView materializes a sorted view from an adjacency key set, excluding
// zero-capacity edges. When incoming is true the neighbor used for
// tie-breaking is the From endpoint. Caller must hold the write lock.
func (g *Graph) buildView(keys map[EdgeKey]struct{}, incoming bool) []FlowEdge {
	view := make([]FlowEdge, 0, len(keys))
	for key := range keys {
		c := g.capacity[key]
		if c == nil || c.Sign() <= 0 {
			continue
		}
		view = append(view, FlowEdge{
			From:     key.From,
			To:       key.To,
			Token:    key.Token,
			Capacity: cloneAmount(c),
		})
	}
	sort.Slice(view, func(i, j int) bool {
		if d := view[i].Capacity.Cmp(view[j].Capacity); d != 0 {
			return d > 0
		}
		ni, nj := view[i].To, view[j].To
		if incoming {
			ni, nj = view[i].From, view[j].From
		}
		if ni != nj {
			return ni < nj
		}

		return view[i].Token < view[j].Token
	})

	return view
}

// copyView returns an independent copy of a cached view, so callers can
// never alias cache-owned capacities.
func copyView(view []FlowEdge) []FlowEdge {
	out := make([]FlowEdge, len(view))
	for i, e := range view {
		out[i] = FlowEdge{From: e.From, To: e.To, Token: e.Token, Capacity: cloneAmount(e.Capacity)}
	}

	return out
}
