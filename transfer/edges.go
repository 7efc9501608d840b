package transfer

import (
	"errors"
	"math/big"
	"sort"

	"github.com/katalvlaran/creditflow/core"
)

// ErrNotExecutable is returned by Extract when some edges can never be
// satisfied by the balances the remaining edges produce: a conservation
// hole in the input, surfaced rather than silently mis-ordered.
var ErrNotExecutable = errors.New("transfer: edge set is not executable")

// unreachable orders edges disconnected from the source after every
// reachable one when pruning farthest-first.
const unreachable = int(^uint(0) >> 1)

// copyEdges returns a deep copy: amounts are fresh big integers.
func copyEdges(edges []core.Transfer) []core.Transfer {
	out := make([]core.Transfer, len(edges))
	for i, e := range edges {
		out[i] = core.Transfer{From: e.From, To: e.To, Token: e.Token, Amount: new(big.Int).Set(e.Amount)}
	}

	return out
}

// compact drops edges whose amount has reached zero.
func compact(edges []core.Transfer) []core.Transfer {
	out := edges[:0]
	for _, e := range edges {
		if e.Amount != nil && e.Amount.Sign() > 0 {
			out = append(out, e)
		}
	}

	return out
}

// sortCanonical orders edges by (From, To, Token) for deterministic scans.
func sortCanonical(edges []core.Transfer) {
	sort.Slice(edges, func(i, j int) bool {
		a, b := edges[i], edges[j]
		if a.From != b.From {
			return a.From < b.From
		}
		if a.To != b.To {
			return a.To < b.To
		}

		return a.Token < b.Token
	})
}

// smallestIndex returns the index of the smallest-amount edge, ties broken
// by the total order on (From, To, Token).
func smallestIndex(edges []core.Transfer) int {
	best := 0
	for i := 1; i < len(edges); i++ {
		if lessByAmount(edges[i], edges[best]) {
			best = i
		}
	}

	return best
}

// lessByAmount orders by amount ascending, then endpoints.
func lessByAmount(a, b core.Transfer) bool {
	if d := a.Amount.Cmp(b.Amount); d != 0 {
		return d < 0
	}
	if a.From != b.From {
		return a.From < b.From
	}
	if a.To != b.To {
		return a.To < b.To
	}

	return a.Token < b.Token
}

// hopDistance computes, per account, the hop distance from source over the
// positive edges. Accounts the flow never reaches map to unreachable.
func hopDistance(edges []core.Transfer, source core.Account) map[core.Account]int {
	adj := make(map[core.Account][]core.Account)
	for _, e := range edges {
		adj[e.From] = append(adj[e.From], e.To)
	}
	dist := map[core.Account]int{source: 0}
	queue := []core.Account{source}
	for len(queue) > 0 {
		u := queue[0]
		queue = queue[1:]
		for _, v := range adj[u] {
			if _, seen := dist[v]; seen {
				continue
			}
			dist[v] = dist[u] + 1
			queue = append(queue, v)
		}
	}

	return dist
}

// removeAmount cuts amt from edges[i] and restores per-node conservation by
// reducing matching amounts upstream toward the source and downstream
// toward the sink.
func removeAmount(edges []core.Transfer, i int, amt *big.Int, source, sink core.Account) {
	e := &edges[i]
	from, to := e.From, e.To
	e.Amount.Sub(e.Amount, amt)
	reduceUpstream(edges, from, new(big.Int).Set(amt), source)
	reduceDownstream(edges, to, new(big.Int).Set(amt), sink)
}

// reduceUpstream drains amt of inbound flow from node back toward source,
// splitting across inbound edges in descending-amount order. Amounts
// strictly decrease on every step, so the walk terminates even across
// cycles.
func reduceUpstream(edges []core.Transfer, node core.Account, amt *big.Int, source core.Account) {
	if node == source || amt.Sign() <= 0 {
		return
	}
	for _, i := range incomingByAmount(edges, node) {
		e := &edges[i]
		d := amt
		if e.Amount.Cmp(d) < 0 {
			d = e.Amount
		}
		d = new(big.Int).Set(d)
		if d.Sign() == 0 {
			continue
		}
		e.Amount.Sub(e.Amount, d)
		reduceUpstream(edges, e.From, d, source)
		if amt.Sub(amt, d); amt.Sign() == 0 {
			return
		}
	}
}

// reduceDownstream mirrors reduceUpstream toward the sink.
func reduceDownstream(edges []core.Transfer, node core.Account, amt *big.Int, sink core.Account) {
	if node == sink || amt.Sign() <= 0 {
		return
	}
	for _, i := range outgoingByAmount(edges, node) {
		e := &edges[i]
		d := amt
		if e.Amount.Cmp(d) < 0 {
			d = e.Amount
		}
		d = new(big.Int).Set(d)
		if d.Sign() == 0 {
			continue
		}
		e.Amount.Sub(e.Amount, d)
		reduceDownstream(edges, e.To, d, sink)
		if amt.Sub(amt, d); amt.Sign() == 0 {
			return
		}
	}
}

// incomingByAmount lists the indices of node's positive inbound edges,
// largest amount first, ties by endpoints.
func incomingByAmount(edges []core.Transfer, node core.Account) []int {
	var idx []int
	for i := range edges {
		if edges[i].To == node && edges[i].Amount.Sign() > 0 {
			idx = append(idx, i)
		}
	}
	sort.Slice(idx, func(a, b int) bool {
		return lessByAmountDesc(edges[idx[a]], edges[idx[b]])
	})

	return idx
}

// outgoingByAmount mirrors incomingByAmount for outbound edges.
func outgoingByAmount(edges []core.Transfer, node core.Account) []int {
	var idx []int
	for i := range edges {
		if edges[i].From == node && edges[i].Amount.Sign() > 0 {
			idx = append(idx, i)
		}
	}
	sort.Slice(idx, func(a, b int) bool {
		return lessByAmountDesc(edges[idx[a]], edges[idx[b]])
	})

	return idx
}

// lessByAmountDesc orders by amount descending, then endpoints.
func lessByAmountDesc(a, b core.Transfer) bool {
	if d := a.Amount.Cmp(b.Amount); d != 0 {
		return d > 0
	}
	if a.From != b.From {
		return a.From < b.From
	}
	if a.To != b.To {
		return a.To < b.To
	}

	return a.Token < b.Token
}
