package transfer

import (
	"math/big"
	"sort"

	"github.com/katalvlaran/creditflow/core"
)

// Prune removes exactly excess units of delivered flow from the used-edge
// set, preserving per-node conservation after every removal.
//
// Strategy: fully remove redundant edges farthest from the source first;
// when every remaining edge is larger than what is left to cut, fall back
// to a partial cut of the smallest remaining edge. Each cut propagates
// upstream to the source and downstream to the sink so intermediate
// accounts stay balanced.
//
// The input is not mutated; a nil or non-positive excess just compacts.
// Complexity: O(k · E log E) for k removals.
func Prune(edges []core.Transfer, source, sink core.Account, excess *big.Int) []core.Transfer {
	work := compact(copyEdges(edges))
	if excess == nil || excess.Sign() <= 0 {
		return work
	}

	left := new(big.Int).Set(excess)
	for left.Sign() > 0 && len(work) > 0 {
		dist := hopDistance(work, source)
		idx := make([]int, len(work))
		for i := range idx {
			idx[i] = i
		}
		sort.Slice(idx, func(a, b int) bool {
			da, db := edgeDistance(dist, work[idx[a]]), edgeDistance(dist, work[idx[b]])
			if da != db {
				return da > db
			}

			return lessByAmount(work[idx[a]], work[idx[b]])
		})

		chosen := -1
		for _, i := range idx {
			if work[i].Amount.Cmp(left) <= 0 {
				chosen = i
				break
			}
		}
		if chosen >= 0 {
			amt := new(big.Int).Set(work[chosen].Amount)
			removeAmount(work, chosen, amt, source, sink)
			left.Sub(left, amt)
		} else {
			// Every edge overshoots; cut the smallest one partially.
			removeAmount(work, smallestIndex(work), left, source, sink)
			left.SetInt64(0)
		}
		work = compact(work)
	}

	return work
}

// edgeDistance is the hop distance of an edge's tail from the source;
// edges the source cannot reach sort first (they are pure detritus).
func edgeDistance(dist map[core.Account]int, e core.Transfer) int {
	if d, ok := dist[e.From]; ok {
		return d
	}

	return unreachable
}
