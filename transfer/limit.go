package transfer

import (
	"math/big"

	"github.com/katalvlaran/creditflow/core"
)

// LimitCount repeatedly removes the single smallest-amount edge, ties
// broken by the total order on endpoints, until the edge set is
// expressible in at most max elementary transfers, and returns the
// surviving edges together with the total flow lost to the removals.
//
// The bound is measured against the post-simplification transfer count:
// a chain that Simplify will merge costs one transfer, not one per hop.
// When max is too small to express any nonzero flow the set degrades
// gracefully to empty (zero flow), never an error. A max of zero or less
// means no bound.
func LimitCount(edges []core.Transfer, source, sink core.Account, max int) ([]core.Transfer, *big.Int) {
	lost := new(big.Int)
	work := compact(copyEdges(edges))
	if max <= 0 {
		return work, lost
	}

	for len(work) > 0 && len(Simplify(work)) > max {
		i := smallestIndex(work)
		amt := new(big.Int).Set(work[i].Amount)
		removeAmount(work, i, amt, source, sink)
		lost.Add(lost, amt)
		work = compact(work)
	}

	return work, lost
}
