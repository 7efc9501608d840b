package transfer

import (
	"math/big"

	"github.com/katalvlaran/creditflow/core"
)

// Simplify merges any two transfers (a→b, t, x) and (b→c, t, x) with equal
// token and amount into the single hop (a→c, t, x), repeating until no such
// pair remains. A pair that closes on itself (c == a) is a collapsed cycle
// and vanishes entirely. The delivered value is unchanged; only hop count
// shrinks. Idempotent: simplifying an already-simplified list returns the
// same list.
func Simplify(list []core.Transfer) []core.Transfer {
	work := compact(copyEdges(list))

	for changed := true; changed; {
		changed = false
	scan:
		for i := range work {
			for j := range work {
				if i == j {
					continue
				}
				a, b := work[i], work[j]
				if a.To != b.From || a.Token != b.Token || a.Amount.Cmp(b.Amount) != 0 {
					continue
				}
				if a.From == b.To {
					work = dropPair(work, i, j)
				} else {
					merged := core.Transfer{From: a.From, To: b.To, Token: a.Token, Amount: new(big.Int).Set(a.Amount)}
					work = mergePair(work, i, j, merged)
				}
				changed = true
				break scan
			}
		}
	}

	return work
}

// mergePair replaces the earlier of positions i and j by merged and deletes
// the other, keeping the remaining order stable.
func mergePair(work []core.Transfer, i, j int, merged core.Transfer) []core.Transfer {
	lo, hi := i, j
	if lo > hi {
		lo, hi = hi, lo
	}
	work[lo] = merged
	return append(work[:hi], work[hi+1:]...)
}

// dropPair deletes positions i and j, keeping the remaining order stable.
func dropPair(work []core.Transfer, i, j int) []core.Transfer {
	lo, hi := i, j
	if lo > hi {
		lo, hi = hi, lo
	}
	work = append(work[:hi], work[hi+1:]...)
	return append(work[:lo], work[lo+1:]...)
}
