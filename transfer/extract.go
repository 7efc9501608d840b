package transfer

import (
	"fmt"
	"math/big"

	"github.com/katalvlaran/creditflow/core"
)

// Extract converts the pruned edge multiset into an ordered transfer list by
// repeatedly emitting any edge whose sender currently holds enough routed
// balance to satisfy it in full, then crediting the receiver. The source is
// seeded with exactly its total outgoing amounts per token, so every emitted
// transfer is individually realizable against the balances produced by its
// predecessors.
//
// Edges that can never be satisfied (a conservation hole, typically a
// malformed input set) surface as ErrNotExecutable.
func Extract(edges []core.Transfer, source core.Account) ([]core.Transfer, error) {
	work := compact(copyEdges(edges))
	sortCanonical(work)

	bal := make(map[core.Account]map[core.Token]*big.Int)
	credit := func(a core.Account, t core.Token, amt *big.Int) {
		if bal[a] == nil {
			bal[a] = make(map[core.Token]*big.Int)
		}
		if bal[a][t] == nil {
			bal[a][t] = new(big.Int)
		}
		bal[a][t].Add(bal[a][t], amt)
	}
	for _, e := range work {
		if e.From == source {
			credit(source, e.Token, e.Amount)
		}
	}

	out := make([]core.Transfer, 0, len(work))
	for len(work) > 0 {
		picked := -1
		for i, e := range work {
			have := bal[e.From][e.Token]
			if have != nil && have.Cmp(e.Amount) >= 0 {
				picked = i
				break
			}
		}
		if picked < 0 {
			return nil, fmt.Errorf("%w: %d edges stranded", ErrNotExecutable, len(work))
		}
		e := work[picked]
		bal[e.From][e.Token].Sub(bal[e.From][e.Token], e.Amount)
		credit(e.To, e.Token, e.Amount)
		out = append(out, core.Transfer{From: e.From, To: e.To, Token: e.Token, Amount: new(big.Int).Set(e.Amount)})
		work = append(work[:picked], work[picked+1:]...)
	}

	return out, nil
}
