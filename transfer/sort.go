package transfer

import "github.com/katalvlaran/creditflow/core"

// Sort reorders the simplified transfer list so that every account's
// outgoing transfers are scheduled only after all of its incoming transfers
// earlier in the list: no account is asked to send before it has received
// what it needs. Accounts with no inbound transfers may send immediately.
//
// The scheduler repeatedly emits the first remaining transfer whose sender
// has a zero pending-inbound count. A cyclic flow would block that rule, so
// when no such transfer exists the first remaining one is emitted, which
// breaks the cycle deterministically.
//
// Complexity: O(n²) over the transfer count, which post-processing keeps small.
func Sort(list []core.Transfer) []core.Transfer {
	work := copyEdges(list)

	pending := make(map[core.Account]int, len(work))
	for _, t := range work {
		pending[t.To]++
	}

	out := make([]core.Transfer, 0, len(work))
	for len(work) > 0 {
		picked := -1
		for i, t := range work {
			if pending[t.From] == 0 {
				picked = i
				break
			}
		}
		if picked < 0 {
			picked = 0
		}
		t := work[picked]
		out = append(out, t)
		pending[t.To]--
		work = append(work[:picked], work[picked+1:]...)
	}

	return out
}
