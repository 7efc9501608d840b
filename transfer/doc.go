// Package transfer turns the raw used-edge set of a flow computation into
// an executable, bounded, ordered list of elementary transfers.
//
// The pipeline stages, in the order the flow package applies them:
//
//   - Prune: removes exactly the flow delivered beyond the requested
//     amount, fully removing the farthest-from-source edges first and
//     falling back to a partial cut of the smallest remaining edge, while
//     per-node conservation is restored after every removal.
//
//   - LimitCount: removes the smallest edges until the bounded transfer
//     count is expressible, reporting the flow given up. The bound is
//     measured against the post-simplification count, since chains that
//     will merge cost only one transfer.
//
//   - Extract: emits transfers in an order where every sender already
//     holds the routed balance it needs, so each transfer is individually
//     realizable against the balances produced by its predecessors.
//
//   - Simplify: merges (a→b, t, x) followed by (b→c, t, x) into
//     (a→c, t, x) until no such pair remains; collapsed cycles vanish.
//     Idempotent.
//
//   - Sort: orders the list so no account is debited before it has been
//     credited, emitting transfers whose sender has no pending inbound
//     first and breaking residual cycles deterministically.
//
// All stages copy their input; amounts are exact big integers throughout.
package transfer
