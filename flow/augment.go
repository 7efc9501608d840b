package flow

import (
	"fmt"
	"math/big"
	"sort"

	"github.com/katalvlaran/creditflow/core"
	"github.com/katalvlaran/creditflow/search"
)

// state carries one computation: the private residual graph, the used-edge
// bookkeeping, and the running total.
type state struct {
	residual *core.Graph
	finder   search.Finder
	source   core.Account
	sink     core.Account
	opts     Options
	used     map[core.EdgeKey]*big.Int
	total    *big.Int
}

// runAugmenting is the direct variant: search with the dust threshold as
// capacity floor, push, repeat until the target is met or no path remains.
func (s *state) runAugmenting(target *big.Int) error {
	for s.total.Cmp(target) < 0 {
		res, err := s.search(s.opts.MinFlow, target)
		if err != nil {
			return err
		}
		if !res.Found() {
			break
		}
		if err = s.augment(res); err != nil {
			return err
		}
	}

	return nil
}

// runScaling is the capacity-scaling variant. The scale starts at the
// largest power of two not exceeding the maximum edge capacity; each phase
// searches with max(scale, MinFlow) as the capacity floor, bounded by
// MaxAttemptsPerScale augmentations, then the scale is halved. Phasing
// bounds total augmentations by O(E · log maxCapacity) at the price of
// possibly costlier individual searches.
func (s *state) runScaling(target *big.Int) error {
	maxCap := s.residual.MaxCapacity()
	if maxCap.Sign() == 0 || target.Sign() == 0 {
		return nil
	}
	scale := new(big.Int).Lsh(big.NewInt(1), uint(maxCap.BitLen()-1))

	for scale.Sign() > 0 && s.total.Cmp(target) < 0 {
		floor := scale
		if scale.Cmp(s.opts.MinFlow) < 0 {
			floor = s.opts.MinFlow
		}
		for attempt := 0; attempt < s.opts.MaxAttemptsPerScale; attempt++ {
			res, err := s.search(floor, target)
			if err != nil {
				return err
			}
			if !res.Found() {
				break
			}
			// Paths below the dust threshold stay unapplied at every scale.
			if res.Flow.Cmp(s.opts.MinFlow) < 0 {
				break
			}
			if err = s.augment(res); err != nil {
				return err
			}
			if s.total.Cmp(target) >= 0 {
				break
			}
		}
		scale.Rsh(scale, 1)
	}

	return nil
}

// search asks the configured strategy for one augmenting path, ceilinged by
// the remaining target.
func (s *state) search(floor, target *big.Int) (search.Result, error) {
	remaining := new(big.Int).Sub(target, s.total)
	if remaining.Sign() < 0 {
		remaining.SetInt64(0)
	}
	p := search.Params{
		Ceiling:     remaining,
		MaxHops:     s.opts.MaxHops,
		MinCapacity: floor,
	}

	return s.finder.FindPath(s.residual, s.source, s.sink, p)
}

// augment applies one accepted path to the residual graph: every hop's flow
// is split across that hop's token edges in descending-capacity order, the
// forward capacity decreased and the reverse capacity increased per push,
// and the used-edge set updated with reverse-edge cancellation. The
// observer, if any, is notified after the push.
func (s *state) augment(res search.Result) error {
	for i := 0; i < len(res.Path)-1; i++ {
		if err := s.pushHop(res.Path[i], res.Path[i+1], res.Flow); err != nil {
			return err
		}
	}
	s.total.Add(s.total, res.Flow)

	if s.opts.Observer != nil {
		s.opts.Observer.OnAugment(s.total, res.Path, res.Flow, s.residual.Clone())
	}

	return nil
}

// pushHop routes amount from u to v across the available token edges.
func (s *state) pushHop(u, v core.Account, amount *big.Int) error {
	left := new(big.Int).Set(amount)
	for _, e := range s.residual.Outgoing(u) {
		if e.To != v {
			continue
		}
		d := minAmount(left, e.Capacity)
		if d.Sign() == 0 {
			continue
		}
		key := e.Key()
		if err := s.residual.DecreaseCapacity(key, d); err != nil {
			return err
		}
		if err := s.residual.IncreaseCapacity(key.Reverse(), d); err != nil {
			return err
		}
		s.record(key, d)
		if left.Sub(left, d); left.Sign() == 0 {
			return nil
		}
	}

	return fmt.Errorf("%w: %q→%q short by %s", ErrEdgeLookup, u, v, left)
}

// record books delta of flow on key, first cancelling any flow previously
// booked on the reverse edge. The invariant: used never carries both
// directions of one token edge.
func (s *state) record(key core.EdgeKey, delta *big.Int) {
	d := new(big.Int).Set(delta)
	rev := key.Reverse()
	if back := s.used[rev]; back != nil && back.Sign() > 0 {
		c := minAmount(d, back)
		back.Sub(back, c)
		if back.Sign() == 0 {
			delete(s.used, rev)
		}
		d.Sub(d, c)
	}
	if d.Sign() == 0 {
		return
	}
	if cur := s.used[key]; cur != nil {
		cur.Add(cur, d)
	} else {
		s.used[key] = d
	}
}

// usedEdges renders the bookkeeping as a canonical, sorted transfer slice.
func (s *state) usedEdges() []core.Transfer {
	out := make([]core.Transfer, 0, len(s.used))
	for key, amount := range s.used {
		if amount.Sign() <= 0 {
			continue
		}
		out = append(out, core.Transfer{
			From:   key.From,
			To:     key.To,
			Token:  key.Token,
			Amount: new(big.Int).Set(amount),
		})
	}
	sort.Slice(out, func(i, j int) bool {
		a, b := out[i], out[j]
		if a.From != b.From {
			return a.From < b.From
		}
		if a.To != b.To {
			return a.To < b.To
		}

		return a.Token < b.Token
	})

	return out
}
