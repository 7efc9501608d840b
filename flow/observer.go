package flow

import (
	"math/big"

	"github.com/katalvlaran/creditflow/core"
)

// Step is one recorded augmentation.
type Step struct {
	// Total is the cumulative flow after this augmentation.
	Total *big.Int

	// Path is the augmenting path, source to sink.
	Path []core.Account

	// Amount is the flow pushed along Path.
	Amount *big.Int

	// Residual is a snapshot of the residual graph after the push.
	Residual *core.Graph
}

// Trace is an in-memory Observer recording every augmentation step.
// It is a pure consumer: attaching it never changes the computed result.
type Trace struct {
	Steps []Step
}

// OnAugment implements Observer by recording independent copies.
func (t *Trace) OnAugment(total *big.Int, path []core.Account, amount *big.Int, residual *core.Graph) {
	p := make([]core.Account, len(path))
	copy(p, path)
	t.Steps = append(t.Steps, Step{
		Total:    new(big.Int).Set(total),
		Path:     p,
		Amount:   new(big.Int).Set(amount),
		Residual: residual,
	})
}
