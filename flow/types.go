package flow

import (
	"errors"
	"fmt"
	"math/big"

	"github.com/katalvlaran/creditflow/core"
	"github.com/katalvlaran/creditflow/search"
)

// Sentinel errors for flow computations.
var (
	// ErrGraphNil is returned if a nil graph pointer is passed.
	ErrGraphNil = errors.New("flow: graph is nil")

	// ErrSourceNotFound is returned when the source account is missing.
	ErrSourceNotFound = errors.New("flow: source account not found")

	// ErrSinkNotFound is returned when the sink account is missing.
	ErrSinkNotFound = errors.New("flow: sink account not found")

	// ErrNilAmount is returned for a nil requested amount or option value.
	ErrNilAmount = errors.New("flow: amount is nil")

	// ErrNegativeAmount is returned for a negative requested amount or
	// option value.
	ErrNegativeAmount = errors.New("flow: amount is negative")

	// ErrBadOption is returned for a negative bound in Options.
	ErrBadOption = errors.New("flow: invalid option")

	// ErrUnknownAlgorithm is returned for an Algorithm outside the closed set.
	ErrUnknownAlgorithm = errors.New("flow: unknown algorithm")

	// ErrEdgeLookup is returned when a path step cannot be covered by the
	// token edges present in the residual graph: malformed input or an
	// internal inconsistency, never silently ignored.
	ErrEdgeLookup = errors.New("flow: no token edge with sufficient capacity on path step")
)

// Algorithm enumerates the closed set of flow algorithm variants.
type Algorithm int

const (
	// Augmenting is direct repeated augmentation.
	Augmenting Algorithm = iota

	// CapacityScaling phases the augmentation by a halving capacity threshold.
	CapacityScaling
)

// String returns the human-readable algorithm name.
func (a Algorithm) String() string {
	switch a {
	case Augmenting:
		return "augmenting"
	case CapacityScaling:
		return "capacity-scaling"
	default:
		return fmt.Sprintf("Algorithm(%d)", int(a))
	}
}

// Observer receives one synchronous callback per accepted augmentation.
// Implementations must not retain the path slice beyond the call; the
// residual snapshot is a private clone and may be kept.
type Observer interface {
	OnAugment(total *big.Int, path []core.Account, amount *big.Int, residual *core.Graph)
}

// DefaultMaxAttemptsPerScale bounds the augmentations tried per scaling
// phase before the scale is halved anyway.
const DefaultMaxAttemptsPerScale = 64

// Options configures a Compute call.
type Options struct {
	// Strategy selects the augmenting-path search variant.
	Strategy search.Kind

	// Algorithm selects the flow algorithm variant.
	Algorithm Algorithm

	// MaxHops, if > 0, bounds the hop count of every augmenting path.
	MaxHops int

	// MaxTransfers, if > 0, bounds the number of elementary transfers in the
	// result; excess flow is given up gracefully rather than failing.
	MaxTransfers int

	// MinFlow is the dust threshold: the smallest augmentation worth
	// pursuing. Nil defaults to 1.
	MinFlow *big.Int

	// MaxAttemptsPerScale bounds augmentations per scaling phase.
	// Zero defaults to DefaultMaxAttemptsPerScale.
	MaxAttemptsPerScale int

	// Observer, when non-nil, is notified synchronously per augmentation.
	Observer Observer
}

// DefaultOptions returns production-safe defaults: breadth-first search,
// direct augmentation, dust threshold 1, no hop or transfer bound.
func DefaultOptions() Options {
	return Options{
		Strategy:            search.BreadthFirst,
		Algorithm:           Augmenting,
		MinFlow:             big.NewInt(1),
		MaxAttemptsPerScale: DefaultMaxAttemptsPerScale,
	}
}

// normalize fills zero values and validates bounds.
func (o *Options) normalize() error {
	if o.MinFlow == nil {
		o.MinFlow = big.NewInt(1)
	} else if o.MinFlow.Sign() < 0 {
		return fmt.Errorf("%w: negative MinFlow", ErrBadOption)
	}
	if o.MaxAttemptsPerScale == 0 {
		o.MaxAttemptsPerScale = DefaultMaxAttemptsPerScale
	} else if o.MaxAttemptsPerScale < 0 {
		return fmt.Errorf("%w: negative MaxAttemptsPerScale", ErrBadOption)
	}
	if o.MaxHops < 0 {
		return fmt.Errorf("%w: negative MaxHops", ErrBadOption)
	}
	if o.MaxTransfers < 0 {
		return fmt.Errorf("%w: negative MaxTransfers", ErrBadOption)
	}

	return nil
}

// Result is the outcome of a Compute call: the achieved flow and the
// ordered, executable transfer list delivering it.
type Result struct {
	Flow      *big.Int
	Transfers []core.Transfer
}
