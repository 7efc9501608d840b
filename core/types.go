package core

import (
	"errors"
	"math/big"
)

// Sentinel errors for core graph operations.
var (
	// ErrEmptyAccountID indicates an operation received an empty account ID.
	ErrEmptyAccountID = errors.New("core: account ID is empty")

	// ErrSelfEdge indicates an edge from an account to itself was attempted.
	ErrSelfEdge = errors.New("core: self-edge not allowed")

	// ErrNilAmount indicates a nil *big.Int was supplied where an amount is required.
	ErrNilAmount = errors.New("core: amount is nil")

	// ErrNegativeAmount indicates a negative amount was supplied.
	ErrNegativeAmount = errors.New("core: amount is negative")

	// ErrInsufficientCapacity indicates a decrease would drive an edge's
	// capacity below zero. The graph is left untouched.
	ErrInsufficientCapacity = errors.New("core: capacity would drop below zero")
)

// Account uniquely identifies a participant in the credit network.
// Accounts are opaque and immutable; they exist by virtue of appearing
// in trust or balance records.
type Account string

// Token identifies a transferable token. By convention a token carries the
// ID of the account that issued it, which Issuer exposes.
type Token string

// Issuer returns the account that issued this token.
func (t Token) Issuer() Account { return Account(t) }

// EdgeKey addresses one directed per-token edge in a Graph.
type EdgeKey struct {
	From  Account
	To    Account
	Token Token
}

// Reverse returns the key of the residual counterpart edge.
func (k EdgeKey) Reverse() EdgeKey {
	return EdgeKey{From: k.To, To: k.From, Token: k.Token}
}

// FlowEdge is one entry of an adjacency view: a neighbor/token pair together
// with the currently available capacity. Capacity is a private copy; mutating
// it does not affect the graph.
type FlowEdge struct {
	From     Account
	To       Account
	Token    Token
	Capacity *big.Int
}

// Key returns the EdgeKey this view entry refers to.
func (e FlowEdge) Key() EdgeKey {
	return EdgeKey{From: e.From, To: e.To, Token: e.Token}
}

// Transfer is the atomic unit emitted by the flow algorithms and consumed by
// post-processing: move Amount of Token from From to To. Immutable once
// created.
type Transfer struct {
	From   Account
	To     Account
	Token  Token
	Amount *big.Int
}

// TrustLimits records, per truster, the maximum quantity of each issuer's
// token the truster is willing to receive via transitive routing.
// Absence means zero trust.
type TrustLimits map[Account]map[Account]*big.Int

// Balances records each holder's current holdings per token.
type Balances map[Account]map[Token]*big.Int

// cloneAmount returns an independent copy of x, treating nil as zero.
func cloneAmount(x *big.Int) *big.Int {
	if x == nil {
		return new(big.Int)
	}

	return new(big.Int).Set(x)
}

// checkAmount validates that x is a usable non-negative amount.
func checkAmount(x *big.Int) error {
	if x == nil {
		return ErrNilAmount
	}
	if x.Sign() < 0 {
		return ErrNegativeAmount
	}

	return nil
}

// minAmount returns a fresh copy of the smaller of a and b.
func minAmount(a, b *big.Int) *big.Int {
	if a.Cmp(b) <= 0 {
		return new(big.Int).Set(a)
	}

	return new(big.Int).Set(b)
}
