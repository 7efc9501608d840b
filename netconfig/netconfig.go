// Package netconfig loads credit-network definitions (trust-limit and
// balance records) from TOML documents into the in-memory maps
// core.NewNetworkGraph consumes. It lives at the interface boundary: the
// core packages never depend on it, and any other already-parsed source of
// the same maps works just as well.
//
// Document shape:
//
//	[[trust]]
//	from  = "alice"  # truster: willing to receive…
//	to    = "bob"    # …this issuer's token…
//	limit = "100"    # …up to this amount
//
//	[[balance]]
//	account = "bob"
//	token   = "bob"
//	amount  = "250"
//
// Amounts are decimal strings so arbitrary-precision values survive the
// trip into big integers.
package netconfig

import (
	"errors"
	"fmt"
	"io"
	"math/big"
	"os"

	"github.com/BurntSushi/toml"

	"github.com/katalvlaran/creditflow/core"
)

// Sentinel errors for network-definition loading.
var (
	// ErrBadRecord indicates a record with missing identifiers.
	ErrBadRecord = errors.New("netconfig: malformed record")

	// ErrBadAmount indicates an amount that is not a non-negative decimal.
	ErrBadAmount = errors.New("netconfig: malformed amount")
)

// document is the TOML shape.
type document struct {
	Trust   []trustRecord   `toml:"trust"`
	Balance []balanceRecord `toml:"balance"`
}

type trustRecord struct {
	From  string `toml:"from"`
	To    string `toml:"to"`
	Limit string `toml:"limit"`
}

type balanceRecord struct {
	Account string `toml:"account"`
	Token   string `toml:"token"`
	Amount  string `toml:"amount"`
}

// Load reads and parses the TOML document at path.
func Load(path string) (core.TrustLimits, core.Balances, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, nil, fmt.Errorf("netconfig: %w", err)
	}
	defer f.Close()

	return Parse(f)
}

// Parse decodes a TOML document from r into trust-limit and balance maps.
// Duplicate records accumulate: limits for a repeated (truster, issuer)
// pair and amounts for a repeated (account, token) pair are summed.
func Parse(r io.Reader) (core.TrustLimits, core.Balances, error) {
	var doc document
	if _, err := toml.NewDecoder(r).Decode(&doc); err != nil {
		return nil, nil, fmt.Errorf("netconfig: %w", err)
	}

	trust := make(core.TrustLimits)
	for _, rec := range doc.Trust {
		if rec.From == "" || rec.To == "" {
			return nil, nil, fmt.Errorf("%w: trust %q→%q", ErrBadRecord, rec.From, rec.To)
		}
		limit, err := parseAmount(rec.Limit)
		if err != nil {
			return nil, nil, fmt.Errorf("%w: trust %q→%q", err, rec.From, rec.To)
		}
		truster := core.Account(rec.From)
		issuer := core.Account(rec.To)
		if trust[truster] == nil {
			trust[truster] = make(map[core.Account]*big.Int)
		}
		if prev := trust[truster][issuer]; prev != nil {
			limit.Add(limit, prev)
		}
		trust[truster][issuer] = limit
	}

	balances := make(core.Balances)
	for _, rec := range doc.Balance {
		if rec.Account == "" || rec.Token == "" {
			return nil, nil, fmt.Errorf("%w: balance %q/%q", ErrBadRecord, rec.Account, rec.Token)
		}
		amount, err := parseAmount(rec.Amount)
		if err != nil {
			return nil, nil, fmt.Errorf("%w: balance %q/%q", err, rec.Account, rec.Token)
		}
		holder := core.Account(rec.Account)
		token := core.Token(rec.Token)
		if balances[holder] == nil {
			balances[holder] = make(map[core.Token]*big.Int)
		}
		if prev := balances[holder][token]; prev != nil {
			amount.Add(amount, prev)
		}
		balances[holder][token] = amount
	}

	return trust, balances, nil
}

// parseAmount converts a decimal string into a non-negative big integer.
func parseAmount(s string) (*big.Int, error) {
	v, ok := new(big.Int).SetString(s, 10)
	if !ok || v.Sign() < 0 {
		return nil, fmt.Errorf("%w: %q", ErrBadAmount, s)
	}

	return v, nil
}
