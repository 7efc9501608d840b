package core_test

import (
	"errors"
	"math/big"
	"testing"

	"github.com/stretchr/testify/require"
	"github.com/stretchr/testify/suite"

	"github.com/katalvlaran/creditflow/core"
)

// GraphSuite groups tests for the capacitated credit graph.
type GraphSuite struct {
	suite.Suite
}

func (s *GraphSuite) key(from, to, token string) core.EdgeKey {
	return core.EdgeKey{From: core.Account(from), To: core.Account(to), Token: core.Token(token)}
}

// TestAddEdgeAndCapacity: stored capacity is readable and independent.
func (s *GraphSuite) TestAddEdgeAndCapacity() {
	g := core.NewGraph()
	require.NoError(s.T(), g.AddEdge("s", "t", "s", big.NewInt(100)))

	got := g.Capacity(s.key("s", "t", "s"))
	require.Zero(s.T(), got.Cmp(big.NewInt(100)))

	// Mutating the returned amount must not touch the graph.
	got.SetInt64(1)
	require.Zero(s.T(), g.Capacity(s.key("s", "t", "s")).Cmp(big.NewInt(100)))
}

// TestMissingEdgeIsZero: absent edges read as zero capacity, not an error.
func (s *GraphSuite) TestMissingEdgeIsZero() {
	g := core.NewGraph()
	require.Zero(s.T(), g.Capacity(s.key("x", "y", "z")).Sign())
}

// TestAddEdgeValidation: empty IDs, self-edges, nil and negative amounts.
func (s *GraphSuite) TestAddEdgeValidation() {
	g := core.NewGraph()
	require.ErrorIs(s.T(), g.AddEdge("", "t", "s", big.NewInt(1)), core.ErrEmptyAccountID)
	require.ErrorIs(s.T(), g.AddEdge("s", "s", "s", big.NewInt(1)), core.ErrSelfEdge)
	require.ErrorIs(s.T(), g.AddEdge("s", "t", "s", nil), core.ErrNilAmount)
	require.ErrorIs(s.T(), g.AddEdge("s", "t", "s", big.NewInt(-5)), core.ErrNegativeAmount)
}

// TestRemoveEdgeIdempotent: removal of a non-existent edge is a no-op.
func (s *GraphSuite) TestRemoveEdgeIdempotent() {
	g := core.NewGraph()
	require.NoError(s.T(), g.AddEdge("s", "t", "s", big.NewInt(10)))

	g.RemoveEdge(s.key("s", "t", "s"))
	require.Zero(s.T(), g.Capacity(s.key("s", "t", "s")).Sign())

	// Second removal: still fine.
	g.RemoveEdge(s.key("s", "t", "s"))
	g.RemoveEdge(s.key("never", "was", "there"))
}

// TestOutgoingOrder: descending capacity, lexicographic tie-break, zero
// capacities excluded.
func (s *GraphSuite) TestOutgoingOrder() {
	g := core.NewGraph()
	require.NoError(s.T(), g.AddEdge("s", "b", "b", big.NewInt(5)))
	require.NoError(s.T(), g.AddEdge("s", "a", "a", big.NewInt(5)))
	require.NoError(s.T(), g.AddEdge("s", "c", "c", big.NewInt(9)))
	require.NoError(s.T(), g.AddEdge("s", "z", "z", big.NewInt(0)))

	out := g.Outgoing("s")
	require.Len(s.T(), out, 3)
	require.Equal(s.T(), core.Account("c"), out[0].To)
	require.Equal(s.T(), core.Account("a"), out[1].To)
	require.Equal(s.T(), core.Account("b"), out[2].To)
}

// TestViewReflectsMutation: cached views go stale on mutation and rebuild.
func (s *GraphSuite) TestViewReflectsMutation() {
	g := core.NewGraph()
	require.NoError(s.T(), g.AddEdge("s", "a", "a", big.NewInt(50)))
	require.Len(s.T(), g.Outgoing("s"), 1)

	require.NoError(s.T(), g.DecreaseCapacity(s.key("s", "a", "a"), big.NewInt(50)))
	require.Empty(s.T(), g.Outgoing("s"), "saturated edge must disappear from the view")

	require.NoError(s.T(), g.IncreaseCapacity(s.key("s", "a", "a"), big.NewInt(7)))
	out := g.Outgoing("s")
	require.Len(s.T(), out, 1)
	require.Zero(s.T(), out[0].Capacity.Cmp(big.NewInt(7)))
}

// TestDecreaseBelowZero: check-then-apply, graph untouched on failure.
func (s *GraphSuite) TestDecreaseBelowZero() {
	g := core.NewGraph()
	require.NoError(s.T(), g.AddEdge("s", "t", "s", big.NewInt(10)))

	err := g.DecreaseCapacity(s.key("s", "t", "s"), big.NewInt(11))
	require.True(s.T(), errors.Is(err, core.ErrInsufficientCapacity))
	require.Zero(s.T(), g.Capacity(s.key("s", "t", "s")).Cmp(big.NewInt(10)))
}

// TestResidualPush: forward decrease plus reverse increase conserve total
// capacity across the edge pair.
func (s *GraphSuite) TestResidualPush() {
	g := core.NewGraph()
	require.NoError(s.T(), g.AddEdge("s", "a", "tok", big.NewInt(10)))

	key := s.key("s", "a", "tok")
	require.NoError(s.T(), g.DecreaseCapacity(key, big.NewInt(4)))
	require.NoError(s.T(), g.IncreaseCapacity(key.Reverse(), big.NewInt(4)))

	fwd := g.Capacity(key)
	rev := g.Capacity(key.Reverse())
	require.Zero(s.T(), fwd.Cmp(big.NewInt(6)))
	require.Zero(s.T(), rev.Cmp(big.NewInt(4)))
	require.Zero(s.T(), new(big.Int).Add(fwd, rev).Cmp(big.NewInt(10)))
}

// TestNetworkDerivation: min(balance, trust) with balance-only bound on
// return-to-issuer edges.
func (s *GraphSuite) TestNetworkDerivation() {
	trust := core.TrustLimits{
		"c": {"b": big.NewInt(50)},
	}
	balances := core.Balances{
		"a": {"b": big.NewInt(80)},
		"b": {"b": big.NewInt(30)},
	}
	g, err := core.NewNetworkGraph(trust, balances)
	require.NoError(s.T(), err)

	// a returns b-tokens to their issuer: bounded by balance only.
	require.Zero(s.T(), g.Capacity(s.key("a", "b", "b")).Cmp(big.NewInt(80)))
	// a routes b-tokens to c: bounded by c's trust for b.
	require.Zero(s.T(), g.Capacity(s.key("a", "c", "b")).Cmp(big.NewInt(50)))
	// b issues its own token toward c: bounded by b's balance.
	require.Zero(s.T(), g.Capacity(s.key("b", "c", "b")).Cmp(big.NewInt(30)))
	// No edge without trust or issuership.
	require.Zero(s.T(), g.Capacity(s.key("b", "a", "b")).Sign())
}

// TestNetworkValidation: malformed records are rejected up front.
func (s *GraphSuite) TestNetworkValidation() {
	_, err := core.NewNetworkGraph(core.TrustLimits{"c": {"b": big.NewInt(-1)}}, nil)
	require.ErrorIs(s.T(), err, core.ErrNegativeAmount)

	_, err = core.NewNetworkGraph(nil, core.Balances{"a": {"b": nil}})
	require.ErrorIs(s.T(), err, core.ErrNilAmount)
}

// TestBookkeeping: balances route away and trust headroom is consumed,
// except toward the issuer.
func (s *GraphSuite) TestBookkeeping() {
	trust := core.TrustLimits{"c": {"b": big.NewInt(50)}}
	balances := core.Balances{"a": {"b": big.NewInt(80)}}
	g, err := core.NewNetworkGraph(trust, balances)
	require.NoError(s.T(), err)

	require.NoError(s.T(), g.DecreaseCapacity(s.key("a", "c", "b"), big.NewInt(20)))
	require.Zero(s.T(), g.Balance("a", "b").Cmp(big.NewInt(60)))
	require.Zero(s.T(), g.TrustHeadroom("c", "b").Cmp(big.NewInt(30)))

	// Return-to-issuer: balance drops, no trust consumed anywhere.
	require.NoError(s.T(), g.DecreaseCapacity(s.key("a", "b", "b"), big.NewInt(10)))
	require.Zero(s.T(), g.Balance("a", "b").Cmp(big.NewInt(50)))
	require.Zero(s.T(), g.TrustHeadroom("c", "b").Cmp(big.NewInt(30)))
}

// TestMaxCapacityAndEstimate.
func (s *GraphSuite) TestMaxCapacityAndEstimate() {
	g := core.NewGraph()
	require.NoError(s.T(), g.AddEdge("s", "a", "a", big.NewInt(10)))
	require.NoError(s.T(), g.AddEdge("s", "b", "b", big.NewInt(20)))
	require.NoError(s.T(), g.AddEdge("a", "t", "a", big.NewInt(5)))
	require.NoError(s.T(), g.AddEdge("b", "t", "b", big.NewInt(50)))

	require.Zero(s.T(), g.MaxCapacity().Cmp(big.NewInt(50)))
	require.Zero(s.T(), g.EstimateMaxFlow("s", "t").Cmp(big.NewInt(30)))
}

// TestCloneIsolation: mutating a clone leaves the original intact, and the
// clone starts with its own caches.
func (s *GraphSuite) TestCloneIsolation() {
	g := core.NewGraph()
	require.NoError(s.T(), g.AddEdge("s", "t", "s", big.NewInt(100)))
	require.Len(s.T(), g.Outgoing("s"), 1)

	c := g.Clone()
	require.NoError(s.T(), c.DecreaseCapacity(s.key("s", "t", "s"), big.NewInt(100)))

	require.Empty(s.T(), c.Outgoing("s"))
	require.Len(s.T(), g.Outgoing("s"), 1)
	require.Zero(s.T(), g.Capacity(s.key("s", "t", "s")).Cmp(big.NewInt(100)))
}

// TestAccounts: registration and lexicographic listing.
func (s *GraphSuite) TestAccounts() {
	g := core.NewGraph()
	require.NoError(s.T(), g.AddEdge("s", "b", "b", big.NewInt(1)))
	require.NoError(s.T(), g.AddEdge("b", "a", "b", big.NewInt(1)))

	require.True(s.T(), g.HasAccount("a"))
	require.False(s.T(), g.HasAccount("zz"))
	require.Equal(s.T(), []core.Account{"a", "b", "s"}, g.Accounts())
}

func TestGraphSuite(t *testing.T) {
	suite.Run(t, new(GraphSuite))
}
