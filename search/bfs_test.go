package search_test

import (
	"math/big"
	"testing"

	"github.com/stretchr/testify/require"
	"github.com/stretchr/testify/suite"

	"github.com/katalvlaran/creditflow/core"
	"github.com/katalvlaran/creditflow/search"
)

// BFSSuite exercises the plain breadth-first strategy.
type BFSSuite struct {
	suite.Suite
	finder search.Finder
}

func (s *BFSSuite) SetupTest() {
	f, err := search.New(search.BreadthFirst)
	require.NoError(s.T(), err)
	s.finder = f
}

func addEdge(t *testing.T, g *core.Graph, from, to core.Account, token core.Token, c int64) {
	t.Helper()
	require.NoError(t, g.AddEdge(from, to, token, big.NewInt(c)))
}

// TestDirectEdge: the trivial one-hop route carries its full capacity.
func (s *BFSSuite) TestDirectEdge() {
	g := core.NewGraph()
	addEdge(s.T(), g, "s", "t", "s", 100)

	res, err := s.finder.FindPath(g, "s", "t", search.DefaultParams())
	require.NoError(s.T(), err)
	require.True(s.T(), res.Found())
	require.Equal(s.T(), []core.Account{"s", "t"}, res.Path)
	require.Zero(s.T(), res.Flow.Cmp(big.NewInt(100)))
}

// TestShortestByHops: fewer hops win even when a longer route is wider.
func (s *BFSSuite) TestShortestByHops() {
	g := core.NewGraph()
	addEdge(s.T(), g, "s", "a", "tok", 10)
	addEdge(s.T(), g, "a", "t", "tok", 10)
	addEdge(s.T(), g, "s", "b", "tok", 100)
	addEdge(s.T(), g, "b", "c", "tok", 100)
	addEdge(s.T(), g, "c", "t", "tok", 100)

	res, err := s.finder.FindPath(g, "s", "t", search.DefaultParams())
	require.NoError(s.T(), err)
	require.Equal(s.T(), []core.Account{"s", "a", "t"}, res.Path)
	require.Zero(s.T(), res.Flow.Cmp(big.NewInt(10)))
}

// TestWiderNeighborFirst: among equal-length routes the higher-capacity
// neighbor is expanded first.
func (s *BFSSuite) TestWiderNeighborFirst() {
	g := core.NewGraph()
	addEdge(s.T(), g, "s", "a", "tok", 40)
	addEdge(s.T(), g, "a", "t", "tok", 40)
	addEdge(s.T(), g, "s", "b", "tok", 60)
	addEdge(s.T(), g, "b", "t", "tok", 60)

	res, err := s.finder.FindPath(g, "s", "t", search.DefaultParams())
	require.NoError(s.T(), err)
	require.Equal(s.T(), []core.Account{"s", "b", "t"}, res.Path)
	require.Zero(s.T(), res.Flow.Cmp(big.NewInt(60)))
}

// TestMinCapacityFloor: edges below the floor are invisible to the walk.
func (s *BFSSuite) TestMinCapacityFloor() {
	g := core.NewGraph()
	addEdge(s.T(), g, "s", "a", "tok", 5)
	addEdge(s.T(), g, "a", "t", "tok", 5)
	addEdge(s.T(), g, "s", "b", "tok", 100)
	addEdge(s.T(), g, "b", "t", "tok", 100)

	p := search.DefaultParams()
	p.MinCapacity = big.NewInt(10)
	res, err := s.finder.FindPath(g, "s", "t", p)
	require.NoError(s.T(), err)
	require.Equal(s.T(), []core.Account{"s", "b", "t"}, res.Path)

	// Raise the floor above every edge: no route, no error.
	p.MinCapacity = big.NewInt(1000)
	res, err = s.finder.FindPath(g, "s", "t", p)
	require.NoError(s.T(), err)
	require.False(s.T(), res.Found())
	require.Nil(s.T(), res.Flow)
}

// TestMaxHops: routes longer than the budget are abandoned.
func (s *BFSSuite) TestMaxHops() {
	g := core.NewGraph()
	addEdge(s.T(), g, "s", "a", "tok", 10)
	addEdge(s.T(), g, "a", "b", "tok", 10)
	addEdge(s.T(), g, "b", "t", "tok", 10)

	p := search.DefaultParams()
	p.MaxHops = 2
	res, err := s.finder.FindPath(g, "s", "t", p)
	require.NoError(s.T(), err)
	require.False(s.T(), res.Found())

	p.MaxHops = 3
	res, err = s.finder.FindPath(g, "s", "t", p)
	require.NoError(s.T(), err)
	require.Equal(s.T(), []core.Account{"s", "a", "b", "t"}, res.Path)
}

// TestCeiling: reported flow never exceeds the caller's cap.
func (s *BFSSuite) TestCeiling() {
	g := core.NewGraph()
	addEdge(s.T(), g, "s", "t", "s", 100)

	p := search.DefaultParams()
	p.Ceiling = big.NewInt(30)
	res, err := s.finder.FindPath(g, "s", "t", p)
	require.NoError(s.T(), err)
	require.Zero(s.T(), res.Flow.Cmp(big.NewInt(30)))
}

// TestTokenAggregation: parallel token edges between the same pair combine,
// but only the floor-eligible ones count.
func (s *BFSSuite) TestTokenAggregation() {
	g := core.NewGraph()
	addEdge(s.T(), g, "s", "t", "t1", 50)
	addEdge(s.T(), g, "s", "t", "t2", 30)

	res, err := s.finder.FindPath(g, "s", "t", search.DefaultParams())
	require.NoError(s.T(), err)
	require.Zero(s.T(), res.Flow.Cmp(big.NewInt(80)))

	p := search.DefaultParams()
	p.MinCapacity = big.NewInt(40)
	res, err = s.finder.FindPath(g, "s", "t", p)
	require.NoError(s.T(), err)
	require.Zero(s.T(), res.Flow.Cmp(big.NewInt(50)))
}

// TestEndpointErrors.
func (s *BFSSuite) TestEndpointErrors() {
	g := core.NewGraph()
	addEdge(s.T(), g, "s", "t", "s", 1)

	_, err := s.finder.FindPath(g, "nope", "t", search.DefaultParams())
	require.ErrorIs(s.T(), err, search.ErrSourceNotFound)

	_, err = s.finder.FindPath(g, "s", "nope", search.DefaultParams())
	require.ErrorIs(s.T(), err, search.ErrSinkNotFound)

	_, err = s.finder.FindPath(nil, "s", "t", search.DefaultParams())
	require.ErrorIs(s.T(), err, search.ErrGraphNil)
}

// TestUnknownStrategy.
func (s *BFSSuite) TestUnknownStrategy() {
	_, err := search.New(search.Kind(99))
	require.ErrorIs(s.T(), err, search.ErrUnknownStrategy)
}

func TestBFSSuite(t *testing.T) {
	suite.Run(t, new(BFSSuite))
}
