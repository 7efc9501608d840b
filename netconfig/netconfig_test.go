package netconfig_test

import (
	"math/big"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
	"github.com/stretchr/testify/suite"

	"github.com/katalvlaran/creditflow/core"
	"github.com/katalvlaran/creditflow/netconfig"
)

// NetconfigSuite exercises TOML network-definition loading.
type NetconfigSuite struct {
	suite.Suite
}

const sampleDoc = `
[[trust]]
from  = "carol"
to    = "bob"
limit = "100"

[[trust]]
from  = "carol"
to    = "bob"
limit = "25"

[[balance]]
account = "alice"
token   = "bob"
amount  = "340282366920938463463374607431768211456"

[[balance]]
account = "bob"
token   = "bob"
amount  = "250"
`

// TestParse: records land in the maps, duplicates accumulate, and amounts
// beyond 64 bits survive intact.
func (s *NetconfigSuite) TestParse() {
	trust, balances, err := netconfig.Parse(strings.NewReader(sampleDoc))
	require.NoError(s.T(), err)

	require.Zero(s.T(), trust["carol"]["bob"].Cmp(big.NewInt(125)))

	huge, ok := new(big.Int).SetString("340282366920938463463374607431768211456", 10)
	require.True(s.T(), ok)
	require.Zero(s.T(), balances["alice"]["bob"].Cmp(huge))
	require.Zero(s.T(), balances["bob"]["bob"].Cmp(big.NewInt(250)))
}

// TestParseFeedsGraph: the maps plug straight into graph derivation.
func (s *NetconfigSuite) TestParseFeedsGraph() {
	trust, balances, err := netconfig.Parse(strings.NewReader(sampleDoc))
	require.NoError(s.T(), err)

	g, err := core.NewNetworkGraph(trust, balances)
	require.NoError(s.T(), err)
	require.Zero(s.T(), g.Capacity(core.EdgeKey{From: "bob", To: "carol", Token: "bob"}).Cmp(big.NewInt(125)))
}

// TestLoad: round trip through a file on disk.
func (s *NetconfigSuite) TestLoad() {
	path := filepath.Join(s.T().TempDir(), "net.toml")
	require.NoError(s.T(), os.WriteFile(path, []byte(sampleDoc), 0o600))

	trust, _, err := netconfig.Load(path)
	require.NoError(s.T(), err)
	require.Zero(s.T(), trust["carol"]["bob"].Cmp(big.NewInt(125)))

	_, _, err = netconfig.Load(filepath.Join(s.T().TempDir(), "missing.toml"))
	require.Error(s.T(), err)
}

// TestBadRecords.
func (s *NetconfigSuite) TestBadRecords() {
	_, _, err := netconfig.Parse(strings.NewReader(`
[[trust]]
from  = ""
to    = "bob"
limit = "10"
`))
	require.ErrorIs(s.T(), err, netconfig.ErrBadRecord)

	_, _, err = netconfig.Parse(strings.NewReader(`
[[balance]]
account = "alice"
token   = "bob"
amount  = "12x"
`))
	require.ErrorIs(s.T(), err, netconfig.ErrBadAmount)

	_, _, err = netconfig.Parse(strings.NewReader(`
[[trust]]
from  = "carol"
to    = "bob"
limit = "-5"
`))
	require.ErrorIs(s.T(), err, netconfig.ErrBadAmount)

	_, _, err = netconfig.Parse(strings.NewReader(`not = [valid`))
	require.Error(s.T(), err)
}

func TestNetconfigSuite(t *testing.T) {
	suite.Run(t, new(NetconfigSuite))
}
