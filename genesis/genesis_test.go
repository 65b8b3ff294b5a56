// Copyright (c) 2025 The NomadLink developers
//
// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package genesis_test

import (
	"math/big"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Goodnessmbakara/nomadlink-contract/builtin"
	"github.com/Goodnessmbakara/nomadlink-contract/genesis"
	"github.com/Goodnessmbakara/nomadlink-contract/nomad"
	"github.com/Goodnessmbakara/nomadlink-contract/state"
)

func TestDevnetBuild(t *testing.T) {
	st := state.New()
	g := genesis.NewDevnet()
	require.NoError(t, g.Build(st))
	assert.Equal(t, "devnet", g.Name())

	params := builtin.Params.WithState(st)
	rate, err := params.Get(nomad.KeyRewardRate)
	require.NoError(t, err)
	assert.Equal(t, nomad.InitialRewardRate, rate)

	dev := nomad.BytesToAddress([]byte("devnet-operator"))
	listed, err := builtin.Authority.WithState(st).IsListed(dev)
	require.NoError(t, err)
	assert.True(t, listed)

	bal, err := builtin.Token.WithState(st).BalanceOf(dev)
	require.NoError(t, err)
	assert.Equal(t, new(big.Int).SetUint64(1_000_000_000), bal)
}

func TestCustomNetBuild(t *testing.T) {
	doc := `{
		"name": "testnet",
		"accounts": [
			{"address": "0x0000000000000000000000000000000000000001", "balance": 5000},
			{"address": "0x0000000000000000000000000000000000000002", "balance": 0}
		],
		"operators": [
			{"address": "0x0000000000000000000000000000000000000001", "identity": "0x00000000000000000000000000000000000000000000000000000000000000aa"}
		],
		"params": {"rewardRate": 1200, "minLockPeriod": 3600, "maxLockPeriod": 7200},
		"custodyReserve": 100000
	}`

	g, err := genesis.NewCustomNet(strings.NewReader(doc))
	require.NoError(t, err)
	assert.Equal(t, "testnet", g.Name())

	st := state.New()
	require.NoError(t, g.Build(st))

	params := builtin.Params.WithState(st)
	rate, err := params.Get(nomad.KeyRewardRate)
	require.NoError(t, err)
	assert.Equal(t, big.NewInt(1200), rate)

	minLock, err := params.Get(nomad.KeyMinLockPeriod)
	require.NoError(t, err)
	assert.Equal(t, big.NewInt(3600), minLock)

	token := builtin.Token.WithState(st)
	bal, err := token.BalanceOf(nomad.MustParseAddress("0x0000000000000000000000000000000000000001"))
	require.NoError(t, err)
	assert.Equal(t, big.NewInt(5000), bal)

	reserve, err := token.BalanceOf(builtin.StakeVaultAddress)
	require.NoError(t, err)
	assert.Equal(t, big.NewInt(100000), reserve)
}

func TestCustomNetValidation(t *testing.T) {
	cases := []struct {
		name string
		doc  string
	}{
		{"missing name", `{"accounts": []}`},
		{"zero account address", `{"name": "x", "accounts": [{"address": "0x0000000000000000000000000000000000000000", "balance": 1}]}`},
		{"negative balance", `{"name": "x", "accounts": [{"address": "0x0000000000000000000000000000000000000001", "balance": -1}]}`},
		{"missing balance", `{"name": "x", "accounts": [{"address": "0x0000000000000000000000000000000000000001"}]}`},
		{"zero operator address", `{"name": "x", "operators": [{"address": "0x0000000000000000000000000000000000000000"}]}`},
		{"bad json", `{`},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := genesis.NewCustomNet(strings.NewReader(tc.doc))
			assert.Error(t, err)
		})
	}
}

func TestBuildRejectsBadParamOverrides(t *testing.T) {
	doc := `{"name": "x", "params": {"minLockPeriod": 7200, "maxLockPeriod": 3600}}`
	g, err := genesis.NewCustomNet(strings.NewReader(doc))
	require.NoError(t, err)
	assert.Error(t, g.Build(state.New()))
}
