// Copyright (c) 2025 The NomadLink developers
//
// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package stakevault_test

import (
	"math/big"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/Goodnessmbakara/nomadlink-contract/builtin/params"
	"github.com/Goodnessmbakara/nomadlink-contract/builtin/stakevault"
	"github.com/Goodnessmbakara/nomadlink-contract/builtin/token"
	"github.com/Goodnessmbakara/nomadlink-contract/nomad"
	"github.com/Goodnessmbakara/nomadlink-contract/state"
)

const day = uint64(24 * 60 * 60)

var (
	vaultAddr  = nomad.BytesToAddress([]byte("vault"))
	tokenAddr  = nomad.BytesToAddress([]byte("token"))
	paramsAddr = nomad.BytesToAddress([]byte("params"))

	alice = nomad.BytesToAddress([]byte("alice"))
	bob   = nomad.BytesToAddress([]byte("bob"))
)

type testEnv struct {
	t      *testing.T
	state  *state.State
	params *params.Params
	token  *token.Token
	vault  *stakevault.Vault
}

// newTestEnv builds a vault over a fresh state with default parameters,
// funded accounts and a custody reserve covering reward payouts.
func newTestEnv(t *testing.T) *testEnv {
	st := state.New()

	par := params.New(paramsAddr, st)
	par.Set(nomad.KeyRewardRate, nomad.InitialRewardRate)
	par.Set(nomad.KeyMinLockPeriod, nomad.InitialMinLockPeriod)
	par.Set(nomad.KeyMaxLockPeriod, nomad.InitialMaxLockPeriod)

	tok := token.New(tokenAddr, st, vaultAddr)
	require.NoError(t, tok.Mint(alice, big.NewInt(1_000_000)))
	require.NoError(t, tok.Mint(bob, big.NewInt(1_000_000)))
	// reward reserve
	require.NoError(t, tok.Mint(vaultAddr, big.NewInt(10_000_000)))

	return &testEnv{
		t:      t,
		state:  st,
		params: par,
		token:  tok,
		vault:  stakevault.New(vaultAddr, st, par, tok),
	}
}

// newTestEnvWithLedger is like newTestEnv but wires a custom balance ledger
// around the token, for failure and reentrancy scenarios.
func newTestEnvWithLedger(t *testing.T, wrap func(*token.Token) stakevault.BalanceLedger) *testEnv {
	env := newTestEnv(t)
	env.vault = stakevault.New(vaultAddr, env.state, env.params, wrap(env.token))
	return env
}

func (env *testEnv) balance(addr nomad.Address) *big.Int {
	bal, err := env.token.BalanceOf(addr)
	require.NoError(env.t, err)
	return bal
}

// requireConsistent asserts the aggregate invariant: per-account totals
// equal the sum over the account's records, and the global totals equal the
// sum of per-account totals.
func (env *testEnv) requireConsistent(accounts ...nomad.Address) {
	sumStaked := new(big.Int)
	sumRewards := new(big.Int)

	for _, account := range accounts {
		count, err := env.vault.StakeCount(account)
		require.NoError(env.t, err)

		activeSum := new(big.Int)
		for i := uint64(0); i < count; i++ {
			rec, err := env.vault.GetStake(account, i)
			require.NoError(env.t, err)
			if rec.Active {
				activeSum.Add(activeSum, rec.Amount)
			}
		}

		stats, err := env.vault.AccountTotals(account)
		require.NoError(env.t, err)
		require.Equal(env.t, activeSum.String(), stats.TotalStaked.String(), "account %s staked total", account)

		sumStaked.Add(sumStaked, stats.TotalStaked)
		sumRewards.Add(sumRewards, stats.RewardsPaid)
	}

	staked, rewards, err := env.vault.Totals()
	require.NoError(env.t, err)
	require.Equal(env.t, sumStaked.String(), staked.String(), "global staked total")
	require.Equal(env.t, sumRewards.String(), rewards.String(), "global rewards total")
}
