// Copyright (c) 2025 The NomadLink developers
//
// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package control_test

import (
	"math/big"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Goodnessmbakara/nomadlink-contract/builtin/authority"
	"github.com/Goodnessmbakara/nomadlink-contract/builtin/control"
	"github.com/Goodnessmbakara/nomadlink-contract/builtin/params"
	"github.com/Goodnessmbakara/nomadlink-contract/builtin/stakevault/reverts"
	"github.com/Goodnessmbakara/nomadlink-contract/builtin/token"
	"github.com/Goodnessmbakara/nomadlink-contract/nomad"
	"github.com/Goodnessmbakara/nomadlink-contract/state"
)

var (
	operator = nomad.BytesToAddress([]byte("operator"))
	mallory  = nomad.BytesToAddress([]byte("mallory"))
	treasury = nomad.BytesToAddress([]byte("treasury"))

	vaultAddr = nomad.BytesToAddress([]byte("vault"))
)

func newControl(t *testing.T) (*control.Control, *params.Params, *token.Token) {
	st := state.New()

	par := params.New(nomad.BytesToAddress([]byte("params")), st)
	par.Set(nomad.KeyRewardRate, nomad.InitialRewardRate)
	par.Set(nomad.KeyMinLockPeriod, nomad.InitialMinLockPeriod)
	par.Set(nomad.KeyMaxLockPeriod, nomad.InitialMaxLockPeriod)

	aut := authority.New(nomad.BytesToAddress([]byte("authority")), st)
	ok, err := aut.Add(operator, nomad.BytesToBytes32([]byte("ops")))
	require.NoError(t, err)
	require.True(t, ok)

	tok := token.New(nomad.BytesToAddress([]byte("token")), st, vaultAddr)
	require.NoError(t, tok.Mint(vaultAddr, big.NewInt(100_000)))

	return control.New(st, par, aut, tok), par, tok
}

func TestSetRewardRate(t *testing.T) {
	ctrl, par, _ := newControl(t)

	assert.NoError(t, ctrl.SetRewardRate(operator, big.NewInt(1600)))
	rate, _ := par.Get(nomad.KeyRewardRate)
	assert.Equal(t, big.NewInt(1600), rate)

	// zero is allowed, negative is not
	assert.NoError(t, ctrl.SetRewardRate(operator, big.NewInt(0)))
	assert.ErrorIs(t, ctrl.SetRewardRate(operator, big.NewInt(-1)), reverts.ErrInvalidConfiguration)

	// role required
	err := ctrl.SetRewardRate(mallory, big.NewInt(1))
	assert.ErrorIs(t, err, reverts.ErrUnauthorized)
	rate, _ = par.Get(nomad.KeyRewardRate)
	assert.Equal(t, big.NewInt(0).String(), rate.String())
}

func TestSetLockPeriodBounds(t *testing.T) {
	ctrl, par, _ := newControl(t)

	assert.NoError(t, ctrl.SetLockPeriodBounds(operator, 100, 200))
	minLock, _ := par.Get(nomad.KeyMinLockPeriod)
	maxLock, _ := par.Get(nomad.KeyMaxLockPeriod)
	assert.Equal(t, uint64(100), minLock.Uint64())
	assert.Equal(t, uint64(200), maxLock.Uint64())

	// min must stay strictly below max
	assert.ErrorIs(t, ctrl.SetLockPeriodBounds(operator, 200, 200), reverts.ErrInvalidConfiguration)
	assert.ErrorIs(t, ctrl.SetLockPeriodBounds(operator, 300, 200), reverts.ErrInvalidConfiguration)

	assert.ErrorIs(t, ctrl.SetLockPeriodBounds(mallory, 1, 2), reverts.ErrUnauthorized)
}

func TestPauseUnpause(t *testing.T) {
	ctrl, par, _ := newControl(t)

	assert.NoError(t, ctrl.Pause(operator))
	flag, _ := par.Get(nomad.KeyPaused)
	assert.Equal(t, int64(1), flag.Int64())

	assert.NoError(t, ctrl.Unpause(operator))
	flag, _ = par.Get(nomad.KeyPaused)
	assert.Equal(t, int64(0), flag.Int64())

	assert.ErrorIs(t, ctrl.Pause(mallory), reverts.ErrUnauthorized)
}

func TestEmergencyWithdraw(t *testing.T) {
	ctrl, _, tok := newControl(t)

	assert.NoError(t, ctrl.EmergencyWithdraw(operator, treasury, big.NewInt(40_000)))
	bal, _ := tok.BalanceOf(treasury)
	assert.Equal(t, big.NewInt(40_000), bal)

	// draining more than custody holds fails and moves nothing
	err := ctrl.EmergencyWithdraw(operator, treasury, big.NewInt(100_000))
	assert.Error(t, err)
	bal, _ = tok.BalanceOf(treasury)
	assert.Equal(t, big.NewInt(40_000), bal)

	assert.ErrorIs(t, ctrl.EmergencyWithdraw(mallory, treasury, big.NewInt(1)), reverts.ErrUnauthorized)
	assert.ErrorIs(t, ctrl.EmergencyWithdraw(operator, treasury, big.NewInt(0)), reverts.ErrInvalidAmount)
}
