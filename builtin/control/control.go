// Copyright (c) 2025 The NomadLink developers
//
// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package control

import (
	"math/big"

	"github.com/Goodnessmbakara/nomadlink-contract/builtin/authority"
	"github.com/Goodnessmbakara/nomadlink-contract/builtin/params"
	"github.com/Goodnessmbakara/nomadlink-contract/builtin/stakevault"
	"github.com/Goodnessmbakara/nomadlink-contract/builtin/stakevault/reverts"
	"github.com/Goodnessmbakara/nomadlink-contract/log"
	"github.com/Goodnessmbakara/nomadlink-contract/nomad"
	"github.com/Goodnessmbakara/nomadlink-contract/state"
)

var logger = log.WithContext("pkg", "control")

// Control implements the role-gated administration of the staking ledger:
// global parameter changes, emergency pause and the emergency-drain escape
// hatch. It only ever touches global parameters and custody funds, never
// individual stake records.
type Control struct {
	state     *state.State
	params    *params.Params
	authority *authority.Authority
	ledger    stakevault.BalanceLedger
}

// New create a new instance.
func New(state *state.State, params *params.Params, authority *authority.Authority, ledger stakevault.BalanceLedger) *Control {
	return &Control{
		state:     state,
		params:    params,
		authority: authority,
		ledger:    ledger,
	}
}

func (c *Control) authorize(caller nomad.Address) error {
	listed, err := c.authority.IsListed(caller)
	if err != nil {
		return err
	}
	if !listed {
		return reverts.ErrUnauthorized
	}
	return nil
}

// SetRewardRate sets the annual reward rate in basis points. The new rate
// applies instantly and retroactively to every open stake.
func (c *Control) SetRewardRate(caller nomad.Address, rateBps *big.Int) error {
	if err := c.authorize(caller); err != nil {
		return err
	}
	if rateBps == nil || rateBps.Sign() < 0 {
		return reverts.ErrInvalidConfiguration
	}
	c.params.Set(nomad.KeyRewardRate, rateBps)
	logger.Info("reward rate updated", "caller", caller, "rateBps", rateBps)
	return nil
}

// SetLockPeriodBounds sets the accepted lock period range for future
// stakes. Already-open stakes keep their original terms.
func (c *Control) SetLockPeriodBounds(caller nomad.Address, minLock, maxLock uint64) error {
	if err := c.authorize(caller); err != nil {
		return err
	}
	if minLock >= maxLock {
		return reverts.ErrInvalidConfiguration
	}
	c.params.Set(nomad.KeyMinLockPeriod, new(big.Int).SetUint64(minLock))
	c.params.Set(nomad.KeyMaxLockPeriod, new(big.Int).SetUint64(maxLock))
	logger.Info("lock period bounds updated", "caller", caller, "min", minLock, "max", maxLock)
	return nil
}

// Pause stops Open and Close until Unpause. Queries are unaffected.
func (c *Control) Pause(caller nomad.Address) error {
	if err := c.authorize(caller); err != nil {
		return err
	}
	c.params.Set(nomad.KeyPaused, big.NewInt(1))
	logger.Warn("staking paused", "caller", caller)
	return nil
}

// Unpause lifts the emergency pause.
func (c *Control) Unpause(caller nomad.Address) error {
	if err := c.authorize(caller); err != nil {
		return err
	}
	c.params.Set(nomad.KeyPaused, big.NewInt(0))
	logger.Warn("staking unpaused", "caller", caller)
	return nil
}

// EmergencyWithdraw moves amount out of staking custody to an arbitrary
// destination with no stake-record bookkeeping. Incident response only:
// it is deliberately unconstrained and highly trusted.
func (c *Control) EmergencyWithdraw(caller nomad.Address, to nomad.Address, amount *big.Int) error {
	if err := c.authorize(caller); err != nil {
		return err
	}
	if amount == nil || amount.Sign() <= 0 {
		return reverts.ErrInvalidAmount
	}
	chk := c.state.NewCheckpoint()
	if err := c.ledger.CreditFromCustody(to, amount); err != nil {
		c.state.RevertTo(chk)
		return err
	}
	logger.Warn("emergency withdrawal", "caller", caller, "to", to, "amount", amount)
	return nil
}
