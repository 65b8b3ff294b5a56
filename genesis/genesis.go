// Copyright (c) 2025 The NomadLink developers
//
// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package genesis

import (
	"encoding/json"
	"io"
	"math/big"

	"github.com/pkg/errors"

	"github.com/Goodnessmbakara/nomadlink-contract/builtin"
	"github.com/Goodnessmbakara/nomadlink-contract/nomad"
	"github.com/Goodnessmbakara/nomadlink-contract/state"
)

// Account an account to be funded at genesis.
type Account struct {
	Address nomad.Address `json:"address"`
	Balance *big.Int      `json:"balance"`
}

// Operator an address listed in the admin registry at genesis.
type Operator struct {
	Address  nomad.Address `json:"address"`
	Identity nomad.Bytes32 `json:"identity"`
}

// Params overrides of protocol parameter defaults. Nil fields keep the
// built-in initial values.
type Params struct {
	RewardRate    *big.Int `json:"rewardRate"`
	MinLockPeriod *big.Int `json:"minLockPeriod"`
	MaxLockPeriod *big.Int `json:"maxLockPeriod"`
}

// CustomGenesis is the user-customized genesis document.
type CustomGenesis struct {
	Name           string     `json:"name"`
	Accounts       []Account  `json:"accounts"`
	Operators      []Operator `json:"operators"`
	Params         Params     `json:"params"`
	CustodyReserve *big.Int   `json:"custodyReserve"`
}

// Genesis builds the initial contract state.
type Genesis struct {
	doc CustomGenesis
}

// NewCustomNet loads a genesis document from JSON and validates it.
func NewCustomNet(r io.Reader) (*Genesis, error) {
	var doc CustomGenesis
	if err := json.NewDecoder(r).Decode(&doc); err != nil {
		return nil, errors.Wrap(err, "parse genesis")
	}
	if doc.Name == "" {
		return nil, errors.New("genesis name required")
	}
	for _, acc := range doc.Accounts {
		if acc.Address.IsZero() {
			return nil, errors.New("account address required")
		}
		if acc.Balance == nil || acc.Balance.Sign() < 0 {
			return nil, errors.Errorf("invalid balance for account %s", acc.Address)
		}
	}
	for _, op := range doc.Operators {
		if op.Address.IsZero() {
			return nil, errors.New("operator address required")
		}
	}
	if doc.CustodyReserve != nil && doc.CustodyReserve.Sign() < 0 {
		return nil, errors.New("invalid custody reserve")
	}
	return &Genesis{doc}, nil
}

// NewDevnet the ready-to-use genesis for local development. One funded
// operator, generous balances, default protocol parameters.
func NewDevnet() *Genesis {
	dev := nomad.BytesToAddress([]byte("devnet-operator"))
	return &Genesis{CustomGenesis{
		Name: "devnet",
		Accounts: []Account{
			{Address: dev, Balance: new(big.Int).SetUint64(1_000_000_000)},
		},
		Operators: []Operator{
			{Address: dev, Identity: nomad.BytesToBytes32([]byte("devnet-operator"))},
		},
		CustodyReserve: new(big.Int).SetUint64(1_000_000_000),
	}}
}

// Name returns the network name.
func (g *Genesis) Name() string {
	return g.doc.Name
}

// Build applies the genesis document onto a fresh state: protocol
// parameters, funded accounts, the operator registry and the custody
// reserve backing reward payouts.
func (g *Genesis) Build(st *state.State) error {
	params := builtin.Params.WithState(st)

	rate := nomad.InitialRewardRate
	if g.doc.Params.RewardRate != nil {
		rate = g.doc.Params.RewardRate
	}
	minLock := nomad.InitialMinLockPeriod
	if g.doc.Params.MinLockPeriod != nil {
		minLock = g.doc.Params.MinLockPeriod
	}
	maxLock := nomad.InitialMaxLockPeriod
	if g.doc.Params.MaxLockPeriod != nil {
		maxLock = g.doc.Params.MaxLockPeriod
	}
	if rate.Sign() < 0 {
		return errors.New("invalid reward rate")
	}
	if minLock.Sign() <= 0 || minLock.Cmp(maxLock) >= 0 {
		return errors.New("invalid lock period bounds")
	}
	params.Set(nomad.KeyRewardRate, rate)
	params.Set(nomad.KeyMinLockPeriod, minLock)
	params.Set(nomad.KeyMaxLockPeriod, maxLock)

	token := builtin.Token.WithState(st)
	for _, acc := range g.doc.Accounts {
		if acc.Balance.Sign() == 0 {
			continue
		}
		if err := token.Mint(acc.Address, acc.Balance); err != nil {
			return errors.Wrapf(err, "fund account %s", acc.Address)
		}
	}
	if g.doc.CustodyReserve != nil && g.doc.CustodyReserve.Sign() > 0 {
		if err := token.Mint(builtin.StakeVaultAddress, g.doc.CustodyReserve); err != nil {
			return errors.Wrap(err, "fund custody reserve")
		}
	}

	authority := builtin.Authority.WithState(st)
	for _, op := range g.doc.Operators {
		added, err := authority.Add(op.Address, op.Identity)
		if err != nil {
			return errors.Wrapf(err, "list operator %s", op.Address)
		}
		if !added {
			return errors.Errorf("duplicate operator %s", op.Address)
		}
	}

	st.Commit()
	return nil
}
