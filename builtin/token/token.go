// Copyright (c) 2025 The NomadLink developers
//
// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package token

import (
	"math/big"

	"github.com/pkg/errors"

	"github.com/Goodnessmbakara/nomadlink-contract/builtin/solidity"
	"github.com/Goodnessmbakara/nomadlink-contract/nomad"
	"github.com/Goodnessmbakara/nomadlink-contract/state"
)

var (
	slotBalances    = nomad.BytesToBytes32([]byte("token-balances"))
	slotTotalSupply = nomad.BytesToBytes32([]byte("token-supply"))
)

// Token implements the fungible balance ledger. The staking vault pulls
// stakes into a custody account through it and pushes principal+reward
// back out; within a calling operation its moves are atomic because they
// share the operation's state checkpoint.
type Token struct {
	balances    *solidity.Mapping[nomad.Address, *big.Int]
	totalSupply *solidity.Uint256
	custody     nomad.Address
}

// New create a new instance. custody is the account holding staked funds.
func New(addr nomad.Address, state *state.State, custody nomad.Address) *Token {
	ctx := solidity.NewContext(addr, state)
	return &Token{
		balances:    solidity.NewMapping[nomad.Address, *big.Int](ctx, slotBalances),
		totalSupply: solidity.NewUint256(ctx, slotTotalSupply),
		custody:     custody,
	}
}

// Custody returns the custody account address.
func (t *Token) Custody() nomad.Address {
	return t.custody
}

// TotalSupply returns total minted supply.
func (t *Token) TotalSupply() (*big.Int, error) {
	return t.totalSupply.Get()
}

// BalanceOf returns the balance of an account.
func (t *Token) BalanceOf(addr nomad.Address) (*big.Int, error) {
	bal, err := t.balances.Get(addr)
	if err != nil {
		return nil, errors.Wrap(err, "failed to get balance")
	}
	if bal == nil {
		return new(big.Int), nil
	}
	return bal, nil
}

// Mint adds newly issued balance to an account. Genesis only.
func (t *Token) Mint(addr nomad.Address, amount *big.Int) error {
	if amount.Sign() <= 0 {
		return errors.New("mint amount must be positive")
	}
	if err := t.addBalance(addr, amount); err != nil {
		return err
	}
	return t.totalSupply.Add(amount)
}

// Transfer moves amount between accounts. Fails if from has less than amount.
func (t *Token) Transfer(from, to nomad.Address, amount *big.Int) error {
	if err := t.subBalance(from, amount); err != nil {
		return err
	}
	return t.addBalance(to, amount)
}

// DebitToCustody pulls amount from an account into staking custody.
func (t *Token) DebitToCustody(from nomad.Address, amount *big.Int) error {
	return t.Transfer(from, t.custody, amount)
}

// CreditFromCustody pushes amount out of staking custody to an account.
func (t *Token) CreditFromCustody(to nomad.Address, amount *big.Int) error {
	return t.Transfer(t.custody, to, amount)
}

func (t *Token) addBalance(addr nomad.Address, amount *big.Int) error {
	bal, err := t.BalanceOf(addr)
	if err != nil {
		return err
	}
	return t.balances.Set(addr, new(big.Int).Add(bal, amount))
}

func (t *Token) subBalance(addr nomad.Address, amount *big.Int) error {
	bal, err := t.BalanceOf(addr)
	if err != nil {
		return err
	}
	if bal.Cmp(amount) < 0 {
		return errors.Errorf("insufficient balance of %s", addr)
	}
	return t.balances.Set(addr, new(big.Int).Sub(bal, amount))
}
