// Copyright (c) 2025 The NomadLink developers
//
// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package authority

import (
	"math/big"

	"github.com/Goodnessmbakara/nomadlink-contract/builtin/solidity"
	"github.com/Goodnessmbakara/nomadlink-contract/nomad"
	"github.com/Goodnessmbakara/nomadlink-contract/state"
)

var (
	slotEntries = nomad.BytesToBytes32([]byte("authority-entries"))
	slotCount   = nomad.BytesToBytes32([]byte("authority-count"))
)

type entry struct {
	Identity nomad.Bytes32
	Listed   bool
	Known    bool
}

func (e *entry) IsEmpty() bool {
	return !e.Known
}

// Authority implements the privileged-role registry consulted by admin
// operations. Entries are soft-deleted on revoke, never removed.
type Authority struct {
	entries *solidity.Mapping[nomad.Address, entry]
	count   *solidity.Uint256
}

// New create a new instance.
func New(addr nomad.Address, state *state.State) *Authority {
	ctx := solidity.NewContext(addr, state)
	return &Authority{
		entries: solidity.NewMapping[nomad.Address, entry](ctx, slotEntries),
		count:   solidity.NewUint256(ctx, slotCount),
	}
}

// Add lists a new privileged member. Returns false if already known and listed.
func (a *Authority) Add(member nomad.Address, identity nomad.Bytes32) (bool, error) {
	e, err := a.entries.Get(member)
	if err != nil {
		return false, err
	}
	if e.Listed {
		return false, nil
	}
	e.Identity = identity
	e.Listed = true
	e.Known = true
	if err := a.entries.Set(member, e); err != nil {
		return false, err
	}
	return true, a.count.Add(big.NewInt(1))
}

// Revoke unlists the member. The entry is kept, but set unlisted.
func (a *Authority) Revoke(member nomad.Address) (bool, error) {
	e, err := a.entries.Get(member)
	if err != nil {
		return false, err
	}
	if !e.Listed {
		return false, nil
	}
	e.Listed = false
	if err := a.entries.Set(member, e); err != nil {
		return false, err
	}
	return true, a.count.Sub(big.NewInt(1))
}

// IsListed reports whether member currently holds the privileged role.
func (a *Authority) IsListed(member nomad.Address) (bool, error) {
	e, err := a.entries.Get(member)
	if err != nil {
		return false, err
	}
	return e.Listed, nil
}

// Get returns listing state and identity of a member.
func (a *Authority) Get(member nomad.Address) (listed bool, identity nomad.Bytes32, err error) {
	e, err := a.entries.Get(member)
	if err != nil {
		return false, nomad.Bytes32{}, err
	}
	return e.Listed, e.Identity, nil
}

// Count returns the number of listed members.
func (a *Authority) Count() (*big.Int, error) {
	return a.count.Get()
}
