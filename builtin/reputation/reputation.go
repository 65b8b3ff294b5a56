// Copyright (c) 2025 The NomadLink developers
//
// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package reputation

import (
	"math/big"

	"github.com/pkg/errors"

	"github.com/Goodnessmbakara/nomadlink-contract/builtin/solidity"
	"github.com/Goodnessmbakara/nomadlink-contract/nomad"
	"github.com/Goodnessmbakara/nomadlink-contract/state"
)

var (
	slotRecords    = nomad.BytesToBytes32([]byte("reputation-records"))
	slotOwnerCount = nomad.BytesToBytes32([]byte("reputation-owner-count"))
	slotNextID     = nomad.BytesToBytes32([]byte("reputation-next-id"))
)

// Record is a soulbound reputation entry. It is bound to its owner for
// life: there is no transfer operation, only issue and revoke.
type Record struct {
	Owner    nomad.Address
	Identity nomad.Bytes32
	MetaURI  string
	IssuedAt uint64
	Revoked  bool
}

func (r *Record) IsEmpty() bool {
	return r.Owner.IsZero()
}

// Reputation implements the non-transferable reputation record store.
type Reputation struct {
	records    *solidity.Mapping[nomad.Bytes32, Record]
	ownerCount *solidity.Mapping[nomad.Address, uint64]
	nextID     *solidity.Uint256
}

// New create a new instance.
func New(addr nomad.Address, state *state.State) *Reputation {
	ctx := solidity.NewContext(addr, state)
	return &Reputation{
		records:    solidity.NewMapping[nomad.Bytes32, Record](ctx, slotRecords),
		ownerCount: solidity.NewMapping[nomad.Address, uint64](ctx, slotOwnerCount),
		nextID:     solidity.NewUint256(ctx, slotNextID),
	}
}

func idKey(id uint64) nomad.Bytes32 {
	return nomad.BytesToBytes32(new(big.Int).SetUint64(id).Bytes())
}

// Issue mints a new reputation record bound to owner. Returns its id.
func (r *Reputation) Issue(owner nomad.Address, identity nomad.Bytes32, metaURI string, now uint64) (uint64, error) {
	if owner.IsZero() {
		return 0, errors.New("owner required")
	}
	next, err := r.nextID.Get()
	if err != nil {
		return 0, err
	}
	id := next.Uint64()

	rec := Record{
		Owner:    owner,
		Identity: identity,
		MetaURI:  metaURI,
		IssuedAt: now,
	}
	if err := r.records.Set(idKey(id), rec); err != nil {
		return 0, err
	}
	count, err := r.ownerCount.Get(owner)
	if err != nil {
		return 0, err
	}
	if err := r.ownerCount.Set(owner, count+1); err != nil {
		return 0, err
	}
	return id, r.nextID.Add(big.NewInt(1))
}

// Get returns the record with the given id.
func (r *Reputation) Get(id uint64) (*Record, error) {
	rec, err := r.records.Get(idKey(id))
	if err != nil {
		return nil, errors.Wrap(err, "failed to get reputation record")
	}
	if rec.IsEmpty() {
		return nil, errors.New("reputation record not found")
	}
	return &rec, nil
}

// Revoke marks the record revoked. The entry is kept for history.
func (r *Reputation) Revoke(id uint64) error {
	rec, err := r.Get(id)
	if err != nil {
		return err
	}
	if rec.Revoked {
		return errors.New("reputation record already revoked")
	}
	rec.Revoked = true
	return r.records.Set(idKey(id), *rec)
}

// CountOf returns how many records were ever issued to owner.
func (r *Reputation) CountOf(owner nomad.Address) (uint64, error) {
	return r.ownerCount.Get(owner)
}
