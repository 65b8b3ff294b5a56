// Copyright (c) 2025 The NomadLink developers
//
// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package travelpass

import (
	"math/big"

	"github.com/pkg/errors"

	"github.com/Goodnessmbakara/nomadlink-contract/builtin/solidity"
	"github.com/Goodnessmbakara/nomadlink-contract/nomad"
	"github.com/Goodnessmbakara/nomadlink-contract/state"
)

var (
	slotPasses   = nomad.BytesToBytes32([]byte("travelpass-records"))
	slotBookings = nomad.BytesToBytes32([]byte("travelpass-bookings"))
	slotNextID   = nomad.BytesToBytes32([]byte("travelpass-next-id"))
)

// Pass is a transferable pass record tied to a unique booking reference.
type Pass struct {
	Owner      nomad.Address
	BookingRef nomad.Bytes32
	ExpiresAt  uint64
	IssuedAt   uint64
}

func (p *Pass) IsEmpty() bool {
	return p.Owner.IsZero()
}

// booking maps a booking reference to the pass id holding it.
type booking struct {
	PassID uint64
	Taken  bool
}

// TravelPass implements the transferable pass record store. One booking
// reference backs at most one pass, ever.
type TravelPass struct {
	passes   *solidity.Mapping[nomad.Bytes32, Pass]
	bookings *solidity.Mapping[nomad.Bytes32, booking]
	nextID   *solidity.Uint256
}

// New create a new instance.
func New(addr nomad.Address, state *state.State) *TravelPass {
	ctx := solidity.NewContext(addr, state)
	return &TravelPass{
		passes:   solidity.NewMapping[nomad.Bytes32, Pass](ctx, slotPasses),
		bookings: solidity.NewMapping[nomad.Bytes32, booking](ctx, slotBookings),
		nextID:   solidity.NewUint256(ctx, slotNextID),
	}
}

func idKey(id uint64) nomad.Bytes32 {
	return nomad.BytesToBytes32(new(big.Int).SetUint64(id).Bytes())
}

// Issue mints a pass for owner against a booking reference.
// A reference already backing a pass is rejected.
func (t *TravelPass) Issue(owner nomad.Address, bookingRef nomad.Bytes32, expiresAt, now uint64) (uint64, error) {
	if owner.IsZero() {
		return 0, errors.New("owner required")
	}
	bk, err := t.bookings.Get(bookingRef)
	if err != nil {
		return 0, err
	}
	if bk.Taken {
		return 0, errors.Errorf("booking %s already used by pass %d", bookingRef.AbbrevString(), bk.PassID)
	}

	next, err := t.nextID.Get()
	if err != nil {
		return 0, err
	}
	id := next.Uint64()

	pass := Pass{
		Owner:      owner,
		BookingRef: bookingRef,
		ExpiresAt:  expiresAt,
		IssuedAt:   now,
	}
	if err := t.passes.Set(idKey(id), pass); err != nil {
		return 0, err
	}
	if err := t.bookings.Set(bookingRef, booking{PassID: id, Taken: true}); err != nil {
		return 0, err
	}
	return id, t.nextID.Add(big.NewInt(1))
}

// Get returns the pass with the given id.
func (t *TravelPass) Get(id uint64) (*Pass, error) {
	pass, err := t.passes.Get(idKey(id))
	if err != nil {
		return nil, errors.Wrap(err, "failed to get pass")
	}
	if pass.IsEmpty() {
		return nil, errors.New("pass not found")
	}
	return &pass, nil
}

// Transfer moves the pass to a new owner. Owner only.
func (t *TravelPass) Transfer(from, to nomad.Address, id uint64) error {
	pass, err := t.Get(id)
	if err != nil {
		return err
	}
	if pass.Owner != from {
		return errors.New("not pass owner")
	}
	if to.IsZero() {
		return errors.New("recipient required")
	}
	pass.Owner = to
	return t.passes.Set(idKey(id), *pass)
}

// PassOfBooking returns the id of the pass backing a booking reference.
func (t *TravelPass) PassOfBooking(bookingRef nomad.Bytes32) (uint64, bool, error) {
	bk, err := t.bookings.Get(bookingRef)
	if err != nil {
		return 0, false, err
	}
	return bk.PassID, bk.Taken, nil
}
