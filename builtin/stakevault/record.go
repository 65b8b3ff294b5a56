// Copyright (c) 2025 The NomadLink developers
//
// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package stakevault

import (
	"math/big"

	"github.com/Goodnessmbakara/nomadlink-contract/nomad"
)

// Record is one entry of an account's append-only stake sequence.
// Amount, LockedUntil and OpenedAt are immutable once written. Active flips
// to false exactly once, at withdrawal. RewardCheckpoint is written at open
// and stamped at close; the reward formula never reads it. It is kept as an
// extension point for an incremental-accrual design.
type Record struct {
	Amount           *big.Int
	LockedUntil      uint64
	OpenedAt         uint64
	RewardCheckpoint uint64
	Active           bool
}

// IsEmpty returns whether the record holds no stake.
func (r *Record) IsEmpty() bool {
	return r.Amount == nil || r.Amount.Sign() == 0
}

// Matured returns whether the stake can be withdrawn at now.
func (r *Record) Matured(now uint64) bool {
	return now >= r.LockedUntil
}

// CalcReward returns the reward accrued up to now at the given annual rate.
// Accrual is linear in time and capped at maturity: nothing accrues between
// LockedUntil and the actual withdrawal. All multiplications happen before
// the single floor division, so no precision is lost to intermediate
// truncation.
func (r *Record) CalcReward(now uint64, rateBps *big.Int) *big.Int {
	if !r.Active || r.IsEmpty() {
		return new(big.Int)
	}
	end := now
	if end > r.LockedUntil {
		end = r.LockedUntil
	}
	if end <= r.OpenedAt {
		return new(big.Int)
	}
	duration := end - r.OpenedAt

	reward := new(big.Int).Mul(r.Amount, rateBps)
	reward.Mul(reward, new(big.Int).SetUint64(duration))
	return reward.Div(reward, new(big.Int).SetUint64(nomad.SecondsPerYear*nomad.BpsDenominator))
}
