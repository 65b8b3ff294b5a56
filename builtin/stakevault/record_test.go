// Copyright (c) 2025 The NomadLink developers
//
// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package stakevault

import (
	"math/big"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/Goodnessmbakara/nomadlink-contract/nomad"
)

const day = uint64(24 * 60 * 60)

func activeRecord(amount int64, openedAt, lockPeriod uint64) *Record {
	return &Record{
		Amount:           big.NewInt(amount),
		LockedUntil:      openedAt + lockPeriod,
		OpenedAt:         openedAt,
		RewardCheckpoint: openedAt,
		Active:           true,
	}
}

func TestCalcRewardFullTerm(t *testing.T) {
	rec := activeRecord(1000, 0, 365*day)

	// 8% over a full year
	reward := rec.CalcReward(365*day, big.NewInt(800))
	assert.Equal(t, big.NewInt(80), reward)
}

func TestCalcRewardProRated(t *testing.T) {
	rec := activeRecord(1000, 0, 365*day)

	// half the year at 8% -> 4%
	reward := rec.CalcReward(365*day/2, big.NewInt(800))
	assert.Equal(t, big.NewInt(40), reward)
}

func TestCalcRewardCappedAtMaturity(t *testing.T) {
	rec := activeRecord(1000, 0, 30*day)

	atMaturity := rec.CalcReward(30*day, big.NewInt(800))
	wellPast := rec.CalcReward(30*day+123*day, big.NewInt(800))
	assert.Equal(t, atMaturity, wellPast)
}

func TestCalcRewardZeroCases(t *testing.T) {
	rec := activeRecord(1000, 100, 30*day)

	// no time elapsed
	assert.Equal(t, big.NewInt(0).String(), rec.CalcReward(100, big.NewInt(800)).String())
	// clock behind open time
	assert.Equal(t, big.NewInt(0).String(), rec.CalcReward(50, big.NewInt(800)).String())
	// zero rate
	assert.Equal(t, big.NewInt(0).String(), rec.CalcReward(100+30*day, big.NewInt(0)).String())

	// withdrawn record accrues nothing
	rec.Active = false
	assert.Equal(t, big.NewInt(0).String(), rec.CalcReward(100+30*day, big.NewInt(800)).String())
}

func TestCalcRewardFloorDivision(t *testing.T) {
	rec := activeRecord(1, 0, 365*day)

	// 1 * 800 * year / (year * 10000) = 0.08, floors to 0
	assert.Equal(t, big.NewInt(0).String(), rec.CalcReward(365*day, big.NewInt(800)).String())
}

func TestCalcRewardWideIntermediate(t *testing.T) {
	// large stake over a full year must not lose precision to overflow
	amount, _ := new(big.Int).SetString("600000000000000000000000000", 10) // 6e26
	rec := &Record{
		Amount:      amount,
		LockedUntil: 365 * day,
		OpenedAt:    0,
		Active:      true,
	}
	reward := rec.CalcReward(365*day, big.NewInt(800))

	expected, _ := new(big.Int).SetString("48000000000000000000000000", 10) // 8% of 6e26
	assert.Equal(t, expected, reward)
}

func TestMatured(t *testing.T) {
	rec := activeRecord(1000, 0, 30*day)
	assert.False(t, rec.Matured(30*day-1))
	assert.True(t, rec.Matured(30*day))
	assert.True(t, rec.Matured(30*day+1))
}

func TestRecordKeyStability(t *testing.T) {
	acc := nomad.BytesToAddress([]byte("acc"))
	k0 := recordKey(acc, 0)
	k1 := recordKey(acc, 1)
	assert.NotEqual(t, k0, k1)
	assert.Equal(t, k0, recordKey(acc, 0))
}
