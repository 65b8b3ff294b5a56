// Copyright (c) 2025 The NomadLink developers
//
// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package staking

import (
	"math/big"

	"github.com/ethereum/go-ethereum/common/math"

	"github.com/Goodnessmbakara/nomadlink-contract/builtin/stakevault"
)

// Stake presentation of a stake record, with the reward accrued at the
// time of the query.
type Stake struct {
	Index       uint64                `json:"index"`
	Amount      *math.HexOrDecimal256 `json:"amount"`
	OpenedAt    uint64                `json:"openedAt"`
	LockedUntil uint64                `json:"lockedUntil"`
	Active      bool                  `json:"active"`
	Reward      *math.HexOrDecimal256 `json:"reward"`
}

func convertStake(index uint64, rec *stakevault.Record, reward *big.Int) *Stake {
	return &Stake{
		Index:       index,
		Amount:      (*math.HexOrDecimal256)(rec.Amount),
		OpenedAt:    rec.OpenedAt,
		LockedUntil: rec.LockedUntil,
		Active:      rec.Active,
		Reward:      (*math.HexOrDecimal256)(reward),
	}
}

// OpenStakeRequest body of the open-stake call.
type OpenStakeRequest struct {
	Amount     *math.HexOrDecimal256 `json:"amount"`
	LockPeriod uint64                `json:"lockPeriod"`
}

// OpenStakeResponse result of the open-stake call.
type OpenStakeResponse struct {
	Index uint64 `json:"index"`
}

// CloseStakeResponse result of the close-stake call.
type CloseStakeResponse struct {
	Principal *math.HexOrDecimal256 `json:"principal"`
	Reward    *math.HexOrDecimal256 `json:"reward"`
}

func convertCloseResult(principal, reward *big.Int) *CloseStakeResponse {
	return &CloseStakeResponse{
		Principal: (*math.HexOrDecimal256)(principal),
		Reward:    (*math.HexOrDecimal256)(reward),
	}
}

// AccountTotals aggregate stake state of one account.
type AccountTotals struct {
	TotalStaked   *math.HexOrDecimal256 `json:"totalStaked"`
	RewardsPaid   *math.HexOrDecimal256 `json:"rewardsPaid"`
	PendingReward *math.HexOrDecimal256 `json:"pendingReward"`
}

func convertAccountTotals(stats *stakevault.AccountStats, pending *big.Int) *AccountTotals {
	return &AccountTotals{
		TotalStaked:   (*math.HexOrDecimal256)(stats.TotalStaked),
		RewardsPaid:   (*math.HexOrDecimal256)(stats.RewardsPaid),
		PendingReward: (*math.HexOrDecimal256)(pending),
	}
}

// Totals global aggregate stake state.
type Totals struct {
	TotalStaked      *math.HexOrDecimal256 `json:"totalStaked"`
	TotalRewardsPaid *math.HexOrDecimal256 `json:"totalRewardsPaid"`
	Paused           bool                  `json:"paused"`
}

func convertTotals(staked, rewardsPaid *big.Int, paused bool) *Totals {
	return &Totals{
		TotalStaked:      (*math.HexOrDecimal256)(staked),
		TotalRewardsPaid: (*math.HexOrDecimal256)(rewardsPaid),
		Paused:           paused,
	}
}
