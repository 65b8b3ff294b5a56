// Copyright (c) 2025 The NomadLink developers
//
// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package nomad

import (
	"math/big"
)

// Constants of the staking protocol.
const (
	SecondsPerYear uint64 = 365 * 24 * 60 * 60

	// BpsDenominator basis point denominator, 10000 bps = 100%.
	BpsDenominator uint64 = 10000
)

// Keys of governance params.
var (
	KeyRewardRate    = BytesToBytes32([]byte("reward-rate-bps"))
	KeyMinLockPeriod = BytesToBytes32([]byte("min-lock-period"))
	KeyMaxLockPeriod = BytesToBytes32([]byte("max-lock-period"))
	KeyPaused        = BytesToBytes32([]byte("staking-paused"))

	InitialRewardRate    = big.NewInt(800)                // 8% annually
	InitialMinLockPeriod = big.NewInt(7 * 24 * 60 * 60)   // 7 days
	InitialMaxLockPeriod = big.NewInt(365 * 24 * 60 * 60) // 365 days
)
