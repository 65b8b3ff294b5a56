// Copyright (c) 2025 The NomadLink developers
//
// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package globalstats

import (
	"math/big"

	"github.com/Goodnessmbakara/nomadlink-contract/builtin/solidity"
	"github.com/Goodnessmbakara/nomadlink-contract/nomad"
)

var (
	slotTotalStaked      = nomad.BytesToBytes32([]byte("total-staked"))
	slotTotalRewardsPaid = nomad.BytesToBytes32([]byte("total-rewards-paid"))
)

// Service manages contract-wide staking totals.
// total staked tracks principal of all active stakes; total rewards paid
// only ever grows.
type Service struct {
	totalStaked      *solidity.Uint256
	totalRewardsPaid *solidity.Uint256
}

func New(sctx *solidity.Context) *Service {
	return &Service{
		totalStaked:      solidity.NewUint256(sctx, slotTotalStaked),
		totalRewardsPaid: solidity.NewUint256(sctx, slotTotalRewardsPaid),
	}
}

// AddStaked increases the global staked total when a stake is opened.
func (s *Service) AddStaked(amount *big.Int) error {
	return s.totalStaked.Add(amount)
}

// SubStaked decreases the global staked total when a stake is withdrawn.
func (s *Service) SubStaked(amount *big.Int) error {
	return s.totalStaked.Sub(amount)
}

// AddRewardsPaid increases the global paid-out reward total.
func (s *Service) AddRewardsPaid(reward *big.Int) error {
	return s.totalRewardsPaid.Add(reward)
}

// Totals returns the global staked and rewards-paid totals.
func (s *Service) Totals() (*big.Int, *big.Int, error) {
	staked, err := s.totalStaked.Get()
	if err != nil {
		return nil, nil, err
	}
	rewards, err := s.totalRewardsPaid.Get()
	return staked, rewards, err
}
