// Copyright (c) 2025 The NomadLink developers
//
// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package stakevault

import (
	"encoding/binary"
	"math/big"

	"github.com/pkg/errors"

	"github.com/Goodnessmbakara/nomadlink-contract/builtin/solidity"
	"github.com/Goodnessmbakara/nomadlink-contract/nomad"
)

var (
	slotCounts  = nomad.BytesToBytes32([]byte("stake-counts"))
	slotRecords = nomad.BytesToBytes32([]byte("stake-records"))
	slotStats   = nomad.BytesToBytes32([]byte("account-stats"))
)

// AccountStats per-account aggregates. TotalStaked equals the sum of Amount
// over the account's active records; RewardsPaid the sum of rewards paid out
// over its withdrawn records.
type AccountStats struct {
	TotalStaked *big.Int
	RewardsPaid *big.Int
}

func (s *AccountStats) norm() {
	if s.TotalStaked == nil {
		s.TotalStaked = new(big.Int)
	}
	if s.RewardsPaid == nil {
		s.RewardsPaid = new(big.Int)
	}
}

type storage struct {
	counts  *solidity.Mapping[nomad.Address, uint64]
	records *solidity.Mapping[nomad.Bytes32, Record]
	stats   *solidity.Mapping[nomad.Address, AccountStats]
}

func newStorage(sctx *solidity.Context) *storage {
	return &storage{
		counts:  solidity.NewMapping[nomad.Address, uint64](sctx, slotCounts),
		records: solidity.NewMapping[nomad.Bytes32, Record](sctx, slotRecords),
		stats:   solidity.NewMapping[nomad.Address, AccountStats](sctx, slotStats),
	}
}

// recordKey derives the slot of record index under account.
func recordKey(account nomad.Address, index uint64) nomad.Bytes32 {
	var key nomad.Bytes32
	copy(key[:], account.Bytes())
	binary.BigEndian.PutUint64(key[24:], index)
	return key
}

func (s *storage) getCount(account nomad.Address) (uint64, error) {
	count, err := s.counts.Get(account)
	if err != nil {
		return 0, errors.Wrap(err, "failed to get stake count")
	}
	return count, nil
}

func (s *storage) setCount(account nomad.Address, count uint64) error {
	if err := s.counts.Set(account, count); err != nil {
		return errors.Wrap(err, "failed to set stake count")
	}
	return nil
}

func (s *storage) getRecord(account nomad.Address, index uint64) (*Record, error) {
	rec, err := s.records.Get(recordKey(account, index))
	if err != nil {
		return nil, errors.Wrap(err, "failed to get stake record")
	}
	return &rec, nil
}

func (s *storage) setRecord(account nomad.Address, index uint64, rec *Record) error {
	if err := s.records.Set(recordKey(account, index), *rec); err != nil {
		return errors.Wrap(err, "failed to set stake record")
	}
	return nil
}

func (s *storage) getStats(account nomad.Address) (*AccountStats, error) {
	stats, err := s.stats.Get(account)
	if err != nil {
		return nil, errors.Wrap(err, "failed to get account stats")
	}
	stats.norm()
	return &stats, nil
}

func (s *storage) setStats(account nomad.Address, stats *AccountStats) error {
	if err := s.stats.Set(account, *stats); err != nil {
		return errors.Wrap(err, "failed to set account stats")
	}
	return nil
}
