// Copyright (c) 2025 The NomadLink developers
//
// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package stakevault

import (
	"math/big"

	"github.com/Goodnessmbakara/nomadlink-contract/builtin/params"
	"github.com/Goodnessmbakara/nomadlink-contract/builtin/solidity"
	"github.com/Goodnessmbakara/nomadlink-contract/builtin/stakevault/globalstats"
	"github.com/Goodnessmbakara/nomadlink-contract/builtin/stakevault/reverts"
	"github.com/Goodnessmbakara/nomadlink-contract/log"
	"github.com/Goodnessmbakara/nomadlink-contract/metrics"
	"github.com/Goodnessmbakara/nomadlink-contract/nomad"
	"github.com/Goodnessmbakara/nomadlink-contract/state"
)

var (
	logger = log.WithContext("pkg", "stakevault")

	metricOpened     = metrics.LazyLoadCounter("stakes_opened_count")
	metricClosed     = metrics.LazyLoadCounter("stakes_closed_count")
	metricTotalStake = metrics.LazyLoadGauge("stakes_total_staked_gauge")
)

// BalanceLedger is the external fungible ledger the vault pulls stakes from
// and pushes payouts to. Its operations share the calling operation's
// checkpoint: a failure reverts the whole vault operation.
type BalanceLedger interface {
	BalanceOf(addr nomad.Address) (*big.Int, error)
	DebitToCustody(from nomad.Address, amount *big.Int) error
	CreditFromCustody(to nomad.Address, amount *big.Int) error
}

// Auditor receives auditable entries for stake lifecycle events. Sink
// failures are reported, they do not revert the operation.
type Auditor interface {
	StakeOpened(account nomad.Address, index uint64, amount *big.Int, lockedUntil uint64)
	StakeClosed(account nomad.Address, index uint64, principal, reward *big.Int, at uint64)
}

// Vault implements the time-locked staking ledger: an append-only sequence
// of stake records per account with pro-rated rewards, maturity-gated
// withdrawal and consistent per-account/global aggregates.
//
// Every mutating operation runs inside a state checkpoint and reverts it on
// any error, so no partial aggregate update survives a failure. Close
// follows checks-effects-interactions: the record is flipped inactive and
// the aggregates adjusted before the external payout, so a re-entrant call
// observes a terminal record.
type Vault struct {
	state  *state.State
	params *params.Params
	ledger BalanceLedger

	repo    *storage
	stats   *globalstats.Service
	auditor Auditor
}

// New create a new instance.
func New(addr nomad.Address, state *state.State, params *params.Params, ledger BalanceLedger) *Vault {
	sctx := solidity.NewContext(addr, state)
	return &Vault{
		state:  state,
		params: params,
		ledger: ledger,
		repo:   newStorage(sctx),
		stats:  globalstats.New(sctx),
	}
}

// SetAuditor attaches an audit sink. Optional.
func (v *Vault) SetAuditor(a Auditor) {
	v.auditor = a
}

//
// Getters - no state change
//

// GetStake returns the record at index for account.
func (v *Vault) GetStake(account nomad.Address, index uint64) (*Record, error) {
	count, err := v.repo.getCount(account)
	if err != nil {
		return nil, err
	}
	if index >= count {
		return nil, reverts.ErrStakeNotFound
	}
	return v.repo.getRecord(account, index)
}

// StakeCount returns the number of records ever opened by account,
// withdrawn ones included.
func (v *Vault) StakeCount(account nomad.Address) (uint64, error) {
	return v.repo.getCount(account)
}

// CalculateReward returns the reward accrued by the stake at index up to
// now, at the current global rate. Out-of-range indices and withdrawn
// records yield zero.
func (v *Vault) CalculateReward(account nomad.Address, index uint64, now uint64) (*big.Int, error) {
	count, err := v.repo.getCount(account)
	if err != nil {
		return nil, err
	}
	if index >= count {
		return new(big.Int), nil
	}
	rec, err := v.repo.getRecord(account, index)
	if err != nil {
		return nil, err
	}
	rate, err := v.params.Get(nomad.KeyRewardRate)
	if err != nil {
		return nil, err
	}
	return rec.CalcReward(now, rate), nil
}

// PendingRewardTotal sums the accrued reward over all active records of
// account. O(n) in the account's stake count, purely a read.
func (v *Vault) PendingRewardTotal(account nomad.Address, now uint64) (*big.Int, error) {
	count, err := v.repo.getCount(account)
	if err != nil {
		return nil, err
	}
	rate, err := v.params.Get(nomad.KeyRewardRate)
	if err != nil {
		return nil, err
	}
	total := new(big.Int)
	for i := uint64(0); i < count; i++ {
		rec, err := v.repo.getRecord(account, i)
		if err != nil {
			return nil, err
		}
		total.Add(total, rec.CalcReward(now, rate))
	}
	return total, nil
}

// AccountTotals returns account-level staked and rewards-paid aggregates.
func (v *Vault) AccountTotals(account nomad.Address) (*AccountStats, error) {
	return v.repo.getStats(account)
}

// Totals returns the global staked and rewards-paid aggregates.
func (v *Vault) Totals() (*big.Int, *big.Int, error) {
	return v.stats.Totals()
}

// Paused reports the emergency-pause flag.
func (v *Vault) Paused() (bool, error) {
	flag, err := v.params.Get(nomad.KeyPaused)
	if err != nil {
		return false, err
	}
	return flag.Sign() != 0, nil
}

//
// Setters - state change
//

// Open pulls amount from account's balance and appends a new active stake
// locked until now+lockPeriod. It returns the new record's stable index.
func (v *Vault) Open(account nomad.Address, amount *big.Int, lockPeriod uint64, now uint64) (uint64, error) {
	chk := v.state.NewCheckpoint()
	index, err := v.open(account, amount, lockPeriod, now)
	if err != nil {
		v.state.RevertTo(chk)
		logger.Info("open stake failed", "account", account, "error", err)
		return 0, err
	}
	return index, nil
}

func (v *Vault) open(account nomad.Address, amount *big.Int, lockPeriod uint64, now uint64) (uint64, error) {
	if paused, err := v.Paused(); err != nil {
		return 0, err
	} else if paused {
		return 0, reverts.ErrPaused
	}

	if amount == nil || amount.Sign() <= 0 {
		return 0, reverts.ErrInvalidAmount
	}

	minLock, err := v.params.Get(nomad.KeyMinLockPeriod)
	if err != nil {
		return 0, err
	}
	maxLock, err := v.params.Get(nomad.KeyMaxLockPeriod)
	if err != nil {
		return 0, err
	}
	if lockPeriod < minLock.Uint64() || lockPeriod > maxLock.Uint64() {
		return 0, reverts.ErrInvalidLockPeriod
	}

	available, err := v.ledger.BalanceOf(account)
	if err != nil {
		return 0, err
	}
	if available.Cmp(amount) < 0 {
		return 0, reverts.NewInsufficientBalance(amount, available)
	}

	// funds move before the record exists, so a callee of the debit can
	// never observe an unfunded stake
	if err := v.ledger.DebitToCustody(account, amount); err != nil {
		return 0, err
	}

	index, err := v.repo.getCount(account)
	if err != nil {
		return 0, err
	}
	rec := &Record{
		Amount:           new(big.Int).Set(amount),
		LockedUntil:      now + lockPeriod,
		OpenedAt:         now,
		RewardCheckpoint: now,
		Active:           true,
	}
	if err := v.repo.setRecord(account, index, rec); err != nil {
		return 0, err
	}
	if err := v.repo.setCount(account, index+1); err != nil {
		return 0, err
	}

	stats, err := v.repo.getStats(account)
	if err != nil {
		return 0, err
	}
	stats.TotalStaked.Add(stats.TotalStaked, amount)
	if err := v.repo.setStats(account, stats); err != nil {
		return 0, err
	}
	if err := v.stats.AddStaked(amount); err != nil {
		return 0, err
	}

	logger.Info("opened stake", "account", account, "index", index, "amount", amount, "lockedUntil", rec.LockedUntil)
	if v.auditor != nil {
		v.auditor.StakeOpened(account, index, amount, rec.LockedUntil)
	}
	metricOpened().Add(1)
	v.updateStakedGauge()
	return index, nil
}

// Close withdraws the matured stake at index, paying principal plus the
// reward at the current global rate back through the balance ledger.
// It returns the principal and reward paid.
func (v *Vault) Close(account nomad.Address, index uint64, now uint64) (*big.Int, *big.Int, error) {
	chk := v.state.NewCheckpoint()
	principal, reward, err := v.close(account, index, now)
	if err != nil {
		v.state.RevertTo(chk)
		logger.Info("close stake failed", "account", account, "index", index, "error", err)
		return nil, nil, err
	}
	return principal, reward, nil
}

func (v *Vault) close(account nomad.Address, index uint64, now uint64) (*big.Int, *big.Int, error) {
	if paused, err := v.Paused(); err != nil {
		return nil, nil, err
	} else if paused {
		return nil, nil, reverts.ErrPaused
	}

	count, err := v.repo.getCount(account)
	if err != nil {
		return nil, nil, err
	}
	if index >= count {
		return nil, nil, reverts.ErrStakeNotFound
	}

	rec, err := v.repo.getRecord(account, index)
	if err != nil {
		return nil, nil, err
	}
	if !rec.Active {
		return nil, nil, reverts.ErrStakeAlreadyWithdrawn
	}
	if !rec.Matured(now) {
		return nil, nil, reverts.NewNotMatured(rec.LockedUntil)
	}

	rate, err := v.params.Get(nomad.KeyRewardRate)
	if err != nil {
		return nil, nil, err
	}
	reward := rec.CalcReward(now, rate)

	// effects before interaction: the record turns terminal and the
	// aggregates settle before any external call, so a re-entrant close
	// on this index hits the Active check above
	rec.Active = false
	rec.RewardCheckpoint = now
	if err := v.repo.setRecord(account, index, rec); err != nil {
		return nil, nil, err
	}

	stats, err := v.repo.getStats(account)
	if err != nil {
		return nil, nil, err
	}
	stats.TotalStaked.Sub(stats.TotalStaked, rec.Amount)
	stats.RewardsPaid.Add(stats.RewardsPaid, reward)
	if err := v.repo.setStats(account, stats); err != nil {
		return nil, nil, err
	}
	if err := v.stats.SubStaked(rec.Amount); err != nil {
		return nil, nil, err
	}
	if err := v.stats.AddRewardsPaid(reward); err != nil {
		return nil, nil, err
	}

	payout := new(big.Int).Add(rec.Amount, reward)
	if err := v.ledger.CreditFromCustody(account, payout); err != nil {
		return nil, nil, err
	}

	logger.Info("closed stake", "account", account, "index", index, "principal", rec.Amount, "reward", reward)
	if v.auditor != nil {
		v.auditor.StakeClosed(account, index, rec.Amount, reward, now)
	}
	metricClosed().Add(1)
	v.updateStakedGauge()
	return rec.Amount, reward, nil
}

func (v *Vault) updateStakedGauge() {
	if staked, _, err := v.stats.Totals(); err == nil && staked.IsInt64() {
		metricTotalStake().Set(staked.Int64())
	}
}
