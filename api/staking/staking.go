// Copyright (c) 2025 The NomadLink developers
//
// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package staking

import (
	"errors"
	"math/big"
	"net/http"
	"strconv"
	"sync"

	"github.com/gorilla/mux"
	pkgerrors "github.com/pkg/errors"

	"github.com/Goodnessmbakara/nomadlink-contract/api/utils"
	"github.com/Goodnessmbakara/nomadlink-contract/builtin/stakevault"
	"github.com/Goodnessmbakara/nomadlink-contract/builtin/stakevault/reverts"
	"github.com/Goodnessmbakara/nomadlink-contract/nomad"
)

// Staking exposes the stake ledger over HTTP. All state access is
// serialized by a mutex shared with the admin endpoints.
type Staking struct {
	mu    *sync.Mutex
	vault *stakevault.Vault
	now   func() uint64
}

// New create a staking API instance.
func New(mu *sync.Mutex, vault *stakevault.Vault, now func() uint64) *Staking {
	return &Staking{mu, vault, now}
}

func parseAddress(r *http.Request) (nomad.Address, error) {
	addr, err := nomad.ParseAddress(mux.Vars(r)["address"])
	if err != nil {
		return nomad.Address{}, utils.BadRequest(pkgerrors.WithMessage(err, "address"))
	}
	return *addr, nil
}

func parseIndex(r *http.Request) (uint64, error) {
	index, err := strconv.ParseUint(mux.Vars(r)["index"], 10, 64)
	if err != nil {
		return 0, utils.BadRequest(pkgerrors.WithMessage(err, "index"))
	}
	return index, nil
}

// convertError maps ledger revert conditions onto http statuses.
func convertError(err error) error {
	switch {
	case err == nil:
		return nil
	case errors.Is(err, reverts.ErrStakeNotFound):
		return utils.NotFound(err)
	case errors.Is(err, reverts.ErrPaused), errors.Is(err, reverts.ErrUnauthorized):
		return utils.Forbidden(err)
	case reverts.IsRevertErr(err):
		return utils.BadRequest(err)
	default:
		return err
	}
}

func (s *Staking) handleGetStakes(w http.ResponseWriter, r *http.Request) error {
	account, err := parseAddress(r)
	if err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	now := s.now()
	count, err := s.vault.StakeCount(account)
	if err != nil {
		return err
	}
	stakes := make([]*Stake, 0, count)
	for i := uint64(0); i < count; i++ {
		rec, err := s.vault.GetStake(account, i)
		if err != nil {
			return convertError(err)
		}
		reward, err := s.vault.CalculateReward(account, i, now)
		if err != nil {
			return convertError(err)
		}
		stakes = append(stakes, convertStake(i, rec, reward))
	}
	return utils.WriteJSON(w, stakes)
}

func (s *Staking) handleGetStake(w http.ResponseWriter, r *http.Request) error {
	account, err := parseAddress(r)
	if err != nil {
		return err
	}
	index, err := parseIndex(r)
	if err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	rec, err := s.vault.GetStake(account, index)
	if err != nil {
		return convertError(err)
	}
	reward, err := s.vault.CalculateReward(account, index, s.now())
	if err != nil {
		return convertError(err)
	}
	return utils.WriteJSON(w, convertStake(index, rec, reward))
}

func (s *Staking) handleOpenStake(w http.ResponseWriter, r *http.Request) error {
	account, err := parseAddress(r)
	if err != nil {
		return err
	}
	var req OpenStakeRequest
	if err := utils.ParseJSON(r.Body, &req); err != nil {
		return utils.BadRequest(pkgerrors.WithMessage(err, "body"))
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	index, err := s.vault.Open(account, (*big.Int)(req.Amount), req.LockPeriod, s.now())
	if err != nil {
		return convertError(err)
	}
	return utils.WriteJSON(w, &OpenStakeResponse{Index: index})
}

func (s *Staking) handleCloseStake(w http.ResponseWriter, r *http.Request) error {
	account, err := parseAddress(r)
	if err != nil {
		return err
	}
	index, err := parseIndex(r)
	if err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	principal, reward, err := s.vault.Close(account, index, s.now())
	if err != nil {
		return convertError(err)
	}
	return utils.WriteJSON(w, convertCloseResult(principal, reward))
}

func (s *Staking) handleGetAccountTotals(w http.ResponseWriter, r *http.Request) error {
	account, err := parseAddress(r)
	if err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	stats, err := s.vault.AccountTotals(account)
	if err != nil {
		return err
	}
	pending, err := s.vault.PendingRewardTotal(account, s.now())
	if err != nil {
		return err
	}
	return utils.WriteJSON(w, convertAccountTotals(stats, pending))
}

func (s *Staking) handleGetTotals(w http.ResponseWriter, _ *http.Request) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	staked, rewardsPaid, err := s.vault.Totals()
	if err != nil {
		return err
	}
	paused, err := s.vault.Paused()
	if err != nil {
		return err
	}
	return utils.WriteJSON(w, convertTotals(staked, rewardsPaid, paused))
}

// Mount attaches the staking endpoints under pathPrefix.
func (s *Staking) Mount(root *mux.Router, pathPrefix string) {
	sub := root.PathPrefix(pathPrefix).Subrouter()

	sub.Path("/totals").
		Methods(http.MethodGet).
		Name("GET /staking/totals").
		HandlerFunc(utils.WrapHandlerFunc(s.handleGetTotals))
	sub.Path("/accounts/{address}/totals").
		Methods(http.MethodGet).
		Name("GET /staking/accounts/{address}/totals").
		HandlerFunc(utils.WrapHandlerFunc(s.handleGetAccountTotals))
	sub.Path("/accounts/{address}/stakes").
		Methods(http.MethodGet).
		Name("GET /staking/accounts/{address}/stakes").
		HandlerFunc(utils.WrapHandlerFunc(s.handleGetStakes))
	sub.Path("/accounts/{address}/stakes").
		Methods(http.MethodPost).
		Name("POST /staking/accounts/{address}/stakes").
		HandlerFunc(utils.WrapHandlerFunc(s.handleOpenStake))
	sub.Path("/accounts/{address}/stakes/{index}").
		Methods(http.MethodGet).
		Name("GET /staking/accounts/{address}/stakes/{index}").
		HandlerFunc(utils.WrapHandlerFunc(s.handleGetStake))
	sub.Path("/accounts/{address}/stakes/{index}/close").
		Methods(http.MethodPost).
		Name("POST /staking/accounts/{address}/stakes/{index}/close").
		HandlerFunc(utils.WrapHandlerFunc(s.handleCloseStake))
}
