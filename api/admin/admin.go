// Copyright (c) 2025 The NomadLink developers
//
// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package admin

import (
	"errors"
	"math/big"
	"net/http"
	"sync"

	"github.com/ethereum/go-ethereum/common/math"
	"github.com/gorilla/mux"
	pkgerrors "github.com/pkg/errors"

	"github.com/Goodnessmbakara/nomadlink-contract/api/utils"
	"github.com/Goodnessmbakara/nomadlink-contract/builtin/control"
	"github.com/Goodnessmbakara/nomadlink-contract/builtin/stakevault/reverts"
	"github.com/Goodnessmbakara/nomadlink-contract/nomad"
)

// Admin exposes the operator-gated controls. Every request carries the
// caller address; authorization happens in the control component against
// the operator registry.
type Admin struct {
	mu   *sync.Mutex
	ctrl *control.Control
}

// New create an admin API instance.
func New(mu *sync.Mutex, ctrl *control.Control) *Admin {
	return &Admin{mu, ctrl}
}

func convertError(err error) error {
	switch {
	case err == nil:
		return nil
	case errors.Is(err, reverts.ErrUnauthorized):
		return utils.Forbidden(err)
	case reverts.IsRevertErr(err):
		return utils.BadRequest(err)
	default:
		return err
	}
}

// SetRewardRateRequest body of the reward-rate call.
type SetRewardRateRequest struct {
	Caller  nomad.Address         `json:"caller"`
	RateBps *math.HexOrDecimal256 `json:"rateBps"`
}

func (a *Admin) handleSetRewardRate(w http.ResponseWriter, r *http.Request) error {
	var req SetRewardRateRequest
	if err := utils.ParseJSON(r.Body, &req); err != nil {
		return utils.BadRequest(pkgerrors.WithMessage(err, "body"))
	}

	a.mu.Lock()
	defer a.mu.Unlock()

	if err := a.ctrl.SetRewardRate(req.Caller, (*big.Int)(req.RateBps)); err != nil {
		return convertError(err)
	}
	return utils.WriteJSON(w, utils.M{"ok": true})
}

// SetLockBoundsRequest body of the lock-bounds call.
type SetLockBoundsRequest struct {
	Caller        nomad.Address `json:"caller"`
	MinLockPeriod uint64        `json:"minLockPeriod"`
	MaxLockPeriod uint64        `json:"maxLockPeriod"`
}

func (a *Admin) handleSetLockBounds(w http.ResponseWriter, r *http.Request) error {
	var req SetLockBoundsRequest
	if err := utils.ParseJSON(r.Body, &req); err != nil {
		return utils.BadRequest(pkgerrors.WithMessage(err, "body"))
	}

	a.mu.Lock()
	defer a.mu.Unlock()

	if err := a.ctrl.SetLockPeriodBounds(req.Caller, req.MinLockPeriod, req.MaxLockPeriod); err != nil {
		return convertError(err)
	}
	return utils.WriteJSON(w, utils.M{"ok": true})
}

// PauseRequest body of the pause and unpause calls.
type PauseRequest struct {
	Caller nomad.Address `json:"caller"`
}

func (a *Admin) handlePause(pause bool) utils.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) error {
		var req PauseRequest
		if err := utils.ParseJSON(r.Body, &req); err != nil {
			return utils.BadRequest(pkgerrors.WithMessage(err, "body"))
		}

		a.mu.Lock()
		defer a.mu.Unlock()

		var err error
		if pause {
			err = a.ctrl.Pause(req.Caller)
		} else {
			err = a.ctrl.Unpause(req.Caller)
		}
		if err != nil {
			return convertError(err)
		}
		return utils.WriteJSON(w, utils.M{"ok": true})
	}
}

// EmergencyWithdrawRequest body of the emergency-withdraw call.
type EmergencyWithdrawRequest struct {
	Caller    nomad.Address         `json:"caller"`
	Recipient nomad.Address         `json:"recipient"`
	Amount    *math.HexOrDecimal256 `json:"amount"`
}

func (a *Admin) handleEmergencyWithdraw(w http.ResponseWriter, r *http.Request) error {
	var req EmergencyWithdrawRequest
	if err := utils.ParseJSON(r.Body, &req); err != nil {
		return utils.BadRequest(pkgerrors.WithMessage(err, "body"))
	}

	a.mu.Lock()
	defer a.mu.Unlock()

	if err := a.ctrl.EmergencyWithdraw(req.Caller, req.Recipient, (*big.Int)(req.Amount)); err != nil {
		return convertError(err)
	}
	return utils.WriteJSON(w, utils.M{"ok": true})
}

// Mount attaches the admin endpoints under pathPrefix.
func (a *Admin) Mount(root *mux.Router, pathPrefix string) {
	sub := root.PathPrefix(pathPrefix).Subrouter()

	sub.Path("/reward-rate").
		Methods(http.MethodPost).
		Name("POST /admin/reward-rate").
		HandlerFunc(utils.WrapHandlerFunc(a.handleSetRewardRate))
	sub.Path("/lock-bounds").
		Methods(http.MethodPost).
		Name("POST /admin/lock-bounds").
		HandlerFunc(utils.WrapHandlerFunc(a.handleSetLockBounds))
	sub.Path("/pause").
		Methods(http.MethodPost).
		Name("POST /admin/pause").
		HandlerFunc(utils.WrapHandlerFunc(a.handlePause(true)))
	sub.Path("/unpause").
		Methods(http.MethodPost).
		Name("POST /admin/unpause").
		HandlerFunc(utils.WrapHandlerFunc(a.handlePause(false)))
	sub.Path("/emergency-withdraw").
		Methods(http.MethodPost).
		Name("POST /admin/emergency-withdraw").
		HandlerFunc(utils.WrapHandlerFunc(a.handleEmergencyWithdraw))
}
