// Copyright (c) 2025 The NomadLink developers
//
// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package builtin

import (
	"github.com/Goodnessmbakara/nomadlink-contract/builtin/authority"
	"github.com/Goodnessmbakara/nomadlink-contract/builtin/control"
	"github.com/Goodnessmbakara/nomadlink-contract/builtin/params"
	"github.com/Goodnessmbakara/nomadlink-contract/builtin/reputation"
	"github.com/Goodnessmbakara/nomadlink-contract/builtin/stakevault"
	"github.com/Goodnessmbakara/nomadlink-contract/builtin/token"
	"github.com/Goodnessmbakara/nomadlink-contract/builtin/travelpass"
	"github.com/Goodnessmbakara/nomadlink-contract/nomad"
	"github.com/Goodnessmbakara/nomadlink-contract/state"
)

// Well-known addresses of built-in contracts.
var (
	ParamsAddress     = nomad.BytesToAddress([]byte("nl-params"))
	AuthorityAddress  = nomad.BytesToAddress([]byte("nl-authority"))
	TokenAddress      = nomad.BytesToAddress([]byte("nl-token"))
	StakeVaultAddress = nomad.BytesToAddress([]byte("nl-stakevault"))
	ReputationAddress = nomad.BytesToAddress([]byte("nl-reputation"))
	TravelPassAddress = nomad.BytesToAddress([]byte("nl-travelpass"))
)

// Builtin contracts binding.
var (
	Params     = &paramsContract{ParamsAddress}
	Authority  = &authorityContract{AuthorityAddress}
	Token      = &tokenContract{TokenAddress}
	StakeVault = &stakeVaultContract{StakeVaultAddress}
	Reputation = &reputationContract{ReputationAddress}
	TravelPass = &travelPassContract{TravelPassAddress}
)

type (
	paramsContract     struct{ Address nomad.Address }
	authorityContract  struct{ Address nomad.Address }
	tokenContract      struct{ Address nomad.Address }
	stakeVaultContract struct{ Address nomad.Address }
	reputationContract struct{ Address nomad.Address }
	travelPassContract struct{ Address nomad.Address }
)

func (p *paramsContract) WithState(state *state.State) *params.Params {
	return params.New(p.Address, state)
}

func (a *authorityContract) WithState(state *state.State) *authority.Authority {
	return authority.New(a.Address, state)
}

func (t *tokenContract) WithState(state *state.State) *token.Token {
	return token.New(t.Address, state, StakeVaultAddress)
}

func (s *stakeVaultContract) WithState(state *state.State) *stakevault.Vault {
	return stakevault.New(
		s.Address,
		state,
		Params.WithState(state),
		Token.WithState(state),
	)
}

func (r *reputationContract) WithState(state *state.State) *reputation.Reputation {
	return reputation.New(r.Address, state)
}

func (t *travelPassContract) WithState(state *state.State) *travelpass.TravelPass {
	return travelpass.New(t.Address, state)
}

// NewControl binds the admin-control component over the given state.
func NewControl(state *state.State) *control.Control {
	return control.New(
		state,
		Params.WithState(state),
		Authority.WithState(state),
		Token.WithState(state),
	)
}
