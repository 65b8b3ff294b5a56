// Copyright (c) 2025 The NomadLink developers
//
// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package params

import (
	"math/big"

	"github.com/Goodnessmbakara/nomadlink-contract/nomad"
	"github.com/Goodnessmbakara/nomadlink-contract/state"
)

// Params binder of the governance parameters store.
type Params struct {
	addr  nomad.Address
	state *state.State
}

// New create a new instance.
func New(addr nomad.Address, state *state.State) *Params {
	return &Params{addr, state}
}

// Get native way to get param.
func (p *Params) Get(key nomad.Bytes32) (*big.Int, error) {
	v, err := p.state.GetStorage(p.addr, key)
	if err != nil {
		return nil, err
	}
	return new(big.Int).SetBytes(v.Bytes()), nil
}

// Set native way to set param.
func (p *Params) Set(key nomad.Bytes32, value *big.Int) {
	p.state.SetStorage(p.addr, key, nomad.BytesToBytes32(value.Bytes()))
}
