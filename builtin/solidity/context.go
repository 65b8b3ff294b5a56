// Copyright (c) 2025 The NomadLink developers
//
// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package solidity

import (
	"github.com/Goodnessmbakara/nomadlink-contract/nomad"
	"github.com/Goodnessmbakara/nomadlink-contract/state"
)

// Context binds a contract address to the state it stores into.
type Context struct {
	address nomad.Address
	state   *state.State
}

func NewContext(address nomad.Address, state *state.State) *Context {
	return &Context{
		address: address,
		state:   state,
	}
}

func (c *Context) Address() nomad.Address {
	return c.address
}

func (c *Context) State() *state.State {
	return c.state
}
