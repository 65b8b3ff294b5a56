// Copyright (c) 2025 The NomadLink developers
//
// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package authority_test

import (
	"math/big"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/Goodnessmbakara/nomadlink-contract/builtin/authority"
	"github.com/Goodnessmbakara/nomadlink-contract/nomad"
	"github.com/Goodnessmbakara/nomadlink-contract/state"
)

func TestAuthority(t *testing.T) {
	st := state.New()
	aut := authority.New(nomad.BytesToAddress([]byte("aut")), st)

	p1 := nomad.BytesToAddress([]byte("p1"))
	p2 := nomad.BytesToAddress([]byte("p2"))
	ident := nomad.BytesToBytes32([]byte("op-1"))

	listed, err := aut.IsListed(p1)
	assert.NoError(t, err)
	assert.False(t, listed)

	ok, err := aut.Add(p1, ident)
	assert.NoError(t, err)
	assert.True(t, ok)

	// duplicate add is a no-op
	ok, err = aut.Add(p1, ident)
	assert.NoError(t, err)
	assert.False(t, ok)

	listed, err = aut.IsListed(p1)
	assert.NoError(t, err)
	assert.True(t, listed)

	listed, gotIdent, err := aut.Get(p1)
	assert.NoError(t, err)
	assert.True(t, listed)
	assert.Equal(t, ident, gotIdent)

	count, err := aut.Count()
	assert.NoError(t, err)
	assert.Equal(t, big.NewInt(1), count)

	// revoke keeps the entry but unlists it
	ok, err = aut.Revoke(p1)
	assert.NoError(t, err)
	assert.True(t, ok)

	listed, _ = aut.IsListed(p1)
	assert.False(t, listed)

	ok, err = aut.Revoke(p1)
	assert.NoError(t, err)
	assert.False(t, ok)

	// unknown member revoke is a no-op
	ok, err = aut.Revoke(p2)
	assert.NoError(t, err)
	assert.False(t, ok)

	count, _ = aut.Count()
	assert.Equal(t, big.NewInt(0).String(), count.String())
}
