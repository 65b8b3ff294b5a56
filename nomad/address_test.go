// Copyright (c) 2025 The NomadLink developers
//
// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package nomad_test

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Goodnessmbakara/nomadlink-contract/nomad"
)

func TestParseAddress(t *testing.T) {
	addr, err := nomad.ParseAddress("0x0123456789012345678901234567890123456789")
	require.NoError(t, err)
	assert.Equal(t, "0x0123456789012345678901234567890123456789", addr.String())

	// prefix is optional
	addr2, err := nomad.ParseAddress("0123456789012345678901234567890123456789")
	require.NoError(t, err)
	assert.Equal(t, *addr, *addr2)

	_, err = nomad.ParseAddress("0x012345678901234567890123456789012345678")
	assert.Error(t, err)
	_, err = nomad.ParseAddress("zx0123456789012345678901234567890123456789")
	assert.Error(t, err)
}

func TestAddressJSON(t *testing.T) {
	addr := nomad.BytesToAddress([]byte("account"))
	data, err := json.Marshal(addr)
	require.NoError(t, err)

	var parsed nomad.Address
	require.NoError(t, json.Unmarshal(data, &parsed))
	assert.Equal(t, addr, parsed)

	assert.Error(t, json.Unmarshal([]byte(`123`), &parsed))
}

func TestAddressIsZero(t *testing.T) {
	assert.True(t, nomad.Address{}.IsZero())
	assert.False(t, nomad.BytesToAddress([]byte{1}).IsZero())
}
