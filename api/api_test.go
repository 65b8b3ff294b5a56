// Copyright (c) 2025 The NomadLink developers
//
// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package api_test

import (
	"bytes"
	"encoding/json"
	"io"
	"math/big"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Goodnessmbakara/nomadlink-contract/api"
	"github.com/Goodnessmbakara/nomadlink-contract/builtin"
	"github.com/Goodnessmbakara/nomadlink-contract/genesis"
	"github.com/Goodnessmbakara/nomadlink-contract/nomad"
	"github.com/Goodnessmbakara/nomadlink-contract/state"
)

const day = uint64(24 * 60 * 60)

type testServer struct {
	t   *testing.T
	ts  *httptest.Server
	now uint64
}

func newTestServer(t *testing.T) *testServer {
	st := state.New()
	require.NoError(t, genesis.NewDevnet().Build(st))

	srv := &testServer{t: t, now: 1_700_000_000}
	vault := builtin.StakeVault.WithState(st)
	ctrl := builtin.NewControl(st)
	handler := api.New(vault, ctrl, func() uint64 { return srv.now })
	srv.ts = httptest.NewServer(handler)
	t.Cleanup(srv.ts.Close)
	return srv
}

func (s *testServer) request(method, path string, body any) (int, []byte) {
	var rd io.Reader
	if body != nil {
		data, err := json.Marshal(body)
		require.NoError(s.t, err)
		rd = bytes.NewReader(data)
	}
	req, err := http.NewRequest(method, s.ts.URL+path, rd)
	require.NoError(s.t, err)
	resp, err := http.DefaultClient.Do(req)
	require.NoError(s.t, err)
	defer resp.Body.Close()
	data, err := io.ReadAll(resp.Body)
	require.NoError(s.t, err)
	return resp.StatusCode, data
}

func devOperator() nomad.Address {
	return nomad.BytesToAddress([]byte("devnet-operator"))
}

func TestStakeLifecycleOverHTTP(t *testing.T) {
	srv := newTestServer(t)
	account := devOperator().String()

	code, body := srv.request(http.MethodPost, "/staking/accounts/"+account+"/stakes",
		map[string]any{"amount": "0x3e8", "lockPeriod": 30 * day})
	require.Equal(t, http.StatusOK, code, string(body))
	var opened struct {
		Index uint64 `json:"index"`
	}
	require.NoError(t, json.Unmarshal(body, &opened))
	assert.Equal(t, uint64(0), opened.Index)

	code, body = srv.request(http.MethodGet, "/staking/accounts/"+account+"/stakes", nil)
	require.Equal(t, http.StatusOK, code)
	var stakes []struct {
		Index       uint64 `json:"index"`
		Active      bool   `json:"active"`
		LockedUntil uint64 `json:"lockedUntil"`
	}
	require.NoError(t, json.Unmarshal(body, &stakes))
	require.Len(t, stakes, 1)
	assert.True(t, stakes[0].Active)
	assert.Equal(t, srv.now+30*day, stakes[0].LockedUntil)

	// closing before maturity is rejected
	code, body = srv.request(http.MethodPost, "/staking/accounts/"+account+"/stakes/0/close", nil)
	assert.Equal(t, http.StatusBadRequest, code, string(body))

	srv.now += 30 * day
	code, body = srv.request(http.MethodPost, "/staking/accounts/"+account+"/stakes/0/close", nil)
	require.Equal(t, http.StatusOK, code, string(body))
	var closed struct {
		Principal *big.Int `json:"principal"`
		Reward    *big.Int `json:"reward"`
	}
	require.NoError(t, json.Unmarshal(body, &closed))
	// 1000 at 800 bps over 30 of 365 days
	assert.Equal(t, big.NewInt(1000), closed.Principal)
	assert.Equal(t, big.NewInt(6), closed.Reward)

	code, body = srv.request(http.MethodPost, "/staking/accounts/"+account+"/stakes/0/close", nil)
	assert.Equal(t, http.StatusBadRequest, code, string(body))
}

func TestStakeQueries(t *testing.T) {
	srv := newTestServer(t)
	account := devOperator().String()

	code, _ := srv.request(http.MethodGet, "/staking/accounts/"+account+"/stakes/0", nil)
	assert.Equal(t, http.StatusNotFound, code)

	code, body := srv.request(http.MethodPost, "/staking/accounts/"+account+"/stakes",
		map[string]any{"amount": "0x3e8", "lockPeriod": 30 * day})
	require.Equal(t, http.StatusOK, code, string(body))

	code, body = srv.request(http.MethodGet, "/staking/accounts/"+account+"/totals", nil)
	require.Equal(t, http.StatusOK, code)
	var totals struct {
		TotalStaked *big.Int `json:"totalStaked"`
	}
	require.NoError(t, json.Unmarshal(body, &totals))
	assert.Equal(t, big.NewInt(1000), totals.TotalStaked)

	code, body = srv.request(http.MethodGet, "/staking/totals", nil)
	require.Equal(t, http.StatusOK, code)
	var global struct {
		TotalStaked *big.Int `json:"totalStaked"`
		Paused      bool     `json:"paused"`
	}
	require.NoError(t, json.Unmarshal(body, &global))
	assert.Equal(t, big.NewInt(1000), global.TotalStaked)
	assert.False(t, global.Paused)

	code, _ = srv.request(http.MethodGet, "/staking/accounts/not-an-address/stakes", nil)
	assert.Equal(t, http.StatusBadRequest, code)
}

func TestAdminEndpoints(t *testing.T) {
	srv := newTestServer(t)
	operator := devOperator().String()
	stranger := nomad.BytesToAddress([]byte("stranger")).String()

	code, body := srv.request(http.MethodPost, "/admin/reward-rate",
		map[string]any{"caller": stranger, "rateBps": "0x640"})
	assert.Equal(t, http.StatusForbidden, code, string(body))

	code, body = srv.request(http.MethodPost, "/admin/reward-rate",
		map[string]any{"caller": operator, "rateBps": "0x640"})
	assert.Equal(t, http.StatusOK, code, string(body))

	code, body = srv.request(http.MethodPost, "/admin/lock-bounds",
		map[string]any{"caller": operator, "minLockPeriod": 2 * day, "maxLockPeriod": day})
	assert.Equal(t, http.StatusBadRequest, code, string(body))

	code, body = srv.request(http.MethodPost, "/admin/pause",
		map[string]any{"caller": operator})
	require.Equal(t, http.StatusOK, code, string(body))

	// open while paused is rejected
	code, body = srv.request(http.MethodPost, "/staking/accounts/"+operator+"/stakes",
		map[string]any{"amount": "0x3e8", "lockPeriod": 30 * day})
	assert.Equal(t, http.StatusForbidden, code, string(body))

	code, body = srv.request(http.MethodPost, "/admin/unpause",
		map[string]any{"caller": operator})
	require.Equal(t, http.StatusOK, code, string(body))

	code, body = srv.request(http.MethodPost, "/staking/accounts/"+operator+"/stakes",
		map[string]any{"amount": "0x3e8", "lockPeriod": 30 * day})
	assert.Equal(t, http.StatusOK, code, string(body))

	code, body = srv.request(http.MethodPost, "/admin/emergency-withdraw",
		map[string]any{"caller": operator, "recipient": stranger, "amount": "0x64"})
	assert.Equal(t, http.StatusOK, code, string(body))
}
