// Copyright (c) 2025 The NomadLink developers
//
// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package state

import (
	"bytes"

	"github.com/ethereum/go-ethereum/rlp"

	"github.com/Goodnessmbakara/nomadlink-contract/nomad"
	"github.com/Goodnessmbakara/nomadlink-contract/stackedmap"
)

// storageKey composite key of contract storage.
type storageKey struct {
	addr nomad.Address
	key  nomad.Bytes32
}

// State manages contract storage of all accounts.
//
// Writes are journaled on a stacked map so that a whole operation can be
// reverted with NewCheckpoint/RevertTo. Commit flattens the journal into
// the backing store. The host serializes operations, so State carries no
// locks of its own.
type State struct {
	store map[storageKey]rlp.RawValue
	sm    *stackedmap.StackedMap[storageKey, rlp.RawValue]
}

// New create a state instance over an empty backing store.
func New() *State {
	store := make(map[storageKey]rlp.RawValue)
	sm := stackedmap.New(func(key storageKey) (rlp.RawValue, bool) {
		v, ok := store[key]
		return v, ok
	})
	sm.Push() // base layer holding uncommitted writes
	return &State{store: store, sm: sm}
}

// GetStorage returns storage value for the given address and key.
func (s *State) GetStorage(addr nomad.Address, key nomad.Bytes32) (nomad.Bytes32, error) {
	raw, err := s.GetRawStorage(addr, key)
	if err != nil {
		return nomad.Bytes32{}, err
	}
	if len(raw) == 0 {
		return nomad.Bytes32{}, nil
	}
	kind, content, _, err := rlp.Split(raw)
	if err != nil {
		return nomad.Bytes32{}, err
	}
	if kind == rlp.List {
		// special case for rlp list, it should be customized storage value
		// return hash of raw data
		return nomad.Blake2b(raw), nil
	}
	return nomad.BytesToBytes32(content), nil
}

// SetStorage set storage value for the given address and key.
func (s *State) SetStorage(addr nomad.Address, key, value nomad.Bytes32) {
	if value.IsZero() {
		s.SetRawStorage(addr, key, nil)
		return
	}
	v, _ := rlp.EncodeToBytes(bytes.TrimLeft(value[:], "\x00"))
	s.SetRawStorage(addr, key, v)
}

// GetRawStorage returns storage value in rlp raw for given address and key.
func (s *State) GetRawStorage(addr nomad.Address, key nomad.Bytes32) (rlp.RawValue, error) {
	data, _ := s.sm.Get(storageKey{addr, key})
	return data, nil
}

// SetRawStorage set storage value in rlp raw.
func (s *State) SetRawStorage(addr nomad.Address, key nomad.Bytes32, raw rlp.RawValue) {
	s.sm.Put(storageKey{addr, key}, raw)
}

// EncodeStorage set storage value encoded by given enc method.
func (s *State) EncodeStorage(addr nomad.Address, key nomad.Bytes32, enc func() ([]byte, error)) error {
	raw, err := enc()
	if err != nil {
		return err
	}
	s.SetRawStorage(addr, key, raw)
	return nil
}

// DecodeStorage get and decode storage value.
func (s *State) DecodeStorage(addr nomad.Address, key nomad.Bytes32, dec func([]byte) error) error {
	raw, err := s.GetRawStorage(addr, key)
	if err != nil {
		return err
	}
	return dec(raw)
}

// NewCheckpoint makes a checkpoint of current state.
// It returns revision of the checkpoint.
func (s *State) NewCheckpoint() int {
	return s.sm.Push()
}

// RevertTo reverts state to the given revision.
func (s *State) RevertTo(revision int) {
	s.sm.PopTo(revision)
}

// Commit flattens journaled writes into the backing store and resets the
// journal. Pending checkpoints are collapsed.
func (s *State) Commit() {
	s.sm.Journal(func(key storageKey, value rlp.RawValue) bool {
		if len(value) == 0 {
			delete(s.store, key)
		} else {
			s.store[key] = value
		}
		return true
	})
	s.sm.PopTo(0)
	s.sm.Push()
}
