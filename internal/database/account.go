// Copyright 2025 The Meridian Authors
//
// Use of this source code is governed by an MIT-style
// license that can be found in the LICENSE file or at
// https://opensource.org/licenses/MIT.

package database

import (
	"encoding/binary"
	"encoding/json"

	"gitlab.com/meridianchain/meridian/pkg/errors"
	"gitlab.com/meridianchain/meridian/protocol"
)

// Account is a stored account: its identity plus its two authority levels.
// Owner is the higher-privilege fallback for active.
type Account struct {
	ID     protocol.AccountID  `json:"id"`
	Name   string              `json:"name,omitempty"`
	Owner  *protocol.Authority `json:"owner,omitempty"`
	Active *protocol.Authority `json:"active,omitempty"`
}

// AccountStore persists accounts in a KeyValueStore.
type AccountStore struct {
	store KeyValueStore
}

func NewAccountStore(store KeyValueStore) *AccountStore {
	return &AccountStore{store: store}
}

func accountKey(id protocol.AccountID) []byte {
	key := make([]byte, 8+8)
	copy(key, "account/")
	binary.BigEndian.PutUint64(key[8:], uint64(id))
	return key
}

// Put stores an account.
func (s *AccountStore) Put(a *Account) error {
	for _, auth := range []*protocol.Authority{a.Owner, a.Active} {
		if auth == nil {
			continue
		}
		if err := auth.Validate(); err != nil {
			return errors.BadRequest.WithCauseAndFormat(err, "account %d has an invalid authority", a.ID)
		}
	}
	b, err := json.Marshal(a)
	if err != nil {
		return errors.InternalError.Wrap(err)
	}
	return s.store.Put(accountKey(a.ID), b)
}

// Get loads an account.
func (s *AccountStore) Get(id protocol.AccountID) (*Account, error) {
	b, err := s.store.Get(accountKey(id))
	if err != nil {
		return nil, err
	}
	a := new(Account)
	if err := json.Unmarshal(b, a); err != nil {
		return nil, errors.InternalError.WithCauseAndFormat(err, "account %d is corrupt", id)
	}
	return a, nil
}

// GetActive returns an accessor for active authorities, for the verifier.
// Missing accounts and read failures resolve to nil, which the verifier
// treats as unsatisfiable.
func (s *AccountStore) GetActive() func(protocol.AccountID) *protocol.Authority {
	return func(id protocol.AccountID) *protocol.Authority {
		a, err := s.Get(id)
		if err != nil {
			return nil
		}
		return a.Active
	}
}

// GetOwner returns an accessor for owner authorities.
func (s *AccountStore) GetOwner() func(protocol.AccountID) *protocol.Authority {
	return func(id protocol.AccountID) *protocol.Authority {
		a, err := s.Get(id)
		if err != nil {
			return nil
		}
		return a.Owner
	}
}
