// Copyright 2025 The Meridian Authors
//
// Use of this source code is governed by an MIT-style
// license that can be found in the LICENSE file or at
// https://opensource.org/licenses/MIT.

package database

import (
	"testing"

	"github.com/stretchr/testify/require"
	"gitlab.com/meridianchain/meridian/pkg/errors"
	"gitlab.com/meridianchain/meridian/protocol"
)

func TestMemoryStore(t *testing.T) {
	s := NewMemoryStore()

	_, err := s.Get([]byte("missing"))
	require.Equal(t, errors.NotFound, errors.Code(err))

	require.NoError(t, s.Put([]byte("a"), []byte{1}))
	v, err := s.Get([]byte("a"))
	require.NoError(t, err)
	require.Equal(t, []byte{1}, v)

	// The store keeps its own copy
	v[0] = 2
	v, err = s.Get([]byte("a"))
	require.NoError(t, err)
	require.Equal(t, []byte{1}, v)

	require.NoError(t, s.Delete([]byte("a")))
	_, err = s.Get([]byte("a"))
	require.Equal(t, errors.NotFound, errors.Code(err))
}

func TestAccountStore(t *testing.T) {
	accounts := NewAccountStore(NewMemoryStore())

	priv, err := protocol.GenerateKey()
	require.NoError(t, err)
	auth := protocol.AuthorityFromKey(protocol.KeyFor(priv), 1)
	in := &Account{ID: 100, Name: "alice", Owner: auth, Active: auth}
	require.NoError(t, accounts.Put(in))

	out, err := accounts.Get(100)
	require.NoError(t, err)
	require.Equal(t, in, out)

	_, err = accounts.Get(101)
	require.Equal(t, errors.NotFound, errors.Code(err))
}

func TestAccountStoreRejectsInvalidAuthority(t *testing.T) {
	accounts := NewAccountStore(NewMemoryStore())

	priv, err := protocol.GenerateKey()
	require.NoError(t, err)
	err = accounts.Put(&Account{ID: 7, Active: &protocol.Authority{
		WeightThreshold: 1,
		KeyAuths:        []protocol.KeyWeight{{Key: protocol.KeyFor(priv), Weight: 0}},
	}})
	require.Equal(t, errors.BadRequest, errors.Code(err))
}

func TestAuthorityAccessors(t *testing.T) {
	accounts := NewAccountStore(NewMemoryStore())

	priv, err := protocol.GenerateKey()
	require.NoError(t, err)
	active := protocol.AuthorityFromKey(protocol.KeyFor(priv), 1)
	require.NoError(t, accounts.Put(&Account{ID: 5, Active: active}))

	require.Equal(t, active, accounts.GetActive()(5))
	require.Nil(t, accounts.GetOwner()(5))

	// Missing accounts resolve to nil
	require.Nil(t, accounts.GetActive()(6))
	require.Nil(t, accounts.GetOwner()(6))
}
