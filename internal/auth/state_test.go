// Copyright 2025 The Meridian Authors
//
// Use of this source code is governed by an MIT-style
// license that can be found in the LICENSE file or at
// https://opensource.org/licenses/MIT.

package auth_test

import (
	"testing"

	"github.com/btcsuite/btcd/btcec/v2"
	"github.com/stretchr/testify/require"
	"gitlab.com/meridianchain/meridian/internal/auth"
	"gitlab.com/meridianchain/meridian/protocol"
)

// testKey derives a deterministic key pair from a seed.
func testKey(t *testing.T, seed byte) (*btcec.PrivateKey, protocol.PublicKey) {
	t.Helper()
	b := make([]byte, 32)
	b[31] = seed
	b[0] = 1
	priv, _ := btcec.PrivKeyFromBytes(b)
	return priv, protocol.KeyFor(priv)
}

// chain is an in-memory authority source for tests.
type chain struct {
	active map[protocol.AccountID]*protocol.Authority
	owner  map[protocol.AccountID]*protocol.Authority
}

func newChain() *chain {
	return &chain{
		active: map[protocol.AccountID]*protocol.Authority{},
		owner:  map[protocol.AccountID]*protocol.Authority{},
	}
}

func (c *chain) getActive(id protocol.AccountID) *protocol.Authority { return c.active[id] }
func (c *chain) getOwner(id protocol.AccountID) *protocol.Authority  { return c.owner[id] }

func (c *chain) options() auth.Options {
	return auth.Options{
		GetActive:    c.getActive,
		GetOwner:     c.getOwner,
		MaxRecursion: protocol.SigCheckDepthLimit,
	}
}

func newState(c *chain, sigKeys, available []protocol.PublicKey) *auth.State {
	return auth.NewState(sigKeys, available, c.getActive, c.getOwner, false, protocol.SigCheckDepthLimit)
}

func TestTrivialThreshold(t *testing.T) {
	// A zero threshold is satisfied by anything, including nothing
	c := newChain()
	s := newState(c, nil, nil)
	require.True(t, s.CheckAuthority(&protocol.Authority{WeightThreshold: 0}, 0))
}

func TestNilAuthority(t *testing.T) {
	c := newChain()
	s := newState(c, nil, nil)
	require.False(t, s.CheckAuthority(nil, 0))
}

func TestUnsatisfiableAuthority(t *testing.T) {
	_, k1 := testKey(t, 1)
	_, k2 := testKey(t, 2)

	a := &protocol.Authority{WeightThreshold: 5}
	a.AddKey(k1, 1)
	a.AddKey(k2, 2)
	require.True(t, a.IsImpossible())

	c := newChain()
	s := newState(c, []protocol.PublicKey{k1, k2}, nil)
	require.False(t, s.CheckAuthority(a, 0))
}

func TestAddressReconciliation(t *testing.T) {
	_, k1 := testKey(t, 1)

	for _, addr := range protocol.KeyAddresses(k1) {
		a := new(protocol.Authority)
		a.WeightThreshold = 1
		a.AddAddress(addr, 1)

		c := newChain()
		s := newState(c, []protocol.PublicKey{k1}, nil)
		require.True(t, s.CheckAuthority(a, 0), "address %v should match the key", addr)
	}
}

func TestAddressOfUnrelatedKey(t *testing.T) {
	_, k1 := testKey(t, 1)
	_, k2 := testKey(t, 2)

	a := new(protocol.Authority)
	a.WeightThreshold = 1
	a.AddAddress(protocol.NativeAddress(k2), 1)

	c := newChain()
	s := newState(c, []protocol.PublicKey{k1}, nil)
	require.False(t, s.CheckAuthority(a, 0))
}

func TestAvailableKeySelection(t *testing.T) {
	// An available key is not a signature, but the search may select it
	_, k1 := testKey(t, 1)

	c := newChain()
	s := newState(c, nil, []protocol.PublicKey{k1})
	require.True(t, s.SignedByKey(k1))
	require.Equal(t, []protocol.PublicKey{k1}, s.ProvidedKeys())
}

func TestDelegation(t *testing.T) {
	// X delegates to Y, Y's active authority names K1
	_, k1 := testKey(t, 1)
	const x, y protocol.AccountID = 10, 11

	c := newChain()
	xAuth := &protocol.Authority{WeightThreshold: 1}
	xAuth.AddAccount(y, 1)
	c.active[x] = xAuth
	c.active[y] = protocol.AuthorityFromKey(k1, 1)

	s := newState(c, []protocol.PublicKey{k1}, nil)
	require.True(t, s.CheckAccount(x))
}

func TestRecursionBound(t *testing.T) {
	// A delegation chain of depth maxRecursion resolves; one link deeper does
	// not, silently
	_, k1 := testKey(t, 1)
	const max = protocol.SigCheckDepthLimit

	build := func(links int) *chain {
		c := newChain()
		for i := 0; i < links; i++ {
			a := &protocol.Authority{WeightThreshold: 1}
			a.AddAccount(protocol.AccountID(100+i+1), 1)
			c.active[protocol.AccountID(100+i)] = a
		}
		c.active[protocol.AccountID(100+links)] = protocol.AuthorityFromKey(k1, 1)
		return c
	}

	c := build(max)
	s := newState(c, []protocol.PublicKey{k1}, nil)
	require.True(t, s.CheckAccount(100))

	c = build(max + 1)
	s = newState(c, []protocol.PublicKey{k1}, nil)
	require.False(t, s.CheckAccount(100))
}

func TestApprovedAccountWeight(t *testing.T) {
	// A pre-approved delegate contributes weight with no signatures at all
	const x, y protocol.AccountID = 10, 11

	c := newChain()
	xAuth := &protocol.Authority{WeightThreshold: 1}
	xAuth.AddAccount(y, 1)
	c.active[x] = xAuth

	s := newState(c, nil, nil)
	s.Approve(y)
	require.True(t, s.CheckAccount(x))
}

func TestRemoveUnusedSignatures(t *testing.T) {
	_, k1 := testKey(t, 1)
	_, k2 := testKey(t, 2)

	c := newChain()
	s := newState(c, []protocol.PublicKey{k1, k2}, nil)
	require.True(t, s.CheckAuthority(protocol.AuthorityFromKey(k1, 1), 0))

	require.True(t, s.RemoveUnusedSignatures())
	require.Equal(t, []protocol.PublicKey{k1}, s.ProvidedKeys())
	require.False(t, s.RemoveUnusedSignatures())
}
