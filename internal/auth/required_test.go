// Copyright 2025 The Meridian Authors
//
// Use of this source code is governed by an MIT-style
// license that can be found in the LICENSE file or at
// https://opensource.org/licenses/MIT.

package auth_test

import (
	"testing"

	"github.com/stretchr/testify/require"
	"gitlab.com/meridianchain/meridian/internal/auth"
	"gitlab.com/meridianchain/meridian/protocol"
)

func TestRequiredSignatures(t *testing.T) {
	_, k1 := testKey(t, 1)
	_, k2 := testKey(t, 2)
	const x protocol.AccountID = 10

	a := &protocol.Authority{WeightThreshold: 2}
	a.AddKey(k1, 1)
	a.AddKey(k2, 1)

	c := newChain()
	c.active[x] = a

	tx := makeTx(&protocol.Transfer{From: x, To: 11, Amount: 100})
	keys, err := auth.RequiredSignatures(tx, testChainID, []protocol.PublicKey{k1, k2}, c.options())
	require.NoError(t, err)
	require.ElementsMatch(t, []protocol.PublicKey{k1, k2}, keys)
}

func TestRequiredSignaturesExcludesSigners(t *testing.T) {
	// A key that already signed is not "required", only the missing one is
	p1, k1 := testKey(t, 1)
	_, k2 := testKey(t, 2)
	const x protocol.AccountID = 10

	a := &protocol.Authority{WeightThreshold: 2}
	a.AddKey(k1, 1)
	a.AddKey(k2, 1)

	c := newChain()
	c.active[x] = a

	tx := signedBy(makeTx(&protocol.Transfer{From: x, To: 11, Amount: 100}), p1)
	keys, err := auth.RequiredSignatures(tx, testChainID, []protocol.PublicKey{k1, k2}, c.options())
	require.NoError(t, err)
	require.Equal(t, []protocol.PublicKey{k2}, keys)
}

func TestRequiredSignaturesShortCircuits(t *testing.T) {
	// With a threshold of 1, only one of the two candidates is selected
	_, k1 := testKey(t, 1)
	_, k2 := testKey(t, 2)
	const x protocol.AccountID = 10

	a := &protocol.Authority{WeightThreshold: 1}
	a.AddKey(k1, 1)
	a.AddKey(k2, 1)

	c := newChain()
	c.active[x] = a

	tx := makeTx(&protocol.Transfer{From: x, To: 11, Amount: 100})
	keys, err := auth.RequiredSignatures(tx, testChainID, []protocol.PublicKey{k1, k2}, c.options())
	require.NoError(t, err)
	require.Len(t, keys, 1)
}

func TestMinimize(t *testing.T) {
	_, k1 := testKey(t, 1)
	_, k2 := testKey(t, 2)
	_, k3 := testKey(t, 3)
	const x protocol.AccountID = 10

	a := &protocol.Authority{WeightThreshold: 2}
	a.AddKey(k1, 1)
	a.AddKey(k2, 1)
	a.AddKey(k3, 1)

	c := newChain()
	c.active[x] = a

	available := []protocol.PublicKey{k1, k2, k3}
	tx := makeTx(&protocol.Transfer{From: x, To: 11, Amount: 100})
	keys, err := auth.MinimizeRequiredSignatures(tx, testChainID, available, c.options())
	require.NoError(t, err)

	// The result is a subset of the candidates and exactly sufficient
	require.Subset(t, available, keys)
	require.Len(t, keys, 2)
	require.NoError(t, auth.Verify(tx.Operations, keys, c.options()))
}

func TestMinimizeDeterministic(t *testing.T) {
	_, k1 := testKey(t, 1)
	_, k2 := testKey(t, 2)
	const x protocol.AccountID = 10

	a := &protocol.Authority{WeightThreshold: 1}
	a.AddKey(k1, 1)
	a.AddKey(k2, 1)

	c := newChain()
	c.active[x] = a

	tx := makeTx(&protocol.Transfer{From: x, To: 11, Amount: 100})
	first, err := auth.MinimizeRequiredSignatures(tx, testChainID, []protocol.PublicKey{k1, k2}, c.options())
	require.NoError(t, err)
	for i := 0; i < 5; i++ {
		again, err := auth.MinimizeRequiredSignatures(tx, testChainID, []protocol.PublicKey{k2, k1}, c.options())
		require.NoError(t, err)
		require.Equal(t, first, again)
	}
}

func TestMinimizeMultipleAccounts(t *testing.T) {
	_, k1 := testKey(t, 1)
	_, k2 := testKey(t, 2)
	const x, y protocol.AccountID = 10, 11

	c := newChain()
	c.active[x] = protocol.AuthorityFromKey(k1, 1)
	c.active[y] = protocol.AuthorityFromKey(k2, 1)

	tx := makeTx(
		&protocol.Transfer{From: x, To: 12, Amount: 100},
		&protocol.Transfer{From: y, To: 12, Amount: 100},
	)
	keys, err := auth.MinimizeRequiredSignatures(tx, testChainID, []protocol.PublicKey{k1, k2}, c.options())
	require.NoError(t, err)
	require.ElementsMatch(t, []protocol.PublicKey{k1, k2}, keys)
}
