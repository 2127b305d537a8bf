// Copyright 2025 The Meridian Authors
//
// Use of this source code is governed by an MIT-style
// license that can be found in the LICENSE file or at
// https://opensource.org/licenses/MIT.

package protocol_test

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/require"
	. "gitlab.com/meridianchain/meridian/protocol"
)

func TestAuthorityEntriesSorted(t *testing.T) {
	_, k1 := testKey(t, 1)
	_, k2 := testKey(t, 2)
	_, k3 := testKey(t, 3)

	a := new(Authority)
	a.WeightThreshold = 1
	a.AddKey(k3, 1)
	a.AddKey(k1, 1)
	a.AddKey(k2, 1)
	a.AddAccount(30, 1)
	a.AddAccount(10, 1)

	require.NoError(t, a.Validate())
	for i := 1; i < len(a.KeyAuths); i++ {
		require.Negative(t, a.KeyAuths[i-1].Key.Compare(a.KeyAuths[i].Key))
	}
	require.Equal(t, AccountID(10), a.AccountAuths[0].Account)
	require.Equal(t, AccountID(30), a.AccountAuths[1].Account)
}

func TestAuthorityAddReplaces(t *testing.T) {
	_, k1 := testKey(t, 1)

	a := new(Authority)
	a.AddKey(k1, 1)
	a.AddKey(k1, 5)
	require.Len(t, a.KeyAuths, 1)
	require.Equal(t, uint32(5), a.KeyAuths[0].Weight)
}

func TestAuthorityIsImpossible(t *testing.T) {
	_, k1 := testKey(t, 1)

	a := AuthorityFromKey(k1, 1)
	require.False(t, a.IsImpossible())

	a.WeightThreshold = 2
	require.True(t, a.IsImpossible())
}

func TestAuthorityValidateZeroWeight(t *testing.T) {
	_, k1 := testKey(t, 1)

	a := new(Authority)
	a.WeightThreshold = 1
	a.KeyAuths = []KeyWeight{{Key: k1, Weight: 0}}
	require.Error(t, a.Validate())
}

func TestAuthorityJSON(t *testing.T) {
	_, k1 := testKey(t, 1)

	a := AuthorityFromKey(k1, 2)
	a.AddAccount(7, 1)
	a.AddAddress(NativeAddress(k1), 3)

	b, err := json.Marshal(a)
	require.NoError(t, err)

	var got Authority
	require.NoError(t, json.Unmarshal(b, &got))
	require.Equal(t, *a, got)
}
