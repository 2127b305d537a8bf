// Copyright 2025 The Meridian Authors
//
// Use of this source code is governed by an MIT-style
// license that can be found in the LICENSE file or at
// https://opensource.org/licenses/MIT.

package protocol

import (
	"cmp"
	"slices"

	"gitlab.com/meridianchain/meridian/pkg/errors"
)

// KeyWeight assigns a weight to a public key.
type KeyWeight struct {
	Key    PublicKey `json:"key"`
	Weight uint32    `json:"weight"`
}

// AddressWeight assigns a weight to an address.
type AddressWeight struct {
	Address Address `json:"address"`
	Weight  uint32  `json:"weight"`
}

// AccountWeight assigns a weight to a delegate account.
type AccountWeight struct {
	Account AccountID `json:"account"`
	Weight  uint32    `json:"weight"`
}

// Authority is a weighted threshold policy. It is satisfied when the summed
// weight of satisfied entries reaches the threshold. Entries are kept sorted.
// The threshold may exceed the sum of all weights, which makes the authority
// deliberately unsatisfiable, e.g. for disabled accounts.
type Authority struct {
	WeightThreshold uint32          `json:"weight_threshold"`
	KeyAuths        []KeyWeight     `json:"key_auths,omitempty"`
	AddressAuths    []AddressWeight `json:"address_auths,omitempty"`
	AccountAuths    []AccountWeight `json:"account_auths,omitempty"`
}

// AuthorityFromKey returns a single-key authority with threshold equal to the
// key's weight.
func AuthorityFromKey(key PublicKey, weight uint32) *Authority {
	a := &Authority{WeightThreshold: weight}
	a.AddKey(key, weight)
	return a
}

// AddKey inserts or replaces a key entry.
func (a *Authority) AddKey(key PublicKey, weight uint32) {
	insertEntry(&a.KeyAuths, KeyWeight{key, weight}, func(e KeyWeight) int { return e.Key.Compare(key) })
}

// AddAddress inserts or replaces an address entry.
func (a *Authority) AddAddress(addr Address, weight uint32) {
	insertEntry(&a.AddressAuths, AddressWeight{addr, weight}, func(e AddressWeight) int { return cmp.Compare(e.Address, addr) })
}

// AddAccount inserts or replaces a delegate account entry.
func (a *Authority) AddAccount(id AccountID, weight uint32) {
	insertEntry(&a.AccountAuths, AccountWeight{id, weight}, func(e AccountWeight) int { return cmp.Compare(e.Account, id) })
}

func insertEntry[T any](entries *[]T, entry T, cmpFn func(T) int) {
	i, found := slices.BinarySearchFunc(*entries, entry, func(e, _ T) int { return cmpFn(e) })
	if found {
		(*entries)[i] = entry
		return
	}
	*entries = slices.Insert(*entries, i, entry)
}

// WeightSum returns the sum of all entry weights.
func (a *Authority) WeightSum() uint64 {
	var sum uint64
	for _, e := range a.KeyAuths {
		sum += uint64(e.Weight)
	}
	for _, e := range a.AddressAuths {
		sum += uint64(e.Weight)
	}
	for _, e := range a.AccountAuths {
		sum += uint64(e.Weight)
	}
	return sum
}

// IsImpossible returns true if the authority can never be satisfied.
func (a *Authority) IsImpossible() bool {
	return a.WeightSum() < uint64(a.WeightThreshold)
}

// Validate checks that every weight is positive and entries are sorted
// without duplicates.
func (a *Authority) Validate() error {
	for i, e := range a.KeyAuths {
		if e.Weight == 0 {
			return errors.BadRequest.WithFormat("key auth %v has zero weight", e.Key)
		}
		if i > 0 && a.KeyAuths[i-1].Key.Compare(e.Key) >= 0 {
			return errors.BadRequest.With("key auths are not sorted")
		}
	}
	for i, e := range a.AddressAuths {
		if e.Weight == 0 {
			return errors.BadRequest.WithFormat("address auth %v has zero weight", e.Address)
		}
		if i > 0 && a.AddressAuths[i-1].Address >= e.Address {
			return errors.BadRequest.With("address auths are not sorted")
		}
	}
	for i, e := range a.AccountAuths {
		if e.Weight == 0 {
			return errors.BadRequest.WithFormat("account auth %d has zero weight", e.Account)
		}
		if i > 0 && a.AccountAuths[i-1].Account >= e.Account {
			return errors.BadRequest.With("account auths are not sorted")
		}
	}
	return nil
}
