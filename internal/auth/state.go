// Copyright 2025 The Meridian Authors
//
// Use of this source code is governed by an MIT-style
// license that can be found in the LICENSE file or at
// https://opensource.org/licenses/MIT.

package auth

import (
	"gitlab.com/meridianchain/meridian/protocol"
)

// AuthorityGetter resolves an account's authority. It must return a stable
// snapshot for the duration of one verification call and must be a pure read.
// Returning nil means the account or authority does not exist.
type AuthorityGetter func(protocol.AccountID) *protocol.Authority

// State is the working state of one verification pass. It tracks which of the
// signature-implied keys have been consumed to satisfy some authority and
// which accounts are already proven, and performs the recursive threshold
// satisfaction search. A State is created fresh per top-level call and never
// shared across calls or goroutines.
type State struct {
	getActive              AuthorityGetter
	getOwner               AuthorityGetter
	allowNonImmediateOwner bool
	maxRecursion           uint32

	// provided maps each signature-implied key to whether it has been
	// consumed. Keys drawn from available are inserted as consumed when the
	// search selects them.
	provided map[protocol.PublicKey]bool

	// available is the candidate pool used when searching for which keys
	// would need to sign. Empty for plain verification.
	available map[protocol.PublicKey]bool

	// approved memoizes accounts already proven satisfied, plus any accounts
	// the caller pre-approved. Once an account is approved it stays approved
	// for the lifetime of the state, which is what terminates mutual
	// delegation.
	approved map[protocol.AccountID]bool

	// Address reconciliation tables, built at most once, on first use.
	providedAddrs  map[protocol.Address]protocol.PublicKey
	availableAddrs map[protocol.Address]protocol.PublicKey
}

// NewState seeds a verification pass with the signature-implied keys and an
// optional candidate pool. The authorization-free sentinel account starts out
// approved.
func NewState(sigKeys, availableKeys []protocol.PublicKey, getActive, getOwner AuthorityGetter, allowNonImmediateOwner bool, maxRecursion uint32) *State {
	s := &State{
		getActive:              getActive,
		getOwner:               getOwner,
		allowNonImmediateOwner: allowNonImmediateOwner,
		maxRecursion:           maxRecursion,
		provided:               make(map[protocol.PublicKey]bool, len(sigKeys)),
		available:              make(map[protocol.PublicKey]bool, len(availableKeys)),
		approved:               map[protocol.AccountID]bool{protocol.TempAccount: true},
	}
	for _, k := range sigKeys {
		s.provided[k] = false
	}
	for _, k := range availableKeys {
		s.available[k] = true
	}
	return s
}

// Approve marks an account as satisfied for the lifetime of the state.
func (s *State) Approve(id protocol.AccountID) { s.approved[id] = true }

// SignedByKey returns true if we have a signature for this key or can produce
// one from the candidate pool. On success the key is marked consumed.
func (s *State) SignedByKey(k protocol.PublicKey) bool {
	if _, ok := s.provided[k]; ok {
		s.provided[k] = true
		return true
	}
	if s.available[k] {
		// Select the candidate key into the satisfying set
		s.provided[k] = true
		return true
	}
	return false
}

// SignedByAddress is SignedByKey for authority entries expressed as an
// address. The address-to-key tables cost O(keys) to build and most
// authorities have no address entries, so they are built on first use.
func (s *State) SignedByAddress(a protocol.Address) bool {
	if s.providedAddrs == nil {
		s.providedAddrs = make(map[protocol.Address]protocol.PublicKey)
		s.availableAddrs = make(map[protocol.Address]protocol.PublicKey)
		for k := range s.available {
			for _, addr := range protocol.KeyAddresses(k) {
				s.availableAddrs[addr] = k
			}
		}
		for k := range s.provided {
			for _, addr := range protocol.KeyAddresses(k) {
				s.providedAddrs[addr] = k
			}
		}
	}

	if k, ok := s.providedAddrs[a]; ok {
		s.provided[k] = true
		return true
	}
	if k, ok := s.availableAddrs[a]; ok && s.available[k] {
		s.provided[k] = true
		return true
	}
	return false
}

// CheckAccount returns true if the account is already approved or its active
// authority is satisfied, or, when non-immediate owner use is allowed, its
// owner authority is satisfied.
func (s *State) CheckAccount(id protocol.AccountID) bool {
	if s.approved[id] {
		return true
	}
	return s.CheckAuthority(s.getActive(id), 0) ||
		(s.allowNonImmediateOwner && s.CheckAuthority(s.getOwner(id), 0))
}

// CheckAuthority returns true if the signature set satisfies the authority's
// weight threshold. Key entries, then address entries, then delegated account
// entries are counted; each phase short-circuits the moment the accumulated
// weight reaches the threshold. A delegate account that is not already
// approved is resolved recursively up to the recursion bound; at the bound it
// is silently skipped and contributes no weight. Recursive successes are
// memoized into the approved set.
func (s *State) CheckAuthority(auth *protocol.Authority, depth uint32) bool {
	if auth == nil {
		return false
	}

	var total uint32
	for _, e := range auth.KeyAuths {
		if s.SignedByKey(e.Key) {
			total += e.Weight
			if total >= auth.WeightThreshold {
				return true
			}
		}
	}

	for _, e := range auth.AddressAuths {
		if s.SignedByAddress(e.Address) {
			total += e.Weight
			if total >= auth.WeightThreshold {
				return true
			}
		}
	}

	for _, e := range auth.AccountAuths {
		if !s.approved[e.Account] {
			if depth == s.maxRecursion {
				continue
			}
			if s.CheckAuthority(s.getActive(e.Account), depth+1) ||
				(s.allowNonImmediateOwner && s.CheckAuthority(s.getOwner(e.Account), depth+1)) {
				s.approved[e.Account] = true
				total += e.Weight
				if total >= auth.WeightThreshold {
					return true
				}
			}
		} else {
			total += e.Weight
			if total >= auth.WeightThreshold {
				return true
			}
		}
	}

	return total >= auth.WeightThreshold
}

// RemoveUnusedSignatures drops every provided key that was never consumed and
// reports whether any were dropped. A transaction must not be over-signed, so
// the verifier treats a true result as an error.
func (s *State) RemoveUnusedSignatures() bool {
	var unused []protocol.PublicKey
	for k, used := range s.provided {
		if !used {
			unused = append(unused, k)
		}
	}
	for _, k := range unused {
		delete(s.provided, k)
	}
	return len(unused) != 0
}

// ProvidedKeys returns the keys currently in the provided set, sorted.
func (s *State) ProvidedKeys() []protocol.PublicKey {
	keys := make([]protocol.PublicKey, 0, len(s.provided))
	for k := range s.provided {
		keys = append(keys, k)
	}
	protocol.SortKeys(keys)
	return keys
}
