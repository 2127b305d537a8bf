// Copyright 2025 The Meridian Authors
//
// Use of this source code is governed by an MIT-style
// license that can be found in the LICENSE file or at
// https://opensource.org/licenses/MIT.

package auth

import (
	"gitlab.com/meridianchain/meridian/pkg/errors"
	"gitlab.com/meridianchain/meridian/protocol"
)

// RequiredSignatures returns the keys from the candidate pool that the
// transaction still needs: the resolution search runs with the pool as
// selectable keys, seeded by the transaction's actual signature keys, and
// every pool key the search consumed that is not already a signer is
// returned, sorted. Custom authorities are not consulted here; they cannot be
// satisfied speculatively.
func RequiredSignatures(tx *protocol.SignedTransaction, chainID protocol.ChainID, available []protocol.PublicKey, opts Options) ([]protocol.PublicKey, error) {
	req := tx.RequiredAuthorities(opts.IgnoreCustomRequiredAuths)

	sigKeys, err := tx.SignatureKeys(chainID)
	if err != nil {
		return nil, err
	}
	signed := make(map[protocol.PublicKey]bool, len(sigKeys))
	for _, k := range sigKeys {
		signed[k] = true
	}
	pool := make(map[protocol.PublicKey]bool, len(available))
	for _, k := range available {
		pool[k] = true
	}

	s := NewState(sigKeys, available, opts.GetActive, opts.GetOwner, opts.AllowNonImmediateOwner, opts.MaxRecursion)

	// Run the search for its side effects; pass/fail does not matter here
	for _, auth := range req.Other {
		s.CheckAuthority(auth, 0)
	}
	for _, id := range req.Owner.Sorted() {
		s.CheckAuthority(opts.GetOwner(id), 0)
	}
	for _, id := range req.Active.Sorted() {
		_ = s.CheckAccount(id) || s.CheckAuthority(opts.GetOwner(id), 0)
	}
	s.RemoveUnusedSignatures()

	var result []protocol.PublicKey
	for _, k := range s.ProvidedKeys() {
		if pool[k] && !signed[k] {
			result = append(result, k)
		}
	}
	return result, nil
}

// MinimizeRequiredSignatures computes a minimal subset of the candidate pool
// sufficient on its own to pass verification. Starting from
// RequiredSignatures, each key is tentatively removed in ascending key order
// and verification is re-run: success keeps the removal, a missing-authority
// failure restores the key, and any other failure is unexpected and aborts.
// A single greedy pass is not globally minimal when keys are interchangeable;
// that is a deliberate compromise between optimality and cost. The fixed
// removal order makes the result deterministic.
func MinimizeRequiredSignatures(tx *protocol.SignedTransaction, chainID protocol.ChainID, available []protocol.PublicKey, opts Options) ([]protocol.PublicKey, error) {
	required, err := RequiredSignatures(tx, chainID, available, opts)
	if err != nil {
		return nil, err
	}

	result := make(map[protocol.PublicKey]bool, len(required))
	for _, k := range required {
		result[k] = true
	}

	for _, k := range required {
		delete(result, k)
		err := Verify(tx.Operations, setKeys(result), opts)
		switch {
		case err == nil:
			// The key was redundant; the removal stands
		case errors.Code(err).IsMissingAuthority():
			result[k] = true
		default:
			return nil, err
		}
	}
	return setKeys(result), nil
}

func setKeys(set map[protocol.PublicKey]bool) []protocol.PublicKey {
	keys := make([]protocol.PublicKey, 0, len(set))
	for k := range set {
		keys = append(keys, k)
	}
	protocol.SortKeys(keys)
	return keys
}
