// Copyright 2025 The Meridian Authors
//
// Use of this source code is governed by an MIT-style
// license that can be found in the LICENSE file or at
// https://opensource.org/licenses/MIT.

package protocol

import (
	"encoding/hex"
	"fmt"
	"slices"
)

// AccountID identifies an account on the chain.
type AccountID uint64

// Well known accounts
const (
	// CommitteeAccount is the chain governance account. It may only propose
	// transactions, never approve them directly, unless the caller allows it.
	CommitteeAccount AccountID = 0

	// TempAccount is the authorization-free sentinel account. It is treated
	// as approved in every verification pass.
	TempAccount AccountID = 4
)

// SigCheckDepthLimit is the default bound on the depth of recursive account
// delegation during signature verification. A delegate reached at this depth
// contributes no weight.
const SigCheckDepthLimit = 2

// AddressPrefix is the human-readable prefix of native addresses.
const AddressPrefix = "MRD"

// Legacy address hash versions. Two historical derivations are still
// recognized so that authorities recorded under either remain satisfiable.
const (
	AddressVersionOriginal byte = 0
	AddressVersionLegacy   byte = 56
)

// ChainID scopes signatures to one chain.
type ChainID [32]byte

func (c ChainID) String() string { return hex.EncodeToString(c[:]) }

// ParseChainID parses a hex-encoded chain ID.
func ParseChainID(s string) (ChainID, error) {
	var c ChainID
	b, err := hex.DecodeString(s)
	if err != nil {
		return c, fmt.Errorf("invalid chain id: %w", err)
	}
	if len(b) != len(c) {
		return c, fmt.Errorf("invalid chain id: want %d bytes, got %d", len(c), len(b))
	}
	copy(c[:], b)
	return c, nil
}

// AccountSet is a set of account IDs.
type AccountSet map[AccountID]bool

func (s AccountSet) Add(id AccountID)      { s[id] = true }
func (s AccountSet) Remove(id AccountID)   { delete(s, id) }
func (s AccountSet) Has(id AccountID) bool { return s[id] }

// Sorted returns the members in ascending order.
func (s AccountSet) Sorted() []AccountID {
	ids := make([]AccountID, 0, len(s))
	for id := range s {
		ids = append(ids, id)
	}
	slices.Sort(ids)
	return ids
}
