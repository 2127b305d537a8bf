// Copyright 2025 The Meridian Authors
//
// Use of this source code is governed by an MIT-style
// license that can be found in the LICENSE file or at
// https://opensource.org/licenses/MIT.

package protocol

import (
	"bytes"
	"encoding/hex"
	"encoding/json"
	"slices"

	"github.com/btcsuite/btcd/btcec/v2"
	"github.com/btcsuite/btcd/btcec/v2/ecdsa"
	"gitlab.com/meridianchain/meridian/pkg/errors"
)

// PublicKey is a compressed secp256k1 public key. The compressed form is the
// canonical identity of a signer; two keys are the same signer if their
// compressed serializations are equal or any of their derived addresses
// coincide.
type PublicKey [33]byte

// CompactSignatureSize is the size of a recoverable compact signature.
const CompactSignatureSize = 65

// KeyFromBytes parses a compressed or uncompressed secp256k1 point.
func KeyFromBytes(b []byte) (PublicKey, error) {
	var k PublicKey
	pub, err := btcec.ParsePubKey(b)
	if err != nil {
		return k, errors.BadRequest.WithFormat("parse public key: %w", err)
	}
	copy(k[:], pub.SerializeCompressed())
	return k, nil
}

// KeyFor returns the public key of a private key.
func KeyFor(priv *btcec.PrivateKey) PublicKey {
	var k PublicKey
	copy(k[:], priv.PubKey().SerializeCompressed())
	return k
}

// GenerateKey generates a new private key.
func GenerateKey() (*btcec.PrivateKey, error) {
	return btcec.NewPrivateKey()
}

func (k PublicKey) Bytes() []byte { return bytes.Clone(k[:]) }

// Uncompressed returns the uncompressed serialization of the key.
func (k PublicKey) Uncompressed() []byte {
	pub, err := btcec.ParsePubKey(k[:])
	if err != nil {
		// The key was validated on construction
		panic(err)
	}
	return pub.SerializeUncompressed()
}

func (k PublicKey) String() string { return hex.EncodeToString(k[:]) }

// Compare orders keys bytewise over the compressed serialization. This is the
// order used by authority entries and by the signature minimizer.
func (k PublicKey) Compare(l PublicKey) int { return bytes.Compare(k[:], l[:]) }

func (k PublicKey) MarshalJSON() ([]byte, error) {
	return json.Marshal(k.String())
}

func (k *PublicKey) UnmarshalJSON(data []byte) error {
	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		return err
	}
	b, err := hex.DecodeString(s)
	if err != nil {
		return errors.BadRequest.WithFormat("parse public key: %w", err)
	}
	*k, err = KeyFromBytes(b)
	return err
}

// SortKeys sorts keys in ascending order.
func SortKeys(keys []PublicKey) {
	slices.SortFunc(keys, PublicKey.Compare)
}

// SignCompact signs a digest, producing a recoverable compact signature.
func SignCompact(priv *btcec.PrivateKey, digest [32]byte) []byte {
	return ecdsa.SignCompact(priv, digest[:], true)
}

// RecoverKey recovers the public key implied by a compact signature over a
// digest.
func RecoverKey(sig []byte, digest [32]byte) (PublicKey, error) {
	var k PublicKey
	if len(sig) != CompactSignatureSize {
		return k, errors.BadRequest.WithFormat("invalid signature: want %d bytes, got %d", CompactSignatureSize, len(sig))
	}
	pub, _, err := ecdsa.RecoverCompact(sig, digest[:])
	if err != nil {
		return k, errors.BadRequest.WithFormat("recover signature key: %w", err)
	}
	copy(k[:], pub.SerializeCompressed())
	return k, nil
}
