// Copyright 2025 The Meridian Authors
//
// Use of this source code is governed by an MIT-style
// license that can be found in the LICENSE file or at
// https://opensource.org/licenses/MIT.

package protocol

import (
	"crypto/sha256"
	"encoding/binary"
	"time"

	"github.com/btcsuite/btcd/btcec/v2"
	"gitlab.com/meridianchain/meridian/pkg/errors"
)

// Transaction is an ordered list of operations bound to a reference block and
// an expiration time.
type Transaction struct {
	RefBlockNum    uint16      `json:"ref_block_num"`
	RefBlockPrefix uint32      `json:"ref_block_prefix"`
	Expiration     time.Time   `json:"expiration"`
	Operations     []Operation `json:"operations"`
}

// SetExpiration sets the transaction's expiration time.
func (tx *Transaction) SetExpiration(t time.Time) {
	tx.Expiration = t.UTC().Truncate(time.Second)
}

// SetReferenceBlock binds the transaction to a recent block ID.
func (tx *Transaction) SetReferenceBlock(blockID [32]byte) {
	tx.RefBlockNum = binary.BigEndian.Uint16(blockID[2:4])
	tx.RefBlockPrefix = binary.LittleEndian.Uint32(blockID[4:8])
}

// Validate checks the transaction's structural contract: at least one
// operation, and every operation valid on its own terms.
func (tx *Transaction) Validate() error {
	if len(tx.Operations) == 0 {
		return errors.MalformedTransaction.With("a transaction must have at least one operation")
	}
	for i, op := range tx.Operations {
		if err := op.Validate(); err != nil {
			return errors.MalformedTransaction.WithCauseAndFormat(err, "operation %d (%v) is invalid", i, op.Type())
		}
	}
	return nil
}

func (tx *Transaction) marshalBinary(w *binWriter) {
	w.u16(tx.RefBlockNum)
	w.u32(tx.RefBlockPrefix)
	w.i64(tx.Expiration.Unix())
	w.uvarint(uint64(len(tx.Operations)))
	for _, op := range tx.Operations {
		op.marshalBinary(w)
	}
}

// Digest returns the hash of the transaction.
func (tx *Transaction) Digest() [32]byte {
	w := new(binWriter)
	tx.marshalBinary(w)
	return sha256.Sum256(w.buf.Bytes())
}

// SigDigest returns the digest signatures are computed over: the hash of the
// chain ID followed by the transaction. Including the chain ID scopes
// signatures to one chain.
func (tx *Transaction) SigDigest(chainID ChainID) [32]byte {
	w := new(binWriter)
	w.buf.Write(chainID[:])
	tx.marshalBinary(w)
	return sha256.Sum256(w.buf.Bytes())
}

// RequiredAuthorities collects the requirements of every operation. Accounts
// whose owner authority is required are removed from the active set, since
// owner subsumes active.
func (tx *Transaction) RequiredAuthorities(ignoreCustomRequiredAuths bool) *RequiredAuthorities {
	req := NewRequiredAuthorities()
	for _, op := range tx.Operations {
		op.RequiredAuthorities(req, ignoreCustomRequiredAuths)
	}
	for id := range req.Owner {
		req.Active.Remove(id)
	}
	return req
}

// SignedTransaction is a transaction with attached compact signatures.
type SignedTransaction struct {
	Transaction
	Signatures [][]byte `json:"signatures,omitempty"`
}

// Sign signs the transaction for the given chain and appends the signature.
func (tx *SignedTransaction) Sign(priv *btcec.PrivateKey, chainID ChainID) []byte {
	sig := SignCompact(priv, tx.SigDigest(chainID))
	tx.Signatures = append(tx.Signatures, sig)
	return sig
}

// SignatureKeys recovers the public key implied by each attached signature
// against the binding digest. Two signatures recovering the same key is a
// hard error, not a no-op. The result is sorted.
func (tx *SignedTransaction) SignatureKeys(chainID ChainID) ([]PublicKey, error) {
	d := tx.SigDigest(chainID)
	seen := make(map[PublicKey]bool, len(tx.Signatures))
	keys := make([]PublicKey, 0, len(tx.Signatures))
	for i, sig := range tx.Signatures {
		key, err := RecoverKey(sig, d)
		if err != nil {
			return nil, errors.BadRequest.WithCauseAndFormat(err, "signature %d is invalid", i)
		}
		if seen[key] {
			return nil, errors.DuplicateSignature.WithFormat("signature %d duplicates key %v", i, key)
		}
		seen[key] = true
		keys = append(keys, key)
	}
	SortKeys(keys)
	return keys, nil
}
