// Copyright 2025 The Meridian Authors
//
// Use of this source code is governed by an MIT-style
// license that can be found in the LICENSE file or at
// https://opensource.org/licenses/MIT.

package protocol

import (
	"crypto/sha256"
	"crypto/sha512"

	"github.com/btcsuite/btcutil/base58"
	"golang.org/x/crypto/ripemd160" //nolint:staticcheck // legacy address format
)

// Address is a base58-encoded, checksummed key hash. An authority entry may
// name an address instead of a key; the verifier reconciles the two via
// KeyAddresses.
type Address string

// NativeAddress derives the current-format address of a key:
// base58 of ripemd160(sha512(compressed key)) with a ripemd160 checksum.
func NativeAddress(k PublicKey) Address {
	sum := sha512.Sum512(k[:])
	h := ripemd160hash(sum[:])
	check := ripemd160hash(h)[:4]
	return Address(AddressPrefix + base58.Encode(append(h, check...)))
}

// LegacyAddress derives a historical address of a key: base58 of a version
// byte plus ripemd160(sha256(serialized key)) with a double-sha256 checksum.
// The key may be serialized compressed or uncompressed, and two hash versions
// were used historically, so each key has four legacy addresses.
func LegacyAddress(k PublicKey, compressed bool, version byte) Address {
	ser := k[:]
	if !compressed {
		ser = k.Uncompressed()
	}
	sum := sha256.Sum256(ser)
	body := append([]byte{version}, ripemd160hash(sum[:])...)
	check1 := sha256.Sum256(body)
	check2 := sha256.Sum256(check1[:])
	return Address(base58.Encode(append(body, check2[:4]...)))
}

// KeyAddresses returns every address form of a key: the four legacy variants
// plus the native form. A signature by the key satisfies an authority entry
// naming any of them.
func KeyAddresses(k PublicKey) []Address {
	return []Address{
		LegacyAddress(k, false, AddressVersionLegacy),
		LegacyAddress(k, true, AddressVersionLegacy),
		LegacyAddress(k, false, AddressVersionOriginal),
		LegacyAddress(k, true, AddressVersionOriginal),
		NativeAddress(k),
	}
}

func ripemd160hash(b []byte) []byte {
	h := ripemd160.New()
	_, _ = h.Write(b)
	return h.Sum(nil)
}
