// Copyright 2025 The Meridian Authors
//
// Use of this source code is governed by an MIT-style
// license that can be found in the LICENSE file or at
// https://opensource.org/licenses/MIT.

package main

import (
	"encoding/hex"
	"fmt"

	"github.com/spf13/cobra"
	"gitlab.com/meridianchain/meridian/protocol"
)

var cmdKeygen = &cobra.Command{
	Use:   "keygen",
	Short: "Generate a key pair and print its addresses",
	Args:  cobra.NoArgs,
	Run:   runKeygen,
}

func init() {
	cmdMain.AddCommand(cmdKeygen)
}

func runKeygen(_ *cobra.Command, _ []string) {
	priv, err := protocol.GenerateKey()
	check(err)
	pub := protocol.KeyFor(priv)

	fmt.Printf("private: %s\n", hex.EncodeToString(priv.Serialize()))
	fmt.Printf("public:  %s\n", pub)
	fmt.Printf("address: %s\n", protocol.NativeAddress(pub))
	for _, compressed := range []bool{true, false} {
		for _, version := range []byte{protocol.AddressVersionLegacy, protocol.AddressVersionOriginal} {
			fmt.Printf("legacy (compressed=%v, version=%d): %s\n", compressed, version, protocol.LegacyAddress(pub, compressed, version))
		}
	}
}
