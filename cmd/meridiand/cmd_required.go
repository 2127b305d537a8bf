// Copyright 2025 The Meridian Authors
//
// Use of this source code is governed by an MIT-style
// license that can be found in the LICENSE file or at
// https://opensource.org/licenses/MIT.

package main

import (
	"fmt"

	"github.com/spf13/cobra"
	"gitlab.com/meridianchain/meridian/internal/auth"
	"gitlab.com/meridianchain/meridian/protocol"
)

var cmdRequired = &cobra.Command{
	Use:   "required <scenario>",
	Short: "List the available keys the transaction still needs signatures from",
	Args:  cobra.ExactArgs(1),
	Run:   runRequired,
}

var cmdMinimize = &cobra.Command{
	Use:   "minimize <scenario>",
	Short: "Compute a minimal sufficient subset of the available keys",
	Args:  cobra.ExactArgs(1),
	Run:   runMinimize,
}

func init() {
	cmdMain.AddCommand(cmdRequired, cmdMinimize)
}

func runRequired(_ *cobra.Command, args []string) {
	keys := signingAdvice(args[0], auth.RequiredSignatures)
	for _, k := range keys {
		fmt.Println(k)
	}
}

func runMinimize(_ *cobra.Command, args []string) {
	keys := signingAdvice(args[0], auth.MinimizeRequiredSignatures)
	for _, k := range keys {
		fmt.Println(k)
	}
}

type adviceFn func(*protocol.SignedTransaction, protocol.ChainID, []protocol.PublicKey, auth.Options) ([]protocol.PublicKey, error)

func signingAdvice(path string, fn adviceFn) []protocol.PublicKey {
	logger := newLogger()

	scenario, err := loadScenario(path)
	check(err)
	chainID, err := scenario.chainID()
	check(err)
	tx, err := scenario.transaction()
	check(err)
	available, err := scenario.availableKeys()
	check(err)

	accounts, closeStore, err := scenario.openStore(logger)
	check(err)
	defer closeStore()

	keys, err := fn(tx, chainID, available, scenario.options(accounts))
	check(err)
	return keys
}
