// Copyright 2025 The Meridian Authors
//
// Use of this source code is governed by an MIT-style
// license that can be found in the LICENSE file or at
// https://opensource.org/licenses/MIT.

package main

import (
	"os"

	"github.com/spf13/cobra"
	"gitlab.com/meridianchain/meridian/internal/auth"
	"gitlab.com/meridianchain/meridian/pkg/errors"
)

var cmdVerify = &cobra.Command{
	Use:   "verify <scenario>",
	Short: "Verify a signed transaction's authority against a scenario",
	Args:  cobra.ExactArgs(1),
	Run:   runVerify,
}

func init() {
	cmdMain.AddCommand(cmdVerify)
}

func runVerify(_ *cobra.Command, args []string) {
	logger := newLogger()

	scenario, err := loadScenario(args[0])
	check(err)
	chainID, err := scenario.chainID()
	check(err)
	tx, err := scenario.transaction()
	check(err)

	accounts, closeStore, err := scenario.openStore(logger)
	check(err)
	defer closeStore()

	err = auth.VerifyTransaction(tx, chainID, scenario.options(accounts))
	if err == nil {
		logger.Info().Int("operations", len(tx.Operations)).Int("signatures", len(tx.Signatures)).Msg("Authority verified")
		return
	}

	ev := logger.Error().Stringer("status", errors.Code(err))
	var authErr *auth.AuthorityError
	if errors.As(err, &authErr) {
		if authErr.Status == errors.MissingActiveAuthority || authErr.Status == errors.MissingOwnerAuthority {
			ev = ev.Uint64("account", uint64(authErr.Account))
		}
		for _, r := range authErr.Rejections {
			logger.Warn().Uint64("account", uint64(r.Account)).Str("reason", r.Reason).Msg("Custom authority rejected")
		}
	}
	ev.Msg(err.Error())
	os.Exit(1)
}
