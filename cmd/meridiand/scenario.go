// Copyright 2025 The Meridian Authors
//
// Use of this source code is governed by an MIT-style
// license that can be found in the LICENSE file or at
// https://opensource.org/licenses/MIT.

package main

import (
	"encoding/hex"
	"encoding/json"
	"os"
	"time"

	"github.com/rs/zerolog"
	"github.com/spf13/viper"
	"gitlab.com/meridianchain/meridian/internal/auth"
	"gitlab.com/meridianchain/meridian/internal/database"
	"gitlab.com/meridianchain/meridian/pkg/errors"
	"gitlab.com/meridianchain/meridian/protocol"
)

// Scenario is the file format the CLI operates on: a set of accounts, a
// signed transaction, and the verification inputs.
type Scenario struct {
	ChainID         string             `json:"chain_id"`
	Accounts        []database.Account `json:"accounts"`
	Transaction     scenarioTx         `json:"transaction"`
	Signatures      []string           `json:"signatures,omitempty"`
	AvailableKeys   []string           `json:"available_keys,omitempty"`
	ActiveApprovals []uint64           `json:"active_approvals,omitempty"`
	OwnerApprovals  []uint64           `json:"owner_approvals,omitempty"`
}

type scenarioTx struct {
	RefBlockNum    uint16            `json:"ref_block_num"`
	RefBlockPrefix uint32            `json:"ref_block_prefix"`
	Expiration     time.Time         `json:"expiration"`
	Operations     []json.RawMessage `json:"operations"`
}

func loadScenario(path string) (*Scenario, error) {
	b, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	s := new(Scenario)
	if err := json.Unmarshal(b, s); err != nil {
		return nil, errors.BadRequest.WithCauseAndFormat(err, "parse scenario %q", path)
	}
	return s, nil
}

func (s *Scenario) chainID() (protocol.ChainID, error) {
	return protocol.ParseChainID(s.ChainID)
}

func (s *Scenario) transaction() (*protocol.SignedTransaction, error) {
	tx := new(protocol.SignedTransaction)
	tx.RefBlockNum = s.Transaction.RefBlockNum
	tx.RefBlockPrefix = s.Transaction.RefBlockPrefix
	tx.Expiration = s.Transaction.Expiration

	for i, raw := range s.Transaction.Operations {
		var head struct {
			Type string `json:"type"`
		}
		if err := json.Unmarshal(raw, &head); err != nil {
			return nil, errors.BadRequest.WithCauseAndFormat(err, "parse operation %d", i)
		}
		typ, err := protocol.OperationTypeByName(head.Type)
		if err != nil {
			return nil, err
		}
		op, err := protocol.NewOperation(typ)
		if err != nil {
			return nil, err
		}
		if err := json.Unmarshal(raw, op); err != nil {
			return nil, errors.BadRequest.WithCauseAndFormat(err, "parse operation %d (%s)", i, head.Type)
		}
		tx.Operations = append(tx.Operations, op)
	}

	for i, sig := range s.Signatures {
		b, err := hex.DecodeString(sig)
		if err != nil {
			return nil, errors.BadRequest.WithCauseAndFormat(err, "parse signature %d", i)
		}
		tx.Signatures = append(tx.Signatures, b)
	}
	return tx, nil
}

func (s *Scenario) availableKeys() ([]protocol.PublicKey, error) {
	var keys []protocol.PublicKey
	for i, str := range s.AvailableKeys {
		b, err := hex.DecodeString(str)
		if err != nil {
			return nil, errors.BadRequest.WithCauseAndFormat(err, "parse available key %d", i)
		}
		k, err := protocol.KeyFromBytes(b)
		if err != nil {
			return nil, err
		}
		keys = append(keys, k)
	}
	return keys, nil
}

// openStore loads the scenario's accounts into a store: Badger if --db is
// set, in memory otherwise.
func (s *Scenario) openStore(logger zerolog.Logger) (*database.AccountStore, func(), error) {
	var kv database.KeyValueStore
	if flagMain.Db != "" {
		var err error
		kv, err = database.OpenBadger(flagMain.Db, logger)
		if err != nil {
			return nil, nil, err
		}
	} else {
		kv = database.NewMemoryStore()
	}

	accounts := database.NewAccountStore(kv)
	for i := range s.Accounts {
		if err := accounts.Put(&s.Accounts[i]); err != nil {
			_ = kv.Close()
			return nil, nil, err
		}
	}
	return accounts, func() { _ = kv.Close() }, nil
}

func (s *Scenario) options(accounts *database.AccountStore) auth.Options {
	opts := auth.Options{
		GetActive:                 accounts.GetActive(),
		GetOwner:                  accounts.GetOwner(),
		AllowNonImmediateOwner:    viper.GetBool("allow-owner"),
		IgnoreCustomRequiredAuths: viper.GetBool("ignore-custom-auths"),
		AllowCommittee:            viper.GetBool("allow-committee"),
		MaxRecursion:              viper.GetUint32("max-recursion"),
	}
	for _, id := range s.ActiveApprovals {
		opts.ActiveApprovals = append(opts.ActiveApprovals, protocol.AccountID(id))
	}
	for _, id := range s.OwnerApprovals {
		opts.OwnerApprovals = append(opts.OwnerApprovals, protocol.AccountID(id))
	}
	return opts
}
