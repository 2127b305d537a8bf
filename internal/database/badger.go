// Copyright 2025 The Meridian Authors
//
// Use of this source code is governed by an MIT-style
// license that can be found in the LICENSE file or at
// https://opensource.org/licenses/MIT.

package database

import (
	"os"
	"strings"

	"github.com/dgraph-io/badger"
	"github.com/rs/zerolog"
	"gitlab.com/meridianchain/meridian/pkg/errors"
)

// BadgerStore is a KeyValueStore backed by Badger.
type BadgerStore struct {
	db *badger.DB
}

var _ KeyValueStore = (*BadgerStore)(nil)

// OpenBadger opens or creates a Badger database at the given path.
func OpenBadger(path string, logger zerolog.Logger) (*BadgerStore, error) {
	if err := os.MkdirAll(path, 0700); err != nil {
		return nil, errors.InternalError.WithFormat("open badger: create %q: %w", path, err)
	}

	opts := badger.DefaultOptions(path)
	opts = opts.WithLogger(badgerLogger{logger})

	db, err := badger.Open(opts)
	if err != nil {
		return nil, errors.InternalError.WithFormat("open badger: %w", err)
	}
	return &BadgerStore{db: db}, nil
}

func (s *BadgerStore) Get(key []byte) ([]byte, error) {
	var value []byte
	err := s.db.View(func(txn *badger.Txn) error {
		item, err := txn.Get(key)
		if err != nil {
			return err
		}
		value, err = item.ValueCopy(nil)
		return err
	})
	switch {
	case err == nil:
		return value, nil
	case errors.Is(err, badger.ErrKeyNotFound):
		return nil, errors.NotFound.WithFormat("%x not found", key)
	default:
		return nil, errors.InternalError.Wrap(err)
	}
}

func (s *BadgerStore) Put(key, value []byte) error {
	err := s.db.Update(func(txn *badger.Txn) error {
		return txn.Set(key, value)
	})
	return errors.InternalError.Wrap(err)
}

func (s *BadgerStore) Delete(key []byte) error {
	err := s.db.Update(func(txn *badger.Txn) error {
		return txn.Delete(key)
	})
	return errors.InternalError.Wrap(err)
}

func (s *BadgerStore) ForEach(fn func(key, value []byte) error) error {
	err := s.db.View(func(txn *badger.Txn) error {
		it := txn.NewIterator(badger.DefaultIteratorOptions)
		defer it.Close()
		for it.Rewind(); it.Valid(); it.Next() {
			item := it.Item()
			value, err := item.ValueCopy(nil)
			if err != nil {
				return err
			}
			if err := fn(item.KeyCopy(nil), value); err != nil {
				return err
			}
		}
		return nil
	})
	return errors.InternalError.Wrap(err)
}

func (s *BadgerStore) Close() error { return s.db.Close() }

// badgerLogger adapts zerolog to Badger's logger interface. Badger terminates
// its messages with a newline, which zerolog does not want.
type badgerLogger struct {
	log zerolog.Logger
}

func (l badgerLogger) Errorf(format string, args ...interface{}) {
	l.log.Error().Msgf(strings.TrimRight(format, "\n"), args...)
}

func (l badgerLogger) Warningf(format string, args ...interface{}) {
	l.log.Warn().Msgf(strings.TrimRight(format, "\n"), args...)
}

func (l badgerLogger) Infof(format string, args ...interface{}) {
	l.log.Debug().Msgf(strings.TrimRight(format, "\n"), args...)
}

func (l badgerLogger) Debugf(format string, args ...interface{}) {
	l.log.Debug().Msgf(strings.TrimRight(format, "\n"), args...)
}
