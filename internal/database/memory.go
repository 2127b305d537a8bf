// Copyright 2025 The Meridian Authors
//
// Use of this source code is governed by an MIT-style
// license that can be found in the LICENSE file or at
// https://opensource.org/licenses/MIT.

package database

import (
	"bytes"
	"sync"

	"gitlab.com/meridianchain/meridian/pkg/errors"
)

// MemoryStore is an in-memory KeyValueStore.
type MemoryStore struct {
	mu      sync.RWMutex
	entries map[string][]byte
}

var _ KeyValueStore = (*MemoryStore)(nil)

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{entries: map[string][]byte{}}
}

func (s *MemoryStore) Get(key []byte) ([]byte, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	v, ok := s.entries[string(key)]
	if !ok {
		return nil, errors.NotFound.WithFormat("%x not found", key)
	}
	return bytes.Clone(v), nil
}

func (s *MemoryStore) Put(key, value []byte) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.entries[string(key)] = bytes.Clone(value)
	return nil
}

func (s *MemoryStore) Delete(key []byte) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.entries, string(key))
	return nil
}

func (s *MemoryStore) ForEach(fn func(key, value []byte) error) error {
	s.mu.RLock()
	defer s.mu.RUnlock()
	for k, v := range s.entries {
		if err := fn([]byte(k), v); err != nil {
			return err
		}
	}
	return nil
}

func (s *MemoryStore) Close() error { return nil }
