// Copyright (c) 2025 Sonic Operations Ltd
//
// Use of this software is governed by the Business Source License included
// in the LICENSE file and at soniclabs.com/bsl11.
//
// Change Date: 2028-4-16
//
// On the date above, in accordance with the Business Source License, use of
// this software will be governed by the GNU Lesser General Public License v3.

package blockstore

import (
	"bytes"
	"sync"
)

// NodeStore is an interface for a key-value store used to persist encoded
// blocks. Implementations must be safe for concurrent use.
type NodeStore interface {
	Get(key []byte) ([]byte, error)
	Set(key []byte, value []byte) error
	Flush() error
	Close() error
}

// memoryStore is a simple in-memory implementation of NodeStore.
type memoryStore struct {
	store  map[string][]byte
	closed bool
	lock   sync.RWMutex
}

func newMemoryStore() *memoryStore {
	return &memoryStore{store: make(map[string][]byte)}
}

func (s *memoryStore) Get(key []byte) ([]byte, error) {
	s.lock.RLock()
	defer s.lock.RUnlock()
	if s.closed {
		return nil, ErrClosed
	}
	value, ok := s.store[string(key)]
	if !ok {
		return nil, ErrNotFound
	}
	return bytes.Clone(value), nil
}

func (s *memoryStore) Set(key []byte, value []byte) error {
	s.lock.Lock()
	defer s.lock.Unlock()
	if s.closed {
		return ErrClosed
	}
	s.store[string(key)] = bytes.Clone(value)
	return nil
}

func (s *memoryStore) Flush() error {
	return nil
}

func (s *memoryStore) Close() error {
	s.lock.Lock()
	defer s.lock.Unlock()
	s.closed = true
	return nil
}
