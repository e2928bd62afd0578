// Copyright (c) 2025 Sonic Operations Ltd
//
// Use of this software is governed by the Business Source License included
// in the LICENSE file and at soniclabs.com/bsl11.
//
// Change Date: 2028-4-16
//
// On the date above, in accordance with the Business Source License, use of
// this software will be governed by the GNU Lesser General Public License v3.

package hamt

import (
	"context"
	"iter"

	"github.com/0xsoniclabs/evmactor/database/blockstore"
	"github.com/ipfs/go-cid"
)

// Set is a set of byte-string keys stored as a Map binding every member to an
// empty value.
type Set struct {
	m *Map
}

// NewSet creates an empty set backed by the given store.
func NewSet(store blockstore.Blockstore, bitWidth int) *Set {
	return &Set{m: New(store, bitWidth)}
}

// LoadSet opens the set with the given root in the given store.
func LoadSet(store blockstore.Blockstore, root cid.Cid, bitWidth int) (*Set, error) {
	m, err := Load(store, root, bitWidth)
	if err != nil {
		return nil, err
	}
	return &Set{m: m}, nil
}

// Put adds the key to the set. Adding a present key is a no-op.
func (s *Set) Put(key []byte, algo HashAlgorithm) error {
	_, _, err := s.m.Set(key, []byte{}, algo)
	return err
}

// Has checks whether the key is a member of the set.
func (s *Set) Has(key []byte, algo HashAlgorithm) (bool, error) {
	_, found, err := s.m.Get(key, algo)
	return found, err
}

// Delete removes the key from the set and reports whether it was present.
func (s *Set) Delete(key []byte, algo HashAlgorithm) (bool, error) {
	_, found, err := s.m.Delete(key, algo)
	return found, err
}

// IsEmpty reports whether the set has no members.
func (s *Set) IsEmpty() bool {
	return s.m.IsEmpty()
}

// Flush stores the set and returns its root id.
func (s *Set) Flush() (cid.Cid, error) {
	return s.m.Flush()
}

// ForEach visits all members of the set in trie order. The visit is aborted
// by the first error returned by the visitor, which is then returned.
func (s *Set) ForEach(visit func(key []byte) error) error {
	return s.m.ForEach(func(key, _ []byte) error {
		return visit(key)
	})
}

// All returns an iterator over the members of the set in trie order. Every
// call starts a new traversal observing all modifications made so far.
func (s *Set) All() iter.Seq2[[]byte, error] {
	return func(yield func([]byte, error) bool) {
		for entry, err := range s.m.All() {
			if !yield(entry.Key, err) {
				return
			}
		}
	}
}

// Check flushes the set and verifies the integrity of its stored nodes.
func (s *Set) Check(ctx context.Context, algo HashAlgorithm) error {
	return s.m.Check(ctx, algo)
}
