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
	"bytes"
	"context"
	"errors"
	"fmt"
	"iter"

	"github.com/0xsoniclabs/evmactor/common"
	"github.com/0xsoniclabs/evmactor/database/blockstore"
	"github.com/0xsoniclabs/tracy"
	"github.com/ipfs/go-cid"
)

const (
	// DefaultBitWidth is the bit width used by the tries of the chain state.
	DefaultBitWidth = 5

	MinBitWidth = 1
	MaxBitWidth = 8
)

// Map is a persistent authenticated key/value map implemented as a hash array
// mapped trie whose nodes are stored in a content-addressed block store. The
// root id of a map depends only on the map's content and its bit width.
//
// Modifications are kept in memory until the map is flushed. Only then are
// the modified nodes written to the block store and the new root id becomes
// available. Maps are not safe for concurrent use, including concurrent
// reads, since reads load nodes into the in-memory trie.
type Map struct {
	source nodeSource
	root   *node
}

// Entry is a key/value pair of a map.
type Entry struct {
	Key   []byte
	Value []byte
}

// New creates an empty map backed by the given store. It panics if the bit
// width is out of range.
func New(store blockstore.Blockstore, bitWidth int) *Map {
	if err := checkBitWidth(bitWidth); err != nil {
		panic(err)
	}
	return &Map{
		source: nodeSource{store: store, bitWidth: bitWidth},
		root:   &node{dirty: true},
	}
}

// Load opens the map with the given root in the given store. The root node is
// loaded eagerly, all other nodes are loaded on first access.
func Load(store blockstore.Blockstore, root cid.Cid, bitWidth int) (*Map, error) {
	if err := checkBitWidth(bitWidth); err != nil {
		return nil, err
	}
	source := nodeSource{store: store, bitWidth: bitWidth}
	rootNode, err := source.load(root)
	if err != nil {
		return nil, fmt.Errorf("failed to load root: %w", err)
	}
	return &Map{source: source, root: rootNode}, nil
}

func checkBitWidth(bitWidth int) error {
	if bitWidth < MinBitWidth || bitWidth > MaxBitWidth {
		return fmt.Errorf("%w: %d not in [%d,%d]", ErrInvalidBitWidth, bitWidth, MinBitWidth, MaxBitWidth)
	}
	return nil
}

// BitWidth returns the number of key hash bits consumed per trie level.
func (m *Map) BitWidth() int {
	return m.source.bitWidth
}

// Store returns the block store the map's nodes are written to.
func (m *Map) Store() blockstore.Blockstore {
	return m.source.store
}

// IsEmpty reports whether the map contains no entries.
func (m *Map) IsEmpty() bool {
	return len(m.root.pointers) == 0
}

// IsDirty reports whether the map was modified since it was last flushed.
func (m *Map) IsDirty() bool {
	return m.root.dirty
}

// Get returns the value bound to the given key. A missing key is not an error.
func (m *Map) Get(key []byte, algo HashAlgorithm) ([]byte, bool, error) {
	hash, err := hashKey(algo, key)
	if err != nil {
		return nil, false, err
	}
	value, found, err := m.root.get(m.source, &hash, key, 0)
	if err != nil || !found {
		return nil, false, err
	}
	return bytes.Clone(value), true, nil
}

// Set binds the given value to the given key. It returns the previously bound
// value, if any.
func (m *Map) Set(key, value []byte, algo HashAlgorithm) ([]byte, bool, error) {
	hash, err := hashKey(algo, key)
	if err != nil {
		return nil, false, err
	}
	if value == nil {
		value = []byte{}
	}
	prev, existed, _, err := m.root.set(m.source, algo, &hash, bytes.Clone(key), bytes.Clone(value), 0)
	return bytes.Clone(prev), existed, err
}

// Delete removes the given key from the map. It returns the removed value, if
// any. Deleting a missing key does not modify the map.
func (m *Map) Delete(key []byte, algo HashAlgorithm) ([]byte, bool, error) {
	hash, err := hashKey(algo, key)
	if err != nil {
		return nil, false, err
	}
	return m.root.delete(m.source, &hash, key, 0)
}

// Flush writes all modified nodes to the block store and returns the id of
// the root node. Independent sub-tries are written in parallel.
func (m *Map) Flush() (cid.Cid, error) {
	if !m.root.dirty {
		return m.root.id, nil
	}
	zone := tracy.ZoneBegin("hamt::flush")
	defer zone.End()

	var tasks []*task
	var errs []error
	var schedule func(n *node) *task
	schedule = func(n *node) *task {
		var children []*task
		for _, p := range n.pointers {
			if p.child != nil && p.child.dirty {
				children = append(children, schedule(p.child))
			}
		}
		slot := len(errs)
		errs = append(errs, nil)
		res := newTask(func() {
			errs[slot] = m.source.storeNode(n)
		}, len(children))
		for _, child := range children {
			child.parentTask = res
		}
		tasks = append(tasks, res)
		return res
	}
	schedule(m.root)
	runTasks(tasks)

	if err := errors.Join(errs...); err != nil {
		return cid.Undef, err
	}
	return m.root.id, nil
}

// ForEach visits all entries of the map in trie order. The visit is aborted
// by the first error returned by the visitor, which is then returned. The
// visitor must not modify the map or the passed slices.
func (m *Map) ForEach(visit func(key, value []byte) error) error {
	return m.root.forEach(m.source, visit)
}

const errStopIteration = common.ConstError("iteration stopped")

// All returns an iterator over the map's entries in trie order. Each call
// starts a new traversal of the current content of the map, including
// modifications not yet flushed. A failure to load a node is yielded as the
// final element of the sequence.
func (m *Map) All() iter.Seq2[Entry, error] {
	return func(yield func(Entry, error) bool) {
		err := m.ForEach(func(key, value []byte) error {
			if !yield(Entry{Key: key, Value: value}, nil) {
				return errStopIteration
			}
			return nil
		})
		if err != nil && !errors.Is(err, errStopIteration) {
			yield(Entry{}, err)
		}
	}
}

// Check flushes the map and verifies the integrity of all its stored nodes.
func (m *Map) Check(ctx context.Context, algo HashAlgorithm) error {
	root, err := m.Flush()
	if err != nil {
		return err
	}
	return Verify(ctx, m.source.store, root, m.source.bitWidth, algo, NilVerificationObserver{})
}
