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
	"errors"
	"fmt"

	"github.com/0xsoniclabs/evmactor/common"
	"github.com/golang/snappy"
	lru "github.com/hashicorp/golang-lru"
	"github.com/ipfs/go-cid"
	"github.com/multiformats/go-multihash"
	"golang.org/x/crypto/blake2b"
)

const (
	ErrNotFound       = common.ConstError("block not found")
	ErrCorruptedBlock = common.ConstError("block content does not match its id")
	ErrClosed         = common.ConstError("block store is closed")
)

// Blockstore is a content-addressed storage for immutable data blocks. Every
// block is identified by a CID derived from the block's bytes. Implementations
// are safe for concurrent use.
type Blockstore interface {
	// Get retrieves the block with the given id. ErrNotFound is returned if
	// no such block is present. The returned slice is owned by the caller.
	Get(id cid.Cid) ([]byte, error)

	// Put stores the given block and returns its content id. Storing the same
	// block twice is a no-op returning the same id.
	Put(block []byte) (cid.Cid, error)

	// Has checks whether the block with the given id is present.
	Has(id cid.Cid) (bool, error)

	// Flush writes buffered data to the underlying storage medium.
	Flush() error

	// Close flushes and releases all resources of the store.
	Close() error
}

// ComputeCid computes the content id of a block: a CIDv1 with raw codec over
// the BLAKE2b-256 multihash of the block's bytes.
func ComputeCid(block []byte) (cid.Cid, error) {
	digest := blake2b.Sum256(block)
	hash, err := multihash.Encode(digest[:], multihash.BLAKE2B_MIN+31)
	if err != nil {
		return cid.Undef, err
	}
	return cid.NewCidV1(cid.Raw, hash), nil
}

// store implements the Blockstore interface on top of a NodeStore. Blocks are
// optionally compressed before being handed to the node store and optionally
// cached after being read.
type store struct {
	nodes    NodeStore
	compress bool
	cache    *lru.Cache // < nil if caching is disabled
}

// newStore wraps the given node store. A cache size <= 0 disables caching.
func newStore(nodes NodeStore, compress bool, cacheSize int) (*store, error) {
	res := &store{
		nodes:    nodes,
		compress: compress,
	}
	if cacheSize > 0 {
		cache, err := lru.New(cacheSize)
		if err != nil {
			return nil, err
		}
		res.cache = cache
	}
	return res, nil
}

// NewMemoryBlockstore creates an in-memory block store without compression
// or caching. It is mainly intended for tests and transient tries.
func NewMemoryBlockstore() Blockstore {
	res, _ := newStore(newMemoryStore(), false, 0)
	return res
}

func (s *store) Get(id cid.Cid) ([]byte, error) {
	if !id.Defined() {
		return nil, fmt.Errorf("%w: undefined id", ErrNotFound)
	}
	if s.cache != nil {
		if block, found := s.cache.Get(id); found {
			return bytes.Clone(block.([]byte)), nil
		}
	}
	data, err := s.nodes.Get(id.Bytes())
	if errors.Is(err, ErrNotFound) {
		return nil, fmt.Errorf("%w: %v", ErrNotFound, id)
	}
	if err != nil {
		return nil, err
	}
	block := data
	if s.compress {
		block, err = snappy.Decode(nil, data)
		if err != nil {
			return nil, fmt.Errorf("%w: %v: %v", ErrCorruptedBlock, id, err)
		}
	}
	check, err := ComputeCid(block)
	if err != nil {
		return nil, err
	}
	if !check.Equals(id) {
		return nil, fmt.Errorf("%w: expected %v, got %v", ErrCorruptedBlock, id, check)
	}
	if s.cache != nil {
		s.cache.Add(id, bytes.Clone(block))
	}
	return block, nil
}

func (s *store) Put(block []byte) (cid.Cid, error) {
	id, err := ComputeCid(block)
	if err != nil {
		return cid.Undef, err
	}
	if s.cache != nil && s.cache.Contains(id) {
		return id, nil
	}
	data := block
	if s.compress {
		data = snappy.Encode(nil, block)
	}
	if err := s.nodes.Set(id.Bytes(), data); err != nil {
		return cid.Undef, err
	}
	return id, nil
}

func (s *store) Has(id cid.Cid) (bool, error) {
	if s.cache != nil && s.cache.Contains(id) {
		return true, nil
	}
	_, err := s.nodes.Get(id.Bytes())
	if errors.Is(err, ErrNotFound) {
		return false, nil
	}
	return err == nil, err
}

func (s *store) Flush() error {
	return s.nodes.Flush()
}

func (s *store) Close() error {
	if s.cache != nil {
		s.cache.Purge()
	}
	return s.nodes.Close()
}
