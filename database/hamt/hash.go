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

import "fmt"

// HashedKeySize is the length of a hashed key in bytes.
const HashedKeySize = 32

// HashedKey is the digest of a key. Keys are placed in the trie according to
// the bits of their hashed form, consumed most significant bit first.
type HashedKey [HashedKeySize]byte

func (k HashedKey) String() string {
	return fmt.Sprintf("%x", k[:])
}

// HashAlgorithm maps keys to their hashed form. The algorithm is passed to
// every operation locating keys in a trie. All operations on the same trie
// must use the same algorithm, otherwise keys end up at positions where they
// can not be found.
type HashAlgorithm interface {
	HashKey(key []byte) (HashedKey, error)
}

// index returns the child position selected by this key at the given depth
// of a trie with the given bit width.
func (k *HashedKey) index(depth, bitWidth int) (int, error) {
	start := depth * bitWidth
	if start+bitWidth > HashedKeySize*8 {
		return 0, fmt.Errorf("%w: depth %d with bit width %d", ErrMaxDepth, depth, bitWidth)
	}
	res := 0
	for i := start; i < start+bitWidth; i++ {
		res = res<<1 | int(k[i/8]>>(7-i%8)&1)
	}
	return res, nil
}

// maxDepth is the number of levels a trie with the given bit width can have.
func maxDepth(bitWidth int) int {
	return HashedKeySize * 8 / bitWidth
}

func hashKey(algo HashAlgorithm, key []byte) (HashedKey, error) {
	hash, err := algo.HashKey(key)
	if err != nil {
		return HashedKey{}, fmt.Errorf("%w: %w", ErrHashFailed, err)
	}
	return hash, nil
}
