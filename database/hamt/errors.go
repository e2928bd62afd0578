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

import "github.com/0xsoniclabs/evmactor/common"

const (
	// ErrMalformedNode is returned if a stored node can not be decoded or
	// violates the structural rules of the trie.
	ErrMalformedNode = common.ConstError("malformed hamt node")

	// ErrMissingNode is returned if a node referenced by the trie is not
	// present in the block store.
	ErrMissingNode = common.ConstError("missing hamt node")

	// ErrHashFailed is returned if the hash algorithm failed to hash a key.
	ErrHashFailed = common.ConstError("failed to hash key")

	// ErrMaxDepth is returned if the bits of a hashed key are exhausted
	// before a key could be placed.
	ErrMaxDepth = common.ConstError("maximum hamt depth exceeded")

	ErrInvalidBitWidth = common.ConstError("invalid hamt bit width")
)
