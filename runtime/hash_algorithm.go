// Copyright (c) 2025 Sonic Operations Ltd
//
// Use of this software is governed by the Business Source License included
// in the LICENSE file and at soniclabs.com/bsl11.
//
// Change Date: 2028-4-16
//
// On the date above, in accordance with the Business Source License, use of
// this software will be governed by the GNU Lesser General Public License v3.

package runtime

import (
	"fmt"

	"github.com/0xsoniclabs/evmactor/common"
	"github.com/0xsoniclabs/evmactor/database/hamt"
)

const (
	ErrHostDigest   = common.ConstError("host digest computation failed")
	ErrDigestLength = common.ConstError("host digest has unexpected length")
)

// RuntimeHasher is a streaming hasher delegating the digest computation to
// the host's hash function. Bytes written to the hasher are accumulated until
// Finalize is called, which hashes them and resets the hasher for the next
// key.
//
// A RuntimeHasher implements hamt.HashAlgorithm and may be shared by any
// number of tries. It is not safe for concurrent use.
type RuntimeHasher struct {
	digester  Digester
	algorithm SupportedHash
	data      []byte
}

var _ hamt.HashAlgorithm = (*RuntimeHasher)(nil)

// NewRuntimeHasher creates a hasher using the given host hash function.
func NewRuntimeHasher(digester Digester, algorithm SupportedHash) *RuntimeHasher {
	return &RuntimeHasher{
		digester:  digester,
		algorithm: algorithm,
	}
}

// Algorithm returns the host hash function used by this hasher.
func (h *RuntimeHasher) Algorithm() SupportedHash {
	return h.algorithm
}

// Write appends the given bytes to the data to be hashed. It never fails.
func (h *RuntimeHasher) Write(data []byte) (int, error) {
	h.data = append(h.data, data...)
	return len(data), nil
}

// Reset discards all bytes written since the last Finalize. The buffer is
// released, not reused, since the host may keep the data it was handed.
func (h *RuntimeHasher) Reset() {
	h.data = nil
}

// Finalize hashes all bytes written since the last Finalize and resets the
// hasher. The hasher is reset even if the host fails to produce a digest.
func (h *RuntimeHasher) Finalize() (hamt.HashedKey, error) {
	defer h.Reset()
	digest, err := h.digester.Hash(h.algorithm, h.data)
	if err != nil {
		return hamt.HashedKey{}, fmt.Errorf("%w: %v: %w", ErrHostDigest, h.algorithm, err)
	}
	if len(digest) != hamt.HashedKeySize {
		return hamt.HashedKey{}, fmt.Errorf("%w: %v produced %d bytes, need %d", ErrDigestLength, h.algorithm, len(digest), hamt.HashedKeySize)
	}
	return hamt.HashedKey(digest), nil
}

// HashKey hashes a single key. Bytes written but not yet finalized are
// discarded.
func (h *RuntimeHasher) HashKey(key []byte) (hamt.HashedKey, error) {
	h.Reset()
	h.Write(key)
	return h.Finalize()
}
