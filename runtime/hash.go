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
	"github.com/ethereum/go-ethereum/crypto"
	"github.com/minio/sha256-simd"
	"golang.org/x/crypto/blake2b"
	"golang.org/x/crypto/ripemd160"
)

const ErrUnsupportedHash = common.ConstError("unsupported hash function")

// Builtin is a Digester computing digests locally with the same functions the
// host provides. It is intended for tools and tests running outside a host.
var Builtin Digester = DigestFunc(ComputeDigest)

// ComputeDigest computes the digest of the given data using the named hash
// function.
func ComputeDigest(algorithm SupportedHash, data []byte) ([]byte, error) {
	switch algorithm {
	case Sha2_256:
		digest := sha256.Sum256(data)
		return digest[:], nil
	case Keccak256:
		return crypto.Keccak256(data), nil
	case Ripemd160:
		hasher := ripemd160.New()
		hasher.Write(data)
		return hasher.Sum(nil), nil
	case Blake2b_256:
		digest := blake2b.Sum256(data)
		return digest[:], nil
	}
	return nil, fmt.Errorf("%w: %v", ErrUnsupportedHash, algorithm)
}
