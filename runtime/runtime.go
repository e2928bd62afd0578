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

//go:generate mockgen -source runtime.go -destination runtime_mocks.go -package runtime

import (
	"fmt"

	"github.com/0xsoniclabs/evmactor/common"
	"github.com/holiman/uint256"
)

// SupportedHash identifies a hash function offered by the host chain. The
// values are the multicodec codes of the respective functions.
type SupportedHash uint64

const (
	Sha2_256    SupportedHash = 0x12
	Keccak256   SupportedHash = 0x1b
	Ripemd160   SupportedHash = 0x1053
	Blake2b_256 SupportedHash = 0xb220
)

// SupportedHashes lists all hash functions known to the host.
func SupportedHashes() []SupportedHash {
	return []SupportedHash{Sha2_256, Keccak256, Ripemd160, Blake2b_256}
}

func (h SupportedHash) String() string {
	switch h {
	case Sha2_256:
		return "sha2-256"
	case Keccak256:
		return "keccak-256"
	case Ripemd160:
		return "ripemd-160"
	case Blake2b_256:
		return "blake2b-256"
	}
	return fmt.Sprintf("unknown(0x%x)", uint64(h))
}

// ParseSupportedHash is the inverse of SupportedHash.String.
func ParseSupportedHash(name string) (SupportedHash, error) {
	for _, h := range SupportedHashes() {
		if h.String() == name {
			return h, nil
		}
	}
	return 0, fmt.Errorf("%w: %q", ErrUnsupportedHash, name)
}

// Message describes the message currently being executed.
type Message struct {
	Caller        common.ActorID // < immediate caller
	Receiver      common.ActorID // < the account executing the code
	Origin        common.ActorID // < the account that signed the top-level message
	ValueReceived *uint256.Int   // < value transferred with the message
}

// Digester computes digests with the hash functions offered by the host.
// Implementations may retain the passed data; callers must not modify it
// afterwards.
type Digester interface {
	Hash(algorithm SupportedHash, data []byte) ([]byte, error)
}

// Runtime is the view of the host chain available to the code executing a
// single message. It is borrowed for the duration of the call.
type Runtime interface {
	Digester

	// Message returns the message currently being executed.
	Message() Message
	// CurrEpoch returns the epoch of the block the message is included in.
	CurrEpoch() common.ChainEpoch
	// BaseFee returns the base fee of the current epoch.
	BaseFee() *uint256.Int
	// CurrentBalance returns the balance of the receiver.
	CurrentBalance() *uint256.Int
}

// DigestFunc adapts a plain function to the Digester interface.
type DigestFunc func(algorithm SupportedHash, data []byte) ([]byte, error)

func (f DigestFunc) Hash(algorithm SupportedHash, data []byte) ([]byte, error) {
	return f(algorithm, data)
}
