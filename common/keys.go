// Copyright (c) 2025 Sonic Operations Ltd
//
// Use of this software is governed by the Business Source License included
// in the LICENSE file and at soniclabs.com/bsl11.
//
// Change Date: 2028-4-16
//
// On the date above, in accordance with the Business Source License, use of
// this software will be governed by the GNU Lesser General Public License v3.

package common

import (
	"encoding/binary"
	"fmt"
)

// ErrInvalidKey is returned when a trie key can not be decoded into the
// numeric value it is expected to encode.
const ErrInvalidKey = ConstError("invalid numeric key")

// UintKeySize is the length of an encoded numeric trie key.
const UintKeySize = 8

// UintKey encodes a numeric key as a fixed-width big-endian byte string.
// Numeric keys are always hashed in this form.
func UintKey(value uint64) []byte {
	return binary.BigEndian.AppendUint64(make([]byte, 0, UintKeySize), value)
}

// ParseUintKey is the inverse of UintKey.
func ParseUintKey(key []byte) (uint64, error) {
	if len(key) != UintKeySize {
		return 0, fmt.Errorf("%w: expected %d bytes, got %d", ErrInvalidKey, UintKeySize, len(key))
	}
	return binary.BigEndian.Uint64(key), nil
}
