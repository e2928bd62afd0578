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
	"math/bits"

	"github.com/holiman/uint256"
)

// bitMap marks the occupied child positions of a node. Bit i is the i-th
// least significant bit of the 256-bit number formed by the words, with the
// first word being the least significant.
type bitMap [256 / 64]uint64

func (b *bitMap) get(index int) bool {
	return (b[index/64] & (1 << (index % 64))) != 0
}

func (b *bitMap) set(index int) {
	b[index/64] |= 1 << (index % 64)
}

func (b *bitMap) unset(index int) {
	b[index/64] &^= 1 << (index % 64)
}

func (b *bitMap) any() bool {
	return b[0]|b[1]|b[2]|b[3] != 0
}

// count returns the number of set bits.
func (b *bitMap) count() int {
	return bits.OnesCount64(b[0]) +
		bits.OnesCount64(b[1]) +
		bits.OnesCount64(b[2]) +
		bits.OnesCount64(b[3])
}

// rank returns the number of set bits below the given index, which is the
// position of the index's entry in a node's pointer list.
func (b *bitMap) rank(index int) int {
	res := 0
	word := index / 64
	for i := range word {
		res += bits.OnesCount64(b[i])
	}
	return res + bits.OnesCount64(b[word]&(1<<(index%64)-1))
}

// bitLen returns the position of the highest set bit plus one.
func (b *bitMap) bitLen() int {
	return (*uint256.Int)(b).BitLen()
}

// bytes returns the minimal big-endian encoding of the bit map. The empty map
// is encoded as an empty slice.
func (b *bitMap) bytes() []byte {
	return (*uint256.Int)(b).Bytes()
}

// setBytes is the inverse of bytes. It fails for inputs longer than 32 bytes
// or inputs with leading zero bytes.
func (b *bitMap) setBytes(data []byte) bool {
	if len(data) > 32 || (len(data) > 0 && data[0] == 0) {
		return false
	}
	(*uint256.Int)(b).SetBytes(data)
	return true
}
