// Copyright (c) 2025 Sonic Operations Ltd
//
// Use of this software is governed by the Business Source License included
// in the LICENSE file and at soniclabs.com/bsl11.
//
// Change Date: 2028-4-16
//
// On the date above, in accordance with the Business Source License, use of
// this software will be governed by the GNU Lesser General Public License v3.

package address

import (
	"encoding/binary"
	"fmt"

	"github.com/0xsoniclabs/evmactor/common"
	geth "github.com/ethereum/go-ethereum/common"
	"github.com/holiman/uint256"
)

// ErrInvalidWord is returned for words that do not encode an address.
const ErrInvalidWord = common.ConstError("word is not an address")

// Address is an account address as seen by EVM code. It is either an
// ID address, referencing an account through the identifier assigned by the
// chain, or an Ethereum address derived from a key.
//
// In its word form, an address occupies the low 20 bytes of a 256-bit word.
// An ID address has its 20 bytes zero except for the identifier stored
// big-endian in the last 8 bytes.
type Address struct {
	eth  geth.Address
	id   common.ActorID
	isID bool
}

// FromID creates the ID address of the given account.
func FromID(id common.ActorID) Address {
	return Address{id: id, isID: true}
}

// FromEthAddress creates an address from a 20-byte Ethereum address. Addresses
// of the ID address form are recognized as such.
func FromEthAddress(addr geth.Address) Address {
	if id, ok := idOf(addr); ok {
		return FromID(id)
	}
	return Address{eth: addr}
}

// FromWord parses an address from its word form. Words with non-zero bytes
// above the low 20 bytes are rejected.
func FromWord(word *uint256.Int) (Address, error) {
	bytes := word.Bytes32()
	for _, b := range bytes[:12] {
		if b != 0 {
			return Address{}, fmt.Errorf("%w: 0x%x", ErrInvalidWord, bytes)
		}
	}
	return FromEthAddress(geth.Address(bytes[12:])), nil
}

// idOf extracts the identifier of an Ethereum address in ID address form.
func idOf(addr geth.Address) (common.ActorID, bool) {
	for _, b := range addr[:12] {
		if b != 0 {
			return 0, false
		}
	}
	return common.ActorID(binary.BigEndian.Uint64(addr[12:])), true
}

// ID returns the identifier of an ID address.
func (a Address) ID() (common.ActorID, bool) {
	return a.id, a.isID
}

// IsID reports whether this is an ID address.
func (a Address) IsID() bool {
	return a.isID
}

// EthAddress returns the 20-byte form of the address.
func (a Address) EthAddress() geth.Address {
	if !a.isID {
		return a.eth
	}
	var res geth.Address
	binary.BigEndian.PutUint64(res[12:], uint64(a.id))
	return res
}

// Word returns the word form of the address.
func (a Address) Word() *uint256.Int {
	eth := a.EthAddress()
	return new(uint256.Int).SetBytes20(eth[:])
}

func (a Address) String() string {
	if a.isID {
		return fmt.Sprintf("id:%d", a.id)
	}
	return a.eth.Hex()
}
