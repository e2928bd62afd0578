// Copyright (c) 2025 Sonic Operations Ltd
//
// Use of this software is governed by the Business Source License included
// in the LICENSE file and at soniclabs.com/bsl11.
//
// Change Date: 2028-4-16
//
// On the date above, in accordance with the Business Source License, use of
// this software will be governed by the GNU Lesser General Public License v3.

package interpreter

import (
	"fmt"

	"github.com/0xsoniclabs/evmactor/database/blockstore"
	"github.com/0xsoniclabs/evmactor/database/hamt"
	"github.com/0xsoniclabs/evmactor/runtime"
	"github.com/ethereum/go-ethereum/log"
	"github.com/holiman/uint256"
	"github.com/ipfs/go-cid"
)

// System gives instructions access to the host and to the storage of the
// executing contract. It lives for the duration of a single call.
type System struct {
	rt      runtime.Runtime
	storage *hamt.Map
	algo    hamt.HashAlgorithm
}

// NewSystem opens the contract storage with the given root. An undefined root
// denotes an empty storage. The hash algorithm is used for all storage keys.
func NewSystem(rt runtime.Runtime, store blockstore.Blockstore, root cid.Cid, algo hamt.HashAlgorithm) (*System, error) {
	if !root.Defined() {
		return &System{rt: rt, storage: hamt.New(store, hamt.DefaultBitWidth), algo: algo}, nil
	}
	storage, err := hamt.Load(store, root, hamt.DefaultBitWidth)
	if err != nil {
		return nil, fmt.Errorf("%w: failed to open contract storage %v: %w", ErrStorage, root, err)
	}
	return &System{rt: rt, storage: storage, algo: algo}, nil
}

func (s *System) Runtime() runtime.Runtime {
	return s.rt
}

// GetStorage returns the value of the given slot, or nil if the slot is not
// set.
func (s *System) GetStorage(slot *uint256.Int) (*uint256.Int, error) {
	data, found, err := s.storage.Get(storageKey(slot), s.algo)
	if err != nil {
		return nil, fmt.Errorf("%w: failed to read slot %v: %w", ErrStorage, slot.Hex(), err)
	}
	if !found {
		return nil, nil
	}
	return new(uint256.Int).SetBytes(data), nil
}

// SetStorage updates the value of the given slot. A nil or zero value clears
// the slot.
func (s *System) SetStorage(slot, value *uint256.Int) error {
	var err error
	if value == nil || value.IsZero() {
		_, _, err = s.storage.Delete(storageKey(slot), s.algo)
	} else {
		word := value.Bytes32()
		_, _, err = s.storage.Set(storageKey(slot), word[:], s.algo)
	}
	if err != nil {
		return fmt.Errorf("%w: failed to update slot %v: %w", ErrStorage, slot.Hex(), err)
	}
	return nil
}

// Flush writes pending storage modifications to the block store and returns
// the new storage root.
func (s *System) Flush() (cid.Cid, error) {
	root, err := s.storage.Flush()
	if err != nil {
		return cid.Undef, fmt.Errorf("%w: %w", ErrStorage, err)
	}
	log.Debug("Flushed contract storage", "root", root)
	return root, nil
}

func storageKey(slot *uint256.Int) []byte {
	key := slot.Bytes32()
	return key[:]
}
