// Copyright (c) 2025 Sonic Operations Ltd
//
// Use of this software is governed by the Business Source License included
// in the LICENSE file and at soniclabs.com/bsl11.
//
// Change Date: 2028-4-16
//
// On the date above, in accordance with the Business Source License, use of
// this software will be governed by the GNU Lesser General Public License v3.

package setmultimap

import (
	"fmt"

	"github.com/0xsoniclabs/evmactor/common"
	"github.com/0xsoniclabs/evmactor/database/blockstore"
	"github.com/0xsoniclabs/evmactor/database/hamt"
	"github.com/ipfs/go-cid"
)

// ErrInvalidSetRoot is returned if the value stored for an epoch is not the
// root id of a set.
const ErrInvalidSetRoot = common.ConstError("invalid set root")

// SetMultimap indexes sets of deal ids by epoch. It is a map from the epoch
// to the root of a set holding the epoch's ids, both stored as tries with the
// default bit width in the same block store.
type SetMultimap struct {
	m *hamt.Map
}

// New creates an empty multimap.
func New(store blockstore.Blockstore) *SetMultimap {
	return &SetMultimap{m: hamt.New(store, hamt.DefaultBitWidth)}
}

// FromRoot opens the multimap with the given root.
func FromRoot(store blockstore.Blockstore, root cid.Cid) (*SetMultimap, error) {
	m, err := hamt.Load(store, root, hamt.DefaultBitWidth)
	if err != nil {
		return nil, err
	}
	return &SetMultimap{m: m}, nil
}

// Root flushes the multimap and returns its root id.
func (s *SetMultimap) Root() (cid.Cid, error) {
	return s.m.Flush()
}

// Put adds the value to the set of the given epoch, creating the set if
// needed.
func (s *SetMultimap) Put(epoch common.ChainEpoch, value common.DealID, algo hamt.HashAlgorithm) error {
	return s.PutMany(epoch, []common.DealID{value}, algo)
}

// PutMany adds all values to the set of the given epoch. The set is stored
// once after all values were added.
func (s *SetMultimap) PutMany(epoch common.ChainEpoch, values []common.DealID, algo hamt.HashAlgorithm) error {
	set, found, err := s.Get(epoch, algo)
	if err != nil {
		return err
	}
	if !found {
		set = hamt.NewSet(s.m.Store(), hamt.DefaultBitWidth)
	}
	for _, value := range values {
		if err := set.Put(common.UintKey(value), algo); err != nil {
			return err
		}
	}
	return s.storeSet(epoch, set, algo)
}

// Get returns the set of the given epoch. A missing epoch does not create a
// set.
func (s *SetMultimap) Get(epoch common.ChainEpoch, algo hamt.HashAlgorithm) (*hamt.Set, bool, error) {
	data, found, err := s.m.Get(epochKey(epoch), algo)
	if err != nil || !found {
		return nil, false, err
	}
	root, err := cid.Cast(data)
	if err != nil {
		return nil, false, fmt.Errorf("%w for epoch %d: %w", ErrInvalidSetRoot, epoch, err)
	}
	set, err := hamt.LoadSet(s.m.Store(), root, hamt.DefaultBitWidth)
	if err != nil {
		return nil, false, err
	}
	return set, true, nil
}

// Remove removes the value from the set of the given epoch. Removing from a
// missing epoch is a no-op. A set emptied by this operation stays in the
// multimap; use RemoveAll to drop it.
func (s *SetMultimap) Remove(epoch common.ChainEpoch, value common.DealID, algo hamt.HashAlgorithm) error {
	set, found, err := s.Get(epoch, algo)
	if err != nil || !found {
		return err
	}
	if _, err := set.Delete(common.UintKey(value), algo); err != nil {
		return err
	}
	return s.storeSet(epoch, set, algo)
}

// RemoveAll removes the set of the given epoch, regardless of its content.
func (s *SetMultimap) RemoveAll(epoch common.ChainEpoch, algo hamt.HashAlgorithm) error {
	_, _, err := s.m.Delete(epochKey(epoch), algo)
	return err
}

// ForEach calls the visitor for every value in the set of the given epoch.
// Nothing is visited for a missing epoch. The first error returned by the
// visitor aborts the iteration and is returned.
func (s *SetMultimap) ForEach(epoch common.ChainEpoch, visit func(common.DealID) error, algo hamt.HashAlgorithm) error {
	set, found, err := s.Get(epoch, algo)
	if err != nil || !found {
		return err
	}
	return set.ForEach(func(key []byte) error {
		value, err := common.ParseUintKey(key)
		if err != nil {
			return fmt.Errorf("could not parse key %x: %w", key, err)
		}
		return visit(value)
	})
}

func (s *SetMultimap) storeSet(epoch common.ChainEpoch, set *hamt.Set, algo hamt.HashAlgorithm) error {
	root, err := set.Flush()
	if err != nil {
		return err
	}
	_, _, err = s.m.Set(epochKey(epoch), root.Bytes(), algo)
	return err
}

func epochKey(epoch common.ChainEpoch) []byte {
	return common.UintKey(uint64(epoch))
}
