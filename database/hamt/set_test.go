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
	"context"
	"fmt"
	"testing"

	"github.com/0xsoniclabs/evmactor/common"
	"github.com/0xsoniclabs/evmactor/database/blockstore"
	"github.com/stretchr/testify/require"
)

func TestSet_MembersCanBeAddedAndRemoved(t *testing.T) {
	require := require.New(t)
	set := NewSet(blockstore.NewMemoryBlockstore(), DefaultBitWidth)
	require.True(set.IsEmpty())

	require.NoError(set.Put(key(1), sha))
	require.NoError(set.Put(key(1), sha))
	require.NoError(set.Put(key(2), sha))

	for i, want := range []bool{false, true, true, false} {
		got, err := set.Has(key(i), sha)
		require.NoError(err)
		require.Equal(want, got, "key %d", i)
	}

	removed, err := set.Delete(key(1), sha)
	require.NoError(err)
	require.True(removed)
	removed, err = set.Delete(key(1), sha)
	require.NoError(err)
	require.False(removed)

	found, err := set.Has(key(1), sha)
	require.NoError(err)
	require.False(found)
}

func TestSet_ForEachVisitsAllMembers(t *testing.T) {
	const N = 100
	require := require.New(t)
	set := NewSet(blockstore.NewMemoryBlockstore(), DefaultBitWidth)
	for i := range N {
		require.NoError(set.Put(key(i), sha))
	}

	seen := map[uint64]bool{}
	require.NoError(set.ForEach(func(k []byte) error {
		i, err := common.ParseUintKey(k)
		seen[i] = true
		return err
	}))
	require.Len(seen, N)
}

func TestSet_AllIsRestartableAndObservesModifications(t *testing.T) {
	require := require.New(t)
	set := NewSet(blockstore.NewMemoryBlockstore(), DefaultBitWidth)
	for i := range 5 {
		require.NoError(set.Put(key(i), sha))
	}

	members := set.All()
	collect := func() [][]byte {
		var res [][]byte
		for member, err := range members {
			require.NoError(err)
			res = append(res, member)
		}
		return res
	}

	first := collect()
	require.Len(first, 5)
	require.Equal(first, collect())

	require.NoError(set.Put(key(5), sha))
	_, err := set.Delete(key(0), sha)
	require.NoError(err)

	second := collect()
	require.Len(second, 5)
	require.Contains(second, key(5))
	require.NotContains(second, key(0))
}

func TestSet_TraversalOrderIsIndependentOfInsertionOrder(t *testing.T) {
	require := require.New(t)
	a := NewSet(blockstore.NewMemoryBlockstore(), DefaultBitWidth)
	b := NewSet(blockstore.NewMemoryBlockstore(), DefaultBitWidth)
	for i := range 50 {
		require.NoError(a.Put(key(i), sha))
		require.NoError(b.Put(key(49-i), sha))
	}

	var orderA, orderB [][]byte
	for member, err := range a.All() {
		require.NoError(err)
		orderA = append(orderA, member)
	}
	for member, err := range b.All() {
		require.NoError(err)
		orderB = append(orderB, member)
	}
	require.Equal(orderA, orderB)
}

func TestSet_CanBeReloadedFromItsRoot(t *testing.T) {
	require := require.New(t)
	store := blockstore.NewMemoryBlockstore()
	set := NewSet(store, DefaultBitWidth)
	for i := range 20 {
		require.NoError(set.Put(key(i), sha))
	}
	root, err := set.Flush()
	require.NoError(err)

	reloaded, err := LoadSet(store, root, DefaultBitWidth)
	require.NoError(err)
	for i := range 20 {
		found, err := reloaded.Has(key(i), sha)
		require.NoError(err)
		require.True(found)
	}
	require.NoError(reloaded.Check(context.Background(), sha))
}

func TestSet_RootEqualsMapWithEmptyValues(t *testing.T) {
	require := require.New(t)
	store := blockstore.NewMemoryBlockstore()
	set := NewSet(store, DefaultBitWidth)
	m := New(store, DefaultBitWidth)
	for i := range 30 {
		require.NoError(set.Put(key(i), sha))
		_, _, err := m.Set(key(i), nil, sha)
		require.NoError(err)
	}
	want, err := m.Flush()
	require.NoError(err)
	got, err := set.Flush()
	require.NoError(err)
	require.Equal(want, got)
}

func TestSet_ForEachPropagatesVisitorErrors(t *testing.T) {
	require := require.New(t)
	set := NewSet(blockstore.NewMemoryBlockstore(), DefaultBitWidth)
	require.NoError(set.Put(key(1), sha))

	injected := fmt.Errorf("injected error")
	require.ErrorIs(set.ForEach(func([]byte) error { return injected }), injected)
}
