// Copyright (c) 2025 Sonic Operations Ltd
//
// Use of this software is governed by the Business Source License included
// in the LICENSE file and at soniclabs.com/bsl11.
//
// Change Date: 2028-4-16
//
// On the date above, in accordance with the Business Source License, use of
// this software will be governed by the GNU Lesser General Public License v3.

package blockstore

import (
	"fmt"
	"sync"
	"testing"

	"github.com/ipfs/go-cid"
	"github.com/multiformats/go-multihash"
	"github.com/stretchr/testify/require"
)

var _ NodeStore = (*memoryStore)(nil)
var _ NodeStore = (*levelDbStore)(nil)
var _ NodeStore = (*pebbleStore)(nil)
var _ NodeStore = (*sqliteStore)(nil)
var _ Blockstore = (*store)(nil)

func allParameters(t *testing.T) map[string]Parameters {
	res := map[string]Parameters{}
	for _, variant := range Variants() {
		for _, compression := range []bool{false, true} {
			for _, cacheSize := range []int{-1, 16} {
				name := fmt.Sprintf("%s/compression=%t/cache=%d", variant, compression, cacheSize)
				res[name] = Parameters{
					Variant:     variant,
					Directory:   t.TempDir(),
					Compression: compression,
					CacheSize:   cacheSize,
				}
			}
		}
	}
	return res
}

func TestComputeCid_IsDeterministicBlake2bRawCid(t *testing.T) {
	require := require.New(t)

	id1, err := ComputeCid([]byte("hello"))
	require.NoError(err)
	id2, err := ComputeCid([]byte("hello"))
	require.NoError(err)
	id3, err := ComputeCid([]byte("world"))
	require.NoError(err)

	require.True(id1.Equals(id2))
	require.False(id1.Equals(id3))

	prefix := id1.Prefix()
	require.Equal(uint64(1), prefix.Version)
	require.Equal(uint64(cid.Raw), prefix.Codec)
	require.Equal(uint64(multihash.BLAKE2B_MIN+31), prefix.MhType)
	require.Equal(32, prefix.MhLength)
}

func TestBlockstore_StoredBlocksCanBeRetrieved(t *testing.T) {
	for name, params := range allParameters(t) {
		t.Run(name, func(t *testing.T) {
			require := require.New(t)
			store, err := Open(params)
			require.NoError(err)
			defer func() {
				require.NoError(store.Close())
			}()

			block1 := []byte("block-1")
			block2 := []byte("block-2")

			id1, err := store.Put(block1)
			require.NoError(err)
			id2, err := store.Put(block2)
			require.NoError(err)
			require.False(id1.Equals(id2))

			got, err := store.Get(id1)
			require.NoError(err)
			require.Equal(block1, got)

			got, err = store.Get(id2)
			require.NoError(err)
			require.Equal(block2, got)

			found, err := store.Has(id1)
			require.NoError(err)
			require.True(found)
		})
	}
}

func TestBlockstore_PuttingTheSameBlockTwiceYieldsTheSameId(t *testing.T) {
	require := require.New(t)
	store := NewMemoryBlockstore()

	id1, err := store.Put([]byte{1, 2, 3})
	require.NoError(err)
	id2, err := store.Put([]byte{1, 2, 3})
	require.NoError(err)
	require.True(id1.Equals(id2))
}

func TestBlockstore_ReturnsNotFoundForMissingBlock(t *testing.T) {
	for name, params := range allParameters(t) {
		t.Run(name, func(t *testing.T) {
			require := require.New(t)
			store, err := Open(params)
			require.NoError(err)
			defer func() {
				require.NoError(store.Close())
			}()

			id, err := ComputeCid([]byte("missing"))
			require.NoError(err)

			_, err = store.Get(id)
			require.ErrorIs(err, ErrNotFound)

			found, err := store.Has(id)
			require.NoError(err)
			require.False(found)

			_, err = store.Get(cid.Undef)
			require.ErrorIs(err, ErrNotFound)
		})
	}
}

func TestBlockstore_CanKeepDataPersistent(t *testing.T) {
	for name, params := range allParameters(t) {
		if params.Variant == MemoryVariant {
			continue
		}
		t.Run(name, func(t *testing.T) {
			require := require.New(t)
			block := []byte("persistent block")

			store, err := Open(params)
			require.NoError(err)
			id, err := store.Put(block)
			require.NoError(err)
			require.NoError(store.Flush())
			require.NoError(store.Close())

			store, err = Open(params)
			require.NoError(err)
			got, err := store.Get(id)
			require.NoError(err)
			require.Equal(block, got)
			require.NoError(store.Close())
		})
	}
}

func TestBlockstore_DetectsCorruptedBlocks(t *testing.T) {
	for _, compress := range []bool{false, true} {
		t.Run(fmt.Sprintf("compression=%t", compress), func(t *testing.T) {
			require := require.New(t)
			nodes := newMemoryStore()
			store, err := newStore(nodes, compress, 0)
			require.NoError(err)

			id, err := store.Put([]byte("original"))
			require.NoError(err)

			// Overwrite the payload behind the store's back.
			require.NoError(nodes.Set(id.Bytes(), []byte("tampered")))

			_, err = store.Get(id)
			require.ErrorIs(err, ErrCorruptedBlock)
		})
	}
}

func TestBlockstore_CompressionIsTransparentForIds(t *testing.T) {
	require := require.New(t)
	plain, err := newStore(newMemoryStore(), false, 0)
	require.NoError(err)
	compressed, err := newStore(newMemoryStore(), true, 0)
	require.NoError(err)

	block := make([]byte, 1024) // highly compressible
	id1, err := plain.Put(block)
	require.NoError(err)
	id2, err := compressed.Put(block)
	require.NoError(err)
	require.True(id1.Equals(id2))

	stored, err := compressed.nodes.Get(id2.Bytes())
	require.NoError(err)
	require.Less(len(stored), len(block))
}

func TestBlockstore_CacheServesReadsOfKnownBlocks(t *testing.T) {
	require := require.New(t)
	nodes := newMemoryStore()
	store, err := newStore(nodes, false, 4)
	require.NoError(err)

	id, err := store.Put([]byte("cached"))
	require.NoError(err)
	_, err = store.Get(id) // < populates the cache
	require.NoError(err)

	// Remove the block from the node store; the cache still knows it.
	delete(nodes.store, string(id.Bytes()))

	got, err := store.Get(id)
	require.NoError(err)
	require.Equal([]byte("cached"), got)
}

func TestBlockstore_ModifyingRetrievedBlocksDoesNotAffectTheStore(t *testing.T) {
	for name, params := range allParameters(t) {
		t.Run(name, func(t *testing.T) {
			require := require.New(t)
			store, err := Open(params)
			require.NoError(err)
			defer func() {
				require.NoError(store.Close())
			}()

			id, err := store.Put([]byte("shared"))
			require.NoError(err)

			// The first read populates the cache, the second one is served by it.
			for range 2 {
				got, err := store.Get(id)
				require.NoError(err)
				require.Equal([]byte("shared"), got)
				copy(got, "XXXXXX")
			}

			got, err := store.Get(id)
			require.NoError(err)
			require.Equal([]byte("shared"), got)
		})
	}
}

func TestBlockstore_PebbleStoreKeepsBlocksBeyondMemTableSize(t *testing.T) {
	require := require.New(t)
	params := Parameters{Variant: PebbleVariant, Directory: t.TempDir(), CacheSize: -1}

	store, err := Open(params)
	require.NoError(err)
	block := make([]byte, 64*1024)
	ids := make([]cid.Cid, 0, 1024)
	for i := range 1024 { // 64MB, more than two memtables
		block[0], block[1] = byte(i), byte(i>>8)
		id, err := store.Put(block)
		require.NoError(err)
		ids = append(ids, id)
	}
	require.NoError(store.Close())

	store, err = Open(params)
	require.NoError(err)
	for i, id := range ids {
		got, err := store.Get(id)
		require.NoError(err)
		require.Equal([]byte{byte(i), byte(i >> 8)}, got[:2])
	}
	require.NoError(store.Close())
}

func TestBlockstore_OperationsOnClosedMemoryStoreFail(t *testing.T) {
	require := require.New(t)
	store := NewMemoryBlockstore()
	require.NoError(store.Close())

	_, err := store.Put([]byte{1})
	require.ErrorIs(err, ErrClosed)
}

func TestBlockstore_IsThreadSafe(t *testing.T) {
	// This test fails if data races are detected when run with the --race flag.
	for name, params := range allParameters(t) {
		t.Run(name, func(t *testing.T) {
			store, err := Open(params)
			require.NoError(t, err)
			defer func() {
				require.NoError(t, store.Close())
			}()

			const N = 5
			var wg sync.WaitGroup
			wg.Add(N)
			for i := range N {
				go func() {
					defer wg.Done()
					for j := range 10 {
						id, err := store.Put([]byte{byte(i), byte(j)})
						if err != nil {
							t.Errorf("put failed: %v", err)
							return
						}
						if _, err := store.Get(id); err != nil {
							t.Errorf("get failed: %v", err)
						}
					}
				}()
			}
			wg.Wait()
		})
	}
}

func TestOpen_RejectsUnknownVariant(t *testing.T) {
	_, err := Open(Parameters{Variant: "unknown"})
	require.ErrorContains(t, err, "unsupported block store variant")
}

func TestDefaultCacheSize_IsWithinBounds(t *testing.T) {
	size := defaultCacheSize()
	require.GreaterOrEqual(t, size, minDefaultCacheSize)
	require.LessOrEqual(t, size, maxDefaultCacheSize)
}
