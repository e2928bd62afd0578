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
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/ethereum/go-ethereum/log"
	"github.com/pbnjay/memory"
)

// Variant names a NodeStore implementation.
type Variant string

const (
	MemoryVariant  Variant = "memory"
	LevelDbVariant Variant = "leveldb"
	PebbleVariant  Variant = "pebble"
	SqliteVariant  Variant = "sqlite"
)

// Variants lists all supported block store variants.
func Variants() []Variant {
	return []Variant{MemoryVariant, LevelDbVariant, PebbleVariant, SqliteVariant}
}

// Parameters configures a block store instance.
type Parameters struct {
	Variant   Variant
	Directory string // < ignored by the memory variant

	// Compression enables snappy compression of stored blocks.
	Compression bool

	// CacheSize is the number of blocks kept in the read cache. Zero selects
	// a default derived from the system's memory, negative values disable
	// the cache.
	CacheSize int
}

const (
	minDefaultCacheSize = 1 << 10
	maxDefaultCacheSize = 1 << 20
	assumedBlockSize    = 4 << 10
)

// Open creates or re-opens the block store described by the given parameters.
func Open(params Parameters) (Blockstore, error) {
	var (
		nodes NodeStore
		err   error
	)
	switch params.Variant {
	case MemoryVariant:
		nodes = newMemoryStore()
	case LevelDbVariant:
		nodes, err = newLevelDbStore(filepath.Join(params.Directory, "blocks"))
	case PebbleVariant:
		nodes, err = newPebbleStore(filepath.Join(params.Directory, "blocks"))
	case SqliteVariant:
		if err = os.MkdirAll(params.Directory, 0700); err == nil {
			nodes, err = newSqliteStore(filepath.Join(params.Directory, "blocks.sqlite"))
		}
	default:
		return nil, fmt.Errorf("unsupported block store variant: %q", params.Variant)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to open %s block store in %s: %w", params.Variant, params.Directory, err)
	}

	cacheSize := params.CacheSize
	if cacheSize == 0 {
		cacheSize = defaultCacheSize()
	}
	res, err := newStore(nodes, params.Compression, cacheSize)
	if err != nil {
		return nil, errors.Join(err, nodes.Close())
	}
	log.Debug("Opened block store",
		"variant", params.Variant,
		"directory", params.Directory,
		"compression", params.Compression,
		"cache", cacheSize,
	)
	return res, nil
}

// defaultCacheSize dedicates roughly 1/64 of the physical memory to cached
// blocks.
func defaultCacheSize() int {
	total := memory.TotalMemory()
	size := int(total / 64 / assumedBlockSize)
	return min(max(size, minDefaultCacheSize), maxDefaultCacheSize)
}
