// Copyright (c) 2025 Sonic Operations Ltd
//
// Use of this software is governed by the Business Source License included
// in the LICENSE file and at soniclabs.com/bsl11.
//
// Change Date: 2028-4-16
//
// On the date above, in accordance with the Business Source License, use of
// this software will be governed by the GNU Lesser General Public License v3.

package main

import (
	"fmt"
	"strings"

	"github.com/0xsoniclabs/evmactor/database/blockstore"
	"github.com/0xsoniclabs/evmactor/database/hamt"
	"github.com/0xsoniclabs/evmactor/runtime"
	"github.com/ipfs/go-cid"
	"github.com/urfave/cli/v2"
)

var (
	verbosityFlag = cli.IntFlag{
		Name:  "verbosity",
		Usage: "logging verbosity: 0=crit, 1=error, 2=warn, 3=info, 4=debug, 5=trace",
		Value: 3,
	}
	variantFlag = cli.StringFlag{
		Name:  "variant",
		Usage: fmt.Sprintf("block store variant (%s)", variantNames()),
		Value: string(blockstore.LevelDbVariant),
	}
	compressionFlag = cli.BoolFlag{
		Name:  "compression",
		Usage: "whether blocks were stored snappy compressed",
	}
	cacheSizeFlag = cli.IntFlag{
		Name:  "cache-size",
		Usage: "number of cached blocks, 0 for a memory based default, negative to disable",
	}
	bitWidthFlag = cli.IntFlag{
		Name:  "bit-width",
		Usage: "number of hash bits consumed per trie level",
		Value: hamt.DefaultBitWidth,
	}
	hashFlag = cli.StringFlag{
		Name:  "hash",
		Usage: fmt.Sprintf("hash function used for keys (%s)", hashNames()),
		Value: runtime.Sha2_256.String(),
	}
)

// storeFlags are the flags of all commands reading a trie.
var storeFlags = []cli.Flag{
	&variantFlag,
	&compressionFlag,
	&cacheSizeFlag,
	&bitWidthFlag,
}

func variantNames() string {
	names := []string{}
	for _, variant := range blockstore.Variants() {
		names = append(names, string(variant))
	}
	return strings.Join(names, ", ")
}

func hashNames() string {
	names := []string{}
	for _, hash := range runtime.SupportedHashes() {
		names = append(names, hash.String())
	}
	return strings.Join(names, ", ")
}

// parseArgs extracts the directory and the root id from the command line.
func parseArgs(ctx *cli.Context) (string, cid.Cid, error) {
	if ctx.Args().Len() != 2 {
		return "", cid.Undef, fmt.Errorf("expected <directory> <root>, got %d arguments", ctx.Args().Len())
	}
	root, err := cid.Decode(ctx.Args().Get(1))
	if err != nil {
		return "", cid.Undef, fmt.Errorf("invalid root %q: %w", ctx.Args().Get(1), err)
	}
	return ctx.Args().Get(0), root, nil
}

func openStore(ctx *cli.Context, dir string) (blockstore.Blockstore, error) {
	return blockstore.Open(blockstore.Parameters{
		Variant:     blockstore.Variant(ctx.String(variantFlag.Name)),
		Directory:   dir,
		Compression: ctx.Bool(compressionFlag.Name),
		CacheSize:   ctx.Int(cacheSizeFlag.Name),
	})
}

func hashAlgorithm(ctx *cli.Context) (hamt.HashAlgorithm, error) {
	hash, err := runtime.ParseSupportedHash(ctx.String(hashFlag.Name))
	if err != nil {
		return nil, err
	}
	return runtime.NewRuntimeHasher(runtime.Builtin, hash), nil
}
