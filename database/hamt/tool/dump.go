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
	"errors"
	"fmt"

	"github.com/0xsoniclabs/evmactor/database/blockstore"
	"github.com/0xsoniclabs/evmactor/database/hamt"
	"github.com/ethereum/go-ethereum/common/hexutil"
	"github.com/ipfs/go-cid"
	"github.com/urfave/cli/v2"
)

var Dump = cli.Command{
	Action:    dump,
	Name:      "dump",
	Usage:     "prints all key/value pairs of a trie",
	ArgsUsage: "<directory> <root>",
	Flags:     storeFlags,
}

func dump(ctx *cli.Context) error {
	dir, root, err := parseArgs(ctx)
	if err != nil {
		return err
	}
	store, err := openStore(ctx, dir)
	if err != nil {
		return err
	}
	return errors.Join(dumpTrie(ctx, store, root), store.Close())
}

func dumpTrie(ctx *cli.Context, store blockstore.Blockstore, root cid.Cid) error {
	m, err := hamt.Load(store, root, ctx.Int(bitWidthFlag.Name))
	if err != nil {
		return err
	}
	for entry, err := range m.All() {
		if err != nil {
			return err
		}
		if _, err := fmt.Fprintf(ctx.App.Writer, "%s: %s\n", hexutil.Encode(entry.Key), hexutil.Encode(entry.Value)); err != nil {
			return err
		}
	}
	return nil
}
