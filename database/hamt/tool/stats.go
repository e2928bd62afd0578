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

	"github.com/0xsoniclabs/evmactor/database/hamt"
	"github.com/urfave/cli/v2"
)

var Stats = cli.Command{
	Action:    addPerformanceDiagnoses(stats),
	Name:      "stats",
	Usage:     "summarizes the shape of a trie",
	ArgsUsage: "<directory> <root>",
	Flags:     append([]cli.Flag{&cpuProfileFlag}, storeFlags...),
}

func stats(ctx *cli.Context) error {
	dir, root, err := parseArgs(ctx)
	if err != nil {
		return err
	}
	store, err := openStore(ctx, dir)
	if err != nil {
		return err
	}
	res, err := hamt.GetStats(ctx.Context, store, root, ctx.Int(bitWidthFlag.Name))
	if err == nil {
		fmt.Fprintln(ctx.App.Writer, res)
	}
	return errors.Join(err, store.Close())
}
