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
	"context"
	"fmt"
	"os"
	"os/signal"

	"github.com/ethereum/go-ethereum/log"
	"github.com/urfave/cli/v2"
)

// Run using
//  go run ./database/hamt/tool <command> <flags>

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()
	if err := newApp().RunContext(ctx, os.Args); err != nil {
		fmt.Fprintf(os.Stderr, "%v\n", err)
		stop()
		os.Exit(1)
	}
}

func newApp() *cli.App {
	return &cli.App{
		Name:      "hamt-tool",
		Usage:     "inspects hash array mapped tries stored in a block store",
		Copyright: "(c) 2025 Sonic Operations Ltd",
		Flags: []cli.Flag{
			&verbosityFlag,
		},
		Before: func(ctx *cli.Context) error {
			verbosity := ctx.Int(verbosityFlag.Name)
			if verbosity < 0 || verbosity > 5 {
				return fmt.Errorf("invalid verbosity %d, must be between 0 and 5", verbosity)
			}
			level := log.FromLegacyLevel(verbosity)
			log.SetDefault(log.NewLogger(log.NewTerminalHandlerWithLevel(os.Stderr, level, true)))
			return nil
		},
		Commands: []*cli.Command{
			&Check,
			&Dump,
			&Stats,
		},
	}
}
