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
	"os"
	"runtime/pprof"
	"time"

	"github.com/ethereum/go-ethereum/log"
	"github.com/urfave/cli/v2"
)

var cpuProfileFlag = cli.StringFlag{
	Name:  "cpuprofile",
	Usage: "write a CPU profile of the command to the given file",
}

// addPerformanceDiagnoses wraps a command action with optional CPU profiling
// and a report of its duration.
func addPerformanceDiagnoses(action cli.ActionFunc) cli.ActionFunc {
	return func(ctx *cli.Context) error {
		if path := ctx.String(cpuProfileFlag.Name); path != "" {
			file, err := os.Create(path)
			if err != nil {
				return fmt.Errorf("failed to create CPU profile: %w", err)
			}
			defer file.Close()
			if err := pprof.StartCPUProfile(file); err != nil {
				return fmt.Errorf("failed to start CPU profile: %w", err)
			}
			defer pprof.StopCPUProfile()
		}
		start := time.Now()
		err := action(ctx)
		log.Info("Command finished", "command", ctx.Command.Name, "duration", time.Since(start).Round(time.Millisecond))
		return err
	}
}
