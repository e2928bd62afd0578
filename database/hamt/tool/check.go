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
	"time"

	"github.com/0xsoniclabs/evmactor/database/hamt"
	"github.com/ethereum/go-ethereum/log"
	"github.com/urfave/cli/v2"
)

var Check = cli.Command{
	Action:    addPerformanceDiagnoses(check),
	Name:      "check",
	Usage:     "performs extensive invariants checks",
	ArgsUsage: "<directory> <root>",
	Flags:     append([]cli.Flag{&hashFlag, &cpuProfileFlag}, storeFlags...),
}

func check(ctx *cli.Context) error {
	dir, root, err := parseArgs(ctx)
	if err != nil {
		return err
	}
	algo, err := hashAlgorithm(ctx)
	if err != nil {
		return err
	}
	store, err := openStore(ctx, dir)
	if err != nil {
		return err
	}

	log.Info("Checking trie", "directory", dir, "root", root)
	err = hamt.Verify(ctx.Context, store, root, ctx.Int(bitWidthFlag.Name), algo, &verificationObserver{})
	err = errors.Join(err, store.Close())
	if err == nil {
		fmt.Fprintln(ctx.App.Writer, "All checks passed!")
	}
	return err
}

type verificationObserver struct {
	start time.Time
}

func (o *verificationObserver) StartVerification() {
	o.start = time.Now()
	log.Info("Verification started")
}

func (o *verificationObserver) Progress(msg string) {
	log.Info(msg, "elapsed", time.Since(o.start).Round(time.Millisecond))
}

func (o *verificationObserver) EndVerification(res error) {
	if res != nil {
		log.Error("Verification failed", "err", res)
		return
	}
	log.Info("Verification succeeded", "elapsed", time.Since(o.start).Round(time.Millisecond))
}
