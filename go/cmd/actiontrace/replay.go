// Copyright (c) 2024 Fantom Foundation
//
// Use of this software is governed by the Business Source License included
// in the LICENSE file and at fantom.foundation/bsl11.
//
// Change Date: 2028-4-16
//
// On the date above, in accordance with the Business Source License, use of
// this software will be governed by the GNU Lesser General Public License v3.

package main

import (
	"fmt"
	"io"
	"os"
	"path/filepath"

	cliUtils "github.com/Fantom-foundation/actiontrace/go/cmd/actiontrace/cli"
	"github.com/Fantom-foundation/actiontrace/go/processor/floria"
	"github.com/Fantom-foundation/actiontrace/go/tracing/replay"
	"github.com/ethereum/go-ethereum/log"
	"github.com/urfave/cli/v2"
)

var ReplayCmd = cliUtils.AddCommonFlags(cli.Command{
	Action:    doReplay,
	Name:      "replay",
	Usage:     "Replays scenario files and prints the actions of their transactions",
	ArgsUsage: "<scenario.json>...",
	Flags: []cli.Flag{
		cliUtils.OutputFlag,
		cliUtils.LenientFlag,
		cliUtils.NoValidationFlag,
	},
})

func doReplay(context *cli.Context) error {
	if context.NArg() == 0 {
		return fmt.Errorf("no scenario file given")
	}

	out := io.Writer(os.Stdout)
	if filename := cliUtils.OutputFlag.Fetch(context); filename != "" {
		file, err := os.Create(filename)
		if err != nil {
			return fmt.Errorf("could not create output file: %w", err)
		}
		defer file.Close()
		out = file
	}

	config := floria.DefaultConfig()
	config.Tracing.ValidateActions = !cliUtils.NoValidationFlag.Fetch(context)
	config.Tracing.Logger = log.Root()
	lenient := cliUtils.LenientFlag.Fetch(context)

	mismatches := 0
	for _, path := range context.Args().Slice() {
		scenario, err := replay.LoadScenario(path)
		if err != nil {
			return err
		}
		if lenient {
			strict := false
			scenario.Strict = &strict
		}
		name := scenario.Name
		if name == "" {
			name = filepath.Base(path)
		}

		result, err := scenario.Run(config)
		if err != nil {
			return fmt.Errorf("failed to replay %s: %w", name, err)
		}
		log.Debug("Replayed scenario", "scenario", name, "success", result.Receipt.Success, "actions", len(result.Actions))

		export, err := replay.NewExport(name, result)
		if err != nil {
			return err
		}
		if err := export.Write(out); err != nil {
			return err
		}

		if diffs := scenario.Check(result); len(diffs) > 0 {
			log.Error("Unexpected final state", "scenario", name, "differences", len(diffs))
			for _, diff := range diffs {
				fmt.Fprintf(os.Stderr, "\t%s\n", diff)
			}
			mismatches++
		}
	}
	if mismatches > 0 {
		return fmt.Errorf("%d scenario(s) ended in an unexpected state", mismatches)
	}
	return nil
}
