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
	"os"
	"os/signal"
	"time"

	cliUtils "github.com/Fantom-foundation/actiontrace/go/cmd/actiontrace/cli"
	"github.com/Fantom-foundation/actiontrace/go/tracing/replay"
	"github.com/dsnet/golib/unitconv"
	"github.com/ethereum/go-ethereum/log"
	"github.com/urfave/cli/v2"
)

var FuzzCmd = cliUtils.AddCommonFlags(cli.Command{
	Action: doFuzz,
	Name:   "fuzz",
	Usage:  "Traces random call trees and checks the properties of the recorded actions",
	Flags: []cli.Flag{
		cliUtils.SeedFlag,
		cliUtils.RunsFlag,
		cliUtils.ContractsFlag,
		cliUtils.LenientFlag,
	},
})

func doFuzz(context *cli.Context) error {
	seed := cliUtils.SeedFlag.Fetch(context)
	runs := cliUtils.RunsFlag.Fetch(context)

	generator := replay.DefaultGeneratorConfig()
	generator.Contracts = cliUtils.ContractsFlag.Fetch(context)
	generator.Strict = !cliUtils.LenientFlag.Fetch(context)

	ctx, stop := signal.NotifyContext(context.Context, os.Interrupt)
	defer stop()

	printProgress := func(done int, elapsed time.Duration) {
		rate := float64(done) / elapsed.Seconds()
		fmt.Printf(
			"[t=%4d:%02d] - Processing ~%s transactions per second, total %d\n",
			int(elapsed.Seconds())/60, int(elapsed.Seconds())%60,
			unitconv.FormatPrefix(rate, unitconv.SI, 0), done,
		)
	}

	fmt.Printf("Tracing %d random transactions with seed %d ...\n", runs, seed)
	report, err := replay.Fuzz(ctx, replay.FuzzConfig{
		Runs:      runs,
		Seed:      seed,
		Generator: generator,
		Logger:    log.Root(),
		Progress:  printProgress,
	})
	if err != nil {
		if ctx.Err() == nil {
			return fmt.Errorf("error tracing random transactions: %w", err)
		}
		fmt.Println("Interrupted")
	}

	fmt.Printf("Traced %d transactions with %d actions in %v\n", report.Runs, report.Actions, report.Duration.Round(time.Millisecond))
	fmt.Printf("%v", newOutcomeStatistics(report.Outcomes))
	if report.Invalid > 0 || report.Anomalies > 0 {
		fmt.Printf("%d invalid actions, %d anomalies\n", report.Invalid, report.Anomalies)
	}
	if len(report.Failures) > 0 {
		for _, failure := range report.Failures {
			fmt.Fprintln(os.Stderr, failure)
		}
		return fmt.Errorf("%d property violations found", len(report.Failures))
	}
	return nil
}
