// Copyright (c) 2024 Fantom Foundation
//
// Use of this software is governed by the Business Source License included
// in the LICENSE file and at fantom.foundation/bsl11.
//
// Change Date: 2028-4-16
//
// On the date above, in accordance with the Business Source License, use of
// this software will be governed by the GNU Lesser General Public License v3.

package cliUtils

import (
	"fmt"
	"os"
	"runtime/pprof"

	"github.com/ethereum/go-ethereum/log"
	"github.com/urfave/cli/v2"
)

type seedFlagType struct {
	cli.Uint64Flag
}

var SeedFlag = &seedFlagType{
	cli.Uint64Flag{
		Name:    "seed",
		Aliases: []string{"s"},
		Usage:   "seed for the random number generator",
	},
}

func (f *seedFlagType) Fetch(context *cli.Context) uint64 {
	return context.Uint64(f.Name)
}

type runsFlagType struct {
	cli.IntFlag
}

var RunsFlag = &runsFlagType{
	cli.IntFlag{
		Name:    "runs",
		Aliases: []string{"n"},
		Usage:   "number of random transactions to trace",
		Value:   10_000,
	},
}

func (f *runsFlagType) Fetch(context *cli.Context) int {
	return context.Int(f.Name)
}

type contractsFlagType struct {
	cli.IntFlag
}

var ContractsFlag = &contractsFlagType{
	cli.IntFlag{
		Name:  "contracts",
		Usage: "number of contracts deployed in every random transaction",
		Value: 8,
	},
}

func (f *contractsFlagType) Fetch(context *cli.Context) int {
	return context.Int(f.Name)
}

type lenientFlagType struct {
	cli.BoolFlag
}

var LenientFlag = &lenientFlagType{
	cli.BoolFlag{
		Name:  "lenient",
		Usage: "if enabled, calls to missing addresses are executed instead of being rejected",
	},
}

func (f *lenientFlagType) Fetch(context *cli.Context) bool {
	return context.Bool(f.Name)
}

type noValidationFlagType struct {
	cli.BoolFlag
}

var NoValidationFlag = &noValidationFlagType{
	cli.BoolFlag{
		Name:  "no-validation",
		Usage: "disable the validation of finalized actions",
	},
}

func (f *noValidationFlagType) Fetch(context *cli.Context) bool {
	return context.Bool(f.Name)
}

type outputFlagType struct {
	cli.StringFlag
}

var OutputFlag = &outputFlagType{
	cli.StringFlag{
		Name:      "output",
		Aliases:   []string{"o"},
		Usage:     "write the exported actions to the provided filename instead of stdout",
		TakesFile: true,
	},
}

func (f *outputFlagType) Fetch(context *cli.Context) string {
	return context.String(f.Name)
}

type logLevelFlagType struct {
	cli.StringFlag
}

var LogLevelFlag = &logLevelFlagType{
	cli.StringFlag{
		Name:  "log-level",
		Usage: "minimum severity of printed log messages (trace, debug, info, warn, error, crit)",
		Value: "info",
	},
}

func (f *logLevelFlagType) Fetch(context *cli.Context) (log.Logger, error) {
	level, err := log.LvlFromString(context.String(f.Name))
	if err != nil {
		return nil, err
	}
	return log.NewLogger(log.NewTerminalHandlerWithLevel(os.Stderr, level, false)), nil
}

var commonFlags = []cli.Flag{
	cpuProfileFlag,
	LogLevelFlag,
}

var cpuProfileFlag = &cli.StringFlag{
	Name:  "cpuprofile",
	Usage: "store CPU profile in the provided filename",
}

// AddCommonFlags adds the profiling and logging flags to the command. The
// logger selected by the log level becomes the default logger.
func AddCommonFlags(command cli.Command) cli.Command {
	command.Flags = append(command.Flags, commonFlags...)

	action := command.Action
	command.Action = func(ctx *cli.Context) (err error) {
		logger, err := LogLevelFlag.Fetch(ctx)
		if err != nil {
			return fmt.Errorf("invalid log level: %w", err)
		}
		log.SetDefault(logger)

		if cpuprofileFilename := ctx.String(cpuProfileFlag.Name); cpuprofileFilename != "" {
			f, err := os.Create(cpuprofileFilename)
			if err != nil {
				return fmt.Errorf("could not create CPU profile: %w", err)
			}
			if err := pprof.StartCPUProfile(f); err != nil {
				return fmt.Errorf("could not start CPU profile: %w", err)
			}
			defer pprof.StopCPUProfile()
		}

		return action(ctx)
	}
	return command
}
