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

	"github.com/Fantom-foundation/actiontrace/go/tosca"
	"github.com/Fantom-foundation/actiontrace/go/tracing/actions"
	"github.com/urfave/cli/v2"
	"golang.org/x/exp/slices"

	// registers the scripted interpreter
	_ "github.com/Fantom-foundation/actiontrace/go/tracing/replay"
)

var interpretersFlag = &cli.BoolFlag{
	Name:  "interpreters",
	Usage: "list the registered interpreters instead of the known halt reasons",
}

var ListCmd = cli.Command{
	Action: doList,
	Name:   "list",
	Usage:  "List all known halt reasons by name",
	Flags: []cli.Flag{
		interpretersFlag,
	},
}

func doList(context *cli.Context) error {
	if context.Bool(interpretersFlag.Name) {
		for _, name := range tosca.GetRegisteredInterpreterNames() {
			fmt.Println(name)
		}
		return nil
	}

	reasons := actions.KnownHaltReasons()
	slices.Sort(reasons)
	for _, reason := range reasons {
		fmt.Println(reason)
	}
	return nil
}
