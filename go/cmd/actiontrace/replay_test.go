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
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"testing"

	"github.com/urfave/cli/v2"
)

const testScenario = `{
	"revision": "Cancun",
	"accounts": [
		{"address": "0x00000000000000000000000000000000000003e9", "balance": "1000000"},
		{"address": "0x0000000000000000000000000000000000001001", "balance": "0", "code": "0x01"}
	],
	"programs": {"0x01": [{"op": "revert", "output": "0x2a"}]},
	"transaction": {
		"sender": "0x00000000000000000000000000000000000003e9",
		"recipient": "0x0000000000000000000000000000000000001001",
		"nonce": 0,
		"value": "0",
		"gasLimit": 50000,
		"gasPrice": "1"
	},
	"after": [{"address": "0x0000000000000000000000000000000000001001", "balance": "%s", "code": "0x01"}]
}`

func writeScenario(t *testing.T, balance string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "scenario.json")
	data := []byte(fmt.Sprintf(testScenario, balance))
	if err := os.WriteFile(path, data, 0600); err != nil {
		t.Fatalf("failed to write scenario: %v", err)
	}
	return path
}

func runApp(args ...string) error {
	app := &cli.App{
		Name:     "actiontrace",
		Commands: []*cli.Command{&ReplayCmd, &ListCmd},
	}
	return app.Run(append([]string{"actiontrace"}, args...))
}

func TestReplayCmd_WritesExport(t *testing.T) {
	scenario := writeScenario(t, "0")
	output := filepath.Join(t.TempDir(), "out.json")
	if err := runApp("replay", "--log-level", "error", "--output", output, scenario); err != nil {
		t.Fatalf("replay failed: %v", err)
	}

	data, err := os.ReadFile(output)
	if err != nil {
		t.Fatalf("failed to read output: %v", err)
	}
	var export struct {
		Name    string            `json:"name"`
		Success bool              `json:"success"`
		Actions []json.RawMessage `json:"actions"`
		Digest  string            `json:"digest"`
	}
	if err := json.Unmarshal(data, &export); err != nil {
		t.Fatalf("failed to decode output: %v", err)
	}
	if export.Name != "scenario.json" || export.Success {
		t.Errorf("unexpected export: %+v", export)
	}
	if len(export.Actions) != 1 || len(export.Digest) != 66 {
		t.Errorf("unexpected export: %+v", export)
	}
}

func TestReplayCmd_FailsOnUnexpectedFinalState(t *testing.T) {
	scenario := writeScenario(t, "5")
	output := filepath.Join(t.TempDir(), "out.json")
	if err := runApp("replay", "--log-level", "crit", "--output", output, scenario); err == nil {
		t.Errorf("expected replay to report the state mismatch")
	}
}

func TestReplayCmd_RequiresScenario(t *testing.T) {
	if err := runApp("replay"); err == nil {
		t.Errorf("expected replay without scenario to fail")
	}
}

func TestReplayCmd_RejectsInvalidLogLevel(t *testing.T) {
	scenario := writeScenario(t, "0")
	if err := runApp("replay", "--log-level", "loud", scenario); err == nil {
		t.Errorf("expected invalid log level to be rejected")
	}
}
