// Copyright (c) 2024 Fantom Foundation
//
// Use of this software is governed by the Business Source License included
// in the LICENSE file and at fantom.foundation/bsl11.
//
// Change Date: 2028-4-16
//
// On the date above, in accordance with the Business Source License, use of
// this software will be governed by the GNU Lesser General Public License v3.

package replay

import (
	"bytes"
	"encoding/json"
	"testing"

	"github.com/Fantom-foundation/actiontrace/go/tosca"
	"github.com/Fantom-foundation/actiontrace/go/tracing/actions"
	"github.com/ethereum/go-ethereum/crypto"
)

func TestDigest_DependsOnActions(t *testing.T) {
	a := []actions.Action{{CallType: actions.Call, CallOperationType: actions.OpCall, Input: tosca.Data{}}}
	b := []actions.Action{{CallType: actions.Call, CallOperationType: actions.OpCall, Input: tosca.Data{1}}}

	first, err := Digest(a)
	if err != nil {
		t.Fatalf("failed to compute digest: %v", err)
	}
	second, err := Digest(a)
	if err != nil {
		t.Fatalf("failed to compute digest: %v", err)
	}
	if first != second {
		t.Errorf("digest is not deterministic: %v != %v", first, second)
	}
	other, err := Digest(b)
	if err != nil {
		t.Fatalf("failed to compute digest: %v", err)
	}
	if first == other {
		t.Errorf("different actions should have different digests")
	}
}

func TestDigest_OfEmptyListIsKeccakOfEmptyArray(t *testing.T) {
	digest, err := Digest([]actions.Action{})
	if err != nil {
		t.Fatalf("failed to compute digest: %v", err)
	}
	if want, got := tosca.Hash(crypto.Keccak256([]byte("[]"))), digest; want != got {
		t.Errorf("unexpected digest, wanted %v, got %v", want, got)
	}
}

func TestExport_WritesScenarioResult(t *testing.T) {
	scenario := parseTestScenario(t, nestedCallScenario)
	result, err := scenario.Run(testProcessorConfig())
	if err != nil {
		t.Fatalf("failed to run scenario: %v", err)
	}
	export, err := NewExport(scenario.Name, result)
	if err != nil {
		t.Fatalf("failed to create export: %v", err)
	}

	var buffer bytes.Buffer
	if err := export.Write(&buffer); err != nil {
		t.Fatalf("failed to write export: %v", err)
	}

	var decoded struct {
		Name    string            `json:"name"`
		Success bool              `json:"success"`
		Output  tosca.Data        `json:"output"`
		Actions []json.RawMessage `json:"actions"`
		Digest  string            `json:"digest"`
	}
	if err := json.Unmarshal(buffer.Bytes(), &decoded); err != nil {
		t.Fatalf("failed to decode export: %v", err)
	}
	if decoded.Name != scenario.Name || !decoded.Success {
		t.Errorf("unexpected export header: %+v", decoded)
	}
	if want, got := len(result.Actions), len(decoded.Actions); want != got {
		t.Errorf("unexpected number of exported actions, wanted %d, got %d", want, got)
	}
	digest, err := Digest(result.Actions)
	if err != nil {
		t.Fatalf("failed to compute digest: %v", err)
	}
	if want, got := digest.String(), decoded.Digest; want != got {
		t.Errorf("unexpected digest, wanted %v, got %v", want, got)
	}
}

func TestExport_RejectedTransactionHasEmptyActionList(t *testing.T) {
	export, err := NewExport("rejected", Result{Receipt: tosca.Receipt{GasUsed: 10}})
	if err != nil {
		t.Fatalf("failed to create export: %v", err)
	}
	encoded, err := json.Marshal(export)
	if err != nil {
		t.Fatalf("failed to encode export: %v", err)
	}
	if !bytes.Contains(encoded, []byte(`"actions":[]`)) || !bytes.Contains(encoded, []byte(`"output":"0x"`)) {
		t.Errorf("unexpected encoding of empty export: %s", encoded)
	}
}
