// Copyright (c) 2024 Fantom Foundation
//
// Use of this software is governed by the Business Source License included
// in the LICENSE file and at fantom.foundation/bsl11.
//
// Change Date: 2028-4-16
//
// On the date above, in accordance with the Business Source License, use of
// this software will be governed by the GNU Lesser General Public License v3.

package floria

import (
	"bytes"
	"errors"
	"testing"

	"github.com/Fantom-foundation/actiontrace/go/tosca"
	"github.com/Fantom-foundation/actiontrace/go/tracing/actions"
)

func TestPrecompiled_RightNumberOfContractsDependingOnRevision(t *testing.T) {
	tests := []struct {
		revision          tosca.Revision
		numberOfContracts int
	}{
		{tosca.R07_Istanbul, 9},
		{tosca.R09_Berlin, 9},
		{tosca.R10_London, 9},
		{tosca.R11_Paris, 9},
		{tosca.R12_Shanghai, 9},
		{tosca.R13_Cancun, 10},
	}

	for _, test := range tests {
		count := 0
		for i := byte(0x01); i < byte(0x42); i++ {
			if isPrecompiled(tosca.Address{19: i}, test.revision) {
				count++
			}
		}
		if count != test.numberOfContracts {
			t.Errorf("unexpected number of precompiled contracts for revision %v, want %v, got %v", test.revision, test.numberOfContracts, count)
		}
	}
}

func TestPrecompiled_StateContractIsNotPrecompiled(t *testing.T) {
	if isPrecompiled(StateContractAddress(), tosca.R13_Cancun) {
		t.Errorf("state contract should be handled separately")
	}
}

func TestPrecompiled_RunReportsOutcome(t *testing.T) {
	word := func(b byte) []byte { return append(make([]byte, 31), b) }
	notOnCurve := tosca.Data(append(word(1), word(1)...))

	tests := map[string]struct {
		address tosca.Address
		input   tosca.Data
		gas     tosca.Gas
		output  tosca.Data
		gasLeft tosca.Gas
		err     error
	}{
		"identity": {
			address: tosca.Address{19: 0x04},
			input:   tosca.Data{1, 2, 3},
			gas:     100,
			output:  tosca.Data{1, 2, 3},
			gasLeft: 100 - 18,
		},
		"identity out of gas": {
			address: tosca.Address{19: 0x04},
			input:   tosca.Data{1, 2, 3},
			gas:     17,
			err:     actions.InsufficientGas,
		},
		"ecrecover of empty input": {
			address: tosca.Address{19: 0x01},
			gas:     3000,
			gasLeft: 0,
		},
		"bn256Add of invalid point": {
			address: tosca.Address{19: 0x06},
			input:   notOnCurve,
			gas:     1000,
			err:     actions.PrecompileError,
		},
		"negative gas": {
			address: tosca.Address{19: 0x04},
			gas:     -1,
			err:     actions.InsufficientGas,
		},
	}

	for name, test := range tests {
		t.Run(name, func(t *testing.T) {
			contract, found := precompiledContract(test.address, tosca.R10_London)
			if !found {
				t.Fatalf("precompiled contract %v not found", test.address)
			}
			output, gasLeft, err := runPrecompiled(contract, test.input, test.gas)
			if !errors.Is(err, test.err) {
				t.Fatalf("unexpected error, wanted %v, got %v", test.err, err)
			}
			if err != nil {
				return
			}
			if !bytes.Equal(output, test.output) {
				t.Errorf("unexpected output, wanted %v, got %v", test.output, output)
			}
			if gasLeft != test.gasLeft {
				t.Errorf("unexpected gas left, wanted %v, got %v", test.gasLeft, gasLeft)
			}
		})
	}
}

// valid input for point evaluation taken from geth
var validPointEvaluationInput = []byte{1, 231, 152, 21, 71, 8, 254, 119, 137, 66, 150, 52, 5, 60, 191, 159,
	153, 182, 25, 249, 240, 132, 4, 137, 39, 51, 63, 206, 99, 127, 84, 155, 86, 76,
	10, 17, 160, 247, 4, 244, 252, 62, 138, 207, 224, 248, 36, 95, 10, 209, 52, 123,
	55, 143, 191, 150, 226, 6, 218, 17, 165, 211, 99, 6, 36, 210, 80, 50, 230, 122,
	126, 106, 73, 16, 223, 88, 52, 184, 254, 112, 230, 188, 254, 234, 192, 53, 36,
	52, 25, 107, 223, 75, 36, 133, 213, 161, 143, 89, 168, 210, 161, 166, 37, 161,
	127, 63, 234, 15, 229, 235, 140, 137, 109, 179, 118, 79, 49, 133, 72, 27, 194,
	47, 145, 180, 170, 255, 204, 162, 95, 38, 147, 104, 87, 188, 58, 124, 37, 57,
	234, 142, 195, 169, 82, 183, 135, 48, 51, 224, 56, 50, 110, 135, 237, 62, 18,
	118, 253, 20, 2, 83, 250, 8, 233, 252, 37, 251, 45, 154, 152, 82, 127, 194, 42,
	44, 150, 18, 251, 234, 253, 173, 68, 108, 188, 123, 205, 189, 205, 120, 10, 242,
	193, 106}

func TestPrecompiled_PointEvaluationAcceptsValidProof(t *testing.T) {
	address := tosca.Address{19: 0x0a}
	if _, found := precompiledContract(address, tosca.R12_Shanghai); found {
		t.Fatalf("point evaluation should not be available before Cancun")
	}
	contract, found := precompiledContract(address, tosca.R13_Cancun)
	if !found {
		t.Fatalf("point evaluation not found")
	}
	output, gasLeft, err := runPrecompiled(contract, validPointEvaluationInput, 50_000+10)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if want, got := 64, len(output); want != got {
		t.Errorf("unexpected output length, wanted %d, got %d", want, got)
	}
	if want, got := tosca.Gas(10), gasLeft; want != got {
		t.Errorf("unexpected gas left, wanted %d, got %d", want, got)
	}

	invalid := bytes.Clone(validPointEvaluationInput)
	invalid[len(invalid)-1] ^= 1
	if _, _, err := runPrecompiled(contract, invalid, 50_000); !errors.Is(err, actions.PrecompileError) {
		t.Errorf("unexpected error for invalid proof, wanted %v, got %v", actions.PrecompileError, err)
	}
}
