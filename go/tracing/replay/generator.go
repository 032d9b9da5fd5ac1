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
	"fmt"

	"github.com/Fantom-foundation/actiontrace/go/tosca"
	"github.com/Fantom-foundation/actiontrace/go/tracing/actions"
	"pgregory.net/rand"
)

// GeneratorConfig controls the shape of randomly generated scenarios.
type GeneratorConfig struct {
	// Contracts is the number of contracts deployed in the initial state.
	Contracts int
	// MaxSteps is the maximum number of steps of a contract program,
	// excluding the terminating step.
	MaxSteps int
	// Revision is the revision the generated transactions run on.
	Revision tosca.Revision
	// Strict enables the rejection of calls to missing addresses.
	Strict bool
}

func DefaultGeneratorConfig() GeneratorConfig {
	return GeneratorConfig{
		Contracts: 8,
		MaxSteps:  4,
		Revision:  tosca.R13_Cancun,
		Strict:    true,
	}
}

const (
	generatedGasLimit = 2_000_000
	identityAddress   = 4
)

var (
	generatedSender = tosca.Address{0xAA, 19: 0x01}

	terminatingOps = []StepOp{OpReturn, OpReturn, OpRevert, OpHalt}
	nestedKinds    = []tosca.CallKind{
		tosca.Call, tosca.Call, tosca.StaticCall, tosca.DelegateCall,
		tosca.CallCode, tosca.Create, tosca.Create2,
	}
	generatedHalts = []actions.HaltReason{
		"",
		actions.InvalidOperation,
		actions.InvalidJumpDestination,
		actions.InsufficientStackItems,
		"custom failure",
	}
)

// ContractAddress is the address of the i-th generated contract. Odd
// contracts are aliases of long-zero entities.
func ContractAddress(i int) tosca.Address {
	if i%2 == 1 {
		return tosca.Address{0xC0, 18: byte(i >> 8), 19: byte(i)}
	}
	return tosca.Address{17: 0x10, 18: byte(i >> 8), 19: byte(i)}
}

func contractCode(i int) tosca.Code {
	return tosca.Code{0xC0, byte(i >> 8), byte(i)}
}

// GenerateScenario creates a random transaction calling a tree of contracts.
// Contracts only call contracts of higher index, such that every generated
// call tree is finite.
func GenerateScenario(rnd *rand.Rand, config GeneratorConfig) *Scenario {
	contracts := max(config.Contracts, 1)
	strict := config.Strict
	scenario := &Scenario{
		Name:     fmt.Sprintf("generated-%x", rnd.Uint64()),
		Revision: config.Revision,
		Strict:   &strict,
		Accounts: []AccountSpec{{
			Address: generatedSender,
			Balance: NewAmount(1 << 40),
		}},
		Programs: make(map[string]Program, contracts),
	}

	for i := 0; i < contracts; i++ {
		account := AccountSpec{
			Address: ContractAddress(i),
			Balance: NewAmount(uint64(rnd.Intn(1000))),
			Code:    tosca.Data(contractCode(i)),
		}
		if i%2 == 1 {
			id := actions.EntityID{Num: uint64(1000 + i)}
			account.Entity = &id
		}
		scenario.Accounts = append(scenario.Accounts, account)
		scenario.Programs[ProgramKey(contractCode(i))] = generateProgram(rnd, config, i, contracts)
	}

	recipient := ContractAddress(0)
	scenario.Transaction = TransactionSpec{
		Sender:    generatedSender,
		Recipient: &recipient,
		Input:     randomData(rnd, 4),
		Value:     NewAmount(uint64(rnd.Intn(10))),
		GasLimit:  generatedGasLimit,
		GasPrice:  NewAmount(1),
	}
	return scenario
}

func generateProgram(rnd *rand.Rand, config GeneratorConfig, index, contracts int) Program {
	var program Program
	steps := rnd.Intn(max(config.MaxSteps, 0) + 1)
	for i := 0; i < steps; i++ {
		if rnd.Intn(4) == 0 {
			program = append(program, Step{Op: OpBurn, Gas: tosca.Gas(rnd.Intn(500))})
			continue
		}
		program = append(program, generateCall(rnd, index, contracts))
	}

	end := Step{Op: terminatingOps[rnd.Intn(len(terminatingOps))]}
	switch end.Op {
	case OpReturn, OpRevert:
		end.Output = randomData(rnd, 8)
	case OpHalt:
		end.Reason = generatedHalts[rnd.Intn(len(generatedHalts))]
	}
	return append(program, end)
}

func generateCall(rnd *rand.Rand, index, contracts int) Step {
	step := Step{
		Op:    OpCall,
		Kind:  nestedKinds[rnd.Intn(len(nestedKinds))],
		Gas:   tosca.Gas(10_000 + rnd.Intn(200_000)),
		Input: randomData(rnd, 8),
	}
	if step.Kind == tosca.Call && rnd.Intn(3) == 0 {
		step.Value = NewAmount(uint64(rnd.Intn(3)))
	}

	next := index + 1 + rnd.Intn(contracts)
	if step.Kind.IsCreate() {
		// init code runs the program of a contract of higher index
		if next >= contracts {
			step.Input = nil
		} else {
			step.Input = tosca.Data(contractCode(next))
		}
		step.Salt = rnd.Uint64()
		return step
	}

	switch {
	case next < contracts:
		step.To = ContractAddress(next)
	case rnd.Intn(2) == 0:
		step.To = tosca.Address{19: identityAddress}
	default:
		step.To = tosca.Address{0xDE, 0xAD, 19: byte(rnd.Intn(256))}
	}
	return step
}

func randomData(rnd *rand.Rand, maxLength int) tosca.Data {
	res := make(tosca.Data, rnd.Intn(maxLength+1))
	_, _ = rnd.Read(res)
	return res
}
