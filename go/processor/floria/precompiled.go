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
	"github.com/Fantom-foundation/actiontrace/go/tosca"
	"github.com/Fantom-foundation/actiontrace/go/tracing/actions"
	"github.com/ethereum/go-ethereum/common"
	geth "github.com/ethereum/go-ethereum/core/vm"
)

// runPrecompiled executes a precompiled contract. Failures are reported as
// halt reasons.
func runPrecompiled(contract geth.PrecompiledContract, input tosca.Data, gas tosca.Gas) (tosca.Data, tosca.Gas, error) {
	gasCost := contract.RequiredGas(input)
	if gas < 0 || uint64(gas) < gasCost {
		return nil, 0, actions.InsufficientGas
	}
	gas -= tosca.Gas(gasCost)
	output, err := contract.Run(input)
	if err != nil {
		// precompiled contracts only return errors on invalid input
		return nil, 0, actions.PrecompileError
	}
	return output, gas, nil
}

func precompiledContract(address tosca.Address, revision tosca.Revision) (geth.PrecompiledContract, bool) {
	if !tosca.IsPrecompiledContract(address) {
		return nil, false
	}
	var precompiles map[common.Address]geth.PrecompiledContract
	switch revision {
	case tosca.R13_Cancun:
		precompiles = geth.PrecompiledContractsCancun
	case tosca.R12_Shanghai, tosca.R11_Paris, tosca.R10_London, tosca.R09_Berlin:
		precompiles = geth.PrecompiledContractsBerlin
	default: // Istanbul is the oldest supported revision supported by Sonic
		precompiles = geth.PrecompiledContractsIstanbul
	}
	contract, ok := precompiles[common.Address(address)]
	return contract, ok
}

func isPrecompiled(address tosca.Address, revision tosca.Revision) bool {
	_, ok := precompiledContract(address, revision)
	return ok
}
