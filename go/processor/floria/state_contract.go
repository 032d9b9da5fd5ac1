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
	"fmt"
	"math/big"
	"strings"

	"github.com/Fantom-foundation/actiontrace/go/tosca"

	"github.com/ethereum/go-ethereum/accounts/abi"
	"github.com/ethereum/go-ethereum/common"
)

const (
	callValueTransferGas = tosca.Gas(9000)
	createGas            = tosca.Gas(32000)
	createDataGas        = tosca.Gas(200)
	memoryGas            = tosca.Gas(3)
	sStoreSetGasEIP2200  = tosca.Gas(20000)
)

// DriverAddress is the NodeDriver contract address, the only account
// permitted to use the state contract.
func DriverAddress() tosca.Address {
	return tosca.Address(common.HexToAddress("0xd100a01e00000000000000000000000000000000"))
}

// StateContractAddress is the address of the system contract manipulating
// accounts on behalf of the node driver. Calls to it are traced as SYSTEM
// actions.
func StateContractAddress() tosca.Address {
	return tosca.Address(common.HexToAddress("0xd100ec0000000000000000000000000000000000"))
}

// stateContractABI lists the methods served by the state contract.
var stateContractABI string = "[{\"constant\":false,\"inputs\":[{\"internalType\":\"address\",\"name\":\"acc\",\"type\":\"address\"},{\"internalType\":\"uint256\",\"name\":\"value\",\"type\":\"uint256\"}],\"name\":\"setBalance\",\"outputs\":[],\"payable\":false,\"stateMutability\":\"nonpayable\",\"type\":\"function\"},{\"constant\":false,\"inputs\":[{\"internalType\":\"address\",\"name\":\"acc\",\"type\":\"address\"},{\"internalType\":\"address\",\"name\":\"from\",\"type\":\"address\"}],\"name\":\"copyCode\",\"outputs\":[],\"payable\":false,\"stateMutability\":\"nonpayable\",\"type\":\"function\"},{\"constant\":false,\"inputs\":[{\"internalType\":\"address\",\"name\":\"acc\",\"type\":\"address\"},{\"internalType\":\"address\",\"name\":\"with\",\"type\":\"address\"}],\"name\":\"swapCode\",\"outputs\":[],\"payable\":false,\"stateMutability\":\"nonpayable\",\"type\":\"function\"},{\"constant\":false,\"inputs\":[{\"internalType\":\"address\",\"name\":\"acc\",\"type\":\"address\"},{\"internalType\":\"bytes32\",\"name\":\"key\",\"type\":\"bytes32\"},{\"internalType\":\"bytes32\",\"name\":\"value\",\"type\":\"bytes32\"}],\"name\":\"setStorage\",\"outputs\":[],\"payable\":false,\"stateMutability\":\"nonpayable\",\"type\":\"function\"},{\"constant\":false,\"inputs\":[{\"internalType\":\"address\",\"name\":\"acc\",\"type\":\"address\"},{\"internalType\":\"uint256\",\"name\":\"diff\",\"type\":\"uint256\"}],\"name\":\"incNonce\",\"outputs\":[],\"payable\":false,\"stateMutability\":\"nonpayable\",\"type\":\"function\"}]"

var (
	setBalanceMethodID []byte
	copyCodeMethodID   []byte
	swapCodeMethodID   []byte
	setStorageMethodID []byte
	incNonceMethodID   []byte
)

func init() {
	abi, err := abi.JSON(strings.NewReader(stateContractABI))
	if err != nil {
		panic(fmt.Errorf("failed to parse stateContractABI: %w", err))
	}

	for name, constID := range map[string]*[]byte{
		"setBalance": &setBalanceMethodID,
		"copyCode":   &copyCodeMethodID,
		"swapCode":   &swapCodeMethodID,
		"setStorage": &setStorageMethodID,
		"incNonce":   &incNonceMethodID,
	} {
		method, exist := abi.Methods[name]
		if !exist {
			panic("unknown state contract method " + name)
		}

		*constID = make([]byte, len(method.ID))
		copy(*constID, method.ID)
	}
}

const (
	ErrExecutionReverted = tosca.ConstError("execution reverted")
	ErrOutOfGas          = tosca.ConstError("out of gas")
	ErrUnauthorized      = tosca.ConstError("caller is not the node driver")
	ErrInvalidMethod     = tosca.ConstError("invalid method ID")
)

func isStateContract(address tosca.Address) bool {
	return address == StateContractAddress()
}

// runStateContract executes a call of the state contract. It allows the
// node driver to set balances, copy and swap code, set storage and
// increment nonces.
func runStateContract(
	state tosca.WorldState,
	sender tosca.Address,
	input tosca.Data,
	gas tosca.Gas,
) (tosca.Gas, error) {
	if sender != DriverAddress() {
		return 0, ErrUnauthorized
	}
	if len(input) < 4 {
		return 0, ErrInvalidMethod
	}

	selector := input[:4]
	input = input[4:]
	switch {
	case bytes.Equal(selector, setBalanceMethodID):
		return executeStateSetBalance(state, sender, input, gas)
	case bytes.Equal(selector, copyCodeMethodID):
		return executeStateContractCopyCode(state, input, gas)
	case bytes.Equal(selector, swapCodeMethodID):
		return executeStateContractSwapCode(state, input, gas)
	case bytes.Equal(selector, setStorageMethodID):
		return executeStateContractSetStorage(state, input, gas)
	case bytes.Equal(selector, incNonceMethodID):
		return executeStateContractIncNonce(state, sender, input, gas)
	}
	return 0, ErrInvalidMethod
}

func executeStateSetBalance(state tosca.WorldState, sender tosca.Address, input tosca.Data, gas tosca.Gas) (tosca.Gas, error) {
	if gas < callValueTransferGas {
		return 0, ErrOutOfGas
	}
	gas -= callValueTransferGas
	if len(input) != 64 {
		return 0, ErrExecutionReverted
	}

	account := tosca.Address(input[12:32])
	value := tosca.Value(input[32:64])

	if account == sender {
		// Origin balance shouldn't decrease during his transaction
		return 0, ErrExecutionReverted
	}

	state.SetBalance(account, value)
	return gas, nil
}

func executeStateContractCopyCode(state tosca.WorldState, input tosca.Data, gas tosca.Gas) (tosca.Gas, error) {
	if gas < createGas {
		return 0, ErrOutOfGas
	}
	gas -= createGas
	if len(input) != 64 {
		return 0, ErrExecutionReverted
	}

	accountTo := tosca.Address(input[12:32])
	accountFrom := tosca.Address(input[32+12 : 32+32])

	code := state.GetCode(accountFrom)
	cost := tosca.Gas(len(code)) * (createDataGas + memoryGas)
	if gas < cost {
		return 0, ErrOutOfGas
	}
	gas -= cost
	if accountFrom != accountTo {
		state.SetCode(accountTo, code)
	}

	return gas, nil
}

func executeStateContractSwapCode(state tosca.WorldState, input tosca.Data, gas tosca.Gas) (tosca.Gas, error) {
	cost := 2 * createGas
	if gas < cost {
		return 0, ErrOutOfGas
	}
	gas -= cost
	if len(input) != 64 {
		return 0, ErrExecutionReverted
	}

	account0 := tosca.Address(input[12:32])
	account1 := tosca.Address(input[32+12 : 32+32])
	code0 := state.GetCode(account0)
	code1 := state.GetCode(account1)

	cost0 := tosca.Gas(len(code0)) * (createDataGas + memoryGas)
	cost1 := tosca.Gas(len(code1)) * (createDataGas + memoryGas)
	cost = (cost0 + cost1) / 2 // 50% discount because trie size won't increase after pruning
	if gas < cost {
		return 0, ErrOutOfGas
	}
	gas -= cost
	if account0 != account1 {
		state.SetCode(account0, code1)
		state.SetCode(account1, code0)
	}

	return gas, nil
}

func executeStateContractSetStorage(state tosca.WorldState, input tosca.Data, gas tosca.Gas) (tosca.Gas, error) {
	if gas < sStoreSetGasEIP2200 {
		return 0, ErrOutOfGas
	}
	gas -= sStoreSetGasEIP2200
	if len(input) != 96 {
		return 0, ErrExecutionReverted
	}

	account := tosca.Address(input[12:32])
	key := tosca.Key(input[32:64])
	value := tosca.Word(input[64:96])

	state.SetStorage(account, key, value)

	return gas, nil
}

func executeStateContractIncNonce(state tosca.WorldState, sender tosca.Address, input tosca.Data, gas tosca.Gas) (tosca.Gas, error) {
	if gas < callValueTransferGas {
		return 0, ErrOutOfGas
	}
	gas -= callValueTransferGas
	if len(input) != 64 {
		return 0, ErrExecutionReverted
	}

	account := tosca.Address(input[12:32])
	value := tosca.Value(input[32:64])
	valueUint := big.NewInt(0).SetBytes(value[:]).Uint64()

	if account == sender {
		// Origin nonce shouldn't change during his transaction
		return 0, ErrExecutionReverted
	}

	if valueUint <= 0 || 256 <= valueUint {
		// Don't allow large nonce increasing to prevent a nonce overflow
		return 0, ErrExecutionReverted
	}

	state.SetNonce(account, state.GetNonce(account)+valueUint)

	return gas, nil
}
