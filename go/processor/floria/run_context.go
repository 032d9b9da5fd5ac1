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
	"fmt"

	"github.com/Fantom-foundation/actiontrace/go/tosca"
	"github.com/Fantom-foundation/actiontrace/go/tosca/vm"
	"github.com/Fantom-foundation/actiontrace/go/tracing/actions"

	// geth dependencies
	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/crypto"
	"github.com/ethereum/go-ethereum/params"
)

// MaxRecursiveDepth is the maximum depth of nested calls and creates.
const MaxRecursiveDepth = int(params.CallCreateDepth)

var emptyCodeHash = tosca.Hash(crypto.Keccak256(nil))

// runContext is handed to the interpreter running the code of a single
// frame. Nested calls and creates are reported to the tracer.
type runContext struct {
	tosca.TransactionContext
	interpreter           tosca.Interpreter
	tracer                *actions.Tracer
	blockParameters       tosca.BlockParameters
	transactionParameters tosca.TransactionParameters
	strictAddressChecks   bool
	frame                 *frame
	static                bool
}

func (r runContext) Call(kind tosca.CallKind, parameters tosca.CallParameters) (tosca.CallResult, error) {
	op, err := vm.ForCallKind(kind)
	if err != nil {
		return tosca.CallResult{}, err
	}
	if kind.IsCreate() {
		return r.executeCreate(kind, op, parameters)
	}
	return r.executeCall(kind, op, parameters)
}

// child derives the context running the code of the given frame.
func (r runContext) child(f *frame, static bool) runContext {
	r.frame = f
	r.static = r.static || static
	return r
}

// isCallable reports whether a call of the given address can be served.
func (r runContext) isCallable(address tosca.Address) bool {
	return isPrecompiled(address, r.blockParameters.Revision) ||
		isStateContract(address) ||
		r.AccountExists(address)
}

func hashCode(code tosca.Code) tosca.Hash {
	return tosca.Hash(crypto.Keccak256(code))
}

func createAddress(
	kind tosca.CallKind,
	sender tosca.Address,
	nonce uint64,
	salt tosca.Hash,
	initHash tosca.Hash,
) tosca.Address {
	if kind == tosca.Create {
		return tosca.Address(crypto.CreateAddress(common.Address(sender), nonce))
	}
	return tosca.Address(crypto.CreateAddress2(common.Address(sender), common.Hash(salt), initHash[:]))
}

// hasCollision reports whether a contract can not be deployed at the given address.
func hasCollision(context tosca.WorldState, address tosca.Address) bool {
	if context.GetNonce(address) != 0 {
		return true
	}
	codeHash := context.GetCodeHash(address)
	return codeHash != (tosca.Hash{}) && codeHash != emptyCodeHash
}

func canTransferValue(
	context tosca.WorldState,
	value tosca.Value,
	sender tosca.Address,
	recipient *tosca.Address,
) bool {
	if value == (tosca.Value{}) {
		return true
	}

	senderBalance := context.GetBalance(sender)
	if senderBalance.Cmp(value) < 0 {
		return false
	}

	if recipient == nil || sender == *recipient {
		return true
	}

	receiverBalance := context.GetBalance(*recipient)
	updatedBalance := tosca.Add(receiverBalance, value)
	if updatedBalance.Cmp(receiverBalance) < 0 || updatedBalance.Cmp(value) < 0 {
		return false
	}

	return true
}

func incrementNonce(context tosca.WorldState, address tosca.Address) error {
	nonce := context.GetNonce(address)
	if nonce+1 < nonce {
		return fmt.Errorf("nonce overflow")
	}
	context.SetNonce(address, nonce+1)
	return nil
}

// Only to be called after canTransferValue
func transferValue(
	context tosca.WorldState,
	value tosca.Value,
	sender tosca.Address,
	recipient tosca.Address,
) {
	if value == (tosca.Value{}) {
		return
	}
	if sender == recipient {
		return
	}

	senderBalance := context.GetBalance(sender)
	receiverBalance := context.GetBalance(recipient)
	updatedBalance := tosca.Add(receiverBalance, value)

	senderBalance = tosca.Sub(senderBalance, value)
	context.SetBalance(sender, senderBalance)
	context.SetBalance(recipient, updatedBalance)
}
