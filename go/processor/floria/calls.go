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
	"errors"

	"github.com/Fantom-foundation/actiontrace/go/tosca"
	"github.com/Fantom-foundation/actiontrace/go/tosca/vm"
	"github.com/Fantom-foundation/actiontrace/go/tracing/actions"

	"github.com/ethereum/go-ethereum/params"
)

func (r runContext) executeCall(kind tosca.CallKind, op vm.OpCode, parameters tosca.CallParameters) (tosca.CallResult, error) {
	errResult := tosca.CallResult{
		Success: false,
		GasLeft: parameters.Gas,
	}
	if r.frame.depth+1 > MaxRecursiveDepth {
		return errResult, nil
	}
	if kind == tosca.Call || kind == tosca.CallCode {
		if !canTransferValue(r, parameters.Value, parameters.Sender, &parameters.Recipient) {
			return errResult, nil
		}
	}

	codeAddress := parameters.Recipient
	if kind == tosca.CallCode || kind == tosca.DelegateCall {
		codeAddress = parameters.CodeAddress
	}

	// Calls of missing accounts halt the calling frame.
	if r.strictAddressChecks && !r.isCallable(codeAddress) && parameters.Value == (tosca.Value{}) {
		r.frame.reject(op, codeAddress, parameters.Gas)
		return tosca.CallResult{}, actions.InvalidSolidityAddress
	}

	child := &frame{
		kind:      actions.MessageCall,
		sender:    parameters.Sender,
		recipient: parameters.Recipient,
		contract:  codeAddress,
		input:     parameters.Input,
		value:     parameters.Value,
		gas:       parameters.Gas,
		op:        vm.STOP,
	}
	r.frame.enter(op, codeAddress, child)
	defer r.frame.resume()
	r.tracer.EnterFrame(r.frame)

	snapshot := r.CreateSnapshot()
	if kind == tosca.Call || kind == tosca.CallCode {
		transferValue(r, parameters.Value, parameters.Sender, parameters.Recipient)
	}
	return r.child(child, kind == tosca.StaticCall).runCall(kind, snapshot)
}

func (r runContext) executeCreate(kind tosca.CallKind, op vm.OpCode, parameters tosca.CallParameters) (tosca.CallResult, error) {
	errResult := tosca.CallResult{
		Success: false,
		GasLeft: parameters.Gas,
	}
	if r.frame.depth+1 > MaxRecursiveDepth {
		return errResult, nil
	}
	if !canTransferValue(r, parameters.Value, parameters.Sender, nil) {
		return errResult, nil
	}
	if err := incrementNonce(r, parameters.Sender); err != nil {
		return errResult, nil
	}

	code := tosca.Code(parameters.Input)
	createdAddress := createAddress(kind, parameters.Sender, r.GetNonce(parameters.Sender)-1,
		parameters.Salt, hashCode(code))
	if hasCollision(r, createdAddress) {
		return tosca.CallResult{}, nil
	}

	child := &frame{
		kind:      actions.ContractCreation,
		sender:    parameters.Sender,
		recipient: createdAddress,
		contract:  createdAddress,
		value:     parameters.Value,
		gas:       parameters.Gas,
		op:        vm.STOP,
	}
	r.frame.enter(op, createdAddress, child)
	defer r.frame.resume()
	r.tracer.EnterFrame(r.frame)

	snapshot := r.CreateSnapshot()
	r.SetNonce(createdAddress, 1)
	transferValue(r, parameters.Value, parameters.Sender, createdAddress)
	return r.child(child, false).runCreate(kind, code, snapshot)
}

// runCall executes the code of the context's message call frame. The frame
// is reported to the tracer once it reached its terminal state.
func (r runContext) runCall(kind tosca.CallKind, snapshot tosca.Snapshot) (tosca.CallResult, error) {
	f := r.frame
	revision := r.blockParameters.Revision

	if kind == tosca.Call && isStateContract(f.contract) {
		gasLeft, err := runStateContract(r, f.sender, f.input, f.gas)
		switch {
		case errors.Is(err, ErrOutOfGas):
			f.halt(actions.InsufficientGas)
		case err != nil:
			f.halt(actions.PrecompileError)
		default:
			f.succeed(nil, gasLeft)
		}
		return r.exitPrecompile(actions.System, snapshot), nil
	}

	if contract, found := precompiledContract(f.contract, revision); found {
		output, gasLeft, err := runPrecompiled(contract, f.input, f.gas)
		if err != nil {
			reason := actions.PrecompileError
			errors.As(err, &reason)
			f.halt(reason)
		} else {
			f.succeed(output, gasLeft)
		}
		return r.exitPrecompile(actions.Precompile, snapshot), nil
	}

	// Accounts without code, including missing ones, accept any call.
	code := r.GetCode(f.contract)
	if len(code) == 0 {
		f.succeed(nil, f.gas)
		r.tracer.ExitFrame(f)
		return f.callResult(), nil
	}

	codeHash := r.GetCodeHash(f.contract)
	result, err := r.interpreter.Run(r.parameters(kind, code, &codeHash))
	if err := f.complete(result, err); err != nil {
		return tosca.CallResult{}, err
	}
	if !f.state.IsSuccess() {
		r.RestoreSnapshot(snapshot)
	}
	r.tracer.ExitFrame(f)

	res := f.callResult()
	if res.Success {
		res.GasRefund = result.GasRefund
	}
	return res, nil
}

// runCreate executes the init code of the context's contract creation frame
// and deploys the resulting code.
func (r runContext) runCreate(kind tosca.CallKind, code tosca.Code, snapshot tosca.Snapshot) (tosca.CallResult, error) {
	f := r.frame
	codeHash := hashCode(code)
	result, err := r.interpreter.Run(r.parameters(kind, code, &codeHash))
	if err := f.complete(result, err); err != nil {
		return tosca.CallResult{}, err
	}
	if f.state.IsSuccess() {
		r.deployCode(f)
	}
	if !f.state.IsSuccess() {
		r.RestoreSnapshot(snapshot)
	}
	r.tracer.ExitFrame(f)

	res := f.callResult()
	switch {
	case res.Success:
		res.Output = nil
		res.GasRefund = result.GasRefund
		res.CreatedAddress = f.contract
	case f.state == actions.Revert:
		res.CreatedAddress = f.contract
	}
	return res, nil
}

// deployCode stores the output of a successful creation as the code of the
// created contract, or halts the frame if the code can not be deployed.
func (r runContext) deployCode(f *frame) {
	code := f.output
	cost := tosca.Gas(len(code)) * createDataGas
	switch {
	case len(code) > params.MaxCodeSize:
		f.halt(actions.CodeTooLarge)
	case r.blockParameters.Revision >= tosca.R10_London && len(code) > 0 && code[0] == 0xEF:
		f.halt(actions.InvalidCode)
	case f.gas < cost:
		f.halt(actions.InsufficientGas)
	default:
		f.gas -= cost
		r.SetCode(f.contract, tosca.Code(code))
	}
}

func (r runContext) exitPrecompile(callType actions.CallType, snapshot tosca.Snapshot) tosca.CallResult {
	if !r.frame.state.IsSuccess() {
		r.RestoreSnapshot(snapshot)
	}
	r.tracer.ExitPrecompile(r.frame, callType)
	return r.frame.callResult()
}

func (r runContext) parameters(kind tosca.CallKind, code tosca.Code, codeHash *tosca.Hash) tosca.Parameters {
	f := r.frame
	return tosca.Parameters{
		BlockParameters:       r.blockParameters,
		TransactionParameters: r.transactionParameters,
		Context:               r,
		Kind:                  kind,
		Static:                r.static,
		Depth:                 f.depth,
		Gas:                   f.gas,
		Recipient:             f.recipient,
		Sender:                f.sender,
		Input:                 f.input,
		Value:                 f.value,
		CodeHash:              codeHash,
		Code:                  code,
	}
}
