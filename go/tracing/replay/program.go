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
	"encoding/binary"
	"fmt"

	"github.com/Fantom-foundation/actiontrace/go/tosca"
	"github.com/Fantom-foundation/actiontrace/go/tracing/actions"
)

// InterpreterName is the name the scripted interpreter is registered with.
const InterpreterName = "scripted"

func init() {
	err := tosca.RegisterInterpreterFactory(InterpreterName, func(config any) (tosca.Interpreter, error) {
		if config == nil {
			return NewInterpreter(nil), nil
		}
		programs, ok := config.(map[string]Program)
		if !ok {
			return nil, fmt.Errorf("unsupported configuration for %s interpreter: %T", InterpreterName, config)
		}
		return NewInterpreter(programs), nil
	})
	if err != nil {
		panic(err)
	}
}

// StepOp enumerates the instructions of a program.
type StepOp string

const (
	OpCall   StepOp = "call"   // < call or create another contract
	OpBurn   StepOp = "burn"   // < consume gas
	OpReturn StepOp = "return" // < end successfully
	OpRevert StepOp = "revert" // < end with a revert
	OpHalt   StepOp = "halt"   // < end with an exceptional halt
)

// Step is a single instruction of a program.
type Step struct {
	Op     StepOp             `json:"op"`
	Kind   tosca.CallKind     `json:"kind,omitempty"`
	To     tosca.Address      `json:"to,omitempty"`
	Gas    tosca.Gas          `json:"gas,omitempty"`
	Value  Amount             `json:"value,omitempty"`
	Input  tosca.Data         `json:"input,omitempty"`
	Salt   uint64             `json:"salt,omitempty"`
	Output tosca.Data         `json:"output,omitempty"`
	Reason actions.HaltReason `json:"reason,omitempty"`
}

// Program is the behavior of a contract. Programs ending without a
// terminating step return successfully with empty output.
type Program []Step

// ProgramKey is the key of the program run for the given code.
func ProgramKey(code tosca.Code) string {
	return tosca.Data(code).String()
}

// Interpreter runs programs instead of EVM byte code. The program to run is
// selected by the code of the executed contract.
type Interpreter struct {
	programs map[string]Program
}

var _ tosca.Interpreter = (*Interpreter)(nil)

func NewInterpreter(programs map[string]Program) *Interpreter {
	return &Interpreter{programs: programs}
}

func (i *Interpreter) Run(params tosca.Parameters) (tosca.Result, error) {
	if len(params.Code) == 0 {
		return tosca.Result{Success: true, GasLeft: params.Gas}, nil
	}
	program, found := i.programs[ProgramKey(params.Code)]
	if !found {
		return tosca.Result{}, actions.InvalidOperation
	}
	return program.run(params)
}

func (p Program) run(params tosca.Parameters) (tosca.Result, error) {
	gas := params.Gas
	for _, step := range p {
		switch step.Op {
		case OpBurn:
			if step.Gas > gas {
				return tosca.Result{}, actions.InsufficientGas
			}
			gas -= step.Gas

		case OpCall:
			if params.Static && (step.Kind.IsCreate() || (step.Kind == tosca.Call && step.Value != (Amount{}))) {
				return tosca.Result{}, actions.IllegalStateChange
			}
			callGas := min(step.Gas, gas)
			gas -= callGas
			result, err := params.Context.Call(step.Kind, step.callParameters(params, callGas))
			if err != nil {
				return tosca.Result{}, err
			}
			gas += result.GasLeft

		case OpReturn:
			return tosca.Result{Success: true, Output: step.Output, GasLeft: gas}, nil

		case OpRevert:
			return tosca.Result{Output: step.Output, GasLeft: gas}, nil

		case OpHalt:
			if step.Reason == "" {
				return tosca.Result{}, nil
			}
			return tosca.Result{}, step.Reason

		default:
			return tosca.Result{}, actions.InvalidOperation
		}
	}
	return tosca.Result{Success: true, GasLeft: gas}, nil
}

// callParameters derives the parameters of a nested call issued by the
// contract running with the given parameters.
func (s *Step) callParameters(params tosca.Parameters, gas tosca.Gas) tosca.CallParameters {
	res := tosca.CallParameters{
		Sender:      params.Recipient,
		Recipient:   s.To,
		Value:       tosca.Value(s.Value),
		Input:       s.Input,
		Gas:         gas,
		CodeAddress: s.To,
	}
	switch s.Kind {
	case tosca.DelegateCall:
		res.Sender = params.Sender
		res.Recipient = params.Recipient
		res.Value = params.Value
	case tosca.CallCode:
		res.Recipient = params.Recipient
	case tosca.StaticCall:
		res.Value = tosca.Value{}
	case tosca.Create, tosca.Create2:
		res.Recipient = tosca.Address{}
		res.CodeAddress = tosca.Address{}
		binary.BigEndian.PutUint64(res.Salt[24:], s.Salt)
	}
	return res
}
